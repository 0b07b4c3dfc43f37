package rsql

import "errors"

// state describes what the buffer currently ends with.
type state uint8

const (
	stateEmpty state = iota
	stateComparison
	stateLogic
)

// Builder accumulates an RSQL expression.
//
// All mutators return the receiver so calls can be chained. The first
// failing call records its error; later mutators are no-ops until Reset or
// ClearErr. The zero value is an empty Builder with the built-in operators
// and And as the default logical operator.
type Builder struct {
	buf   []byte
	state state
	err   error

	defaultOp    LogicOperator
	table        *OperatorTable
	trimTrailing bool
	skipEmpty    bool
	ser          serializer
}

// New creates an empty Builder.
func New(opts ...Option) *Builder {
	cfg := &config{defaultOp: And}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Builder{
		defaultOp:    cfg.defaultOp,
		table:        NewOperatorTable(cfg.operators...),
		trimTrailing: cfg.trimTrailing,
		skipEmpty:    cfg.skipEmpty,
		ser:          serializer{form: cfg.form},
	}
}

// DefaultLogicOperator returns the operator used when none is given.
func (b *Builder) DefaultLogicOperator() LogicOperator { return b.defaultOp }

// OperatorTable returns a copy of the Builder's operator table.
func (b *Builder) OperatorTable() *OperatorTable {
	if b == nil {
		return NewOperatorTable()
	}
	return b.table.clone()
}

// Comparison appends selector, operator literal and serialized value.
// The default logical operator is inserted first when the buffer ends
// with a comparison.
func (b *Builder) Comparison(selector, operator string, value any) *Builder {
	return b.compare(selector, operator, value, "")
}

// ComparisonWithOptions is Comparison followed by "=" and options when
// options is non-empty.
func (b *Builder) ComparisonWithOptions(selector, operator string, value any, options string) *Builder {
	return b.compare(selector, operator, value, options)
}

func (b *Builder) compare(selector, operator string, value any, options string) *Builder {
	if b.err != nil {
		return b
	}

	op, ok := b.table.Lookup(operator)
	if !ok {
		return b.fail(newUnknownOperatorError(selector, operator))
	}

	val, err := ValueOf(value)
	if err != nil {
		return b.fail(withContext(err, selector, operator))
	}
	if _, isArray := val.(Array); isArray != op.Array {
		return b.fail(newArrayMismatchError(selector, op, isArray))
	}

	lit, err := b.ser.serialize(val)
	if err != nil {
		return b.fail(withContext(err, selector, operator))
	}

	// Nothing is written until the comparison is known to be valid.
	if b.state == stateComparison {
		b.writeLogic(b.defaultOp)
	}
	b.buf = append(b.buf, selector...)
	b.buf = append(b.buf, op.Literal...)
	if op.Array {
		b.buf = append(b.buf, '(')
		b.buf = append(b.buf, lit...)
		b.buf = append(b.buf, ')')
	} else {
		b.buf = append(b.buf, lit...)
	}
	if options != "" {
		b.buf = append(b.buf, '=')
		b.buf = append(b.buf, options...)
	}
	b.state = stateComparison
	return b
}

// Equal appends selector==value.
func (b *Builder) Equal(selector string, value any) *Builder {
	return b.Comparison(selector, OpEqual.Name, value)
}

// NotEqual appends selector!=value.
func (b *Builder) NotEqual(selector string, value any) *Builder {
	return b.Comparison(selector, OpNotEqual.Name, value)
}

// LessThan appends selector=lt=value.
func (b *Builder) LessThan(selector string, value any) *Builder {
	return b.Comparison(selector, OpLessThan.Name, value)
}

// LessThanOrEqual appends selector=le=value.
func (b *Builder) LessThanOrEqual(selector string, value any) *Builder {
	return b.Comparison(selector, OpLessThanOrEqual.Name, value)
}

// GreaterThan appends selector=gt=value.
func (b *Builder) GreaterThan(selector string, value any) *Builder {
	return b.Comparison(selector, OpGreaterThan.Name, value)
}

// GreaterThanOrEqual appends selector=ge=value.
func (b *Builder) GreaterThanOrEqual(selector string, value any) *Builder {
	return b.Comparison(selector, OpGreaterThanOrEqual.Name, value)
}

// In appends selector=in=(v1,v2,...). values must be a slice or array.
func (b *Builder) In(selector string, values any) *Builder {
	return b.Comparison(selector, OpIn.Name, values)
}

// NotIn appends selector=out=(v1,v2,...). values must be a slice or array.
func (b *Builder) NotIn(selector string, values any) *Builder {
	return b.Comparison(selector, OpNotIn.Name, values)
}

// And appends ';'.
func (b *Builder) And() *Builder { return b.Logic(And) }

// Or appends ','.
func (b *Builder) Or() *Builder { return b.Logic(Or) }

// Logic appends op. If the buffer already ends with a logical operator it
// is replaced, so consecutive calls render only the last one. On an empty
// buffer the token is still written.
func (b *Builder) Logic(op LogicOperator) *Builder {
	if b.err != nil {
		return b
	}
	b.writeLogic(op)
	return b
}

func (b *Builder) writeLogic(op LogicOperator) {
	tok := op.Token()[0]
	if b.state == stateLogic && len(b.buf) > 0 && isLogicToken(b.buf[len(b.buf)-1]) {
		b.buf[len(b.buf)-1] = tok
	} else {
		b.buf = append(b.buf, tok)
	}
	b.state = stateLogic
}

// EnsureTrailingOperator appends the default operator unless the buffer is
// empty or already ends with a logical operator.
func (b *Builder) EnsureTrailingOperator() *Builder {
	return b.EnsureTrailingOperatorWith(b.defaultOp)
}

// EnsureTrailingOperatorWith is EnsureTrailingOperator with an explicit
// operator.
func (b *Builder) EnsureTrailingOperatorWith(op LogicOperator) *Builder {
	if b.err != nil {
		return b
	}
	if b.state == stateComparison {
		b.writeLogic(op)
	}
	return b
}

// Group appends '(' + other + ')', preceded by the default operator when
// needed. An empty other yields "()" unless WithSkipEmptyGroups is set.
// A nil other counts as empty.
func (b *Builder) Group(other *Builder) *Builder {
	if b.err != nil {
		return b
	}
	text, _, err := other.render()
	if err != nil {
		return b.fail(err)
	}
	if text == "" && b.skipEmpty {
		return b
	}

	b.EnsureTrailingOperator()
	b.buf = append(b.buf, '(')
	b.buf = append(b.buf, text...)
	b.buf = append(b.buf, ')')
	b.state = stateComparison
	return b
}

// Concat appends other's text without parentheses, preceded by the default
// operator when needed. An empty other is ignored.
func (b *Builder) Concat(other *Builder) *Builder {
	if b.err != nil {
		return b
	}
	text, st, err := other.render()
	if err != nil {
		return b.fail(err)
	}
	if text == "" {
		return b
	}

	b.EnsureTrailingOperator()
	b.buf = append(b.buf, text...)
	b.state = st
	return b
}

// Merge groups every builder, joined by the default operator.
func (b *Builder) Merge(others ...*Builder) *Builder {
	return b.MergeWith(b.defaultOp, others...)
}

// MergeWith groups every builder, joined by op. Each merged builder is
// parenthesized, even when it holds a single comparison.
func (b *Builder) MergeWith(op LogicOperator, others ...*Builder) *Builder {
	for _, other := range others {
		if b.err != nil {
			break
		}
		text, _, err := other.render()
		if err != nil {
			return b.fail(err)
		}
		if text == "" && b.skipEmpty {
			continue
		}
		b.EnsureTrailingOperatorWith(op)
		b.Group(other)
	}
	return b
}

// Merge creates a Builder with the default configuration holding every
// non-empty builder as a group joined by And.
func Merge(builders ...*Builder) *Builder {
	return MergeWith(And, builders...)
}

// MergeWith is Merge with an explicit operator.
func MergeWith(op LogicOperator, builders ...*Builder) *Builder {
	nonEmpty := make([]*Builder, 0, len(builders))
	for _, bb := range builders {
		if bb.renderedEmpty() {
			continue
		}
		nonEmpty = append(nonEmpty, bb)
	}
	return New().MergeWith(op, nonEmpty...)
}

// String returns the buffer. A dangling trailing operator is kept unless
// WithTrimTrailingOperator is set.
func (b *Builder) String() string {
	text, _, _ := b.render()
	return text
}

// Build returns the rendered expression and the first recorded error.
func (b *Builder) Build() (string, error) {
	text, _, err := b.render()
	return text, err
}

// Err returns the first error recorded by a mutator, or nil.
func (b *Builder) Err() error {
	if b == nil {
		return nil
	}
	return b.err
}

// ClearErr drops the recorded error and keeps the buffer, so building can
// continue from the last successful call.
func (b *Builder) ClearErr() *Builder {
	b.err = nil
	return b
}

// IsEmpty reports whether the buffer holds nothing. A nil Builder is empty.
func (b *Builder) IsEmpty() bool { return b == nil || len(b.buf) == 0 }

// Reset clears the buffer and any recorded error. Configuration is kept.
func (b *Builder) Reset() *Builder {
	b.buf = b.buf[:0]
	b.state = stateEmpty
	b.err = nil
	return b
}

func (b *Builder) render() (string, state, error) {
	if b == nil {
		return "", stateEmpty, nil
	}
	buf, st := b.buf, b.state
	if b.trimTrailing && st == stateLogic && len(buf) > 0 && isLogicToken(buf[len(buf)-1]) {
		buf = buf[:len(buf)-1]
		st = stateComparison
		if len(buf) == 0 {
			st = stateEmpty
		}
	}
	return string(buf), st, b.err
}

// renderedEmpty reports whether b is nil or renders to "" without error.
func (b *Builder) renderedEmpty() bool {
	text, _, err := b.render()
	return text == "" && err == nil
}

func (b *Builder) fail(err error) *Builder {
	b.err = err
	return b
}

// withContext attaches the failing comparison to a serializer error.
func withContext(err error, selector, operator string) error {
	var e *Error
	if errors.As(err, &e) {
		c := *e
		c.Selector = selector
		c.Operator = operator
		return &c
	}
	return err
}

package rsql

import "golang.org/x/text/unicode/norm"

// Option configures a Builder at construction time.
type Option func(*config)

type config struct {
	defaultOp    LogicOperator
	operators    []ComparisonOperator
	trimTrailing bool
	skipEmpty    bool
	form         *norm.Form
}

// WithDefaultLogicOperator sets the operator inserted between adjacent
// comparisons and before groups. Default: And.
func WithDefaultLogicOperator(op LogicOperator) Option {
	return func(c *config) { c.defaultOp = op }
}

// WithOperators registers custom comparison operators. A custom operator
// with a built-in's name replaces the built-in for this Builder.
func WithOperators(ops ...ComparisonOperator) Option {
	return func(c *config) { c.operators = append(c.operators, ops...) }
}

// WithTrimTrailingOperator makes String drop a dangling trailing logical
// operator. Default: false, the buffer renders verbatim.
func WithTrimTrailingOperator(trim bool) Option {
	return func(c *config) { c.trimTrailing = trim }
}

// WithSkipEmptyGroups makes Group and Merge ignore builders that render to
// the empty string instead of writing "()". Default: false.
func WithSkipEmptyGroups(skip bool) Option {
	return func(c *config) { c.skipEmpty = skip }
}

// WithUnicodeNormalization normalizes string values (e.g. norm.NFC) before
// they are escaped.
func WithUnicodeNormalization(form norm.Form) Option {
	return func(c *config) { c.form = &form }
}

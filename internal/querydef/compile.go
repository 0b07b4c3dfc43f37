package querydef

import (
	"fmt"
	"time"

	"github.com/roach88/rsqlb/rsql"
)

// Compile turns a definition into a Builder. It does not call Validate;
// malformed steps still fail, with the step path in the error.
func Compile(def *Definition) (*rsql.Builder, error) {
	if def == nil {
		return nil, &Error{Code: ErrCodeInvalidDefinition, Message: "definition is nil"}
	}
	opts, err := def.BuilderOptions()
	if err != nil {
		return nil, &Error{Code: ErrCodeInvalidDefinition, Message: "invalid builder configuration", Err: err}
	}

	c := &compiler{opts: opts}
	b := rsql.New(opts...)
	if err := c.compileSteps(b, "expression", def.Expression); err != nil {
		return nil, err
	}
	return b, nil
}

// Render compiles a definition and returns the RSQL string.
func Render(def *Definition) (string, error) {
	b, err := Compile(def)
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

type compiler struct {
	opts []rsql.Option
}

func (c *compiler) compileSteps(b *rsql.Builder, path string, steps []Step) error {
	for i, step := range steps {
		if err := c.compileStep(b, fmt.Sprintf("%s[%d]", path, i), step); err != nil {
			return err
		}
	}
	return nil
}

func (c *compiler) compileStep(b *rsql.Builder, path string, step Step) error {
	switch kind := step.kind(); kind {
	case "compare":
		path += ".compare"
		value, err := compareValue(step.Compare)
		if err != nil {
			return &Error{Code: ErrCodeCompileFailed, Path: path, Message: "invalid date", Err: err}
		}
		cmp := step.Compare
		b.ComparisonWithOptions(cmp.Selector, cmp.Operator, value, cmp.Options)

	case "logic":
		path += ".logic"
		op, err := rsql.ParseLogicOperator(step.Logic)
		if err != nil {
			return &Error{Code: ErrCodeCompileFailed, Path: path, Message: "invalid logic operator", Err: err}
		}
		b.Logic(op)

	case "group":
		path += ".group"
		sub, err := c.subBuilder(path, step.Group)
		if err != nil {
			return err
		}
		b.Group(sub)

	case "concat":
		path += ".concat"
		sub, err := c.subBuilder(path, step.Concat)
		if err != nil {
			return err
		}
		b.Concat(sub)

	case "merge":
		path += ".merge"
		op := b.DefaultLogicOperator()
		if step.MergeOperator != "" {
			parsed, err := rsql.ParseLogicOperator(step.MergeOperator)
			if err != nil {
				return &Error{Code: ErrCodeCompileFailed, Path: path, Message: "invalid merge operator", Err: err}
			}
			op = parsed
		}
		subs := make([]*rsql.Builder, len(step.Merge))
		for i, steps := range step.Merge {
			sub, err := c.subBuilder(fmt.Sprintf("%s[%d]", path, i), steps)
			if err != nil {
				return err
			}
			subs[i] = sub
		}
		b.MergeWith(op, subs...)

	default:
		return &Error{Code: ErrCodeCompileFailed, Path: path, Message: fmt.Sprintf("step must set exactly one kind, got %q", kind)}
	}

	if err := b.Err(); err != nil {
		return &Error{Code: ErrCodeCompileFailed, Path: path, Message: "builder rejected step", Err: err}
	}
	return nil
}

// subBuilder compiles nested steps into a fresh builder with the same
// configuration.
func (c *compiler) subBuilder(path string, steps []Step) (*rsql.Builder, error) {
	sub := rsql.New(c.opts...)
	if err := c.compileSteps(sub, path, steps); err != nil {
		return nil, err
	}
	return sub, nil
}

func compareValue(cmp *Compare) (any, error) {
	if cmp.Date == "" {
		return cmp.Value, nil
	}
	return time.Parse(time.RFC3339Nano, cmp.Date)
}

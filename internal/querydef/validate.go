package querydef

import (
	"errors"
	"fmt"
	"time"

	"github.com/roach88/rsqlb/rsql"
)

// Validate checks the definition's structure and reports every problem it
// finds, joined with errors.Join. Operator names and value types are left
// to Compile, which asks the builder.
func Validate(def *Definition) error {
	v := &validator{}
	v.validateDefinition(def)
	return errors.Join(v.errs...)
}

// validator accumulates errors during traversal.
type validator struct {
	errs []error
}

func (v *validator) addError(path, format string, args ...any) {
	v.errs = append(v.errs, &Error{
		Code:    ErrCodeInvalidDefinition,
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	})
}

func (v *validator) validateDefinition(def *Definition) {
	if def == nil {
		v.addError("", "definition is nil")
		return
	}

	if def.Name == "" {
		v.addError("name", "name is required")
	}
	if def.DefaultOperator != "" {
		if _, err := rsql.ParseLogicOperator(def.DefaultOperator); err != nil {
			v.addError("default_operator", "%v", err)
		}
	}
	if def.Normalize != "" {
		if _, err := ParseNormalization(def.Normalize); err != nil {
			v.addError("normalize", "%v", err)
		}
	}
	if _, err := rsql.PresetOperators(def.Preset); err != nil {
		v.addError("preset", "%v", err)
	}

	for i, op := range def.Operators {
		path := fmt.Sprintf("operators[%d]", i)
		if op.Name == "" {
			v.addError(path, "operator name is required")
		}
		if op.Literal == "" {
			v.addError(path, "operator literal is required")
		}
	}

	if len(def.Expression) == 0 {
		v.addError("expression", "expression must have at least one step")
	}
	v.validateSteps("expression", def.Expression)
}

func (v *validator) validateSteps(path string, steps []Step) {
	for i, step := range steps {
		v.validateStep(fmt.Sprintf("%s[%d]", path, i), step)
	}
}

func (v *validator) validateStep(path string, step Step) {
	kind := step.kind()
	switch kind {
	case "compare":
		v.validateCompare(path+".compare", step.Compare)
	case "logic":
		if _, err := rsql.ParseLogicOperator(step.Logic); err != nil {
			v.addError(path+".logic", "%v", err)
		}
	case "group":
		v.validateSteps(path+".group", step.Group)
	case "concat":
		v.validateSteps(path+".concat", step.Concat)
	case "merge":
		for i, sub := range step.Merge {
			v.validateSteps(fmt.Sprintf("%s.merge[%d]", path, i), sub)
		}
	case "":
		v.addError(path, "step must set one of compare, logic, group, concat or merge")
	default:
		v.addError(path, "step sets several kinds (%s); exactly one is allowed", kind)
	}

	if step.MergeOperator != "" {
		if kind != "merge" {
			v.addError(path+".merge_operator", "merge_operator is only valid on merge steps")
		} else if _, err := rsql.ParseLogicOperator(step.MergeOperator); err != nil {
			v.addError(path+".merge_operator", "%v", err)
		}
	}
}

func (v *validator) validateCompare(path string, c *Compare) {
	if c.Selector == "" {
		v.addError(path+".selector", "selector is required")
	}
	if c.Operator == "" {
		v.addError(path+".operator", "operator is required")
	}
	if c.Date != "" {
		if c.Value != nil {
			v.addError(path, "value and date are mutually exclusive")
		}
		if _, err := time.Parse(time.RFC3339Nano, c.Date); err != nil {
			v.addError(path+".date", "invalid RFC 3339 timestamp: %v", err)
		}
	}
}

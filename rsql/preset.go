package rsql

import (
	"fmt"
	"strings"
)

// Operators found in common RSQL server dialects beyond the core set.
var (
	OpLike       = ComparisonOperator{Name: "like", Literal: "=like="}
	OpNotLike    = ComparisonOperator{Name: "notLike", Literal: "=notlike="}
	OpILike      = ComparisonOperator{Name: "iLike", Literal: "=ilike="}
	OpIsNull     = ComparisonOperator{Name: "isNull", Literal: "=isnull="}
	OpBetween    = ComparisonOperator{Name: "between", Literal: "=bt=", Array: true}
	OpNotBetween = ComparisonOperator{Name: "notBetween", Literal: "=nbt=", Array: true}
)

// ExtendedOperators is the extended preset.
var ExtendedOperators = []ComparisonOperator{
	OpLike,
	OpNotLike,
	OpILike,
	OpIsNull,
	OpBetween,
	OpNotBetween,
}

// Preset names accepted by PresetOperators.
const (
	PresetBuiltin  = "builtin"
	PresetExtended = "extended"
)

// PresetOperators returns the custom operators a preset pre-populates.
// The builtin preset adds nothing.
func PresetOperators(name string) ([]ComparisonOperator, error) {
	switch strings.ToLower(name) {
	case "", PresetBuiltin:
		return nil, nil
	case PresetExtended:
		return append([]ComparisonOperator(nil), ExtendedOperators...), nil
	default:
		return nil, fmt.Errorf("unknown preset %q: must be %s or %s", name, PresetBuiltin, PresetExtended)
	}
}

// NewExtended creates a Builder whose table also holds ExtendedOperators.
// Operators passed through opts still win by name.
func NewExtended(opts ...Option) *Builder {
	return New(append([]Option{WithOperators(ExtendedOperators...)}, opts...)...)
}

// Like appends selector=like=value. Requires the extended preset or an
// equivalent custom operator named "like".
func (b *Builder) Like(selector string, value any) *Builder {
	return b.Comparison(selector, OpLike.Name, value)
}

// Between appends selector=bt=(lo,hi). Requires the extended preset or an
// equivalent custom operator named "between".
func (b *Builder) Between(selector string, lo, hi any) *Builder {
	return b.Comparison(selector, OpBetween.Name, []any{lo, hi})
}

package rsql

import (
	"fmt"
	"sort"
	"strings"
)

// LogicOperator joins two expressions.
type LogicOperator int

const (
	And LogicOperator = iota // ;
	Or                       // ,
)

// Token returns the rendered form of the operator.
func (op LogicOperator) Token() string {
	if op == Or {
		return ","
	}
	return ";"
}

// String returns "and" or "or".
func (op LogicOperator) String() string {
	if op == Or {
		return "or"
	}
	return "and"
}

// ParseLogicOperator accepts "and", "or" (case-insensitive) and the tokens
// ";" and ",".
func ParseLogicOperator(s string) (LogicOperator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "and", ";":
		return And, nil
	case "or", ",":
		return Or, nil
	default:
		return And, fmt.Errorf("invalid logic operator %q: must be and or or", s)
	}
}

func isLogicToken(b byte) bool {
	return b == ';' || b == ','
}

// ComparisonOperator describes how a comparison renders.
type ComparisonOperator struct {
	Name    string `json:"name" yaml:"name"`       // lookup key, e.g. "greaterThan"
	Literal string `json:"literal" yaml:"literal"` // rendered form, e.g. "=gt="
	Array   bool   `json:"array" yaml:"array"`     // value must be an Array
}

// Built-in comparison operators.
var (
	OpEqual              = ComparisonOperator{Name: "equal", Literal: "=="}
	OpNotEqual           = ComparisonOperator{Name: "notEqual", Literal: "!="}
	OpLessThan           = ComparisonOperator{Name: "lessThan", Literal: "=lt="}
	OpLessThanOrEqual    = ComparisonOperator{Name: "lessThanOrEqual", Literal: "=le="}
	OpGreaterThan        = ComparisonOperator{Name: "greaterThan", Literal: "=gt="}
	OpGreaterThanOrEqual = ComparisonOperator{Name: "greaterThanOrEqual", Literal: "=ge="}
	OpIn                 = ComparisonOperator{Name: "in", Literal: "=in=", Array: true}
	OpNotIn              = ComparisonOperator{Name: "notIn", Literal: "=out=", Array: true}
)

var builtinOperators = indexOperators([]ComparisonOperator{
	OpEqual,
	OpNotEqual,
	OpLessThan,
	OpLessThanOrEqual,
	OpGreaterThan,
	OpGreaterThanOrEqual,
	OpIn,
	OpNotIn,
})

// BuiltinOperators returns the built-in operators sorted by name.
func BuiltinOperators() []ComparisonOperator {
	return sortedOperators(builtinOperators)
}

func indexOperators(ops []ComparisonOperator) map[string]ComparisonOperator {
	m := make(map[string]ComparisonOperator, len(ops))
	for _, op := range ops {
		m[op.Name] = op
	}
	return m
}

func sortedOperators(m map[string]ComparisonOperator) []ComparisonOperator {
	out := make([]ComparisonOperator, 0, len(m))
	for _, op := range m {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// OperatorTable resolves operator names. Custom operators are consulted
// first, so they shadow built-ins of the same name.
type OperatorTable struct {
	custom map[string]ComparisonOperator
}

// NewOperatorTable creates a table with the given custom operators.
// Later entries win over earlier ones with the same name.
func NewOperatorTable(custom ...ComparisonOperator) *OperatorTable {
	return &OperatorTable{custom: indexOperators(custom)}
}

// Add registers or replaces custom operators.
func (t *OperatorTable) Add(ops ...ComparisonOperator) {
	if t.custom == nil {
		t.custom = make(map[string]ComparisonOperator, len(ops))
	}
	for _, op := range ops {
		t.custom[op.Name] = op
	}
}

// Lookup finds an operator by name: custom first, then built-in.
func (t *OperatorTable) Lookup(name string) (ComparisonOperator, bool) {
	if t != nil {
		if op, ok := t.custom[name]; ok {
			return op, true
		}
	}
	op, ok := builtinOperators[name]
	return op, ok
}

// Operators returns the effective table sorted by name.
func (t *OperatorTable) Operators() []ComparisonOperator {
	merged := make(map[string]ComparisonOperator, len(builtinOperators))
	for name, op := range builtinOperators {
		merged[name] = op
	}
	if t != nil {
		for name, op := range t.custom {
			merged[name] = op
		}
	}
	return sortedOperators(merged)
}

// clone copies the table so builders never share custom maps.
func (t *OperatorTable) clone() *OperatorTable {
	if t == nil {
		return NewOperatorTable()
	}
	c := &OperatorTable{custom: make(map[string]ComparisonOperator, len(t.custom))}
	for name, op := range t.custom {
		c.custom[name] = op
	}
	return c
}

package querydef

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/rsqlb/rsql"
)

// Definition describes one RSQL query declaratively.
// The same shape is read from YAML (yaml tags) and CUE (json tags).
type Definition struct {
	// Name uniquely identifies the query in CLI output.
	Name string `yaml:"name" json:"name"`

	// Description is free text for humans.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// DefaultOperator is "and" or "or" (default "and").
	DefaultOperator string `yaml:"default_operator,omitempty" json:"default_operator,omitempty"`

	// TrimTrailingOperator drops a dangling trailing operator on render.
	TrimTrailingOperator bool `yaml:"trim_trailing_operator,omitempty" json:"trim_trailing_operator,omitempty"`

	// SkipEmptyGroups drops empty groups instead of rendering "()".
	SkipEmptyGroups bool `yaml:"skip_empty_groups,omitempty" json:"skip_empty_groups,omitempty"`

	// Normalize is an optional Unicode form applied to string values:
	// NFC, NFD, NFKC or NFKD.
	Normalize string `yaml:"normalize,omitempty" json:"normalize,omitempty"`

	// Preset pre-populates custom operators: "builtin" (default) or "extended".
	Preset string `yaml:"preset,omitempty" json:"preset,omitempty"`

	// Operators are custom comparison operators. They win over the preset
	// and the built-ins by name.
	Operators []rsql.ComparisonOperator `yaml:"operators,omitempty" json:"operators,omitempty"`

	// Expression is the ordered list of builder steps.
	Expression []Step `yaml:"expression" json:"expression"`
}

// Step is one builder call. Exactly one of Compare, Logic, Group, Concat
// or Merge is set.
type Step struct {
	Compare *Compare `yaml:"compare,omitempty" json:"compare,omitempty"`

	// Logic is "and" or "or".
	Logic string `yaml:"logic,omitempty" json:"logic,omitempty"`

	Group  []Step `yaml:"group,omitempty" json:"group,omitempty"`
	Concat []Step `yaml:"concat,omitempty" json:"concat,omitempty"`

	// Merge holds one step list per merged sub-query.
	Merge [][]Step `yaml:"merge,omitempty" json:"merge,omitempty"`

	// MergeOperator joins merged groups; defaults to DefaultOperator.
	MergeOperator string `yaml:"merge_operator,omitempty" json:"merge_operator,omitempty"`
}

// Compare is a single comparison.
type Compare struct {
	Selector string `yaml:"selector" json:"selector"`
	Operator string `yaml:"operator" json:"operator"`

	// Value is any scalar or list; omitted or null renders null.
	Value any `yaml:"value,omitempty" json:"value,omitempty"`

	// Date, when set, is an RFC 3339 timestamp used instead of Value.
	Date string `yaml:"date,omitempty" json:"date,omitempty"`

	// Options is appended as "=options" after the value.
	Options string `yaml:"options,omitempty" json:"options,omitempty"`
}

// kind names the step variant. It is "" when no variant is set and a
// "+"-joined list when several are.
func (s Step) kind() string {
	var kinds []string
	if s.Compare != nil {
		kinds = append(kinds, "compare")
	}
	if s.Logic != "" {
		kinds = append(kinds, "logic")
	}
	if s.Group != nil {
		kinds = append(kinds, "group")
	}
	if s.Concat != nil {
		kinds = append(kinds, "concat")
	}
	if s.Merge != nil {
		kinds = append(kinds, "merge")
	}
	if len(kinds) != 1 {
		return strings.Join(kinds, "+")
	}
	return kinds[0]
}

// BuilderOptions translates the definition's configuration into
// rsql options. Preset operators come first so explicit ones win.
func (d *Definition) BuilderOptions() ([]rsql.Option, error) {
	var opts []rsql.Option

	if d.DefaultOperator != "" {
		op, err := rsql.ParseLogicOperator(d.DefaultOperator)
		if err != nil {
			return nil, err
		}
		opts = append(opts, rsql.WithDefaultLogicOperator(op))
	}

	preset, err := rsql.PresetOperators(d.Preset)
	if err != nil {
		return nil, err
	}
	if len(preset) > 0 {
		opts = append(opts, rsql.WithOperators(preset...))
	}
	if len(d.Operators) > 0 {
		opts = append(opts, rsql.WithOperators(d.Operators...))
	}

	if d.TrimTrailingOperator {
		opts = append(opts, rsql.WithTrimTrailingOperator(true))
	}
	if d.SkipEmptyGroups {
		opts = append(opts, rsql.WithSkipEmptyGroups(true))
	}

	if d.Normalize != "" {
		form, err := ParseNormalization(d.Normalize)
		if err != nil {
			return nil, err
		}
		opts = append(opts, rsql.WithUnicodeNormalization(form))
	}

	return opts, nil
}

// ParseNormalization maps "NFC", "NFD", "NFKC" and "NFKD" (any case) to
// their norm.Form.
func ParseNormalization(s string) (norm.Form, error) {
	switch strings.ToUpper(s) {
	case "NFC":
		return norm.NFC, nil
	case "NFD":
		return norm.NFD, nil
	case "NFKC":
		return norm.NFKC, nil
	case "NFKD":
		return norm.NFKD, nil
	default:
		return norm.NFC, fmt.Errorf("invalid normalization %q: must be NFC, NFD, NFKC or NFKD", s)
	}
}

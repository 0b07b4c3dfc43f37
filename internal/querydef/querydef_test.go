package querydef

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rsqlb/rsql"
)

func definitionPath(name string) string {
	return filepath.Join("testdata", "definitions", name)
}

func TestLoad_YAML(t *testing.T) {
	def, err := Load(definitionPath("adults.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "adults-named-john", def.Name)
	assert.Equal(t, "extended", def.Preset)
	require.Len(t, def.Expression, 3)
	require.NotNil(t, def.Expression[0].Compare)
	assert.Equal(t, "like", def.Expression[0].Compare.Operator)
	assert.Equal(t, "and", def.Expression[1].Logic)
	assert.Len(t, def.Expression[2].Group, 3)
}

func TestLoad_CUE(t *testing.T) {
	def, err := Load(definitionPath("classics.cue"))
	require.NoError(t, err)

	assert.Equal(t, "sci-fi-classics", def.Name)
	require.Len(t, def.Expression, 4)
	assert.Equal(t, "or", def.Expression[2].Logic)
	assert.Len(t, def.Expression[3].Group, 2)
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	_, err := Load(definitionPath("typo.yaml"))
	require.Error(t, err)
	assert.Equal(t, ErrCodeParseFailed, Code(err))
	assert.Contains(t, err.Error(), "selecor")
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	_, err := Load(definitionPath("notes.txt"))
	require.Error(t, err)
	assert.Equal(t, ErrCodeUnsupportedFormat, Code(err))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(definitionPath("missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, ErrCodeReadFailed, Code(err))
}

func TestLoad_InvalidDefinition(t *testing.T) {
	_, err := Load(definitionPath("broken.yaml"))
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalidDefinition, Code(err))

	msg := err.Error()
	for _, want := range []string{
		"default_operator",
		"expression[0]: E204: step sets several kinds (compare+logic)",
		"expression[1]: E204: step must set one of",
		"expression[2].group[0].compare.selector",
		"expression[3].compare.date",
		"expression[3].merge_operator",
	} {
		assert.Contains(t, msg, want)
	}
}

func TestFormatFromPath(t *testing.T) {
	testCases := []struct {
		path string
		want Format
	}{
		{"q.yaml", FormatYAML},
		{"q.YML", FormatYAML},
		{"dir/q.cue", FormatCUE},
	}
	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			got, err := FormatFromPath(tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := FormatFromPath("q.json")
	assert.Equal(t, ErrCodeUnsupportedFormat, Code(err))
}

func TestParse_CUENestedQuery(t *testing.T) {
	src := `
query: {
	name: "nested"
	expression: [{compare: {selector: "a", operator: "equal", value: 1}}]
}
`
	def, err := Parse([]byte(src), FormatCUE, "nested.cue")
	require.NoError(t, err)
	assert.Equal(t, "nested", def.Name)

	got, err := Render(def)
	require.NoError(t, err)
	assert.Equal(t, "a==1", got)
}

func TestParse_CUENotConcrete(t *testing.T) {
	src := `
name: string
expression: []
`
	_, err := Parse([]byte(src), FormatCUE, "")
	require.Error(t, err)
	assert.Equal(t, ErrCodeParseFailed, Code(err))
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("name: [unclosed"), FormatYAML, "")
	assert.Equal(t, ErrCodeParseFailed, Code(err))
}

func TestCompile_Definitions(t *testing.T) {
	files := []string{"adults.yaml", "orders.yml", "classics.cue"}

	var sb strings.Builder
	for _, file := range files {
		def, err := Load(definitionPath(file))
		require.NoError(t, err, file)

		query, err := Render(def)
		require.NoError(t, err, file)
		fmt.Fprintf(&sb, "%s\t%s\n", def.Name, query)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "definitions", []byte(sb.String()))
}

func TestCompile_BuilderErrorCarriesPath(t *testing.T) {
	def, err := Load(definitionPath("unknown_operator.yaml"))
	require.NoError(t, err)

	_, err = Compile(def)
	require.Error(t, err)
	assert.Equal(t, ErrCodeCompileFailed, Code(err))
	assert.True(t, rsql.IsUnknownOperator(err))

	var qe *Error
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, "expression[1].group[0].compare", qe.Path)
}

func TestCompile_ArrayMismatch(t *testing.T) {
	def := &Definition{
		Name: "mismatch",
		Expression: []Step{
			{Compare: &Compare{Selector: "a", Operator: "in", Value: "scalar"}},
		},
	}

	_, err := Compile(def)
	require.Error(t, err)
	assert.True(t, rsql.IsArrayOperatorMismatch(err))
}

func TestCompile_Concat(t *testing.T) {
	def := &Definition{
		Name: "concat",
		Expression: []Step{
			{Compare: &Compare{Selector: "a", Operator: "equal", Value: 1}},
			{Concat: []Step{
				{Compare: &Compare{Selector: "b", Operator: "equal", Value: 2}},
				{Logic: "or"},
				{Compare: &Compare{Selector: "c", Operator: "equal", Value: 3}},
			}},
		},
	}

	got, err := Render(def)
	require.NoError(t, err)
	assert.Equal(t, "a==1;b==2,c==3", got)
}

func TestCompile_SkipEmptyGroups(t *testing.T) {
	steps := []Step{
		{Compare: &Compare{Selector: "a", Operator: "equal", Value: 1}},
		{Group: []Step{}},
		{Merge: [][]Step{{}, {{Compare: &Compare{Selector: "b", Operator: "equal", Value: 2}}}}},
	}

	got, err := Render(&Definition{Name: "keep", Expression: steps})
	require.NoError(t, err)
	assert.Equal(t, "a==1;();();(b==2)", got)

	got, err = Render(&Definition{Name: "skip", SkipEmptyGroups: true, Expression: steps})
	require.NoError(t, err)
	assert.Equal(t, "a==1;(b==2)", got)
}

func TestCompile_Normalize(t *testing.T) {
	def := &Definition{
		Name:      "nfc",
		Normalize: "nfc",
		Expression: []Step{
			{Compare: &Compare{Selector: "name", Operator: "equal", Value: "Zoë"}},
		},
	}

	got, err := Render(def)
	require.NoError(t, err)
	assert.Equal(t, "name==\"Zoë\"", got)
}

func TestCompile_CustomOperatorOverridesPreset(t *testing.T) {
	def := &Definition{
		Name:      "override",
		Preset:    "extended",
		Operators: []rsql.ComparisonOperator{{Name: "like", Literal: "=~"}},
		Expression: []Step{
			{Compare: &Compare{Selector: "name", Operator: "like", Value: "x"}},
			{Compare: &Compare{Selector: "age", Operator: "between", Value: []any{1, 2}}},
		},
	}

	got, err := Render(def)
	require.NoError(t, err)
	assert.Equal(t, `name=~"x";age=bt=(1,2)`, got)
}

func TestCompile_InvalidConfiguration(t *testing.T) {
	_, err := Compile(&Definition{Name: "bad", Preset: "jpa"})
	assert.Equal(t, ErrCodeInvalidDefinition, Code(err))

	_, err = Compile(nil)
	assert.Equal(t, ErrCodeInvalidDefinition, Code(err))
}

func TestValidate_Valid(t *testing.T) {
	def := &Definition{
		Name: "ok",
		Expression: []Step{
			{Compare: &Compare{Selector: "d", Operator: "greaterThan", Date: "2024-01-01T00:00:00Z"}},
			{Merge: [][]Step{{{Logic: "and"}}}, MergeOperator: "or"},
		},
	}
	assert.NoError(t, Validate(def))
}

func TestValidate_Problems(t *testing.T) {
	testCases := []struct {
		name string
		def  *Definition
		path string
	}{
		{"nil", nil, "definition is nil"},
		{"no name", &Definition{Expression: []Step{{Logic: "and"}}}, "name: E204"},
		{"no steps", &Definition{Name: "x"}, "expression: E204"},
		{"bad normalize", &Definition{Name: "x", Normalize: "NFX", Expression: []Step{{Logic: "and"}}}, "normalize: E204"},
		{"bad preset", &Definition{Name: "x", Preset: "jpa", Expression: []Step{{Logic: "and"}}}, "preset: E204"},
		{"bad logic", &Definition{Name: "x", Expression: []Step{{Logic: "xor"}}}, "expression[0].logic"},
		{"operator without literal", &Definition{
			Name:       "x",
			Operators:  []rsql.ComparisonOperator{{Name: "like"}},
			Expression: []Step{{Logic: "and"}},
		}, "operators[0]"},
		{"value and date", &Definition{Name: "x", Expression: []Step{
			{Compare: &Compare{Selector: "a", Operator: "equal", Value: 1, Date: "2024-01-01T00:00:00Z"}},
		}}, "mutually exclusive"},
		{"missing operator", &Definition{Name: "x", Expression: []Step{
			{Compare: &Compare{Selector: "a"}},
		}}, "expression[0].compare.operator"},
		{"bad merge operator", &Definition{Name: "x", Expression: []Step{
			{Merge: [][]Step{}, MergeOperator: "xor"},
		}}, "expression[0].merge_operator"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.def)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.path)
		})
	}
}

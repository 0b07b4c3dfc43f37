package cli

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rsqlb/rsql"
)

func TestOperators_ExtendedGolden(t *testing.T) {
	stdout, _, err := executeCommand(t, "operators", "--preset", "extended")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "operators_extended", []byte(stdout))
}

func TestOperators_JSONWithCustom(t *testing.T) {
	stdout, _, err := executeCommand(t, "--format", "json", "operators",
		"--operator", "contains==contains=",
		"--operator", "all==all=:array",
		"--operator", "equal==eq=",
	)
	require.NoError(t, err)

	var resp struct {
		Status string                    `json:"status"`
		Data   []rsql.ComparisonOperator `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 10)

	byName := make(map[string]rsql.ComparisonOperator, len(resp.Data))
	for _, op := range resp.Data {
		byName[op.Name] = op
	}
	assert.Equal(t, rsql.ComparisonOperator{Name: "contains", Literal: "=contains="}, byName["contains"])
	assert.Equal(t, rsql.ComparisonOperator{Name: "all", Literal: "=all=", Array: true}, byName["all"])
	assert.Equal(t, "=eq=", byName["equal"].Literal)
	assert.Equal(t, "all", resp.Data[0].Name)
}

func TestOperators_InvalidFlags(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{"unknown preset", []string{"operators", "--preset", "jpa"}},
		{"missing literal", []string{"operators", "--operator", "contains"}},
		{"empty literal", []string{"operators", "--operator", "contains=:array"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stdout, _, err := executeCommand(t, tc.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, stdout, "Error [E002]")
		})
	}
}

func TestParseOperatorFlag(t *testing.T) {
	testCases := []struct {
		in   string
		want rsql.ComparisonOperator
	}{
		{"contains==contains=", rsql.ComparisonOperator{Name: "contains", Literal: "=contains="}},
		{"all==all=:array", rsql.ComparisonOperator{Name: "all", Literal: "=all=", Array: true}},
		{"re=~", rsql.ComparisonOperator{Name: "re", Literal: "~"}},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseOperatorFlag(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := ParseOperatorFlag("=x=")
	assert.Error(t, err)
}

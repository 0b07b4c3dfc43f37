package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteral_Text(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want string
	}{
		{"string", []string{`"a,b"`}, `"a\,b"`},
		{"reserved", []string{`"f(x);y"`}, `"f\(x\)\;y"`},
		{"integer", []string{"42"}, "42"},
		{"big integer", []string{"123456789012345678901234567890"}, "123456789012345678901234567890"},
		{"float", []string{"8.5"}, "8.5"},
		{"bool", []string{"false"}, "false"},
		{"null", []string{"null"}, "null"},
		{"array", []string{`["a", "b"]`}, `"a","b"`},
		{"date", []string{"--date", `"2024-01-15T09:30:00.250+01:00"`}, "2024-01-15T08:30:00.250Z"},
		{"date array", []string{"--date", `["2024-01-01T00:00:00Z", null]`}, "2024-01-01T00:00:00.000Z,null"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stdout, _, err := executeCommand(t, append([]string{"literal"}, tc.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tc.want+"\n", stdout)
		})
	}
}

func TestLiteral_JSON(t *testing.T) {
	stdout, _, err := executeCommand(t, "--format", "json", "literal", `"x"`)
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   LiteralResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, LiteralResult{Input: `"x"`, Literal: `"x"`}, resp.Data)
}

func TestLiteral_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		wantCode string
		wantExit int
	}{
		{"invalid json", []string{"{nope"}, "E004", ExitCommandError},
		{"trailing data", []string{"1 2"}, "E004", ExitCommandError},
		{"bad date", []string{"--date", `"yesterday"`}, "E004", ExitCommandError},
		{"date on number", []string{"--date", "1"}, "E004", ExitCommandError},
		{"object", []string{`{"a": 1}`}, "UNSUPPORTED_VALUE_TYPE", ExitFailure},
		{"nested array", []string{"[[1]]"}, "UNSUPPORTED_VALUE_TYPE", ExitFailure},
		{"mixed array", []string{`[1, "a"]`}, "UNSUPPORTED_VALUE_TYPE", ExitFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stdout, _, err := executeCommand(t, append([]string{"literal"}, tc.args...)...)
			require.Error(t, err)
			assert.Equal(t, tc.wantExit, GetExitCode(err))
			assert.Contains(t, stdout, "Error ["+tc.wantCode+"]")
		})
	}
}

package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scenariosDir = filepath.Join("..", "harness", "testdata", "scenarios")

const inlineScenario = `
name: inline
description: Inline definitions only
cases:
  - definition:
      name: adults
      expression:
        - compare: {selector: age, operator: greaterThanOrEqual, value: 18}
    assertions:
      - type: equals
        value: age=ge=18
`

func TestTest_FilteredPass(t *testing.T) {
	stdout, _, err := executeCommand(t, "test", scenariosDir, "--filter", "cat*")
	require.NoError(t, err)

	assert.Contains(t, stdout, "✓ catalog")
	assert.NotContains(t, stdout, "regressions")
	assert.Contains(t, stdout, "Test Summary: 1 passed, 0 failed, 1 total")
	assert.Contains(t, stdout, "✓ All scenarios passed")
}

func TestTest_FailuresExitOne(t *testing.T) {
	stdout, _, err := executeCommand(t, "test", scenariosDir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, stdout, "✓ catalog")
	assert.Contains(t, stdout, "✗ regressions")
	assert.Contains(t, stdout, "unexpected error")
	assert.Contains(t, stdout, "Test Summary: 1 passed, 1 failed, 2 total")
}

func TestTest_JSON(t *testing.T) {
	stdout, _, err := executeCommand(t, "--format", "json", "test", filepath.Join(scenariosDir, "regressions.yaml"))
	require.Error(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeTestFailed, resp.Error.Code)
	assert.Equal(t, 1, resp.Data.Failed)
	require.Len(t, resp.Data.Scenarios, 1)
	assert.Equal(t, "regressions", resp.Data.Scenarios[0].Name)
	assert.Len(t, resp.Data.Scenarios[0].Cases, 3)
}

func TestTest_GoldenUpdateAndCompare(t *testing.T) {
	dir := t.TempDir()
	scenarioFile := filepath.Join(dir, "inline.yaml")
	require.NoError(t, os.WriteFile(scenarioFile, []byte(inlineScenario), 0o644))

	stdout, _, err := executeCommand(t, "test", "--update", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ inline (golden updated)")

	golden, err := os.ReadFile(filepath.Join(dir, "golden", "inline.golden"))
	require.NoError(t, err)
	assert.Equal(t, "adults\tage=ge=18\n", string(golden))

	// The golden directory itself is not scanned for scenarios.
	stdout, _, err = executeCommand(t, "test", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 total")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "golden", "inline.golden"), []byte("adults\tage=ge=21\n"), 0o644))
	stdout, _, err = executeCommand(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, stdout, "do not match golden file")
}

func TestTest_NoScenarios(t *testing.T) {
	stdout, _, err := executeCommand(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, stdout, "No scenarios found.")
}

func TestTest_CommandErrors(t *testing.T) {
	_, _, err := executeCommand(t, "test", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, _, err = executeCommand(t, "test", scenariosDir, "--filter", "[")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTest_LoadFailureReported(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("name: bad\ncases: []\n"), 0o644))

	stdout, _, err := executeCommand(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "✗ bad.yaml")
	assert.Contains(t, stdout, "failed to load scenario")
}

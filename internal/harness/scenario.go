package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/rsqlb/internal/querydef"
)

// Scenario is a named list of cases checked together.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario guards.
	Description string `yaml:"description"`

	// Cases are checked in order.
	Cases []Case `yaml:"cases"`
}

// Case renders one definition and checks the result.
// Exactly one of File or Definition is set.
type Case struct {
	// Name labels the case in results. Defaults to the definition name,
	// or the file name when the file cannot be loaded.
	Name string `yaml:"name,omitempty"`

	// File is a definition file. Relative paths are resolved against the
	// scenario file's directory by LoadScenario.
	File string `yaml:"file,omitempty"`

	// Definition is an inline definition.
	Definition *querydef.Definition `yaml:"definition,omitempty"`

	// Assertions validate the rendered query or the error.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion checks a rendered query or rendering error.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Value is the expected text (equals, contains, not_contains) or the
	// expected error code (error).
	Value string `yaml:"value,omitempty"`

	// Max is the length limit for max_length.
	Max int `yaml:"max,omitempty"`
}

// Assertion type constants.
const (
	AssertEquals      = "equals"
	AssertContains    = "contains"
	AssertNotContains = "not_contains"
	AssertMaxLength   = "max_length"
	AssertError       = "error"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// Relative case files are resolved against the scenario's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	base := filepath.Dir(path)
	for i, c := range scenario.Cases {
		if c.File != "" && !filepath.IsAbs(c.File) {
			scenario.Cases[i].File = filepath.Join(base, c.File)
		}
	}

	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return scenario, nil
}

// ParseScenario decodes scenario YAML without resolving or validating it.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
// Case files must exist; their content is checked when the case runs so a
// broken definition can be the subject of an error assertion.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	for i, c := range s.Cases {
		switch {
		case c.File == "" && c.Definition == nil:
			return fmt.Errorf("cases[%d]: one of file or definition is required", i)
		case c.File != "" && c.Definition != nil:
			return fmt.Errorf("cases[%d]: file and definition are mutually exclusive", i)
		}
		if c.File != "" {
			if _, err := os.Stat(c.File); os.IsNotExist(err) {
				return fmt.Errorf("cases[%d]: definition file not found: %s", i, c.File)
			}
		}
		if len(c.Assertions) == 0 {
			return fmt.Errorf("cases[%d]: assertions list is required and must be non-empty", i)
		}
		for j, a := range c.Assertions {
			if err := validateAssertion(fmt.Sprintf("cases[%d].assertions[%d]", i, j), a); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(path string, a Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("%s: type is required", path)
	case AssertEquals:
		// An empty value asserts an empty query.
		return nil
	case AssertContains, AssertNotContains, AssertError:
		if a.Value == "" {
			return fmt.Errorf("%s: value is required for %s", path, a.Type)
		}
	case AssertMaxLength:
		if a.Max <= 0 {
			return fmt.Errorf("%s: max must be positive for max_length", path)
		}
	default:
		return fmt.Errorf("%s: unknown assertion type %q", path, a.Type)
	}
	return nil
}

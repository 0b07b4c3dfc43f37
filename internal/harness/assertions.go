package harness

import (
	"fmt"
	"strings"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertion failed: %s: expected %s, got %s", e.Type, e.Expected, e.Actual)
}

// EvaluateAssertions checks a case result against its assertions and
// returns one message per failure.
//
// A rendering error fails every query assertion. When the case has no
// error assertion, the error itself is reported as a failure too.
func EvaluateAssertions(cr CaseResult, assertions []Assertion) []string {
	var errs []string
	expectsError := false

	for _, a := range assertions {
		if a.Type == AssertError {
			expectsError = true
		}
		if err := evaluate(cr, a); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if cr.Error != "" && !expectsError {
		errs = append([]string{fmt.Sprintf("unexpected error: %s", cr.Error)}, errs...)
	}
	return errs
}

func evaluate(cr CaseResult, a Assertion) error {
	if a.Type == AssertError {
		return assertError(cr, a)
	}

	failed := cr.Error != ""
	switch a.Type {
	case AssertEquals:
		if failed || cr.Query != a.Value {
			return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("%q", a.Value), Actual: actual(cr)}
		}
	case AssertContains:
		if failed || !strings.Contains(cr.Query, a.Value) {
			return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("query containing %q", a.Value), Actual: actual(cr)}
		}
	case AssertNotContains:
		if failed || strings.Contains(cr.Query, a.Value) {
			return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("query without %q", a.Value), Actual: actual(cr)}
		}
	case AssertMaxLength:
		if failed {
			return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("at most %d bytes", a.Max), Actual: actual(cr)}
		}
		if len(cr.Query) > a.Max {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("at most %d bytes", a.Max),
				Actual:   fmt.Sprintf("%d bytes", len(cr.Query)),
			}
		}
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}

func assertError(cr CaseResult, a Assertion) error {
	if cr.Error == "" {
		return &AssertionError{Type: a.Type, Expected: "error " + a.Value, Actual: fmt.Sprintf("query %q", cr.Query)}
	}
	if cr.ErrorCode != a.Value {
		return &AssertionError{Type: a.Type, Expected: "error " + a.Value, Actual: "error " + cr.ErrorCode}
	}
	return nil
}

func actual(cr CaseResult) string {
	if cr.Error != "" {
		return "error " + cr.ErrorCode
	}
	return fmt.Sprintf("%q", cr.Query)
}

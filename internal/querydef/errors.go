package querydef

import (
	"errors"
	"fmt"
)

// Error code constants, shared with the CLI's JSON error output.
const (
	ErrCodeReadFailed        = "E201" // Definition file could not be read
	ErrCodeUnsupportedFormat = "E202" // Unknown file extension
	ErrCodeParseFailed       = "E203" // YAML/CUE syntax or decode error
	ErrCodeInvalidDefinition = "E204" // Structural validation failed
	ErrCodeCompileFailed     = "E205" // Builder rejected a step
)

// Error is a definition error with the step path it applies to.
type Error struct {
	Code    string
	Path    string // e.g. "expression[1].group[0].compare"; empty for file-level errors
	Message string
	Err     error // underlying error (optional)
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, msg)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Code extracts the error code, or "" if err is not a *Error.
func Code(err error) string {
	var qe *Error
	if errors.As(err, &qe) {
		return qe.Code
	}
	return ""
}

package rsql

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes builder and serializer errors.
type ErrorCode string

const (
	// ErrCodeUnsupportedValueType indicates a value outside the supported
	// set (string, number, boolean, date, null, homogeneous array).
	ErrCodeUnsupportedValueType ErrorCode = "UNSUPPORTED_VALUE_TYPE"

	// ErrCodeUnknownOperator indicates a comparison operator name found in
	// neither the custom nor the built-in table.
	ErrCodeUnknownOperator ErrorCode = "UNKNOWN_OPERATOR"

	// ErrCodeArrayOperatorMismatch indicates an array value given to a
	// scalar operator, or a scalar value given to an array operator.
	ErrCodeArrayOperatorMismatch ErrorCode = "ARRAY_OPERATOR_MISMATCH"
)

// Error is returned by the serializer and recorded by the Builder.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Selector is the field of the failing comparison, if any.
	Selector string

	// Operator is the comparison operator name, if any.
	Operator string
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Selector != "" && e.Operator != "":
		return fmt.Sprintf("%s: %s (selector=%s, operator=%s)", e.Code, e.Message, e.Selector, e.Operator)
	case e.Operator != "":
		return fmt.Sprintf("%s: %s (operator=%s)", e.Code, e.Message, e.Operator)
	case e.Selector != "":
		return fmt.Sprintf("%s: %s (selector=%s)", e.Code, e.Message, e.Selector)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func hasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// IsUnsupportedValueType reports whether err is an unsupported value error.
func IsUnsupportedValueType(err error) bool {
	return hasCode(err, ErrCodeUnsupportedValueType)
}

// IsUnknownOperator reports whether err is an unknown operator error.
func IsUnknownOperator(err error) bool {
	return hasCode(err, ErrCodeUnknownOperator)
}

// IsArrayOperatorMismatch reports whether err is an array/scalar mismatch.
func IsArrayOperatorMismatch(err error) bool {
	return hasCode(err, ErrCodeArrayOperatorMismatch)
}

func unsupportedValue(format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeUnsupportedValueType,
		Message: fmt.Sprintf(format, args...),
	}
}

func newUnknownOperatorError(selector, operator string) *Error {
	return &Error{
		Code:     ErrCodeUnknownOperator,
		Message:  "comparison operator is not defined",
		Selector: selector,
		Operator: operator,
	}
}

func newArrayMismatchError(selector string, op ComparisonOperator, gotArray bool) *Error {
	msg := "array operator requires an array value"
	if gotArray {
		msg = "scalar operator cannot take an array value"
	}
	return &Error{
		Code:     ErrCodeArrayOperatorMismatch,
		Message:  msg,
		Selector: selector,
		Operator: op.Name,
	}
}

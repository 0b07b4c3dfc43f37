package rsql

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// DateLayout is the UTC ISO-8601 layout used for Date literals.
const DateLayout = "2006-01-02T15:04:05.000Z"

// reservedEscaper backslash-escapes the characters RSQL gives meaning to.
var reservedEscaper = strings.NewReplacer(
	"(", `\(`,
	")", `\)`,
	";", `\;`,
	",", `\,`,
)

// Serialize renders a Value as an RSQL literal.
// Arrays render as their comma-joined elements; the caller adds parentheses.
//
// Serialize is a pure function with no side effects.
func Serialize(v Value) (string, error) {
	return serializer{}.serialize(v)
}

// Literal converts a native Go value with ValueOf and serializes it.
func Literal(v any) (string, error) {
	val, err := ValueOf(v)
	if err != nil {
		return "", err
	}
	return Serialize(val)
}

// EscapeString quotes s and escapes '(', ')', ';' and ','.
// No other character is altered.
func EscapeString(s string) string {
	return `"` + reservedEscaper.Replace(s) + `"`
}

type serializer struct {
	// form, when set, normalizes string values before escaping.
	form *norm.Form
}

func (s serializer) serialize(v Value) (string, error) {
	switch val := v.(type) {
	case nil, Null:
		return "null", nil
	case String:
		str := string(val)
		if s.form != nil {
			str = s.form.String(str)
		}
		return EscapeString(str), nil
	case Number:
		return val.literal()
	case Bool:
		if val {
			return "true", nil
		}
		return "false", nil
	case Date:
		return time.Time(val).UTC().Format(DateLayout), nil
	case Array:
		return s.serializeArray(val)
	default:
		return "", unsupportedValue("unsupported value type %T", v)
	}
}

func (s serializer) serializeArray(arr Array) (string, error) {
	if err := checkArray(arr); err != nil {
		return "", err
	}
	parts := make([]string, len(arr))
	for i, elem := range arr {
		lit, err := s.serialize(elem)
		if err != nil {
			return "", err
		}
		parts[i] = lit
	}
	return strings.Join(parts, ","), nil
}

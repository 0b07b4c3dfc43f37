package rsql

import (
	"encoding/json"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/constraints"
)

// Value is a sealed interface representing an RSQL literal.
// Only String, Number, Bool, Date, Null and Array implement it.
type Value interface {
	rsqlValue() // Sealed - only these types implement it
}

// String is a quoted, escaped RSQL string literal.
type String string

func (String) rsqlValue() {}

// Bool renders as the unquoted literal true or false.
type Bool bool

func (Bool) rsqlValue() {}

// Null renders as the unquoted literal null.
type Null struct{}

func (Null) rsqlValue() {}

// Date renders as an unquoted UTC ISO-8601 timestamp with milliseconds.
type Date time.Time

func (Date) rsqlValue() {}

// Array holds the elements of an array-operator comparison (=in=, =out=).
// Elements must be scalars of one kind; Null may appear alongside any kind.
type Array []Value

func (Array) rsqlValue() {}

type numberKind uint8

const (
	numInt numberKind = iota
	numUint
	numFloat
	numDecimal // integer wider than 64 bits, kept as decimal text
)

// Number is a decimal RSQL literal. The zero value is 0.
type Number struct {
	kind numberKind
	i    int64
	u    uint64
	f    float64
	f32  bool // f holds a widened float32
	text string
}

func (Number) rsqlValue() {}

// Int creates a Number from a signed integer.
func Int(n int64) Number { return Number{kind: numInt, i: n} }

// Uint creates a Number from an unsigned integer.
func Uint(n uint64) Number { return Number{kind: numUint, u: n} }

// Float creates a Number from a float. NaN and infinities are accepted here
// but fail when serialized.
func Float(f float64) Number {
	if f == 0 {
		f = 0 // drop negative zero
	}
	return Number{kind: numFloat, f: f}
}

// Float32 creates a Number from a float32, rendered with the shortest
// decimal that round-trips at 32-bit precision.
func Float32(f float32) Number {
	n := Float(float64(f))
	n.f32 = true
	return n
}

// NumberOf creates a Number from any integer or float type.
func NumberOf[T constraints.Integer | constraints.Float](n T) Number {
	rv := reflect.ValueOf(n)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(rv.Uint())
	case reflect.Float32:
		return Float32(float32(rv.Float()))
	default:
		return Float(rv.Float())
	}
}

// literal returns the decimal form: integral values carry no fractional
// part and floats keep their shortest exact representation.
func (n Number) literal() (string, error) {
	switch n.kind {
	case numUint:
		return strconv.FormatUint(n.u, 10), nil
	case numFloat:
		if math.IsNaN(n.f) || math.IsInf(n.f, 0) {
			return "", unsupportedValue("number %v has no RSQL literal", n.f)
		}
		return strconv.FormatFloat(n.f, 'f', -1, n.bitSize()), nil
	case numDecimal:
		return n.text, nil
	default:
		return strconv.FormatInt(n.i, 10), nil
	}
}

func (n Number) bitSize() int {
	if n.f32 {
		return 32
	}
	return 64
}

// String returns the decimal literal, or the raw float for NaN/Inf.
func (n Number) String() string {
	s, err := n.literal()
	if err != nil {
		return strconv.FormatFloat(n.f, 'g', -1, 64)
	}
	return s
}

// ValueOf converts a native Go value into a Value.
//
// Supported: nil, Value, string, bool, all integer and float kinds (named
// types included), json.Number, *big.Int, time.Time, uuid.UUID, pointers to
// these (nil pointer is Null) and slices or arrays of scalars.
// Anything else fails with ErrCodeUnsupportedValueType.
func ValueOf(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Array:
		if err := checkArray(val); err != nil {
			return nil, err
		}
		return val, nil
	case Value:
		return val, nil
	case string:
		return String(val), nil
	case bool:
		return Bool(val), nil
	case int:
		return Int(int64(val)), nil
	case int64:
		return Int(val), nil
	case uint64:
		return Uint(val), nil
	case float64:
		return Float(val), nil
	case json.Number:
		return numberFromJSON(val)
	case *big.Int:
		if val == nil {
			return Null{}, nil
		}
		if val.IsInt64() {
			return Int(val.Int64()), nil
		}
		return Number{kind: numDecimal, text: val.String()}, nil
	case time.Time:
		return Date(val), nil
	case uuid.UUID:
		return String(val.String()), nil
	case []byte:
		return nil, unsupportedValue("unsupported value type %T", v)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return Null{}, nil
		}
		return ValueOf(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		return arrayOf(rv)
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(rv.Uint()), nil
	case reflect.Float32:
		return Float32(float32(rv.Float())), nil
	case reflect.Float64:
		return Float(rv.Float()), nil
	}
	return nil, unsupportedValue("unsupported value type %T", v)
}

func numberFromJSON(n json.Number) (Value, error) {
	if i, err := n.Int64(); err == nil {
		return Int(i), nil
	}
	if bi, ok := new(big.Int).SetString(string(n), 10); ok {
		return Number{kind: numDecimal, text: bi.String()}, nil
	}
	f, err := n.Float64()
	if err != nil {
		return nil, unsupportedValue("invalid number %q", string(n))
	}
	return Float(f), nil
}

func arrayOf(rv reflect.Value) (Value, error) {
	arr := make(Array, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem, err := ValueOf(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		arr[i] = elem
	}
	if err := checkArray(arr); err != nil {
		return nil, err
	}
	return arr, nil
}

// checkArray enforces flat, homogeneous arrays.
func checkArray(arr Array) error {
	kind := ""
	for i, elem := range arr {
		k := kindOf(elem)
		switch k {
		case "array":
			return unsupportedValue("nested array at index %d", i)
		case "null":
			continue
		}
		if kind == "" {
			kind = k
			continue
		}
		if k != kind {
			return unsupportedValue("mixed array: %s at index %d, expected %s", k, i, kind)
		}
	}
	return nil
}

func kindOf(v Value) string {
	switch v.(type) {
	case nil, Null:
		return "null"
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "bool"
	case Date:
		return "date"
	case Array:
		return "array"
	default:
		return "unknown"
	}
}

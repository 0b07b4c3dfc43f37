package rsql

import (
	"encoding/json"
	"math/big"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type status string

type level int

type ratio float32

func TestValueOf_Supported(t *testing.T) {
	n := 42
	var nilInt *int
	ts := time.Date(2023, time.July, 1, 8, 30, 0, 0, time.UTC)
	id := uuid.MustParse("0190a5b4-7c3e-7a1b-9f00-1234567890ab")
	huge, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
	require.True(t, ok)

	testCases := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, "null"},
		{"string", "John", `"John"`},
		{"named string", status("ACTIVE"), `"ACTIVE"`},
		{"bool", true, "true"},
		{"int", 30, "30"},
		{"int8", int8(-8), "-8"},
		{"int64", int64(1 << 40), "1099511627776"},
		{"uint16", uint16(65535), "65535"},
		{"named int", level(3), "3"},
		{"float32", float32(2.5), "2.5"},
		{"float32 inexact", float32(0.1), "0.1"},
		{"named float32", ratio(0.3), "0.3"},
		{"float64", 3.14159, "3.14159"},
		{"pointer", &n, "42"},
		{"nil pointer", nilInt, "null"},
		{"time", ts, "2023-07-01T08:30:00.000Z"},
		{"uuid", id, `"0190a5b4-7c3e-7a1b-9f00-1234567890ab"`},
		{"json int", json.Number("12"), "12"},
		{"json wide int", json.Number("12345678901234567890"), "12345678901234567890"},
		{"json float", json.Number("1.25"), "1.25"},
		{"big int", big.NewInt(99), "99"},
		{"huge big int", huge, "123456789012345678901234567890"},
		{"value passthrough", Bool(false), "false"},
		{"string slice", []string{"a", "b"}, `"a","b"`},
		{"int array", [3]int{1, 2, 3}, "1,2,3"},
		{"any slice with nil", []any{nil, 1}, "null,1"},
		{"empty slice", []int{}, ""},
		{"time slice", []time.Time{ts}, "2023-07-01T08:30:00.000Z"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := ValueOf(tc.input)
			require.NoError(t, err)

			got, err := Serialize(v)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestValueOf_Unsupported(t *testing.T) {
	testCases := []struct {
		name  string
		input any
	}{
		{"map", map[string]any{"a": 1}},
		{"struct", struct{ A int }{1}},
		{"bytes", []byte("raw")},
		{"channel", make(chan int)},
		{"func", func() {}},
		{"nested slice", [][]int{{1}, {2}}},
		{"mixed slice", []any{1, "a"}},
		{"slice of structs", []struct{}{{}}},
		{"nested Array value", Array{Array{}}},
		{"invalid json number", json.Number("abc")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValueOf(tc.input)
			require.Error(t, err)
			assert.True(t, IsUnsupportedValueType(err), "got %v", err)
		})
	}
}

func TestValueOf_SliceIsArray(t *testing.T) {
	v, err := ValueOf([]int{1, 2})
	require.NoError(t, err)

	arr, ok := v.(Array)
	require.True(t, ok)
	assert.Equal(t, Array{Int(1), Int(2)}, arr)
}

func TestNumberOf(t *testing.T) {
	assert.Equal(t, "-5", NumberOf(int16(-5)).String())
	assert.Equal(t, "7", NumberOf(uint8(7)).String())
	assert.Equal(t, "1.5", NumberOf(float32(1.5)).String())
	assert.Equal(t, "0.1", NumberOf(float32(0.1)).String())
	assert.Equal(t, "0.1", Float32(0.1).String())
	assert.Equal(t, "0.10000000149011612", Float(float64(float32(0.1))).String(), "widened float64 keeps its own digits")
	assert.Equal(t, "30", NumberOf(30.0).String())
	assert.Equal(t, "0.3", NumberOf(0.3).String())
	assert.Equal(t, Int(9), NumberOf(level(9)))
}

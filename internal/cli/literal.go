package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/rsqlb/rsql"
)

// LiteralOptions holds flags for the literal command.
type LiteralOptions struct {
	*RootOptions
	Date bool
}

// LiteralResult is the JSON payload of the literal command.
type LiteralResult struct {
	Input   string `json:"input"`
	Literal string `json:"literal"`
}

// NewLiteralCommand creates the literal command.
func NewLiteralCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LiteralOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "literal <json-value>",
		Short: "Serialize a JSON value as an RSQL literal",
		Long: `Serialize one JSON value the way the builder writes comparison values.

Strings are quoted and escaped, numbers keep their JSON spelling where
possible, null renders as null and arrays render as comma-joined elements.
With --date, a JSON string (or array of strings) is read as an RFC 3339
timestamp and rendered in UTC with millisecond precision.

Example:
  rsqlb literal '"a,b"'
  rsqlb literal '[1, 2, 3]'
  rsqlb literal --date '"2024-01-15T09:30:00+01:00"'`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLiteral(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Date, "date", false, "interpret JSON strings as RFC 3339 timestamps")

	return cmd
}

func runLiteral(opts *LiteralOptions, input string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	value, err := decodeJSONValue(input)
	if err != nil {
		_ = formatter.Error(ErrCodeInvalidInput, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid JSON value", err)
	}

	if opts.Date {
		value, err = parseDates(value)
		if err != nil {
			_ = formatter.Error(ErrCodeInvalidInput, err.Error(), nil)
			return WrapExitError(ExitCommandError, "invalid --date value", err)
		}
	}

	literal, err := rsql.Literal(value)
	if err != nil {
		_ = formatter.Error(errorCode(err), err.Error(), nil)
		return WrapExitError(ExitFailure, "value cannot be serialized", err)
	}
	opts.logger().Debug("serialized literal", "input", input, "literal", literal)

	if formatter.IsJSON() {
		return formatter.Success(LiteralResult{Input: input, Literal: literal})
	}
	return formatter.Success(literal)
}

// decodeJSONValue decodes exactly one JSON value, keeping numbers as
// json.Number so integers beyond float64 precision survive.
func decodeJSONValue(input string) (any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(input)))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decoding %q: %w", input, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("decoding %q: unexpected data after the value", input)
	}
	return v, nil
}

func parseDates(v any) (any, error) {
	switch val := v.(type) {
	case string:
		t, err := time.Parse(time.RFC3339Nano, val)
		if err != nil {
			return nil, fmt.Errorf("invalid RFC 3339 timestamp %q: %w", val, err)
		}
		return t, nil
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			parsed, err := parseDates(elem)
			if err != nil {
				return nil, err
			}
			out[i] = parsed
		}
		return out, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("--date expects a string or an array of strings, got %T", v)
	}
}

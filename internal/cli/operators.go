package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/rsqlb/rsql"
)

// OperatorsOptions holds flags for the operators command.
type OperatorsOptions struct {
	*RootOptions
	Preset    string
	Operators []string // name=literal[:array]
}

// NewOperatorsCommand creates the operators command.
func NewOperatorsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OperatorsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "operators",
		Short: "List the effective comparison operator table",
		Long: `List the comparison operators a builder would accept, sorted by name.

Custom operators given with --operator win over the preset, and the preset
wins over the built-in operators of the same name.

Example:
  rsqlb operators
  rsqlb operators --preset extended
  rsqlb operators --operator contains==contains= --operator all==all=:array`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperators(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Preset, "preset", rsql.PresetBuiltin, "operator preset (builtin|extended)")
	cmd.Flags().StringArrayVar(&opts.Operators, "operator", nil, "custom operator as name=literal[:array]; repeatable")

	return cmd
}

func runOperators(opts *OperatorsOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	custom, err := rsql.PresetOperators(opts.Preset)
	if err != nil {
		_ = formatter.Error(ErrCodeInvalidArg, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid --preset", err)
	}
	for _, spec := range opts.Operators {
		op, err := ParseOperatorFlag(spec)
		if err != nil {
			_ = formatter.Error(ErrCodeInvalidArg, err.Error(), nil)
			return WrapExitError(ExitCommandError, "invalid --operator", err)
		}
		custom = append(custom, op)
	}

	ops := rsql.NewOperatorTable(custom...).Operators()
	opts.logger().Debug("operator table", "preset", opts.Preset, "custom", len(opts.Operators), "total", len(ops))

	if formatter.IsJSON() {
		return formatter.Success(ops)
	}
	writeOperatorTable(formatter, ops)
	return nil
}

// ParseOperatorFlag parses "name=literal" with an optional ":array"
// suffix. The name ends at the first '='; the literal may contain more.
func ParseOperatorFlag(s string) (rsql.ComparisonOperator, error) {
	name, literal, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return rsql.ComparisonOperator{}, fmt.Errorf("invalid operator %q: want name=literal[:array]", s)
	}

	op := rsql.ComparisonOperator{Name: name, Literal: literal}
	if trimmed, found := strings.CutSuffix(literal, ":array"); found {
		op.Literal = trimmed
		op.Array = true
	}
	if op.Literal == "" {
		return rsql.ComparisonOperator{}, fmt.Errorf("invalid operator %q: literal is empty", s)
	}
	return op, nil
}

func writeOperatorTable(formatter *OutputFormatter, ops []rsql.ComparisonOperator) {
	nameWidth, literalWidth := len("NAME"), len("LITERAL")
	for _, op := range ops {
		nameWidth = max(nameWidth, len(op.Name))
		literalWidth = max(literalWidth, len(op.Literal))
	}

	fmt.Fprintf(formatter.Writer, "%-*s  %-*s  %s\n", nameWidth, "NAME", literalWidth, "LITERAL", "ARRAY")
	for _, op := range ops {
		array := "no"
		if op.Array {
			array = "yes"
		}
		fmt.Fprintf(formatter.Writer, "%-*s  %-*s  %s\n", nameWidth, op.Name, literalWidth, op.Literal, array)
	}
}

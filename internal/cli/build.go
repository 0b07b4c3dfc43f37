package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/rsqlb/internal/querydef"
)

// BuildOptions holds flags for the build command.
type BuildOptions struct {
	*RootOptions
	Output string // output file path
}

// QueryResult is one rendered definition.
type QueryResult struct {
	Name  string `json:"name"`
	File  string `json:"file"`
	Query string `json:"query"`
}

// BuildResult is the JSON payload of a successful build.
type BuildResult struct {
	Queries []QueryResult `json:"queries"`
	Output  string        `json:"output,omitempty"`
}

// BuildErrorDetails locates a build error.
type BuildErrorDetails struct {
	File string `json:"file"`
	Step string `json:"step,omitempty"`
}

// NewBuildCommand creates the build command.
func NewBuildCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BuildOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "build <definition-file>...",
		Short: "Render query definitions to RSQL strings",
		Long: `Load YAML (.yaml, .yml) or CUE (.cue) query definitions, compile them
with the RSQL builder and print one query per line, in argument order.

Every file is processed; if any fails, all errors are reported and nothing
is printed or written.

Example:
  rsqlb build queries/adults.yaml
  rsqlb build --format json queries/*.cue
  rsqlb build -o filters.txt queries/orders.yml`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write queries to this file instead of stdout")

	return cmd
}

func runBuild(opts *BuildOptions, files []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	logger := opts.logger()

	var (
		results  []QueryResult
		failures []CLIError
		exitCode = ExitSuccess
	)

	for _, file := range files {
		logger.Debug("loading definition", "file", file)

		result, err := buildFile(file)
		if err != nil {
			exitCode = max(exitCode, exitCodeFor(err))
			failures = append(failures, buildErrors(file, err)...)
			continue
		}

		logger.Debug("compiled definition", "file", file, "name", result.Name, "query", result.Query)
		results = append(results, result)
	}

	if len(failures) > 0 {
		if err := formatter.Errors(failures); err != nil {
			return err
		}
		return NewExitError(exitCode, fmt.Sprintf("build failed with %d error(s)", len(failures)))
	}

	if opts.Output != "" {
		if err := writeQueries(opts.Output, results); err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
			return WrapExitError(ExitCommandError, "writing output file", err)
		}
		logger.Debug("wrote queries", "path", opts.Output, "count", len(results))
	}

	return outputBuildSuccess(formatter, BuildResult{Queries: results, Output: opts.Output})
}

func buildFile(file string) (QueryResult, error) {
	def, err := querydef.Load(file)
	if err != nil {
		return QueryResult{}, err
	}
	query, err := querydef.Render(def)
	if err != nil {
		return QueryResult{}, err
	}
	return QueryResult{Name: def.Name, File: file, Query: query}, nil
}

// buildErrors flattens joined validation errors so each is reported with
// its own code and step path.
func buildErrors(file string, err error) []CLIError {
	var errs []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	} else {
		errs = []error{err}
	}

	out := make([]CLIError, 0, len(errs))
	for _, e := range errs {
		details := BuildErrorDetails{File: file}
		var qe *querydef.Error
		if errors.As(e, &qe) {
			details.Step = qe.Path
		}
		out = append(out, CLIError{
			Code:    errorCode(e),
			Message: fmt.Sprintf("%s: %v", file, e),
			Details: details,
		})
	}
	return out
}

func writeQueries(path string, results []QueryResult) error {
	var sb strings.Builder
	for _, r := range results {
		sb.WriteString(r.Query)
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func outputBuildSuccess(formatter *OutputFormatter, result BuildResult) error {
	if formatter.IsJSON() {
		return formatter.Success(result)
	}

	if result.Output != "" {
		fmt.Fprintf(formatter.Writer, "✓ Wrote %d query(ies) to %s\n", len(result.Queries), result.Output)
		return nil
	}
	for _, r := range result.Queries {
		fmt.Fprintln(formatter.Writer, r.Query)
	}
	return nil
}

package cli

import (
	"io"
	"log/slog"
)

// newLogger writes text-format logs to w. Verbose mode enables debug
// records; otherwise only warnings and errors are emitted so stdout stays
// clean for piping.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

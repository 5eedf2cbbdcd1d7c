package logger

import (
	"io"
	"log/slog"
	"os"
)

// New initializes the application logger. Verbose mode lowers the level to
// debug; format selects between text and JSON handlers. A nil output
// defaults to stderr so log lines never mix with the step progress printed
// on stdout.
func New(output io.Writer, verbose bool, format string) *slog.Logger {
	if output == nil {
		output = os.Stderr
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(output, &slog.HandlerOptions{
			Level: level,
		})
	default:
		handler = slog.NewTextHandler(output, &slog.HandlerOptions{
			Level: level,
		})
	}

	return slog.New(handler)
}

// Package logger configures the process-wide slog logger.
package logger

import (
	"log/slog"
	"os"
)

// Init installs a text handler on stdout as the default logger.
// Debug mode lowers the level to capture per-call pipeline details.
func Init(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, opts)))
}

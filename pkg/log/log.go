// Package log configures the process-wide slog logger.
package log

import (
	"io"
	"log/slog"
	"os"
)

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Setup installs a text logger on stderr as the process default. Unknown
// level names fall back to info.
func Setup(logLevel string) {
	SetupWriter(os.Stderr, logLevel)
}

// SetupWriter is Setup with an explicit destination, for tests that assert
// on emitted records.
func SetupWriter(w io.Writer, logLevel string) {
	level, ok := levels[logLevel]
	if !ok {
		level = slog.LevelInfo
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})))
}

func WithModule(module string) *slog.Logger {
	return slog.With("module", module)
}

// Discard returns a logger that drops every record. Used in tests.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

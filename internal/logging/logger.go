package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLogLevel overrides the level chosen on the command line.
const EnvLogLevel = "MJMERGE_LOG_LEVEL"

// New creates a configured application logger.
// It writes to Stderr so that Stdout only carries command output (merged paths, reports).
// It standardizes common keys (e.g., "error" -> "err").
func New(level slog.Level) *slog.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Standardize 'error' key to 'err'
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Level picks the CLI log level: debug when asked for, warn otherwise so that
// conflicts stay visible. EnvLogLevel wins over both.
func Level(debug bool) slog.Level {
	if lvl, ok := ParseLevel(os.Getenv(EnvLogLevel)); ok {
		return lvl
	}
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(raw string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

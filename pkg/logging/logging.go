package logging

import (
	"log"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel converts a level name to a slog.Level.
// Accepts debug, info, warn, warning, and error (case-insensitive);
// anything else falls back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LevelFromEnv resolves the log level from the LOG_LEVEL environment
// variable, defaulting to info when unset.
func LevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv("LOG_LEVEL"))
}

// NewStructuredLogger creates a JSON logger writing to stderr with module
// and version attributes on every record. Source location is attached when
// the level is debug.
func NewStructuredLogger(name, version, level string) *slog.Logger {
	return newLogger(name, version, ParseLevel(level))
}

// SetDefaultStructuredLogger installs the structured logger as the slog
// default, with the level taken from LOG_LEVEL.
func SetDefaultStructuredLogger(name, version string) {
	slog.SetDefault(newLogger(name, version, LevelFromEnv()))
}

// SetDefaultStructuredLoggerWithLevel installs the structured logger as the
// slog default with an explicit level, ignoring LOG_LEVEL.
func SetDefaultStructuredLoggerWithLevel(name, version, level string) {
	slog.SetDefault(newLogger(name, version, ParseLevel(level)))
}

// NewLogLogger bridges a standard library *log.Logger onto the structured
// handler, for dependencies that only accept the legacy interface.
func NewLogLogger(level slog.Level, addSource bool) *log.Logger {
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
	})
	return slog.NewLogLogger(h, level)
}

func newLogger(name, version string, level slog.Level) *slog.Logger {
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	})
	return slog.New(h).With(
		slog.String("module", name),
		slog.String("version", version),
	)
}

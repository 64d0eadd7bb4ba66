package logging

import (
	"log/slog"
	"strings"
)

// LevelCritical extends the slog levels with the CRITICAL severity used by
// the log sinks and the database log table.
const LevelCritical = slog.Level(12)

// ParseLevel converts a level name to a slog.Level. Both the upper-case
// (DEBUG, WARNING, CRITICAL) and slog-style (debug, warn) spellings are
// accepted. Unknown values parse as INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	case "CRITICAL":
		return LevelCritical
	default:
		return slog.LevelInfo
	}
}

// LevelName names a slog.Level the way log records and the log table spell
// severities: DEBUG, INFO, WARNING, ERROR, CRITICAL.
func LevelName(level slog.Level) string {
	switch {
	case level >= LevelCritical:
		return "CRITICAL"
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARNING"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

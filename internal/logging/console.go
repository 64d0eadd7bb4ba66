package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// ANSI escape sequences for level coloring.
const (
	ansiReset    = "\x1b[0m"
	ansiDebug    = "\x1b[92m" // bright green
	ansiInfo     = "\x1b[34m" // blue
	ansiWarning  = "\x1b[93m" // bright yellow
	ansiError    = "\x1b[91m" // bright red
	ansiCritical = "\x1b[95m" // bright magenta
)

func levelColor(level slog.Level) string {
	switch {
	case level >= LevelCritical:
		return ansiCritical
	case level >= slog.LevelError:
		return ansiError
	case level >= slog.LevelWarn:
		return ansiWarning
	case level >= slog.LevelInfo:
		return ansiInfo
	default:
		return ansiDebug
	}
}

// ConsoleSink writes records as single formatted lines, wrapped in a
// level-dependent color when the output is an interactive terminal.
type ConsoleSink struct {
	mu    sync.Mutex
	out   io.Writer
	min   slog.Level
	color bool
}

// NewConsoleSink builds a console sink writing to stdout. Coloring is
// enabled only when stdout is a character device.
func NewConsoleSink(min slog.Level) *ConsoleSink {
	return &ConsoleSink{out: os.Stdout, min: min, color: isTerminal(os.Stdout)}
}

// newConsoleSinkWriter is the injectable variant used by tests.
func newConsoleSinkWriter(w io.Writer, min slog.Level, color bool) *ConsoleSink {
	return &ConsoleSink{out: w, min: min, color: color}
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// Emit implements Sink.
func (c *ConsoleSink) Emit(rec Record) {
	if rec.Level < c.min {
		return
	}
	line := formatRecord(rec)
	if c.color {
		line = levelColor(rec.Level) + line + ansiReset
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, line)
}

// formatRecord renders the shared console/file line format:
//
//	2006-01-02 15:04:05.000 [   LEVEL] logger:line - [COMPONENT] message
func formatRecord(rec Record) string {
	line := fmt.Sprintf("%s [%8s] %s:%d - ",
		rec.Time.Format("2006-01-02 15:04:05.000"),
		LevelName(rec.Level),
		rec.Logger,
		rec.Line,
	)
	if rec.Component != "" {
		line += "[" + rec.Component + "] "
	}
	line += rec.Message
	if rec.TraceID != "" {
		line += " rid=" + rec.TraceID
	}
	return line
}

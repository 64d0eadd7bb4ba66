// Package logging routes structured log records to console, rotating file
// and optional database sinks behind a standard slog front end.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lanternworks/api-template/internal/config"
)

// Logger is the explicitly constructed logging context handed to components
// at startup. It wraps slog and keeps hold of the sinks that need lifecycle
// attention (file close, database bind).
type Logger struct {
	*slog.Logger
	file *FileSink
	db   *DatabaseSink
}

// New builds a logger from configuration: a colored console sink at the
// configured level, a rotating file sink at INFO and above, and, when
// enabled, an inactive database sink waiting for a storage handle.
func New(cfg config.LoggingConfig) (*Logger, error) {
	level := ParseLevel(cfg.Level)

	console := NewConsoleSink(level)
	file, err := NewFileSink(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to set up file logging: %w", err)
	}

	sinks := []Sink{console, file}

	var db *DatabaseSink
	if cfg.DB.Enabled {
		// Self-diagnostics go straight to the local sinks; routing them
		// through the database sink would recurse.
		report := func(err error) {
			rec := Record{
				Time:      time.Now(),
				Level:     slog.LevelError,
				Logger:    "app",
				Message:   err.Error(),
				Component: "LOGDB",
			}
			console.Emit(rec)
			file.Emit(rec)
		}
		db, err = NewDatabaseSink(cfg.DB.Table, ParseLevel(cfg.DB.Level), report)
		if err != nil {
			file.Close()
			return nil, err
		}
		sinks = append(sinks, db)
	}

	handler := newFanout("app", level, sinks...)
	return &Logger{Logger: slog.New(handler), file: file, db: db}, nil
}

// NewDiscard returns a logger that drops everything. For tests.
func NewDiscard() *Logger {
	return &Logger{Logger: slog.New(newFanout("app", LevelCritical+1))}
}

// Component returns a child logger tagged with a component name, e.g. "DB"
// or "HTTP". The tag travels on every record the child emits.
func (l *Logger) Component(name string) *slog.Logger {
	return l.Logger.With(slog.String(attrComponent, name))
}

// DatabaseSink exposes the database sink so the lifecycle manager can bind
// the storage handle once it is ready. Nil when database logging is off.
func (l *Logger) DatabaseSink() *DatabaseSink {
	return l.db
}

// Critical logs at the CRITICAL severity.
func (l *Logger) Critical(ctx context.Context, msg string, args ...any) {
	l.Logger.Log(ctx, LevelCritical, msg, args...)
}

// Close releases the file sink. Safe to call once at shutdown.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

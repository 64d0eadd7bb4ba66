package logging

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/lanternworks/api-template/internal/middleware"
)

// Record is the immutable form of a log event handed to sinks. Once built it
// is only read; sinks must not retain or mutate it.
type Record struct {
	Time      time.Time
	Level     slog.Level
	Logger    string
	Module    string
	Line      int
	Message   string
	Component string
	TraceID   string
}

// Sink routes a single record to one destination. Emit must be safe for
// concurrent use and must not return errors to the caller; delivery problems
// are the sink's own to report.
type Sink interface {
	Emit(rec Record)
}

// attrComponent and attrRequestID are the attribute keys the fan-out handler
// lifts out of the slog attribute set into dedicated Record fields.
const (
	attrComponent = "component"
	attrRequestID = "request_id"
)

// fanout is a slog.Handler that converts each slog record into a Record and
// hands it to every configured sink. A failing sink never blocks the others.
type fanout struct {
	name   string
	level  slog.Level
	sinks  []Sink
	attrs  []slog.Attr
	groups []string
}

func newFanout(name string, level slog.Level, sinks ...Sink) *fanout {
	return &fanout{name: name, level: level, sinks: sinks}
}

func (f *fanout) Enabled(_ context.Context, level slog.Level) bool {
	return level >= f.level
}

func (f *fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *f
	clone.attrs = append(append([]slog.Attr{}, f.attrs...), attrs...)
	return &clone
}

func (f *fanout) WithGroup(name string) slog.Handler {
	clone := *f
	clone.groups = append(append([]string{}, f.groups...), name)
	return &clone
}

func (f *fanout) Handle(ctx context.Context, r slog.Record) error {
	rec := Record{
		Time:    r.Time,
		Level:   r.Level,
		Logger:  f.name,
		Message: r.Message,
		TraceID: middleware.GetRequestID(ctx),
	}
	if rec.Time.IsZero() {
		rec.Time = time.Now()
	}

	if r.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{r.PC})
		frame, _ := frames.Next()
		rec.Module = filepath.Base(frame.File)
		rec.Line = frame.Line
	}

	var extra strings.Builder
	consume := func(a slog.Attr) {
		switch a.Key {
		case attrComponent:
			rec.Component = a.Value.String()
		case attrRequestID:
			rec.TraceID = a.Value.String()
		case "":
		default:
			fmt.Fprintf(&extra, " %s=%v", a.Key, a.Value.Any())
		}
	}
	for _, a := range f.attrs {
		consume(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		consume(a)
		return true
	})
	if extra.Len() > 0 {
		rec.Message += extra.String()
	}

	for _, s := range f.sinks {
		emit(s, rec)
	}
	return nil
}

// emit shields the fan-out from a panicking sink.
func emit(s Sink, rec Record) {
	defer func() {
		_ = recover()
	}()
	s.Emit(rec)
}

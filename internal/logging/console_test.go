package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func sampleRecord() Record {
	return Record{
		Time:    time.Date(2025, 3, 14, 9, 26, 53, 589_000_000, time.UTC),
		Level:   slog.LevelInfo,
		Logger:  "app",
		Module:  "demo.go",
		Line:    42,
		Message: "hello",
	}
}

func TestFormatRecord(t *testing.T) {
	rec := sampleRecord()
	got := formatRecord(rec)
	want := "2025-03-14 09:26:53.589 [    INFO] app:42 - hello"
	if got != want {
		t.Errorf("formatRecord = %q, want %q", got, want)
	}
}

func TestFormatRecord_ComponentAndTraceID(t *testing.T) {
	rec := sampleRecord()
	rec.Component = "DB"
	rec.TraceID = "rid-7"
	got := formatRecord(rec)

	if !strings.Contains(got, "[DB] hello") {
		t.Errorf("Expected component tag before message, got %q", got)
	}
	if !strings.HasSuffix(got, "rid=rid-7") {
		t.Errorf("Expected trace id suffix, got %q", got)
	}
}

func TestConsoleSink_RespectsMinLevel(t *testing.T) {
	var buf bytes.Buffer
	sink := newConsoleSinkWriter(&buf, slog.LevelWarn, false)

	rec := sampleRecord()
	sink.Emit(rec)
	if buf.Len() != 0 {
		t.Errorf("Expected INFO record below WARN threshold to be dropped, got %q", buf.String())
	}

	rec.Level = slog.LevelError
	sink.Emit(rec)
	if !strings.Contains(buf.String(), "[   ERROR]") {
		t.Errorf("Expected ERROR record to pass, got %q", buf.String())
	}
}

func TestConsoleSink_ColorWrapping(t *testing.T) {
	var buf bytes.Buffer
	sink := newConsoleSinkWriter(&buf, slog.LevelDebug, true)

	rec := sampleRecord()
	rec.Level = slog.LevelError
	sink.Emit(rec)

	out := buf.String()
	if !strings.HasPrefix(out, ansiError) {
		t.Errorf("Expected error color prefix, got %q", out)
	}
	if !strings.Contains(out, ansiReset) {
		t.Errorf("Expected color reset, got %q", out)
	}
}

func TestConsoleSink_NoColorWhenDisabled(t *testing.T) {
	var buf bytes.Buffer
	sink := newConsoleSinkWriter(&buf, slog.LevelDebug, false)

	sink.Emit(sampleRecord())
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("Expected no escape sequences, got %q", buf.String())
	}
}

func TestLevelColor(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelDebug, ansiDebug},
		{slog.LevelInfo, ansiInfo},
		{slog.LevelWarn, ansiWarning},
		{slog.LevelError, ansiError},
		{LevelCritical, ansiCritical},
	}
	for _, tt := range tests {
		if got := levelColor(tt.level); got != tt.want {
			t.Errorf("levelColor(%v) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

const (
	defaultMaxBytes = 1 << 20 // 1 MiB
	defaultBackups  = 3
	logFileName     = "app.log"
)

// FileSink writes plain-text records to a size-bounded rotating file.
// When the current file would exceed MaxBytes the chain app.log ->
// app.log.1 -> ... -> app.log.N shifts by one and the oldest backup is
// dropped. All writes and rotations are serialized by a mutex so concurrent
// requests cannot interleave lines or race a rotation.
type FileSink struct {
	mu       sync.Mutex
	path     string
	maxBytes int64
	backups  int
	min      slog.Level
	file     *os.File
	size     int64
}

// NewFileSink opens (or creates) dir/app.log for appending. Records below
// INFO are never written to the file regardless of the console level.
func NewFileSink(dir string) (*FileSink, error) {
	return newFileSink(dir, defaultMaxBytes, defaultBackups)
}

func newFileSink(dir string, maxBytes int64, backups int) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	s := &FileSink{
		path:     filepath.Join(dir, logFileName),
		maxBytes: maxBytes,
		backups:  backups,
		min:      slog.LevelInfo,
	}
	if err := s.open(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileSink) open() error {
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to stat log file: %w", err)
	}
	s.file = f
	s.size = info.Size()
	return nil
}

// Emit implements Sink. Write errors are dropped: a broken disk must never
// surface into the request path.
func (s *FileSink) Emit(rec Record) {
	if rec.Level < s.min {
		return
	}
	line := formatRecord(rec) + "\n"

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return
	}
	if s.size+int64(len(line)) > s.maxBytes && s.size > 0 {
		s.rotate()
	}
	n, err := s.file.WriteString(line)
	if err == nil {
		s.size += int64(n)
	}
}

// rotate shifts the backup chain under the held lock. Rename errors are
// ignored on purpose: a missing backup slot is not worth failing a write.
func (s *FileSink) rotate() {
	s.file.Close()
	s.file = nil

	os.Remove(fmt.Sprintf("%s.%d", s.path, s.backups))
	for i := s.backups - 1; i >= 1; i-- {
		os.Rename(fmt.Sprintf("%s.%d", s.path, i), fmt.Sprintf("%s.%d", s.path, i+1))
	}
	os.Rename(s.path, s.path+".1")

	if err := s.open(); err != nil {
		s.file = nil
	}
}

// Close flushes and closes the underlying file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

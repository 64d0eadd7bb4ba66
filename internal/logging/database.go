package logging

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lanternworks/api-template/internal/metrics"
)

// Execer is the storage contract the database sink needs: a parameterized
// statement executor. *pgxpool.Pool satisfies it. The handle is owned by the
// lifecycle manager; the sink only ever reads it.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// sinkState is the activation state of the database sink.
type sinkState int

const (
	// stateInactive: no storage handle bound; every record is dropped.
	stateInactive sinkState = iota
	// stateProbing: a handle is bound but the log table has not been
	// created yet; the next record attempts schema creation.
	stateProbing
	// stateActive: the table exists; records insert directly.
	stateActive
)

var identPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// errThrottle limits self-diagnostic reporting so a dead backing store
// cannot turn every request into an error storm.
type errThrottle struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
	now      func() time.Time
}

func (t *errThrottle) allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	if !t.last.IsZero() && now.Sub(t.last) < t.interval {
		return false
	}
	t.last = now
	return true
}

// DatabaseSink persists records to a relational log table. It starts
// Inactive and is moved to Probing by the lifecycle manager's readiness
// signal (Bind). The first record emitted after binding creates the table if
// absent and flips the sink to Active; until then, and whenever no handle is
// bound, records are dropped without error.
type DatabaseSink struct {
	table    string
	min      slog.Level
	report   func(error)
	throttle errThrottle

	mu    sync.Mutex
	state sinkState
	db    Execer
}

// NewDatabaseSink builds an inactive sink targeting the given table. The
// table name must be a plain SQL identifier because identifiers cannot be
// bound as statement parameters. report receives throttled sink-internal
// errors; it must not log back through this sink.
func NewDatabaseSink(table string, min slog.Level, report func(error)) (*DatabaseSink, error) {
	if !identPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid log table name %q", table)
	}
	if report == nil {
		report = func(error) {}
	}
	return &DatabaseSink{
		table:    table,
		min:      min,
		report:   report,
		throttle: errThrottle{interval: 5 * time.Second, now: time.Now},
	}, nil
}

// Bind attaches the storage handle and moves the sink from Inactive to
// Probing. Called once by the lifecycle manager when storage becomes ready;
// subsequent calls are ignored.
func (s *DatabaseSink) Bind(db Execer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != stateInactive || db == nil {
		return
	}
	s.db = db
	s.state = stateProbing
}

// Emit implements Sink. All failure modes degrade to dropping the record.
func (s *DatabaseSink) Emit(rec Record) {
	if rec.Level < s.min {
		return
	}

	s.mu.Lock()
	if s.state == stateInactive {
		s.mu.Unlock()
		metrics.LogRecordsDropped.Inc()
		return
	}
	if s.state == stateProbing {
		if err := s.createTable(); err != nil {
			s.mu.Unlock()
			metrics.LogSinkErrors.Inc()
			s.reportThrottled(fmt.Errorf("schema creation failed: %w", err))
			return
		}
		s.state = stateActive
	}
	db := s.db
	s.mu.Unlock()

	if err := s.insert(db, rec); err != nil {
		metrics.LogSinkErrors.Inc()
		s.reportThrottled(fmt.Errorf("log insert failed: %w", err))
	}
}

func (s *DatabaseSink) createTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Table name is validated against identPattern at construction.
	stmt := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id BIGSERIAL PRIMARY KEY,
			timestamp TEXT NOT NULL,
			level TEXT NOT NULL,
			logger TEXT NOT NULL,
			module TEXT NOT NULL,
			line INTEGER NOT NULL,
			message TEXT NOT NULL,
			component TEXT,
			trace_id TEXT
		)`, s.table)
	_, err := s.db.Exec(ctx, stmt)
	return err
}

func (s *DatabaseSink) insert(db Execer, rec Record) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stmt := fmt.Sprintf(`
		INSERT INTO %s (timestamp, level, logger, module, line, message, component, trace_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`, s.table)
	_, err := db.Exec(ctx, stmt,
		rec.Time.Format("2006-01-02 15:04:05.000"),
		LevelName(rec.Level),
		rec.Logger,
		rec.Module,
		rec.Line,
		rec.Message,
		nullable(rec.Component),
		nullable(rec.TraceID),
	)
	return err
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (s *DatabaseSink) reportThrottled(err error) {
	if s.throttle.allow() {
		s.report(err)
	}
}

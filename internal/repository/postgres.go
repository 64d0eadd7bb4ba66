package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lanternworks/api-template/internal/models"
)

var logTablePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// PostgresRepository implements the item, KV and log repositories on a
// shared pgx connection pool.
type PostgresRepository struct {
	pool     *pgxpool.Pool
	logTable string
}

// NewPostgresRepository connects a pool and verifies the connection.
func NewPostgresRepository(ctx context.Context, connString, logTable string) (*PostgresRepository, error) {
	if logTable != "" && !logTablePattern.MatchString(logTable) {
		return nil, fmt.Errorf("invalid log table name %q", logTable)
	}

	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 2
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{pool: pool, logTable: logTable}, nil
}

// Pool exposes the underlying pool so the lifecycle manager can hand it to
// the database log sink.
func (r *PostgresRepository) Pool() *pgxpool.Pool {
	return r.pool
}

func (r *PostgresRepository) Close() {
	r.pool.Close()
}

// --- items ---

func (r *PostgresRepository) ListItems(ctx context.Context) ([]models.Item, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var item models.Item
		var desc *string
		if err := rows.Scan(&item.ID, &item.Name, &desc); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		if desc != nil {
			item.Description = *desc
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) GetItem(ctx context.Context, id int) (*models.Item, error) {
	var item models.Item
	var desc *string
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description FROM items WHERE id = $1`, id,
	).Scan(&item.ID, &item.Name, &desc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if desc != nil {
		item.Description = *desc
	}
	return &item, nil
}

func (r *PostgresRepository) CreateItem(ctx context.Context, item *models.Item) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO items (id, name, description) VALUES ($1, $2, $3)`,
		item.ID, item.Name, nullableString(item.Description),
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
		return ErrItemExists
	}
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateItem(ctx context.Context, item *models.Item) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE items SET name = $2, description = $3 WHERE id = $1`,
		item.ID, item.Name, nullableString(item.Description),
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteItem(ctx context.Context, id int) (*models.Item, error) {
	item, err := r.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := r.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to delete item: %w", err)
	}
	return item, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// --- kv demo ---

func (r *PostgresRepository) InitKV(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS kv (
			id BIGSERIAL PRIMARY KEY,
			key TEXT UNIQUE NOT NULL,
			value TEXT
		)`)
	if err != nil {
		return fmt.Errorf("failed to create kv table: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpsertKV(ctx context.Context, key, value string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO kv (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert key: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetKV(ctx context.Context, key string) (string, error) {
	var value *string
	err := r.pool.QueryRow(ctx, `SELECT value FROM kv WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get key: %w", err)
	}
	if value == nil {
		return "", nil
	}
	return *value, nil
}

// --- logs ---

// buildLogFilter renders the WHERE clause for log queries. Everything
// user-supplied travels as a bound parameter.
func buildLogFilter(filter models.LogFilter) (string, []any) {
	var conditions []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Level != "" {
		conditions = append(conditions, "level = "+arg(filter.Level))
	}
	if filter.Component != "" {
		conditions = append(conditions, "component = "+arg(filter.Component))
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		conditions = append(conditions, fmt.Sprintf("(message LIKE %s OR logger LIKE %s OR module LIKE %s)", p, p, p))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *PostgresRepository) ListLogs(ctx context.Context, filter models.LogFilter) ([]models.LogEntry, int64, error) {
	if r.logTable == "" {
		return nil, 0, fmt.Errorf("log table not configured")
	}

	where, args := buildLogFilter(filter)

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s%s`, r.logTable, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count logs: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT id, timestamp, level, logger, module, line, message, component, trace_id
		FROM %s%s
		ORDER BY id DESC
		LIMIT $%d OFFSET $%d`,
		r.logTable, where, len(args)+1, len(args)+2)
	rows, err := r.pool.Query(ctx, listQuery, append(args, filter.Page.Limit(), filter.Page.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list logs: %w", err)
	}
	defer rows.Close()

	var entries []models.LogEntry
	for rows.Next() {
		var e models.LogEntry
		var component, traceID *string
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Level, &e.Logger, &e.Module, &e.Line, &e.Message, &component, &traceID); err != nil {
			return nil, 0, fmt.Errorf("failed to scan log entry: %w", err)
		}
		if component != nil {
			e.Component = *component
		}
		if traceID != nil {
			e.TraceID = *traceID
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}

// ListLogComponents returns the distinct component tags seen in the log
// table, for filter pickers.
func (r *PostgresRepository) ListLogComponents(ctx context.Context) ([]string, error) {
	if r.logTable == "" {
		return nil, fmt.Errorf("log table not configured")
	}

	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT DISTINCT component FROM %s WHERE component IS NOT NULL AND component != '' ORDER BY component`,
		r.logTable))
	if err != nil {
		return nil, fmt.Errorf("failed to query log components: %w", err)
	}
	defer rows.Close()

	var components []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan log component: %w", err)
		}
		components = append(components, c)
	}
	return components, rows.Err()
}

func (r *PostgresRepository) LogStats(ctx context.Context) (*models.LogStats, error) {
	if r.logTable == "" {
		return nil, fmt.Errorf("log table not configured")
	}

	stats := &models.LogStats{ByLevel: make(map[string]int64)}

	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		`SELECT level, COUNT(*) FROM %s GROUP BY level ORDER BY COUNT(*) DESC`, r.logTable))
	if err != nil {
		return nil, fmt.Errorf("failed to query log stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var level string
		var count int64
		if err := rows.Scan(&level, &count); err != nil {
			return nil, fmt.Errorf("failed to scan log stats: %w", err)
		}
		stats.ByLevel[level] = count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var latest *string
	if err := r.pool.QueryRow(ctx, fmt.Sprintf(
		`SELECT MAX(timestamp) FROM %s`, r.logTable)).Scan(&latest); err != nil {
		return nil, fmt.Errorf("failed to query latest log timestamp: %w", err)
	}
	if latest != nil {
		stats.LatestTimestamp = *latest
	}
	return stats, nil
}

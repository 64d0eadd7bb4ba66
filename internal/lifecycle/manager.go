// Package lifecycle sequences startup and shutdown of the external
// collaborators (storage, cache, tracing) and answers readiness queries.
package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/lanternworks/api-template/internal/cache"
	"github.com/lanternworks/api-template/internal/config"
	"github.com/lanternworks/api-template/internal/logging"
	"github.com/lanternworks/api-template/internal/repository"
	"github.com/lanternworks/api-template/internal/telemetry"
)

// Manager owns the storage pool, cache client and tracer shutdown hook.
// Collaborators initialize in a fixed order (storage, cache, tracing); each
// failure downgrades to "not ready" with a warning instead of aborting
// startup, and shutdown releases everything in reverse order no matter what.
type Manager struct {
	cfg *config.Config
	log *logging.Logger

	mu            sync.RWMutex
	storage       *repository.PostgresRepository
	cacheClient   *cache.Client
	traceShutdown func(context.Context) error
	dbReady       bool
	cacheReady    bool
}

func NewManager(cfg *config.Config, log *logging.Logger) *Manager {
	return &Manager{cfg: cfg, log: log}
}

// Startup brings up the enabled collaborators. It never returns an error:
// partial readiness is the designed degradation mode for a template that
// must boot with zero external services available.
func (m *Manager) Startup(ctx context.Context) {
	m.initStorage(ctx)
	m.initCache(ctx)
	m.initTracing(ctx)
}

func (m *Manager) initStorage(ctx context.Context) {
	log := m.log.Component("DB")
	cfg := m.cfg.Database

	if !cfg.Enabled {
		log.InfoContext(ctx, "storage disabled")
		return
	}
	if cfg.URL == "" {
		log.WarnContext(ctx, "storage enabled but DATABASE_URL is missing")
		return
	}

	handle, err := repository.NewPostgresRepository(ctx, cfg.URL, m.cfg.Logging.DB.Table)
	if err != nil {
		log.WarnContext(ctx, "storage init failed", slog.String("err", err.Error()))
		return
	}

	if err := m.runMigrations(cfg); err != nil {
		log.WarnContext(ctx, "migrations failed", slog.String("err", err.Error()))
	}

	m.mu.Lock()
	m.storage = handle
	m.dbReady = true
	m.mu.Unlock()

	// Readiness signal for the lazily activated database log sink.
	if sink := m.log.DatabaseSink(); sink != nil {
		sink.Bind(handle.Pool())
	}

	log.InfoContext(ctx, "storage ready")
}

func (m *Manager) runMigrations(cfg config.DatabaseConfig) error {
	if cfg.Migrations == "" {
		return nil
	}
	mig, err := migrate.New(cfg.Migrations, cfg.URL)
	if err != nil {
		return err
	}
	defer mig.Close()
	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (m *Manager) initCache(ctx context.Context) {
	log := m.log.Component("CACHE")
	cfg := m.cfg.Cache

	if !cfg.Enabled {
		log.InfoContext(ctx, "cache disabled")
		return
	}
	if cfg.URL == "" {
		log.WarnContext(ctx, "cache enabled but CACHE_URL is missing")
		return
	}

	client, err := cache.New(ctx, cfg.URL)
	if err != nil {
		log.WarnContext(ctx, "cache init failed", slog.String("err", err.Error()))
		return
	}

	m.mu.Lock()
	m.cacheClient = client
	m.cacheReady = true
	m.mu.Unlock()

	log.InfoContext(ctx, "cache ready")
}

func (m *Manager) initTracing(ctx context.Context) {
	log := m.log.Component("OTEL")
	cfg := m.cfg.Tracing

	if !cfg.Enabled {
		log.InfoContext(ctx, "tracing disabled")
		return
	}

	shutdown, err := telemetry.Init(ctx, cfg, log)
	if err != nil {
		log.WarnContext(ctx, "tracing init failed", slog.String("err", err.Error()))
		return
	}

	m.mu.Lock()
	m.traceShutdown = shutdown
	m.mu.Unlock()
}

// Shutdown releases collaborators in reverse dependency order. Failures are
// logged and swallowed so shutdown always runs to completion.
func (m *Manager) Shutdown(ctx context.Context) {
	m.mu.Lock()
	traceShutdown := m.traceShutdown
	cacheClient := m.cacheClient
	storage := m.storage
	m.traceShutdown = nil
	m.cacheClient = nil
	m.storage = nil
	m.dbReady = false
	m.cacheReady = false
	m.mu.Unlock()

	if traceShutdown != nil {
		if err := traceShutdown(ctx); err != nil {
			m.log.Component("OTEL").WarnContext(ctx, "tracing shutdown failed", slog.String("err", err.Error()))
		} else {
			m.log.Component("OTEL").InfoContext(ctx, "tracing closed")
		}
	}

	if cacheClient != nil {
		if err := cacheClient.Close(); err != nil {
			m.log.Component("CACHE").WarnContext(ctx, "cache close failed", slog.String("err", err.Error()))
		} else {
			m.log.Component("CACHE").InfoContext(ctx, "cache closed")
		}
	}

	if storage != nil {
		storage.Close()
		m.log.Component("DB").InfoContext(ctx, "storage closed")
	}
}

// Ready reports aggregate readiness: true only if every enabled collaborator
// is ready. With nothing enabled the service is trivially ready.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.cfg.Database.Enabled && !m.dbReady {
		return false
	}
	if m.cfg.Cache.Enabled && !m.cacheReady {
		return false
	}
	return true
}

// DBReady reports whether storage initialized successfully.
func (m *Manager) DBReady() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dbReady
}

// CacheReady reports whether the cache initialized successfully.
func (m *Manager) CacheReady() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cacheReady
}

// Storage returns the storage repository, or nil before it is ready.
func (m *Manager) Storage() *repository.PostgresRepository {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.storage
}

// Cache returns the cache client, or nil before it is ready.
func (m *Manager) Cache() *cache.Client {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cacheClient
}

package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lanternworks/api-template/internal/config"
	"github.com/lanternworks/api-template/internal/lifecycle"
	"github.com/lanternworks/api-template/internal/logging"
	"github.com/lanternworks/api-template/internal/ratelimit"
	"github.com/lanternworks/api-template/internal/repository"
	"github.com/lanternworks/api-template/internal/server"
	"github.com/lanternworks/api-template/internal/service"
	"github.com/lanternworks/api-template/pkg/tokens"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logger.Close()

	appLog := logger.Component("MAIN")

	// Bring up storage, cache and tracing. Partial failures downgrade to
	// "not ready" rather than aborting, so the template boots with zero
	// external services available.
	lc := lifecycle.NewManager(cfg, logger)
	lc.Startup(context.Background())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		lc.Shutdown(ctx)
	}()

	items := service.NewItemService(itemRepository(lc, appLog))
	generator := tokens.NewGenerator(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)

	handler := server.NewRouter(server.Deps{
		Config:    cfg,
		Logger:    logger,
		Lifecycle: lc,
		Limiter:   buildLimiter(cfg.RateLimit, lc, appLog),
		Items:     items,
		Tokens:    generator,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		appLog.Info("server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Error("server error", slog.String("err", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.WriteTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLog.Error("forced shutdown", slog.String("err", err.Error()))
		return
	}
	appLog.Info("server stopped")
}

// itemRepository picks the relational repository when storage came up and
// falls back to the in-memory one so the demo CRUD routes always work.
func itemRepository(lc *lifecycle.Manager, log *slog.Logger) repository.ItemRepository {
	if store := lc.Storage(); store != nil {
		return store
	}
	log.Info("items repository: in-memory")
	return repository.NewInMemoryItemRepository()
}

// buildLimiter selects the rate limit backend: Redis sliding window when the
// cache is up, in-memory fixed window otherwise, no-op when disabled.
func buildLimiter(cfg config.RateLimitConfig, lc *lifecycle.Manager, log *slog.Logger) ratelimit.Limiter {
	if !cfg.Enabled {
		return ratelimit.NoOp{}
	}
	if client := lc.Cache(); client != nil {
		log.Info("rate limiter: redis sliding window")
		return ratelimit.NewRedis(client.Redis(), cfg.Requests, cfg.Window)
	}
	log.Info("rate limiter: in-memory fixed window")
	return ratelimit.NewMemory(cfg.Requests, cfg.Window)
}

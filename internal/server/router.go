// Package server assembles the HTTP router and its middleware chain.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/lanternworks/api-template/internal/config"
	"github.com/lanternworks/api-template/internal/handlers"
	"github.com/lanternworks/api-template/internal/httputil"
	"github.com/lanternworks/api-template/internal/lifecycle"
	"github.com/lanternworks/api-template/internal/logging"
	"github.com/lanternworks/api-template/internal/middleware"
	"github.com/lanternworks/api-template/internal/ratelimit"
	"github.com/lanternworks/api-template/internal/service"
	"github.com/lanternworks/api-template/pkg/tokens"
)

// Deps carries the collaborators the router wires into handlers.
type Deps struct {
	Config    *config.Config
	Logger    *logging.Logger
	Lifecycle *lifecycle.Manager
	Limiter   ratelimit.Limiter
	Items     *service.ItemService
	Tokens    *tokens.Generator
}

// NewRouter constructs a ServeMux with all API routes registered and wraps
// it in the middleware chain. Panic recovery sits outside request logging
// so a panicking handler still produces a request error record before the
// recovery layer answers with the 500 envelope.
func NewRouter(d Deps) http.Handler {
	log := d.Logger.Logger

	health := handlers.NewHealthHandler(d.Lifecycle)
	auth := handlers.NewAuthHandler(d.Tokens, log)
	demo := handlers.NewDemoHandler(d.Logger)
	items := handlers.NewItemsHandler(d.Items)
	storage := handlers.NewStorageHandler(d.Lifecycle)
	logs := handlers.NewLogsHandler(d.Lifecycle)

	adapt := func(fn httputil.HandlerFunc) http.HandlerFunc {
		return httputil.Adapt(log, fn)
	}

	mux := http.NewServeMux()

	// Health and observability
	mux.HandleFunc("GET /healthz", health.Healthz)
	mux.HandleFunc("GET /readyz", health.Readyz)
	if d.Config.Metrics.Enabled {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	// Auth stub
	mux.HandleFunc("POST /auth/token", adapt(auth.IssueToken))
	mux.HandleFunc("GET /example/secure/profile", adapt(auth.Profile))

	// Demo routes. HelloWorld carries the per-client rate limit.
	limited := middleware.RateLimit(d.Limiter, log)
	mux.Handle("GET /example/HelloWorld", limited(adapt(demo.HelloWorld)))
	mux.HandleFunc("GET /example/ErrorHelloWorld", adapt(demo.ErrorHelloWorld))
	mux.HandleFunc("GET /example/data", adapt(demo.Data))
	mux.HandleFunc("GET /example/loggingInfo", adapt(demo.LoggingInfo))
	mux.HandleFunc("GET /example/items-paged", adapt(demo.ItemsPaged))

	// Items CRUD
	mux.HandleFunc("/example/items", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			adapt(items.List)(w, r)
		case http.MethodPost:
			adapt(items.Create)(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/example/items/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			adapt(items.Get)(w, r)
		case http.MethodPut:
			adapt(items.Update)(w, r)
		case http.MethodDelete:
			adapt(items.Delete)(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Storage demos
	mux.HandleFunc("GET /storage/redis/set", adapt(storage.RedisSet))
	mux.HandleFunc("GET /storage/redis/get", adapt(storage.RedisGet))
	mux.HandleFunc("POST /storage/db/init", adapt(storage.DBInit))
	mux.HandleFunc("POST /storage/db/upsert", adapt(storage.DBUpsert))
	mux.HandleFunc("GET /storage/db/get", adapt(storage.DBGet))

	// Log monitoring
	mux.HandleFunc("GET /logs", adapt(logs.List))
	mux.HandleFunc("GET /logs/stats", adapt(logs.Stats))
	mux.HandleFunc("GET /logs/components", adapt(logs.Components))

	var handler http.Handler = mux
	handler = middleware.RequestLogging(log)(handler)
	handler = middleware.Recover(log)(handler)
	if d.Config.Metrics.Enabled {
		handler = middleware.Metrics(handler)
	}
	handler = middleware.SecurityHeaders(handler)
	handler = middleware.CORS(d.Config.CORS)(handler)
	if d.Config.Tracing.Enabled {
		handler = otelhttp.NewHandler(handler, "http.server")
	}
	handler = middleware.RequestID(handler)

	return handler
}

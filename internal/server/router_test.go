package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanternworks/api-template/internal/config"
	"github.com/lanternworks/api-template/internal/lifecycle"
	"github.com/lanternworks/api-template/internal/logging"
	"github.com/lanternworks/api-template/internal/models"
	"github.com/lanternworks/api-template/internal/ratelimit"
	"github.com/lanternworks/api-template/internal/repository"
	"github.com/lanternworks/api-template/internal/service"
	"github.com/lanternworks/api-template/pkg/tokens"
)

func testRouter(t *testing.T, cfg *config.Config, limiter ratelimit.Limiter) http.Handler {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{}
		cfg.CORS.Origins = []string{"*"}
	}
	logger := logging.NewDiscard()
	lc := lifecycle.NewManager(cfg, logger)

	return NewRouter(Deps{
		Config:    cfg,
		Logger:    logger,
		Lifecycle: lc,
		Limiter:   limiter,
		Items:     service.NewItemService(repository.NewInMemoryItemRepository()),
		Tokens:    tokens.NewGenerator("router-test-secret", 15*time.Minute),
	})
}

func TestRouter_HealthRoute(t *testing.T) {
	router := testRouter(t, nil, ratelimit.NoOp{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/healthz", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"ok"`)
}

func TestRouter_EveryResponseCarriesRequestID(t *testing.T) {
	router := testRouter(t, nil, ratelimit.NoOp{})

	paths := []string{"/healthz", "/readyz", "/example/HelloWorld", "/example/data", "/nope"}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest("GET", path, nil))
			assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
		})
	}
}

func TestRouter_InboundRequestIDEchoed(t *testing.T) {
	router := testRouter(t, nil, ratelimit.NoOp{})

	req := httptest.NewRequest("GET", "/example/ErrorHelloWorld", nil)
	req.Header.Set("X-Request-ID", "caller-chosen")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, "caller-chosen", rr.Header().Get("X-Request-ID"))

	var envelope models.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	assert.Equal(t, "caller-chosen", envelope.RequestID)
}

func TestRouter_SecurityHeadersOnEveryResponse(t *testing.T) {
	router := testRouter(t, nil, ratelimit.NoOp{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/healthz", nil))

	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
}

func TestRouter_HelloWorldRateLimited(t *testing.T) {
	router := testRouter(t, nil, ratelimit.NewMemory(2, time.Minute))

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/example/HelloWorld", nil)
		req.RemoteAddr = "10.0.0.9:1234"
		router.ServeHTTP(last, req)
	}

	assert.Equal(t, http.StatusTooManyRequests, last.Code)

	// Other routes share neither the key nor the wrap.
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/example/data", nil)
	req.RemoteAddr = "10.0.0.9:1234"
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_ItemsMethodDispatch(t *testing.T) {
	router := testRouter(t, nil, ratelimit.NoOp{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("PATCH", "/example/items", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/example/items", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_UnknownItemIs404Envelope(t *testing.T) {
	router := testRouter(t, nil, ratelimit.NoOp{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/example/items/777", nil))

	require.Equal(t, http.StatusNotFound, rr.Code)

	var envelope models.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	assert.Equal(t, models.CodeNotFound, envelope.Code)
}

func TestRouter_MetricsEndpointToggle(t *testing.T) {
	cfg := &config.Config{}
	cfg.CORS.Origins = []string{"*"}
	cfg.Metrics.Enabled = true
	router := testRouter(t, cfg, ratelimit.NoOp{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	cfg2 := &config.Config{}
	cfg2.CORS.Origins = []string{"*"}
	router = testRouter(t, cfg2, ratelimit.NoOp{})

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := testRouter(t, nil, ratelimit.NoOp{})

	req := httptest.NewRequest("OPTIONS", "/example/data", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "https://app.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_StorageUnavailable(t *testing.T) {
	router := testRouter(t, nil, ratelimit.NoOp{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/storage/redis/get?key=x", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/logs", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/logs/components", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestRouter_AuthFlow(t *testing.T) {
	router := testRouter(t, nil, ratelimit.NoOp{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/example/secure/profile", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lanternworks/api-template/internal/config"
	"github.com/lanternworks/api-template/internal/httputil"
	"github.com/lanternworks/api-template/internal/logging"
)

func TestLogs_UnavailableWithoutStorage(t *testing.T) {
	h := NewLogsHandler(newLifecycle(t, &config.Config{}))

	for name, fn := range map[string]httputil.HandlerFunc{
		"list":       h.List,
		"stats":      h.Stats,
		"components": h.Components,
	} {
		t.Run(name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			httputil.Adapt(logging.NewDiscard().Logger, fn)(rr, httptest.NewRequest("GET", "/logs", nil))
			assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		})
	}
}

func TestLogs_InvalidPaginationChecksStorageFirst(t *testing.T) {
	// With no storage bound the 503 wins over parameter validation, so the
	// client learns the strongest reason the request cannot be served.
	h := NewLogsHandler(newLifecycle(t, &config.Config{}))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/logs?page=0", nil)
	httputil.Adapt(logging.NewDiscard().Logger, h.List)(rr, req)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

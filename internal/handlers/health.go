package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/lanternworks/api-template/internal/httputil"
	"github.com/lanternworks/api-template/internal/lifecycle"
)

// HealthHandler answers the liveness and readiness probes.
type HealthHandler struct {
	lc *lifecycle.Manager
}

func NewHealthHandler(lc *lifecycle.Manager) *HealthHandler {
	return &HealthHandler{lc: lc}
}

// Healthz is the liveness probe: the process is up, so the answer is ok.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"ts":     time.Now().Unix(),
		"go":     runtime.Version(),
	})
}

// Readyz reports aggregate readiness of the enabled dependencies.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"ready":       h.lc.Ready(),
		"ts":          time.Now().Unix(),
		"db_ready":    h.lc.DBReady(),
		"cache_ready": h.lc.CacheReady(),
	})
}

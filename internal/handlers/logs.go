package handlers

import (
	"net/http"

	"github.com/lanternworks/api-template/internal/httputil"
	"github.com/lanternworks/api-template/internal/lifecycle"
	"github.com/lanternworks/api-template/internal/models"
)

// LogsHandler exposes the persisted application log table for inspection.
type LogsHandler struct {
	lc *lifecycle.Manager
}

func NewLogsHandler(lc *lifecycle.Manager) *LogsHandler {
	return &LogsHandler{lc: lc}
}

// List handles GET /logs with optional level, component, search and
// pagination filters.
func (h *LogsHandler) List(w http.ResponseWriter, r *http.Request) error {
	store := h.lc.Storage()
	if store == nil {
		return httputil.Unavailable("Log storage not initialized")
	}

	page, err := models.ParsePageQuery(r.URL.Query())
	if err != nil {
		return httputil.Validation("Validation error", err.Error())
	}

	filter := models.LogFilter{
		Level:     r.URL.Query().Get("level"),
		Component: r.URL.Query().Get("component"),
		Search:    r.URL.Query().Get("search"),
		Page:      page,
	}

	entries, total, err := store.ListLogs(r.Context(), filter)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []models.LogEntry{}
	}
	httputil.WriteSuccessPage(w, http.StatusOK, entries, page.Meta(int(total)))
	return nil
}

// Components handles GET /logs/components: the distinct component tags,
// for populating filter dropdowns.
func (h *LogsHandler) Components(w http.ResponseWriter, r *http.Request) error {
	store := h.lc.Storage()
	if store == nil {
		return httputil.Unavailable("Log storage not initialized")
	}

	components, err := store.ListLogComponents(r.Context())
	if err != nil {
		return err
	}
	if components == nil {
		components = []string{}
	}
	httputil.WriteSuccess(w, http.StatusOK, map[string][]string{"components": components})
	return nil
}

// Stats handles GET /logs/stats.
func (h *LogsHandler) Stats(w http.ResponseWriter, r *http.Request) error {
	store := h.lc.Storage()
	if store == nil {
		return httputil.Unavailable("Log storage not initialized")
	}

	stats, err := store.LogStats(r.Context())
	if err != nil {
		return err
	}
	httputil.WriteSuccess(w, http.StatusOK, stats)
	return nil
}

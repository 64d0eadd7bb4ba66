package handlers

import (
	"errors"
	"net/http"

	"github.com/lanternworks/api-template/internal/httputil"
	"github.com/lanternworks/api-template/internal/lifecycle"
	"github.com/lanternworks/api-template/internal/repository"
)

// StorageHandler serves the storage demo routes under /storage/. Each route
// answers 503 with the standard envelope while its backing dependency has
// not come up.
type StorageHandler struct {
	lc *lifecycle.Manager
}

func NewStorageHandler(lc *lifecycle.Manager) *StorageHandler {
	return &StorageHandler{lc: lc}
}

// RedisSet handles GET /storage/redis/set?key=&value=.
func (h *StorageHandler) RedisSet(w http.ResponseWriter, r *http.Request) error {
	client := h.lc.Cache()
	if client == nil {
		return httputil.Unavailable("Cache not initialized")
	}

	key := r.URL.Query().Get("key")
	value := r.URL.Query().Get("value")
	if key == "" {
		return httputil.Validation("Validation error", "key is required")
	}

	if err := client.Set(r.Context(), key, value); err != nil {
		return err
	}
	httputil.WriteSuccess(w, http.StatusOK, map[string]any{"ok": true, "key": key, "value": value})
	return nil
}

// RedisGet handles GET /storage/redis/get?key=.
func (h *StorageHandler) RedisGet(w http.ResponseWriter, r *http.Request) error {
	client := h.lc.Cache()
	if client == nil {
		return httputil.Unavailable("Cache not initialized")
	}

	key := r.URL.Query().Get("key")
	if key == "" {
		return httputil.Validation("Validation error", "key is required")
	}

	value, found, err := client.Get(r.Context(), key)
	if err != nil {
		return err
	}
	resp := map[string]any{"key": key, "value": value}
	if !found {
		resp["value"] = nil
	}
	httputil.WriteSuccess(w, http.StatusOK, resp)
	return nil
}

// DBInit handles POST /storage/db/init.
func (h *StorageHandler) DBInit(w http.ResponseWriter, r *http.Request) error {
	store := h.lc.Storage()
	if store == nil {
		return httputil.Unavailable("Storage not initialized")
	}

	if err := store.InitKV(r.Context()); err != nil {
		return err
	}
	httputil.WriteSuccess(w, http.StatusOK, map[string]any{"ok": true})
	return nil
}

// DBUpsert handles POST /storage/db/upsert?key=&value=.
func (h *StorageHandler) DBUpsert(w http.ResponseWriter, r *http.Request) error {
	store := h.lc.Storage()
	if store == nil {
		return httputil.Unavailable("Storage not initialized")
	}

	key := r.URL.Query().Get("key")
	value := r.URL.Query().Get("value")
	if key == "" {
		return httputil.Validation("Validation error", "key is required")
	}

	if err := store.UpsertKV(r.Context(), key, value); err != nil {
		return err
	}
	httputil.WriteSuccess(w, http.StatusOK, map[string]any{"ok": true, "key": key, "value": value})
	return nil
}

// DBGet handles GET /storage/db/get?key=.
func (h *StorageHandler) DBGet(w http.ResponseWriter, r *http.Request) error {
	store := h.lc.Storage()
	if store == nil {
		return httputil.Unavailable("Storage not initialized")
	}

	key := r.URL.Query().Get("key")
	if key == "" {
		return httputil.Validation("Validation error", "key is required")
	}

	value, err := store.GetKV(r.Context(), key)
	if errors.Is(err, repository.ErrKeyNotFound) {
		httputil.WriteSuccess(w, http.StatusOK, map[string]any{"key": key, "value": nil})
		return nil
	}
	if err != nil {
		return err
	}
	httputil.WriteSuccess(w, http.StatusOK, map[string]any{"key": key, "value": value})
	return nil
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/lanternworks/api-template/internal/httputil"
	"github.com/lanternworks/api-template/internal/models"
	"github.com/lanternworks/api-template/internal/repository"
	"github.com/lanternworks/api-template/internal/service"
)

// ItemsHandler serves the demo CRUD routes under /example/items/.
type ItemsHandler struct {
	svc *service.ItemService
}

func NewItemsHandler(svc *service.ItemService) *ItemsHandler {
	return &ItemsHandler{svc: svc}
}

// List handles GET /example/items/.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) error {
	items, err := h.svc.List(r.Context())
	if err != nil {
		return err
	}
	httputil.WriteSuccess(w, http.StatusOK, items)
	return nil
}

// Get handles GET /example/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) error {
	id, err := itemID(r.URL.Path)
	if err != nil {
		return err
	}

	item, err := h.svc.Get(r.Context(), id)
	if errors.Is(err, repository.ErrItemNotFound) {
		return httputil.NotFound("Item not found")
	}
	if err != nil {
		return err
	}
	httputil.WriteSuccess(w, http.StatusOK, item)
	return nil
}

// Create handles POST /example/items/.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var item models.Item
	if err := httputil.Decode(r, &item); err != nil {
		return err
	}
	if problems := item.Validate(); len(problems) > 0 {
		return httputil.Validation("Validation error", problems)
	}

	err := h.svc.Create(r.Context(), &item)
	if errors.Is(err, repository.ErrItemExists) {
		return httputil.BadRequest("Item with this ID already exists")
	}
	if err != nil {
		return err
	}
	httputil.WriteSuccess(w, http.StatusOK, item)
	return nil
}

// Update handles PUT /example/items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) error {
	id, err := itemID(r.URL.Path)
	if err != nil {
		return err
	}

	var item models.Item
	if err := httputil.Decode(r, &item); err != nil {
		return err
	}
	item.ID = id
	if problems := item.Validate(); len(problems) > 0 {
		return httputil.Validation("Validation error", problems)
	}

	err = h.svc.Update(r.Context(), id, &item)
	if errors.Is(err, repository.ErrItemNotFound) {
		return httputil.NotFound("Item not found")
	}
	if err != nil {
		return err
	}
	httputil.WriteSuccess(w, http.StatusOK, item)
	return nil
}

// Delete handles DELETE /example/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	id, err := itemID(r.URL.Path)
	if err != nil {
		return err
	}

	removed, err := h.svc.Delete(r.Context(), id)
	if errors.Is(err, repository.ErrItemNotFound) {
		return httputil.NotFound("Item not found")
	}
	if err != nil {
		return err
	}
	httputil.WriteSuccess(w, http.StatusOK, removed)
	return nil
}

// itemID parses the trailing path segment of /example/items/{id}.
func itemID(path string) (int, error) {
	segment := path[strings.LastIndex(path, "/")+1:]
	id, err := strconv.Atoi(segment)
	if err != nil {
		return 0, httputil.Validation("Validation error", "item id must be an integer")
	}
	return id, nil
}

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanternworks/api-template/internal/httputil"
	"github.com/lanternworks/api-template/internal/logging"
	"github.com/lanternworks/api-template/internal/models"
	"github.com/lanternworks/api-template/internal/repository"
	"github.com/lanternworks/api-template/internal/service"
)

func newItemsHandler() *ItemsHandler {
	return NewItemsHandler(service.NewItemService(repository.NewInMemoryItemRepository()))
}

func itemsRequest(t *testing.T, fn httputil.HandlerFunc, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, url, reader)
	rr := httptest.NewRecorder()
	httputil.Adapt(logging.NewDiscard().Logger, fn)(rr, req)
	return rr
}

func TestItems_CreateAndGet(t *testing.T) {
	h := newItemsHandler()

	rr := itemsRequest(t, h.Create, "POST", "/example/items", models.Item{ID: 1, Name: "widget"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = itemsRequest(t, h.Get, "GET", "/example/items/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var envelope models.SuccessEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	item := envelope.Data.(map[string]any)
	assert.Equal(t, "widget", item["name"])
}

func TestItems_GetMissingIs404(t *testing.T) {
	h := newItemsHandler()

	rr := itemsRequest(t, h.Get, "GET", "/example/items/42", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	var envelope models.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	assert.Equal(t, models.CodeNotFound, envelope.Code)
	assert.Equal(t, "Item not found", envelope.Message)
}

func TestItems_DuplicateCreateIs400(t *testing.T) {
	h := newItemsHandler()

	itemsRequest(t, h.Create, "POST", "/example/items", models.Item{ID: 1, Name: "first"})
	rr := itemsRequest(t, h.Create, "POST", "/example/items", models.Item{ID: 1, Name: "second"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var envelope models.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	assert.Equal(t, models.CodeBadRequest, envelope.Code)
	assert.Equal(t, "Item with this ID already exists", envelope.Message)
}

func TestItems_ValidationFailureIs422(t *testing.T) {
	h := newItemsHandler()

	rr := itemsRequest(t, h.Create, "POST", "/example/items", models.Item{ID: 1, Name: ""})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var envelope models.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	assert.Equal(t, models.CodeValidation, envelope.Code)
	assert.NotNil(t, envelope.Detail)
}

func TestItems_UpdateMissingIs404(t *testing.T) {
	h := newItemsHandler()

	rr := itemsRequest(t, h.Update, "PUT", "/example/items/9", models.Item{Name: "renamed"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestItems_UpdateUsesPathID(t *testing.T) {
	h := newItemsHandler()

	itemsRequest(t, h.Create, "POST", "/example/items", models.Item{ID: 1, Name: "original"})
	rr := itemsRequest(t, h.Update, "PUT", "/example/items/1", models.Item{ID: 999, Name: "renamed"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = itemsRequest(t, h.Get, "GET", "/example/items/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var envelope models.SuccessEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	assert.Equal(t, "renamed", envelope.Data.(map[string]any)["name"])
}

func TestItems_DeleteReturnsRemovedItem(t *testing.T) {
	h := newItemsHandler()

	itemsRequest(t, h.Create, "POST", "/example/items", models.Item{ID: 3, Name: "ephemeral"})
	rr := itemsRequest(t, h.Delete, "DELETE", "/example/items/3", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var envelope models.SuccessEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	assert.Equal(t, "ephemeral", envelope.Data.(map[string]any)["name"])

	rr = itemsRequest(t, h.Delete, "DELETE", "/example/items/3", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestItems_NonNumericIDIs422(t *testing.T) {
	h := newItemsHandler()

	rr := itemsRequest(t, h.Get, "GET", "/example/items/abc", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestItems_ListEmptyIsArray(t *testing.T) {
	h := newItemsHandler()

	rr := itemsRequest(t, h.List, "GET", "/example/items", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"data":[]`)
}

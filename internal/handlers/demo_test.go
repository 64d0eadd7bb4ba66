package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanternworks/api-template/internal/httputil"
	"github.com/lanternworks/api-template/internal/logging"
	"github.com/lanternworks/api-template/internal/models"
)

func demoGet(t *testing.T, fn httputil.HandlerFunc, url string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	httputil.Adapt(logging.NewDiscard().Logger, fn)(rr, httptest.NewRequest("GET", url, nil))
	return rr
}

func TestHelloWorld(t *testing.T) {
	h := NewDemoHandler(logging.NewDiscard())
	rr := demoGet(t, h.HelloWorld, "/example/HelloWorld")

	require.Equal(t, http.StatusOK, rr.Code)

	var envelope models.SuccessEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	assert.Equal(t, models.CodeOK, envelope.Code)
	assert.Equal(t, "Hello World", envelope.Data.(map[string]any)["message"])
}

func TestErrorHelloWorld(t *testing.T) {
	h := NewDemoHandler(logging.NewDiscard())
	rr := demoGet(t, h.ErrorHelloWorld, "/example/ErrorHelloWorld")

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var envelope models.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	assert.Equal(t, models.CodeBadRequest, envelope.Code)
	assert.Equal(t, "Bad Request", envelope.Message)
}

func TestData(t *testing.T) {
	h := NewDemoHandler(logging.NewDiscard())
	rr := demoGet(t, h.Data, "/example/data")

	require.Equal(t, http.StatusOK, rr.Code)

	var envelope models.SuccessEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	data := envelope.Data.(map[string]any)
	assert.Len(t, data["data"], 5)
}

func TestLoggingInfo(t *testing.T) {
	h := NewDemoHandler(logging.NewDiscard())
	rr := demoGet(t, h.LoggingInfo, "/example/loggingInfo")

	require.Equal(t, http.StatusOK, rr.Code)
}

func TestItemsPaged(t *testing.T) {
	h := NewDemoHandler(logging.NewDiscard())

	tests := []struct {
		name    string
		url     string
		count   int
		total   int
		hasNext bool
		firstID int
	}{
		{"defaults", "/example/items-paged", 20, 200, true, 1},
		{"second page", "/example/items-paged?page=2&page_size=50", 50, 200, true, 51},
		{"last page", "/example/items-paged?page=4&page_size=50", 50, 200, false, 151},
		{"beyond the end", "/example/items-paged?page=99&page_size=50", 0, 200, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := demoGet(t, h.ItemsPaged, tt.url)
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

			var envelope models.SuccessEnvelope
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
			require.NotNil(t, envelope.Meta)
			assert.Equal(t, tt.total, envelope.Meta.Total)
			assert.Equal(t, tt.hasNext, envelope.Meta.HasNext)

			items := envelope.Data.([]any)
			assert.Len(t, items, tt.count)
			if tt.count > 0 {
				first := items[0].(map[string]any)
				assert.Equal(t, float64(tt.firstID), first["id"])
			}
		})
	}
}

func TestItemsPaged_DatasetIsStable(t *testing.T) {
	h := NewDemoHandler(logging.NewDiscard())

	first := demoGet(t, h.ItemsPaged, "/example/items-paged?page=1&page_size=5")
	second := demoGet(t, h.ItemsPaged, "/example/items-paged?page=1&page_size=5")
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestItemsPaged_InvalidParams(t *testing.T) {
	h := NewDemoHandler(logging.NewDiscard())

	for _, q := range []string{"page=0", "page_size=0", "page_size=101", "page=x"} {
		t.Run(q, func(t *testing.T) {
			rr := demoGet(t, h.ItemsPaged, fmt.Sprintf("/example/items-paged?%s", q))
			assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

			var envelope models.ErrorEnvelope
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
			assert.Equal(t, models.CodeValidation, envelope.Code)
		})
	}
}

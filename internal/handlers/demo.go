package handlers

import (
	"fmt"
	"net/http"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/lanternworks/api-template/internal/httputil"
	"github.com/lanternworks/api-template/internal/logging"
	"github.com/lanternworks/api-template/internal/models"
)

// DemoHandler serves the example routes illustrating the envelope and
// pagination contracts.
type DemoHandler struct {
	log      *logging.Logger
	pageData []models.Item
}

func NewDemoHandler(log *logging.Logger) *DemoHandler {
	// A fixed seed keeps the paged dataset stable across requests.
	faker := gofakeit.New(42)
	data := make([]models.Item, 0, 200)
	for i := 1; i <= 200; i++ {
		data = append(data, models.Item{
			ID:          i,
			Name:        faker.ProductName(),
			Description: faker.Sentence(6),
		})
	}
	return &DemoHandler{log: log, pageData: data}
}

// HelloWorld handles GET /example/HelloWorld.
func (h *DemoHandler) HelloWorld(w http.ResponseWriter, r *http.Request) error {
	httputil.WriteSuccess(w, http.StatusOK, map[string]string{"message": "Hello World"})
	return nil
}

// ErrorHelloWorld handles GET /example/ErrorHelloWorld: it always fails, to
// demonstrate the error envelope.
func (h *DemoHandler) ErrorHelloWorld(w http.ResponseWriter, r *http.Request) error {
	return httputil.BadRequest("Bad Request")
}

// Data handles GET /example/data.
func (h *DemoHandler) Data(w http.ResponseWriter, r *http.Request) error {
	httputil.WriteSuccess(w, http.StatusOK, map[string]any{
		"message": "Hello from the API",
		"data":    []int{1, 2, 3, 4, 5},
	})
	return nil
}

// LoggingInfo handles GET /example/loggingInfo: it emits a record at every
// severity so the sinks can be observed end to end.
func (h *DemoHandler) LoggingInfo(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	demo := h.log.Component("DEMO")

	demo.DebugContext(ctx, "logging debug")
	demo.InfoContext(ctx, "logging info")
	for i := 0; i < 10; i++ {
		demo.InfoContext(ctx, fmt.Sprintf("logging info %d", i))
	}
	demo.WarnContext(ctx, "logging warning")
	demo.ErrorContext(ctx, "logging error")
	demo.Log(ctx, logging.LevelCritical, "logging critical")

	httputil.WriteSuccess(w, http.StatusOK, map[string]string{"message": "logging info"})
	return nil
}

// ItemsPaged handles GET /example/items-paged with pagination metadata.
func (h *DemoHandler) ItemsPaged(w http.ResponseWriter, r *http.Request) error {
	page, err := models.ParsePageQuery(r.URL.Query())
	if err != nil {
		return httputil.Validation("Validation error", err.Error())
	}

	total := len(h.pageData)
	start := page.Offset()
	if start > total {
		start = total
	}
	end := start + page.Limit()
	if end > total {
		end = total
	}

	httputil.WriteSuccessPage(w, http.StatusOK, h.pageData[start:end], page.Meta(total))
	return nil
}

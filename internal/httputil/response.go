// Package httputil holds the JSON envelope writers and the error
// translation layer shared by all handlers.
package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lanternworks/api-template/internal/middleware"
	"github.com/lanternworks/api-template/internal/models"
)

// WriteJSON writes an arbitrary JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteSuccess wraps data in the success envelope.
func WriteSuccess(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, models.NewSuccess(data))
}

// WriteSuccessPage wraps data and pagination metadata in the success envelope.
func WriteSuccessPage(w http.ResponseWriter, status int, data any, meta models.PaginationMeta) {
	WriteJSON(w, status, models.NewSuccessPage(data, meta))
}

// HandlerFunc is a request handler that reports failure by returning an
// error instead of writing its own error response.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Adapt turns a HandlerFunc into an http.HandlerFunc, translating any
// returned error into the uniform error envelope. This is the single place
// where errors become wire responses: *Error values keep their status and
// code, everything else becomes an opaque 500 SERVER_ERROR. The original
// error is always logged before the response is written.
func Adapt(logger *slog.Logger, fn HandlerFunc) http.HandlerFunc {
	log := logger.With(slog.String("component", "HTTP"))
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		ctx := r.Context()
		requestID := middleware.GetRequestID(ctx)

		var apiErr *Error
		if errors.As(err, &apiErr) {
			log.Log(ctx, statusLevel(apiErr.Status), "request failed",
				slog.String("path", r.URL.Path),
				slog.Int("status", apiErr.Status),
				slog.String("code", string(apiErr.Code)),
				slog.String("err", apiErr.Message),
			)
			WriteJSON(w, apiErr.Status, models.ErrorEnvelope{
				Code:      apiErr.Code,
				Message:   apiErr.Message,
				Detail:    apiErr.Detail,
				RequestID: requestID,
			})
			return
		}

		// Unexpected fault: log the real error, answer with a generic one.
		log.ErrorContext(ctx, "unhandled error",
			slog.String("path", r.URL.Path),
			slog.String("err", err.Error()),
		)
		WriteJSON(w, http.StatusInternalServerError, models.ErrorEnvelope{
			Code:      models.CodeServerError,
			Message:   "Internal server error",
			RequestID: requestID,
		})
	}
}

func statusLevel(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

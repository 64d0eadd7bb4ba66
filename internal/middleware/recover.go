package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/lanternworks/api-template/internal/models"
)

// Recover converts panics below it into a 500 SERVER_ERROR envelope. The
// panic value is logged with full context but never reaches the client.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	log := logger.With(slog.String("component", "HTTP"))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				ctx := r.Context()
				log.ErrorContext(ctx, "panic handling request",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("panic", fmt.Sprint(rvr)),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(models.ErrorEnvelope{
					Code:      models.CodeServerError,
					Message:   "Internal server error",
					RequestID: GetRequestID(ctx),
				})
			}()

			next.ServeHTTP(w, r)
		})
	}
}

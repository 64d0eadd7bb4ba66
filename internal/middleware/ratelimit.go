package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lanternworks/api-template/internal/models"
	"github.com/lanternworks/api-template/internal/ratelimit"
)

// RateLimit consults the limiter before handler dispatch, keyed by client
// address and route. Over-limit requests get a 429 envelope. Limiter backend
// errors fail open: a broken Redis must not take the API down.
func RateLimit(limiter ratelimit.Limiter, logger *slog.Logger) func(http.Handler) http.Handler {
	log := logger.With(slog.String("component", "RATELIMIT"))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientAddr(r) + ":" + r.URL.Path

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				log.WarnContext(r.Context(), "rate limit check failed", slog.String("err", err.Error()))
				allowed = true
			}
			if !allowed {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(models.ErrorEnvelope{
					Code:      models.CodeFromStatus(http.StatusTooManyRequests),
					Message:   "Rate limit exceeded",
					RequestID: GetRequestID(r.Context()),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

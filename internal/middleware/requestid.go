package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

// RequestIDKey is the context key under which the correlation id is stored.
const RequestIDKey = contextKey("request-id")

// HeaderRequestID is the correlation id header honored on requests and
// echoed on every response.
const HeaderRequestID = "X-Request-ID"

// RequestID resolves the correlation id for each request: the inbound
// X-Request-ID header when present, a fresh UUID otherwise. The id is echoed
// on the response header and stored in the request context so downstream
// logging can attach it to every record.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set(HeaderRequestID, requestID)

		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID extracts the correlation id from the context.
// Returns empty string if not found.
func GetRequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
		return reqID
	}
	return ""
}

package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
)

// redactedHeaders are never written to log output.
var redactedHeaders = map[string]struct{}{
	"authorization": {},
	"cookie":        {},
	"x-api-key":     {},
}

// RequestLogging emits a start record when a request arrives and a complete
// record when it finishes, carrying the correlation id, latency and response
// size. Completion severity follows the status class: 2xx/3xx INFO,
// 4xx WARNING, 5xx ERROR. A panic below this middleware is logged as an
// error record and re-raised so the recovery layer can translate it.
func RequestLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	log := logger.With(slog.String("component", "HTTP"))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()
			clientIP := clientAddr(r)

			log.InfoContext(ctx, "request start",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("ip", clientIP),
				slog.String("headers", sanitizeHeaders(r.Header)),
			)

			rec := newResponseRecorder(w)

			defer func() {
				if rvr := recover(); rvr != nil {
					log.ErrorContext(ctx, "request error",
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String("err", fmt.Sprint(rvr)),
						slog.Int64("latency_ms", time.Since(start).Milliseconds()),
						slog.String("ip", clientIP),
					)
					panic(rvr)
				}

				log.Log(ctx, statusLevel(rec.status), "request complete",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Int("status", rec.status),
					slog.Int64("latency_ms", time.Since(start).Milliseconds()),
					slog.Int("size", rec.bytes),
					slog.String("ip", clientIP),
				)
			}()

			next.ServeHTTP(rec, r)
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

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// sanitizeHeaders renders request headers as "k=v" pairs, dropping
// credential-bearing ones.
func sanitizeHeaders(h http.Header) string {
	var b strings.Builder
	for name, values := range h {
		if _, redacted := redactedHeaders[strings.ToLower(name)]; redacted {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(strings.Join(values, ","))
	}
	return b.String()
}

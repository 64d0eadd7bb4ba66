package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "apitemplate_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "apitemplate_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Rate limiting metrics
	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "apitemplate_ratelimit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"key"},
	)

	// Log sink metrics
	LogRecordsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "apitemplate_logsink_records_dropped_total",
			Help: "Log records dropped because the database sink was not active",
		},
	)

	LogSinkErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "apitemplate_logsink_errors_total",
			Help: "Errors encountered while writing log records to storage",
		},
	)
)

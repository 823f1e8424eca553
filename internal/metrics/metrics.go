// Package metrics holds the prometheus collectors shared by the backend
// client, the session layer and the admin HTTP server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vodadmin_backend_request_duration_seconds",
			Help:    "Latency of catalog API calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	BackendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vodadmin_backend_requests_total",
			Help: "Catalog API calls by outcome",
		},
		[]string{"operation", "outcome"}, // ok, unauthorized, not_found, error, rejected
	)

	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vodadmin_backend_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vodadmin_login_attempts_total",
			Help: "Admin login attempts by result",
		},
		[]string{"result"}, // ok, invalid, forbidden, error
	)

	ForcedLogouts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vodadmin_forced_logouts_total",
			Help: "Sessions dropped because the backend rejected the bearer token",
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vodadmin_http_requests_total",
			Help: "Admin panel HTTP requests",
		},
		[]string{"method", "status"},
	)
)

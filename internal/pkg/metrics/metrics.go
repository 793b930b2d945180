// Package metrics holds the Prometheus collectors shared by the API and the worker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "route_service_http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "route_service_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// DirectionsRequests counts routing provider calls by outcome: ok, error, rejected.
	DirectionsRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "route_service_directions_requests_total",
			Help: "Routing provider calls by outcome",
		},
		[]string{"outcome"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "route_service_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	PhotoUploadBytes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "route_service_photo_upload_bytes_total",
			Help: "Bytes written to object storage by parent kind",
		},
		[]string{"kind"},
	)

	RelationToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "route_service_relation_toggles_total",
			Help: "Relation toggles by relation and resulting state",
		},
		[]string{"relation", "active"},
	)

	WorkersRunning = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "route_service_workers_running",
			Help: "Stream workers currently running",
		},
		[]string{"worker"},
	)

	// WorkerMessages counts stream messages by worker and outcome: processed, skipped, retry.
	WorkerMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "route_service_worker_messages_total",
			Help: "Stream messages handled by workers",
		},
		[]string{"worker", "outcome"},
	)
)

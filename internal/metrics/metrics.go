package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the flight logger
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Ingestion Metrics
	RecordsResolvedTotal  prometheus.CounterVec
	BatchDuration         prometheus.HistogramVec
	ProviderLookupsTotal  prometheus.CounterVec
	ProviderLookupLatency prometheus.HistogramVec

	// Pending lifecycle Metrics
	PendingTransitionsTotal prometheus.CounterVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightlog_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flightlog_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "flightlog_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Ingestion Metrics
		RecordsResolvedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightlog_records_resolved_total",
				Help: "Flight records processed by the resolution engine, by outcome",
			},
			[]string{"outcome"},
		),
		BatchDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flightlog_batch_duration_seconds",
				Help:    "End-to-end duration of ingestion batches",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"mode"},
		),
		ProviderLookupsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightlog_provider_lookups_total",
				Help: "External provider lookups by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),
		ProviderLookupLatency: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flightlog_provider_lookup_duration_seconds",
				Help:    "External provider call latency in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"provider"},
		),

		// Pending lifecycle Metrics
		PendingTransitionsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightlog_pending_transitions_total",
				Help: "Pending flight state transitions by type and result",
			},
			[]string{"transition", "result"},
		),
	}
}

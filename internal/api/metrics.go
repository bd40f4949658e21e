package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "rrspgo"

// Metrics holds the HTTP and calculation metrics of the server.
type Metrics struct {
	// RequestsTotal counts requests by route and status code.
	RequestsTotal *prometheus.CounterVec

	// RequestDurationSeconds observes handler latency by route.
	RequestDurationSeconds *prometheus.HistogramVec

	// CalculationsTotal counts engine operations by kind.
	CalculationsTotal *prometheus.CounterVec

	// ValidationErrorsTotal counts rejected request bodies by route.
	ValidationErrorsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all metrics on reg. Each server gets its
// own registry so tests can build several servers.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests by route and status",
			},
			[]string{"route", "status"},
		),

		RequestDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"route"},
		),

		CalculationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "engine",
				Name:      "calculations_total",
				Help:      "Total engine calculations by kind",
			},
			[]string{"kind"},
		),

		ValidationErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "validation_errors_total",
				Help:      "Total rejected request bodies by route",
			},
			[]string{"route"},
		),
	}
}

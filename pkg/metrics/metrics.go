package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OperationMetrics records stock operations by type and outcome.
type OperationMetrics struct {
	operations   *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewOperationMetrics registers the inventory metrics on the provided registerer.
func NewOperationMetrics(reg prometheus.Registerer) *OperationMetrics {
	if reg == nil {
		return &OperationMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_operations_total",
		Help: "Stock operations processed, by transaction type and outcome.",
	}, []string{"type", "outcome"})
	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	reg.MustRegister(operations, httpDuration)
	return &OperationMetrics{
		operations:   operations,
		httpDuration: httpDuration,
	}
}

// IncOperation counts a processed operation with the given outcome.
func (m *OperationMetrics) IncOperation(txType, outcome string) {
	if m == nil || m.operations == nil {
		return
	}
	m.operations.WithLabelValues(normalizeLabel(txType), normalizeLabel(outcome)).Inc()
}

// ObserveHTTP records a completed request.
func (m *OperationMetrics) ObserveHTTP(method, route, status string, duration time.Duration) {
	if m == nil || m.httpDuration == nil {
		return
	}
	m.httpDuration.WithLabelValues(normalizeLabel(method), normalizeLabel(route), normalizeLabel(status)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

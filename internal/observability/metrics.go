package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors shared by all service modules.
type Metrics struct {
	OperationAttempts *prometheus.CounterVec
	OperationFailures *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
}

// NewMetrics registers the service collectors on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		OperationAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "powonline_operation_attempts_total",
			Help: "Number of service operations started.",
		}, []string{"module", "operation"}),
		OperationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "powonline_operation_failures_total",
			Help: "Number of service operations that returned an error.",
		}, []string{"module", "operation"}),
		OperationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "powonline_operation_duration_seconds",
			Help:    "Duration of service operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"module", "operation"}),
	}
	reg.MustRegister(m.OperationAttempts, m.OperationFailures, m.OperationDuration)
	return m
}

// NewNoOpMetrics returns collectors that are never scraped. Used in tests.
func NewNoOpMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

// RecordAttempt counts an operation start.
func (m *Metrics) RecordAttempt(module, operation string) {
	m.OperationAttempts.WithLabelValues(module, operation).Inc()
}

// RecordFailure counts an operation error.
func (m *Metrics) RecordFailure(module, operation string) {
	m.OperationFailures.WithLabelValues(module, operation).Inc()
}

// RecordDuration records how long an operation took.
func (m *Metrics) RecordDuration(module, operation string, d time.Duration) {
	m.OperationDuration.WithLabelValues(module, operation).Observe(d.Seconds())
}

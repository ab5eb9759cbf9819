package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusObserver exports operation metrics to a Prometheus registry:
// a total counter, an error counter and a duration histogram, all labeled by
// component, operation and resource.
type PrometheusObserver struct {
	operations *prometheus.CounterVec
	errors     *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewPrometheusObserver creates an observer and registers its collectors on
// the given registerer. Pass prometheus.DefaultRegisterer for the global
// registry. Registration panics on metric name collision, so create only one
// observer per registry.
func NewPrometheusObserver(reg prometheus.Registerer) *PrometheusObserver {
	labels := []string{"component", "operation", "resource"}

	o := &PrometheusObserver{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "client_operations_total",
			Help: "Total number of client operations.",
		}, labels),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "client_operation_errors_total",
			Help: "Total number of failed client operations.",
		}, labels),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "client_operation_duration_seconds",
			Help:    "Client operation latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, labels),
	}

	reg.MustRegister(o.operations, o.errors, o.duration)
	return o
}

// ObserveOperation implements Observer.
func (o *PrometheusObserver) ObserveOperation(op OperationContext) {
	labels := prometheus.Labels{
		"component": op.Component,
		"operation": op.Operation,
		"resource":  op.Resource,
	}

	o.operations.With(labels).Inc()
	if op.Error != nil {
		o.errors.With(labels).Inc()
	}
	o.duration.With(labels).Observe(op.Duration.Seconds())
}

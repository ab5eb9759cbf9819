package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fyj-io/milvus-store/v1/observability"
)

// Metrics encapsulates the Prometheus registry and HTTP server responsible
// for exposing vector store metrics.
type Metrics struct {
	// Server is the HTTP server exposing the /metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	// Each service keeps its own isolated registry to prevent name collisions.
	Registry *prometheus.Registry

	observer *observability.PrometheusObserver
}

// NewMetrics initializes the metrics subsystem.
//
// It sets up a dedicated Prometheus registry, wraps all metrics with a
// constant `service` label, registers the vector store operation observer,
// and creates an HTTP server exposing the metrics endpoint.
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{
//	    Address:     ":9090",
//	    ServiceName: "search-store",
//	})
//	store, _ := client.VectorStore("documents", milvus.WithObserver(m.Observer()))
//	go m.Server.ListenAndServe()
//
// Metrics are then available at http://localhost:9090/metrics.
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	// All metrics emitted by this service automatically carry the label
	// service="<cfg.ServiceName>".
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry: registry,
		observer: observability.NewPrometheusObserver(wrappedRegistry),
	}

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}

	return m
}

// Observer returns the operation observer backed by this registry. Pass it to
// a store via milvus.WithObserver to record operation counts, errors and
// latencies.
func (m *Metrics) Observer() *observability.PrometheusObserver {
	return m.observer
}

// Handler returns the HTTP handler serving the registry, for callers that
// mount /metrics on an existing server instead of running a dedicated one.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Package metrics exposes vector store operation metrics over HTTP for
// Prometheus scraping.
//
// It owns an isolated Prometheus registry, labels every metric with the
// service name, and hosts the observability package's operation observer so
// that store operations (inserts, searches, deletes) are counted and timed
// automatically.
//
// # Direct Usage
//
//	m := metrics.NewMetrics(metrics.Config{
//		Address:     ":9090",
//		ServiceName: "search-store",
//	})
//
//	store, _ := client.VectorStore("documents",
//		milvus.WithObserver(m.Observer()),
//	)
//
//	go m.Server.ListenAndServe()
//
// Scrape http://localhost:9090/metrics for:
//
//	client_operations_total{component,operation,resource}
//	client_operation_errors_total{component,operation,resource}
//	client_operation_duration_seconds{component,operation,resource}
//
// # FX Module Integration
//
//	app := fx.New(
//		metrics.FXModule,
//		fx.Provide(metrics.NewConfig),
//		// other modules...
//	)
//
// The module provides both *Metrics and the observability.Observer interface,
// so downstream constructors can depend on either.
//
// # Configuration
//
//	METRICS_ADDRESS=:9090
//	METRICS_SERVICE_NAME=search-store
//	METRICS_ENABLE_DEFAULT_COLLECTORS=true
package metrics

// Package observability defines the operation observer contract shared by the
// client packages in this module.
//
// Client wrappers emit one [OperationContext] per operation (search, insert,
// partition management, ...) to a configured [Observer]. The package ships a
// Prometheus-backed implementation; applications with other sinks implement
// the one-method interface themselves.
//
//	obs := observability.NewPrometheusObserver(prometheus.DefaultRegisterer)
//	store, err := client.VectorStore("documents", milvus.WithObserver(obs))
package observability

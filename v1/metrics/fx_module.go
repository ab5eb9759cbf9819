package metrics

import (
	"context"
	"net/http"

	"go.uber.org/fx"

	"github.com/fyj-io/milvus-store/v1/logger"
	"github.com/fyj-io/milvus-store/v1/observability"
)

// FXModule wires the metrics subsystem into Fx.
//
// It provides:
//   - *Metrics                  (NewMetrics)
//   - observability.Observer    (the store operation observer)
//   - Lifecycle hook            (RegisterMetricsLifecycle)
//
// A metrics.Config instance must be available in the dependency injection
// container.
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		func(m *Metrics) observability.Observer { return m.Observer() },
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// MetricsParams defines the dependencies for the metrics lifecycle.
type MetricsParams struct {
	fx.In

	Metrics *Metrics
	Logger  *logger.Logger `optional:"true"`
}

// RegisterMetricsLifecycle starts the Prometheus HTTP server on application
// startup and shuts it down gracefully on stop.
func RegisterMetricsLifecycle(lc fx.Lifecycle, p MetricsParams) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if p.Logger != nil {
					p.Logger.Info("starting metrics server", nil, map[string]interface{}{
						"address": p.Metrics.Server.Addr,
					})
				}

				if err := p.Metrics.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					if p.Logger != nil {
						p.Logger.Error("metrics server failed", err, nil)
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if p.Logger != nil {
				p.Logger.Info("shutting down metrics server", nil, nil)
			}
			return p.Metrics.Server.Shutdown(ctx)
		},
	})
}

// Package logger provides structured logging for the vector store packages.
//
// It wraps Uber's Zap logger behind a small surface whose methods match the
// Logger interface accepted by the milvus package, so a *logger.Logger can be
// passed straight into a store configuration.
//
// # Direct Usage
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:       logger.Info,
//		ServiceName: "my-service",
//	})
//
//	log.Info("application started", nil, nil)
//	log.Error("insert failed", err, map[string]interface{}{
//		"collection": "documents",
//	})
//
// # Wiring Into the Store
//
//	cfg := milvus.DefaultConfig()
//	cfg.Logger = logger.NewLoggerClient(logger.NewConfig())
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Provide(logger.NewConfig),
//		// other modules...
//	)
//
// # Configuration
//
// The logger can be configured via environment variables:
//
//	ZAP_LOGGER_LEVEL=debug       # debug, info, warning, error
//	LOGGER_SERVICE_NAME=my-app   # value of the "service" field
//
// # Thread Safety
//
// All methods are safe for concurrent use by multiple goroutines.
package logger

package milvus

import (
	"context"
	"os"
	"strconv"
	"time"

	"go.uber.org/fx"
)

// FXModule is an fx.Module that provides and configures the Milvus client.
//
// Usage:
//
//	app := fx.New(
//	    milvus.FXModule,
//	    fx.Provide(milvus.NewConfigFromEnv),
//	    // other modules...
//	)
var FXModule = fx.Module("milvus",
	fx.Provide(
		NewClientWithDI,
	),
	fx.Invoke(RegisterMilvusLifecycle),
)

// NewConfigFromEnv builds a Config from MILVUS_* environment variables,
// falling back to defaults for anything unset.
func NewConfigFromEnv() *Config {
	cfg := DefaultConfig()

	if v := os.Getenv("MILVUS_ADDRESS"); v != "" {
		cfg.Address = v
	}
	cfg.Username = os.Getenv("MILVUS_USERNAME")
	cfg.Password = os.Getenv("MILVUS_PASSWORD")
	cfg.APIKey = os.Getenv("MILVUS_API_KEY")
	if v := os.Getenv("MILVUS_DATABASE"); v != "" {
		cfg.Database = v
	}
	if v := os.Getenv("MILVUS_COLLECTION_NAME"); v != "" {
		cfg.CollectionName = v
	}
	if v := os.Getenv("MILVUS_DIMENSION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Dimension = n
		}
	}
	if v := os.Getenv("MILVUS_METRIC"); v != "" {
		cfg.Metric = v
	}
	if v := os.Getenv("MILVUS_CONSISTENCY_LEVEL"); v != "" {
		cfg.ConsistencyLevel = v
	}
	if v := os.Getenv("MILVUS_CONNECT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.ConnectTimeout = d
		}
	}
	if v := os.Getenv("MILVUS_INITIALIZE_SCHEMA"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.InitializeSchema = b
		}
	}

	return cfg
}

// MilvusParams groups the dependencies needed to create a Milvus client.
type MilvusParams struct {
	fx.In

	Config *Config
	Logger Logger `optional:"true"`
}

// NewClientWithDI creates the Milvus client for fx, injecting the optional
// logger into the config before connecting.
func NewClientWithDI(params MilvusParams) (*Client, error) {
	if params.Logger != nil {
		params.Config.Logger = params.Logger
	}
	return NewClient(context.Background(), params.Config)
}

// MilvusLifecycleParams groups the dependencies for lifecycle management.
type MilvusLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *Client
	Config    *Config
}

// RegisterMilvusLifecycle wires the client into the fx lifecycle: on start it
// optionally initializes the default collection schema, on stop it closes the
// connection.
func RegisterMilvusLifecycle(params MilvusLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !params.Config.InitializeSchema {
				return nil
			}
			return params.Client.EnsureCollection(ctx, params.Config.CollectionName, params.Config.Dimension)
		},
		OnStop: func(ctx context.Context) error {
			return params.Client.Close(ctx)
		},
	})
}

package milvus

import (
	"context"
	"fmt"
	"sync"

	"github.com/milvus-io/milvus/client/v2/entity"
	"github.com/milvus-io/milvus/client/v2/index"
	"github.com/milvus-io/milvus/client/v2/milvusclient"

	"github.com/fyj-io/milvus-store/v1/vectorstore"
)

// Client wraps the official Milvus Go client and provides collection and
// index management plus access to collection-bound document stores.
//
// All exported methods are safe for concurrent use.
type Client struct {
	api    *milvusclient.Client
	cfg    *Config
	logger Logger

	mu     sync.RWMutex
	stores map[string]*Store
}

// NewClient connects to Milvus and validates connectivity with a list
// probe, failing fast if the service is unreachable or the credentials are
// rejected.
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, vectorstore.NewError(vectorstore.KindInvalidRequest, "connect", "invalid config", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = nopLogger{}
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	api, err := milvusclient.New(connectCtx, &milvusclient.ClientConfig{
		Address:  cfg.Address,
		Username: cfg.Username,
		Password: cfg.Password,
		APIKey:   cfg.APIKey,
		DBName:   cfg.Database,
	})
	if err != nil {
		return nil, vectorstore.NewError(vectorstore.KindConnection, "connect",
			fmt.Sprintf("dialing %s", cfg.Address), err)
	}

	c := &Client{
		api:    api,
		cfg:    cfg,
		logger: logger,
		stores: make(map[string]*Store),
	}

	if err := c.healthCheck(connectCtx); err != nil {
		_ = api.Close(context.Background())
		return nil, err
	}

	logger.Info("milvus client connected", nil, map[string]interface{}{
		"address":  cfg.Address,
		"database": cfg.Database,
	})
	return c, nil
}

// healthCheck verifies the connection with a cheap metadata call.
func (c *Client) healthCheck(ctx context.Context) error {
	if _, err := c.api.ListCollections(ctx, milvusclient.NewListCollectionOption()); err != nil {
		return vectorstore.NewError(vectorstore.KindConnection, "health_check",
			fmt.Sprintf("listing collections on %s", c.cfg.Address), err)
	}
	return nil
}

// Raw returns the underlying Milvus SDK client for operations this wrapper
// does not cover.
func (c *Client) Raw() *milvusclient.Client {
	return c.api
}

// Close shuts down the client connection.
func (c *Client) Close(ctx context.Context) error {
	if err := c.api.Close(ctx); err != nil {
		return vectorstore.NewError(vectorstore.KindConnection, "close", "", err)
	}
	return nil
}

//
// Collection management
//

// CreateCollection creates a collection from a schema, optionally with
// indexes built in the same call. The schema carries the collection name.
func (c *Client) CreateCollection(ctx context.Context, schema *entity.Schema, indexes ...milvusclient.CreateIndexOption) error {
	if schema == nil || schema.CollectionName == "" {
		return vectorstore.Errorf(vectorstore.KindInvalidRequest, "create_collection", "schema with collection name required")
	}

	opt := milvusclient.NewCreateCollectionOption(schema.CollectionName, schema)
	if len(indexes) > 0 {
		opt.WithIndexOptions(indexes...)
	}
	if err := c.api.CreateCollection(ctx, opt); err != nil {
		return vectorstore.NewError(vectorstore.KindCollectionCreate, "create_collection", schema.CollectionName, err)
	}
	return nil
}

// CreateCollectionFast creates a collection with the SDK's quick-setup
// schema: an auto-id primary key and a single dense vector field.
func (c *Client) CreateCollectionFast(ctx context.Context, name string, dimension int) error {
	if err := c.api.CreateCollection(ctx, milvusclient.SimpleCreateCollectionOptions(name, int64(dimension))); err != nil {
		return vectorstore.NewError(vectorstore.KindCollectionCreate, "create_collection_fast", name, err)
	}
	return nil
}

// DropCollection removes a collection and all its data.
func (c *Client) DropCollection(ctx context.Context, name string) error {
	if err := c.api.DropCollection(ctx, milvusclient.NewDropCollectionOption(name)); err != nil {
		return vectorstore.NewError(vectorstore.KindCollectionDrop, "drop_collection", name, err)
	}

	c.mu.Lock()
	delete(c.stores, name)
	c.mu.Unlock()
	return nil
}

// HasCollection reports whether a collection exists.
func (c *Client) HasCollection(ctx context.Context, name string) (bool, error) {
	exists, err := c.api.HasCollection(ctx, milvusclient.NewHasCollectionOption(name))
	if err != nil {
		return false, vectorstore.NewError(vectorstore.KindQuery, "has_collection", name, err)
	}
	return exists, nil
}

// ListCollections returns the names of all collections in the database.
func (c *Client) ListCollections(ctx context.Context) ([]string, error) {
	names, err := c.api.ListCollections(ctx, milvusclient.NewListCollectionOption())
	if err != nil {
		return nil, vectorstore.NewError(vectorstore.KindQuery, "list_collections", "", err)
	}
	return names, nil
}

// DescribeCollection returns the full collection metadata.
func (c *Client) DescribeCollection(ctx context.Context, name string) (*entity.Collection, error) {
	coll, err := c.api.DescribeCollection(ctx, milvusclient.NewDescribeCollectionOption(name))
	if err != nil {
		return nil, c.wrapNotFound(vectorstore.KindCollectionNotFound, "describe_collection", name, err)
	}
	return coll, nil
}

// RenameCollection renames a collection. Store handles for the old name are
// invalidated.
func (c *Client) RenameCollection(ctx context.Context, oldName, newName string) error {
	if err := c.api.RenameCollection(ctx, milvusclient.NewRenameCollectionOption(oldName, newName)); err != nil {
		return vectorstore.NewError(vectorstore.KindQuery, "rename_collection",
			fmt.Sprintf("%s -> %s", oldName, newName), err)
	}

	c.mu.Lock()
	delete(c.stores, oldName)
	c.mu.Unlock()
	return nil
}

// LoadCollection loads a collection into memory and waits until it is
// queryable.
func (c *Client) LoadCollection(ctx context.Context, name string) error {
	task, err := c.api.LoadCollection(ctx, milvusclient.NewLoadCollectionOption(name))
	if err != nil {
		return vectorstore.NewError(vectorstore.KindCollectionLoad, "load_collection", name, err)
	}
	if err := task.Await(ctx); err != nil {
		return vectorstore.NewError(vectorstore.KindCollectionLoad, "load_collection",
			fmt.Sprintf("awaiting load of %s", name), err)
	}
	return nil
}

// ReleaseCollection evicts a collection from memory.
func (c *Client) ReleaseCollection(ctx context.Context, name string) error {
	if err := c.api.ReleaseCollection(ctx, milvusclient.NewReleaseCollectionOption(name)); err != nil {
		return vectorstore.NewError(vectorstore.KindCollectionRelease, "release_collection", name, err)
	}
	return nil
}

// GetLoadState reports the load state of a collection.
func (c *Client) GetLoadState(ctx context.Context, name string) (entity.LoadState, error) {
	state, err := c.api.GetLoadState(ctx, milvusclient.NewGetLoadStateOption(name))
	if err != nil {
		return entity.LoadState{}, vectorstore.NewError(vectorstore.KindQuery, "get_load_state", name, err)
	}
	return state, nil
}

//
// Index management
//

// CreateIndex builds an index on a field and waits for completion.
func (c *Client) CreateIndex(ctx context.Context, collection, field string, idx index.Index) error {
	task, err := c.api.CreateIndex(ctx, milvusclient.NewCreateIndexOption(collection, field, idx))
	if err != nil {
		return vectorstore.NewError(vectorstore.KindIndexCreate, "create_index",
			fmt.Sprintf("%s.%s", collection, field), err)
	}
	if err := task.Await(ctx); err != nil {
		return vectorstore.NewError(vectorstore.KindIndexCreate, "create_index",
			fmt.Sprintf("awaiting index on %s.%s", collection, field), err)
	}
	return nil
}

// DropIndex removes an index by name.
func (c *Client) DropIndex(ctx context.Context, collection, indexName string) error {
	if err := c.api.DropIndex(ctx, milvusclient.NewDropIndexOption(collection, indexName)); err != nil {
		return vectorstore.NewError(vectorstore.KindIndexDrop, "drop_index",
			fmt.Sprintf("%s.%s", collection, indexName), err)
	}
	return nil
}

// DescribeIndex returns the definition of an index by name.
func (c *Client) DescribeIndex(ctx context.Context, collection, indexName string) (index.Index, error) {
	idx, err := c.api.DescribeIndex(ctx, milvusclient.NewDescribeIndexOption(collection, indexName))
	if err != nil {
		return nil, c.wrapNotFound(vectorstore.KindIndexNotFound, "describe_index",
			fmt.Sprintf("%s.%s", collection, indexName), err)
	}
	return idx, nil
}

// wrapNotFound maps describe-style failures onto a not-found kind. The SDK
// reports missing resources as plain server errors, so the mapping is by
// operation rather than by inspecting the message.
func (c *Client) wrapNotFound(kind vectorstore.Kind, op, resource string, err error) error {
	return vectorstore.NewError(kind, op, resource, err)
}

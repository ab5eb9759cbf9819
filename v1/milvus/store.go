package milvus

import (
	"context"
	"time"

	"github.com/milvus-io/milvus/client/v2/entity"
	"github.com/milvus-io/milvus/client/v2/milvusclient"

	"github.com/fyj-io/milvus-store/v1/observability"
	"github.com/fyj-io/milvus-store/v1/vectorstore"
)

// Embedder turns text into dense vectors. The store uses it to embed query
// text and to auto-embed documents inserted without an embedding.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
}

// Store is a document store bound to one collection. Handles are cheap and
// cached on the client; all methods are safe for concurrent use.
type Store struct {
	client     *Client
	collection string

	metric      vectorstore.MetricType
	consistency entity.ConsistencyLevel
	embedder    Embedder
	observer    observability.Observer
	logger      Logger
}

// StoreOption customizes a store handle at creation time.
type StoreOption func(*Store)

// WithEmbedder configures the embedder used for query text and auto-embedding
// of inserted documents.
func WithEmbedder(e Embedder) StoreOption {
	return func(s *Store) { s.embedder = e }
}

// WithMetric overrides the dense metric used for score normalization. It must
// match the metric the collection's vector index was built with.
func WithMetric(m vectorstore.MetricType) StoreOption {
	return func(s *Store) { s.metric = m }
}

// WithObserver attaches an operation observer.
func WithObserver(o observability.Observer) StoreOption {
	return func(s *Store) { s.observer = o }
}

// WithStoreLogger overrides the client logger for this store.
func WithStoreLogger(l Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

// VectorStore returns the store handle for a collection, creating and caching
// it on first use. Options apply only when the handle is created; later calls
// for the same collection return the cached handle unchanged. An empty name
// uses the configured default collection.
func (c *Client) VectorStore(name string, opts ...StoreOption) (*Store, error) {
	if name == "" {
		name = c.cfg.CollectionName
	}
	if name == "" {
		return nil, vectorstore.Errorf(vectorstore.KindInvalidRequest, "vector_store",
			"collection name required (none configured)")
	}

	c.mu.RLock()
	store, ok := c.stores[name]
	c.mu.RUnlock()
	if ok {
		return store, nil
	}

	metric, err := vectorstore.ParseMetric(c.cfg.Metric)
	if err != nil {
		return nil, err
	}
	consistency, err := parseConsistencyLevel(c.cfg.ConsistencyLevel)
	if err != nil {
		return nil, vectorstore.NewError(vectorstore.KindInvalidRequest, "vector_store", "", err)
	}

	store = &Store{
		client:      c,
		collection:  name,
		metric:      metric,
		consistency: consistency,
		logger:      c.logger,
	}
	for _, opt := range opts {
		opt(store)
	}

	c.mu.Lock()
	if existing, ok := c.stores[name]; ok {
		store = existing
	} else {
		c.stores[name] = store
	}
	c.mu.Unlock()

	return store, nil
}

// Collection returns the collection name this store is bound to.
func (s *Store) Collection() string { return s.collection }

//
// Writes
//

// Add inserts documents. Documents with content but no embedding are embedded
// in one batch via the configured embedder; a missing embedding without an
// embedder is a data error. An empty partition targets the default partition.
func (s *Store) Add(ctx context.Context, partition string, docs ...*vectorstore.Document) error {
	start := time.Now()
	err := s.write(ctx, partition, docs, false)
	s.observe("add", partition, time.Since(start), err, int64(len(docs)))
	return err
}

// Upsert inserts documents, replacing any existing document with the same ID.
// Embedding behavior matches Add.
func (s *Store) Upsert(ctx context.Context, partition string, docs ...*vectorstore.Document) error {
	start := time.Now()
	err := s.write(ctx, partition, docs, true)
	s.observe("upsert", partition, time.Since(start), err, int64(len(docs)))
	return err
}

func (s *Store) write(ctx context.Context, partition string, docs []*vectorstore.Document, upsert bool) error {
	op := "add"
	kind := vectorstore.KindInsert
	if upsert {
		op = "upsert"
		kind = vectorstore.KindUpsert
	}

	if len(docs) == 0 {
		return nil
	}
	if err := s.autoEmbed(ctx, op, docs); err != nil {
		return err
	}

	columns, err := columnsFromDocuments(docs)
	if err != nil {
		return vectorstore.NewError(kind, op, s.collection, err)
	}

	opt := milvusclient.NewColumnBasedInsertOption(s.collection, columns...)
	if partition != "" {
		opt.WithPartition(partition)
	}

	if upsert {
		_, err = s.client.api.Upsert(ctx, opt)
	} else {
		_, err = s.client.api.Insert(ctx, opt)
	}
	if err != nil {
		return vectorstore.NewError(kind, op, s.collection, err)
	}
	return nil
}

// AddRows inserts raw rows, one map per entity, with column types inferred
// from the values (string, int64, float64, bool, []float32, nested map as
// JSON). This is the write path for subtypes with extra scalar columns.
func (s *Store) AddRows(ctx context.Context, partition string, rows []map[string]any) error {
	start := time.Now()
	err := s.addRows(ctx, partition, rows)
	s.observe("add_rows", partition, time.Since(start), err, int64(len(rows)))
	return err
}

func (s *Store) addRows(ctx context.Context, partition string, rows []map[string]any) error {
	if len(rows) == 0 {
		return nil
	}
	columns, err := columnsFromRows(rows)
	if err != nil {
		return vectorstore.NewError(vectorstore.KindInsert, "add_rows", s.collection, err)
	}

	opt := milvusclient.NewColumnBasedInsertOption(s.collection, columns...)
	if partition != "" {
		opt.WithPartition(partition)
	}
	if _, err := s.client.api.Insert(ctx, opt); err != nil {
		return vectorstore.NewError(vectorstore.KindInsert, "add_rows", s.collection, err)
	}
	return nil
}

// autoEmbed fills missing embeddings from content in a single batch call.
func (s *Store) autoEmbed(ctx context.Context, op string, docs []*vectorstore.Document) error {
	var pending []int
	for i, doc := range docs {
		if doc == nil {
			return vectorstore.Errorf(vectorstore.KindInvalidRequest, op, "nil document at index %d", i)
		}
		if doc.ID == "" {
			return vectorstore.Errorf(vectorstore.KindInvalidRequest, op, "document at index %d has no id", i)
		}
		if len(doc.Embedding) == 0 {
			pending = append(pending, i)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	if s.embedder == nil {
		return vectorstore.Errorf(vectorstore.KindMissingEmbedder, op,
			"%d document(s) have no embedding and no embedder is configured", len(pending))
	}

	texts := make([]string, len(pending))
	for i, idx := range pending {
		if docs[idx].Content == "" {
			return vectorstore.Errorf(vectorstore.KindInvalidRequest, op,
				"document %q has neither embedding nor content", docs[idx].ID)
		}
		texts[i] = docs[idx].Content
	}

	vectors, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return vectorstore.NewError(vectorstore.KindMissingEmbedder, op, "embedding documents", err)
	}
	if len(vectors) != len(pending) {
		return vectorstore.Errorf(vectorstore.KindMissingEmbedder, op,
			"embedder returned %d vectors for %d texts", len(vectors), len(pending))
	}
	for i, idx := range pending {
		docs[idx].Embedding = vectors[i]
	}
	return nil
}

//
// Deletes
//

// Delete removes documents by ID. An empty partition targets the whole
// collection.
func (s *Store) Delete(ctx context.Context, partition string, ids ...string) error {
	start := time.Now()
	err := s.delete(ctx, partition, ids)
	s.observe("delete", partition, time.Since(start), err, int64(len(ids)))
	return err
}

func (s *Store) delete(ctx context.Context, partition string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	opt := milvusclient.NewDeleteOption(s.collection).
		WithStringIDs(vectorstore.FieldID, ids)
	if partition != "" {
		opt.WithPartition(partition)
	}
	if _, err := s.client.api.Delete(ctx, opt); err != nil {
		return vectorstore.NewError(vectorstore.KindDelete, "delete", s.collection, err)
	}
	return nil
}

// DeleteByFilter removes all documents matching a filter expression. The
// expression must be non-empty; wiping a collection is an explicit
// DropCollection, not an accidental empty filter.
func (s *Store) DeleteByFilter(ctx context.Context, partition, filter string) error {
	start := time.Now()
	err := s.deleteByFilter(ctx, partition, filter)
	s.observe("delete_by_filter", partition, time.Since(start), err, 0)
	return err
}

func (s *Store) deleteByFilter(ctx context.Context, partition, filter string) error {
	if filter == "" {
		return vectorstore.Errorf(vectorstore.KindInvalidRequest, "delete_by_filter",
			"filter expression must not be empty")
	}

	opt := milvusclient.NewDeleteOption(s.collection).WithExpr(filter)
	if partition != "" {
		opt.WithPartition(partition)
	}
	if _, err := s.client.api.Delete(ctx, opt); err != nil {
		return vectorstore.NewError(vectorstore.KindDelete, "delete_by_filter", s.collection, err)
	}
	return nil
}

//
// Counting
//

// Count returns the number of documents, optionally scoped to one partition.
// The count reflects flushed and growing segments per the configured
// consistency level.
func (s *Store) Count(ctx context.Context, partition string) (int64, error) {
	start := time.Now()
	n, err := s.count(ctx, partition)
	s.observe("count", partition, time.Since(start), err, n)
	return n, err
}

func (s *Store) count(ctx context.Context, partition string) (int64, error) {
	opt := milvusclient.NewQueryOption(s.collection).
		WithOutputFields("count(*)").
		WithConsistencyLevel(s.consistency)
	if partition != "" {
		opt.WithPartitions(partition)
	}

	rs, err := s.client.api.Query(ctx, opt)
	if err != nil {
		return 0, vectorstore.NewError(vectorstore.KindQuery, "count", s.collection, err)
	}

	col := rs.GetColumn("count(*)")
	if col == nil || col.Len() == 0 {
		return 0, vectorstore.Errorf(vectorstore.KindQuery, "count",
			"backend returned no count column for %s", s.collection)
	}
	n, err := col.GetAsInt64(0)
	if err != nil {
		return 0, vectorstore.NewError(vectorstore.KindQuery, "count", s.collection, err)
	}
	return n, nil
}

//
// Partition management
//

// CreatePartition creates a partition. Creating an existing partition is an
// error.
func (s *Store) CreatePartition(ctx context.Context, name string) error {
	start := time.Now()
	var err error
	if err = s.client.api.CreatePartition(ctx, milvusclient.NewCreatePartitionOption(s.collection, name)); err != nil {
		err = vectorstore.NewError(vectorstore.KindPartitionCreate, "create_partition", name, err)
	}
	s.observe("create_partition", name, time.Since(start), err, 0)
	return err
}

// DropPartition removes a partition and its data. The partition must be
// released first.
func (s *Store) DropPartition(ctx context.Context, name string) error {
	start := time.Now()
	var err error
	if err = s.client.api.DropPartition(ctx, milvusclient.NewDropPartitionOption(s.collection, name)); err != nil {
		err = vectorstore.NewError(vectorstore.KindPartitionDrop, "drop_partition", name, err)
	}
	s.observe("drop_partition", name, time.Since(start), err, 0)
	return err
}

// HasPartition reports whether a partition exists.
func (s *Store) HasPartition(ctx context.Context, name string) (bool, error) {
	exists, err := s.client.api.HasPartition(ctx, milvusclient.NewHasPartitionOption(s.collection, name))
	if err != nil {
		return false, vectorstore.NewError(vectorstore.KindQuery, "has_partition", name, err)
	}
	return exists, nil
}

// ListPartitions returns all partition names of the collection.
func (s *Store) ListPartitions(ctx context.Context) ([]string, error) {
	names, err := s.client.api.ListPartitions(ctx, milvusclient.NewListPartitionOption(s.collection))
	if err != nil {
		return nil, vectorstore.NewError(vectorstore.KindQuery, "list_partitions", s.collection, err)
	}
	return names, nil
}

// LoadPartitions loads partitions into memory and waits until they are
// queryable.
func (s *Store) LoadPartitions(ctx context.Context, names ...string) error {
	task, err := s.client.api.LoadPartitions(ctx, milvusclient.NewLoadPartitionsOption(s.collection, names...))
	if err != nil {
		return vectorstore.NewError(vectorstore.KindPartitionLoad, "load_partitions", s.collection, err)
	}
	if err := task.Await(ctx); err != nil {
		return vectorstore.NewError(vectorstore.KindPartitionLoad, "load_partitions", s.collection, err)
	}
	return nil
}

// ReleasePartitions evicts partitions from memory.
func (s *Store) ReleasePartitions(ctx context.Context, names ...string) error {
	if err := s.client.api.ReleasePartitions(ctx, milvusclient.NewReleasePartitionsOptions(s.collection, names...)); err != nil {
		return vectorstore.NewError(vectorstore.KindPartitionRelease, "release_partitions", s.collection, err)
	}
	return nil
}

//
// Maintenance
//

// Flush seals the collection's growing segments and waits for completion.
func (s *Store) Flush(ctx context.Context) error {
	start := time.Now()
	err := s.flush(ctx)
	s.observe("flush", "", time.Since(start), err, 0)
	return err
}

func (s *Store) flush(ctx context.Context) error {
	task, err := s.client.api.Flush(ctx, milvusclient.NewFlushOption(s.collection))
	if err != nil {
		return vectorstore.NewError(vectorstore.KindQuery, "flush", s.collection, err)
	}
	if err := task.Await(ctx); err != nil {
		return vectorstore.NewError(vectorstore.KindQuery, "flush", s.collection, err)
	}
	return nil
}

// Compact triggers background compaction and returns the compaction job ID.
func (s *Store) Compact(ctx context.Context) (int64, error) {
	id, err := s.client.api.Compact(ctx, milvusclient.NewCompactOption(s.collection))
	if err != nil {
		return 0, vectorstore.NewError(vectorstore.KindQuery, "compact", s.collection, err)
	}
	return id, nil
}

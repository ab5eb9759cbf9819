package milvus

import (
	"context"
	"fmt"

	"github.com/milvus-io/milvus/client/v2/entity"
	"github.com/milvus-io/milvus/client/v2/index"
	"github.com/milvus-io/milvus/client/v2/milvusclient"

	"github.com/fyj-io/milvus-store/v1/vectorstore"
)

// Schema limits for the base document fields.
const (
	maxIDLength      = 128
	maxContentLength = 65535

	bm25FunctionName = "content_bm25"
)

// ExtraField declares an additional scalar column for an application subtype
// of the base document.
type ExtraField struct {
	Name     string
	DataType entity.FieldType
	// MaxLength applies to VarChar fields only.
	MaxLength int
}

// DocumentSchema builds the base document collection schema:
// id (varchar primary key), content (varchar), embedding (dense vector),
// sparse (sparse vector), metadata (JSON), plus any extra scalar columns.
func DocumentSchema(name string, dimension int, extra ...ExtraField) *entity.Schema {
	schema := entity.NewSchema().
		WithName(name).
		WithDescription("document collection").
		WithAutoID(false)

	schema.WithField(entity.NewField().
		WithName(vectorstore.FieldID).
		WithDataType(entity.FieldTypeVarChar).
		WithIsPrimaryKey(true).
		WithMaxLength(maxIDLength))

	schema.WithField(entity.NewField().
		WithName(vectorstore.FieldContent).
		WithDataType(entity.FieldTypeVarChar).
		WithMaxLength(maxContentLength))

	schema.WithField(entity.NewField().
		WithName(vectorstore.FieldEmbedding).
		WithDataType(entity.FieldTypeFloatVector).
		WithDim(int64(dimension)))

	schema.WithField(entity.NewField().
		WithName(vectorstore.FieldSparse).
		WithDataType(entity.FieldTypeSparseVector))

	schema.WithField(entity.NewField().
		WithName(vectorstore.FieldMetadata).
		WithDataType(entity.FieldTypeJSON))

	for _, f := range extra {
		field := entity.NewField().
			WithName(f.Name).
			WithDataType(f.DataType)
		if f.DataType == entity.FieldTypeVarChar && f.MaxLength > 0 {
			field.WithMaxLength(int64(f.MaxLength))
		}
		schema.WithField(field)
	}

	return schema
}

// DocumentSchemaWithBM25 is DocumentSchema with full-text search enabled:
// the content field gets an analyzer and a server-side BM25 function fills
// the sparse column from it, so keyword search works without client-side
// sparse embedding.
func DocumentSchemaWithBM25(name string, dimension int, extra ...ExtraField) *entity.Schema {
	schema := entity.NewSchema().
		WithName(name).
		WithDescription("document collection with BM25 full-text search").
		WithAutoID(false)

	schema.WithField(entity.NewField().
		WithName(vectorstore.FieldID).
		WithDataType(entity.FieldTypeVarChar).
		WithIsPrimaryKey(true).
		WithMaxLength(maxIDLength))

	schema.WithField(entity.NewField().
		WithName(vectorstore.FieldContent).
		WithDataType(entity.FieldTypeVarChar).
		WithEnableAnalyzer(true).
		WithEnableMatch(true).
		WithMaxLength(maxContentLength))

	schema.WithField(entity.NewField().
		WithName(vectorstore.FieldEmbedding).
		WithDataType(entity.FieldTypeFloatVector).
		WithDim(int64(dimension)))

	schema.WithField(entity.NewField().
		WithName(vectorstore.FieldSparse).
		WithDataType(entity.FieldTypeSparseVector))

	schema.WithField(entity.NewField().
		WithName(vectorstore.FieldMetadata).
		WithDataType(entity.FieldTypeJSON))

	for _, f := range extra {
		field := entity.NewField().
			WithName(f.Name).
			WithDataType(f.DataType)
		if f.DataType == entity.FieldTypeVarChar && f.MaxLength > 0 {
			field.WithMaxLength(int64(f.MaxLength))
		}
		schema.WithField(field)
	}

	schema.WithFunction(entity.NewFunction().
		WithName(bm25FunctionName).
		WithInputFields(vectorstore.FieldContent).
		WithOutputFields(vectorstore.FieldSparse).
		WithType(entity.FunctionTypeBM25))

	return schema
}

// VectorIndex builds an AUTOINDEX index option for the dense vector field.
func VectorIndex(collection string, metric entity.MetricType) milvusclient.CreateIndexOption {
	return milvusclient.NewCreateIndexOption(collection, vectorstore.FieldEmbedding,
		index.NewAutoIndex(metric))
}

// HNSWIndex builds an HNSW index option for the dense vector field.
func HNSWIndex(collection string, metric entity.MetricType, m, efConstruction int) milvusclient.CreateIndexOption {
	return milvusclient.NewCreateIndexOption(collection, vectorstore.FieldEmbedding,
		index.NewHNSWIndex(metric, m, efConstruction))
}

// SparseIndex builds the BM25 index option for the sparse vector field.
func SparseIndex(collection string) milvusclient.CreateIndexOption {
	return milvusclient.NewCreateIndexOption(collection, vectorstore.FieldSparse,
		index.NewAutoIndex(entity.BM25))
}

// EnsureCollection creates the collection when missing (schema, dense index,
// BM25 sparse index) and loads it into memory. Existing collections are left
// untouched apart from loading.
func (c *Client) EnsureCollection(ctx context.Context, name string, dimension int, extra ...ExtraField) error {
	exists, err := c.HasCollection(ctx, name)
	if err != nil {
		return err
	}

	if !exists {
		metric, err := denseMetric(c.cfg.Metric)
		if err != nil {
			return err
		}
		schema := DocumentSchemaWithBM25(name, dimension, extra...)
		if err := c.CreateCollection(ctx, schema,
			VectorIndex(name, metric),
			SparseIndex(name),
		); err != nil {
			return err
		}
		c.logger.Info("milvus collection created", nil, map[string]interface{}{
			"collection": name,
			"dimension":  dimension,
		})
	}

	return c.LoadCollection(ctx, name)
}

// denseMetric converts a configured metric name into the SDK metric type.
func denseMetric(name string) (entity.MetricType, error) {
	metric, err := vectorstore.ParseMetric(name)
	if err != nil {
		return "", err
	}
	switch metric {
	case vectorstore.MetricCosine:
		return entity.COSINE, nil
	case vectorstore.MetricL2:
		return entity.L2, nil
	case vectorstore.MetricIP:
		return entity.IP, nil
	}
	return "", vectorstore.Errorf(vectorstore.KindInvalidRequest, "metric",
		"%s is not a dense vector metric", metric)
}

// parseConsistencyLevel converts a configured consistency level name into the
// SDK constant.
func parseConsistencyLevel(name string) (entity.ConsistencyLevel, error) {
	switch name {
	case "Strong":
		return entity.ClStrong, nil
	case "Session":
		return entity.ClSession, nil
	case "Bounded", "":
		return entity.ClBounded, nil
	case "Eventually":
		return entity.ClEventually, nil
	}
	return entity.ClBounded, fmt.Errorf(
		"milvus: unknown consistency level %q (valid: Strong, Session, Bounded, Eventually)", name)
}

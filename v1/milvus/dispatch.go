package milvus

import (
	"context"
	"time"

	"github.com/milvus-io/milvus/client/v2/entity"
	"github.com/milvus-io/milvus/client/v2/milvusclient"

	"github.com/fyj-io/milvus-store/v1/vectorstore"
)

// GetByID fetches documents by primary key and decodes them into T. Missing
// IDs are simply absent from the result; the call does not error on partial
// hits. An empty partition reads the whole collection.
func GetByID[T any](ctx context.Context, s *Store, partition string, ids ...string) ([]T, error) {
	start := time.Now()
	docs, err := getByID[T](ctx, s, partition, ids)
	s.observe("get_by_id", partition, time.Since(start), err, int64(len(docs)))
	return docs, err
}

func getByID[T any](ctx context.Context, s *Store, partition string, ids []string) ([]T, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	fields, err := resolveOutputFields[T](nil)
	if err != nil {
		return nil, err
	}

	opt := milvusclient.NewQueryOption(s.collection).
		WithFilter(vectorstore.FieldID + " in {ids}").
		WithTemplateParam("ids", ids).
		WithOutputFields(fields...).
		WithConsistencyLevel(s.consistency)
	if partition != "" {
		opt.WithPartitions(partition)
	}

	rs, err := s.client.api.Query(ctx, opt)
	if err != nil {
		return nil, vectorstore.NewError(vectorstore.KindQuery, "get_by_id", s.collection, err)
	}

	rows, err := rowsFromColumns(rs.Fields, rs.Len())
	if err != nil {
		return nil, vectorstore.NewError(vectorstore.KindQuery, "get_by_id", s.collection, err)
	}
	docs, err := decodeRows[T](rows)
	if err != nil {
		return nil, vectorstore.NewError(vectorstore.KindQuery, "get_by_id", s.collection, err)
	}
	return docs, nil
}

// Query runs a scalar filter query and decodes the matches into T. Output
// fields default to T's registered projection unless the request overrides
// them.
func Query[T any](ctx context.Context, s *Store, req vectorstore.QueryRequest) ([]T, error) {
	start := time.Now()
	docs, err := query[T](ctx, s, req)
	s.observe("query", req.PartitionName, time.Since(start), err, int64(len(docs)))
	return docs, err
}

func query[T any](ctx context.Context, s *Store, req vectorstore.QueryRequest) ([]T, error) {
	fields, err := resolveOutputFields[T](req.OutputFields)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = vectorstore.DefaultQueryLimit
	}

	opt := milvusclient.NewQueryOption(s.collection).
		WithOutputFields(fields...).
		WithLimit(limit).
		WithConsistencyLevel(s.consistency)
	if req.Filter != "" {
		opt.WithFilter(req.Filter)
	}
	if req.Offset > 0 {
		opt.WithOffset(req.Offset)
	}
	if req.PartitionName != "" {
		opt.WithPartitions(req.PartitionName)
	}

	rs, err := s.client.api.Query(ctx, opt)
	if err != nil {
		return nil, vectorstore.NewError(vectorstore.KindQuery, "query", s.collection, err)
	}

	rows, err := rowsFromColumns(rs.Fields, rs.Len())
	if err != nil {
		return nil, vectorstore.NewError(vectorstore.KindQuery, "query", s.collection, err)
	}
	docs, err := decodeRows[T](rows)
	if err != nil {
		return nil, vectorstore.NewError(vectorstore.KindQuery, "query", s.collection, err)
	}
	return docs, nil
}

// Search dispatches a search request by mode and decodes the hits into T.
//
// VECTOR runs one ANN search over the dense field. KEYWORD runs one BM25
// search over the sparse field. HYBRID runs both and fuses them client-side
// as a weighted sum of normalized scores, so the two legs are comparable
// regardless of the dense metric.
func Search[T any](ctx context.Context, s *Store, req vectorstore.SearchRequest) ([]vectorstore.SearchResult[T], error) {
	start := time.Now()
	results, err := search[T](ctx, s, req)
	s.observe("search", "", time.Since(start), err, int64(len(results)))
	return results, err
}

func search[T any](ctx context.Context, s *Store, req vectorstore.SearchRequest) ([]vectorstore.SearchResult[T], error) {
	req = normalizeSearchRequest(req)
	if !req.Mode.Valid() {
		return nil, vectorstore.Errorf(vectorstore.KindInvalidRequest, "search",
			"unknown search mode %q", string(req.Mode))
	}

	fields, err := resolveOutputFields[T](req.OutputFields)
	if err != nil {
		return nil, err
	}

	switch req.Mode {
	case vectorstore.SearchModeVector:
		vec, err := s.resolveQueryVector(ctx, req)
		if err != nil {
			return nil, err
		}
		hits, err := s.searchLeg(ctx, req, req.VectorField, entity.FloatVector(vec), fields, req.TopK, req.Offset)
		if err != nil {
			return nil, err
		}
		return assembleResults[T](hits, s.metric, req.SimilarityThreshold, req.TopK)

	case vectorstore.SearchModeKeyword:
		if req.QueryText == "" {
			return nil, vectorstore.Errorf(vectorstore.KindInvalidRequest, "search",
				"keyword search requires query text")
		}
		hits, err := s.searchLeg(ctx, req, req.SparseField, entity.Text(req.QueryText), fields, req.TopK, req.Offset)
		if err != nil {
			return nil, err
		}
		return assembleResults[T](hits, vectorstore.MetricBM25, req.SimilarityThreshold, req.TopK)

	case vectorstore.SearchModeHybrid:
		return hybridSearch[T](ctx, s, req, fields)
	}

	return nil, vectorstore.Errorf(vectorstore.KindInvalidRequest, "search",
		"unknown search mode %q", string(req.Mode))
}

// normalizeSearchRequest fills defaults for requests constructed by hand
// rather than through the builder.
func normalizeSearchRequest(req vectorstore.SearchRequest) vectorstore.SearchRequest {
	if req.Mode == "" {
		req.Mode = vectorstore.SearchModeVector
	}
	if req.TopK <= 0 {
		req.TopK = vectorstore.DefaultTopK
	}
	if req.VectorField == "" {
		req.VectorField = vectorstore.DefaultVectorField
	}
	if req.SparseField == "" {
		req.SparseField = vectorstore.DefaultSparseField
	}
	if req.TextField == "" {
		req.TextField = vectorstore.DefaultTextField
	}
	return req
}

// resolveQueryVector returns the request's vector, embedding the query text
// when needed. No embedder for a text query is a configuration error, never
// a silent fallback to another mode.
func (s *Store) resolveQueryVector(ctx context.Context, req vectorstore.SearchRequest) ([]float32, error) {
	if len(req.QueryVector) > 0 {
		return req.QueryVector, nil
	}
	if req.QueryText == "" {
		return nil, vectorstore.Errorf(vectorstore.KindInvalidRequest, "search",
			"either query vector or query text required")
	}
	if s.embedder == nil {
		return nil, vectorstore.Errorf(vectorstore.KindMissingEmbedder, "search",
			"query text requires an embedder for %s mode", req.Mode)
	}

	vec, err := s.embedder.EmbedQuery(ctx, req.QueryText)
	if err != nil {
		return nil, vectorstore.NewError(vectorstore.KindMissingEmbedder, "search", "embedding query", err)
	}
	return vec, nil
}

// legHit is one raw hit from a single retrieval leg.
type legHit struct {
	id  string
	raw float32
	row map[string]any
}

// searchLeg runs one native ANN search and extracts ids, raw scores and
// projected rows.
func (s *Store) searchLeg(ctx context.Context, req vectorstore.SearchRequest, annsField string, data entity.Vector, fields []string, limit, offset int) ([]legHit, error) {
	opt := milvusclient.NewSearchOption(s.collection, limit, []entity.Vector{data}).
		WithANNSField(annsField).
		WithOutputFields(fields...).
		WithConsistencyLevel(s.consistency)
	if req.Filter != "" {
		opt.WithFilter(req.Filter)
	}
	if len(req.PartitionNames) > 0 {
		opt.WithPartitions(req.PartitionNames...)
	}
	if offset > 0 {
		opt.WithOffset(offset)
	}
	for k, v := range req.SearchParams {
		opt.WithSearchParam(k, v)
	}

	results, err := s.client.api.Search(ctx, opt)
	if err != nil {
		return nil, vectorstore.NewError(vectorstore.KindSearch, "search", s.collection, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	rs := results[0]
	n := rs.ResultCount
	rows, err := rowsFromColumns(rs.Fields, n)
	if err != nil {
		return nil, vectorstore.NewError(vectorstore.KindSearch, "search", s.collection, err)
	}

	hits := make([]legHit, 0, n)
	for i := 0; i < n; i++ {
		id, err := rs.IDs.GetAsString(i)
		if err != nil {
			return nil, vectorstore.NewError(vectorstore.KindSearch, "search", s.collection, err)
		}
		hits = append(hits, legHit{id: id, raw: rs.Scores[i], row: rows[i]})
	}
	return hits, nil
}

// assembleResults normalizes raw leg scores, applies the threshold and
// decodes the rows.
func assembleResults[T any](hits []legHit, metric vectorstore.MetricType, threshold float32, topK int) ([]vectorstore.SearchResult[T], error) {
	results := make([]vectorstore.SearchResult[T], 0, len(hits))
	for _, h := range hits {
		score := vectorstore.NormalizeScore(metric, h.raw)
		if threshold > 0 && score < threshold {
			continue
		}

		docs, err := decodeRows[T]([]map[string]any{h.row})
		if err != nil {
			return nil, vectorstore.NewError(vectorstore.KindSearch, "search", "decoding hit "+h.id, err)
		}
		results = append(results, vectorstore.SearchResult[T]{
			Document: docs[0],
			Score:    score,
			Distance: h.raw,
		})
		if len(results) == topK {
			break
		}
	}
	return results, nil
}

// hybridSearch runs the dense and keyword legs and fuses them client-side.
// Each leg retrieves topK candidates; fused scores are a weighted sum of the
// normalized per-leg scores, with a missing leg contributing zero.
func hybridSearch[T any](ctx context.Context, s *Store, req vectorstore.SearchRequest, fields []string) ([]vectorstore.SearchResult[T], error) {
	vec, err := s.resolveQueryVector(ctx, req)
	if err != nil {
		return nil, err
	}

	vectorHits, err := s.searchLeg(ctx, req, req.VectorField, entity.FloatVector(vec), fields, req.TopK, 0)
	if err != nil {
		return nil, err
	}
	keywordHits, err := s.searchLeg(ctx, req, req.SparseField, entity.Text(req.QueryText), fields, req.TopK, 0)
	if err != nil {
		return nil, err
	}

	vectorScored := make([]vectorstore.Scored, len(vectorHits))
	rowsByID := make(map[string]map[string]any, len(vectorHits)+len(keywordHits))
	for i, h := range vectorHits {
		vectorScored[i] = vectorstore.Scored{ID: h.id, Score: vectorstore.NormalizeScore(s.metric, h.raw)}
		rowsByID[h.id] = h.row
	}
	keywordScored := make([]vectorstore.Scored, len(keywordHits))
	for i, h := range keywordHits {
		keywordScored[i] = vectorstore.Scored{ID: h.id, Score: vectorstore.NormalizeScore(vectorstore.MetricBM25, h.raw)}
		if _, ok := rowsByID[h.id]; !ok {
			rowsByID[h.id] = h.row
		}
	}

	vw, kw := req.VectorWeight, req.KeywordWeight
	if vw == 0 && kw == 0 {
		vw, kw = vectorstore.DefaultVectorWeight, vectorstore.DefaultKeywordWeight
	}

	fused := vectorstore.FuseScored(vectorScored, keywordScored, vw, kw)
	fused = vectorstore.ApplyThreshold(fused, req.SimilarityThreshold)
	if len(fused) > req.TopK {
		fused = fused[:req.TopK]
	}

	results := make([]vectorstore.SearchResult[T], 0, len(fused))
	for _, f := range fused {
		row, ok := rowsByID[f.ID]
		if !ok {
			continue
		}
		docs, err := decodeRows[T]([]map[string]any{row})
		if err != nil {
			return nil, vectorstore.NewError(vectorstore.KindSearch, "search", "decoding hit "+f.ID, err)
		}
		results = append(results, vectorstore.SearchResult[T]{
			Document: docs[0],
			Score:    f.Score,
			Distance: f.Score,
		})
	}
	return results, nil
}

// resolveOutputFields returns the explicit override when set, otherwise the
// default projection of T.
func resolveOutputFields[T any](override []string) ([]string, error) {
	if len(override) > 0 {
		return override, nil
	}
	return vectorstore.OutputFieldsFor[T]()
}

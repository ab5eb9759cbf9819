package vectorstore

// Query defaults.
const (
	DefaultQueryLimit = 100
)

// QueryRequest describes a scalar (non-vector) read: a boolean filter
// expression with paging.
type QueryRequest struct {
	// Filter is a boolean expression in the backend's filter syntax,
	// e.g. `metadata["source"] == "wiki"`. Empty matches everything.
	Filter string

	// PartitionName restricts the query to one partition. Empty queries the
	// whole collection.
	PartitionName string

	// Offset and Limit page through results. Limit defaults to 100.
	Offset int
	Limit  int

	// OutputFields overrides the default projection resolved from the result
	// type's descriptor.
	OutputFields []string
}

// QueryRequestBuilder assembles a QueryRequest. Validation happens once, in
// Build.
type QueryRequestBuilder struct {
	req QueryRequest
}

// NewQueryRequest starts a query request builder with default paging.
func NewQueryRequest() *QueryRequestBuilder {
	return &QueryRequestBuilder{req: QueryRequest{Limit: DefaultQueryLimit}}
}

func (b *QueryRequestBuilder) WithFilter(expr string) *QueryRequestBuilder {
	b.req.Filter = expr
	return b
}

func (b *QueryRequestBuilder) WithPartition(name string) *QueryRequestBuilder {
	b.req.PartitionName = name
	return b
}

func (b *QueryRequestBuilder) WithOffset(offset int) *QueryRequestBuilder {
	b.req.Offset = offset
	return b
}

func (b *QueryRequestBuilder) WithLimit(limit int) *QueryRequestBuilder {
	b.req.Limit = limit
	return b
}

func (b *QueryRequestBuilder) WithOutputFields(fields ...string) *QueryRequestBuilder {
	b.req.OutputFields = fields
	return b
}

// Build validates and returns the request.
func (b *QueryRequestBuilder) Build() (QueryRequest, error) {
	if b.req.Offset < 0 {
		return QueryRequest{}, Errorf(KindInvalidRequest, "query_request",
			"offset must be >= 0, got %d", b.req.Offset)
	}
	if b.req.Limit <= 0 {
		return QueryRequest{}, Errorf(KindInvalidRequest, "query_request",
			"limit must be > 0, got %d", b.req.Limit)
	}
	return b.req, nil
}

// ForFilter is a shorthand for a filter-only query with default paging.
func ForFilter(expr string) QueryRequest {
	req, _ := NewQueryRequest().WithFilter(expr).Build()
	return req
}

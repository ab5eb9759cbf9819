package vectorstore

import (
	"strings"
)

// SearchMode selects the retrieval strategy for a search request.
type SearchMode string

const (
	// SearchModeVector runs a dense ANN search over the vector field.
	SearchModeVector SearchMode = "VECTOR"

	// SearchModeKeyword runs a full-text (BM25) search over the sparse field.
	SearchModeKeyword SearchMode = "KEYWORD"

	// SearchModeHybrid runs both and fuses the results with a weighted sum of
	// normalized scores.
	SearchModeHybrid SearchMode = "HYBRID"
)

// ParseSearchMode parses a mode name case-insensitively.
func ParseSearchMode(s string) (SearchMode, error) {
	switch SearchMode(strings.ToUpper(strings.TrimSpace(s))) {
	case SearchModeVector:
		return SearchModeVector, nil
	case SearchModeKeyword:
		return SearchModeKeyword, nil
	case SearchModeHybrid:
		return SearchModeHybrid, nil
	}
	return "", Errorf(KindInvalidRequest, "search_request",
		"unknown search mode %q (valid: VECTOR, KEYWORD, HYBRID)", s)
}

// Search defaults.
const (
	DefaultTopK          = 10
	DefaultVectorWeight  = 0.5
	DefaultKeywordWeight = 0.5
	DefaultVectorField   = FieldEmbedding
	DefaultSparseField   = FieldSparse
	DefaultTextField     = FieldContent
)

// SearchRequest describes a similarity search. Exactly one of QueryText and
// QueryVector must be set; the builder enforces this, so a request obtained
// from Build is always dispatchable.
type SearchRequest struct {
	// QueryText is the natural-language query. Under VECTOR and HYBRID modes
	// it is embedded before searching; under KEYWORD it is matched via BM25.
	QueryText string

	// QueryVector is a pre-computed query embedding. Only valid with VECTOR
	// mode.
	QueryVector []float32

	// TopK caps the number of results. Defaults to 10.
	TopK int

	// Filter is an optional boolean expression applied during search.
	Filter string

	// PartitionNames restricts the search to the given partitions.
	PartitionNames []string

	// OutputFields overrides the default projection resolved from the result
	// type's descriptor.
	OutputFields []string

	// Mode selects vector, keyword or hybrid retrieval. Defaults to VECTOR.
	Mode SearchMode

	// VectorWeight and KeywordWeight weight the two sides of a hybrid fusion.
	// Both default to 0.5 and must be >= 0.
	VectorWeight  float32
	KeywordWeight float32

	// SimilarityThreshold drops results with a normalized score below it.
	// Zero keeps everything.
	SimilarityThreshold float32

	// Offset skips the first results, for paging. Not applied in hybrid mode.
	Offset int

	// VectorField, SparseField and TextField name the physical columns used
	// for dense search, BM25 search and text matching. They default to the
	// base document schema ("embedding", "sparse", "content").
	VectorField string
	SparseField string
	TextField   string

	// SearchParams passes backend-specific knobs (e.g. "ef", "nprobe")
	// through to the native search call.
	SearchParams map[string]string
}

// SearchRequestBuilder assembles a SearchRequest. All validation happens in
// Build, so partially-configured builders never fail midway.
type SearchRequestBuilder struct {
	req SearchRequest
}

// NewSearchRequest starts a search request builder with defaults: VECTOR
// mode, topK 10, weights 0.5/0.5, base schema field names.
func NewSearchRequest() *SearchRequestBuilder {
	return &SearchRequestBuilder{req: SearchRequest{
		TopK:          DefaultTopK,
		Mode:          SearchModeVector,
		VectorWeight:  DefaultVectorWeight,
		KeywordWeight: DefaultKeywordWeight,
		VectorField:   DefaultVectorField,
		SparseField:   DefaultSparseField,
		TextField:     DefaultTextField,
	}}
}

func (b *SearchRequestBuilder) WithQueryText(text string) *SearchRequestBuilder {
	b.req.QueryText = text
	return b
}

func (b *SearchRequestBuilder) WithQueryVector(v []float32) *SearchRequestBuilder {
	b.req.QueryVector = v
	return b
}

func (b *SearchRequestBuilder) WithTopK(k int) *SearchRequestBuilder {
	b.req.TopK = k
	return b
}

func (b *SearchRequestBuilder) WithFilter(expr string) *SearchRequestBuilder {
	b.req.Filter = expr
	return b
}

func (b *SearchRequestBuilder) WithPartitions(names ...string) *SearchRequestBuilder {
	b.req.PartitionNames = names
	return b
}

func (b *SearchRequestBuilder) WithOutputFields(fields ...string) *SearchRequestBuilder {
	b.req.OutputFields = fields
	return b
}

func (b *SearchRequestBuilder) WithMode(mode SearchMode) *SearchRequestBuilder {
	b.req.Mode = mode
	return b
}

func (b *SearchRequestBuilder) WithWeights(vector, keyword float32) *SearchRequestBuilder {
	b.req.VectorWeight = vector
	b.req.KeywordWeight = keyword
	return b
}

func (b *SearchRequestBuilder) WithSimilarityThreshold(t float32) *SearchRequestBuilder {
	b.req.SimilarityThreshold = t
	return b
}

func (b *SearchRequestBuilder) WithOffset(offset int) *SearchRequestBuilder {
	b.req.Offset = offset
	return b
}

func (b *SearchRequestBuilder) WithVectorField(name string) *SearchRequestBuilder {
	b.req.VectorField = name
	return b
}

func (b *SearchRequestBuilder) WithSparseField(name string) *SearchRequestBuilder {
	b.req.SparseField = name
	return b
}

func (b *SearchRequestBuilder) WithTextField(name string) *SearchRequestBuilder {
	b.req.TextField = name
	return b
}

func (b *SearchRequestBuilder) WithSearchParam(key, value string) *SearchRequestBuilder {
	if b.req.SearchParams == nil {
		b.req.SearchParams = make(map[string]string)
	}
	b.req.SearchParams[key] = value
	return b
}

// Build validates and returns the request.
func (b *SearchRequestBuilder) Build() (SearchRequest, error) {
	req := b.req

	hasText := req.QueryText != ""
	hasVector := len(req.QueryVector) > 0
	if hasText == hasVector {
		which := "neither"
		if hasText {
			which = "both"
		}
		return SearchRequest{}, Errorf(KindInvalidRequest, "search_request",
			"exactly one of query text and query vector must be set, got %s", which)
	}

	switch req.Mode {
	case SearchModeVector:
		// either input works; text is embedded at dispatch time
	case SearchModeKeyword, SearchModeHybrid:
		if !hasText {
			return SearchRequest{}, Errorf(KindInvalidRequest, "search_request",
				"%s mode requires query text", req.Mode)
		}
	default:
		return SearchRequest{}, Errorf(KindInvalidRequest, "search_request",
			"unknown search mode %q (valid: VECTOR, KEYWORD, HYBRID)", string(req.Mode))
	}

	if req.TopK <= 0 {
		return SearchRequest{}, Errorf(KindInvalidRequest, "search_request",
			"topK must be > 0, got %d", req.TopK)
	}
	if req.Offset < 0 {
		return SearchRequest{}, Errorf(KindInvalidRequest, "search_request",
			"offset must be >= 0, got %d", req.Offset)
	}
	if req.Mode == SearchModeHybrid {
		if req.VectorWeight < 0 || req.KeywordWeight < 0 {
			return SearchRequest{}, Errorf(KindInvalidRequest, "search_request",
				"hybrid weights must be >= 0, got vector=%v keyword=%v",
				req.VectorWeight, req.KeywordWeight)
		}
		if req.VectorWeight == 0 && req.KeywordWeight == 0 {
			return SearchRequest{}, Errorf(KindInvalidRequest, "search_request",
				"hybrid weights must not both be zero")
		}
	}
	if req.SimilarityThreshold < 0 || req.SimilarityThreshold > 1 {
		return SearchRequest{}, Errorf(KindInvalidRequest, "search_request",
			"similarity threshold must be in [0,1], got %v", req.SimilarityThreshold)
	}
	if req.VectorField == "" || req.SparseField == "" || req.TextField == "" {
		return SearchRequest{}, Errorf(KindInvalidRequest, "search_request",
			"field names must not be empty")
	}

	return req, nil
}

// ForVector builds a dense-vector search request for a pre-computed query
// embedding.
func ForVector(vector []float32, topK int) (SearchRequest, error) {
	return NewSearchRequest().WithQueryVector(vector).WithTopK(topK).Build()
}

// ForText builds a dense-vector search request for a text query; the text is
// embedded at dispatch time.
func ForText(text string, topK int) (SearchRequest, error) {
	return NewSearchRequest().WithQueryText(text).WithTopK(topK).Build()
}

// Keyword builds a BM25 keyword search request.
func Keyword(text string, topK int) (SearchRequest, error) {
	return NewSearchRequest().WithQueryText(text).WithTopK(topK).
		WithMode(SearchModeKeyword).Build()
}

// Hybrid builds a hybrid search request with explicit fusion weights.
func Hybrid(text string, topK int, vectorWeight, keywordWeight float32) (SearchRequest, error) {
	return NewSearchRequest().WithQueryText(text).WithTopK(topK).
		WithMode(SearchModeHybrid).WithWeights(vectorWeight, keywordWeight).Build()
}

func (m SearchMode) String() string { return string(m) }

// Valid reports whether m is one of the defined modes.
func (m SearchMode) Valid() bool {
	switch m {
	case SearchModeVector, SearchModeKeyword, SearchModeHybrid:
		return true
	}
	return false
}

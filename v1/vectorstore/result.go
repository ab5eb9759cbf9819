package vectorstore

// SearchResult pairs a retrieved document with its scores.
type SearchResult[T any] struct {
	// Document is the projected document, decoded into the caller's type.
	Document T

	// Score is the normalized relevance in [0,1], higher is better,
	// comparable across metrics and search modes.
	Score float32

	// Distance is the raw backend value before normalization (cosine
	// similarity, L2 distance, inner product or BM25 score, depending on the
	// metric). In hybrid mode it carries the fused score.
	Distance float32
}

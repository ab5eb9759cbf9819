package vectorstore

// Physical field names of the base document schema. Application subtypes add
// their own columns on top of these.
const (
	FieldID        = "id"
	FieldContent   = "content"
	FieldEmbedding = "embedding"
	FieldSparse    = "sparse"
	FieldMetadata  = "metadata"
)

// Document is the base unit of storage. Application types embed Document and
// register a TypeDescriptor for their extra fields.
//
// Embedding and Sparse are never part of default read projections: they are
// large, and the sparse column is typically populated server-side by a BM25
// function, so reading it back is rarely useful.
type Document struct {
	// ID is the unique document identifier (primary key).
	ID string `json:"id"`

	// Content is the raw text of the document.
	Content string `json:"content"`

	// Embedding is the dense vector representation. Left empty, it is
	// computed from Content at insert time when an embedder is configured.
	Embedding []float32 `json:"embedding,omitempty"`

	// Sparse is the sparse vector used for keyword (BM25) retrieval.
	Sparse map[uint32]float32 `json:"sparse,omitempty"`

	// Metadata holds free-form application metadata, stored as a JSON column.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// New creates a document with an ID and content.
func New(id, content string) *Document {
	return &Document{ID: id, Content: content}
}

// NewWithMetadata creates a document with an ID, content and initial metadata.
func NewWithMetadata(id, content string, metadata map[string]any) *Document {
	return &Document{ID: id, Content: content, Metadata: metadata}
}

// AddMetadata sets a single metadata entry, allocating the map on first use.
// It returns the document for chaining.
func (d *Document) AddMetadata(key string, value any) *Document {
	if d.Metadata == nil {
		d.Metadata = make(map[string]any)
	}
	d.Metadata[key] = value
	return d
}

// Package vectorstore defines the backend-agnostic building blocks of the
// document store: the Document model, per-type field projections, validated
// request builders, typed errors and hybrid score fusion.
//
// The package is pure data and pure functions; the Milvus-backed store in
// the milvus package consumes these types. Keeping them separate makes the
// request and fusion logic unit-testable without a running backend.
//
// # Documents and Projections
//
// Application types embed [Document] and register a [TypeDescriptor] for
// their additional columns:
//
//	type Article struct {
//	    vectorstore.Document
//	    Author string `json:"author"`
//	}
//
//	func init() {
//	    vectorstore.RegisterType[Article](&vectorstore.TypeDescriptor{
//	        Name: "Article",
//	        Fields: []vectorstore.FieldDescriptor{
//	            {Name: "Author", PhysicalName: "author"},
//	        },
//	        Base: vectorstore.DocumentDescriptor,
//	    })
//	}
//
// Reads resolve their default output fields from the descriptor chain: the
// most-derived declaration of a physical field wins, and excluded fields
// (embedding, sparse) are left out unless requested explicitly.
//
// # Requests
//
// Query and search requests are assembled with fluent builders whose Build
// method performs all validation:
//
//	req, err := vectorstore.NewSearchRequest().
//	    WithQueryText("vector databases").
//	    WithMode(vectorstore.SearchModeHybrid).
//	    WithWeights(0.7, 0.3).
//	    WithTopK(5).
//	    Build()
//
// A request that builds successfully is always dispatchable: exactly one of
// query text and query vector is set, weights are valid, topK is positive.
//
// # Hybrid Fusion
//
// Hybrid search fuses a dense-vector leg and a BM25 keyword leg client-side.
// Raw backend scores are first mapped onto [0,1] with [NormalizeScore] (per
// metric), then combined by [FuseScored] as a weighted sum, so the two legs
// are comparable regardless of the underlying metric.
//
// # Errors
//
// All store failures surface as [*Error] with a stable [Kind]. Callers branch
// with [KindOf], [IsNotFound] or errors.Is rather than matching strings.
package vectorstore

// Package milvus provides a modular, dependency-injected document store on
// top of the Milvus vector database.
//
// The package wraps the official Milvus Go SDK (client/v2) with a
// document-oriented API: collection and index management, partition-scoped
// writes, typed reads through Go generics, and vector / keyword / hybrid
// search with normalized scores. It integrates with the fx dependency
// injection framework and supports builder-style configuration.
//
// # Core Features
//
//   - Managed client lifecycle with Fx integration
//   - Config struct supporting environment and YAML loading
//   - Connection probe on client initialization
//   - Document schema helpers with server-side BM25 full-text search
//   - Cached per-collection store handles
//   - Auto-embedding of inserted documents via a pluggable Embedder
//   - Typed reads decoding into application document types
//   - Client-side hybrid fusion with weighted, normalized scores
//   - Typed errors with stable kinds (vectorstore.Kind)
//
// # Basic Usage
//
//	client, err := milvus.NewClient(ctx, milvus.FromAddress("localhost:19530").
//	    WithDimension(768))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close(ctx)
//
//	if err := client.EnsureCollection(ctx, "documents", 768); err != nil {
//	    log.Fatal(err)
//	}
//
//	store, err := client.VectorStore("documents", milvus.WithEmbedder(emb))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = store.Add(ctx, "",
//	    vectorstore.New("doc-1", "Milvus is a vector database"),
//	    vectorstore.New("doc-2", "Go is a programming language"),
//	)
//
//	req, _ := vectorstore.Hybrid("vector database", 5, 0.7, 0.3)
//	hits, err := milvus.Search[vectorstore.Document](ctx, store, req)
//	for _, hit := range hits {
//	    fmt.Printf("%s score=%.3f\n", hit.Document.ID, hit.Score)
//	}
//
// # Typed Reads
//
// Reads are package-level generic functions because Go methods cannot carry
// type parameters. The type argument selects both the decoded struct and the
// default output-field projection registered in the vectorstore package:
//
//	articles, err := milvus.Query[Article](ctx, store, vectorstore.ForFilter(`author == "may"`))
//
// # Search Modes
//
// VECTOR runs one ANN search over the dense embedding field. KEYWORD runs one
// BM25 full-text search over the sparse field (populated server-side from
// content). HYBRID runs both and fuses the result lists client-side: each
// leg's raw scores are normalized onto [0,1] per its metric and combined as
// a weighted sum, so COSINE distances and BM25 relevances can be weighted
// against each other meaningfully.
//
// # Partitions
//
// Write, read and count operations accept a partition scope. Partition
// management (create, drop, load, release, list) is exposed on the store:
//
//	_ = store.CreatePartition(ctx, "tenant-a")
//	_ = store.Add(ctx, "tenant-a", docs...)
//	n, _ := store.Count(ctx, "tenant-a")
//
// # FX Module Integration
//
//	app := fx.New(
//	    milvus.FXModule,
//	    fx.Provide(milvus.NewConfigFromEnv),
//	)
//	app.Run()
//
// # Package Layout
//
//	milvus/
//	├── client.go        // SDK client wrapper, collection and index management
//	├── store.go         // collection-bound store: writes, deletes, partitions
//	├── dispatch.go      // generic reads and search mode dispatch
//	├── schema.go        // document schema and index helpers
//	├── converter.go     // documents/rows ↔ Milvus column conversion
//	├── configs.go       // configuration struct
//	├── observer.go      // operation observer hook
//	└── fx_module.go     // Fx dependency injection module
//
// # Related Packages
//
//   - [vectorstore]: document model, request builders, errors, score fusion
//   - [observability]: operation observer contract and Prometheus exporter
package milvus

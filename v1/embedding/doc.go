// Package embedding provides a high-level client for computing text
// embeddings through an OpenAI-compatible inference service.
//
// # Overview
//
// The package exposes a single public entrypoint, Client, which hides the
// HTTP details, endpoint paths and authentication of the inference backend.
//
//	cfg := embedding.NewConfig()
//	client, err := embedding.NewClient(cfg)
//
//	vectors, err := client.EmbedDocuments(ctx, []string{"a", "b"})
//	query, err := client.EmbedQuery(ctx, "search text")
//
// EmbedQuery and EmbedDocuments return float32 vectors ready for insertion
// into a vector store; CreateEmbeddings returns the provider's raw float64
// vectors for callers that need full precision.
//
// # Configuration
//
// Configuration is sourced from environment variables:
//
//   - EMBEDDING_ENDPOINT: base URL of the inference service (no trailing
//     path; /v1/embeddings is appended automatically)
//   - EMBEDDING_MODEL: embedding model name
//   - EMBEDDING_SERVICE_TOKEN: optional bearer token
//   - EMBEDDING_HTTP_TIMEOUT_SECONDS: request timeout (default 30)
//
// # Dependency Injection (Fx)
//
//	app := fx.New(
//	    embedding.FXModule,
//	    fx.Invoke(func(c *embedding.Client) {
//	        // use embeddings
//	    }),
//	)
package embedding

package embedding

import (
	"context"
	"fmt"
)

// Client is the public entrypoint for computing embeddings.
//
// It hides all provider details (inference endpoints, HTTP, etc.)
// from the application layer. Client satisfies the vector store's Embedder
// interface, so it can be plugged into a store directly:
//
//	store, _ := client.VectorStore("documents", milvus.WithEmbedder(emb))
type Client struct {
	provider Provider
	model    string
}

// NewClient constructs a Client from Config.
// It validates the config and internally constructs the inference provider.
// Application code should depend on *Client, not on Provider.
func NewClient(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("embedding: invalid config: %w", err)
	}

	p, err := newInferenceProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("embedding: failed to create provider: %w", err)
	}

	return &Client{provider: p, model: cfg.Model}, nil
}

// CreateEmbeddings executes a single embedding request and returns the raw
// provider vectors.
func (c *Client) CreateEmbeddings(ctx context.Context, texts []string) ([][]float64, error) {
	return c.provider.Create(ctx, c.model, texts...)
}

// EmbedQuery embeds one query string.
func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedDocuments embeds a batch of document texts. Vectors are narrowed to
// float32, the element type vector databases store.
func (c *Client) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	raw, err := c.provider.Create(ctx, c.model, texts...)
	if err != nil {
		return nil, err
	}

	out := make([][]float32, len(raw))
	for i, vec := range raw {
		narrowed := make([]float32, len(vec))
		for j, v := range vec {
			narrowed[j] = float32(v)
		}
		out[i] = narrowed
	}
	return out, nil
}

// Close allows the client to release any internal resources used by the provider.
// Currently this is a no-op unless the provider implements Close().
func (c *Client) Close() error {
	if closer, ok := c.provider.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

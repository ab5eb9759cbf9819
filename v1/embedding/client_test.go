package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T, vectors [][]float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("unexpected authorization header: %q", got)
		}

		var req struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("unexpected model: %s", req.Model)
		}

		type datum struct {
			Embedding []float64 `json:"embedding"`
		}
		resp := struct {
			Data []datum `json:"data"`
		}{}
		for i := range req.Input {
			resp.Data = append(resp.Data, datum{Embedding: vectors[i]})
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func testClient(t *testing.T, endpoint string) *Client {
	t.Helper()
	client, err := NewClient(&Config{
		Endpoint:     endpoint,
		ServiceToken: "test-token",
		Model:        "test-model",
		HTTPTimeoutS: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return client
}

func TestEmbedDocuments(t *testing.T) {
	server := newTestServer(t, [][]float64{{0.1, 0.2}, {0.3, 0.4}})
	defer server.Close()

	client := testClient(t, server.URL)

	vectors, err := client.EmbedDocuments(context.Background(), []string{"one", "two"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vectors) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vectors))
	}
	if vectors[0][0] != float32(0.1) || vectors[1][1] != float32(0.4) {
		t.Errorf("float64 values must narrow to float32: %v", vectors)
	}
}

func TestEmbedQuery(t *testing.T) {
	server := newTestServer(t, [][]float64{{1, 2, 3}})
	defer server.Close()

	client := testClient(t, server.URL)

	vec, err := client.EmbedQuery(context.Background(), "query")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vec) != 3 {
		t.Errorf("expected 3 dimensions, got %d", len(vec))
	}
}

func TestNewClient_InvalidConfig(t *testing.T) {
	if _, err := NewClient(&Config{Model: "m"}); err == nil {
		t.Fatal("expected error for missing endpoint")
	}
	if _, err := NewClient(&Config{Endpoint: "http://x"}); err == nil {
		t.Fatal("expected error for missing model")
	}
}

func TestCreate_EmptyInput(t *testing.T) {
	server := newTestServer(t, nil)
	defer server.Close()

	client := testClient(t, server.URL)
	if _, err := client.EmbedDocuments(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty input")
	}
}

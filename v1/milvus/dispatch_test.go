package milvus

import (
	"testing"

	"github.com/fyj-io/milvus-store/v1/vectorstore"
)

func TestNormalizeSearchRequest_FillsDefaults(t *testing.T) {
	req := normalizeSearchRequest(vectorstore.SearchRequest{QueryText: "q"})

	if req.Mode != vectorstore.SearchModeVector {
		t.Errorf("expected VECTOR default, got %s", req.Mode)
	}
	if req.TopK != 10 {
		t.Errorf("expected topK 10, got %d", req.TopK)
	}
	if req.VectorField != "embedding" || req.SparseField != "sparse" || req.TextField != "content" {
		t.Errorf("unexpected default fields: %s/%s/%s", req.VectorField, req.SparseField, req.TextField)
	}
}

func TestNormalizeSearchRequest_KeepsExplicitValues(t *testing.T) {
	req := normalizeSearchRequest(vectorstore.SearchRequest{
		QueryText:   "q",
		Mode:        vectorstore.SearchModeKeyword,
		TopK:        3,
		VectorField: "vec",
	})

	if req.Mode != vectorstore.SearchModeKeyword || req.TopK != 3 || req.VectorField != "vec" {
		t.Errorf("explicit values must be kept: %+v", req)
	}
}

func TestAssembleResults_NormalizesAndKeepsRaw(t *testing.T) {
	hits := []legHit{
		{id: "a", raw: 1.0, row: map[string]any{"id": "a", "content": "x"}},
		{id: "b", raw: 0.0, row: map[string]any{"id": "b", "content": "y"}},
	}

	results, err := assembleResults[vectorstore.Document](hits, vectorstore.MetricCosine, 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	// cosine 1.0 normalizes to 1, raw preserved in Distance
	if results[0].Score != 1 || results[0].Distance != 1.0 {
		t.Errorf("unexpected first result scores: %+v", results[0])
	}
	if results[1].Score != 0.5 || results[1].Distance != 0 {
		t.Errorf("unexpected second result scores: %+v", results[1])
	}
	if results[0].Document.ID != "a" {
		t.Errorf("unexpected document: %+v", results[0].Document)
	}
}

func TestAssembleResults_ThresholdAndTopK(t *testing.T) {
	hits := []legHit{
		{id: "a", raw: 0.9, row: map[string]any{"id": "a"}},
		{id: "b", raw: 0.0, row: map[string]any{"id": "b"}},
		{id: "c", raw: 0.8, row: map[string]any{"id": "c"}},
	}

	// cosine: 0.9 -> 0.95, 0.0 -> 0.5, 0.8 -> 0.9; threshold 0.6 drops "b"
	results, err := assembleResults[vectorstore.Document](hits, vectorstore.MetricCosine, 0.6, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected topK cap of 1, got %d", len(results))
	}
	if results[0].Document.ID != "a" {
		t.Errorf("expected highest hit first, got %s", results[0].Document.ID)
	}
}

func TestResolveOutputFields_OverrideWins(t *testing.T) {
	fields, err := resolveOutputFields[vectorstore.Document]([]string{"id", "embedding"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fields) != 2 || fields[1] != "embedding" {
		t.Errorf("explicit override must pass through untouched: %v", fields)
	}
}

func TestResolveOutputFields_DefaultProjection(t *testing.T) {
	fields, err := resolveOutputFields[vectorstore.Document](nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, f := range fields {
		if f == "embedding" || f == "sparse" {
			t.Errorf("default projection must exclude vector fields, got %v", fields)
		}
	}
}

type unregisteredDoc struct {
	vectorstore.Document
	Extra string `json:"extra"`
}

func TestResolveOutputFields_UnregisteredType(t *testing.T) {
	if _, err := resolveOutputFields[unregisteredDoc](nil); err == nil {
		t.Fatal("expected error for unregistered type")
	}
}

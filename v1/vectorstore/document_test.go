package vectorstore

import "testing"

func TestAddMetadata_AllocatesAndChains(t *testing.T) {
	doc := New("doc-1", "some text").
		AddMetadata("source", "wiki").
		AddMetadata("year", 2024)

	if doc.Metadata["source"] != "wiki" {
		t.Errorf("expected source=wiki, got %v", doc.Metadata["source"])
	}
	if doc.Metadata["year"] != 2024 {
		t.Errorf("expected year=2024, got %v", doc.Metadata["year"])
	}
}

func TestNewWithMetadata(t *testing.T) {
	doc := NewWithMetadata("doc-2", "text", map[string]any{"lang": "en"})
	if doc.ID != "doc-2" || doc.Content != "text" {
		t.Errorf("unexpected document: %+v", doc)
	}
	if doc.Metadata["lang"] != "en" {
		t.Errorf("expected lang=en, got %v", doc.Metadata["lang"])
	}
}

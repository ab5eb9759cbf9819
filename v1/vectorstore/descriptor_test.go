package vectorstore

import (
	"testing"
)

type article struct {
	Document
	Author string `json:"author"`
	Year   int    `json:"year"`
}

type reviewedArticle struct {
	article
	Reviewer string `json:"reviewer"`
}

func init() {
	RegisterType[article](&TypeDescriptor{
		Name: "article",
		Fields: []FieldDescriptor{
			{Name: "Author", PhysicalName: "author"},
			{Name: "Year", PhysicalName: "year"},
		},
		Base: DocumentDescriptor,
	})
	RegisterType[reviewedArticle](&TypeDescriptor{
		Name: "reviewedArticle",
		Fields: []FieldDescriptor{
			{Name: "Reviewer", PhysicalName: "reviewer"},
		},
		Base: mustDescriptor[article](),
	})
}

func mustDescriptor[T any]() *TypeDescriptor {
	d, err := DescriptorFor[T]()
	if err != nil {
		panic(err)
	}
	return d
}

func TestOutputFields_BaseDocument(t *testing.T) {
	fields, err := OutputFields(DocumentDescriptor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"id", "content", "metadata"}
	if len(fields) != len(want) {
		t.Fatalf("expected %v, got %v", want, fields)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], fields[i])
		}
	}
}

func TestOutputFields_ExcludesVectorFields(t *testing.T) {
	fields, err := OutputFields(DocumentDescriptor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, f := range fields {
		if f == FieldEmbedding || f == FieldSparse {
			t.Errorf("excluded field %q appeared in default projection", f)
		}
	}
}

func TestOutputFields_DerivedFirstThenBase(t *testing.T) {
	fields, err := OutputFieldsFor[article]()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"author", "year", "id", "content", "metadata"}
	if len(fields) != len(want) {
		t.Fatalf("expected %v, got %v", want, fields)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], fields[i])
		}
	}
}

func TestOutputFields_TwoLevelChain(t *testing.T) {
	fields, err := OutputFieldsFor[reviewedArticle]()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fields[0] != "reviewer" {
		t.Errorf("most-derived field must come first, got %v", fields)
	}
	if len(fields) != 6 {
		t.Errorf("expected 6 fields, got %v", fields)
	}
}

func TestOutputFields_MostDerivedWinsOnDuplicate(t *testing.T) {
	// derived re-declares "content" as excluded; base copy must not re-add it
	desc := &TypeDescriptor{
		Name: "contentless",
		Fields: []FieldDescriptor{
			{Name: "Content", PhysicalName: "content", Excluded: true},
			{Name: "Title", PhysicalName: "title"},
		},
		Base: DocumentDescriptor,
	}

	fields, err := OutputFields(desc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, f := range fields {
		if f == "content" {
			t.Errorf("derived exclusion must win over base declaration, got %v", fields)
		}
	}
}

func TestOutputFields_NilDescriptor(t *testing.T) {
	if _, err := OutputFields(nil); err == nil {
		t.Fatal("expected error for nil descriptor")
	}
}

func TestOutputFields_Cached(t *testing.T) {
	first, err := OutputFields(DocumentDescriptor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := OutputFields(DocumentDescriptor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if &first[0] != &second[0] {
		t.Error("expected cached slice to be returned on second resolution")
	}
}

func TestDescriptorFor_UnregisteredType(t *testing.T) {
	type stranger struct{ Document }

	_, err := DescriptorFor[stranger]()
	if err == nil {
		t.Fatal("expected error for unregistered type")
	}
	if KindOf(err) != KindInvalidRequest {
		t.Errorf("expected invalid_request kind, got %s", KindOf(err))
	}
}

func TestDescriptorFor_BaseDocument(t *testing.T) {
	desc, err := DescriptorFor[Document]()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc != DocumentDescriptor {
		t.Error("expected the package-level document descriptor")
	}
}

package milvus

import (
	"testing"

	"github.com/milvus-io/milvus/client/v2/entity"
)

func fieldNames(schema *entity.Schema) map[string]*entity.Field {
	byName := map[string]*entity.Field{}
	for _, f := range schema.Fields {
		byName[f.Name] = f
	}
	return byName
}

func TestDocumentSchema(t *testing.T) {
	schema := DocumentSchema("documents", 768)

	if schema.CollectionName != "documents" {
		t.Errorf("unexpected collection name: %s", schema.CollectionName)
	}
	if schema.AutoID {
		t.Error("document ids are caller-assigned, auto id must be off")
	}

	fields := fieldNames(schema)
	for _, name := range []string{"id", "content", "embedding", "sparse", "metadata"} {
		if _, ok := fields[name]; !ok {
			t.Errorf("missing field %q", name)
		}
	}

	if !fields["id"].PrimaryKey {
		t.Error("id must be the primary key")
	}
	if fields["embedding"].DataType != entity.FieldTypeFloatVector {
		t.Errorf("unexpected embedding type: %v", fields["embedding"].DataType)
	}
	if fields["sparse"].DataType != entity.FieldTypeSparseVector {
		t.Errorf("unexpected sparse type: %v", fields["sparse"].DataType)
	}
	if fields["metadata"].DataType != entity.FieldTypeJSON {
		t.Errorf("unexpected metadata type: %v", fields["metadata"].DataType)
	}
}

func TestDocumentSchema_ExtraFields(t *testing.T) {
	schema := DocumentSchema("articles", 128,
		ExtraField{Name: "author", DataType: entity.FieldTypeVarChar, MaxLength: 256},
		ExtraField{Name: "year", DataType: entity.FieldTypeInt64},
	)

	fields := fieldNames(schema)
	if _, ok := fields["author"]; !ok {
		t.Error("missing extra field author")
	}
	if _, ok := fields["year"]; !ok {
		t.Error("missing extra field year")
	}
}

func TestDocumentSchemaWithBM25(t *testing.T) {
	schema := DocumentSchemaWithBM25("documents", 768)

	if len(schema.Functions) != 1 {
		t.Fatalf("expected one schema function, got %d", len(schema.Functions))
	}
	fn := schema.Functions[0]
	if fn.Type != entity.FunctionTypeBM25 {
		t.Errorf("unexpected function type: %v", fn.Type)
	}
	if len(fn.InputFieldNames) != 1 || fn.InputFieldNames[0] != "content" {
		t.Errorf("BM25 input must be content, got %v", fn.InputFieldNames)
	}
	if len(fn.OutputFieldNames) != 1 || fn.OutputFieldNames[0] != "sparse" {
		t.Errorf("BM25 output must be sparse, got %v", fn.OutputFieldNames)
	}

	fields := fieldNames(schema)
	if !fields["content"].EnableAnalyzer {
		t.Error("content must have the analyzer enabled for BM25")
	}
}

func TestDenseMetric(t *testing.T) {
	cases := map[string]entity.MetricType{
		"COSINE": entity.COSINE,
		"L2":     entity.L2,
		"IP":     entity.IP,
	}
	for in, want := range cases {
		got, err := denseMetric(in)
		if err != nil {
			t.Errorf("denseMetric(%q): unexpected error %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("denseMetric(%q): expected %v, got %v", in, want, got)
		}
	}

	if _, err := denseMetric("BM25"); err == nil {
		t.Error("BM25 must be rejected as a dense metric")
	}
}

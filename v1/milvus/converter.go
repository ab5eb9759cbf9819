package milvus

import (
	"encoding/json"
	"fmt"

	"github.com/milvus-io/milvus/client/v2/column"

	"github.com/fyj-io/milvus-store/v1/vectorstore"
)

// columnsFromDocuments builds the insert columns for base documents: id,
// content, embedding and metadata. The sparse column is never written; the
// collection's BM25 function derives it from content server-side.
func columnsFromDocuments(docs []*vectorstore.Document) ([]column.Column, error) {
	ids := make([]string, len(docs))
	contents := make([]string, len(docs))
	embeddings := make([][]float32, len(docs))
	metadata := make([][]byte, len(docs))

	dim := len(docs[0].Embedding)
	for i, doc := range docs {
		if len(doc.Embedding) != dim {
			return nil, fmt.Errorf("document %q has embedding dimension %d, expected %d",
				doc.ID, len(doc.Embedding), dim)
		}

		ids[i] = doc.ID
		contents[i] = doc.Content
		embeddings[i] = doc.Embedding

		meta := doc.Metadata
		if meta == nil {
			meta = map[string]any{}
		}
		raw, err := json.Marshal(meta)
		if err != nil {
			return nil, fmt.Errorf("marshal metadata of document %q: %w", doc.ID, err)
		}
		metadata[i] = raw
	}

	return []column.Column{
		column.NewColumnVarChar(vectorstore.FieldID, ids),
		column.NewColumnVarChar(vectorstore.FieldContent, contents),
		column.NewColumnFloatVector(vectorstore.FieldEmbedding, dim, embeddings),
		column.NewColumnJSONBytes(vectorstore.FieldMetadata, metadata),
	}, nil
}

// columnsFromRows builds insert columns from raw rows, inferring each column
// type from the first row's value. Every row must carry the same keys with
// consistent types.
func columnsFromRows(rows []map[string]any) ([]column.Column, error) {
	first := rows[0]
	columns := make([]column.Column, 0, len(first))

	for name, sample := range first {
		col, err := columnFromValues(name, sample, rows)
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)
	}
	return columns, nil
}

func columnFromValues(name string, sample any, rows []map[string]any) (column.Column, error) {
	n := len(rows)

	value := func(i int) (any, error) {
		v, ok := rows[i][name]
		if !ok {
			return nil, fmt.Errorf("row %d is missing column %q", i, name)
		}
		return v, nil
	}

	switch sample.(type) {
	case string:
		vals := make([]string, n)
		for i := range rows {
			v, err := value(i)
			if err != nil {
				return nil, err
			}
			s, ok := v.(string)
			if !ok {
				return nil, typeMismatch(name, i, sample, v)
			}
			vals[i] = s
		}
		return column.NewColumnVarChar(name, vals), nil

	case int64:
		vals := make([]int64, n)
		for i := range rows {
			v, err := value(i)
			if err != nil {
				return nil, err
			}
			x, ok := v.(int64)
			if !ok {
				return nil, typeMismatch(name, i, sample, v)
			}
			vals[i] = x
		}
		return column.NewColumnInt64(name, vals), nil

	case int:
		vals := make([]int64, n)
		for i := range rows {
			v, err := value(i)
			if err != nil {
				return nil, err
			}
			x, ok := v.(int)
			if !ok {
				return nil, typeMismatch(name, i, sample, v)
			}
			vals[i] = int64(x)
		}
		return column.NewColumnInt64(name, vals), nil

	case float64:
		vals := make([]float64, n)
		for i := range rows {
			v, err := value(i)
			if err != nil {
				return nil, err
			}
			x, ok := v.(float64)
			if !ok {
				return nil, typeMismatch(name, i, sample, v)
			}
			vals[i] = x
		}
		return column.NewColumnDouble(name, vals), nil

	case bool:
		vals := make([]bool, n)
		for i := range rows {
			v, err := value(i)
			if err != nil {
				return nil, err
			}
			x, ok := v.(bool)
			if !ok {
				return nil, typeMismatch(name, i, sample, v)
			}
			vals[i] = x
		}
		return column.NewColumnBool(name, vals), nil

	case []float32:
		vals := make([][]float32, n)
		for i := range rows {
			v, err := value(i)
			if err != nil {
				return nil, err
			}
			x, ok := v.([]float32)
			if !ok {
				return nil, typeMismatch(name, i, sample, v)
			}
			vals[i] = x
		}
		if len(vals[0]) == 0 {
			return nil, fmt.Errorf("column %q has an empty vector", name)
		}
		return column.NewColumnFloatVector(name, len(vals[0]), vals), nil

	case map[string]any:
		vals := make([][]byte, n)
		for i := range rows {
			v, err := value(i)
			if err != nil {
				return nil, err
			}
			raw, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("marshal column %q row %d: %w", name, i, err)
			}
			vals[i] = raw
		}
		return column.NewColumnJSONBytes(name, vals), nil
	}

	return nil, fmt.Errorf("column %q has unsupported type %T", name, sample)
}

func typeMismatch(name string, row int, want, got any) error {
	return fmt.Errorf("column %q row %d: expected %T, got %T", name, row, want, got)
}

// rowsFromColumns converts result columns back into one map per entity. JSON
// columns come back as raw bytes and are kept as json.RawMessage so the rows
// re-marshal into proper objects when decoded into a target type.
func rowsFromColumns(fields []column.Column, n int) ([]map[string]any, error) {
	rows := make([]map[string]any, n)
	for i := range rows {
		rows[i] = make(map[string]any, len(fields))
	}

	for _, col := range fields {
		for i := 0; i < n && i < col.Len(); i++ {
			v, err := col.Get(i)
			if err != nil {
				return nil, fmt.Errorf("read column %q row %d: %w", col.Name(), i, err)
			}
			if raw, ok := v.([]byte); ok {
				v = json.RawMessage(raw)
			}
			rows[i][col.Name()] = v
		}
	}
	return rows, nil
}

// decodeRows turns projected rows into typed values through a JSON
// round-trip, matching the json tags on the target type.
func decodeRows[T any](rows []map[string]any) ([]T, error) {
	out := make([]T, len(rows))
	for i, row := range rows {
		raw, err := json.Marshal(row)
		if err != nil {
			return nil, fmt.Errorf("encode row %d: %w", i, err)
		}
		if err := json.Unmarshal(raw, &out[i]); err != nil {
			return nil, fmt.Errorf("decode row %d: %w", i, err)
		}
	}
	return out, nil
}

package vectorstore

import (
	"fmt"
	"reflect"
	"sync"
)

// FieldDescriptor describes one logical field of a stored type and how it maps
// to a physical column.
type FieldDescriptor struct {
	// Name is the logical (Go-side) field name.
	Name string

	// PhysicalName is the column name in the collection. Defaults to Name
	// when empty.
	PhysicalName string

	// Excluded removes the field from default read projections. Excluded
	// fields can still be requested explicitly via OutputFields on a request.
	Excluded bool
}

// TypeDescriptor is the static projection metadata for a stored type.
// Descriptors form a chain mirroring struct embedding: a subtype's descriptor
// points at its base's via Base, and the most-derived declaration of a
// physical field wins.
type TypeDescriptor struct {
	// Name identifies the described type, for error messages.
	Name string

	Fields []FieldDescriptor
	Base   *TypeDescriptor
}

// DocumentDescriptor is the descriptor of the base Document type. Embedding
// and sparse are excluded from default projections.
var DocumentDescriptor = &TypeDescriptor{
	Name: "vectorstore.Document",
	Fields: []FieldDescriptor{
		{Name: "ID", PhysicalName: FieldID},
		{Name: "Content", PhysicalName: FieldContent},
		{Name: "Embedding", PhysicalName: FieldEmbedding, Excluded: true},
		{Name: "Sparse", PhysicalName: FieldSparse, Excluded: true},
		{Name: "Metadata", PhysicalName: FieldMetadata},
	},
}

type registry struct {
	mu    sync.RWMutex
	types map[reflect.Type]*TypeDescriptor

	fieldsMu sync.RWMutex
	fields   map[*TypeDescriptor][]string
}

var typeRegistry = &registry{
	types:  map[reflect.Type]*TypeDescriptor{reflect.TypeOf(Document{}): DocumentDescriptor},
	fields: map[*TypeDescriptor][]string{},
}

// RegisterType associates a descriptor with the concrete type T. Registration
// normally happens from an init function or package var next to the type
// definition. Registering the same type twice replaces the descriptor.
func RegisterType[T any](desc *TypeDescriptor) {
	if desc == nil {
		panic("vectorstore: RegisterType called with nil descriptor")
	}
	t := reflect.TypeOf((*T)(nil)).Elem()
	typeRegistry.mu.Lock()
	typeRegistry.types[t] = desc
	typeRegistry.mu.Unlock()
}

// DescriptorFor returns the registered descriptor for T. Unknown types are an
// error, never an empty projection: reads with a silently-empty field list
// would fetch nothing and look like missing data.
func DescriptorFor[T any]() (*TypeDescriptor, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	typeRegistry.mu.RLock()
	desc, ok := typeRegistry.types[t]
	typeRegistry.mu.RUnlock()
	if !ok {
		return nil, Errorf(KindInvalidRequest, "descriptor",
			"no descriptor registered for type %s; call vectorstore.RegisterType", t)
	}
	return desc, nil
}

// OutputFields resolves the default read projection for desc: physical names
// of all non-excluded fields, most-derived type first, base chain after,
// deduplicated by physical name with the first (most derived) occurrence
// winning. The result is cached and the returned slice must not be mutated.
func OutputFields(desc *TypeDescriptor) ([]string, error) {
	if desc == nil {
		return nil, Errorf(KindInvalidRequest, "descriptor", "nil type descriptor")
	}

	typeRegistry.fieldsMu.RLock()
	cached, ok := typeRegistry.fields[desc]
	typeRegistry.fieldsMu.RUnlock()
	if ok {
		return cached, nil
	}

	var out []string
	seen := map[string]bool{}
	for d := desc; d != nil; d = d.Base {
		for _, f := range d.Fields {
			physical := f.PhysicalName
			if physical == "" {
				physical = f.Name
			}
			if physical == "" {
				return nil, Errorf(KindInvalidRequest, "descriptor",
					"descriptor %q has a field with no name", d.Name)
			}
			if seen[physical] {
				continue
			}
			seen[physical] = true
			if f.Excluded {
				continue
			}
			out = append(out, physical)
		}
	}
	if len(out) == 0 {
		return nil, Errorf(KindInvalidRequest, "descriptor",
			"descriptor %q resolves to an empty projection", desc.Name)
	}

	typeRegistry.fieldsMu.Lock()
	typeRegistry.fields[desc] = out
	typeRegistry.fieldsMu.Unlock()
	return out, nil
}

// OutputFieldsFor resolves the default read projection for the registered
// type T.
func OutputFieldsFor[T any]() ([]string, error) {
	desc, err := DescriptorFor[T]()
	if err != nil {
		return nil, err
	}
	return OutputFields(desc)
}

func (d *TypeDescriptor) String() string {
	if d == nil {
		return "<nil>"
	}
	return fmt.Sprintf("TypeDescriptor(%s, %d fields)", d.Name, len(d.Fields))
}

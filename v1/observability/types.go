package observability

import "time"

// OperationContext carries everything an observer needs to record a single
// client operation: what ran, against which resource, how long it took and
// whether it failed.
type OperationContext struct {
	// Component identifies the emitting package, e.g. "milvus".
	Component string

	// Operation is the logical operation name, e.g. "search", "insert".
	Operation string

	// Resource is the primary resource, e.g. the collection name.
	Resource string

	// SubResource is an optional secondary resource, e.g. a partition name.
	SubResource string

	// Duration is the wall-clock time of the operation.
	Duration time.Duration

	// Error is the operation error, nil on success.
	Error error

	// Size is an operation-specific magnitude: documents inserted, results
	// returned. Zero when not meaningful.
	Size int64

	// Metadata carries extra dimensions observers may pick up.
	Metadata map[string]interface{}
}

// Observer receives operation notifications. Implementations must be safe for
// concurrent use and must not block: observation happens on the caller's
// request path.
type Observer interface {
	ObserveOperation(op OperationContext)
}

// NopObserver discards all observations.
type NopObserver struct{}

func (NopObserver) ObserveOperation(OperationContext) {}

package milvus

import (
	"time"

	"github.com/fyj-io/milvus-store/v1/observability"
)

// observe notifies the observer about an operation if one is configured.
//
// Notes:
//   - resource: collection name
//   - subResource: partition name (empty for collection-wide operations)
func (s *Store) observe(operation, partition string, duration time.Duration, err error, size int64) {
	if s == nil || s.observer == nil {
		return
	}

	s.observer.ObserveOperation(observability.OperationContext{
		Component:   "milvus",
		Operation:   operation,
		Resource:    s.collection,
		SubResource: partition,
		Duration:    duration,
		Error:       err,
		Size:        size,
	})
}

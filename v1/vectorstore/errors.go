package vectorstore

import (
	"errors"
	"fmt"
)

// Kind classifies a store error into a stable category. Kinds are part of the
// public API: callers branch on them instead of parsing error strings, and the
// string form is stable across releases so it can be used as a metric label.
type Kind string

const (
	// KindConnection covers failures to reach or authenticate-at-transport
	// level with the backend.
	KindConnection Kind = "connection"

	// KindAuth covers rejected credentials.
	KindAuth Kind = "auth"

	KindCollectionNotFound Kind = "collection_not_found"
	KindCollectionExists   Kind = "collection_exists"
	KindCollectionCreate   Kind = "collection_create"
	KindCollectionDrop     Kind = "collection_drop"
	KindCollectionLoad     Kind = "collection_load"
	KindCollectionRelease  Kind = "collection_release"

	KindPartitionNotFound Kind = "partition_not_found"
	KindPartitionExists   Kind = "partition_exists"
	KindPartitionCreate   Kind = "partition_create"
	KindPartitionDrop     Kind = "partition_drop"
	KindPartitionLoad     Kind = "partition_load"
	KindPartitionRelease  Kind = "partition_release"

	KindIndexNotFound Kind = "index_not_found"
	KindIndexCreate   Kind = "index_create"
	KindIndexDrop     Kind = "index_drop"

	KindInsert Kind = "insert"
	KindUpsert Kind = "upsert"
	KindDelete Kind = "delete"
	KindQuery  Kind = "query"
	KindSearch Kind = "search"

	// KindInvalidRequest marks requests rejected before reaching the backend,
	// e.g. builder validation failures.
	KindInvalidRequest Kind = "invalid_request"

	// KindMissingEmbedder is returned when an operation needs query or
	// document embedding but no embedder is configured.
	KindMissingEmbedder Kind = "missing_embedder"

	KindUnknown Kind = "unknown"
)

// Error is the typed error returned by all store operations. It carries the
// failing operation name and a Kind for programmatic handling, and wraps the
// underlying cause.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("vectorstore: %s: %s: %v", e.Op, e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("vectorstore: %s: %s", e.Op, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("vectorstore: %s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("vectorstore: %s: %s", e.Op, e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches two store errors by Kind, so callers can write
// errors.Is(err, &Error{Kind: KindCollectionNotFound}).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// NewError builds a typed store error wrapping cause.
func NewError(kind Kind, op, message string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: cause}
}

// Errorf builds a typed store error with a formatted message and no cause.
func Errorf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from err, returning KindUnknown when err is not a
// store error (or nil).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is a collection, partition or index
// not-found error.
func IsNotFound(err error) bool {
	switch KindOf(err) {
	case KindCollectionNotFound, KindPartitionNotFound, KindIndexNotFound:
		return true
	}
	return false
}

// IsInvalidRequest reports whether err was rejected by request validation
// before reaching the backend.
func IsInvalidRequest(err error) bool {
	return KindOf(err) == KindInvalidRequest
}

package vectorstore

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewError(KindConnection, "connect", "dialing localhost:19530", cause)

	if !errors.Is(err, cause) {
		t.Error("expected wrapped cause to be matchable with errors.Is")
	}

	wrapped := fmt.Errorf("store init: %w", err)
	if KindOf(wrapped) != KindConnection {
		t.Errorf("expected KindOf to see through wrapping, got %s", KindOf(wrapped))
	}
}

func TestErrorIsMatchesByKind(t *testing.T) {
	err := Errorf(KindCollectionNotFound, "describe", "collection %q", "docs")

	if !errors.Is(err, &Error{Kind: KindCollectionNotFound}) {
		t.Error("expected match on same kind")
	}
	if errors.Is(err, &Error{Kind: KindPartitionNotFound}) {
		t.Error("expected no match on different kind")
	}
}

func TestIsNotFound(t *testing.T) {
	for _, kind := range []Kind{KindCollectionNotFound, KindPartitionNotFound, KindIndexNotFound} {
		if !IsNotFound(Errorf(kind, "op", "x")) {
			t.Errorf("expected IsNotFound for %s", kind)
		}
	}
	if IsNotFound(Errorf(KindSearch, "op", "x")) {
		t.Error("search errors are not not-found")
	}
	if IsNotFound(errors.New("plain")) {
		t.Error("plain errors are not not-found")
	}
}

func TestKindOf_NonStoreError(t *testing.T) {
	if KindOf(errors.New("plain")) != KindUnknown {
		t.Error("expected KindUnknown for non-store errors")
	}
	if KindOf(nil) != KindUnknown {
		t.Error("expected KindUnknown for nil")
	}
}

func TestErrorMessageForms(t *testing.T) {
	cause := errors.New("boom")

	cases := []struct {
		err  *Error
		want string
	}{
		{NewError(KindSearch, "search", "dense leg failed", cause), "vectorstore: search: dense leg failed: boom"},
		{NewError(KindSearch, "search", "dense leg failed", nil), "vectorstore: search: dense leg failed"},
		{NewError(KindSearch, "search", "", cause), "vectorstore: search: boom"},
		{NewError(KindSearch, "search", "", nil), "vectorstore: search: search"},
	}
	for _, c := range cases {
		if got := c.err.Error(); got != c.want {
			t.Errorf("expected %q, got %q", c.want, got)
		}
	}
}

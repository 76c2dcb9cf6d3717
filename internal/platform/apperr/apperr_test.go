package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestIs_MatchesByKind(t *testing.T) {
	err := NotFound("pet not found")

	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected errors.Is to match ErrNotFound")
	}
	if errors.Is(err, ErrForbidden) {
		t.Fatalf("did not expect errors.Is to match ErrForbidden")
	}

	wrapped := fmt.Errorf("update: %w", err)
	if !errors.Is(wrapped, ErrNotFound) {
		t.Fatalf("expected wrapped error to match ErrNotFound")
	}
	if KindOf(wrapped) != KindNotFound {
		t.Fatalf("expected KindNotFound, got %s", KindOf(wrapped))
	}
	if Message(wrapped) != "pet not found" {
		t.Fatalf("unexpected message %q", Message(wrapped))
	}
}

func TestKindOf_UnknownIsInternal(t *testing.T) {
	if KindOf(errors.New("boom")) != KindInternal {
		t.Fatalf("expected plain errors to be internal")
	}
	if Message(errors.New("boom")) != "" {
		t.Fatalf("plain errors should not expose a message")
	}
}

func TestInternal_Unwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("load pets", cause)

	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable")
	}
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal match")
	}
}

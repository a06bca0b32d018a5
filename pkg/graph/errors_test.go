package graph

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestGraphErrorFormatting(t *testing.T) {
	id := uuid.New()
	err := EntityError("Entity", id, ErrEntityNotFound)

	if !strings.Contains(err.Error(), id.String()) {
		t.Errorf("error should carry the subject id, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "entity not found") {
		t.Errorf("error should carry the cause, got %q", err.Error())
	}

	anonymous := EdgeError("AddEdge", uuid.Nil, ErrEdgeNotFound)
	if strings.Contains(anonymous.Error(), uuid.Nil.String()) {
		t.Errorf("nil id should be omitted, got %q", anonymous.Error())
	}
}

func TestGraphErrorUnwrapping(t *testing.T) {
	err := EntityError("RemoveEntity", uuid.New(), ErrEntityNotFound)

	if !errors.Is(err, ErrEntityNotFound) {
		t.Error("errors.Is should see through the wrapper")
	}
	var graphErr *GraphError
	if !errors.As(err, &graphErr) {
		t.Fatal("errors.As should recover the structured error")
	}
	if graphErr.Op != "RemoveEntity" || graphErr.Kind != "entity" {
		t.Errorf("unexpected structured fields: %+v", graphErr)
	}
}

func TestIsNotFound(t *testing.T) {
	for _, sentinel := range []error{ErrEntityNotFound, ErrEdgeNotFound, ErrVersionNotFound, ErrGraphNotFound} {
		if !IsNotFound(EntityError("op", uuid.Nil, sentinel)) {
			t.Errorf("IsNotFound should match %v", sentinel)
		}
	}
	if IsNotFound(ErrGraphExists) {
		t.Error("IsNotFound must not match unrelated sentinels")
	}
	if IsNotFound(nil) {
		t.Error("IsNotFound(nil) must be false")
	}
}

func TestStoreCreateDuplicateError(t *testing.T) {
	store := NewStore()
	processID := uuid.New()
	if _, err := store.Create(processID); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err := store.Create(processID)
	if !errors.Is(err, ErrGraphExists) {
		t.Errorf("duplicate create should wrap ErrGraphExists, got %v", err)
	}
}

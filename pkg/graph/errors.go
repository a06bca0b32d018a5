package graph

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Common sentinel errors
var (
	ErrEntityNotFound  = errors.New("entity not found")
	ErrEdgeNotFound    = errors.New("edge not found")
	ErrVersionNotFound = errors.New("version not found")
	ErrGraphNotFound   = errors.New("graph not found")
	ErrGraphExists     = errors.New("graph already exists")
	ErrInvalidKind     = errors.New("invalid kind")
	ErrLimitExceeded   = errors.New("graph size limit exceeded")
)

// GraphError provides structured error information for graph operations.
type GraphError struct {
	Op    string    // Operation that failed (e.g., "AddEdge", "ComputeDiff")
	Kind  string    // Subject kind (e.g., "entity", "edge", "snapshot")
	ID    uuid.UUID // Subject ID (if applicable)
	Cause error     // Underlying error
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	if e.ID != uuid.Nil {
		return fmt.Sprintf("%s %s %s: %v", e.Op, e.Kind, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Kind, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *GraphError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// EntityError creates a structured error about an entity.
func EntityError(op string, id uuid.UUID, cause error) error {
	return &GraphError{Op: op, Kind: "entity", ID: id, Cause: cause}
}

// EdgeError creates a structured error about an edge.
func EdgeError(op string, id uuid.UUID, cause error) error {
	return &GraphError{Op: op, Kind: "edge", ID: id, Cause: cause}
}

// IsNotFound returns true if the error is any of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEntityNotFound) ||
		errors.Is(err, ErrEdgeNotFound) ||
		errors.Is(err, ErrVersionNotFound) ||
		errors.Is(err, ErrGraphNotFound)
}

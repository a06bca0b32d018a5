package graph

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Store is the keyed registry of process graphs, one per process identifier.
// The registry lock guards only creation/lookup/deletion; individual graph
// operations synchronize on their own graph's lock.
type Store struct {
	mu     sync.RWMutex
	graphs map[uuid.UUID]*ProcessGraph
	opts   []Option
}

// NewStore creates an empty graph registry. The given options are applied to
// every graph the store creates.
func NewStore(opts ...Option) *Store {
	return &Store{
		graphs: make(map[uuid.UUID]*ProcessGraph),
		opts:   opts,
	}
}

// Create creates a new graph for a process. Returns an error when a graph for
// the process already exists.
func (s *Store) Create(processID uuid.UUID) (*ProcessGraph, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.graphs[processID]; exists {
		return nil, fmt.Errorf("%w: %s", ErrGraphExists, processID)
	}

	g := New(processID, s.opts...)
	s.graphs[processID] = g
	return g, nil
}

// Get retrieves the graph for a process.
func (s *Store) Get(processID uuid.UUID) (*ProcessGraph, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.graphs[processID]
	return g, ok
}

// GetOrCreate retrieves the graph for a process, creating one if absent.
func (s *Store) GetOrCreate(processID uuid.UUID) *ProcessGraph {
	s.mu.Lock()
	defer s.mu.Unlock()

	if g, ok := s.graphs[processID]; ok {
		return g
	}
	g := New(processID, s.opts...)
	s.graphs[processID] = g
	return g
}

// Delete removes a process graph. Returns false if no graph exists for the
// process.
func (s *Store) Delete(processID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.graphs[processID]; !ok {
		return false
	}
	delete(s.graphs, processID)
	return true
}

// Count returns the number of registered graphs.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.graphs)
}

// ProcessIDs lists the identifiers of all registered graphs, order
// unspecified.
func (s *Store) ProcessIDs() []uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]uuid.UUID, 0, len(s.graphs))
	for id := range s.graphs {
		ids = append(ids, id)
	}
	return ids
}

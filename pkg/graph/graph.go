package graph

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/knowflow/procgraph/pkg/logging"
	"github.com/knowflow/procgraph/pkg/metrics"
	"github.com/knowflow/procgraph/pkg/model"
)

// Limits bounds graph growth. Zero means unlimited. Enforced at the
// entity/edge add boundary so adversarially large inputs are rejected early.
type Limits struct {
	MaxNodes int
	MaxEdges int
}

// NodeRef is the lightweight descriptor returned by AddEntity. Degree and
// centrality are computed lazily by queries, not maintained incrementally,
// so the counters here are always zero at creation.
type NodeRef struct {
	EntityID     uuid.UUID `json:"entity_id"`
	GraphVersion int       `json:"graph_version"`
	InDegree     int       `json:"in_degree"`
	OutDegree    int       `json:"out_degree"`
}

// ProcessGraph owns the directed multigraph of entities and edges for one
// process, including its version history and snapshots.
//
// One logical session mutates a graph at a time; a single RWMutex serializes
// mutations because they touch the entity table, adjacency structure, and
// version tables together. Read operations take the read lock and may run
// concurrently.
type ProcessGraph struct {
	processID uuid.UUID
	limits    Limits

	mu        sync.RWMutex
	entities  map[uuid.UUID]*model.Entity
	nameIndex map[string]uuid.UUID // lowercase name -> entity id, for merge
	edges     map[uuid.UUID]*model.Edge
	out       map[uuid.UUID][]uuid.UUID // entity id -> outgoing edge ids
	in        map[uuid.UUID][]uuid.UUID // entity id -> incoming edge ids

	version   int
	versions  map[int]*model.GraphVersion
	snapshots map[int]*snapshot

	logger  logging.Logger
	metrics *metrics.Registry
}

// Option configures a ProcessGraph.
type Option func(*ProcessGraph)

// WithLimits sets node/edge count ceilings.
func WithLimits(l Limits) Option {
	return func(g *ProcessGraph) { g.limits = l }
}

// WithLogger sets the structured logger.
func WithLogger(l logging.Logger) Option {
	return func(g *ProcessGraph) { g.logger = l }
}

// WithMetrics sets the metrics registry.
func WithMetrics(m *metrics.Registry) Option {
	return func(g *ProcessGraph) { g.metrics = m }
}

// New creates an empty versioned process graph.
func New(processID uuid.UUID, opts ...Option) *ProcessGraph {
	g := &ProcessGraph{
		processID: processID,
		entities:  make(map[uuid.UUID]*model.Entity),
		nameIndex: make(map[string]uuid.UUID),
		edges:     make(map[uuid.UUID]*model.Edge),
		out:       make(map[uuid.UUID][]uuid.UUID),
		in:        make(map[uuid.UUID][]uuid.UUID),
		versions:  make(map[int]*model.GraphVersion),
		snapshots: make(map[int]*snapshot),
		logger:    logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ProcessID returns the owning process identifier.
func (g *ProcessGraph) ProcessID() uuid.UUID {
	return g.processID
}

// Version returns the current version counter.
func (g *ProcessGraph) Version() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.version
}

// AddEntity inserts an entity into the graph. Re-adding an existing ID
// overwrites the stored record. Returns false only when the entity kind is
// outside the accepted set or the node ceiling is reached; the graph is left
// untouched in that case.
func (g *ProcessGraph) AddEntity(entity *model.Entity) (NodeRef, bool) {
	if entity == nil || !entity.Kind.Valid() {
		g.record("add_entity", "rejected")
		return NodeRef{}, false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	prev, exists := g.entities[entity.ID]
	if !exists {
		if g.limits.MaxNodes > 0 && len(g.entities) >= g.limits.MaxNodes {
			g.logger.Warn("entity rejected: node limit reached",
				logging.ProcessID(g.processID), logging.Int("max_nodes", g.limits.MaxNodes))
			g.record("add_entity", "limit")
			return NodeRef{}, false
		}
	}

	key := strings.ToLower(entity.Name)
	if exists {
		// A rename must not leave the old name resolving to this entity.
		if prevKey := strings.ToLower(prev.Name); prevKey != key && g.nameIndex[prevKey] == entity.ID {
			delete(g.nameIndex, prevKey)
		}
	}

	g.entities[entity.ID] = entity
	g.nameIndex[key] = entity.ID
	g.record("add_entity", "ok")

	return NodeRef{EntityID: entity.ID, GraphVersion: g.version}, true
}

// UpsertEntity inserts an entity, merging with an existing entity whose name
// matches case-insensitively. On a match the incoming record wins only when
// its confidence score is strictly higher; either way the established
// identifier is preserved and returned.
func (g *ProcessGraph) UpsertEntity(entity *model.Entity) (uuid.UUID, bool) {
	if entity == nil || !entity.Kind.Valid() {
		return uuid.Nil, false
	}

	g.mu.Lock()
	key := strings.ToLower(entity.Name)
	if existingID, ok := g.nameIndex[key]; ok {
		existing := g.entities[existingID]
		if existing != nil {
			if entity.ConfidenceScore > existing.ConfidenceScore {
				merged := entity.Clone()
				merged.ID = existingID
				merged.CreatedAt = existing.CreatedAt
				merged.UpdatedAt = time.Now().UnixMilli()
				g.entities[existingID] = merged
			}
			g.mu.Unlock()
			g.record("upsert_entity", "merged")
			return existingID, true
		}
	}
	g.mu.Unlock()

	ref, ok := g.AddEntity(entity)
	return ref.EntityID, ok
}

// AddEdge inserts a directed edge. Returns false without mutating the edge
// set when either endpoint is absent, the relation kind is invalid, or the
// edge ceiling is reached.
func (g *ProcessGraph) AddEdge(edge *model.Edge) bool {
	if edge == nil || !edge.Kind.Valid() {
		g.record("add_edge", "rejected")
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.entities[edge.SourceID]; !ok {
		g.record("add_edge", "rejected")
		return false
	}
	if _, ok := g.entities[edge.TargetID]; !ok {
		g.record("add_edge", "rejected")
		return false
	}
	if g.limits.MaxEdges > 0 && len(g.edges) >= g.limits.MaxEdges {
		g.logger.Warn("edge rejected: edge limit reached",
			logging.ProcessID(g.processID), logging.Int("max_edges", g.limits.MaxEdges))
		g.record("add_edge", "limit")
		return false
	}

	g.edges[edge.ID] = edge
	g.out[edge.SourceID] = append(g.out[edge.SourceID], edge.ID)
	g.in[edge.TargetID] = append(g.in[edge.TargetID], edge.ID)
	g.record("add_edge", "ok")
	return true
}

// RemoveEntity removes an entity and all incident edges in both directions.
// Returns false if the entity is absent.
func (g *ProcessGraph) RemoveEntity(id uuid.UUID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	entity, ok := g.entities[id]
	if !ok {
		g.record("remove_entity", "missing")
		return false
	}

	for _, edgeID := range g.out[id] {
		g.detachEdge(edgeID)
	}
	for _, edgeID := range g.in[id] {
		g.detachEdge(edgeID)
	}
	delete(g.out, id)
	delete(g.in, id)

	key := strings.ToLower(entity.Name)
	if g.nameIndex[key] == id {
		delete(g.nameIndex, key)
	}
	delete(g.entities, id)
	g.record("remove_entity", "ok")
	return true
}

// detachEdge removes an edge from the edge table and the adjacency list on
// the far side. Caller holds the write lock and clears the near side.
func (g *ProcessGraph) detachEdge(edgeID uuid.UUID) {
	edge, ok := g.edges[edgeID]
	if !ok {
		return
	}
	g.out[edge.SourceID] = removeID(g.out[edge.SourceID], edgeID)
	g.in[edge.TargetID] = removeID(g.in[edge.TargetID], edgeID)
	delete(g.edges, edgeID)
}

func removeID(ids []uuid.UUID, target uuid.UUID) []uuid.UUID {
	for i, id := range ids {
		if id == target {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// Entity returns the entity with the given ID.
func (g *ProcessGraph) Entity(id uuid.UUID) (*model.Entity, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.entities[id]
	return e, ok
}

// AllEntities returns all entities in the graph, order unspecified.
func (g *ProcessGraph) AllEntities() []*model.Entity {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*model.Entity, 0, len(g.entities))
	for _, e := range g.entities {
		out = append(out, e)
	}
	return out
}

// AllEdges returns all edges in the graph, order unspecified. Edge records
// carry the identifiers assigned at creation; nothing is synthesized on read.
func (g *ProcessGraph) AllEdges() []*model.Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*model.Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	return out
}

// NodeCount returns the number of entities.
func (g *ProcessGraph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.entities)
}

// EdgeCount returns the number of edges.
func (g *ProcessGraph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.edges)
}

func (g *ProcessGraph) record(op, status string) {
	if g.metrics != nil {
		g.metrics.RecordGraphMutation(op, status)
	}
}

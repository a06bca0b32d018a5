package graph

import (
	"container/list"

	"github.com/google/uuid"
)

// Roots returns entities with no incoming edges (process start points).
// Order is unspecified.
func (g *ProcessGraph) Roots() []uuid.UUID {
	g.mu.RLock()
	defer g.mu.RUnlock()

	roots := make([]uuid.UUID, 0)
	for id := range g.entities {
		if len(g.in[id]) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

// Leaves returns entities with no outgoing edges (process end points).
// Order is unspecified.
func (g *ProcessGraph) Leaves() []uuid.UUID {
	g.mu.RLock()
	defer g.mu.RUnlock()

	leaves := make([]uuid.UUID, 0)
	for id := range g.entities {
		if len(g.out[id]) == 0 {
			leaves = append(leaves, id)
		}
	}
	return leaves
}

// ShortestPath finds the shortest directed path by edge count between two
// entities using BFS. Returns false when the target is unreachable or either
// endpoint is absent.
func (g *ProcessGraph) ShortestPath(from, to uuid.UUID) ([]uuid.UUID, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.entities[from]; !ok {
		return nil, false
	}
	if _, ok := g.entities[to]; !ok {
		return nil, false
	}
	if from == to {
		return []uuid.UUID{from}, true
	}

	parent := make(map[uuid.UUID]uuid.UUID)
	parent[from] = from

	queue := list.New()
	queue.PushBack(from)

	for queue.Len() > 0 {
		current := queue.Remove(queue.Front()).(uuid.UUID)

		for _, edgeID := range g.out[current] {
			next := g.edges[edgeID].TargetID
			if _, seen := parent[next]; seen {
				continue
			}
			parent[next] = current
			if next == to {
				return reconstructPath(parent, from, to), true
			}
			queue.PushBack(next)
		}
	}

	return nil, false
}

// reconstructPath walks parent pointers back from the target.
func reconstructPath(parent map[uuid.UUID]uuid.UUID, from, to uuid.UUID) []uuid.UUID {
	path := []uuid.UUID{to}
	for current := to; current != from; {
		current = parent[current]
		path = append(path, current)
	}
	// Reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Downstream returns all entities reachable from the given entity by forward
// traversal, excluding the entity itself.
func (g *ProcessGraph) Downstream(id uuid.UUID) []uuid.UUID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.reachable(id, g.out, func(edgeID uuid.UUID) uuid.UUID {
		return g.edges[edgeID].TargetID
	})
}

// Upstream returns all entities that can reach the given entity by backward
// traversal, excluding the entity itself.
func (g *ProcessGraph) Upstream(id uuid.UUID) []uuid.UUID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.reachable(id, g.in, func(edgeID uuid.UUID) uuid.UUID {
		return g.edges[edgeID].SourceID
	})
}

// reachable runs BFS over the chosen adjacency direction. Caller holds the
// read lock.
func (g *ProcessGraph) reachable(start uuid.UUID, adjacency map[uuid.UUID][]uuid.UUID, endpoint func(uuid.UUID) uuid.UUID) []uuid.UUID {
	if _, ok := g.entities[start]; !ok {
		return nil
	}

	visited := map[uuid.UUID]bool{start: true}
	result := make([]uuid.UUID, 0)

	queue := list.New()
	queue.PushBack(start)

	for queue.Len() > 0 {
		current := queue.Remove(queue.Front()).(uuid.UUID)
		for _, edgeID := range adjacency[current] {
			next := endpoint(edgeID)
			if visited[next] {
				continue
			}
			visited[next] = true
			result = append(result, next)
			queue.PushBack(next)
		}
	}

	return result
}

package risk

import (
	"sort"

	"github.com/google/uuid"

	"github.com/knowflow/procgraph/pkg/model"
)

// buildAdjacency builds an outgoing adjacency list from the edge set.
func buildAdjacency(edges []*model.Edge) map[uuid.UUID][]uuid.UUID {
	adj := make(map[uuid.UUID][]uuid.UUID)
	for _, e := range edges {
		adj[e.SourceID] = append(adj[e.SourceID], e.TargetID)
	}
	return adj
}

// buildReverseAdjacency builds an incoming adjacency list from the edge set.
func buildReverseAdjacency(edges []*model.Edge) map[uuid.UUID][]uuid.UUID {
	rev := make(map[uuid.UUID][]uuid.UUID)
	for _, e := range edges {
		rev[e.TargetID] = append(rev[e.TargetID], e.SourceID)
	}
	return rev
}

type cycleFrame struct {
	node uuid.UUID
	next int
}

// findCycles returns the cycles reachable through a DFS over the adjacency
// list. The traversal uses an explicit stack, so deep graphs cannot overflow
// the goroutine stack. Each cycle is reported as the node sequence along the
// recursion path from the re-entered node.
func findCycles(adj map[uuid.UUID][]uuid.UUID) [][]uuid.UUID {
	var cycles [][]uuid.UUID
	visited := make(map[uuid.UUID]bool)

	for root := range adj {
		if visited[root] {
			continue
		}

		onPath := make(map[uuid.UUID]int) // node -> index in path
		path := []uuid.UUID{root}
		stack := []cycleFrame{{node: root}}
		visited[root] = true
		onPath[root] = 0

		for len(stack) > 0 {
			frame := &stack[len(stack)-1]
			neighbors := adj[frame.node]

			descended := false
			for frame.next < len(neighbors) {
				n := neighbors[frame.next]
				frame.next++

				if start, ok := onPath[n]; ok {
					// Back edge: the path tail from n is a cycle.
					cycle := make([]uuid.UUID, len(path)-start)
					copy(cycle, path[start:])
					cycles = append(cycles, cycle)
					continue
				}
				if visited[n] {
					continue
				}

				visited[n] = true
				onPath[n] = len(path)
				path = append(path, n)
				stack = append(stack, cycleFrame{node: n})
				descended = true
				break
			}
			if descended {
				continue
			}

			delete(onPath, frame.node)
			path = path[:len(path)-1]
			stack = stack[:len(stack)-1]
		}
	}

	return cycles
}

type pathFrame struct {
	node uuid.UUID
	next int
	best int
}

// longestPathFrom computes the longest path length in edges reachable from
// any of the start nodes, memoized per node. A node already on the current
// path contributes zero further length, so cyclic regions terminate instead
// of looping. Explicit stack for the same reason as findCycles.
func longestPathFrom(starts []uuid.UUID, adj map[uuid.UUID][]uuid.UUID) int {
	memo := make(map[uuid.UUID]int)
	longest := 0

	for _, start := range starts {
		if length := longestFrom(start, adj, memo); length > longest {
			longest = length
		}
	}
	return longest
}

func longestFrom(start uuid.UUID, adj map[uuid.UUID][]uuid.UUID, memo map[uuid.UUID]int) int {
	if cached, ok := memo[start]; ok {
		return cached
	}

	onPath := map[uuid.UUID]bool{start: true}
	stack := []pathFrame{{node: start}}

	for len(stack) > 0 {
		frame := &stack[len(stack)-1]
		neighbors := adj[frame.node]

		descended := false
		for frame.next < len(neighbors) {
			n := neighbors[frame.next]
			frame.next++

			if onPath[n] {
				continue
			}
			if cached, ok := memo[n]; ok {
				if 1+cached > frame.best {
					frame.best = 1 + cached
				}
				continue
			}

			onPath[n] = true
			stack = append(stack, pathFrame{node: n})
			descended = true
			break
		}
		if descended {
			continue
		}

		memo[frame.node] = frame.best
		delete(onPath, frame.node)
		finished := frame.best
		stack = stack[:len(stack)-1]
		if len(stack) > 0 {
			parent := &stack[len(stack)-1]
			if 1+finished > parent.best {
				parent.best = 1 + finished
			}
		}
	}

	return memo[start]
}

// sortedEntities returns the entities ordered by name, so rule output stays
// deterministic across runs regardless of map iteration order.
func sortedEntities(entities map[uuid.UUID]*model.Entity) []*model.Entity {
	out := make([]*model.Entity, 0, len(entities))
	for _, e := range entities {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

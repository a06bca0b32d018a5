package graph

import (
	"container/list"

	"github.com/google/uuid"
)

// ComputeCentrality computes betweenness centrality for all entities using a
// single Brandes pass: how often each entity lies on shortest paths between
// other entities. Scores are normalised by 1/((n-1)(n-2)) for n > 2. The
// result is used for ranking and explanatory output only.
func (g *ProcessGraph) ComputeCentrality() map[uuid.UUID]float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	nodeIDs := make([]uuid.UUID, 0, len(g.entities))
	for id := range g.entities {
		nodeIDs = append(nodeIDs, id)
	}

	betweenness := make(map[uuid.UUID]float64, len(nodeIDs))
	for _, id := range nodeIDs {
		betweenness[id] = 0.0
	}

	for _, source := range nodeIDs {
		stack := make([]uuid.UUID, 0, len(nodeIDs))
		predecessors := make(map[uuid.UUID][]uuid.UUID, len(nodeIDs))
		sigma := make(map[uuid.UUID]float64, len(nodeIDs))
		distance := make(map[uuid.UUID]int, len(nodeIDs))

		for _, id := range nodeIDs {
			sigma[id] = 0.0
			distance[id] = -1
		}
		sigma[source] = 1.0
		distance[source] = 0

		queue := list.New()
		queue.PushBack(source)

		for queue.Len() > 0 {
			v := queue.Remove(queue.Front()).(uuid.UUID)
			stack = append(stack, v)

			// Parallel edges count as a single neighbour; path counts are
			// over distinct nodes, not edges.
			visited := make(map[uuid.UUID]bool, len(g.out[v]))
			for _, edgeID := range g.out[v] {
				w := g.edges[edgeID].TargetID
				if visited[w] {
					continue
				}
				visited[w] = true

				if distance[w] < 0 {
					queue.PushBack(w)
					distance[w] = distance[v] + 1
				}
				if distance[w] == distance[v]+1 {
					sigma[w] += sigma[v]
					predecessors[w] = append(predecessors[w], v)
				}
			}
		}

		// Back-propagation of dependency onto predecessors
		delta := make(map[uuid.UUID]float64, len(nodeIDs))
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, pred := range predecessors[w] {
				if sigma[w] > 0 {
					delta[pred] += (sigma[pred] / sigma[w]) * (1.0 + delta[w])
				}
			}
			if w != source {
				betweenness[w] += delta[w]
			}
		}
	}

	if n := len(nodeIDs); n > 2 {
		normFactor := 1.0 / float64((n-1)*(n-2))
		for id := range betweenness {
			betweenness[id] *= normFactor
		}
	}

	return betweenness
}

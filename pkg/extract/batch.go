package extract

import (
	"strings"

	"github.com/google/uuid"

	"github.com/knowflow/procgraph/pkg/graph"
)

// BatchResult reports what a batch application did, so best-effort drops stay
// observable instead of silent.
type BatchResult struct {
	EntitiesApplied int `json:"entities_applied"`
	EntitiesDropped int `json:"entities_dropped"`
	EdgesApplied    int `json:"edges_applied"`
	EdgesDropped    int `json:"edges_dropped"`
}

// ApplyBatch pushes a batch of extracted payloads into a process graph.
// Entities are applied first with case-insensitive name merging; relations
// are then resolved against the merged name set. Malformed or unresolvable
// items are dropped and counted, never aborting the batch.
func ApplyBatch(g *graph.ProcessGraph, entities []EntityPayload, relations []RelationPayload) BatchResult {
	var result BatchResult

	// name (lowercase) -> entity id, seeded with what the graph already knows
	lookup := make(map[string]uuid.UUID)
	for _, existing := range g.AllEntities() {
		lookup[strings.ToLower(existing.Name)] = existing.ID
	}

	for _, payload := range entities {
		entity, ok := BuildEntity(g.ProcessID(), payload)
		if !ok {
			result.EntitiesDropped++
			continue
		}
		id, ok := g.UpsertEntity(entity)
		if !ok {
			result.EntitiesDropped++
			continue
		}
		lookup[strings.ToLower(entity.Name)] = id
		result.EntitiesApplied++
	}

	for _, payload := range relations {
		sourceID, okSource := lookup[strings.ToLower(strings.TrimSpace(payload.SourceName))]
		targetID, okTarget := lookup[strings.ToLower(strings.TrimSpace(payload.TargetName))]
		if !okSource || !okTarget {
			result.EdgesDropped++
			continue
		}

		edge, ok := BuildEdge(sourceID, targetID, payload)
		if !ok {
			result.EdgesDropped++
			continue
		}
		if !g.AddEdge(edge) {
			result.EdgesDropped++
			continue
		}
		result.EdgesApplied++
	}

	return result
}

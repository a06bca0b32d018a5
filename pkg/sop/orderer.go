// Package sop turns a process graph into a Standard Operating Procedure: a
// linear, numbered step sequence with responsibility, branch, and confidence
// annotations, plus derived document sections and quality scores.
package sop

import (
	"sort"

	"github.com/google/uuid"

	"github.com/knowflow/procgraph/pkg/graph"
	"github.com/knowflow/procgraph/pkg/model"
)

// orderedStep is one entity in execution order. Branch carries the decision
// edge label when the step was reached through a labeled decision branch.
type orderedStep struct {
	entity *model.Entity
	branch string
}

// orderSteps linearizes the graph breadth-first from its roots. When the
// graph has no roots (fully cyclic or empty), it falls back to all task
// entities. Each entity is visited at most once; the branch label propagates
// only across edges leaving a decision entity. Roots and sibling edges are
// ordered by entity name so the same graph always yields the same sequence.
func orderSteps(g *graph.ProcessGraph) []orderedStep {
	entities := make(map[uuid.UUID]*model.Entity)
	for _, e := range g.AllEntities() {
		entities[e.ID] = e
	}

	outgoing := make(map[uuid.UUID][]*model.Edge)
	for _, e := range g.AllEdges() {
		outgoing[e.SourceID] = append(outgoing[e.SourceID], e)
	}
	for _, edges := range outgoing {
		sort.Slice(edges, func(i, j int) bool {
			return nameOf(entities, edges[i].TargetID) < nameOf(entities, edges[j].TargetID)
		})
	}

	roots := g.Roots()
	if len(roots) == 0 {
		for _, e := range entities {
			if e.Kind == model.KindTask {
				roots = append(roots, e.ID)
			}
		}
	}
	sort.Slice(roots, func(i, j int) bool {
		return nameOf(entities, roots[i]) < nameOf(entities, roots[j])
	})

	type queued struct {
		id     uuid.UUID
		branch string
	}

	visited := make(map[uuid.UUID]bool)
	var ordered []orderedStep

	queue := make([]queued, 0, len(roots))
	for _, r := range roots {
		queue = append(queue, queued{id: r})
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current.id] {
			continue
		}
		entity := entities[current.id]
		if entity == nil {
			continue
		}
		visited[current.id] = true
		ordered = append(ordered, orderedStep{entity: entity, branch: current.branch})

		for _, edge := range outgoing[current.id] {
			label := ""
			if entity.Kind == model.KindDecision {
				label = edge.Label
			}
			queue = append(queue, queued{id: edge.TargetID, branch: label})
		}
	}

	return ordered
}

func nameOf(entities map[uuid.UUID]*model.Entity, id uuid.UUID) string {
	if e := entities[id]; e != nil {
		return e.Name
	}
	return ""
}

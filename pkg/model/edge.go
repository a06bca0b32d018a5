package model

import (
	"time"

	"github.com/google/uuid"
)

// Edge is a directed, typed relation between two entities. The identifier is
// assigned once at creation and never regenerated on read.
type Edge struct {
	ID       uuid.UUID    `json:"id"`
	SourceID uuid.UUID    `json:"source_id"`
	TargetID uuid.UUID    `json:"target_id"`
	Kind     RelationKind `json:"kind"`

	// Label names a decision branch, e.g. "Yes" or "No".
	Label string `json:"label,omitempty"`
	// Conditions hold textual branch conditions for decision edges.
	Conditions []string `json:"conditions,omitempty"`

	Weight float64 `json:"weight"`

	Confidence      ConfidenceLevel `json:"confidence"`
	ConfidenceScore float64         `json:"confidence_score"`

	SourceResponseIDs []uuid.UUID `json:"source_response_ids,omitempty"`

	CreatedAt int64 `json:"created_at"`
}

// NewEdge creates an edge with a fresh identifier, default weight 1.0, and a
// confidence level derived from the score.
func NewEdge(source, target uuid.UUID, kind RelationKind, score float64) *Edge {
	return &Edge{
		ID:              uuid.New(),
		SourceID:        source,
		TargetID:        target,
		Kind:            kind,
		Weight:          1.0,
		Confidence:      LevelForScore(score),
		ConfidenceScore: score,
		CreatedAt:       time.Now().UnixMilli(),
	}
}

// Clone creates a deep copy of the edge.
func (e *Edge) Clone() *Edge {
	clone := *e
	if e.Conditions != nil {
		clone.Conditions = make([]string, len(e.Conditions))
		copy(clone.Conditions, e.Conditions)
	}
	if e.SourceResponseIDs != nil {
		clone.SourceResponseIDs = make([]uuid.UUID, len(e.SourceResponseIDs))
		copy(clone.SourceResponseIDs, e.SourceResponseIDs)
	}
	return &clone
}

package model

import (
	"github.com/google/uuid"
)

// GraphVersion records one snapshot of a process graph: the version counter
// value, node/edge counts at capture time, and a change summary.
type GraphVersion struct {
	ID        uuid.UUID `json:"id"`
	ProcessID uuid.UUID `json:"process_id"`
	Number    int       `json:"number"`

	NodeCount int `json:"node_count"`
	EdgeCount int `json:"edge_count"`

	ChangeSummary string `json:"change_summary,omitempty"`
	CreatedAt     int64  `json:"created_at"`
}

// GraphDiff is the computed set-difference between two snapshots. It is
// derived on demand, never stored.
type GraphDiff struct {
	FromVersion int `json:"from_version"`
	ToVersion   int `json:"to_version"`

	NodesAdded   []uuid.UUID `json:"nodes_added,omitempty"`
	NodesRemoved []uuid.UUID `json:"nodes_removed,omitempty"`

	// Edge keys are (source, target) pairs; parallel edges with the same
	// endpoints collapse into one key for diffing purposes.
	EdgesAdded   [][2]uuid.UUID `json:"edges_added,omitempty"`
	EdgesRemoved [][2]uuid.UUID `json:"edges_removed,omitempty"`

	Summary string `json:"summary"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// DetailLevel controls how verbose generated step descriptions are.
type DetailLevel string

const (
	DetailBrief    DetailLevel = "brief"
	DetailStandard DetailLevel = "standard"
	DetailDetailed DetailLevel = "detailed"
)

// Valid reports whether d is a known detail level.
func (d DetailLevel) Valid() bool {
	switch d {
	case DetailBrief, DetailStandard, DetailDetailed:
		return true
	}
	return false
}

// SOPStep is one entry in the linearized procedure derived from the graph.
type SOPStep struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`

	ResponsibleRole string `json:"responsible_role,omitempty"`

	// SourceNodeIDs records which graph entities produced this step,
	// normally a singleton.
	SourceNodeIDs []uuid.UUID `json:"source_node_ids,omitempty"`

	IsDecisionPoint    bool `json:"is_decision_point"`
	IsExceptionHandler bool `json:"is_exception_handler"`

	// Branches maps a decision edge label to a step-number placeholder.
	// Step numbers for branch targets are not resolved; branches reference
	// labels only.
	Branches map[string]int `json:"branches,omitempty"`

	Notes []string `json:"notes,omitempty"`
}

// GenerationParams echoes the options an SOP was generated with.
type GenerationParams struct {
	IncludeExceptions bool        `json:"include_exceptions"`
	IncludeSystems    bool        `json:"include_systems"`
	DetailLevel       DetailLevel `json:"detail_level"`
}

// SOPVersion is a generated Standard Operating Procedure: the ordered step
// list plus derived document sections and quality scores.
type SOPVersion struct {
	ID        uuid.UUID `json:"id"`
	ProcessID uuid.UUID `json:"process_id"`
	Number    int       `json:"number"`

	Title   string    `json:"title"`
	Purpose string    `json:"purpose"`
	Scope   string    `json:"scope"`
	Steps   []SOPStep `json:"steps"`

	RolesInvolved     []string `json:"roles_involved,omitempty"`
	SystemsReferenced []string `json:"systems_referenced,omitempty"`
	ArtifactsProduced []string `json:"artifacts_produced,omitempty"`

	// CoverageScore is the fraction of graph entities represented by a step.
	CoverageScore float64 `json:"coverage_score"`
	// ConfidenceScore is the mean entity confidence across the whole graph.
	ConfidenceScore float64 `json:"confidence_score"`

	GeneratedAt        int64            `json:"generated_at"`
	SourceGraphVersion int              `json:"source_graph_version"`
	Params             GenerationParams `json:"generation_params"`
}

// NewSOPVersion creates an SOP shell with a fresh identifier and timestamp.
func NewSOPVersion(processID uuid.UUID) *SOPVersion {
	return &SOPVersion{
		ID:          uuid.New(),
		ProcessID:   processID,
		Number:      1,
		GeneratedAt: time.Now().UnixMilli(),
	}
}

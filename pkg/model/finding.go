package model

import (
	"time"

	"github.com/google/uuid"
)

// RiskCategory classifies a structural risk finding.
type RiskCategory string

const (
	RiskSinglePointOfFailure    RiskCategory = "single_point_of_failure"
	RiskUndocumentedDecision    RiskCategory = "undocumented_decision"
	RiskOrphanedTask            RiskCategory = "orphaned_task"
	RiskBrittleChain            RiskCategory = "brittle_chain"
	RiskMissingExceptionHandler RiskCategory = "missing_exception_handler"
	RiskCircularDependency      RiskCategory = "circular_dependency"
	RiskBottleneck              RiskCategory = "bottleneck"
)

// RiskSeverity ranks how urgent a finding is.
type RiskSeverity string

const (
	SeverityCritical RiskSeverity = "critical" // Immediate action required
	SeverityHigh     RiskSeverity = "high"     // Should be addressed before go-live
	SeverityMedium   RiskSeverity = "medium"   // Should be documented and monitored
	SeverityLow      RiskSeverity = "low"      // Informational, nice to fix
)

// Rank returns the numeric order of a severity: low < medium < high < critical.
func (s RiskSeverity) Rank() int {
	switch s {
	case SeverityLow:
		return 0
	case SeverityMedium:
		return 1
	case SeverityHigh:
		return 2
	case SeverityCritical:
		return 3
	default:
		return -1
	}
}

// EffortEstimate sizes the work to address a finding.
type EffortEstimate string

const (
	EffortLow    EffortEstimate = "low"
	EffortMedium EffortEstimate = "medium"
	EffortHigh   EffortEstimate = "high"
)

// RiskFinding is a structured risk report produced by a detection rule.
// Findings are created by an analysis run and mutated only through
// Acknowledge/Resolve; re-analysis replaces the whole set.
type RiskFinding struct {
	ID        uuid.UUID `json:"id"`
	ProcessID uuid.UUID `json:"process_id"`

	Category RiskCategory `json:"category"`
	Severity RiskSeverity `json:"severity"`

	Title       string `json:"title"`
	Description string `json:"description"`
	// Explanation states the causal risk mechanism: why the structural
	// pattern is dangerous, not just what the pattern is.
	Explanation string `json:"explanation"`

	AffectedNodeIDs []uuid.UUID `json:"affected_node_ids,omitempty"`
	AffectedEdgeIDs []uuid.UUID `json:"affected_edge_ids,omitempty"`

	Recommendation string         `json:"recommendation"`
	Effort         EffortEstimate `json:"effort_estimate,omitempty"`

	Acknowledged    bool   `json:"acknowledged"`
	AcknowledgedBy  string `json:"acknowledged_by,omitempty"`
	ResolutionNotes string `json:"resolution_notes,omitempty"`
	Resolved        bool   `json:"resolved"`

	DetectedAt int64 `json:"detected_at"`
	ResolvedAt int64 `json:"resolved_at,omitempty"`
}

// NewRiskFinding creates a finding with a fresh identifier and detection time.
func NewRiskFinding(processID uuid.UUID, category RiskCategory, severity RiskSeverity) *RiskFinding {
	return &RiskFinding{
		ID:         uuid.New(),
		ProcessID:  processID,
		Category:   category,
		Severity:   severity,
		DetectedAt: time.Now().UnixMilli(),
	}
}

// Acknowledge marks the finding as seen by the given reviewer.
func (f *RiskFinding) Acknowledge(by string) {
	f.Acknowledged = true
	f.AcknowledgedBy = by
}

// Resolve marks the finding resolved with optional notes.
func (f *RiskFinding) Resolve(notes string) {
	f.Resolved = true
	f.ResolutionNotes = notes
	f.ResolvedAt = time.Now().UnixMilli()
}

package metrics

import (
	"time"
)

// RecordGraphMutation records a graph mutation with its outcome.
func (r *Registry) RecordGraphMutation(operation, status string) {
	r.GraphMutationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordSnapshot records a snapshot creation with its captured counts.
func (r *Registry) RecordSnapshot(nodeCount, edgeCount int) {
	r.SnapshotsTotal.Inc()
	r.SnapshotNodes.Set(float64(nodeCount))
	r.SnapshotEdges.Set(float64(edgeCount))
}

// RecordRuleRun records one risk rule execution.
func (r *Registry) RecordRuleRun(rule string, duration time.Duration) {
	r.RuleRunsTotal.WithLabelValues(rule).Inc()
	r.RuleDuration.WithLabelValues(rule).Observe(duration.Seconds())
}

// RecordFinding records one produced risk finding.
func (r *Registry) RecordFinding(category, severity string) {
	r.FindingsTotal.WithLabelValues(category, severity).Inc()
}

// RecordAnalysis records a full risk analysis run.
func (r *Registry) RecordAnalysis(duration time.Duration) {
	r.AnalysisDuration.Observe(duration.Seconds())
}

// RecordGeneration records an SOP generation with its quality scores.
func (r *Registry) RecordGeneration(duration time.Duration, coverage, confidence float64) {
	r.GenerationsTotal.Inc()
	r.GenerationDuration.Observe(duration.Seconds())
	r.SOPCoverageScore.Set(coverage)
	r.SOPConfidenceScore.Set(confidence)
}

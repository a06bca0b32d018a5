package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initRiskMetrics() {
	r.RuleRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "procgraph_risk_rule_runs_total",
			Help: "Total number of risk rule executions",
		},
		[]string{"rule"},
	)

	r.RuleDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "procgraph_risk_rule_duration_seconds",
			Help:    "Risk rule execution duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"rule"},
	)

	r.FindingsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "procgraph_risk_findings_total",
			Help: "Total number of risk findings produced",
		},
		[]string{"category", "severity"},
	)

	r.AnalysisDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "procgraph_risk_analysis_duration_seconds",
			Help:    "Full risk analysis duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
	)
}

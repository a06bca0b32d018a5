package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSOPMetrics() {
	r.GenerationsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "procgraph_sop_generations_total",
			Help: "Total number of SOP generations",
		},
	)

	r.GenerationDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "procgraph_sop_generation_duration_seconds",
			Help:    "SOP generation duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)

	r.SOPCoverageScore = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "procgraph_sop_coverage_score",
			Help: "Coverage score of the most recent generated SOP",
		},
	)

	r.SOPConfidenceScore = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "procgraph_sop_confidence_score",
			Help: "Confidence score of the most recent generated SOP",
		},
	)
}

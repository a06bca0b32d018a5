package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all prometheus metrics for the process graph engine.
// Engines accept a nil *Registry, so metrics stay optional for library
// consumers.
type Registry struct {
	registry *prometheus.Registry

	// Graph metrics
	GraphMutationsTotal *prometheus.CounterVec
	SnapshotsTotal      prometheus.Counter
	SnapshotNodes       prometheus.Gauge
	SnapshotEdges       prometheus.Gauge

	// Risk analysis metrics
	RuleRunsTotal    *prometheus.CounterVec
	RuleDuration     *prometheus.HistogramVec
	FindingsTotal    *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram

	// SOP generation metrics
	GenerationsTotal   prometheus.Counter
	GenerationDuration prometheus.Histogram
	SOPCoverageScore   prometheus.Gauge
	SOPConfidenceScore prometheus.Gauge
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}
	r.initGraphMetrics()
	r.initRiskMetrics()
	r.initSOPMetrics()
	return r
}

// Handler returns an HTTP handler serving the metrics in prometheus format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry for tests and custom exporters.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphMutationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "procgraph_graph_mutations_total",
			Help: "Total number of graph mutation operations",
		},
		[]string{"operation", "status"},
	)

	r.SnapshotsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "procgraph_snapshots_total",
			Help: "Total number of graph snapshots created",
		},
	)

	r.SnapshotNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "procgraph_snapshot_nodes",
			Help: "Node count captured by the most recent snapshot",
		},
	)

	r.SnapshotEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "procgraph_snapshot_edges",
			Help: "Edge count captured by the most recent snapshot",
		},
	)
}

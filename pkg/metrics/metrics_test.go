package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordGraphMutation(t *testing.T) {
	r := NewRegistry()

	r.RecordGraphMutation("add_entity", "ok")
	r.RecordGraphMutation("add_entity", "ok")
	r.RecordGraphMutation("add_edge", "rejected")

	if got := testutil.ToFloat64(r.GraphMutationsTotal.WithLabelValues("add_entity", "ok")); got != 2 {
		t.Errorf("add_entity/ok = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.GraphMutationsTotal.WithLabelValues("add_edge", "rejected")); got != 1 {
		t.Errorf("add_edge/rejected = %v, want 1", got)
	}
}

func TestRecordSnapshot(t *testing.T) {
	r := NewRegistry()

	r.RecordSnapshot(10, 7)
	r.RecordSnapshot(12, 9)

	if got := testutil.ToFloat64(r.SnapshotsTotal); got != 2 {
		t.Errorf("snapshots total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.SnapshotNodes); got != 12 {
		t.Errorf("snapshot nodes gauge = %v, want latest value 12", got)
	}
	if got := testutil.ToFloat64(r.SnapshotEdges); got != 9 {
		t.Errorf("snapshot edges gauge = %v, want latest value 9", got)
	}
}

func TestRecordRuleRunAndFindings(t *testing.T) {
	r := NewRegistry()

	r.RecordRuleRun("bottleneck", 5*time.Millisecond)
	r.RecordRuleRun("bottleneck", 3*time.Millisecond)
	r.RecordFinding("bottleneck", "medium")

	if got := testutil.ToFloat64(r.RuleRunsTotal.WithLabelValues("bottleneck")); got != 2 {
		t.Errorf("rule runs = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.FindingsTotal.WithLabelValues("bottleneck", "medium")); got != 1 {
		t.Errorf("findings = %v, want 1", got)
	}
}

func TestRecordGeneration(t *testing.T) {
	r := NewRegistry()

	r.RecordGeneration(20*time.Millisecond, 0.75, 0.6)

	if got := testutil.ToFloat64(r.GenerationsTotal); got != 1 {
		t.Errorf("generations = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.SOPCoverageScore); got != 0.75 {
		t.Errorf("coverage gauge = %v, want 0.75", got)
	}
	if got := testutil.ToFloat64(r.SOPConfidenceScore); got != 0.6 {
		t.Errorf("confidence gauge = %v, want 0.6", got)
	}
}

func TestAllMetricsGatherable(t *testing.T) {
	r := NewRegistry()
	r.RecordGraphMutation("add_entity", "ok")
	r.RecordSnapshot(1, 0)
	r.RecordRuleRun("orphaned_task", time.Millisecond)
	r.RecordAnalysis(2 * time.Millisecond)
	r.RecordGeneration(time.Millisecond, 1, 1)

	families, err := r.Gatherer().Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("expected registered metric families")
	}
}

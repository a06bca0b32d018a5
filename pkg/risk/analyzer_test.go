package risk

import (
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/knowflow/procgraph/pkg/config"
	"github.com/knowflow/procgraph/pkg/graph"
	"github.com/knowflow/procgraph/pkg/model"
)

// riskyFixture builds a graph with a cycle, an overloaded owner, and an
// undocumented decision, so several rule categories fire at once.
func riskyFixture() *fixture {
	f := newFixture()

	a := f.entity(model.KindTask, "A", 0.9)
	b := f.entity(model.KindTask, "B", 0.9)
	c := f.entity(model.KindTask, "C", 0.9)
	f.edge(a.ID, b.ID, model.RelDependsOn)
	f.edge(b.ID, c.ID, model.RelDependsOn)
	f.edge(c.ID, a.ID, model.RelDependsOn)

	role := f.entity(model.KindRole, "Sarah", 0.9)
	for i := 0; i < 3; i++ {
		task := f.entity(model.KindTask, fmt.Sprintf("Owned %d", i+1), 0.9)
		f.edge(task.ID, role.ID, model.RelOwnedBy)
	}

	decision := f.entity(model.KindDecision, "Route", 0.8)
	f.edge(decision.ID, a.ID, model.RelDecides)

	return f
}

func TestAnalyzeSortsBySeverity(t *testing.T) {
	f := riskyFixture()
	analyzer := NewAnalyzer(config.Default())

	report := analyzer.Analyze(f.entities, f.edges, Options{})
	if len(report.Findings) == 0 {
		t.Fatal("expected findings")
	}
	for i := 1; i < len(report.Findings); i++ {
		if report.Findings[i-1].Severity.Rank() < report.Findings[i].Severity.Rank() {
			t.Fatalf("findings out of order at %d: %v before %v",
				i, report.Findings[i-1].Severity, report.Findings[i].Severity)
		}
	}
	if report.Findings[0].Severity != model.SeverityCritical {
		t.Errorf("cycle should dominate the report, got %v", report.Findings[0].Severity)
	}
}

func TestAnalyzeMinSeverityFilter(t *testing.T) {
	f := riskyFixture()
	analyzer := NewAnalyzer(config.Default())

	report := analyzer.Analyze(f.entities, f.edges, Options{MinSeverity: model.SeverityCritical})
	for _, finding := range report.Findings {
		if finding.Severity != model.SeverityCritical {
			t.Errorf("filter leaked %v finding %q", finding.Severity, finding.Title)
		}
	}
	if len(report.Findings) == 0 {
		t.Error("expected the cycle finding to survive the filter")
	}
}

func TestAnalyzeCategoryFilter(t *testing.T) {
	f := riskyFixture()
	analyzer := NewAnalyzer(config.Default())

	report := analyzer.Analyze(f.entities, f.edges, Options{
		Categories: []model.RiskCategory{model.RiskSinglePointOfFailure},
	})
	if len(report.Findings) == 0 {
		t.Fatal("expected the overloaded owner to be reported")
	}
	for _, finding := range report.Findings {
		if finding.Category != model.RiskSinglePointOfFailure {
			t.Errorf("filter leaked category %v", finding.Category)
		}
	}
}

func TestAnalyzeEmptyGraph(t *testing.T) {
	analyzer := NewAnalyzer(config.Default())
	report := analyzer.Analyze(map[uuid.UUID]*model.Entity{}, nil, Options{})
	if len(report.Findings) != 0 {
		t.Errorf("empty graph should yield no findings, got %d", len(report.Findings))
	}
	if len(report.Skipped) != 0 {
		t.Errorf("empty graph should skip nothing, got %v", report.Skipped)
	}
}

func TestAnalyzeReportsSkips(t *testing.T) {
	f := newFixture()
	role := f.entity(model.KindRole, "Sarah", 0.9)
	f.edge(uuid.New(), role.ID, model.RelOwnedBy)

	analyzer := NewAnalyzer(config.Default())
	report := analyzer.Analyze(f.entities, f.edges, Options{})
	if report.Skipped["single_point_of_failure"] != 1 {
		t.Errorf("expected the dangling ownership edge to be counted, got %v", report.Skipped)
	}
}

func TestAnalyzeGraphReadsCurrentState(t *testing.T) {
	g := graph.New(uuid.New())
	a := model.NewEntity(g.ProcessID(), model.KindTask, "A", 0.9)
	b := model.NewEntity(g.ProcessID(), model.KindTask, "B", 0.9)
	g.AddEntity(a)
	g.AddEntity(b)
	g.AddEdge(model.NewEdge(a.ID, b.ID, model.RelDependsOn, 0.9))
	g.AddEdge(model.NewEdge(b.ID, a.ID, model.RelDependsOn, 0.9))

	analyzer := NewAnalyzer(config.Default())
	report := analyzer.AnalyzeGraph(g, Options{
		Categories: []model.RiskCategory{model.RiskCircularDependency},
	})
	if len(report.Findings) == 0 {
		t.Fatal("expected the two-node cycle to be detected")
	}
	if report.Findings[0].ProcessID != g.ProcessID() {
		t.Error("finding should be stamped with the owning process")
	}
}

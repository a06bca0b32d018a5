// Package risk implements the structural risk analysis engine: a fixed,
// ordered set of stateless detection rules run over the current entity/edge
// set of a process graph.
package risk

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/knowflow/procgraph/pkg/config"
	"github.com/knowflow/procgraph/pkg/graph"
	"github.com/knowflow/procgraph/pkg/logging"
	"github.com/knowflow/procgraph/pkg/metrics"
	"github.com/knowflow/procgraph/pkg/model"
)

// Rule is one structural detection rule. Detect consumes the entity and edge
// sets and returns its findings plus a count of malformed inputs it chose to
// skip (dangling edge endpoints and similar), so best-effort behavior stays
// observable.
type Rule interface {
	Name() string
	Category() model.RiskCategory
	Detect(entities map[uuid.UUID]*model.Entity, edges []*model.Edge) ([]*model.RiskFinding, int)
}

// Options filters an analysis run.
type Options struct {
	// Categories is an allow-list; empty means all categories.
	Categories []model.RiskCategory
	// MinSeverity drops findings below this severity. Zero value (empty
	// string) means low, i.e. keep everything.
	MinSeverity model.RiskSeverity
}

// Report aggregates one analysis run: the filtered, severity-sorted findings
// and the per-rule skip counts.
type Report struct {
	Findings []*model.RiskFinding `json:"findings"`
	// Skipped counts malformed inputs each rule ignored, keyed by rule name.
	// Only rules that skipped something appear.
	Skipped map[string]int `json:"skipped,omitempty"`
}

// Analyzer runs the detection rules in a fixed order. It holds no state
// between calls.
type Analyzer struct {
	rules   []Rule
	logger  logging.Logger
	metrics *metrics.Registry
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithLogger sets the structured logger.
func WithLogger(l logging.Logger) AnalyzerOption {
	return func(a *Analyzer) { a.logger = l }
}

// WithMetrics sets the metrics registry.
func WithMetrics(m *metrics.Registry) AnalyzerOption {
	return func(a *Analyzer) { a.metrics = m }
}

// NewAnalyzer creates an analyzer with the standard rule set in its fixed
// execution order, thresholds taken from cfg.
func NewAnalyzer(cfg config.Config, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		rules: []Rule{
			&SinglePointOfFailureRule{TaskThreshold: cfg.SPOFTaskThreshold},
			&UndocumentedDecisionRule{},
			&OrphanedTaskRule{},
			&BrittleChainRule{Threshold: cfg.BrittleChainThreshold},
			&CircularDependencyRule{},
			&BottleneckRule{Threshold: cfg.BottleneckThreshold},
			&LowConfidenceRule{Ratio: cfg.LowConfidenceRatio, Score: cfg.LowConfidenceScore},
		},
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs every rule over the given entity/edge sets, filters by
// category allow-list and minimum severity, and sorts findings by descending
// severity. Order within a severity tier is unspecified. An empty graph
// yields an empty report.
func (a *Analyzer) Analyze(entities map[uuid.UUID]*model.Entity, edges []*model.Edge, opts Options) *Report {
	start := time.Now()
	report := &Report{Findings: make([]*model.RiskFinding, 0)}

	allowed := make(map[model.RiskCategory]bool, len(opts.Categories))
	for _, c := range opts.Categories {
		allowed[c] = true
	}

	minRank := 0
	if opts.MinSeverity != "" {
		minRank = opts.MinSeverity.Rank()
	}

	for _, rule := range a.rules {
		if len(allowed) > 0 && !allowed[rule.Category()] {
			continue
		}

		ruleStart := time.Now()
		findings, skipped := rule.Detect(entities, edges)
		if a.metrics != nil {
			a.metrics.RecordRuleRun(rule.Name(), time.Since(ruleStart))
		}
		if skipped > 0 {
			if report.Skipped == nil {
				report.Skipped = make(map[string]int)
			}
			report.Skipped[rule.Name()] = skipped
			a.logger.Warn("rule skipped malformed inputs",
				logging.Rule(rule.Name()), logging.Count(skipped))
		}

		for _, finding := range findings {
			if finding.Severity.Rank() < minRank {
				continue
			}
			report.Findings = append(report.Findings, finding)
			if a.metrics != nil {
				a.metrics.RecordFinding(string(finding.Category), string(finding.Severity))
			}
		}
	}

	sort.SliceStable(report.Findings, func(i, j int) bool {
		return report.Findings[i].Severity.Rank() > report.Findings[j].Severity.Rank()
	})

	a.logger.Info("risk analysis complete",
		logging.Count(len(report.Findings)),
		logging.Latency(time.Since(start)))
	if a.metrics != nil {
		a.metrics.RecordAnalysis(time.Since(start))
	}

	return report
}

// AnalyzeGraph runs the analysis over a graph's current state via its read
// accessors.
func (a *Analyzer) AnalyzeGraph(g *graph.ProcessGraph, opts Options) *Report {
	entities := make(map[uuid.UUID]*model.Entity)
	for _, e := range g.AllEntities() {
		entities[e.ID] = e
	}
	return a.Analyze(entities, g.AllEdges(), opts)
}

// processIDOf picks the owning process id from any entity, for stamping
// findings on graphs whose inputs arrive detached.
func processIDOf(entities map[uuid.UUID]*model.Entity) uuid.UUID {
	for _, e := range entities {
		return e.ProcessID
	}
	return uuid.Nil
}

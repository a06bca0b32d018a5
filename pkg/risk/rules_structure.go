package risk

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/knowflow/procgraph/pkg/model"
)

// BrittleChainRule flags processes whose longest sequential dependency chain
// is at or above the threshold. Chain length is measured in edges from start
// nodes (nodes with outgoing edges but no incoming ones).
type BrittleChainRule struct {
	Threshold int
}

func (r *BrittleChainRule) Name() string                 { return "brittle_chain" }
func (r *BrittleChainRule) Category() model.RiskCategory { return model.RiskBrittleChain }

func (r *BrittleChainRule) Detect(entities map[uuid.UUID]*model.Entity, edges []*model.Edge) ([]*model.RiskFinding, int) {
	adj := buildAdjacency(edges)

	targets := make(map[uuid.UUID]bool)
	for _, e := range edges {
		targets[e.TargetID] = true
	}
	var starts []uuid.UUID
	for source := range adj {
		if !targets[source] {
			starts = append(starts, source)
		}
	}
	if len(starts) == 0 {
		return nil, 0
	}

	longest := longestPathFrom(starts, adj)
	if longest < r.Threshold {
		return nil, 0
	}

	f := model.NewRiskFinding(processIDOf(entities), r.Category(), model.SeverityMedium)
	f.Title = fmt.Sprintf("Brittle Chain Detected (%d steps)", longest)
	f.Description = fmt.Sprintf("The process has a dependency chain of %d sequential steps.", longest)
	f.Explanation = "Long sequential chains are fragile: a failure at any point stops everything downstream. They also increase total cycle time and make parallel work impossible."
	f.Recommendation = "Look for opportunities to parallelize independent tasks. Add checkpoints or fallback paths for critical steps."
	f.Effort = model.EffortHigh
	return []*model.RiskFinding{f}, 0
}

// CircularDependencyRule flags cycles in the edge set. Every cycle is
// critical: tasks in a cycle each wait on another and none can complete.
type CircularDependencyRule struct{}

func (r *CircularDependencyRule) Name() string                 { return "circular_dependency" }
func (r *CircularDependencyRule) Category() model.RiskCategory { return model.RiskCircularDependency }

func (r *CircularDependencyRule) Detect(entities map[uuid.UUID]*model.Entity, edges []*model.Edge) ([]*model.RiskFinding, int) {
	var findings []*model.RiskFinding
	skipped := 0
	processID := processIDOf(entities)

	for _, cycle := range findCycles(buildAdjacency(edges)) {
		names := make([]string, 0, len(cycle))
		for _, id := range cycle {
			entity := entities[id]
			if entity == nil {
				skipped++
				continue
			}
			names = append(names, entity.Name)
		}
		if len(names) == 0 {
			continue
		}

		f := model.NewRiskFinding(processID, r.Category(), model.SeverityCritical)
		f.Title = "Circular Dependency Detected"
		f.Description = fmt.Sprintf("Cycle found: %s → %s", strings.Join(names, " → "), names[0])
		f.Explanation = "Circular dependencies create deadlock: each task waits for another, so nothing can complete. This will cause the process to hang indefinitely."
		f.AffectedNodeIDs = append([]uuid.UUID(nil), cycle...)
		f.Recommendation = "Break the cycle by removing one dependency or restructuring the process to eliminate the loop."
		f.Effort = model.EffortMedium
		findings = append(findings, f)
	}

	return findings, skipped
}

// BottleneckRule flags nodes whose in-degree meets the threshold: everything
// upstream must finish before they can run, so they queue the whole process.
type BottleneckRule struct {
	Threshold int
}

func (r *BottleneckRule) Name() string                 { return "bottleneck" }
func (r *BottleneckRule) Category() model.RiskCategory { return model.RiskBottleneck }

func (r *BottleneckRule) Detect(entities map[uuid.UUID]*model.Entity, edges []*model.Edge) ([]*model.RiskFinding, int) {
	var findings []*model.RiskFinding
	skipped := 0

	inDegree := make(map[uuid.UUID]int)
	for _, edge := range edges {
		inDegree[edge.TargetID]++
	}

	for _, entity := range sortedEntities(entities) {
		count := inDegree[entity.ID]
		if count < r.Threshold {
			continue
		}

		f := model.NewRiskFinding(entity.ProcessID, r.Category(), model.SeverityMedium)
		f.Title = fmt.Sprintf("Bottleneck: %s", entity.Name)
		f.Description = fmt.Sprintf("'%s' has %d incoming dependencies.", entity.Name, count)
		f.Explanation = "This task/checkpoint must wait for many other things to complete before it can proceed. Any delay in upstream tasks cascades here, and this node becomes a queue that slows the entire process."
		f.AffectedNodeIDs = []uuid.UUID{entity.ID}
		f.Recommendation = "Consider parallelizing this step or splitting it into sub-tasks that can complete independently."
		f.Effort = model.EffortHigh
		findings = append(findings, f)
	}

	// Edge targets over threshold with no matching entity are malformed input.
	for id, count := range inDegree {
		if count >= r.Threshold && entities[id] == nil {
			skipped++
		}
	}

	return findings, skipped
}

// LowConfidenceRule flags models where too large a share of entities sit
// below the confidence floor. Reported under the brittle_chain category: the
// uncertainty makes the whole model fragile.
type LowConfidenceRule struct {
	// Ratio is the flagged share of low-confidence entities, e.g. 0.3.
	Ratio float64
	// Score is the per-entity confidence floor, e.g. 0.5.
	Score float64
}

func (r *LowConfidenceRule) Name() string                 { return "low_confidence" }
func (r *LowConfidenceRule) Category() model.RiskCategory { return model.RiskBrittleChain }

func (r *LowConfidenceRule) Detect(entities map[uuid.UUID]*model.Entity, edges []*model.Edge) ([]*model.RiskFinding, int) {
	total := len(entities)
	if total == 0 {
		return nil, 0
	}

	var lowIDs []uuid.UUID
	for _, entity := range sortedEntities(entities) {
		if entity.ConfidenceScore < r.Score {
			lowIDs = append(lowIDs, entity.ID)
		}
	}
	if float64(len(lowIDs))/float64(total) <= r.Ratio {
		return nil, 0
	}

	f := model.NewRiskFinding(processIDOf(entities), r.Category(), model.SeverityMedium)
	f.Title = "High Uncertainty in Process Model"
	f.Description = fmt.Sprintf("%d of %d elements have low confidence scores.", len(lowIDs), total)
	f.Explanation = "Many parts of this process are not well-documented or confirmed. Decisions based on this model may be incorrect."
	f.AffectedNodeIDs = lowIDs
	f.Recommendation = "Review and validate the low-confidence elements with domain experts before finalizing."
	f.Effort = model.EffortMedium
	return []*model.RiskFinding{f}, 0
}

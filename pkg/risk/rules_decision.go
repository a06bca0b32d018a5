package risk

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/knowflow/procgraph/pkg/model"
)

// UndocumentedDecisionRule flags decision entities whose branching criteria
// are not written down anywhere: no conditions attribute and fewer than two
// outgoing decides edges carrying a label or conditions.
type UndocumentedDecisionRule struct{}

func (r *UndocumentedDecisionRule) Name() string                 { return "undocumented_decision" }
func (r *UndocumentedDecisionRule) Category() model.RiskCategory { return model.RiskUndocumentedDecision }

func (r *UndocumentedDecisionRule) Detect(entities map[uuid.UUID]*model.Entity, edges []*model.Edge) ([]*model.RiskFinding, int) {
	var findings []*model.RiskFinding

	// decision id -> outgoing decides edges that document a branch
	documented := make(map[uuid.UUID]int)
	for _, edge := range edges {
		if edge.Kind != model.RelDecides {
			continue
		}
		if edge.Label != "" || len(edge.Conditions) > 0 {
			documented[edge.SourceID]++
		}
	}

	for _, entity := range sortedEntities(entities) {
		if entity.Kind != model.KindDecision {
			continue
		}
		if len(entity.Conditions()) > 0 || documented[entity.ID] >= 2 {
			continue
		}

		f := model.NewRiskFinding(entity.ProcessID, r.Category(), model.SeverityMedium)
		f.Title = fmt.Sprintf("Undocumented Decision: %s", entity.Name)
		f.Description = fmt.Sprintf("Decision point '%s' lacks explicit conditions for branching.", entity.Name)
		f.Explanation = "Without documented criteria, decision-making becomes subjective and inconsistent. Different people may make different choices given the same inputs, leading to unpredictable outcomes."
		f.AffectedNodeIDs = []uuid.UUID{entity.ID}
		f.Recommendation = "Define explicit, measurable conditions for each possible outcome (e.g., 'If amount > $10,000: require manager approval')."
		f.Effort = model.EffortLow
		findings = append(findings, f)
	}

	return findings, 0
}

package risk

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/knowflow/procgraph/pkg/model"
)

// SinglePointOfFailureRule flags roles that are sole owners of too many
// tasks. Ownership is read from owned_by edges (task -> role) and from the
// owner/responsible attributes of task entities.
type SinglePointOfFailureRule struct {
	// TaskThreshold is the number of owned tasks at which a role is flagged.
	TaskThreshold int
}

func (r *SinglePointOfFailureRule) Name() string                 { return "single_point_of_failure" }
func (r *SinglePointOfFailureRule) Category() model.RiskCategory { return model.RiskSinglePointOfFailure }

type roleLoad struct {
	roleID    uuid.UUID
	taskIDs   []uuid.UUID
	taskNames []string
}

func (r *SinglePointOfFailureRule) Detect(entities map[uuid.UUID]*model.Entity, edges []*model.Edge) ([]*model.RiskFinding, int) {
	var findings []*model.RiskFinding
	skipped := 0
	processID := processIDOf(entities)

	loads := make(map[string]*roleLoad)
	load := func(role string) *roleLoad {
		l, ok := loads[role]
		if !ok {
			l = &roleLoad{}
			loads[role] = l
		}
		return l
	}

	for _, edge := range edges {
		if edge.Kind != model.RelOwnedBy {
			continue
		}
		task := entities[edge.SourceID]
		role := entities[edge.TargetID]
		if task == nil || role == nil {
			skipped++
			continue
		}
		l := load(role.Name)
		l.roleID = role.ID
		l.taskIDs = append(l.taskIDs, task.ID)
		l.taskNames = append(l.taskNames, task.Name)
	}

	// Attribute-declared ownership, for tasks never wired to a role node.
	for _, entity := range sortedEntities(entities) {
		if entity.Kind != model.KindTask {
			continue
		}
		owner, ok := entity.Owner()
		if !ok {
			continue
		}
		l := load(owner)
		l.taskIDs = append(l.taskIDs, entity.ID)
		l.taskNames = append(l.taskNames, entity.Name)
	}

	roles := make([]string, 0, len(loads))
	for role := range loads {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	for _, role := range roles {
		l := loads[role]
		if len(l.taskNames) < r.TaskThreshold {
			continue
		}

		shown := l.taskNames
		suffix := ""
		if len(shown) > 3 {
			shown = shown[:3]
			suffix = "..."
		}

		affected := append([]uuid.UUID(nil), l.taskIDs...)
		if l.roleID != uuid.Nil {
			affected = append(affected, l.roleID)
		}

		f := model.NewRiskFinding(processID, r.Category(), model.SeverityHigh)
		f.Title = fmt.Sprintf("Single Point of Failure: %s", role)
		f.Description = fmt.Sprintf("'%s' is solely responsible for %d tasks: %s%s",
			role, len(l.taskNames), strings.Join(shown, ", "), suffix)
		f.Explanation = fmt.Sprintf("If %s is unavailable (vacation, illness, leaves company), these %d tasks cannot be performed. This creates operational risk and potential bottlenecks.",
			role, len(l.taskNames))
		f.AffectedNodeIDs = affected
		f.Recommendation = fmt.Sprintf("Cross-train at least one other person on %s's responsibilities. Document procedures thoroughly.", role)
		f.Effort = model.EffortMedium
		findings = append(findings, f)
	}

	return findings, skipped
}

// OrphanedTaskRule flags tasks that have no owner, no trigger, or neither.
// Both missing is HIGH, one missing is MEDIUM.
type OrphanedTaskRule struct{}

func (r *OrphanedTaskRule) Name() string                 { return "orphaned_task" }
func (r *OrphanedTaskRule) Category() model.RiskCategory { return model.RiskOrphanedTask }

func (r *OrphanedTaskRule) Detect(entities map[uuid.UUID]*model.Entity, edges []*model.Edge) ([]*model.RiskFinding, int) {
	var findings []*model.RiskFinding

	owned := make(map[uuid.UUID]bool)
	initiated := make(map[uuid.UUID]bool)
	for _, edge := range edges {
		switch edge.Kind {
		case model.RelOwnedBy:
			owned[edge.SourceID] = true
		case model.RelTriggers, model.RelDependsOn:
			initiated[edge.TargetID] = true
		}
	}

	for _, entity := range sortedEntities(entities) {
		if entity.Kind != model.KindTask {
			continue
		}

		var issues []string
		if _, hasAttr := entity.Owner(); !owned[entity.ID] && !hasAttr {
			issues = append(issues, "no assigned owner")
		}
		if !initiated[entity.ID] {
			issues = append(issues, "no trigger or upstream dependency")
		}
		if len(issues) == 0 {
			continue
		}

		severity := model.SeverityMedium
		if len(issues) == 2 {
			severity = model.SeverityHigh
		}

		f := model.NewRiskFinding(entity.ProcessID, r.Category(), severity)
		f.Title = fmt.Sprintf("Orphaned Task: %s", entity.Name)
		f.Description = fmt.Sprintf("Task '%s' has %s.", entity.Name, strings.Join(issues, " and "))
		f.Explanation = "Tasks without clear ownership may never be completed. Tasks without triggers may never be initiated. This leads to process delays or complete failure."
		f.AffectedNodeIDs = []uuid.UUID{entity.ID}
		f.Recommendation = fmt.Sprintf("Assign an owner to '%s' and clarify what event or preceding task triggers it.", entity.Name)
		f.Effort = model.EffortLow
		findings = append(findings, f)
	}

	return findings, 0
}

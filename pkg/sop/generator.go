package sop

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/knowflow/procgraph/pkg/graph"
	"github.com/knowflow/procgraph/pkg/logging"
	"github.com/knowflow/procgraph/pkg/metrics"
	"github.com/knowflow/procgraph/pkg/model"
)

// briefLimit is the character budget of a brief-level step description.
const briefLimit = 100

// Generator produces SOP documents from process graphs. It holds no state
// between calls; versioning of the produced documents is the caller's
// concern.
type Generator struct {
	logger  logging.Logger
	metrics *metrics.Registry
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithLogger sets the structured logger.
func WithLogger(l logging.Logger) GeneratorOption {
	return func(g *Generator) { g.logger = l }
}

// WithMetrics sets the metrics registry.
func WithMetrics(m *metrics.Registry) GeneratorOption {
	return func(g *Generator) { g.metrics = m }
}

// NewGenerator creates a generator.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{logger: logging.NewNopLogger()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds a complete SOP from the graph's current state. The same
// graph state and params always produce the same document apart from
// identifier and timestamp. Excluded exception or system entities do not
// consume step numbers, so the emitted numbering is always contiguous.
func (gen *Generator) Generate(pg *graph.ProcessGraph, params model.GenerationParams) *model.SOPVersion {
	start := time.Now()
	if params.DetailLevel == "" {
		params.DetailLevel = model.DetailStandard
	}

	entities := pg.AllEntities()
	roleMap := buildRoleMap(pg)
	ordered := orderSteps(pg)

	steps := make([]model.SOPStep, 0, len(ordered))
	rolesInvolved := make(map[string]bool)
	systemsReferenced := make(map[string]bool)
	artifactsProduced := make(map[string]bool)

	for _, item := range ordered {
		entity := item.entity

		responsible := roleMap[entity.ID]
		if responsible != "" {
			rolesInvolved[responsible] = true
		}

		isDecision := entity.Kind == model.KindDecision
		isException := entity.IsException()

		if isException && !params.IncludeExceptions {
			continue
		}
		if entity.Kind == model.KindSystem {
			systemsReferenced[entity.Name] = true
			if !params.IncludeSystems {
				continue
			}
		}
		if entity.Kind == model.KindArtifact {
			artifactsProduced[entity.Name] = true
		}

		var notes []string
		switch entity.Confidence {
		case model.ConfidenceUnverified:
			notes = append(notes, "This step was inferred and needs confirmation")
		case model.ConfidenceLow:
			notes = append(notes, "Low confidence - verify with process owner")
		}
		if item.branch != "" {
			notes = append(notes, fmt.Sprintf("This step follows when: %s", item.branch))
		}

		step := model.SOPStep{
			Number:             len(steps) + 1,
			Title:              entity.Name,
			Description:        buildDescription(entity, params.DetailLevel),
			ResponsibleRole:    responsible,
			SourceNodeIDs:      []uuid.UUID{entity.ID},
			IsDecisionPoint:    isDecision,
			IsExceptionHandler: isException,
			Notes:              notes,
		}
		if isDecision {
			step.Branches = decisionBranches(pg, entity.ID)
		}
		steps = append(steps, step)
	}

	coverage := 0.0
	if len(entities) > 0 {
		coverage = float64(len(steps)) / float64(len(entities))
	}
	confidence := 0.5
	if len(entities) > 0 {
		sum := 0.0
		for _, e := range entities {
			sum += e.ConfidenceScore
		}
		confidence = sum / float64(len(entities))
	}

	byCreation := entitiesByCreation(entities)

	doc := model.NewSOPVersion(pg.ProcessID())
	doc.Title = generateTitle(byCreation)
	doc.Purpose = generatePurpose(byCreation)
	doc.Scope = generateScope(byCreation)
	doc.Steps = steps
	doc.RolesInvolved = sortedKeys(rolesInvolved)
	doc.SystemsReferenced = sortedKeys(systemsReferenced)
	doc.ArtifactsProduced = sortedKeys(artifactsProduced)
	doc.CoverageScore = coverage
	doc.ConfidenceScore = confidence
	doc.SourceGraphVersion = pg.Version()
	doc.Params = params

	gen.logger.Info("sop generated",
		logging.ProcessID(pg.ProcessID()),
		logging.Count(len(steps)),
		logging.Float64("coverage", coverage),
		logging.Float64("confidence", confidence))
	if gen.metrics != nil {
		gen.metrics.RecordGeneration(time.Since(start), coverage, confidence)
	}

	return doc
}

// buildRoleMap maps entity id to responsible role name, from owned_by edges
// first and owner/responsible attributes as fallback.
func buildRoleMap(pg *graph.ProcessGraph) map[uuid.UUID]string {
	roleMap := make(map[uuid.UUID]string)

	for _, edge := range pg.AllEdges() {
		if edge.Kind != model.RelOwnedBy {
			continue
		}
		if owner, ok := pg.Entity(edge.TargetID); ok {
			roleMap[edge.SourceID] = owner.Name
		}
	}

	for _, entity := range pg.AllEntities() {
		if _, mapped := roleMap[entity.ID]; mapped {
			continue
		}
		if owner, ok := entity.Owner(); ok {
			roleMap[entity.ID] = owner
		}
	}

	return roleMap
}

// buildDescription renders the step body for the chosen detail level.
func buildDescription(entity *model.Entity, level model.DetailLevel) string {
	base := entity.Description
	if base == "" {
		base = fmt.Sprintf("Perform %s", entity.Name)
	}

	switch level {
	case model.DetailBrief:
		// Truncate by character, not byte, so multibyte text stays valid.
		if runes := []rune(base); len(runes) > briefLimit {
			return string(runes[:briefLimit]) + "..."
		}
		return base
	case model.DetailDetailed:
		var extras []string
		if v, ok := entity.Attribute(model.AttrDurationEstimate); ok {
			extras = append(extras, fmt.Sprintf("Expected duration: %v", v))
		}
		if v, ok := entity.Attribute(model.AttrPrerequisites); ok {
			extras = append(extras, fmt.Sprintf("Prerequisites: %v", v))
		}
		if v, ok := entity.Attribute(model.AttrTools); ok {
			extras = append(extras, fmt.Sprintf("Tools needed: %v", v))
		}
		if len(extras) > 0 {
			return base + "\n\n" + strings.Join(extras, "\n")
		}
		return base
	default:
		return base
	}
}

// decisionBranches collects the labeled outgoing edges of a decision node.
// Branch targets keep a zero step-number placeholder because the linearized
// numbering cannot be resolved while steps are still being emitted.
func decisionBranches(pg *graph.ProcessGraph, decisionID uuid.UUID) map[string]int {
	branches := make(map[string]int)
	for _, edge := range pg.AllEdges() {
		if edge.SourceID == decisionID && edge.Label != "" {
			branches[edge.Label] = 0
		}
	}
	if len(branches) == 0 {
		return nil
	}
	return branches
}

// generateTitle derives the document title from the earliest trigger, then
// the earliest task, then a generic fallback.
func generateTitle(entities []*model.Entity) string {
	for _, e := range entities {
		if e.Kind == model.KindTrigger {
			return fmt.Sprintf("Standard Operating Procedure: %s", e.Name)
		}
	}
	for _, e := range entities {
		if e.Kind == model.KindTask {
			return fmt.Sprintf("Standard Operating Procedure: %s", e.Name)
		}
	}
	return "Standard Operating Procedure"
}

func generatePurpose(entities []*model.Entity) string {
	var artifacts, tasks []string
	for _, e := range entities {
		switch e.Kind {
		case model.KindArtifact:
			artifacts = append(artifacts, e.Name)
		case model.KindTask:
			tasks = append(tasks, e.Name)
		}
	}

	if len(artifacts) > 0 {
		if len(artifacts) > 3 {
			artifacts = artifacts[:3]
		}
		return fmt.Sprintf("This procedure documents the steps required to produce: %s", strings.Join(artifacts, ", "))
	}
	if len(tasks) > 0 {
		return fmt.Sprintf("This procedure documents the workflow for: %s", tasks[0])
	}
	return "This procedure documents the standard workflow for this process."
}

func generateScope(entities []*model.Entity) string {
	var roles []string
	for _, e := range entities {
		if e.Kind == model.KindRole {
			roles = append(roles, e.Name)
		}
	}
	if len(roles) > 0 {
		return fmt.Sprintf("This procedure applies to: %s", strings.Join(roles, ", "))
	}
	return "This procedure applies to all personnel involved in this process."
}

// entitiesByCreation orders entities by creation time, name as tiebreaker,
// so "first trigger" and similar derivations are stable.
func entitiesByCreation(entities []*model.Entity) []*model.Entity {
	out := append([]*model.Entity(nil), entities...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package sop

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/knowflow/procgraph/pkg/graph"
	"github.com/knowflow/procgraph/pkg/model"
)

func addEntity(t *testing.T, g *graph.ProcessGraph, kind model.EntityKind, name string, score float64) *model.Entity {
	t.Helper()
	e := model.NewEntity(g.ProcessID(), kind, name, score)
	if _, ok := g.AddEntity(e); !ok {
		t.Fatalf("failed to add entity %q", name)
	}
	return e
}

func addEdge(t *testing.T, g *graph.ProcessGraph, source, target uuid.UUID, kind model.RelationKind, label string) {
	t.Helper()
	e := model.NewEdge(source, target, kind, 0.9)
	e.Label = label
	if !g.AddEdge(e) {
		t.Fatalf("failed to add %s edge", kind)
	}
}

func standardParams() model.GenerationParams {
	return model.GenerationParams{
		IncludeExceptions: true,
		IncludeSystems:    true,
		DetailLevel:       model.DetailStandard,
	}
}

func TestGenerateEmptyGraph(t *testing.T) {
	g := graph.New(uuid.New())
	doc := NewGenerator().Generate(g, standardParams())

	if len(doc.Steps) != 0 {
		t.Errorf("empty graph should yield no steps, got %d", len(doc.Steps))
	}
	if doc.CoverageScore != 0.0 {
		t.Errorf("empty graph coverage should be 0.0, got %v", doc.CoverageScore)
	}
	if doc.ConfidenceScore != 0.5 {
		t.Errorf("empty graph confidence should default to 0.5, got %v", doc.ConfidenceScore)
	}
	if doc.Title != "Standard Operating Procedure" {
		t.Errorf("expected generic title, got %q", doc.Title)
	}
}

func TestGenerateLinearChain(t *testing.T) {
	g := graph.New(uuid.New())
	trigger := addEntity(t, g, model.KindTrigger, "Order Received", 0.9)
	task1 := addEntity(t, g, model.KindTask, "Pick Items", 0.9)
	task2 := addEntity(t, g, model.KindTask, "Pack Box", 0.9)
	artifact := addEntity(t, g, model.KindArtifact, "Shipping Label", 0.9)

	addEdge(t, g, trigger.ID, task1.ID, model.RelTriggers, "")
	addEdge(t, g, task1.ID, task2.ID, model.RelDependsOn, "")
	addEdge(t, g, task2.ID, artifact.ID, model.RelProduces, "")

	doc := NewGenerator().Generate(g, standardParams())

	if len(doc.Steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(doc.Steps))
	}
	if doc.Steps[0].Title != "Order Received" {
		t.Errorf("step 1 should be the trigger, got %q", doc.Steps[0].Title)
	}
	for i, step := range doc.Steps {
		if step.Number != i+1 {
			t.Errorf("step numbering broken at %d: %d", i, step.Number)
		}
	}
	if doc.CoverageScore != 1.0 {
		t.Errorf("all entities covered, expected 1.0, got %v", doc.CoverageScore)
	}
	if doc.Title != "Standard Operating Procedure: Order Received" {
		t.Errorf("title should derive from the trigger, got %q", doc.Title)
	}
	if len(doc.ArtifactsProduced) != 1 || doc.ArtifactsProduced[0] != "Shipping Label" {
		t.Errorf("unexpected artifacts: %v", doc.ArtifactsProduced)
	}
}

func TestGenerateResponsibleRoles(t *testing.T) {
	g := graph.New(uuid.New())
	task := addEntity(t, g, model.KindTask, "Validate Invoice", 0.9)
	role := addEntity(t, g, model.KindRole, "AP Clerk", 0.9)
	addEdge(t, g, task.ID, role.ID, model.RelOwnedBy, "")

	attrTask := addEntity(t, g, model.KindTask, "Archive", 0.9)
	attrTask.SetAttribute(model.AttrResponsible, "Records Team")

	doc := NewGenerator().Generate(g, standardParams())

	roles := make(map[string]bool)
	for _, step := range doc.Steps {
		if step.ResponsibleRole != "" {
			roles[step.ResponsibleRole] = true
		}
	}
	if !roles["AP Clerk"] {
		t.Error("edge-assigned role missing from steps")
	}
	if !roles["Records Team"] {
		t.Error("attribute-assigned role missing from steps")
	}
	if len(doc.RolesInvolved) != 2 {
		t.Errorf("expected both roles involved, got %v", doc.RolesInvolved)
	}
}

func TestGenerateDecisionBranchesAndNotes(t *testing.T) {
	g := graph.New(uuid.New())
	decision := addEntity(t, g, model.KindDecision, "Amount Check", 0.7)
	approve := addEntity(t, g, model.KindTask, "Approve", 0.9)
	escalate := addEntity(t, g, model.KindTask, "Escalate", 0.2)

	addEdge(t, g, decision.ID, approve.ID, model.RelDecides, "amount <= 10000")
	addEdge(t, g, decision.ID, escalate.ID, model.RelDecides, "amount > 10000")

	doc := NewGenerator().Generate(g, standardParams())

	var decisionStep, escalateStep *model.SOPStep
	for i := range doc.Steps {
		switch doc.Steps[i].Title {
		case "Amount Check":
			decisionStep = &doc.Steps[i]
		case "Escalate":
			escalateStep = &doc.Steps[i]
		}
	}
	if decisionStep == nil || escalateStep == nil {
		t.Fatalf("missing expected steps in %v", doc.Steps)
	}

	if !decisionStep.IsDecisionPoint {
		t.Error("decision entity should mark a decision point")
	}
	if len(decisionStep.Branches) != 2 {
		t.Errorf("expected both labeled branches, got %v", decisionStep.Branches)
	}
	if n, ok := decisionStep.Branches["amount > 10000"]; !ok || n != 0 {
		t.Errorf("branch targets stay unresolved placeholders, got %v", decisionStep.Branches)
	}

	// Escalate: unverified confidence plus a branch annotation.
	foundBranchNote, foundConfidenceNote := false, false
	for _, note := range escalateStep.Notes {
		if strings.Contains(note, "This step follows when: amount > 10000") {
			foundBranchNote = true
		}
		if strings.Contains(note, "inferred and needs confirmation") {
			foundConfidenceNote = true
		}
	}
	if !foundBranchNote {
		t.Errorf("expected branch note on escalate step, got %v", escalateStep.Notes)
	}
	if !foundConfidenceNote {
		t.Errorf("expected unverified-confidence note, got %v", escalateStep.Notes)
	}
}

func TestGenerateExcludesExceptionsWithoutGaps(t *testing.T) {
	g := graph.New(uuid.New())
	trigger := addEntity(t, g, model.KindTrigger, "Start", 0.9)
	task := addEntity(t, g, model.KindTask, "Main Work", 0.9)
	handler := addEntity(t, g, model.KindTask, "Handle Failure", 0.9)
	handler.SetAttribute(model.AttrIsException, true)
	final := addEntity(t, g, model.KindTask, "Wrap Up", 0.9)

	addEdge(t, g, trigger.ID, task.ID, model.RelTriggers, "")
	addEdge(t, g, task.ID, handler.ID, model.RelEscalatesTo, "")
	addEdge(t, g, task.ID, final.ID, model.RelDependsOn, "")

	params := standardParams()
	params.IncludeExceptions = false
	doc := NewGenerator().Generate(g, params)

	for _, step := range doc.Steps {
		if step.Title == "Handle Failure" {
			t.Error("exception handler should be excluded")
		}
	}
	for i, step := range doc.Steps {
		if step.Number != i+1 {
			t.Errorf("exclusion must not leave numbering gaps: step %d numbered %d", i, step.Number)
		}
	}
	if doc.CoverageScore >= 1.0 {
		t.Errorf("excluded entity should lower coverage, got %v", doc.CoverageScore)
	}
}

func TestGenerateSystemHandling(t *testing.T) {
	g := graph.New(uuid.New())
	task := addEntity(t, g, model.KindTask, "Enter Data", 0.9)
	system := addEntity(t, g, model.KindSystem, "ERP", 0.9)
	addEdge(t, g, task.ID, system.ID, model.RelConsumes, "")

	params := standardParams()
	params.IncludeSystems = false
	doc := NewGenerator().Generate(g, params)

	for _, step := range doc.Steps {
		if step.Title == "ERP" {
			t.Error("system step should be excluded")
		}
	}
	// Excluded systems are still referenced in the document metadata.
	if len(doc.SystemsReferenced) != 1 || doc.SystemsReferenced[0] != "ERP" {
		t.Errorf("expected ERP in systems referenced, got %v", doc.SystemsReferenced)
	}
}

func TestDetailLevels(t *testing.T) {
	long := strings.Repeat("x", 150)
	e := model.NewEntity(uuid.New(), model.KindTask, "Verbose", 0.9)
	e.Description = long
	e.SetAttribute(model.AttrDurationEstimate, "2 days")
	e.SetAttribute(model.AttrTools, "spreadsheet")

	brief := buildDescription(e, model.DetailBrief)
	if len(brief) != briefLimit+3 || !strings.HasSuffix(brief, "...") {
		t.Errorf("brief should truncate to %d chars plus ellipsis, got %d", briefLimit, len(brief))
	}

	standard := buildDescription(e, model.DetailStandard)
	if standard != long {
		t.Error("standard should return the full description unchanged")
	}

	detailed := buildDescription(e, model.DetailDetailed)
	if !strings.Contains(detailed, "Expected duration: 2 days") {
		t.Errorf("detailed should append duration, got %q", detailed)
	}
	if !strings.Contains(detailed, "Tools needed: spreadsheet") {
		t.Errorf("detailed should append tools, got %q", detailed)
	}

	bare := model.NewEntity(uuid.New(), model.KindTask, "Bare", 0.9)
	if got := buildDescription(bare, model.DetailStandard); got != "Perform Bare" {
		t.Errorf("missing description should fall back to the name, got %q", got)
	}
}

func TestBriefTruncationKeepsValidUTF8(t *testing.T) {
	// 120 three-byte runes: the 100-character cut lands mid-rune if the
	// description is sliced by byte.
	e := model.NewEntity(uuid.New(), model.KindTask, "Multibyte", 0.9)
	e.Description = strings.Repeat("€", 120)

	brief := buildDescription(e, model.DetailBrief)
	if !utf8.ValidString(brief) {
		t.Fatalf("brief description is invalid UTF-8: %q", brief)
	}
	if got := utf8.RuneCountInString(brief); got != briefLimit+3 {
		t.Errorf("expected %d runes plus ellipsis, got %d", briefLimit, got)
	}
	if !strings.HasSuffix(brief, "€...") {
		t.Errorf("truncation should end on a whole character, got %q", brief[len(brief)-10:])
	}
}

func TestGenerateDocumentSections(t *testing.T) {
	g := graph.New(uuid.New())
	addEntity(t, g, model.KindTask, "Assemble", 0.9)
	addEntity(t, g, model.KindArtifact, "Report", 0.9)
	addEntity(t, g, model.KindRole, "Analyst", 0.9)

	doc := NewGenerator().Generate(g, standardParams())

	if !strings.Contains(doc.Purpose, "Report") {
		t.Errorf("purpose should name the artifact, got %q", doc.Purpose)
	}
	if !strings.Contains(doc.Scope, "Analyst") {
		t.Errorf("scope should name the role, got %q", doc.Scope)
	}
	if doc.Params.DetailLevel != model.DetailStandard {
		t.Errorf("params should echo the request, got %+v", doc.Params)
	}
}

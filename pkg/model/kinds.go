package model

// EntityKind classifies a node in the process graph.
type EntityKind string

const (
	KindTask     EntityKind = "task"     // An action or step in the process
	KindRole     EntityKind = "role"     // A person or team responsible for tasks
	KindTrigger  EntityKind = "trigger"  // An event that initiates a task
	KindDecision EntityKind = "decision" // A branching point with conditions
	KindArtifact EntityKind = "artifact" // A document, form, or output
	KindSystem   EntityKind = "system"   // An external system or tool
	KindRule     EntityKind = "rule"     // A business rule or constraint
)

// entityKinds is the closed set of accepted entity kinds.
var entityKinds = map[EntityKind]bool{
	KindTask:     true,
	KindRole:     true,
	KindTrigger:  true,
	KindDecision: true,
	KindArtifact: true,
	KindSystem:   true,
	KindRule:     true,
}

// Valid reports whether k is one of the seven accepted entity kinds.
func (k EntityKind) Valid() bool {
	return entityKinds[k]
}

// ParseEntityKind converts a string to an EntityKind.
// Returns false for anything outside the accepted set.
func ParseEntityKind(s string) (EntityKind, bool) {
	k := EntityKind(s)
	return k, k.Valid()
}

// RelationKind classifies a directed edge between two entities.
type RelationKind string

const (
	RelDependsOn   RelationKind = "depends_on"   // Task A requires Task B completion
	RelTriggers    RelationKind = "triggers"     // Event A initiates Task B
	RelOwnedBy     RelationKind = "owned_by"     // Task is owned by Role
	RelProduces    RelationKind = "produces"     // Task produces Artifact
	RelConsumes    RelationKind = "consumes"     // Task requires Artifact as input
	RelDecides     RelationKind = "decides"      // Decision leads to different paths
	RelEscalatesTo RelationKind = "escalates_to" // Exception handling path
	RelValidates   RelationKind = "validates"    // Role validates Artifact/Task
)

var relationKinds = map[RelationKind]bool{
	RelDependsOn:   true,
	RelTriggers:    true,
	RelOwnedBy:     true,
	RelProduces:    true,
	RelConsumes:    true,
	RelDecides:     true,
	RelEscalatesTo: true,
	RelValidates:   true,
}

// Valid reports whether k is one of the eight accepted relation kinds.
func (k RelationKind) Valid() bool {
	return relationKinds[k]
}

// ParseRelationKind converts a string to a RelationKind.
// Returns false for anything outside the accepted set.
func ParseRelationKind(s string) (RelationKind, bool) {
	k := RelationKind(s)
	return k, k.Valid()
}

// ConfidenceLevel is the qualitative confidence bucket derived from a score.
type ConfidenceLevel string

const (
	ConfidenceHigh       ConfidenceLevel = "high"       // Explicitly stated by the user
	ConfidenceMedium     ConfidenceLevel = "medium"     // Inferred with strong context
	ConfidenceLow        ConfidenceLevel = "low"        // Inferred with weak context
	ConfidenceUnverified ConfidenceLevel = "unverified" // Generated, needs confirmation
)

// LevelForScore maps a numeric confidence score in [0,1] to its bucket:
// high >=0.8, medium >=0.6, low >=0.3, else unverified.
func LevelForScore(score float64) ConfidenceLevel {
	switch {
	case score >= 0.8:
		return ConfidenceHigh
	case score >= 0.6:
		return ConfidenceMedium
	case score >= 0.3:
		return ConfidenceLow
	default:
		return ConfidenceUnverified
	}
}

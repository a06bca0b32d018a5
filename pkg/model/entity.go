package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Recognized attribute keys. Attributes are an open bag on the wire, but the
// setter only accepts keys a consumer actually reads.
const (
	AttrOwner            = "owner"
	AttrResponsible      = "responsible"
	AttrConditions       = "conditions"
	AttrDurationEstimate = "duration_estimate"
	AttrPrerequisites    = "prerequisites"
	AttrTools            = "tools"
	AttrIsException      = "is_exception"
	AttrFrequency        = "frequency"
	AttrDepartment       = "department"
	AttrEventType        = "event_type"
	AttrSource           = "source"
)

var recognizedAttrs = map[string]bool{
	AttrOwner:            true,
	AttrResponsible:      true,
	AttrConditions:       true,
	AttrDurationEstimate: true,
	AttrPrerequisites:    true,
	AttrTools:            true,
	AttrIsException:      true,
	AttrFrequency:        true,
	AttrDepartment:       true,
	AttrEventType:        true,
	AttrSource:           true,
}

// Entity is the atomic unit of the process knowledge graph: a task, role,
// trigger, decision, artifact, system, or rule extracted from statements.
type Entity struct {
	ID        uuid.UUID  `json:"id"`
	ProcessID uuid.UUID  `json:"process_id"`
	Kind      EntityKind `json:"kind"`

	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	Confidence      ConfidenceLevel `json:"confidence"`
	ConfidenceScore float64         `json:"confidence_score"`

	// Attributes holds kind-specific metadata, e.g. decision conditions or a
	// task duration estimate. Use SetAttribute for validated writes.
	Attributes map[string]any `json:"attributes,omitempty"`

	// SourceResponseIDs records which responses/statements produced this entity.
	SourceResponseIDs []uuid.UUID `json:"source_response_ids,omitempty"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// NewEntity creates an entity with a fresh identifier and a confidence level
// derived from the score.
func NewEntity(processID uuid.UUID, kind EntityKind, name string, score float64) *Entity {
	now := time.Now().UnixMilli()
	return &Entity{
		ID:              uuid.New(),
		ProcessID:       processID,
		Kind:            kind,
		Name:            name,
		Confidence:      LevelForScore(score),
		ConfidenceScore: score,
		Attributes:      make(map[string]any),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// SetAttribute stores a kind-specific attribute. Keys outside the recognized
// set are rejected so consumers never have to guess at spelling variants.
func (e *Entity) SetAttribute(key string, value any) error {
	if !recognizedAttrs[key] {
		return fmt.Errorf("unrecognized attribute key %q", key)
	}
	if e.Attributes == nil {
		e.Attributes = make(map[string]any)
	}
	e.Attributes[key] = value
	e.UpdatedAt = time.Now().UnixMilli()
	return nil
}

// Attribute returns the raw attribute value for key.
func (e *Entity) Attribute(key string) (any, bool) {
	v, ok := e.Attributes[key]
	return v, ok
}

// StringAttribute returns an attribute coerced to string, or "" if absent or
// not a string.
func (e *Entity) StringAttribute(key string) string {
	if v, ok := e.Attributes[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Owner returns the owning role recorded in the attribute bag, checking the
// "owner" key first and falling back to "responsible".
func (e *Entity) Owner() (string, bool) {
	if s := e.StringAttribute(AttrOwner); s != "" {
		return s, true
	}
	if s := e.StringAttribute(AttrResponsible); s != "" {
		return s, true
	}
	return "", false
}

// Conditions returns the decision conditions attribute as a string slice.
// Accepts both []string and []any payloads since the bag crosses a JSON
// boundary at the extraction interface.
func (e *Entity) Conditions() []string {
	v, ok := e.Attributes[AttrConditions]
	if !ok {
		return nil
	}
	switch vals := v.(type) {
	case []string:
		return vals
	case []any:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// IsException reports whether the entity is flagged as an exception handler.
func (e *Entity) IsException() bool {
	if v, ok := e.Attributes[AttrIsException]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Clone creates a deep copy of the entity.
func (e *Entity) Clone() *Entity {
	clone := *e
	if e.Attributes != nil {
		clone.Attributes = make(map[string]any, len(e.Attributes))
		for k, v := range e.Attributes {
			clone.Attributes[k] = v
		}
	}
	if e.SourceResponseIDs != nil {
		clone.SourceResponseIDs = make([]uuid.UUID, len(e.SourceResponseIDs))
		copy(clone.SourceResponseIDs, e.SourceResponseIDs)
	}
	return &clone
}

// Package extract is the structural boundary between the process graph and
// the external extraction oracle. The oracle already returns typed entities
// and relations with confidence scores; this package only enforces
// well-formedness: kind strings must be in-enum, names non-empty, scores in
// range. Anything malformed is dropped without mutating the graph and without
// raising in the hot path.
package extract

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/knowflow/procgraph/pkg/model"
)

// validate is a singleton validator instance
var validate = validator.New()

// EntityPayload is one extracted entity as delivered by the oracle.
type EntityPayload struct {
	Kind        string  `json:"kind" validate:"required"`
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Confidence  float64 `json:"confidence" validate:"gte=0,lte=1"`

	Attributes map[string]any `json:"attributes"`

	// SourceResponseID links the payload back to the statement it came from.
	SourceResponseID uuid.UUID `json:"source_response_id"`
}

// RelationPayload is one extracted relation, endpoint-addressed by entity
// name because the oracle does not know graph identifiers.
type RelationPayload struct {
	SourceName string  `json:"source_name" validate:"required,min=1"`
	TargetName string  `json:"target_name" validate:"required,min=1"`
	Kind       string  `json:"kind" validate:"required"`
	Label      string  `json:"label"`
	Conditions []string `json:"conditions"`
	Confidence float64 `json:"confidence" validate:"gte=0,lte=1"`

	SourceResponseID uuid.UUID `json:"source_response_id"`
}

// BuildEntity converts a payload into a validated entity. Returns false when
// the payload fails validation or the kind is outside the accepted set; the
// payload is dropped in that case.
func BuildEntity(processID uuid.UUID, p EntityPayload) (*model.Entity, bool) {
	if err := validate.Struct(p); err != nil {
		return nil, false
	}

	kind, ok := model.ParseEntityKind(strings.ToLower(strings.TrimSpace(p.Kind)))
	if !ok {
		return nil, false
	}

	entity := model.NewEntity(processID, kind, strings.TrimSpace(p.Name), p.Confidence)
	entity.Description = p.Description

	// Only recognized attribute keys survive the boundary.
	for key, value := range p.Attributes {
		_ = entity.SetAttribute(key, value)
	}

	if p.SourceResponseID != uuid.Nil {
		entity.SourceResponseIDs = append(entity.SourceResponseIDs, p.SourceResponseID)
	}

	return entity, true
}

// BuildEdge converts a payload into a validated edge between two resolved
// entity identifiers. Returns false when the payload fails validation or the
// relation kind is outside the accepted set.
func BuildEdge(source, target uuid.UUID, p RelationPayload) (*model.Edge, bool) {
	if err := validate.Struct(p); err != nil {
		return nil, false
	}

	kind, ok := model.ParseRelationKind(strings.ToLower(strings.TrimSpace(p.Kind)))
	if !ok {
		return nil, false
	}

	edge := model.NewEdge(source, target, kind, p.Confidence)
	edge.Label = p.Label
	edge.Conditions = p.Conditions
	if p.SourceResponseID != uuid.Nil {
		edge.SourceResponseIDs = append(edge.SourceResponseIDs, p.SourceResponseID)
	}

	return edge, true
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// RelationshipType tags entity-level lineage links.
type RelationshipType string

const (
	FeedsInto    RelationshipType = "feeds-into"
	TransformsTo RelationshipType = "transforms-to"
	References   RelationshipType = "references"
)

func (t RelationshipType) Valid() bool {
	switch t {
	case FeedsInto, TransformsTo, References:
		return true
	}
	return false
}

// FieldMapping documents which source field populates which target field.
type FieldMapping struct {
	SourceFieldID  uuid.UUID `json:"source_field_id"`
	TargetFieldID  uuid.UUID `json:"target_field_id"`
	Transformation *string   `json:"transformation,omitempty"`
}

// Relationship is the entity-level lineage model, used alongside field-level
// foreign-key references.
type Relationship struct {
	ID             uuid.UUID        `json:"id"`
	ProjectID      uuid.UUID        `json:"project_id"`
	Type           RelationshipType `json:"type"`
	SourceEntityID uuid.UUID        `json:"source_entity_id"`
	TargetEntityID uuid.UUID        `json:"target_entity_id"`
	Label          *string          `json:"label,omitempty"`
	FieldMappings  []FieldMapping   `json:"field_mappings,omitempty"`
	Waypoints      []Point          `json:"waypoints,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

func (r *Relationship) Prepare() {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
}

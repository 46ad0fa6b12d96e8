package models

import (
	"time"

	"github.com/google/uuid"
)

// Cardinality describes the one/many shape of a foreign-key link.
type Cardinality string

const (
	OneToOne  Cardinality = "one-to-one"
	OneToMany Cardinality = "one-to-many"
	ManyToOne Cardinality = "many-to-one"
)

func (c Cardinality) Valid() bool {
	switch c {
	case OneToOne, OneToMany, ManyToOne:
		return true
	}
	return false
}

// Shorthand returns the label drawn next to a relationship line.
func (c Cardinality) Shorthand() string {
	switch c {
	case OneToOne:
		return "1:1"
	case OneToMany:
		return "1:M"
	case ManyToOne:
		return "M:1"
	}
	return ""
}

// ForeignKeyReference links a field to a field on another entity. Waypoints,
// when present, are user-placed canvas-space points the relationship line is
// routed through, in order.
type ForeignKeyReference struct {
	TargetEntityID uuid.UUID   `json:"target_entity_id"`
	TargetFieldID  uuid.UUID   `json:"target_field_id"`
	Cardinality    Cardinality `json:"cardinality"`
	Label          *string     `json:"label,omitempty"`
	Waypoints      []Point     `json:"waypoints,omitempty"`
}

type Field struct {
	ID                    uuid.UUID            `json:"id"`
	Name                  string               `json:"name"`
	Type                  string               `json:"type"` // 'string', 'number', 'boolean', 'date', ...
	IsPrimaryKey          bool                 `json:"is_primary_key"`
	IsForeignKey          bool                 `json:"is_foreign_key"`
	ContainsSensitiveData bool                 `json:"contains_sensitive_data"`
	VisibleInDiagram      *bool                `json:"visible_in_diagram,omitempty"` // nil means visible
	ForeignKeyReference   *ForeignKeyReference `json:"foreign_key_reference,omitempty"`
}

// Visible reports whether the field is drawn on the diagram.
func (f Field) Visible() bool {
	return f.VisibleInDiagram == nil || *f.VisibleInDiagram
}

// EntityMetadata is free-form documentation attached by consultants.
type EntityMetadata struct {
	SourceSystem    *string `json:"source_system,omitempty"`
	BusinessPurpose *string `json:"business_purpose,omitempty"`
	Classification  *string `json:"classification,omitempty"`
}

// Entity is a modeled table/object. Position is canvas-space, nil until the
// entity is first placed on the diagram.
type Entity struct {
	ID        uuid.UUID       `json:"id"`
	ProjectID uuid.UUID       `json:"project_id"`
	Name      string          `json:"name"`
	Fields    []Field         `json:"fields"`
	Position  *Point          `json:"position,omitempty"`
	Metadata  *EntityMetadata `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (e *Entity) Prepare() {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	for i := range e.Fields {
		if e.Fields[i].ID == uuid.Nil {
			e.Fields[i].ID = uuid.New()
		}
	}
	if e.Fields == nil {
		e.Fields = []Field{}
	}
}

// VisibleFields returns the fields drawn on the diagram, primary keys first,
// then foreign keys, then the rest, preserving declaration order within each
// group.
func (e *Entity) VisibleFields() []Field {
	var pks, fks, rest []Field
	for _, f := range e.Fields {
		if !f.Visible() {
			continue
		}
		switch {
		case f.IsPrimaryKey:
			pks = append(pks, f)
		case f.IsForeignKey:
			fks = append(fks, f)
		default:
			rest = append(rest, f)
		}
	}
	out := make([]Field, 0, len(pks)+len(fks)+len(rest))
	out = append(out, pks...)
	out = append(out, fks...)
	return append(out, rest...)
}

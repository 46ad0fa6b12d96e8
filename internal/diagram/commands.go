package diagram

import (
	"github.com/google/uuid"

	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/models"
)

// EdgeRef identifies a drawable relationship line. Field-level foreign keys
// are addressed by owning entity + field, entity-level relationships by
// relationship id. Exactly one addressing mode is set.
type EdgeRef struct {
	RelationshipID *uuid.UUID `json:"relationship_id,omitempty"`
	EntityID       *uuid.UUID `json:"entity_id,omitempty"`
	FieldID        *uuid.UUID `json:"field_id,omitempty"`
}

func (r EdgeRef) Equal(other EdgeRef) bool {
	return uuidPtrEqual(r.RelationshipID, other.RelationshipID) &&
		uuidPtrEqual(r.EntityID, other.EntityID) &&
		uuidPtrEqual(r.FieldID, other.FieldID)
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Edge is the router's input: a resolved line between two entities,
// regardless of which model it came from.
type Edge struct {
	Ref            EdgeRef
	SourceEntityID uuid.UUID
	SourceFieldID  uuid.UUID // Nil for entity-level relationships
	TargetEntityID uuid.UUID
	TargetFieldID  uuid.UUID // Nil for entity-level relationships
	Cardinality    models.Cardinality // empty for entity-level relationships
	Type           models.RelationshipType
	Label          *string
	Waypoints      []Point
}

// EdgesOf flattens field-level foreign keys and entity-level relationships
// into a single ordered edge list.
func EdgesOf(entities []models.Entity, relationships []models.Relationship) []Edge {
	var edges []Edge
	for _, e := range entities {
		for _, f := range e.Fields {
			if !f.IsForeignKey || f.ForeignKeyReference == nil {
				continue
			}
			ref := f.ForeignKeyReference
			entityID, fieldID := e.ID, f.ID
			edges = append(edges, Edge{
				Ref:            EdgeRef{EntityID: &entityID, FieldID: &fieldID},
				SourceEntityID: e.ID,
				SourceFieldID:  f.ID,
				TargetEntityID: ref.TargetEntityID,
				TargetFieldID:  ref.TargetFieldID,
				Cardinality:    ref.Cardinality,
				Label:          ref.Label,
				Waypoints:      ref.Waypoints,
			})
		}
	}
	for _, r := range relationships {
		relID := r.ID
		edges = append(edges, Edge{
			Ref:            EdgeRef{RelationshipID: &relID},
			SourceEntityID: r.SourceEntityID,
			TargetEntityID: r.TargetEntityID,
			Type:           r.Type,
			Label:          r.Label,
			Waypoints:      r.Waypoints,
		})
	}
	return edges
}

// CommandKind enumerates the outbound mutations the canvas emits. The canvas
// never writes to the shared entity/relationship lists; the owning
// application layer consumes these and persists.
type CommandKind string

const (
	CmdSelectEntity         CommandKind = "select-entity"
	CmdUpdateEntityPosition CommandKind = "update-entity-position"
	CmdUpdateWaypoints      CommandKind = "update-waypoints"
	CmdEntityDoubleClick    CommandKind = "entity-double-click"
)

// Command is one outbound mutation/event.
type Command struct {
	Kind      CommandKind `json:"kind"`
	EntityID  *uuid.UUID  `json:"entity_id,omitempty"` // nil on deselect
	Edge      *EdgeRef    `json:"edge,omitempty"`
	Position  *Point      `json:"position,omitempty"`
	Waypoints []Point     `json:"waypoints,omitempty"`
}

// Hit describes what the pointer landed on, resolved by the view layer.
type Hit struct {
	Entity        *uuid.UUID
	Edge          *EdgeRef
	WaypointIndex int // index into the edge's waypoint list, -1 when not on a marker
}

// HitCanvas is the empty-canvas hit.
var HitCanvas = Hit{WaypointIndex: -1}

// DrawKind tags entries of the render output.
type DrawKind string

const (
	DrawEdge   DrawKind = "edge"
	DrawNode   DrawKind = "node"
	DrawLegend DrawKind = "legend"
)

// DrawCommand is one instruction of the rendered scene, painted in order.
type DrawCommand struct {
	Kind   DrawKind       `json:"kind"`
	Node   *NodeCommand   `json:"node,omitempty"`
	Edge   *EdgeCommand   `json:"edge,omitempty"`
	Legend *LegendCommand `json:"legend,omitempty"`
}

// NodeRow is one rendered field line of an entity card.
type NodeRow struct {
	FieldID   uuid.UUID `json:"field_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Primary   bool      `json:"primary,omitempty"`
	Foreign   bool      `json:"foreign,omitempty"`
	Sensitive bool      `json:"sensitive,omitempty"`
}

// NodeCommand draws one entity card. Position and size are canvas-space;
// the painter applies the viewport transform.
type NodeCommand struct {
	EntityID    uuid.UUID `json:"entity_id"`
	Title       string    `json:"title"`
	Position    Point     `json:"position"`
	Width       float64   `json:"width"`
	Height      float64   `json:"height"`
	Rows        []NodeRow `json:"rows"`
	Overflow    int       `json:"overflow,omitempty"` // hidden field count
	Selected    bool      `json:"selected,omitempty"`
	Highlighted bool      `json:"highlighted,omitempty"`
	Dimmed      bool      `json:"dimmed,omitempty"`
}

// MarkerKind is a cardinality glyph at a path end.
type MarkerKind string

const (
	MarkerTick     MarkerKind = "tick"
	MarkerCrowFoot MarkerKind = "crow-foot"
)

// Marker is a cardinality glyph, expressed as bare line segments.
type Marker struct {
	Kind     MarkerKind `json:"kind"`
	Segments [][2]Point `json:"segments"`
}

// EdgeCommand draws one relationship line.
type EdgeCommand struct {
	Ref       EdgeRef  `json:"ref"`
	Path      string   `json:"path"` // SVG-style path data
	Points    []Point  `json:"points"`
	Waypoints []Point  `json:"waypoints,omitempty"`
	Markers   []Marker `json:"markers,omitempty"`
	Label     string   `json:"label,omitempty"`
	LabelAt   Point    `json:"label_at"`
	Dimmed    bool     `json:"dimmed,omitempty"`
}

// LegendCommand draws the cardinality/relationship-type legend overlay.
type LegendCommand struct {
	Cardinalities     []string `json:"cardinalities"`
	RelationshipTypes []string `json:"relationship_types"`
}

package diagram

import (
	"github.com/google/uuid"

	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/models"
)

// DefaultPosition places entities that were never dragged onto the canvas.
// Applied by the renderer only; never persisted.
func DefaultPosition(index int) Point {
	return Point{
		X: 100 + float64(index%4)*(EntityWidth+50),
		Y: 100 + float64(index/4)*(EntityHeight+50),
	}
}

// NodeSize returns the rendered card size for an entity. Width is fixed;
// height grows with the visible field rows up to the overflow cap.
func NodeSize(e *models.Entity) (w, h float64) {
	visible := len(e.VisibleFields())
	rows := visible
	if visible > MaxFieldRows {
		rows = MaxFieldRows + 1 // overflow row
	}
	return EntityWidth, HeaderHeight + float64(rows)*FieldRowHeight
}

// FieldAnchorY returns the canvas-space Y offset (relative to the entity
// top) where a relationship line attaches for the given field. Fields folded
// into the overflow row anchor at that row; unknown fields report false.
func FieldAnchorY(e *models.Entity, fieldID uuid.UUID) (float64, bool) {
	visible := e.VisibleFields()
	for i, f := range visible {
		if f.ID != fieldID {
			continue
		}
		row := i
		if row > MaxFieldRows {
			row = MaxFieldRows
		}
		return HeaderHeight + (float64(row)+0.5)*FieldRowHeight, true
	}
	return 0, false
}

// LayoutNode builds the draw command for one entity card: primary keys
// first, then foreign keys, then the rest, capped with an overflow count.
func LayoutNode(e *models.Entity, pos Point, selected, highlighted, dimmed bool) NodeCommand {
	visible := e.VisibleFields()

	rows := make([]NodeRow, 0, len(visible))
	overflow := 0
	for i, f := range visible {
		if i >= MaxFieldRows {
			overflow = len(visible) - MaxFieldRows
			break
		}
		rows = append(rows, NodeRow{
			FieldID:   f.ID,
			Name:      f.Name,
			Type:      f.Type,
			Primary:   f.IsPrimaryKey,
			Foreign:   f.IsForeignKey,
			Sensitive: f.ContainsSensitiveData,
		})
	}

	w, h := NodeSize(e)
	return NodeCommand{
		EntityID:    e.ID,
		Title:       e.Name,
		Position:    pos,
		Width:       w,
		Height:      h,
		Rows:        rows,
		Overflow:    overflow,
		Selected:    selected,
		Highlighted: highlighted,
		Dimmed:      dimmed,
	}
}

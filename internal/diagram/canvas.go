package diagram

import (
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/models"
)

// Viewport is the current zoom/pan. Pan is in screen pixels, zoom is
// clamped to [MinZoom, MaxZoom]. Never persisted.
type Viewport struct {
	Zoom float64 `json:"zoom"`
	Pan  Point   `json:"pan"`
}

// DefaultViewport is the state before any interaction.
func DefaultViewport() Viewport {
	return Viewport{Zoom: 1.0}
}

// DragState captures an in-progress drag so rendering stays a pure function
// of the snapshot while the pointer is down.
type DragState struct {
	EntityID  *uuid.UUID // entity drag: unsnapped current position
	Position  Point
	Edge      *EdgeRef // waypoint drag: working copy of the list
	Waypoints []Point
}

// Snapshot is everything Render needs. The canvas never mutates the entity
// or relationship slices it is handed.
type Snapshot struct {
	Entities       []models.Entity
	Relationships  []models.Relationship
	SelectedEntity *uuid.UUID
	Search         string
	Viewport       Viewport
	Drag           *DragState
}

// matchesSearch reports a case-insensitive substring match on entity names.
func matchesSearch(name, query string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(query))
}

// placementsOf resolves every entity's effective position: persisted
// position, renderer default for never-placed entities, or the in-progress
// drag position.
func placementsOf(s Snapshot) map[uuid.UUID]placement {
	out := make(map[uuid.UUID]placement, len(s.Entities))
	for i := range s.Entities {
		e := &s.Entities[i]
		pos := DefaultPosition(i)
		if e.Position != nil {
			pos = *e.Position
		}
		if s.Drag != nil && s.Drag.EntityID != nil && *s.Drag.EntityID == e.ID {
			pos = s.Drag.Position
		}
		out[e.ID] = placement{entity: e, pos: pos}
	}
	return out
}

// Render turns a snapshot into an ordered draw-command list: relationship
// lines first, entity cards on top, legend overlay last. Edges whose source
// or target entity is missing are omitted.
func Render(s Snapshot) []DrawCommand {
	placements := placementsOf(s)
	searching := s.Search != ""

	var cmds []DrawCommand

	for _, edge := range EdgesOf(s.Entities, s.Relationships) {
		if s.Drag != nil && s.Drag.Edge != nil && s.Drag.Edge.Equal(edge.Ref) {
			edge.Waypoints = s.Drag.Waypoints
		}
		dimmed := false
		if searching {
			src, sok := placements[edge.SourceEntityID]
			tgt, tok := placements[edge.TargetEntityID]
			dimmed = !(sok && matchesSearch(src.entity.Name, s.Search)) &&
				!(tok && matchesSearch(tgt.entity.Name, s.Search))
		}
		if ec, ok := routeEdge(edge, placements, dimmed); ok {
			cmds = append(cmds, DrawCommand{Kind: DrawEdge, Edge: ec})
		}
	}

	for i := range s.Entities {
		e := &s.Entities[i]
		p := placements[e.ID]
		selected := s.SelectedEntity != nil && *s.SelectedEntity == e.ID
		matched := searching && matchesSearch(e.Name, s.Search)
		dimmed := searching && !matched
		node := LayoutNode(e, p.pos, selected, matched, dimmed)
		cmds = append(cmds, DrawCommand{Kind: DrawNode, Node: &node})
	}

	cmds = append(cmds, DrawCommand{Kind: DrawLegend, Legend: &LegendCommand{
		Cardinalities: []string{
			models.OneToOne.Shorthand(),
			models.OneToMany.Shorthand(),
			models.ManyToOne.Shorthand(),
		},
		RelationshipTypes: []string{
			string(models.FeedsInto),
			string(models.TransformsTo),
			string(models.References),
		},
	}})

	return cmds
}

// interaction modes of the controller state machine.
type mode int

const (
	modeIdle mode = iota
	modePanning
	modeDraggingEntity
	modeDraggingWaypoint
)

// Controller owns viewport and drag state and translates pointer/keyboard
// events into viewport changes and outbound commands. Single-threaded by
// contract: all methods are called from the UI event loop.
type Controller struct {
	entities      []models.Entity
	relationships []models.Relationship

	viewport Viewport
	viewSize Point // viewport width/height in screen pixels
	search   string
	selected *uuid.UUID

	mode mode

	panOrigin Point // pointer offset from the pan origin while panning

	dragEntity uuid.UUID
	dragOffset Point // pointer offset within the entity box, canvas space
	dragPos    Point // current unsnapped entity position

	dragEdge      EdgeRef
	dragWaypoints []Point
	dragIndex     int
}

// NewController builds a controller over the shared entity/relationship
// lists. The controller never mutates them.
func NewController(entities []models.Entity, relationships []models.Relationship, viewWidth, viewHeight float64) *Controller {
	return &Controller{
		entities:      entities,
		relationships: relationships,
		viewport:      DefaultViewport(),
		viewSize:      Point{X: viewWidth, Y: viewHeight},
	}
}

// SetData swaps in fresh entity/relationship lists after the owner applied
// a mutation.
func (c *Controller) SetData(entities []models.Entity, relationships []models.Relationship) {
	c.entities = entities
	c.relationships = relationships
}

func (c *Controller) Viewport() Viewport { return c.viewport }

// Snapshot assembles the render input from the controller's current state.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Entities:       c.entities,
		Relationships:  c.relationships,
		SelectedEntity: c.selected,
		Search:         c.search,
		Viewport:       c.viewport,
	}
	switch c.mode {
	case modeDraggingEntity:
		id := c.dragEntity
		s.Drag = &DragState{EntityID: &id, Position: c.dragPos}
	case modeDraggingWaypoint:
		edge := c.dragEdge
		s.Drag = &DragState{Edge: &edge, Waypoints: c.dragWaypoints}
	}
	return s
}

// Render draws the current state.
func (c *Controller) Render() []DrawCommand {
	return Render(c.Snapshot())
}

func (c *Controller) entityByID(id uuid.UUID) (*models.Entity, int) {
	for i := range c.entities {
		if c.entities[i].ID == id {
			return &c.entities[i], i
		}
	}
	return nil, -1
}

func (c *Controller) edgeByRef(ref EdgeRef) *Edge {
	for _, e := range EdgesOf(c.entities, c.relationships) {
		if e.Ref.Equal(ref) {
			return &e
		}
	}
	return nil
}

func (c *Controller) effectivePosition(id uuid.UUID) Point {
	e, i := c.entityByID(id)
	if e == nil {
		return Point{}
	}
	if e.Position != nil {
		return *e.Position
	}
	return DefaultPosition(i)
}

// waypointsCommand packages an updated waypoint list for the owner.
func waypointsCommand(ref EdgeRef, waypoints []Point) Command {
	return Command{Kind: CmdUpdateWaypoints, Edge: &ref, EntityID: ref.EntityID, Waypoints: waypoints}
}

// MouseDown starts a pan, an entity drag, a waypoint drag, or inserts a
// waypoint, depending on what the pointer hit.
func (c *Controller) MouseDown(screen Point, hit Hit) []Command {
	if c.mode != modeIdle {
		return nil
	}

	switch {
	case hit.Entity != nil:
		id := *hit.Entity
		c.mode = modeDraggingEntity
		c.dragEntity = id
		c.dragPos = c.effectivePosition(id)
		c.dragOffset = ScreenToCanvas(screen, c.viewport.Pan, c.viewport.Zoom).Sub(c.dragPos)
		c.selected = &id
		sel := id
		return []Command{{Kind: CmdSelectEntity, EntityID: &sel}}

	case hit.Edge != nil && hit.WaypointIndex >= 0:
		edge := c.edgeByRef(*hit.Edge)
		if edge == nil || hit.WaypointIndex >= len(edge.Waypoints) {
			return nil
		}
		c.mode = modeDraggingWaypoint
		c.dragEdge = *hit.Edge
		c.dragWaypoints = append([]Point(nil), edge.Waypoints...)
		c.dragIndex = hit.WaypointIndex
		return nil

	case hit.Edge != nil:
		// Pressing on the line itself neither pans nor drags. Waypoint
		// insertion happens on Click, once the view layer has ruled out a
		// double-click.
		return nil

	default:
		// Empty canvas: start panning, drop the selection.
		c.mode = modePanning
		c.panOrigin = screen.Sub(c.viewport.Pan)
		var cmds []Command
		if c.selected != nil {
			c.selected = nil
			cmds = append(cmds, Command{Kind: CmdSelectEntity})
		}
		return cmds
	}
}

// MouseMove advances whatever interaction is in progress. Pan and drag
// state stay local until the gesture ends.
func (c *Controller) MouseMove(screen Point) []Command {
	switch c.mode {
	case modePanning:
		c.viewport.Pan = screen.Sub(c.panOrigin)
	case modeDraggingEntity:
		c.dragPos = ScreenToCanvas(screen, c.viewport.Pan, c.viewport.Zoom).Sub(c.dragOffset)
	case modeDraggingWaypoint:
		c.dragWaypoints[c.dragIndex] = SnapToGrid(
			ScreenToCanvas(screen, c.viewport.Pan, c.viewport.Zoom), GridSize)
	}
	return nil
}

// MouseUp ends the interaction. Entity drags snap to the grid and emit the
// position update; waypoint drags emit the updated list.
func (c *Controller) MouseUp(screen Point) []Command {
	defer func() { c.mode = modeIdle }()

	switch c.mode {
	case modeDraggingEntity:
		c.MouseMove(screen)
		id := c.dragEntity
		pos := SnapToGrid(c.dragPos, GridSize)
		return []Command{{Kind: CmdUpdateEntityPosition, EntityID: &id, Position: &pos}}
	case modeDraggingWaypoint:
		c.MouseMove(screen)
		return []Command{waypointsCommand(c.dragEdge, c.dragWaypoints)}
	}
	return nil
}

// MouseLeave abandons the gesture the same way MouseUp ends it.
func (c *Controller) MouseLeave(screen Point) []Command {
	return c.MouseUp(screen)
}

// Click inserts a grid-snapped waypoint where a relationship line was
// clicked, at the clicked segment's position in the waypoint order. The view
// layer forwards resolved single clicks only: the mouse-down pair of a
// double-click must not arrive here.
func (c *Controller) Click(screen Point, hit Hit) []Command {
	if hit.Entity != nil || hit.Edge == nil || hit.WaypointIndex >= 0 {
		return nil
	}
	edge := c.edgeByRef(*hit.Edge)
	if edge == nil {
		return nil
	}

	routed, ok := routeEdge(*edge, placementsOf(c.Snapshot()), false)
	if !ok {
		return nil
	}

	at := ScreenToCanvas(screen, c.viewport.Pan, c.viewport.Zoom)
	idx := waypointInsertIndex(routed.Points, len(edge.Waypoints), at)

	updated := make([]Point, 0, len(edge.Waypoints)+1)
	updated = append(updated, edge.Waypoints[:idx]...)
	updated = append(updated, SnapToGrid(at, GridSize))
	updated = append(updated, edge.Waypoints[idx:]...)
	return []Command{waypointsCommand(*hit.Edge, updated)}
}

// DoubleClick opens an entity or removes a waypoint marker.
func (c *Controller) DoubleClick(screen Point, hit Hit) []Command {
	switch {
	case hit.Entity != nil:
		id := *hit.Entity
		return []Command{{Kind: CmdEntityDoubleClick, EntityID: &id}}
	case hit.Edge != nil && hit.WaypointIndex >= 0:
		edge := c.edgeByRef(*hit.Edge)
		if edge == nil || hit.WaypointIndex >= len(edge.Waypoints) {
			return nil
		}
		updated := append([]Point(nil), edge.Waypoints[:hit.WaypointIndex]...)
		updated = append(updated, edge.Waypoints[hit.WaypointIndex+1:]...)
		return []Command{waypointsCommand(*hit.Edge, updated)}
	}
	return nil
}

// zoomAt rezooms keeping the given screen-space focal point visually fixed.
func (c *Controller) zoomAt(newZoom float64, focal Point) {
	newZoom = ClampZoom(newZoom)
	old := c.viewport.Zoom
	if newZoom == old {
		return
	}
	ratio := newZoom / old
	c.viewport.Pan = Point{
		X: focal.X - (focal.X-c.viewport.Pan.X)*ratio,
		Y: focal.Y - (focal.Y-c.viewport.Pan.Y)*ratio,
	}
	c.viewport.Zoom = newZoom
}

func (c *Controller) center() Point {
	return Point{X: c.viewSize.X / 2, Y: c.viewSize.Y / 2}
}

// ZoomIn steps zoom up around the viewport center.
func (c *Controller) ZoomIn() { c.zoomAt(c.viewport.Zoom+ZoomStep, c.center()) }

// ZoomOut steps zoom down around the viewport center.
func (c *Controller) ZoomOut() { c.zoomAt(c.viewport.Zoom-ZoomStep, c.center()) }

// Wheel zooms around the mouse position when the ctrl/cmd modifier is held.
// Unmodified wheel events are left to the surrounding page.
func (c *Controller) Wheel(deltaY float64, ctrlOrCmd bool, mouse Point) {
	if !ctrlOrCmd || deltaY == 0 {
		return
	}
	if deltaY < 0 {
		c.zoomAt(c.viewport.Zoom+ZoomStep, mouse)
	} else {
		c.zoomAt(c.viewport.Zoom-ZoomStep, mouse)
	}
}

// KeyZoom handles ctrl/cmd +/-/0 shortcuts around the viewport center.
func (c *Controller) KeyZoom(key string, ctrlOrCmd bool) {
	if !ctrlOrCmd {
		return
	}
	switch key {
	case "+", "=":
		c.ZoomIn()
	case "-":
		c.ZoomOut()
	case "0":
		c.zoomAt(1.0, c.center())
	}
}

// FitToScreen frames every placed entity inside the viewport, at most at
// 1:1 zoom, with a fixed padding.
func (c *Controller) FitToScreen() {
	if len(c.entities) == 0 {
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := range c.entities {
		pos := c.effectivePosition(c.entities[i].ID)
		minX = math.Min(minX, pos.X)
		minY = math.Min(minY, pos.Y)
		maxX = math.Max(maxX, pos.X+EntityWidth)
		maxY = math.Max(maxY, pos.Y+EntityHeight)
	}

	width := maxX - minX
	height := maxY - minY
	zoom := math.Min(
		(c.viewSize.X-2*FitPadding)/width,
		(c.viewSize.Y-2*FitPadding)/height,
	)
	zoom = math.Min(zoom, 1.0)
	zoom = math.Max(zoom, MinZoom)

	center := Point{X: (minX + maxX) / 2, Y: (minY + maxY) / 2}
	c.viewport.Zoom = zoom
	c.viewport.Pan = Point{
		X: c.viewSize.X/2 - center.X*zoom,
		Y: c.viewSize.Y/2 - center.Y*zoom,
	}
}

// SetSearch updates the highlight query.
func (c *Controller) SetSearch(query string) { c.search = query }

// SelectSearchResult centers the viewport on the entity, raising zoom to
// 1:1 when zoomed out past 0.8.
func (c *Controller) SelectSearchResult(id uuid.UUID) []Command {
	e, _ := c.entityByID(id)
	if e == nil {
		return nil
	}
	if c.viewport.Zoom < 0.8 {
		c.viewport.Zoom = 1.0
	}
	pos := c.effectivePosition(id)
	w, h := NodeSize(e)
	center := Point{X: pos.X + w/2, Y: pos.Y + h/2}
	c.viewport.Pan = Point{
		X: c.viewSize.X/2 - center.X*c.viewport.Zoom,
		Y: c.viewSize.Y/2 - center.Y*c.viewport.Zoom,
	}
	c.selected = &id
	sel := id
	return []Command{{Kind: CmdSelectEntity, EntityID: &sel}}
}

package diagram

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/models"
)

func pointPtr(p Point) *Point { return &p }

// linkedEntities builds A at (100,100) and B at (400,100) with a foreign key
// from A's only field to B's only field.
func linkedEntities(card models.Cardinality) (a, b models.Entity) {
	bField := namedField("id")
	bField.IsPrimaryKey = true
	b = testEntity("Account", bField)
	b.Position = pointPtr(Point{X: 400, Y: 100})

	aField := namedField("account_id")
	aField.IsForeignKey = true
	aField.ForeignKeyReference = &models.ForeignKeyReference{
		TargetEntityID: b.ID,
		TargetFieldID:  bField.ID,
		Cardinality:    card,
	}
	a = testEntity("Contact", aField)
	a.Position = pointPtr(Point{X: 100, Y: 100})
	return a, b
}

func renderedEdges(s Snapshot) []*EdgeCommand {
	var out []*EdgeCommand
	for _, cmd := range Render(s) {
		if cmd.Kind == DrawEdge {
			out = append(out, cmd.Edge)
		}
	}
	return out
}

func TestManhattanElbowScenario(t *testing.T) {
	a, b := linkedEntities(models.ManyToOne)
	edges := renderedEdges(Snapshot{
		Entities: []models.Entity{a, b},
		Viewport: DefaultViewport(),
	})
	if len(edges) != 1 {
		t.Fatalf("got %d edges, wanted 1", len(edges))
	}
	edge := edges[0]

	// 3-segment Manhattan line: 4 points, elbow at the horizontal midpoint.
	if len(edge.Points) != 4 {
		t.Fatalf("got %d path points, wanted 4: %v", len(edge.Points), edge.Points)
	}
	start, end := edge.Points[0], edge.Points[3]

	wantStart := Point{X: 100 + EntityWidth, Y: 100 + HeaderHeight + 0.5*FieldRowHeight}
	if start != wantStart {
		t.Errorf("got source anchor %v, wanted %v", start, wantStart)
	}
	wantEnd := Point{X: 400, Y: 100 + HeaderHeight + 0.5*FieldRowHeight}
	if end != wantEnd {
		t.Errorf("got target anchor %v, wanted %v", end, wantEnd)
	}

	wantMidX := (start.X + end.X) / 2
	if edge.Points[1].X != wantMidX || edge.Points[2].X != wantMidX {
		t.Errorf("elbow x = %v/%v, wanted %v", edge.Points[1].X, edge.Points[2].X, wantMidX)
	}

	// crow's foot at the source end, single tick at the target end
	if len(edge.Markers) != 2 {
		t.Fatalf("got %d markers, wanted 2", len(edge.Markers))
	}
	if edge.Markers[0].Kind != MarkerCrowFoot {
		t.Errorf("got source marker %q, wanted crow-foot", edge.Markers[0].Kind)
	}
	if edge.Markers[1].Kind != MarkerTick {
		t.Errorf("got target marker %q, wanted tick", edge.Markers[1].Kind)
	}

	if edge.Label != "M:1" {
		t.Errorf("got label %q, wanted M:1", edge.Label)
	}
	wantLabelAt := Point{X: wantMidX, Y: start.Y}
	if edge.LabelAt != wantLabelAt {
		t.Errorf("got label position %v, wanted %v", edge.LabelAt, wantLabelAt)
	}
}

func TestRoutePointsAlternatingParity(t *testing.T) {
	source := Point{X: 0, Y: 0}
	target := Point{X: 300, Y: 200}
	waypoints := []Point{{X: 100, Y: 80}, {X: 200, Y: 40}}

	got := RoutePoints(source, target, waypoints)
	want := []Point{
		{X: 0, Y: 0},
		{X: 100, Y: 0},   // into wp0: horizontal first
		{X: 100, Y: 80},  // wp0
		{X: 100, Y: 40},  // into wp1: vertical first
		{X: 200, Y: 40},  // wp1
		{X: 300, Y: 40},  // closing at even index: horizontal first
		{X: 300, Y: 200}, // target
	}
	if len(got) != len(want) {
		t.Fatalf("got %d points, wanted %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d: got %v, wanted %v", i, got[i], want[i])
		}
	}

	// every segment is axis-aligned
	for i := 1; i < len(got); i++ {
		if got[i].X != got[i-1].X && got[i].Y != got[i-1].Y {
			t.Errorf("segment %d is diagonal: %v -> %v", i, got[i-1], got[i])
		}
	}
}

func TestPathDDeterministic(t *testing.T) {
	pts := []Point{{X: 350, Y: 152}, {X: 375, Y: 152}, {X: 375, Y: 152}, {X: 400, Y: 152}}
	want := "M 350 152 L 375 152 L 375 152 L 400 152"
	if got := PathD(pts); got != want {
		t.Errorf("got %q, wanted %q", got, want)
	}
	if PathD(pts) != PathD(pts) {
		t.Error("path data not deterministic")
	}
}

func TestWaypointInsertThenDeleteRestoresPath(t *testing.T) {
	a, b := linkedEntities(models.OneToMany)
	entities := []models.Entity{a, b}
	ctrl := NewController(entities, nil, 800, 600)

	original := renderedEdges(ctrl.Snapshot())[0]
	ref := original.Ref

	// click on the line inserts a snapped waypoint
	cmds := ctrl.Click(Point{X: 377, Y: 185}, Hit{Edge: &ref, WaypointIndex: -1})
	if len(cmds) != 1 || cmds[0].Kind != CmdUpdateWaypoints {
		t.Fatalf("expected one waypoint update, got %+v", cmds)
	}
	if len(cmds[0].Waypoints) != 1 {
		t.Fatalf("got %d waypoints, wanted 1", len(cmds[0].Waypoints))
	}
	wp := cmds[0].Waypoints[0]
	if wp != SnapToGrid(ScreenToCanvas(Point{X: 377, Y: 185}, Point{}, 1.0), GridSize) {
		t.Errorf("inserted waypoint %v not snapped to grid", wp)
	}

	// owner applies the mutation
	entities[0].Fields[0].ForeignKeyReference.Waypoints = cmds[0].Waypoints
	ctrl.SetData(entities, nil)

	routed := renderedEdges(ctrl.Snapshot())[0]
	if routed.Path == original.Path {
		t.Error("expected the waypoint to change the path")
	}

	// double-click on the marker removes it
	cmds = ctrl.DoubleClick(Point{X: 377, Y: 185}, Hit{Edge: &ref, WaypointIndex: 0})
	if len(cmds) != 1 || cmds[0].Kind != CmdUpdateWaypoints {
		t.Fatalf("expected one waypoint update, got %+v", cmds)
	}
	if len(cmds[0].Waypoints) != 0 {
		t.Fatalf("got %d waypoints, wanted 0", len(cmds[0].Waypoints))
	}

	entities[0].Fields[0].ForeignKeyReference.Waypoints = nil
	ctrl.SetData(entities, nil)

	restored := renderedEdges(ctrl.Snapshot())[0]
	if restored.Path != original.Path {
		t.Errorf("got path %q after insert+delete, wanted original %q", restored.Path, original.Path)
	}
}

func TestLinePressInsertsNothing(t *testing.T) {
	a, b := linkedEntities(models.OneToMany)
	ctrl := NewController([]models.Entity{a, b}, nil, 800, 600)
	ref := renderedEdges(ctrl.Snapshot())[0].Ref

	// the mouse-down pair of a double-click reaches MouseDown, never Click,
	// so pressing the bare line must not mutate the waypoint list
	if cmds := ctrl.MouseDown(Point{X: 377, Y: 152}, Hit{Edge: &ref, WaypointIndex: -1}); len(cmds) != 0 {
		t.Errorf("mouse down on the line emitted commands: %+v", cmds)
	}
	if cmds := ctrl.DoubleClick(Point{X: 377, Y: 152}, Hit{Edge: &ref, WaypointIndex: -1}); len(cmds) != 0 {
		t.Errorf("double-click on the line emitted commands: %+v", cmds)
	}
}

func TestClickInsertsWaypointInPathOrder(t *testing.T) {
	a, b := linkedEntities(models.OneToMany)
	b.Position = pointPtr(Point{X: 400, Y: 300})
	a.Fields[0].ForeignKeyReference.Waypoints = []Point{{X: 600, Y: 240}}
	ctrl := NewController([]models.Entity{a, b}, nil, 800, 600)
	ref := renderedEdges(ctrl.Snapshot())[0].Ref

	// anchors are (350,152) and (400,352); the routed path runs right to
	// x=600, down through the waypoint, then left to the target

	// a click on the first leg lands before the existing waypoint
	cmds := ctrl.Click(Point{X: 450, Y: 152}, Hit{Edge: &ref, WaypointIndex: -1})
	if len(cmds) != 1 || len(cmds[0].Waypoints) != 2 {
		t.Fatalf("expected a two-waypoint update, got %+v", cmds)
	}
	if got, want := cmds[0].Waypoints[0], SnapToGrid(Point{X: 450, Y: 152}, GridSize); got != want {
		t.Errorf("got first waypoint %v, wanted inserted %v", got, want)
	}
	if got := cmds[0].Waypoints[1]; got != (Point{X: 600, Y: 240}) {
		t.Errorf("existing waypoint moved to %v", got)
	}

	// a click on the closing leg lands after it
	cmds = ctrl.Click(Point{X: 500, Y: 352}, Hit{Edge: &ref, WaypointIndex: -1})
	if len(cmds) != 1 || len(cmds[0].Waypoints) != 2 {
		t.Fatalf("expected a two-waypoint update, got %+v", cmds)
	}
	if got := cmds[0].Waypoints[0]; got != (Point{X: 600, Y: 240}) {
		t.Errorf("existing waypoint moved to %v", got)
	}
	if got, want := cmds[0].Waypoints[1], SnapToGrid(Point{X: 500, Y: 352}, GridSize); got != want {
		t.Errorf("got second waypoint %v, wanted inserted %v", got, want)
	}
}

func TestMissingTargetSkippedSilently(t *testing.T) {
	a, _ := linkedEntities(models.OneToOne)
	edges := renderedEdges(Snapshot{
		Entities: []models.Entity{a}, // target entity deleted
		Viewport: DefaultViewport(),
	})
	if len(edges) != 0 {
		t.Errorf("got %d edges for a dangling reference, wanted 0", len(edges))
	}
}

func TestRelationshipEdgeLabel(t *testing.T) {
	a, b := linkedEntities(models.OneToOne)
	a.Fields[0].ForeignKeyReference = nil
	a.Fields[0].IsForeignKey = false

	label := "daily batch"
	rel := models.Relationship{
		ID:             uuid.New(),
		Type:           models.FeedsInto,
		SourceEntityID: a.ID,
		TargetEntityID: b.ID,
		Label:          &label,
	}

	edges := renderedEdges(Snapshot{
		Entities:      []models.Entity{a, b},
		Relationships: []models.Relationship{rel},
		Viewport:      DefaultViewport(),
	})
	if len(edges) != 1 {
		t.Fatalf("got %d edges, wanted 1", len(edges))
	}
	if !strings.Contains(edges[0].Label, "feeds-into") || !strings.Contains(edges[0].Label, label) {
		t.Errorf("got label %q, wanted type and custom label", edges[0].Label)
	}
	if len(edges[0].Markers) != 0 {
		t.Errorf("entity-level relationship should have no cardinality markers, got %d", len(edges[0].Markers))
	}
}

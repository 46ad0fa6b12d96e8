package diagram

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/models"
)

const (
	tickOffset   = 10.0
	tickHalfSpan = 6.0
	crowFootBack = 14.0
	crowFootSpan = 7.0
)

// RoutePoints computes the axis-aligned polyline between two anchors.
//
// Without waypoints the path is a single mid-vertical elbow: horizontal to
// the midpoint X, vertical, horizontal. With waypoints every segment
// alternates by waypoint index parity: even waypoints are entered
// horizontal-then-vertical, odd ones vertical-then-horizontal, and the
// closing segment to the target follows the rule at index len(waypoints).
func RoutePoints(source, target Point, waypoints []Point) []Point {
	if len(waypoints) == 0 {
		midX := (source.X + target.X) / 2
		return []Point{
			source,
			{X: midX, Y: source.Y},
			{X: midX, Y: target.Y},
			target,
		}
	}

	pts := make([]Point, 0, 2*len(waypoints)+3)
	pts = append(pts, source)
	prev := source
	for i, wp := range waypoints {
		if i%2 == 0 {
			pts = append(pts, Point{X: wp.X, Y: prev.Y})
		} else {
			pts = append(pts, Point{X: prev.X, Y: wp.Y})
		}
		pts = append(pts, wp)
		prev = wp
	}
	if len(waypoints)%2 == 0 {
		pts = append(pts, Point{X: target.X, Y: prev.Y})
	} else {
		pts = append(pts, Point{X: prev.X, Y: target.Y})
	}
	return append(pts, target)
}

// PathD serializes a polyline as SVG path data. Output is deterministic for
// a given point list.
func PathD(pts []Point) string {
	if len(pts) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("M ")
	b.WriteString(fmtCoord(pts[0]))
	for _, p := range pts[1:] {
		b.WriteString(" L ")
		b.WriteString(fmtCoord(p))
	}
	return b.String()
}

func fmtCoord(p Point) string {
	return strconv.FormatFloat(p.X, 'f', -1, 64) + " " + strconv.FormatFloat(p.Y, 'f', -1, 64)
}

// distanceToSegment is the shortest distance from p to the segment a-b.
func distanceToSegment(p, a, b Point) float64 {
	d := b.Sub(a)
	l2 := d.X*d.X + d.Y*d.Y
	if l2 == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*d.X + (p.Y-a.Y)*d.Y) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X-(a.X+t*d.X), p.Y-(a.Y+t*d.Y))
}

// waypointInsertIndex maps a clicked point to the waypoint slot of the
// nearest path segment. Segments 2i and 2i+1 lead into waypoint i, so a hit
// there inserts before it; anything past the last waypoint appends.
func waypointInsertIndex(pts []Point, waypointCount int, p Point) int {
	best, bestDist := 0, math.Inf(1)
	for i := 0; i+1 < len(pts); i++ {
		if d := distanceToSegment(p, pts[i], pts[i+1]); d < bestDist {
			best, bestDist = i, d
		}
	}
	if idx := best / 2; idx < waypointCount {
		return idx
	}
	return waypointCount
}

// endDirection returns the axis-aligned unit vector pointing from the given
// path end into the path.
func endDirection(pts []Point, atSource bool) Point {
	var from, to Point
	if atSource {
		from, to = pts[0], pts[1]
	} else {
		from, to = pts[len(pts)-1], pts[len(pts)-2]
	}
	d := to.Sub(from)
	switch {
	case d.X > 0:
		return Point{X: 1}
	case d.X < 0:
		return Point{X: -1}
	case d.Y > 0:
		return Point{Y: 1}
	case d.Y < 0:
		return Point{Y: -1}
	}
	return Point{X: 1}
}

func perpendicular(d Point) Point {
	return Point{X: -d.Y, Y: d.X}
}

func tickMarker(end, dir Point) Marker {
	n := perpendicular(dir)
	c := Point{X: end.X + dir.X*tickOffset, Y: end.Y + dir.Y*tickOffset}
	return Marker{
		Kind: MarkerTick,
		Segments: [][2]Point{{
			{X: c.X + n.X*tickHalfSpan, Y: c.Y + n.Y*tickHalfSpan},
			{X: c.X - n.X*tickHalfSpan, Y: c.Y - n.Y*tickHalfSpan},
		}},
	}
}

func crowFootMarker(end, dir Point) Marker {
	n := perpendicular(dir)
	base := Point{X: end.X + dir.X*crowFootBack, Y: end.Y + dir.Y*crowFootBack}
	return Marker{
		Kind: MarkerCrowFoot,
		Segments: [][2]Point{
			{base, end},
			{base, {X: end.X + n.X*crowFootSpan, Y: end.Y + n.Y*crowFootSpan}},
			{base, {X: end.X - n.X*crowFootSpan, Y: end.Y - n.Y*crowFootSpan}},
		},
	}
}

// cardinalityMarkers places the "one" tick and "many" crow's foot at the
// path ends according to the cardinality tag.
func cardinalityMarkers(c models.Cardinality, pts []Point) []Marker {
	srcDir := endDirection(pts, true)
	tgtDir := endDirection(pts, false)
	src, tgt := pts[0], pts[len(pts)-1]

	switch c {
	case models.OneToOne:
		return []Marker{tickMarker(src, srcDir), tickMarker(tgt, tgtDir)}
	case models.OneToMany:
		return []Marker{tickMarker(src, srcDir), crowFootMarker(tgt, tgtDir)}
	case models.ManyToOne:
		return []Marker{crowFootMarker(src, srcDir), tickMarker(tgt, tgtDir)}
	}
	return nil
}

// placement is an entity with its effective canvas position for this render.
type placement struct {
	entity *models.Entity
	pos    Point
}

func anchorY(p placement, fieldID uuid.UUID) float64 {
	if fieldID != uuid.Nil {
		if y, ok := FieldAnchorY(p.entity, fieldID); ok {
			return y
		}
	}
	return HeaderHeight / 2
}

// routeEdge resolves anchors and produces the draw command for one edge.
// Edges whose source or target entity is missing are skipped silently.
func routeEdge(edge Edge, placements map[uuid.UUID]placement, dimmed bool) (*EdgeCommand, bool) {
	src, ok := placements[edge.SourceEntityID]
	if !ok {
		return nil, false
	}
	tgt, ok := placements[edge.TargetEntityID]
	if !ok {
		return nil, false
	}

	srcWidth, _ := NodeSize(src.entity)
	source := Point{X: src.pos.X + srcWidth, Y: src.pos.Y + anchorY(src, edge.SourceFieldID)}
	target := Point{X: tgt.pos.X, Y: tgt.pos.Y + anchorY(tgt, edge.TargetFieldID)}

	pts := RoutePoints(source, target, edge.Waypoints)

	var labelAt Point
	if n := len(edge.Waypoints); n > 0 {
		labelAt = edge.Waypoints[n/2]
	} else {
		labelAt = Point{X: (source.X + target.X) / 2, Y: (source.Y + target.Y) / 2}
	}

	var parts []string
	if s := edge.Cardinality.Shorthand(); s != "" {
		parts = append(parts, s)
	} else if edge.Type != "" {
		parts = append(parts, string(edge.Type))
	}
	if edge.Label != nil && *edge.Label != "" {
		parts = append(parts, *edge.Label)
	}

	return &EdgeCommand{
		Ref:       edge.Ref,
		Path:      PathD(pts),
		Points:    pts,
		Waypoints: edge.Waypoints,
		Markers:   cardinalityMarkers(edge.Cardinality, pts),
		Label:     strings.Join(parts, " "),
		LabelAt:   labelAt,
		Dimmed:    dimmed,
	}, true
}

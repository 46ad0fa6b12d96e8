package diagram

import (
	"math"

	"github.com/blake-brooks-88/DataCloudDiscovery-sub001/internal/models"
)

// Canvas layout constants shared by the node layout, the relationship
// router and fit-to-screen.
const (
	GridSize = 20.0

	EntityWidth  = 250.0
	EntityHeight = 200.0

	HeaderHeight   = 40.0
	FieldRowHeight = 24.0

	// Field rows drawn per entity before the overflow row takes over.
	MaxFieldRows = 8

	MinZoom  = 0.1
	MaxZoom  = 5.0
	ZoomStep = 0.1

	FitPadding = 40.0
)

// Point aliases the persisted model type; the same struct serves both
// canvas-space and screen-space coordinates depending on context.
type Point = models.Point

// ScreenToCanvas converts a screen-space point into canvas space given the
// current pan offset (screen pixels) and zoom factor.
func ScreenToCanvas(p Point, pan Point, zoom float64) Point {
	return Point{
		X: (p.X - pan.X) / zoom,
		Y: (p.Y - pan.Y) / zoom,
	}
}

// CanvasToScreen is the inverse of ScreenToCanvas.
func CanvasToScreen(p Point, pan Point, zoom float64) Point {
	return Point{
		X: p.X*zoom + pan.X,
		Y: p.Y*zoom + pan.Y,
	}
}

// SnapToGrid rounds each axis to the nearest multiple of grid. A grid of
// zero or less leaves the point untouched.
func SnapToGrid(p Point, grid float64) Point {
	if grid <= 0 {
		return p
	}
	return Point{
		X: math.Round(p.X/grid) * grid,
		Y: math.Round(p.Y/grid) * grid,
	}
}

// ClampZoom bounds a zoom factor to the supported range and keeps it on
// the 0.1 lattice so repeated steps land on exact values.
func ClampZoom(z float64) float64 {
	z = math.Round(z*10) / 10
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}

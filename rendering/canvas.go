// Package rendering turns the grid and the vector features into a layered 2D
// scene. Layer renderers emit a stream of drawing primitives through the
// Canvas interface; the ebiten-backed canvas rasterizes them, the recording
// canvas captures them for tests and tooling.
package rendering

import (
	"github.com/go-gl/mathgl/mgl64"

	"mapengine/common"
)

// Polygon is an outer ring with zero or more hole rings. Rings do not repeat
// their first point.
type Polygon struct {
	Outer []mgl64.Vec2
	Holes [][]mgl64.Vec2
}

// TextStyle carries everything a canvas needs to draw one label.
type TextStyle struct {
	Size         float64
	Color        common.RGB
	Alpha        float64
	OutlineColor common.RGB
	OutlineWidth float64
	Rotation     float64 // radians, around the anchor
}

// Canvas is the drawing surface contract consumed by every layer renderer.
// Implementations must apply SetMask to all primitives drawn until ClearMask:
// no pixel may escape the mask polygon.
type Canvas interface {
	BeginLayer(name string, z int)
	EndLayer()

	Fill(c common.RGB, alpha float64, poly Polygon)
	Stroke(c common.RGB, alpha, width float64, pts []mgl64.Vec2, closed bool)
	Circle(c common.RGB, alpha float64, center mgl64.Vec2, radius float64, filled bool)
	Text(pos mgl64.Vec2, s string, style TextStyle)

	SetMask(poly Polygon)
	ClearMask()
}

// Layer z indices, bottom to top. The order is part of the rendering
// contract: biome fills under patterns under contours under rivers under
// regions, with labels on top.
const (
	ZBiomeFill     = 10
	ZBiomePattern  = 20
	ZHeightContour = 30
	ZRivers        = 40
	ZRegions       = 50
	ZHoverOverlay  = 60
	ZRegionLabels  = 70
	ZRiverLabels   = 80
)

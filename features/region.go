package features

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"mapengine/common"
	"mapengine/geometry"
)

// regionBoundaryEpsilon counts near-boundary points as inside during hit
// testing, keeping clicks on shared borders stable.
const regionBoundaryEpsilon = 0.5

// Region is a vector region: a closed polygon or an open polyline with fill
// and stroke styling. Closed regions need at least 3 points, open ones 2.
type Region struct {
	ID     int          `json:"id"`
	Name   string       `json:"name"`
	Points []mgl64.Vec2 `json:"-"`
	Closed bool         `json:"closed"`

	FillColor   common.RGB `json:"-"`
	FillAlpha   float64    `json:"fillAlpha"`
	StrokeColor common.RGB `json:"-"`
	StrokeAlpha float64    `json:"strokeAlpha"`
	StrokeWidth float64    `json:"strokeWidth"`

	Link string `json:"link,omitempty"`

	// SmoothIterations applies Chaikin smoothing at render time; 0 renders
	// the raw polygon.
	SmoothIterations int `json:"-"`
}

// Validate checks the point-count invariants.
func (rg *Region) Validate() error {
	if rg.Closed && len(rg.Points) < 3 {
		return ErrInvalidPointList
	}
	if !rg.Closed && len(rg.Points) < 2 {
		return ErrInvalidPointList
	}
	for _, p := range rg.Points {
		if math.IsNaN(p.X()) || math.IsNaN(p.Y()) {
			return ErrInvalidPointList
		}
	}
	return nil
}

// Bounds returns the bounding rect of the vertices.
func (rg *Region) Bounds() geometry.Rect {
	return geometry.BoundsOf(rg.Points)
}

// Centroid is the label anchor: the signed-area centroid for closed polygons
// (mean of vertices when the area degenerates), the arc-length midpoint for
// open polylines.
func (rg *Region) Centroid() mgl64.Vec2 {
	if rg.Closed {
		return geometry.Centroid(rg.Points)
	}
	mid, _ := geometry.ArcMidpoint(rg.Points)
	return mid
}

// Contains reports whether the point lies inside a closed region, boundary
// inclusive.
func (rg *Region) Contains(x, y float64) bool {
	if !rg.Closed {
		return false
	}
	return geometry.PointInPolygon(mgl64.Vec2{x, y}, rg.Points, regionBoundaryEpsilon)
}

// EdgeDistance returns the distance from the point to the nearest outline
// edge.
func (rg *Region) EdgeDistance(x, y float64) float64 {
	return geometry.MinEdgeDistance(mgl64.Vec2{x, y}, rg.Points, rg.Closed)
}

// StrokeHitThreshold is the edge-proximity distance within which an outside
// click still selects the region.
func (rg *Region) StrokeHitThreshold() float64 {
	return rg.StrokeWidth/2 + hitSlack
}

// Package features holds the operator-authored vector geometry drawn over the
// grid layers: rivers (polylines with per-vertex width) and regions (closed or
// open polygons with fill and stroke). Features live as ECS entities inside a
// Manager; hit testing and label anchoring are plain geometry on the
// component data.
package features

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"mapengine/geometry"
)

// ErrInvalidPointList marks persisted features whose geometry cannot be used;
// such records are skipped on load and the rest of the document still loads.
var ErrInvalidPointList = errors.New("invalid point list")

// Hit-test slack in world units added on top of the stroke half-width.
const hitSlack = 6.0

// riverBBoxPad pads the coarse bounding-box rejection of river hit tests.
const riverBBoxPad = 10.0

// RiverPoint is one vertex of a river polyline. Width is the full stroke
// width at that vertex and must be finite and positive.
type RiverPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Width float64 `json:"width"`
}

// River is a vector river: an open polyline with linearly interpolated width.
// Zero-length segments are tolerated.
type River struct {
	ID     int          `json:"id"`
	Name   string       `json:"name"`
	Points []RiverPoint `json:"points"`
}

// Validate checks the polyline invariants.
func (r *River) Validate() error {
	if len(r.Points) < 2 {
		return ErrInvalidPointList
	}
	for _, p := range r.Points {
		if !(p.Width > 0) || math.IsInf(p.Width, 0) || math.IsNaN(p.X) || math.IsNaN(p.Y) {
			return ErrInvalidPointList
		}
	}
	return nil
}

// MaxWidth returns the widest vertex width.
func (r *River) MaxWidth() float64 {
	w := 0.0
	for _, p := range r.Points {
		if p.Width > w {
			w = p.Width
		}
	}
	return w
}

// Bounds returns the bounding rect of the vertices (stroke width excluded).
func (r *River) Bounds() geometry.Rect {
	pts := make([]mgl64.Vec2, len(r.Points))
	for i, p := range r.Points {
		pts[i] = mgl64.Vec2{p.X, p.Y}
	}
	return geometry.BoundsOf(pts)
}

// RiverHit describes the nearest point of a river to a query position.
type RiverHit struct {
	Segment int        // index of the segment hit
	T       float64    // projection parameter along that segment
	Point   mgl64.Vec2 // projected point on the centerline
	Angle   float64    // segment tangent angle
	Width   float64    // width interpolated at T
	Dist    float64    // distance from query to centerline
}

// HitTest returns the nearest segment hit within that segment's width-derived
// threshold (max vertex width / 2 plus slack). A coarse bounding-box check
// padded by maxWidth/2 + 10 rejects far queries cheaply.
func (r *River) HitTest(x, y float64) (RiverHit, bool) {
	if len(r.Points) < 2 {
		return RiverHit{}, false
	}
	bbox := r.Bounds().Pad(r.MaxWidth()/2 + riverBBoxPad)
	if !bbox.Contains(x, y) {
		return RiverHit{}, false
	}

	q := mgl64.Vec2{x, y}
	best := RiverHit{Dist: math.Inf(1)}
	found := false
	for i := 0; i < len(r.Points)-1; i++ {
		a := mgl64.Vec2{r.Points[i].X, r.Points[i].Y}
		b := mgl64.Vec2{r.Points[i+1].X, r.Points[i+1].Y}
		t, proj, d2 := geometry.ProjectOnSegment(q, a, b)
		threshold := math.Max(r.Points[i].Width, r.Points[i+1].Width)/2 + hitSlack
		if d2 > threshold*threshold {
			continue
		}
		d := math.Sqrt(d2)
		if d < best.Dist {
			seg := b.Sub(a)
			best = RiverHit{
				Segment: i,
				T:       t,
				Point:   proj,
				Angle:   math.Atan2(seg.Y(), seg.X()),
				Width:   r.Points[i].Width + (r.Points[i+1].Width-r.Points[i].Width)*t,
				Dist:    d,
			}
			found = true
		}
	}
	return best, found
}

// LabelAnchor returns the label position at the polyline's arc-length
// midpoint and the folded tangent angle there. When rotate is false the angle
// is 0 (horizontal label).
func (r *River) LabelAnchor(rotate bool) (mgl64.Vec2, float64) {
	pts := make([]mgl64.Vec2, len(r.Points))
	for i, p := range r.Points {
		pts[i] = mgl64.Vec2{p.X, p.Y}
	}
	pos, angle := geometry.ArcMidpoint(pts)
	if !rotate {
		return pos, 0
	}
	return pos, geometry.FoldLabelAngle(angle)
}

// StampRadiusFactor controls stamp density: stamps are spaced at 0.75 of the
// smaller endpoint radius so the circle union stays gap-free even where the
// width changes sharply. Spacing by the larger radius would leave gaps at
// thin segments.
const StampRadiusFactor = 0.75

// Stamp is one filled circle of the river rendering.
type Stamp struct {
	Center mgl64.Vec2
	Radius float64
}

// Stamps expands the river into the circle sequence that renders it. Each
// segment gets max(1, ceil(len / (min(r0, r1) * 0.75))) stamps with linearly
// interpolated radius, plus the segment's far endpoint.
func (r *River) Stamps() []Stamp {
	var out []Stamp
	for i := 0; i < len(r.Points)-1; i++ {
		a := mgl64.Vec2{r.Points[i].X, r.Points[i].Y}
		b := mgl64.Vec2{r.Points[i+1].X, r.Points[i+1].Y}
		r0 := r.Points[i].Width / 2
		r1 := r.Points[i+1].Width / 2
		seg := b.Sub(a)
		length := seg.Len()

		minR := math.Min(r0, r1)
		n := 1
		if minR > 0 && length > 0 {
			n = int(math.Ceil(length / (minR * StampRadiusFactor)))
			if n < 1 {
				n = 1
			}
		}
		for s := 0; s <= n; s++ {
			t := float64(s) / float64(n)
			out = append(out, Stamp{
				Center: a.Add(seg.Mul(t)),
				Radius: r0 + (r1-r0)*t,
			})
		}
	}
	return out
}

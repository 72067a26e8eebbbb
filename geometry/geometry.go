// Package geometry holds the small set of 2D primitives shared by the contour
// pipeline, the vector feature layers and their hit tests. Points are
// mgl64.Vec2 throughout the engine.
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rect is an axis-aligned bounding rectangle in world units.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// IsDegenerate reports whether the rect has no usable area.
func (r Rect) IsDegenerate() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Pad grows the rect by d on every side.
func (r Rect) Pad(d float64) Rect {
	return Rect{r.MinX - d, r.MinY - d, r.MaxX + d, r.MaxY + d}
}

// Contains reports whether the point lies inside the rect (inclusive).
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// Union returns the smallest rect covering both.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		math.Min(r.MinX, o.MinX), math.Min(r.MinY, o.MinY),
		math.Max(r.MaxX, o.MaxX), math.Max(r.MaxY, o.MaxY),
	}
}

// ContainsRect reports whether o lies entirely within r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.MinX >= r.MinX && o.MaxX <= r.MaxX && o.MinY >= r.MinY && o.MaxY <= r.MaxY
}

// BoundsOf computes the bounding rect of a point list. An empty list yields the
// zero rect.
func BoundsOf(pts []mgl64.Vec2) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{pts[0].X(), pts[0].Y(), pts[0].X(), pts[0].Y()}
	for _, p := range pts[1:] {
		r.MinX = math.Min(r.MinX, p.X())
		r.MinY = math.Min(r.MinY, p.Y())
		r.MaxX = math.Max(r.MaxX, p.X())
		r.MaxY = math.Max(r.MaxY, p.Y())
	}
	return r
}

// SignedArea returns the signed area of a closed polygon (positive for
// counter-clockwise winding in a y-down coordinate system this is negative on
// screen, but only |area| and relative sign matter to callers).
func SignedArea(pts []mgl64.Vec2) float64 {
	if len(pts) < 3 {
		return 0
	}
	sum := 0.0
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += pts[i].X()*pts[j].Y() - pts[j].X()*pts[i].Y()
	}
	return sum / 2
}

// Centroid computes the area centroid of a closed polygon. Degenerate polygons
// (near-zero area) fall back to the arithmetic mean of the vertices.
func Centroid(pts []mgl64.Vec2) mgl64.Vec2 {
	if len(pts) == 0 {
		return mgl64.Vec2{}
	}
	area := SignedArea(pts)
	if math.Abs(area) < 1e-9 {
		return MeanPoint(pts)
	}
	var cx, cy float64
	for i := range pts {
		j := (i + 1) % len(pts)
		cross := pts[i].X()*pts[j].Y() - pts[j].X()*pts[i].Y()
		cx += (pts[i].X() + pts[j].X()) * cross
		cy += (pts[i].Y() + pts[j].Y()) * cross
	}
	return mgl64.Vec2{cx / (6 * area), cy / (6 * area)}
}

// MeanPoint returns the arithmetic mean of the vertices.
func MeanPoint(pts []mgl64.Vec2) mgl64.Vec2 {
	var sx, sy float64
	for _, p := range pts {
		sx += p.X()
		sy += p.Y()
	}
	n := float64(len(pts))
	return mgl64.Vec2{sx / n, sy / n}
}

// PointInPolygon tests containment by ray casting. Points within eps of an edge
// count as inside, which keeps hit tests stable on shared boundaries.
func PointInPolygon(p mgl64.Vec2, poly []mgl64.Vec2, eps float64) bool {
	if len(poly) < 3 {
		return false
	}
	if eps > 0 {
		for i := range poly {
			j := (i + 1) % len(poly)
			if _, _, d2 := ProjectOnSegment(p, poly[i], poly[j]); d2 <= eps*eps {
				return true
			}
		}
	}
	inside := false
	for i := range poly {
		j := (i + 1) % len(poly)
		yi, yj := poly[i].Y(), poly[j].Y()
		if (yi > p.Y()) != (yj > p.Y()) {
			xCross := poly[i].X() + (p.Y()-yi)/(yj-yi)*(poly[j].X()-poly[i].X())
			if p.X() < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// ProjectOnSegment projects p onto segment ab, returning the clamped parameter
// t in [0,1], the projected point and the squared distance from p to it.
// A zero-length segment is treated as its endpoint.
func ProjectOnSegment(p, a, b mgl64.Vec2) (t float64, proj mgl64.Vec2, dist2 float64) {
	ab := b.Sub(a)
	len2 := ab.Dot(ab)
	if len2 < 1e-12 {
		d := p.Sub(a)
		return 0, a, d.Dot(d)
	}
	t = p.Sub(a).Dot(ab) / len2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj = a.Add(ab.Mul(t))
	d := p.Sub(proj)
	return t, proj, d.Dot(d)
}

// MinEdgeDistance returns the smallest distance from p to any edge of the
// polygon outline.
func MinEdgeDistance(p mgl64.Vec2, poly []mgl64.Vec2, closed bool) float64 {
	if len(poly) == 0 {
		return math.Inf(1)
	}
	n := len(poly)
	last := n - 1
	if closed {
		last = n
	}
	best := math.Inf(1)
	for i := 0; i < last; i++ {
		j := (i + 1) % n
		if _, _, d2 := ProjectOnSegment(p, poly[i], poly[j]); d2 < best {
			best = d2
		}
	}
	return math.Sqrt(best)
}

// PolylineLength returns the total arc length, including the closing edge when
// closed is set.
func PolylineLength(pts []mgl64.Vec2, closed bool) float64 {
	if len(pts) < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < len(pts)-1; i++ {
		total += pts[i+1].Sub(pts[i]).Len()
	}
	if closed {
		total += pts[0].Sub(pts[len(pts)-1]).Len()
	}
	return total
}

// ArcMidpoint walks the polyline to half its arc length and returns the point
// there together with the tangent angle of the segment it lands on.
func ArcMidpoint(pts []mgl64.Vec2) (mgl64.Vec2, float64) {
	switch len(pts) {
	case 0:
		return mgl64.Vec2{}, 0
	case 1:
		return pts[0], 0
	}
	half := PolylineLength(pts, false) / 2
	walked := 0.0
	for i := 0; i < len(pts)-1; i++ {
		seg := pts[i+1].Sub(pts[i])
		segLen := seg.Len()
		if walked+segLen >= half && segLen > 0 {
			t := (half - walked) / segLen
			return pts[i].Add(seg.Mul(t)), math.Atan2(seg.Y(), seg.X())
		}
		walked += segLen
	}
	last := pts[len(pts)-1]
	seg := last.Sub(pts[len(pts)-2])
	return last, math.Atan2(seg.Y(), seg.X())
}

// FoldLabelAngle wraps theta into (-pi, pi] and then folds it into
// [-pi/2, pi/2] so text rendered along it never reads upside down.
func FoldLabelAngle(theta float64) float64 {
	for theta > math.Pi {
		theta -= 2 * math.Pi
	}
	for theta <= -math.Pi {
		theta += 2 * math.Pi
	}
	if theta > math.Pi/2 {
		theta -= math.Pi
	} else if theta < -math.Pi/2 {
		theta += math.Pi
	}
	return theta
}

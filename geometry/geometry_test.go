package geometry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func unitSquare() []mgl64.Vec2 {
	return []mgl64.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
}

func TestSignedAreaUnitSquare(t *testing.T) {
	if got := SignedArea(unitSquare()); math.Abs(got-1) > 1e-12 {
		t.Errorf("SignedArea = %v, want 1", got)
	}
	rev := []mgl64.Vec2{{0, 1}, {1, 1}, {1, 0}, {0, 0}}
	if got := SignedArea(rev); math.Abs(got+1) > 1e-12 {
		t.Errorf("SignedArea reversed = %v, want -1", got)
	}
}

func TestCentroidUnitSquare(t *testing.T) {
	c := Centroid(unitSquare())
	if math.Abs(c.X()-0.5) > 1e-12 || math.Abs(c.Y()-0.5) > 1e-12 {
		t.Errorf("Centroid = %v, want (0.5, 0.5)", c)
	}
}

func TestCentroidDegenerateFallsBackToMean(t *testing.T) {
	line := []mgl64.Vec2{{0, 0}, {2, 0}, {4, 0}}
	c := Centroid(line)
	if math.Abs(c.X()-2) > 1e-9 || math.Abs(c.Y()) > 1e-9 {
		t.Errorf("Centroid of collinear points = %v, want (2, 0)", c)
	}
}

func TestPointInPolygon(t *testing.T) {
	sq := unitSquare()
	cases := []struct {
		x, y float64
		want bool
	}{
		{0.5, 0.5, true},
		{1.6, 0.5, false},
		{-0.5, -0.5, false},
		{1.0, 0.5, true}, // on edge, within eps
	}
	for _, c := range cases {
		if got := PointInPolygon(mgl64.Vec2{c.x, c.y}, sq, 0.5); got != c.want {
			t.Errorf("PointInPolygon(%v,%v) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestProjectOnSegment(t *testing.T) {
	a, b := mgl64.Vec2{0, 0}, mgl64.Vec2{10, 0}
	tt, proj, d2 := ProjectOnSegment(mgl64.Vec2{5, 3}, a, b)
	if math.Abs(tt-0.5) > 1e-12 {
		t.Errorf("t = %v, want 0.5", tt)
	}
	if math.Abs(proj.X()-5) > 1e-12 || math.Abs(proj.Y()) > 1e-12 {
		t.Errorf("proj = %v, want (5, 0)", proj)
	}
	if math.Abs(d2-9) > 1e-12 {
		t.Errorf("dist2 = %v, want 9", d2)
	}

	// Past the end clamps to the endpoint.
	tt, proj, _ = ProjectOnSegment(mgl64.Vec2{20, 0}, a, b)
	if tt != 1 || proj.X() != 10 {
		t.Errorf("clamped projection = (t=%v, %v), want (1, (10,0))", tt, proj)
	}

	// Degenerate segment behaves as a point.
	_, proj, d2 = ProjectOnSegment(mgl64.Vec2{3, 4}, a, a)
	if proj != a || math.Abs(d2-25) > 1e-12 {
		t.Errorf("degenerate projection = (%v, %v), want ((0,0), 25)", proj, d2)
	}
}

func TestArcMidpoint(t *testing.T) {
	pts := []mgl64.Vec2{{0, 0}, {10, 0}, {10, 10}}
	mid, angle := ArcMidpoint(pts)
	if math.Abs(mid.X()-10) > 1e-9 || math.Abs(mid.Y()) > 1e-9 {
		t.Errorf("ArcMidpoint = %v, want (10, 0)", mid)
	}
	if math.Abs(angle) > 1e-9 {
		t.Errorf("angle = %v, want 0", angle)
	}
}

func TestFoldLabelAngle(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi / 4, math.Pi / 4},
		{math.Pi, 0},
		{-math.Pi + 0.1, 0.1},
		{3 * math.Pi / 4, -math.Pi / 4},
		{-3 * math.Pi / 4, math.Pi / 4},
		{5 * math.Pi, 0},
	}
	for _, c := range cases {
		got := FoldLabelAngle(c.in)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("FoldLabelAngle(%v) = %v, want %v", c.in, got, c.want)
		}
		if got < -math.Pi/2-1e-9 || got > math.Pi/2+1e-9 {
			t.Errorf("FoldLabelAngle(%v) = %v outside [-pi/2, pi/2]", c.in, got)
		}
	}
}

func TestPolylineLength(t *testing.T) {
	pts := unitSquare()
	if got := PolylineLength(pts, false); math.Abs(got-3) > 1e-12 {
		t.Errorf("open length = %v, want 3", got)
	}
	if got := PolylineLength(pts, true); math.Abs(got-4) > 1e-12 {
		t.Errorf("closed length = %v, want 4", got)
	}
}

func TestMinEdgeDistance(t *testing.T) {
	sq := unitSquare()
	if got := MinEdgeDistance(mgl64.Vec2{0.5, 0.5}, sq, true); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("MinEdgeDistance center = %v, want 0.5", got)
	}
	if got := MinEdgeDistance(mgl64.Vec2{2, 0.5}, sq, true); math.Abs(got-1) > 1e-12 {
		t.Errorf("MinEdgeDistance outside = %v, want 1", got)
	}
}

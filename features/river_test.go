package features

import (
	"math"
	"testing"
)

func straightRiver() River {
	return River{
		ID:   1,
		Name: "Test",
		Points: []RiverPoint{
			{X: 0, Y: 0, Width: 10},
			{X: 100, Y: 0, Width: 10},
		},
	}
}

func TestRiverHitTestOnSegment(t *testing.T) {
	r := straightRiver()
	hit, ok := r.HitTest(50, 3)
	if !ok {
		t.Fatal("query (50,3) should hit")
	}
	if math.Abs(hit.Point.X()-50) > 1e-9 || math.Abs(hit.Point.Y()) > 1e-9 {
		t.Errorf("projection = %v, want (50, 0)", hit.Point)
	}
	if math.Abs(hit.Dist-3) > 1e-9 {
		t.Errorf("dist = %v, want 3", hit.Dist)
	}
	if math.Abs(hit.T-0.5) > 1e-9 {
		t.Errorf("t = %v, want 0.5", hit.T)
	}
	if math.Abs(hit.Width-10) > 1e-9 {
		t.Errorf("width = %v, want 10", hit.Width)
	}
}

func TestRiverHitTestThreshold(t *testing.T) {
	r := straightRiver()
	// Threshold is 10/2 + 6 = 11.
	if _, ok := r.HitTest(50, 8); !ok {
		t.Error("query at distance 8 should hit (threshold 11)")
	}
	if _, ok := r.HitTest(50, 20); ok {
		t.Error("query at distance 20 should miss")
	}
}

func TestRiverHitTestWidthInterpolation(t *testing.T) {
	r := River{
		ID: 1,
		Points: []RiverPoint{
			{X: 0, Y: 0, Width: 4},
			{X: 100, Y: 0, Width: 12},
		},
	}
	hit, ok := r.HitTest(25, 1)
	if !ok {
		t.Fatal("expected hit")
	}
	if math.Abs(hit.Width-6) > 1e-9 {
		t.Errorf("interpolated width = %v, want 6", hit.Width)
	}
}

func TestRiverHitTestDegenerateSegment(t *testing.T) {
	r := River{
		ID: 1,
		Points: []RiverPoint{
			{X: 10, Y: 10, Width: 8},
			{X: 10, Y: 10, Width: 8},
		},
	}
	hit, ok := r.HitTest(12, 10)
	if !ok {
		t.Fatal("degenerate segment should still hit near its point")
	}
	if hit.T != 0 {
		t.Errorf("t = %v, want 0 for degenerate segment", hit.T)
	}
}

func TestRiverStampsNoGaps(t *testing.T) {
	r := River{
		ID: 1,
		Points: []RiverPoint{
			{X: 0, Y: 0, Width: 8},
			{X: 60, Y: 0, Width: 2},
		},
	}
	stamps := r.Stamps()
	if len(stamps) == 0 {
		t.Fatal("no stamps produced")
	}
	// Consecutive stamps must overlap: gap between centers is at most the
	// sum of radii (with a pixel of slack), so the union has no hole.
	for i := 1; i < len(stamps); i++ {
		gap := stamps[i].Center.Sub(stamps[i-1].Center).Len()
		if gap > stamps[i].Radius+stamps[i-1].Radius+1 {
			t.Errorf("gap %v between stamps %d and %d exceeds radii %v + %v",
				gap, i-1, i, stamps[i-1].Radius, stamps[i].Radius)
		}
	}
	// Endpoints are covered.
	first, last := stamps[0], stamps[len(stamps)-1]
	if first.Center.X() != 0 || last.Center.X() != 60 {
		t.Errorf("stamps span %v..%v, want 0..60", first.Center.X(), last.Center.X())
	}
}

func TestRiverLabelAngleRange(t *testing.T) {
	angles := []float64{0, math.Pi / 3, 2 * math.Pi / 3, math.Pi, -2.5}
	for _, a := range angles {
		r := River{
			ID: 1,
			Points: []RiverPoint{
				{X: 0, Y: 0, Width: 5},
				{X: 100 * math.Cos(a), Y: 100 * math.Sin(a), Width: 5},
			},
		}
		_, got := r.LabelAnchor(true)
		if got < -math.Pi/2-1e-9 || got > math.Pi/2+1e-9 {
			t.Errorf("label angle %v for segment angle %v outside [-pi/2, pi/2]", got, a)
		}
	}
}

func TestRiverLabelAnchorMidpoint(t *testing.T) {
	r := straightRiver()
	pos, angle := r.LabelAnchor(true)
	if math.Abs(pos.X()-50) > 1e-9 || math.Abs(pos.Y()) > 1e-9 {
		t.Errorf("anchor = %v, want (50, 0)", pos)
	}
	if angle != 0 {
		t.Errorf("angle = %v, want 0", angle)
	}
	_, fixed := r.LabelAnchor(false)
	if fixed != 0 {
		t.Errorf("non-rotated angle = %v, want 0", fixed)
	}
}

func TestRiverValidate(t *testing.T) {
	bad := River{ID: 1, Points: []RiverPoint{{X: 0, Y: 0, Width: 5}}}
	if bad.Validate() == nil {
		t.Error("single-point river must fail validation")
	}
	bad = River{ID: 1, Points: []RiverPoint{{X: 0, Y: 0, Width: 0}, {X: 1, Y: 1, Width: 5}}}
	if bad.Validate() == nil {
		t.Error("zero width must fail validation")
	}
}

package contour

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"mapengine/geometry"
)

// maskSegments runs the binary pipeline over a mask with a one-cell zero
// border, like the biome renderer does.
func maskSegments(mask []uint8, rows, cols int) []Segment {
	field, prows, pcols := MaskToField(mask, rows, cols, 1)
	return MarchingSquares(field, prows, pcols, mgl64.Vec2{}, 1, 0.5, true)
}

func TestStitchSingleRegionOnePath(t *testing.T) {
	mask := make([]uint8, 8*8)
	for r := 2; r <= 5; r++ {
		for c := 2; c <= 5; c++ {
			mask[r*8+c] = 1
		}
	}
	paths := Stitch(maskSegments(mask, 8, 8), StitchEpsilon)
	if len(paths) != 1 {
		t.Fatalf("simply-connected region produced %d paths, want 1", len(paths))
	}
	if !paths[0].Closed {
		t.Error("region outline must close")
	}
	first, last := paths[0].Points[0], paths[0].Points[len(paths[0].Points)-1]
	if samePoint(first, last, 1e-9) {
		t.Error("closed path must not repeat its start point")
	}
}

func TestStitchRegionWithHole(t *testing.T) {
	// 6x6 ring of ones around a 2x2 hole.
	mask := make([]uint8, 10*10)
	for r := 2; r <= 7; r++ {
		for c := 2; c <= 7; c++ {
			mask[r*10+c] = 1
		}
	}
	for r := 4; r <= 5; r++ {
		for c := 4; c <= 5; c++ {
			mask[r*10+c] = 0
		}
	}
	paths := Stitch(maskSegments(mask, 10, 10), StitchEpsilon)
	if len(paths) != 2 {
		t.Fatalf("1-holed region produced %d paths, want 2", len(paths))
	}
	for i, p := range paths {
		if !p.Closed {
			t.Errorf("path %d not closed", i)
		}
	}

	BuildHierarchy(paths)
	outer, inner := 0, 1
	if math.Abs(paths[0].Area()) < math.Abs(paths[1].Area()) {
		outer, inner = 1, 0
	}
	if paths[outer].Parent != -1 {
		t.Errorf("outer parent = %d, want -1", paths[outer].Parent)
	}
	if paths[inner].Parent != outer {
		t.Errorf("inner parent = %d, want %d", paths[inner].Parent, outer)
	}
}

func TestStitchTwoSeparateRegions(t *testing.T) {
	mask := make([]uint8, 12*12)
	mask[2*12+2] = 1
	for r := 6; r <= 8; r++ {
		for c := 6; c <= 8; c++ {
			mask[r*12+c] = 1
		}
	}
	paths := Stitch(maskSegments(mask, 12, 12), StitchEpsilon)
	if len(paths) != 2 {
		t.Fatalf("two regions produced %d paths, want 2", len(paths))
	}
	BuildHierarchy(paths)
	for i, p := range paths {
		if p.Parent != -1 {
			t.Errorf("path %d parent = %d, want -1 (disjoint regions)", i, p.Parent)
		}
	}
}

func TestChaikinPointCount(t *testing.T) {
	square := []mgl64.Vec2{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
	for k := 1; k <= 3; k++ {
		got := Chaikin(square, true, k)
		want := 4 * int(math.Pow(2, float64(k)))
		if len(got) != want {
			t.Errorf("Chaikin k=%d produced %d points, want %d", k, len(got), want)
		}
	}
}

func TestChaikinPerimeterShrinks(t *testing.T) {
	square := []mgl64.Vec2{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
	before := geometry.PolylineLength(square, true)
	smoothed := Chaikin(square, true, 2)
	after := geometry.PolylineLength(smoothed, true)
	if after > before {
		t.Errorf("perimeter grew: %v -> %v", before, after)
	}
}

func TestChaikinStaysInsideConvexPolygon(t *testing.T) {
	// Regular hexagon.
	var hex []mgl64.Vec2
	for i := 0; i < 6; i++ {
		a := float64(i) * math.Pi / 3
		hex = append(hex, mgl64.Vec2{10 * math.Cos(a), 10 * math.Sin(a)})
	}
	smoothed := Chaikin(hex, true, 3)
	for _, p := range smoothed {
		if !geometry.PointInPolygon(p, hex, 1e-6) {
			t.Errorf("smoothed point %v escaped the hexagon", p)
		}
	}
}

func TestChaikinOpenPreservesEndpoints(t *testing.T) {
	line := []mgl64.Vec2{{0, 0}, {5, 5}, {10, 0}}
	smoothed := Chaikin(line, false, 2)
	if smoothed[0] != line[0] || smoothed[len(smoothed)-1] != line[2] {
		t.Errorf("open Chaikin moved endpoints: %v .. %v", smoothed[0], smoothed[len(smoothed)-1])
	}
}

func TestFillGroupsNesting(t *testing.T) {
	ring := func(cx, cy, r float64) []mgl64.Vec2 {
		var pts []mgl64.Vec2
		for i := 0; i < 16; i++ {
			a := float64(i) * math.Pi / 8
			pts = append(pts, mgl64.Vec2{cx + r*math.Cos(a), cy + r*math.Sin(a)})
		}
		return pts
	}
	paths := []*Path{
		{Points: ring(0, 0, 100), Closed: true}, // root
		{Points: ring(0, 0, 50), Closed: true},  // hole
		{Points: ring(0, 0, 20), Closed: true},  // island inside hole
	}
	BuildHierarchy(paths)
	if paths[1].Parent != 0 || paths[2].Parent != 1 {
		t.Fatalf("parents = %d,%d, want 0,1", paths[1].Parent, paths[2].Parent)
	}

	groups := FillGroups(paths)
	if len(groups) != 2 {
		t.Fatalf("got %d fill groups, want 2", len(groups))
	}
	if groups[0].Outer != 0 || len(groups[0].Holes) != 1 || groups[0].Holes[0] != 1 {
		t.Errorf("root group = %+v, want outer 0 with hole 1", groups[0])
	}
	if groups[1].Outer != 2 || len(groups[1].Holes) != 0 {
		t.Errorf("island group = %+v, want outer 2 with no holes", groups[1])
	}
}

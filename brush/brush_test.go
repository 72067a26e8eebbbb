package brush

import (
	"errors"
	"math"
	"testing"

	"mapengine/geometry"
	"mapengine/mapgrid"
)

func testGrid(rows, cols int) *mapgrid.Grid {
	return mapgrid.NewFlatGrid(rows, cols, 1, geometry.Rect{})
}

func applyStroke(e *Editor, tool Tool, x, y float64) error {
	s := e.BeginStroke(tool)
	s.Apply(x, y)
	return s.Commit()
}

func TestRaiseThenLowerCancels(t *testing.T) {
	g := testGrid(10, 10)
	e := NewEditor(g)
	e.Radius = 2
	e.Strength = 1

	if err := applyStroke(e, ToolRaise, 5, 5); err != nil {
		t.Fatalf("raise: %v", err)
	}
	if err := applyStroke(e, ToolLower, 5, 5); err != nil {
		t.Fatalf("lower: %v", err)
	}
	for i, h := range g.Heights {
		if math.Abs(h) > 1e-6 {
			t.Errorf("height[%d] = %v after raise+lower, want ~0", i, h)
		}
	}
}

func TestRaiseFalloff(t *testing.T) {
	g := testGrid(10, 10)
	e := NewEditor(g)
	e.Radius = 3
	e.Strength = 1

	if err := applyStroke(e, ToolRaise, 5.5, 5.5); err != nil {
		t.Fatalf("raise: %v", err)
	}
	center := g.Heights[g.Index(5, 5)]
	edge := g.Heights[g.Index(5, 7)]
	if center <= 0 {
		t.Fatal("center cell not raised")
	}
	if edge >= center {
		t.Errorf("falloff violated: edge %v >= center %v", edge, center)
	}
	// Cells beyond the radius untouched.
	if far := g.Heights[g.Index(0, 0)]; far != 0 {
		t.Errorf("far cell = %v, want 0", far)
	}
}

func TestLowerClampsAtZero(t *testing.T) {
	g := testGrid(6, 6)
	e := NewEditor(g)
	e.Radius = 2
	e.Strength = 1
	if err := applyStroke(e, ToolLower, 3, 3); err != nil {
		t.Fatalf("lower: %v", err)
	}
	for i, h := range g.Heights {
		if h < 0 {
			t.Errorf("height[%d] = %v below zero", i, h)
		}
	}
}

func TestFlattenPullsTowardTarget(t *testing.T) {
	g := testGrid(6, 6)
	for i := range g.Heights {
		g.Heights[i] = 80
	}
	e := NewEditor(g)
	e.Radius = 2
	e.Strength = 1
	e.FlattenTarget = 20

	if err := applyStroke(e, ToolFlatten, 3, 3); err != nil {
		t.Fatalf("flatten: %v", err)
	}
	center := g.Heights[g.Index(3, 3)]
	if center >= 80 || center < 20 {
		t.Errorf("flattened center = %v, want within [20, 80)", center)
	}
}

func TestSmoothReducesSpike(t *testing.T) {
	g := testGrid(7, 7)
	g.Heights[g.Index(3, 3)] = 100
	e := NewEditor(g)
	e.Radius = 2
	e.Strength = 1

	if err := applyStroke(e, ToolSmooth, 3.5, 3.5); err != nil {
		t.Fatalf("smooth: %v", err)
	}
	if got := g.Heights[g.Index(3, 3)]; got >= 100 {
		t.Errorf("spike = %v after smooth, want < 100", got)
	}
	if got := g.Heights[g.Index(3, 4)]; got <= 0 {
		t.Errorf("neighbor = %v after smooth, want > 0", got)
	}
}

func TestTempToolsClamp(t *testing.T) {
	g := testGrid(4, 4)
	for i := range g.Temperature {
		g.Temperature[i] = 5
	}
	e := NewEditor(g)
	e.Radius = 1.5
	e.Strength = 1

	if err := applyStroke(e, ToolTempUp, 2, 2); err != nil {
		t.Fatalf("temp+: %v", err)
	}
	for i, v := range g.Temperature {
		if v > 5 {
			t.Errorf("temperature[%d] = %d exceeds clamp", i, v)
		}
	}

	if err := applyStroke(e, ToolTempDown, 2, 2); err != nil {
		t.Fatalf("temp-: %v", err)
	}
	if g.Temperature[g.Index(2, 2)] != 4 {
		t.Errorf("temperature after down = %d, want 4", g.Temperature[g.Index(2, 2)])
	}
}

func TestOrdinalSet(t *testing.T) {
	g := testGrid(4, 4)
	e := NewEditor(g)
	e.Radius = 1.5
	e.Strength = 1
	e.OrdinalTarget = 2

	if err := applyStroke(e, ToolMoistSet, 2, 2); err != nil {
		t.Fatalf("moist set: %v", err)
	}
	if g.Moisture[g.Index(2, 2)] != 2 {
		t.Errorf("moisture = %d, want 2", g.Moisture[g.Index(2, 2)])
	}
}

func TestCommitAbortsOnGridChange(t *testing.T) {
	g := testGrid(6, 6)
	e := NewEditor(g)
	e.Radius = 2
	e.Strength = 1

	s := e.BeginStroke(ToolRaise)
	s.Apply(3, 3)
	g.BumpVersion() // concurrent mutation
	if err := s.Commit(); !errors.Is(err, ErrStrokeAborted) {
		t.Errorf("Commit = %v, want ErrStrokeAborted", err)
	}
	for i, h := range g.Heights {
		if h != 0 {
			t.Errorf("height[%d] = %v after aborted commit, want 0", i, h)
		}
	}
}

func TestMissingGridNoOps(t *testing.T) {
	e := NewEditor(nil)
	s := e.BeginStroke(ToolRaise)
	if s != nil {
		t.Error("BeginStroke with no grid must return nil")
	}
	s.Apply(1, 1) // must not panic
	if err := s.Commit(); err != nil {
		t.Errorf("nil stroke Commit = %v, want nil", err)
	}
	if err := GlobalSmooth(nil, 2, 1); !errors.Is(err, mapgrid.ErrMissingGrid) {
		t.Errorf("GlobalSmooth(nil) = %v, want ErrMissingGrid", err)
	}
}

func totalVariation(g *mapgrid.Grid) float64 {
	tv := 0.0
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if c+1 < g.Cols {
				tv += math.Abs(g.Heights[g.Index(r, c+1)] - g.Heights[g.Index(r, c)])
			}
			if r+1 < g.Rows {
				tv += math.Abs(g.Heights[g.Index(r+1, c)] - g.Heights[g.Index(r, c)])
			}
		}
	}
	return tv
}

func TestGlobalSmoothConvergence(t *testing.T) {
	g := testGrid(12, 12)
	for i := range g.Heights {
		g.Heights[i] = float64((i * 7919) % 101) // deterministic rough field
	}
	prev := totalVariation(g)
	for it := 0; it < 5; it++ {
		if err := GlobalSmooth(g, 1, 1.0); err != nil {
			t.Fatalf("GlobalSmooth: %v", err)
		}
		tv := totalVariation(g)
		if tv > prev+1e-9 {
			t.Errorf("iteration %d: total variation grew %v -> %v", it, prev, tv)
		}
		prev = tv
	}
}

func TestStrokeBumpsVersion(t *testing.T) {
	g := testGrid(6, 6)
	e := NewEditor(g)
	e.Radius = 2
	e.Strength = 1
	v := g.Version()
	if err := applyStroke(e, ToolRaise, 3, 3); err != nil {
		t.Fatalf("raise: %v", err)
	}
	if g.Version() == v {
		t.Error("commit must bump the grid version")
	}
}

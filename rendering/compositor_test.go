package rendering

import (
	"testing"

	"mapengine/config"
	"mapengine/features"
	"mapengine/geometry"
	"mapengine/mapgrid"
)

func testCompositor() *Compositor {
	g := mapgrid.NewFlatGrid(8, 8, 10, geometry.Rect{})
	for c := 4; c < 8; c++ {
		for r := 0; r < 8; r++ {
			g.Heights[g.Index(r, c)] = 60
		}
	}
	comp := NewCompositor(g, nil, nil, config.DefaultSettings(), nil)
	comp.Features().AddRiver(features.River{
		Name:   "Silver Run",
		Points: []features.RiverPoint{{X: 0, Y: 40, Width: 6}, {X: 80, Y: 40, Width: 6}},
	})
	comp.Features().AddRegion(features.Region{
		Name:        "Old March",
		Points:      mgl64Square(10, 10, 30),
		Closed:      true,
		FillColor:   0x884422,
		FillAlpha:   0.3,
		StrokeColor: 0x884422,
		StrokeAlpha: 1,
		StrokeWidth: 2,
	})
	return comp
}

func TestRenderLayerOrder(t *testing.T) {
	comp := testCompositor()
	rec := NewRecorder()
	comp.RenderTo(rec)

	layers := rec.Layers()
	wantOrder := []string{"biome-fill", "height-contours", "rivers", "regions", "region-labels", "river-labels"}
	pos := map[string]int{}
	for i, l := range layers {
		pos[l] = i
	}
	last := -1
	for _, want := range wantOrder {
		got, ok := pos[want]
		if !ok {
			t.Fatalf("layer %q missing from render (layers: %v)", want, layers)
		}
		if got < last {
			t.Errorf("layer %q out of order (layers: %v)", want, layers)
		}
		last = got
	}
}

func TestRenderRecoversPerLayer(t *testing.T) {
	comp := testCompositor()
	comp.Grid().Biomes = comp.Grid().Biomes[:3] // break the grid layers (biomes and heights)
	rec := NewRecorder()
	comp.RenderTo(rec)

	if len(comp.Diagnostics()) == 0 {
		t.Fatal("broken biome layer produced no diagnostics")
	}
	found := false
	for _, d := range comp.Diagnostics() {
		if d.Kind == DiagDimensionMismatch && d.Layer == "biomes" {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics = %+v, want dimension-mismatch on biomes", comp.Diagnostics())
	}
	// Vector layers still rendered.
	if len(rec.LayerOps("rivers")) == 0 {
		t.Error("river layer must render despite biome failure")
	}
}

func TestMissingGridStillRendersVectors(t *testing.T) {
	comp := NewCompositor(nil, nil, nil, config.DefaultSettings(), nil)
	comp.Features().AddRiver(features.River{
		Name:   "Lone",
		Points: []features.RiverPoint{{X: 0, Y: 0, Width: 4}, {X: 50, Y: 0, Width: 4}},
	})
	rec := NewRecorder()
	comp.RenderTo(rec)
	if len(rec.LayerOps("rivers")) == 0 {
		t.Error("rivers must render with no grid loaded")
	}
	if len(comp.Diagnostics()) == 0 {
		t.Error("missing grid must surface a diagnostic")
	}
}

func TestHoverUpdatesState(t *testing.T) {
	comp := testCompositor()
	if changed := comp.Hover(20, 20); !changed {
		t.Error("first hover over region must report a change")
	}
	if comp.HoveredRegion() == nil {
		t.Fatal("region under pointer not hovered")
	}
	if changed := comp.Hover(20, 20); changed {
		t.Error("same hover position must not report a change")
	}
	comp.Hover(79, 40)
	river, hit := comp.HoveredRiver()
	if river == nil {
		t.Fatal("river under pointer not hovered")
	}
	if hit.Dist != 0 {
		t.Errorf("river hit dist = %v, want 0 on centerline", hit.Dist)
	}
}

func TestHoverOverlayInRenderButNotExport(t *testing.T) {
	comp := testCompositor()
	comp.Hover(20, 20)

	rec := NewRecorder()
	comp.RenderTo(rec)
	if len(rec.LayerOps("region-hover")) == 0 {
		t.Error("hover overlay missing from interactive render")
	}

	exp := NewRecorder()
	comp.RenderExportTo(exp)
	if len(exp.LayerOps("region-hover")) != 0 {
		t.Error("hover overlay must be hidden during export")
	}
	// Hover state restored after export.
	if comp.HoveredRegion() == nil {
		t.Error("export dropped the hover state")
	}
}

func TestModeCycling(t *testing.T) {
	comp := testCompositor()
	seen := map[BiomesMode]bool{}
	for i := 0; i < 4; i++ {
		seen[comp.CycleBiomesMode()] = true
	}
	if len(seen) != 4 {
		t.Errorf("biome mode cycle visited %d modes, want 4", len(seen))
	}
	hseen := map[HeightsMode]bool{}
	for i := 0; i < 4; i++ {
		hseen[comp.CycleHeightsMode()] = true
	}
	if len(hseen) != 4 {
		t.Errorf("heights mode cycle visited %d modes, want 4", len(hseen))
	}
}

func TestFadeLifecycle(t *testing.T) {
	var f Fade
	f.Start(200)
	if !f.Active() {
		t.Fatal("fade not active after Start")
	}
	in, out := f.Alphas()
	if in != 0 || out != 1 {
		t.Errorf("alphas at t=0 = (%v, %v), want (0, 1)", in, out)
	}
	f.Update(0.1)
	in, out = f.Alphas()
	if in <= 0 || in >= 1 || out <= 0 || out >= 1 {
		t.Errorf("mid-fade alphas = (%v, %v), want both in (0,1)", in, out)
	}
	if !f.Update(0.2) {
		t.Error("fade must report completion")
	}
	in, out = f.Alphas()
	if in != 1 || out != 0 {
		t.Errorf("post-fade alphas = (%v, %v), want (1, 0)", in, out)
	}
}

func TestFadeDisabledIsInstant(t *testing.T) {
	var f Fade
	f.Start(0)
	if f.Active() {
		t.Error("zero-duration fade must complete instantly")
	}
	in, out := f.Alphas()
	if in != 1 || out != 0 {
		t.Errorf("alphas = (%v, %v), want (1, 0)", in, out)
	}
}

func TestFadeCancelSupersedes(t *testing.T) {
	var f Fade
	f.Start(500)
	f.Cancel()
	if f.Active() {
		t.Error("cancel must stop the fade")
	}
}

func TestLabelStylerScalesDownOnly(t *testing.T) {
	ls := NewLabelStyler(nil)
	small := &features.Region{
		Name:   "A Very Long Region Name Indeed",
		Points: mgl64Square(0, 0, 120),
		Closed: true,
	}
	style := ls.RegionStyle(small)
	if style.Size >= config.LabelBaseFontSize {
		t.Errorf("long name in small region: size = %v, want < base", style.Size)
	}

	big := &features.Region{Name: "Ox", Points: mgl64Square(0, 0, 2000), Closed: true}
	style = ls.RegionStyle(big)
	if style.Size != config.LabelBaseFontSize {
		t.Errorf("short name in huge region: size = %v, want base (never scale up)", style.Size)
	}
	if style.OutlineWidth != config.LabelOutlineFactor*style.Size {
		t.Errorf("outline width = %v, want %v", style.OutlineWidth, config.LabelOutlineFactor*style.Size)
	}
}

package biome

import (
	"encoding/json"
	"testing"

	"mapengine/common"
)

func TestRenderOrderRankThenID(t *testing.T) {
	table := NewTable([]Config{
		{ID: 5, RenderRank: 1, Enabled: true},
		{ID: 2, RenderRank: 0, Enabled: true},
		{ID: 9, RenderRank: 0, Enabled: true},
		{ID: 1, RenderRank: 2, Enabled: false},
	})
	got := table.RenderOrder()
	want := []int{2, 9, 5}
	if len(got) != len(want) {
		t.Fatalf("RenderOrder = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("RenderOrder[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestGetUnknownFallback(t *testing.T) {
	table := NewTable(nil)
	c := table.Get(42)
	if c.ID != 42 || !c.Enabled {
		t.Errorf("fallback config = %+v", c)
	}
}

func TestResolverHeightOverrides(t *testing.T) {
	r := NewResolver(DefaultTable())
	if got := r.Resolve(3, 3, 85); got != Mountain {
		t.Errorf("Resolve high = %d, want Mountain", got)
	}
	if got := r.Resolve(3, 1, 95); got != Glacier {
		t.Errorf("Resolve high+cold = %d, want Glacier", got)
	}
	if got := r.Resolve(3, 5, 95); got != Mountain {
		t.Errorf("Resolve high+hot = %d, want Mountain", got)
	}
}

func TestResolveGridAuthoritativeBiomes(t *testing.T) {
	r := NewResolver(DefaultTable())
	biomes := []int{7, 7, 7, 7}
	got := r.ResolveGrid(biomes, nil, nil, nil, 4, nil)
	for i, v := range got {
		if v != 7 {
			t.Errorf("ResolveGrid[%d] = %d, want 7 (authoritative)", i, v)
		}
	}
}

func TestResolveGridFromOrdinals(t *testing.T) {
	r := NewResolver(DefaultTable())
	moist := []int{6, 1}
	temp := []int{6, 3}
	heights := []float64{0, 0}
	got := r.ResolveGrid(nil, moist, temp, heights, 2, nil)
	if got[0] != Water {
		t.Errorf("wettest+hottest = %d, want Water", got[0])
	}
	if got[1] != Desert {
		t.Errorf("arid+mild = %d, want Desert", got[1])
	}
}

func TestApplyOverrides(t *testing.T) {
	base := DefaultTable()
	name := "Deep Sea"
	colorHex := "102030"
	rank := 9
	enabled := false
	doc := OverridesDoc{
		Version: 1,
		Biomes: []OverrideRecord{
			{ID: Water, Name: &name, Color: &colorHex, RenderRank: &rank},
			{ID: Forest, Enabled: &enabled},
		},
	}
	merged := ApplyOverrides(base, doc)

	w := merged.Get(Water)
	if w.Name != "Deep Sea" || w.Color != common.RGB(0x102030) || w.RenderRank != 9 {
		t.Errorf("water override = %+v", w)
	}
	if w.Pattern == nil {
		t.Error("absent pattern key must keep base pattern")
	}
	if merged.Get(Forest).Enabled {
		t.Error("forest should be disabled")
	}
	// Base table untouched.
	if base.Get(Water).Name == "Deep Sea" {
		t.Error("ApplyOverrides mutated the base table")
	}
}

func TestApplyOverridesSkipsInvalidColor(t *testing.T) {
	base := DefaultTable()
	bad := "zzz"
	doc := OverridesDoc{Biomes: []OverrideRecord{{ID: Desert, Color: &bad}}}
	merged := ApplyOverrides(base, doc)
	if merged.Get(Desert).Color != base.Get(Desert).Color {
		t.Error("invalid color record must be skipped, not partially applied")
	}
}

func TestOverrideJSONPatternNullRemoves(t *testing.T) {
	raw := []byte(`{"version":1,"biomes":[{"id":0,"pattern":null},{"id":3}]}`)
	var doc OverridesDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	merged := ApplyOverrides(DefaultTable(), doc)
	if merged.Get(Water).Pattern != nil {
		t.Error("explicit null pattern must remove the pattern")
	}
	if merged.Get(Forest).Pattern == nil {
		t.Error("absent pattern key must keep the pattern")
	}
}

func TestOverridesRoundTrip(t *testing.T) {
	doc := ToOverrides(DefaultTable())
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back OverridesDoc
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	merged := ApplyOverrides(NewTable(nil), back)
	orig := DefaultTable()
	for _, c := range orig.All() {
		m := merged.Get(c.ID)
		if m.Name != c.Name || m.Color != c.Color || m.RenderRank != c.RenderRank {
			t.Errorf("biome %d round trip = %+v, want %+v", c.ID, m, c)
		}
	}
}

func TestPatternNormalizedDefaults(t *testing.T) {
	p := PatternConfig{Type: PatternDiagonal}.Normalized()
	if p.Spacing != 2.0 || p.LineWidth != 0.6 || p.Opacity != 1.0 {
		t.Errorf("Normalized defaults = %+v", p)
	}
}

func TestStrokeColorDarkens(t *testing.T) {
	p := PatternConfig{Type: PatternDiagonal, DarkenFactor: 0.5}
	got := p.StrokeColor(0x808080)
	if got != common.RGB(0x404040) {
		t.Errorf("StrokeColor = %s, want 404040", got.Hex())
	}
	override := common.RGB(0x112233)
	p.PatternColor = &override
	if p.StrokeColor(0x808080) != override {
		t.Error("explicit pattern color must win")
	}
}

// Package biome maps grid samples to biome classifications and carries the
// per-biome render configuration: color, render rank and optional decorative
// fill pattern.
package biome

import (
	"sort"

	"mapengine/common"
)

// MaxID bounds the biome id space.
const MaxID = 255

// Config describes one biome. Lower RenderRank draws first; ties break by id.
type Config struct {
	ID         int
	Name       string
	Color      common.RGB
	RenderRank int
	Pattern    *PatternConfig
	Enabled    bool
	Link       string
}

// Table is the merged, deterministic view of biome configuration. It is
// read-only during rendering; reloads replace the whole table between renders.
type Table struct {
	byID map[int]Config
}

// NewTable builds a table from a config list. Later duplicates of an id win,
// which is what makes layered override application deterministic.
func NewTable(configs []Config) *Table {
	t := &Table{byID: make(map[int]Config, len(configs))}
	for _, c := range configs {
		if c.ID < 0 || c.ID > MaxID {
			continue
		}
		t.byID[c.ID] = c
	}
	return t
}

// Get returns the config for an id. Unknown ids get a neutral gray fallback so
// a stray id in the grid cannot fail a render.
func (t *Table) Get(id int) Config {
	if c, ok := t.byID[id]; ok {
		return c
	}
	return Config{ID: id, Name: "unknown", Color: 0x808080, RenderRank: MaxID, Enabled: true}
}

// Has reports whether the id is configured.
func (t *Table) Has(id int) bool {
	_, ok := t.byID[id]
	return ok
}

// All returns the configs sorted by id.
func (t *Table) All() []Config {
	out := make([]Config, 0, len(t.byID))
	for _, c := range t.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RenderOrder returns the enabled biome ids sorted by (renderRank asc, id asc).
// This order is a total order and is observable in the final image.
func (t *Table) RenderOrder() []int {
	ids := make([]int, 0, len(t.byID))
	for id, c := range t.byID {
		if c.Enabled {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := t.byID[ids[i]], t.byID[ids[j]]
		if a.RenderRank != b.RenderRank {
			return a.RenderRank < b.RenderRank
		}
		return a.ID < b.ID
	})
	return ids
}

// Known biome ids of the default table.
const (
	Water     = 0
	Desert    = 1
	Grassland = 2
	Forest    = 3
	Swamp     = 4
	Tundra    = 5
	Mountain  = 6
	Glacier   = 7
)

// DefaultTable is the built-in biome set. Operator overrides layer on top of
// this via ApplyOverrides.
func DefaultTable() *Table {
	return NewTable([]Config{
		{ID: Water, Name: "Water", Color: 0x3a6ea5, RenderRank: 0, Enabled: true,
			Pattern: &PatternConfig{Type: PatternWaves, DarkenFactor: 0.25, Spacing: 2.0, LineWidth: 0.6, Opacity: 0.5}},
		{ID: Desert, Name: "Desert", Color: 0xd9c27e, RenderRank: 1, Enabled: true,
			Pattern: &PatternConfig{Type: PatternDots, DarkenFactor: 0.2, Spacing: 2.5, LineWidth: 0.25, Opacity: 0.4}},
		{ID: Grassland, Name: "Grassland", Color: 0x7ba05b, RenderRank: 2, Enabled: true},
		{ID: Forest, Name: "Forest", Color: 0x3f6d3a, RenderRank: 3, Enabled: true,
			Pattern: &PatternConfig{Type: PatternSpots, DarkenFactor: 0.3, Spacing: 2.0, LineWidth: 0.5, Opacity: 0.6}},
		{ID: Swamp, Name: "Swamp", Color: 0x5b6b4a, RenderRank: 4, Enabled: true,
			Pattern: &PatternConfig{Type: PatternHorizontal, DarkenFactor: 0.3, Spacing: 2.0, LineWidth: 0.4, Opacity: 0.5}},
		{ID: Tundra, Name: "Tundra", Color: 0xb8c0b0, RenderRank: 5, Enabled: true},
		{ID: Mountain, Name: "Mountain", Color: 0x8a8075, RenderRank: 6, Enabled: true,
			Pattern: &PatternConfig{Type: PatternDiagonal, DarkenFactor: 0.35, Spacing: 2.0, LineWidth: 0.5, Opacity: 0.6}},
		{ID: Glacier, Name: "Glacier", Color: 0xdbe9f4, RenderRank: 7, Enabled: true,
			Pattern: &PatternConfig{Type: PatternCrosshatch, DarkenFactor: 0.15, Spacing: 3.0, LineWidth: 0.4, Opacity: 0.4}},
	})
}

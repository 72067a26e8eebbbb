package persist

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"

	"mapengine/biome"
	"mapengine/common"
	"mapengine/features"
	"mapengine/mapgrid"
)

// --- biome overrides ---

// BiomesChunk persists the operator's biome overrides and rebuilds the
// merged table on load.
type BiomesChunk struct {
	Base *biome.Table

	// Doc is the override document; Merged is the layered view, refreshed on
	// every load.
	Doc    biome.OverridesDoc
	Merged *biome.Table
}

func (c *BiomesChunk) ChunkID() string   { return "biomes" }
func (c *BiomesChunk) ChunkVersion() int { return 1 }

func (c *BiomesChunk) Save() (json.RawMessage, error) {
	doc := c.Doc
	doc.Version = c.ChunkVersion()
	return json.Marshal(doc)
}

func (c *BiomesChunk) Load(data json.RawMessage) error {
	var doc biome.OverridesDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	c.Doc = doc
	base := c.Base
	if base == nil {
		base = biome.DefaultTable()
	}
	c.Merged = biome.ApplyOverrides(base, doc)
	return nil
}

// --- grid ---

// GridChunk persists the unified grid through the normalized import form.
type GridChunk struct {
	Grid *mapgrid.Grid

	// OnLoad receives the replacement grid; the compositor re-renders there.
	OnLoad func(*mapgrid.Grid)
}

func (c *GridChunk) ChunkID() string   { return "grid" }
func (c *GridChunk) ChunkVersion() int { return 1 }

func (c *GridChunk) Save() (json.RawMessage, error) {
	if c.Grid == nil {
		return nil, nil
	}
	g := c.Grid
	return json.Marshal(mapgrid.ImportedGrid{
		Rows: g.Rows, Cols: g.Cols, CellSize: g.CellSize,
		MinX: g.Bounds.MinX, MinY: g.Bounds.MinY,
		Heights: g.Heights, Biomes: g.Biomes,
		Moisture: g.Moisture, Temperature: g.Temperature,
	})
}

func (c *GridChunk) Load(data json.RawMessage) error {
	var in mapgrid.ImportedGrid
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	g, err := mapgrid.FromImport(in)
	if err != nil {
		return err
	}
	c.Grid = g
	if c.OnLoad != nil {
		c.OnLoad(g)
	}
	return nil
}

// --- rivers ---

type riversDoc struct {
	Version  int                    `json:"version"`
	Settings features.RiverSettings `json:"settings"`
	Rivers   []features.River       `json:"rivers"`
}

// RiversChunk persists the vector river collection.
type RiversChunk struct {
	Manager *features.Manager
}

func (c *RiversChunk) ChunkID() string   { return "rivers" }
func (c *RiversChunk) ChunkVersion() int { return 1 }

func (c *RiversChunk) Save() (json.RawMessage, error) {
	doc := riversDoc{Version: c.ChunkVersion(), Settings: c.Manager.RiverSettings}
	for _, r := range c.Manager.Rivers() {
		doc.Rivers = append(doc.Rivers, *r)
	}
	return json.Marshal(doc)
}

// Load replaces the river collection. Records failing validation are skipped
// with a warning; the rest of the document still loads.
func (c *RiversChunk) Load(data json.RawMessage) error {
	var doc riversDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	for _, r := range c.Manager.Rivers() {
		c.Manager.RemoveRiver(r.ID)
	}
	c.Manager.RiverSettings = doc.Settings
	for _, r := range doc.Rivers {
		if _, err := c.Manager.AddRiver(r); err != nil {
			log.Printf("WARNING: skipping river %d (%q): %v", r.ID, r.Name, err)
		}
	}
	return nil
}

// --- regions ---

type regionPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type regionRecord struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Points      []regionPoint `json:"points"`
	Closed      bool          `json:"closed"`
	FillColor   string        `json:"fillColor"`
	FillAlpha   float64       `json:"fillAlpha"`
	StrokeColor string        `json:"strokeColor"`
	StrokeAlpha float64       `json:"strokeAlpha"`
	StrokeWidth float64       `json:"strokeWidth"`
	Link        string        `json:"link,omitempty"`
}

type regionsDoc struct {
	Version  int                     `json:"version"`
	Settings features.RegionSettings `json:"settings"`
	Regions  []regionRecord          `json:"regions"`
}

// RegionsChunk persists the vector region collection.
type RegionsChunk struct {
	Manager *features.Manager
}

func (c *RegionsChunk) ChunkID() string   { return "regions" }
func (c *RegionsChunk) ChunkVersion() int { return 1 }

func (c *RegionsChunk) Save() (json.RawMessage, error) {
	doc := regionsDoc{Version: c.ChunkVersion(), Settings: c.Manager.RegionSettings}
	for _, rg := range c.Manager.Regions() {
		rec := regionRecord{
			ID:          rg.ID,
			Name:        rg.Name,
			Closed:      rg.Closed,
			FillColor:   rg.FillColor.Hex(),
			FillAlpha:   rg.FillAlpha,
			StrokeColor: rg.StrokeColor.Hex(),
			StrokeAlpha: rg.StrokeAlpha,
			StrokeWidth: rg.StrokeWidth,
			Link:        rg.Link,
		}
		for _, p := range rg.Points {
			rec.Points = append(rec.Points, regionPoint{X: p.X(), Y: p.Y()})
		}
		doc.Regions = append(doc.Regions, rec)
	}
	return json.Marshal(doc)
}

// Load replaces the region collection. Records with an invalid color or
// point list are skipped; the rest load.
func (c *RegionsChunk) Load(data json.RawMessage) error {
	var doc regionsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	for _, rg := range c.Manager.Regions() {
		c.Manager.RemoveRegion(rg.ID)
	}
	c.Manager.RegionSettings = doc.Settings
	for _, rec := range doc.Regions {
		rg, err := recordToRegion(rec, doc.Settings.SmoothIterations)
		if err != nil {
			log.Printf("WARNING: skipping region %d (%q): %v", rec.ID, rec.Name, err)
			continue
		}
		if _, err := c.Manager.AddRegion(rg); err != nil {
			log.Printf("WARNING: skipping region %d (%q): %v", rec.ID, rec.Name, err)
		}
	}
	return nil
}

func recordToRegion(rec regionRecord, smoothIterations int) (features.Region, error) {
	fill, err := common.ParseHex(rec.FillColor)
	if err != nil {
		return features.Region{}, fmt.Errorf("fill: %w", err)
	}
	stroke, err := common.ParseHex(rec.StrokeColor)
	if err != nil {
		return features.Region{}, fmt.Errorf("stroke: %w", err)
	}
	rg := features.Region{
		ID:               rec.ID,
		Name:             rec.Name,
		Closed:           rec.Closed,
		FillColor:        fill,
		FillAlpha:        rec.FillAlpha,
		StrokeColor:      stroke,
		StrokeAlpha:      rec.StrokeAlpha,
		StrokeWidth:      rec.StrokeWidth,
		Link:             rec.Link,
		SmoothIterations: smoothIterations,
	}
	for _, p := range rec.Points {
		rg.Points = append(rg.Points, mgl64.Vec2{p.X, p.Y})
	}
	return rg, nil
}

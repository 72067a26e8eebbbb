package rendering

import (
	"github.com/go-gl/mathgl/mgl64"

	"mapengine/biome"
	"mapengine/common"
	"mapengine/config"
	"mapengine/contour"
	"mapengine/geometry"
	"mapengine/mapgrid"
)

// BiomesMode selects how the biome layer renders.
type BiomesMode int

const (
	BiomesOff BiomesMode = iota
	BiomesCells
	BiomesFancy
	BiomesFancyDebug
)

// String names the mode for the command surface.
func (m BiomesMode) String() string {
	switch m {
	case BiomesOff:
		return "off"
	case BiomesCells:
		return "cells"
	case BiomesFancy:
		return "fancy"
	case BiomesFancyDebug:
		return "fancyDebug"
	}
	return "unknown"
}

// debugBorderDarken is the darkening applied to the stroke of the debug
// border pass.
const debugBorderDarken = 0.4

// BiomeLayer renders the biome regions of the grid: per-biome cell sets
// expanded by one ring, contoured, smoothed and filled in rank order, with
// optional decorative patterns clipped to each shape.
type BiomeLayer struct {
	Grid     *mapgrid.Grid
	Table    *biome.Table
	Resolver *biome.Resolver
	Mode     BiomesMode
}

// Render emits the layer through the canvas. Returns the structural error
// when the grid cannot be rendered; the caller converts it to a diagnostic.
func (l *BiomeLayer) Render(cv Canvas) error {
	if l.Mode == BiomesOff {
		return nil
	}
	if l.Grid == nil {
		return mapgrid.ErrMissingGrid
	}
	if err := l.Grid.Validate(); err != nil {
		return err
	}

	g := l.Grid
	cells := g.Rows * g.Cols
	ids := l.Resolver.ResolveGrid(g.Biomes, g.Moisture, g.Temperature, g.Heights, cells, nil)

	if l.Mode == BiomesCells {
		l.renderCells(cv, ids)
		return nil
	}

	// Partition cell indices by biome id.
	byBiome := make(map[int][]int)
	for idx, id := range ids {
		byBiome[id] = append(byBiome[id], idx)
	}

	cv.BeginLayer("biome-fill", ZBiomeFill)
	defer cv.EndLayer()

	// painted marks cells owned by already-rendered biomes; later biomes may
	// not expand into them, which is what makes rank order observable.
	painted := make([]bool, cells)

	type patternJob struct {
		cfg     biome.PatternConfig
		base    common.RGB
		polys   []Polygon
		biomeID int
	}
	var patternJobs []patternJob

	for _, id := range l.Table.RenderOrder() {
		core, ok := byBiome[id]
		if !ok || len(core) == 0 {
			continue
		}
		cfg := l.Table.Get(id)

		mask := l.buildDrawMask(core, painted)
		mask = contour.FilterSpeckle(mask, g.Rows, g.Cols,
			config.BiomeSpeckleMinCells, config.BiomeSpeckleMinCells)

		polys := l.maskToPolygons(mask, config.BiomeSmoothIterations)
		for _, poly := range polys {
			cv.Fill(cfg.Color, 1.0, poly)
		}

		if cfg.Pattern != nil && cfg.Pattern.Type != biome.PatternNone {
			patternJobs = append(patternJobs, patternJob{
				cfg: *cfg.Pattern, base: cfg.Color, polys: polys, biomeID: id,
			})
		}

		if l.Mode == BiomesFancyDebug {
			l.renderDebugBorder(cv, core, cfg.Color)
		}

		for _, idx := range core {
			painted[idx] = true
		}
	}

	// Patterns go into their own layer above all solid fills.
	if len(patternJobs) > 0 {
		cv.BeginLayer("biome-pattern", ZBiomePattern)
		for _, job := range patternJobs {
			for _, poly := range job.polys {
				cv.SetMask(poly)
				DrawPattern(cv, job.cfg, job.base, geometry.BoundsOf(poly.Outer),
					poly.Outer, g.CellSize, job.biomeID)
				cv.ClearMask()
			}
		}
		cv.EndLayer()
	}
	return nil
}

// buildDrawMask marks the biome's core cells plus their 8-neighbors that no
// earlier biome owns. The expansion closes the hairline cracks smoothing
// opens at multi-biome junctions.
func (l *BiomeLayer) buildDrawMask(core []int, painted []bool) []uint8 {
	g := l.Grid
	mask := make([]uint8, g.Rows*g.Cols)
	inCore := make(map[int]bool, len(core))
	for _, idx := range core {
		mask[idx] = 1
		inCore[idx] = true
	}
	for _, idx := range core {
		r, c := idx/g.Cols, idx%g.Cols
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				nr, nc := r+dr, c+dc
				if !g.InBounds(nr, nc) {
					continue
				}
				nidx := g.Index(nr, nc)
				if !painted[nidx] && !inCore[nidx] {
					mask[nidx] = 1
				}
			}
		}
	}
	return mask
}

// maskToPolygons runs the contour pipeline over a cell mask: pad, march,
// stitch, smooth, build the hole hierarchy and flatten it into fill groups.
func (l *BiomeLayer) maskToPolygons(mask []uint8, smoothIterations int) []Polygon {
	g := l.Grid
	field, prows, pcols := contour.MaskToField(mask, g.Rows, g.Cols, 1)

	// Padded sample (0,0) sits one cell outside the grid: cell centers are at
	// bounds.Min + (i+0.5)*cell, so the pad ring starts half a cell further
	// out.
	origin := mgl64.Vec2{
		g.Bounds.MinX - 0.5*g.CellSize,
		g.Bounds.MinY - 0.5*g.CellSize,
	}
	segs := contour.MarchingSquares(field, prows, pcols, origin, g.CellSize, 0.5, true)
	paths := contour.Stitch(segs, contour.StitchEpsilon)
	for _, p := range paths {
		p.Points = contour.Chaikin(p.Points, p.Closed, smoothIterations)
	}
	contour.BuildHierarchy(paths)

	var polys []Polygon
	for _, group := range contour.FillGroups(paths) {
		poly := Polygon{Outer: paths[group.Outer].Points}
		for _, h := range group.Holes {
			poly.Holes = append(poly.Holes, paths[h].Points)
		}
		polys = append(polys, poly)
	}
	return polys
}

// renderDebugBorder redoes the contour on the unexpanded core mask and
// strokes it darkened, showing where the true biome boundary sits under the
// smoothed fill.
func (l *BiomeLayer) renderDebugBorder(cv Canvas, core []int, base common.RGB) {
	g := l.Grid
	mask := make([]uint8, g.Rows*g.Cols)
	for _, idx := range core {
		mask[idx] = 1
	}
	borderColor := common.Darken(base, debugBorderDarken)
	for _, poly := range l.maskToPolygons(mask, config.BiomeSmoothIterations) {
		cv.Stroke(borderColor, 0.9, 1.0, poly.Outer, true)
		for _, hole := range poly.Holes {
			cv.Stroke(borderColor, 0.9, 1.0, hole, true)
		}
	}
}

// renderCells draws every cell as a flat rect of its biome color, the cheap
// diagnostic view.
func (l *BiomeLayer) renderCells(cv Canvas, ids []int) {
	g := l.Grid
	cv.BeginLayer("biome-cells", ZBiomeFill)
	defer cv.EndLayer()
	half := g.CellSize / 2
	for idx, id := range ids {
		cfg := l.Table.Get(id)
		if !cfg.Enabled {
			continue
		}
		cx, cy := g.CellCenter(idx/g.Cols, idx%g.Cols)
		cv.Fill(cfg.Color, 1.0, Polygon{Outer: []mgl64.Vec2{
			{cx - half, cy - half},
			{cx + half, cy - half},
			{cx + half, cy + half},
			{cx - half, cy + half},
		}})
	}
}

package rendering

import (
	"errors"

	"mapengine/biome"
	"mapengine/config"
	"mapengine/features"
	"mapengine/mapgrid"
)

// Compositor owns the scene: the grid, the biome table, the vector feature
// store and the per-layer render modes. It orders the layers into the primitive
// stream and tracks hover state and cross-fade timing. The grid is owned here;
// the brush editor takes an exclusive borrow during a stroke and the compositor
// re-renders on release.
type Compositor struct {
	grid     *mapgrid.Grid
	table    *biome.Table
	resolver *biome.Resolver
	feats    *features.Manager
	settings *config.UserSettings

	biomesMode  BiomesMode
	heightsMode HeightsMode

	labels *LabelStyler

	hoveredRegion *features.Region
	hoveredRiver  *features.River
	riverHit      features.RiverHit

	// Fade is advanced by the host's frame callback and applied when the
	// composited scene images are drawn.
	Fade Fade

	diagnostics []Diagnostic
}

// NewCompositor wires the scene components together. metrics may be nil
// (approximate label metrics).
func NewCompositor(grid *mapgrid.Grid, table *biome.Table, feats *features.Manager,
	settings *config.UserSettings, metrics FontMetrics) *Compositor {
	if table == nil {
		table = biome.DefaultTable()
	}
	if feats == nil {
		feats = features.NewManager()
	}
	if settings == nil {
		settings = config.DefaultSettings()
	}
	return &Compositor{
		grid:        grid,
		table:       table,
		resolver:    biome.NewResolver(table),
		feats:       feats,
		settings:    settings,
		biomesMode:  BiomesFancy,
		heightsMode: HeightsContours,
		labels:      NewLabelStyler(metrics),
	}
}

// Grid returns the owned grid (nil when nothing is loaded).
func (c *Compositor) Grid() *mapgrid.Grid { return c.grid }

// SetGrid replaces the owned grid, e.g. after an import.
func (c *Compositor) SetGrid(g *mapgrid.Grid) { c.grid = g }

// Features exposes the vector feature store.
func (c *Compositor) Features() *features.Manager { return c.feats }

// BiomeTable returns the current merged biome table.
func (c *Compositor) BiomeTable() *biome.Table { return c.table }

// ReloadBiomes swaps the biome table. Must happen between renders; the table
// is read-only while a render is in progress.
func (c *Compositor) ReloadBiomes(table *biome.Table) {
	c.table = table
	c.resolver = biome.NewResolver(table)
}

// SetBiomesMode switches the biome layer mode; the caller re-renders after.
func (c *Compositor) SetBiomesMode(m BiomesMode) { c.biomesMode = m }

// BiomesMode returns the current biome layer mode.
func (c *Compositor) BiomesMode() BiomesMode { return c.biomesMode }

// SetHeightsMode switches the height layer mode.
func (c *Compositor) SetHeightsMode(m HeightsMode) { c.heightsMode = m }

// HeightsMode returns the current height layer mode.
func (c *Compositor) HeightsMode() HeightsMode { return c.heightsMode }

// CycleBiomesMode steps off -> cells -> fancy -> fancyDebug -> off.
func (c *Compositor) CycleBiomesMode() BiomesMode {
	c.biomesMode = (c.biomesMode + 1) % 4
	return c.biomesMode
}

// CycleHeightsMode steps off -> contours-bw -> contours -> cells -> off.
func (c *Compositor) CycleHeightsMode() HeightsMode {
	c.heightsMode = (c.heightsMode + 1) % 4
	return c.heightsMode
}

// Diagnostics returns the structured warnings of the last render pass.
func (c *Compositor) Diagnostics() []Diagnostic { return c.diagnostics }

// RenderTo builds the full scene into the canvas, bottom layer first. Each
// layer is independently recoverable: a failing layer reports a diagnostic
// and the rest still render. The error list of the pass is retained for the
// host.
func (c *Compositor) RenderTo(cv Canvas) {
	sink := newDiagnosticSink()

	biomeLayer := &BiomeLayer{Grid: c.grid, Table: c.table, Resolver: c.resolver, Mode: c.biomesMode}
	if err := biomeLayer.Render(cv); err != nil {
		sink.add(kindOf(err), "biomes", err.Error())
	}

	heightLayer := &HeightLayer{Grid: c.grid, Mode: c.heightsMode, ContourAlpha: c.settings.HeightContourAlpha}
	if err := heightLayer.Render(cv); err != nil {
		sink.add(kindOf(err), "heights", err.Error())
	}

	riverLayer := &RiverLayer{Features: c.feats, RotateLabels: c.settings.RotateRiverLabels, Labels: c.labels}
	regionLayer := &RegionLayer{Features: c.feats, Labels: c.labels}

	riverLayer.Render(cv)
	regionLayer.Render(cv)
	regionLayer.RenderHover(cv, c.hoveredRegion)
	regionLayer.RenderLabels(cv)
	riverLayer.RenderLabels(cv)

	c.diagnostics = sink.list
}

// RenderExportTo renders for image export: hover overlays hidden.
func (c *Compositor) RenderExportTo(cv Canvas) {
	hovered := c.hoveredRegion
	c.hoveredRegion = nil
	c.RenderTo(cv)
	c.hoveredRegion = hovered
}

// StartFade arms the cross-fade for the scene swap, honoring the animation
// settings. A render supersedes any fade already in flight.
func (c *Compositor) StartFade() {
	c.Fade.Cancel()
	if c.settings.AppearanceAnimation {
		c.Fade.Start(c.settings.AppearanceAnimationDurationMs)
	}
}

// Hover updates the hovered region and river from a pointer position and
// reports whether the hover state changed (the caller redraws the overlay
// then).
func (c *Compositor) Hover(x, y float64) bool {
	region := c.feats.FindRegionAt(x, y)
	river, hit := c.feats.FindRiverAt(x, y)

	changed := region != c.hoveredRegion || river != c.hoveredRiver
	c.hoveredRegion = region
	c.hoveredRiver = river
	c.riverHit = hit
	return changed
}

// HoveredRegion returns the region under the pointer, if any.
func (c *Compositor) HoveredRegion() *features.Region { return c.hoveredRegion }

// HoveredRiver returns the river under the pointer and its hit details.
func (c *Compositor) HoveredRiver() (*features.River, features.RiverHit) {
	return c.hoveredRiver, c.riverHit
}

// kindOf maps structural errors to diagnostic kinds.
func kindOf(err error) DiagnosticKind {
	switch {
	case errors.Is(err, mapgrid.ErrMissingGrid):
		return DiagMissingGrid
	case errors.Is(err, mapgrid.ErrDimensionMismatch):
		return DiagDimensionMismatch
	case errors.Is(err, mapgrid.ErrDegenerateBounds):
		return DiagDegenerateBounds
	}
	return DiagnosticKind("render-error")
}

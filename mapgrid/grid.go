// Package mapgrid owns the unified sample grid backing every raster layer:
// heights, biome ids, moisture and temperature as equal-length row-major
// arrays, plus the world-space bounds the samples are pinned to.
//
// Samples sit at cell centers. The drawn rect of a cell is centered on its
// sample, so cell (row, col) covers a cellSize square shifted by -cellSize/2
// from the sample position.
package mapgrid

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"mapengine/geometry"
)

// Error kinds surfaced to the host. Layers test with errors.Is and keep
// rendering the remaining layers.
var (
	ErrMissingGrid       = errors.New("no grid loaded")
	ErrDimensionMismatch = errors.New("grid array length does not match rows*cols")
	ErrDegenerateBounds  = errors.New("grid bounds have zero extent")
)

// FlatThreshold is the height spread below which the field counts as flat and
// contouring produces no output.
const FlatThreshold = 0.1

// Grid is the unified sample grid. The structural fields (Rows, Cols,
// CellSize, Bounds) are fixed at construction; the four sample arrays are
// mutable through the brush editor, which bumps the version counter on every
// committed batch.
type Grid struct {
	Rows     int
	Cols     int
	CellSize float64
	Bounds   geometry.Rect

	// Heights is real-valued elevation, by convention in [0,100] but not
	// enforced. Biomes holds small integer biome ids (0..255). Moisture and
	// Temperature are small ordinals (1..6 typical).
	Heights     []float64
	Biomes      []int
	Moisture    []int
	Temperature []int

	version uint64
}

// NewFlatGrid creates a zero-filled grid. A zero-extent bounds is defaulted
// from the grid shape so that bounds width == cols*cellSize.
func NewFlatGrid(rows, cols int, cellSize float64, bounds geometry.Rect) *Grid {
	if bounds.IsDegenerate() {
		bounds = geometry.Rect{
			MinX: 0, MinY: 0,
			MaxX: float64(cols) * cellSize,
			MaxY: float64(rows) * cellSize,
		}
	}
	n := rows * cols
	return &Grid{
		Rows:        rows,
		Cols:        cols,
		CellSize:    cellSize,
		Bounds:      bounds,
		Heights:     make([]float64, n),
		Biomes:      make([]int, n),
		Moisture:    make([]int, n),
		Temperature: make([]int, n),
	}
}

// Version returns the mutation counter. Brush strokes snapshot it at
// pointer-down and abort their commit if it moved underneath them.
func (g *Grid) Version() uint64 { return g.version }

// BumpVersion marks the grid as mutated.
func (g *Grid) BumpVersion() { g.version++ }

// Index converts (row, col) to the row-major array index.
func (g *Grid) Index(row, col int) int { return row*g.Cols + col }

// InBounds reports whether (row, col) addresses a valid cell.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// CellCenter returns the world position of the sample of cell (row, col).
func (g *Grid) CellCenter(row, col int) (x, y float64) {
	x = g.Bounds.MinX + (float64(col)+0.5)*g.CellSize
	y = g.Bounds.MinY + (float64(row)+0.5)*g.CellSize
	return x, y
}

// WorldToCell maps a world position to the cell whose drawn rect contains it.
// The result may be out of range; callers check with InBounds.
func (g *Grid) WorldToCell(x, y float64) (row, col int) {
	col = int(math.Floor((x - g.Bounds.MinX) / g.CellSize))
	row = int(math.Floor((y - g.Bounds.MinY) / g.CellSize))
	return row, col
}

// Validate checks the structural invariants: every sample array has length
// rows*cols, the bounds are non-degenerate, and the bounds extent matches the
// grid shape within half a cell of rounding slack.
func (g *Grid) Validate() error {
	if g == nil {
		return ErrMissingGrid
	}
	if g.Bounds.IsDegenerate() {
		return ErrDegenerateBounds
	}
	n := g.Rows * g.Cols
	for _, arr := range []struct {
		name string
		got  int
	}{
		{"heights", len(g.Heights)},
		{"biomes", len(g.Biomes)},
		{"moisture", len(g.Moisture)},
		{"temperature", len(g.Temperature)},
	} {
		if arr.got != n {
			return fmt.Errorf("%s has %d samples, want %d: %w", arr.name, arr.got, n, ErrDimensionMismatch)
		}
	}
	if math.Abs(g.Bounds.Width()-float64(g.Cols)*g.CellSize) > g.CellSize/2 {
		return fmt.Errorf("bounds width %.2f vs cols*cellSize %.2f: %w",
			g.Bounds.Width(), float64(g.Cols)*g.CellSize, ErrDegenerateBounds)
	}
	return nil
}

// HeightStats returns the observed min and max of the height field.
func (g *Grid) HeightStats() (min, max float64) {
	if len(g.Heights) == 0 {
		return 0, 0
	}
	return floats.Min(g.Heights), floats.Max(g.Heights)
}

// IsFlat reports whether the height field spread is below the contouring
// threshold.
func (g *Grid) IsFlat() bool {
	min, max := g.HeightStats()
	return max-min < FlatThreshold
}

// SampleHeight bilinearly interpolates the height field at a world position
// using the four nearest samples. Samples outside the grid contribute 0.
func (g *Grid) SampleHeight(x, y float64) float64 {
	// Continuous sample-space coordinates: sample (r, c) lives at (c+0.5, r+0.5).
	gx := (x-g.Bounds.MinX)/g.CellSize - 0.5
	gy := (y-g.Bounds.MinY)/g.CellSize - 0.5

	c0 := int(math.Floor(gx))
	r0 := int(math.Floor(gy))
	fx := gx - float64(c0)
	fy := gy - float64(r0)

	at := func(row, col int) float64 {
		if !g.InBounds(row, col) {
			return 0
		}
		return g.Heights[g.Index(row, col)]
	}

	h00 := at(r0, c0)
	h10 := at(r0, c0+1)
	h01 := at(r0+1, c0)
	h11 := at(r0+1, c0+1)

	top := h00 + (h10-h00)*fx
	bottom := h01 + (h11-h01)*fx
	return top + (bottom-top)*fy
}

// Package brush implements the operator's grid editing tools. A stroke opens
// at pointer-down, accumulates per-segment applications into overlay arrays,
// and commits atomically at pointer-up; the grid itself is untouched until
// the commit.
package brush

import (
	"errors"
	"log"
	"math"

	"mapengine/common"
	"mapengine/mapgrid"
)

// Tool selects what a stroke does to the grid.
type Tool int

const (
	ToolRaise Tool = iota
	ToolLower
	ToolFlatten
	ToolSmooth
	ToolRoughen
	ToolTempUp
	ToolTempDown
	ToolTempSet
	ToolMoistUp
	ToolMoistDown
	ToolMoistSet
)

// String names the tool for the toolbar and logs.
func (t Tool) String() string {
	switch t {
	case ToolRaise:
		return "raise"
	case ToolLower:
		return "lower"
	case ToolFlatten:
		return "flatten"
	case ToolSmooth:
		return "smooth"
	case ToolRoughen:
		return "roughen"
	case ToolTempUp:
		return "temp+"
	case ToolTempDown:
		return "temp-"
	case ToolTempSet:
		return "temp set"
	case ToolMoistUp:
		return "moist+"
	case ToolMoistDown:
		return "moist-"
	case ToolMoistSet:
		return "moist set"
	}
	return "unknown"
}

// ErrStrokeAborted is returned by Commit when the grid was replaced or
// mutated underneath the stroke; nothing is applied.
var ErrStrokeAborted = errors.New("stroke aborted: grid changed during stroke")

// raiseDelta is the height change of a full-strength raise/lower application.
const raiseDelta = 5.0

// Ordinal clamp range for temperature and moisture edits.
const (
	ordinalMin = 1
	ordinalMax = 5
)

// Editor holds the current brush configuration and the grid it edits.
type Editor struct {
	Radius   float64 // world units
	Strength float64 // [0,1]

	// FlattenTarget is the height the flatten tool pulls toward.
	FlattenTarget float64
	// OrdinalTarget is the value the temp/moist set tools write.
	OrdinalTarget int

	grid *mapgrid.Grid
}

// NewEditor creates a brush editor over the grid (may be nil; operations then
// warn and no-op).
func NewEditor(grid *mapgrid.Grid) *Editor {
	return &Editor{
		Radius:        64,
		Strength:      0.5,
		FlattenTarget: 50,
		OrdinalTarget: 3,
		grid:          grid,
	}
}

// SetGrid swaps the edited grid, e.g. after an import.
func (e *Editor) SetGrid(g *mapgrid.Grid) { e.grid = g }

// Stroke accumulates one pointer-down..pointer-up interaction. Overlays are
// parallel to the grid arrays and indexed by cell. The raise, lower and
// flatten tools add to the height overlay on every application, so passing
// over a cell twice in one stroke applies twice; the deferred tools (smooth,
// roughen, temperature, moisture) resolve each affected cell once at commit.
type Stroke struct {
	editor *Editor
	tool   Tool

	gridVersion uint64
	snapshot    []float64 // heights at stroke open, for smooth/roughen

	heightDelta []float64
	tempDelta   []int
	moistDelta  []int

	// affected tracks touched cells and the strongest falloff seen on each.
	affected map[int]float64
}

// BeginStroke opens a stroke with the given tool. Returns nil with a warning
// when no grid is loaded.
func (e *Editor) BeginStroke(tool Tool) *Stroke {
	if e.grid == nil {
		log.Printf("WARNING: brush %s ignored: %v", tool, mapgrid.ErrMissingGrid)
		return nil
	}
	n := e.grid.Rows * e.grid.Cols
	s := &Stroke{
		editor:      e,
		tool:        tool,
		gridVersion: e.grid.Version(),
		heightDelta: make([]float64, n),
		tempDelta:   make([]int, n),
		moistDelta:  make([]int, n),
		affected:    make(map[int]float64),
	}
	if tool == ToolSmooth || tool == ToolRoughen {
		s.snapshot = make([]float64, n)
		copy(s.snapshot, e.grid.Heights)
	}
	return s
}

// Apply records one brush application at a world position. Height tools write
// into the overlay immediately; smooth, roughen and the ordinal tools only
// record affected cells and are resolved at commit.
func (s *Stroke) Apply(worldX, worldY float64) {
	if s == nil {
		return
	}
	g := s.editor.grid
	row, col := g.WorldToCell(worldX, worldY)
	radius := s.editor.Radius / g.CellSize
	if radius <= 0 {
		return
	}
	span := int(math.Ceil(radius))

	for dr := -span; dr <= span; dr++ {
		for dc := -span; dc <= span; dc++ {
			r, c := row+dr, col+dc
			if !g.InBounds(r, c) {
				continue
			}
			d := math.Hypot(float64(dr), float64(dc))
			if d > radius {
				continue
			}
			falloff := 1 - d/radius
			strength := falloff * s.editor.Strength
			idx := g.Index(r, c)
			if strength > s.affected[idx] {
				s.affected[idx] = strength
			}

			switch s.tool {
			case ToolRaise:
				s.heightDelta[idx] += raiseDelta * strength
			case ToolLower:
				s.heightDelta[idx] -= raiseDelta * strength
			case ToolFlatten:
				current := g.Heights[idx] + s.heightDelta[idx]
				s.heightDelta[idx] += (s.editor.FlattenTarget - current) * strength
			}
		}
	}
}

// Commit resolves the deferred tools and applies the overlays to the grid in
// one batch. Commits against a grid that changed since BeginStroke are
// dropped (ErrStrokeAborted); partial application never happens.
func (s *Stroke) Commit() error {
	if s == nil {
		return nil
	}
	g := s.editor.grid
	if g == nil {
		return mapgrid.ErrMissingGrid
	}
	if g.Version() != s.gridVersion {
		log.Printf("WARNING: %v", ErrStrokeAborted)
		return ErrStrokeAborted
	}

	switch s.tool {
	case ToolSmooth:
		for idx := range s.affected {
			r, c := idx/g.Cols, idx%g.Cols
			avg := neighborhoodAverage(s.snapshot, g.Rows, g.Cols, r, c)
			s.heightDelta[idx] += (avg - s.snapshot[idx]) * (0.5 * s.editor.Strength)
		}
	case ToolRoughen:
		for idx := range s.affected {
			r, c := idx/g.Cols, idx%g.Cols
			avg := neighborhoodAverage(s.snapshot, g.Rows, g.Cols, r, c)
			s.heightDelta[idx] += (s.snapshot[idx]-avg)*(0.3*s.editor.Strength) +
				common.RandomBetweenFloat(-1, 1)*(0.4*s.editor.Strength)
		}
	case ToolTempUp, ToolTempDown, ToolTempSet:
		for idx := range s.affected {
			s.tempDelta[idx] = s.ordinalChange(g.Temperature[idx])
		}
	case ToolMoistUp, ToolMoistDown, ToolMoistSet:
		for idx := range s.affected {
			s.moistDelta[idx] = s.ordinalChange(g.Moisture[idx])
		}
	}

	for idx := range s.affected {
		if d := s.heightDelta[idx]; d != 0 {
			g.Heights[idx] += d
			if g.Heights[idx] < 0 {
				g.Heights[idx] = 0
			}
		}
		if d := s.tempDelta[idx]; d != 0 {
			g.Temperature[idx] = clampOrdinal(g.Temperature[idx] + d)
		}
		if d := s.moistDelta[idx]; d != 0 {
			g.Moisture[idx] = clampOrdinal(g.Moisture[idx] + d)
		}
	}
	g.BumpVersion()
	return nil
}

// ordinalChange computes the delta a discrete tool applies to the current
// ordinal value.
func (s *Stroke) ordinalChange(current int) int {
	switch s.tool {
	case ToolTempUp, ToolMoistUp:
		return clampOrdinal(current+1) - current
	case ToolTempDown, ToolMoistDown:
		return clampOrdinal(current-1) - current
	case ToolTempSet, ToolMoistSet:
		return clampOrdinal(s.editor.OrdinalTarget) - current
	}
	return 0
}

func clampOrdinal(v int) int {
	if v < ordinalMin {
		return ordinalMin
	}
	if v > ordinalMax {
		return ordinalMax
	}
	return v
}

// neighborhoodAverage returns the mean of the 3x3 neighborhood clipped to the
// grid.
func neighborhoodAverage(heights []float64, rows, cols, row, col int) float64 {
	sum, n := 0.0, 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			r, c := row+dr, col+dc
			if r < 0 || r >= rows || c < 0 || c >= cols {
				continue
			}
			sum += heights[r*cols+c]
			n++
		}
	}
	return sum / float64(n)
}

// GlobalSmooth applies k iterations of 3x3 averaging over the whole grid,
// blending each pass by strength in (0,1]. With strength 1.0 the field's
// total variation decreases monotonically.
func GlobalSmooth(g *mapgrid.Grid, iterations int, strength float64) error {
	if g == nil {
		log.Printf("WARNING: global smooth ignored: %v", mapgrid.ErrMissingGrid)
		return mapgrid.ErrMissingGrid
	}
	if strength <= 0 {
		return nil
	}
	if strength > 1 {
		strength = 1
	}
	buf := make([]float64, len(g.Heights))
	for it := 0; it < iterations; it++ {
		for r := 0; r < g.Rows; r++ {
			for c := 0; c < g.Cols; c++ {
				idx := g.Index(r, c)
				avg := neighborhoodAverage(g.Heights, g.Rows, g.Cols, r, c)
				buf[idx] = g.Heights[idx] + (avg-g.Heights[idx])*strength
			}
		}
		copy(g.Heights, buf)
	}
	g.BumpVersion()
	return nil
}

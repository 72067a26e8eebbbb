package rendering

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"mapengine/common"
	"mapengine/config"
	"mapengine/contour"
	"mapengine/mapgrid"
)

// HeightsMode selects how the height layer renders.
type HeightsMode int

const (
	HeightsOff HeightsMode = iota
	HeightsContoursBW
	HeightsContours
	HeightsCells
)

// String names the mode for the command surface.
func (m HeightsMode) String() string {
	switch m {
	case HeightsOff:
		return "off"
	case HeightsContoursBW:
		return "contours-bw"
	case HeightsContours:
		return "contours"
	case HeightsCells:
		return "cells"
	}
	return "unknown"
}

// contour color ramp anchors, low to high
var rampColors = [5]common.RGB{
	0x2060c0, // blue
	0x30a050, // green
	0xd8d040, // yellow
	0xe08830, // orange
	0xc83030, // red
}

// ContourRampColor interpolates blue -> green -> yellow -> orange -> red
// across the normalized level t in [0,1].
func ContourRampColor(t float64) common.RGB {
	switch {
	case t < 0.25:
		return common.LerpRGB(rampColors[0], rampColors[1], t/0.25)
	case t < 0.5:
		return common.LerpRGB(rampColors[1], rampColors[2], (t-0.25)/0.25)
	case t < 0.75:
		return common.LerpRGB(rampColors[2], rampColors[3], (t-0.5)/0.25)
	default:
		return common.LerpRGB(rampColors[3], rampColors[4], (t-0.75)/0.25)
	}
}

// HeightLayer renders iso-contours of the height field with downslope
// hachures, or a grayscale cell view.
type HeightLayer struct {
	Grid *mapgrid.Grid
	Mode HeightsMode

	// ContourAlpha is the base opacity of contour strokes (the
	// heightContourAlpha setting).
	ContourAlpha float64
}

// Render emits the layer. A flat height field produces no output and no
// error.
func (l *HeightLayer) Render(cv Canvas) error {
	if l.Mode == HeightsOff {
		return nil
	}
	if l.Grid == nil {
		return mapgrid.ErrMissingGrid
	}
	if err := l.Grid.Validate(); err != nil {
		return err
	}
	if l.Mode == HeightsCells {
		l.renderCells(cv)
		return nil
	}

	g := l.Grid
	min, max := g.HeightStats()
	if max-min < mapgrid.FlatThreshold {
		return nil
	}

	cv.BeginLayer("height-contours", ZHeightContour)
	defer cv.EndLayer()

	// Sample (0,0) of the height field sits at the center of cell (0,0).
	origin := mgl64.Vec2{
		g.Bounds.MinX + 0.5*g.CellSize,
		g.Bounds.MinY + 0.5*g.CellSize,
	}

	for i := 1; i <= config.ContourLevels; i++ {
		level := min + (max-min)*float64(i)/float64(config.ContourLevels)
		t := float64(i) / float64(config.ContourLevels)

		segs := contour.MarchingSquares(g.Heights, g.Rows, g.Cols, origin, g.CellSize, level, false)
		if len(segs) == 0 {
			continue
		}

		for _, s := range segs {
			pts := []mgl64.Vec2{s.A, s.B}
			if l.Mode == HeightsContoursBW {
				cv.Stroke(0x000000, l.ContourAlpha, 1.5, pts, false)
			} else {
				// Dark outline under a colored core line.
				cv.Stroke(0x101010, 0.75*l.ContourAlpha, 2.0, pts, false)
				cv.Stroke(ContourRampColor(t), l.ContourAlpha, 1.0, pts, false)
			}
		}

		l.renderHachures(cv, segs, level)
	}
	return nil
}

// renderHachures drops short perpendicular ticks along each contour segment
// pointing downslope. The slope side is decided by probing the height field a
// couple of cells out on both perpendiculars.
func (l *HeightLayer) renderHachures(cv Canvas, segs []contour.Segment, level float64) {
	g := l.Grid
	probe := config.HachureProbeCells * g.CellSize

	for _, s := range segs {
		dir := s.B.Sub(s.A)
		length := dir.Len()
		if length < config.MinHachureSegmentLength {
			continue
		}
		unit := dir.Mul(1 / length)
		perp := mgl64.Vec2{-unit.Y(), unit.X()}

		for d := 0.0; d <= length; d += config.HachureSpacing {
			at := s.A.Add(unit.Mul(d))
			side := at.Add(perp.Mul(probe))
			opposite := at.Sub(perp.Mul(probe))
			hSide := g.SampleHeight(side.X(), side.Y())
			hOpposite := g.SampleHeight(opposite.X(), opposite.Y())

			// Prefer the side that is below threshold while the other is
			// above; otherwise just take the lower one.
			down := perp
			if hSide < level && hOpposite >= level {
				down = perp
			} else if hOpposite < level && hSide >= level {
				down = perp.Mul(-1)
			} else if hOpposite < hSide {
				down = perp.Mul(-1)
			}

			mark := at.Add(down.Mul(config.HachureLength))
			cv.Stroke(0x000000, 0.875*l.ContourAlpha, 1.0, []mgl64.Vec2{at, mark}, false)
		}
	}
}

// renderCells draws a grayscale cell view of the height field.
func (l *HeightLayer) renderCells(cv Canvas) {
	g := l.Grid
	min, max := g.HeightStats()
	span := max - min
	if span <= 0 {
		span = 1
	}
	cv.BeginLayer("height-cells", ZHeightContour)
	defer cv.EndLayer()
	half := g.CellSize / 2
	for idx, h := range g.Heights {
		shade := uint32(math.Round(255 * (h - min) / span))
		gray := common.RGB(shade<<16 | shade<<8 | shade)
		cx, cy := g.CellCenter(idx/g.Cols, idx%g.Cols)
		cv.Fill(gray, 0.85, Polygon{Outer: []mgl64.Vec2{
			{cx - half, cy - half},
			{cx + half, cy - half},
			{cx + half, cy + half},
			{cx - half, cy + half},
		}})
	}
}

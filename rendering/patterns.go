package rendering

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"mapengine/biome"
	"mapengine/common"
	"mapengine/geometry"
)

// spotSeedOffset is folded into the spots PRNG seed together with the biome
// id. The value is arbitrary but fixed: the same biome always gets the same
// spot placement.
const spotSeedOffset = 7919

// wave shape constants, in cell-size multiples
const (
	waveAmplitudeFactor = 0.25
	waveLengthCells     = 4.0
	waveSampleStepCells = 0.5
)

// spots placement constants
const (
	spotProbability  = 0.7
	spotJitterFactor = 0.4
)

// DrawPattern emits the decorative pattern of one biome shape through the
// canvas. The caller is expected to have the clip mask set; primitives are
// generated across the shape's bounding box and rely on the mask to stay
// inside the outline. outline is the smoothed contour vertex set used for
// centroid-anchored patterns.
func DrawPattern(cv Canvas, cfg biome.PatternConfig, base common.RGB, bounds geometry.Rect,
	outline []mgl64.Vec2, cellSize float64, biomeID int) {

	cfg = cfg.Normalized()
	color := cfg.StrokeColor(base)
	alpha := cfg.Opacity
	spacing := cfg.Spacing * cellSize
	lineWidth := cfg.LineWidth * cellSize

	switch cfg.Type {
	case biome.PatternDiagonal:
		drawParallels(cv, color, alpha, lineWidth, bounds, math.Pi/4, spacing)
	case biome.PatternCrosshatch:
		drawParallels(cv, color, alpha, lineWidth, bounds, math.Pi/4, spacing)
		drawParallels(cv, color, alpha, lineWidth, bounds, -math.Pi/4, spacing)
	case biome.PatternVertical:
		drawParallels(cv, color, alpha, lineWidth, bounds, math.Pi/2, spacing)
	case biome.PatternHorizontal:
		drawParallels(cv, color, alpha, lineWidth, bounds, 0, spacing)
	case biome.PatternDots:
		drawDots(cv, color, alpha, bounds, spacing, lineWidth)
	case biome.PatternCircles:
		drawConcentric(cv, color, alpha, lineWidth, outline, spacing)
	case biome.PatternWaves:
		drawWaves(cv, color, alpha, lineWidth, bounds, spacing, cellSize)
	case biome.PatternHexagons:
		drawHexagons(cv, color, alpha, lineWidth, bounds, spacing)
	case biome.PatternSpots:
		drawSpots(cv, color, alpha, bounds, spacing, lineWidth, biomeID)
	}
}

// drawParallels covers the bounding box with lines of the given angle spaced
// along the perpendicular. Lines overshoot the box; the mask clips them.
func drawParallels(cv Canvas, color common.RGB, alpha, width float64, bounds geometry.Rect, angle, spacing float64) {
	if spacing <= 0 || bounds.IsDegenerate() {
		return
	}
	dir := mgl64.Vec2{math.Cos(angle), math.Sin(angle)}
	perp := mgl64.Vec2{-dir.Y(), dir.X()}
	center := mgl64.Vec2{(bounds.MinX + bounds.MaxX) / 2, (bounds.MinY + bounds.MaxY) / 2}
	half := math.Hypot(bounds.Width(), bounds.Height()) / 2

	n := int(math.Ceil(half/spacing)) + 1
	for i := -n; i <= n; i++ {
		base := center.Add(perp.Mul(float64(i) * spacing))
		a := base.Sub(dir.Mul(half))
		b := base.Add(dir.Mul(half))
		cv.Stroke(color, alpha, width, []mgl64.Vec2{a, b}, false)
	}
}

func drawDots(cv Canvas, color common.RGB, alpha float64, bounds geometry.Rect, spacing, radius float64) {
	if spacing <= 0 {
		return
	}
	for y := bounds.MinY; y <= bounds.MaxY; y += spacing {
		for x := bounds.MinX; x <= bounds.MaxX; x += spacing {
			cv.Circle(color, alpha, mgl64.Vec2{x, y}, radius, true)
		}
	}
}

// drawConcentric rings around the mean of the contour vertices, stepping by
// spacing out to the farthest vertex.
func drawConcentric(cv Canvas, color common.RGB, alpha, width float64, outline []mgl64.Vec2, spacing float64) {
	if len(outline) == 0 || spacing <= 0 {
		return
	}
	center := geometry.MeanPoint(outline)
	maxR := 0.0
	for _, p := range outline {
		if d := p.Sub(center).Len(); d > maxR {
			maxR = d
		}
	}
	for r := spacing; r <= maxR; r += spacing {
		cv.Circle(color, alpha, center, r, false)
	}
}

func drawWaves(cv Canvas, color common.RGB, alpha, width float64, bounds geometry.Rect, spacing, cellSize float64) {
	if spacing <= 0 || cellSize <= 0 {
		return
	}
	amplitude := spacing * waveAmplitudeFactor
	wavelength := waveLengthCells * cellSize
	step := waveSampleStepCells * cellSize

	for y := bounds.MinY; y <= bounds.MaxY; y += spacing {
		var pts []mgl64.Vec2
		for x := bounds.MinX; x <= bounds.MaxX+step/2; x += step {
			pts = append(pts, mgl64.Vec2{
				x,
				y + amplitude*math.Sin(2*math.Pi*(x-bounds.MinX)/wavelength),
			})
		}
		if len(pts) >= 2 {
			cv.Stroke(color, alpha, width, pts, false)
		}
	}
}

// drawHexagons tiles a flat-top hexagon lattice: column pitch 1.5*size, row
// pitch sqrt(3)*size, every other column shifted by half the row pitch.
func drawHexagons(cv Canvas, color common.RGB, alpha, width float64, bounds geometry.Rect, size float64) {
	if size <= 0 {
		return
	}
	colPitch := 1.5 * size
	rowPitch := math.Sqrt(3) * size

	col := 0
	for x := bounds.MinX; x <= bounds.MaxX+colPitch; x += colPitch {
		offset := 0.0
		if col%2 == 1 {
			offset = rowPitch / 2
		}
		for y := bounds.MinY + offset; y <= bounds.MaxY+rowPitch; y += rowPitch {
			cv.Stroke(color, alpha, width, hexagonAt(mgl64.Vec2{x, y}, size), true)
		}
		col++
	}
}

func hexagonAt(center mgl64.Vec2, size float64) []mgl64.Vec2 {
	pts := make([]mgl64.Vec2, 6)
	for k := 0; k < 6; k++ {
		a := float64(k) * math.Pi / 3
		pts[k] = mgl64.Vec2{center.X() + size*math.Cos(a), center.Y() + size*math.Sin(a)}
	}
	return pts
}

// drawSpots scatters pseudo-random filled circles on a perturbed lattice.
// The LCG is seeded from the biome id, so the layout is deterministic per
// biome and stable across renders.
func drawSpots(cv Canvas, color common.RGB, alpha float64, bounds geometry.Rect, spacing, lineWidth float64, biomeID int) {
	if spacing <= 0 {
		return
	}
	rng := common.NewLCG(int64(biomeID) + spotSeedOffset)
	for y := bounds.MinY; y <= bounds.MaxY; y += spacing {
		for x := bounds.MinX; x <= bounds.MaxX; x += spacing {
			if rng.Next() >= spotProbability {
				continue
			}
			jx := rng.NextBetween(-spotJitterFactor, spotJitterFactor) * spacing
			jy := rng.NextBetween(-spotJitterFactor, spotJitterFactor) * spacing
			radius := rng.NextBetween(0.5, 1.5) * lineWidth
			cv.Circle(color, alpha, mgl64.Vec2{x + jx, y + jy}, radius, true)
		}
	}
}

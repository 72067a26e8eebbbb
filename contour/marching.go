// Package contour implements the grid-to-outline pipeline shared by the biome
// and height layers: marching-squares segment extraction, stitching of
// segment soup into ordered paths, Chaikin smoothing, polygon nesting, and
// flood-fill speckle removal on binary masks.
package contour

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Segment is one iso-line piece confined to a single cell of the sample
// lattice. Endpoints lie exactly on cell edges.
type Segment struct {
	A, B     mgl64.Vec2
	Row, Col int
}

// interpEpsilon guards the edge interpolation against near-equal corner
// values; below it the midpoint is used.
const interpEpsilon = 1e-4

// MarchingSquares extracts iso-line segments at the given threshold from a
// rows x cols sample field. origin is the world position of sample (0, 0) and
// step the world distance between adjacent samples.
//
// In binary mode edge crossings collapse to edge midpoints, which is what the
// biome mask pipeline wants; otherwise crossings are linearly interpolated for
// smooth scalar contours. Cells with all corners on one side emit nothing;
// the two saddle cases emit two segments each.
func MarchingSquares(field []float64, rows, cols int, origin mgl64.Vec2, step, threshold float64, binary bool) []Segment {
	if rows < 2 || cols < 2 || len(field) < rows*cols {
		return nil
	}

	interp := func(v1, v2 float64) float64 {
		if binary {
			return 0.5
		}
		d := v2 - v1
		if d < interpEpsilon && d > -interpEpsilon {
			return 0.5
		}
		t := (threshold - v1) / d
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
		return t
	}

	var segs []Segment
	for r := 0; r < rows-1; r++ {
		for c := 0; c < cols-1; c++ {
			v00 := field[r*cols+c]       // top-left
			v10 := field[r*cols+c+1]     // top-right
			v11 := field[(r+1)*cols+c+1] // bottom-right
			v01 := field[(r+1)*cols+c]   // bottom-left

			caseIdx := 0
			if v00 >= threshold {
				caseIdx |= 1
			}
			if v10 >= threshold {
				caseIdx |= 2
			}
			if v11 >= threshold {
				caseIdx |= 4
			}
			if v01 >= threshold {
				caseIdx |= 8
			}
			if caseIdx == 0 || caseIdx == 15 {
				continue
			}

			x0 := origin.X() + float64(c)*step
			y0 := origin.Y() + float64(r)*step

			top := func() mgl64.Vec2 {
				return mgl64.Vec2{x0 + interp(v00, v10)*step, y0}
			}
			bottom := func() mgl64.Vec2 {
				return mgl64.Vec2{x0 + interp(v01, v11)*step, y0 + step}
			}
			left := func() mgl64.Vec2 {
				return mgl64.Vec2{x0, y0 + interp(v00, v01)*step}
			}
			right := func() mgl64.Vec2 {
				return mgl64.Vec2{x0 + step, y0 + interp(v10, v11)*step}
			}

			emit := func(a, b mgl64.Vec2) {
				segs = append(segs, Segment{A: a, B: b, Row: r, Col: c})
			}

			switch caseIdx {
			case 1, 14:
				emit(left(), top())
			case 2, 13:
				emit(top(), right())
			case 3, 12:
				emit(left(), right())
			case 4, 11:
				emit(right(), bottom())
			case 6, 9:
				emit(top(), bottom())
			case 7, 8:
				emit(left(), bottom())
			case 5: // saddle: top-left and bottom-right above
				emit(left(), top())
				emit(right(), bottom())
			case 10: // saddle: top-right and bottom-left above
				emit(top(), right())
				emit(left(), bottom())
			}
		}
	}
	return segs
}

// MaskToField converts a binary mask to the float field marching squares
// consumes, with an optional padding border of zeros around it. Padding
// guarantees closed contours at the mask edge.
func MaskToField(mask []uint8, rows, cols, pad int) ([]float64, int, int) {
	prows := rows + 2*pad
	pcols := cols + 2*pad
	field := make([]float64, prows*pcols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if mask[r*cols+c] != 0 {
				field[(r+pad)*pcols+(c+pad)] = 1
			}
		}
	}
	return field, prows, pcols
}

package mapgrid

import (
	"fmt"
	"log"

	"mapengine/geometry"
)

// ImportedGrid is the normalized form handed over by an external map importer
// (e.g. a third-party JSON document). Either Biomes is authoritative, or
// Moisture and Temperature are present and biome ids get resolved later; both
// cases are supported downstream.
type ImportedGrid struct {
	Rows        int       `json:"rows"`
	Cols        int       `json:"cols"`
	CellSize    float64   `json:"cellSize"`
	MinX        float64   `json:"minX"`
	MinY        float64   `json:"minY"`
	Heights     []float64 `json:"heights"`
	Biomes      []int     `json:"biomes,omitempty"`
	Moisture    []int     `json:"moisture,omitempty"`
	Temperature []int     `json:"temperature,omitempty"`
}

// FromImport validates an import and normalizes it into a Grid. Missing
// optional arrays are zero-filled; present arrays with the wrong length fail
// with a DimensionMismatch naming the field. Moisture and temperature ordinals
// are clamped into 0..6.
func FromImport(in ImportedGrid) (*Grid, error) {
	if in.Rows <= 0 || in.Cols <= 0 || in.CellSize <= 0 {
		return nil, fmt.Errorf("import shape %dx%d cell %.2f: %w",
			in.Rows, in.Cols, in.CellSize, ErrDegenerateBounds)
	}
	n := in.Rows * in.Cols
	if len(in.Heights) != n {
		return nil, fmt.Errorf("imported heights has %d samples, want %d: %w",
			len(in.Heights), n, ErrDimensionMismatch)
	}

	g := NewFlatGrid(in.Rows, in.Cols, in.CellSize, boundsFor(in))
	copy(g.Heights, in.Heights)

	if err := copyOrZero("biomes", in.Biomes, g.Biomes, n); err != nil {
		return nil, err
	}
	if err := copyOrZero("moisture", in.Moisture, g.Moisture, n); err != nil {
		return nil, err
	}
	if err := copyOrZero("temperature", in.Temperature, g.Temperature, n); err != nil {
		return nil, err
	}
	clampOrdinals(g.Moisture)
	clampOrdinals(g.Temperature)

	if len(in.Biomes) == 0 && len(in.Moisture) == 0 {
		log.Printf("WARNING: import carries neither biomes nor moisture/temperature; biome layer will render a single biome")
	}
	return g, nil
}

func boundsFor(in ImportedGrid) geometry.Rect {
	return geometry.Rect{
		MinX: in.MinX,
		MinY: in.MinY,
		MaxX: in.MinX + float64(in.Cols)*in.CellSize,
		MaxY: in.MinY + float64(in.Rows)*in.CellSize,
	}
}

func copyOrZero(name string, src, dst []int, n int) error {
	if len(src) == 0 {
		return nil
	}
	if len(src) != n {
		return fmt.Errorf("imported %s has %d samples, want %d: %w", name, len(src), n, ErrDimensionMismatch)
	}
	copy(dst, src)
	return nil
}

func clampOrdinals(vals []int) {
	for i, v := range vals {
		if v < 0 {
			vals[i] = 0
		} else if v > 6 {
			vals[i] = 6
		}
	}
}

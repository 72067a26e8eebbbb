package biome

// Resolver classifies a cell from its moisture and temperature ordinals, with
// elevation overriding toward mountain and glacier. It is the fallback path
// when the grid's biome array is not authoritative.
type Resolver struct {
	table *Table

	// matrix[moisture][temperature] -> biome id, ordinals clamped into 1..6.
	matrix [7][7]int

	// MountainHeight and GlacierHeight are elevation cutoffs applied after the
	// matrix lookup. Glacier additionally requires a cold cell.
	MountainHeight float64
	GlacierHeight  float64
}

// NewResolver builds a resolver over the given table with the default
// moisture x temperature classification.
func NewResolver(table *Table) *Resolver {
	r := &Resolver{
		table:          table,
		MountainHeight: 80,
		GlacierHeight:  92,
	}

	// Rows: moisture 1 (arid) .. 6 (wet). Cols: temperature 1 (cold) .. 6 (hot).
	defaults := [6][6]int{
		{Tundra, Tundra, Desert, Desert, Desert, Desert},
		{Tundra, Grassland, Grassland, Desert, Desert, Desert},
		{Tundra, Grassland, Grassland, Grassland, Grassland, Desert},
		{Tundra, Forest, Grassland, Grassland, Grassland, Grassland},
		{Tundra, Forest, Forest, Forest, Swamp, Swamp},
		{Glacier, Forest, Forest, Swamp, Swamp, Water},
	}
	for m := 1; m <= 6; m++ {
		for t := 1; t <= 6; t++ {
			r.matrix[m][t] = defaults[m-1][t-1]
		}
	}
	return r
}

// Resolve maps (moisture, temperature, height) to a biome id.
func (r *Resolver) Resolve(moisture, temperature int, height float64) int {
	if height >= r.GlacierHeight && temperature <= 2 {
		return Glacier
	}
	if height >= r.MountainHeight {
		return Mountain
	}
	return r.matrix[clampOrdinal(moisture)][clampOrdinal(temperature)]
}

// ResolveGrid fills dst with biome ids for every cell. When the biomes array
// already matches the cell count it is authoritative and copied through.
func (r *Resolver) ResolveGrid(biomes []int, moisture, temperature []int, heights []float64, cells int, dst []int) []int {
	if dst == nil {
		dst = make([]int, cells)
	}
	if len(biomes) == cells {
		copy(dst, biomes)
		return dst
	}
	for i := 0; i < cells; i++ {
		h := 0.0
		if i < len(heights) {
			h = heights[i]
		}
		m, t := 0, 0
		if i < len(moisture) {
			m = moisture[i]
		}
		if i < len(temperature) {
			t = temperature[i]
		}
		dst[i] = r.Resolve(m, t, h)
	}
	return dst
}

func clampOrdinal(v int) int {
	if v < 1 {
		return 1
	}
	if v > 6 {
		return 6
	}
	return v
}

package contour

// FilterSpeckle removes small 4-connected components from a binary mask:
// any component of zeros smaller than minZeros is flipped to ones, then any
// component of ones smaller than minOnes is flipped to zeros. Iteration is
// row-major; the input mask is not modified. A minimum size of 0 or 1
// disables the corresponding pass. The filter is idempotent.
func FilterSpeckle(mask []uint8, rows, cols, minOnes, minZeros int) []uint8 {
	out := make([]uint8, len(mask))
	copy(out, mask)
	if rows*cols != len(mask) {
		return out
	}
	filterPass(out, rows, cols, 0, minZeros)
	filterPass(out, rows, cols, 1, minOnes)
	return out
}

// filterPass flips every component of value v with size < minSize to 1-v.
func filterPass(mask []uint8, rows, cols int, v uint8, minSize int) {
	if minSize <= 1 {
		return
	}
	visited := make([]bool, len(mask))
	queue := make([]int, 0, 64)
	component := make([]int, 0, 64)

	for start := 0; start < len(mask); start++ {
		if visited[start] || mask[start] != v {
			continue
		}

		// BFS flood fill collecting the component.
		queue = append(queue[:0], start)
		component = component[:0]
		visited[start] = true
		for len(queue) > 0 {
			idx := queue[0]
			queue = queue[1:]
			component = append(component, idx)

			r, c := idx/cols, idx%cols
			for _, n := range [4][2]int{{r - 1, c}, {r + 1, c}, {r, c - 1}, {r, c + 1}} {
				nr, nc := n[0], n[1]
				if nr < 0 || nr >= rows || nc < 0 || nc >= cols {
					continue
				}
				nidx := nr*cols + nc
				if !visited[nidx] && mask[nidx] == v {
					visited[nidx] = true
					queue = append(queue, nidx)
				}
			}
		}

		if len(component) < minSize {
			for _, idx := range component {
				mask[idx] = 1 - v
			}
		}
	}
}

// Package spatial buckets 2D points into a uniform grid for neighbor queries.
package spatial

import "math"

// Hash groups point ids by grid cell using a counting sort.
//
// Build runs in three passes: count points per cell, turn the counts into
// start offsets, then scatter ids into one flat slice grouped by cell. The
// ids of cell c are ids[first[c]:first[c+1]].
type Hash struct {
	invSpacing float32
	cols, rows int

	counts []int32
	first  []int32 // len cols*rows+1, last entry is a guard
	ids    []int32
}

// NewHash creates a hash covering width×height with square cells of the
// given spacing, sized to hold up to capacity points.
func NewHash(width, height, spacing float32, capacity int) *Hash {
	inv := 1 / spacing
	cols := int(math.Floor(float64(width*inv))) + 1
	rows := int(math.Floor(float64(height*inv))) + 1
	if capacity < 0 {
		capacity = 0
	}
	return &Hash{
		invSpacing: inv,
		cols:       cols,
		rows:       rows,
		counts:     make([]int32, cols*rows),
		first:      make([]int32, cols*rows+1),
		ids:        make([]int32, capacity),
	}
}

// CellOf returns the cell containing (x, y), clamped to the grid.
func (h *Hash) CellOf(x, y float32) (cx, cy int) {
	cx = clampInt(int(math.Floor(float64(x*h.invSpacing))), 0, h.cols-1)
	cy = clampInt(int(math.Floor(float64(y*h.invSpacing))), 0, h.rows-1)
	return cx, cy
}

func (h *Hash) cellIndex(cx, cy int) int { return cx*h.rows + cy }

// Build buckets the first n points of pos, an x/y interleaved slice.
func (h *Hash) Build(pos []float32, n int) {
	if n > len(h.ids) {
		h.ids = make([]int32, n)
	}
	for i := range h.counts {
		h.counts[i] = 0
	}

	for i := 0; i < n; i++ {
		cx, cy := h.CellOf(pos[2*i], pos[2*i+1])
		h.counts[h.cellIndex(cx, cy)]++
	}

	// Running inclusive sums; the scatter below walks each one back down to
	// the cell's start offset.
	var sum int32
	for c, cnt := range h.counts {
		sum += cnt
		h.first[c] = sum
	}
	h.first[len(h.counts)] = sum

	for i := 0; i < n; i++ {
		cx, cy := h.CellOf(pos[2*i], pos[2*i+1])
		c := h.cellIndex(cx, cy)
		h.first[c]--
		h.ids[h.first[c]] = int32(i)
	}
}

// Bucket returns the ids stored in cell (cx, cy). The slice aliases internal
// storage and is valid until the next Build.
func (h *Hash) Bucket(cx, cy int) []int32 {
	c := h.cellIndex(cx, cy)
	return h.ids[h.first[c]:h.first[c+1]]
}

// Neighborhood returns the inclusive cell range of the 3×3 block around
// (cx, cy), clipped to the grid.
func (h *Hash) Neighborhood(cx, cy int) (x0, x1, y0, y1 int) {
	x0 = max(cx-1, 0)
	x1 = min(cx+1, h.cols-1)
	y0 = max(cy-1, 0)
	y1 = min(cy+1, h.rows-1)
	return x0, x1, y0, y1
}

// ForEachNear calls fn for every id bucketed in the 3×3 block of cells around
// the cell containing (x, y).
func (h *Hash) ForEachNear(x, y float32, fn func(id int)) {
	cx, cy := h.CellOf(x, y)
	x0, x1, y0, y1 := h.Neighborhood(cx, cy)
	for xi := x0; xi <= x1; xi++ {
		for yi := y0; yi <= y1; yi++ {
			for _, id := range h.Bucket(xi, yi) {
				fn(int(id))
			}
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

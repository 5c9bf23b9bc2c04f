package spatial

import (
	"sort"
	"testing"
)

func TestHashDimensions(t *testing.T) {
	h := NewHash(1, 0.5, 0.1, 8)
	if h.cols != 11 || h.rows != 6 {
		t.Errorf("expected 11x6 cells, got %dx%d", h.cols, h.rows)
	}
}

func TestHashBuildGroupsByCell(t *testing.T) {
	h := NewHash(1, 1, 0.25, 5)
	pos := []float32{
		0.1, 0.1, // cell (0,0)
		0.9, 0.9, // cell (3,3)
		0.2, 0.05, // cell (0,0)
		0.6, 0.1, // cell (2,0)
		0.12, 0.2, // cell (0,0)
	}
	h.Build(pos, 5)

	got := h.Bucket(0, 0)
	ids := make([]int, len(got))
	for i, id := range got {
		ids[i] = int(id)
	}
	sort.Ints(ids)
	if len(ids) != 3 || ids[0] != 0 || ids[1] != 2 || ids[2] != 4 {
		t.Errorf("bucket (0,0) = %v, want [0 2 4]", ids)
	}
	if len(h.Bucket(3, 3)) != 1 || h.Bucket(3, 3)[0] != 1 {
		t.Errorf("bucket (3,3) = %v, want [1]", h.Bucket(3, 3))
	}
	if len(h.Bucket(1, 1)) != 0 {
		t.Errorf("expected empty bucket (1,1)")
	}

	// Start offsets must be an exclusive prefix sum over cells.
	var total int32
	for c := 0; c < h.cols*h.rows; c++ {
		if h.first[c] != total {
			t.Fatalf("first[%d] = %d, want %d", c, h.first[c], total)
		}
		total += h.counts[c]
	}
	if h.first[len(h.first)-1] != 5 {
		t.Errorf("guard = %d, want 5", h.first[len(h.first)-1])
	}
}

func TestHashClampsOutsidePoints(t *testing.T) {
	h := NewHash(1, 1, 0.5, 2)
	h.Build([]float32{-3, -3, 9, 9}, 2)

	if len(h.Bucket(0, 0)) != 1 {
		t.Errorf("negative point should clamp into (0,0)")
	}
	if len(h.Bucket(h.cols-1, h.rows-1)) != 1 {
		t.Errorf("far point should clamp into last cell")
	}
}

func TestHashRebuildResets(t *testing.T) {
	h := NewHash(1, 1, 0.5, 2)
	h.Build([]float32{0.1, 0.1, 0.2, 0.2}, 2)
	h.Build([]float32{0.9, 0.9, 0.2, 0.2}, 1)

	if n := len(h.Bucket(0, 0)); n != 0 {
		t.Errorf("stale bucket (0,0): %d ids", n)
	}
}

func TestForEachNear(t *testing.T) {
	h := NewHash(1, 1, 0.1, 3)
	h.Build([]float32{
		0.55, 0.55,
		0.62, 0.48, // adjacent cell
		0.95, 0.95, // far away
	}, 3)

	var seen []int
	h.ForEachNear(0.55, 0.55, func(id int) { seen = append(seen, id) })
	sort.Ints(seen)

	if len(seen) != 2 || seen[0] != 0 || seen[1] != 1 {
		t.Errorf("neighbors = %v, want [0 1]", seen)
	}
}

func TestNeighborhoodClipsAtEdges(t *testing.T) {
	h := NewHash(1, 1, 0.25, 1)
	x0, x1, y0, y1 := h.Neighborhood(0, h.rows-1)
	if x0 != 0 || x1 != 1 || y0 != h.rows-2 || y1 != h.rows-1 {
		t.Errorf("got (%d..%d, %d..%d)", x0, x1, y0, y1)
	}
}

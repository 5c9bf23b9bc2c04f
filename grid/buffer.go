// Package grid provides owned 2D buffers for simulation fields.
//
// Buffers are stored column-major (x outer, y inner) so that a cell (x, y)
// lives at index x*H + y. Cell indices come from Index; hot loops reach the
// x neighbours of a cell at ±Stride and the y neighbours at ±1.
package grid

import "fmt"

// Buffer stores a W×H grid of values.
type Buffer[T any] struct {
	W, H int
	data []T
}

// NewBuffer allocates a zeroed buffer with the given dimensions.
func NewBuffer[T any](w, h int) *Buffer[T] {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Buffer[T]{W: w, H: h, data: make([]T, w*h)}
}

// Index returns the linear slice index for cell (x, y).
func (b *Buffer[T]) Index(x, y int) int { return x*b.H + y }

// Stride returns the index distance between cells (x, y) and (x+1, y).
func (b *Buffer[T]) Stride() int { return b.H }

// InBounds reports whether (x, y) addresses a cell of the buffer.
func (b *Buffer[T]) InBounds(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// At returns the value at (x, y). It panics on out-of-range coordinates.
func (b *Buffer[T]) At(x, y int) T {
	b.check(x, y)
	return b.data[b.Index(x, y)]
}

// Set stores v at (x, y). It panics on out-of-range coordinates.
func (b *Buffer[T]) Set(x, y int, v T) {
	b.check(x, y)
	b.data[b.Index(x, y)] = v
}

// Data exposes the backing slice so hot loops can index it directly.
func (b *Buffer[T]) Data() []T { return b.data }

// Fill sets every cell to v.
func (b *Buffer[T]) Fill(v T) {
	for i := range b.data {
		b.data[i] = v
	}
}

// CopyFrom overwrites b with the contents of src. Both buffers must have the
// same dimensions.
func (b *Buffer[T]) CopyFrom(src *Buffer[T]) {
	if src.W != b.W || src.H != b.H {
		panic(fmt.Sprintf("grid: copy %dx%d into %dx%d", src.W, src.H, b.W, b.H))
	}
	copy(b.data, src.data)
}

func (b *Buffer[T]) check(x, y int) {
	if b.InBounds(x, y) {
		return
	}
	if x < 0 || x >= b.W {
		panic(fmt.Sprintf("invalid x-index: %d", x))
	}
	if y < 0 || y >= b.H {
		panic(fmt.Sprintf("invalid y-index: %d", y))
	}
}

// Field is a float32 buffer used for velocities, pressure, openness and density.
type Field struct {
	Buffer[float32]
}

// NewField allocates a zeroed W×H float field.
func NewField(w, h int) *Field {
	return &Field{Buffer: *NewBuffer[float32](w, h)}
}

// Add accumulates v into (x, y).
func (f *Field) Add(x, y int, v float32) {
	f.check(x, y)
	f.data[f.Index(x, y)] += v
}

// CopyFrom overwrites f with the contents of src.
func (f *Field) CopyFrom(src *Field) {
	f.Buffer.CopyFrom(&src.Buffer)
}

package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferIndexIsColumnMajor(t *testing.T) {
	b := NewBuffer[int](4, 3)
	assert.Equal(t, 0, b.Index(0, 0))
	assert.Equal(t, 1, b.Index(0, 1))
	assert.Equal(t, 3, b.Index(1, 0))
	assert.Equal(t, 11, b.Index(3, 2))
	assert.Len(t, b.Data(), 12)
}

func TestBufferSetAt(t *testing.T) {
	b := NewBuffer[float32](3, 3)
	b.Set(2, 1, 7)
	assert.Equal(t, float32(7), b.At(2, 1))
	assert.Equal(t, float32(7), b.Data()[b.Index(2, 1)])
}

func TestBufferStrideStepsOneColumn(t *testing.T) {
	b := NewBuffer[float32](4, 3)
	assert.Equal(t, 3, b.Stride())
	assert.Equal(t, b.Index(2, 1), b.Index(1, 1)+b.Stride())
	assert.Equal(t, b.Index(1, 2), b.Index(1, 1)+1)
}

func TestBufferOutOfRangePanics(t *testing.T) {
	b := NewBuffer[float32](2, 2)
	assert.PanicsWithValue(t, "invalid x-index: 2", func() { b.At(2, 0) })
	assert.PanicsWithValue(t, "invalid y-index: -1", func() { b.Set(0, -1, 1) })
	assert.False(t, b.InBounds(-1, 0))
	assert.True(t, b.InBounds(1, 1))
}

func TestBufferNonPositiveDimensions(t *testing.T) {
	b := NewBuffer[uint8](0, -3)
	assert.Equal(t, 1, b.W)
	assert.Equal(t, 1, b.H)
}

func TestFieldAddFillCopy(t *testing.T) {
	f := NewField(3, 2)
	f.Add(1, 1, 0.5)
	f.Add(1, 1, 0.25)
	assert.InDelta(t, 0.75, f.At(1, 1), 1e-7)

	g := NewField(3, 2)
	g.CopyFrom(f)
	assert.Equal(t, f.Data(), g.Data())

	f.Fill(2)
	for _, v := range f.Data() {
		require.Equal(t, float32(2), v)
	}
	assert.InDelta(t, 0.75, g.At(1, 1), 1e-7, "copy must not alias")
}

func TestFieldCopyMismatchPanics(t *testing.T) {
	assert.Panics(t, func() { NewField(2, 2).CopyFrom(NewField(3, 2)) })
}

func TestCellsDefaultAndString(t *testing.T) {
	c := NewCells(2, 2)
	assert.Equal(t, Fluid, c.At(0, 0))
	c.Fill(Air)
	c.Set(1, 0, Solid)
	assert.Equal(t, "air", c.At(0, 0).String())
	assert.Equal(t, "solid", c.At(1, 0).String())
	assert.Equal(t, "unknown", CellType(9).String())
}

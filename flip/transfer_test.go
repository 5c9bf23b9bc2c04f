package flip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/flip/grid"
)

// uniformBlock seeds a dense square of particles around the tank centre, all
// moving with (vx, vy).
func uniformBlock(t *testing.T, vx, vy float32) *Fluid {
	t.Helper()
	var pos []float32
	for x := float32(0.3); x < 0.7; x += 0.02 {
		for y := float32(0.3); y < 0.7; y += 0.02 {
			pos = append(pos, x, y)
		}
	}
	f := newOpenFluid(t, 0.01, len(pos)/2)
	for i := 0; i < f.NumX; i++ {
		for j := 0; j < f.NumY; j++ {
			f.SetSolid(i, j, i == 0 || i == f.NumX-1 || j == 0 || j == f.NumY-1)
		}
	}
	require.NoError(t, f.SeedParticles(pos))
	for i := 0; i < f.NumParticles; i++ {
		f.Vel[2*i] = vx
		f.Vel[2*i+1] = vy
	}
	return f
}

func TestTransferToGridClassifiesCells(t *testing.T) {
	f := uniformBlock(t, 0, 0)
	f.TransferToGrid()

	assert.Equal(t, grid.Solid, f.Types.At(0, 5))
	assert.Equal(t, grid.Solid, f.Types.At(5, f.NumY-1))
	assert.Equal(t, grid.Fluid, f.Types.At(5, 5))
	assert.Equal(t, grid.Air, f.Types.At(2, 8))
}

func TestTransferUniformFieldPIC(t *testing.T) {
	f := uniformBlock(t, 1, 0.5)

	f.TransferToGrid()
	assert.InDelta(t, 1, f.U.At(5, 5), 1e-5)
	assert.InDelta(t, 0.5, f.V.At(5, 5), 1e-5)

	for i := range f.Velocities() {
		f.Vel[i] = 0
	}
	f.TransferToParticles(0)

	for i := 0; i < f.NumParticles; i++ {
		x, y := f.Pos[2*i], f.Pos[2*i+1]
		if x < 0.42 || x > 0.58 || y < 0.42 || y > 0.58 {
			continue
		}
		assert.InDelta(t, 1, f.Vel[2*i], 1e-4, "particle %d", i)
		assert.InDelta(t, 0.5, f.Vel[2*i+1], 1e-4, "particle %d", i)
	}
}

func TestTransferPureFLIPKeepsVelocityWhenGridUnchanged(t *testing.T) {
	f := uniformBlock(t, 0.3, -0.7)
	f.Vel[10] = 2 // one outlier

	want := append([]float32(nil), f.Velocities()...)

	f.TransferToGrid()
	f.SolvePressure(0, 1.0/60, 1.9, false) // snapshot only
	f.TransferToParticles(1)

	assert.Equal(t, want, f.Velocities())
}

func TestTransferRestoresSolidFaces(t *testing.T) {
	f := uniformBlock(t, 1, 1)
	f.U.Set(1, 5, 0.25)

	f.TransferToGrid()

	// Cell (0,5) is solid, so the face between it and (1,5) keeps its value.
	assert.Equal(t, float32(0.25), f.U.At(1, 5))
	assert.Equal(t, float32(0.25), f.prevU.At(1, 5))
}

func TestTransferNoValidNodesKeepsVelocity(t *testing.T) {
	f := newOpenFluid(t, 0.01, 1)
	require.NoError(t, f.SeedParticles([]float32{0.5, 0.5}))
	f.Vel[0], f.Vel[1] = 0.7, -0.3

	// Gathering against an all-air grid leaves the particle alone.
	f.Types.Fill(grid.Air)
	f.TransferToParticles(0.5)

	assert.Equal(t, float32(0.7), f.Vel[0])
	assert.Equal(t, float32(-0.3), f.Vel[1])
}

package flip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollideObstacleOverridesVelocity(t *testing.T) {
	f := newOpenFluid(t, 0.02, 2)
	require.NoError(t, f.SeedParticles([]float32{0.5, 0.5, 0.7, 0.5}))
	f.Vel[0], f.Vel[1] = 3, -1
	f.Vel[2], f.Vel[3] = 2, 2
	f.SetObstacleVelocity(0.4, -0.2)

	f.Collide(Obstacle{X: 0.52, Y: 0.5, Radius: 0.1})

	// Inside: takes the obstacle velocity, position untouched.
	assert.Equal(t, float32(0.4), f.Vel[0])
	assert.Equal(t, float32(-0.2), f.Vel[1])
	assert.Equal(t, float32(0.5), f.Pos[0])
	// Outside: unchanged.
	assert.Equal(t, float32(2), f.Vel[2])
	assert.Equal(t, float32(2), f.Vel[3])
}

func TestCollideClampsToTank(t *testing.T) {
	const r = 0.02
	f := newOpenFluid(t, r, 4)
	require.NoError(t, f.SeedParticles([]float32{
		-0.1, 0.5,
		1.2, 0.5,
		0.5, -0.3,
		0.5, 2,
	}))
	for i := range f.Velocities() {
		f.Vel[i] = 1
	}

	f.Collide(farObstacle)

	h := f.H()
	minX, maxX := h+r, float32(f.NumX-1)*h-r
	minY, maxY := h+r, float32(f.NumY-1)*h-r

	assert.Equal(t, minX, f.Pos[0])
	assert.Equal(t, float32(0), f.Vel[0])
	assert.Equal(t, float32(1), f.Vel[1])

	assert.Equal(t, maxX, f.Pos[2])
	assert.Equal(t, float32(0), f.Vel[2])

	assert.Equal(t, minY, f.Pos[5])
	assert.Equal(t, float32(0), f.Vel[5])
	assert.Equal(t, float32(1), f.Vel[4])

	assert.Equal(t, maxY, f.Pos[7])
	assert.Equal(t, float32(0), f.Vel[7])
}

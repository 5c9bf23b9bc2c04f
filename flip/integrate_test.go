package flip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrateAppliesGravity(t *testing.T) {
	// One particle at rest under gravity for a 1/120 s step.
	f := newOpenFluid(t, 0.02, 1)
	require.NoError(t, f.SeedParticles([]float32{0.5, 0.5}))

	f.Integrate(1.0/120, -9.81)

	assert.InDelta(t, -0.08175, f.Vel[1], 1e-5)
	assert.Equal(t, float32(0), f.Vel[0])
	assert.Equal(t, float32(0.5), f.Pos[0])
	assert.InDelta(t, 0.5-0.08175/120, f.Pos[1], 1e-6)
}

package flip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepPhaseOrder(t *testing.T) {
	f := newDamBreak(t)
	var got []string
	f.SetPhaseHook(func(phase string) { got = append(got, phase) })

	f.Step(defaultParams(), farObstacle)
	assert.Equal(t, Phases, got)

	got = nil
	p := defaultParams()
	p.SeparateParticles = false
	f.Step(p, farObstacle)
	assert.NotContains(t, got, PhaseSeparate)
	assert.Len(t, got, len(Phases)-1)

	got = nil
	f.SetPhaseHook(nil)
	f.Step(p, farObstacle)
	assert.Empty(t, got)
}

func TestStepKeepsParticleCount(t *testing.T) {
	f := newDamBreak(t)
	n := f.NumParticles
	require.Greater(t, n, 0)

	p := defaultParams()
	obs := Obstacle{X: 0.5, Y: 0.3, Radius: 0.1}
	for i := 0; i < 120; i++ {
		if i == 60 {
			p.SeparateParticles = false
			p.FlipRatio = 0
		}
		f.SetObstacleVelocity(0.5, 0)
		f.Step(p, obs)
		require.Equal(t, n, f.NumParticles)
	}
}

func TestStepKeepsParticlesInsideTank(t *testing.T) {
	f := newDamBreak(t)
	h, r := f.H(), f.ParticleRadius()
	minX, maxX := h+r, float32(f.NumX-1)*h-r
	minY, maxY := h+r, float32(f.NumY-1)*h-r

	p := defaultParams()
	for step := 0; step < 90; step++ {
		f.Step(p, farObstacle)
		for i := 0; i < f.NumParticles; i++ {
			x, y := f.Pos[2*i], f.Pos[2*i+1]
			require.True(t, x >= minX && x <= maxX, "step %d particle %d x=%v", step, i, x)
			require.True(t, y >= minY && y <= maxY, "step %d particle %d y=%v", step, i, y)
		}
	}
}

func TestStepIsDeterministic(t *testing.T) {
	a := newDamBreak(t)
	b := newDamBreak(t)
	p := defaultParams()
	for i := 0; i < 20; i++ {
		a.Step(p, farObstacle)
		b.Step(p, farObstacle)
	}
	assert.Equal(t, a.Positions(), b.Positions())
	assert.Equal(t, a.Velocities(), b.Velocities())
	assert.Equal(t, a.P.Data(), b.P.Data())
}

func TestStepLiquidFalls(t *testing.T) {
	f := newDamBreak(t)
	before := meanY(f)

	p := defaultParams()
	for i := 0; i < 30; i++ {
		f.Step(p, farObstacle)
	}
	assert.Less(t, meanY(f), before)
}

func meanY(f *Fluid) float32 {
	var sum float32
	for i := 0; i < f.NumParticles; i++ {
		sum += f.Pos[2*i+1]
	}
	return sum / float32(f.NumParticles)
}

func BenchmarkStep(b *testing.B) {
	f := newDamBreak(b)
	p := defaultParams()

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		f.Step(p, farObstacle)
	}
}

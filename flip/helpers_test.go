package flip

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// newOpenFluid returns a 1×1 fluid with spacing 0.1 (11×11 cells) whose
// cells are all open.
func newOpenFluid(tb testing.TB, radius float32, maxParticles int) *Fluid {
	tb.Helper()
	f, err := New(Config{
		Density:        1000,
		Width:          1,
		Height:         1,
		Spacing:        0.1,
		ParticleRadius: radius,
		MaxParticles:   maxParticles,
	})
	require.NoError(tb, err)
	f.S.Fill(1)
	return f
}

// newDamBreak builds a small walled tank with a hex-packed block of liquid
// in the lower left corner.
func newDamBreak(tb testing.TB) *Fluid {
	tb.Helper()

	const res = 11
	h := float32(1) / res
	r := 0.3 * h
	dx := 2 * r
	dy := float32(math.Sqrt(3)/2) * dx

	nx := int(math.Floor(float64((0.6 - 2*h - 2*r) / dx)))
	ny := int(math.Floor(float64((0.8 - 2*h - 2*r) / dy)))

	pos := make([]float32, 0, 2*nx*ny)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			x := h + r + dx*float32(i)
			if j%2 == 1 {
				x += r
			}
			pos = append(pos, x, h+r+dy*float32(j))
		}
	}

	f := newOpenFluid(tb, r, nx*ny)
	for i := 0; i < f.NumX; i++ {
		for j := 0; j < f.NumY; j++ {
			f.SetSolid(i, j, i == 0 || i == f.NumX-1 || j == 0)
		}
	}
	require.NoError(tb, f.SeedParticles(pos))
	return f
}

func defaultParams() StepParams {
	return StepParams{
		DT:                1.0 / 60,
		Gravity:           -9.81,
		FlipRatio:         0.9,
		NumPressureIters:  50,
		NumParticleIters:  2,
		OverRelaxation:    1.9,
		CompensateDrift:   true,
		SeparateParticles: true,
		Color:             ColorOptions{Density: true},
	}
}

// farObstacle is an obstacle placed where it touches no particle.
var farObstacle = Obstacle{X: 0.9, Y: 0.9, Radius: 0.01}

func dist(f *Fluid, i, j int) float32 {
	dx := f.Pos[2*j] - f.Pos[2*i]
	dy := f.Pos[2*j+1] - f.Pos[2*i+1]
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}

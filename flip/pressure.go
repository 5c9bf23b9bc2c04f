package flip

import (
	"math"

	"github.com/pthm-cable/flip/grid"
)

// driftStiffness scales the compression term subtracted from the divergence
// when drift compensation is on.
const driftStiffness = 1.0

// SolvePressure makes the grid velocity field approximately divergence free.
//
// It runs numIters in-place Gauss-Seidel sweeps over the interior cells,
// x outer and y inner, with over-relaxation factor overRelaxation. Each fluid
// cell distributes its correction to the four faces in proportion to the
// neighbours' openness. Cells whose neighbours are all solid are skipped.
//
// With compensateDrift set and a primed rest density, compression above the
// rest density is pushed out as extra divergence. Expansion below rest
// density is left alone.
func (f *Fluid) SolvePressure(numIters int, dt, overRelaxation float32, compensateDrift bool) {
	f.P.Fill(0)
	f.prevU.CopyFrom(f.U)
	f.prevV.CopyFrom(f.V)

	n := f.P.Stride()
	cp := f.density * f.h / dt

	u, v := f.U.Data(), f.V.Data()
	s := f.S.Data()
	p := f.P.Data()
	d := f.Density.Data()
	types := f.Types.Data()
	rest := f.RestDensity

	for iter := 0; iter < numIters; iter++ {
		for i := 1; i < f.NumX-1; i++ {
			for j := 1; j < f.NumY-1; j++ {
				center := f.P.Index(i, j)
				if types[center] != grid.Fluid {
					continue
				}
				left := center - n
				right := center + n
				bottom := center - 1
				top := center + 1

				sx0 := s[left]
				sx1 := s[right]
				sy0 := s[bottom]
				sy1 := s[top]
				sum := sx0 + sx1 + sy0 + sy1
				if sum == 0 {
					continue
				}

				div := u[right] - u[center] + v[top] - v[center]
				if compensateDrift && rest > 0 {
					if compression := d[center] - rest; compression > 0 {
						div -= driftStiffness * compression
					}
				}

				pc := -div / sum * overRelaxation
				p[center] += cp * pc

				u[center] -= sx0 * pc
				u[right] += sx1 * pc
				v[center] -= sy0 * pc
				v[top] += sy1 * pc
			}
		}
	}
}

// MeanDivergence returns the mean absolute velocity divergence over interior
// fluid cells that have at least one open neighbour.
func (f *Fluid) MeanDivergence() float32 {
	n := f.U.Stride()
	u, v := f.U.Data(), f.V.Data()
	s := f.S.Data()
	types := f.Types.Data()

	var sum float64
	var count int
	for i := 1; i < f.NumX-1; i++ {
		for j := 1; j < f.NumY-1; j++ {
			c := f.U.Index(i, j)
			if types[c] != grid.Fluid {
				continue
			}
			if s[c-n]+s[c+n]+s[c-1]+s[c+1] == 0 {
				continue
			}
			div := u[c+n] - u[c] + v[c+1] - v[c]
			sum += math.Abs(float64(div))
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return float32(sum / float64(count))
}

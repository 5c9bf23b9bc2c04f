package flip

import (
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/pthm-cable/flip/grid"
)

// EstimateDensity splats unit mass per particle onto cell centres.
//
// On the first call that finds at least one fluid cell the rest density is
// primed to the mean density over fluid cells. It is never updated again.
func (f *Fluid) EstimateDensity() {
	h := f.h
	h2 := 0.5 * h
	f.Density.Fill(0)

	for p := 0; p < f.NumParticles; p++ {
		x := clamp(f.Pos[2*p], h, float32(f.NumX-1)*h)
		y := clamp(f.Pos[2*p+1], h, float32(f.NumY-1)*h)

		x0 := floorInt((x - h2) * f.invH)
		tx := ((x - h2) - float32(x0)*h) * f.invH
		x1 := min(x0+1, f.NumX-2)

		y0 := floorInt((y - h2) * f.invH)
		ty := ((y - h2) - float32(y0)*h) * f.invH
		y1 := min(y0+1, f.NumY-2)

		sx := 1 - tx
		sy := 1 - ty

		f.Density.Add(x0, y0, sx*sy)
		f.Density.Add(x1, y0, tx*sy)
		f.Density.Add(x1, y1, tx*ty)
		f.Density.Add(x0, y1, sx*ty)
	}

	if f.RestDensity == 0 {
		f.primeRestDensity()
	}
}

func (f *Fluid) primeRestDensity() {
	d := f.Density.Data()
	types := f.Types.Data()

	var sum float32
	var count int
	for i, t := range types {
		if t == grid.Fluid {
			sum += d[i]
			count++
		}
	}
	if count > 0 {
		f.RestDensity = sum / float32(count)
	}
}

// TotalMass returns the total splatted density. Every particle contributes a
// unit of mass, so it equals NumParticles after EstimateDensity.
func (f *Fluid) TotalMass() float32 {
	d := f.Density.Data()
	return blas32.Asum(blas32.Vector{N: len(d), Inc: 1, Data: d})
}

// MeanDensity returns the mean density over fluid cells, or zero if there are
// none.
func (f *Fluid) MeanDensity() float32 {
	d := f.Density.Data()
	var sum float32
	var count int
	for i, t := range f.Types.Data() {
		if t == grid.Fluid {
			sum += d[i]
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float32(count)
}

// FluidCells returns the number of cells classified as fluid.
func (f *Fluid) FluidCells() int {
	var count int
	for _, t := range f.Types.Data() {
		if t == grid.Fluid {
			count++
		}
	}
	return count
}

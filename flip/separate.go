package flip

import "math"

// colorDiffusion is the per-contact color mixing rate. Cosmetic only.
const colorDiffusion = 0.001

// Separate pushes overlapping particles apart for numIters relaxation passes.
//
// The spatial hash is rebuilt once per call from the current positions.
// Each overlapping pair is moved apart symmetrically by half the penetration
// along the line between them. Coincident pairs have no direction and are
// skipped.
func (f *Fluid) Separate(numIters int) {
	n := f.NumParticles
	f.hash.Build(f.Pos, n)

	minDist := 2 * f.radius
	minDist2 := minDist * minDist

	for iter := 0; iter < numIters; iter++ {
		for i := 0; i < n; i++ {
			// Offsets are taken from i's position at the start of its scan.
			px := f.Pos[2*i]
			py := f.Pos[2*i+1]

			f.hash.ForEachNear(px, py, func(j int) {
				if j == i {
					return
				}
				dx := f.Pos[2*j] - px
				dy := f.Pos[2*j+1] - py
				d2 := dx*dx + dy*dy
				if d2 > minDist2 || d2 == 0 {
					return
				}
				d := float32(math.Sqrt(float64(d2)))
				s := 0.5 * (minDist - d) / d
				dx *= s
				dy *= s
				f.Pos[2*i] -= dx
				f.Pos[2*i+1] -= dy
				f.Pos[2*j] += dx
				f.Pos[2*j+1] += dy

				f.mixColors(i, j)
			})
		}
	}
}

func (f *Fluid) mixColors(i, j int) {
	for k := 0; k < 3; k++ {
		c0 := f.Color[3*i+k]
		c1 := f.Color[3*j+k]
		c := (c0 + c1) * 0.5
		f.Color[3*i+k] = c0 + (c-c0)*colorDiffusion
		f.Color[3*j+k] = c1 + (c-c1)*colorDiffusion
	}
}

package flip

import (
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/pthm-cable/flip/grid"
)

// TransferToGrid splats particle velocities onto the staggered grid.
//
// The previous grid velocities are kept in prevU/prevV for the FLIP delta, and
// cell types are recomputed: solid where openness is zero, fluid where a
// particle lands, air otherwise. Faces bordering a solid cell keep their
// previous value.
func (f *Fluid) TransferToGrid() {
	f.prevU.CopyFrom(f.U)
	f.prevV.CopyFrom(f.V)
	f.U.Fill(0)
	f.V.Fill(0)
	f.du.Fill(0)
	f.dv.Fill(0)

	f.classifyCells()

	f.splatComponent(0, f.U, f.du)
	f.splatComponent(1, f.V, f.dv)

	f.normalize(f.U, f.du)
	f.normalize(f.V, f.dv)

	f.restoreSolidFaces()
}

func (f *Fluid) classifyCells() {
	s := f.S.Data()
	types := f.Types.Data()
	for i := range types {
		if s[i] == 0 {
			types[i] = grid.Solid
		} else {
			types[i] = grid.Air
		}
	}

	for p := 0; p < f.NumParticles; p++ {
		xi := clampInt(floorInt(f.Pos[2*p]*f.invH), 0, f.NumX-1)
		yi := clampInt(floorInt(f.Pos[2*p+1]*f.invH), 0, f.NumY-1)
		c := f.Types.Index(xi, yi)
		if types[c] == grid.Air {
			types[c] = grid.Fluid
		}
	}
}

// stencil is the bilinear footprint of one particle on one staggered
// component: four node indices and their weights.
type stencil struct {
	nr [4]int
	w  [4]float32
}

// stencilFor computes the footprint of (x, y) on the component grid offset by
// (dx, dy) from cell corners.
func (f *Fluid) stencilFor(x, y, dx, dy float32) stencil {
	h := f.h
	idx := f.U.Index

	x = clamp(x, h, float32(f.NumX-1)*h)
	y = clamp(y, h, float32(f.NumY-1)*h)

	x0 := min(floorInt((x-dx)*f.invH), f.NumX-2)
	tx := ((x - dx) - float32(x0)*h) * f.invH
	x1 := min(x0+1, f.NumX-2)

	y0 := min(floorInt((y-dy)*f.invH), f.NumY-2)
	ty := ((y - dy) - float32(y0)*h) * f.invH
	y1 := min(y0+1, f.NumY-2)

	sx := 1 - tx
	sy := 1 - ty

	return stencil{
		nr: [4]int{idx(x0, y0), idx(x1, y0), idx(x1, y1), idx(x0, y1)},
		w:  [4]float32{sx * sy, tx * sy, tx * ty, sx * ty},
	}
}

// componentOffset returns the node offset for velocity component c: U nodes
// sit on left faces (shifted half a cell in y), V nodes on bottom faces.
func (f *Fluid) componentOffset(c int) (dx, dy float32) {
	half := 0.5 * f.h
	if c == 0 {
		return 0, half
	}
	return half, 0
}

func (f *Fluid) splatComponent(c int, field, weights *grid.Field) {
	dx, dy := f.componentOffset(c)
	fd := field.Data()
	wd := weights.Data()

	for p := 0; p < f.NumParticles; p++ {
		st := f.stencilFor(f.Pos[2*p], f.Pos[2*p+1], dx, dy)
		pv := f.Vel[2*p+c]
		for k := 0; k < 4; k++ {
			fd[st.nr[k]] += pv * st.w[k]
			wd[st.nr[k]] += st.w[k]
		}
	}
}

func (f *Fluid) normalize(field, weights *grid.Field) {
	fd := field.Data()
	wd := weights.Data()
	for i := range fd {
		if wd[i] > 0 {
			fd[i] /= wd[i]
		}
	}
}

func (f *Fluid) restoreSolidFaces() {
	n := f.Types.Stride()
	types := f.Types.Data()
	u, v := f.U.Data(), f.V.Data()
	pu, pv := f.prevU.Data(), f.prevV.Data()

	for i := 0; i < f.NumX; i++ {
		for j := 0; j < f.NumY; j++ {
			c := f.Types.Index(i, j)
			solid := types[c] == grid.Solid
			if solid || (i > 0 && types[c-n] == grid.Solid) {
				u[c] = pu[c]
			}
			if solid || (j > 0 && types[c-1] == grid.Solid) {
				v[c] = pv[c]
			}
		}
	}
}

// TransferToParticles gathers grid velocities back onto particles.
//
// A node only contributes when its cell or the neighbouring cell across the
// face is not air. The new velocity is (1-flipRatio)·PIC + flipRatio·FLIP,
// where PIC is the interpolated grid velocity and FLIP adds the interpolated
// grid change to the particle's own velocity. Particles with no valid node
// keep their velocity.
func (f *Fluid) TransferToParticles(flipRatio float32) {
	f.gatherComponent(0, f.U, f.prevU, flipRatio)
	f.gatherComponent(1, f.V, f.prevV, flipRatio)
}

func (f *Fluid) gatherComponent(c int, field, prev *grid.Field, flipRatio float32) {
	np := f.NumParticles
	if np == 0 {
		return
	}

	dx, dy := f.componentOffset(c)
	offset := f.NumY
	if c == 1 {
		offset = 1
	}

	fd := field.Data()
	pd := prev.Data()
	types := f.Types.Data()

	pic := f.picCol[:np]
	flp := f.flipCol[:np]
	valid := f.validCol[:np]

	for p := 0; p < np; p++ {
		st := f.stencilFor(f.Pos[2*p], f.Pos[2*p+1], dx, dy)
		vel := f.Vel[2*p+c]

		var wsum, picSum, corr float32
		for k := 0; k < 4; k++ {
			nr := st.nr[k]
			if !nodeValid(types, nr, offset) {
				continue
			}
			w := st.w[k]
			wsum += w
			picSum += w * fd[nr]
			corr += w * (fd[nr] - pd[nr])
		}

		if wsum > 0 {
			pic[p] = picSum / wsum
			flp[p] = vel + corr/wsum
			valid[p] = true
		} else {
			pic[p] = vel
			flp[p] = vel
			valid[p] = false
		}
	}

	blend := f.blendCol[:np]
	vPic := blas32.Vector{N: np, Inc: 1, Data: pic}
	vFlip := blas32.Vector{N: np, Inc: 1, Data: flp}
	vBlend := blas32.Vector{N: np, Inc: 1, Data: blend}
	blas32.Copy(vPic, vBlend)
	blas32.Scal(1-flipRatio, vBlend)
	blas32.Axpy(flipRatio, vFlip, vBlend)

	for p := 0; p < np; p++ {
		if valid[p] {
			f.Vel[2*p+c] = blend[p]
		}
	}
}

// nodeValid reports whether the face node at nr borders a non-air cell.
func nodeValid(types []grid.CellType, nr, offset int) bool {
	if types[nr] != grid.Air {
		return true
	}
	if nr-offset < 0 {
		return true
	}
	return types[nr-offset] != grid.Air
}

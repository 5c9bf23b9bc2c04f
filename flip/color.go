package flip

import (
	"math"

	"github.com/crazy3lf/colorconv"
	"github.com/mazznoer/colorgrad"

	"github.com/pthm-cable/flip/grid"
)

// CellMap selects the colormap used for fluid cells.
type CellMap int

const (
	CellMapScientific CellMap = iota // blue-cyan-green-yellow-red ramp
	CellMapViridis
)

// ParseCellMap maps a config name to a CellMap. Unknown names fall back to
// the scientific ramp.
func ParseCellMap(name string) CellMap {
	if name == "viridis" {
		return CellMapViridis
	}
	return CellMapScientific
}

func (m CellMap) String() string {
	if m == CellMapViridis {
		return "viridis"
	}
	return "sci"
}

// ColorOptions controls particle and cell coloring. Coloring never feeds
// back into the dynamics.
type ColorOptions struct {
	Velocity bool // shift toward the complementary color with speed
	Density  bool // lighten particles in cells below 70% of rest density
	HueShift bool // rotate hue through HSV instead of lerping RGB
	CellMap  CellMap
}

const (
	maxColorSpeed     = 10.0
	sparseDensityFrac = 0.7
	sparseShade       = 0.8
	cellDensityMax    = 2.0
	viridisSize       = 256
)

// ColorParticles recomputes particle colors from the current state. Both
// modes apply in sequence, density last. Nothing changes color until the
// rest density has been primed.
func (f *Fluid) ColorParticles(opts ColorOptions) {
	d := f.Density.Data()
	d0 := f.RestDensity

	for i := 0; i < f.NumParticles; i++ {
		c := f.Color[3*i : 3*i+3]
		c[0], c[1], c[2] = f.baseColor[0], f.baseColor[1], f.baseColor[2]

		if d0 <= 0 {
			continue
		}

		if opts.Velocity {
			vx := f.Vel[2*i]
			vy := f.Vel[2*i+1]
			speed := float32(math.Sqrt(float64(vx*vx + vy*vy)))
			t := clamp(speed/maxColorSpeed, 0, 1)
			if opts.HueShift {
				c[0], c[1], c[2] = hueShift(c[0], c[1], c[2], t)
			} else {
				c[0] += (1 - 2*c[0]) * t
				c[2] += (1 - 2*c[2]) * t
			}
		}

		if opts.Density {
			xi := clampInt(floorInt(f.Pos[2*i]*f.invH), 1, f.NumX-1)
			yi := clampInt(floorInt(f.Pos[2*i+1]*f.invH), 1, f.NumY-1)
			if d[f.Density.Index(xi, yi)]/d0 < sparseDensityFrac {
				c[0], c[1], c[2] = sparseShade, sparseShade, 1
			}
		}
	}
}

// hueShift moves (r, g, b) toward its complementary color (1-r, g, 1-b) by t,
// interpolating along the shorter hue arc.
func hueShift(r, g, b, t float32) (float32, float32, float32) {
	h0, s0, v0 := colorconv.RGBToHSV(toByte(r), toByte(g), toByte(b))
	h1, s1, v1 := colorconv.RGBToHSV(toByte(1-r), toByte(g), toByte(1-b))

	dh := h1 - h0
	if dh > 180 {
		dh -= 360
	} else if dh < -180 {
		dh += 360
	}
	tt := float64(t)
	h := math.Mod(h0+dh*tt+360, 360)
	s := s0 + (s1-s0)*tt
	v := v0 + (v1-v0)*tt

	rr, gg, bb, err := colorconv.HSVToRGB(h, s, v)
	if err != nil {
		return r, g, b
	}
	return float32(rr) / 255, float32(gg) / 255, float32(bb) / 255
}

func toByte(c float32) uint8 {
	return uint8(clamp(c, 0, 1)*255 + 0.5)
}

// ColorCells colors every cell: solid grey, fluid by relative density on
// [0, 2], air black.
func (f *Fluid) ColorCells(m CellMap) {
	d := f.Density.Data()
	for i, t := range f.Types.Data() {
		col := f.CellColor[3*i : 3*i+3]
		switch t {
		case grid.Solid:
			col[0], col[1], col[2] = 0.5, 0.5, 0.5
		case grid.Fluid:
			rel := d[i]
			if f.RestDensity > 0 {
				rel /= f.RestDensity
			}
			if m == CellMapViridis {
				col[0], col[1], col[2] = f.viridisColor(rel, 0, cellDensityMax)
			} else {
				col[0], col[1], col[2] = SciColor(rel, 0, cellDensityMax)
			}
		default:
			col[0], col[1], col[2] = 0, 0, 0
		}
	}
}

// SciColor maps val in [minVal, maxVal] onto a four segment ramp from blue
// through cyan, green and yellow to red.
func SciColor(val, minVal, maxVal float32) (r, g, b float32) {
	val = min(max(val, minVal), maxVal-0.0001)
	d := maxVal - minVal
	if d == 0 {
		val = 0.5
	} else {
		val = (val - minVal) / d
	}
	const m = 0.25
	num := floorInt(val / m)
	s := (val - float32(num)*m) / m

	switch num {
	case 0:
		return 0, s, 1
	case 1:
		return 0, 1, 1 - s
	case 2:
		return s, 1, 0
	default:
		return 1, 1 - s, 0
	}
}

func (f *Fluid) viridisColor(val, minVal, maxVal float32) (r, g, b float32) {
	if f.viridis == nil {
		f.viridis = viridisTable()
	}
	t := clamp((val-minVal)/(maxVal-minVal), 0, 1)
	k := min(int(t*float32(len(f.viridis)/3)), len(f.viridis)/3-1)
	return f.viridis[3*k], f.viridis[3*k+1], f.viridis[3*k+2]
}

func viridisTable() []float32 {
	colors := colorgrad.Viridis().Colors(viridisSize)
	table := make([]float32, 0, 3*len(colors))
	for _, c := range colors {
		r, g, b, _ := c.RGBA()
		table = append(table, float32(r)/0xffff, float32(g)/0xffff, float32(b)/0xffff)
	}
	return table
}

// Package flip implements a 2D hybrid particle/grid liquid solver.
//
// Particles carry the liquid; a staggered MAC grid is used each step to make
// the particle velocity field incompressible. Velocities move between the two
// representations with a PIC/FLIP blend. A Fluid is single-threaded and is
// advanced in place by Step.
package flip

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/flip/grid"
	"github.com/pthm-cable/flip/spatial"
)

var (
	// ErrInvalidDimensions is returned for non-positive domain sizes, spacing,
	// particle radius or a negative capacity.
	ErrInvalidDimensions = errors.New("flip: invalid dimensions")
	// ErrCapacityExceeded is returned when seeding more particles than the
	// fluid was constructed for.
	ErrCapacityExceeded = errors.New("flip: particle capacity exceeded")
)

// Config describes the fixed shape of a simulation.
type Config struct {
	Density        float32 // liquid density, scales the pressure field
	Width, Height  float32 // domain size in simulation units
	Spacing        float32 // requested grid cell size
	ParticleRadius float32
	MaxParticles   int
}

// Obstacle is the circular obstacle driving the liquid.
type Obstacle struct {
	X, Y   float32
	Radius float32
}

// Fluid holds the complete solver state. Grids and particle buffers are
// allocated once by New and mutated in place by Step. Readers may inspect
// the exported buffers between steps but must not write to them except
// through the mutators.
type Fluid struct {
	density float32
	h       float32
	invH    float32

	NumX, NumY int

	U, V         *grid.Field // staggered velocities (left and bottom faces)
	du, dv       *grid.Field // transfer weights
	prevU, prevV *grid.Field
	P            *grid.Field // pressure
	S            *grid.Field // openness, 0 = solid
	Types        *grid.Cells
	Density      *grid.Field // splatted particle density per cell
	CellColor    []float32   // RGB per cell

	MaxParticles int
	NumParticles int
	Pos          []float32 // x/y interleaved
	Vel          []float32 // x/y interleaved
	Color        []float32 // RGB interleaved

	// RestDensity is primed from the first step's mean fluid-cell density and
	// never changes afterwards.
	RestDensity float32

	radius float32
	hash   *spatial.Hash

	obstacleVelX, obstacleVelY float32
	baseColor                  [3]float32

	onPhase PhaseHook
	viridis []float32 // lazily built RGB lookup for CellMapViridis

	// scratch columns for the PIC/FLIP blend
	picCol, flipCol, blendCol []float32
	validCol                  []bool
}

// New allocates a zeroed fluid for the given configuration.
func New(cfg Config) (*Fluid, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("domain %gx%g: %w", cfg.Width, cfg.Height, ErrInvalidDimensions)
	}
	if cfg.Spacing <= 0 {
		return nil, fmt.Errorf("spacing %g: %w", cfg.Spacing, ErrInvalidDimensions)
	}
	if cfg.ParticleRadius <= 0 {
		return nil, fmt.Errorf("particle radius %g: %w", cfg.ParticleRadius, ErrInvalidDimensions)
	}
	if cfg.MaxParticles < 0 {
		return nil, fmt.Errorf("max particles %d: %w", cfg.MaxParticles, ErrInvalidDimensions)
	}

	numX := int(math.Floor(float64(cfg.Width/cfg.Spacing))) + 1
	numY := int(math.Floor(float64(cfg.Height/cfg.Spacing))) + 1
	if numX < 3 || numY < 3 {
		return nil, fmt.Errorf("grid %dx%d needs at least 3x3 cells: %w", numX, numY, ErrInvalidDimensions)
	}
	h := max(cfg.Width/float32(numX), cfg.Height/float32(numY))

	n := cfg.MaxParticles
	f := &Fluid{
		density: cfg.Density,
		h:       h,
		invH:    1 / h,
		NumX:    numX,
		NumY:    numY,

		U:         grid.NewField(numX, numY),
		V:         grid.NewField(numX, numY),
		du:        grid.NewField(numX, numY),
		dv:        grid.NewField(numX, numY),
		prevU:     grid.NewField(numX, numY),
		prevV:     grid.NewField(numX, numY),
		P:         grid.NewField(numX, numY),
		S:         grid.NewField(numX, numY),
		Types:     grid.NewCells(numX, numY),
		Density:   grid.NewField(numX, numY),
		CellColor: make([]float32, 3*numX*numY),

		MaxParticles: n,
		Pos:          make([]float32, 2*n),
		Vel:          make([]float32, 2*n),
		Color:        make([]float32, 3*n),

		radius:    cfg.ParticleRadius,
		hash:      spatial.NewHash(cfg.Width, cfg.Height, 2.2*cfg.ParticleRadius, n),
		baseColor: [3]float32{0, 0, 1},

		picCol:   make([]float32, n),
		flipCol:  make([]float32, n),
		blendCol: make([]float32, n),
		validCol: make([]bool, n),
	}
	for i := 0; i < n; i++ {
		f.Color[3*i+2] = 1
	}
	return f, nil
}

// H returns the grid cell size.
func (f *Fluid) H() float32 { return f.h }

// ParticleRadius returns the particle radius.
func (f *Fluid) ParticleRadius() float32 { return f.radius }

// LiquidDensity returns the density the fluid was constructed with.
func (f *Fluid) LiquidDensity() float32 { return f.density }

// SeedParticles places particles at the x/y interleaved positions in pos,
// replacing any existing particles. Velocities are zeroed and colors reset to
// the base color.
func (f *Fluid) SeedParticles(pos []float32) error {
	if len(pos)%2 != 0 {
		return fmt.Errorf("seed: odd coordinate count %d: %w", len(pos), ErrInvalidDimensions)
	}
	n := len(pos) / 2
	if n > f.MaxParticles {
		return fmt.Errorf("seed %d particles into capacity %d: %w", n, f.MaxParticles, ErrCapacityExceeded)
	}
	copy(f.Pos, pos)
	for i := 0; i < 2*n; i++ {
		f.Vel[i] = 0
	}
	for i := 0; i < n; i++ {
		f.Color[3*i] = f.baseColor[0]
		f.Color[3*i+1] = f.baseColor[1]
		f.Color[3*i+2] = f.baseColor[2]
	}
	f.NumParticles = n
	return nil
}

// SetSolid marks cell (i, j) as solid or fully open.
func (f *Fluid) SetSolid(i, j int, solid bool) {
	if solid {
		f.S.Set(i, j, 0)
	} else {
		f.S.Set(i, j, 1)
	}
}

// SetOpenness sets the openness of cell (i, j), clamped to [0, 1].
func (f *Fluid) SetOpenness(i, j int, s float32) {
	f.S.Set(i, j, clamp(s, 0, 1))
}

// IsSolid reports whether cell (i, j) has zero openness.
func (f *Fluid) IsSolid(i, j int) bool {
	return f.S.At(i, j) == 0
}

// SetObstacleVelocity sets the velocity given to particles touching the
// obstacle. The caller estimates it, usually from the obstacle's frame to
// frame displacement.
func (f *Fluid) SetObstacleVelocity(vx, vy float32) {
	f.obstacleVelX = vx
	f.obstacleVelY = vy
}

// ObstacleVelocity returns the velocity last set with SetObstacleVelocity.
func (f *Fluid) ObstacleVelocity() (vx, vy float32) {
	return f.obstacleVelX, f.obstacleVelY
}

// Positions returns the active particle positions, x/y interleaved.
func (f *Fluid) Positions() []float32 { return f.Pos[:2*f.NumParticles] }

// Velocities returns the active particle velocities, x/y interleaved.
func (f *Fluid) Velocities() []float32 { return f.Vel[:2*f.NumParticles] }

// Colors returns the active particle colors, RGB interleaved.
func (f *Fluid) Colors() []float32 { return f.Color[:3*f.NumParticles] }

// CellColors returns the per-cell RGB colors written by ColorCells, in grid
// index order.
func (f *Fluid) CellColors() []float32 { return f.CellColor }

// CellTypes returns the cell classification from the last transfer to grid.
func (f *Fluid) CellTypes() *grid.Cells { return f.Types }

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func floorInt(x float32) int {
	return int(math.Floor(float64(x)))
}

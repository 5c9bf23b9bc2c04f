// Package scene sets up and drives the dam break tank around a flip.Fluid.
//
// The scene owns everything the solver core deliberately leaves to its
// caller: the initial particle block, the solid walls, carving the obstacle
// into the solid mask and estimating the obstacle's velocity from its motion.
package scene

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/pthm-cable/flip/flip"
)

// ErrInvalidTank is returned by Build for unusable tank parameters.
var ErrInvalidTank = errors.New("scene: invalid tank")

// TankSpec describes the tank and the initial block of liquid.
type TankSpec struct {
	Resolution     int     // cells across the tank height
	BaseResolution int     // resolution at which the tank is BaseHeight tall
	BaseHeight     float32 // tank height at BaseResolution
	Aspect         float32 // width / height

	Density      float32
	RadiusFactor float32 // particle radius as a fraction of cell size
	WaterWidth   float32 // fraction of the tank width filled initially
	WaterHeight  float32 // fraction of the tank height filled initially

	ObstacleX, ObstacleY float32 // initial obstacle centre
}

// DefaultTank returns the standard dam break.
func DefaultTank() TankSpec {
	return TankSpec{
		Resolution:     100,
		BaseResolution: 100,
		BaseHeight:     3,
		Aspect:         16.0 / 9.0,
		Density:        1000,
		RadiusFactor:   0.3,
		WaterWidth:     0.6,
		WaterHeight:    0.8,
		ObstacleX:      3,
		ObstacleY:      2,
	}
}

// Height returns the simulated tank height. Coarser resolutions give a
// taller tank so the cell count stays manageable.
func (t TankSpec) Height() float32 {
	return t.BaseHeight * float32(t.BaseResolution) / float32(t.Resolution)
}

// Width returns the simulated tank width.
func (t TankSpec) Width() float32 {
	return t.Height() * t.Aspect
}

func (t TankSpec) validate() error {
	switch {
	case t.Resolution <= 0 || t.BaseResolution <= 0:
		return fmt.Errorf("resolution %d/%d: %w", t.Resolution, t.BaseResolution, ErrInvalidTank)
	case t.BaseHeight <= 0 || t.Aspect <= 0:
		return fmt.Errorf("height %g aspect %g: %w", t.BaseHeight, t.Aspect, ErrInvalidTank)
	case t.RadiusFactor <= 0:
		return fmt.Errorf("radius factor %g: %w", t.RadiusFactor, ErrInvalidTank)
	case t.WaterWidth < 0 || t.WaterWidth > 1 || t.WaterHeight < 0 || t.WaterHeight > 1:
		return fmt.Errorf("water fraction %gx%g: %w", t.WaterWidth, t.WaterHeight, ErrInvalidTank)
	}
	return nil
}

// Scene is a running dam break.
type Scene struct {
	Fluid    *flip.Fluid
	Settings *Settings
	Tank     TankSpec

	ObstacleX, ObstacleY       float32
	ObstacleVelX, ObstacleVelY float32

	Frame   int
	SimTime float64
}

// Build creates a fluid for tank, fills the lower left block with hex packed
// particles, makes the left, right and bottom walls solid and places the
// obstacle. The settings pointer is retained and read on every Step.
func Build(settings *Settings, tank TankSpec) (*Scene, error) {
	if err := tank.validate(); err != nil {
		return nil, err
	}

	width := tank.Width()
	height := tank.Height()
	h := height / float32(tank.Resolution)
	r := tank.RadiusFactor * h
	dx := 2 * r
	dy := float32(math.Sqrt(3)/2) * dx

	numX := max(0, int(math.Floor(float64((tank.WaterWidth*width-2*h-2*r)/dx))))
	numY := max(0, int(math.Floor(float64((tank.WaterHeight*height-2*h-2*r)/dy))))

	fluid, err := flip.New(flip.Config{
		Density:        tank.Density,
		Width:          width,
		Height:         height,
		Spacing:        h,
		ParticleRadius: r,
		MaxParticles:   numX * numY,
	})
	if err != nil {
		return nil, fmt.Errorf("build fluid: %w", err)
	}

	pos := make([]float32, 0, 2*numX*numY)
	for i := 0; i < numX; i++ {
		for j := 0; j < numY; j++ {
			x := h + r + dx*float32(i)
			if j%2 == 1 {
				x += r
			}
			pos = append(pos, x, h+r+dy*float32(j))
		}
	}
	if err := fluid.SeedParticles(pos); err != nil {
		return nil, fmt.Errorf("seed particles: %w", err)
	}

	for i := 0; i < fluid.NumX; i++ {
		for j := 0; j < fluid.NumY; j++ {
			fluid.SetSolid(i, j, i == 0 || i == fluid.NumX-1 || j == 0)
		}
	}

	s := &Scene{
		Fluid:    fluid,
		Settings: settings,
		Tank:     tank,
	}
	s.SetObstacle(tank.ObstacleX, tank.ObstacleY, true)

	slog.Info("scene built",
		"particles", fluid.NumParticles,
		"cells_x", fluid.NumX,
		"cells_y", fluid.NumY,
		"h", fluid.H(),
		"radius", r,
		"density", fluid.LiquidDensity(),
	)
	return s, nil
}

// Reset rebuilds the scene from its tank, keeping the settings.
func (s *Scene) Reset() error {
	fresh, err := Build(s.Settings, s.Tank)
	if err != nil {
		return err
	}
	*s = *fresh
	return nil
}

// SetObstacle moves the obstacle centre to (x, y).
//
// Unless reset is set, the obstacle velocity is estimated from the
// displacement over one frame. Interior cells are reopened and the cells
// whose centre lies inside the obstacle become solid, with the obstacle
// velocity written to their faces.
func (s *Scene) SetObstacle(x, y float32, reset bool) {
	var vx, vy float32
	if !reset && s.Settings.DT > 0 {
		vx = (x - s.ObstacleX) / s.Settings.DT
		vy = (y - s.ObstacleY) / s.Settings.DT
	}

	s.ObstacleX = x
	s.ObstacleY = y

	f := s.Fluid
	h := f.H()
	r := s.Settings.ObstacleRadius

	for i := 1; i < f.NumX-2; i++ {
		for j := 1; j < f.NumY-2; j++ {
			f.SetSolid(i, j, false)

			dx := (float32(i)+0.5)*h - x
			dy := (float32(j)+0.5)*h - y
			if dx*dx+dy*dy < r*r {
				f.SetSolid(i, j, true)
				f.U.Set(i, j, vx)
				f.U.Set(i+1, j, vx)
				f.V.Set(i, j, vy)
				f.V.Set(i, j+1, vy)
			}
		}
	}

	s.ObstacleVelX = vx
	s.ObstacleVelY = vy
	f.SetObstacleVelocity(vx, vy)
}

// ReleaseObstacle stops the obstacle, typically at the end of a drag.
func (s *Scene) ReleaseObstacle() {
	s.ObstacleVelX = 0
	s.ObstacleVelY = 0
	s.Fluid.SetObstacleVelocity(0, 0)
}

// Obstacle returns the obstacle as the solver sees it.
func (s *Scene) Obstacle() flip.Obstacle {
	return flip.Obstacle{X: s.ObstacleX, Y: s.ObstacleY, Radius: s.Settings.ObstacleRadius}
}

// Step advances the fluid by one frame.
func (s *Scene) Step() {
	s.Fluid.Step(s.Settings.StepParams(), s.Obstacle())
	s.Frame++
	s.SimTime += float64(s.Settings.DT)
}

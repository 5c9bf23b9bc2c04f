package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flip/components"
)

// ObstacleSystem moves scripted obstacles along their orbits.
//
// Dragged obstacles are left to the input handler; their orbit clock keeps
// running so releasing one makes it rejoin the orbit where it would have been.
type ObstacleSystem struct {
	filter ecs.Filter4[components.Position, components.Velocity, components.Obstacle, components.Orbit]
	bounds Bounds
	time   float64
}

// NewObstacleSystem creates an obstacle system that keeps obstacles inside
// bounds.
func NewObstacleSystem(w *ecs.World, bounds Bounds) *ObstacleSystem {
	return &ObstacleSystem{
		filter: *ecs.NewFilter4[components.Position, components.Velocity, components.Obstacle, components.Orbit](w),
		bounds: bounds,
	}
}

// Time returns the orbit clock in seconds.
func (s *ObstacleSystem) Time() float64 { return s.time }

// Reset rewinds the orbit clock to zero.
func (s *ObstacleSystem) Reset() { s.time = 0 }

// Update advances the orbit clock by dt and moves every obstacle that is not
// being dragged. Velocity is the frame displacement divided by dt, or zero
// for an obstacle marked Jumped (just released onto its orbit).
func (s *ObstacleSystem) Update(dt float32) {
	s.time += float64(dt)

	query := s.filter.Query()
	for query.Next() {
		pos, vel, obs, orbit := query.Get()
		if obs.Dragged {
			continue
		}

		x, y := orbit.At(s.time)
		x, y = s.bounds.Clamp(x, y, obs.Radius)

		if obs.Jumped {
			vel.X, vel.Y = 0, 0
		} else if dt > 0 {
			vel.X = (x - pos.X) / dt
			vel.Y = (y - pos.Y) / dt
		}
		pos.X = x
		pos.Y = y
	}
}

// Bounds represents the simulation bounds.
type Bounds struct {
	Width, Height float32
}

// Clamp keeps a circle of radius r centred at (x, y) inside the bounds.
func (b Bounds) Clamp(x, y, r float32) (float32, float32) {
	x = min(max(x, r), b.Width-r)
	y = min(max(y, r), b.Height-r)
	return x, y
}

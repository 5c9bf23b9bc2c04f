// Package components defines ECS components for the simulation.
package components

import "math"

// Position represents an entity's position in simulation units.
type Position struct {
	X, Y float32
}

// Velocity represents an entity's velocity in simulation units per second.
type Velocity struct {
	X, Y float32
}

// Obstacle marks the circular obstacle that stirs the liquid.
type Obstacle struct {
	Radius  float32
	Dragged bool // under mouse control; scripted motion is suspended
	Jumped  bool // moved discontinuously; the next sync must not estimate velocity
}

// Orbit moves an entity around a circle at constant angular speed.
type Orbit struct {
	CenterX, CenterY float32
	Radius           float32
	Period           float32 // seconds per revolution
	Phase            float32 // radians at t = 0
}

// At returns the orbit position at time t.
func (o Orbit) At(t float64) (x, y float32) {
	angle := float64(o.Phase)
	if o.Period > 0 {
		angle += 2 * math.Pi * t / float64(o.Period)
	}
	return o.CenterX + o.Radius*float32(math.Cos(angle)), o.CenterY + o.Radius*float32(math.Sin(angle))
}

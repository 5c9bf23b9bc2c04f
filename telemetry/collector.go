package telemetry

import (
	"math"

	"github.com/pthm-cable/flip/flip"
)

// Collector accumulates per-tick solver samples within time windows and
// produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	divergenceSum     float64
	divergenceMax     float64
	divergenceSamples int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	var ticksPerWindow int32 = 1
	if dt > 0 {
		ticksPerWindow = int32(math.Round(windowDurationSec / float64(dt)))
	}
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordTick samples the fluid after a step.
func (c *Collector) RecordTick(f *flip.Fluid) {
	d := float64(f.MeanDivergence())
	c.divergenceSum += d
	if d > c.divergenceMax {
		c.divergenceMax = d
	}
	c.divergenceSamples++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats from the recorded ticks and the fluid's
// current state, then resets counters for the next window.
func (c *Collector) Flush(currentTick int32, f *flip.Fluid) WindowStats {
	var meanDiv float64
	if c.divergenceSamples > 0 {
		meanDiv = c.divergenceSum / float64(c.divergenceSamples)
	}

	speeds := ComputeSpeedStats(f.Velocities())

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Particles:   f.NumParticles,
		FluidCells:  f.FluidCells(),
		RestDensity: float64(f.RestDensity),
		MeanDensity: float64(f.MeanDensity()),
		TotalMass:   float64(f.TotalMass()),

		MeanDivergence: meanDiv,
		MaxDivergence:  c.divergenceMax,

		SpeedMean: speeds.Mean,
		SpeedStd:  speeds.Std,
		SpeedP50:  speeds.P50,
		SpeedP90:  speeds.P90,
		SpeedMax:  speeds.Max,

		KineticEnergy: speeds.Kinetic,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.divergenceSum = 0
	c.divergenceMax = 0
	c.divergenceSamples = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}

package telemetry

import (
	"testing"

	"github.com/pthm-cable/flip/scene"
)

func buildScene(t *testing.T) *scene.Scene {
	t.Helper()
	tank := scene.DefaultTank()
	tank.Resolution = 10
	tank.BaseResolution = 10
	tank.BaseHeight = 1
	tank.Aspect = 1
	tank.ObstacleX = 0.8
	tank.ObstacleY = 0.8
	settings := scene.DefaultSettings()
	settings.ObstacleRadius = 0.05
	s, err := scene.Build(&settings, tank)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return s
}

func TestCollectorWindowTicks(t *testing.T) {
	c := NewCollector(1.0, 1.0/60.0)
	if got := c.WindowDurationTicks(); got != 60 {
		t.Errorf("WindowDurationTicks = %d, want 60", got)
	}

	if c.ShouldFlush(59) {
		t.Error("should not flush before the window is full")
	}
	if !c.ShouldFlush(60) {
		t.Error("should flush once the window is full")
	}

	// float32 dt is slightly above 1/60; the window must not lose a frame
	for _, tc := range []struct {
		window float64
		want   int32
	}{
		{0.5, 30},
		{10, 600},
		{1.0 / 120, 1},
	} {
		if got := NewCollector(tc.window, float32(1.0/60.0)).WindowDurationTicks(); got != tc.want {
			t.Errorf("window %vs: WindowDurationTicks = %d, want %d", tc.window, got, tc.want)
		}
	}

	// Degenerate inputs still produce a usable window
	if got := NewCollector(0, 0).WindowDurationTicks(); got != 1 {
		t.Errorf("WindowDurationTicks = %d, want 1", got)
	}
}

func TestCollectorFlush(t *testing.T) {
	s := buildScene(t)
	c := NewCollector(0.05, s.Settings.DT)

	var tick int32
	for !c.ShouldFlush(tick) {
		s.Step()
		tick++
		c.RecordTick(s.Fluid)
	}

	stats := c.Flush(tick, s.Fluid)

	if stats.WindowStartTick != 0 || stats.WindowEndTick != tick {
		t.Errorf("window = [%d, %d], want [0, %d]", stats.WindowStartTick, stats.WindowEndTick, tick)
	}
	if stats.Particles != s.Fluid.NumParticles {
		t.Errorf("particles = %d, want %d", stats.Particles, s.Fluid.NumParticles)
	}
	if stats.FluidCells == 0 {
		t.Error("expected fluid cells after stepping")
	}
	if stats.RestDensity <= 0 {
		t.Error("expected rest density to be primed")
	}
	if stats.MaxDivergence < stats.MeanDivergence {
		t.Errorf("max divergence %v below mean %v", stats.MaxDivergence, stats.MeanDivergence)
	}
	if stats.SpeedMax <= 0 || stats.KineticEnergy <= 0 {
		t.Error("expected falling liquid to have kinetic energy")
	}
	if stats.SimTimeSec <= 0 {
		t.Error("expected positive sim time")
	}

	// Next window starts where this one ended
	if c.ShouldFlush(tick) {
		t.Error("collector should reset after flush")
	}
	next := c.Flush(tick+1, s.Fluid)
	if next.WindowStartTick != tick {
		t.Errorf("next window start = %d, want %d", next.WindowStartTick, tick)
	}
	if next.MeanDivergence != 0 || next.MaxDivergence != 0 {
		t.Error("divergence samples should reset after flush")
	}
}

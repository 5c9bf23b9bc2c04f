package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Liquid state at window end
	Particles   int     `csv:"particles"`
	FluidCells  int     `csv:"fluid_cells"`
	RestDensity float64 `csv:"rest_density"`
	MeanDensity float64 `csv:"mean_density"`
	TotalMass   float64 `csv:"total_mass"`

	// Incompressibility, averaged over the window's ticks
	MeanDivergence float64 `csv:"mean_divergence"`
	MaxDivergence  float64 `csv:"max_divergence"`

	// Particle speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`

	// Kinetic energy per unit particle mass
	KineticEnergy float64 `csv:"kinetic_energy"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// SpeedStats summarises particle speeds.
type SpeedStats struct {
	Mean, Std     float64
	P50, P90, Max float64
	Kinetic       float64 // ½Σ|v|²
}

// ComputeSpeedStats calculates speed statistics from x/y interleaved
// velocities.
func ComputeSpeedStats(vel []float32) SpeedStats {
	n := len(vel) / 2
	if n == 0 {
		return SpeedStats{}
	}

	speeds := make([]float64, n)
	for i := range speeds {
		vx := float64(vel[2*i])
		vy := float64(vel[2*i+1])
		speeds[i] = math.Sqrt(vx*vx + vy*vy)
	}

	var s SpeedStats
	s.Kinetic = 0.5 * floats.Dot(speeds, speeds)
	s.Max = floats.Max(speeds)

	if n > 1 {
		s.Mean, s.Std = stat.PopMeanStdDev(speeds, nil)
	} else {
		s.Mean = speeds[0]
	}

	sort.Float64s(speeds)
	s.P50 = Percentile(speeds, 0.50)
	s.P90 = Percentile(speeds, 0.90)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("particles", s.Particles),
		slog.Int("fluid_cells", s.FluidCells),
		slog.Float64("rest_density", s.RestDensity),
		slog.Float64("mean_density", s.MeanDensity),
		slog.Float64("total_mass", s.TotalMass),
		slog.Float64("mean_divergence", s.MeanDivergence),
		slog.Float64("max_divergence", s.MaxDivergence),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Float64("kinetic_energy", s.KineticEnergy),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"particles", s.Particles,
		"fluid_cells", s.FluidCells,
		"rest_density", s.RestDensity,
		"mean_density", s.MeanDensity,
		"mean_divergence", s.MeanDivergence,
		"max_divergence", s.MaxDivergence,
		"speed_mean", s.SpeedMean,
		"speed_p90", s.SpeedP90,
		"speed_max", s.SpeedMax,
		"kinetic_energy", s.KineticEnergy,
	)
}

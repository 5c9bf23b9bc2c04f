package scene

import "github.com/pthm-cable/flip/flip"

// Settings holds the per-frame solver and display parameters. It is owned by
// the caller (UI controls, config, tuner) and read by Scene on every Step, so
// changes take effect on the next frame and survive a rebuild.
type Settings struct {
	Gravity           float32
	DT                float32
	FlipRatio         float32
	NumPressureIters  int
	NumParticleIters  int
	OverRelaxation    float32
	CompensateDrift   bool
	SeparateParticles bool
	ObstacleRadius    float32

	ColorVelocity bool
	ColorDensity  bool
	HueShift      bool
	CellMap       flip.CellMap
}

// DefaultSettings returns the parameters of the interactive dam break.
func DefaultSettings() Settings {
	return Settings{
		Gravity:           -9.81,
		DT:                1.0 / 60.0,
		FlipRatio:         0.9,
		NumPressureIters:  50,
		NumParticleIters:  2,
		OverRelaxation:    1.9,
		CompensateDrift:   true,
		SeparateParticles: true,
		ObstacleRadius:    0.15,
		ColorDensity:      true,
	}
}

// StepParams converts the settings into solver parameters.
func (s *Settings) StepParams() flip.StepParams {
	return flip.StepParams{
		DT:                s.DT,
		Gravity:           s.Gravity,
		FlipRatio:         s.FlipRatio,
		NumPressureIters:  s.NumPressureIters,
		NumParticleIters:  s.NumParticleIters,
		OverRelaxation:    s.OverRelaxation,
		CompensateDrift:   s.CompensateDrift,
		SeparateParticles: s.SeparateParticles,
		Color: flip.ColorOptions{
			Velocity: s.ColorVelocity,
			Density:  s.ColorDensity,
			HueShift: s.HueShift,
			CellMap:  s.CellMap,
		},
	}
}

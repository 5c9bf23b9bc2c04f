// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/flip/flip"
	"github.com/pthm-cable/flip/scene"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Tank      TankConfig      `yaml:"tank"`
	Particles ParticlesConfig `yaml:"particles"`
	Solver    SolverConfig    `yaml:"solver"`
	Obstacle  ObstacleConfig  `yaml:"obstacle"`
	Color     ColorConfig     `yaml:"color"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// TankConfig holds the tank geometry and initial water block.
type TankConfig struct {
	Resolution     int     `yaml:"resolution"`      // Cells across the tank height
	BaseResolution int     `yaml:"base_resolution"` // Resolution at which the tank is base_height tall
	BaseHeight     float64 `yaml:"base_height"`
	Aspect         float64 `yaml:"aspect"` // Width/height (0 = screen aspect)
	Density        float64 `yaml:"density"`
	WaterWidth     float64 `yaml:"water_width"`  // Fraction of tank width filled at start
	WaterHeight    float64 `yaml:"water_height"` // Fraction of tank height filled at start
}

// ParticlesConfig holds particle sizing.
type ParticlesConfig struct {
	RadiusFactor float64 `yaml:"radius_factor"` // Radius as a fraction of cell size
}

// SolverConfig holds per-frame solver parameters.
type SolverConfig struct {
	DT                float64 `yaml:"dt"`
	Gravity           float64 `yaml:"gravity"`
	FlipRatio         float64 `yaml:"flip_ratio"`
	PressureIters     int     `yaml:"pressure_iters"`
	ParticleIters     int     `yaml:"particle_iters"`
	OverRelaxation    float64 `yaml:"over_relaxation"`
	CompensateDrift   bool    `yaml:"compensate_drift"`
	SeparateParticles bool    `yaml:"separate_particles"`
}

// ObstacleConfig holds the obstacle size, start and scripted motion.
type ObstacleConfig struct {
	Radius float64     `yaml:"radius"`
	StartX float64     `yaml:"start_x"`
	StartY float64     `yaml:"start_y"`
	Orbit  OrbitConfig `yaml:"orbit"`
}

// OrbitConfig drives the obstacle around a circle when nobody is dragging it.
type OrbitConfig struct {
	Enabled bool    `yaml:"enabled"`
	Radius  float64 `yaml:"radius"` // Orbit radius in simulation units
	Period  float64 `yaml:"period"` // Seconds per revolution
}

// ColorConfig holds particle and cell coloring modes.
type ColorConfig struct {
	Velocity bool   `yaml:"velocity"`
	Density  bool   `yaml:"density"`
	HueShift bool   `yaml:"hue_shift"`
	CellMap  string `yaml:"cell_map"` // "sci" or "viridis"
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // Seconds of simulated time per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // Ticks averaged per perf sample
}

// DerivedConfig holds values computed from other config values.
type DerivedConfig struct {
	DT32      float32 // Solver.DT as float32
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
	Aspect    float32 // Effective tank aspect
	CellMap   flip.CellMap
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Solver.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// Tank aspect defaults to the screen's so the tank fills the window
	aspect := c.Tank.Aspect
	if aspect == 0 && c.Screen.Height > 0 {
		aspect = float64(c.Screen.Width) / float64(c.Screen.Height)
	}
	if aspect <= 0 {
		aspect = 1
	}
	c.Derived.Aspect = float32(aspect)
	c.Derived.CellMap = flip.ParseCellMap(c.Color.CellMap)
}

// Settings returns the caller-owned scene settings described by the config.
func (c *Config) Settings() scene.Settings {
	return scene.Settings{
		Gravity:           float32(c.Solver.Gravity),
		DT:                c.Derived.DT32,
		FlipRatio:         float32(c.Solver.FlipRatio),
		NumPressureIters:  c.Solver.PressureIters,
		NumParticleIters:  c.Solver.ParticleIters,
		OverRelaxation:    float32(c.Solver.OverRelaxation),
		CompensateDrift:   c.Solver.CompensateDrift,
		SeparateParticles: c.Solver.SeparateParticles,
		ObstacleRadius:    float32(c.Obstacle.Radius),
		ColorVelocity:     c.Color.Velocity,
		ColorDensity:      c.Color.Density,
		HueShift:          c.Color.HueShift,
		CellMap:           c.Derived.CellMap,
	}
}

// TankSpec returns the tank description for scene.Build.
func (c *Config) TankSpec() scene.TankSpec {
	return scene.TankSpec{
		Resolution:     c.Tank.Resolution,
		BaseResolution: c.Tank.BaseResolution,
		BaseHeight:     float32(c.Tank.BaseHeight),
		Aspect:         c.Derived.Aspect,
		Density:        float32(c.Tank.Density),
		RadiusFactor:   float32(c.Particles.RadiusFactor),
		WaterWidth:     float32(c.Tank.WaterWidth),
		WaterHeight:    float32(c.Tank.WaterHeight),
		ObstacleX:      float32(c.Obstacle.StartX),
		ObstacleY:      float32(c.Obstacle.StartY),
	}
}

// ApplySettings copies live settings back into the config, so a snapshot
// written with WriteYAML reflects what the user ended up running.
func (c *Config) ApplySettings(s scene.Settings) {
	c.Solver.DT = float64(s.DT)
	c.Solver.Gravity = float64(s.Gravity)
	c.Solver.FlipRatio = float64(s.FlipRatio)
	c.Solver.PressureIters = s.NumPressureIters
	c.Solver.ParticleIters = s.NumParticleIters
	c.Solver.OverRelaxation = float64(s.OverRelaxation)
	c.Solver.CompensateDrift = s.CompensateDrift
	c.Solver.SeparateParticles = s.SeparateParticles
	c.Obstacle.Radius = float64(s.ObstacleRadius)
	c.Color.Velocity = s.ColorVelocity
	c.Color.Density = s.ColorDensity
	c.Color.HueShift = s.HueShift
	c.Color.CellMap = s.CellMap.String()
	c.computeDerived()
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

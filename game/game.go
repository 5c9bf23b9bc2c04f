// Package game runs the liquid tank: scene stepping, the obstacle entity,
// telemetry and, in graphical mode, input and drawing.
package game

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flip/camera"
	"github.com/pthm-cable/flip/components"
	"github.com/pthm-cable/flip/config"
	"github.com/pthm-cable/flip/renderer"
	"github.com/pthm-cable/flip/scene"
	"github.com/pthm-cable/flip/systems"
	"github.com/pthm-cable/flip/telemetry"
	"github.com/pthm-cable/flip/ui"
)

// Game holds the complete game state.
type Game struct {
	cfg      *config.Config
	settings scene.Settings
	scene    *scene.Scene

	// Obstacle entity
	world          *ecs.World
	obstacleMapper *ecs.Map4[components.Position, components.Velocity, components.Obstacle, components.Orbit]
	posMap         *ecs.Map[components.Position]
	velMap         *ecs.Map[components.Velocity]
	obsMap         *ecs.Map[components.Obstacle]
	orbitMap       *ecs.Map[components.Orbit]
	obstacle       ecs.Entity
	obstacleSystem *systems.ObstacleSystem
	bounds         systems.Bounds

	// Rendering (nil in headless mode)
	camera           *camera.Camera
	gridRenderer     *renderer.GridRenderer
	particleRenderer *renderer.ParticleRenderer
	hud              *ui.HUD
	controls         *ui.ControlsPanel
	perfPanel        *ui.PerfPanel
	overlays         *ui.OverlayRegistry
	controlsHovered  bool
	legend           string

	// State
	tick           int32
	paused         bool
	stepOnce       bool
	stepsPerUpdate int
	headless       bool

	// Window dimensions
	screenWidth, screenHeight float32

	// Telemetry
	perfCollector *telemetry.PerfCollector
	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
}

// NewGameWithOptions creates a game from opts.Config, or the global config
// when that is nil. In graphical mode the raylib window must already be open.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	g := &Game{
		cfg:            cfg,
		settings:       cfg.Settings(),
		stepsPerUpdate: max(opts.StepsPerUpdate, 1),
		headless:       opts.Headless,
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,
		screenWidth:    cfg.Derived.ScreenW32,
		screenHeight:   cfg.Derived.ScreenH32,
	}

	tank := cfg.TankSpec()
	sc, err := scene.Build(&g.settings, tank)
	if err != nil {
		return nil, fmt.Errorf("building scene: %w", err)
	}
	g.scene = sc
	g.bounds = systems.Bounds{Width: tank.Width(), Height: tank.Height()}

	g.initObstacle(tank)

	// Telemetry
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	g.collector = telemetry.NewCollector(statsWindow, g.settings.DT)
	g.scene.Fluid.SetPhaseHook(g.perfCollector.Hook())

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}
	slog.Info("telemetry",
		"window_ticks", g.collector.WindowDurationTicks(),
		"output_dir", om.Dir(),
	)

	if !g.headless {
		g.initRendering(tank)
	}

	return g, nil
}

// initRendering creates the camera, renderers and panels.
func (g *Game) initRendering(tank scene.TankSpec) {
	f := g.scene.Fluid
	g.camera = camera.New(g.screenWidth, g.screenHeight, tank.Width(), tank.Height())
	g.gridRenderer = renderer.NewGridRenderer(f.NumX, f.NumY)
	g.particleRenderer = renderer.NewParticleRenderer()
	g.hud = ui.NewHUD()
	g.overlays = ui.NewOverlayRegistry()
	g.legend = controlsLegend(g.overlays)
	g.controls = ui.NewControlsPanel(int32(g.screenWidth)-230, 10, 220)
	g.perfPanel = ui.NewPerfPanel(10, 120, 260)
}

// Update handles input then runs stepsPerUpdate frames unless paused.
func (g *Game) Update() {
	g.handleInput()

	if g.paused && !g.stepOnce {
		return
	}

	steps := g.stepsPerUpdate
	if g.stepOnce {
		steps = 1
		g.stepOnce = false
	}
	for i := 0; i < steps; i++ {
		g.simulationStep()
	}
}

// UpdateHeadless runs stepsPerUpdate frames without input handling.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// simulationStep runs a single frame of the simulation.
func (g *Game) simulationStep() {
	g.perfCollector.StartTick()

	// 1. Move the obstacle entity and carve it into the grid
	g.perfCollector.StartPhase(telemetry.PhaseObstacle)
	g.obstacleSystem.Update(g.settings.DT)
	g.syncObstacle()

	// 2. Fluid step (phases reported through the hook)
	g.scene.Step()

	// 3. Telemetry
	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordTick(g.scene.Fluid)
	g.tick++
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// reset rebuilds the scene and returns the obstacle to its start.
func (g *Game) reset() {
	if err := g.scene.Reset(); err != nil {
		slog.Error("failed to reset scene", "error", err)
		return
	}
	g.scene.Fluid.SetPhaseHook(g.perfCollector.Hook())
	g.placeObstacle(g.scene.Tank)
	slog.Info("scene reset", "tick", g.tick)
}

// Scene returns the running scene.
func (g *Game) Scene() *scene.Scene {
	return g.scene
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Unload releases all resources and writes the final settings.
func (g *Game) Unload() {
	if g.gridRenderer != nil {
		g.gridRenderer.Unload()
	}
	if g.outputManager != nil {
		g.cfg.ApplySettings(g.settings)
		if err := g.outputManager.WriteConfig(g.cfg); err != nil {
			slog.Error("failed to write config", "error", err)
		}
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
}

package game

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flip/renderer"
	"github.com/pthm-cable/flip/telemetry"
	"github.com/pthm-cable/flip/ui"
)

// controlsLegend lists the fixed keys followed by every overlay toggle.
func controlsLegend(overlays *ui.OverlayRegistry) string {
	parts := []string{"[Space] pause", "[M] step", "[R] reset"}
	for _, desc := range overlays.All() {
		if desc.Key != 0 {
			parts = append(parts, fmt.Sprintf("[%s] %s", desc.KeyLabel, strings.ToLower(desc.Name)))
		}
	}
	parts = append(parts, "[Mouse] drag obstacle")
	return strings.Join(parts, "  ")
}

// Draw renders the game.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	f := g.scene.Fluid

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	if g.overlays.IsEnabled(ui.OverlayGrid) {
		g.gridRenderer.Update(f.CellColors())
		g.gridRenderer.Draw(g.camera, f.H())
	}

	if g.overlays.IsEnabled(ui.OverlayParticles) {
		g.particleRenderer.Draw(g.camera, f.Positions(), f.Colors(), f.ParticleRadius())
	}

	if g.overlays.IsEnabled(ui.OverlayObstacle) {
		obs := g.scene.Obstacle()
		renderer.DrawObstacle(g.camera, obs.X, obs.Y, obs.Radius+f.ParticleRadius())
	}

	g.hud.Draw(ui.HUDData{
		Title:       "FLIP Tank",
		Particles:   f.NumParticles,
		FluidCells:  f.FluidCells(),
		Frame:       g.scene.Frame,
		SimTime:     g.scene.SimTime,
		FPS:         rl.GetFPS(),
		Paused:      g.paused,
		RestDensity: f.RestDensity,
		MeanDensity: f.MeanDensity(),
	})
	g.hud.DrawControls(int32(g.screenHeight), g.legend)

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.perfCollector.Stats(), telemetry.PerfPhases)
	}

	g.controlsHovered = false
	if g.overlays.IsEnabled(ui.OverlayControls) {
		res := g.controls.Draw(&g.settings)
		g.controlsHovered = res.Hovered
		if res.Reset {
			g.reset()
		}
	}

	rl.EndDrawing()
}

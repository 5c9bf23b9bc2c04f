package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flip/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title       string
	Particles   int
	FluidCells  int
	Frame       int
	SimTime     float64
	FPS         int32
	Paused      bool
	RestDensity float32
	MeanDensity float32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Particles: %d | Fluid cells: %d", data.Particles, data.FluidCells),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Frame: %d | t = %.2fs | FPS: %d", data.Frame, data.SimTime, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	if data.RestDensity > 0 {
		rl.DrawText(
			fmt.Sprintf("Density: %.2f / rest %.2f", data.MeanDensity, data.RestDensity),
			10, 75, 16, rl.LightGray,
		)
	}

	if data.Paused {
		rl.DrawText("PAUSED", 10, 95, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the solver phase breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel with one bar per phase.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, phases []string) {
	r := p.renderer
	padding := r.Theme.Padding
	height := int32(len(phases)+3)*(r.Theme.LineHeight+2) + padding*2

	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + padding
	y := p.y + padding
	inner := p.width - padding*2

	y = r.DrawSectionHeader(x, y, "Performance")
	y = r.DrawLabelValue(x, y, "Tick avg", stats.AvgTickDuration.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "Tick p95", stats.P95TickDuration.Round(time.Microsecond).String())

	for _, phase := range phases {
		y = r.DrawBar(x, y, phase, stats.PhasePct[phase], inner)
	}
}

package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flip/flip"
	"github.com/pthm-cable/flip/scene"
)

// sliderSpec binds a raygui slider to one numeric setting.
type sliderSpec struct {
	label    string
	min, max float32
	format   string
	get      func(*scene.Settings) float32
	set      func(*scene.Settings, float32)
}

// toggleSpec binds a raygui checkbox to one boolean setting.
type toggleSpec struct {
	label string
	get   func(*scene.Settings) bool
	set   func(*scene.Settings, bool)
}

var sliders = []sliderSpec{
	{"FLIP ratio", 0, 1, "%.2f",
		func(s *scene.Settings) float32 { return s.FlipRatio },
		func(s *scene.Settings, v float32) { s.FlipRatio = v }},
	{"Over-relaxation", 1, 1.99, "%.2f",
		func(s *scene.Settings) float32 { return s.OverRelaxation },
		func(s *scene.Settings, v float32) { s.OverRelaxation = v }},
	{"Pressure iters", 1, 200, "%.0f",
		func(s *scene.Settings) float32 { return float32(s.NumPressureIters) },
		func(s *scene.Settings, v float32) { s.NumPressureIters = int(v + 0.5) }},
	{"Particle iters", 0, 10, "%.0f",
		func(s *scene.Settings) float32 { return float32(s.NumParticleIters) },
		func(s *scene.Settings, v float32) { s.NumParticleIters = int(v + 0.5) }},
	{"Gravity", -20, 0, "%.2f",
		func(s *scene.Settings) float32 { return s.Gravity },
		func(s *scene.Settings, v float32) { s.Gravity = v }},
	{"Obstacle radius", 0.05, 0.5, "%.2f",
		func(s *scene.Settings) float32 { return s.ObstacleRadius },
		func(s *scene.Settings, v float32) { s.ObstacleRadius = v }},
}

var toggles = []toggleSpec{
	{"Compensate drift",
		func(s *scene.Settings) bool { return s.CompensateDrift },
		func(s *scene.Settings, v bool) { s.CompensateDrift = v }},
	{"Separate particles",
		func(s *scene.Settings) bool { return s.SeparateParticles },
		func(s *scene.Settings, v bool) { s.SeparateParticles = v }},
	{"Color by velocity",
		func(s *scene.Settings) bool { return s.ColorVelocity },
		func(s *scene.Settings, v bool) { s.ColorVelocity = v }},
	{"Hue shift",
		func(s *scene.Settings) bool { return s.HueShift },
		func(s *scene.Settings, v bool) { s.HueShift = v }},
	{"Color by density",
		func(s *scene.Settings) bool { return s.ColorDensity },
		func(s *scene.Settings, v bool) { s.ColorDensity = v }},
	{"Viridis cells",
		func(s *scene.Settings) bool { return s.CellMap == flip.CellMapViridis },
		func(s *scene.Settings, v bool) {
			s.CellMap = flip.CellMapScientific
			if v {
				s.CellMap = flip.CellMapViridis
			}
		}},
}

// ControlsResult reports what the user did in the panel this frame.
type ControlsResult struct {
	Changed bool // Any setting was edited
	Reset   bool // Reset button pressed
	Hovered bool // Mouse is over the panel
}

// ControlsPanel renders raygui sliders and checkboxes bound to the live
// scene settings.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Height returns the panel height in pixels.
func (c *ControlsPanel) Height() int32 {
	r := c.renderer
	rows := int32(len(sliders))*2 + int32(len(toggles)) + 3
	return rows*(r.Theme.LineHeight+4) + r.Theme.Padding*2
}

// Draw renders the panel and applies edits to s.
func (c *ControlsPanel) Draw(s *scene.Settings) ControlsResult {
	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight + 4
	height := c.Height()

	r.DrawPanel(c.x, c.y, c.width, height)

	var res ControlsResult
	mouse := rl.GetMousePosition()
	bounds := rl.Rectangle{X: float32(c.x), Y: float32(c.y), Width: float32(c.width), Height: float32(height)}
	res.Hovered = rl.CheckCollisionPointRec(mouse, bounds)

	x := float32(c.x + padding)
	y := c.y + padding
	inner := float32(c.width - padding*2)

	y = r.DrawSectionHeader(c.x+padding, y, "Solver")

	for _, sl := range sliders {
		cur := sl.get(s)
		rl.DrawText(sl.label, c.x+padding, y, r.Theme.FontSize, r.Theme.LabelColor)
		y += lineHeight - 4

		next := gui.SliderBar(
			rl.Rectangle{X: x, Y: float32(y), Width: inner - 50, Height: 14},
			"", "",
			cur, sl.min, sl.max,
		)
		rl.DrawText(fmt.Sprintf(sl.format, cur), int32(x+inner-44), y+1, r.Theme.FontSize, r.Theme.ValueColor)
		if next != cur {
			sl.set(s, next)
			res.Changed = true
		}
		y += lineHeight
	}

	for _, tg := range toggles {
		cur := tg.get(s)
		next := gui.CheckBox(rl.Rectangle{X: x, Y: float32(y), Width: 12, Height: 12}, tg.label, cur)
		if next != cur {
			tg.set(s, next)
			res.Changed = true
		}
		y += lineHeight
	}

	y += 4
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: 24}, "Reset [R]") {
		res.Reset = true
	}

	return res
}

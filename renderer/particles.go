package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flip/camera"
)

// ParticleRenderer renders liquid particles as filled discs.
type ParticleRenderer struct {
	// Minimum on-screen radius so particles stay visible when zoomed out
	MinRadius float32
}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{MinRadius: 1}
}

// Draw renders particles from interleaved positions and rgb colors.
func (r *ParticleRenderer) Draw(cam *camera.Camera, pos, colors []float32, radius float32) {
	size := max(cam.WorldLength(radius), r.MinRadius)
	n := min(len(pos)/2, len(colors)/3)

	for i := 0; i < n; i++ {
		x, y := pos[2*i], pos[2*i+1]
		if !cam.IsVisible(x, y, radius) {
			continue
		}

		sx, sy := cam.WorldToScreen(x, y)
		c := rgba(colors[3*i], colors[3*i+1], colors[3*i+2], 255)
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, size, rl.Color(c))
	}
}

// DrawObstacle renders the obstacle disc with an outline.
func DrawObstacle(cam *camera.Camera, x, y, radius float32) {
	sx, sy := cam.WorldToScreen(x, y)
	r := cam.WorldLength(radius)

	center := rl.Vector2{X: sx, Y: sy}
	rl.DrawCircleV(center, r, rl.Color{R: 255, G: 0, B: 0, A: 255})
	rl.DrawCircleLines(int32(sx), int32(sy), r, rl.White)
}

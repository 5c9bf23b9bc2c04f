package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flip/camera"
)

// GridRenderer draws the cell colors as a nearest-filtered texture stretched
// over the tank.
type GridRenderer struct {
	tex         rl.Texture2D
	pixels      []color.RGBA
	numX, numY  int
	initialized bool
}

// NewGridRenderer creates a grid renderer for a numX by numY cell grid.
func NewGridRenderer(numX, numY int) *GridRenderer {
	return &GridRenderer{
		numX:   numX,
		numY:   numY,
		pixels: make([]color.RGBA, numX*numY),
	}
}

// Init creates the texture (must be called after raylib window is created).
func (r *GridRenderer) Init() {
	if r.initialized {
		return
	}

	img := rl.GenImageColor(r.numX, r.numY, rl.Black)
	r.tex = rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(r.tex, rl.FilterPoint)
	rl.UnloadImage(img)

	r.initialized = true
}

// Update uploads rgb cell colors laid out column by column, bottom row first.
func (r *GridRenderer) Update(cellColors []float32) {
	if !r.initialized {
		r.Init()
	}
	if len(cellColors) != 3*r.numX*r.numY {
		return
	}

	// Texture rows run top to bottom
	for i := 0; i < r.numX; i++ {
		for j := 0; j < r.numY; j++ {
			c := cellColors[3*(i*r.numY+j):]
			r.pixels[(r.numY-1-j)*r.numX+i] = rgba(c[0], c[1], c[2], 255)
		}
	}

	rl.UpdateTexture(r.tex, r.pixels)
}

// Draw renders the grid texture over the tank rectangle.
func (r *GridRenderer) Draw(cam *camera.Camera, h float32) {
	if !r.initialized {
		return
	}

	x0, y0 := cam.WorldToScreen(0, float32(r.numY)*h)
	srcRect := rl.Rectangle{X: 0, Y: 0, Width: float32(r.numX), Height: float32(r.numY)}
	dstRect := rl.Rectangle{
		X:      x0,
		Y:      y0,
		Width:  cam.WorldLength(float32(r.numX) * h),
		Height: cam.WorldLength(float32(r.numY) * h),
	}
	rl.DrawTexturePro(r.tex, srcRect, dstRect, rl.Vector2{}, 0, rl.White)
}

// Unload frees GPU resources.
func (r *GridRenderer) Unload() {
	if !r.initialized {
		return
	}
	rl.UnloadTexture(r.tex)
	r.initialized = false
}

// rgba converts a [0, 1] color to 8-bit channels.
func rgba(red, green, blue float32, alpha uint8) color.RGBA {
	return color.RGBA{R: channel(red), G: channel(green), B: channel(blue), A: alpha}
}

func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

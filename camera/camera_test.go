package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNew(t *testing.T) {
	cam := New(1280, 720, 16, 9)

	// Should be centered on world
	if cam.X != 8 || cam.Y != 4.5 {
		t.Errorf("expected camera at (8, 4.5), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
	if cam.Scale() != 80 {
		t.Errorf("expected 80 px per unit, got %f", cam.Scale())
	}
}

func TestWorldToScreenFlipsY(t *testing.T) {
	cam := New(1280, 720, 16, 9)

	// Bottom-left of the tank is the bottom-left pixel
	sx, sy := cam.WorldToScreen(0, 0)
	if !near(sx, 0) || !near(sy, 720) {
		t.Errorf("expected (0, 720), got (%f, %f)", sx, sy)
	}

	// Top-right of the tank is the top-right pixel
	sx, sy = cam.WorldToScreen(16, 9)
	if !near(sx, 1280) || !near(sy, 0) {
		t.Errorf("expected (1280, 0), got (%f, %f)", sx, sy)
	}
}

func TestFitLetterboxes(t *testing.T) {
	// Square tank on a wide window: height limits the scale
	cam := New(1280, 720, 1, 1)
	if cam.Scale() != 720 {
		t.Errorf("expected 720 px per unit, got %f", cam.Scale())
	}
	sx, _ := cam.WorldToScreen(0, 0)
	if !near(sx, 280) {
		t.Errorf("expected tank left edge at 280, got %f", sx)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 16, 9)
	cam.SetZoom(2)
	cam.Pan(100, -50)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanStaysInTank(t *testing.T) {
	cam := New(1280, 720, 16, 9)

	// At fit zoom the whole tank is visible, so panning does nothing
	cam.Pan(-500, 0)
	if cam.X != 8 {
		t.Errorf("expected X to stay centered, got %f", cam.X)
	}

	cam.SetZoom(2)
	cam.Pan(-10000, 10000)
	minX, minY, _, _ := cam.VisibleWorldBounds()
	if !near(minX, 0) || !near(minY, 0) {
		t.Errorf("expected view clamped to bottom-left corner, got (%f, %f)", minX, minY)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, 16, 9)

	cam.SetZoom(0.1) // Below min
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom clamped to 1.0, got %f", cam.Zoom)
	}

	cam.SetZoom(10.0) // Above max
	if cam.Zoom != 4.0 {
		t.Errorf("expected zoom clamped to 4.0, got %f", cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 16, 9)
	cam.SetZoom(2)

	// Visible range is (4, 2.25) to (12, 6.75)
	if !cam.IsVisible(8, 4.5, 0.1) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(1, 1, 0.1) {
		t.Error("corner should not be visible when zoomed")
	}
	if !cam.IsVisible(3.5, 4.5, 1) {
		t.Error("edge point with large radius should be visible")
	}
}

func TestWorldLength(t *testing.T) {
	cam := New(1280, 720, 16, 9)
	if got := cam.WorldLength(0.5); got != 40 {
		t.Errorf("expected 40 px, got %f", got)
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720, 16, 9)
	cam.SetZoom(2.5)
	cam.Pan(200, 200)

	cam.Reset()

	if cam.X != 8 || cam.Y != 4.5 {
		t.Errorf("expected position (8, 4.5), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}

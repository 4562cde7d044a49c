package sandbox

import "math"

const (
	minZoom  = 0.5
	maxZoom  = 2.0
	zoomStep = 0.1
)

// View is the pan/zoom state of the sandbox canvas plus the grid cell under
// the pointer. Screen coordinates are device pixels, canvas coordinates are
// plan units.
type View struct {
	Zoom float64 `json:"zoom"`
	PanX float64 `json:"panX"`
	PanY float64 `json:"panY"`
	// HoveredCell is nil while the pointer is outside the plan.
	HoveredCell *GridCell `json:"hoveredCell,omitempty"`
}

func newView() View {
	return View{Zoom: 1}
}

func clampZoom(zoom float64) float64 {
	return math.Min(maxZoom, math.Max(minZoom, zoom))
}

// ScreenToCanvas maps device coordinates to plan coordinates.
func (v View) ScreenToCanvas(sx, sy float64) (float64, float64) {
	return (sx - v.PanX) / v.Zoom, (sy - v.PanY) / v.Zoom
}

// CanvasToScreen maps plan coordinates to device coordinates. It is the exact
// inverse of ScreenToCanvas.
func (v View) CanvasToScreen(x, y float64) (float64, float64) {
	return x*v.Zoom + v.PanX, y*v.Zoom + v.PanY
}

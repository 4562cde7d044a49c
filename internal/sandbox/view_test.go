package sandbox

import (
	"github.com/stretchr/testify/require"
	"testing"
)

func TestClampZoom(t *testing.T) {
	require.InDelta(t, 0.5, clampZoom(0.1), 0, "zoom floor")
	require.InDelta(t, 2.0, clampZoom(5), 0, "zoom ceiling")
	require.InDelta(t, 1.3, clampZoom(1.3), 0)
}

func TestViewTransforms(t *testing.T) {
	v := View{Zoom: 2, PanX: 10, PanY: 20}

	x, y := v.ScreenToCanvas(110, 220)
	require.InDelta(t, 50, x, 1e-9)
	require.InDelta(t, 100, y, 1e-9)

	sx, sy := v.CanvasToScreen(50, 100)
	require.InDelta(t, 110, sx, 1e-9)
	require.InDelta(t, 220, sy, 1e-9)
}

func TestViewTransformRoundTrip(t *testing.T) {
	views := []View{
		{Zoom: 1},
		{Zoom: 0.5, PanX: -30, PanY: 45},
		{Zoom: 1.7, PanX: 120, PanY: -200},
	}
	for _, v := range views {
		x, y := v.ScreenToCanvas(333, -77)
		sx, sy := v.CanvasToScreen(x, y)
		require.InDelta(t, 333, sx, 1e-9)
		require.InDelta(t, -77, sy, 1e-9)
	}
}

package sandbox

import (
	"github.com/mtoivan/samplab/internal/models"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
	"testing"
)

func rectArea(x0, y0, x1, y1 float64) models.Area {
	return models.Area{
		Kind: models.AreaRectangle,
		Points: []models.Coordinate{
			{X: x0, Y: y0},
			{X: x1, Y: y0},
			{X: x1, Y: y1},
			{X: x0, Y: y1},
		},
	}
}

func circleArea(cx, cy, r float64) models.Area {
	return models.Area{
		Kind:   models.AreaCircle,
		Center: models.Coordinate{X: cx, Y: cy},
		Radius: r,
	}
}

func TestAreaContains(t *testing.T) {
	diamond := models.Area{
		Kind: models.AreaRectangle,
		Points: []models.Coordinate{
			{X: 5, Y: 0},
			{X: 10, Y: 5},
			{X: 5, Y: 10},
			{X: 0, Y: 5},
		},
	}
	lShape := models.Area{
		Kind: models.AreaPolygon,
		Points: []models.Coordinate{
			{X: 0, Y: 0},
			{X: 10, Y: 0},
			{X: 10, Y: 4},
			{X: 4, Y: 4},
			{X: 4, Y: 10},
			{X: 0, Y: 10},
		},
	}
	tests := []struct {
		name string
		area models.Area
		v    r2.Vec
		want bool
	}{
		{name: "rectangle interior", area: rectArea(0, 0, 100, 50), v: r2.Vec{X: 50, Y: 25}, want: true},
		{name: "rectangle border", area: rectArea(0, 0, 100, 50), v: r2.Vec{X: 100, Y: 50}, want: true},
		{name: "rectangle outside", area: rectArea(0, 0, 100, 50), v: r2.Vec{X: 100.01, Y: 25}, want: false},
		// A tilted rectangle is treated as its bounding box, so a corner
		// position outside the tilted shape still counts as inside.
		{name: "tilted rectangle behaves as bounding box", area: diamond, v: r2.Vec{X: 1, Y: 1}, want: true},
		{name: "circle interior", area: circleArea(50, 50, 10), v: r2.Vec{X: 55, Y: 55}, want: true},
		{name: "circle boundary", area: circleArea(50, 50, 10), v: r2.Vec{X: 60, Y: 50}, want: true},
		{name: "circle outside", area: circleArea(50, 50, 10), v: r2.Vec{X: 60.01, Y: 50}, want: false},
		{name: "polygon arm", area: lShape, v: r2.Vec{X: 8, Y: 2}, want: true},
		{name: "polygon other arm", area: lShape, v: r2.Vec{X: 2, Y: 8}, want: true},
		{name: "polygon corner block", area: lShape, v: r2.Vec{X: 2, Y: 2}, want: true},
		{name: "polygon notch", area: lShape, v: r2.Vec{X: 8, Y: 8}, want: false},
		{name: "degenerate polygon", area: models.Area{Kind: models.AreaPolygon, Points: []models.Coordinate{{X: 0, Y: 0}, {X: 1, Y: 1}}}, v: r2.Vec{X: 0.5, Y: 0.5}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, areaContains(tt.area, tt.v))
		})
	}
}

func TestAcceptable(t *testing.T) {
	scenario := &models.Scenario{
		Width:        800,
		Height:       600,
		GridSize:     50,
		ValidAreas:   []models.Area{rectArea(0, 0, 100, 100)},
		InvalidAreas: []models.Area{circleArea(50, 50, 10)},
	}
	tests := []struct {
		name string
		v    r2.Vec
		want bool
	}{
		{name: "inside valid", v: r2.Vec{X: 10, Y: 10}, want: true},
		{name: "inside invalid wins over valid", v: r2.Vec{X: 50, Y: 50}, want: false},
		{name: "outside every valid area", v: r2.Vec{X: 150, Y: 150}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, acceptable(scenario, tt.v))
		})
	}

	t.Run("no valid areas opens the whole plan", func(t *testing.T) {
		open := &models.Scenario{
			Width:        800,
			Height:       600,
			GridSize:     50,
			InvalidAreas: []models.Area{circleArea(400, 300, 10)},
		}
		require.True(t, acceptable(open, r2.Vec{X: 700, Y: 550}))
		require.False(t, acceptable(open, r2.Vec{X: 400, Y: 300}), "invalid area still excludes")
		require.False(t, acceptable(open, r2.Vec{X: 900, Y: 300}), "outside the plan")
	})
}

func TestBounds(t *testing.T) {
	scenario := &models.Scenario{
		Width:  800,
		Height: 600,
		ValidAreas: []models.Area{
			rectArea(50, 50, 300, 200),
			circleArea(500, 400, 50),
		},
	}

	placement := placementBounds(scenario)
	require.Equal(t, r2.Vec{X: 50, Y: 50}, placement.Min, "placement follows the first valid area")
	require.Equal(t, r2.Vec{X: 300, Y: 200}, placement.Max)

	valid := validBounds(scenario)
	require.Equal(t, r2.Vec{X: 50, Y: 50}, valid.Min, "valid bounds span every valid area")
	require.Equal(t, r2.Vec{X: 550, Y: 450}, valid.Max)

	empty := &models.Scenario{Width: 800, Height: 600}
	require.Equal(t, r2.Vec{X: 800, Y: 600}, placementBounds(empty).Max, "no valid areas fall back to the plan")
	require.Equal(t, r2.Vec{X: 800, Y: 600}, validBounds(empty).Max)
}

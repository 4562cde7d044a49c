package sandbox

import (
	"gonum.org/v1/gonum/spatial/r2"
	"math"
)

// GridCell addresses one snap-grid cell. Row grows downward, Col rightward.
type GridCell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// snapToGrid quantizes each axis independently to the nearest grid multiple.
func snapToGrid(v r2.Vec, gridSize float64) r2.Vec {
	return r2.Vec{
		X: math.Round(v.X/gridSize) * gridSize,
		Y: math.Round(v.Y/gridSize) * gridSize,
	}
}

// cellAt derives the grid cell containing the given plan position.
func cellAt(v r2.Vec, gridSize float64) GridCell {
	return GridCell{
		Row: int(math.Floor(v.Y / gridSize)),
		Col: int(math.Floor(v.X / gridSize)),
	}
}

// cellCenter returns the plan position at the center of a cell.
func cellCenter(c GridCell, gridSize float64) r2.Vec {
	const half = 0.5
	return r2.Vec{
		X: (float64(c.Col) + half) * gridSize,
		Y: (float64(c.Row) + half) * gridSize,
	}
}

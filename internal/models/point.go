package models

import "time"

// SamplingPoint is one placed sampling point. Row and Col are derived from the
// coordinates and the scenario grid at placement time.
type SamplingPoint struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Row   int     `json:"row"`
	Col   int     `json:"col"`
	// Depth and Note are free-form annotations entered by the student.
	Depth float64 `json:"depth,omitempty"`
	Note  string  `json:"note,omitempty"`
	// Invalid marks a point flagged by the latest position check. It is
	// transient presentation state and is cleared by the next validation run.
	Invalid  bool      `json:"invalid,omitempty"`
	PlacedAt time.Time `json:"placedAt"`
}

// Coordinate returns the point's position.
func (p SamplingPoint) Coordinate() Coordinate {
	return Coordinate{X: p.X, Y: p.Y}
}

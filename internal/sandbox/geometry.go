// Package sandbox implements the sampling-point sandbox engine: an in-memory
// session holding the loaded scenario, the placed points, a bounded undo
// history, and the view transform, together with the placement strategies,
// the plan validator, and the plan scorer that operate on it.
package sandbox

import (
	"github.com/mtoivan/samplab/internal/models"
	"gonum.org/v1/gonum/spatial/r2"
	"math"
)

func vec(c models.Coordinate) r2.Vec {
	return r2.Vec{X: c.X, Y: c.Y}
}

func coordinate(v r2.Vec) models.Coordinate {
	return models.Coordinate{X: v.X, Y: v.Y}
}

// boxOf returns the axis-aligned bounding box of the given points.
func boxOf(points []models.Coordinate) r2.Box {
	if len(points) == 0 {
		return r2.Box{}
	}
	box := r2.Box{Min: vec(points[0]), Max: vec(points[0])}
	for _, p := range points[1:] {
		box.Min.X = math.Min(box.Min.X, p.X)
		box.Min.Y = math.Min(box.Min.Y, p.Y)
		box.Max.X = math.Max(box.Max.X, p.X)
		box.Max.Y = math.Max(box.Max.Y, p.Y)
	}
	return box
}

// boxContains reports whether v lies inside b, borders included.
func boxContains(b r2.Box, v r2.Vec) bool {
	return v.X >= b.Min.X && v.X <= b.Max.X && v.Y >= b.Min.Y && v.Y <= b.Max.Y
}

func boxWidth(b r2.Box) float64  { return b.Max.X - b.Min.X }
func boxHeight(b r2.Box) float64 { return b.Max.Y - b.Min.Y }

// areaBounds returns the bounding box of a single area.
func areaBounds(a models.Area) r2.Box {
	if a.Kind == models.AreaCircle {
		center := vec(a.Center)
		offset := r2.Vec{X: a.Radius, Y: a.Radius}
		return r2.Box{Min: r2.Sub(center, offset), Max: r2.Add(center, offset)}
	}
	return boxOf(a.Points)
}

// areaContains reports whether v lies inside area a.
//
// Rectangle containment deliberately tests the bounding box of the declared
// corner points rather than the oriented rectangle: rotated rectangles behave
// as their AABB, and existing scenario definitions depend on that.
func areaContains(a models.Area, v r2.Vec) bool {
	switch a.Kind {
	case models.AreaRectangle:
		return boxContains(boxOf(a.Points), v)
	case models.AreaCircle:
		return r2.Norm(r2.Sub(v, vec(a.Center))) <= a.Radius
	case models.AreaPolygon:
		return polygonContains(a.Points, v)
	}
	return false
}

// polygonContains implements even-odd ray casting. Points exactly on a
// polygon edge may land on either side; callers must not depend on edge
// behavior.
func polygonContains(vertices []models.Coordinate, v r2.Vec) bool {
	const minVertices = 3
	if len(vertices) < minVertices {
		return false
	}
	inside := false
	j := len(vertices) - 1
	for i := range vertices {
		vi, vj := vertices[i], vertices[j]
		if (vi.Y > v.Y) != (vj.Y > v.Y) {
			crossX := (vj.X-vi.X)*(v.Y-vi.Y)/(vj.Y-vi.Y) + vi.X
			if v.X < crossX {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// inAnyArea reports whether v lies inside at least one of the areas.
func inAnyArea(areas []models.Area, v r2.Vec) bool {
	for _, a := range areas {
		if areaContains(a, v) {
			return true
		}
	}
	return false
}

// canvasBounds returns the whole site plan as a box.
func canvasBounds(sc *models.Scenario) r2.Box {
	return r2.Box{Min: r2.Vec{}, Max: r2.Vec{X: sc.Width, Y: sc.Height}}
}

// acceptable is the placement gate: v must lie inside at least one valid area
// and inside no invalid area. A scenario without valid areas treats the whole
// plan as open for sampling.
func acceptable(sc *models.Scenario, v r2.Vec) bool {
	if inAnyArea(sc.InvalidAreas, v) {
		return false
	}
	if len(sc.ValidAreas) == 0 {
		return boxContains(canvasBounds(sc), v)
	}
	return inAnyArea(sc.ValidAreas, v)
}

// placementBounds returns the box the placement strategies operate in: the
// bounding box of the first valid area, or the whole plan without one.
func placementBounds(sc *models.Scenario) r2.Box {
	if len(sc.ValidAreas) == 0 {
		return canvasBounds(sc)
	}
	return areaBounds(sc.ValidAreas[0])
}

// validBounds returns the bounding box of all valid areas combined, the
// region the validator and scorer analyze.
func validBounds(sc *models.Scenario) r2.Box {
	if len(sc.ValidAreas) == 0 {
		return canvasBounds(sc)
	}
	box := areaBounds(sc.ValidAreas[0])
	for _, a := range sc.ValidAreas[1:] {
		ab := areaBounds(a)
		box.Min.X = math.Min(box.Min.X, ab.Min.X)
		box.Min.Y = math.Min(box.Min.Y, ab.Min.Y)
		box.Max.X = math.Max(box.Max.X, ab.Max.X)
		box.Max.Y = math.Max(box.Max.Y, ab.Max.Y)
	}
	return box
}

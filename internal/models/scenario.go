// Package models holds the domain types shared across the engine, the
// scenario catalog, persistence, and the web surface.
package models

// Method identifies a sampling-point placement strategy.
type Method string

const (
	MethodRandom     Method = "random"
	MethodSystematic Method = "systematic"
	MethodDiagonal   Method = "diagonal"
	MethodStratified Method = "stratified"
)

// Methods lists every placement strategy in presentation order.
func Methods() []Method {
	return []Method{MethodRandom, MethodSystematic, MethodDiagonal, MethodStratified}
}

// Valid reports whether m names a known strategy.
func (m Method) Valid() bool {
	switch m {
	case MethodRandom, MethodSystematic, MethodDiagonal, MethodStratified:
		return true
	}
	return false
}

// AreaKind identifies the shape of a scenario region.
type AreaKind string

const (
	AreaRectangle AreaKind = "rectangle"
	AreaCircle    AreaKind = "circle"
	AreaPolygon   AreaKind = "polygon"
)

// Coordinate is a position on the site plan in canvas units.
type Coordinate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Area is one region of the site plan. Rectangles are declared by their four
// corner points, circles by center and radius, polygons by their vertex list.
type Area struct {
	Kind   AreaKind     `json:"kind" validate:"required,oneof=rectangle circle polygon"`
	Label  string       `json:"label,omitempty"`
	Points []Coordinate `json:"points,omitempty"`
	Center Coordinate   `json:"center,omitempty"`
	Radius float64      `json:"radius,omitempty" validate:"gte=0"`
}

// Requirements describe the sampling obligations of a scenario.
type Requirements struct {
	// WasteVolume is the volume under characterization, in cubic meters.
	// It drives the calculated minimum point count.
	WasteVolume float64 `json:"wasteVolume" validate:"gt=0"`
	// MinPoints is the scenario author's floor for generated layouts.
	MinPoints int `json:"minPoints" validate:"min=1"`
}

// Scenario is an immutable exercise definition: a site plan with valid and
// invalid sampling regions, the requirements to meet, and a reference layout.
type Scenario struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`

	// Canvas extents and snap grid, in canvas units.
	Width    float64 `json:"width" validate:"gt=0"`
	Height   float64 `json:"height" validate:"gt=0"`
	GridSize float64 `json:"gridSize" validate:"gt=0"`

	// ValidAreas are the regions where sampling is allowed. An empty list
	// means the entire plan is open for sampling.
	ValidAreas []Area `json:"validAreas" validate:"dive"`
	// InvalidAreas are obstacles that always reject placements.
	InvalidAreas []Area `json:"invalidAreas" validate:"dive"`

	Requirements Requirements `json:"requirements"`

	RecommendedMethod Method   `json:"recommendedMethod" validate:"required,method"`
	ApplicableMethods []Method `json:"applicableMethods" validate:"dive,method"`

	// StandardAnswer is the reference layout shown by "load standard answer".
	// Authored on grid multiples so snapping cannot displace it.
	StandardAnswer []Coordinate `json:"standardAnswer"`
}

// MethodApplicable reports whether m is listed as applicable for the scenario.
// The recommended method is always applicable.
func (s *Scenario) MethodApplicable(m Method) bool {
	if m == s.RecommendedMethod {
		return true
	}
	for _, applicable := range s.ApplicableMethods {
		if m == applicable {
			return true
		}
	}
	return false
}

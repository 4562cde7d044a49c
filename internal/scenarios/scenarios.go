// Package scenarios loads and validates the built-in exercise catalog. The
// definitions live in an embedded JSON document so scenario authors never
// touch Go code, and every definition is checked on startup rather than when
// a student happens to open it.
package scenarios

import (
	"encoding/json"
	"github.com/go-playground/validator/v10"
	"github.com/mtoivan/samplab/internal/errors"
	"github.com/mtoivan/samplab/internal/models"
	"log/slog"
	"reflect"
	"strings"

	_ "embed"
)

//go:embed catalog.json
var catalogJSON []byte

// ErrNotFound signals a lookup for a scenario id the catalog does not hold.
var ErrNotFound = errors.NewSentinel("scenario not found")

// Catalog is the validated, immutable set of scenarios in authoring order.
type Catalog struct {
	logger    *slog.Logger
	order     []string
	scenarios map[string]*models.Scenario
}

// New loads the embedded catalog.
func New(logger *slog.Logger) (*Catalog, error) {
	return NewFromJSON(catalogJSON, logger)
}

// NewFromJSON builds a catalog from a JSON document holding an array of
// scenario definitions. Every definition must validate; the first broken one
// fails the whole load.
func NewFromJSON(data []byte, logger *slog.Logger) (*Catalog, error) {
	var defs []models.Scenario
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, errors.Wrap(err, "decode scenario catalog")
	}

	validate, err := newValidator()
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		logger:    logger.With(slog.String("source", "ScenarioCatalog")),
		scenarios: make(map[string]*models.Scenario, len(defs)),
	}
	for i := range defs {
		scenario := &defs[i]
		if err := validate.Struct(scenario); err != nil {
			return nil, errors.Wrap(err, "invalid scenario definition", slog.String("scenario_id", scenario.ID))
		}
		if err := checkAreas(scenario); err != nil {
			return nil, err
		}
		if _, ok := c.scenarios[scenario.ID]; ok {
			return nil, errors.New("duplicate scenario id", slog.String("scenario_id", scenario.ID))
		}
		c.scenarios[scenario.ID] = scenario
		c.order = append(c.order, scenario.ID)
	}

	c.logger.Info("scenario catalog loaded", slog.Int("scenarios", len(c.order)))
	return c, nil
}

// newValidator wires struct validation with JSON field names in messages and
// a tag for placement method names.
func newValidator() (*validator.Validate, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0] //nolint:gomnd // tag name and options
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("method", func(fl validator.FieldLevel) bool {
		return models.Method(fl.Field().String()).Valid()
	}); err != nil {
		return nil, errors.Wrap(err, "register method validation")
	}
	return validate, nil
}

// checkAreas enforces the shape arities the struct tags cannot express.
func checkAreas(scenario *models.Scenario) error {
	for _, group := range [][]models.Area{scenario.ValidAreas, scenario.InvalidAreas} {
		for _, area := range group {
			if err := checkArea(scenario.ID, area); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkArea(scenarioID string, area models.Area) error {
	attrs := []slog.Attr{
		slog.String("scenario_id", scenarioID),
		slog.String("area", area.Label),
	}
	switch area.Kind {
	case models.AreaRectangle:
		if len(area.Points) != 4 {
			return errors.New("rectangle must declare exactly four corners", attrs...)
		}
	case models.AreaPolygon:
		if len(area.Points) < 3 {
			return errors.New("polygon must declare at least three vertices", attrs...)
		}
	case models.AreaCircle:
		if area.Radius <= 0 {
			return errors.New("circle must declare a positive radius", attrs...)
		}
	}
	return nil
}

// Get returns a deep copy of the scenario, so callers can never corrupt the
// catalog.
func (c *Catalog) Get(id string) (*models.Scenario, error) {
	scenario, ok := c.scenarios[id]
	if !ok {
		return nil, errors.Wrap(ErrNotFound, "lookup scenario", slog.String("scenario_id", id))
	}
	return cloneScenario(scenario), nil
}

// All returns deep copies of every scenario in authoring order.
func (c *Catalog) All() []*models.Scenario {
	out := make([]*models.Scenario, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, cloneScenario(c.scenarios[id]))
	}
	return out
}

// Len reports the number of scenarios in the catalog.
func (c *Catalog) Len() int {
	return len(c.order)
}

func cloneScenario(s *models.Scenario) *models.Scenario {
	clone := *s
	clone.ValidAreas = cloneAreas(s.ValidAreas)
	clone.InvalidAreas = cloneAreas(s.InvalidAreas)
	clone.ApplicableMethods = append([]models.Method(nil), s.ApplicableMethods...)
	clone.StandardAnswer = append([]models.Coordinate(nil), s.StandardAnswer...)
	return &clone
}

func cloneAreas(areas []models.Area) []models.Area {
	if areas == nil {
		return nil
	}
	out := make([]models.Area, len(areas))
	for i, area := range areas {
		out[i] = area
		out[i].Points = append([]models.Coordinate(nil), area.Points...)
	}
	return out
}

package scenarios_test

import (
	"fmt"
	"github.com/mtoivan/samplab/internal/models"
	"github.com/mtoivan/samplab/internal/sandbox"
	"github.com/mtoivan/samplab/internal/scenarios"
	"github.com/mtoivan/samplab/internal/testhelpers"
	"github.com/stretchr/testify/require"
	"io"
	"testing"
)

func newCatalog(t *testing.T) *scenarios.Catalog {
	t.Helper()
	catalog, err := scenarios.New(testhelpers.NewLogger(io.Discard))
	require.NoError(t, err)
	return catalog
}

func TestCatalogLoads(t *testing.T) {
	catalog := newCatalog(t)
	require.Equal(t, 4, catalog.Len())

	all := catalog.All()
	ids := make([]string, 0, len(all))
	for _, sc := range all {
		ids = append(ids, sc.ID)
	}
	require.Equal(t, []string{"storage", "landfill", "tankfarm", "workshop"}, ids, "authoring order is preserved")
}

func TestCatalogGet(t *testing.T) {
	catalog := newCatalog(t)

	storage, err := catalog.Get("storage")
	require.NoError(t, err)
	require.Equal(t, "Storage hall", storage.Name)
	require.InDelta(t, 800, storage.Width, 0)
	require.InDelta(t, 50, storage.GridSize, 0)
	require.Len(t, storage.ValidAreas, 1)
	require.Len(t, storage.InvalidAreas, 2)
	require.Equal(t, models.MethodSystematic, storage.RecommendedMethod)
	require.Len(t, storage.StandardAnswer, 5)

	_, err = catalog.Get("mars-base")
	require.ErrorIs(t, err, scenarios.ErrNotFound)
}

func TestCatalogGetReturnsCopies(t *testing.T) {
	catalog := newCatalog(t)

	first, err := catalog.Get("storage")
	require.NoError(t, err)
	first.Name = "scribbled over"
	first.ValidAreas[0].Points[0].X = -1
	first.StandardAnswer[0].X = -1

	second, err := catalog.Get("storage")
	require.NoError(t, err)
	require.Equal(t, "Storage hall", second.Name)
	require.InDelta(t, 50, second.ValidAreas[0].Points[0].X, 0)
	require.InDelta(t, 200, second.StandardAnswer[0].X, 0)
}

func TestNewFromJSONRejectsBrokenDefinitions(t *testing.T) {
	wrap := func(body string) []byte {
		return []byte(fmt.Sprintf(`[
  {
    "id": "broken",
    "name": "Broken",
    "width": 100,
    "height": 100,
    "gridSize": 10,
    %s
    "requirements": { "wasteVolume": 50, "minPoints": 5 },
    "recommendedMethod": "systematic"
  }
]`, body))
	}
	tests := []struct {
		name string
		data []byte
	}{
		{
			name: "malformed json",
			data: []byte(`[{`),
		},
		{
			name: "missing recommended method",
			data: []byte(`[{"id":"x","name":"X","width":100,"height":100,"gridSize":10,"requirements":{"wasteVolume":50,"minPoints":5}}]`),
		},
		{
			name: "unknown method",
			data: []byte(`[{"id":"x","name":"X","width":100,"height":100,"gridSize":10,"requirements":{"wasteVolume":50,"minPoints":5},"recommendedMethod":"spiral"}]`),
		},
		{
			name: "zero grid size",
			data: []byte(`[{"id":"x","name":"X","width":100,"height":100,"gridSize":0,"requirements":{"wasteVolume":50,"minPoints":5},"recommendedMethod":"random"}]`),
		},
		{
			name: "rectangle with three corners",
			data: wrap(`"validAreas": [{"kind": "rectangle", "points": [{"x":0,"y":0},{"x":10,"y":0},{"x":10,"y":10}]}],`),
		},
		{
			name: "polygon with two vertices",
			data: wrap(`"validAreas": [{"kind": "polygon", "points": [{"x":0,"y":0},{"x":10,"y":0}]}],`),
		},
		{
			name: "circle without radius",
			data: wrap(`"invalidAreas": [{"kind": "circle", "center": {"x":50,"y":50}}],`),
		},
		{
			name: "unknown area kind",
			data: wrap(`"validAreas": [{"kind": "blob"}],`),
		},
		{
			name: "duplicate ids",
			data: []byte(`[
  {"id":"x","name":"X","width":100,"height":100,"gridSize":10,"requirements":{"wasteVolume":50,"minPoints":5},"recommendedMethod":"random"},
  {"id":"x","name":"X again","width":100,"height":100,"gridSize":10,"requirements":{"wasteVolume":50,"minPoints":5},"recommendedMethod":"random"}
]`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scenarios.NewFromJSON(tt.data, testhelpers.NewLogger(io.Discard))
			require.Error(t, err)
		})
	}
}

// Every bundled scenario must be solvable by its own reference layout:
// the standard answer passes validation and earns the top grade with the
// recommended method.
func TestStandardAnswersAreExemplary(t *testing.T) {
	catalog := newCatalog(t)

	for _, scenario := range catalog.All() {
		t.Run(scenario.ID, func(t *testing.T) {
			points := make([]models.SamplingPoint, 0, len(scenario.StandardAnswer))
			for i, c := range scenario.StandardAnswer {
				points = append(points, models.SamplingPoint{
					ID:    fmt.Sprintf("p%d", i+1),
					Label: fmt.Sprintf("S%d", i+1),
					X:     c.X,
					Y:     c.Y,
				})
			}

			result := sandbox.ValidatePlan(scenario, points)
			require.Truef(t, result.Passed, "validation failed: %+v", result.Checks)

			score := sandbox.ScorePlan(scenario, points, scenario.RecommendedMethod)
			require.GreaterOrEqual(t, score.TotalScore, 80, "breakdown: %+v", score.Breakdown)
			require.Equal(t, models.GradeExcellent, score.Grade)
		})
	}
}

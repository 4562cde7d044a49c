package main

import (
	"context"
	"net/http"
	"testing"

	"github.com/mtoivan/samplab/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_application_autoPlace(t *testing.T) {
	t.Parallel()
	client := startTestServer(t)
	ctx := context.Background()

	_, err := client.GetDoc(ctx, "/sandbox/storage")
	require.NoError(t, err)

	// Two manual points first; the generated batch appends after them.
	status, err := client.JSON(ctx, http.MethodPost, "/api/sandbox/points", map[string]any{"x": 200, "y": 200}, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	status, err = client.JSON(ctx, http.MethodPost, "/api/sandbox/points", map[string]any{"x": 600, "y": 400}, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)

	var batch placedResponse
	status, err = client.JSON(ctx, http.MethodPost, "/api/sandbox/autoplace",
		map[string]any{"method": "diagonal", "count": 4}, &batch)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, batch.Placed, 4)
	assert.Equal(t, "S3", batch.Placed[0].Label)
	assert.Len(t, batch.State.Points, 6)
	assert.Equal(t, models.MethodDiagonal, batch.State.Method)

	// The whole batch is one undo step.
	var undone stateResponse
	status, err = client.JSON(ctx, http.MethodPost, "/api/sandbox/undo", nil, &undone)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.True(t, undone.OK)
	require.Len(t, undone.State.Points, 2)

	// count 0 falls back to the scenario's required point count. The storage
	// hall lattice avoids both obstacle regions, so all five land.
	var fallback placedResponse
	status, err = client.JSON(ctx, http.MethodPost, "/api/sandbox/autoplace",
		map[string]any{"method": "systematic", "count": 0}, &fallback)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, fallback.Placed, 5)
	assert.Len(t, fallback.State.Points, 7)
	assert.Equal(t, models.MethodSystematic, fallback.State.Method)

	status, err = client.JSON(ctx, http.MethodPost, "/api/sandbox/autoplace",
		map[string]any{"method": "spiral", "count": 3}, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, status)
}

func Test_application_assessment(t *testing.T) {
	t.Parallel()
	client := startTestServer(t)
	ctx := context.Background()

	_, err := client.GetDoc(ctx, "/sandbox/storage")
	require.NoError(t, err)

	// A lone point fails the count and distribution checks.
	status, err := client.JSON(ctx, http.MethodPost, "/api/sandbox/points", map[string]any{"x": 200, "y": 200}, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)

	var failing models.ValidationResult
	status, err = client.JSON(ctx, http.MethodPost, "/api/sandbox/validate", nil, &failing)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.False(t, failing.Passed)
	require.Len(t, failing.Checks, 3)

	byName := make(map[models.CheckName]models.ValidationCheck)
	for _, check := range failing.Checks {
		byName[check.Name] = check
	}
	assert.False(t, byName[models.CheckPointCount].Passed)
	assert.Equal(t, 5, byName[models.CheckPointCount].RequiredPoints)
	assert.Equal(t, 1, byName[models.CheckPointCount].ActualPoints)
	assert.False(t, byName[models.CheckDistribution].Passed)
	assert.True(t, byName[models.CheckPosition].Passed)
	assert.Len(t, failing.Suggestions, 2)

	// The reference layout replaces the plan wholesale.
	var reference placedResponse
	status, err = client.JSON(ctx, http.MethodPost, "/api/sandbox/standard-answer", nil, &reference)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, reference.Placed, 5)
	require.Len(t, reference.State.Points, 5)
	for i, point := range reference.State.Points {
		assert.Equal(t, reference.Placed[i].Label, point.Label)
	}
	assert.Equal(t, "S1", reference.State.Points[0].Label)
	assert.Equal(t, "S5", reference.State.Points[4].Label)

	var valid models.ValidationResult
	status, err = client.JSON(ctx, http.MethodPost, "/api/sandbox/validate", nil, &valid)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.True(t, valid.Passed)
	assert.Empty(t, valid.Suggestions)
	for _, check := range valid.Checks {
		assert.True(t, check.Passed, "check %s should pass", check.Name)
		if check.Name == models.CheckDistribution {
			assert.Equal(t, 5, check.OccupiedCells)
			assert.Equal(t, 16, check.TotalCells)
			assert.InDelta(t, 0.3125, check.Coverage, 1e-9)
		}
	}

	var score models.ScoreResult
	status, err = client.JSON(ctx, http.MethodPost, "/api/sandbox/score", nil, &score)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 89, score.TotalScore)
	assert.Equal(t, models.GradeExcellent, score.Grade)
	assert.Equal(t, models.DimensionDistribution, score.Weakest)
	assert.NotEmpty(t, score.Feedback)
	require.Len(t, score.Breakdown, 4)
	assert.Equal(t, models.DimensionPointCount, score.Breakdown[0].Dimension)
	assert.Equal(t, 30, score.Breakdown[0].Weighted)
	assert.Equal(t, models.DimensionDistribution, score.Breakdown[1].Dimension)
	assert.Equal(t, 19, score.Breakdown[1].Weighted)
	assert.Equal(t, models.DimensionMethod, score.Breakdown[2].Dimension)
	assert.Equal(t, 20, score.Breakdown[2].Weighted)
	assert.Equal(t, models.DimensionOperation, score.Breakdown[3].Dimension)
	assert.Equal(t, 20, score.Breakdown[3].Weighted)

	// Undoing the reference layout brings the lone point back.
	var undone stateResponse
	status, err = client.JSON(ctx, http.MethodPost, "/api/sandbox/undo", nil, &undone)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.True(t, undone.OK)
	require.Len(t, undone.State.Points, 1)
}

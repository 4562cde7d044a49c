package main

import (
	"context"
	"net/http"
	"testing"

	"github.com/mtoivan/samplab/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seededPlanID = "00000000-0000-0000-0000-000000000001"

func Test_application_planPersistence(t *testing.T) {
	t.Parallel()
	client := startTestServer(t)
	ctx := context.Background()

	// Restoring a plan loads its scenario as well, so it works on a fresh
	// session that has never visited a sandbox page.
	var restored stateResponse
	status, err := client.JSON(ctx, http.MethodPost, "/api/sandbox/plans/"+seededPlanID+"/restore", nil, &restored)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.True(t, restored.OK)
	require.NotNil(t, restored.State.Scenario)
	assert.Equal(t, "storage", restored.State.Scenario.ID)
	assert.Equal(t, models.MethodSystematic, restored.State.Method)
	require.Len(t, restored.State.Points, 5)
	assert.Equal(t, "S1", restored.State.Points[0].Label)
	assert.Equal(t, 200.0, restored.State.Points[0].X)
	assert.False(t, restored.State.CanUndo)

	// The restored plan scores the same as its stored record.
	var score models.ScoreResult
	status, err = client.JSON(ctx, http.MethodPost, "/api/sandbox/score", nil, &score)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 89, score.TotalScore)

	var saved savePlanResponse
	status, err = client.JSON(ctx, http.MethodPost, "/api/sandbox/plans", nil, &saved)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.True(t, saved.Saved)
	assert.NotEmpty(t, saved.Plan.ID)
	assert.NotEqual(t, seededPlanID, saved.Plan.ID)
	assert.Equal(t, "storage", saved.Plan.ScenarioID)
	assert.Equal(t, models.MethodSystematic, saved.Plan.Method)
	require.Len(t, saved.Plan.Points, 5)
	assert.Equal(t, 89, saved.Plan.TotalScore)
	assert.Equal(t, models.GradeExcellent, saved.Plan.Grade)
	assert.Equal(t, 89, saved.Score.TotalScore)

	// Latest first: the fresh save precedes the seeded plan.
	var listed listPlansResponse
	status, err = client.JSON(ctx, http.MethodGet, "/api/sandbox/plans", nil, &listed)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.GreaterOrEqual(t, len(listed.Plans), 2)
	assert.Equal(t, saved.Plan.ID, listed.Plans[0].ID)
	var seeded *models.PlanRecord
	for i := range listed.Plans {
		if listed.Plans[i].ID == seededPlanID {
			seeded = &listed.Plans[i]
		}
	}
	require.NotNil(t, seeded, "seeded plan missing from the list")
	assert.Equal(t, 89, seeded.TotalScore)
	assert.Equal(t, models.GradeExcellent, seeded.Grade)

	status, err = client.JSON(ctx, http.MethodPost, "/api/sandbox/plans/ffffffff-ffff-ffff-ffff-ffffffffffff/restore", nil, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, status)
}

func Test_application_savePlanWithoutScenario(t *testing.T) {
	t.Parallel()
	client := startTestServer(t)
	ctx := context.Background()

	status, err := client.JSON(ctx, http.MethodPost, "/api/sandbox/plans", nil, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusConflict, status)
}

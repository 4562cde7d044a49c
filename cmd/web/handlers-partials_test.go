package main

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_application_plansPartial(t *testing.T) {
	t.Parallel()
	client := startTestServer(t)
	ctx := context.Background()

	// htmx requests get the rendered fragment.
	doc, err := client.GetPartial(ctx, "/partials/plans")
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("table.plans-table").Length())
	require.Equal(t, 1, doc.Find("button.restore-plan[data-plan-id='"+seededPlanID+"']").Length())

	// Plain fetches get the same data as JSON.
	var listed listPlansResponse
	status, err := client.JSON(ctx, http.MethodGet, "/partials/plans", nil, &listed)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, listed.Plans)
	assert.Equal(t, seededPlanID, listed.Plans[0].ID)
}

func Test_application_assessmentPartial(t *testing.T) {
	t.Parallel()
	client := startTestServer(t)
	ctx := context.Background()

	// The panel cannot be computed before a scenario is loaded.
	status, err := client.JSON(ctx, http.MethodGet, "/partials/assessment", nil, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusConflict, status)

	_, err = client.GetDoc(ctx, "/sandbox/storage")
	require.NoError(t, err)
	status, err = client.JSON(ctx, http.MethodPost, "/api/sandbox/standard-answer", nil, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)

	doc, err := client.GetPartial(ctx, "/partials/assessment")
	require.NoError(t, err)
	assert.Equal(t, "89", doc.Find(".score strong").Text())
	assert.Equal(t, 3, doc.Find("ul.checks li.check-passed").Length())
	assert.Zero(t, doc.Find("ul.checks li.check-failed").Length())
	assert.NotEmpty(t, doc.Find("p.feedback").Text())

	var data assessmentData
	status, err = client.JSON(ctx, http.MethodGet, "/partials/assessment", nil, &data)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, data.Validation.Passed)
	assert.Equal(t, 89, data.Score.TotalScore)
}

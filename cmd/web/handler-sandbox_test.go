package main

import (
	"context"
	"net/http"
	"testing"

	"github.com/mtoivan/samplab/internal/models"
	"github.com/mtoivan/samplab/internal/sandbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_application_sandboxPage(t *testing.T) {
	t.Parallel()
	client := startTestServer(t)
	ctx := context.Background()

	doc, err := client.GetDoc(ctx, "/sandbox/storage")
	require.NoError(t, err)

	require.Equal(t, 1, doc.Find("canvas#sandbox-canvas").Length())
	require.Equal(t, 4, doc.Find("#method option").Length())
	selected, ok := doc.Find("#method option[selected]").Attr("value")
	require.True(t, ok, "no preselected method option")
	assert.Equal(t, "systematic", selected)
	require.Equal(t, 1, doc.Find("form[action='/sandbox/storage/reset']").Length())
	assert.Contains(t, doc.Find("script").Text(), "window.samplabState")

	resp, err := client.Get(ctx, "/sandbox/does-not-exist")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func Test_application_resetSandbox(t *testing.T) {
	t.Parallel()
	client := startTestServer(t)
	ctx := context.Background()

	_, err := client.GetDoc(ctx, "/sandbox/storage")
	require.NoError(t, err)

	var placed pointResponse
	status, err := client.JSON(ctx, http.MethodPost, "/api/sandbox/points", map[string]any{"x": 200, "y": 200}, &placed)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.True(t, placed.Accepted)

	// Reloading the same scenario keeps the work in progress.
	_, err = client.GetDoc(ctx, "/sandbox/storage")
	require.NoError(t, err)

	var kept sandbox.State
	status, err = client.JSON(ctx, http.MethodGet, "/api/sandbox/state", nil, &kept)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, kept.Points, 1)

	// Navigating to a different scenario starts it from scratch.
	_, err = client.GetDoc(ctx, "/sandbox/landfill")
	require.NoError(t, err)

	var switched sandbox.State
	status, err = client.JSON(ctx, http.MethodGet, "/api/sandbox/state", nil, &switched)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, switched.Scenario)
	assert.Equal(t, "landfill", switched.Scenario.ID)
	assert.Equal(t, models.MethodStratified, switched.Method)
	assert.Equal(t, 10, switched.RequiredPoints)
	assert.Empty(t, switched.Points)

	// Back on the storage hall: place a point, change the method, then
	// restart the exercise through the page form.
	_, err = client.GetDoc(ctx, "/sandbox/storage")
	require.NoError(t, err)

	status, err = client.JSON(ctx, http.MethodPost, "/api/sandbox/points", map[string]any{"x": 300, "y": 300}, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	status, err = client.JSON(ctx, http.MethodPut, "/api/sandbox/method", map[string]any{"method": "random"}, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)

	_, err = client.SubmitForm(ctx, "/sandbox/storage", "/sandbox/storage/reset")
	require.NoError(t, err)

	var reset sandbox.State
	status, err = client.JSON(ctx, http.MethodGet, "/api/sandbox/state", nil, &reset)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, reset.Points)
	assert.False(t, reset.CanUndo)
	assert.Equal(t, models.MethodSystematic, reset.Method)
	assert.InDelta(t, 1.0, reset.View.Zoom, 1e-9)
}

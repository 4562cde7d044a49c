package sandbox_test

import (
	"context"
	"fmt"
	"github.com/mtoivan/samplab/internal/models"
	"github.com/mtoivan/samplab/internal/sandbox"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestPlaybackRunsToCompletion(t *testing.T) {
	s := newTestSession(t, openScenario())
	require.NoError(t, s.LoadScenario("open"))

	events, err := s.StartPlayback(context.Background(), models.MethodSystematic, 4, time.Millisecond)
	require.NoError(t, err)

	var placements []sandbox.PlaybackEvent
	var done sandbox.PlaybackEvent
	for ev := range events {
		if ev.Done {
			done = ev
			continue
		}
		placements = append(placements, ev)
	}

	require.Len(t, placements, 4)
	for i, ev := range placements {
		require.NotNil(t, ev.Point)
		require.Equal(t, i+1, ev.Index)
		require.Equal(t, 4, ev.Total)
		require.Equal(t, fmt.Sprintf("S%d", i+1), ev.Point.Label)
	}
	require.True(t, done.Done)
	require.Equal(t, 4, done.Index)

	state := s.State()
	require.Len(t, state.Points, 4)
	require.False(t, state.PlaybackRunning)
	require.Equal(t, models.MethodSystematic, state.Method, "playback records the strategy")

	// Every timed insert is its own undo step.
	require.Equal(t, 5, state.HistorySize)
	require.True(t, s.Undo())
	require.Len(t, s.State().Points, 3)
}

func TestPlaybackValidation(t *testing.T) {
	s := newTestSession(t, openScenario())

	_, err := s.StartPlayback(context.Background(), models.MethodSystematic, 3, time.Millisecond)
	require.ErrorIs(t, err, sandbox.ErrNoScenario)

	require.NoError(t, s.LoadScenario("open"))
	_, err = s.StartPlayback(context.Background(), "spiral", 3, time.Millisecond)
	require.ErrorIs(t, err, sandbox.ErrUnknownMethod)
}

func TestPlaybackStop(t *testing.T) {
	s := newTestSession(t, openScenario())
	require.NoError(t, s.LoadScenario("open"))

	events, err := s.StartPlayback(context.Background(), models.MethodSystematic, 3, time.Minute)
	require.NoError(t, err)

	first := <-events
	require.NotNil(t, first.Point, "the first point lands without waiting for a tick")
	require.Equal(t, 1, first.Index)

	s.StopPlayback()
	for range events {
		// drained; the channel closes once the goroutine exits
	}

	state := s.State()
	require.Len(t, state.Points, 1)
	require.False(t, state.PlaybackRunning)
}

func TestPlaybackScenarioSwitchCancels(t *testing.T) {
	s := newTestSession(t, openScenario(), demoScenario())
	require.NoError(t, s.LoadScenario("open"))

	events, err := s.StartPlayback(context.Background(), models.MethodSystematic, 3, time.Minute)
	require.NoError(t, err)

	first := <-events
	require.NotNil(t, first.Point)

	require.NoError(t, s.LoadScenario("demo"))
	for ev := range events {
		require.False(t, ev.Done, "a cancelled run must not report completion")
	}

	state := s.State()
	require.Equal(t, "demo", state.Scenario.ID)
	require.Empty(t, state.Points, "no stale insert lands after the switch")
	require.False(t, state.PlaybackRunning)
}

func TestPlaybackSuperseded(t *testing.T) {
	s := newTestSession(t, openScenario())
	require.NoError(t, s.LoadScenario("open"))

	slow, err := s.StartPlayback(context.Background(), models.MethodSystematic, 3, time.Minute)
	require.NoError(t, err)
	first := <-slow
	require.NotNil(t, first.Point)

	fast, err := s.StartPlayback(context.Background(), models.MethodSystematic, 2, time.Millisecond)
	require.NoError(t, err)

	for range slow {
		// the superseded run winds down without further placements
	}
	placed := 0
	for ev := range fast {
		if !ev.Done {
			placed++
		}
	}
	require.Equal(t, 2, placed)

	state := s.State()
	require.Len(t, state.Points, 3, "one point from the old run, two from the new")
	require.Equal(t, "S3", state.Points[2].Label)
	require.False(t, state.PlaybackRunning)
}

package sandbox

import (
	"context"
	"github.com/mtoivan/samplab/internal/errors"
	"github.com/mtoivan/samplab/internal/models"
	"gonum.org/v1/gonum/spatial/r2"
	"log/slog"
	"time"
)

const defaultPlaybackInterval = 500 * time.Millisecond

// PlaybackEvent is one step of a timed auto-placement run. Point is set on
// placement steps and nil on the final Done event. Index counts placed points
// from 1; Total is the upper bound of the run.
type PlaybackEvent struct {
	Point *models.SamplingPoint `json:"point,omitempty"`
	Index int                   `json:"index"`
	Total int                   `json:"total"`
	Done  bool                  `json:"done"`
}

// playbackRun tracks one playback goroutine. done closes when the goroutine
// has fully exited.
type playbackRun struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// StartPlayback generates a layout and inserts it point by point on a timer:
// the first point immediately, each next one an interval later. Every insert
// goes through the normal gate and labeling path and records its own undo
// step. The returned channel is buffered for the whole run, so a slow or
// absent consumer never stalls placement, and closes when the run ends.
//
// Starting a new playback, loading a scenario, or clearing the plan cancels a
// running one; the cancelled run stops inserting before the session state it
// captured can go stale.
func (s *Session) StartPlayback(ctx context.Context, method models.Method, count int, interval time.Duration) (<-chan PlaybackEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scenario == nil {
		return nil, ErrNoScenario
	}
	if !method.Valid() {
		return nil, errors.Wrap(ErrUnknownMethod, "start playback", slog.String("method", string(method)))
	}
	if interval <= 0 {
		interval = defaultPlaybackInterval
	}
	if count <= 0 {
		count = s.requiredPointsLocked()
	}
	s.cancelPlaybackLocked()
	s.method = method

	candidates := generateLayout(s.scenario, method, count, s.rng)

	runCtx, cancel := context.WithCancel(ctx)
	run := &playbackRun{cancel: cancel, done: make(chan struct{})}
	s.playback = run

	events := make(chan PlaybackEvent, len(candidates)+1)
	go s.runPlayback(runCtx, run, candidates, interval, events)
	return events, nil
}

func (s *Session) runPlayback(ctx context.Context, run *playbackRun, candidates []r2.Vec, interval time.Duration, events chan<- PlaybackEvent) {
	defer close(events)
	defer close(run.done)
	defer s.finishPlayback(run)
	defer run.cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	total := len(candidates)
	placed := 0
	for i, candidate := range candidates {
		if i > 0 {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
		point, err := s.playbackStep(ctx, candidate)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			// gate rejection: skip the candidate, keep the run going
			continue
		}
		placed++
		p := point
		events <- PlaybackEvent{Point: &p, Index: placed, Total: total}
	}
	events <- PlaybackEvent{Index: placed, Total: total, Done: true}
}

// playbackStep inserts one candidate under the session lock. Rechecking the
// context under the lock is the barrier against stale inserts: scenario
// switches and clears cancel the run while holding the same lock, so a
// cancelled step can never touch the state that replaced it.
func (s *Session) playbackStep(ctx context.Context, candidate r2.Vec) (models.SamplingPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return models.SamplingPoint{}, err
	}
	point, err := s.appendPointLocked(candidate)
	if err != nil {
		return models.SamplingPoint{}, err
	}
	s.commitLocked()
	return point, nil
}

func (s *Session) finishPlayback(run *playbackRun) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.playback == run {
		s.playback = nil
	}
}

// cancelPlaybackLocked stops any running playback without waiting for its
// goroutine; the cancelled context guarantees no further insert can land.
func (s *Session) cancelPlaybackLocked() {
	if s.playback == nil {
		return
	}
	s.playback.cancel()
	s.playback = nil
}

// StopPlayback cancels a running playback and waits for its goroutine to
// exit. It is a no-op while idle.
func (s *Session) StopPlayback() {
	s.mu.Lock()
	run := s.playback
	s.cancelPlaybackLocked()
	s.mu.Unlock()

	if run != nil {
		<-run.done
	}
}

// PlaybackRunning reports whether a timed run is in progress.
func (s *Session) PlaybackRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playback != nil
}

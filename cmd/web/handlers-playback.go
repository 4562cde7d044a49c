package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mtoivan/samplab/internal/errors"
	"github.com/mtoivan/samplab/internal/models"
	"github.com/mtoivan/samplab/internal/sandbox"
)

// startPlayback kicks off a timed auto-placement run. The run itself outlives
// this request: its events are handed to the broker, and the SSE handler
// below streams them to the browser.
func (app *application) startPlayback(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Method string `json:"method"`
		Count  int    `json:"count"`
	}
	if err := readJSON(w, r, &input); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	sess := app.currentSandbox(r)
	// Deliberately not the request context: the run continues after this
	// response so the event stream can pick it up.
	events, err := sess.StartPlayback(context.Background(), models.Method(input.Method), input.Count, app.playbackInterval)
	switch {
	case errors.Is(err, sandbox.ErrNoScenario):
		app.clientError(w, r, http.StatusConflict)
		return
	case errors.Is(err, sandbox.ErrUnknownMethod):
		app.clientError(w, r, http.StatusBadRequest)
		return
	case err != nil:
		app.serverError(w, r, err)
		return
	}

	app.metrics.PlaybackStarted()

	// The relay buffers the whole run so the placement goroutine never blocks
	// on a slow or absent stream consumer.
	relay := make(chan sandbox.PlaybackEvent, cap(events)+1)
	app.playbackBroker.Publish(sess.ID(), relay)
	go func() {
		defer app.playbackBroker.Unpublish(sess.ID(), relay)
		defer close(relay)
		for event := range events {
			relay <- event
		}
	}()

	app.writeJSON(w, r, http.StatusOK, stateResponse{OK: true, State: sess.State()})
}

// stopPlayback cancels a running playback. Already-placed points stay.
func (app *application) stopPlayback(w http.ResponseWriter, r *http.Request) {
	sess := app.currentSandbox(r)
	sess.StopPlayback()
	app.writeJSON(w, r, http.StatusOK, stateResponse{OK: true, State: sess.State()})
}

// playbackEvents streams the playback run as Server Sent Events. When no run
// is active, or a second stream attaches after the run finished, it emits a
// single terminal event carrying the settled point count.
func (app *application) playbackEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		app.serverError(w, r, errors.New("response writer does not support streaming"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// The run is delivered on the server's write timeout budget otherwise.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		app.logger.Debug("failed to clear write deadline", "error", err.Error())
	}

	sess := app.currentSandbox(r)
	subscription := app.playbackBroker.Subscribe(sess.ID())

	var events chan sandbox.PlaybackEvent
	select {
	case events = <-subscription:
	case <-r.Context().Done():
		return
	}
	if events == nil {
		// No active run. Tell the client the stream is settled so it can
		// fall back to fetching the state.
		state := sess.State()
		count := len(state.Points)
		_ = writeServerSentEvent(w, flusher, sandbox.PlaybackEvent{Index: count, Total: count, Done: true})
		return
	}

	for {
		select {
		case event, open := <-events:
			if !open {
				return
			}
			if err := writeServerSentEvent(w, flusher, event); err != nil {
				return
			}
			if event.Done {
				return
			}
		case <-r.Context().Done():
			return
		}
	}
}

func writeServerSentEvent(w io.Writer, flusher http.Flusher, event sandbox.PlaybackEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	if _, err = fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return errors.Wrap(err, "write event")
	}
	flusher.Flush()
	return nil
}

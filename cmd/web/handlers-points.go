package main

import (
	"net/http"

	"github.com/mtoivan/samplab/internal/errors"
	"github.com/mtoivan/samplab/internal/models"
	"github.com/mtoivan/samplab/internal/sandbox"
)

// pointResponse is the envelope for placement operations. Rejected placements
// are an expected outcome, so they come back as HTTP 200 with Accepted false.
type pointResponse struct {
	Accepted bool                  `json:"accepted"`
	Point    *models.SamplingPoint `json:"point,omitempty"`
	State    sandbox.State         `json:"state"`
}

type stateResponse struct {
	OK    bool          `json:"ok"`
	State sandbox.State `json:"state"`
}

// addPoint places a sampling point. Coordinates are canvas units unless the
// request flags them as screen pixels.
func (app *application) addPoint(w http.ResponseWriter, r *http.Request) {
	var input struct {
		X      float64 `json:"x"`
		Y      float64 `json:"y"`
		Screen bool    `json:"screen"`
	}
	if err := readJSON(w, r, &input); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	sess := app.currentSandbox(r)
	var (
		point models.SamplingPoint
		err   error
	)
	if input.Screen {
		point, err = sess.AddPointScreen(input.X, input.Y)
	} else {
		point, err = sess.AddPoint(input.X, input.Y)
	}

	state := sess.State()
	switch {
	case errors.Is(err, sandbox.ErrRejectedPlacement):
		app.metrics.Placement(string(state.Method), false)
		app.writeJSON(w, r, http.StatusOK, pointResponse{Accepted: false, State: state})
	case errors.Is(err, sandbox.ErrNoScenario):
		app.clientError(w, r, http.StatusConflict)
	case err != nil:
		app.serverError(w, r, err)
	default:
		app.metrics.Placement(string(state.Method), true)
		app.writeJSON(w, r, http.StatusOK, pointResponse{Accepted: true, Point: &point, State: state})
	}
}

// movePoint relocates an existing point. Drag previews leave the commit flag
// off; the final request of a drag sets it to record one undo step.
func (app *application) movePoint(w http.ResponseWriter, r *http.Request) {
	var input struct {
		X      float64 `json:"x"`
		Y      float64 `json:"y"`
		Screen bool    `json:"screen"`
		Commit bool    `json:"commit"`
	}
	if err := readJSON(w, r, &input); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	sess := app.currentSandbox(r)
	pointID := r.PathValue("pointID")
	var (
		point models.SamplingPoint
		err   error
	)
	if input.Screen {
		point, err = sess.MovePointScreen(pointID, input.X, input.Y)
	} else {
		point, err = sess.MovePoint(pointID, input.X, input.Y)
	}
	if err == nil && input.Commit {
		sess.CommitMove()
	}

	state := sess.State()
	switch {
	case errors.Is(err, sandbox.ErrRejectedPlacement):
		app.metrics.Placement(string(state.Method), false)
		app.writeJSON(w, r, http.StatusOK, pointResponse{Accepted: false, State: state})
	case errors.Is(err, sandbox.ErrPointNotFound):
		app.notFound(w, r)
	case errors.Is(err, sandbox.ErrNoScenario):
		app.clientError(w, r, http.StatusConflict)
	case err != nil:
		app.serverError(w, r, err)
	default:
		app.metrics.Placement(string(state.Method), true)
		app.writeJSON(w, r, http.StatusOK, pointResponse{Accepted: true, Point: &point, State: state})
	}
}

// annotatePoint replaces a point's optional depth and note annotations.
func (app *application) annotatePoint(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Depth float64 `json:"depth"`
		Note  string  `json:"note"`
	}
	if err := readJSON(w, r, &input); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	sess := app.currentSandbox(r)
	point, err := sess.AnnotatePoint(r.PathValue("pointID"), input.Depth, input.Note)
	switch {
	case errors.Is(err, sandbox.ErrPointNotFound):
		app.notFound(w, r)
	case errors.Is(err, sandbox.ErrNoScenario):
		app.clientError(w, r, http.StatusConflict)
	case err != nil:
		app.serverError(w, r, err)
	default:
		app.writeJSON(w, r, http.StatusOK, pointResponse{Accepted: true, Point: &point, State: sess.State()})
	}
}

func (app *application) deletePoint(w http.ResponseWriter, r *http.Request) {
	sess := app.currentSandbox(r)

	err := sess.DeletePoint(r.PathValue("pointID"))
	switch {
	case errors.Is(err, sandbox.ErrPointNotFound):
		app.notFound(w, r)
	case errors.Is(err, sandbox.ErrNoScenario):
		app.clientError(w, r, http.StatusConflict)
	case err != nil:
		app.serverError(w, r, err)
	default:
		app.writeJSON(w, r, http.StatusOK, stateResponse{OK: true, State: sess.State()})
	}
}

// clearPoints wipes the plan as a single undoable step.
func (app *application) clearPoints(w http.ResponseWriter, r *http.Request) {
	sess := app.currentSandbox(r)
	sess.Clear()
	app.writeJSON(w, r, http.StatusOK, stateResponse{OK: true, State: sess.State()})
}

// undo steps back one snapshot. At the baseline OK is false and nothing
// changes.
func (app *application) undo(w http.ResponseWriter, r *http.Request) {
	sess := app.currentSandbox(r)
	ok := sess.Undo()
	app.writeJSON(w, r, http.StatusOK, stateResponse{OK: ok, State: sess.State()})
}

// redo re-applies the next snapshot if an undo left one available.
func (app *application) redo(w http.ResponseWriter, r *http.Request) {
	sess := app.currentSandbox(r)
	ok := sess.Redo()
	app.writeJSON(w, r, http.StatusOK, stateResponse{OK: ok, State: sess.State()})
}

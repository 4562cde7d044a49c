package main

import (
	"net/http"

	"github.com/mtoivan/samplab/internal/errors"
	"github.com/mtoivan/samplab/internal/models"
	"github.com/mtoivan/samplab/internal/sandbox"
)

// setView updates the viewport. The action selects a relative step; without
// one the request sets zoom and pan absolutely.
func (app *application) setView(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Action string  `json:"action"`
		Zoom   float64 `json:"zoom"`
		PanX   float64 `json:"panX"`
		PanY   float64 `json:"panY"`
		DX     float64 `json:"dx"`
		DY     float64 `json:"dy"`
	}
	if err := readJSON(w, r, &input); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	sess := app.currentSandbox(r)
	switch input.Action {
	case "zoomIn":
		sess.ZoomIn()
	case "zoomOut":
		sess.ZoomOut()
	case "pan":
		sess.Pan(input.DX, input.DY)
	case "reset":
		sess.ResetView()
	case "":
		sess.SetView(input.Zoom, input.PanX, input.PanY)
	default:
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	app.writeJSON(w, r, http.StatusOK, stateResponse{OK: true, State: sess.State()})
}

type hoverResponse struct {
	Cell  *sandbox.GridCell `json:"cell"`
	State sandbox.State     `json:"state"`
}

// hover reports the grid cell under the pointer, null outside the plan.
func (app *application) hover(w http.ResponseWriter, r *http.Request) {
	var input struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := readJSON(w, r, &input); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	sess := app.currentSandbox(r)
	cell := sess.HoverScreen(input.X, input.Y)
	app.writeJSON(w, r, http.StatusOK, hoverResponse{Cell: cell, State: sess.State()})
}

func (app *application) setSnap(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Enabled bool `json:"enabled"`
	}
	if err := readJSON(w, r, &input); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	sess := app.currentSandbox(r)
	sess.SetSnap(input.Enabled)
	app.writeJSON(w, r, http.StatusOK, stateResponse{OK: true, State: sess.State()})
}

func (app *application) setMethod(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Method string `json:"method"`
	}
	if err := readJSON(w, r, &input); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	sess := app.currentSandbox(r)
	if err := sess.SetMethod(models.Method(input.Method)); err != nil {
		if errors.Is(err, sandbox.ErrUnknownMethod) {
			app.clientError(w, r, http.StatusBadRequest)
			return
		}
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, stateResponse{OK: true, State: sess.State()})
}

func (app *application) sandboxState(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, r, http.StatusOK, app.currentSandbox(r).State())
}

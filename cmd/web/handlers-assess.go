package main

import (
	"net/http"

	"github.com/mtoivan/samplab/internal/errors"
	"github.com/mtoivan/samplab/internal/models"
	"github.com/mtoivan/samplab/internal/sandbox"
)

type placedResponse struct {
	Placed []models.SamplingPoint `json:"placed"`
	State  sandbox.State          `json:"state"`
}

// autoPlace generates a strategy layout and appends every accepted candidate
// as one undo step. count <= 0 falls back to the scenario's required count.
func (app *application) autoPlace(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Method string `json:"method"`
		Count  int    `json:"count"`
	}
	if err := readJSON(w, r, &input); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	sess := app.currentSandbox(r)
	placed, err := sess.AutoPlace(models.Method(input.Method), input.Count)
	switch {
	case errors.Is(err, sandbox.ErrNoScenario):
		app.clientError(w, r, http.StatusConflict)
	case errors.Is(err, sandbox.ErrUnknownMethod):
		app.clientError(w, r, http.StatusBadRequest)
	case err != nil:
		app.serverError(w, r, err)
	default:
		state := sess.State()
		for range placed {
			app.metrics.Placement(string(state.Method), true)
		}
		app.writeJSON(w, r, http.StatusOK, placedResponse{Placed: placed, State: state})
	}
}

// standardAnswer replaces the plan with the scenario's reference layout.
func (app *application) standardAnswer(w http.ResponseWriter, r *http.Request) {
	sess := app.currentSandbox(r)

	placed, err := sess.LoadStandardAnswer()
	switch {
	case errors.Is(err, sandbox.ErrNoScenario):
		app.clientError(w, r, http.StatusConflict)
	case err != nil:
		app.serverError(w, r, err)
	default:
		app.writeJSON(w, r, http.StatusOK, placedResponse{Placed: placed, State: sess.State()})
	}
}

func (app *application) validatePlan(w http.ResponseWriter, r *http.Request) {
	sess := app.currentSandbox(r)

	result, err := sess.Validate()
	switch {
	case errors.Is(err, sandbox.ErrNoScenario):
		app.clientError(w, r, http.StatusConflict)
	case err != nil:
		app.serverError(w, r, err)
	default:
		app.writeJSON(w, r, http.StatusOK, result)
	}
}

func (app *application) scorePlan(w http.ResponseWriter, r *http.Request) {
	sess := app.currentSandbox(r)

	result, err := sess.Score()
	switch {
	case errors.Is(err, sandbox.ErrNoScenario):
		app.clientError(w, r, http.StatusConflict)
	case err != nil:
		app.serverError(w, r, err)
	default:
		app.metrics.PlanScored(result.TotalScore)
		app.writeJSON(w, r, http.StatusOK, result)
	}
}

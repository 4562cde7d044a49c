package main

import (
	"net/http"

	"github.com/mtoivan/samplab/internal/errors"
	"github.com/mtoivan/samplab/internal/models"
	"github.com/mtoivan/samplab/internal/sandbox"
)

type assessmentData struct {
	Validation models.ValidationResult `json:"validation"`
	Score      models.ScoreResult      `json:"score"`
}

// plansPartial re-renders the saved-plans panel. htmx swaps get the HTML
// fragment; plain fetches get the same data as JSON.
func (app *application) plansPartial(w http.ResponseWriter, r *http.Request) {
	plans, err := app.plans.Latest(r.Context(), recentPlanLimit)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	h := app.htmx.NewHandler(w, r)
	if h.RenderPartial() {
		app.renderPartial(w, r, http.StatusOK, "plans", listPlansResponse{Plans: plans})
		return
	}
	app.writeJSON(w, r, http.StatusOK, listPlansResponse{Plans: plans})
}

// assessmentPartial renders the validation and score panel for the current
// plan in one round trip.
func (app *application) assessmentPartial(w http.ResponseWriter, r *http.Request) {
	sess := app.currentSandbox(r)

	validation, err := sess.Validate()
	if errors.Is(err, sandbox.ErrNoScenario) {
		app.clientError(w, r, http.StatusConflict)
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	score, err := sess.Score()
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := assessmentData{Validation: validation, Score: score}
	h := app.htmx.NewHandler(w, r)
	if h.RenderPartial() {
		app.renderPartial(w, r, http.StatusOK, "assessment", data)
		return
	}
	app.writeJSON(w, r, http.StatusOK, data)
}

package main

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/mtoivan/samplab/internal/errors"
	"github.com/mtoivan/samplab/internal/models"
	"github.com/mtoivan/samplab/internal/scenarios"
)

type sandboxTemplateData struct {
	BaseTemplateData
	Scenario *models.Scenario
	Methods  []models.Method
	// StateJSON bootstraps the canvas script with the full sandbox state.
	StateJSON template.JS
}

// sandboxPage renders the canvas page for one scenario. Navigating to a
// different scenario resets the sandbox; reloading the same one keeps the
// current plan so a refresh never loses work.
func (app *application) sandboxPage(w http.ResponseWriter, r *http.Request) {
	scenarioID := r.PathValue("scenarioID")
	sess := app.currentSandbox(r)

	current := sess.Scenario()
	if current == nil || current.ID != scenarioID {
		if err := sess.LoadScenario(scenarioID); err != nil {
			if errors.Is(err, scenarios.ErrNotFound) {
				app.notFound(w, r)
				return
			}
			app.serverError(w, r, err)
			return
		}
	}

	state := sess.State()
	stateJSON, err := json.Marshal(state)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "marshal sandbox state"))
		return
	}

	data := sandboxTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Scenario:         state.Scenario,
		Methods:          models.Methods(),
		StateJSON:        template.JS(stateJSON), //nolint:gosec // marshalled server side, not user input.
	}
	app.render(w, r, http.StatusOK, "sandbox", data)
}

// resetSandbox reloads the scenario from scratch, dropping points and history.
func (app *application) resetSandbox(w http.ResponseWriter, r *http.Request) {
	scenarioID := r.PathValue("scenarioID")
	sess := app.currentSandbox(r)

	if err := sess.LoadScenario(scenarioID); err != nil {
		if errors.Is(err, scenarios.ErrNotFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/sandbox/"+scenarioID, http.StatusSeeOther)
}

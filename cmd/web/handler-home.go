package main

import (
	"net/http"

	"github.com/mtoivan/samplab/internal/models"
)

type homeTemplateData struct {
	BaseTemplateData
	Scenarios []*models.Scenario
}

// home lists the scenario catalog so a student can pick an exercise.
func (app *application) home(w http.ResponseWriter, r *http.Request) {
	data := homeTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Scenarios:        app.scenarios.All(),
	}
	app.render(w, r, http.StatusOK, "home", data)
}

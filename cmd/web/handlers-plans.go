package main

import (
	"log/slog"
	"net/http"

	"github.com/mtoivan/samplab/internal/errors"
	"github.com/mtoivan/samplab/internal/models"
	"github.com/mtoivan/samplab/internal/sandbox"
	"github.com/mtoivan/samplab/internal/scenarios"
)

type savePlanResponse struct {
	Plan  models.PlanRecord  `json:"plan"`
	Score models.ScoreResult `json:"score"`
	Saved bool               `json:"saved"`
}

// savePlan scores the current plan and persists it. A storage failure is
// reported as saved false but never touches the in-memory session, so the
// student keeps working and can retry.
func (app *application) savePlan(w http.ResponseWriter, r *http.Request) {
	sess := app.currentSandbox(r)

	record, score, err := sess.BuildPlan()
	if errors.Is(err, sandbox.ErrNoScenario) {
		app.clientError(w, r, http.StatusConflict)
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.metrics.PlanScored(score.TotalScore)

	saved := true
	if err = app.plans.Insert(r.Context(), record); err != nil {
		saved = false
		app.logger.LogAttrs(r.Context(), slog.LevelError, "failed to save plan",
			slog.String("plan_id", record.ID), errors.SlogError(err))
	}

	app.writeJSON(w, r, http.StatusOK, savePlanResponse{Plan: record, Score: score, Saved: saved})
}

const recentPlanLimit = 20

type listPlansResponse struct {
	Plans []models.PlanRecord `json:"plans"`
}

func (app *application) listPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := app.plans.Latest(r.Context(), recentPlanLimit)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, listPlansResponse{Plans: plans})
}

// restorePlan loads a saved plan back into the sandbox, scenario included.
func (app *application) restorePlan(w http.ResponseWriter, r *http.Request) {
	sess := app.currentSandbox(r)

	record, err := app.plans.Get(r.Context(), r.PathValue("planID"))
	if errors.Is(err, models.ErrPlanNotFound) {
		app.notFound(w, r)
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	if err = sess.RestorePlan(*record); err != nil {
		// The catalog may have dropped the scenario since the plan was saved.
		if errors.Is(err, scenarios.ErrNotFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, stateResponse{OK: true, State: sess.State()})
}

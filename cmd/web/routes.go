package main

import (
	"net/http"
	"path/filepath"

	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	fileServer := http.FileServer(http.Dir(filepath.Join(app.uiDir, "static")))
	app.handle(mux, "GET /static/", cacheForeverHeaders(http.StripPrefix("/static", fileServer)))

	// Server-rendered pages carry the CSRF and CSP machinery.
	pageTimeout := func(next http.Handler) http.Handler {
		return timeoutHandler(next, defaultTimeout)
	}
	page := alice.New(
		pageTimeout,
		app.sessionManager.LoadAndSave,
		noSurf,
		app.commonContext,
		app.sandboxSession,
	)
	app.handle(mux, "GET /{$}", page.ThenFunc(app.home))
	app.handle(mux, "GET /sandbox/{scenarioID}", page.ThenFunc(app.sandboxPage))
	app.handle(mux, "POST /sandbox/{scenarioID}/reset", page.ThenFunc(app.resetSandbox))
	app.handle(mux, "GET /partials/plans", page.ThenFunc(app.plansPartial))
	app.handle(mux, "GET /partials/assessment", page.ThenFunc(app.assessmentPartial))

	// The JSON API is called with same-origin fetches from the sandbox page.
	api := alice.New(app.sessionManager.LoadAndSave, app.sandboxSession)
	app.handle(mux, "GET /api/sandbox/state", api.ThenFunc(app.sandboxState))
	app.handle(mux, "POST /api/sandbox/points", api.ThenFunc(app.addPoint))
	app.handle(mux, "PATCH /api/sandbox/points/{pointID}", api.ThenFunc(app.movePoint))
	app.handle(mux, "PUT /api/sandbox/points/{pointID}/properties", api.ThenFunc(app.annotatePoint))
	app.handle(mux, "DELETE /api/sandbox/points/{pointID}", api.ThenFunc(app.deletePoint))
	app.handle(mux, "POST /api/sandbox/clear", api.ThenFunc(app.clearPoints))
	app.handle(mux, "POST /api/sandbox/undo", api.ThenFunc(app.undo))
	app.handle(mux, "POST /api/sandbox/redo", api.ThenFunc(app.redo))
	app.handle(mux, "PUT /api/sandbox/view", api.ThenFunc(app.setView))
	app.handle(mux, "PUT /api/sandbox/hover", api.ThenFunc(app.hover))
	app.handle(mux, "PUT /api/sandbox/snap", api.ThenFunc(app.setSnap))
	app.handle(mux, "PUT /api/sandbox/method", api.ThenFunc(app.setMethod))
	app.handle(mux, "POST /api/sandbox/autoplace", api.ThenFunc(app.autoPlace))
	app.handle(mux, "POST /api/sandbox/standard-answer", api.ThenFunc(app.standardAnswer))
	app.handle(mux, "POST /api/sandbox/validate", api.ThenFunc(app.validatePlan))
	app.handle(mux, "POST /api/sandbox/score", api.ThenFunc(app.scorePlan))
	app.handle(mux, "POST /api/sandbox/plans", api.ThenFunc(app.savePlan))
	app.handle(mux, "GET /api/sandbox/plans", api.ThenFunc(app.listPlans))
	app.handle(mux, "POST /api/sandbox/plans/{planID}/restore", api.ThenFunc(app.restorePlan))
	app.handle(mux, "POST /api/sandbox/playback", api.ThenFunc(app.startPlayback))
	app.handle(mux, "DELETE /api/sandbox/playback", api.ThenFunc(app.stopPlayback))

	// scs LoadAndSave buffers the whole response, which would stall the event
	// stream, so this route loads the session without the save wrapper.
	stream := alice.New(app.serverSentEventMiddleware, app.sandboxSession)
	app.handle(mux, "GET /api/sandbox/playback/events", stream.ThenFunc(app.playbackEvents))

	app.handle(mux, "GET /api/healthy", http.HandlerFunc(app.healthy))
	mux.Handle("GET /metrics", app.metrics.Handler())

	return app.recoverPanic(app.logRequest(secureHeaders(mux)))
}

// handle registers the handler wrapped with the request metrics. The route
// pattern doubles as the metric label so that path parameters do not blow up
// the cardinality.
func (app *application) handle(mux *http.ServeMux, pattern string, handler http.Handler) {
	mux.Handle(pattern, app.metrics.WrapHandler(pattern, handler))
}

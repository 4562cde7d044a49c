package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mtoivan/samplab/internal/contexthelpers"
	"github.com/mtoivan/samplab/internal/errors"
	"github.com/mtoivan/samplab/internal/sandbox"
)

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error",
		slog.String("method", method), slog.String("uri", uri), errors.SlogError(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.Debug(http.StatusText(status), "method", method, "uri", uri)
	http.Error(w, http.StatusText(status), status)
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	app.clientError(w, r, http.StatusNotFound)
}

// currentSandbox resolves the sandbox session assigned to the request. The
// registry creates the session on first use, so this never returns nil behind
// the session middleware.
func (app *application) currentSandbox(r *http.Request) *sandbox.Session {
	return app.sandboxes.Get(contexthelpers.SandboxID(r.Context()))
}

func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "failed to encode response",
			slog.String("uri", r.URL.RequestURI()), errors.SlogError(err))
	}
}

const maxJSONBodyBytes = 1 << 20

// readJSON decodes the request body into dst, rejecting oversized bodies and
// trailing garbage.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		return errors.Wrap(err, "decode request body")
	}
	if decoder.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

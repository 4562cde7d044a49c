package main

import "net/http"

// healthyResponse tells a deploy check that the server is up and that the
// scenario catalog actually loaded.
type healthyResponse struct {
	Status    string `json:"status"`
	Scenarios int    `json:"scenarios"`
}

func (app *application) healthy(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, r, http.StatusOK, healthyResponse{
		Status:    "ok",
		Scenarios: app.scenarios.Len(),
	})
}

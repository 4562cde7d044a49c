package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_WrapHandler(t *testing.T) {
	t.Parallel()
	m := NewMetrics(func() float64 { return 3 })

	teapot := m.WrapHandler("GET /teapot", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	for range 2 {
		w := httptest.NewRecorder()
		teapot.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/teapot", nil))
		require.Equal(t, http.StatusTeapot, w.Code)
	}

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `http_requests_total{route="GET /teapot",status="418"} 2`)
	assert.Contains(t, body, `active_sandbox_sessions 3`)
}

// A nil Metrics is a no-op so tests can skip metrics wiring.
func TestMetrics_nil(t *testing.T) {
	t.Parallel()
	var m *Metrics

	m.Placement("random", true)
	m.Placement("random", false)
	m.PlanScored(80)
	m.PlaybackStarted()

	handler := m.WrapHandler("GET /ok", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.Equal(t, http.StatusOK, w.Code)
}

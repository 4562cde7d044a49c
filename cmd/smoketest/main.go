package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mtoivan/samplab/internal/e2etest"
	"github.com/mtoivan/samplab/internal/errors"
	"github.com/mtoivan/samplab/internal/logging"
	"github.com/mtoivan/samplab/internal/sandbox"
)

// TestSandbox drives one full exercise round against a running instance: the
// catalog page, the sandbox page, a placement, an undo, and the assessment.
func TestSandbox(client *e2etest.Client) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second) //nolint:mnd // 30 seconds
	defer cancel()

	doc, err := client.GetDoc(ctx, "/")
	if err != nil {
		return errors.Wrap(err, "load catalog page")
	}
	if doc.Find(".scenario-card").Length() == 0 {
		return errors.New("catalog page lists no scenarios")
	}

	if _, err = client.GetDoc(ctx, "/sandbox/storage"); err != nil {
		return errors.Wrap(err, "load sandbox page")
	}

	var added struct {
		Accepted bool          `json:"accepted"`
		State    sandbox.State `json:"state"`
	}
	status, err := client.JSON(ctx, http.MethodPost, "/api/sandbox/points", map[string]any{"x": 200, "y": 200}, &added)
	if err != nil {
		return errors.Wrap(err, "add point")
	}
	if status != http.StatusOK || !added.Accepted {
		return errors.New("placement not accepted", slog.Int("status", status))
	}

	var undone struct {
		OK bool `json:"ok"`
	}
	if status, err = client.JSON(ctx, http.MethodPost, "/api/sandbox/undo", nil, &undone); err != nil {
		return errors.Wrap(err, "undo")
	}
	if status != http.StatusOK || !undone.OK {
		return errors.New("undo failed", slog.Int("status", status))
	}

	var placed struct {
		Placed []any `json:"placed"`
	}
	if status, err = client.JSON(ctx, http.MethodPost, "/api/sandbox/standard-answer", nil, &placed); err != nil {
		return errors.Wrap(err, "load standard answer")
	}
	if status != http.StatusOK || len(placed.Placed) == 0 {
		return errors.New("standard answer placed no points", slog.Int("status", status))
	}

	var validation struct {
		Passed bool `json:"passed"`
	}
	if status, err = client.JSON(ctx, http.MethodPost, "/api/sandbox/validate", nil, &validation); err != nil {
		return errors.Wrap(err, "validate plan")
	}
	if status != http.StatusOK || !validation.Passed {
		return errors.New("standard answer failed validation", slog.Int("status", status))
	}

	var score struct {
		TotalScore int    `json:"totalScore"`
		Grade      string `json:"grade"`
	}
	if status, err = client.JSON(ctx, http.MethodPost, "/api/sandbox/score", nil, &score); err != nil {
		return errors.Wrap(err, "score plan")
	}
	if status != http.StatusOK || score.TotalScore < 80 { //nolint:mnd // the reference layout grades excellent.
		return errors.New("standard answer scored too low",
			slog.Int("status", status), slog.Int("totalScore", score.TotalScore), slog.String("grade", score.Grade))
	}

	// Leave the instance with an empty plan for the next student.
	if status, err = client.JSON(ctx, http.MethodPost, "/api/sandbox/clear", nil, nil); err != nil {
		return errors.Wrap(err, "clear plan")
	}
	if status != http.StatusOK {
		return errors.New("clear failed", slog.Int("status", status))
	}
	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only the base URL to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <url>")
		os.Exit(1)
	}

	url := os.Args[1]
	if !strings.Contains(url, "://") {
		url = "https://" + url
	}
	ctx = logging.WithAttrs(ctx, slog.String("url", url))

	client, err := e2etest.NewClient(url)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = TestSandbox(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing sandbox", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}

// Package layoutcmd holds the headless layout commands of the operator CLI:
// generating strategy layouts and assessing point lists without a browser.
package layoutcmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/mtoivan/samplab/internal/errors"
	"github.com/mtoivan/samplab/internal/models"
	"github.com/mtoivan/samplab/internal/sandbox"
	"github.com/mtoivan/samplab/internal/scenarios"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "layout",
	Title: "Headless layouts",
}

// Layout is the document generate writes and score reads.
type Layout struct {
	ScenarioID string              `json:"scenarioId"`
	Method     models.Method       `json:"method"`
	Points     []models.Coordinate `json:"points"`
}

// Assessment pairs the validation and score of one layout, the same data the
// web assessment panel shows.
type Assessment struct {
	Validation models.ValidationResult `json:"validation"`
	Score      models.ScoreResult      `json:"score"`
}

func init() {
	Generate.Flags().String("scenario", "", "scenario id from the catalog")
	Generate.Flags().String("method", "", "placement method, defaults to the scenario recommendation")
	Generate.Flags().Int("count", 0, "points to place, defaults to the scenario's required count")
	Generate.Flags().Int64("seed", 0, "random seed for reproducible layouts, 0 seeds from the clock")
	Generate.Flags().String("out", "-", "output file, - for stdout")
	_ = Generate.MarkFlagRequired("scenario")

	Score.Flags().String("points", "", "layout file produced by generate")
	Score.Flags().String("scenario", "", "scenario id, overrides the one in the layout file")
	Score.Flags().String("method", "", "placement method, overrides the one in the layout file")
	_ = Score.MarkFlagRequired("points")
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func parseMethod(name string) (models.Method, error) {
	method := models.Method(name)
	if !method.Valid() {
		return "", errors.New("unknown placement method", slog.String("method", name))
	}
	return method, nil
}

var Generate = &cobra.Command{
	Use:     "generate",
	GroupID: "layout",
	Short:   "Generate a strategy layout",
	Long: `Runs a placement strategy headlessly against a catalog scenario and writes
the accepted points as JSON. The output feeds straight into "layout score".`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		scenarioID, _ := cmd.Flags().GetString("scenario")
		methodName, _ := cmd.Flags().GetString("method")
		count, _ := cmd.Flags().GetInt("count")
		seed, _ := cmd.Flags().GetInt64("seed")
		out, _ := cmd.Flags().GetString("out")

		catalog, err := scenarios.New(quietLogger())
		if err != nil {
			return errors.Wrap(err, "load catalog")
		}
		scenario, err := catalog.Get(scenarioID)
		if err != nil {
			return errors.Wrap(err, "lookup scenario")
		}

		method := scenario.RecommendedMethod
		if methodName != "" {
			if method, err = parseMethod(methodName); err != nil {
				return err
			}
		}
		if count <= 0 {
			count = sandbox.RequiredPoints(scenario)
		}
		if seed == 0 {
			seed = time.Now().UnixNano()
		}

		points, err := sandbox.GenerateLayout(scenario, method, count, rand.New(rand.NewSource(seed))) //nolint:gosec // layout jitter, not security
		if err != nil {
			return errors.Wrap(err, "generate layout")
		}

		layout := Layout{ScenarioID: scenario.ID, Method: method, Points: points}
		data, err := json.MarshalIndent(layout, "", "  ")
		if err != nil {
			return errors.Wrap(err, "marshal layout")
		}
		data = append(data, '\n')

		if out == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return errors.Wrap(err, "write layout")
		}
		perm := os.FileMode(0o644)
		if err = os.WriteFile(out, data, perm); err != nil {
			return errors.Wrap(err, "write layout file", slog.String("out", out))
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d points\n", out, len(points))
		return nil
	},
}

var Score = &cobra.Command{
	Use:     "score",
	GroupID: "layout",
	Short:   "Validate and score a layout file",
	Long: `Runs the plan validator and scorer over a layout file and prints the
assessment as JSON. The points are taken as-is, so out-of-bounds positions
show up in the position check instead of being silently dropped.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		pointsFile, _ := cmd.Flags().GetString("points")
		scenarioID, _ := cmd.Flags().GetString("scenario")
		methodName, _ := cmd.Flags().GetString("method")

		data, err := os.ReadFile(pointsFile)
		if err != nil {
			return errors.Wrap(err, "read layout file")
		}
		var layout Layout
		if err = json.Unmarshal(data, &layout); err != nil {
			return errors.Wrap(err, "decode layout file", slog.String("file", pointsFile))
		}

		if scenarioID == "" {
			scenarioID = layout.ScenarioID
		}
		if scenarioID == "" {
			return errors.New("no scenario: the layout file names none and --scenario is not set")
		}

		catalog, err := scenarios.New(quietLogger())
		if err != nil {
			return errors.Wrap(err, "load catalog")
		}
		scenario, err := catalog.Get(scenarioID)
		if err != nil {
			return errors.Wrap(err, "lookup scenario")
		}

		method := layout.Method
		if methodName != "" {
			if method, err = parseMethod(methodName); err != nil {
				return err
			}
		}
		if method == "" {
			method = scenario.RecommendedMethod
		}

		points := make([]models.SamplingPoint, 0, len(layout.Points))
		for i, c := range layout.Points {
			cell := sandbox.CanvasToGrid(c.X, c.Y, scenario.GridSize)
			points = append(points, models.SamplingPoint{
				Label: fmt.Sprintf("S%d", i+1),
				X:     c.X,
				Y:     c.Y,
				Row:   cell.Row,
				Col:   cell.Col,
			})
		}

		assessment := Assessment{
			Validation: sandbox.ValidatePlan(scenario, points),
			Score:      sandbox.ScorePlan(scenario, points, method),
		}
		out, err := json.MarshalIndent(assessment, "", "  ")
		if err != nil {
			return errors.Wrap(err, "marshal assessment")
		}
		out = append(out, '\n')
		_, err = cmd.OutOrStdout().Write(out)
		return errors.Wrap(err, "write assessment")
	},
}

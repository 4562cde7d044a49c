package sandbox

import (
	"fmt"
	"github.com/mtoivan/samplab/internal/models"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"
	"math"
	"strings"
)

const (
	// DefaultUnitArea is the plan area one sampling point is assumed to
	// represent when deriving the required point count from waste volume.
	DefaultUnitArea = 50.0

	// minimumPoints is the floor of the required point count.
	minimumPoints = 5

	// The distribution check partitions the valid bounding box into a fixed
	// analysisGridDim x analysisGridDim grid and measures how many of its
	// cells hold at least one point.
	analysisGridDim = 4
	minCoverage     = 0.30
)

// CalculateMinPoints derives how many sampling points a plan needs from the
// waste volume: ceil(sqrt(volume/unitArea)), never below the minimum floor.
func CalculateMinPoints(wasteVolume, unitArea float64) int {
	if wasteVolume <= 0 || unitArea <= 0 {
		return minimumPoints
	}
	n := int(math.Ceil(math.Sqrt(wasteVolume / unitArea)))
	if n < minimumPoints {
		return minimumPoints
	}
	return n
}

// RequiredPoints is the point count a scenario demands: the volume-derived
// minimum, or the scenario author's floor when that is higher.
func RequiredPoints(scenario *models.Scenario) int {
	required := CalculateMinPoints(scenario.Requirements.WasteVolume, DefaultUnitArea)
	if scenario.Requirements.MinPoints > required {
		required = scenario.Requirements.MinPoints
	}
	return required
}

// coverageStats measures occupancy of the analysis grid laid over the valid
// bounding box. Points outside the box are ignored; points exactly on the far
// edges count toward the last cell.
func coverageStats(scenario *models.Scenario, points []models.SamplingPoint) (occupied, total int) {
	bounds := validBounds(scenario)
	w, h := boxWidth(bounds), boxHeight(bounds)
	total = analysisGridDim * analysisGridDim
	if w <= 0 || h <= 0 {
		return 0, total
	}
	cells := make(map[int]struct{})
	for _, p := range points {
		if !boxContains(bounds, r2.Vec{X: p.X, Y: p.Y}) {
			continue
		}
		cx := int((p.X - bounds.Min.X) / w * analysisGridDim)
		cy := int((p.Y - bounds.Min.Y) / h * analysisGridDim)
		if cx >= analysisGridDim {
			cx = analysisGridDim - 1
		}
		if cy >= analysisGridDim {
			cy = analysisGridDim - 1
		}
		cells[cy*analysisGridDim+cx] = struct{}{}
	}
	return len(cells), total
}

// nearestNeighborSpacings returns, for each point, the distance to its
// closest neighbor. Empty for fewer than two points.
func nearestNeighborSpacings(points []models.SamplingPoint) []float64 {
	if len(points) < 2 {
		return nil
	}
	spacings := make([]float64, 0, len(points))
	for i := range points {
		nearest := math.Inf(1)
		for j := range points {
			if i == j {
				continue
			}
			d := r2.Norm(r2.Vec{X: points[i].X - points[j].X, Y: points[i].Y - points[j].Y})
			if d < nearest {
				nearest = d
			}
		}
		spacings = append(spacings, nearest)
	}
	return spacings
}

// ValidatePlan runs the three plan checks in order: point count against the
// volume-derived requirement, spatial distribution over the valid area, and
// per-point position against the acceptability gate. Suggestions are emitted
// for failing checks only, in check order.
func ValidatePlan(scenario *models.Scenario, points []models.SamplingPoint) models.ValidationResult {
	result := models.ValidationResult{Passed: true}

	result.Checks = append(result.Checks,
		countCheck(scenario, points),
		distributionCheck(scenario, points),
		positionCheck(scenario, points),
	)
	for _, check := range result.Checks {
		if check.Passed {
			continue
		}
		result.Passed = false
		result.Suggestions = append(result.Suggestions, suggestionFor(check))
	}
	return result
}

func countCheck(scenario *models.Scenario, points []models.SamplingPoint) models.ValidationCheck {
	required := CalculateMinPoints(scenario.Requirements.WasteVolume, DefaultUnitArea)
	actual := len(points)
	check := models.ValidationCheck{
		Name:           models.CheckPointCount,
		Passed:         actual >= required,
		RequiredPoints: required,
		ActualPoints:   actual,
	}
	if check.Passed {
		check.Message = fmt.Sprintf("%d sampling points placed, %d required", actual, required)
	} else {
		check.Message = fmt.Sprintf("only %d of %d required sampling points placed", actual, required)
	}
	return check
}

func distributionCheck(scenario *models.Scenario, points []models.SamplingPoint) models.ValidationCheck {
	occupied, total := coverageStats(scenario, points)
	coverage := float64(occupied) / float64(total)
	check := models.ValidationCheck{
		Name:          models.CheckDistribution,
		Passed:        coverage >= minCoverage,
		Coverage:      coverage,
		OccupiedCells: occupied,
		TotalCells:    total,
	}
	if spacings := nearestNeighborSpacings(points); len(spacings) >= 2 {
		check.MeanSpacing = stat.Mean(spacings, nil)
		check.SpacingStdDev = stat.StdDev(spacings, nil)
	}
	if check.Passed {
		check.Message = fmt.Sprintf("points occupy %d of %d plan sectors", occupied, total)
	} else {
		check.Message = fmt.Sprintf("points occupy only %d of %d plan sectors, at least %.0f%% coverage is needed",
			occupied, total, minCoverage*100)
	}
	return check
}

func positionCheck(scenario *models.Scenario, points []models.SamplingPoint) models.ValidationCheck {
	var failing []string
	for _, p := range points {
		if !acceptable(scenario, r2.Vec{X: p.X, Y: p.Y}) {
			failing = append(failing, p.Label)
		}
	}
	check := models.ValidationCheck{
		Name:          models.CheckPosition,
		Passed:        len(failing) == 0,
		FailingLabels: failing,
	}
	if check.Passed {
		check.Message = "all points lie inside valid sampling regions"
	} else {
		check.Message = fmt.Sprintf("points outside valid sampling regions: %s", strings.Join(failing, ", "))
	}
	return check
}

func suggestionFor(check models.ValidationCheck) string {
	switch check.Name {
	case models.CheckPointCount:
		missing := check.RequiredPoints - check.ActualPoints
		return fmt.Sprintf("add %d more sampling points to reach the required %d", missing, check.RequiredPoints)
	case models.CheckDistribution:
		return "spread the points more evenly so they cover a larger share of the valid area"
	case models.CheckPosition:
		return "move the flagged points into a valid sampling region"
	}
	return ""
}

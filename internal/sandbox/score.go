package sandbox

import (
	"github.com/mtoivan/samplab/internal/models"
	"gonum.org/v1/gonum/spatial/r2"
	"math"
)

// Dimension weights. They sum to 1 so the total stays on a 0-100 scale.
const (
	weightPointCount   = 0.30
	weightDistribution = 0.30
	weightMethod       = 0.20
	weightOperation    = 0.20
)

// Operation-standard deductions.
const (
	deductionInvalidRegion = 40.0
	deductionPerClosePair  = 10.0
	maxCrowdingDeduction   = 30.0
	deductionPerEdgePoint  = 5.0
	maxEdgeDeduction       = 15.0
)

// overshootRatioCap limits the count ratio before the full-marks cap.
const overshootRatioCap = 1.2

// ScorePlan assesses a plan across four weighted dimensions and is fully
// deterministic: the same scenario, points, and method always produce the
// same result.
func ScorePlan(scenario *models.Scenario, points []models.SamplingPoint, method models.Method) models.ScoreResult {
	breakdown := []models.DimensionScore{
		{Dimension: models.DimensionPointCount, Raw: pointCountScore(scenario, points), Weight: weightPointCount},
		{Dimension: models.DimensionDistribution, Raw: distributionScore(scenario, points), Weight: weightDistribution},
		{Dimension: models.DimensionMethod, Raw: methodScore(scenario, method), Weight: weightMethod},
		{Dimension: models.DimensionOperation, Raw: operationScore(scenario, points), Weight: weightOperation},
	}

	total := 0
	for i := range breakdown {
		breakdown[i].Weighted = int(math.Round(breakdown[i].Raw * breakdown[i].Weight))
		total += breakdown[i].Weighted
	}
	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}

	weakest := breakdown[0]
	for _, dim := range breakdown[1:] {
		if dim.Raw < weakest.Raw {
			weakest = dim
		}
	}

	return models.ScoreResult{
		TotalScore: total,
		Grade:      gradeFor(total),
		Breakdown:  breakdown,
		Weakest:    weakest.Dimension,
		Feedback:   feedbackFor(weakest),
	}
}

// pointCountScore rewards meeting the volume-derived requirement. Counts at
// or above the requirement score full marks; below it the score drops
// linearly with the shortfall.
func pointCountScore(scenario *models.Scenario, points []models.SamplingPoint) float64 {
	required := CalculateMinPoints(scenario.Requirements.WasteVolume, DefaultUnitArea)
	ratio := float64(len(points)) / float64(required)
	if len(points) >= required {
		return math.Min(math.Min(ratio, overshootRatioCap)*100, 100)
	}
	return ratio * 100
}

// distributionScore maps analysis-grid coverage onto a piecewise scale that
// plateaus at half coverage and falls off steeply below a tenth.
func distributionScore(scenario *models.Scenario, points []models.SamplingPoint) float64 {
	occupied, total := coverageStats(scenario, points)
	c := float64(occupied) / float64(total)
	switch {
	case c >= 0.5:
		return 100
	case c >= 0.3:
		return 60 + (c-0.3)/0.2*40
	case c >= 0.1:
		return 20 + (c-0.1)/0.2*40
	default:
		return c / 0.1 * 20
	}
}

// methodScore grades the method choice against the scenario's guidance.
func methodScore(scenario *models.Scenario, method models.Method) float64 {
	switch {
	case method == scenario.RecommendedMethod:
		return 100
	case scenario.MethodApplicable(method):
		return 70
	default:
		return 40
	}
}

// operationScore starts from full marks and deducts for operational flaws:
// any point inside an invalid region, pairs crowded closer than half a grid
// cell, and points hugging the valid area's border.
func operationScore(scenario *models.Scenario, points []models.SamplingPoint) float64 {
	score := 100.0

	for _, p := range points {
		if inAnyArea(scenario.InvalidAreas, r2.Vec{X: p.X, Y: p.Y}) {
			score -= deductionInvalidRegion
			break
		}
	}

	crowding := deductionPerClosePair * float64(pairsCloserThan(points, scenario.GridSize/2))
	score -= math.Min(crowding, maxCrowdingDeduction)

	edges := deductionPerEdgePoint * float64(edgePoints(scenario, points))
	score -= math.Min(edges, maxEdgeDeduction)

	if score < 0 {
		return 0
	}
	return score
}

// pairsCloserThan counts unordered point pairs with separation strictly
// below the limit.
func pairsCloserThan(points []models.SamplingPoint, limit float64) int {
	count := 0
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			d := r2.Norm(r2.Vec{X: points[i].X - points[j].X, Y: points[i].Y - points[j].Y})
			if d < limit {
				count++
			}
		}
	}
	return count
}

// edgePoints counts points whose margin to the valid bounding box border is
// strictly below a quarter grid cell.
func edgePoints(scenario *models.Scenario, points []models.SamplingPoint) int {
	bounds := validBounds(scenario)
	threshold := scenario.GridSize / 4
	count := 0
	for _, p := range points {
		margin := math.Min(
			math.Min(p.X-bounds.Min.X, bounds.Max.X-p.X),
			math.Min(p.Y-bounds.Min.Y, bounds.Max.Y-p.Y),
		)
		if margin < threshold {
			count++
		}
	}
	return count
}

// Grade boundaries on the total score.
const (
	gradeExcellentFloor = 80
	gradeGoodFloor      = 70
	gradePassFloor      = 60
)

func gradeFor(total int) models.Grade {
	switch {
	case total >= gradeExcellentFloor:
		return models.GradeExcellent
	case total >= gradeGoodFloor:
		return models.GradeGood
	case total >= gradePassFloor:
		return models.GradePass
	default:
		return models.GradeFail
	}
}

// feedbackFor phrases one improvement hint for the weakest dimension, or
// plain praise when nothing scored below full marks.
func feedbackFor(weakest models.DimensionScore) string {
	if weakest.Raw >= 100 {
		return "Excellent work. The plan meets every assessment dimension."
	}
	switch weakest.Dimension {
	case models.DimensionPointCount:
		return "Place more sampling points. The plan has too few for the waste volume."
	case models.DimensionDistribution:
		return "Improve the spatial spread. The points bunch up instead of covering the area."
	case models.DimensionMethod:
		return "Reconsider the sampling method. It does not suit this scenario."
	case models.DimensionOperation:
		return "Review spacing and margins. Points sit too close together or too near boundaries."
	}
	return ""
}

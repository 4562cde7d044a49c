package sandbox

import (
	"github.com/mtoivan/samplab/internal/errors"
	"github.com/mtoivan/samplab/internal/models"
	"gonum.org/v1/gonum/spatial/r2"
	"log/slog"
	"math"
	"math/rand"
)

// Candidate budget multiplier for the rejection-sampling strategies.
const placementAttemptFactor = 10

// GenerateLayout produces up to count acceptable positions with the given
// strategy, without touching any session. Strategies are best-effort: crowded
// or awkward geometry may yield fewer points than asked for.
func GenerateLayout(scenario *models.Scenario, method models.Method, count int, rng *rand.Rand) ([]models.Coordinate, error) {
	if !method.Valid() {
		return nil, errors.Wrap(ErrUnknownMethod, "generate layout", slog.String("method", string(method)))
	}
	candidates := generateLayout(scenario, method, count, rng)
	out := make([]models.Coordinate, 0, len(candidates))
	for _, candidate := range candidates {
		if acceptable(scenario, candidate) {
			out = append(out, coordinate(candidate))
		}
	}
	return out, nil
}

// generateLayout dispatches to the strategy implementations. Random and
// stratified sample against the acceptability gate themselves; systematic and
// diagonal emit their geometric pattern and leave rejection to the caller's
// gate so the pattern's spacing is preserved.
func generateLayout(scenario *models.Scenario, method models.Method, count int, rng *rand.Rand) []r2.Vec {
	if count <= 0 {
		return nil
	}
	bounds := placementBounds(scenario)
	switch method {
	case models.MethodRandom:
		return randomLayout(scenario, bounds, count, rng)
	case models.MethodSystematic:
		return systematicLayout(bounds, count)
	case models.MethodDiagonal:
		return diagonalLayout(bounds, count)
	case models.MethodStratified:
		return stratifiedLayout(scenario, bounds, count, rng)
	}
	return nil
}

// randomLayout samples uniform positions over the placement bounds, keeping
// acceptable ones until count are found or the attempt budget runs out.
func randomLayout(scenario *models.Scenario, bounds r2.Box, count int, rng *rand.Rand) []r2.Vec {
	w, h := boxWidth(bounds), boxHeight(bounds)
	if w <= 0 || h <= 0 {
		return nil
	}
	out := make([]r2.Vec, 0, count)
	for attempts := 0; len(out) < count && attempts < placementAttemptFactor*count; attempts++ {
		candidate := r2.Vec{
			X: bounds.Min.X + rng.Float64()*w,
			Y: bounds.Min.Y + rng.Float64()*h,
		}
		if acceptable(scenario, candidate) {
			out = append(out, candidate)
		}
	}
	return out
}

// systematicLayout lays an interior lattice over the placement bounds. The
// column count follows the aspect ratio so cells stay near square, and the
// lattice positions avoid the bounds' edges.
func systematicLayout(bounds r2.Box, count int) []r2.Vec {
	w, h := boxWidth(bounds), boxHeight(bounds)
	if w <= 0 || h <= 0 {
		return nil
	}
	cols := int(math.Ceil(math.Sqrt(float64(count) * w / h)))
	if cols < 1 {
		cols = 1
	}
	rows := ceilDiv(count, cols)

	out := make([]r2.Vec, 0, count)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if len(out) == count {
				return out
			}
			out = append(out, r2.Vec{
				X: bounds.Min.X + w*float64(c+1)/float64(cols+1),
				Y: bounds.Min.Y + h*float64(r+1)/float64(rows+1),
			})
		}
	}
	return out
}

// diagonalLayout distributes points along the two diagonals of the placement
// bounds: the larger half along the main diagonal, the rest along the
// anti-diagonal, both with interior-only parameterization.
func diagonalLayout(bounds r2.Box, count int) []r2.Vec {
	w, h := boxWidth(bounds), boxHeight(bounds)
	if w <= 0 || h <= 0 {
		return nil
	}
	main := ceilDiv(count, 2)
	anti := count - main

	out := make([]r2.Vec, 0, count)
	out = append(out, alongLine(bounds.Min, bounds.Max, main)...)
	out = append(out, alongLine(
		r2.Vec{X: bounds.Max.X, Y: bounds.Min.Y},
		r2.Vec{X: bounds.Min.X, Y: bounds.Max.Y},
		anti,
	)...)
	return out
}

// alongLine places k points on the open segment from start to end at
// parameters i/(k+1), i = 1..k.
func alongLine(start, end r2.Vec, k int) []r2.Vec {
	out := make([]r2.Vec, 0, k)
	delta := r2.Sub(end, start)
	for i := 1; i <= k; i++ {
		t := float64(i) / float64(k+1)
		out = append(out, r2.Add(start, r2.Scale(t, delta)))
	}
	return out
}

// stratifiedLayout splits the placement bounds into four quadrants along the
// midlines and rejection-samples an equal quota inside each, capped at count
// overall.
func stratifiedLayout(scenario *models.Scenario, bounds r2.Box, count int, rng *rand.Rand) []r2.Vec {
	w, h := boxWidth(bounds), boxHeight(bounds)
	if w <= 0 || h <= 0 {
		return nil
	}
	mid := r2.Vec{X: bounds.Min.X + w/2, Y: bounds.Min.Y + h/2}
	quadrants := []r2.Box{
		{Min: bounds.Min, Max: mid},
		{Min: r2.Vec{X: mid.X, Y: bounds.Min.Y}, Max: r2.Vec{X: bounds.Max.X, Y: mid.Y}},
		{Min: r2.Vec{X: bounds.Min.X, Y: mid.Y}, Max: r2.Vec{X: mid.X, Y: bounds.Max.Y}},
		{Min: mid, Max: bounds.Max},
	}
	quota := ceilDiv(count, 4)

	out := make([]r2.Vec, 0, count)
	for _, quadrant := range quadrants {
		qw, qh := boxWidth(quadrant), boxHeight(quadrant)
		placed := 0
		for attempts := 0; placed < quota && attempts < placementAttemptFactor*quota; attempts++ {
			if len(out) == count {
				return out
			}
			candidate := r2.Vec{
				X: quadrant.Min.X + rng.Float64()*qw,
				Y: quadrant.Min.Y + rng.Float64()*qh,
			}
			if acceptable(scenario, candidate) {
				out = append(out, candidate)
				placed++
			}
		}
	}
	return out
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

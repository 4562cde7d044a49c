package models

// CheckName identifies one plan validation check.
type CheckName string

const (
	CheckPointCount   CheckName = "pointCount"
	CheckDistribution CheckName = "distribution"
	CheckPosition     CheckName = "position"
)

// ValidationCheck is the outcome of a single check. The optional fields are
// populated per check: point counts for the count check, coverage and spacing
// statistics for the distribution check, offending labels for the position
// check.
type ValidationCheck struct {
	Name    CheckName `json:"name"`
	Passed  bool      `json:"passed"`
	Message string    `json:"message"`

	RequiredPoints int `json:"requiredPoints,omitempty"`
	ActualPoints   int `json:"actualPoints,omitempty"`

	Coverage      float64 `json:"coverage,omitempty"`
	OccupiedCells int     `json:"occupiedCells,omitempty"`
	TotalCells    int     `json:"totalCells,omitempty"`
	MeanSpacing   float64 `json:"meanSpacing,omitempty"`
	SpacingStdDev float64 `json:"spacingStdDev,omitempty"`

	FailingLabels []string `json:"failingLabels,omitempty"`
}

// ValidationResult aggregates all checks. Suggestions carry one actionable
// hint per failing check, ordered count, distribution, position.
type ValidationResult struct {
	Passed      bool              `json:"passed"`
	Checks      []ValidationCheck `json:"checks"`
	Suggestions []string          `json:"suggestions"`
}

// Dimension identifies one scoring dimension.
type Dimension string

const (
	DimensionPointCount   Dimension = "pointCount"
	DimensionDistribution Dimension = "distribution"
	DimensionMethod       Dimension = "methodCorrectness"
	DimensionOperation    Dimension = "operationStandard"
)

// Grade buckets a total score.
type Grade string

const (
	GradeExcellent Grade = "excellent"
	GradeGood      Grade = "good"
	GradePass      Grade = "pass"
	GradeFail      Grade = "fail"
)

// DimensionScore is one scored dimension: the raw 0–100 score, its weight,
// and the rounded weighted contribution to the total.
type DimensionScore struct {
	Dimension Dimension `json:"dimension"`
	Raw       float64   `json:"raw"`
	Weight    float64   `json:"weight"`
	Weighted  int       `json:"weighted"`
}

// ScoreResult is the deterministic assessment of a plan.
type ScoreResult struct {
	TotalScore int              `json:"totalScore"`
	Grade      Grade            `json:"grade"`
	Breakdown  []DimensionScore `json:"breakdown"`
	// Weakest names the lowest-raw-score dimension; Feedback explains it.
	Weakest  Dimension `json:"weakest"`
	Feedback string    `json:"feedback"`
}

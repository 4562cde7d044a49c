package models

import (
	"database/sql/driver"
	"encoding/json"
	"github.com/mtoivan/samplab/internal/errors"
	"time"
)

// PointList stores sampling points as a JSON text column.
type PointList []SamplingPoint

// Value implements [driver.Valuer].
func (l PointList) Value() (driver.Value, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return nil, errors.Wrap(err, "marshal point list")
	}
	return string(data), nil
}

// Scan implements [sql.Scanner].
func (l *PointList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return errors.Wrap(json.Unmarshal(v, l), "unmarshal point list")
	case string:
		return errors.Wrap(json.Unmarshal([]byte(v), l), "unmarshal point list")
	default:
		return errors.New("unsupported point list source type")
	}
}

// ErrPlanNotFound is returned when a plan lookup matches nothing.
var ErrPlanNotFound = errors.NewSentinel("plan not found")

// PlanRecord is a submitted sampling plan persisted for later review or restore.
type PlanRecord struct {
	ID         string    `db:"id" json:"id"`
	ScenarioID string    `db:"scenario_id" json:"scenarioId"`
	Method     Method    `db:"method" json:"method"`
	Points     PointList `db:"points" json:"points"`
	TotalScore int       `db:"total_score" json:"totalScore"`
	Grade      Grade     `db:"grade" json:"grade"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// Package repositories wraps database access behind plain methods so that
// handlers never touch SQL.
package repositories

import (
	"context"
	"database/sql"
	"github.com/mtoivan/samplab/internal/errors"
	"github.com/mtoivan/samplab/internal/models"
	"github.com/mtoivan/samplab/internal/sqlite"
	"log/slog"
)

type PlanRepository struct {
	dbs    *sqlite.Database
	logger *slog.Logger
}

func NewPlanRepository(dbs *sqlite.Database, logger *slog.Logger) *PlanRepository {
	return &PlanRepository{
		dbs:    dbs,
		logger: logger.With("source", "PlanRepository"),
	}
}

// Insert stores a submitted plan.
func (r *PlanRepository) Insert(ctx context.Context, plan models.PlanRecord) error {
	stmt := `INSERT INTO plans (id, scenario_id, method, points, total_score, grade, created_at)
VALUES (:id, :scenario_id, :method, :points, :total_score, :grade, :created_at)`
	if _, err := r.dbs.ReadWrite.NamedExecContext(ctx, stmt, plan); err != nil {
		return errors.Wrap(err, "insert plan", slog.String("id", plan.ID))
	}
	return nil
}

// Latest returns up to limit plans, newest first.
func (r *PlanRepository) Latest(ctx context.Context, limit int) ([]models.PlanRecord, error) {
	var plans []models.PlanRecord
	stmt := `SELECT id, scenario_id, method, points, total_score, grade, created_at
FROM plans
ORDER BY created_at DESC, id DESC
LIMIT ?`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &plans, stmt, limit); err != nil {
		return nil, errors.Wrap(err, "select plans")
	}
	return plans, nil
}

// Get returns the plan with the given id or [models.ErrPlanNotFound].
func (r *PlanRepository) Get(ctx context.Context, id string) (*models.PlanRecord, error) {
	var plan models.PlanRecord
	stmt := `SELECT id, scenario_id, method, points, total_score, grade, created_at
FROM plans
WHERE id = ?`
	if err := r.dbs.ReadOnly.GetContext(ctx, &plan, stmt, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrPlanNotFound
		}
		return nil, errors.Wrap(err, "get plan", slog.String("id", id))
	}
	return &plan, nil
}

package sqlite

import (
	"context"
	"log/slog"
	"time"

	"github.com/mtoivan/samplab/internal/errors"
)

// optimizeInterval spaces out the PRAGMA optimize runs recommended for
// long-lived connections. See https://www.sqlite.org/pragma.html#pragma_optimize.
const optimizeInterval = time.Hour

// StartDatabaseOptimizer re-optimizes the database on a fixed interval until
// the context is cancelled. NewDatabase starts it in a goroutine.
func (db *Database) StartDatabaseOptimizer(ctx context.Context) {
	ticker := time.NewTicker(optimizeInterval)
	defer ticker.Stop()

	for {
		db.optimize(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (db *Database) optimize(ctx context.Context) {
	start := time.Now()
	if _, err := db.ReadWrite.ExecContext(ctx, "PRAGMA optimize;"); err != nil {
		db.logger.LogAttrs(ctx, slog.LevelError, "failed to optimize database",
			errors.SlogError(errors.Wrap(err, "optimize database")))
		return
	}
	db.logger.LogAttrs(ctx, slog.LevelDebug, "optimized database",
		slog.Duration("duration", time.Since(start)))
}

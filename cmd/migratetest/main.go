package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/mtoivan/samplab/internal/errors"
	"github.com/mtoivan/samplab/internal/sqlite"
	"github.com/mtoivan/samplab/internal/testhelpers"
)

// migratetest runs the schema synchronizer against a copy of a production
// database and sanity-checks that the plan history survived. Point it at a
// copy, never the live file.
func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	var (
		err       error
		start     = time.Now()
		ctx       context.Context
		sqliteURL string
		ok        bool
		cancel    context.CancelFunc
	)
	ctx = context.Background()
	ctx, cancel = context.WithTimeout(ctx, 5*time.Second) //nolint:mnd // 5 seconds

	if sqliteURL, ok = os.LookupEnv("SAMPLAB_SQLITE_URL"); !ok {
		logger.LogAttrs(ctx, slog.LevelError, "SAMPLAB_SQLITE_URL not set")
		os.Exit(1)
	}

	var db *sqlite.Database
	if db, err = sqlite.NewDatabase(ctx, sqliteURL, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating database",
			slog.String("url", sqliteURL), errors.SlogError(err))
		os.Exit(1)
	}

	// The saved plans are the only data worth keeping; an empty table after
	// migration means the schema sync dropped them.
	row := db.ReadWrite.QueryRowContext(ctx, `SELECT COUNT(*) FROM plans`)
	var count int
	if err = row.Scan(&count); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error fetching plan count", errors.SlogError(err))
		os.Exit(1)
	}
	if count == 0 {
		logger.LogAttrs(ctx, slog.LevelError, "no plans found, something is likely wrong")
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "plan count", slog.Int("count", count))

	row = db.ReadWrite.QueryRowContext(ctx, `SELECT COUNT(*) FROM plans WHERE grade = ''`)
	var ungraded int
	if err = row.Scan(&ungraded); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error fetching ungraded count", errors.SlogError(err))
		os.Exit(1)
	}
	if ungraded > 0 {
		logger.LogAttrs(ctx, slog.LevelError, "plans lost their grade in migration", slog.Int("count", ungraded))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Migration test successful 🙌", slog.Duration("duration", time.Since(start)))
	cancel()
	os.Exit(0)
}

package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/donseba/go-htmx"
	"github.com/joho/godotenv"
	"github.com/mtoivan/samplab/internal/broker"
	"github.com/mtoivan/samplab/internal/envstruct"
	"github.com/mtoivan/samplab/internal/errors"
	"github.com/mtoivan/samplab/internal/logging"
	"github.com/mtoivan/samplab/internal/observability"
	"github.com/mtoivan/samplab/internal/pprofserver"
	"github.com/mtoivan/samplab/internal/repositories"
	"github.com/mtoivan/samplab/internal/sandbox"
	"github.com/mtoivan/samplab/internal/scenarios"
	"github.com/mtoivan/samplab/internal/sqlite"
)

type config struct {
	// Addr is the address to listen on. Use localhost:0 to get a random port.
	Addr string `env:"SAMPLAB_ADDR" envDefault:"localhost:4000"`
	// PprofAddr serves runtime profiles when set, e.g. localhost:6060.
	PprofAddr string `env:"SAMPLAB_PPROF_ADDR" envDefault:""`
	// SQLiteURL is the database file path or ":memory:" for an ephemeral one.
	SQLiteURL string `env:"SAMPLAB_SQLITE_URL" envDefault:"./samplab.sqlite"`
	// UIDir holds the templates and static assets.
	UIDir                string `env:"SAMPLAB_UI_DIR" envDefault:"ui"`
	SessionLifetimeHours int    `env:"SAMPLAB_SESSION_LIFETIME_HOURS" envDefault:"12"`
	// PlaybackIntervalMS is the delay between placed points during playback.
	PlaybackIntervalMS int `env:"SAMPLAB_PLAYBACK_INTERVAL_MS" envDefault:"500"`
}

// application holds the shared collaborators for the web handlers.
type application struct {
	logger           *slog.Logger
	sessionManager   *scs.SessionManager
	scenarios        *scenarios.Catalog
	sandboxes        *sandbox.Registry
	plans            *repositories.PlanRepository
	playbackBroker   *broker.ChannelBroker[string, sandbox.PlaybackEvent]
	metrics          *observability.Metrics
	htmx             *htmx.HTMX
	playbackInterval time.Duration
	uiDir            string
}

func main() {
	ctx := context.Background()
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelDebug,
	})))

	// Local development configuration. The file is optional.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.LogAttrs(ctx, slog.LevelError, "failed to load .env file", errors.SlogError(err))
		os.Exit(1)
	}

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server error", errors.SlogError(errors.Wrap(err, "run")))
		os.Exit(1)
	}
}

// run wires the application together and blocks until the server shuts down.
// It takes its dependencies as arguments so that tests can boot the full
// server with a custom environment and inspect its logs.
func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	dbs, err := sqlite.NewDatabase(ctx, cfg.SQLiteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open database")
	}
	defer func() {
		if err := dbs.Close(); err != nil {
			logger.LogAttrs(ctx, slog.LevelError, "failed to close database", errors.SlogError(err))
		}
	}()

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(dbs.ReadWrite.DB, 24*time.Hour)
	sessionManager.Lifetime = time.Duration(cfg.SessionLifetimeHours) * time.Hour
	sessionManager.Cookie.Secure = true

	catalog, err := scenarios.New(logger)
	if err != nil {
		return errors.Wrap(err, "load scenario catalog")
	}

	sandboxes := sandbox.NewRegistry(catalog, sandbox.WithLogger(logger))
	defer sandboxes.StopAll()

	playbackBroker := broker.NewChannelBroker[string, sandbox.PlaybackEvent]()
	go playbackBroker.Start()
	defer playbackBroker.Stop()

	app := &application{
		logger:         logger,
		sessionManager: sessionManager,
		scenarios:      catalog,
		sandboxes:      sandboxes,
		plans:          repositories.NewPlanRepository(dbs, logger),
		playbackBroker: playbackBroker,
		metrics: observability.NewMetrics(func() float64 {
			return float64(sandboxes.Len())
		}),
		htmx:             htmx.New(),
		playbackInterval: time.Duration(cfg.PlaybackIntervalMS) * time.Millisecond,
		uiDir:            cfg.UIDir,
	}

	if cfg.PprofAddr != "" {
		pprofserver.Launch(ctx, cfg.PprofAddr, logger)
	}

	return app.configureAndStartServer(ctx, cfg.Addr)
}

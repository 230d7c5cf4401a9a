// Package cli wires configuration, logging, and persistence for the
// timeout-override command tree.
package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jebstuart/TimeoutOverride/internal/application/usecase"
	"github.com/jebstuart/TimeoutOverride/internal/config"
	"github.com/jebstuart/TimeoutOverride/internal/domain/repository"
	"github.com/jebstuart/TimeoutOverride/internal/infrastructure/persistence/sqlite"
	"github.com/jebstuart/TimeoutOverride/internal/logging"
)

// App holds the shared dependencies of every subcommand.
type App struct {
	Config   *config.Config
	Manager  *config.Manager
	Log      zerolog.Logger
	Sessions repository.WakeSessionRepository
	Recorder *usecase.RecordWakeSessionsUseCase

	db *sql.DB
}

// NewApp loads configuration, builds the logger, and, when history is
// enabled, opens the session database. The returned context carries the
// logger for the infrastructure layers.
func NewApp(ctx context.Context) (*App, context.Context, error) {
	// Bootstrap logger for everything that runs before the config is loaded.
	ctx = logging.WithContext(ctx, logging.NewFromEnv())

	manager, err := config.NewManager()
	if err != nil {
		return nil, ctx, fmt.Errorf("failed to initialize config: %w", err)
	}
	if err := manager.Load(); err != nil {
		return nil, ctx, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := manager.Get()

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.Logging.Level)
	logCfg.Format = cfg.Logging.Format
	log := logging.New(logCfg)
	ctx = logging.WithContext(ctx, log)

	app := &App{
		Config:  cfg,
		Manager: manager,
		Log:     log,
	}

	if cfg.History.Enabled {
		db, err := sqlite.NewConnection(logging.WithComponent(ctx, "sqlite"), cfg.History.Path)
		if err != nil {
			return nil, ctx, fmt.Errorf("failed to open session history: %w", err)
		}
		app.db = db
		app.Sessions = sqlite.NewWakeSessionRepository(db)
	}

	// Recorder tolerates a nil repository, so it is always safe to hook up.
	app.Recorder = usecase.NewRecordWakeSessionsUseCase(app.Sessions, cfg.History.MaxSessions)

	return app, ctx, nil
}

// Close releases the app's resources.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

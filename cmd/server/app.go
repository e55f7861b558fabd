package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/recall-sprint/internal/config"
	"github.com/phrazzld/recall-sprint/internal/domain/sampling"
	"github.com/phrazzld/recall-sprint/internal/platform/logger"
	"github.com/phrazzld/recall-sprint/internal/platform/postgres"
	"github.com/phrazzld/recall-sprint/internal/service"
	"github.com/phrazzld/recall-sprint/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores
	nameStore   store.NameStore
	resultStore store.ResultStore

	// Service interfaces
	nameService   service.NameService
	resultService service.ResultService
	seedService   service.SeedService
}

// newApplication sets up logging, opens the database and wires the stores
// and services.
func newApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"display_count", cfg.Quiz.DisplayCount)

	db, err := postgres.Open(ctx, cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	app, err := wireApplication(cfg, log, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

// wireApplication builds the stores and services over an open database.
func wireApplication(cfg *config.Config, log *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: log,
		db:     db,
	}

	app.nameStore = postgres.NewPostgresNameStore(db, log)
	app.resultStore = postgres.NewPostgresResultStore(db, log)

	sampler, err := sampling.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create sampler: %w", err)
	}

	app.nameService, err = service.NewNameService(app.nameStore, sampler, cfg.Quiz.DisplayCount, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create name service: %w", err)
	}

	app.resultService, err = service.NewResultService(app.resultStore, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create result service: %w", err)
	}

	app.seedService, err = service.NewSeedService(db, app.nameStore, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create seed service: %w", err)
	}

	log.Debug("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Debug("Application shutdown completed")
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/meditation-api/internal/config"
	"github.com/phrazzld/meditation-api/internal/platform/postgres"
	"github.com/phrazzld/meditation-api/internal/service"
	"github.com/phrazzld/meditation-api/internal/service/auth"
)

// pinger is the part of *sql.DB the health check needs.
type pinger interface {
	PingContext(ctx context.Context) error
}

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// health is checked by /health; it is db outside of tests.
	health pinger

	scriptService service.ScriptService
	jwtService    auth.JWTService
}

// newApplication wires stores, services and auth on top of an open pool.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	scriptStore := postgres.NewPostgresScriptStore(db, logger)
	sectionStore := postgres.NewPostgresSectionStore(db, logger)

	scriptService, err := service.NewScriptService(scriptStore, sectionStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create script service: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	return &application{
		config:        cfg,
		logger:        logger,
		db:            db,
		health:        db,
		scriptService: scriptService,
		jwtService:    jwtService,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database connection", "error", err)
		return
	}
	app.logger.Info("database connection closed")
}

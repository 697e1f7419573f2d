// Package main implements the entry point for the meditation script API
// server, which stores users' guided-meditation scripts and their sections.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/phrazzld/meditation-api/internal/config"
	"github.com/phrazzld/meditation-api/internal/platform/logger"
	"github.com/phrazzld/meditation-api/internal/platform/postgres"
)

func main() {
	migrate := flag.String("migrate", "", "run a migration command (up, down, status, version, reset) and exit")
	flag.Parse()

	if err := run(*migrate); err != nil {
		log.Fatalf("meditation-api: %v", err)
	}
}

func run(migrateCommand string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	// Set up structured logging
	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return err
	}

	// Run migrations instead of serving when requested
	if migrateCommand != "" {
		defer db.Close()
		return postgres.Migrate(context.Background(), db, migrateCommand, appLogger)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.startHTTPServer(context.Background(), app.setupRouter())
}

// loadAppConfig loads configuration and logs the non-secret parts of it.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"pid", os.Getpid())
	return cfg, nil
}

// Package server wires configuration, storage and the HTTP surface into a
// runnable application.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ablinov/lifevault/internal/backup"
	"github.com/ablinov/lifevault/internal/logging"
	"github.com/ablinov/lifevault/internal/server/config"
	"github.com/ablinov/lifevault/internal/server/repositories/repomanager"
	"github.com/ablinov/lifevault/internal/server/web"
)

// Run builds the application and serves until ctx is canceled.
func Run(ctx context.Context) error {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg, err := config.LoadServerConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	repos := repomanager.NewPostgresRepositoryManager(db)
	if err := repos.RunMigrations(ctx); err != nil {
		return err
	}

	exporter := backup.NewExporter(db, repos, logger)
	importer := backup.NewImporter(db, repos, cfg.ImportTimeout, logger)

	srv := web.NewServer(cfg, logger, exporter, importer)
	return srv.Run(ctx)
}

package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/ablinov/lifevault/internal/dbx"
	"github.com/ablinov/lifevault/internal/server/migrations"
	"github.com/ablinov/lifevault/internal/server/repositories/catalog"
	"github.com/ablinov/lifevault/internal/server/repositories/family"
	"github.com/ablinov/lifevault/internal/server/repositories/finance"
	"github.com/ablinov/lifevault/internal/server/repositories/nutrition"
	"github.com/ablinov/lifevault/internal/server/repositories/profiles"
	"github.com/ablinov/lifevault/internal/server/repositories/users"
	"github.com/ablinov/lifevault/internal/server/repositories/workouts"
)

// PostgresRepositoryManager builds the postgres-backed repositories.
type PostgresRepositoryManager struct {
	db *sql.DB
}

func NewPostgresRepositoryManager(db *sql.DB) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{db: db}
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Profiles(db dbx.DBTX) profiles.Repository {
	return profiles.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Catalog(db dbx.DBTX) catalog.Repository {
	return catalog.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Workouts(db dbx.DBTX) workouts.Repository {
	return workouts.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Finance(db dbx.DBTX) finance.Repository {
	return finance.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Nutrition(db dbx.DBTX) nutrition.Repository {
	return nutrition.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Family(db dbx.DBTX) family.Repository {
	return family.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

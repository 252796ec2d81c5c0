// Package profiles provides storage for the per-user profile record.
package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ablinov/lifevault/internal/common"
	"github.com/ablinov/lifevault/internal/dbx"
	"github.com/ablinov/lifevault/internal/server/models"
)

// PostgresRepository implements profile storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, ownerID string) (*models.Profile, error) {
	query := `
		SELECT owner_id, display_name, timezone, birth_date, height_cm, weight_kg
		FROM profiles
		WHERE owner_id = $1
	`
	var p models.Profile
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(
		&p.OwnerID, &p.DisplayName, &p.Timezone, &p.BirthDate, &p.HeightCm, &p.WeightKg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &p, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, p *models.Profile) error {
	query := `
		INSERT INTO profiles (owner_id, display_name, timezone, birth_date, height_cm, weight_kg)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (owner_id)
		DO UPDATE SET
			display_name = EXCLUDED.display_name,
			timezone = EXCLUDED.timezone,
			birth_date = EXCLUDED.birth_date,
			height_cm = EXCLUDED.height_cm,
			weight_kg = EXCLUDED.weight_kg
	`
	_, err := r.db.ExecContext(ctx, query,
		p.OwnerID, p.DisplayName, p.Timezone, p.BirthDate, p.HeightCm, p.WeightKg)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

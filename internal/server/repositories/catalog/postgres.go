// Package catalog provides storage for the hierarchical taxonomy shared by
// every other module (transaction types, meal categories, relationship
// kinds and so on).
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ablinov/lifevault/internal/common"
	"github.com/ablinov/lifevault/internal/dbx"
	"github.com/ablinov/lifevault/internal/server/models"
)

// MaxDepth is the cap on catalog tree depth. The importer re-parents
// anything deeper at the root.
const MaxDepth = 3

// PostgresRepository implements catalog storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, item *models.CatalogItem) error {
	query := `
		INSERT INTO catalog_items (id, owner_id, kind, name, slug, parent_id, level, is_system)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.OwnerID, item.Kind, item.Name, item.Slug, item.ParentID, item.Level, item.IsSystem)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.CatalogItem, error) {
	query := `
		SELECT id, owner_id, kind, name, slug, parent_id, level, is_system
		FROM catalog_items
		WHERE id = $1
	`
	var item models.CatalogItem
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.OwnerID, &item.Kind, &item.Name, &item.Slug, &item.ParentID, &item.Level, &item.IsSystem)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &item, nil
}

func (r *PostgresRepository) FindByNaturalKey(ctx context.Context, ownerID, kind, slug string) (*models.CatalogItem, error) {
	query := `
		SELECT id, owner_id, kind, name, slug, parent_id, level, is_system
		FROM catalog_items
		WHERE owner_id = $1 AND kind = $2 AND slug = $3 AND is_system = FALSE
	`
	var item models.CatalogItem
	err := r.db.QueryRowContext(ctx, query, ownerID, kind, slug).Scan(
		&item.ID, &item.OwnerID, &item.Kind, &item.Name, &item.Slug, &item.ParentID, &item.Level, &item.IsSystem)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &item, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.CatalogItem, error) {
	query := `
		SELECT id, owner_id, kind, name, slug, parent_id, level, is_system
		FROM catalog_items
		WHERE owner_id = $1 AND is_system = FALSE
		ORDER BY level, name
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select catalog items: %w", err)
	}
	defer rows.Close()

	var result []*models.CatalogItem
	for rows.Next() {
		var item models.CatalogItem
		if err := rows.Scan(
			&item.ID, &item.OwnerID, &item.Kind, &item.Name, &item.Slug, &item.ParentID, &item.Level, &item.IsSystem,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteByOwner removes per level, deepest first, so parent rows are never
// deleted while children still reference them. The starting level comes
// from the store rather than MaxDepth, so rows that predate the current
// cap are wiped too.
func (r *PostgresRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	var deepest sql.NullInt64
	levelQuery := `SELECT MAX(level) FROM catalog_items WHERE owner_id = $1 AND is_system = FALSE`
	if err := r.db.QueryRowContext(ctx, levelQuery, ownerID).Scan(&deepest); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	query := `DELETE FROM catalog_items WHERE owner_id = $1 AND is_system = FALSE AND level = $2`
	for level := int(deepest.Int64); level >= 0; level-- {
		if _, err := r.db.ExecContext(ctx, query, ownerID, level); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	query := `SELECT COUNT(*) FROM catalog_items WHERE owner_id = $1 AND is_system = FALSE`
	var n int
	if err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

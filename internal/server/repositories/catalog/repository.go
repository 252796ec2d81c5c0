package catalog

import (
	"context"

	"github.com/ablinov/lifevault/internal/server/models"
)

// Repository provides access to catalog taxonomy entries.
type Repository interface {
	// Create inserts a new catalog item row.
	Create(ctx context.Context, item *models.CatalogItem) error

	// GetByID returns the item with the given id regardless of ownership,
	// or common.ErrNotFound. Used to recognize references to system items,
	// whose ids are stable across stores.
	GetByID(ctx context.Context, id string) (*models.CatalogItem, error)

	// FindByNaturalKey looks up a non-system item by its natural key
	// (kind + slug, scoped to the owner). Returns common.ErrNotFound when no
	// such row exists.
	FindByNaturalKey(ctx context.Context, ownerID, kind, slug string) (*models.CatalogItem, error)

	// ListByOwner returns the owner's non-system items ordered by level then
	// name, so parents always precede their children.
	ListByOwner(ctx context.Context, ownerID string) ([]*models.CatalogItem, error)

	// DeleteByOwner removes all non-system items of the owner. System items
	// are never touched.
	DeleteByOwner(ctx context.Context, ownerID string) error

	// CountByOwner counts the owner's non-system items.
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}

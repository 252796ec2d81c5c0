package profiles

import (
	"context"

	"github.com/ablinov/lifevault/internal/server/models"
)

// Repository provides access to the 1:1 user profile record.
type Repository interface {
	// Get returns the owner's profile, or common.ErrNotFound.
	Get(ctx context.Context, ownerID string) (*models.Profile, error)

	// Upsert creates the profile row if absent, otherwise updates it in
	// place. A profile is a singleton identity record, never duplicated.
	Upsert(ctx context.Context, p *models.Profile) error
}

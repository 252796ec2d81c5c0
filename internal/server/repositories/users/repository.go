package users

import (
	"context"

	"github.com/ablinov/lifevault/internal/server/models"
)

// Repository provides access to user account records.
type Repository interface {
	// Create inserts a new user row.
	Create(ctx context.Context, u *models.User) error

	// GetByID returns the user with the given id, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)
}

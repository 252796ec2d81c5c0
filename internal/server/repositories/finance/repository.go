package finance

import (
	"context"

	"github.com/ablinov/lifevault/internal/server/models"
)

// Repository provides access to the finance module: transactions,
// investments and budgets (independent, flat collections).
type Repository interface {
	CreateTransaction(ctx context.Context, t *models.Transaction) error
	CreateInvestment(ctx context.Context, i *models.Investment) error
	CreateBudget(ctx context.Context, b *models.Budget) error

	ListTransactionsByOwner(ctx context.Context, ownerID string) ([]*models.Transaction, error)
	ListInvestmentsByOwner(ctx context.Context, ownerID string) ([]*models.Investment, error)
	ListBudgetsByOwner(ctx context.Context, ownerID string) ([]*models.Budget, error)

	DeleteTransactionsByOwner(ctx context.Context, ownerID string) error
	DeleteInvestmentsByOwner(ctx context.Context, ownerID string) error
	DeleteBudgetsByOwner(ctx context.Context, ownerID string) error

	// Counts returns per-entity-kind row counts for the owner, keyed by the
	// envelope kind names (transactions, investments, budgets).
	Counts(ctx context.Context, ownerID string) (map[string]int, error)
}

// Package finance provides storage for transactions, investments and
// budgets.
package finance

import (
	"context"
	"fmt"

	"github.com/ablinov/lifevault/internal/dbx"
	"github.com/ablinov/lifevault/internal/server/models"
)

// PostgresRepository implements finance storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, owner_id, amount, direction, occurred_at, description, type_id, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.OwnerID, t.Amount, t.Direction, t.OccurredAt, t.Description, t.TypeID, t.CategoryID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) CreateInvestment(ctx context.Context, i *models.Investment) error {
	query := `
		INSERT INTO investments (id, owner_id, name, amount, type_id, purchased_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		i.ID, i.OwnerID, i.Name, i.Amount, i.TypeID, i.PurchasedAt, i.Notes)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) CreateBudget(ctx context.Context, b *models.Budget) error {
	query := `
		INSERT INTO budgets (id, owner_id, name, amount, category_id, period_start, period_end)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.OwnerID, b.Name, b.Amount, b.CategoryID, b.PeriodStart, b.PeriodEnd)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListTransactionsByOwner(ctx context.Context, ownerID string) ([]*models.Transaction, error) {
	query := `
		SELECT id, owner_id, amount, direction, occurred_at, description, type_id, category_id
		FROM transactions WHERE owner_id = $1
		ORDER BY occurred_at
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select transactions: %w", err)
	}
	defer rows.Close()

	var result []*models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Amount, &t.Direction, &t.OccurredAt, &t.Description, &t.TypeID, &t.CategoryID); err != nil {
			return nil, err
		}
		result = append(result, &t)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) ListInvestmentsByOwner(ctx context.Context, ownerID string) ([]*models.Investment, error) {
	query := `
		SELECT id, owner_id, name, amount, type_id, purchased_at, notes
		FROM investments WHERE owner_id = $1
		ORDER BY purchased_at
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select investments: %w", err)
	}
	defer rows.Close()

	var result []*models.Investment
	for rows.Next() {
		var i models.Investment
		if err := rows.Scan(&i.ID, &i.OwnerID, &i.Name, &i.Amount, &i.TypeID, &i.PurchasedAt, &i.Notes); err != nil {
			return nil, err
		}
		result = append(result, &i)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) ListBudgetsByOwner(ctx context.Context, ownerID string) ([]*models.Budget, error) {
	query := `
		SELECT id, owner_id, name, amount, category_id, period_start, period_end
		FROM budgets WHERE owner_id = $1
		ORDER BY period_start
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select budgets: %w", err)
	}
	defer rows.Close()

	var result []*models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.Name, &b.Amount, &b.CategoryID, &b.PeriodStart, &b.PeriodEnd); err != nil {
			return nil, err
		}
		result = append(result, &b)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) DeleteTransactionsByOwner(ctx context.Context, ownerID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE owner_id = $1`, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteInvestmentsByOwner(ctx context.Context, ownerID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM investments WHERE owner_id = $1`, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteBudgetsByOwner(ctx context.Context, ownerID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE owner_id = $1`, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Counts(ctx context.Context, ownerID string) (map[string]int, error) {
	tables := map[string]string{
		"transactions": "transactions",
		"investments":  "investments",
		"budgets":      "budgets",
	}
	counts := make(map[string]int, len(tables))
	for kind, table := range tables {
		query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE owner_id = $1`, table)
		var n int
		if err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&n); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		counts[kind] = n
	}
	return counts, nil
}

// Package nutrition provides storage for meals, food items, goals and meal
// templates.
package nutrition

import (
	"context"
	"fmt"

	"github.com/ablinov/lifevault/internal/dbx"
	"github.com/ablinov/lifevault/internal/server/models"
)

// PostgresRepository implements nutrition storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateMeal(ctx context.Context, m *models.Meal) error {
	query := `
		INSERT INTO meals (id, owner_id, name, meal_type, consumed_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query, m.ID, m.OwnerID, m.Name, m.MealType, m.ConsumedAt, m.Notes)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) CreateFoodItem(ctx context.Context, f *models.FoodItem) error {
	query := `
		INSERT INTO food_items (id, meal_id, owner_id, name, quantity, unit, calories, protein_g, carbs_g, fat_g)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		f.ID, f.MealID, f.OwnerID, f.Name, f.Quantity, f.Unit, f.Calories, f.ProteinG, f.CarbsG, f.FatG)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) CreateGoal(ctx context.Context, g *models.NutritionGoal) error {
	query := `
		INSERT INTO nutrition_goals (id, owner_id, calories, protein_g, carbs_g, fat_g, effective_from)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		g.ID, g.OwnerID, g.Calories, g.ProteinG, g.CarbsG, g.FatG, g.EffectiveFrom)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) CreateTemplate(ctx context.Context, t *models.MealTemplate) error {
	query := `
		INSERT INTO meal_templates (id, owner_id, name, meal_type)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, t.ID, t.OwnerID, t.Name, t.MealType)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) CreateTemplateFoodItem(ctx context.Context, it *models.TemplateFoodItem) error {
	query := `
		INSERT INTO template_food_items (id, template_id, owner_id, name, quantity, unit, calories)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		it.ID, it.TemplateID, it.OwnerID, it.Name, it.Quantity, it.Unit, it.Calories)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListMealsByOwner(ctx context.Context, ownerID string) ([]*models.Meal, error) {
	query := `
		SELECT id, owner_id, name, meal_type, consumed_at, notes
		FROM meals WHERE owner_id = $1
		ORDER BY consumed_at
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select meals: %w", err)
	}
	defer rows.Close()

	var meals []*models.Meal
	for rows.Next() {
		var m models.Meal
		if err := rows.Scan(&m.ID, &m.OwnerID, &m.Name, &m.MealType, &m.ConsumedAt, &m.Notes); err != nil {
			return nil, err
		}
		meals = append(meals, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	fiQuery := `
		SELECT id, meal_id, owner_id, name, quantity, unit, calories, protein_g, carbs_g, fat_g
		FROM food_items WHERE owner_id = $1
	`
	fiRows, err := r.db.QueryContext(ctx, fiQuery, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select food items: %w", err)
	}
	defer fiRows.Close()

	byMeal := make(map[string]*models.Meal, len(meals))
	for _, m := range meals {
		byMeal[m.ID] = m
	}
	for fiRows.Next() {
		var f models.FoodItem
		if err := fiRows.Scan(&f.ID, &f.MealID, &f.OwnerID, &f.Name, &f.Quantity, &f.Unit, &f.Calories, &f.ProteinG, &f.CarbsG, &f.FatG); err != nil {
			return nil, err
		}
		if m, ok := byMeal[f.MealID]; ok {
			m.FoodItems = append(m.FoodItems, &f)
		}
	}
	return meals, fiRows.Err()
}

func (r *PostgresRepository) ListGoalsByOwner(ctx context.Context, ownerID string) ([]*models.NutritionGoal, error) {
	query := `
		SELECT id, owner_id, calories, protein_g, carbs_g, fat_g, effective_from
		FROM nutrition_goals WHERE owner_id = $1
		ORDER BY effective_from
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select nutrition goals: %w", err)
	}
	defer rows.Close()

	var result []*models.NutritionGoal
	for rows.Next() {
		var g models.NutritionGoal
		if err := rows.Scan(&g.ID, &g.OwnerID, &g.Calories, &g.ProteinG, &g.CarbsG, &g.FatG, &g.EffectiveFrom); err != nil {
			return nil, err
		}
		result = append(result, &g)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) ListTemplatesByOwner(ctx context.Context, ownerID string) ([]*models.MealTemplate, error) {
	query := `
		SELECT id, owner_id, name, meal_type
		FROM meal_templates WHERE owner_id = $1
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select meal templates: %w", err)
	}
	defer rows.Close()

	var templates []*models.MealTemplate
	for rows.Next() {
		var t models.MealTemplate
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Name, &t.MealType); err != nil {
			return nil, err
		}
		templates = append(templates, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itQuery := `
		SELECT id, template_id, owner_id, name, quantity, unit, calories
		FROM template_food_items WHERE owner_id = $1
	`
	itRows, err := r.db.QueryContext(ctx, itQuery, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select template food items: %w", err)
	}
	defer itRows.Close()

	byTemplate := make(map[string]*models.MealTemplate, len(templates))
	for _, t := range templates {
		byTemplate[t.ID] = t
	}
	for itRows.Next() {
		var it models.TemplateFoodItem
		if err := itRows.Scan(&it.ID, &it.TemplateID, &it.OwnerID, &it.Name, &it.Quantity, &it.Unit, &it.Calories); err != nil {
			return nil, err
		}
		if t, ok := byTemplate[it.TemplateID]; ok {
			t.Items = append(t.Items, &it)
		}
	}
	return templates, itRows.Err()
}

func (r *PostgresRepository) DeleteMealsByOwner(ctx context.Context, ownerID string) error {
	for _, table := range []string{"food_items", "meals"} {
		query := fmt.Sprintf(`DELETE FROM %s WHERE owner_id = $1`, table)
		if _, err := r.db.ExecContext(ctx, query, ownerID); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) DeleteGoalsByOwner(ctx context.Context, ownerID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM nutrition_goals WHERE owner_id = $1`, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteTemplatesByOwner(ctx context.Context, ownerID string) error {
	for _, table := range []string{"template_food_items", "meal_templates"} {
		query := fmt.Sprintf(`DELETE FROM %s WHERE owner_id = $1`, table)
		if _, err := r.db.ExecContext(ctx, query, ownerID); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) Counts(ctx context.Context, ownerID string) (map[string]int, error) {
	tables := map[string]string{
		"meals":             "meals",
		"foodItems":         "food_items",
		"nutritionGoals":    "nutrition_goals",
		"mealTemplates":     "meal_templates",
		"templateFoodItems": "template_food_items",
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

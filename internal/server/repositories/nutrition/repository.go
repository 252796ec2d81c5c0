package nutrition

import (
	"context"

	"github.com/ablinov/lifevault/internal/server/models"
)

// Repository provides access to the nutrition module: meals with food
// items, nutrition goals, and meal templates with their items.
type Repository interface {
	CreateMeal(ctx context.Context, m *models.Meal) error
	CreateFoodItem(ctx context.Context, f *models.FoodItem) error
	CreateGoal(ctx context.Context, g *models.NutritionGoal) error
	CreateTemplate(ctx context.Context, t *models.MealTemplate) error
	CreateTemplateFoodItem(ctx context.Context, it *models.TemplateFoodItem) error

	ListMealsByOwner(ctx context.Context, ownerID string) ([]*models.Meal, error)
	ListGoalsByOwner(ctx context.Context, ownerID string) ([]*models.NutritionGoal, error)
	ListTemplatesByOwner(ctx context.Context, ownerID string) ([]*models.MealTemplate, error)

	DeleteMealsByOwner(ctx context.Context, ownerID string) error
	DeleteGoalsByOwner(ctx context.Context, ownerID string) error
	DeleteTemplatesByOwner(ctx context.Context, ownerID string) error

	// Counts returns per-entity-kind row counts for the owner, keyed by the
	// envelope kind names (meals, foodItems, nutritionGoals, mealTemplates,
	// templateFoodItems).
	Counts(ctx context.Context, ownerID string) (map[string]int, error)
}

package models

import "time"

type Meal struct {
	ID         string
	OwnerID    string
	Name       string
	MealType   string
	ConsumedAt time.Time
	Notes      string

	FoodItems []*FoodItem
}

type FoodItem struct {
	ID       string
	MealID   string
	OwnerID  string
	Name     string
	Quantity float64
	Unit     string
	Calories float64
	ProteinG float64
	CarbsG   float64
	FatG     float64
}

type NutritionGoal struct {
	ID            string
	OwnerID       string
	Calories      float64
	ProteinG      float64
	CarbsG        float64
	FatG          float64
	EffectiveFrom time.Time
}

type MealTemplate struct {
	ID       string
	OwnerID  string
	Name     string
	MealType string

	Items []*TemplateFoodItem
}

type TemplateFoodItem struct {
	ID         string
	TemplateID string
	OwnerID    string
	Name       string
	Quantity   float64
	Unit       string
	Calories   float64
}

package backup

import (
	"fmt"

	"github.com/ablinov/lifevault/internal/backup/envelope"
)

// PreviewResult reports what an import of the document would do, without
// touching the store.
type PreviewResult struct {
	Valid         bool                  `json:"valid"`
	SchemaVersion string                `json:"schemaVersion,omitempty"`
	Compatible    bool                  `json:"compatible"`
	OwnerEmail    string                `json:"ownerEmail,omitempty"`
	ExportedAt    string                `json:"exportedAt,omitempty"`
	Counts        map[string]int        `json:"counts,omitempty"`
	Warnings      []string              `json:"warnings,omitempty"`
	Errors        []envelope.FieldError `json:"errors,omitempty"`
}

// Preview validates a raw document and, when it is well formed, summarizes
// its contents: per-entity-kind counts, provenance, and warnings an import
// would raise up front.
func Preview(doc any) *PreviewResult {
	vr := envelope.Validate(doc)
	if !vr.Valid {
		return &PreviewResult{Errors: vr.Errors}
	}

	b := vr.Backup
	res := &PreviewResult{
		Valid:         true,
		SchemaVersion: b.Meta.SchemaVersion,
		OwnerEmail:    b.Meta.OwnerEmail,
		ExportedAt:    b.Meta.ExportedAt,
		Counts:        map[string]int{},
	}

	ok, err := envelope.CheckCompatibility(b.Meta.SchemaVersion)
	res.Compatible = ok && err == nil
	if !res.Compatible {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"document schema version %s differs from engine version %s in MAJOR; import will warn and proceed",
			b.Meta.SchemaVersion, envelope.SchemaVersion))
	}

	d := &b.Data
	if d.Profile != nil {
		res.Counts[envelope.KindProfile] = 1
	}
	addCount := func(kind string, n int) {
		if n > 0 {
			res.Counts[kind] = n
		}
	}

	var exercises, sets, samples, templateExercises int
	for _, w := range d.Workouts {
		exercises += len(w.Exercises)
		for _, ex := range w.Exercises {
			sets += len(ex.Sets)
			samples += len(ex.Progress)
		}
	}
	for _, t := range d.WorkoutTemplates {
		templateExercises += len(t.Exercises)
	}
	addCount(envelope.KindWorkouts, len(d.Workouts))
	addCount(envelope.KindExercises, exercises)
	addCount(envelope.KindExerciseSets, sets)
	addCount(envelope.KindProgressSamples, samples)
	addCount(envelope.KindWorkoutTemplates, len(d.WorkoutTemplates))
	addCount(envelope.KindTemplateExercises, templateExercises)

	addCount(envelope.KindTransactions, len(d.Transactions))
	addCount(envelope.KindInvestments, len(d.Investments))
	addCount(envelope.KindBudgets, len(d.Budgets))

	var foodItems, templateFoodItems int
	for _, m := range d.Meals {
		foodItems += len(m.FoodItems)
	}
	for _, t := range d.MealTemplates {
		templateFoodItems += len(t.Items)
	}
	addCount(envelope.KindMeals, len(d.Meals))
	addCount(envelope.KindFoodItems, foodItems)
	addCount(envelope.KindNutritionGoals, len(d.NutritionGoals))
	addCount(envelope.KindMealTemplates, len(d.MealTemplates))
	addCount(envelope.KindTemplateFoodItems, templateFoodItems)

	addCount(envelope.KindFamilyMembers, len(d.FamilyMembers))
	addCount(envelope.KindTimeLogs, len(d.TimeLogs))
	addCount(envelope.KindEvents, len(d.Events))
	addCount(envelope.KindReminders, len(d.Reminders))

	var system, user int
	for _, it := range d.CatalogItems {
		if it.IsSystem {
			system++
		} else {
			user++
		}
	}
	addCount(envelope.KindCatalogItems, user)
	if system > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"%d system catalog items in document will be skipped", system))
	}

	return res
}

package backup

import (
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/ablinov/lifevault/internal/backup/envelope"
	"github.com/ablinov/lifevault/internal/logging"
	"github.com/ablinov/lifevault/internal/server/repositories/repomanager"
)

// Schema mirror for the in-memory test store. Same tables and columns as
// the production migrations, minus postgres-only defaults.
const testSchema = `
CREATE TABLE users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE profiles (
    owner_id TEXT PRIMARY KEY REFERENCES users (id),
    display_name TEXT NOT NULL,
    timezone TEXT NOT NULL DEFAULT '',
    birth_date TIMESTAMPTZ,
    height_cm DOUBLE PRECISION,
    weight_kg DOUBLE PRECISION
);
CREATE TABLE catalog_items (
    id TEXT PRIMARY KEY,
    owner_id TEXT REFERENCES users (id),
    kind TEXT NOT NULL,
    name TEXT NOT NULL,
    slug TEXT NOT NULL,
    parent_id TEXT REFERENCES catalog_items (id),
    level INTEGER NOT NULL DEFAULT 0,
    is_system BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE UNIQUE INDEX catalog_items_natural_key
    ON catalog_items (owner_id, kind, slug) WHERE is_system = FALSE;
CREATE TABLE workouts (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL REFERENCES users (id),
    name TEXT NOT NULL,
    performed_at TIMESTAMPTZ NOT NULL,
    notes TEXT NOT NULL DEFAULT ''
);
CREATE TABLE exercises (
    id TEXT PRIMARY KEY,
    workout_id TEXT NOT NULL REFERENCES workouts (id),
    owner_id TEXT NOT NULL REFERENCES users (id),
    name TEXT NOT NULL,
    exercise_type_id TEXT
);
CREATE TABLE exercise_sets (
    id TEXT PRIMARY KEY,
    exercise_id TEXT NOT NULL REFERENCES exercises (id),
    owner_id TEXT NOT NULL REFERENCES users (id),
    set_number INTEGER NOT NULL,
    reps INTEGER NOT NULL,
    weight_kg DOUBLE PRECISION NOT NULL
);
CREATE TABLE progress_samples (
    id TEXT PRIMARY KEY,
    exercise_id TEXT NOT NULL REFERENCES exercises (id),
    owner_id TEXT NOT NULL REFERENCES users (id),
    recorded_at TIMESTAMPTZ NOT NULL,
    max_weight_kg DOUBLE PRECISION NOT NULL,
    total_reps INTEGER NOT NULL
);
CREATE TABLE workout_templates (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL REFERENCES users (id),
    name TEXT NOT NULL,
    notes TEXT NOT NULL DEFAULT ''
);
CREATE TABLE template_exercises (
    id TEXT PRIMARY KEY,
    template_id TEXT NOT NULL REFERENCES workout_templates (id),
    owner_id TEXT NOT NULL REFERENCES users (id),
    name TEXT NOT NULL,
    target_sets INTEGER NOT NULL,
    target_reps INTEGER NOT NULL,
    exercise_type_id TEXT
);
CREATE TABLE transactions (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL REFERENCES users (id),
    amount DOUBLE PRECISION NOT NULL,
    direction TEXT NOT NULL,
    occurred_at TIMESTAMPTZ NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    type_id TEXT,
    category_id TEXT
);
CREATE TABLE investments (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL REFERENCES users (id),
    name TEXT NOT NULL,
    amount DOUBLE PRECISION NOT NULL,
    type_id TEXT,
    purchased_at TIMESTAMPTZ NOT NULL,
    notes TEXT NOT NULL DEFAULT ''
);
CREATE TABLE budgets (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL REFERENCES users (id),
    name TEXT NOT NULL,
    amount DOUBLE PRECISION NOT NULL,
    category_id TEXT,
    period_start TIMESTAMPTZ NOT NULL,
    period_end TIMESTAMPTZ NOT NULL
);
CREATE TABLE meals (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL REFERENCES users (id),
    name TEXT NOT NULL,
    meal_type TEXT NOT NULL,
    consumed_at TIMESTAMPTZ NOT NULL,
    notes TEXT NOT NULL DEFAULT ''
);
CREATE TABLE food_items (
    id TEXT PRIMARY KEY,
    meal_id TEXT NOT NULL REFERENCES meals (id),
    owner_id TEXT NOT NULL REFERENCES users (id),
    name TEXT NOT NULL,
    quantity DOUBLE PRECISION NOT NULL,
    unit TEXT NOT NULL DEFAULT '',
    calories DOUBLE PRECISION NOT NULL,
    protein_g DOUBLE PRECISION NOT NULL,
    carbs_g DOUBLE PRECISION NOT NULL,
    fat_g DOUBLE PRECISION NOT NULL
);
CREATE TABLE nutrition_goals (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL REFERENCES users (id),
    calories DOUBLE PRECISION NOT NULL,
    protein_g DOUBLE PRECISION NOT NULL,
    carbs_g DOUBLE PRECISION NOT NULL,
    fat_g DOUBLE PRECISION NOT NULL,
    effective_from TIMESTAMPTZ NOT NULL
);
CREATE TABLE meal_templates (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL REFERENCES users (id),
    name TEXT NOT NULL,
    meal_type TEXT NOT NULL
);
CREATE TABLE template_food_items (
    id TEXT PRIMARY KEY,
    template_id TEXT NOT NULL REFERENCES meal_templates (id),
    owner_id TEXT NOT NULL REFERENCES users (id),
    name TEXT NOT NULL,
    quantity DOUBLE PRECISION NOT NULL,
    unit TEXT NOT NULL DEFAULT '',
    calories DOUBLE PRECISION NOT NULL
);
CREATE TABLE family_members (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL REFERENCES users (id),
    name TEXT NOT NULL,
    birth_date TIMESTAMPTZ,
    relationship_type_id TEXT
);
CREATE TABLE time_logs (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL REFERENCES users (id),
    family_member_id TEXT REFERENCES family_members (id),
    activity_type_id TEXT,
    started_at TIMESTAMPTZ NOT NULL,
    duration_minutes INTEGER NOT NULL,
    notes TEXT NOT NULL DEFAULT ''
);
CREATE TABLE events (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL REFERENCES users (id),
    title TEXT NOT NULL,
    family_member_id TEXT REFERENCES family_members (id),
    event_type_id TEXT,
    scheduled_at TIMESTAMPTZ NOT NULL,
    location TEXT NOT NULL DEFAULT ''
);
CREATE TABLE reminders (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL REFERENCES users (id),
    title TEXT NOT NULL,
    family_member_id TEXT REFERENCES family_members (id),
    reminder_type_id TEXT,
    remind_at TIMESTAMPTZ NOT NULL,
    done BOOLEAN NOT NULL DEFAULT FALSE
);
`

const testOwnerID = "owner-1"

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO users (id, email, created_at) VALUES (?, ?, ?)`,
		testOwnerID, "owner@example.com", time.Now().UTC())
	require.NoError(t, err)
	return db
}

func newTestLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestEngine(t *testing.T) (*sql.DB, *Exporter, *Importer) {
	t.Helper()
	db := newTestDB(t)
	repos := repomanager.NewPostgresRepositoryManager(db)
	logger := newTestLogger()
	return db, NewExporter(db, repos, logger), NewImporter(db, repos, 30*time.Second, logger)
}

func strptr(s string) *string { return &s }

// sampleBackup builds a document exercising every entity kind, with
// cross-references: the exercise and transaction point at user taxonomy
// entries, the time log at a family member.
func sampleBackup() *envelope.Backup {
	return &envelope.Backup{
		Meta: envelope.Meta{
			SchemaVersion: envelope.SchemaVersion,
			ExportedAt:    "2026-02-01T10:00:00Z",
			OwnerID:       "src-owner",
			OwnerEmail:    "src@example.com",
		},
		Data: envelope.Data{
			Profile: &envelope.Profile{
				DisplayName: "Alex",
				Timezone:    "Europe/Riga",
				BirthDate:   strptr("1990-05-01T00:00:00Z"),
			},
			CatalogItems: []envelope.CatalogItem{
				{ID: "cat-strength", Kind: "exerciseType", Name: "Strength", Slug: "strength", Level: 0},
				{ID: "cat-barbell", Kind: "exerciseType", Name: "Barbell", Slug: "barbell",
					ParentID: strptr("cat-strength"), Level: 1},
				{ID: "cat-groceries", Kind: "transactionCategory", Name: "Groceries", Slug: "groceries", Level: 0},
			},
			Workouts: []envelope.Workout{
				{
					ID: "w-1", Name: "Push day", PerformedAt: "2026-01-10T08:00:00Z",
					Exercises: []envelope.Exercise{
						{
							ID: "e-1", Name: "Bench press", ExerciseTypeID: strptr("cat-barbell"),
							Sets: []envelope.ExerciseSet{
								{ID: "s-1", SetNumber: 1, Reps: 8, WeightKg: 60},
								{ID: "s-2", SetNumber: 2, Reps: 6, WeightKg: 65},
							},
							Progress: []envelope.ProgressSample{
								{ID: "p-1", RecordedAt: "2026-01-10T08:30:00Z", MaxWeightKg: 65, TotalReps: 14},
							},
						},
					},
				},
			},
			WorkoutTemplates: []envelope.WorkoutTemplate{
				{
					ID: "wt-1", Name: "Upper body",
					Exercises: []envelope.TemplateExercise{
						{ID: "te-1", Name: "Bench press", TargetSets: 3, TargetReps: 8},
					},
				},
			},
			Transactions: []envelope.Transaction{
				{ID: "tx-1", Amount: 42.50, Direction: "expense", OccurredAt: "2026-01-15T12:00:00Z",
					Description: "weekly shop", CategoryID: strptr("cat-groceries")},
			},
			Investments: []envelope.Investment{
				{ID: "inv-1", Name: "Index fund", Amount: 1000, PurchasedAt: "2026-01-02T00:00:00Z"},
			},
			Budgets: []envelope.Budget{
				{ID: "b-1", Name: "Food", Amount: 400, CategoryID: strptr("cat-groceries"),
					PeriodStart: "2026-01-01T00:00:00Z", PeriodEnd: "2026-02-01T00:00:00Z"},
			},
			Meals: []envelope.Meal{
				{
					ID: "m-1", Name: "Breakfast", MealType: "breakfast", ConsumedAt: "2026-01-10T07:00:00Z",
					FoodItems: []envelope.FoodItem{
						{ID: "f-1", Name: "Oats", Quantity: 80, Unit: "g", Calories: 300, ProteinG: 10, CarbsG: 54, FatG: 6},
					},
				},
			},
			NutritionGoals: []envelope.NutritionGoal{
				{ID: "g-1", Calories: 2400, ProteinG: 160, CarbsG: 250, FatG: 80, EffectiveFrom: "2026-01-01T00:00:00Z"},
			},
			MealTemplates: []envelope.MealTemplate{
				{
					ID: "mt-1", Name: "Standard breakfast", MealType: "breakfast",
					Items: []envelope.TemplateFoodItem{
						{ID: "tf-1", Name: "Oats", Quantity: 80, Unit: "g", Calories: 300},
					},
				},
			},
			FamilyMembers: []envelope.FamilyMember{
				{ID: "mem-1", Name: "Sam", BirthDate: strptr("2018-03-14T00:00:00Z")},
			},
			TimeLogs: []envelope.TimeLog{
				{ID: "tl-1", FamilyMemberID: strptr("mem-1"), StartedAt: "2026-01-12T17:00:00Z",
					DurationMinutes: 45, Notes: "homework"},
			},
			Events: []envelope.Event{
				{ID: "ev-1", Title: "School play", FamilyMemberID: strptr("mem-1"),
					ScheduledAt: "2026-03-01T18:00:00Z", Location: "school hall"},
			},
			Reminders: []envelope.Reminder{
				{ID: "rm-1", Title: "Dentist", FamilyMemberID: strptr("mem-1"),
					RemindAt: "2026-02-20T09:00:00Z"},
			},
		},
	}
}

func tableCount(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table+` WHERE owner_id = ?`, testOwnerID).Scan(&n))
	return n
}

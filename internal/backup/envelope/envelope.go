// Package envelope defines the versioned backup document shape shared by
// export and import, and validates untrusted input against it.
//
// All temporal values on the wire are RFC 3339 text, never native dates.
// Foreign-key fields carry identifiers from the exporting store; they are
// meaningful only relative to other identifiers in the same document.
package envelope

// SchemaVersion is the engine's current document version. Compatibility is
// checked on the MAJOR component only.
const SchemaVersion = "1.0.0"

// Entity kind names used as keys in count and result maps.
const (
	KindProfile           = "profile"
	KindWorkouts          = "workouts"
	KindExercises         = "exercises"
	KindExerciseSets      = "exerciseSets"
	KindProgressSamples   = "progressSamples"
	KindWorkoutTemplates  = "workoutTemplates"
	KindTemplateExercises = "templateExercises"
	KindTransactions      = "transactions"
	KindInvestments       = "investments"
	KindBudgets           = "budgets"
	KindMeals             = "meals"
	KindFoodItems         = "foodItems"
	KindNutritionGoals    = "nutritionGoals"
	KindMealTemplates     = "mealTemplates"
	KindTemplateFoodItems = "templateFoodItems"
	KindFamilyMembers     = "familyMembers"
	KindTimeLogs          = "timeLogs"
	KindEvents            = "events"
	KindReminders         = "reminders"
	KindCatalogItems      = "catalogItems"
)

// MealTypes enumerates the accepted values for Meal.MealType and
// MealTemplate.MealType.
var MealTypes = []string{"breakfast", "lunch", "dinner", "snack"}

// TransactionDirections enumerates the accepted values for
// Transaction.Direction.
var TransactionDirections = []string{"income", "expense"}

// Backup is the portable versioned document produced by export and consumed
// by import.
type Backup struct {
	Meta Meta `json:"meta"`
	Data Data `json:"data"`
}

// Meta describes provenance and which optional modules were included.
type Meta struct {
	SchemaVersion   string   `json:"schemaVersion"`
	ExportedAt      string   `json:"exportedAt"`
	OwnerID         string   `json:"ownerId"`
	OwnerEmail      string   `json:"ownerEmail"`
	IncludedModules []string `json:"includedModules,omitempty"`
}

// Data holds the per-entity-kind collections. Every collection is sparse:
// absent means the module was not exported.
type Data struct {
	Profile          *Profile          `json:"profile,omitempty"`
	Workouts         []Workout         `json:"workouts,omitempty"`
	WorkoutTemplates []WorkoutTemplate `json:"workoutTemplates,omitempty"`
	Transactions     []Transaction     `json:"transactions,omitempty"`
	Investments      []Investment      `json:"investments,omitempty"`
	Budgets          []Budget          `json:"budgets,omitempty"`
	Meals            []Meal            `json:"meals,omitempty"`
	NutritionGoals   []NutritionGoal   `json:"nutritionGoals,omitempty"`
	MealTemplates    []MealTemplate    `json:"mealTemplates,omitempty"`
	FamilyMembers    []FamilyMember    `json:"familyMembers,omitempty"`
	TimeLogs         []TimeLog         `json:"timeLogs,omitempty"`
	Events           []Event           `json:"events,omitempty"`
	Reminders        []Reminder        `json:"reminders,omitempty"`
	CatalogItems     []CatalogItem     `json:"catalogItems,omitempty"`
}

type Profile struct {
	DisplayName string   `json:"displayName"`
	Timezone    string   `json:"timezone,omitempty"`
	BirthDate   *string  `json:"birthDate,omitempty"`
	HeightCm    *float64 `json:"heightCm,omitempty"`
	WeightKg    *float64 `json:"weightKg,omitempty"`
}

type Workout struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	PerformedAt string     `json:"performedAt"`
	Notes       string     `json:"notes,omitempty"`
	Exercises   []Exercise `json:"exercises,omitempty"`
}

type Exercise struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	ExerciseTypeID *string          `json:"exerciseTypeId,omitempty"`
	Sets           []ExerciseSet    `json:"sets,omitempty"`
	Progress       []ProgressSample `json:"progress,omitempty"`
}

type ExerciseSet struct {
	ID        string  `json:"id"`
	SetNumber int     `json:"setNumber"`
	Reps      int     `json:"reps"`
	WeightKg  float64 `json:"weightKg"`
}

type ProgressSample struct {
	ID          string  `json:"id"`
	RecordedAt  string  `json:"recordedAt"`
	MaxWeightKg float64 `json:"maxWeightKg"`
	TotalReps   int     `json:"totalReps"`
}

type WorkoutTemplate struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Notes     string             `json:"notes,omitempty"`
	Exercises []TemplateExercise `json:"exercises,omitempty"`
}

type TemplateExercise struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	TargetSets     int     `json:"targetSets"`
	TargetReps     int     `json:"targetReps"`
	ExerciseTypeID *string `json:"exerciseTypeId,omitempty"`
}

type Transaction struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Direction   string  `json:"direction"`
	OccurredAt  string  `json:"occurredAt"`
	Description string  `json:"description,omitempty"`
	TypeID      *string `json:"typeId,omitempty"`
	CategoryID  *string `json:"categoryId,omitempty"`
}

type Investment struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	TypeID      *string `json:"typeId,omitempty"`
	PurchasedAt string  `json:"purchasedAt"`
	Notes       string  `json:"notes,omitempty"`
}

type Budget struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	CategoryID  *string `json:"categoryId,omitempty"`
	PeriodStart string  `json:"periodStart"`
	PeriodEnd   string  `json:"periodEnd"`
}

type Meal struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	MealType   string     `json:"mealType"`
	ConsumedAt string     `json:"consumedAt"`
	Notes      string     `json:"notes,omitempty"`
	FoodItems  []FoodItem `json:"foodItems,omitempty"`
}

type FoodItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit,omitempty"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"proteinG"`
	CarbsG   float64 `json:"carbsG"`
	FatG     float64 `json:"fatG"`
}

type NutritionGoal struct {
	ID            string  `json:"id"`
	Calories      float64 `json:"calories"`
	ProteinG      float64 `json:"proteinG"`
	CarbsG        float64 `json:"carbsG"`
	FatG          float64 `json:"fatG"`
	EffectiveFrom string  `json:"effectiveFrom"`
}

type MealTemplate struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	MealType string             `json:"mealType"`
	Items    []TemplateFoodItem `json:"items,omitempty"`
}

type TemplateFoodItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit,omitempty"`
	Calories float64 `json:"calories"`
}

type FamilyMember struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	BirthDate          *string `json:"birthDate,omitempty"`
	RelationshipTypeID *string `json:"relationshipTypeId,omitempty"`
}

type TimeLog struct {
	ID              string  `json:"id"`
	FamilyMemberID  *string `json:"familyMemberId,omitempty"`
	ActivityTypeID  *string `json:"activityTypeId,omitempty"`
	StartedAt       string  `json:"startedAt"`
	DurationMinutes int     `json:"durationMinutes"`
	Notes           string  `json:"notes,omitempty"`
}

type Event struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	FamilyMemberID *string `json:"familyMemberId,omitempty"`
	EventTypeID    *string `json:"eventTypeId,omitempty"`
	ScheduledAt    string  `json:"scheduledAt"`
	Location       string  `json:"location,omitempty"`
}

type Reminder struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	FamilyMemberID *string `json:"familyMemberId,omitempty"`
	ReminderTypeID *string `json:"reminderTypeId,omitempty"`
	RemindAt       string  `json:"remindAt"`
	Done           bool    `json:"done"`
}

type CatalogItem struct {
	ID       string  `json:"id"`
	Kind     string  `json:"kind"`
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	ParentID *string `json:"parentId,omitempty"`
	Level    int     `json:"level"`
	IsSystem bool    `json:"isSystem"`
	OwnerID  *string `json:"ownerId,omitempty"`
}

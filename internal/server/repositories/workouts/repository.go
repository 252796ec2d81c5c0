package workouts

import (
	"context"

	"github.com/ablinov/lifevault/internal/server/models"
)

// Repository provides access to workouts, their nested exercise data and
// workout templates. Create methods insert single rows; parent rows must be
// created before their children.
type Repository interface {
	CreateWorkout(ctx context.Context, w *models.Workout) error
	CreateExercise(ctx context.Context, e *models.Exercise) error
	CreateSet(ctx context.Context, s *models.ExerciseSet) error
	CreateProgressSample(ctx context.Context, p *models.ProgressSample) error
	CreateTemplate(ctx context.Context, t *models.WorkoutTemplate) error
	CreateTemplateExercise(ctx context.Context, te *models.TemplateExercise) error

	// ListByOwner returns the owner's workouts with exercises, sets and
	// progress samples populated.
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Workout, error)

	// ListTemplatesByOwner returns the owner's workout templates with their
	// exercises populated.
	ListTemplatesByOwner(ctx context.Context, ownerID string) ([]*models.WorkoutTemplate, error)

	// DeleteWorkoutsByOwner removes the owner's workouts and all nested
	// rows, children first.
	DeleteWorkoutsByOwner(ctx context.Context, ownerID string) error

	// DeleteTemplatesByOwner removes the owner's workout templates and
	// their exercises, children first.
	DeleteTemplatesByOwner(ctx context.Context, ownerID string) error

	// Counts returns per-entity-kind row counts for the owner, keyed by the
	// envelope kind names (workouts, exercises, exerciseSets,
	// progressSamples, workoutTemplates, templateExercises).
	Counts(ctx context.Context, ownerID string) (map[string]int, error)
}

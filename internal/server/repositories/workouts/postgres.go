// Package workouts provides storage for the workout module: workouts with
// nested exercises, per-set detail, progress snapshots, and templates.
package workouts

import (
	"context"
	"fmt"

	"github.com/ablinov/lifevault/internal/dbx"
	"github.com/ablinov/lifevault/internal/server/models"
)

// PostgresRepository implements workout storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateWorkout(ctx context.Context, w *models.Workout) error {
	query := `
		INSERT INTO workouts (id, owner_id, name, performed_at, notes)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, w.ID, w.OwnerID, w.Name, w.PerformedAt, w.Notes)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) CreateExercise(ctx context.Context, e *models.Exercise) error {
	query := `
		INSERT INTO exercises (id, workout_id, owner_id, name, exercise_type_id)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.WorkoutID, e.OwnerID, e.Name, e.ExerciseTypeID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) CreateSet(ctx context.Context, s *models.ExerciseSet) error {
	query := `
		INSERT INTO exercise_sets (id, exercise_id, owner_id, set_number, reps, weight_kg)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.ExerciseID, s.OwnerID, s.SetNumber, s.Reps, s.WeightKg)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) CreateProgressSample(ctx context.Context, p *models.ProgressSample) error {
	query := `
		INSERT INTO progress_samples (id, exercise_id, owner_id, recorded_at, max_weight_kg, total_reps)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.ExerciseID, p.OwnerID, p.RecordedAt, p.MaxWeightKg, p.TotalReps)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) CreateTemplate(ctx context.Context, t *models.WorkoutTemplate) error {
	query := `
		INSERT INTO workout_templates (id, owner_id, name, notes)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, t.ID, t.OwnerID, t.Name, t.Notes)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) CreateTemplateExercise(ctx context.Context, te *models.TemplateExercise) error {
	query := `
		INSERT INTO template_exercises (id, template_id, owner_id, name, target_sets, target_reps, exercise_type_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		te.ID, te.TemplateID, te.OwnerID, te.Name, te.TargetSets, te.TargetReps, te.ExerciseTypeID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListByOwner issues one query per entity kind and stitches the rows
// together in memory by parent id.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Workout, error) {
	workouts, err := r.selectWorkouts(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	exercises, err := r.selectExercises(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	sets, err := r.selectSets(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	samples, err := r.selectProgressSamples(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	byExercise := make(map[string]*models.Exercise, len(exercises))
	for _, e := range exercises {
		byExercise[e.ID] = e
	}
	for _, s := range sets {
		if e, ok := byExercise[s.ExerciseID]; ok {
			e.Sets = append(e.Sets, s)
		}
	}
	for _, p := range samples {
		if e, ok := byExercise[p.ExerciseID]; ok {
			e.Progress = append(e.Progress, p)
		}
	}

	byWorkout := make(map[string]*models.Workout, len(workouts))
	for _, w := range workouts {
		byWorkout[w.ID] = w
	}
	for _, e := range exercises {
		if w, ok := byWorkout[e.WorkoutID]; ok {
			w.Exercises = append(w.Exercises, e)
		}
	}

	return workouts, nil
}

func (r *PostgresRepository) selectWorkouts(ctx context.Context, ownerID string) ([]*models.Workout, error) {
	query := `
		SELECT id, owner_id, name, performed_at, notes
		FROM workouts WHERE owner_id = $1
		ORDER BY performed_at
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select workouts: %w", err)
	}
	defer rows.Close()

	var result []*models.Workout
	for rows.Next() {
		var w models.Workout
		if err := rows.Scan(&w.ID, &w.OwnerID, &w.Name, &w.PerformedAt, &w.Notes); err != nil {
			return nil, err
		}
		result = append(result, &w)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) selectExercises(ctx context.Context, ownerID string) ([]*models.Exercise, error) {
	query := `
		SELECT id, workout_id, owner_id, name, exercise_type_id
		FROM exercises WHERE owner_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select exercises: %w", err)
	}
	defer rows.Close()

	var result []*models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.WorkoutID, &e.OwnerID, &e.Name, &e.ExerciseTypeID); err != nil {
			return nil, err
		}
		result = append(result, &e)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) selectSets(ctx context.Context, ownerID string) ([]*models.ExerciseSet, error) {
	query := `
		SELECT id, exercise_id, owner_id, set_number, reps, weight_kg
		FROM exercise_sets WHERE owner_id = $1
		ORDER BY set_number
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select exercise sets: %w", err)
	}
	defer rows.Close()

	var result []*models.ExerciseSet
	for rows.Next() {
		var s models.ExerciseSet
		if err := rows.Scan(&s.ID, &s.ExerciseID, &s.OwnerID, &s.SetNumber, &s.Reps, &s.WeightKg); err != nil {
			return nil, err
		}
		result = append(result, &s)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) selectProgressSamples(ctx context.Context, ownerID string) ([]*models.ProgressSample, error) {
	query := `
		SELECT id, exercise_id, owner_id, recorded_at, max_weight_kg, total_reps
		FROM progress_samples WHERE owner_id = $1
		ORDER BY recorded_at
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select progress samples: %w", err)
	}
	defer rows.Close()

	var result []*models.ProgressSample
	for rows.Next() {
		var p models.ProgressSample
		if err := rows.Scan(&p.ID, &p.ExerciseID, &p.OwnerID, &p.RecordedAt, &p.MaxWeightKg, &p.TotalReps); err != nil {
			return nil, err
		}
		result = append(result, &p)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) ListTemplatesByOwner(ctx context.Context, ownerID string) ([]*models.WorkoutTemplate, error) {
	query := `
		SELECT id, owner_id, name, notes
		FROM workout_templates WHERE owner_id = $1
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select workout templates: %w", err)
	}
	defer rows.Close()

	var templates []*models.WorkoutTemplate
	for rows.Next() {
		var t models.WorkoutTemplate
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Name, &t.Notes); err != nil {
			return nil, err
		}
		templates = append(templates, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	teQuery := `
		SELECT id, template_id, owner_id, name, target_sets, target_reps, exercise_type_id
		FROM template_exercises WHERE owner_id = $1
	`
	teRows, err := r.db.QueryContext(ctx, teQuery, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select template exercises: %w", err)
	}
	defer teRows.Close()

	byTemplate := make(map[string]*models.WorkoutTemplate, len(templates))
	for _, t := range templates {
		byTemplate[t.ID] = t
	}
	for teRows.Next() {
		var te models.TemplateExercise
		if err := teRows.Scan(&te.ID, &te.TemplateID, &te.OwnerID, &te.Name, &te.TargetSets, &te.TargetReps, &te.ExerciseTypeID); err != nil {
			return nil, err
		}
		if t, ok := byTemplate[te.TemplateID]; ok {
			t.Exercises = append(t.Exercises, &te)
		}
	}
	return templates, teRows.Err()
}

func (r *PostgresRepository) DeleteWorkoutsByOwner(ctx context.Context, ownerID string) error {
	for _, table := range []string{"exercise_sets", "progress_samples", "exercises", "workouts"} {
		query := fmt.Sprintf(`DELETE FROM %s WHERE owner_id = $1`, table)
		if _, err := r.db.ExecContext(ctx, query, ownerID); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) DeleteTemplatesByOwner(ctx context.Context, ownerID string) error {
	for _, table := range []string{"template_exercises", "workout_templates"} {
		query := fmt.Sprintf(`DELETE FROM %s WHERE owner_id = $1`, table)
		if _, err := r.db.ExecContext(ctx, query, ownerID); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) Counts(ctx context.Context, ownerID string) (map[string]int, error) {
	tables := map[string]string{
		"workouts":          "workouts",
		"exercises":         "exercises",
		"exerciseSets":      "exercise_sets",
		"progressSamples":   "progress_samples",
		"workoutTemplates":  "workout_templates",
		"templateExercises": "template_exercises",
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

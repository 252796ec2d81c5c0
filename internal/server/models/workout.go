package models

import "time"

type Workout struct {
	ID          string
	OwnerID     string
	Name        string
	PerformedAt time.Time
	Notes       string

	Exercises []*Exercise
}

type Exercise struct {
	ID             string
	WorkoutID      string
	OwnerID        string
	Name           string
	ExerciseTypeID *string

	Sets     []*ExerciseSet
	Progress []*ProgressSample
}

type ExerciseSet struct {
	ID         string
	ExerciseID string
	OwnerID    string
	SetNumber  int
	Reps       int
	WeightKg   float64
}

type ProgressSample struct {
	ID          string
	ExerciseID  string
	OwnerID     string
	RecordedAt  time.Time
	MaxWeightKg float64
	TotalReps   int
}

type WorkoutTemplate struct {
	ID      string
	OwnerID string
	Name    string
	Notes   string

	Exercises []*TemplateExercise
}

type TemplateExercise struct {
	ID             string
	TemplateID     string
	OwnerID        string
	Name           string
	TargetSets     int
	TargetReps     int
	ExerciseTypeID *string
}

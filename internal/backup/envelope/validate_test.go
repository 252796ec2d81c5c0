package envelope

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// decode parses a JSON literal the same way an uploaded document would be.
func decode(t *testing.T, s string) any {
	t.Helper()
	var doc any
	require.NoError(t, json.Unmarshal([]byte(s), &doc))
	return doc
}

func validDoc() string {
	return `{
		"meta": {
			"schemaVersion": "1.0.0",
			"exportedAt": "2026-08-01T10:00:00Z",
			"ownerId": "u-1",
			"ownerEmail": "anna@example.com",
			"includedModules": ["workouts", "nutrition", "catalog"]
		},
		"data": {
			"workouts": [
				{
					"id": "w-1",
					"name": "Push day",
					"performedAt": "2026-07-30T18:00:00Z",
					"exercises": [
						{
							"id": "e-1",
							"name": "Bench press",
							"exerciseTypeId": "cat-1",
							"sets": [
								{"id": "s-1", "setNumber": 1, "reps": 8, "weightKg": 60},
								{"id": "s-2", "setNumber": 2, "reps": 6, "weightKg": 65}
							],
							"progress": [
								{"id": "p-1", "recordedAt": "2026-07-30T18:30:00Z", "maxWeightKg": 65, "totalReps": 14}
							]
						}
					]
				}
			],
			"meals": [
				{
					"id": "m-1",
					"name": "Oatmeal",
					"mealType": "breakfast",
					"consumedAt": "2026-07-30T08:00:00Z",
					"foodItems": [
						{"id": "f-1", "name": "Oats", "quantity": 80, "unit": "g", "calories": 300, "proteinG": 10, "carbsG": 54, "fatG": 6}
					]
				}
			],
			"catalogItems": [
				{"id": "cat-1", "kind": "exercise-type", "name": "Barbell", "slug": "barbell", "level": 0, "isSystem": false, "ownerId": "u-1"}
			]
		}
	}`
}

func TestValidate_ValidDocument(t *testing.T) {
	res := Validate(decode(t, validDoc()))

	require.True(t, res.Valid, "errors: %v", res.Errors)
	require.Empty(t, res.Errors)
	require.NotNil(t, res.Backup)

	b := res.Backup
	require.Equal(t, "1.0.0", b.Meta.SchemaVersion)
	require.Equal(t, "anna@example.com", b.Meta.OwnerEmail)
	require.Len(t, b.Data.Workouts, 1)
	require.Len(t, b.Data.Workouts[0].Exercises, 1)
	require.Len(t, b.Data.Workouts[0].Exercises[0].Sets, 2)
	require.Len(t, b.Data.Workouts[0].Exercises[0].Progress, 1)
	require.Len(t, b.Data.Meals, 1)
	require.Len(t, b.Data.CatalogItems, 1)
	require.NotNil(t, b.Data.Workouts[0].Exercises[0].ExerciseTypeID)
	require.Equal(t, "cat-1", *b.Data.Workouts[0].Exercises[0].ExerciseTypeID)
}

func TestValidate_NotAnObject(t *testing.T) {
	res := Validate(decode(t, `[1, 2, 3]`))
	require.False(t, res.Valid)
	require.NotEmpty(t, res.Errors)
	require.Nil(t, res.Backup)
}

func TestValidate_MissingSchemaVersion(t *testing.T) {
	doc := decode(t, `{
		"meta": {"exportedAt": "2026-08-01T10:00:00Z", "ownerId": "u-1", "ownerEmail": "a@b.c"},
		"data": {}
	}`)
	res := Validate(doc)

	require.False(t, res.Valid)
	require.NotEmpty(t, res.Errors)
	found := false
	for _, e := range res.Errors {
		if e.Path == "meta.schemaVersion" {
			found = true
		}
	}
	require.True(t, found, "want an error at meta.schemaVersion, got %v", res.Errors)
}

func TestValidate_MealMissingMealType(t *testing.T) {
	doc := decode(t, `{
		"meta": {"schemaVersion": "1.0.0", "exportedAt": "2026-08-01T10:00:00Z", "ownerId": "u-1", "ownerEmail": "a@b.c"},
		"data": {
			"meals": [
				{"id": "m-1", "name": "Lunch", "consumedAt": "2026-07-30T12:00:00Z"}
			]
		}
	}`)
	res := Validate(doc)

	require.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	require.Equal(t, "data.meals[0].mealType", res.Errors[0].Path)
}

func TestValidate_NegativeFoodItemQuantity(t *testing.T) {
	doc := decode(t, `{
		"meta": {"schemaVersion": "1.0.0", "exportedAt": "2026-08-01T10:00:00Z", "ownerId": "u-1", "ownerEmail": "a@b.c"},
		"data": {
			"meals": [
				{
					"id": "m-1", "name": "Lunch", "mealType": "lunch", "consumedAt": "2026-07-30T12:00:00Z",
					"foodItems": [
						{"id": "f-1", "name": "Rice", "quantity": -5, "calories": 100, "proteinG": 2, "carbsG": 22, "fatG": 0}
					]
				}
			]
		}
	}`)
	res := Validate(doc)

	require.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	require.Equal(t, "data.meals[0].foodItems[0].quantity", res.Errors[0].Path)
	require.Contains(t, res.Errors[0].Message, "negative")
}

func TestValidate_BadMealTypeEnum(t *testing.T) {
	doc := decode(t, `{
		"meta": {"schemaVersion": "1.0.0", "exportedAt": "2026-08-01T10:00:00Z", "ownerId": "u-1", "ownerEmail": "a@b.c"},
		"data": {
			"meals": [
				{"id": "m-1", "name": "Elevenses", "mealType": "elevenses", "consumedAt": "2026-07-30T11:00:00Z"}
			]
		}
	}`)
	res := Validate(doc)

	require.False(t, res.Valid)
	require.Equal(t, "data.meals[0].mealType", res.Errors[0].Path)
}

func TestValidate_UnparseableTimestamp(t *testing.T) {
	doc := decode(t, `{
		"meta": {"schemaVersion": "1.0.0", "exportedAt": "yesterday", "ownerId": "u-1", "ownerEmail": "a@b.c"},
		"data": {}
	}`)
	res := Validate(doc)

	require.False(t, res.Valid)
	require.Equal(t, "meta.exportedAt", res.Errors[0].Path)
}

func TestValidate_CollectsMultipleErrors(t *testing.T) {
	doc := decode(t, `{
		"meta": {"exportedAt": "2026-08-01T10:00:00Z", "ownerId": "u-1", "ownerEmail": "a@b.c"},
		"data": {
			"transactions": [
				{"id": "t-1", "amount": -3, "direction": "sideways", "occurredAt": "2026-07-01T00:00:00Z"}
			],
			"catalogItems": [
				{"id": "c-1", "kind": "x", "name": "X", "level": 0}
			]
		}
	}`)
	res := Validate(doc)

	require.False(t, res.Valid)
	require.GreaterOrEqual(t, len(res.Errors), 4, "want errors for schemaVersion, amount, direction and slug, got %v", res.Errors)
}

func TestValidate_WrongCollectionShape(t *testing.T) {
	doc := decode(t, `{
		"meta": {"schemaVersion": "1.0.0", "exportedAt": "2026-08-01T10:00:00Z", "ownerId": "u-1", "ownerEmail": "a@b.c"},
		"data": {"workouts": {"id": "w-1"}}
	}`)
	res := Validate(doc)

	require.False(t, res.Valid)
	require.Equal(t, "data.workouts", res.Errors[0].Path)
	require.Contains(t, res.Errors[0].Message, "array")
}

func TestValidate_MissingData(t *testing.T) {
	doc := decode(t, `{"meta": {"schemaVersion": "1.0.0", "exportedAt": "2026-08-01T10:00:00Z", "ownerId": "u-1", "ownerEmail": "a@b.c"}}`)
	res := Validate(doc)

	require.False(t, res.Valid)
	require.Equal(t, "data", res.Errors[0].Path)
}

func TestValidate_EmptyDataIsValid(t *testing.T) {
	doc := decode(t, `{
		"meta": {"schemaVersion": "1.0.0", "exportedAt": "2026-08-01T10:00:00Z", "ownerId": "u-1", "ownerEmail": "a@b.c"},
		"data": {}
	}`)
	res := Validate(doc)

	require.True(t, res.Valid, "errors: %v", res.Errors)
	require.Nil(t, res.Backup.Data.Profile)
	require.Empty(t, res.Backup.Data.Workouts)
}

package backup

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ablinov/lifevault/internal/backup/envelope"
)

// roundtrip turns a typed document into the raw shape Preview receives
// from an HTTP body.
func roundtrip(t *testing.T, doc *envelope.Backup) any {
	t.Helper()
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	var out any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestPreview_ValidDocument(t *testing.T) {
	res := Preview(roundtrip(t, sampleBackup()))

	require.True(t, res.Valid)
	assert.True(t, res.Compatible)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, envelope.SchemaVersion, res.SchemaVersion)
	assert.Equal(t, "src@example.com", res.OwnerEmail)

	assert.Equal(t, 1, res.Counts[envelope.KindProfile])
	assert.Equal(t, 1, res.Counts[envelope.KindWorkouts])
	assert.Equal(t, 1, res.Counts[envelope.KindExercises])
	assert.Equal(t, 2, res.Counts[envelope.KindExerciseSets])
	assert.Equal(t, 1, res.Counts[envelope.KindProgressSamples])
	assert.Equal(t, 1, res.Counts[envelope.KindFoodItems])
	assert.Equal(t, 1, res.Counts[envelope.KindTemplateFoodItems])
	assert.Equal(t, 3, res.Counts[envelope.KindCatalogItems])
}

func TestPreview_InvalidDocument(t *testing.T) {
	res := Preview(map[string]any{"data": map[string]any{}})

	require.False(t, res.Valid)
	assert.NotEmpty(t, res.Errors)
	assert.Empty(t, res.Counts)
}

func TestPreview_NotAnObject(t *testing.T) {
	res := Preview("just a string")
	require.False(t, res.Valid)
	assert.NotEmpty(t, res.Errors)
}

func TestPreview_VersionDriftWarns(t *testing.T) {
	doc := sampleBackup()
	doc.Meta.SchemaVersion = "2.1.0"

	res := Preview(roundtrip(t, doc))
	require.True(t, res.Valid, "a newer-major document still previews")
	assert.False(t, res.Compatible)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "2.1.0")
}

func TestPreview_SystemItemsWarn(t *testing.T) {
	doc := sampleBackup()
	doc.Data.CatalogItems = append(doc.Data.CatalogItems, envelope.CatalogItem{
		ID: "sys-1", Kind: "exerciseType", Name: "Cardio", Slug: "cardio", IsSystem: true,
	})

	res := Preview(roundtrip(t, doc))
	require.True(t, res.Valid)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "system catalog items")
	// Only user-owned items count toward the import.
	assert.Equal(t, 3, res.Counts[envelope.KindCatalogItems])
}

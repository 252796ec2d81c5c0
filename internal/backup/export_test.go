package backup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ablinov/lifevault/internal/backup/envelope"
	"github.com/ablinov/lifevault/internal/common"
)

func TestExport_EmptyStore(t *testing.T) {
	_, exporter, _ := newTestEngine(t)

	doc, err := exporter.Export(context.Background(), testOwnerID, nil)
	require.NoError(t, err)

	assert.Equal(t, envelope.SchemaVersion, doc.Meta.SchemaVersion)
	assert.Equal(t, testOwnerID, doc.Meta.OwnerID)
	assert.Equal(t, "owner@example.com", doc.Meta.OwnerEmail)
	assert.NotEmpty(t, doc.Meta.ExportedAt)
	assert.ElementsMatch(t, common.AllModules(), doc.Meta.IncludedModules)

	assert.Nil(t, doc.Data.Profile)
	assert.Empty(t, doc.Data.Workouts)
	assert.Empty(t, doc.Data.CatalogItems)
}

func TestExport_ModuleFilter(t *testing.T) {
	_, exporter, importer := newTestEngine(t)
	ctx := context.Background()

	_, err := importer.Import(ctx, testOwnerID, sampleBackup(), ModeMerge)
	require.NoError(t, err)

	doc, err := exporter.Export(ctx, testOwnerID, []string{common.ModuleFinance})
	require.NoError(t, err)

	assert.Equal(t, []string{common.ModuleFinance}, doc.Meta.IncludedModules)
	assert.Len(t, doc.Data.Transactions, 1)
	assert.Len(t, doc.Data.Investments, 1)
	assert.Len(t, doc.Data.Budgets, 1)

	assert.Nil(t, doc.Data.Profile)
	assert.Empty(t, doc.Data.Workouts)
	assert.Empty(t, doc.Data.Meals)
	assert.Empty(t, doc.Data.FamilyMembers)
	assert.Empty(t, doc.Data.CatalogItems)
}

func TestExport_UnknownModule(t *testing.T) {
	_, exporter, _ := newTestEngine(t)

	_, err := exporter.Export(context.Background(), testOwnerID, []string{"finance", "astrology"})
	require.ErrorIs(t, err, ErrUnknownModule)
}

func TestExport_SystemItemsStayHome(t *testing.T) {
	db, exporter, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := db.Exec(`
		INSERT INTO catalog_items (id, owner_id, kind, name, slug, parent_id, level, is_system)
		VALUES ('sys-1', NULL, 'exerciseType', 'Cardio', 'cardio', NULL, 0, TRUE)
	`)
	require.NoError(t, err)

	doc, err := exporter.Export(ctx, testOwnerID, []string{common.ModuleCatalog})
	require.NoError(t, err)
	assert.Empty(t, doc.Data.CatalogItems, "shared system taxonomy must not travel in backups")
}

func TestExporter_Counts(t *testing.T) {
	_, exporter, importer := newTestEngine(t)
	ctx := context.Background()

	counts, err := exporter.Counts(ctx, testOwnerID)
	require.NoError(t, err)
	for kind, n := range counts {
		assert.Zero(t, n, kind)
	}

	_, err = importer.Import(ctx, testOwnerID, sampleBackup(), ModeMerge)
	require.NoError(t, err)

	counts, err = exporter.Counts(ctx, testOwnerID)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[envelope.KindProfile])
	assert.Equal(t, 1, counts[envelope.KindWorkouts])
	assert.Equal(t, 2, counts[envelope.KindExerciseSets])
	assert.Equal(t, 1, counts[envelope.KindTransactions])
	assert.Equal(t, 1, counts[envelope.KindMeals])
	assert.Equal(t, 1, counts[envelope.KindFamilyMembers])
	assert.Equal(t, 3, counts[envelope.KindCatalogItems])
}

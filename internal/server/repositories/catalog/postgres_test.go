package catalog

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ablinov/lifevault/internal/common"
	"github.com/ablinov/lifevault/internal/server/models"
)

func newMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newMock(t)
	owner := "owner-1"

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO catalog_items")).
		WithArgs("id-1", "owner-1", "exerciseType", "Strength", "strength", nil, 0, false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &models.CatalogItem{
		ID: "id-1", OwnerID: &owner, Kind: "exerciseType",
		Name: "Strength", Slug: "strength",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newMock(t)
	owner := "owner-1"

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO catalog_items")).
		WillReturnError(errors.New("duplicate key"))

	err := repo.Create(context.Background(), &models.CatalogItem{
		ID: "id-1", OwnerID: &owner, Kind: "exerciseType",
		Name: "Strength", Slug: "strength",
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	repo, mock := newMock(t)

	rows := sqlmock.NewRows([]string{"id", "owner_id", "kind", "name", "slug", "parent_id", "level", "is_system"}).
		AddRow("sys-1", nil, "exerciseType", "Cardio", "cardio", nil, 0, true)
	mock.ExpectQuery(regexp.QuoteMeta("FROM catalog_items")).
		WithArgs("sys-1").
		WillReturnRows(rows)

	item, err := repo.GetByID(context.Background(), "sys-1")
	require.NoError(t, err)
	assert.True(t, item.IsSystem)
	assert.Nil(t, item.OwnerID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM catalog_items")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "kind", "name", "slug", "parent_id", "level", "is_system"}))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByNaturalKey_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("is_system = FALSE")).
		WithArgs("owner-1", "exerciseType", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "kind", "name", "slug", "parent_id", "level", "is_system"}))

	_, err := repo.FindByNaturalKey(context.Background(), "owner-1", "exerciseType", "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByOwner_DeletesDeepestFirst(t *testing.T) {
	repo, mock := newMock(t)

	// The store holds a tree one level deeper than MaxDepth; every level
	// still gets wiped.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(level) FROM catalog_items")).
		WithArgs("owner-1").
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(MaxDepth + 1))
	for level := MaxDepth + 1; level >= 0; level-- {
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM catalog_items")).
			WithArgs("owner-1", level).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	require.NoError(t, repo.DeleteByOwner(context.Background(), "owner-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByOwner_EmptyStore(t *testing.T) {
	repo, mock := newMock(t)

	// MAX(level) over zero rows is NULL; only level 0 is attempted.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(level) FROM catalog_items")).
		WithArgs("owner-1").
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM catalog_items")).
		WithArgs("owner-1", 0).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.DeleteByOwner(context.Background(), "owner-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountByOwner(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM catalog_items")).
		WithArgs("owner-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := repo.CountByOwner(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

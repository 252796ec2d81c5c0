// Package repomanager constructs repositories bound to a database handle.
// Callers pass either the root *sql.DB or the dbx.DBTX of an open
// transaction, so the same repository code runs inside and outside
// transactions.
package repomanager

import (
	"context"

	"github.com/ablinov/lifevault/internal/dbx"
	"github.com/ablinov/lifevault/internal/server/repositories/catalog"
	"github.com/ablinov/lifevault/internal/server/repositories/family"
	"github.com/ablinov/lifevault/internal/server/repositories/finance"
	"github.com/ablinov/lifevault/internal/server/repositories/nutrition"
	"github.com/ablinov/lifevault/internal/server/repositories/profiles"
	"github.com/ablinov/lifevault/internal/server/repositories/users"
	"github.com/ablinov/lifevault/internal/server/repositories/workouts"
)

// RepositoryManager hands out repositories bound to the given handle.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Catalog(db dbx.DBTX) catalog.Repository
	Workouts(db dbx.DBTX) workouts.Repository
	Finance(db dbx.DBTX) finance.Repository
	Nutrition(db dbx.DBTX) nutrition.Repository
	Family(db dbx.DBTX) family.Repository

	// RunMigrations applies pending schema migrations.
	RunMigrations(ctx context.Context) error
}

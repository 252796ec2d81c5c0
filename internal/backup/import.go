package backup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/im7mortal/kmutex"

	"github.com/ablinov/lifevault/internal/backup/envelope"
	"github.com/ablinov/lifevault/internal/common"
	"github.com/ablinov/lifevault/internal/dbx"
	"github.com/ablinov/lifevault/internal/logging"
	"github.com/ablinov/lifevault/internal/server/models"
	"github.com/ablinov/lifevault/internal/server/repositories/catalog"
	"github.com/ablinov/lifevault/internal/server/repositories/repomanager"
)

// Mode selects how imported data combines with existing data.
type Mode string

const (
	// ModeMerge adds document rows next to existing ones; catalog items are
	// deduplicated by natural key.
	ModeMerge Mode = "merge"
	// ModeReplace first wipes the owner's existing rows for every entity
	// kind present in the document, then inserts.
	ModeReplace Mode = "replace"
)

// ErrBadMode is returned for an unrecognized import mode string.
var ErrBadMode = errors.New("bad import mode")

// ParseMode maps a request string to a Mode. Empty means merge.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeMerge:
		return ModeMerge, nil
	case ModeReplace:
		return ModeReplace, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrBadMode, s)
	}
}

// Skipped counts document entries deliberately not inserted.
type Skipped struct {
	CatalogItems int `json:"catalogItems"`
}

// ImportResult summarizes an import run.
type ImportResult struct {
	Success  bool           `json:"success"`
	Imported map[string]int `json:"imported"`
	Skipped  Skipped        `json:"skipped"`
	Warnings []string       `json:"warnings,omitempty"`
	Errors   []string       `json:"errors,omitempty"`
}

// Importer applies backup documents to the store. Imports for the same
// owner are serialized; each run executes inside one transaction, so a
// failed import leaves the store untouched.
type Importer struct {
	db      *sql.DB
	repos   repomanager.RepositoryManager
	locks   *kmutex.Kmutex
	timeout time.Duration
	logger  logging.Logger
}

func NewImporter(db *sql.DB, repos repomanager.RepositoryManager, timeout time.Duration, logger logging.Logger) *Importer {
	return &Importer{
		db:      db,
		repos:   repos,
		locks:   kmutex.New(),
		timeout: timeout,
		logger:  logger,
	}
}

// Import applies a validated document to the owner's data. The caller is
// expected to have run envelope.Validate first. Schema version drift is
// recorded as a warning and never blocks the run. On error the returned
// result carries the failure and the store is unchanged.
func (im *Importer) Import(ctx context.Context, ownerID string, doc *envelope.Backup, mode Mode) (*ImportResult, error) {
	res := &ImportResult{Imported: map[string]int{}}

	ok, err := envelope.CheckCompatibility(doc.Meta.SchemaVersion)
	if err != nil {
		res.Warnings = append(res.Warnings, err.Error())
	} else if !ok {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"document schema version %s differs from engine version %s in MAJOR; importing anyway",
			doc.Meta.SchemaVersion, envelope.SchemaVersion))
	}

	im.locks.Lock(ownerID)
	defer im.locks.Unlock(ownerID)

	if im.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, im.timeout)
		defer cancel()
	}

	err = dbx.WithTx(ctx, im.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		run := &importRun{
			repos:         im.repos,
			tx:            tx,
			ownerID:       ownerID,
			doc:           doc,
			mode:          mode,
			res:           res,
			catalogRemap:  map[string]string{},
			catalogLevels: map[string]int{},
			memberRemap:   map[string]string{},
		}
		return run.execute(ctx)
	})
	if err != nil {
		res.Errors = append(res.Errors, err.Error())
		im.logger.Error(ctx, "import failed", "owner_id", ownerID, "mode", mode, "error", err)
		return res, err
	}

	res.Success = true
	im.logger.Info(ctx, "import committed", "owner_id", ownerID, "mode", mode,
		"warnings", len(res.Warnings))
	return res, nil
}

// importRun carries the state of one transactional import: tx-bound repos,
// the remap tables from document ids to store ids, and the accumulating
// result.
type importRun struct {
	repos   repomanager.RepositoryManager
	tx      dbx.DBTX
	ownerID string
	doc     *envelope.Backup
	mode    Mode
	res     *ImportResult

	// catalogRemap maps document catalog ids to store ids. System item ids
	// map to themselves. catalogLevels tracks tree depth per mapped id.
	catalogRemap  map[string]string
	catalogLevels map[string]int
	memberRemap   map[string]string
}

func (r *importRun) execute(ctx context.Context) error {
	if r.mode == ModeReplace {
		if err := r.wipe(ctx); err != nil {
			return err
		}
	}
	if err := r.importCatalog(ctx); err != nil {
		return err
	}
	if err := r.importProfile(ctx); err != nil {
		return err
	}
	if err := r.importWorkouts(ctx); err != nil {
		return err
	}
	if err := r.importFinance(ctx); err != nil {
		return err
	}
	if err := r.importNutrition(ctx); err != nil {
		return err
	}
	return r.importFamily(ctx)
}

// wipe removes the owner's existing rows for every entity kind present in
// the document, children before parents. Kinds absent from the document are
// left alone; the profile is updated in place, never wiped.
func (r *importRun) wipe(ctx context.Context) error {
	data := &r.doc.Data

	fam := r.repos.Family(r.tx)
	// Deleting members cascades nothing; referencing rows go first.
	if len(data.FamilyMembers) > 0 {
		for _, del := range []func(context.Context, string) error{
			fam.DeleteRemindersByOwner, fam.DeleteEventsByOwner,
			fam.DeleteTimeLogsByOwner, fam.DeleteMembersByOwner,
		} {
			if err := del(ctx, r.ownerID); err != nil {
				return err
			}
		}
	} else {
		if len(data.Reminders) > 0 {
			if err := fam.DeleteRemindersByOwner(ctx, r.ownerID); err != nil {
				return err
			}
		}
		if len(data.Events) > 0 {
			if err := fam.DeleteEventsByOwner(ctx, r.ownerID); err != nil {
				return err
			}
		}
		if len(data.TimeLogs) > 0 {
			if err := fam.DeleteTimeLogsByOwner(ctx, r.ownerID); err != nil {
				return err
			}
		}
	}

	nut := r.repos.Nutrition(r.tx)
	if len(data.Meals) > 0 {
		if err := nut.DeleteMealsByOwner(ctx, r.ownerID); err != nil {
			return err
		}
	}
	if len(data.NutritionGoals) > 0 {
		if err := nut.DeleteGoalsByOwner(ctx, r.ownerID); err != nil {
			return err
		}
	}
	if len(data.MealTemplates) > 0 {
		if err := nut.DeleteTemplatesByOwner(ctx, r.ownerID); err != nil {
			return err
		}
	}

	fin := r.repos.Finance(r.tx)
	if len(data.Transactions) > 0 {
		if err := fin.DeleteTransactionsByOwner(ctx, r.ownerID); err != nil {
			return err
		}
	}
	if len(data.Investments) > 0 {
		if err := fin.DeleteInvestmentsByOwner(ctx, r.ownerID); err != nil {
			return err
		}
	}
	if len(data.Budgets) > 0 {
		if err := fin.DeleteBudgetsByOwner(ctx, r.ownerID); err != nil {
			return err
		}
	}

	wk := r.repos.Workouts(r.tx)
	if len(data.Workouts) > 0 {
		if err := wk.DeleteWorkoutsByOwner(ctx, r.ownerID); err != nil {
			return err
		}
	}
	if len(data.WorkoutTemplates) > 0 {
		if err := wk.DeleteTemplatesByOwner(ctx, r.ownerID); err != nil {
			return err
		}
	}

	if len(data.CatalogItems) > 0 {
		if err := r.repos.Catalog(r.tx).DeleteByOwner(ctx, r.ownerID); err != nil {
			return err
		}
	}

	return nil
}

// importCatalog inserts user-owned taxonomy entries and fills catalogRemap.
// System items are never written; their ids are stable across stores, so
// they map to themselves. Items may appear in any order: an item waits
// until its parent has been resolved, and after the queue stalls remaining
// parents are treated as unresolved.
func (r *importRun) importCatalog(ctx context.Context) error {
	repo := r.repos.Catalog(r.tx)

	var pending []envelope.CatalogItem
	inDoc := map[string]bool{}
	for _, item := range r.doc.Data.CatalogItems {
		if item.IsSystem {
			r.catalogRemap[item.ID] = item.ID
			r.catalogLevels[item.ID] = item.Level
			r.res.Skipped.CatalogItems++
			continue
		}
		pending = append(pending, item)
		inDoc[item.ID] = true
	}

	for len(pending) > 0 {
		var deferred []envelope.CatalogItem
		progress := false

		for _, item := range pending {
			if item.ParentID != nil {
				if _, ok := r.catalogRemap[*item.ParentID]; !ok && inDoc[*item.ParentID] {
					// Parent comes later in the document.
					deferred = append(deferred, item)
					continue
				}
			}
			if err := r.insertCatalogItem(ctx, repo, item); err != nil {
				return err
			}
			delete(inDoc, item.ID)
			progress = true
		}

		if !progress {
			// Remaining items form a reference cycle. Break it by dropping
			// their parent links.
			for _, item := range deferred {
				r.warnf("catalog item %q: unresolved parent %q, imported as root",
					item.ID, *item.ParentID)
				item.ParentID = nil
				if err := r.insertCatalogItem(ctx, repo, item); err != nil {
					return err
				}
			}
			deferred = nil
		}
		pending = deferred
	}

	return nil
}

func (r *importRun) insertCatalogItem(ctx context.Context, repo catalog.Repository, item envelope.CatalogItem) error {
	if r.mode == ModeMerge {
		existing, err := repo.FindByNaturalKey(ctx, r.ownerID, item.Kind, item.Slug)
		if err == nil {
			r.catalogRemap[item.ID] = existing.ID
			r.catalogLevels[item.ID] = existing.Level
			r.res.Skipped.CatalogItems++
			return nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			return err
		}
	}

	parentID, level := r.resolveCatalogParent(ctx, item)

	newID := uuid.NewString()
	err := repo.Create(ctx, &models.CatalogItem{
		ID:       newID,
		OwnerID:  &r.ownerID,
		Kind:     item.Kind,
		Name:     item.Name,
		Slug:     item.Slug,
		ParentID: parentID,
		Level:    level,
		IsSystem: false,
	})
	if err != nil {
		return err
	}
	r.catalogRemap[item.ID] = newID
	r.catalogLevels[item.ID] = level
	r.res.Imported[envelope.KindCatalogItems]++
	return nil
}

// resolveCatalogParent maps an item's parent reference to a store id and
// derives the item's level from the resolved parent. An item that would
// land below the depth cap is re-parented at the root so replace-mode
// wipes can always find it.
func (r *importRun) resolveCatalogParent(ctx context.Context, item envelope.CatalogItem) (*string, int) {
	if item.ParentID == nil {
		return nil, 0
	}
	orig := *item.ParentID

	if mapped, ok := r.catalogRemap[orig]; ok {
		if level := r.catalogLevels[orig] + 1; level <= catalog.MaxDepth {
			return &mapped, level
		}
		r.warnf("catalog item %q: depth exceeds %d, imported as root", item.ID, catalog.MaxDepth)
		return nil, 0
	}

	// Not in the document: the reference may name a system item already in
	// this store.
	if existing := r.lookupSystemItem(ctx, orig); existing != nil {
		if level := existing.Level + 1; level <= catalog.MaxDepth {
			return &existing.ID, level
		}
		r.warnf("catalog item %q: depth exceeds %d, imported as root", item.ID, catalog.MaxDepth)
		return nil, 0
	}

	r.warnf("catalog item %q: unresolved parent %q, imported as root", item.ID, orig)
	return nil, 0
}

// resolveCatalogRef maps a taxonomy reference (typeId, categoryId and
// friends) to a store id, or nulls it with a warning.
func (r *importRun) resolveCatalogRef(ctx context.Context, entity, id string, ref *string) *string {
	if ref == nil {
		return nil
	}
	orig := *ref

	if mapped, ok := r.catalogRemap[orig]; ok {
		return &mapped
	}
	if existing := r.lookupSystemItem(ctx, orig); existing != nil {
		r.catalogRemap[orig] = existing.ID
		r.catalogLevels[orig] = existing.Level
		return &existing.ID
	}

	r.warnf("%s %q: unresolved catalog reference %q, cleared", entity, id, orig)
	return nil
}

// lookupSystemItem returns the store's system catalog item with the given
// id, if any. System ids are minted once and shared by every store, so an
// exact match identifies the same taxonomy entry.
func (r *importRun) lookupSystemItem(ctx context.Context, id string) *models.CatalogItem {
	existing, err := r.repos.Catalog(r.tx).GetByID(ctx, id)
	if err != nil || !existing.IsSystem {
		return nil
	}
	return existing
}

// resolveMemberRef maps a family member reference to the freshly inserted
// row, or nulls it with a warning. Member ids are reminted on import, so
// only references resolvable within the document survive.
func (r *importRun) resolveMemberRef(entity, id string, ref *string) *string {
	if ref == nil {
		return nil
	}
	if mapped, ok := r.memberRemap[*ref]; ok {
		return &mapped
	}
	r.warnf("%s %q: unresolved family member reference %q, cleared", entity, id, *ref)
	return nil
}

func (r *importRun) importProfile(ctx context.Context) error {
	p := r.doc.Data.Profile
	if p == nil {
		return nil
	}

	birthDate, err := parseTimePtr(p.BirthDate)
	if err != nil {
		return err
	}
	err = r.repos.Profiles(r.tx).Upsert(ctx, &models.Profile{
		OwnerID:     r.ownerID,
		DisplayName: p.DisplayName,
		Timezone:    p.Timezone,
		BirthDate:   birthDate,
		HeightCm:    p.HeightCm,
		WeightKg:    p.WeightKg,
	})
	if err != nil {
		return err
	}
	r.res.Imported[envelope.KindProfile] = 1
	return nil
}

func (r *importRun) importWorkouts(ctx context.Context) error {
	repo := r.repos.Workouts(r.tx)

	for _, w := range r.doc.Data.Workouts {
		performedAt, err := parseTime(w.PerformedAt)
		if err != nil {
			return err
		}
		workoutID := uuid.NewString()
		err = repo.CreateWorkout(ctx, &models.Workout{
			ID:          workoutID,
			OwnerID:     r.ownerID,
			Name:        w.Name,
			PerformedAt: performedAt,
			Notes:       w.Notes,
		})
		if err != nil {
			return err
		}
		r.res.Imported[envelope.KindWorkouts]++

		for _, ex := range w.Exercises {
			exerciseID := uuid.NewString()
			err = repo.CreateExercise(ctx, &models.Exercise{
				ID:             exerciseID,
				WorkoutID:      workoutID,
				OwnerID:        r.ownerID,
				Name:           ex.Name,
				ExerciseTypeID: r.resolveCatalogRef(ctx, "exercise", ex.ID, ex.ExerciseTypeID),
			})
			if err != nil {
				return err
			}
			r.res.Imported[envelope.KindExercises]++

			for _, s := range ex.Sets {
				err = repo.CreateSet(ctx, &models.ExerciseSet{
					ID:         uuid.NewString(),
					ExerciseID: exerciseID,
					OwnerID:    r.ownerID,
					SetNumber:  s.SetNumber,
					Reps:       s.Reps,
					WeightKg:   s.WeightKg,
				})
				if err != nil {
					return err
				}
				r.res.Imported[envelope.KindExerciseSets]++
			}

			for _, p := range ex.Progress {
				recordedAt, err := parseTime(p.RecordedAt)
				if err != nil {
					return err
				}
				err = repo.CreateProgressSample(ctx, &models.ProgressSample{
					ID:          uuid.NewString(),
					ExerciseID:  exerciseID,
					OwnerID:     r.ownerID,
					RecordedAt:  recordedAt,
					MaxWeightKg: p.MaxWeightKg,
					TotalReps:   p.TotalReps,
				})
				if err != nil {
					return err
				}
				r.res.Imported[envelope.KindProgressSamples]++
			}
		}
	}

	for _, t := range r.doc.Data.WorkoutTemplates {
		templateID := uuid.NewString()
		err := repo.CreateTemplate(ctx, &models.WorkoutTemplate{
			ID:      templateID,
			OwnerID: r.ownerID,
			Name:    t.Name,
			Notes:   t.Notes,
		})
		if err != nil {
			return err
		}
		r.res.Imported[envelope.KindWorkoutTemplates]++

		for _, te := range t.Exercises {
			err = repo.CreateTemplateExercise(ctx, &models.TemplateExercise{
				ID:             uuid.NewString(),
				TemplateID:     templateID,
				OwnerID:        r.ownerID,
				Name:           te.Name,
				TargetSets:     te.TargetSets,
				TargetReps:     te.TargetReps,
				ExerciseTypeID: r.resolveCatalogRef(ctx, "template exercise", te.ID, te.ExerciseTypeID),
			})
			if err != nil {
				return err
			}
			r.res.Imported[envelope.KindTemplateExercises]++
		}
	}

	return nil
}

func (r *importRun) importFinance(ctx context.Context) error {
	repo := r.repos.Finance(r.tx)

	for _, t := range r.doc.Data.Transactions {
		occurredAt, err := parseTime(t.OccurredAt)
		if err != nil {
			return err
		}
		err = repo.CreateTransaction(ctx, &models.Transaction{
			ID:          uuid.NewString(),
			OwnerID:     r.ownerID,
			Amount:      t.Amount,
			Direction:   t.Direction,
			OccurredAt:  occurredAt,
			Description: t.Description,
			TypeID:      r.resolveCatalogRef(ctx, "transaction", t.ID, t.TypeID),
			CategoryID:  r.resolveCatalogRef(ctx, "transaction", t.ID, t.CategoryID),
		})
		if err != nil {
			return err
		}
		r.res.Imported[envelope.KindTransactions]++
	}

	for _, i := range r.doc.Data.Investments {
		purchasedAt, err := parseTime(i.PurchasedAt)
		if err != nil {
			return err
		}
		err = repo.CreateInvestment(ctx, &models.Investment{
			ID:          uuid.NewString(),
			OwnerID:     r.ownerID,
			Name:        i.Name,
			Amount:      i.Amount,
			TypeID:      r.resolveCatalogRef(ctx, "investment", i.ID, i.TypeID),
			PurchasedAt: purchasedAt,
			Notes:       i.Notes,
		})
		if err != nil {
			return err
		}
		r.res.Imported[envelope.KindInvestments]++
	}

	for _, b := range r.doc.Data.Budgets {
		periodStart, err := parseTime(b.PeriodStart)
		if err != nil {
			return err
		}
		periodEnd, err := parseTime(b.PeriodEnd)
		if err != nil {
			return err
		}
		err = repo.CreateBudget(ctx, &models.Budget{
			ID:          uuid.NewString(),
			OwnerID:     r.ownerID,
			Name:        b.Name,
			Amount:      b.Amount,
			CategoryID:  r.resolveCatalogRef(ctx, "budget", b.ID, b.CategoryID),
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
		})
		if err != nil {
			return err
		}
		r.res.Imported[envelope.KindBudgets]++
	}

	return nil
}

func (r *importRun) importNutrition(ctx context.Context) error {
	repo := r.repos.Nutrition(r.tx)

	for _, m := range r.doc.Data.Meals {
		consumedAt, err := parseTime(m.ConsumedAt)
		if err != nil {
			return err
		}
		mealID := uuid.NewString()
		err = repo.CreateMeal(ctx, &models.Meal{
			ID:         mealID,
			OwnerID:    r.ownerID,
			Name:       m.Name,
			MealType:   m.MealType,
			ConsumedAt: consumedAt,
			Notes:      m.Notes,
		})
		if err != nil {
			return err
		}
		r.res.Imported[envelope.KindMeals]++

		for _, f := range m.FoodItems {
			err = repo.CreateFoodItem(ctx, &models.FoodItem{
				ID:       uuid.NewString(),
				MealID:   mealID,
				OwnerID:  r.ownerID,
				Name:     f.Name,
				Quantity: f.Quantity,
				Unit:     f.Unit,
				Calories: f.Calories,
				ProteinG: f.ProteinG,
				CarbsG:   f.CarbsG,
				FatG:     f.FatG,
			})
			if err != nil {
				return err
			}
			r.res.Imported[envelope.KindFoodItems]++
		}
	}

	for _, g := range r.doc.Data.NutritionGoals {
		effectiveFrom, err := parseTime(g.EffectiveFrom)
		if err != nil {
			return err
		}
		err = repo.CreateGoal(ctx, &models.NutritionGoal{
			ID:            uuid.NewString(),
			OwnerID:       r.ownerID,
			Calories:      g.Calories,
			ProteinG:      g.ProteinG,
			CarbsG:        g.CarbsG,
			FatG:          g.FatG,
			EffectiveFrom: effectiveFrom,
		})
		if err != nil {
			return err
		}
		r.res.Imported[envelope.KindNutritionGoals]++
	}

	for _, t := range r.doc.Data.MealTemplates {
		templateID := uuid.NewString()
		err := repo.CreateTemplate(ctx, &models.MealTemplate{
			ID:       templateID,
			OwnerID:  r.ownerID,
			Name:     t.Name,
			MealType: t.MealType,
		})
		if err != nil {
			return err
		}
		r.res.Imported[envelope.KindMealTemplates]++

		for _, it := range t.Items {
			err = repo.CreateTemplateFoodItem(ctx, &models.TemplateFoodItem{
				ID:         uuid.NewString(),
				TemplateID: templateID,
				OwnerID:    r.ownerID,
				Name:       it.Name,
				Quantity:   it.Quantity,
				Unit:       it.Unit,
				Calories:   it.Calories,
			})
			if err != nil {
				return err
			}
			r.res.Imported[envelope.KindTemplateFoodItems]++
		}
	}

	return nil
}

// importFamily inserts members before the time logs, events and reminders
// that reference them.
func (r *importRun) importFamily(ctx context.Context) error {
	repo := r.repos.Family(r.tx)

	for _, m := range r.doc.Data.FamilyMembers {
		birthDate, err := parseTimePtr(m.BirthDate)
		if err != nil {
			return err
		}
		memberID := uuid.NewString()
		err = repo.CreateMember(ctx, &models.FamilyMember{
			ID:                 memberID,
			OwnerID:            r.ownerID,
			Name:               m.Name,
			BirthDate:          birthDate,
			RelationshipTypeID: r.resolveCatalogRef(ctx, "family member", m.ID, m.RelationshipTypeID),
		})
		if err != nil {
			return err
		}
		r.memberRemap[m.ID] = memberID
		r.res.Imported[envelope.KindFamilyMembers]++
	}

	for _, tl := range r.doc.Data.TimeLogs {
		startedAt, err := parseTime(tl.StartedAt)
		if err != nil {
			return err
		}
		err = repo.CreateTimeLog(ctx, &models.TimeLog{
			ID:              uuid.NewString(),
			OwnerID:         r.ownerID,
			FamilyMemberID:  r.resolveMemberRef("time log", tl.ID, tl.FamilyMemberID),
			ActivityTypeID:  r.resolveCatalogRef(ctx, "time log", tl.ID, tl.ActivityTypeID),
			StartedAt:       startedAt,
			DurationMinutes: tl.DurationMinutes,
			Notes:           tl.Notes,
		})
		if err != nil {
			return err
		}
		r.res.Imported[envelope.KindTimeLogs]++
	}

	for _, ev := range r.doc.Data.Events {
		scheduledAt, err := parseTime(ev.ScheduledAt)
		if err != nil {
			return err
		}
		err = repo.CreateEvent(ctx, &models.Event{
			ID:             uuid.NewString(),
			OwnerID:        r.ownerID,
			Title:          ev.Title,
			FamilyMemberID: r.resolveMemberRef("event", ev.ID, ev.FamilyMemberID),
			EventTypeID:    r.resolveCatalogRef(ctx, "event", ev.ID, ev.EventTypeID),
			ScheduledAt:    scheduledAt,
			Location:       ev.Location,
		})
		if err != nil {
			return err
		}
		r.res.Imported[envelope.KindEvents]++
	}

	for _, rm := range r.doc.Data.Reminders {
		remindAt, err := parseTime(rm.RemindAt)
		if err != nil {
			return err
		}
		err = repo.CreateReminder(ctx, &models.Reminder{
			ID:             uuid.NewString(),
			OwnerID:        r.ownerID,
			Title:          rm.Title,
			FamilyMemberID: r.resolveMemberRef("reminder", rm.ID, rm.FamilyMemberID),
			ReminderTypeID: r.resolveCatalogRef(ctx, "reminder", rm.ID, rm.ReminderTypeID),
			RemindAt:       remindAt,
			Done:           rm.Done,
		})
		if err != nil {
			return err
		}
		r.res.Imported[envelope.KindReminders]++
	}

	return nil
}

func (r *importRun) warnf(format string, args ...any) {
	r.res.Warnings = append(r.res.Warnings, fmt.Sprintf(format, args...))
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad timestamp %q: %w", s, err)
	}
	return t, nil
}

func parseTimePtr(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := parseTime(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

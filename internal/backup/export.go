// Package backup implements the export, preview and import engine for the
// versioned backup document.
package backup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ablinov/lifevault/internal/backup/envelope"
	"github.com/ablinov/lifevault/internal/common"
	"github.com/ablinov/lifevault/internal/logging"
	"github.com/ablinov/lifevault/internal/server/repositories/repomanager"
)

// ErrUnknownModule is returned when an export request names a module tag
// that does not exist.
var ErrUnknownModule = errors.New("unknown module")

// Exporter assembles backup documents from the store.
type Exporter struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	logger logging.Logger
}

func NewExporter(db *sql.DB, repos repomanager.RepositoryManager, logger logging.Logger) *Exporter {
	return &Exporter{db: db, repos: repos, logger: logger}
}

// Export reads the owner's data for the requested modules and assembles a
// complete backup document. An empty modules slice means all modules. Module
// reads fan out concurrently; each module fills a distinct part of the
// document.
func (e *Exporter) Export(ctx context.Context, ownerID string, modules []string) (*envelope.Backup, error) {
	if len(modules) == 0 {
		modules = common.AllModules()
	}
	for _, m := range modules {
		if !common.KnownModule(m) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownModule, m)
		}
	}

	user, err := e.repos.Users(e.db).GetByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	doc := &envelope.Backup{
		Meta: envelope.Meta{
			SchemaVersion:   envelope.SchemaVersion,
			ExportedAt:      fmtTime(time.Now().UTC()),
			OwnerID:         ownerID,
			OwnerEmail:      user.Email,
			IncludedModules: modules,
		},
	}

	included := make(map[string]bool, len(modules))
	for _, m := range modules {
		included[m] = true
	}

	g, gctx := errgroup.WithContext(ctx)

	if included[common.ModuleProfile] {
		g.Go(func() error {
			p, err := e.repos.Profiles(e.db).Get(gctx, ownerID)
			if errors.Is(err, common.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			doc.Data.Profile = &envelope.Profile{
				DisplayName: p.DisplayName,
				Timezone:    p.Timezone,
				BirthDate:   fmtTimePtr(p.BirthDate),
				HeightCm:    p.HeightCm,
				WeightKg:    p.WeightKg,
			}
			return nil
		})
	}

	if included[common.ModuleWorkouts] {
		g.Go(func() error {
			repo := e.repos.Workouts(e.db)
			ws, err := repo.ListByOwner(gctx, ownerID)
			if err != nil {
				return err
			}
			for _, w := range ws {
				out := envelope.Workout{
					ID:          w.ID,
					Name:        w.Name,
					PerformedAt: fmtTime(w.PerformedAt),
					Notes:       w.Notes,
				}
				for _, ex := range w.Exercises {
					outEx := envelope.Exercise{
						ID:             ex.ID,
						Name:           ex.Name,
						ExerciseTypeID: ex.ExerciseTypeID,
					}
					for _, s := range ex.Sets {
						outEx.Sets = append(outEx.Sets, envelope.ExerciseSet{
							ID:        s.ID,
							SetNumber: s.SetNumber,
							Reps:      s.Reps,
							WeightKg:  s.WeightKg,
						})
					}
					for _, p := range ex.Progress {
						outEx.Progress = append(outEx.Progress, envelope.ProgressSample{
							ID:          p.ID,
							RecordedAt:  fmtTime(p.RecordedAt),
							MaxWeightKg: p.MaxWeightKg,
							TotalReps:   p.TotalReps,
						})
					}
					out.Exercises = append(out.Exercises, outEx)
				}
				doc.Data.Workouts = append(doc.Data.Workouts, out)
			}

			ts, err := repo.ListTemplatesByOwner(gctx, ownerID)
			if err != nil {
				return err
			}
			for _, t := range ts {
				out := envelope.WorkoutTemplate{ID: t.ID, Name: t.Name, Notes: t.Notes}
				for _, te := range t.Exercises {
					out.Exercises = append(out.Exercises, envelope.TemplateExercise{
						ID:             te.ID,
						Name:           te.Name,
						TargetSets:     te.TargetSets,
						TargetReps:     te.TargetReps,
						ExerciseTypeID: te.ExerciseTypeID,
					})
				}
				doc.Data.WorkoutTemplates = append(doc.Data.WorkoutTemplates, out)
			}
			return nil
		})
	}

	if included[common.ModuleFinance] {
		g.Go(func() error {
			repo := e.repos.Finance(e.db)
			txs, err := repo.ListTransactionsByOwner(gctx, ownerID)
			if err != nil {
				return err
			}
			for _, t := range txs {
				doc.Data.Transactions = append(doc.Data.Transactions, envelope.Transaction{
					ID:          t.ID,
					Amount:      t.Amount,
					Direction:   t.Direction,
					OccurredAt:  fmtTime(t.OccurredAt),
					Description: t.Description,
					TypeID:      t.TypeID,
					CategoryID:  t.CategoryID,
				})
			}
			invs, err := repo.ListInvestmentsByOwner(gctx, ownerID)
			if err != nil {
				return err
			}
			for _, i := range invs {
				doc.Data.Investments = append(doc.Data.Investments, envelope.Investment{
					ID:          i.ID,
					Name:        i.Name,
					Amount:      i.Amount,
					TypeID:      i.TypeID,
					PurchasedAt: fmtTime(i.PurchasedAt),
					Notes:       i.Notes,
				})
			}
			bs, err := repo.ListBudgetsByOwner(gctx, ownerID)
			if err != nil {
				return err
			}
			for _, b := range bs {
				doc.Data.Budgets = append(doc.Data.Budgets, envelope.Budget{
					ID:          b.ID,
					Name:        b.Name,
					Amount:      b.Amount,
					CategoryID:  b.CategoryID,
					PeriodStart: fmtTime(b.PeriodStart),
					PeriodEnd:   fmtTime(b.PeriodEnd),
				})
			}
			return nil
		})
	}

	if included[common.ModuleNutrition] {
		g.Go(func() error {
			repo := e.repos.Nutrition(e.db)
			meals, err := repo.ListMealsByOwner(gctx, ownerID)
			if err != nil {
				return err
			}
			for _, m := range meals {
				out := envelope.Meal{
					ID:         m.ID,
					Name:       m.Name,
					MealType:   m.MealType,
					ConsumedAt: fmtTime(m.ConsumedAt),
					Notes:      m.Notes,
				}
				for _, f := range m.FoodItems {
					out.FoodItems = append(out.FoodItems, envelope.FoodItem{
						ID:       f.ID,
						Name:     f.Name,
						Quantity: f.Quantity,
						Unit:     f.Unit,
						Calories: f.Calories,
						ProteinG: f.ProteinG,
						CarbsG:   f.CarbsG,
						FatG:     f.FatG,
					})
				}
				doc.Data.Meals = append(doc.Data.Meals, out)
			}
			goals, err := repo.ListGoalsByOwner(gctx, ownerID)
			if err != nil {
				return err
			}
			for _, goal := range goals {
				doc.Data.NutritionGoals = append(doc.Data.NutritionGoals, envelope.NutritionGoal{
					ID:            goal.ID,
					Calories:      goal.Calories,
					ProteinG:      goal.ProteinG,
					CarbsG:        goal.CarbsG,
					FatG:          goal.FatG,
					EffectiveFrom: fmtTime(goal.EffectiveFrom),
				})
			}
			templates, err := repo.ListTemplatesByOwner(gctx, ownerID)
			if err != nil {
				return err
			}
			for _, t := range templates {
				out := envelope.MealTemplate{ID: t.ID, Name: t.Name, MealType: t.MealType}
				for _, it := range t.Items {
					out.Items = append(out.Items, envelope.TemplateFoodItem{
						ID:       it.ID,
						Name:     it.Name,
						Quantity: it.Quantity,
						Unit:     it.Unit,
						Calories: it.Calories,
					})
				}
				doc.Data.MealTemplates = append(doc.Data.MealTemplates, out)
			}
			return nil
		})
	}

	if included[common.ModuleFamily] {
		g.Go(func() error {
			repo := e.repos.Family(e.db)
			members, err := repo.ListMembersByOwner(gctx, ownerID)
			if err != nil {
				return err
			}
			for _, m := range members {
				doc.Data.FamilyMembers = append(doc.Data.FamilyMembers, envelope.FamilyMember{
					ID:                 m.ID,
					Name:               m.Name,
					BirthDate:          fmtTimePtr(m.BirthDate),
					RelationshipTypeID: m.RelationshipTypeID,
				})
			}
			logs, err := repo.ListTimeLogsByOwner(gctx, ownerID)
			if err != nil {
				return err
			}
			for _, tl := range logs {
				doc.Data.TimeLogs = append(doc.Data.TimeLogs, envelope.TimeLog{
					ID:              tl.ID,
					FamilyMemberID:  tl.FamilyMemberID,
					ActivityTypeID:  tl.ActivityTypeID,
					StartedAt:       fmtTime(tl.StartedAt),
					DurationMinutes: tl.DurationMinutes,
					Notes:           tl.Notes,
				})
			}
			events, err := repo.ListEventsByOwner(gctx, ownerID)
			if err != nil {
				return err
			}
			for _, ev := range events {
				doc.Data.Events = append(doc.Data.Events, envelope.Event{
					ID:             ev.ID,
					Title:          ev.Title,
					FamilyMemberID: ev.FamilyMemberID,
					EventTypeID:    ev.EventTypeID,
					ScheduledAt:    fmtTime(ev.ScheduledAt),
					Location:       ev.Location,
				})
			}
			reminders, err := repo.ListRemindersByOwner(gctx, ownerID)
			if err != nil {
				return err
			}
			for _, rm := range reminders {
				doc.Data.Reminders = append(doc.Data.Reminders, envelope.Reminder{
					ID:             rm.ID,
					Title:          rm.Title,
					FamilyMemberID: rm.FamilyMemberID,
					ReminderTypeID: rm.ReminderTypeID,
					RemindAt:       fmtTime(rm.RemindAt),
					Done:           rm.Done,
				})
			}
			return nil
		})
	}

	if included[common.ModuleCatalog] {
		g.Go(func() error {
			// Only user-owned taxonomy travels in the document; system items
			// exist in every store already.
			items, err := e.repos.Catalog(e.db).ListByOwner(gctx, ownerID)
			if err != nil {
				return err
			}
			for _, it := range items {
				doc.Data.CatalogItems = append(doc.Data.CatalogItems, envelope.CatalogItem{
					ID:       it.ID,
					Kind:     it.Kind,
					Name:     it.Name,
					Slug:     it.Slug,
					ParentID: it.ParentID,
					Level:    it.Level,
					IsSystem: it.IsSystem,
					OwnerID:  it.OwnerID,
				})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("export failed: %w", err)
	}

	e.logger.Info(ctx, "export assembled", "owner_id", ownerID, "modules", modules)
	return doc, nil
}

// Counts reports per-entity-kind row counts for the owner without building
// the document, so a client can show what an export would contain.
func (e *Exporter) Counts(ctx context.Context, ownerID string) (map[string]int, error) {
	counts := map[string]int{}

	_, err := e.repos.Profiles(e.db).Get(ctx, ownerID)
	switch {
	case err == nil:
		counts[envelope.KindProfile] = 1
	case errors.Is(err, common.ErrNotFound):
		counts[envelope.KindProfile] = 0
	default:
		return nil, err
	}

	for _, fn := range []func(context.Context, string) (map[string]int, error){
		e.repos.Workouts(e.db).Counts,
		e.repos.Finance(e.db).Counts,
		e.repos.Nutrition(e.db).Counts,
		e.repos.Family(e.db).Counts,
	} {
		part, err := fn(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		for k, n := range part {
			counts[k] = n
		}
	}

	n, err := e.repos.Catalog(e.db).CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	counts[envelope.KindCatalogItems] = n

	return counts, nil
}

func fmtTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func fmtTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := fmtTime(*t)
	return &s
}

// Package family provides storage for family members, time logs, events
// and reminders.
package family

import (
	"context"
	"fmt"

	"github.com/ablinov/lifevault/internal/dbx"
	"github.com/ablinov/lifevault/internal/server/models"
)

// PostgresRepository implements family storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateMember(ctx context.Context, m *models.FamilyMember) error {
	query := `
		INSERT INTO family_members (id, owner_id, name, birth_date, relationship_type_id)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, m.ID, m.OwnerID, m.Name, m.BirthDate, m.RelationshipTypeID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) CreateTimeLog(ctx context.Context, tl *models.TimeLog) error {
	query := `
		INSERT INTO time_logs (id, owner_id, family_member_id, activity_type_id, started_at, duration_minutes, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		tl.ID, tl.OwnerID, tl.FamilyMemberID, tl.ActivityTypeID, tl.StartedAt, tl.DurationMinutes, tl.Notes)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) CreateEvent(ctx context.Context, e *models.Event) error {
	query := `
		INSERT INTO events (id, owner_id, title, family_member_id, event_type_id, scheduled_at, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.OwnerID, e.Title, e.FamilyMemberID, e.EventTypeID, e.ScheduledAt, e.Location)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) CreateReminder(ctx context.Context, rm *models.Reminder) error {
	query := `
		INSERT INTO reminders (id, owner_id, title, family_member_id, reminder_type_id, remind_at, done)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		rm.ID, rm.OwnerID, rm.Title, rm.FamilyMemberID, rm.ReminderTypeID, rm.RemindAt, rm.Done)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListMembersByOwner(ctx context.Context, ownerID string) ([]*models.FamilyMember, error) {
	query := `
		SELECT id, owner_id, name, birth_date, relationship_type_id
		FROM family_members WHERE owner_id = $1
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select family members: %w", err)
	}
	defer rows.Close()

	var result []*models.FamilyMember
	for rows.Next() {
		var m models.FamilyMember
		if err := rows.Scan(&m.ID, &m.OwnerID, &m.Name, &m.BirthDate, &m.RelationshipTypeID); err != nil {
			return nil, err
		}
		result = append(result, &m)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) ListTimeLogsByOwner(ctx context.Context, ownerID string) ([]*models.TimeLog, error) {
	query := `
		SELECT id, owner_id, family_member_id, activity_type_id, started_at, duration_minutes, notes
		FROM time_logs WHERE owner_id = $1
		ORDER BY started_at
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select time logs: %w", err)
	}
	defer rows.Close()

	var result []*models.TimeLog
	for rows.Next() {
		var tl models.TimeLog
		if err := rows.Scan(&tl.ID, &tl.OwnerID, &tl.FamilyMemberID, &tl.ActivityTypeID, &tl.StartedAt, &tl.DurationMinutes, &tl.Notes); err != nil {
			return nil, err
		}
		result = append(result, &tl)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) ListEventsByOwner(ctx context.Context, ownerID string) ([]*models.Event, error) {
	query := `
		SELECT id, owner_id, title, family_member_id, event_type_id, scheduled_at, location
		FROM events WHERE owner_id = $1
		ORDER BY scheduled_at
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select events: %w", err)
	}
	defer rows.Close()

	var result []*models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Title, &e.FamilyMemberID, &e.EventTypeID, &e.ScheduledAt, &e.Location); err != nil {
			return nil, err
		}
		result = append(result, &e)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) ListRemindersByOwner(ctx context.Context, ownerID string) ([]*models.Reminder, error) {
	query := `
		SELECT id, owner_id, title, family_member_id, reminder_type_id, remind_at, done
		FROM reminders WHERE owner_id = $1
		ORDER BY remind_at
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select reminders: %w", err)
	}
	defer rows.Close()

	var result []*models.Reminder
	for rows.Next() {
		var rm models.Reminder
		if err := rows.Scan(&rm.ID, &rm.OwnerID, &rm.Title, &rm.FamilyMemberID, &rm.ReminderTypeID, &rm.RemindAt, &rm.Done); err != nil {
			return nil, err
		}
		result = append(result, &rm)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) DeleteMembersByOwner(ctx context.Context, ownerID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM family_members WHERE owner_id = $1`, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteTimeLogsByOwner(ctx context.Context, ownerID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM time_logs WHERE owner_id = $1`, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteEventsByOwner(ctx context.Context, ownerID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE owner_id = $1`, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteRemindersByOwner(ctx context.Context, ownerID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE owner_id = $1`, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Counts(ctx context.Context, ownerID string) (map[string]int, error) {
	tables := map[string]string{
		"familyMembers": "family_members",
		"timeLogs":      "time_logs",
		"events":        "events",
		"reminders":     "reminders",
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

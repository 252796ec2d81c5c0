package family

import (
	"context"

	"github.com/ablinov/lifevault/internal/server/models"
)

// Repository provides access to the family module: members and the time
// logs, events and reminders that may reference them.
type Repository interface {
	CreateMember(ctx context.Context, m *models.FamilyMember) error
	CreateTimeLog(ctx context.Context, tl *models.TimeLog) error
	CreateEvent(ctx context.Context, e *models.Event) error
	CreateReminder(ctx context.Context, rm *models.Reminder) error

	ListMembersByOwner(ctx context.Context, ownerID string) ([]*models.FamilyMember, error)
	ListTimeLogsByOwner(ctx context.Context, ownerID string) ([]*models.TimeLog, error)
	ListEventsByOwner(ctx context.Context, ownerID string) ([]*models.Event, error)
	ListRemindersByOwner(ctx context.Context, ownerID string) ([]*models.Reminder, error)

	DeleteMembersByOwner(ctx context.Context, ownerID string) error
	DeleteTimeLogsByOwner(ctx context.Context, ownerID string) error
	DeleteEventsByOwner(ctx context.Context, ownerID string) error
	DeleteRemindersByOwner(ctx context.Context, ownerID string) error

	// Counts returns per-entity-kind row counts for the owner, keyed by the
	// envelope kind names (familyMembers, timeLogs, events, reminders).
	Counts(ctx context.Context, ownerID string) (map[string]int, error)
}

package models

import "time"

type FamilyMember struct {
	ID                 string
	OwnerID            string
	Name               string
	BirthDate          *time.Time
	RelationshipTypeID *string
}

type TimeLog struct {
	ID              string
	OwnerID         string
	FamilyMemberID  *string
	ActivityTypeID  *string
	StartedAt       time.Time
	DurationMinutes int
	Notes           string
}

type Event struct {
	ID             string
	OwnerID        string
	Title          string
	FamilyMemberID *string
	EventTypeID    *string
	ScheduledAt    time.Time
	Location       string
}

type Reminder struct {
	ID             string
	OwnerID        string
	Title          string
	FamilyMemberID *string
	ReminderTypeID *string
	RemindAt       time.Time
	Done           bool
}

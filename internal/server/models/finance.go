package models

import "time"

type Transaction struct {
	ID          string
	OwnerID     string
	Amount      float64
	Direction   string
	OccurredAt  time.Time
	Description string
	TypeID      *string
	CategoryID  *string
}

type Investment struct {
	ID          string
	OwnerID     string
	Name        string
	Amount      float64
	TypeID      *string
	PurchasedAt time.Time
	Notes       string
}

type Budget struct {
	ID          string
	OwnerID     string
	Name        string
	Amount      float64
	CategoryID  *string
	PeriodStart time.Time
	PeriodEnd   time.Time
}

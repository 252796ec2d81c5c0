// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account record. Every owned row in the store references a user
// through its owner_id column.
type User struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

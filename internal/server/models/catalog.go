package models

// CatalogItem is a taxonomy entry. Items form a tree via ParentID; Level is
// the ancestor depth (root = 0). System items are shared across all users
// (OwnerID is nil) and are maintained outside of user data flows.
type CatalogItem struct {
	ID       string
	OwnerID  *string
	Kind     string
	Name     string
	Slug     string
	ParentID *string
	Level    int
	IsSystem bool
}

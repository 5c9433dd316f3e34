package domain

import "time"

// Category groups tickets by topic. Owned by the admin CRUD layer; the
// analytics core only reads categories for joins and rankings.
type Category struct {
	ID          int64
	Name        string
	Description string
	LastUpdated time.Time
}

package domain

import "time"

// Category groups catalog books under a unique name.
//
// BookCount is not persisted as a stored counter. Stored counters drift
// under partial failures, so the store computes the live count at read
// time instead.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	BookCount   int       `json:"book_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

package domain

import "time"

// WishlistEntry marks a user's interest in a book. Identity is the
// (user, book) pair; the store enforces uniqueness at the key level, so a
// duplicate insert is rejected deterministically rather than filtered in
// application logic.
type WishlistEntry struct {
	ID      string    `json:"id"`
	UserID  string    `json:"user_id"`
	BookID  string    `json:"book_id"`
	AddedAt time.Time `json:"added_at"`
}

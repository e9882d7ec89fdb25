package domain

import "time"

// User represents a storefront account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"` // Stored hashed, filter from API responses
	Name         string    `json:"name"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	LastLoginAt  time.Time `json:"last_login_at"`
}

// Public returns a copy safe to send to clients (password hash stripped).
func (u *User) Public() User {
	pub := *u
	pub.PasswordHash = ""
	return pub
}

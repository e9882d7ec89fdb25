package domain

import "time"

// Session tracks a user's refresh-token lifetime. The access token is
// stateless; the session row exists so refresh tokens can be rotated and
// revoked.
type Session struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	RefreshTokenHash string    `json:"refresh_token_hash"`
	ExpiresAt        time.Time `json:"expires_at"`
	CreatedAt        time.Time `json:"created_at"`
	LastUsedAt       time.Time `json:"last_used_at"`
}

// IsExpired returns true if the session's refresh window has passed.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

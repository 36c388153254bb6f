package model

import "time"

// Identity is the authenticated principal resolved from a session token.
// It is attached to the request context by the auth middleware; handlers
// never read the session directly.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Session is a persisted login issued after a successful OAuth callback.
// The token is an opaque value; no claims are embedded in it.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is past its expiry at instant now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

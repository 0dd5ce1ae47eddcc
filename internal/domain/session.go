package domain

import "time"

// Session is the server-side record behind a client's session cookie.
// Role is captured at login and never re-read from the user directory.
type Session struct {
	ID        string    `json:"id"`
	LoggedIn  bool      `json:"logged_in"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

package auth

import "github.com/MrSnakeDoc/homedeck/internal/domain"

// Mode selects how the authentication gate answers anonymous requests.
type Mode int

const (
	// ModeRedirect sends anonymous visitors to the login page (HTML routes).
	ModeRedirect Mode = iota
	// ModeDenyJSON answers with a structured 401 (API routes).
	ModeDenyJSON
)

// Decision is the outcome of a gate: either allowed with the session, or
// denied with a reason from the domain error taxonomy.
type Decision struct {
	Allowed bool
	Session *domain.Session
	Reason  error
}

func Allow(s *domain.Session) Decision {
	return Decision{Allowed: true, Session: s}
}

func Deny(reason error) Decision {
	return Decision{Reason: reason}
}

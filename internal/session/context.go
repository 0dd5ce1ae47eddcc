package session

import (
	"context"

	"github.com/MrSnakeDoc/homedeck/internal/domain"
)

type contextKey string

const sessionContextKey contextKey = "homedeck_session"

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *domain.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

// FromContext returns the session stored by WithSession.
func FromContext(ctx context.Context) (*domain.Session, bool) {
	s, ok := ctx.Value(sessionContextKey).(*domain.Session)
	return s, ok && s != nil
}

package session

import (
	"context"

	"github.com/MrSnakeDoc/homedeck/internal/domain"
)

// Store keeps sessions server-side, keyed by session ID.
// Get returns an error wrapping domain.ErrNotFound for unknown or expired IDs.
type Store interface {
	Save(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/homedeck/internal/domain"
)

func TestMemoryStoreSaveGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s := &domain.Session{ID: "abc", LoggedIn: true, Username: "alice", Role: domain.RoleUser, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	// Returned value is a copy.
	got.Role = domain.RoleAdmin
	again, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, again.Role)

	require.NoError(t, store.Delete(ctx, "abc"))
	require.NoError(t, store.Delete(ctx, "abc"), "deleting twice is fine")

	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryStoreHidesExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, &domain.Session{ID: "old", ExpiresAt: now.Add(-time.Second)}))

	_, err := store.Get(ctx, "old")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, store.Count(), "expired entries stay until swept")
}

func TestMemoryStoreSweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()

	require.NoError(t, store.Save(ctx, &domain.Session{ID: "expired-1", ExpiresAt: now.Add(-time.Hour)}))
	require.NoError(t, store.Save(ctx, &domain.Session{ID: "expired-2", ExpiresAt: now}))
	require.NoError(t, store.Save(ctx, &domain.Session{ID: "live", ExpiresAt: now.Add(time.Hour)}))

	removed := store.Sweep(now)

	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, store.Count())
}

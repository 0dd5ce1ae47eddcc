package users

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/homedeck/internal/domain"
	"github.com/MrSnakeDoc/homedeck/internal/logger"
	"github.com/MrSnakeDoc/homedeck/internal/store/document"
)

func newTestDirectory(t *testing.T) *Directory {
	t.Helper()
	store := document.NewStore(filepath.Join(t.TempDir(), "data.json"), logger.NewNop())
	return NewDirectory(store)
}

func TestAddAndFind(t *testing.T) {
	dir := newTestDirectory(t)
	dir.now = func() time.Time { return time.Date(2024, 3, 9, 10, 30, 0, 0, time.UTC) }

	added, err := dir.Add("alice", "secret1", domain.RoleUser)
	require.NoError(t, err)
	assert.True(t, added)

	u, ok := dir.FindByUsername("alice")
	require.True(t, ok)
	assert.Equal(t, "secret1", u.Password)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.Equal(t, "2024-03-09 10:30:00", u.CreatedAt)

	_, ok = dir.FindByUsername("Alice")
	assert.False(t, ok, "lookup must be case-sensitive")
}

func TestAddRejectsDuplicateRegardlessOfPassword(t *testing.T) {
	dir := newTestDirectory(t)

	added, err := dir.Add("bob", "password1", domain.RoleUser)
	require.NoError(t, err)
	require.True(t, added)

	added, err = dir.Add("bob", "different-password", domain.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, added)

	u, ok := dir.FindByUsername("bob")
	require.True(t, ok)
	assert.Equal(t, "password1", u.Password)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.Len(t, dir.List(), 1)
}

func TestAddKeepsRegistrationOrder(t *testing.T) {
	dir := newTestDirectory(t)
	for _, name := range []string{"carol", "alice", "bob"} {
		_, err := dir.Add(name, "secret1", domain.RoleUser)
		require.NoError(t, err)
	}

	var names []string
	for _, u := range dir.List() {
		names = append(names, u.Username)
	}
	assert.Equal(t, []string{"carol", "alice", "bob"}, names)
}

func TestConcurrentAddsLoseNothing(t *testing.T) {
	dir := newTestDirectory(t)

	const n = 25
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			added, err := dir.Add(fmt.Sprintf("user%02d", i), "secret1", domain.RoleUser)
			assert.NoError(t, err)
			assert.True(t, added)
		}(i)
	}
	wg.Wait()

	assert.Len(t, dir.List(), n)
	for i := 0; i < n; i++ {
		_, ok := dir.FindByUsername(fmt.Sprintf("user%02d", i))
		assert.True(t, ok, "user%02d missing", i)
	}
}

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{"valid", "abc", "123456", false},
		{"empty username", "", "123456", true},
		{"empty password", "abc", "", true},
		{"short username", "ab", "123456", true},
		{"short password", "abc", "12345", true},
		{"multibyte username counts runes", "日本語", "123456", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCredentials(tt.username, tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

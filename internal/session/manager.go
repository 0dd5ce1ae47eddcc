package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/homedeck/internal/domain"
)

// Options configures a Manager.
type Options struct {
	Secret     string        // HMAC key for the cookie token
	TTL        time.Duration // session lifetime
	CookieName string        // name of the session cookie
	Secure     bool          // set the Secure cookie attribute
}

// Manager issues, resolves and destroys sessions. The client holds a signed
// cookie naming the session; the session itself lives in the Store.
type Manager struct {
	store  Store
	codec  tokenCodec
	ttl    time.Duration
	cookie string
	secure bool
	now    func() time.Time
}

// NewManager creates a session manager over store.
func NewManager(store Store, opts Options) *Manager {
	return &Manager{
		store:  store,
		codec:  tokenCodec{secret: []byte(opts.Secret)},
		ttl:    opts.TTL,
		cookie: opts.CookieName,
		secure: opts.Secure,
		now:    time.Now,
	}
}

// Store returns the backing session store.
func (m *Manager) Store() Store {
	return m.store
}

// Issue creates a logged-in session for user and writes the cookie.
func (m *Manager) Issue(ctx context.Context, w http.ResponseWriter, user *domain.User) (*domain.Session, error) {
	now := m.now()
	s := &domain.Session{
		ID:        uuid.NewString(),
		LoggedIn:  true,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	token, err := m.codec.sign(s.ID, s.Username, now, s.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookie,
		Value:    token,
		Path:     "/",
		Expires:  s.ExpiresAt,
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return s, nil
}

// Current resolves the session carried by r. Any failure (no cookie, bad
// signature, expired, unknown or logged-out session) is reported as
// domain.ErrUnauthenticated; other store errors are returned as-is.
func (m *Manager) Current(r *http.Request) (*domain.Session, error) {
	id, err := m.sessionID(r)
	if err != nil {
		return nil, err
	}

	s, err := m.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: session not found", domain.ErrUnauthenticated)
		}
		return nil, err
	}

	if !s.LoggedIn || s.Expired(m.now()) {
		return nil, fmt.Errorf("%w: session expired", domain.ErrUnauthenticated)
	}
	return s, nil
}

// Destroy deletes the session named by r's cookie, if any, and clears the
// cookie. Calling it without a valid session is not an error.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) error {
	defer m.clearCookie(w)

	id, err := m.sessionID(r)
	if err != nil {
		return nil
	}
	return m.store.Delete(r.Context(), id)
}

func (m *Manager) sessionID(r *http.Request) (string, error) {
	c, err := r.Cookie(m.cookie)
	if err != nil || c.Value == "" {
		return "", fmt.Errorf("%w: no session cookie", domain.ErrUnauthenticated)
	}
	id, err := m.codec.parse(c.Value, m.now())
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	return id, nil
}

func (m *Manager) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

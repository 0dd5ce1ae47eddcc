package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"

	"github.com/MrSnakeDoc/homedeck/internal/domain"
	"github.com/MrSnakeDoc/homedeck/internal/httpserver/respond"
	"github.com/MrSnakeDoc/homedeck/internal/logger"
	"github.com/MrSnakeDoc/homedeck/internal/session"
	"github.com/MrSnakeDoc/homedeck/internal/users"
)

// LoginPath is where page routes send anonymous visitors.
const LoginPath = "/login"

var errBadCredentials = fmt.Errorf("%w: invalid username or password", domain.ErrUnauthenticated)

// UserDirectory is the part of users.Directory the gate relies on.
type UserDirectory interface {
	FindByUsername(username string) (*domain.User, bool)
	Add(username, password string, role domain.Role) (bool, error)
}

// Gate authenticates credentials, owns the session lifecycle and guards
// routes.
type Gate struct {
	users    UserDirectory
	sessions *session.Manager
	logger   logger.Logger
}

// NewGate creates a gate over a user directory and a session manager.
func NewGate(dir UserDirectory, sessions *session.Manager, log logger.Logger) *Gate {
	return &Gate{
		users:    dir,
		sessions: sessions,
		logger:   log,
	}
}

// Authenticate checks a username/password pair. Unknown users and wrong
// passwords produce the same error.
func (g *Gate) Authenticate(username, password string) (*domain.User, error) {
	user, ok := g.users.FindByUsername(username)
	if !ok {
		return nil, errBadCredentials
	}
	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(password)) != 1 {
		return nil, errBadCredentials
	}
	return user, nil
}

// Login authenticates and, on success, issues a session cookie on w.
func (g *Gate) Login(ctx context.Context, w http.ResponseWriter, username, password string) (*domain.Session, error) {
	user, err := g.Authenticate(username, password)
	if err != nil {
		g.logger.Info("login rejected", logger.String("username", username))
		return nil, err
	}

	s, err := g.sessions.Issue(ctx, w, user)
	if err != nil {
		return nil, err
	}

	g.logger.Info("login accepted",
		logger.String("username", s.Username),
		logger.String("role", string(s.Role)))
	return s, nil
}

// Register creates a plain user account. Self-registration never grants
// admin.
func (g *Gate) Register(username, password string) error {
	if err := users.ValidateCredentials(username, password); err != nil {
		return err
	}

	added, err := g.users.Add(username, password, domain.RoleUser)
	if err != nil {
		return err
	}
	if !added {
		return fmt.Errorf("%w: username %q is taken", domain.ErrConflict, username)
	}

	g.logger.Info("user registered", logger.String("username", username))
	return nil
}

// Logout destroys the caller's session, if any. It is safe to call twice.
func (g *Gate) Logout(w http.ResponseWriter, r *http.Request) error {
	return g.sessions.Destroy(w, r)
}

// Check runs the authentication gate against r.
func (g *Gate) Check(r *http.Request) Decision {
	if s, ok := session.FromContext(r.Context()); ok {
		return Allow(s)
	}
	s, err := g.sessions.Current(r)
	if err != nil {
		return Deny(err)
	}
	return Allow(s)
}

// Authorize runs the authorization gate on an authenticated decision.
func Authorize(d Decision, role domain.Role) Decision {
	if !d.Allowed {
		return d
	}
	if d.Session.Role != role {
		return Deny(fmt.Errorf("%w: %s role required", domain.ErrForbidden, role))
	}
	return d
}

// CurrentSession returns the session resolved by RequireSession or
// RequireRole.
func CurrentSession(ctx context.Context) (*domain.Session, bool) {
	return session.FromContext(ctx)
}

// RequireSession only lets authenticated requests through. Anonymous
// requests are redirected to the login page or denied with JSON, depending
// on mode. The session is stored in the request context.
func (g *Gate) RequireSession(mode Mode) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := g.Check(r)
			if !d.Allowed {
				g.deny(w, r, d, mode)
				return
			}
			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), d.Session)))
		})
	}
}

// RequireRole lets through authenticated requests whose session carries
// role. Failures are always structured JSON denials.
func (g *Gate) RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := Authorize(g.Check(r), role)
			if !d.Allowed {
				g.deny(w, r, d, ModeDenyJSON)
				return
			}
			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), d.Session)))
		})
	}
}

func (g *Gate) deny(w http.ResponseWriter, r *http.Request, d Decision, mode Mode) {
	if !errors.Is(d.Reason, domain.ErrUnauthenticated) && !errors.Is(d.Reason, domain.ErrForbidden) {
		g.logger.Error("session lookup failed",
			logger.String("path", r.URL.Path),
			logger.Error(d.Reason))
	} else {
		g.logger.Debug("access denied",
			logger.String("path", r.URL.Path),
			logger.Error(d.Reason))
	}

	if mode == ModeRedirect && errors.Is(d.Reason, domain.ErrUnauthenticated) {
		http.Redirect(w, r, LoginPath, http.StatusFound)
		return
	}
	respond.Error(w, d.Reason)
}

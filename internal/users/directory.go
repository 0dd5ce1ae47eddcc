package users

import (
	"time"

	"github.com/MrSnakeDoc/homedeck/internal/domain"
	"github.com/MrSnakeDoc/homedeck/internal/store/document"
)

const createdAtLayout = "2006-01-02 15:04:05"

// Directory manages user records inside the shared document.
// It does not validate credentials shape; callers do (see ValidateCredentials).
type Directory struct {
	store *document.Store
	now   func() time.Time
}

// NewDirectory creates a user directory on top of the document store.
func NewDirectory(store *document.Store) *Directory {
	return &Directory{
		store: store,
		now:   time.Now,
	}
}

// FindByUsername looks up a user by exact, case-sensitive username.
func (d *Directory) FindByUsername(username string) (*domain.User, bool) {
	u, ok := d.store.Load().FindUser(username)
	if !ok {
		return nil, false
	}
	return &u, true
}

// Add appends a new user and persists the document. It returns false when
// the username is already taken. The whole check-and-append runs as one
// read-modify-write under the store lock.
func (d *Directory) Add(username, password string, role domain.Role) (bool, error) {
	added := false
	err := d.store.Update(func(doc *domain.Document) error {
		if _, exists := doc.FindUser(username); exists {
			return nil
		}
		doc.Users = append(doc.Users, domain.User{
			Username:  username,
			Password:  password,
			Role:      role,
			CreatedAt: d.now().Format(createdAtLayout),
		})
		added = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

// List returns every user in registration order.
func (d *Directory) List() []domain.User {
	return d.store.Load().Users
}

package accounts

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/homedeck/internal/domain"
	"github.com/MrSnakeDoc/homedeck/internal/users"
)

// Map turns file entries into users. Entries that fail validation are skipped
// and reported; duplicates keep the first occurrence.
func Map(file *File) ([]domain.User, []error) {
	if file == nil {
		return nil, nil
	}

	out := make([]domain.User, 0, len(file.Users))
	seen := make(map[string]struct{}, len(file.Users))
	var errs []error

	for i, acc := range file.Users {
		username := strings.TrimSpace(acc.Username)

		role := domain.Role(strings.ToLower(strings.TrimSpace(acc.Role)))
		if role == "" {
			role = domain.RoleUser
		}
		if !role.Valid() {
			errs = append(errs, fmt.Errorf("entry %d (%s): %w: unknown role %q", i, username, domain.ErrValidation, acc.Role))
			continue
		}

		if err := users.ValidateCredentials(username, acc.Password); err != nil {
			errs = append(errs, fmt.Errorf("entry %d (%s): %w", i, username, err))
			continue
		}

		if _, dup := seen[username]; dup {
			errs = append(errs, fmt.Errorf("entry %d (%s): %w: duplicate username", i, username, domain.ErrConflict))
			continue
		}
		seen[username] = struct{}{}

		out = append(out, domain.User{
			Username: username,
			Password: acc.Password,
			Role:     role,
		})
	}
	return out, errs
}

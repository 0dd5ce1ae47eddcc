package domain

// Role gates access to administrative endpoints.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is one registered account, persisted in the document's users section.
//
// Username is unique (case-sensitive) and immutable after creation.
// Password is stored in clear text.
type User struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Role      Role   `json:"role"`
	CreatedAt string `json:"created_at"`
}

package domain

import (
	"errors"
	"sort"
	"time"
)

// Well-known role names seeded with the schema. Registration accepts any
// role that exists in the roles table; these are just the defaults.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRoleNotFound       = errors.New("role not found")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// Role is a named permission grant. Roles are administered out of band and
// read-only from the auth flow's perspective.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// User models a back-office account. Roles are resolved through the
// users_roles join table, never through embedded back-references.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	CustomerID   string    `json:"customer_id,omitempty"`
	Enabled      bool      `json:"enabled"`
	Roles        []Role    `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal is the authenticated identity used for access-control decisions:
// who the caller is, whether the account is usable, and which authorities it
// holds. Authorities are exactly the names of the user's roles.
type Principal struct {
	Username     string
	PasswordHash string
	Enabled      bool
	Authorities  []string
}

// NewPrincipal derives a Principal from a stored user. Authority names are
// deduplicated and sorted so two loads of the same user always compare equal.
func NewPrincipal(u *User) Principal {
	seen := make(map[string]struct{}, len(u.Roles))
	authorities := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		if _, ok := seen[r.Name]; ok {
			continue
		}
		seen[r.Name] = struct{}{}
		authorities = append(authorities, r.Name)
	}
	sort.Strings(authorities)

	return Principal{
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Enabled:      u.Enabled,
		Authorities:  authorities,
	}
}

// HasAuthority reports whether the principal holds the named authority.
func (p Principal) HasAuthority(name string) bool {
	for _, a := range p.Authorities {
		if a == name {
			return true
		}
	}
	return false
}

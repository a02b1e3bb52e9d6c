package ports

import (
	"context"

	"github.com/erptelco/backoffice/internal/core/domain"
)

// RegisterInput carries everything needed to create a new account.
type RegisterInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Roles     []string
	// Enabled defaults to true when nil.
	Enabled *bool
}

// PrincipalLoader maps a stored user record into an authorization principal.
// The auth gate re-loads the principal on every request; tokens are never
// trusted as the source of authority data.
type PrincipalLoader interface {
	LoadPrincipal(ctx context.Context, username string) (domain.Principal, error)
}

// AuthService implements registration and login.
type AuthService interface {
	PrincipalLoader

	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login verifies credentials and returns a signed session token.
	// Unknown usernames and wrong passwords both fail with
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, error)
}

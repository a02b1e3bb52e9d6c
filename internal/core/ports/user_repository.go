package ports

import (
	"context"

	"github.com/erptelco/backoffice/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts the user and its role associations atomically.
	// A uniqueness violation on username surfaces as domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByUsername retrieves a user with its roles resolved.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

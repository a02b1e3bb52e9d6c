package ports

import (
	"context"

	"github.com/erptelco/backoffice/internal/core/domain"
)

// RoleRepository resolves role names to persisted role rows. Roles are
// seeded out of band; the auth flow only ever reads them.
type RoleRepository interface {
	// FindByNames returns the roles matching the given names. Any name
	// without a matching row fails the whole lookup with
	// domain.ErrRoleNotFound.
	FindByNames(ctx context.Context, names []string) ([]domain.Role, error)
}

package ports

import (
	"context"

	"github.com/erptelco/backoffice/internal/core/domain"
)

// CustomerRepository defines persistence operations for customer records.
type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	FindByID(ctx context.Context, id int64) (*domain.Customer, error)
	FindAll(ctx context.Context) ([]*domain.Customer, error)
}

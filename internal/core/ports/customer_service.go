package ports

import (
	"context"

	"github.com/erptelco/backoffice/internal/core/domain"
)

// CustomerService exposes customer record operations to the API layer.
type CustomerService interface {
	Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
}

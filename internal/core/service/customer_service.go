package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/erptelco/backoffice/internal/core/domain"
	"github.com/erptelco/backoffice/internal/core/ports"
)

// CustomerService is a thin pass-through over the customer repository.
type CustomerService struct {
	repo   ports.CustomerRepository
	logger zerolog.Logger
}

func NewCustomerService(repo ports.CustomerRepository, logger zerolog.Logger) *CustomerService {
	return &CustomerService{repo: repo, logger: logger}
}

func (s *CustomerService) Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	created, err := s.repo.Create(ctx, c)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create customer")
		return nil, err
	}

	s.logger.Info().Int64("customer_id", created.ID).Str("class", created.Class).Msg("customer created")
	return created, nil
}

func (s *CustomerService) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CustomerService) List(ctx context.Context) ([]*domain.Customer, error) {
	return s.repo.FindAll(ctx)
}

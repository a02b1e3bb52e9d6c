package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/erptelco/backoffice/internal/core/domain"
)

type stubCustomerRepo struct {
	customers map[int64]*domain.Customer
	nextID    int64
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[int64]*domain.Customer), nextID: 1}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	clone := *c
	clone.ID = r.nextID
	r.nextID++
	r.customers[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id int64) (*domain.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCustomerRepo) FindAll(_ context.Context) ([]*domain.Customer, error) {
	out := make([]*domain.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

func TestCustomerService_CreateAssignsIDAndTimestamps(t *testing.T) {
	svc := NewCustomerService(newStubCustomerRepo(), zerolog.Nop())

	created, err := svc.Create(context.Background(), &domain.Customer{
		FirstName: "Acme",
		LastName:  "Networks",
		Class:     domain.ClassEnterprise,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected server-assigned id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}
}

func TestCustomerService_GetByID(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := NewCustomerService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), &domain.Customer{FirstName: "Jane", LastName: "Doe", Class: domain.ClassIndividual})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FirstName != "Jane" {
		t.Fatalf("unexpected customer: %+v", got)
	}

	if _, err := svc.GetByID(context.Background(), 9999); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestCustomerService_List(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := NewCustomerService(repo, zerolog.Nop())

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}

	if _, err := svc.Create(context.Background(), &domain.Customer{FirstName: "A", LastName: "B"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	list, err = svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 customer, got %d", len(list))
	}
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/erptelco/backoffice/internal/api/middleware"
	"github.com/erptelco/backoffice/internal/core/domain"
)

type stubCustomerService struct {
	createFn func(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	getFn    func(ctx context.Context, id int64) (*domain.Customer, error)
	listFn   func(ctx context.Context) ([]*domain.Customer, error)
}

func (s *stubCustomerService) Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	return s.createFn(ctx, c)
}

func (s *stubCustomerService) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.getFn(ctx, id)
}

func (s *stubCustomerService) List(ctx context.Context) ([]*domain.Customer, error) {
	return s.listFn(ctx)
}

func newCustomerContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.PrincipalKey, domain.Principal{Username: "alice", Enabled: true, Authorities: []string{"ADMIN"}})
	return c, rec
}

func TestCustomerHandler_GetByID(t *testing.T) {
	stub := &stubCustomerService{
		getFn: func(ctx context.Context, id int64) (*domain.Customer, error) {
			if id != 42 {
				t.Fatalf("unexpected id: %d", id)
			}
			return &domain.Customer{ID: 42, FirstName: "Acme", LastName: "Networks", Class: domain.ClassEnterprise}, nil
		},
	}
	h := NewCustomerHandler(stub)

	c, rec := newCustomerContext(t, http.MethodGet, "/customer/get?id=42", "")
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["full_name"] != "Acme LLC" {
		t.Fatalf("expected enterprise display name, got %v", resp["full_name"])
	}
}

func TestCustomerHandler_GetByID_NotFound(t *testing.T) {
	stub := &stubCustomerService{
		getFn: func(ctx context.Context, id int64) (*domain.Customer, error) {
			return nil, domain.ErrCustomerNotFound
		},
	}
	h := NewCustomerHandler(stub)

	c, _ := newCustomerContext(t, http.MethodGet, "/customer/get?id=7", "")
	if err := h.Get(c); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestCustomerHandler_GetByID_BadID(t *testing.T) {
	stub := &stubCustomerService{
		getFn: func(ctx context.Context, id int64) (*domain.Customer, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewCustomerHandler(stub)

	c, _ := newCustomerContext(t, http.MethodGet, "/customer/get?id=abc", "")
	err := h.Get(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 error, got %v", err)
	}
}

func TestCustomerHandler_GetWithoutIDListsAll(t *testing.T) {
	stub := &stubCustomerService{
		listFn: func(ctx context.Context) ([]*domain.Customer, error) {
			return []*domain.Customer{
				{ID: 1, FirstName: "Acme", LastName: "Networks", Class: domain.ClassEnterprise},
				{ID: 2, FirstName: "Jane", LastName: "Doe", Class: domain.ClassIndividual},
			}, nil
		},
	}
	h := NewCustomerHandler(stub)

	c, rec := newCustomerContext(t, http.MethodGet, "/customer/get", "")
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(resp))
	}
	if resp[1]["full_name"] != "Doe, Jane" {
		t.Fatalf("expected individual display name, got %v", resp[1]["full_name"])
	}
}

func TestCustomerHandler_GetWithoutIDListsEmpty(t *testing.T) {
	stub := &stubCustomerService{
		listFn: func(ctx context.Context) ([]*domain.Customer, error) {
			return []*domain.Customer{}, nil
		},
	}
	h := NewCustomerHandler(stub)

	c, rec := newCustomerContext(t, http.MethodGet, "/customer/get", "")
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with empty list, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("expected empty json array, got %q", body)
	}
}

func TestCustomerHandler_Create(t *testing.T) {
	stub := &stubCustomerService{
		createFn: func(ctx context.Context, in *domain.Customer) (*domain.Customer, error) {
			created := *in
			created.ID = 10
			return &created, nil
		},
	}
	h := NewCustomerHandler(stub)

	c, rec := newCustomerContext(t, http.MethodPost, "/customer/new",
		`{"first_name":"Acme","last_name":"Networks","class":"Enterprise","email":"ops@acme.test"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"].(float64) != 10 {
		t.Fatalf("expected server-assigned id, got %v", resp["id"])
	}
	if resp["full_name"] != "Acme LLC" {
		t.Fatalf("expected derived display name, got %v", resp["full_name"])
	}
}

func TestCustomerHandler_Create_InvalidPayload(t *testing.T) {
	stub := &stubCustomerService{
		createFn: func(ctx context.Context, in *domain.Customer) (*domain.Customer, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewCustomerHandler(stub)

	for _, body := range []string{"not-json", `{"last_name":"Doe"}`, `{"first_name":"A","class":"Individual","email":"not-an-email"}`} {
		c, _ := newCustomerContext(t, http.MethodPost, "/customer/new", body)
		err := h.Create(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400 error, got %v", body, err)
		}
	}
}

func TestCustomerHandler_RequiresPrincipal(t *testing.T) {
	stub := &stubCustomerService{
		listFn: func(ctx context.Context) ([]*domain.Customer, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewCustomerHandler(stub)

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodGet, "/customer/get", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Get(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without principal, got %v", err)
	}
}

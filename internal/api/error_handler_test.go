package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/erptelco/backoffice/internal/core/domain"
)

func invoke(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error envelope: %v", err)
	}
	return rec.Code, resp
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{domain.ErrCustomerNotFound, http.StatusNotFound, "customer not found"},
		{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{domain.ErrUserExists, http.StatusConflict, "username already exists"},
		{domain.ErrRoleNotFound, http.StatusBadRequest, "role not found"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{domain.ErrTooManyAttempts, http.StatusTooManyRequests, "too many login attempts, retry later"},
	}

	for _, tc := range cases {
		code, resp := invoke(t, tc.err)
		if code != tc.status {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.status, code)
		}
		if resp.Message != tc.message {
			t.Fatalf("%v: expected message %q, got %q", tc.err, tc.message, resp.Message)
		}
		if resp.Status != tc.status || resp.Error != http.StatusText(tc.status) {
			t.Fatalf("%v: inconsistent envelope: %+v", tc.err, resp)
		}
		if resp.Timestamp == "" {
			t.Fatalf("%v: missing timestamp", tc.err)
		}
	}
}

func TestErrorHandler_EchoErrorPassthrough(t *testing.T) {
	code, resp := invoke(t, echo.NewHTTPError(http.StatusBadRequest, "id must be an integer"))
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if resp.Message != "id must be an integer" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestErrorHandler_UnexpectedErrorIsOpaque(t *testing.T) {
	code, resp := invoke(t, errors.New("pq: connection refused"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if resp.Message != "internal server error" {
		t.Fatalf("internal cause leaked to client: %q", resp.Message)
	}
}

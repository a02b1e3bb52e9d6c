package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/erptelco/backoffice/internal/api/middleware"
	"github.com/erptelco/backoffice/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the auth gate and performs
// a fast-fail check before any service call: presence proves the gate ran.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	principal, ok := c.Get(middleware.PrincipalKey).(domain.Principal)
	if !ok {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication context")
	}
	return principal, nil
}

package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/erptelco/backoffice/internal/core/domain"
)

// RequireAuthority enforces that the authenticated principal holds at least
// one of the given authorities. Must run after Auth.
func RequireAuthority(allowed ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := c.Get(PrincipalKey).(domain.Principal)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": msgInvalidAuth})
			}
			for _, name := range allowed {
				if principal.HasAuthority(name) {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}

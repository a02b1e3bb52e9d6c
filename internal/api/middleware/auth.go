package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/erptelco/backoffice/internal/api/metrics"
	"github.com/erptelco/backoffice/internal/core/domain"
	"github.com/erptelco/backoffice/internal/core/ports"
	"github.com/erptelco/backoffice/internal/core/token"
)

// PrincipalKey is the context key under which the auth gate stores the
// authenticated principal.
const PrincipalKey = "principal"

// publicPaths are exact-match routes that bypass authentication entirely.
var publicPaths = map[string]struct{}{
	"/users/register": {},
	"/users/login":    {},
	"/health":         {},
	"/health/ready":   {},
	"/metrics":        {},
}

// Client-facing rejection labels. The cause taxonomy is preserved in the
// label and in logs, but the status is always a uniform 401.
const (
	msgMalformed   = "Malformed JWT token"
	msgExpired     = "JWT token expired"
	msgBadSig      = "Invalid JWT signature"
	msgInvalidAuth = "Invalid authentication request"
)

// Auth is the gate every non-public request passes through: it extracts the
// bearer token, decodes it, re-loads the principal from the store, validates
// subject and expiry, and attaches the principal to the request context.
//
// The gate runs before the central error handler is reachable, so it owns
// its own error serialization and writes the short {"error": msg} body
// directly.
func Auth(codec *token.Codec, loader ports.PrincipalLoader, logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := publicPaths[c.Request().URL.Path]; ok {
				return next(c)
			}

			// A principal attached earlier in the chain is never
			// overwritten; exactly one authentication attempt per request.
			if _, ok := c.Get(PrincipalKey).(domain.Principal); ok {
				return next(c)
			}

			raw, ok := bearerToken(c.Request().Header.Get("Authorization"))
			if !ok {
				metrics.TokenRejectionsTotal.WithLabelValues("missing_header").Inc()
				return reject(c, msgInvalidAuth)
			}

			claims, err := codec.Decode(raw)
			if err != nil {
				reason, msg := classifyTokenError(err)
				metrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
				logger.Warn().Err(err).Str("path", c.Request().URL.Path).Msg("token rejected")
				return reject(c, msg)
			}

			principal, err := loader.LoadPrincipal(c.Request().Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.TokenRejectionsTotal.WithLabelValues("unknown_subject").Inc()
					logger.Warn().Str("subject", claims.Subject).Msg("token subject has no user record")
					return reject(c, msgInvalidAuth)
				}
				logger.Error().Err(err).Msg("principal load failed")
				return reject(c, msgInvalidAuth)
			}

			if _, err := codec.Validate(raw, principal.Username); err != nil {
				reason, msg := classifyTokenError(err)
				metrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
				logger.Warn().Err(err).Str("subject", claims.Subject).Msg("token validation failed")
				return reject(c, msg)
			}

			if !principal.Enabled {
				metrics.TokenRejectionsTotal.WithLabelValues("disabled").Inc()
				logger.Warn().Str("username", principal.Username).Msg("disabled account presented a valid token")
				return reject(c, msgInvalidAuth)
			}

			c.Set(PrincipalKey, principal)
			c.Set("username", principal.Username)

			return next(c)
		}
	}
}

// bearerToken extracts the token from an Authorization header. Only the
// exact "Bearer <token>" shape counts as present.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func classifyTokenError(err error) (reason, msg string) {
	switch {
	case errors.Is(err, token.ErrTokenExpired):
		return "expired", msgExpired
	case errors.Is(err, token.ErrTokenSignatureInvalid):
		return "bad_signature", msgBadSig
	case errors.Is(err, token.ErrTokenSubjectMismatch):
		return "subject_mismatch", msgInvalidAuth
	default:
		return "malformed", msgMalformed
	}
}

func reject(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{"error": msg})
}

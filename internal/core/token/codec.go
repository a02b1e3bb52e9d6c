// Package token issues and validates the signed session tokens that carry a
// principal's identity between requests. Tokens are HS256-signed JWTs with
// subject, issued-at, expiry, and the principal's authority names; the
// signing secret comes from process configuration and never leaves it.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/erptelco/backoffice/internal/core/domain"
)

// DefaultTTL is the contractual token lifetime: expiry is always
// issued-at + one hour.
const DefaultTTL = time.Hour

var (
	ErrTokenMalformed        = errors.New("malformed token")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenSignatureInvalid = errors.New("invalid token signature")
	ErrTokenSubjectMismatch  = errors.New("token subject mismatch")
)

// Claims is the structured payload embedded in a session token.
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens with a symmetric secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Issue encodes the principal's username and authorities into a signed,
// time-bounded token string.
func (c *Codec) Issue(p domain.Principal) (string, error) {
	now := time.Now()
	claims := Claims{
		Roles: p.Authorities,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Decode verifies the signature and structure of a token string and returns
// its claims. Failures map onto a fixed taxonomy: ErrTokenExpired,
// ErrTokenSignatureInvalid, or ErrTokenMalformed for anything else.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignatureInvalid
		default:
			return nil, ErrTokenMalformed
		}
	}
	if !t.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

// Validate decodes the token and additionally requires its subject to equal
// expectedSubject. A mismatch is an authentication failure, never a crash.
func (c *Codec) Validate(tokenString, expectedSubject string) (*Claims, error) {
	claims, err := c.Decode(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Subject != expectedSubject {
		return nil, ErrTokenSubjectMismatch
	}
	return claims, nil
}

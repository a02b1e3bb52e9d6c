package ports

import "context"

// LoginThrottle rate-limits failed login attempts per username. A throttle
// failure must not block login: callers treat errors as "allow" so an
// unavailable backend never locks everyone out.
type LoginThrottle interface {
	// Allow reports whether another attempt for the username may proceed.
	Allow(ctx context.Context, username string) (bool, error)
	// RecordFailure notes one failed attempt for the username.
	RecordFailure(ctx context.Context, username string) error
	// Reset clears the failure count after a successful login.
	Reset(ctx context.Context, username string) error
}

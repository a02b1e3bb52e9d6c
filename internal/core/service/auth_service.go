package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/erptelco/backoffice/internal/core/domain"
	"github.com/erptelco/backoffice/internal/core/ports"
	"github.com/erptelco/backoffice/internal/core/token"
)

// AuthService implements registration, login, and principal loading.
type AuthService struct {
	users    ports.UserRepository
	roles    ports.RoleRepository
	codec    *token.Codec
	throttle ports.LoginThrottle
	logger   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, codec *token.Codec, throttle ports.LoginThrottle, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		roles:    roles,
		codec:    codec,
		throttle: throttle,
		logger:   logger,
	}
}

// Register creates a new user account. Requested role names are resolved
// before anything is written: an unknown role aborts the whole registration
// with no partial user row. A duplicate username surfaces as
// domain.ErrUserExists, arbitrated by the store's unique index.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	roles, err := s.roles.FindByNames(ctx, input.Roles)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	enabled := true
	if input.Enabled != nil {
		enabled = *input.Enabled
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Enabled:      enabled,
		Roles:        roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Int("roles", len(created.Roles)).Msg("user registered")
	return created, nil
}

// Login verifies credentials and issues a session token. Unknown usernames,
// wrong passwords, and disabled accounts all fail with the same
// domain.ErrInvalidCredentials so the response never reveals whether the
// username exists.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	if ok := s.allowAttempt(ctx, username); !ok {
		return "", domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, username)
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, username)
		return "", domain.ErrInvalidCredentials
	}

	if !user.Enabled {
		s.logger.Warn().Str("username", username).Msg("login attempt on disabled account")
		return "", domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.logger.Warn().Err(err).Str("username", username).Msg("throttle reset failed")
		}
	}

	signed, err := s.codec.Issue(domain.NewPrincipal(user))
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("username", username).Msg("login succeeded")
	return signed, nil
}

// LoadPrincipal maps the stored user record for username into an
// authorization principal.
func (s *AuthService) LoadPrincipal(ctx context.Context, username string) (domain.Principal, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return domain.Principal{}, err
	}
	return domain.NewPrincipal(user), nil
}

// allowAttempt consults the throttle. Throttle backend failures count as
// allow: an unavailable limiter must not lock every account out.
func (s *AuthService) allowAttempt(ctx context.Context, username string) bool {
	if s.throttle == nil {
		return true
	}
	ok, err := s.throttle.Allow(ctx, username)
	if err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("throttle check failed, allowing attempt")
		return true
	}
	if !ok {
		s.logger.Warn().Str("username", username).Msg("login throttled")
	}
	return ok
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, username); err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("throttle record failed")
	}
}

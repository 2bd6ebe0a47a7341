package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobdesk/portal-api/internal/core/domain"
	"github.com/jobdesk/portal-api/internal/core/ports"
	"github.com/jobdesk/portal-api/internal/pkg/password"
)

// LoginThrottle abstracts the failed-login rate limiter (Redis). Blocked is
// consulted before the password check; failures are recorded after it, and a
// successful login resets the window.
type LoginThrottle interface {
	Blocked(ctx context.Context, ip, email string) (bool, error)
	RecordFailure(ctx context.Context, ip, email string) error
	Reset(ctx context.Context, ip, email string) error
}

// dummyHash is a throwaway argon2id record verified against login attempts
// for unknown emails, so the unknown-email and wrong-password paths cost the
// same and stay indistinguishable from the outside.
var dummyHash, _ = password.Hash("portal-dummy-credential")

type authService struct {
	users    ports.UserRepository
	throttle LoginThrottle
	log      zerolog.Logger
}

// NewAuthService returns an AuthService implementation. throttle may be nil,
// in which case logins are not rate limited.
func NewAuthService(users ports.UserRepository, throttle LoginThrottle, log zerolog.Logger) ports.AuthService {
	return &authService{users: users, throttle: throttle, log: log}
}

// Register validates the input, probes for conflicts, then creates the user
// and its role profile in one transaction. The email conflict is reported
// before the username conflict. No session is issued here; that is the
// caller's concern once the transaction has committed.
func (s *authService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	in.UserName = strings.TrimSpace(in.UserName)
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	// Fast-path probe for a specific conflict message. The unique indexes
	// remain the authority: a concurrent registration slipping past this
	// check still fails at insert time with the same conflict errors.
	existing, err := s.users.FindByEmailOrUserName(ctx, in.Email, in.UserName)
	switch {
	case err == nil:
		if existing.Email == in.Email {
			return nil, domain.ErrEmailTaken
		}
		return nil, domain.ErrUserNameTaken
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("uniqueness probe: %w", err)
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		UserName:     in.UserName,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.CreateWithProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and returns the user. Unknown email and
// wrong password produce the same ErrInvalidCredentials; only the throttle
// can change the outcome, and it does so before any credential is inspected.
func (s *authService) Login(ctx context.Context, in ports.LoginInput) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		blocked, err := s.throttle.Blocked(ctx, in.IP, email)
		if err != nil {
			// Fail open: a throttle outage must not lock every account out.
			s.log.Warn().Err(err).Msg("login throttle check failed")
		} else if blocked {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			password.Verify(dummyHash, in.Password)
			s.recordFailure(ctx, in.IP, email)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !password.Verify(user.PasswordHash, in.Password) {
		s.recordFailure(ctx, in.IP, email)
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, in.IP, email); err != nil {
			s.log.Warn().Err(err).Msg("login throttle reset failed")
		}
	}
	return user, nil
}

func (s *authService) recordFailure(ctx context.Context, ip, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, ip, email); err != nil {
		s.log.Warn().Err(err).Msg("login throttle record failed")
	}
}

// validateRegistration is the service-level backstop behind the HTTP schema
// validation; both must hold before any store access.
func validateRegistration(in ports.RegisterInput) error {
	switch {
	case in.UserName == "":
		return fmt.Errorf("%w: username is required", domain.ErrValidation)
	case in.Name == "":
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	case in.Email == "":
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	case in.Password == "":
		return fmt.Errorf("%w: password is required", domain.ErrValidation)
	case len(in.Password) < 8:
		return fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	case !domain.ValidRole(in.Role):
		return fmt.Errorf("%w: role must be applicant or employer", domain.ErrValidation)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return fmt.Errorf("%w: email must be a valid email", domain.ErrValidation)
	}
	return nil
}

package ports

import (
	"context"

	"github.com/jobdesk/portal-api/internal/core/domain"
)

// RegisterInput carries the registration form fields. Confirm-password
// equality is checked at the schema layer before the service is reached.
type RegisterInput struct {
	UserName string
	Name     string
	Email    string
	Password string
	Role     string
}

// LoginInput carries the login form fields plus the client IP used by the
// login throttle.
type LoginInput struct {
	Email    string
	Password string
	IP       string
}

// AuthService implements the registration and login flows. Both return the
// created/authenticated user; session issuance is the caller's concern and
// happens strictly after these succeed.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, in LoginInput) (*domain.User, error)
}

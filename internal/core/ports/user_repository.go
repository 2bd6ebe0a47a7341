package ports

import (
	"context"

	"github.com/jobdesk/portal-api/internal/core/domain"
)

// UserRepository defines the persistence interface for accounts and their
// role profiles. CreateWithProfile must insert the user row and the matching
// role-profile row atomically: both commit or both roll back, so a user never
// exists without its profile. Implementations enforce email/user_name
// uniqueness at the storage layer and translate duplicate-key failures into
// domain.ErrEmailTaken / domain.ErrUserNameTaken.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByEmailOrUserName returns the first user matching either value,
	// or domain.ErrUserNotFound when neither is taken.
	FindByEmailOrUserName(ctx context.Context, email, userName string) (*domain.User, error)
	CreateWithProfile(ctx context.Context, user *domain.User) (*domain.User, error)
}

// EmployerRepository manages the employer profile extension rows.
type EmployerRepository interface {
	FindByID(ctx context.Context, id string) (*domain.EmployerProfile, error)
	Update(ctx context.Context, profile *domain.EmployerProfile) error
}

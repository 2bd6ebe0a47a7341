package ports

import (
	"context"

	"github.com/jobdesk/portal-api/internal/core/domain"
)

// EmployerDetails bundles an employer profile with its derived completeness
// flag for the settings and dashboard surfaces.
type EmployerDetails struct {
	Profile          *domain.EmployerProfile `json:"profile"`
	ProfileCompleted bool                    `json:"profile_completed"`
}

// UpdateEmployerProfileInput carries the employer settings form fields.
// Optional fields arrive empty; YearOfEstablishment is nil when unset.
type UpdateEmployerProfileInput struct {
	Name                string
	Description         string
	OrganizationType    string
	TeamSize            string
	Location            string
	WebsiteURL          string
	YearOfEstablishment *int
	BannerImageURL      string
}

// EmployerService exposes the employer profile operations.
type EmployerService interface {
	Details(ctx context.Context, userID string) (*EmployerDetails, error)
	UpdateProfile(ctx context.Context, userID string, in UpdateEmployerProfileInput) error
}

package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobdesk/portal-api/internal/core/domain"
	"github.com/jobdesk/portal-api/internal/core/ports"
)

type employerService struct {
	employers ports.EmployerRepository
	log       zerolog.Logger
}

// NewEmployerService returns an EmployerService implementation.
func NewEmployerService(employers ports.EmployerRepository, log zerolog.Logger) ports.EmployerService {
	return &employerService{employers: employers, log: log}
}

// Details fetches the caller's employer profile and derives the completeness
// flag the dashboard uses to nudge employers toward finishing setup.
func (s *employerService) Details(ctx context.Context, userID string) (*ports.EmployerDetails, error) {
	profile, err := s.employers.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ports.EmployerDetails{
		Profile:          profile,
		ProfileCompleted: profile.Completed(),
	}, nil
}

// UpdateProfile validates and persists the employer settings form.
func (s *employerService) UpdateProfile(ctx context.Context, userID string, in ports.UpdateEmployerProfileInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)

	if err := validateEmployerProfile(in); err != nil {
		return err
	}

	if _, err := s.employers.FindByID(ctx, userID); err != nil {
		return err
	}

	profile := &domain.EmployerProfile{
		ID:                  userID,
		Name:                in.Name,
		Description:         in.Description,
		OrganizationType:    in.OrganizationType,
		TeamSize:            in.TeamSize,
		Location:            in.Location,
		WebsiteURL:          in.WebsiteURL,
		YearOfEstablishment: in.YearOfEstablishment,
		BannerImageURL:      in.BannerImageURL,
		UpdatedAt:           time.Now().UTC(),
	}

	if err := s.employers.Update(ctx, profile); err != nil {
		return fmt.Errorf("update employer profile: %w", err)
	}

	s.log.Info().Str("user_id", userID).Msg("employer profile updated")
	return nil
}

func validateEmployerProfile(in ports.UpdateEmployerProfileInput) error {
	switch {
	case in.Name == "":
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	case in.Description == "":
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	case !slices.Contains(domain.OrganizationTypes, in.OrganizationType):
		return fmt.Errorf("%w: organization type must be one of: %s", domain.ErrValidation, strings.Join(domain.OrganizationTypes, ", "))
	case !slices.Contains(domain.TeamSizes, in.TeamSize):
		return fmt.Errorf("%w: team size must be one of: %s", domain.ErrValidation, strings.Join(domain.TeamSizes, ", "))
	}
	if in.YearOfEstablishment != nil {
		year := *in.YearOfEstablishment
		if year < 1800 || year > time.Now().Year() {
			return fmt.Errorf("%w: year of establishment is out of range", domain.ErrValidation)
		}
	}
	return nil
}

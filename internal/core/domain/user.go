package domain

import "time"

const (
	RoleApplicant = "applicant"
	RoleEmployer  = "employer"
)

// ValidRole reports whether role is one of the two account types the portal
// supports. Role is fixed at registration and never changes afterwards.
func ValidRole(role string) bool {
	return role == RoleApplicant || role == RoleEmployer
}

// User models a registered account. Email and UserName are globally unique;
// PasswordHash is the argon2id record and is never serialised to clients.
type User struct {
	ID           string    `json:"id"`
	UserName     string    `json:"user_name"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OrganizationTypes and TeamSizes are the allowed values for the matching
// EmployerProfile fields.
var (
	OrganizationTypes = []string{"development", "design", "marketing", "sales", "hr", "finance"}
	TeamSizes         = []string{"1-10", "11-50", "51-200", "201-500", "501-1000", "1000+"}
)

// EmployerProfile is the one-to-one extension row for role=employer accounts.
// Its ID equals the owning User.ID. Created empty at registration and filled
// in later from the employer settings surface.
type EmployerProfile struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	OrganizationType    string    `json:"organization_type"`
	TeamSize            string    `json:"team_size"`
	Location            string    `json:"location"`
	WebsiteURL          string    `json:"website_url"`
	YearOfEstablishment *int      `json:"year_of_establishment"`
	BannerImageURL      string    `json:"banner_image_url"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Completed reports whether the profile carries enough detail to be shown to
// applicants: name, description, organization type and year of establishment
// must all be set.
func (p *EmployerProfile) Completed() bool {
	return p.Name != "" &&
		p.Description != "" &&
		p.OrganizationType != "" &&
		p.YearOfEstablishment != nil
}

// ApplicantProfile is the one-to-one extension row for role=applicant
// accounts. It carries no fields beyond the linkage today.
type ApplicantProfile struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

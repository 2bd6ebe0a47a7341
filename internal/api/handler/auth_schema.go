package handler

import "github.com/jobdesk/portal-api/internal/core/domain"

type registerRequest struct {
	UserName        string `json:"user_name"        validate:"required,min=3,max=50"`
	Name            string `json:"name"             validate:"required,max=100"`
	Email           string `json:"email"            validate:"required,email"`
	Password        string `json:"password"         validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	Role            string `json:"role"             validate:"required,oneof=applicant employer"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// statusResponse is the uniform {status, message} shape every flow returns;
// User rides along on successful logins and /me.
type statusResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message,omitempty"`
	User    *domain.User `json:"user,omitempty"`
}

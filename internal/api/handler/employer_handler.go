package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jobdesk/portal-api/internal/core/ports"
)

type EmployerHandler struct {
	employers ports.EmployerService
}

func NewEmployerHandler(employers ports.EmployerService) *EmployerHandler {
	return &EmployerHandler{employers: employers}
}

type employerProfileRequest struct {
	Name                string `json:"name"                  validate:"required,max=100"`
	Description         string `json:"description"           validate:"required"`
	OrganizationType    string `json:"organization_type"     validate:"required,oneof=development design marketing sales hr finance"`
	TeamSize            string `json:"team_size"             validate:"required,oneof=1-10 11-50 51-200 201-500 501-1000 1000+"`
	Location            string `json:"location"              validate:"omitempty,max=100"`
	WebsiteURL          string `json:"website_url"           validate:"omitempty,url"`
	YearOfEstablishment *int   `json:"year_of_establishment" validate:"omitempty"`
	BannerImageURL      string `json:"banner_image_url"      validate:"omitempty,url"`
}

type employerDetailsResponse struct {
	Status  string                 `json:"status"`
	Details *ports.EmployerDetails `json:"details"`
}

// Details returns the caller's employer profile with its completeness flag.
//
// @Summary      Employer profile details
// @Tags         employer
// @Produce      json
// @Success      200  {object}  employerDetailsResponse
// @Failure      404  {object}  statusResponse
// @Router       /employer/profile [get]
func (h *EmployerHandler) Details(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	details, err := h.employers.Details(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, employerDetailsResponse{Status: "success", Details: details})
}

// UpdateProfile persists the employer settings form.
//
// @Summary      Update employer profile
// @Tags         employer
// @Accept       json
// @Produce      json
// @Param        body  body      employerProfileRequest  true  "Profile fields"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  statusResponse
// @Failure      404   {object}  statusResponse
// @Router       /employer/profile [put]
func (h *EmployerHandler) UpdateProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req employerProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = h.employers.UpdateProfile(c.Request().Context(), user.ID, ports.UpdateEmployerProfileInput{
		Name:                req.Name,
		Description:         req.Description,
		OrganizationType:    req.OrganizationType,
		TeamSize:            req.TeamSize,
		Location:            req.Location,
		WebsiteURL:          req.WebsiteURL,
		YearOfEstablishment: req.YearOfEstablishment,
		BannerImageURL:      req.BannerImageURL,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, statusResponse{
		Status:  "success",
		Message: "Profile updated successfully",
	})
}

package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jobdesk/portal-api/internal/api"
	"github.com/jobdesk/portal-api/internal/api/handler"
	"github.com/jobdesk/portal-api/internal/core/domain"
	"github.com/jobdesk/portal-api/internal/core/ports"
)

type stubEmployerService struct {
	detailsFn func(ctx context.Context, userID string) (*ports.EmployerDetails, error)
	updateFn  func(ctx context.Context, userID string, in ports.UpdateEmployerProfileInput) error
}

func (s *stubEmployerService) Details(ctx context.Context, userID string) (*ports.EmployerDetails, error) {
	return s.detailsFn(ctx, userID)
}

func (s *stubEmployerService) UpdateProfile(ctx context.Context, userID string, in ports.UpdateEmployerProfileInput) error {
	return s.updateFn(ctx, userID, in)
}

func employerContext(t *testing.T, method, target, body string) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(handler.ContextUserKey, &domain.User{ID: "emp-1", Role: domain.RoleEmployer})
	return e, c, rec
}

func TestEmployerHandler_Details(t *testing.T) {
	year := 2015
	svc := &stubEmployerService{
		detailsFn: func(_ context.Context, userID string) (*ports.EmployerDetails, error) {
			if userID != "emp-1" {
				t.Fatalf("unexpected user id %q", userID)
			}
			return &ports.EmployerDetails{
				Profile: &domain.EmployerProfile{
					ID:                  userID,
					Name:                "Acme Corp",
					Description:         "We build things",
					OrganizationType:    "development",
					YearOfEstablishment: &year,
				},
				ProfileCompleted: true,
			}, nil
		},
	}
	h := handler.NewEmployerHandler(svc)

	e, c, rec := employerContext(t, http.MethodGet, "/employer/profile", "")
	if err := h.Details(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"profile_completed":true`) {
		t.Fatalf("expected completeness flag, got %s", rec.Body.String())
	}
}

func TestEmployerHandler_Details_NotFound(t *testing.T) {
	svc := &stubEmployerService{
		detailsFn: func(_ context.Context, _ string) (*ports.EmployerDetails, error) {
			return nil, domain.ErrProfileNotFound
		},
	}
	h := handler.NewEmployerHandler(svc)

	e, c, rec := employerContext(t, http.MethodGet, "/employer/profile", "")
	if err := h.Details(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestEmployerHandler_UpdateProfile(t *testing.T) {
	var got ports.UpdateEmployerProfileInput
	svc := &stubEmployerService{
		updateFn: func(_ context.Context, userID string, in ports.UpdateEmployerProfileInput) error {
			if userID != "emp-1" {
				t.Fatalf("unexpected user id %q", userID)
			}
			got = in
			return nil
		},
	}
	h := handler.NewEmployerHandler(svc)

	body := `{
		"name": "Acme Corp",
		"description": "We build things",
		"organization_type": "development",
		"team_size": "11-50",
		"location": "Berlin",
		"website_url": "https://acme.example.com",
		"year_of_establishment": 2015
	}`
	e, c, rec := employerContext(t, http.MethodPut, "/employer/profile", body)
	if err := h.UpdateProfile(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.Name != "Acme Corp" || got.TeamSize != "11-50" {
		t.Fatalf("unexpected input forwarded: %+v", got)
	}
	if got.YearOfEstablishment == nil || *got.YearOfEstablishment != 2015 {
		t.Fatalf("expected year 2015, got %v", got.YearOfEstablishment)
	}
}

func TestEmployerHandler_UpdateProfile_Validation(t *testing.T) {
	svc := &stubEmployerService{
		updateFn: func(_ context.Context, _ string, _ ports.UpdateEmployerProfileInput) error {
			t.Fatalf("service must not be reached on invalid input")
			return nil
		},
	}
	h := handler.NewEmployerHandler(svc)

	cases := []string{
		`{"description":"d","organization_type":"development","team_size":"11-50"}`,        // missing name
		`{"name":"Acme","description":"d","organization_type":"bakery","team_size":"1-10"}`, // bad org type
		`{"name":"Acme","description":"d","organization_type":"design","team_size":"42"}`,   // bad team size
		`{"name":"Acme","description":"d","organization_type":"design","team_size":"1-10","website_url":"not a url"}`,
	}
	for _, body := range cases {
		e, c, rec := employerContext(t, http.MethodPut, "/employer/profile", body)
		if err := h.UpdateProfile(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", body, rec.Code)
		}
	}
}

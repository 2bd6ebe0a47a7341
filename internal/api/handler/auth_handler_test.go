package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jobdesk/portal-api/internal/api"
	"github.com/jobdesk/portal-api/internal/api/handler"
	"github.com/jobdesk/portal-api/internal/core/domain"
	"github.com/jobdesk/portal-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, in ports.LoginInput) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, in ports.LoginInput) (*domain.User, error) {
	return s.loginFn(ctx, in)
}

type stubSessionService struct {
	issueFn      func(ctx context.Context, userID, userAgent, ip string) (string, error)
	invalidated  []string
	invalidateMu sync.Mutex
}

func (s *stubSessionService) Issue(ctx context.Context, userID, userAgent, ip string) (string, error) {
	if s.issueFn != nil {
		return s.issueFn(ctx, userID, userAgent, ip)
	}
	return "raw-token-123", nil
}

func (s *stubSessionService) Resolve(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrSessionNotFound
}

func (s *stubSessionService) Invalidate(_ context.Context, rawToken string) error {
	s.invalidateMu.Lock()
	defer s.invalidateMu.Unlock()
	s.invalidated = append(s.invalidated, rawToken)
	return nil
}

type stubSink struct {
	events []domain.AuthEvent
}

func (s *stubSink) Enqueue(event domain.AuthEvent) {
	s.events = append(s.events, event)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	return e
}

func newAuthHandler(auth ports.AuthService, sessions ports.SessionService, sink *stubSink) *handler.AuthHandler {
	return handler.NewAuthHandler(auth, sessions, sink, handler.CookieSettings{
		Secure:   true,
		Lifetime: time.Hour,
	}, "/login", zerolog.Nop())
}

func doJSON(e *echo.Echo, h echo.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	res := &http.Response{Header: rec.Header()}
	for _, cookie := range res.Cookies() {
		if cookie.Name == handler.SessionCookieName {
			return cookie
		}
	}
	return nil
}

const validRegisterBody = `{
	"user_name": "alice",
	"name": "Alice Doe",
	"email": "alice@example.com",
	"password": "pass12345",
	"confirm_password": "pass12345",
	"role": "employer"
}`

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newEcho()
	sessions := &stubSessionService{}
	sink := &stubSink{}
	auth := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.UserName != "alice" || in.Role != domain.RoleEmployer {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "u1", UserName: in.UserName, Email: in.Email, Role: in.Role}, nil
		},
	}
	h := newAuthHandler(auth, sessions, sink)

	rec := doJSON(e, h.Register, http.MethodPost, "/auth/register", validRegisterBody)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "success" {
		t.Fatalf("expected success status, got %v", resp["status"])
	}
	if _, leaked := resp["user"]; leaked {
		t.Fatalf("registration response must not carry user data")
	}

	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatalf("expected session cookie")
	}
	if cookie.Value != "raw-token-123" {
		t.Fatalf("cookie must carry the raw token, got %q", cookie.Value)
	}
	if !cookie.HttpOnly || !cookie.Secure {
		t.Fatalf("session cookie must be HttpOnly and Secure")
	}
	if cookie.MaxAge != 3600 {
		t.Fatalf("cookie Max-Age must equal the session lifetime, got %d", cookie.MaxAge)
	}

	if len(sink.events) != 1 || sink.events[0].Type != domain.EventUserRegistered {
		t.Fatalf("expected a user_registered event, got %+v", sink.events)
	}
}

func TestAuthHandler_Register_PasswordMismatch(t *testing.T) {
	e := newEcho()
	called := false
	auth := &stubAuthService{
		registerFn: func(_ context.Context, _ ports.RegisterInput) (*domain.User, error) {
			called = true
			return nil, nil
		},
	}
	h := newAuthHandler(auth, &stubSessionService{}, &stubSink{})

	body := strings.Replace(validRegisterBody, `"confirm_password": "pass12345"`, `"confirm_password": "different"`, 1)
	rec := doJSON(e, h.Register, http.MethodPost, "/auth/register", body)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if called {
		t.Fatalf("mismatched passwords must fail before the service is reached")
	}
	if !strings.Contains(rec.Body.String(), "passwords do not match") {
		t.Fatalf("expected mismatch message, got %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_Conflicts(t *testing.T) {
	cases := []struct {
		err     error
		message string
	}{
		{domain.ErrEmailTaken, "Email already in use"},
		{domain.ErrUserNameTaken, "Username already in use"},
	}
	for _, tc := range cases {
		e := newEcho()
		auth := &stubAuthService{
			registerFn: func(_ context.Context, _ ports.RegisterInput) (*domain.User, error) {
				return nil, tc.err
			},
		}
		h := newAuthHandler(auth, &stubSessionService{}, &stubSink{})

		rec := doJSON(e, h.Register, http.MethodPost, "/auth/register", validRegisterBody)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409 for %v, got %d", tc.err, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), tc.message) {
			t.Fatalf("expected %q, got %s", tc.message, rec.Body.String())
		}
		if sessionCookie(rec) != nil {
			t.Fatalf("conflict must not set a session cookie")
		}
	}
}

func TestAuthHandler_Register_UnexpectedErrorCollapsed(t *testing.T) {
	e := newEcho()
	auth := &stubAuthService{
		registerFn: func(_ context.Context, _ ports.RegisterInput) (*domain.User, error) {
			return nil, errors.New("mongo: socket was unexpectedly closed")
		},
	}
	h := newAuthHandler(auth, &stubSessionService{}, &stubSink{})

	rec := doJSON(e, h.Register, http.MethodPost, "/auth/register", validRegisterBody)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "mongo") {
		t.Fatalf("internal detail leaked: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Registration failed") {
		t.Fatalf("expected generic message, got %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_SessionFailureStillSucceeds(t *testing.T) {
	e := newEcho()
	auth := &stubAuthService{
		registerFn: func(_ context.Context, _ ports.RegisterInput) (*domain.User, error) {
			return &domain.User{ID: "u1", Role: domain.RoleApplicant}, nil
		},
	}
	sessions := &stubSessionService{
		issueFn: func(_ context.Context, _, _, _ string) (string, error) {
			return "", errors.New("session store down")
		},
	}
	h := newAuthHandler(auth, sessions, &stubSink{})

	rec := doJSON(e, h.Register, http.MethodPost, "/auth/register", validRegisterBody)

	if rec.Code != http.StatusCreated {
		t.Fatalf("registration must survive a session failure, got %d", rec.Code)
	}
	if sessionCookie(rec) != nil {
		t.Fatalf("no cookie must be set when issuance fails")
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho()
	sink := &stubSink{}
	auth := &stubAuthService{
		loginFn: func(_ context.Context, in ports.LoginInput) (*domain.User, error) {
			if in.Email != "alice@example.com" || in.Password != "pass12345" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "u1", UserName: "alice", Email: in.Email, Role: domain.RoleApplicant}, nil
		},
	}
	h := newAuthHandler(auth, &stubSessionService{}, sink)

	rec := doJSON(e, h.Login, http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"pass12345"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["user_name"] != "alice" {
		t.Fatalf("expected sanitized user payload, got %v", resp["user"])
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash leaked in response")
	}

	if cookie := sessionCookie(rec); cookie == nil || cookie.Value == "" {
		t.Fatalf("expected session cookie")
	}
	if len(sink.events) != 1 || sink.events[0].Type != domain.EventLoginSucceeded {
		t.Fatalf("expected a login_succeeded event, got %+v", sink.events)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newEcho()
	auth := &stubAuthService{
		loginFn: func(_ context.Context, _ ports.LoginInput) (*domain.User, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := newAuthHandler(auth, &stubSessionService{}, &stubSink{})

	wrongPass := doJSON(e, h.Login, http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"bad"}`)
	unknown := doJSON(e, h.Login, http.MethodPost, "/auth/login", `{"email":"ghost@example.com","password":"bad"}`)

	if wrongPass.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401s, got %d and %d", wrongPass.Code, unknown.Code)
	}
	// The two failure modes must be indistinguishable on the wire.
	if wrongPass.Body.String() != unknown.Body.String() {
		t.Fatalf("credential failures must be identical: %s vs %s", wrongPass.Body.String(), unknown.Body.String())
	}
	if sessionCookie(wrongPass) != nil {
		t.Fatalf("failed login must not set a session cookie")
	}
}

func TestAuthHandler_Login_Throttled(t *testing.T) {
	e := newEcho()
	auth := &stubAuthService{
		loginFn: func(_ context.Context, _ ports.LoginInput) (*domain.User, error) {
			return nil, domain.ErrTooManyAttempts
		},
	}
	h := newAuthHandler(auth, &stubSessionService{}, &stubSink{})

	rec := doJSON(e, h.Login, http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"bad"}`)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := newEcho()
	auth := &stubAuthService{
		loginFn: func(_ context.Context, _ ports.LoginInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := newAuthHandler(auth, &stubSessionService{}, &stubSink{})

	if rec := doJSON(e, h.Login, http.MethodPost, "/auth/login", "{"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed json, got %d", rec.Code)
	}
	if rec := doJSON(e, h.Login, http.MethodPost, "/auth/login", `{"email":"not-an-email","password":"x"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid email, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout_WithSession(t *testing.T) {
	e := newEcho()
	sessions := &stubSessionService{}
	h := newAuthHandler(&stubAuthService{}, sessions, &stubSink{})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: handler.SessionCookieName, Value: "raw-token-123"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
	if len(sessions.invalidated) != 1 || sessions.invalidated[0] != "raw-token-123" {
		t.Fatalf("expected session invalidation, got %v", sessions.invalidated)
	}
	cookie := sessionCookie(rec)
	if cookie == nil || cookie.MaxAge >= 0 || cookie.Value != "" {
		t.Fatalf("expected cleared cookie, got %+v", cookie)
	}
}

func TestAuthHandler_Logout_WithoutSession(t *testing.T) {
	e := newEcho()
	sessions := &stubSessionService{}
	h := newAuthHandler(&stubAuthService{}, sessions, &stubSink{})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	// Already logged out is not an error: same redirect, nothing invalidated.
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if len(sessions.invalidated) != 0 {
		t.Fatalf("nothing to invalidate without a cookie")
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := newEcho()
	h := newAuthHandler(&stubAuthService{}, &stubSessionService{}, &stubSink{})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(handler.ContextUserKey, &domain.User{ID: "u1", UserName: "alice", Role: domain.RoleEmployer})

	if err := h.Me(c); err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"alice"`) {
		t.Fatalf("expected user payload, got %s", rec.Body.String())
	}
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	e := newEcho()
	h := newAuthHandler(&stubAuthService{}, &stubSessionService{}, &stubSink{})

	rec := doJSON(e, h.Me, http.MethodGet, "/me", "")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

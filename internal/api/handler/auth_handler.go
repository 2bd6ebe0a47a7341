package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jobdesk/portal-api/internal/api/metrics"
	"github.com/jobdesk/portal-api/internal/core/domain"
	"github.com/jobdesk/portal-api/internal/core/ports"
)

// SessionCookieName is the cookie carrying the raw session token.
const SessionCookieName = "session"

// EventSink receives auth events for the audit trail. Enqueue must not block.
type EventSink interface {
	Enqueue(event domain.AuthEvent)
}

// CookieSettings controls the session cookie attributes.
type CookieSettings struct {
	Secure   bool
	Lifetime time.Duration
}

type AuthHandler struct {
	auth     ports.AuthService
	sessions ports.SessionService
	events   EventSink
	cookies  CookieSettings
	loginURL string
	log      zerolog.Logger
}

func NewAuthHandler(
	auth ports.AuthService,
	sessions ports.SessionService,
	events EventSink,
	cookies CookieSettings,
	loginURL string,
	log zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		sessions: sessions,
		events:   events,
		cookies:  cookies,
		loginURL: loginURL,
		log:      log,
	}
}

// Register creates a new account with its role profile and logs it in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  statusResponse
// @Failure      400   {object}  statusResponse
// @Failure      409   {object}  statusResponse
// @Failure      500   {object}  statusResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		UserName: req.UserName,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		if expectedAuthError(err) {
			return err
		}
		h.log.Error().Err(err).Msg("registration failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "Registration failed")
	}

	metrics.UsersRegisteredTotal.WithLabelValues(user.Role).Inc()
	h.record(c, domain.EventUserRegistered, user.ID, user.Email)

	// Session issuance sits outside the registration transaction on purpose:
	// the account exists either way, and a failed session only means the
	// user logs in manually.
	h.startSession(c, user.ID)

	return c.JSON(http.StatusCreated, statusResponse{
		Status:  "success",
		Message: "User registered successfully",
	})
}

// Login verifies credentials and starts a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  statusResponse
// @Failure      401   {object}  statusResponse
// @Failure      429   {object}  statusResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.auth.Login(c.Request().Context(), ports.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		IP:       c.RealIP(),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			h.record(c, domain.EventLoginFailed, "", req.Email)
		case errors.Is(err, domain.ErrTooManyAttempts):
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		default:
			h.log.Error().Err(err).Msg("login failed")
			return echo.NewHTTPError(http.StatusInternalServerError, "Login failed")
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.record(c, domain.EventLoginSucceeded, user.ID, user.Email)
	h.startSession(c, user.ID)

	return c.JSON(http.StatusOK, statusResponse{
		Status:  "success",
		Message: "Login successful",
		User:    user,
	})
}

// Logout invalidates the current session and sends the client back to the
// login surface. A missing cookie means already-logged-out, not an error.
//
// @Summary      Logout
// @Tags         auth
// @Success      303
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return c.Redirect(http.StatusSeeOther, h.loginURL)
	}

	if err := h.sessions.Invalidate(c.Request().Context(), cookie.Value); err != nil {
		// The cookie is cleared regardless; a stale row falls to the TTL.
		h.log.Warn().Err(err).Msg("session invalidation failed")
	} else {
		metrics.SessionsRevokedTotal.Inc()
	}

	h.record(c, domain.EventLoggedOut, "", "")
	h.clearSessionCookie(c)
	return c.Redirect(http.StatusSeeOther, h.loginURL)
}

// Me returns the authenticated user. Guarded by the session middleware.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  statusResponse
// @Failure      401  {object}  statusResponse
// @Router       /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "success", User: user})
}

// startSession issues a session for userID and delivers the raw token as the
// session cookie. Issuance failures are logged and swallowed: the auth flow
// itself already succeeded.
func (h *AuthHandler) startSession(c echo.Context, userID string) {
	token, err := h.sessions.Issue(
		c.Request().Context(),
		userID,
		c.Request().UserAgent(),
		c.RealIP(),
	)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("session issuance failed")
		return
	}

	metrics.SessionsIssuedTotal.Inc()
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookies.Lifetime.Seconds()),
		Secure:   h.cookies.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   h.cookies.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) record(c echo.Context, eventType, userID, email string) {
	if h.events == nil {
		return
	}
	h.events.Enqueue(domain.AuthEvent{
		Type:      eventType,
		UserID:    userID,
		Email:     email,
		IP:        c.RealIP(),
		UserAgent: c.Request().UserAgent(),
		At:        time.Now().UTC(),
	})
}

// expectedAuthError reports whether err is a flow outcome with its own
// client-facing mapping, as opposed to an internal failure.
func expectedAuthError(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrEmailTaken) ||
		errors.Is(err, domain.ErrUserNameTaken)
}

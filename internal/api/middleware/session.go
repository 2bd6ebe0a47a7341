package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jobdesk/portal-api/internal/api/metrics"
	"github.com/jobdesk/portal-api/internal/core/domain"
	"github.com/jobdesk/portal-api/internal/core/ports"
)

// Keys shared with the handler package (handler.SessionCookieName and
// handler.ContextUserKey carry the same values).
const (
	sessionCookieName = "session"
	contextUserKey    = "auth_user"
)

// RequireSession resolves the session cookie to a user and injects it into
// the request context. No session — missing cookie, unknown token, expired
// row — redirects to the login surface; the guard decides navigation, the
// session service only reports user-or-none.
func RequireSession(sessions ports.SessionService, loginURL string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				metrics.SessionResolveDuration.WithLabelValues("none").Observe(0)
				return c.Redirect(http.StatusSeeOther, loginURL)
			}

			start := time.Now()
			user, err := sessions.Resolve(c.Request().Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) {
					metrics.SessionResolveDuration.WithLabelValues("none").Observe(time.Since(start).Seconds())
					return c.Redirect(http.StatusSeeOther, loginURL)
				}
				return err
			}

			metrics.SessionResolveDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
			c.Set(contextUserKey, user)
			return next(c)
		}
	}
}

// RequireRole redirects authenticated users whose role does not match to the
// fallback surface (e.g. a non-employer hitting the employer area lands on
// the generic dashboard). Must run after RequireSession.
func RequireRole(role, fallbackURL string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(contextUserKey).(*domain.User)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authenticated user")
			}
			if user.Role != role {
				return c.Redirect(http.StatusSeeOther, fallbackURL)
			}
			return next(c)
		}
	}
}

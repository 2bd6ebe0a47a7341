package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jobdesk/portal-api/internal/core/domain"
)

// ContextUserKey is where the session middleware stores the resolved user.
const ContextUserKey = "auth_user"

// currentUser extracts the user injected by the session middleware. Presence
// proves the middleware ran; a protected handler reached without it is a
// wiring bug surfaced as 401 rather than a panic.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(ContextUserKey).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authenticated user")
	}
	return user, nil
}

package ports

import (
	"context"

	"github.com/jobdesk/portal-api/internal/core/domain"
)

// SessionService manages the session lifecycle. Issue returns the raw token
// for cookie delivery; only its hash is ever stored. Resolve returns
// domain.ErrSessionNotFound for absent, invalidated and expired sessions
// alike. Invalidate is idempotent.
type SessionService interface {
	Issue(ctx context.Context, userID, userAgent, ip string) (string, error)
	Resolve(ctx context.Context, rawToken string) (*domain.User, error)
	Invalidate(ctx context.Context, rawToken string) error
}

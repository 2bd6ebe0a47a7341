package ports

import (
	"context"
	"time"

	"github.com/jobdesk/portal-api/internal/core/domain"
)

// SessionRepository persists login sessions keyed by the token's storage
// hash. Delete is idempotent: deleting an absent session is not an error.
type SessionRepository interface {
	Insert(ctx context.Context, session *domain.Session) error
	// FindWithUser resolves a session by its storage hash together with the
	// owning user. Returns domain.ErrSessionNotFound when no row matches.
	FindWithUser(ctx context.Context, id string) (*domain.Session, *domain.User, error)
	UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error
	Delete(ctx context.Context, id string) error
}

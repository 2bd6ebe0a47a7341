package ports

import (
	"context"

	"github.com/jobdesk/portal-api/internal/core/domain"
)

// AuditRepository appends entries to the authentication audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuthEvent) error
}

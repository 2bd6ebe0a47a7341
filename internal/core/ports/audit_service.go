package ports

import (
	"context"

	"github.com/jobdesk/portal-api/internal/core/domain"
)

// AuditService consumes auth events off the dispatcher and persists them.
type AuditService interface {
	Record(ctx context.Context, event domain.AuthEvent) error
}

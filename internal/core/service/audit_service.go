package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jobdesk/portal-api/internal/core/domain"
	"github.com/jobdesk/portal-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns the audit-trail sink consumed by the dispatcher.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Record persists one auth event. Events never carry credentials or raw
// session tokens, only actor identity and request metadata.
func (s *auditService) Record(ctx context.Context, event domain.AuthEvent) error {
	if event.Type == "" {
		return fmt.Errorf("%w: event type is required", domain.ErrValidation)
	}
	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("record auth event: %w", err)
	}
	s.log.Debug().Str("type", event.Type).Str("user_id", event.UserID).Msg("auth event recorded")
	return nil
}

package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sssf/cats-api/internal/core/domain"
	"github.com/sssf/cats-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns the AuditService that persists verdicts drained
// from the dispatcher.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single verdict. Denials are also logged so they show
// up without querying the audit collection.
func (s *auditService) Process(ctx context.Context, ev domain.AuditEvent) error {
	if !ev.Allowed {
		s.log.Warn().
			Str("action", string(ev.Action)).
			Int64("actor_id", ev.ActorID).
			Int64("target_id", ev.TargetID).
			Str("reason", ev.Reason).
			Msg("authorization denied")
	}

	if err := s.repo.InsertEvent(ctx, ev); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

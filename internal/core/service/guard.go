package service

import (
	"time"

	"github.com/sssf/cats-api/internal/core/domain"
	"github.com/sssf/cats-api/internal/core/ports"
)

// guard runs domain.Authorize and hands every verdict to the audit
// recorder. Services never check roles or ownership themselves.
type guard struct {
	audit ports.AuditRecorder
	now   func() time.Time
}

func newGuard(audit ports.AuditRecorder) guard {
	return guard{audit: audit, now: time.Now}
}

func (g guard) authorize(principal *domain.Identity, action domain.Action, target *domain.Target) error {
	verdict := domain.Authorize(principal, action, target)
	if g.audit != nil {
		g.audit.Record(domain.NewAuditEvent(principal, action, target, verdict, g.now()))
	}
	return verdict
}

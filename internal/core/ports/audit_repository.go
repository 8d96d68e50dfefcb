package ports

import (
	"context"

	"github.com/sssf/cats-api/internal/core/domain"
)

// AuditRepository persists authorization verdicts.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event domain.AuditEvent) error
}

// AuditRecorder accepts verdicts for asynchronous persistence. Record must
// not block the request path on storage.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// AuditService writes a single audit event.
type AuditService interface {
	Process(ctx context.Context, event domain.AuditEvent) error
}

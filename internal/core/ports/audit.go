package ports

import (
	"context"

	"github.com/ashkelon/forum/internal/core/domain"
)

// AuditRepository stores moderation events.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuditEvent) error
}

// AuditRecorder accepts moderation events for asynchronous persistence.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

package ports

import (
	"context"

	"github.com/greencode/platform/internal/core/domain"
)

// AuditRecorder persists audit events. The dispatcher implements it
// asynchronously in front of the real store; recording failures are logged,
// never surfaced to the caller.
type AuditRecorder interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}

package domain

import "time"

// AuditEvent is an insert-only observability record emitted by the auth core.
// It is a side channel: failing to record one never fails the operation.
type AuditEvent struct {
	Actor     string    // user id, or the submitted login name when unknown
	Action    string    // e.g. "login", "refresh", "register"
	Outcome   string    // "success" or a coarse failure reason
	Timestamp time.Time
}

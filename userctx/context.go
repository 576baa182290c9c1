package userctx

import (
	"context"
	"sync"
)

// Context key type
type contextKey string

const actorKey contextKey = "actor"
const auditKey contextKey = "audit_action"

// AnonymousActor is reported when no admin is signed in
const AnonymousActor = "anonymous"

// AdminActor identifies the password-gated admin
const AdminActor = "admin"

// SetActor adds the acting identity to request context
func SetActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor retrieves the acting identity from request context
func GetActor(ctx context.Context) string {
	actor, ok := ctx.Value(actorKey).(string)
	if !ok || actor == "" {
		return AnonymousActor
	}
	return actor
}

// auditSlot is filled by a handler and read by the audit middleware once the handler returns
type auditSlot struct {
	mu     sync.Mutex
	action string
	actor  string
}

// WithAuditSlot prepares ctx to receive an audit action
func WithAuditSlot(ctx context.Context) context.Context {
	return context.WithValue(ctx, auditKey, &auditSlot{})
}

// RecordAuditAction marks the request as auditable. actor overrides the
// context actor when the request changed it, as login and logout do.
// It is a no-op without an audit slot.
func RecordAuditAction(ctx context.Context, action, actor string) {
	slot, ok := ctx.Value(auditKey).(*auditSlot)
	if !ok {
		return
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()
	slot.action = action
	slot.actor = actor
}

// AuditAction returns the recorded action and actor, if any
func AuditAction(ctx context.Context) (action, actor string, ok bool) {
	slot, found := ctx.Value(auditKey).(*auditSlot)
	if !found {
		return "", "", false
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()
	if slot.action == "" {
		return "", "", false
	}
	actor = slot.actor
	if actor == "" {
		actor = GetActor(ctx)
	}
	return slot.action, actor, true
}

package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/blogem/campus-feedback/models"
	"github.com/blogem/campus-feedback/userctx"
)

// AuditRecorder stores admin audit entries
type AuditRecorder interface {
	RecordAudit(ctx context.Context, entry *models.AuditLogEntry) error
}

// auditWriteTimeout bounds the detached audit write
const auditWriteTimeout = 5 * time.Second

// AuditLogger records the audit action a handler marked via userctx.RecordAuditAction
func AuditLogger(recorder AuditRecorder, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := userctx.WithAuditSlot(r.Context())
			next.ServeHTTP(w, r.WithContext(ctx))

			action, actor, ok := userctx.AuditAction(ctx)
			if !ok {
				return
			}

			entry := &models.AuditLogEntry{
				Timestamp: time.Now(),
				Actor:     actor,
				Action:    action,
				Method:    r.Method,
				Path:      r.URL.Path,
				UserAgent: r.UserAgent(),
				IPAddress: ClientIP(r),
			}

			// Log asynchronously to avoid blocking request
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
				defer cancel()
				if err := recorder.RecordAudit(ctx, entry); err != nil {
					logger.Error("Failed to create audit log",
						zap.String("action", entry.Action),
						zap.Error(err),
					)
				}
			}()
		})
	}
}

// ClientIP returns the IP of the connected peer. Forwarded headers are
// client-controlled and ignored here; behind a trusted proxy the router
// rewrites RemoteAddr first.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}

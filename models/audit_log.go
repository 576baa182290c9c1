package models

import "time"

// Admin audit actions
const (
	AuditActionLogin       = "login"
	AuditActionLoginFailed = "login_failed"
	AuditActionLogout      = "logout"
	AuditActionExport      = "export"
)

// AuditLogEntry represents a single admin access event
type AuditLogEntry struct {
	ID        int64
	Timestamp time.Time
	Actor     string
	Action    string
	Method    string
	Path      string
	UserAgent string
	IPAddress string
}

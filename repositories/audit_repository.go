package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/blogem/campus-feedback/models"
)

// AuditRepository handles admin audit log persistence
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLogEntry) error
	Recent(ctx context.Context, limit int) ([]models.AuditLogEntry, error)
}

type sqliteAuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new SQLite audit repository
func NewAuditRepository(db *sql.DB) AuditRepository {
	return &sqliteAuditRepository{db: db}
}

// Create inserts a new audit log entry
func (r *sqliteAuditRepository) Create(ctx context.Context, entry *models.AuditLogEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	query := `
		INSERT INTO audit_log (timestamp, actor, action, method, path, user_agent, ip_address)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		entry.Timestamp,
		entry.Actor,
		entry.Action,
		entry.Method,
		entry.Path,
		entry.UserAgent,
		entry.IPAddress,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit log entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get audit log entry ID: %w", err)
	}
	entry.ID = id

	return nil
}

// Recent returns up to limit entries, newest first
func (r *sqliteAuditRepository) Recent(ctx context.Context, limit int) ([]models.AuditLogEntry, error) {
	query := `
		SELECT id, timestamp, actor, action, method, path, user_agent, ip_address
		FROM audit_log
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	var entries []models.AuditLogEntry
	for rows.Next() {
		var entry models.AuditLogEntry
		var userAgent, ipAddress sql.NullString

		if err := rows.Scan(&entry.ID, &entry.Timestamp, &entry.Actor, &entry.Action, &entry.Method, &entry.Path, &userAgent, &ipAddress); err != nil {
			return nil, fmt.Errorf("failed to scan audit log entry: %w", err)
		}

		// Convert NULL values to empty string
		entry.UserAgent = userAgent.String
		entry.IPAddress = ipAddress.String

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit log: %w", err)
	}

	return entries, nil
}

type memoryAuditRepository struct {
	mu      sync.RWMutex
	entries []models.AuditLogEntry
}

// NewMemoryAuditRepository creates an in-process audit repository
func NewMemoryAuditRepository() AuditRepository {
	return &memoryAuditRepository{}
}

// Create appends the entry
func (r *memoryAuditRepository) Create(_ context.Context, entry *models.AuditLogEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = int64(len(r.entries) + 1)
	r.entries = append(r.entries, *entry)
	return nil
}

// Recent returns up to limit entries, newest first
func (r *memoryAuditRepository) Recent(_ context.Context, limit int) ([]models.AuditLogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.AuditLogEntry
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}

package repositories

import (
	"database/sql"
)

// Repositories struct holds all repository interfaces
type Repositories struct {
	Feedback FeedbackRepository
	Audit    AuditRepository
}

// NewRepositories bundles a feedback store with an in-memory audit log
func NewRepositories(feedback FeedbackRepository) *Repositories {
	return &Repositories{
		Feedback: feedback,
		Audit:    NewMemoryAuditRepository(),
	}
}

// NewSQLiteRepositories creates SQLite-backed feedback and audit repositories
func NewSQLiteRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Feedback: NewSQLiteFeedbackRepository(db),
		Audit:    NewAuditRepository(db),
	}
}

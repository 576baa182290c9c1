package repositories

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/blogem/campus-feedback/models"
)

// FeedbackRepository is the append-only record store. List returns records
// in insertion order.
type FeedbackRepository interface {
	Append(ctx context.Context, record *models.FeedbackRecord) error
	List(ctx context.Context) ([]models.FeedbackRecord, error)
}

// memoryFeedbackRepository keeps records for the lifetime of the process
type memoryFeedbackRepository struct {
	mu      sync.RWMutex
	records []models.FeedbackRecord
}

// NewMemoryFeedbackRepository creates an in-process feedback store
func NewMemoryFeedbackRepository() FeedbackRepository {
	return &memoryFeedbackRepository{}
}

// Append stores a copy of the record
func (r *memoryFeedbackRepository) Append(ctx context.Context, record *models.FeedbackRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *record)
	return nil
}

// List returns a snapshot of all records
func (r *memoryFeedbackRepository) List(ctx context.Context) ([]models.FeedbackRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.FeedbackRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

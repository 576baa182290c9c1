package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/blogem/campus-feedback/models"
	"github.com/blogem/campus-feedback/repositories"
)

// AdminService interface defines the password-gated admin view logic
type AdminService interface {
	Records(ctx context.Context, filter models.AdminFilter) *AdminTable
	ExportCSV(ctx context.Context, w io.Writer, filter models.AdminFilter) (int, error)
	RecordAudit(ctx context.Context, entry *models.AuditLogEntry) error
	RecentAudit(ctx context.Context, limit int) ([]models.AuditLogEntry, error)
}

// AdminTable represents the filtered admin table
type AdminTable struct {
	Records  []models.FeedbackRecord
	Total    int
	Filter   models.AdminFilter
	Degraded bool
}

// Shown returns the number of rows that passed the filter
func (t *AdminTable) Shown() int {
	return len(t.Records)
}

type adminService struct {
	feedbackRepo repositories.FeedbackRepository
	auditRepo    repositories.AuditRepository
	logger       *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(feedbackRepo repositories.FeedbackRepository, auditRepo repositories.AuditRepository, logger *zap.Logger) AdminService {
	return &adminService{
		feedbackRepo: feedbackRepo,
		auditRepo:    auditRepo,
		logger:       logger,
	}
}

// Records returns the filtered and sorted table. A load failure degrades to an empty table.
func (s *adminService) Records(ctx context.Context, filter models.AdminFilter) *AdminTable {
	records, err := s.feedbackRepo.List(ctx)
	if err != nil {
		s.logger.Warn("Failed to load feedback for admin view", zap.Error(err))
		return &AdminTable{Filter: filter, Degraded: true}
	}

	return &AdminTable{
		Records: ApplyFilter(records, filter),
		Total:   len(records),
		Filter:  filter,
	}
}

// ExportCSV writes the filtered records as CSV with a header row and returns the number of data rows
func (s *adminService) ExportCSV(ctx context.Context, w io.Writer, filter models.AdminFilter) (int, error) {
	records, err := s.feedbackRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	records = ApplyFilter(records, filter)

	cw := csv.NewWriter(w)
	if err := cw.Write(models.FeedbackRowHeader); err != nil {
		return 0, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := range records {
		if err := cw.Write(records[i].Row()); err != nil {
			return i, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return len(records), fmt.Errorf("failed to flush CSV: %w", err)
	}

	return len(records), nil
}

// RecordAudit stores an admin audit log entry
func (s *adminService) RecordAudit(ctx context.Context, entry *models.AuditLogEntry) error {
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

// RecentAudit returns the newest audit log entries
func (s *adminService) RecentAudit(ctx context.Context, limit int) ([]models.AuditLogEntry, error) {
	return s.auditRepo.Recent(ctx, limit)
}

// ApplyFilter returns the records passing the filter, ordered by its sort
// column. Ties keep insertion order.
func ApplyFilter(records []models.FeedbackRecord, filter models.AdminFilter) []models.FeedbackRecord {
	out := make([]models.FeedbackRecord, 0, len(records))
	for i := range records {
		if filter.Matches(&records[i]) {
			out = append(out, records[i])
		}
	}

	cmp := compareBy(filter.SortBy)
	sort.SliceStable(out, func(i, j int) bool {
		if filter.Descending {
			return cmp(&out[j], &out[i]) < 0
		}
		return cmp(&out[i], &out[j]) < 0
	})

	return out
}

func compareBy(field models.SortField) func(a, b *models.FeedbackRecord) int {
	switch field {
	case models.SortByName:
		return func(a, b *models.FeedbackRecord) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	case models.SortByCategory:
		return func(a, b *models.FeedbackRecord) int {
			return indexOf(models.Categories, a.Category) - indexOf(models.Categories, b.Category)
		}
	case models.SortBySentiment:
		return func(a, b *models.FeedbackRecord) int {
			return indexOf(models.Sentiments, a.Sentiment) - indexOf(models.Sentiments, b.Sentiment)
		}
	case models.SortByScore:
		return func(a, b *models.FeedbackRecord) int {
			switch {
			case a.Score < b.Score:
				return -1
			case a.Score > b.Score:
				return 1
			}
			return 0
		}
	default:
		return func(a, b *models.FeedbackRecord) int {
			return a.Timestamp.Compare(b.Timestamp)
		}
	}
}

func indexOf[T comparable](list []T, v T) int {
	for i, item := range list {
		if item == v {
			return i
		}
	}
	return len(list)
}

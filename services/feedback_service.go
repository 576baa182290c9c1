package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/blogem/campus-feedback/metrics"
	"github.com/blogem/campus-feedback/models"
	"github.com/blogem/campus-feedback/repositories"
	"github.com/blogem/campus-feedback/sentiment"
)

// SummaryPublisher receives the fresh summary after every stored submission
type SummaryPublisher interface {
	Publish(summary *models.Summary)
}

// FeedbackService interface defines the submission and dashboard logic
type FeedbackService interface {
	Submit(ctx context.Context, form *models.FeedbackForm) (*models.FeedbackRecord, error)
	Dashboard(ctx context.Context) *DashboardData
	ClassifierName() string
}

// DashboardData represents data for the public dashboard view
type DashboardData struct {
	Summary    *models.Summary `json:"summary"`
	Degraded   bool            `json:"degraded"`
	Classifier string          `json:"classifier"`
}

// feedbackService implements FeedbackService interface
type feedbackService struct {
	repo       repositories.FeedbackRepository
	classifier sentiment.Classifier
	clock      clockwork.Clock
	publisher  SummaryPublisher
	metrics    *metrics.FeedbackMetrics
	logger     *zap.Logger
}

// NewFeedbackService creates a new feedback service. publisher may be nil.
func NewFeedbackService(
	repo repositories.FeedbackRepository,
	classifier sentiment.Classifier,
	clock clockwork.Clock,
	publisher SummaryPublisher,
	m *metrics.FeedbackMetrics,
	logger *zap.Logger,
) FeedbackService {
	return &feedbackService{
		repo:       repo,
		classifier: classifier,
		clock:      clock,
		publisher:  publisher,
		metrics:    m,
		logger:     logger,
	}
}

// ClassifierName returns the name of the configured classifier
func (s *feedbackService) ClassifierName() string {
	return s.classifier.Name()
}

// Submit validates, classifies and stores one feedback entry. Nothing is
// stored when validation or classification fails.
func (s *feedbackService) Submit(ctx context.Context, form *models.FeedbackForm) (*models.FeedbackRecord, error) {
	if form.IsBlank() {
		s.metrics.Failures.WithLabelValues(metrics.StageValidation).Inc()
		return nil, ErrEmptyFeedback
	}

	if errors := form.Validate(); len(errors) > 0 {
		s.metrics.Failures.WithLabelValues(metrics.StageValidation).Inc()
		return nil, fmt.Errorf("%w: %s", ErrInvalidFeedback, strings.Join(errors, ", "))
	}

	text := strings.TrimSpace(form.Feedback)

	start := s.clock.Now()
	result, err := s.classifier.Classify(ctx, text)
	s.metrics.ClassificationDuration.WithLabelValues(s.classifier.Name()).Observe(s.clock.Since(start).Seconds())
	if err != nil {
		s.metrics.Failures.WithLabelValues(metrics.StageClassification).Inc()
		s.logger.Error("Failed to classify feedback",
			zap.String("classifier", s.classifier.Name()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrClassification, err)
	}

	category, _ := models.ParseCategory(form.Category)
	record := &models.FeedbackRecord{
		Name:      form.DisplayName(),
		Category:  category,
		Text:      text,
		Sentiment: result.Label,
		Score:     result.Score,
		Timestamp: s.clock.Now().Truncate(time.Second),
	}

	if err := s.repo.Append(ctx, record); err != nil {
		s.metrics.Failures.WithLabelValues(metrics.StageStorage).Inc()
		s.logger.Error("Failed to store feedback", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	s.metrics.Submissions.WithLabelValues(string(record.Sentiment)).Inc()
	s.logger.Info("Feedback stored",
		zap.String("id", record.ID),
		zap.String("category", string(record.Category)),
		zap.String("sentiment", string(record.Sentiment)),
		zap.Float64("score", record.Score),
	)

	s.publish(ctx)

	return record, nil
}

// Dashboard loads all records and aggregates them. A load failure degrades
// to an empty summary instead of failing the page.
func (s *feedbackService) Dashboard(ctx context.Context) *DashboardData {
	records, err := s.repo.List(ctx)
	degraded := false
	if err != nil {
		s.metrics.Failures.WithLabelValues(metrics.StageLoad).Inc()
		s.logger.Warn("Failed to load feedback, showing empty dashboard", zap.Error(err))
		records = nil
		degraded = true
	}

	return &DashboardData{
		Summary:    Summarize(records),
		Degraded:   degraded,
		Classifier: s.classifier.Name(),
	}
}

func (s *feedbackService) publish(ctx context.Context) {
	if s.publisher == nil {
		return
	}

	records, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Warn("Skipping live update, failed to load feedback", zap.Error(err))
		return
	}
	s.publisher.Publish(Summarize(records))
}

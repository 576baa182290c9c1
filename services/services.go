package services

import (
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/blogem/campus-feedback/metrics"
	"github.com/blogem/campus-feedback/repositories"
	"github.com/blogem/campus-feedback/sentiment"
)

// Services holds all service instances
type Services struct {
	Feedback FeedbackService
	Admin    AdminService
}

// Dependencies are the collaborators shared by the services
type Dependencies struct {
	Repos      *repositories.Repositories
	Classifier sentiment.Classifier
	Clock      clockwork.Clock
	Publisher  SummaryPublisher
	Metrics    *metrics.FeedbackMetrics
	Logger     *zap.Logger
}

// NewServices creates and initializes all service instances
func NewServices(deps Dependencies) *Services {
	return &Services{
		Feedback: NewFeedbackService(deps.Repos.Feedback, deps.Classifier, deps.Clock, deps.Publisher, deps.Metrics, deps.Logger),
		Admin:    NewAdminService(deps.Repos.Feedback, deps.Repos.Audit, deps.Logger),
	}
}

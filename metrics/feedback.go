package metrics

import "github.com/prometheus/client_golang/prometheus"

// Submission failure stages
const (
	StageValidation     = "validation"
	StageClassification = "classification"
	StageStorage        = "storage"
	StageLoad           = "load"
)

// FeedbackMetrics holds Prometheus metrics for the submission pipeline.
type FeedbackMetrics struct {
	Submissions            *prometheus.CounterVec
	Failures               *prometheus.CounterVec
	ClassificationDuration *prometheus.HistogramVec
}

// NewFeedbackMetrics creates and registers submission metrics on the given registry.
func NewFeedbackMetrics(reg prometheus.Registerer) *FeedbackMetrics {
	m := &FeedbackMetrics{
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Total number of stored feedback submissions, by sentiment.",
		}, []string{"sentiment"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Total number of failed feedback operations, by stage.",
		}, []string{"stage"}),
		ClassificationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "classification_duration_seconds",
			Help:      "Duration of sentiment classification in seconds, by classifier.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"classifier"}),
	}

	reg.MustRegister(m.Submissions, m.Failures, m.ClassificationDuration)
	return m
}

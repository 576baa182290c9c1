package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetrics_Middleware(t *testing.T) {
	reg := NewRegistry()
	m := NewHTTPMetrics(reg)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/summary", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {})

	for i := 0; i < 3; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/summary", nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, 3.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodGet, "/api/summary", "418")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.InFlightGauge))
}

func TestFeedbackMetrics(t *testing.T) {
	reg := NewRegistry()
	m := NewFeedbackMetrics(reg)

	m.Submissions.WithLabelValues("Positive").Inc()
	m.Failures.WithLabelValues(StageStorage).Inc()
	m.Failures.WithLabelValues(StageStorage).Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues("Positive")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Failures.WithLabelValues(StageStorage)))
}

func TestHandler(t *testing.T) {
	reg := NewRegistry()
	NewLiveMetrics(reg).MessagesPublished.Inc()

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "campus_feedback_live_messages_published_total 1")
}

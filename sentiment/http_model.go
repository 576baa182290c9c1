package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"go.uber.org/zap"
)

// HTTPModelConfig configures a remote inference endpoint
type HTTPModelConfig struct {
	URL     string
	Token   string
	Timeout time.Duration
}

// HTTPModel calls a hosted text-classification endpoint that accepts
// {"inputs": "..."} and answers with a list of {label, score} pairs.
// A circuit breaker fails submissions fast while the endpoint is down.
type HTTPModel struct {
	url     string
	token   string
	client  *http.Client
	breaker circuitbreaker.CircuitBreaker[any]
}

var _ BinaryModel = (*HTTPModel)(nil)

// NewHTTPModel creates a remote binary model. The breaker opens at a 60%
// failure rate over at least 5 calls in 30s and probes again after 30s.
func NewHTTPModel(cfg HTTPModelConfig, logger *zap.Logger) *HTTPModel {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	cb := circuitbreaker.NewBuilder[any]().
		WithFailureRateThreshold(0.6, 5, 30*time.Second).
		WithDelay(30 * time.Second).
		WithSuccessThreshold(1).
		OnStateChanged(func(e circuitbreaker.StateChangedEvent) {
			logger.Warn("Inference circuit breaker state changed",
				zap.String("from", e.OldState.String()),
				zap.String("to", e.NewState.String()),
			)
		}).
		Build()

	return &HTTPModel{
		url:     cfg.URL,
		token:   cfg.Token,
		client:  &http.Client{Timeout: timeout},
		breaker: cb,
	}
}

// Name implements BinaryModel
func (m *HTTPModel) Name() string {
	return "http"
}

// Predict implements BinaryModel
func (m *HTTPModel) Predict(ctx context.Context, text string) (BinaryPrediction, error) {
	if !m.breaker.TryAcquirePermit() {
		return BinaryPrediction{}, fmt.Errorf("inference endpoint unavailable: %w", circuitbreaker.ErrOpen)
	}

	pred, err := m.call(ctx, text)
	if err != nil {
		m.breaker.RecordError(err)
		return BinaryPrediction{}, err
	}
	m.breaker.RecordSuccess()
	return pred, nil
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

type scoredLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func (m *HTTPModel) call(ctx context.Context, text string) (BinaryPrediction, error) {
	body, err := json.Marshal(inferenceRequest{Inputs: text})
	if err != nil {
		return BinaryPrediction{}, fmt.Errorf("failed to encode inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return BinaryPrediction{}, fmt.Errorf("failed to build inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if m.token != "" {
		req.Header.Set("Authorization", "Bearer "+m.token)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return BinaryPrediction{}, fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return BinaryPrediction{}, fmt.Errorf("failed to read inference response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return BinaryPrediction{}, fmt.Errorf("inference endpoint returned %d: %s", resp.StatusCode, truncateBody(payload))
	}

	return parseInferenceResponse(payload)
}

// parseInferenceResponse accepts both [[{label,score}...]] and
// [{label,score}...] and returns the highest-scoring class.
func parseInferenceResponse(payload []byte) (BinaryPrediction, error) {
	var candidates []scoredLabel

	var nested [][]scoredLabel
	if err := json.Unmarshal(payload, &nested); err == nil && len(nested) > 0 {
		candidates = nested[0]
	} else {
		var flat []scoredLabel
		if err := json.Unmarshal(payload, &flat); err != nil {
			return BinaryPrediction{}, fmt.Errorf("failed to decode inference response: %w", err)
		}
		candidates = flat
	}

	if len(candidates) == 0 {
		return BinaryPrediction{}, fmt.Errorf("inference response contained no labels")
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Score > best.Score {
			best = c
		}
	}

	label, err := ParseBinaryLabel(best.Label)
	if err != nil {
		return BinaryPrediction{}, err
	}
	return BinaryPrediction{Label: label, Confidence: best.Score}, nil
}

func truncateBody(b []byte) string {
	const max = 200
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}

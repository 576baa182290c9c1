package sentiment

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/blogem/campus-feedback/models"
)

// BinaryLabel is the raw output class of a binary sentiment model
type BinaryLabel string

const (
	BinaryPositive BinaryLabel = "POSITIVE"
	BinaryNegative BinaryLabel = "NEGATIVE"
)

// ParseBinaryLabel normalises the label spellings returned by common models
func ParseBinaryLabel(s string) (BinaryLabel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "POSITIVE", "POS", "LABEL_1":
		return BinaryPositive, nil
	case "NEGATIVE", "NEG", "LABEL_0":
		return BinaryNegative, nil
	default:
		return "", fmt.Errorf("unknown model label %q", s)
	}
}

// BinaryPrediction is a model's predicted class and its confidence
type BinaryPrediction struct {
	Label      BinaryLabel `json:"label"`
	Confidence float64     `json:"confidence"`
}

// Validate checks the prediction is usable
func (p BinaryPrediction) Validate() error {
	if p.Label != BinaryPositive && p.Label != BinaryNegative {
		return fmt.Errorf("unknown model label %q", p.Label)
	}
	if math.IsNaN(p.Confidence) || p.Confidence < 0 || p.Confidence > 1 {
		return fmt.Errorf("confidence must be within [0, 1], got %v", p.Confidence)
	}
	return nil
}

// BinaryModel is a pretrained positive/negative classifier
type BinaryModel interface {
	Predict(ctx context.Context, text string) (BinaryPrediction, error)
	Name() string
}

// NeuralClassifier adds a neutral class on top of a binary model: any
// prediction below the confidence threshold becomes Neutral.
type NeuralClassifier struct {
	model     BinaryModel
	threshold float64
}

// NewNeuralClassifier wraps model with the given neutral threshold
func NewNeuralClassifier(model BinaryModel, threshold float64) *NeuralClassifier {
	return &NeuralClassifier{model: model, threshold: threshold}
}

// Classify implements Classifier
func (c *NeuralClassifier) Classify(ctx context.Context, text string) (Result, error) {
	pred, err := c.model.Predict(ctx, Truncate(text, MaxInputLength))
	if err != nil {
		return Result{}, fmt.Errorf("%s model prediction failed: %w", c.model.Name(), err)
	}
	if err := pred.Validate(); err != nil {
		return Result{}, fmt.Errorf("%s model returned an invalid prediction: %w", c.model.Name(), err)
	}

	return Result{
		Label: LabelForConfidence(pred, c.threshold),
		Score: round(pred.Confidence, 4),
	}, nil
}

// Name implements Classifier
func (c *NeuralClassifier) Name() string {
	return "neural/" + c.model.Name()
}

// LabelForConfidence keeps the model's class only when its confidence
// reaches threshold.
func LabelForConfidence(pred BinaryPrediction, threshold float64) models.Sentiment {
	if pred.Confidence < threshold {
		return models.SentimentNeutral
	}
	if pred.Label == BinaryPositive {
		return models.SentimentPositive
	}
	return models.SentimentNegative
}

// Truncate returns at most max characters of text
func Truncate(text string, max int) string {
	if max <= 0 {
		return ""
	}
	n := 0
	for i := range text {
		if n == max {
			return text[:i]
		}
		n++
	}
	return text
}

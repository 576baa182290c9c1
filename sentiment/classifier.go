// Package sentiment turns free-text feedback into a Positive, Neutral or
// Negative label plus a numeric score.
//
// Two classifiers share the Classifier interface: LexiconClassifier scores
// polarity from a word list, NeuralClassifier wraps a binary model (remote
// inference endpoint or LLM) and maps low-confidence answers to Neutral.
package sentiment

import (
	"context"
	"math"

	"github.com/blogem/campus-feedback/models"
)

const (
	// DefaultPolarityThreshold is the half-width of the lexicon neutral band
	DefaultPolarityThreshold = 0.1
	// DefaultNeutralThreshold is the minimum model confidence to keep its label
	DefaultNeutralThreshold = 0.70
	// MaxInputLength is the number of characters passed to a binary model
	MaxInputLength = 512
)

// Result is the outcome of a classification
type Result struct {
	Label models.Sentiment `json:"label"`
	Score float64          `json:"score"`
}

// Classifier assigns a sentiment label and score to a piece of text
type Classifier interface {
	Classify(ctx context.Context, text string) (Result, error)
	Name() string
}

// LabelForPolarity maps a polarity to a label using a symmetric neutral band
func LabelForPolarity(polarity, threshold float64) models.Sentiment {
	switch {
	case polarity > threshold:
		return models.SentimentPositive
	case polarity < -threshold:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

func round(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

package server

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/blogem/campus-feedback/config"
	"github.com/blogem/campus-feedback/sentiment"
)

// NewClassifier builds the configured sentiment classifier
func NewClassifier(ctx context.Context, cfg *config.Config, logger *zap.Logger) (sentiment.Classifier, error) {
	switch cfg.Classifier {
	case config.ClassifierLexicon:
		lexicon, err := loadLexicon(cfg.LexiconFile)
		if err != nil {
			return nil, err
		}
		return sentiment.NewLexiconClassifier(lexicon, cfg.PolarityThreshold), nil

	case config.ClassifierNeural:
		model := sentiment.NewHTTPModel(sentiment.HTTPModelConfig{
			URL:     cfg.InferenceURL,
			Token:   cfg.InferenceToken,
			Timeout: cfg.InferenceTimeout,
		}, logger)
		return sentiment.NewNeuralClassifier(model, cfg.NeutralThreshold), nil

	case config.ClassifierGenAI:
		model, err := sentiment.NewGenAIModel(ctx, cfg.GenAIAPIKey, cfg.GenAIModel)
		if err != nil {
			return nil, err
		}
		return sentiment.NewNeuralClassifier(model, cfg.NeutralThreshold), nil

	default:
		return nil, fmt.Errorf("unknown classifier %q", cfg.Classifier)
	}
}

func loadLexicon(path string) (*sentiment.Lexicon, error) {
	if path == "" {
		return sentiment.DefaultLexicon()
	}
	lexicon, err := sentiment.LoadLexicon(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load lexicon %s: %w", path, err)
	}
	return lexicon, nil
}

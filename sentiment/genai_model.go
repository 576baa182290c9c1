package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const genaiPrompt = `Classify the sentiment of the campus feedback below as POSITIVE or NEGATIVE.
Respond with JSON only: {"label": "POSITIVE" or "NEGATIVE", "confidence": number between 0 and 1}.

Feedback:
`

// GenAIModel asks a Gemini model for a binary label and confidence
type GenAIModel struct {
	model    string
	generate func(ctx context.Context, prompt string) (string, error)
}

var _ BinaryModel = (*GenAIModel)(nil)

// NewGenAIModel creates a GenAI-backed binary model
func NewGenAIModel(ctx context.Context, apiKey, model string) (*GenAIModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIModel{
		model: model,
		generate: func(ctx context.Context, prompt string) (string, error) {
			result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
				ResponseMIMEType: "application/json",
				Temperature:      genai.Ptr[float32](0),
			})
			if err != nil {
				return "", err
			}
			return result.Text(), nil
		},
	}, nil
}

// Name implements BinaryModel
func (m *GenAIModel) Name() string {
	return "genai"
}

// Predict implements BinaryModel
func (m *GenAIModel) Predict(ctx context.Context, text string) (BinaryPrediction, error) {
	out, err := m.generate(ctx, genaiPrompt+text)
	if err != nil {
		return BinaryPrediction{}, fmt.Errorf("GenAI generate failed: %w", err)
	}
	return parseGenAIAnswer(out)
}

func parseGenAIAnswer(out string) (BinaryPrediction, error) {
	out = strings.TrimSpace(out)
	out = strings.TrimPrefix(out, "```json")
	out = strings.TrimPrefix(out, "```")
	out = strings.TrimSuffix(out, "```")

	var answer struct {
		Label      string  `json:"label"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &answer); err != nil {
		return BinaryPrediction{}, fmt.Errorf("failed to decode GenAI answer: %w", err)
	}

	label, err := ParseBinaryLabel(answer.Label)
	if err != nil {
		return BinaryPrediction{}, err
	}
	return BinaryPrediction{Label: label, Confidence: answer.Confidence}, nil
}

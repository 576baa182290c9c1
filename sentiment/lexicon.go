package sentiment

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var defaultLexiconYAML []byte

// Lexicon holds word polarities and the modifiers that adjust them
type Lexicon struct {
	Words          map[string]float64 `yaml:"words"`
	Intensifiers   map[string]float64 `yaml:"intensifiers"`
	Negations      []string           `yaml:"negations"`
	NegationFactor float64            `yaml:"negation_factor"`
	NegationWindow int                `yaml:"negation_window"`

	negations map[string]struct{}
}

// DefaultLexicon returns the embedded lexicon
func DefaultLexicon() (*Lexicon, error) {
	return ParseLexicon(defaultLexiconYAML)
}

// LoadLexicon reads a YAML lexicon from disk
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon %s: %w", path, err)
	}
	return ParseLexicon(data)
}

// ParseLexicon decodes and normalises a YAML lexicon
func ParseLexicon(data []byte) (*Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon: %w", err)
	}
	if len(lex.Words) == 0 {
		return nil, fmt.Errorf("lexicon has no words")
	}

	words := make(map[string]float64, len(lex.Words))
	for w, p := range lex.Words {
		if p < -1 || p > 1 {
			return nil, fmt.Errorf("polarity of %q must be within [-1, 1], got %v", w, p)
		}
		words[strings.ToLower(w)] = p
	}
	lex.Words = words

	intensifiers := make(map[string]float64, len(lex.Intensifiers))
	for w, m := range lex.Intensifiers {
		intensifiers[strings.ToLower(w)] = m
	}
	lex.Intensifiers = intensifiers

	lex.negations = make(map[string]struct{}, len(lex.Negations))
	for _, w := range lex.Negations {
		lex.negations[strings.ToLower(w)] = struct{}{}
	}
	if lex.NegationFactor == 0 {
		lex.NegationFactor = -0.5
	}
	if lex.NegationWindow <= 0 {
		lex.NegationWindow = 3
	}

	return &lex, nil
}

// Polarity scores text in [-1, 1] as the mean of the adjusted polarities of
// every lexicon word it contains. Text without lexicon words scores 0.
func (l *Lexicon) Polarity(text string) float64 {
	tokens := tokenize(text)

	var sum float64
	var n int
	for i, tok := range tokens {
		p, ok := l.Words[tok]
		if !ok {
			continue
		}
		if i > 0 {
			if mult, ok := l.Intensifiers[tokens[i-1]]; ok {
				p = clamp(p*mult, -1, 1)
			}
		}
		if l.negatedAt(tokens, i) {
			p *= l.NegationFactor
		}
		sum += p
		n++
	}

	if n == 0 {
		return 0
	}
	return clamp(sum/float64(n), -1, 1)
}

func (l *Lexicon) negatedAt(tokens []string, i int) bool {
	start := i - l.NegationWindow
	if start < 0 {
		start = 0
	}
	for j := start; j < i; j++ {
		if l.isNegation(tokens[j]) {
			return true
		}
	}
	return false
}

func (l *Lexicon) isNegation(tok string) bool {
	if _, ok := l.negations[tok]; ok {
		return true
	}
	return strings.HasSuffix(tok, "n't")
}

// tokenize lower-cases text and splits it into words, keeping apostrophes
// so contractions like "isn't" survive.
func tokenize(text string) []string {
	text = strings.ReplaceAll(strings.ToLower(text), "’", "'")
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}

// LexiconClassifier labels text by lexicon polarity
type LexiconClassifier struct {
	lexicon   *Lexicon
	threshold float64
}

// NewLexiconClassifier creates a lexicon classifier with the given neutral band
func NewLexiconClassifier(lexicon *Lexicon, threshold float64) *LexiconClassifier {
	return &LexiconClassifier{lexicon: lexicon, threshold: threshold}
}

// Classify implements Classifier. The label is derived from the unrounded
// polarity; the score is rounded to two decimals.
func (c *LexiconClassifier) Classify(ctx context.Context, text string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	polarity := c.lexicon.Polarity(text)
	return Result{
		Label: LabelForPolarity(polarity, c.threshold),
		Score: round(polarity, 2),
	}, nil
}

// Name implements Classifier
func (c *LexiconClassifier) Name() string {
	return "lexicon"
}

package models

import (
	"fmt"
	"strconv"
	"strings"
)

// FeedbackRowHeader is the fixed column order of spreadsheet rows and CSV exports
var FeedbackRowHeader = []string{"name", "category", "feedback", "sentiment", "confidence", "timestamp"}

// Row maps the record to the six-column row layout
func (r *FeedbackRecord) Row() []string {
	return []string{
		r.Name,
		string(r.Category),
		r.Text,
		string(r.Sentiment),
		strconv.FormatFloat(r.Score, 'f', -1, 64),
		r.FormattedTimestamp(),
	}
}

// IsHeaderRow reports whether row is the column header line
func IsHeaderRow(row []string) bool {
	if len(row) < len(FeedbackRowHeader) {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(row[0]), FeedbackRowHeader[0]) &&
		strings.EqualFold(strings.TrimSpace(row[5]), FeedbackRowHeader[5])
}

// ParseFeedbackRow rebuilds a record from a six-column row
func ParseFeedbackRow(row []string) (*FeedbackRecord, error) {
	if len(row) < len(FeedbackRowHeader) {
		return nil, fmt.Errorf("expected %d columns, got %d", len(FeedbackRowHeader), len(row))
	}

	category, ok := ParseCategory(row[1])
	if !ok {
		return nil, fmt.Errorf("unknown category %q", row[1])
	}

	sentiment, ok := ParseSentiment(row[3])
	if !ok {
		return nil, fmt.Errorf("unknown sentiment %q", row[3])
	}

	score, err := strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid confidence %q: %w", row[4], err)
	}

	ts, err := ParseTimestamp(row[5])
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp %q: %w", row[5], err)
	}

	name := row[0]
	if strings.TrimSpace(name) == "" {
		name = AnonymousName
	}

	return &FeedbackRecord{
		Name:      name,
		Category:  category,
		Text:      row[2],
		Sentiment: sentiment,
		Score:     score,
		Timestamp: ts,
	}, nil
}

package models

import (
	"net/url"
	"strings"
	"testing"
	"time"
)

// Test FeedbackForm validation
func TestFeedbackFormValidation(t *testing.T) {
	validForm := FeedbackForm{
		Name:     "Priya",
		Category: "Library",
		Feedback: "Great library hours!",
	}
	if errors := validForm.Validate(); len(errors) != 0 {
		t.Errorf("Expected no errors for valid form, got: %v", errors)
	}

	// Category matching is case-insensitive
	lowerCase := FeedbackForm{Category: "food", Feedback: "ok"}
	if errors := lowerCase.Validate(); len(errors) != 0 {
		t.Errorf("Expected lower-case category to validate, got: %v", errors)
	}

	invalidForm := FeedbackForm{
		Name:     strings.Repeat("x", MaxNameLength+1),
		Category: "Parking",
		Feedback: strings.Repeat("y", MaxFeedbackLength+1),
	}
	if errors := invalidForm.Validate(); len(errors) != 3 {
		t.Errorf("Expected 3 errors for invalid form, got: %v", errors)
	}
}

func TestFeedbackFormDisplayName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", AnonymousName},
		{"   ", AnonymousName},
		{" Sam ", "Sam"},
	}
	for _, tt := range tests {
		form := FeedbackForm{Name: tt.name}
		if got := form.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestFeedbackFormIsBlank(t *testing.T) {
	if !(&FeedbackForm{Feedback: " \n\t "}).IsBlank() {
		t.Error("Expected whitespace-only feedback to be blank")
	}
	if (&FeedbackForm{Feedback: "It was fine"}).IsBlank() {
		t.Error("Expected text feedback not to be blank")
	}
}

func TestCategoriesAreFixed(t *testing.T) {
	if len(Categories) != 8 {
		t.Fatalf("Expected 8 categories, got %d", len(Categories))
	}
	for _, c := range Categories {
		if !c.IsValid() {
			t.Errorf("Expected %s to be valid", c)
		}
	}
	if Category("Parking").IsValid() {
		t.Error("Expected unknown category to be invalid")
	}
}

func TestParseSentiment(t *testing.T) {
	if s, ok := ParseSentiment("negative"); !ok || s != SentimentNegative {
		t.Errorf("Expected Negative, got %q (%v)", s, ok)
	}
	if _, ok := ParseSentiment("mixed"); ok {
		t.Error("Expected unknown sentiment to fail")
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local)
	record := FeedbackRecord{Timestamp: ts}

	formatted := record.FormattedTimestamp()
	if formatted != "2025-03-14 09:26:53" {
		t.Fatalf("Unexpected formatted timestamp %q", formatted)
	}
	if record.Day() != "2025-03-14" {
		t.Errorf("Unexpected day %q", record.Day())
	}

	parsed, err := ParseTimestamp(formatted)
	if err != nil {
		t.Fatalf("Failed to parse timestamp: %v", err)
	}
	if !parsed.Equal(ts) {
		t.Errorf("Expected %v, got %v", ts, parsed)
	}
}

func TestParseAdminFilter(t *testing.T) {
	q := url.Values{}
	q.Add("sentiment", "Positive")
	q.Add("sentiment", "positive")
	q.Add("sentiment", "bogus")
	q.Add("category", "Food")
	q.Set("sort", "score")
	q.Set("order", "asc")

	filter := ParseAdminFilter(q)
	if len(filter.Sentiments) != 1 || filter.Sentiments[0] != SentimentPositive {
		t.Errorf("Unexpected sentiments %v", filter.Sentiments)
	}
	if len(filter.Categories) != 1 || filter.Categories[0] != CategoryFood {
		t.Errorf("Unexpected categories %v", filter.Categories)
	}
	if filter.SortBy != SortByScore || filter.Descending {
		t.Errorf("Unexpected ordering %s desc=%v", filter.SortBy, filter.Descending)
	}

	defaults := ParseAdminFilter(url.Values{"sort": {"nope"}})
	if defaults.SortBy != SortByTimestamp || !defaults.Descending {
		t.Errorf("Expected default ordering, got %s desc=%v", defaults.SortBy, defaults.Descending)
	}
}

func TestAdminFilterMatches(t *testing.T) {
	record := &FeedbackRecord{Category: CategoryHostel, Sentiment: SentimentNeutral}

	if !DefaultAdminFilter().Matches(record) {
		t.Error("Expected empty selection to match everything")
	}

	onlyNegative := AdminFilter{Sentiments: []Sentiment{SentimentNegative}}
	if onlyNegative.Matches(record) {
		t.Error("Expected Neutral record to be filtered out")
	}

	hostelNeutral := AdminFilter{
		Sentiments: []Sentiment{SentimentNeutral},
		Categories: []Category{CategoryHostel},
	}
	if !hostelNeutral.Matches(record) {
		t.Error("Expected record to match its own sentiment and category")
	}
}

func TestFeedbackRowRoundTrip(t *testing.T) {
	ts, err := ParseTimestamp("2024-03-05 14:07:09")
	if err != nil {
		t.Fatalf("Failed to parse timestamp: %v", err)
	}
	record := FeedbackRecord{
		Name:      "Anonymous",
		Category:  CategoryFood,
		Text:      "The food quality is terrible, really",
		Sentiment: SentimentNegative,
		Score:     -0.6,
		Timestamp: ts,
	}

	row := record.Row()
	want := []string{"Anonymous", "Food", "The food quality is terrible, really", "Negative", "-0.6", "2024-03-05 14:07:09"}
	if strings.Join(row, "|") != strings.Join(want, "|") {
		t.Fatalf("Expected row %v, got %v", want, row)
	}

	parsed, err := ParseFeedbackRow(row)
	if err != nil {
		t.Fatalf("Failed to parse row: %v", err)
	}
	if *parsed != record {
		t.Errorf("Expected %+v, got %+v", record, *parsed)
	}
}

func TestParseFeedbackRowErrors(t *testing.T) {
	rows := [][]string{
		{"a", "Food", "text", "Positive", "0.5"},
		{"a", "Parking", "text", "Positive", "0.5", "2024-03-05 14:07:09"},
		{"a", "Food", "text", "Mixed", "0.5", "2024-03-05 14:07:09"},
		{"a", "Food", "text", "Positive", "high", "2024-03-05 14:07:09"},
		{"a", "Food", "text", "Positive", "0.5", "05/03/2024"},
	}
	for _, row := range rows {
		if _, err := ParseFeedbackRow(row); err == nil {
			t.Errorf("Expected error for row %v", row)
		}
	}
}

func TestIsHeaderRow(t *testing.T) {
	if !IsHeaderRow(FeedbackRowHeader) {
		t.Error("Expected header row to be detected")
	}
	if IsHeaderRow([]string{"Priya", "Food", "ok", "Neutral", "0", "2024-03-05 14:07:09"}) {
		t.Error("Expected data row not to be treated as header")
	}
	if IsHeaderRow([]string{"name"}) {
		t.Error("Expected short row not to be treated as header")
	}
}

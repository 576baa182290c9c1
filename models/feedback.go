package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

// TimestampLayout is the canonical string form of a record timestamp
const TimestampLayout = "2006-01-02 15:04:05"

// DateLayout is used for daily buckets
const DateLayout = "2006-01-02"

// AnonymousName is stored when the submitter leaves the name blank
const AnonymousName = "Anonymous"

// MaxFeedbackLength caps the stored feedback body
const MaxFeedbackLength = 5000

// MaxNameLength caps the submitter name
const MaxNameLength = 100

// Category is one of the fixed feedback categories
type Category string

const (
	CategoryClassroom      Category = "Classroom"
	CategoryInfrastructure Category = "Infrastructure"
	CategoryFood           Category = "Food"
	CategoryLibrary        Category = "Library"
	CategoryHostel         Category = "Hostel"
	CategoryTransportation Category = "Transportation"
	CategoryFaculty        Category = "Faculty"
	CategoryOther          Category = "Other"
)

// Categories lists every category in display order
var Categories = []Category{
	CategoryClassroom,
	CategoryInfrastructure,
	CategoryFood,
	CategoryLibrary,
	CategoryHostel,
	CategoryTransportation,
	CategoryFaculty,
	CategoryOther,
}

// IsValid reports whether c is one of the fixed categories
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory matches s case-insensitively against the fixed categories
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, known := range Categories {
		if strings.EqualFold(s, string(known)) {
			return known, true
		}
	}
	return "", false
}

// Sentiment is the derived label of a record
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// Sentiments lists every label in display order
var Sentiments = []Sentiment{SentimentPositive, SentimentNeutral, SentimentNegative}

// IsValid reports whether s is a known label
func (s Sentiment) IsValid() bool {
	return s == SentimentPositive || s == SentimentNeutral || s == SentimentNegative
}

// ParseSentiment matches s case-insensitively against the known labels
func ParseSentiment(s string) (Sentiment, bool) {
	s = strings.TrimSpace(s)
	for _, known := range Sentiments {
		if strings.EqualFold(s, string(known)) {
			return known, true
		}
	}
	return "", false
}

// Color returns the chart colour used for the label
func (s Sentiment) Color() string {
	switch s {
	case SentimentPositive:
		return "#2ecc71"
	case SentimentNegative:
		return "#e74c3c"
	default:
		return "#f39c12"
	}
}

// Emoji returns the face shown next to the label
func (s Sentiment) Emoji() string {
	switch s {
	case SentimentPositive:
		return "😊"
	case SentimentNegative:
		return "😞"
	default:
		return "😐"
	}
}

// FeedbackRecord is one submitted feedback entry plus its classification.
// Records are never modified after they are appended to a store.
type FeedbackRecord struct {
	ID        string    `json:"id,omitempty" bson:"record_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Category  Category  `json:"category" bson:"category"`
	Text      string    `json:"feedback" bson:"feedback"`
	Sentiment Sentiment `json:"sentiment" bson:"sentiment"`
	Score     float64   `json:"score" bson:"score"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// FormattedTimestamp returns the timestamp in TimestampLayout
func (r *FeedbackRecord) FormattedTimestamp() string {
	return r.Timestamp.Format(TimestampLayout)
}

// Day returns the daily bucket key of the record
func (r *FeedbackRecord) Day() string {
	return r.Timestamp.Format(DateLayout)
}

// ParseTimestamp parses a TimestampLayout string in the local zone
func ParseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, strings.TrimSpace(s), time.Local)
}

// FeedbackForm represents the submission form
type FeedbackForm struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Feedback string `json:"feedback"`
}

// Validate validates the feedback form data. An empty feedback body is
// reported separately by the service so it can be shown as a warning.
func (f *FeedbackForm) Validate() []string {
	var errors []string

	if _, ok := ParseCategory(f.Category); !ok {
		errors = append(errors, "Category must be one of the listed options")
	}

	if utf8.RuneCountInString(strings.TrimSpace(f.Name)) > MaxNameLength {
		errors = append(errors, "Name must be less than 100 characters")
	}

	if utf8.RuneCountInString(f.Feedback) > MaxFeedbackLength {
		errors = append(errors, "Feedback must be less than 5000 characters")
	}

	return errors
}

// DisplayName returns the trimmed name or AnonymousName
func (f *FeedbackForm) DisplayName() string {
	if name := strings.TrimSpace(f.Name); name != "" {
		return name
	}
	return AnonymousName
}

// IsBlank reports whether the feedback body has no content
func (f *FeedbackForm) IsBlank() bool {
	return strings.TrimSpace(f.Feedback) == ""
}

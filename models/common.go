package models

import (
	"net/url"
	"strings"
)

// FlashMessage represents a flash message for user feedback
type FlashMessage struct {
	Type    string `json:"type"` // "success", "error", "warning", "info"
	Message string `json:"message"`
}

// NewFlash builds a flash message of the given type
func NewFlash(kind, message string) *FlashMessage {
	return &FlashMessage{Type: kind, Message: message}
}

// SortField names a column the admin table can be ordered by
type SortField string

const (
	SortByTimestamp SortField = "timestamp"
	SortByName      SortField = "name"
	SortByCategory  SortField = "category"
	SortBySentiment SortField = "sentiment"
	SortByScore     SortField = "score"
)

// SortFields lists the sortable columns in display order
var SortFields = []SortField{SortByTimestamp, SortByName, SortByCategory, SortBySentiment, SortByScore}

// AdminFilter selects and orders records for the admin table.
// Empty Sentiments or Categories means "all".
type AdminFilter struct {
	Sentiments []Sentiment
	Categories []Category
	SortBy     SortField
	Descending bool
}

// DefaultAdminFilter shows everything, newest first
func DefaultAdminFilter() AdminFilter {
	return AdminFilter{SortBy: SortByTimestamp, Descending: true}
}

// ParseAdminFilter reads the admin table query string. Unknown values are ignored.
func ParseAdminFilter(q url.Values) AdminFilter {
	filter := DefaultAdminFilter()

	for _, raw := range q["sentiment"] {
		if s, ok := ParseSentiment(raw); ok && !filter.HasSentiment(s) {
			filter.Sentiments = append(filter.Sentiments, s)
		}
	}
	for _, raw := range q["category"] {
		if c, ok := ParseCategory(raw); ok && !filter.HasCategory(c) {
			filter.Categories = append(filter.Categories, c)
		}
	}

	if sortBy := SortField(strings.ToLower(q.Get("sort"))); sortBy.IsValid() {
		filter.SortBy = sortBy
	}
	switch strings.ToLower(q.Get("order")) {
	case "asc":
		filter.Descending = false
	case "desc":
		filter.Descending = true
	}

	return filter
}

// IsValid reports whether f is a known column
func (f SortField) IsValid() bool {
	for _, known := range SortFields {
		if f == known {
			return true
		}
	}
	return false
}

// HasSentiment reports whether s is explicitly selected
func (f AdminFilter) HasSentiment(s Sentiment) bool {
	for _, selected := range f.Sentiments {
		if selected == s {
			return true
		}
	}
	return false
}

// HasCategory reports whether c is explicitly selected
func (f AdminFilter) HasCategory(c Category) bool {
	for _, selected := range f.Categories {
		if selected == c {
			return true
		}
	}
	return false
}

// Matches reports whether the record passes the sentiment and category selection
func (f AdminFilter) Matches(r *FeedbackRecord) bool {
	if len(f.Sentiments) > 0 && !f.HasSentiment(r.Sentiment) {
		return false
	}
	if len(f.Categories) > 0 && !f.HasCategory(r.Category) {
		return false
	}
	return true
}

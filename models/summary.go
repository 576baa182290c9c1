package models

// SentimentCount is one slice of the sentiment distribution
type SentimentCount struct {
	Sentiment Sentiment `json:"sentiment"`
	Count     int       `json:"count"`
	Percent   float64   `json:"percent"`
}

// CategoryCount is one bar of the feedback-by-category chart
type CategoryCount struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}

// CrossTabRow holds the sentiment counts for a single category
type CrossTabRow struct {
	Category Category `json:"category"`
	Positive int      `json:"positive"`
	Neutral  int      `json:"neutral"`
	Negative int      `json:"negative"`
	Total    int      `json:"total"`
}

// DailyCount holds the sentiment counts for one calendar day
type DailyCount struct {
	Date     string `json:"date"`
	Positive int    `json:"positive"`
	Neutral  int    `json:"neutral"`
	Negative int    `json:"negative"`
	Total    int    `json:"total"`
}

// Summary is the aggregate view over a record list
type Summary struct {
	Total       int              `json:"total"`
	BySentiment []SentimentCount `json:"by_sentiment"`
	ByCategory  []CategoryCount  `json:"by_category"`
	CrossTab    []CrossTabRow    `json:"cross_tab"`
	Daily       []DailyCount     `json:"daily"`
}

// Count returns the number of records with the given label
func (s *Summary) Count(sentiment Sentiment) int {
	for _, c := range s.BySentiment {
		if c.Sentiment == sentiment {
			return c.Count
		}
	}
	return 0
}

// CategoryTotal returns the number of records in the given category
func (s *Summary) CategoryTotal(category Category) int {
	for _, c := range s.ByCategory {
		if c.Category == category {
			return c.Count
		}
	}
	return 0
}

// MaxCategoryCount is used to scale the category bars
func (s *Summary) MaxCategoryCount() int {
	max := 0
	for _, c := range s.ByCategory {
		if c.Count > max {
			max = c.Count
		}
	}
	return max
}

// IsEmpty reports whether no records were aggregated
func (s *Summary) IsEmpty() bool {
	return s.Total == 0
}

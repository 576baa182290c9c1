package services

import (
	"math"
	"sort"

	"github.com/blogem/campus-feedback/models"
)

// Summarize aggregates records into totals per sentiment, per category,
// a category by sentiment table and daily counts in ascending date order.
// Records with a label or category outside the fixed sets are counted as
// Neutral and Other so every total adds up to the record count.
func Summarize(records []models.FeedbackRecord) *models.Summary {
	summary := &models.Summary{Total: len(records)}

	sentimentCounts := make(map[models.Sentiment]int, len(models.Sentiments))
	crossTab := make(map[models.Category]*models.CrossTabRow, len(models.Categories))
	for _, c := range models.Categories {
		crossTab[c] = &models.CrossTabRow{Category: c}
	}
	daily := make(map[string]*models.DailyCount)

	for i := range records {
		sentiment := normalizeSentiment(records[i].Sentiment)
		category := normalizeCategory(records[i].Category)

		sentimentCounts[sentiment]++

		row := crossTab[category]
		addSentiment(sentiment, &row.Positive, &row.Neutral, &row.Negative)
		row.Total++

		day := records[i].Day()
		bucket, ok := daily[day]
		if !ok {
			bucket = &models.DailyCount{Date: day}
			daily[day] = bucket
		}
		addSentiment(sentiment, &bucket.Positive, &bucket.Neutral, &bucket.Negative)
		bucket.Total++
	}

	for _, s := range models.Sentiments {
		count := sentimentCounts[s]
		summary.BySentiment = append(summary.BySentiment, models.SentimentCount{
			Sentiment: s,
			Count:     count,
			Percent:   percent(count, summary.Total),
		})
	}

	for _, c := range models.Categories {
		row := crossTab[c]
		summary.ByCategory = append(summary.ByCategory, models.CategoryCount{Category: c, Count: row.Total})
		summary.CrossTab = append(summary.CrossTab, *row)
	}

	summary.Daily = make([]models.DailyCount, 0, len(daily))
	for _, bucket := range daily {
		summary.Daily = append(summary.Daily, *bucket)
	}
	sort.Slice(summary.Daily, func(i, j int) bool {
		return summary.Daily[i].Date < summary.Daily[j].Date
	})

	return summary
}

func addSentiment(s models.Sentiment, positive, neutral, negative *int) {
	switch s {
	case models.SentimentPositive:
		*positive++
	case models.SentimentNegative:
		*negative++
	default:
		*neutral++
	}
}

func normalizeSentiment(s models.Sentiment) models.Sentiment {
	if s.IsValid() {
		return s
	}
	return models.SentimentNeutral
}

func normalizeCategory(c models.Category) models.Category {
	if c.IsValid() {
		return c
	}
	return models.CategoryOther
}

// percent returns count/total as a percentage rounded to one decimal
func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}

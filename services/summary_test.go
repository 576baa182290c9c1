package services

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/blogem/campus-feedback/models"
)

func record(category models.Category, sentiment models.Sentiment, ts string) models.FeedbackRecord {
	t, err := models.ParseTimestamp(ts)
	if err != nil {
		panic(err)
	}
	return models.FeedbackRecord{Name: models.AnonymousName, Category: category, Sentiment: sentiment, Timestamp: t}
}

func TestSummarize(t *testing.T) {
	records := []models.FeedbackRecord{
		record(models.CategoryFood, models.SentimentNegative, "2025-03-14 09:00:00"),
		record(models.CategoryFood, models.SentimentPositive, "2025-03-13 18:30:00"),
		record(models.CategoryLibrary, models.SentimentPositive, "2025-03-14 11:15:00"),
	}

	got := Summarize(records)

	want := &models.Summary{
		Total: 3,
		BySentiment: []models.SentimentCount{
			{Sentiment: models.SentimentPositive, Count: 2, Percent: 66.7},
			{Sentiment: models.SentimentNeutral, Count: 0, Percent: 0},
			{Sentiment: models.SentimentNegative, Count: 1, Percent: 33.3},
		},
		ByCategory: []models.CategoryCount{
			{Category: models.CategoryClassroom},
			{Category: models.CategoryInfrastructure},
			{Category: models.CategoryFood, Count: 2},
			{Category: models.CategoryLibrary, Count: 1},
			{Category: models.CategoryHostel},
			{Category: models.CategoryTransportation},
			{Category: models.CategoryFaculty},
			{Category: models.CategoryOther},
		},
		CrossTab: []models.CrossTabRow{
			{Category: models.CategoryClassroom},
			{Category: models.CategoryInfrastructure},
			{Category: models.CategoryFood, Positive: 1, Negative: 1, Total: 2},
			{Category: models.CategoryLibrary, Positive: 1, Total: 1},
			{Category: models.CategoryHostel},
			{Category: models.CategoryTransportation},
			{Category: models.CategoryFaculty},
			{Category: models.CategoryOther},
		},
		Daily: []models.DailyCount{
			{Date: "2025-03-13", Positive: 1, Total: 1},
			{Date: "2025-03-14", Positive: 1, Negative: 1, Total: 2},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil)

	assert.True(t, got.IsEmpty())
	assert.Len(t, got.BySentiment, len(models.Sentiments))
	assert.Len(t, got.CrossTab, len(models.Categories))
	assert.Empty(t, got.Daily)
	for _, c := range got.BySentiment {
		assert.Zero(t, c.Count)
		assert.Zero(t, c.Percent)
	}
}

func TestSummarize_CountsAddUp(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.Local)
	var records []models.FeedbackRecord
	for i := 0; i < 50; i++ {
		records = append(records, models.FeedbackRecord{
			Category:  models.Categories[i%len(models.Categories)],
			Sentiment: models.Sentiments[i%len(models.Sentiments)],
			Timestamp: base.Add(time.Duration(i) * 7 * time.Hour),
		})
	}

	got := Summarize(records)

	sentimentSum, categorySum, crossSum, dailySum := 0, 0, 0, 0
	for _, c := range got.BySentiment {
		sentimentSum += c.Count
	}
	for _, c := range got.ByCategory {
		categorySum += c.Count
	}
	for _, row := range got.CrossTab {
		assert.Equal(t, row.Total, row.Positive+row.Neutral+row.Negative, row.Category)
		assert.Equal(t, got.CategoryTotal(row.Category), row.Total)
		crossSum += row.Total
	}
	for i, day := range got.Daily {
		if i > 0 {
			assert.Less(t, got.Daily[i-1].Date, day.Date)
		}
		dailySum += day.Total
	}

	assert.Equal(t, 50, sentimentSum)
	assert.Equal(t, 50, categorySum)
	assert.Equal(t, 50, crossSum)
	assert.Equal(t, 50, dailySum)
}

func TestSummarize_UnknownValues(t *testing.T) {
	got := Summarize([]models.FeedbackRecord{
		record("Parking", "Mixed", "2025-03-14 09:00:00"),
	})

	assert.Equal(t, 1, got.Count(models.SentimentNeutral))
	assert.Equal(t, 1, got.CategoryTotal(models.CategoryOther))
	assert.Equal(t, 100.0, got.BySentiment[1].Percent)
}

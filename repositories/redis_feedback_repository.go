package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/blogem/campus-feedback/models"
)

type redisFeedbackRepository struct {
	client *redis.Client
	key    string
}

// redisRecord is the JSON document pushed onto the list; the timestamp is
// kept in its canonical string form.
type redisRecord struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Feedback  string  `json:"feedback"`
	Sentiment string  `json:"sentiment"`
	Score     float64 `json:"score"`
	Timestamp string  `json:"timestamp"`
}

// NewRedisFeedbackRepository creates a feedback repository backed by a Redis list
func NewRedisFeedbackRepository(client *redis.Client, key string) FeedbackRepository {
	return &redisFeedbackRepository{client: client, key: key}
}

// Append pushes the record onto the tail of the list
func (r *redisFeedbackRepository) Append(ctx context.Context, record *models.FeedbackRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	data, err := json.Marshal(redisRecord{
		ID:        record.ID,
		Name:      record.Name,
		Category:  string(record.Category),
		Feedback:  record.Text,
		Sentiment: string(record.Sentiment),
		Score:     record.Score,
		Timestamp: record.FormattedTimestamp(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode feedback: %w", err)
	}

	if err := r.client.RPush(ctx, r.key, data).Err(); err != nil {
		return fmt.Errorf("failed to push feedback: %w", err)
	}
	return nil
}

// List reads the whole list head to tail
func (r *redisFeedbackRepository) List(ctx context.Context) ([]models.FeedbackRecord, error) {
	items, err := r.client.LRange(ctx, r.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read feedback: %w", err)
	}

	records := make([]models.FeedbackRecord, 0, len(items))
	for _, item := range items {
		var doc redisRecord
		if err := json.Unmarshal([]byte(item), &doc); err != nil {
			return nil, fmt.Errorf("failed to decode feedback: %w", err)
		}

		ts, err := models.ParseTimestamp(doc.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp of feedback %s: %w", doc.ID, err)
		}

		records = append(records, models.FeedbackRecord{
			ID:        doc.ID,
			Name:      doc.Name,
			Category:  models.Category(doc.Category),
			Text:      doc.Feedback,
			Sentiment: models.Sentiment(doc.Sentiment),
			Score:     doc.Score,
			Timestamp: ts,
		})
	}

	return records, nil
}

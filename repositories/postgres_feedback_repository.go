package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/blogem/campus-feedback/models"
)

type postgresFeedbackRepository struct {
	db *sql.DB
}

// NewPostgresFeedbackRepository creates a feedback repository on PostgreSQL
func NewPostgresFeedbackRepository(db *sql.DB) FeedbackRepository {
	return &postgresFeedbackRepository{db: db}
}

// Append inserts a new record
func (r *postgresFeedbackRepository) Append(ctx context.Context, record *models.FeedbackRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	query := `
		INSERT INTO feedback (id, name, category, feedback, sentiment, score, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	// TIMESTAMP without zone keeps the wall clock of the canonical string form
	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.Name,
		string(record.Category),
		record.Text,
		string(record.Sentiment),
		record.Score,
		record.FormattedTimestamp(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}

	return nil
}

// List retrieves all records in insertion order
func (r *postgresFeedbackRepository) List(ctx context.Context) ([]models.FeedbackRecord, error) {
	query := `
		SELECT id, name, category, feedback, sentiment, score, to_char(timestamp, 'YYYY-MM-DD HH24:MI:SS')
		FROM feedback
		ORDER BY seq ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	var records []models.FeedbackRecord
	for rows.Next() {
		var record models.FeedbackRecord
		var category, sentiment, timestamp string

		if err := rows.Scan(&record.ID, &record.Name, &category, &record.Text, &sentiment, &record.Score, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}

		record.Category = models.Category(category)
		record.Sentiment = models.Sentiment(sentiment)
		record.Timestamp, err = models.ParseTimestamp(timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp of feedback %s: %w", record.ID, err)
		}

		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feedback: %w", err)
	}

	return records, nil
}

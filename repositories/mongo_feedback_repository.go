package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/blogem/campus-feedback/models"
)

const (
	// FeedbackCollection is the MongoDB collection holding feedback documents
	FeedbackCollection = "feedbacks"
	// CounterCollection holds the insertion sequence counters
	CounterCollection = "counters"
)

// mongoFeedbackDocument is a record plus its insertion sequence number
type mongoFeedbackDocument struct {
	Seq                   int64 `bson:"seq"`
	models.FeedbackRecord `bson:",inline"`
}

type mongoFeedbackRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

// NewMongoFeedbackRepository creates a feedback repository on a MongoDB database
func NewMongoFeedbackRepository(db *mongo.Database) FeedbackRepository {
	return &mongoFeedbackRepository{
		collection: db.Collection(FeedbackCollection),
		counters:   db.Collection(CounterCollection),
	}
}

// nextSeq atomically increments the feedback counter
func (r *mongoFeedbackRepository) nextSeq(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": FeedbackCollection},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

// Append inserts a new document
func (r *mongoFeedbackRepository) Append(ctx context.Context, record *models.FeedbackRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	seq, err := r.nextSeq(ctx)
	if err != nil {
		return fmt.Errorf("failed to allocate feedback sequence: %w", err)
	}

	if _, err := r.collection.InsertOne(ctx, mongoFeedbackDocument{Seq: seq, FeedbackRecord: *record}); err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}
	return nil
}

// List retrieves all documents in insertion order
func (r *mongoFeedbackRepository) List(ctx context.Context) ([]models.FeedbackRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoFeedbackDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode feedback: %w", err)
	}

	records := make([]models.FeedbackRecord, len(docs))
	for i := range docs {
		records[i] = docs[i].FeedbackRecord
		// BSON dates come back in UTC
		records[i].Timestamp = records[i].Timestamp.Local()
	}

	return records, nil
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// QuotesRepository persists calculated quotes.
type QuotesRepository struct {
	collection *mongo.Collection
}

// NewQuotesRepository creates a new quotes repository.
func NewQuotesRepository(db *MongoDB) *QuotesRepository {
	return &QuotesRepository{
		collection: db.Quotes,
	}
}

// Create inserts a quote. The caller assigns the id.
func (r *QuotesRepository) Create(ctx context.Context, quote *model.Quote) error {
	if quote.CreatedAt.IsZero() {
		quote.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, quote)
	return err
}

// GetByID returns the quote with the given id, or nil when it does not exist.
func (r *QuotesRepository) GetByID(ctx context.Context, id string) (*model.Quote, error) {
	var quote model.Quote
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&quote)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// ListByAccount returns an account's quotes, newest first.
func (r *QuotesRepository) ListByAccount(ctx context.Context, accountID string, limit int) ([]model.Quote, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{"account_id": accountID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	quotes := []model.Quote{}
	if err := cursor.All(ctx, &quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

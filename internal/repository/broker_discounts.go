package repository

import (
	"context"
	"time"

	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BrokerDiscountDocument represents a per-category broker discount in MongoDB.
type BrokerDiscountDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	CategoryID      string             `bson:"category_id" json:"category_id"`
	DiscountPercent decimal.Decimal    `bson:"discount_percent" json:"discount_percent" swaggertype:"string"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
	UpdatedBy       string             `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
}

// ToModel converts the document to the engine's discount entry.
func (d BrokerDiscountDocument) ToModel() model.BrokerDiscount {
	return model.BrokerDiscount{CategoryID: d.CategoryID, DiscountPercent: d.DiscountPercent}
}

// BrokerDiscountsRepository provides methods for broker discount operations.
type BrokerDiscountsRepository struct {
	collection *mongo.Collection
}

// NewBrokerDiscountsRepository creates a new broker discounts repository.
func NewBrokerDiscountsRepository(db *MongoDB) *BrokerDiscountsRepository {
	return &BrokerDiscountsRepository{
		collection: db.BrokerDiscounts,
	}
}

// List returns all broker discounts ordered by category.
func (r *BrokerDiscountsRepository) List(ctx context.Context) ([]BrokerDiscountDocument, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"category_id": 1}))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []BrokerDiscountDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Upsert creates or replaces the discount for a category and returns the stored document.
func (r *BrokerDiscountsRepository) Upsert(ctx context.Context, categoryID string, percent decimal.Decimal, updatedBy string) (*BrokerDiscountDocument, error) {
	update := bson.M{
		"$set": bson.M{
			"discount_percent": percent,
			"updated_at":       time.Now().UTC(),
			"updated_by":       updatedBy,
		},
		"$setOnInsert": bson.M{"category_id": categoryID},
	}

	var doc BrokerDiscountDocument
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"category_id": categoryID},
		update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Delete removes the discount for a category. It reports whether a document was removed.
func (r *BrokerDiscountsRepository) Delete(ctx context.Context, categoryID string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"category_id": categoryID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

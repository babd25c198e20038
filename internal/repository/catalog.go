package repository

import (
	"context"
	"errors"

	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CatalogRepository stores paper stocks, print sizes, turnaround times,
// product categories and the add-on price list.
// Entries are keyed by their catalog id and returned in insertion order.
type CatalogRepository struct {
	paperStocks *mongo.Collection
	printSizes  *mongo.Collection
	turnarounds *mongo.Collection
	categories  *mongo.Collection
	addOnRates  *mongo.Collection
}

// NewCatalogRepository creates a new catalog repository.
func NewCatalogRepository(db *MongoDB) *CatalogRepository {
	return &CatalogRepository{
		paperStocks: db.PaperStocks,
		printSizes:  db.PrintSizes,
		turnarounds: db.TurnaroundTimes,
		categories:  db.ProductCategories,
		addOnRates:  db.AddOnRates,
	}
}

// GetCatalog returns the stored catalog, or nil when nothing has been stored yet.
// Broker discounts live in their own collection and are not included.
func (r *CatalogRepository) GetCatalog(ctx context.Context) (*model.Catalog, error) {
	var cat model.Catalog

	if err := findAll(ctx, r.paperStocks, &cat.PaperStocks); err != nil {
		return nil, err
	}
	if err := findAll(ctx, r.printSizes, &cat.Sizes); err != nil {
		return nil, err
	}
	if err := findAll(ctx, r.turnarounds, &cat.Turnarounds); err != nil {
		return nil, err
	}
	if cat.IsEmpty() {
		return nil, nil
	}

	if err := findAll(ctx, r.categories, &cat.Categories); err != nil {
		return nil, err
	}
	rates, err := r.getAddOnRates(ctx)
	if err != nil {
		return nil, err
	}
	cat.AddOnRates = rates
	return &cat, nil
}

// SaveCatalog upserts every entry of cat by id. Entries absent from cat are left untouched.
func (r *CatalogRepository) SaveCatalog(ctx context.Context, cat model.Catalog) error {
	for _, p := range cat.PaperStocks {
		if err := upsertByID(ctx, r.paperStocks, p.ID, p); err != nil {
			return err
		}
	}
	for _, s := range cat.Sizes {
		if err := upsertByID(ctx, r.printSizes, s.ID, s); err != nil {
			return err
		}
	}
	for _, t := range cat.Turnarounds {
		if err := upsertByID(ctx, r.turnarounds, t.ID, t); err != nil {
			return err
		}
	}
	for _, c := range cat.Categories {
		if err := upsertByID(ctx, r.categories, c.ID, c); err != nil {
			return err
		}
	}
	if cat.AddOnRates != nil {
		if _, err := r.addOnRates.ReplaceOne(ctx, bson.M{}, *cat.AddOnRates, options.Replace().SetUpsert(true)); err != nil {
			return err
		}
	}
	return nil
}

// getAddOnRates returns the stored price list, or nil when none was stored.
func (r *CatalogRepository) getAddOnRates(ctx context.Context) (*model.AddOnRates, error) {
	var rates model.AddOnRates
	err := r.addOnRates.FindOne(ctx, bson.M{}).Decode(&rates)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rates, nil
}

func upsertByID(ctx context.Context, coll *mongo.Collection, id string, doc interface{}) error {
	_, err := coll.ReplaceOne(ctx, bson.M{"id": id}, doc, options.Replace().SetUpsert(true))
	return err
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, out *[]T) error {
	cursor, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"_id": 1}).SetProjection(bson.M{"_id": 0}))
	if err != nil {
		return err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	return cursor.All(ctx, out)
}

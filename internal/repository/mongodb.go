// Package repository stores the pricing catalog, broker discounts, saved
// quotes and request logs in MongoDB.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	collPaperStocks       = "paper_stocks"
	collPrintSizes        = "print_sizes"
	collTurnaroundTimes   = "turnaround_times"
	collProductCategories = "product_categories"
	collAddOnRates        = "addon_rates"
	collBrokerDiscounts   = "broker_discounts"
	collQuotes            = "quotes"
	collLogs              = "logs"
)

const logsTTLIndex = "logs_ttl"

// MongoConfig tunes the driver connection pool and timeouts.
type MongoConfig struct {
	MaxPoolSize            uint64
	MinPoolSize            uint64
	MaxConnIdleTime        time.Duration
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	// SocketTimeout bounds a single read or write on the wire.
	SocketTimeout time.Duration
	// EnableCompression negotiates zstd, snappy or zlib with the server.
	EnableCompression bool
}

// DefaultMongoConfig sizes the pool for a pricing service whose reads are
// mostly served from the in-process catalog snapshot.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		MaxPoolSize:            50,
		MinPoolSize:            5,
		MaxConnIdleTime:        10 * time.Minute,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		SocketTimeout:          15 * time.Second,
		EnableCompression:      true,
	}
}

// MongoDB holds the client and one handle per collection.
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database

	PaperStocks       *mongo.Collection
	PrintSizes        *mongo.Collection
	TurnaroundTimes   *mongo.Collection
	ProductCategories *mongo.Collection
	// AddOnRates holds a single document with the add-on price list.
	AddOnRates      *mongo.Collection
	BrokerDiscounts *mongo.Collection
	Quotes          *mongo.Collection
	Logs            *mongo.Collection
}

// NewMongoDB connects with DefaultMongoConfig.
func NewMongoDB(uri, databaseName string) (*MongoDB, error) {
	return NewMongoDBWithConfig(uri, databaseName, DefaultMongoConfig())
}

// NewMongoDBWithConfig connects, pings and makes sure every index exists.
// Decimal fields round-trip through the registry from NewRegistry.
func NewMongoDBWithConfig(uri, databaseName string, cfg MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetSocketTimeout(cfg.SocketTimeout).
		SetRetryWrites(true).
		SetRetryReads(true).
		SetRegistry(NewRegistry()).
		SetBSONOptions(BSONOptions())
	if cfg.EnableCompression {
		opts.SetCompressors([]string{"zstd", "snappy", "zlib"})
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(databaseName)
	m := &MongoDB{
		Client:            client,
		Database:          db,
		PaperStocks:       db.Collection(collPaperStocks),
		PrintSizes:        db.Collection(collPrintSizes),
		TurnaroundTimes:   db.Collection(collTurnaroundTimes),
		ProductCategories: db.Collection(collProductCategories),
		AddOnRates:        db.Collection(collAddOnRates),
		BrokerDiscounts:   db.Collection(collBrokerDiscounts),
		Quotes:            db.Collection(collQuotes),
		Logs:              db.Collection(collLogs),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return m, nil
}

// indexPlan lists the indexes each collection needs, apart from the logs TTL.
func (m *MongoDB) indexPlan() map[*mongo.Collection][]mongo.IndexModel {
	uniqueID := []mongo.IndexModel{{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}}

	return map[*mongo.Collection][]mongo.IndexModel{
		m.PaperStocks:       uniqueID,
		m.PrintSizes:        uniqueID,
		m.TurnaroundTimes:   uniqueID,
		m.ProductCategories: uniqueID,
		m.BrokerDiscounts: {{
			Keys:    bson.D{{Key: "category_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		m.Quotes: {{
			Keys: bson.D{{Key: "account_id", Value: 1}, {Key: "created_at", Value: -1}},
		}},
		m.Logs: {
			{Keys: bson.D{{Key: "request_id", Value: 1}}},
			{Keys: bson.D{{Key: "action_type", Value: 1}, {Key: "timestamp", Value: -1}}},
			{Keys: bson.D{{Key: "account_id", Value: 1}, {Key: "timestamp", Value: -1}}},
		},
	}
}

func (m *MongoDB) ensureIndexes(ctx context.Context) error {
	for coll, models := range m.indexPlan() {
		if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", coll.Name(), err)
		}
	}
	return nil
}

// SetLogsTTL makes log entries expire ttl after their timestamp. An existing
// TTL index with a different expiry is replaced. A ttl under one second
// removes expiry.
func (m *MongoDB) SetLogsTTL(ctx context.Context, ttl time.Duration) error {
	if ttl < time.Second {
		if _, err := m.Logs.Indexes().DropOne(ctx, logsTTLIndex); err != nil && !isIndexNotFound(err) {
			return fmt.Errorf("drop logs ttl index: %w", err)
		}
		return nil
	}

	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: 1}},
		Options: options.Index().SetName(logsTTLIndex).SetExpireAfterSeconds(int32(ttl / time.Second)),
	}
	_, err := m.Logs.Indexes().CreateOne(ctx, model)
	if err == nil || !isIndexConflict(err) {
		return err
	}

	if _, err := m.Logs.Indexes().DropOne(ctx, logsTTLIndex); err != nil {
		return fmt.Errorf("replace logs ttl index: %w", err)
	}
	_, err = m.Logs.Indexes().CreateOne(ctx, model)
	return err
}

// Server error codes for index management.
const (
	codeIndexNotFound         = 27
	codeIndexOptionsConflict  = 85
	codeIndexKeySpecsConflict = 86
)

func isIndexConflict(err error) bool {
	var cmdErr mongo.CommandError
	return errors.As(err, &cmdErr) &&
		(cmdErr.Code == codeIndexOptionsConflict || cmdErr.Code == codeIndexKeySpecsConflict)
}

func isIndexNotFound(err error) bool {
	var cmdErr mongo.CommandError
	return errors.As(err, &cmdErr) && cmdErr.Code == codeIndexNotFound
}

// Close disconnects the client.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck pings the primary within two seconds.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}

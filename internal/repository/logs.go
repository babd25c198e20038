package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Log queries return at most this many entries.
const (
	defaultLogQueryLimit = 100
	maxLogQueryLimit     = 1000
)

// LogEntryDocument is one request or audit record in the logs collection.
// Audit records carry ActionType and Fields; request records carry the HTTP
// columns. Both share the broker identity.
type LogEntryDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	Level     string             `bson:"level" json:"level"`
	Message   string             `bson:"message" json:"message"`
	RequestID string             `bson:"request_id,omitempty" json:"request_id,omitempty"`

	Method     string `bson:"method,omitempty" json:"method,omitempty"`
	Path       string `bson:"path,omitempty" json:"path,omitempty"`
	StatusCode int    `bson:"status_code,omitempty" json:"status_code,omitempty"`
	Duration   int64  `bson:"duration_ms,omitempty" json:"duration_ms,omitempty"`
	IP         string `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent  string `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	Error      string `bson:"error,omitempty" json:"error,omitempty"`

	AccountID  string                 `bson:"account_id,omitempty" json:"account_id,omitempty"`
	IsBroker   bool                   `bson:"is_broker,omitempty" json:"is_broker,omitempty"`
	ActionType string                 `bson:"action_type,omitempty" json:"action_type,omitempty"`
	Fields     map[string]interface{} `bson:"fields,omitempty" json:"fields,omitempty"`
}

// stamp fills in the id and timestamp the first time the entry is written.
func (d *LogEntryDocument) stamp(now time.Time) {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	if d.Timestamp.IsZero() {
		d.Timestamp = now
	}
}

// LogsRepository reads and writes the logs collection.
type LogsRepository struct {
	coll *mongo.Collection
}

// NewLogsRepository returns a LogsRepository on db.Logs.
func NewLogsRepository(db *MongoDB) *LogsRepository {
	return &LogsRepository{coll: db.Logs}
}

// Create stores one entry.
func (r *LogsRepository) Create(ctx context.Context, entry *LogEntryDocument) error {
	entry.stamp(time.Now().UTC())
	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("insert log entry: %w", err)
	}
	return nil
}

// CreateMany stores a batch unordered, so one rejected entry does not drop
// the rest of the batch.
func (r *LogsRepository) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	if len(entries) == 0 {
		return nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(entries))
	for _, e := range entries {
		e.stamp(now)
		docs = append(docs, e)
	}

	if _, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false)); err != nil {
		return fmt.Errorf("insert %d log entries: %w", len(docs), err)
	}
	return nil
}

// LogQueryOptions selects entries. Empty fields match everything.
type LogQueryOptions struct {
	RequestID  string
	Level      string
	ActionType string
	AccountID  string
	StartTime  *time.Time
	EndTime    *time.Time
	Limit      int
	Skip       int
}

func (o LogQueryOptions) filter() bson.D {
	f := bson.D{}
	for _, eq := range []struct{ key, val string }{
		{"request_id", o.RequestID},
		{"level", o.Level},
		{"action_type", o.ActionType},
		{"account_id", o.AccountID},
	} {
		if eq.val != "" {
			f = append(f, bson.E{Key: eq.key, Value: eq.val})
		}
	}

	window := bson.D{}
	if o.StartTime != nil {
		window = append(window, bson.E{Key: "$gte", Value: *o.StartTime})
	}
	if o.EndTime != nil {
		window = append(window, bson.E{Key: "$lte", Value: *o.EndTime})
	}
	if len(window) > 0 {
		f = append(f, bson.E{Key: "timestamp", Value: window})
	}
	return f
}

func (o LogQueryOptions) limit() int64 {
	switch {
	case o.Limit <= 0:
		return defaultLogQueryLimit
	case o.Limit > maxLogQueryLimit:
		return maxLogQueryLimit
	default:
		return int64(o.Limit)
	}
}

// Query returns matching entries newest first. Limit defaults to 100 and is
// capped at 1000.
func (r *LogsRepository) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	find := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(opts.limit())
	if opts.Skip > 0 {
		find.SetSkip(int64(opts.Skip))
	}

	cur, err := r.coll.Find(ctx, opts.filter(), find)
	if err != nil {
		return nil, fmt.Errorf("query logs: %w", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	entries := make([]*LogEntryDocument, 0)
	if err := cur.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode logs: %w", err)
	}
	return entries, nil
}

// Count ignores Limit and Skip.
func (r *LogsRepository) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, opts.filter())
	if err != nil {
		return 0, fmt.Errorf("count logs: %w", err)
	}
	return n, nil
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"github.com/guttosm/print-pricing-service/internal/repository"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoggingService stores request and audit entries in the logs collection and
// reads them back for the admin audit endpoint.
type LoggingService interface {
	// CreateLog stores a single log entry.
	CreateLog(ctx context.Context, entry *model.LogEntry) error

	// CreateLogs stores a batch of entries in one insert.
	CreateLogs(ctx context.Context, entries []*model.LogEntry) error

	// QueryLogs returns entries matching opts, newest first.
	QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)

	// CountLogs counts entries matching opts, ignoring Limit and Skip.
	CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

type loggingService struct {
	repo repository.LogsRepositoryInterface
}

// NewLoggingService returns a LoggingService backed by repo.
func NewLoggingService(repo repository.LogsRepositoryInterface) LoggingService {
	return &loggingService{repo: repo}
}

func (s *loggingService) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	return s.repo.Create(ctx, toLogDocument(entry))
}

// CreateLogs skips nil entries and does nothing for an empty batch.
func (s *loggingService) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	docs := make([]*repository.LogEntryDocument, 0, len(entries))
	for _, entry := range entries {
		if entry != nil {
			docs = append(docs, toLogDocument(entry))
		}
	}
	if len(docs) == 0 {
		return nil
	}
	return s.repo.CreateMany(ctx, docs)
}

func (s *loggingService) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	docs, err := s.repo.Query(ctx, toLogQuery(opts))
	if err != nil {
		return nil, err
	}

	entries := make([]model.LogEntry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, fromLogDocument(doc))
	}
	return entries, nil
}

func (s *loggingService) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	q := toLogQuery(opts)
	q.Limit, q.Skip = 0, 0
	return s.repo.Count(ctx, q)
}

func toLogQuery(opts model.LogQueryOptions) repository.LogQueryOptions {
	q := repository.LogQueryOptions{
		RequestID:  opts.RequestID,
		ActionType: opts.ActionType,
		AccountID:  opts.AccountID,
		StartTime:  opts.StartTime,
		EndTime:    opts.EndTime,
		Limit:      opts.Limit,
		Skip:       opts.Skip,
	}
	if opts.Level != "" {
		q.Level = normalizeLevel(opts.Level)
	}
	return q
}

// normalizeLevel folds case and maps anything unrecognised to info.
func normalizeLevel(level string) string {
	switch l := strings.ToLower(strings.TrimSpace(level)); l {
	case "debug", "info", "warn", "error":
		return l
	case "warning":
		return "warn"
	default:
		return "info"
	}
}

// auditFields renders money values as strings so they are stored exactly;
// the Mongo encoder would otherwise write decimal.Decimal as an empty document.
func auditFields(fields map[string]interface{}) map[string]interface{} {
	if len(fields) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		switch d := v.(type) {
		case decimal.Decimal:
			out[k] = d.StringFixed(2)
		case *decimal.Decimal:
			if d != nil {
				out[k] = d.StringFixed(2)
			}
		default:
			out[k] = v
		}
	}
	return out
}

// toLogDocument also assigns an id and timestamp to entry when missing.
func toLogDocument(entry *model.LogEntry) *repository.LogEntryDocument {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	return &repository.LogEntryDocument{
		ID:         entry.ID,
		Timestamp:  entry.Timestamp,
		Level:      normalizeLevel(entry.Level),
		Message:    entry.Message,
		RequestID:  entry.RequestID,
		Method:     entry.Method,
		Path:       entry.Path,
		StatusCode: entry.StatusCode,
		Duration:   entry.Duration,
		IP:         entry.IP,
		UserAgent:  entry.UserAgent,
		Error:      entry.Error,
		AccountID:  entry.AccountID,
		IsBroker:   entry.IsBroker,
		ActionType: entry.ActionType,
		Fields:     auditFields(entry.Fields),
	}
}

func fromLogDocument(doc *repository.LogEntryDocument) model.LogEntry {
	return model.LogEntry{
		ID:         doc.ID,
		Timestamp:  doc.Timestamp,
		Level:      doc.Level,
		Message:    doc.Message,
		RequestID:  doc.RequestID,
		Method:     doc.Method,
		Path:       doc.Path,
		StatusCode: doc.StatusCode,
		Duration:   doc.Duration,
		IP:         doc.IP,
		UserAgent:  doc.UserAgent,
		Error:      doc.Error,
		AccountID:  doc.AccountID,
		IsBroker:   doc.IsBroker,
		ActionType: doc.ActionType,
		Fields:     doc.Fields,
	}
}

//go:build integration

package service

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/print-pricing-service/internal/circuitbreaker"
	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"github.com/guttosm/print-pricing-service/internal/repository"
	"github.com/guttosm/print-pricing-service/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingService_AuditTrail(t *testing.T) {
	ctx := context.Background()

	mongo, err := testutil.SetupMongoDB(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mongo.Cleanup(ctx) })

	db, err := repository.NewMongoDB(mongo.URI, "print_pricing_audit")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(ctx) })
	require.NoError(t, db.SetLogsTTL(ctx, 30*24*time.Hour))

	logs := NewLoggingService(repository.NewLogsRepositoryWithCircuitBreaker(
		repository.NewLogsRepository(db), circuitbreaker.New(circuitbreaker.DefaultConfig())))

	saved := &model.LogEntry{
		Level:      "INFO",
		Message:    "Quote saved",
		RequestID:  "req-save",
		AccountID:  "acct-42",
		IsBroker:   true,
		ActionType: "save_quote",
		Fields: map[string]interface{}{
			"quote_id": "q-1",
			"subtotal": decimal.RequireFromString("162.65"),
		},
	}
	require.NoError(t, logs.CreateLog(ctx, saved))
	assert.False(t, saved.ID.IsZero())

	require.NoError(t, logs.CreateLogs(ctx, []*model.LogEntry{
		{Level: "warning", Message: "HTTP request", RequestID: "req-bad", Method: "POST", Path: "/api/quotes/calculate", StatusCode: 400},
		nil,
		{Level: "info", Message: "Broker discount updated", RequestID: "req-admin", AccountID: "admin-1", ActionType: "update_broker_discount",
			Fields: map[string]interface{}{"category_id": "postcards", "discount_percent": decimal.NewFromInt(25)}},
	}))

	t.Run("decimals are stored as fixed strings", func(t *testing.T) {
		entries, err := logs.QueryLogs(ctx, model.LogQueryOptions{ActionType: "save_quote", AccountID: "acct-42"})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "info", entries[0].Level)
		assert.True(t, entries[0].IsBroker)
		assert.Equal(t, "162.65", entries[0].Fields["subtotal"])

		entries, err = logs.QueryLogs(ctx, model.LogQueryOptions{ActionType: "update_broker_discount"})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "25.00", entries[0].Fields["discount_percent"])
	})

	t.Run("level filter is normalised", func(t *testing.T) {
		entries, err := logs.QueryLogs(ctx, model.LogQueryOptions{Level: "Warning"})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "req-bad", entries[0].RequestID)
		assert.Equal(t, 400, entries[0].StatusCode)
	})

	t.Run("count ignores paging", func(t *testing.T) {
		n, err := logs.CountLogs(ctx, model.LogQueryOptions{Level: "info", Limit: 1, Skip: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("time window", func(t *testing.T) {
		from := time.Now().Add(time.Hour)
		entries, err := logs.QueryLogs(ctx, model.LogQueryOptions{StartTime: &from})
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

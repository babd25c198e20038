package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"github.com/guttosm/print-pricing-service/internal/logger"
	"github.com/guttosm/print-pricing-service/internal/service"
)

// AsyncLoggerConfig sizes the queue between request handlers and the logs collection.
type AsyncLoggerConfig struct {
	// QueueSize is how many entries may wait for a write. Entries beyond it are dropped.
	QueueSize int
	// BatchSize is the most entries written in one insert.
	BatchSize int
	// FlushInterval bounds how long a partial batch waits.
	FlushInterval time.Duration
	// WriteTimeout bounds one batch insert.
	WriteTimeout time.Duration
}

// DefaultAsyncLoggerConfig returns the queue settings used by the server.
func DefaultAsyncLoggerConfig() AsyncLoggerConfig {
	return AsyncLoggerConfig{
		QueueSize:     1024,
		BatchSize:     50,
		FlushInterval: 2 * time.Second,
		WriteTimeout:  5 * time.Second,
	}
}

// AsyncLoggerStats counts what happened to queued entries.
type AsyncLoggerStats struct {
	Accepted int64
	Dropped  int64
	Written  int64
	Failed   int64
}

// AsyncLogger ships request and audit entries to the logs collection in batches,
// off the request path. A full queue drops entries rather than slowing quotes down.
type AsyncLogger struct {
	store service.LoggingService
	cfg   AsyncLoggerConfig

	mu     sync.RWMutex
	closed bool
	queue  chan *model.LogEntry
	done   chan struct{}

	accepted atomic.Int64
	dropped  atomic.Int64
	written  atomic.Int64
	failed   atomic.Int64
}

// NewAsyncLogger starts a logger writing to store. It returns nil without a store.
func NewAsyncLogger(store service.LoggingService, cfg AsyncLoggerConfig) *AsyncLogger {
	if store == nil {
		return nil
	}

	def := DefaultAsyncLoggerConfig()
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = def.QueueSize
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = def.FlushInterval
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}

	al := &AsyncLogger{
		store: store,
		cfg:   cfg,
		queue: make(chan *model.LogEntry, cfg.QueueSize),
		done:  make(chan struct{}),
	}
	go al.run()
	return al
}

// Log queues entry and reports whether it was accepted.
func (al *AsyncLogger) Log(entry *model.LogEntry) bool {
	al.mu.RLock()
	defer al.mu.RUnlock()

	if al.closed {
		al.dropped.Add(1)
		return false
	}
	select {
	case al.queue <- entry:
		al.accepted.Add(1)
		return true
	default:
		al.dropped.Add(1)
		return false
	}
}

// Stop writes whatever is queued and waits for the last batch.
func (al *AsyncLogger) Stop() {
	al.mu.Lock()
	if al.closed {
		al.mu.Unlock()
		<-al.done
		return
	}
	al.closed = true
	close(al.queue)
	al.mu.Unlock()

	<-al.done
}

// Stats returns the current counters.
func (al *AsyncLogger) Stats() AsyncLoggerStats {
	return AsyncLoggerStats{
		Accepted: al.accepted.Load(),
		Dropped:  al.dropped.Load(),
		Written:  al.written.Load(),
		Failed:   al.failed.Load(),
	}
}

func (al *AsyncLogger) run() {
	defer close(al.done)

	ticker := time.NewTicker(al.cfg.FlushInterval)
	defer ticker.Stop()

	batch := make([]*model.LogEntry, 0, al.cfg.BatchSize)
	for {
		select {
		case entry, ok := <-al.queue:
			if !ok {
				al.flush(batch)
				return
			}
			batch = append(batch, entry)
			if len(batch) == al.cfg.BatchSize {
				al.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			al.flush(batch)
			batch = batch[:0]
		}
	}
}

func (al *AsyncLogger) flush(batch []*model.LogEntry) {
	if len(batch) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), al.cfg.WriteTimeout)
	defer cancel()

	n := int64(len(batch))
	if err := al.store.CreateLogs(ctx, batch); err != nil {
		al.failed.Add(n)
		log := logger.Logger()
		log.Warn().Err(err).Int64("entries", n).Msg("Failed to write log batch")
		return
	}
	al.written.Add(n)
}

var activeAsyncLogger atomic.Pointer[AsyncLogger]

// InitAsyncLogger installs the process-wide logger, stopping any previous one.
func InitAsyncLogger(store service.LoggingService, cfg AsyncLoggerConfig) {
	if prev := activeAsyncLogger.Swap(NewAsyncLogger(store, cfg)); prev != nil {
		prev.Stop()
	}
}

// GetAsyncLogger returns the process-wide logger, or nil before InitAsyncLogger.
func GetAsyncLogger() *AsyncLogger {
	return activeAsyncLogger.Load()
}

// StopAsyncLogger flushes and removes the process-wide logger.
func StopAsyncLogger() {
	if prev := activeAsyncLogger.Swap(nil); prev != nil {
		prev.Stop()
	}
}

// shipLogEntry hands entry to the process-wide logger, or writes it from a
// goroutine when none is running.
func shipLogEntry(store service.LoggingService, entry *model.LogEntry) {
	if al := GetAsyncLogger(); al != nil {
		al.Log(entry)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = store.CreateLog(ctx, entry)
	}()
}

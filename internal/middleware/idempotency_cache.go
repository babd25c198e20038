package middleware

import (
	"sync"
	"time"
)

// replayRecord is the stored outcome of one idempotent request. A pending
// record marks a request that is still being handled.
type replayRecord struct {
	pending     bool
	status      int
	contentType string
	location    string
	body        []byte
	storedAt    time.Time
}

// replayStore holds the outcomes of idempotent requests until ttl passes.
type replayStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	records map[string]*replayRecord
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

func newReplayStore(ttl time.Duration) *replayStore {
	s := &replayStore{
		ttl:     ttl,
		records: make(map[string]*replayRecord),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go s.pruneLoop()
	return s
}

// reserve claims fingerprint for a new request. When it is already claimed
// the existing record is returned instead; check its pending flag.
func (s *replayStore) reserve(fingerprint string) (*replayRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.records[fingerprint]; ok {
		if rec.pending || s.now().Sub(rec.storedAt) < s.ttl {
			copied := *rec
			return &copied, false
		}
	}
	s.records[fingerprint] = &replayRecord{pending: true, storedAt: s.now()}
	return nil, true
}

// complete stores the outcome for a reserved fingerprint.
func (s *replayStore) complete(fingerprint string, rec replayRecord) {
	rec.pending = false

	s.mu.Lock()
	defer s.mu.Unlock()
	rec.storedAt = s.now()
	s.records[fingerprint] = &rec
}

// release drops a reservation so the request can be retried.
func (s *replayStore) release(fingerprint string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.records[fingerprint]; ok && rec.pending {
		delete(s.records, fingerprint)
	}
}

func (s *replayStore) pruneLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.prune()
		case <-s.stop:
			return
		}
	}
}

// prune drops completed records older than ttl. Pending records stay until
// their request finishes.
func (s *replayStore) prune() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for fp, rec := range s.records {
		if !rec.pending && now.Sub(rec.storedAt) >= s.ttl {
			delete(s.records, fp)
		}
	}
}

func (s *replayStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Stop ends background pruning. It is safe to call more than once.
func (s *replayStore) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

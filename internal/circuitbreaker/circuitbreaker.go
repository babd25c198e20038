// Package circuitbreaker stops calls to a failing MongoDB collection so quote
// traffic falls back to the built-in catalog instead of queueing on timeouts.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrCircuitOpen is returned instead of calling a store whose breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State is the position of a breaker.
type State int

const (
	// StateClosed lets every call through.
	StateClosed State = iota
	// StateOpen rejects calls until the cool-down passes.
	StateOpen
	// StateHalfOpen lets one trial call through at a time.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Config holds circuit breaker configuration.
type Config struct {
	// FailureThreshold is how many failures in a row open the breaker.
	FailureThreshold int
	// SuccessThreshold is how many trial successes in a row close it again.
	SuccessThreshold int
	// Timeout is the cool-down before an open breaker admits a trial call.
	Timeout time.Duration
	// Name labels logs and the circuit_breaker_state gauge.
	Name string
	// OnStateChange is called on creation and after every transition, with the
	// breaker lock held. It must not call back into the breaker.
	OnStateChange func(name string, from, to State)
	// IsFailure decides whether an error counts against the store. The default
	// counts everything except a caller cancelling its request.
	IsFailure func(error) bool
}

// DefaultConfig returns a default circuit breaker configuration.
func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
		Name:             "circuit-breaker",
	}
}

func countsAsFailure(err error) bool {
	return !errors.Is(err, context.Canceled)
}

// CircuitBreaker guards one store.
type CircuitBreaker struct {
	cfg Config
	now func() time.Time

	mu        sync.Mutex
	state     State
	failures  int
	successes int
	openedAt  time.Time
	lastFail  time.Time
	trialBusy bool
	rejected  int64
}

// New creates a closed breaker.
func New(cfg Config) *CircuitBreaker {
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = 1
	}
	if cfg.SuccessThreshold < 1 {
		cfg.SuccessThreshold = 1
	}
	if cfg.IsFailure == nil {
		cfg.IsFailure = countsAsFailure
	}
	if cfg.OnStateChange != nil {
		cfg.OnStateChange(cfg.Name, StateClosed, StateClosed)
	}
	return &CircuitBreaker{cfg: cfg, now: time.Now}
}

// Name returns the configured breaker name.
func (cb *CircuitBreaker) Name() string {
	return cb.cfg.Name
}

// Execute runs fn unless the breaker is open. A context that is already done
// returns its error without calling fn or touching the counters.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	trial, err := cb.admit()
	if err != nil {
		return err
	}

	err = fn()
	cb.record(trial, err)
	return err
}

// admit decides whether a call may run and whether it is a half-open trial.
func (cb *CircuitBreaker) admit() (trial bool, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen && cb.now().Sub(cb.openedAt) >= cb.cfg.Timeout {
		cb.transition(StateHalfOpen)
		cb.successes = 0
	}

	switch cb.state {
	case StateOpen:
		cb.rejected++
		return false, ErrCircuitOpen
	case StateHalfOpen:
		if cb.trialBusy {
			cb.rejected++
			return false, ErrCircuitOpen
		}
		cb.trialBusy = true
		return true, nil
	default:
		return false, nil
	}
}

func (cb *CircuitBreaker) record(trial bool, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if trial {
		cb.trialBusy = false
	}

	if err != nil && cb.cfg.IsFailure(err) {
		cb.failures++
		cb.lastFail = cb.now()
		if cb.state == StateHalfOpen || cb.failures >= cb.cfg.FailureThreshold {
			cb.open()
		}
		return
	}

	cb.failures = 0
	if cb.state == StateHalfOpen {
		cb.successes++
		if cb.successes >= cb.cfg.SuccessThreshold {
			cb.transition(StateClosed)
			cb.successes = 0
		}
	}
}

func (cb *CircuitBreaker) open() {
	cb.openedAt = cb.now()
	if cb.state == StateOpen {
		return
	}
	cb.transition(StateOpen)
	log.Warn().
		Str("circuit_breaker", cb.cfg.Name).
		Int("failure_count", cb.failures).
		Dur("cool_down", cb.cfg.Timeout).
		Msg("Circuit breaker opened")
}

// transition changes state and notifies. The caller holds mu.
func (cb *CircuitBreaker) transition(to State) {
	from := cb.state
	if from == to {
		return
	}
	cb.state = to
	if to == StateClosed {
		log.Info().Str("circuit_breaker", cb.cfg.Name).Msg("Circuit breaker closed")
	}
	if cb.cfg.OnStateChange != nil {
		cb.cfg.OnStateChange(cb.cfg.Name, from, to)
	}
}

// State returns the current state of the circuit breaker.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// IsOpen reports whether calls are currently rejected outright.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.State() == StateOpen
}

// Stats is a point-in-time view of a breaker for the health endpoint.
type Stats struct {
	State        string
	FailureCount int
	SuccessCount int
	Rejected     int64
	LastFailure  time.Time
	IsHealthy    bool
}

// GetStats returns current circuit breaker statistics.
func (cb *CircuitBreaker) GetStats() Stats {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return Stats{
		State:        cb.state.String(),
		FailureCount: cb.failures,
		SuccessCount: cb.successes,
		Rejected:     cb.rejected,
		LastFailure:  cb.lastFail,
		IsHealthy:    cb.state == StateClosed,
	}
}

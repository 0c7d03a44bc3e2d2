package infra

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned by Execute while the breaker is tripped.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CBState is the breaker state: closed (normal), open (fast-fail) or
// half-open (a probe call is allowed through to test recovery).
type CBState int

const (
	CBClosed CBState = iota
	CBOpen
	CBHalfOpen
)

func (s CBState) String() string {
	switch s {
	case CBClosed:
		return "closed"
	case CBOpen:
		return "open"
	case CBHalfOpen:
		return "half-open"
	}
	return "unknown"
}

// CircuitBreakerConfig tunes the trip and recovery thresholds.
type CircuitBreakerConfig struct {
	FailureThreshold int           // consecutive failures that trip the breaker
	SuccessThreshold int           // consecutive half-open successes that close it
	OpenTimeout      time.Duration // time spent open before allowing a probe
}

// DefaultCBConfig is tuned for the checkout gateway: trip after 5 failures,
// probe after a minute, close again after 2 clean sessions.
func DefaultCBConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		OpenTimeout:      60 * time.Second,
	}
}

// CircuitBreaker guards calls to the payment provider so a dead provider
// fails fast instead of tying up request handlers.
type CircuitBreaker struct {
	mu        sync.Mutex
	cfg       CircuitBreakerConfig
	state     CBState
	failures  int
	successes int
	openedAt  time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	def := DefaultCBConfig()
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = def.SuccessThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = def.OpenTimeout
	}
	return &CircuitBreaker{cfg: cfg, state: CBClosed}
}

// State reports the current state, promoting open to half-open once the
// open timeout has elapsed.
func (cb *CircuitBreaker) State() CBState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.maybeProbe()
	return cb.state
}

// Execute runs fn unless the breaker is open, in which case it returns
// ErrCircuitOpen without calling fn. The result of fn feeds the state machine.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	cb.mu.Lock()
	cb.maybeProbe()
	if cb.state == CBOpen {
		cb.mu.Unlock()
		return ErrCircuitOpen
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	cb.record(err)
	cb.mu.Unlock()
	return err
}

// maybeProbe transitions open → half-open after the timeout. Caller holds mu.
func (cb *CircuitBreaker) maybeProbe() {
	if cb.state == CBOpen && time.Since(cb.openedAt) >= cb.cfg.OpenTimeout {
		cb.state = CBHalfOpen
		cb.successes = 0
	}
}

// record advances the state machine with one call outcome. Caller holds mu.
func (cb *CircuitBreaker) record(err error) {
	if err != nil {
		cb.failures++
		cb.openedAt = time.Now()
		if cb.state == CBHalfOpen || cb.failures >= cb.cfg.FailureThreshold {
			cb.state = CBOpen
			cb.failures = 0
			cb.successes = 0
		}
		return
	}

	switch cb.state {
	case CBClosed:
		cb.failures = 0
	case CBHalfOpen:
		cb.successes++
		if cb.successes >= cb.cfg.SuccessThreshold {
			cb.state = CBClosed
			cb.failures = 0
			cb.successes = 0
		}
	}
}

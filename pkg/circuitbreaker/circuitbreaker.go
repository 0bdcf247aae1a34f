package circuitbreaker

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrOpen is returned without calling fn while the breaker is open.
var ErrOpen = errors.New("circuit breaker is open")

type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

type Settings struct {
	Name string
	// MaxFailures is the number of consecutive failures that opens the breaker.
	MaxFailures int
	// Timeout is how long the breaker stays open before letting a probe through.
	Timeout time.Duration
	// IsFailure decides whether an error counts against the breaker. Defaults to err != nil.
	IsFailure func(err error) bool
	// IsExcluded marks errors that leave the breaker untouched, neither failure nor success.
	IsExcluded func(err error) bool
	// Now is used by tests.
	Now func() time.Time
}

type CircuitBreaker struct {
	name        string
	maxFailures int
	timeout     time.Duration
	isFailure   func(error) bool
	isExcluded  func(error) bool
	now         func() time.Time

	mu       sync.Mutex
	state    State
	failures int
	openedAt time.Time
	probing  bool
}

func NewCircuitBreaker(settings Settings) *CircuitBreaker {
	cb := &CircuitBreaker{
		name:        settings.Name,
		maxFailures: settings.MaxFailures,
		timeout:     settings.Timeout,
		isFailure:   settings.IsFailure,
		isExcluded:  settings.IsExcluded,
		now:         settings.Now,
	}
	if cb.maxFailures <= 0 {
		cb.maxFailures = 5
	}
	if cb.timeout <= 0 {
		cb.timeout = 30 * time.Second
	}
	if cb.isFailure == nil {
		cb.isFailure = func(err error) bool { return err != nil }
	}
	if cb.isExcluded == nil {
		cb.isExcluded = func(error) bool { return false }
	}
	if cb.now == nil {
		cb.now = time.Now
	}
	return cb
}

// State reports the current state, moving open to half-open once the timeout has passed.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.currentState()
}

func (cb *CircuitBreaker) currentState() State {
	if cb.state == StateOpen && cb.now().Sub(cb.openedAt) >= cb.timeout {
		cb.setState(StateHalfOpen)
	}
	return cb.state
}

func (cb *CircuitBreaker) setState(s State) {
	if cb.state == s {
		return
	}
	log.Info().Str("breaker", cb.name).Str("from", cb.state.String()).Str("to", s.String()).Msg("circuit breaker state changed")
	cb.state = s
}

// Execute runs fn unless the breaker is open. While half-open only one call probes
// the upstream; concurrent callers get ErrOpen.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	cb.mu.Lock()
	switch cb.currentState() {
	case StateOpen:
		cb.mu.Unlock()
		return ErrOpen
	case StateHalfOpen:
		if cb.probing {
			cb.mu.Unlock()
			return ErrOpen
		}
		cb.probing = true
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.probing = false

	if err != nil && cb.isExcluded(err) {
		return err
	}

	if cb.isFailure(err) {
		cb.failures++
		if cb.state == StateHalfOpen || cb.failures >= cb.maxFailures {
			cb.openedAt = cb.now()
			cb.setState(StateOpen)
		}
		return err
	}

	cb.failures = 0
	cb.setState(StateClosed)
	return err
}

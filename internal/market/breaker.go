package market

import (
	"errors"
	"sync"
	"time"
)

// ErrUnavailable is returned when the circuit breaker is open.
var ErrUnavailable = errors.New("market data provider unavailable")

const (
	failureThreshold = 5
	resetTimeout     = 5 * time.Minute
)

// CircuitBreaker trips after consecutive upstream failures and blocks calls
// until the reset timeout elapses, after which one probe request is allowed
// through (half-open).
type CircuitBreaker struct {
	mu           sync.Mutex
	failureCount int
	openedAt     time.Time

	// now is swappable for tests.
	now func() time.Time
}

// NewCircuitBreaker creates a closed circuit breaker.
func NewCircuitBreaker() *CircuitBreaker {
	return &CircuitBreaker{now: time.Now}
}

// Allow returns ErrUnavailable while the circuit is open. Once the reset
// timeout has elapsed the breaker moves to half-open and the call proceeds.
func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.openedAt.IsZero() {
		return nil
	}
	if b.now().Sub(b.openedAt) < resetTimeout {
		return ErrUnavailable
	}
	b.openedAt = time.Time{}
	return nil
}

// RecordSuccess closes the circuit and clears the failure count.
func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failureCount = 0
	b.openedAt = time.Time{}
}

// RecordFailure increments the failure count and opens the circuit at the
// threshold. Returns true if the circuit opened on this call.
func (b *CircuitBreaker) RecordFailure() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failureCount++
	if b.failureCount >= failureThreshold && b.openedAt.IsZero() {
		b.openedAt = b.now()
		return true
	}
	return false
}

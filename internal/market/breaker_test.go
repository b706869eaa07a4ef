package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakerStaysClosedBelowThreshold(t *testing.T) {
	b := NewCircuitBreaker()

	for i := 0; i < failureThreshold-1; i++ {
		assert.False(t, b.RecordFailure())
	}
	assert.NoError(t, b.Allow())
}

func TestBreakerOpensAtThreshold(t *testing.T) {
	b := NewCircuitBreaker()

	for i := 0; i < failureThreshold-1; i++ {
		require.False(t, b.RecordFailure())
	}
	assert.True(t, b.RecordFailure())
	assert.ErrorIs(t, b.Allow(), ErrUnavailable)
}

func TestBreakerHalfOpenAfterTimeout(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b := NewCircuitBreaker()
	b.now = func() time.Time { return now }

	for i := 0; i < failureThreshold; i++ {
		b.RecordFailure()
	}
	require.ErrorIs(t, b.Allow(), ErrUnavailable)

	// Just before the reset timeout the circuit stays open
	now = now.Add(resetTimeout - time.Second)
	assert.ErrorIs(t, b.Allow(), ErrUnavailable)

	// After the timeout one probe is allowed through
	now = now.Add(2 * time.Second)
	assert.NoError(t, b.Allow())
}

func TestBreakerSuccessResets(t *testing.T) {
	b := NewCircuitBreaker()

	for i := 0; i < failureThreshold-1; i++ {
		b.RecordFailure()
	}
	b.RecordSuccess()

	// The count starts over after a success
	assert.False(t, b.RecordFailure())
	assert.NoError(t, b.Allow())
}

func TestBreakerReopensOnProbeFailure(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b := NewCircuitBreaker()
	b.now = func() time.Time { return now }

	for i := 0; i < failureThreshold; i++ {
		b.RecordFailure()
	}

	now = now.Add(resetTimeout + time.Second)
	require.NoError(t, b.Allow())

	// Failed probe trips the breaker again immediately
	assert.True(t, b.RecordFailure())
	assert.ErrorIs(t, b.Allow(), ErrUnavailable)
}

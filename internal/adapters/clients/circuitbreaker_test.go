package clients

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-manager/internal/platform/config"
)

type transition struct{ from, to State }

// testBreaker returns a breaker on a fake clock and the transitions it reports.
func testBreaker(maxFailures, halfOpenLimit int) (*breaker, *time.Time, *[]transition) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	var seen []transition

	b := newBreaker(config.CircuitBreakerConfig{
		MaxFailures:   maxFailures,
		Timeout:       30 * time.Second,
		HalfOpenLimit: halfOpenLimit,
	}, func(from, to State) {
		seen = append(seen, transition{from, to})
	})
	b.now = func() time.Time { return clock }

	return b, &clock, &seen
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	b, _, seen := testBreaker(3, 1)

	require.True(t, b.Allow())
	b.Done(false)
	b.Done(false)
	b.Done(true)
	assert.Equal(t, StateClosed, b.State(), "a success resets the failure streak")

	b.Done(false)
	b.Done(false)
	assert.Equal(t, StateClosed, b.State())

	b.Done(false)
	assert.Equal(t, StateOpen, b.State())
	assert.False(t, b.Allow())
	assert.Equal(t, []transition{{StateClosed, StateOpen}}, *seen)
}

func TestBreaker_HalfOpenProbes(t *testing.T) {
	tests := []struct {
		name     string
		outcomes []bool
		want     State
	}{
		{name: "enough successes close", outcomes: []bool{true, true}, want: StateClosed},
		{name: "one success stays half-open", outcomes: []bool{true}, want: StateHalfOpen},
		{name: "failure reopens", outcomes: []bool{true, false}, want: StateOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, clock, _ := testBreaker(1, 2)

			b.Done(false)
			require.Equal(t, StateOpen, b.State())

			*clock = clock.Add(31 * time.Second)
			require.True(t, b.Allow())
			require.True(t, b.Allow())
			assert.False(t, b.Allow(), "probes are capped at the half-open limit")
			require.Equal(t, StateHalfOpen, b.State())

			for _, ok := range tt.outcomes {
				b.Done(ok)
			}

			assert.Equal(t, tt.want, b.State())
		})
	}
}

func TestBreaker_StaysOpenUntilTimeout(t *testing.T) {
	b, clock, _ := testBreaker(1, 1)
	b.Done(false)

	*clock = clock.Add(29 * time.Second)
	assert.False(t, b.Allow())
	assert.Equal(t, time.Second, b.RetryAfter())

	*clock = clock.Add(time.Second)
	assert.True(t, b.Allow())
	assert.Zero(t, b.RetryAfter())
}

func TestBreaker_RetryAfterClosed(t *testing.T) {
	b, _, _ := testBreaker(1, 1)

	assert.Zero(t, b.RetryAfter())
}

func TestBreaker_CallbackMayReadState(t *testing.T) {
	var observed State

	var b *breaker
	b = newBreaker(config.CircuitBreakerConfig{MaxFailures: 1, Timeout: time.Minute, HalfOpenLimit: 1}, func(_, _ State) {
		observed = b.State()
	})

	b.Done(false)

	assert.Equal(t, StateOpen, observed)
}

func TestBreaker_Concurrent(t *testing.T) {
	b := newBreaker(config.CircuitBreakerConfig{MaxFailures: 50, Timeout: time.Millisecond, HalfOpenLimit: 5}, nil)

	var wg sync.WaitGroup
	for i := range 500 {
		wg.Go(func() {
			if b.Allow() {
				b.Done(i%3 != 0)
			}
		})
	}
	wg.Wait()

	assert.Contains(t, []State{StateClosed, StateOpen, StateHalfOpen}, b.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", State(99).String())
	assert.Equal(t, "unknown", State(-1).String())
}

package clients

import (
	"sync"
	"time"

	"github.com/jsamuelsen/quote-manager/internal/platform/config"
)

// State is the position of the circuit guarding the remote quote service.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

var stateNames = [...]string{"closed", "open", "half-open"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}

	return stateNames[s]
}

// breaker fails calls fast once the remote has failed MaxFailures times in
// a row. After Timeout it lets up to HalfOpenLimit probes through; that
// many successes close it again and any failure reopens it.
type breaker struct {
	cfg      config.CircuitBreakerConfig
	onChange func(from, to State)
	now      func() time.Time

	mu       sync.Mutex
	state    State
	streak   int // failures while closed, successes while half-open
	probes   int // half-open calls in flight
	openedAt time.Time
}

// newBreaker returns a closed breaker. onChange, if set, runs after every
// transition without the breaker's lock held.
func newBreaker(cfg config.CircuitBreakerConfig, onChange func(from, to State)) *breaker {
	return &breaker{cfg: cfg, onChange: onChange, now: time.Now}
}

// Allow reports whether a call may go out. An open breaker whose timeout
// has elapsed moves to half-open and admits the caller as the first probe.
func (b *breaker) Allow() bool {
	b.mu.Lock()

	allowed := false
	from := b.state

	switch b.state {
	case StateClosed:
		allowed = true
	case StateOpen:
		if b.now().Sub(b.openedAt) >= b.cfg.Timeout {
			b.moveTo(StateHalfOpen)
			b.probes = 1
			allowed = true
		}
	case StateHalfOpen:
		if b.probes < b.cfg.HalfOpenLimit {
			b.probes++
			allowed = true
		}
	}

	to := b.state
	b.mu.Unlock()

	b.report(from, to)

	return allowed
}

// Done records the outcome of a call that Allow let through.
func (b *breaker) Done(ok bool) {
	b.mu.Lock()

	from := b.state

	switch b.state {
	case StateClosed:
		if ok {
			b.streak = 0
			break
		}

		b.streak++
		if b.streak >= b.cfg.MaxFailures {
			b.moveTo(StateOpen)
		}
	case StateHalfOpen:
		b.probes--
		if !ok {
			b.moveTo(StateOpen)
			break
		}

		b.streak++
		if b.streak >= b.cfg.HalfOpenLimit {
			b.moveTo(StateClosed)
		}
	}

	to := b.state
	b.mu.Unlock()

	b.report(from, to)
}

func (b *breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.state
}

// RetryAfter is how long an open breaker keeps failing calls; zero otherwise.
func (b *breaker) RetryAfter() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != StateOpen {
		return 0
	}

	return max(b.cfg.Timeout-b.now().Sub(b.openedAt), 0)
}

// moveTo must be called with mu held.
func (b *breaker) moveTo(s State) {
	b.state = s
	b.streak = 0

	if s == StateOpen {
		b.openedAt = b.now()
	}
}

func (b *breaker) report(from, to State) {
	if from != to && b.onChange != nil {
		b.onChange(from, to)
	}
}

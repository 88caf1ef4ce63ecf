package resilience

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

var (
	ErrCircuitOpen     = errors.New("circuit breaker is open")
	ErrTooManyRequests = errors.New("too many requests")
)

// State represents the circuit breaker state
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

// String returns the string representation of the state
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

// Settings configures the circuit breaker behavior
type Settings struct {
	// MaxRequests is the number of trial attempts allowed while half-open
	MaxRequests uint32
	// Timeout is how long the breaker stays open before allowing a trial
	Timeout time.Duration
	// ReadyToTrip decides, after a failure while closed, whether to open
	ReadyToTrip func(counts Counts) bool
	// OnStateChange is called whenever the state changes
	OnStateChange func(name string, from State, to State)
	// Clock defaults to the real clock
	Clock clockwork.Clock
}

// Counts holds the statistics of the current generation
type Counts struct {
	Attempts             uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

// Breaker guards an operation that fails repeatedly while its peer is
// unavailable, such as dialing the host before it is listening.
type Breaker struct {
	name     string
	settings Settings
	clock    clockwork.Clock

	mu         sync.Mutex
	state      State
	counts     Counts
	openUntil  time.Time
	generation uint64
}

// New creates a new circuit breaker with the given settings
func New(name string, settings Settings) *Breaker {
	if settings.MaxRequests == 0 {
		settings.MaxRequests = 1
	}
	if settings.Timeout == 0 {
		settings.Timeout = 5 * time.Second
	}
	if settings.ReadyToTrip == nil {
		settings.ReadyToTrip = func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 3
		}
	}
	if settings.Clock == nil {
		settings.Clock = clockwork.NewRealClock()
	}

	return &Breaker{
		name:     name,
		settings: settings,
		clock:    settings.Clock,
		state:    StateClosed,
	}
}

// Name returns the name of the circuit breaker
func (b *Breaker) Name() string {
	return b.name
}

// State returns the current state of the circuit breaker
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.currentState(b.clock.Now())
}

// Counts returns a copy of the current counts
func (b *Breaker) Counts() Counts {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.counts
}

// Cooldown returns how long until an open breaker allows a trial attempt.
// Zero when the breaker is not open.
func (b *Breaker) Cooldown() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.clock.Now()
	if b.currentState(now) != StateOpen {
		return 0
	}
	return b.openUntil.Sub(now)
}

// Do runs fn if the breaker accepts it and records the outcome.
func (b *Breaker) Do(fn func() error) error {
	generation, err := b.before()
	if err != nil {
		return err
	}

	defer func() {
		if e := recover(); e != nil {
			b.after(generation, false)
			panic(e)
		}
	}()

	err = fn()
	b.after(generation, err == nil)
	return err
}

func (b *Breaker) before() (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.currentState(b.clock.Now()) {
	case StateOpen:
		return b.generation, ErrCircuitOpen
	case StateHalfOpen:
		if b.counts.Attempts >= b.settings.MaxRequests {
			return b.generation, ErrTooManyRequests
		}
	}

	b.counts.Attempts++
	return b.generation, nil
}

func (b *Breaker) after(generation uint64, success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.clock.Now()
	state := b.currentState(now)
	if generation != b.generation {
		return
	}

	if success {
		b.counts.ConsecutiveSuccesses++
		b.counts.ConsecutiveFailures = 0
		if state == StateHalfOpen && b.counts.ConsecutiveSuccesses >= b.settings.MaxRequests {
			b.setState(StateClosed, now)
		}
		return
	}

	b.counts.ConsecutiveFailures++
	b.counts.ConsecutiveSuccesses = 0
	switch state {
	case StateClosed:
		if b.settings.ReadyToTrip(b.counts) {
			b.setState(StateOpen, now)
		}
	case StateHalfOpen:
		b.setState(StateOpen, now)
	}
}

// currentState must be called with mu held.
func (b *Breaker) currentState(now time.Time) State {
	if b.state == StateOpen && !now.Before(b.openUntil) {
		b.setState(StateHalfOpen, now)
	}
	return b.state
}

func (b *Breaker) setState(state State, now time.Time) {
	if b.state == state {
		return
	}

	prev := b.state
	b.state = state
	b.generation++
	b.counts = Counts{}

	if state == StateOpen {
		b.openUntil = now.Add(b.settings.Timeout)
	}

	if b.settings.OnStateChange != nil {
		b.settings.OnStateChange(b.name, prev, state)
	}
}

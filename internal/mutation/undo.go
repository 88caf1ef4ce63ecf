package mutation

import (
	"sync"
	"time"

	"github.com/GriffinCanCode/ignition/companion/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ignition/companion/internal/shared/id"
	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
	"github.com/GriffinCanCode/ignition/companion/internal/view"
	"github.com/jonboulle/clockwork"
)

// DefaultUndoWindow is how long a delete can be undone.
const DefaultUndoWindow = 5 * time.Second

type undoOffer struct {
	token    string
	snapshot types.ManagedApp
	index    int
	timer    clockwork.Timer
}

// UndoManager holds at most one live undo offer.
type UndoManager struct {
	clock    clockwork.Clock
	window   time.Duration
	notifier view.Notifier
	metrics  *monitoring.Metrics

	mu      sync.Mutex
	current *undoOffer
}

// NewUndoManager creates a manager whose offers last window.
func NewUndoManager(clock clockwork.Clock, window time.Duration, notifier view.Notifier, metrics *monitoring.Metrics) *UndoManager {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if window <= 0 {
		window = DefaultUndoWindow
	}
	return &UndoManager{clock: clock, window: window, notifier: notifier, metrics: metrics}
}

// Offer shows an undo affordance for snapshot, replacing any live offer.
func (m *UndoManager) Offer(snapshot types.ManagedApp, index int, message string) view.UndoOffer {
	m.mu.Lock()
	defer m.mu.Unlock()

	if prev := m.current; prev != nil {
		prev.timer.Stop()
		m.current = nil
		m.notifier.HideUndo(prev.token)
		m.metrics.RecordUndo("superseded")
	}

	offer := &undoOffer{
		token:    id.NewUndoToken().String(),
		snapshot: snapshot,
		index:    index,
	}
	token := offer.token
	offer.timer = m.clock.AfterFunc(m.window, func() { m.expire(token) })
	m.current = offer

	shown := view.UndoOffer{
		Token:   token,
		Message: message,
		Expires: m.clock.Now().Add(m.window),
	}
	m.notifier.ShowUndo(shown)
	m.metrics.RecordUndo("offered")
	return shown
}

// Take consumes the offer named by token. It reports false once the offer
// has expired, been superseded or already been taken.
func (m *UndoManager) Take(token string) (types.ManagedApp, int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	offer := m.current
	if offer == nil || offer.token != token {
		return types.ManagedApp{}, 0, false
	}
	offer.timer.Stop()
	m.current = nil
	m.notifier.HideUndo(token)
	m.metrics.RecordUndo("taken")
	return offer.snapshot, offer.index, true
}

// Current returns the live offer's token.
func (m *UndoManager) Current() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return "", false
	}
	return m.current.token, true
}

// Close drops the live offer without notifying.
func (m *UndoManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		m.current.timer.Stop()
		m.current = nil
	}
}

func (m *UndoManager) expire(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil || m.current.token != token {
		return
	}
	m.current = nil
	m.notifier.HideUndo(token)
	m.metrics.RecordUndo("expired")
}

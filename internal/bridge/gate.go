package bridge

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/GriffinCanCode/ignition/companion/internal/infrastructure/monitoring"
	"go.uber.org/zap"
)

// Call is a remote operation in flight.
type Call struct {
	ID    string
	Op    string
	Args  []any
	Reply json.RawMessage
	Error error
	Done  chan *Call
}

// Complete records the outcome and signals Done. Done must be buffered.
func (c *Call) Complete(reply json.RawMessage, err error) {
	c.Reply = reply
	c.Error = err
	select {
	case c.Done <- c:
	default:
	}
}

// Transport carries calls to the host. Go must have written the request
// before it returns, so calls reach the host in the order Go was called.
// Failures are reported through the returned Call.
type Transport interface {
	Go(op string, args []any, done chan *Call) *Call
}

// Invoker issues a remote call and waits for its reply.
type Invoker interface {
	Invoke(ctx context.Context, op string, args ...any) (json.RawMessage, error)
}

type queued struct {
	op   string
	args []any
	done chan *Call
}

// Gate parks calls until a Transport attaches.
type Gate struct {
	logger  *zap.Logger
	metrics *monitoring.Metrics

	mu        sync.Mutex
	transport Transport
	queue     []*queued
	ready     chan struct{}
}

// NewGate creates a detached gate.
func NewGate(logger *zap.Logger, metrics *monitoring.Metrics) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{
		logger:  logger,
		metrics: metrics,
		ready:   make(chan struct{}),
	}
}

// Invoke sends op to the host, queueing it if no transport is attached yet.
// Cancelling ctx stops the wait; a queued call is withdrawn, a dispatched
// call is left to complete on the host.
func (g *Gate) Invoke(ctx context.Context, op string, args ...any) (json.RawMessage, error) {
	done := make(chan *Call, 1)

	g.mu.Lock()
	var item *queued
	if g.transport != nil {
		g.transport.Go(op, args, done)
	} else {
		item = &queued{op: op, args: args, done: done}
		g.queue = append(g.queue, item)
		g.metrics.IncQueued()
	}
	g.mu.Unlock()

	select {
	case call := <-done:
		if call.Error != nil {
			return nil, &RemoteError{Op: op, Err: call.Error}
		}
		return call.Reply, nil
	case <-ctx.Done():
		if item != nil {
			g.withdraw(item)
		}
		return nil, ctx.Err()
	}
}

func (g *Gate) withdraw(item *queued) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i, q := range g.queue {
		if q == item {
			g.queue = append(g.queue[:i], g.queue[i+1:]...)
			return
		}
	}
}

// Attach connects the gate to t, flushing queued calls in order. Calls
// issued concurrently with Attach are sent after the flush.
func (g *Gate) Attach(t Transport) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.transport != nil {
		return ErrAlreadyAttached
	}
	g.transport = t

	flushed := len(g.queue)
	for _, q := range g.queue {
		t.Go(q.op, q.args, q.done)
	}
	g.queue = nil
	close(g.ready)

	g.metrics.SetAttached()
	g.logger.Info("bridge attached", zap.Int("flushed", flushed))
	return nil
}

// Ready is closed once a transport attaches.
func (g *Gate) Ready() <-chan struct{} {
	return g.ready
}

// Attached reports whether a transport has attached.
func (g *Gate) Attached() bool {
	select {
	case <-g.ready:
		return true
	default:
		return false
	}
}

// Pending returns the number of queued calls.
func (g *Gate) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.queue)
}

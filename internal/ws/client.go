package ws

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/GriffinCanCode/ignition/companion/internal/bridge"
	"github.com/GriffinCanCode/ignition/companion/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ignition/companion/internal/shared/id"
	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// PushHandler receives host pushes in delivery order.
type PushHandler func(status types.Status, entries []types.LogEvent)

// Client is a bridge.Transport over one WebSocket connection.
type Client struct {
	conn    *websocket.Conn
	onPush  PushHandler
	logger  *zap.Logger
	metrics *monitoring.Metrics

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[string]*bridge.Call
	closed  bool
	err     error

	done chan struct{}
}

// Dial connects to endpoint and starts the reader.
func Dial(ctx context.Context, endpoint string, handshake time.Duration, onPush PushHandler, logger *zap.Logger, metrics *monitoring.Metrics) (*Client, error) {
	dialer := websocket.Dialer{HandshakeTimeout: handshake}
	conn, _, err := dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", endpoint, err)
	}
	return NewClient(conn, onPush, logger, metrics), nil
}

// NewClient wraps an established connection and starts the reader.
func NewClient(conn *websocket.Conn, onPush PushHandler, logger *zap.Logger, metrics *monitoring.Metrics) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if onPush == nil {
		onPush = func(types.Status, []types.LogEvent) {}
	}
	c := &Client{
		conn:    conn,
		onPush:  onPush,
		logger:  logger,
		metrics: metrics,
		pending: make(map[string]*bridge.Call),
		done:    make(chan struct{}),
	}
	metrics.IncWSConnections()
	go c.readLoop()
	return c
}

// Go writes a call frame and returns the in-flight call.
func (c *Client) Go(op string, args []any, done chan *bridge.Call) *bridge.Call {
	if done == nil {
		done = make(chan *bridge.Call, 1)
	}
	call := &bridge.Call{ID: id.NewCallID().String(), Op: op, Args: args, Done: done}

	frame, err := NewCall(call.ID, op, args)
	if err != nil {
		call.Complete(nil, err)
		return call
	}
	data, err := Encode(frame)
	if err != nil {
		call.Complete(nil, err)
		return call
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		call.Complete(nil, bridge.ErrTransportClosed)
		return call
	}
	c.pending[call.ID] = call
	c.mu.Unlock()

	c.writeMu.Lock()
	err = c.conn.WriteMessage(websocket.TextMessage, data)
	c.writeMu.Unlock()

	if err != nil {
		if c.take(call.ID) != nil {
			call.Complete(nil, fmt.Errorf("write %s: %w", op, err))
		}
		return call
	}
	c.metrics.RecordWSMessage("out", string(FrameCall))
	return call
}

func (c *Client) take(callID string) *bridge.Call {
	c.mu.Lock()
	defer c.mu.Unlock()

	call, ok := c.pending[callID]
	if !ok {
		return nil
	}
	delete(c.pending, callID)
	return call
}

func (c *Client) readLoop() {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.shutdown(err)
			return
		}

		frame, err := Decode(data)
		if err != nil {
			c.logger.Warn("dropping malformed frame", zap.Error(err))
			continue
		}
		c.metrics.RecordWSMessage("in", string(frame.Type))

		switch frame.Type {
		case FrameReply:
			call := c.take(frame.ID)
			if call == nil {
				c.logger.Warn("reply for unknown call", zap.String("id", frame.ID))
				continue
			}
			var callErr error
			if frame.Error != "" {
				callErr = errors.New(frame.Error)
			}
			call.Complete(frame.Result, callErr)
		case FramePush:
			var status types.Status
			if frame.Status != nil {
				status = *frame.Status
			}
			c.onPush(status, frame.Entries)
		default:
			c.logger.Warn("unexpected frame from host", zap.String("type", string(frame.Type)))
		}
	}
}

// shutdown fails every call in flight and releases Done.
func (c *Client) shutdown(cause error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.err = cause
	pending := c.pending
	c.pending = make(map[string]*bridge.Call)
	c.mu.Unlock()

	for _, call := range pending {
		call.Complete(nil, bridge.ErrTransportClosed)
	}
	c.metrics.DecWSConnections()
	if websocket.IsCloseError(cause, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		c.logger.Info("bridge connection closed")
	} else {
		c.logger.Warn("bridge connection lost", zap.Error(cause), zap.Int("failed_calls", len(pending)))
	}
	close(c.done)
}

// Done is closed when the connection has ended.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Err returns why the connection ended.
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Close ends the connection and waits for the reader to exit.
func (c *Client) Close() error {
	c.writeMu.Lock()
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	c.writeMu.Unlock()

	err := c.conn.Close()
	<-c.done
	return err
}

package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTransport answers every call with the op name echoed back.
type recordingTransport struct {
	mu   sync.Mutex
	sent []string
	fail error
}

func (r *recordingTransport) Go(op string, args []any, done chan *Call) *Call {
	r.mu.Lock()
	r.sent = append(r.sent, fmt.Sprintf("%s%v", op, args))
	r.mu.Unlock()

	call := &Call{Op: op, Args: args, Done: done}
	if r.fail != nil {
		call.Complete(nil, r.fail)
	} else {
		call.Complete(json.RawMessage(`"`+op+`"`), nil)
	}
	return call
}

func (r *recordingTransport) Sent() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.sent...)
}

func TestGateQueuesUntilAttach(t *testing.T) {
	gate := NewGate(nil, nil)
	transport := &recordingTransport{}

	var wg sync.WaitGroup
	results := make([]string, 3)
	for i := 0; i < 3; i++ {
		// Issue sequentially so issuance order is well defined.
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			raw, err := gate.Invoke(context.Background(), fmt.Sprintf("op%d", i), i)
			assert.NoError(t, err)
			results[i] = string(raw)
		}(i)
		require.Eventually(t, func() bool { return gate.Pending() == i+1 }, time.Second, time.Millisecond)
	}

	assert.False(t, gate.Attached())
	assert.Empty(t, transport.Sent())

	require.NoError(t, gate.Attach(transport))
	wg.Wait()

	assert.Equal(t, []string{"op0[0]", "op1[1]", "op2[2]"}, transport.Sent())
	assert.Equal(t, []string{`"op0"`, `"op1"`, `"op2"`}, results)
	assert.Zero(t, gate.Pending())
	assert.True(t, gate.Attached())
}

func TestGateDispatchesDirectlyAfterAttach(t *testing.T) {
	gate := NewGate(nil, nil)
	transport := &recordingTransport{}
	require.NoError(t, gate.Attach(transport))

	raw, err := gate.Invoke(context.Background(), "get_apps")
	require.NoError(t, err)
	assert.JSONEq(t, `"get_apps"`, string(raw))
	assert.Equal(t, []string{"get_apps[]"}, transport.Sent())
}

func TestGateAttachOnce(t *testing.T) {
	gate := NewGate(nil, nil)
	require.NoError(t, gate.Attach(&recordingTransport{}))
	assert.ErrorIs(t, gate.Attach(&recordingTransport{}), ErrAlreadyAttached)

	select {
	case <-gate.Ready():
	default:
		t.Fatal("ready signal not fired")
	}
}

func TestGateCancelWithdrawsQueuedCall(t *testing.T) {
	gate := NewGate(nil, nil)
	transport := &recordingTransport{}

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := gate.Invoke(ctx, "get_settings")
		errc <- err
	}()
	require.Eventually(t, func() bool { return gate.Pending() == 1 }, time.Second, time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)
	assert.Zero(t, gate.Pending())

	require.NoError(t, gate.Attach(transport))
	assert.Empty(t, transport.Sent())
}

func TestGateWrapsTransportFailure(t *testing.T) {
	gate := NewGate(nil, nil)
	require.NoError(t, gate.Attach(&recordingTransport{fail: ErrTransportClosed}))

	_, err := gate.Invoke(context.Background(), "get_apps")
	var remote *RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, "get_apps", remote.Op)
	assert.ErrorIs(t, err, ErrTransportClosed)
}

func TestGateNoCallBeforeFlush(t *testing.T) {
	// A call racing with Attach must never overtake the queued calls.
	for round := 0; round < 20; round++ {
		gate := NewGate(nil, nil)
		transport := &recordingTransport{}

		done := make(chan struct{})
		go func() {
			_, _ = gate.Invoke(context.Background(), "first")
			close(done)
		}()
		require.Eventually(t, func() bool { return gate.Pending() == 1 }, time.Second, time.Millisecond)

		late := make(chan struct{})
		go func() {
			_, _ = gate.Invoke(context.Background(), "late")
			close(late)
		}()
		require.NoError(t, gate.Attach(transport))
		<-done
		<-late

		sent := transport.Sent()
		require.Len(t, sent, 2)
		assert.Equal(t, "first[]", sent[0])
	}
}

package ws

import (
	"encoding/json"
	"fmt"

	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
	"github.com/bytedance/sonic"
)

// FrameType discriminates wire frames.
type FrameType string

const (
	FrameCall  FrameType = "call"
	FrameReply FrameType = "reply"
	FramePush  FrameType = "push"
)

// Frame is the single envelope used in both directions.
type Frame struct {
	Type FrameType `json:"type"`
	ID   string    `json:"id,omitempty"`

	// call
	Op   string          `json:"op,omitempty"`
	Args json.RawMessage `json:"args,omitempty"`

	// reply
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`

	// push
	Status  *types.Status    `json:"status,omitempty"`
	Entries []types.LogEvent `json:"entries,omitempty"`
}

// NewCall builds a call frame.
func NewCall(id, op string, args []any) (Frame, error) {
	if args == nil {
		args = []any{}
	}
	raw, err := sonic.Marshal(args)
	if err != nil {
		return Frame{}, fmt.Errorf("encode %s args: %w", op, err)
	}
	return Frame{Type: FrameCall, ID: id, Op: op, Args: raw}, nil
}

// NewReply builds a reply frame. A nil result with empty errMsg means the
// operation returned nothing.
func NewReply(id string, result any, errMsg string) (Frame, error) {
	f := Frame{Type: FrameReply, ID: id, Error: errMsg}
	if result != nil {
		raw, err := sonic.Marshal(result)
		if err != nil {
			return Frame{}, fmt.Errorf("encode reply: %w", err)
		}
		f.Result = raw
	}
	return f, nil
}

// NewPush builds a push frame.
func NewPush(status types.Status, entries []types.LogEvent) Frame {
	return Frame{Type: FramePush, Status: &status, Entries: entries}
}

// CallArgs splits the argument array of a call frame.
func (f Frame) CallArgs() ([]json.RawMessage, error) {
	if len(f.Args) == 0 {
		return nil, nil
	}
	var args []json.RawMessage
	if err := sonic.Unmarshal(f.Args, &args); err != nil {
		return nil, fmt.Errorf("decode %s args: %w", f.Op, err)
	}
	return args, nil
}

// Encode serializes a frame.
func Encode(f Frame) ([]byte, error) {
	return sonic.Marshal(f)
}

// Decode parses a frame and checks its type.
func Decode(data []byte) (Frame, error) {
	var f Frame
	if err := sonic.Unmarshal(data, &f); err != nil {
		return Frame{}, fmt.Errorf("decode frame: %w", err)
	}
	switch f.Type {
	case FrameCall, FrameReply, FramePush:
		return f, nil
	default:
		return Frame{}, fmt.Errorf("unknown frame type %q", f.Type)
	}
}

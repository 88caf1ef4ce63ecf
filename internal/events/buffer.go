package events

import "github.com/GriffinCanCode/ignition/companion/internal/shared/types"

// DefaultDisplayLimit is the largest log window rendered.
const DefaultDisplayLimit = 200

// LogBuffer holds every entry received since the last clear, oldest first.
// It is not safe for concurrent use.
type LogBuffer struct {
	entries []types.LogEvent
}

// Append adds entries in arrival order.
func (b *LogBuffer) Append(entries ...types.LogEvent) {
	b.entries = append(b.entries, entries...)
}

// Len returns the number of buffered entries.
func (b *LogBuffer) Len() int {
	return len(b.entries)
}

// Window returns up to limit entries, newest first.
func (b *LogBuffer) Window(limit int) []types.LogEvent {
	n := min(limit, len(b.entries))
	if n <= 0 {
		return nil
	}
	out := make([]types.LogEvent, n)
	for i := range out {
		out[i] = b.entries[len(b.entries)-1-i]
	}
	return out
}

// Clear drops every entry.
func (b *LogBuffer) Clear() {
	b.entries = nil
}

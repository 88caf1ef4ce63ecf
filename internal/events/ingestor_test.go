package events

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/GriffinCanCode/ignition/companion/internal/bridge"
	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
	"github.com/GriffinCanCode/ignition/companion/internal/view"
	"github.com/GriffinCanCode/ignition/companion/internal/view/viewtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type visibleFunc func() bool

func (f visibleFunc) LogEventsVisible() bool { return f() }

type fakeRemote struct {
	history  []types.SessionRecord
	clearErr error
	cleared  int
}

func (f *fakeRemote) GetSessionHistory(context.Context) ([]types.SessionRecord, error) {
	return f.history, nil
}

func (f *fakeRemote) ClearSessionHistory(context.Context) error {
	f.history = nil
	return f.clearErr
}

func (f *fakeRemote) ClearLog(context.Context) error {
	f.cleared++
	return f.clearErr
}

func entries(from, to int) []types.LogEvent {
	var out []types.LogEvent
	for i := from; i <= to; i++ {
		out = append(out, types.LogEvent{Seq: int64(i), Type: types.LogLaunch, Msg: fmt.Sprintf("e%d", i)})
	}
	return out
}

func newIngestor(visible bool) (*Ingestor, *viewtest.Recorder, *fakeRemote) {
	rec := viewtest.New()
	remote := &fakeRemote{}
	return NewIngestor(remote, visibleFunc(func() bool { return visible }), rec, 0, nil, nil), rec, remote
}

func TestStatusView(t *testing.T) {
	tests := []struct {
		name   string
		status types.Status
		label  string
		pause  string
	}{
		{"offline", types.Status{}, "iRacing · Offline", "Pause"},
		{"race", types.Status{IRacingRunning: true, SessionType: types.SessionRace}, "iRacing · Racing 🏁", "Pause"},
		{"service", types.Status{IRacingRunning: true, SessionType: types.SessionService}, "iRacing · Service Online", "Pause"},
		{"other", types.Status{IRacingRunning: true, SessionType: types.SessionOther}, "iRacing · Online", "Pause"},
		{"paused", types.Status{Paused: true}, "iRacing · Offline", "Resume"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := StatusView(tt.status)
			assert.Equal(t, tt.label, v.Label)
			assert.Equal(t, tt.pause, v.PauseLabel)
			assert.Equal(t, tt.status.IRacingRunning, v.Online)
		})
	}
}

func TestPushRendersStatusAndBadge(t *testing.T) {
	ing, rec, _ := newIngestor(false)

	ing.Push(types.Status{IRacingRunning: true, ManagedCount: 3}, entries(1, 2))

	rec.Do(func(r *viewtest.Recorder) {
		assert.Equal(t, "iRacing · Online", r.Status.Label)
		assert.Equal(t, 3, r.Status.ManagedBadge)
		assert.Equal(t, 2, r.LogBadge)
		assert.Zero(t, r.LogCalls, "log not rendered while hidden")
	})
	assert.True(t, ing.Status().IRacingRunning)
}

func TestPushIdempotentStatusDuplicatesEntries(t *testing.T) {
	ing, rec, _ := newIngestor(true)
	status := types.Status{IRacingRunning: true, SessionType: types.SessionRace, ManagedCount: 1}
	batch := entries(1, 3)

	ing.Push(status, batch)
	var first view.Status
	rec.Do(func(r *viewtest.Recorder) { first = r.Status })

	ing.Push(status, batch)
	rec.Do(func(r *viewtest.Recorder) {
		assert.Equal(t, first, r.Status)
		assert.Equal(t, 6, r.LogBadge)
		require.Len(t, r.Log, 6)
		assert.Equal(t, []int64{3, 2, 1, 3, 2, 1}, seqs(r.Log))
	})
	assert.Equal(t, 6, ing.Len())
}

func TestPushOrderingAndWindow(t *testing.T) {
	ing, rec, _ := newIngestor(true)

	for i := 0; i < 25; i++ {
		ing.Push(types.Status{}, entries(i*10+1, i*10+10))
	}

	rec.Do(func(r *viewtest.Recorder) {
		assert.Equal(t, 250, r.LogBadge)
		require.Len(t, r.Log, DefaultDisplayLimit)
		assert.Equal(t, int64(250), r.Log[0].Seq)
		assert.Equal(t, int64(51), r.Log[DefaultDisplayLimit-1].Seq)
		for i := 1; i < len(r.Log); i++ {
			assert.Equal(t, r.Log[i-1].Seq-1, r.Log[i].Seq)
		}
	})
}

func TestEmptyPushKeepsBuffer(t *testing.T) {
	ing, rec, _ := newIngestor(true)
	ing.Push(types.Status{}, entries(1, 2))
	ing.Push(types.Status{Paused: true}, nil)

	rec.Do(func(r *viewtest.Recorder) {
		assert.Equal(t, "Resume", r.Status.PauseLabel)
		assert.Equal(t, 2, r.LogBadge)
		assert.Len(t, r.Log, 2)
	})
}

func TestSeedOnlyBeforeFirstPush(t *testing.T) {
	ing, rec, _ := newIngestor(true)

	assert.True(t, ing.Seed(types.Status{IRacingRunning: true, SessionType: types.SessionRace}))
	rec.Do(func(r *viewtest.Recorder) {
		assert.True(t, r.Status.Online)
	})

	ing.Push(types.Status{}, nil)
	assert.False(t, ing.Seed(types.Status{IRacingRunning: true}), "pushes win")
	assert.False(t, ing.Status().IRacingRunning)
	rec.Do(func(r *viewtest.Recorder) {
		assert.False(t, r.Status.Online)
	})
}

func TestClearLog(t *testing.T) {
	ing, rec, remote := newIngestor(true)
	ing.Push(types.Status{}, entries(1, 5))

	require.NoError(t, ing.ClearLog(context.Background()))
	assert.Equal(t, 1, remote.cleared)
	assert.Zero(t, ing.Len())
	rec.Do(func(r *viewtest.Recorder) {
		assert.Zero(t, r.LogBadge)
		assert.Empty(t, r.Log)
	})
	assert.Equal(t, "Log cleared", rec.LastToast())
}

func TestClearLogRemoteFailureKeepsBuffer(t *testing.T) {
	ing, rec, remote := newIngestor(true)
	remote.clearErr = &bridge.RemoteError{Op: bridge.OpClearLog, Err: errors.New("boom")}
	ing.Push(types.Status{}, entries(1, 5))

	assert.Error(t, ing.ClearLog(context.Background()))
	assert.Equal(t, 5, ing.Len())
	assert.Equal(t, "Could not clear log: boom", rec.LastToast())
}

func TestHistory(t *testing.T) {
	ing, rec, remote := newIngestor(false)
	remote.history = []types.SessionRecord{
		{StartedAt: "2025-03-01T19:05:00", DurationSeconds: 3725, ProfileName: "GT3", AppsLaunched: []string{"SimHub"}},
		{StartedAt: "", DurationSeconds: 42},
	}

	require.NoError(t, ing.RenderHistory(context.Background()))
	rec.Do(func(r *viewtest.Recorder) {
		require.Len(t, r.History, 2)
		assert.Equal(t, "Mar 1, 19:05", r.History[0].Started)
		assert.Equal(t, "1h 2m", r.History[0].Duration)
		assert.Equal(t, "?", r.History[1].Started)
		assert.Equal(t, "?", r.History[1].Profile)
	})

	require.NoError(t, ing.ClearHistory(context.Background()))
	rec.Do(func(r *viewtest.Recorder) { assert.Empty(t, r.History) })
	assert.Equal(t, "History cleared", rec.LastToast())
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		secs float64
		want string
	}{
		{0, "0s"},
		{42, "42s"},
		{185, "3m 5s"},
		{7440, "2h 4m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.secs))
	}
}

func TestSymbol(t *testing.T) {
	assert.Equal(t, "▶", Symbol(types.LogLaunch))
	assert.Equal(t, "·", Symbol("mystery"))
}

func seqs(lines []view.LogLine) []int64 {
	out := make([]int64, len(lines))
	for i, l := range lines {
		out[i] = l.Seq
	}
	return out
}

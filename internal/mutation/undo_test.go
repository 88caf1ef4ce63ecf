package mutation

import (
	"testing"
	"time"

	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
	"github.com/GriffinCanCode/ignition/companion/internal/view/viewtest"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUndoTakeWithinWindow(t *testing.T) {
	clock := clockwork.NewFakeClock()
	rec := viewtest.New()
	m := NewUndoManager(clock, 5*time.Second, rec, nil)

	app := types.NewManagedApp("Crew Chief", `C:\cc.exe`)
	offer := m.Offer(app, 2, "App removed")
	assert.Equal(t, "App removed", offer.Message)
	assert.Equal(t, clock.Now().Add(5*time.Second), offer.Expires)

	shown, ok := rec.CurrentUndo()
	require.True(t, ok)
	assert.Equal(t, offer.Token, shown.Token)

	clock.Advance(4 * time.Second)
	snap, index, ok := m.Take(offer.Token)
	require.True(t, ok)
	assert.Equal(t, app, snap)
	assert.Equal(t, 2, index)

	_, ok = rec.CurrentUndo()
	assert.False(t, ok)

	_, _, ok = m.Take(offer.Token)
	assert.False(t, ok, "an offer can only be taken once")
}

func TestUndoExpires(t *testing.T) {
	clock := clockwork.NewFakeClock()
	rec := viewtest.New()
	m := NewUndoManager(clock, 5*time.Second, rec, nil)

	offer := m.Offer(types.NewManagedApp("SimHub", `C:\simhub.exe`), 0, "App removed")
	clock.Advance(5 * time.Second)

	require.Eventually(t, func() bool {
		_, live := m.Current()
		return !live
	}, time.Second, time.Millisecond)

	_, ok := rec.CurrentUndo()
	assert.False(t, ok)
	_, _, ok = m.Take(offer.Token)
	assert.False(t, ok)
}

func TestUndoNewestOfferWins(t *testing.T) {
	clock := clockwork.NewFakeClock()
	rec := viewtest.New()
	m := NewUndoManager(clock, 5*time.Second, rec, nil)

	first := m.Offer(types.NewManagedApp("A", `C:\a.exe`), 0, "App removed")
	clock.Advance(3 * time.Second)
	second := m.Offer(types.NewManagedApp("B", `C:\b.exe`), 1, "App removed")
	require.NotEqual(t, first.Token, second.Token)

	rec.Do(func(r *viewtest.Recorder) {
		assert.Contains(t, r.UndoHidden, first.Token)
		require.NotNil(t, r.Undo)
		assert.Equal(t, second.Token, r.Undo.Token)
	})

	_, _, ok := m.Take(first.Token)
	assert.False(t, ok, "superseded offer")

	// The first offer's timer must not cut the second short.
	clock.Advance(3 * time.Second)
	cur, live := m.Current()
	require.True(t, live)
	assert.Equal(t, second.Token, cur)

	snap, _, ok := m.Take(second.Token)
	require.True(t, ok)
	assert.Equal(t, "B", snap.Name)
}

func TestUndoClose(t *testing.T) {
	m := NewUndoManager(clockwork.NewFakeClock(), 0, viewtest.New(), nil)
	offer := m.Offer(types.NewManagedApp("A", `C:\a.exe`), 0, "App removed")
	m.Close()
	_, _, ok := m.Take(offer.Token)
	assert.False(t, ok)
}

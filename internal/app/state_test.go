package app

import (
	"sync"
	"testing"

	"github.com/GriffinCanCode/ignition/companion/internal/prefs"
	"github.com/GriffinCanCode/ignition/companion/internal/view"
	"github.com/stretchr/testify/assert"
)

func TestNewState(t *testing.T) {
	s := NewState(prefs.Prefs{Density: view.DensityCompact, Theme: "light"})

	assert.Equal(t, view.ScreenApps, s.Screen())
	assert.Equal(t, view.LogTabEvents, s.LogTab())
	assert.Equal(t, prefs.Prefs{Density: view.DensityCompact, Theme: "light"}, s.Prefs())
	assert.False(t, s.LogEventsVisible())
}

func TestLogEventsVisible(t *testing.T) {
	tests := []struct {
		screen view.Screen
		tab    view.LogTab
		want   bool
	}{
		{view.ScreenLog, view.LogTabEvents, true},
		{view.ScreenLog, view.LogTabHistory, false},
		{view.ScreenApps, view.LogTabEvents, false},
		{view.ScreenSettings, view.LogTabHistory, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.screen)+"/"+string(tt.tab), func(t *testing.T) {
			s := NewState(prefs.Defaults())
			s.setScreen(tt.screen)
			s.setLogTab(tt.tab)
			assert.Equal(t, tt.want, s.LogEventsVisible())
		})
	}
}

func TestStateConcurrentAccess(t *testing.T) {
	s := NewState(prefs.Defaults())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.setScreen(view.ScreenLog)
			s.setDensity(view.DensityCompact)
		}()
		go func() {
			defer wg.Done()
			_ = s.LogEventsVisible()
			_ = s.Prefs()
		}()
	}
	wg.Wait()
	assert.Equal(t, view.ScreenLog, s.Screen())
	assert.Equal(t, view.DensityCompact, s.Prefs().Density)
}

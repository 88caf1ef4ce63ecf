package app

import (
	"sync"

	"github.com/GriffinCanCode/ignition/companion/internal/prefs"
	"github.com/GriffinCanCode/ignition/companion/internal/view"
)

// State is the UI-local session state. The zero value is not usable; call
// NewState.
type State struct {
	mu      sync.RWMutex
	screen  view.Screen
	logTab  view.LogTab
	density view.Density
	theme   string
}

// NewState starts on the apps screen with the given preferences.
func NewState(p prefs.Prefs) *State {
	return &State{
		screen:  view.ScreenApps,
		logTab:  view.LogTabEvents,
		density: p.Density,
		theme:   p.Theme,
	}
}

// Screen returns the active screen.
func (s *State) Screen() view.Screen {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.screen
}

// LogTab returns the selected log tab.
func (s *State) LogTab() view.LogTab {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.logTab
}

// Prefs returns the density and theme in effect.
func (s *State) Prefs() prefs.Prefs {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return prefs.Prefs{Density: s.density, Theme: s.theme}
}

// LogEventsVisible reports whether live log rendering is on screen.
func (s *State) LogEventsVisible() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.screen == view.ScreenLog && s.logTab == view.LogTabEvents
}

func (s *State) setScreen(screen view.Screen) {
	s.mu.Lock()
	s.screen = screen
	s.mu.Unlock()
}

func (s *State) setLogTab(tab view.LogTab) {
	s.mu.Lock()
	s.logTab = tab
	s.mu.Unlock()
}

func (s *State) setDensity(d view.Density) {
	s.mu.Lock()
	s.density = d
	s.mu.Unlock()
}

func (s *State) setTheme(theme string) {
	s.mu.Lock()
	s.theme = theme
	s.mu.Unlock()
}

package tui

import (
	"sync"

	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
	"github.com/GriffinCanCode/ignition/companion/internal/view"
	tea "github.com/charmbracelet/bubbletea"
)

// Messages carrying render calls into the program.
type (
	statusMsg     view.Status
	badgeMsg      int
	logMsg        []view.LogLine
	historyMsg    []view.HistoryRow
	toastMsg      view.Toast
	showUndoMsg   view.UndoOffer
	hideUndoMsg   string
	appsMsg       []types.ManagedApp
	profilesMsg   []types.Profile
	commonAppsMsg []types.CommonApp
	showDialogMsg view.Dialog
	hideDialogMsg string
	settingsMsg   view.SettingsPage
	quitMsg       struct{}
)

type profileAppsMsg struct {
	profileID string
	apps      []types.ManagedApp
}

type navigateMsg struct {
	screen view.Screen
	tab    view.LogTab
}

type prefsMsg struct {
	density view.Density
	theme   string
}

const sinkBuffer = 256

// Sink is the view.View the core renders into. Calls are queued in order
// and delivered to the Model through Wait.
type Sink struct {
	ch   chan tea.Msg
	done chan struct{}
	once sync.Once
}

var _ view.View = (*Sink)(nil)

// NewSink returns an open sink.
func NewSink() *Sink {
	return &Sink{
		ch:   make(chan tea.Msg, sinkBuffer),
		done: make(chan struct{}),
	}
}

// Close releases senders blocked on a program that is no longer reading.
func (s *Sink) Close() {
	s.once.Do(func() { close(s.done) })
}

// Wait returns a command delivering the next render call.
func (s *Sink) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-s.ch:
			return msg
		case <-s.done:
			return nil
		}
	}
}

func (s *Sink) send(msg tea.Msg) {
	select {
	case s.ch <- msg:
	case <-s.done:
	}
}

func (s *Sink) RenderStatus(st view.Status) { s.send(statusMsg(st)) }
func (s *Sink) RenderLogBadge(count int)    { s.send(badgeMsg(count)) }

func (s *Sink) RenderLog(lines []view.LogLine) {
	s.send(logMsg(append([]view.LogLine(nil), lines...)))
}

func (s *Sink) RenderHistory(rows []view.HistoryRow) {
	s.send(historyMsg(append([]view.HistoryRow(nil), rows...)))
}

func (s *Sink) Toast(t view.Toast)            { s.send(toastMsg(t)) }
func (s *Sink) ShowUndo(offer view.UndoOffer) { s.send(showUndoMsg(offer)) }
func (s *Sink) HideUndo(token string)         { s.send(hideUndoMsg(token)) }

func (s *Sink) RenderApps(apps []types.ManagedApp) {
	s.send(appsMsg(append([]types.ManagedApp(nil), apps...)))
}

func (s *Sink) RenderProfiles(profiles []types.Profile) {
	s.send(profilesMsg(append([]types.Profile(nil), profiles...)))
}

func (s *Sink) RenderProfileApps(profileID string, apps []types.ManagedApp) {
	s.send(profileAppsMsg{profileID: profileID, apps: append([]types.ManagedApp(nil), apps...)})
}

func (s *Sink) RenderCommonApps(apps []types.CommonApp) {
	s.send(commonAppsMsg(append([]types.CommonApp(nil), apps...)))
}

func (s *Sink) ShowDialog(d view.Dialog) { s.send(showDialogMsg(d)) }
func (s *Sink) HideDialog(id string)     { s.send(hideDialogMsg(id)) }

func (s *Sink) Navigate(screen view.Screen, tab view.LogTab) {
	s.send(navigateMsg{screen: screen, tab: tab})
}

func (s *Sink) RenderSettings(page view.SettingsPage) { s.send(settingsMsg(page)) }

func (s *Sink) ApplyPrefs(d view.Density, theme string) {
	s.send(prefsMsg{density: d, theme: theme})
}

func (s *Sink) Quit() { s.send(quitMsg{}) }

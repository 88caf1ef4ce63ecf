// Package viewtest provides a recording view.View for tests.
package viewtest

import (
	"sync"

	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
	"github.com/GriffinCanCode/ignition/companion/internal/view"
)

// Recorder keeps the last value rendered into each sink plus the full
// toast, undo and dialog histories.
type Recorder struct {
	mu sync.Mutex

	Status      view.Status
	StatusCalls int
	LogBadge    int
	Log         []view.LogLine
	LogCalls    int
	History     []view.HistoryRow
	Toasts      []view.Toast
	Undo        *view.UndoOffer
	UndoShown   []view.UndoOffer
	UndoHidden  []string
	Apps        []types.ManagedApp
	AppsCalls   int
	Profiles    []types.Profile
	ProfileApps map[string][]types.ManagedApp
	CommonApps  []types.CommonApp
	Dialog      *view.Dialog
	Dialogs     []view.Dialog
	Screen      view.Screen
	Tab         view.LogTab
	Settings    view.SettingsPage
	Density     view.Density
	Theme       string
	Quitted     bool
}

// New returns an empty recorder.
func New() *Recorder {
	return &Recorder{ProfileApps: make(map[string][]types.ManagedApp)}
}

// Do runs fn with the recorder locked, for consistent reads.
func (r *Recorder) Do(fn func(r *Recorder)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r)
}

// LastToast returns the most recent toast message, or "".
func (r *Recorder) LastToast() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Toasts) == 0 {
		return ""
	}
	return r.Toasts[len(r.Toasts)-1].Message
}

// CurrentDialog returns the dialog on screen, if any.
func (r *Recorder) CurrentDialog() (view.Dialog, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Dialog == nil {
		return view.Dialog{}, false
	}
	return *r.Dialog, true
}

// CurrentUndo returns the undo offer on screen, if any.
func (r *Recorder) CurrentUndo() (view.UndoOffer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Undo == nil {
		return view.UndoOffer{}, false
	}
	return *r.Undo, true
}

// AppIDs returns the ids of the last rendered app list.
func (r *Recorder) AppIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return types.AppIDs(r.Apps)
}

func (r *Recorder) RenderStatus(s view.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Status = s
	r.StatusCalls++
}

func (r *Recorder) RenderLogBadge(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.LogBadge = n
}

func (r *Recorder) RenderLog(lines []view.LogLine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Log = append([]view.LogLine(nil), lines...)
	r.LogCalls++
}

func (r *Recorder) RenderHistory(rows []view.HistoryRow) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.History = append([]view.HistoryRow(nil), rows...)
}

func (r *Recorder) Toast(t view.Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Toasts = append(r.Toasts, t)
}

func (r *Recorder) ShowUndo(o view.UndoOffer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Undo = &o
	r.UndoShown = append(r.UndoShown, o)
}

func (r *Recorder) HideUndo(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Undo != nil && r.Undo.Token == token {
		r.Undo = nil
	}
	r.UndoHidden = append(r.UndoHidden, token)
}

func (r *Recorder) RenderApps(apps []types.ManagedApp) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Apps = append([]types.ManagedApp(nil), apps...)
	r.AppsCalls++
}

func (r *Recorder) RenderProfiles(profiles []types.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Profiles = append([]types.Profile(nil), profiles...)
}

func (r *Recorder) RenderProfileApps(profileID string, apps []types.ManagedApp) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ProfileApps[profileID] = append([]types.ManagedApp(nil), apps...)
}

func (r *Recorder) RenderCommonApps(apps []types.CommonApp) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.CommonApps = append([]types.CommonApp(nil), apps...)
}

func (r *Recorder) ShowDialog(d view.Dialog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Dialog = &d
	r.Dialogs = append(r.Dialogs, d)
}

func (r *Recorder) HideDialog(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Dialog != nil && r.Dialog.ID == id {
		r.Dialog = nil
	}
}

func (r *Recorder) Navigate(s view.Screen, tab view.LogTab) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Screen = s
	r.Tab = tab
}

func (r *Recorder) RenderSettings(p view.SettingsPage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Settings = p
}

func (r *Recorder) ApplyPrefs(d view.Density, theme string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Density = d
	r.Theme = theme
}

func (r *Recorder) Quit() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Quitted = true
}

var _ view.View = (*Recorder)(nil)

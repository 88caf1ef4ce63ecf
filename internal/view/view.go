package view

import "github.com/GriffinCanCode/ignition/companion/internal/shared/types"

// StatusSink renders the header status and the log badge.
type StatusSink interface {
	RenderStatus(Status)
	RenderLogBadge(count int) // 0 hides the badge
}

// LogSink renders the log screen tabs.
type LogSink interface {
	RenderLog(lines []LogLine)
	RenderHistory(rows []HistoryRow)
}

// Notifier shows transient feedback.
type Notifier interface {
	Toast(Toast)
	ShowUndo(UndoOffer)
	HideUndo(token string)
}

// ListSink renders the app and profile lists.
type ListSink interface {
	RenderApps(apps []types.ManagedApp)
	RenderProfiles(profiles []types.Profile)
	RenderProfileApps(profileID string, apps []types.ManagedApp)
	RenderCommonApps(apps []types.CommonApp)
}

// DialogPresenter shows and hides modal dialogs.
type DialogPresenter interface {
	ShowDialog(Dialog)
	HideDialog(id string)
}

// Shell owns navigation, preferences display and process exit.
type Shell interface {
	Navigate(Screen, LogTab)
	RenderSettings(SettingsPage)
	ApplyPrefs(Density, string)
	Quit()
}

// View is implemented by a front end.
type View interface {
	StatusSink
	LogSink
	Notifier
	ListSink
	DialogPresenter
	Shell
}

// Discard is a View that renders nothing.
type Discard struct{}

func (Discard) RenderStatus(Status) {}
func (Discard) RenderLogBadge(int) {}
func (Discard) RenderLog([]LogLine) {}
func (Discard) RenderHistory([]HistoryRow) {}
func (Discard) Toast(Toast) {}
func (Discard) ShowUndo(UndoOffer) {}
func (Discard) HideUndo(string) {}
func (Discard) RenderApps([]types.ManagedApp) {}
func (Discard) RenderProfiles([]types.Profile) {}
func (Discard) RenderProfileApps(string, []types.ManagedApp) {}
func (Discard) RenderCommonApps([]types.CommonApp) {}
func (Discard) ShowDialog(Dialog) {}
func (Discard) HideDialog(string) {}
func (Discard) Navigate(Screen, LogTab) {}
func (Discard) RenderSettings(SettingsPage) {}
func (Discard) ApplyPrefs(Density, string) {}
func (Discard) Quit() {}

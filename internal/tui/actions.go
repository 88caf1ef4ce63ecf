package tui

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/GriffinCanCode/ignition/companion/internal/app"
	"github.com/GriffinCanCode/ignition/companion/internal/dialog"
	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
	"github.com/GriffinCanCode/ignition/companion/internal/view"
)

// Actions is what the front end can ask of a UI session.
type Actions interface {
	Start(ctx context.Context) error
	Navigate(ctx context.Context, screen view.Screen) error
	Reload(ctx context.Context) error
	SetLogTab(ctx context.Context, tab view.LogTab) error
	ClearLog(ctx context.Context) error
	SetDensity(d view.Density) error
	SetTheme(theme string) error
	TogglePause(ctx context.Context) error
	LaunchIRacing(ctx context.Context) error
	Quit(ctx context.Context) (bool, error)

	DeleteApp(ctx context.Context, appID string) error
	UndoDelete(ctx context.Context, token string) error
	MoveUp(ctx context.Context, rendered []string, appID string) error
	MoveDown(ctx context.Context, rendered []string, appID string) error
	ToggleApp(ctx context.Context, appID string) error
	TestLaunch(ctx context.Context, appID string) error
	StartApp(ctx context.Context, appID string) error
	StopApp(ctx context.Context, appID string) error
	SaveApp(ctx context.Context, app types.ManagedApp) error
	AppIcon(ctx context.Context, path string) (string, bool, error)
	BrowseExe(ctx context.Context) (string, bool, error)
	BrowseDirectory(ctx context.Context) (string, bool, error)
	BrowseApp(ctx context.Context) error
	LoadTemplates(ctx context.Context) error
	AddTemplates(ctx context.Context, selected []types.CommonApp) int

	ActivateProfile(ctx context.Context, profileID string) error
	AddProfile(ctx context.Context) error
	RenameProfile(ctx context.Context, profileID string) error
	DeleteProfile(ctx context.Context, profileID string) error
	DuplicateProfile(ctx context.Context, profileID string) error
	ToggleProfile(ctx context.Context, profileID string) error
	EditTriggers(ctx context.Context, profileID string) error
	SetTriggerMode(ctx context.Context, profileID, mode string) error
	SetProfileColor(ctx context.Context, profileID, color string) error
	ExpandProfile(ctx context.Context, profileID string) error

	SetAutostart(ctx context.Context, enabled bool) error
	UpdateSettings(ctx context.Context, s types.Settings) error
	BrowseIRacing(ctx context.Context, current types.Settings) error
	OpenConfigFolder(ctx context.Context) error
	OpenLogFolder(ctx context.Context) error
	ExportConfig(ctx context.Context) error
	ImportConfig(ctx context.Context) error

	DialogKey(dialogID, key, text string) bool
}

// FromController adapts a UI session to Actions.
func FromController(c *app.Controller) Actions {
	return controllerActions{c}
}

type controllerActions struct {
	*app.Controller
}

func (a controllerActions) DeleteApp(ctx context.Context, appID string) error {
	return a.Lists().DeleteApp(ctx, appID)
}

func (a controllerActions) UndoDelete(ctx context.Context, token string) error {
	return a.Lists().UndoDelete(ctx, token)
}

func (a controllerActions) MoveUp(ctx context.Context, rendered []string, appID string) error {
	return a.Lists().MoveUp(ctx, rendered, appID)
}

func (a controllerActions) MoveDown(ctx context.Context, rendered []string, appID string) error {
	return a.Lists().MoveDown(ctx, rendered, appID)
}

func (a controllerActions) ToggleApp(ctx context.Context, appID string) error {
	return a.Lists().ToggleApp(ctx, appID)
}

func (a controllerActions) TestLaunch(ctx context.Context, appID string) error {
	return a.Lists().TestLaunch(ctx, appID)
}

func (a controllerActions) StartApp(ctx context.Context, appID string) error {
	return a.Lists().StartApp(ctx, appID)
}

func (a controllerActions) StopApp(ctx context.Context, appID string) error {
	return a.Lists().StopApp(ctx, appID)
}

func (a controllerActions) SaveApp(ctx context.Context, app types.ManagedApp) error {
	return a.Lists().SaveApp(ctx, app)
}

// BrowseApp picks an executable on the host and adds it under its file name.
func (a controllerActions) BrowseApp(ctx context.Context) error {
	path, ok, err := a.BrowseExe(ctx)
	if err != nil || !ok {
		return err
	}
	name := filepath.Base(strings.ReplaceAll(path, `\`, "/"))
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return a.Lists().SaveApp(ctx, types.NewManagedApp(name, path))
}

func (a controllerActions) LoadTemplates(ctx context.Context) error {
	_, err := a.Lists().LoadTemplates(ctx)
	return err
}

func (a controllerActions) AddTemplates(ctx context.Context, selected []types.CommonApp) int {
	return a.Lists().AddTemplates(ctx, selected)
}

func (a controllerActions) ActivateProfile(ctx context.Context, profileID string) error {
	return a.Lists().ActivateProfile(ctx, profileID)
}

func (a controllerActions) AddProfile(ctx context.Context) error {
	return a.Lists().AddProfile(ctx)
}

func (a controllerActions) RenameProfile(ctx context.Context, profileID string) error {
	return a.Lists().RenameProfile(ctx, profileID)
}

func (a controllerActions) DeleteProfile(ctx context.Context, profileID string) error {
	return a.Lists().DeleteProfile(ctx, profileID)
}

func (a controllerActions) DuplicateProfile(ctx context.Context, profileID string) error {
	_, err := a.Lists().DuplicateProfile(ctx, profileID)
	return err
}

func (a controllerActions) ToggleProfile(ctx context.Context, profileID string) error {
	return a.Lists().ToggleProfile(ctx, profileID)
}

func (a controllerActions) EditTriggers(ctx context.Context, profileID string) error {
	return a.Lists().EditTriggers(ctx, profileID)
}

func (a controllerActions) SetTriggerMode(ctx context.Context, profileID, mode string) error {
	return a.Lists().SetTriggerMode(ctx, profileID, mode)
}

func (a controllerActions) SetProfileColor(ctx context.Context, profileID, color string) error {
	return a.Lists().SetProfileColor(ctx, profileID, color)
}

func (a controllerActions) ExpandProfile(ctx context.Context, profileID string) error {
	return a.Lists().ExpandProfile(ctx, profileID)
}

// UpdateSettings saves s and reloads the settings page from the host.
func (a controllerActions) UpdateSettings(ctx context.Context, s types.Settings) error {
	if err := a.SaveSettings(ctx, s); err != nil {
		return err
	}
	return a.LoadSettings(ctx)
}

func (a controllerActions) BrowseIRacing(ctx context.Context, current types.Settings) error {
	path, ok, err := a.BrowseIRacingExe(ctx)
	if err != nil || !ok {
		return err
	}
	current.IRacingExePath = path
	return a.UpdateSettings(ctx, current)
}

func (a controllerActions) DialogKey(dialogID, key, text string) bool {
	return a.Dialogs().Key(dialogID, key, text)
}

// dialogKeys maps bubbletea key names to the dialog controller's.
var dialogKeys = map[string]string{
	"enter": dialog.KeyEnter,
	"esc":   dialog.KeyEscape,
}

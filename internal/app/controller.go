package app

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/GriffinCanCode/ignition/companion/internal/dialog"
	"github.com/GriffinCanCode/ignition/companion/internal/events"
	"github.com/GriffinCanCode/ignition/companion/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ignition/companion/internal/mutation"
	"github.com/GriffinCanCode/ignition/companion/internal/prefs"
	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
	"github.com/GriffinCanCode/ignition/companion/internal/view"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// Remote is the full host surface the UI uses. *bridge.Proxy implements it.
type Remote interface {
	mutation.Remote
	events.Remote

	GetSettings(ctx context.Context) (types.Settings, error)
	SaveSettings(ctx context.Context, s types.Settings) error
	GetAutostartEnabled(ctx context.Context) (bool, error)
	SetAutostart(ctx context.Context, enabled bool) error
	GetConfigPath(ctx context.Context) (string, error)
	ExportConfig(ctx context.Context, path string) error
	ImportConfig(ctx context.Context, path string) error

	LaunchIRacing(ctx context.Context) error
	GetStatus(ctx context.Context) (types.Status, error)
	GetMonitoringPaused(ctx context.Context) (bool, error)
	SetMonitoringPaused(ctx context.Context, paused bool) error
	GetAppIcon(ctx context.Context, path string) (string, bool, error)

	BrowseExe(ctx context.Context) (string, bool, error)
	BrowseDirectory(ctx context.Context) (string, bool, error)
	BrowseIRacingExe(ctx context.Context) (string, bool, error)
	OpenFileDialog(ctx context.Context) (string, bool, error)
	SaveFileDialog(ctx context.Context, suggested string) (string, bool, error)
	OpenConfigFolder(ctx context.Context) error
	OpenLogFolder(ctx context.Context) error
	QuitApp(ctx context.Context) error
}

// Options tunes a Controller. Zero values pick the defaults.
type Options struct {
	UndoWindow      time.Duration
	LogDisplayLimit int
	DialogPolicy    dialog.Policy
	Clock           clockwork.Clock
	Logger          *zap.Logger
	Metrics         *monitoring.Metrics
}

// Controller is one UI session.
type Controller struct {
	remote  Remote
	view    view.View
	store   *prefs.Store
	state   *State
	events  *events.Ingestor
	dialogs *dialog.Controller
	lists   *mutation.Coordinator
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// New wires the session components around remote and v.
func New(remote Remote, v view.View, store *prefs.Store, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store, _ = prefs.Open("")
	}

	state := NewState(store.Get())
	undo := mutation.NewUndoManager(opts.Clock, opts.UndoWindow, v, opts.Metrics)
	dialogs := dialog.NewController(v, opts.DialogPolicy, logger.Named("dialog"), opts.Metrics)

	return &Controller{
		remote:  remote,
		view:    v,
		store:   store,
		state:   state,
		events:  events.NewIngestor(remote, state, v, opts.LogDisplayLimit, logger.Named("events"), opts.Metrics),
		dialogs: dialogs,
		lists:   mutation.NewCoordinator(remote, dialogs, v, undo, logger.Named("mutation"), opts.Metrics),
		logger:  logger,
		metrics: opts.Metrics,
	}
}

// State returns the session state.
func (c *Controller) State() *State { return c.state }

// Events returns the push ingestor.
func (c *Controller) Events() *events.Ingestor { return c.events }

// Dialogs returns the dialog controller the front end resolves.
func (c *Controller) Dialogs() *dialog.Controller { return c.dialogs }

// Lists returns the app and profile mutation coordinator.
func (c *Controller) Lists() *mutation.Coordinator { return c.lists }

// HandlePush is the bridge push handler.
func (c *Controller) HandlePush(status types.Status, entries []types.LogEvent) {
	c.events.Push(status, entries)
}

// Start applies stored preferences and opens the apps screen. Remote
// loads block until the bridge attaches.
func (c *Controller) Start(ctx context.Context) error {
	p := c.state.Prefs()
	c.view.ApplyPrefs(p.Density, p.Theme)
	if status, err := c.remote.GetStatus(ctx); err != nil {
		c.logger.Debug("initial status unavailable", zap.Error(err))
	} else {
		c.events.Seed(status)
	}
	return c.Navigate(ctx, view.ScreenApps)
}

// Close drops any live undo offer.
func (c *Controller) Close() {
	c.lists.Undo().Close()
}

// Navigate switches screens and loads the new page.
func (c *Controller) Navigate(ctx context.Context, screen view.Screen) error {
	if !slices.Contains(view.Screens, screen) {
		return fmt.Errorf("unknown screen %q", screen)
	}
	c.state.setScreen(screen)
	c.view.Navigate(screen, c.state.LogTab())
	return c.loadPage(ctx, screen)
}

// Reload refreshes the active page.
func (c *Controller) Reload(ctx context.Context) error {
	return c.loadPage(ctx, c.state.Screen())
}

func (c *Controller) loadPage(ctx context.Context, screen view.Screen) error {
	switch screen {
	case view.ScreenApps:
		_, err := c.lists.RefreshApps(ctx)
		return err
	case view.ScreenProfiles:
		_, err := c.lists.RefreshProfiles(ctx)
		return err
	case view.ScreenSettings:
		return c.LoadSettings(ctx)
	case view.ScreenLog:
		if c.state.LogTab() == view.LogTabHistory {
			return c.events.RenderHistory(ctx)
		}
		c.events.RenderLog()
	}
	return nil
}

// SetLogTab switches between live events and session history.
func (c *Controller) SetLogTab(ctx context.Context, tab view.LogTab) error {
	if tab != view.LogTabEvents && tab != view.LogTabHistory {
		return fmt.Errorf("unknown log tab %q", tab)
	}
	c.state.setLogTab(tab)
	c.view.Navigate(c.state.Screen(), tab)
	if tab == view.LogTabHistory {
		return c.events.RenderHistory(ctx)
	}
	c.events.RenderLog()
	return nil
}

// ClearLog clears whichever log tab is selected.
func (c *Controller) ClearLog(ctx context.Context) error {
	if c.state.LogTab() == view.LogTabHistory {
		return c.events.ClearHistory(ctx)
	}
	return c.events.ClearLog(ctx)
}

// SetDensity changes the app list layout. The change applies even when it
// cannot be persisted.
func (c *Controller) SetDensity(d view.Density) error {
	if err := prefs.CheckDensity(d); err != nil {
		return err
	}
	c.state.setDensity(d)
	p := c.state.Prefs()
	c.view.ApplyPrefs(p.Density, p.Theme)
	if err := c.store.SetDensity(d); err != nil {
		c.logger.Warn("density not saved", zap.Error(err))
		c.toast("Layout not saved", view.LevelError)
		return err
	}
	return nil
}

// SetTheme changes the theme. The change applies even when it cannot be
// persisted.
func (c *Controller) SetTheme(theme string) error {
	if err := prefs.CheckTheme(theme); err != nil {
		return err
	}
	c.state.setTheme(theme)
	p := c.state.Prefs()
	c.view.ApplyPrefs(p.Density, p.Theme)
	if err := c.store.SetTheme(theme); err != nil {
		c.logger.Warn("theme not saved", zap.Error(err))
		c.toast("Theme not saved", view.LevelError)
		return err
	}
	return nil
}

func (c *Controller) toast(msg string, level view.Level) {
	c.view.Toast(view.Toast{Message: msg, Level: level})
}

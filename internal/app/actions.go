package app

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/ignition/companion/internal/bridge"
	"github.com/GriffinCanCode/ignition/companion/internal/dialog"
	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
	"github.com/GriffinCanCode/ignition/companion/internal/view"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ExportFileName is suggested by the export save dialog.
const ExportFileName = "ignition-config.json"

// LoadSettings fetches the settings page in parallel and renders it.
func (c *Controller) LoadSettings(ctx context.Context) error {
	var page view.SettingsPage

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := c.remote.GetSettings(gctx)
		page.Settings = s
		return err
	})
	g.Go(func() error {
		on, err := c.remote.GetAutostartEnabled(gctx)
		page.Autostart = on
		return err
	})
	g.Go(func() error {
		path, err := c.remote.GetConfigPath(gctx)
		page.ConfigPath = path
		return err
	})
	if err := g.Wait(); err != nil {
		c.logger.Warn("settings load failed", zap.Error(err))
		c.toast("Failed to load settings", view.LevelError)
		return err
	}

	if page.Settings.PollIntervalSeconds <= 0 {
		page.Settings.PollIntervalSeconds = 1
	}
	if page.Settings.TriggerMode == "" {
		page.Settings.TriggerMode = types.TriggerModeUI
	}
	c.view.RenderSettings(page)
	return nil
}

// SaveSettings persists edited settings.
func (c *Controller) SaveSettings(ctx context.Context, s types.Settings) error {
	if s.PollIntervalSeconds <= 0 {
		s.PollIntervalSeconds = 1
	}
	if s.TriggerMode != types.TriggerModeRace {
		s.TriggerMode = types.TriggerModeUI
	}

	if err := c.remote.SaveSettings(ctx, s); err != nil {
		c.toast(bridge.UserMessage(err, "Failed to save settings"), view.LevelError)
		return err
	}
	c.toast("Settings saved", view.LevelSuccess)
	return nil
}

// SetAutostart toggles launch at login. On failure the settings page is
// re-rendered so the toggle shows the host's value again.
func (c *Controller) SetAutostart(ctx context.Context, enabled bool) error {
	if err := c.remote.SetAutostart(ctx, enabled); err != nil {
		c.logger.Warn("autostart not updated", zap.Bool("enabled", enabled), zap.Error(err))
		c.toast("Failed to update autostart", view.LevelError)
		_ = c.LoadSettings(ctx)
		return err
	}
	if enabled {
		c.toast("Autostart enabled", view.LevelInfo)
	} else {
		c.toast("Autostart disabled", view.LevelInfo)
	}
	return nil
}

// ExportConfig asks for a destination and writes the config there.
func (c *Controller) ExportConfig(ctx context.Context) error {
	path, ok, err := c.remote.SaveFileDialog(ctx, ExportFileName)
	if err != nil || !ok {
		return err
	}
	if err := c.remote.ExportConfig(ctx, path); err != nil {
		c.toast(bridge.UserMessage(err, "Export failed"), view.LevelError)
		return err
	}
	c.toast("Config exported", view.LevelSuccess)
	return nil
}

// ImportConfig asks for a file, confirms the overwrite, imports it and
// reloads the settings page.
func (c *Controller) ImportConfig(ctx context.Context) error {
	path, ok, err := c.remote.OpenFileDialog(ctx)
	if err != nil || !ok {
		return err
	}

	confirmed, err := c.dialogs.RequestConfirm(ctx, dialog.ConfirmRequest{
		Title:        "Import config",
		Message:      "This will replace your current configuration. Continue?",
		ConfirmLabel: "Import",
	})
	if err != nil || !confirmed {
		return err
	}

	if err := c.remote.ImportConfig(ctx, path); err != nil {
		c.toast(bridge.UserMessage(err, "Import failed"), view.LevelError)
		return err
	}
	c.toast("Config imported", view.LevelSuccess)
	return c.LoadSettings(ctx)
}

// BrowseIRacingExe lets the user pick the simulator executable.
func (c *Controller) BrowseIRacingExe(ctx context.Context) (string, bool, error) {
	return c.remote.BrowseIRacingExe(ctx)
}

// BrowseExe lets the user pick an app executable.
func (c *Controller) BrowseExe(ctx context.Context) (string, bool, error) {
	return c.remote.BrowseExe(ctx)
}

// AppIcon returns the data URL of the icon the host found for path.
func (c *Controller) AppIcon(ctx context.Context, path string) (string, bool, error) {
	if path == "" {
		return "", false, nil
	}
	return c.remote.GetAppIcon(ctx, path)
}

// BrowseDirectory lets the user pick a working directory.
func (c *Controller) BrowseDirectory(ctx context.Context) (string, bool, error) {
	return c.remote.BrowseDirectory(ctx)
}

// LaunchIRacing asks the host to start the simulator.
func (c *Controller) LaunchIRacing(ctx context.Context) error {
	if err := c.remote.LaunchIRacing(ctx); err != nil {
		c.toast(bridge.UserMessage(err, "Could not launch iRacing"), view.LevelError)
		return err
	}
	c.toast("Launching iRacing…", view.LevelInfo)
	return nil
}

// TogglePause flips monitoring based on the last pushed status.
func (c *Controller) TogglePause(ctx context.Context) error {
	paused, err := c.remote.GetMonitoringPaused(ctx)
	if err != nil {
		c.logger.Debug("paused state unavailable, using last push", zap.Error(err))
		paused = c.events.Status().Paused
	}
	pause := !paused
	if err := c.remote.SetMonitoringPaused(ctx, pause); err != nil {
		c.logger.Warn("monitoring state not updated", zap.Bool("pause", pause), zap.Error(err))
		c.toast("Failed to update monitoring state", view.LevelError)
		return err
	}
	if pause {
		c.toast("Monitoring paused", view.LevelInfo)
	} else {
		c.toast("Monitoring resumed", view.LevelInfo)
	}
	return nil
}

// OpenConfigFolder reveals the config directory on the host.
func (c *Controller) OpenConfigFolder(ctx context.Context) error {
	return c.reveal(ctx, "config", c.remote.OpenConfigFolder)
}

// OpenLogFolder reveals the log directory on the host.
func (c *Controller) OpenLogFolder(ctx context.Context) error {
	return c.reveal(ctx, "log", c.remote.OpenLogFolder)
}

func (c *Controller) reveal(ctx context.Context, what string, open func(context.Context) error) error {
	if err := open(ctx); err != nil {
		c.logger.Warn("open folder failed", zap.String("folder", what), zap.Error(err))
		return fmt.Errorf("open %s folder: %w", what, err)
	}
	return nil
}

// Quit confirms, shuts the host down and closes the front end. Managed
// apps keep running.
func (c *Controller) Quit(ctx context.Context) (bool, error) {
	ok, err := c.dialogs.RequestConfirm(ctx, dialog.ConfirmRequest{
		Title:        "Quit iGnition",
		Message:      "iGnition will close completely. Any managed apps will remain running.",
		ConfirmLabel: "Quit",
	})
	if err != nil || !ok {
		return false, err
	}

	if err := c.remote.QuitApp(ctx); err != nil {
		c.logger.Warn("host quit failed", zap.Error(err))
	}
	c.Close()
	c.view.Quit()
	return true, nil
}

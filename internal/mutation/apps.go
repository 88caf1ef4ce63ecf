package mutation

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
	"github.com/GriffinCanCode/ignition/companion/internal/view"
	"go.uber.org/zap"
)

// ErrInvalidApp is returned by SaveApp when required fields are missing.
var ErrInvalidApp = errors.New("name and executable are required")

// RefreshApps fetches and renders the app list, returning what was
// rendered.
func (c *Coordinator) RefreshApps(ctx context.Context) ([]types.ManagedApp, error) {
	apps, err := c.remote.GetApps(ctx)
	if err != nil {
		c.toast("Failed to load apps", view.LevelError)
		return nil, err
	}
	c.sink.RenderApps(apps)
	return apps, nil
}

// DeleteApp removes an app and offers to undo it. An app that is no longer
// in the list is ignored.
func (c *Coordinator) DeleteApp(ctx context.Context, appID string) error {
	apps, err := c.remote.GetApps(ctx)
	if err != nil {
		return c.fail("delete", err, "Failed to remove app")
	}

	index := types.IndexOfApp(apps, appID)
	if index < 0 {
		c.logger.Debug("delete of unknown app ignored", zap.String("app_id", appID))
		return nil
	}
	snapshot := apps[index]

	if err := c.remote.RemoveApp(ctx, appID); err != nil {
		return c.fail("delete", err, "Failed to remove app")
	}
	c.metrics.RecordMutation("delete", "ok")

	_, _ = c.RefreshApps(ctx)
	c.undo.Offer(snapshot, index, "App removed")
	return nil
}

// UndoDelete restores the app behind token. Expired or superseded tokens
// do nothing.
func (c *Coordinator) UndoDelete(ctx context.Context, token string) error {
	snapshot, index, ok := c.undo.Take(token)
	if !ok {
		return nil
	}
	if err := c.remote.UndoRemoveApp(ctx, snapshot, index); err != nil {
		return c.fail("undo", err, "Failed to restore app")
	}
	c.succeed("undo", "", view.LevelInfo)
	_, _ = c.RefreshApps(ctx)
	return nil
}

// MoveBefore drags dragged in front of target ("" for the end). rendered
// is the app order the user is looking at; the host refuses the move when
// its own order has changed since.
func (c *Coordinator) MoveBefore(ctx context.Context, rendered []string, dragged, target string) error {
	return c.reorder(ctx, rendered, func(ids []string) []string {
		return ReorderBefore(ids, dragged, target)
	})
}

// MoveUp moves an app one place towards the front of rendered.
func (c *Coordinator) MoveUp(ctx context.Context, rendered []string, appID string) error {
	return c.reorder(ctx, rendered, func(ids []string) []string { return MoveUp(ids, appID) })
}

// MoveDown moves an app one place towards the back of rendered.
func (c *Coordinator) MoveDown(ctx context.Context, rendered []string, appID string) error {
	return c.reorder(ctx, rendered, func(ids []string) []string { return MoveDown(ids, appID) })
}

func (c *Coordinator) reorder(ctx context.Context, rendered []string, move func([]string) []string) error {
	base := slices.Clone(rendered)
	order := move(base)
	if order == nil {
		return nil
	}

	err := c.remote.ReorderApps(ctx, order, base)
	_, _ = c.RefreshApps(ctx)
	if err != nil {
		return c.fail("reorder", err, "Failed to reorder apps")
	}
	c.succeed("reorder", "", view.LevelInfo)
	return nil
}

// ToggleApp flips an app's enabled flag.
func (c *Coordinator) ToggleApp(ctx context.Context, appID string) error {
	enabled, err := c.remote.ToggleAppEnabled(ctx, appID)
	if err != nil {
		return c.fail("toggle", err, "Failed to toggle app")
	}
	msg := "App disabled"
	if enabled {
		msg = "App enabled"
	}
	c.succeed("toggle", msg, view.LevelInfo)
	_, _ = c.RefreshApps(ctx)
	return nil
}

// TestLaunch starts an app once, outside any session.
func (c *Coordinator) TestLaunch(ctx context.Context, appID string) error {
	if err := c.remote.TestLaunchApp(ctx, appID); err != nil {
		return c.fail("test_launch", err, "Launch failed")
	}
	c.succeed("test_launch", "Test launch successful", view.LevelSuccess)
	return nil
}

// StartApp starts a managed app now. The running marker follows from the
// next status push.
func (c *Coordinator) StartApp(ctx context.Context, appID string) error {
	if err := c.remote.StartApp(ctx, appID); err != nil {
		return c.fail("start", err, "Failed to start app")
	}
	c.succeed("start", "App started", view.LevelSuccess)
	return nil
}

// StopApp stops a running managed app.
func (c *Coordinator) StopApp(ctx context.Context, appID string) error {
	if err := c.remote.StopApp(ctx, appID); err != nil {
		return c.fail("stop", err, "Failed to stop app")
	}
	c.succeed("stop", "App stopped", view.LevelInfo)
	return nil
}

// SaveApp adds app, or edits it when it already has an id.
func (c *Coordinator) SaveApp(ctx context.Context, app types.ManagedApp) error {
	if app.Name == "" || app.ExecutablePath == "" {
		c.toast("Name and executable are required", view.LevelError)
		return ErrInvalidApp
	}

	kind, msg := "add", "App added"
	save := c.remote.AddApp
	if app.AppID != "" {
		kind, msg = "edit", "App updated"
		save = c.remote.EditApp
	}

	if err := save(ctx, app); err != nil {
		return c.fail(kind, err, "Failed to save app")
	}
	c.succeed(kind, msg, view.LevelSuccess)
	_, _ = c.RefreshApps(ctx)
	return nil
}

// LoadTemplates renders the well-known apps found on this machine.
func (c *Coordinator) LoadTemplates(ctx context.Context) ([]types.CommonApp, error) {
	apps, err := c.remote.GetCommonApps(ctx)
	if err != nil {
		c.toast("Failed to scan for apps", view.LevelError)
		return nil, err
	}
	c.sink.RenderCommonApps(apps)
	return apps, nil
}

// AddTemplates adds each selected template independently and reports how
// many succeeded.
func (c *Coordinator) AddTemplates(ctx context.Context, selected []types.CommonApp) int {
	if len(selected) == 0 {
		c.toast("Select at least one app", view.LevelError)
		return 0
	}

	added := 0
	for _, tpl := range selected {
		if err := c.remote.AddApp(ctx, types.NewManagedApp(tpl.Name, tpl.ExecutablePath)); err != nil {
			c.logger.Info("template not added", zap.String("name", tpl.Name), zap.Error(err))
			c.metrics.RecordMutation("add_template", "failed")
			continue
		}
		c.metrics.RecordMutation("add_template", "ok")
		added++
	}

	if added == 0 {
		c.toast("Failed to add apps", view.LevelError)
		return 0
	}
	suffix := ""
	if added > 1 {
		suffix = "s"
	}
	c.toast(fmt.Sprintf("Added %d app%s", added, suffix), view.LevelSuccess)
	_, _ = c.RefreshApps(ctx)
	return added
}

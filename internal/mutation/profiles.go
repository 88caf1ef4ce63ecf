package mutation

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/ignition/companion/internal/dialog"
	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
	"github.com/GriffinCanCode/ignition/companion/internal/view"
	"go.uber.org/zap"
)

// RefreshProfiles fetches and renders the profile list.
func (c *Coordinator) RefreshProfiles(ctx context.Context) ([]types.Profile, error) {
	profiles, err := c.remote.GetProfiles(ctx)
	if err != nil {
		c.toast("Failed to load profiles", view.LevelError)
		return nil, err
	}
	if _, _, err := types.ActiveProfile(profiles); err != nil {
		c.logger.Warn("host reported inconsistent profiles", zap.Error(err))
	}
	c.sink.RenderProfiles(profiles)
	return profiles, nil
}

// lookupProfile finds a profile in a fresh list. A missing profile is not
// an error; it may have just been removed.
func (c *Coordinator) lookupProfile(ctx context.Context, kind, profileID string) (types.Profile, bool, error) {
	profiles, err := c.remote.GetProfiles(ctx)
	if err != nil {
		return types.Profile{}, false, c.fail(kind, err, "Failed to load profiles")
	}
	p, ok := types.FindProfile(profiles, profileID)
	if !ok {
		c.logger.Debug("profile gone", zap.String("kind", kind), zap.String("profile_id", profileID))
	}
	return p, ok, nil
}

// refreshAll re-renders profiles and the app list, which is scoped to the
// active profile.
func (c *Coordinator) refreshAll(ctx context.Context) {
	_, _ = c.RefreshProfiles(ctx)
	_, _ = c.RefreshApps(ctx)
}

// ActivateProfile makes a profile the active one.
func (c *Coordinator) ActivateProfile(ctx context.Context, profileID string) error {
	if err := c.remote.SetActiveProfile(ctx, profileID); err != nil {
		return c.fail("activate_profile", err, "Failed to change profile")
	}
	c.succeed("activate_profile", "Active profile changed", view.LevelSuccess)
	c.refreshAll(ctx)
	return nil
}

// AddProfile prompts for a name and creates a profile.
func (c *Coordinator) AddProfile(ctx context.Context) error {
	name, ok, err := c.dialogs.RequestInput(ctx, dialog.InputRequest{
		Title:       "New Profile",
		Placeholder: "Profile name…",
	})
	if err != nil || !ok {
		return err
	}
	if err := c.remote.AddProfile(ctx, name); err != nil {
		return c.fail("add_profile", err, "Failed to create profile")
	}
	c.succeed("add_profile", "Profile created", view.LevelSuccess)
	_, _ = c.RefreshProfiles(ctx)
	return nil
}

// RenameProfile prompts for a new name, prefilled with the current one.
func (c *Coordinator) RenameProfile(ctx context.Context, profileID string) error {
	p, found, err := c.lookupProfile(ctx, "rename_profile", profileID)
	if err != nil || !found {
		return err
	}

	name, ok, err := c.dialogs.RequestInput(ctx, dialog.InputRequest{
		Title:       "Rename Profile",
		Placeholder: p.Name,
		Default:     p.Name,
	})
	if err != nil || !ok {
		return err
	}
	if err := c.remote.RenameProfile(ctx, profileID, name); err != nil {
		return c.fail("rename_profile", err, "Failed to rename")
	}
	c.succeed("rename_profile", "Profile renamed", view.LevelSuccess)
	_, _ = c.RefreshProfiles(ctx)
	return nil
}

// DeleteProfile asks for confirmation and removes a profile with its apps.
func (c *Coordinator) DeleteProfile(ctx context.Context, profileID string) error {
	ok, err := c.dialogs.RequestConfirm(ctx, dialog.ConfirmRequest{
		Title:        "Delete profile",
		Message:      "This will permanently delete the profile and all its apps. Continue?",
		ConfirmLabel: "Delete",
	})
	if err != nil || !ok {
		return err
	}
	if err := c.remote.RemoveProfile(ctx, profileID); err != nil {
		return c.fail("remove_profile", err, "Failed to delete profile")
	}
	c.succeed("remove_profile", "Profile deleted", view.LevelSuccess)
	c.refreshAll(ctx)
	return nil
}

// SetProfileColor sets or clears ("") a profile's color.
func (c *Coordinator) SetProfileColor(ctx context.Context, profileID, color string) error {
	if err := c.remote.SetProfileColor(ctx, profileID, color); err != nil {
		return c.fail("profile_color", err, "Failed to set color")
	}
	c.succeed("profile_color", "", view.LevelInfo)
	_, _ = c.RefreshProfiles(ctx)
	return nil
}

// EditTriggers prompts for the trigger process list as comma separated
// text.
func (c *Coordinator) EditTriggers(ctx context.Context, profileID string) error {
	p, found, err := c.lookupProfile(ctx, "profile_triggers", profileID)
	if err != nil || !found {
		return err
	}

	csv, ok, err := c.dialogs.RequestInput(ctx, dialog.InputRequest{
		Title:       "Trigger Processes",
		Placeholder: "iRacingUI.exe, iRacingSim64DX11.exe",
		Default:     types.JoinTriggers(p.TriggerProcessNames),
	})
	if err != nil || !ok {
		return err
	}
	if err := c.remote.SetProfileTriggers(ctx, profileID, csv); err != nil {
		return c.fail("profile_triggers", err, "Failed to update triggers")
	}
	c.succeed("profile_triggers", "Triggers updated", view.LevelSuccess)
	_, _ = c.RefreshProfiles(ctx)
	return nil
}

// SetTriggerMode replaces a profile's triggers with the defaults for mode.
func (c *Coordinator) SetTriggerMode(ctx context.Context, profileID, mode string) error {
	if mode != types.TriggerModeUI && mode != types.TriggerModeRace {
		return c.fail("profile_trigger_mode", fmt.Errorf("unknown trigger mode %q", mode), "Failed to update triggers")
	}
	if err := c.remote.SetProfileTriggerMode(ctx, profileID, mode); err != nil {
		return c.fail("profile_trigger_mode", err, "Failed to update triggers")
	}
	c.succeed("profile_trigger_mode", "Triggers updated", view.LevelSuccess)
	_, _ = c.RefreshProfiles(ctx)
	return nil
}

// DuplicateProfile copies a profile with its apps.
func (c *Coordinator) DuplicateProfile(ctx context.Context, profileID string) (string, error) {
	newID, err := c.remote.DuplicateProfile(ctx, profileID)
	if err != nil {
		return "", c.fail("duplicate_profile", err, "Failed to duplicate profile")
	}
	c.succeed("duplicate_profile", "Profile duplicated", view.LevelSuccess)
	_, _ = c.RefreshProfiles(ctx)
	return newID, nil
}

// ToggleProfile flips whether a profile takes part in trigger matching.
func (c *Coordinator) ToggleProfile(ctx context.Context, profileID string) error {
	enabled, err := c.remote.ToggleProfileEnabled(ctx, profileID)
	if err != nil {
		return c.fail("toggle_profile", err, "Failed to toggle profile")
	}
	msg := "Profile disabled"
	if enabled {
		msg = "Profile enabled"
	}
	c.succeed("toggle_profile", msg, view.LevelInfo)
	_, _ = c.RefreshProfiles(ctx)
	return nil
}

// ExpandProfile renders the apps belonging to a profile.
func (c *Coordinator) ExpandProfile(ctx context.Context, profileID string) error {
	apps, err := c.remote.GetProfileApps(ctx, profileID)
	if err != nil {
		c.toast("Failed to load apps", view.LevelError)
		return err
	}
	c.sink.RenderProfileApps(profileID, apps)
	return nil
}

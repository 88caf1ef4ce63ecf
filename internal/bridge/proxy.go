package bridge

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/ignition/companion/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// Proxy exposes one typed method per remote operation.
type Proxy struct {
	inv     Invoker
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// NewProxy creates a proxy issuing calls through inv.
func NewProxy(inv Invoker, logger *zap.Logger, metrics *monitoring.Metrics) *Proxy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Proxy{inv: inv, logger: logger, metrics: metrics}
}

// call invokes op and decodes the reply into out (if non-nil).
func (p *Proxy) call(ctx context.Context, op string, out any, args ...any) error {
	timer := monitoring.NewTimer(p.metrics, op)

	raw, err := p.inv.Invoke(ctx, op, args...)
	if err != nil {
		timer.Stop("error")
		p.logger.Warn("bridge call failed", zap.String("op", op), zap.Error(err))
		return err
	}

	if out != nil && len(raw) > 0 {
		if err := sonic.Unmarshal(raw, out); err != nil {
			timer.Stop("decode_error")
			p.logger.Error("bridge reply undecodable", zap.String("op", op), zap.Error(err))
			return &RemoteError{Op: op, Err: fmt.Errorf("decode reply: %w", err)}
		}
	}

	d := timer.Stop("ok")
	p.logger.Debug("bridge call", zap.String("op", op), zap.Duration("took", d))
	return nil
}

// mutate invokes an operation returning the {ok, error?} envelope.
func (p *Proxy) mutate(ctx context.Context, op string, args ...any) (types.Result, error) {
	var res types.Result
	if err := p.call(ctx, op, &res, args...); err != nil {
		return res, err
	}
	if !res.OK {
		p.logger.Info("host rejected operation", zap.String("op", op), zap.String("reason", res.Error))
		return res, &DomainError{Op: op, Message: res.Error}
	}
	return res, nil
}

// optionalPath decodes a path-or-null reply.
func (p *Proxy) optionalPath(ctx context.Context, op string, args ...any) (string, bool, error) {
	var path *string
	if err := p.call(ctx, op, &path, args...); err != nil {
		return "", false, err
	}
	if path == nil || *path == "" {
		return "", false, nil
	}
	return *path, true, nil
}

func encodeArg(op string, v any) (string, error) {
	s, err := sonic.MarshalString(v)
	if err != nil {
		return "", &RemoteError{Op: op, Err: fmt.Errorf("encode argument: %w", err)}
	}
	return s, nil
}

// Apps

func (p *Proxy) GetApps(ctx context.Context) ([]types.ManagedApp, error) {
	var apps []types.ManagedApp
	err := p.call(ctx, OpGetApps, &apps)
	return apps, err
}

func (p *Proxy) AddApp(ctx context.Context, app types.ManagedApp) error {
	return p.sendApp(ctx, OpAddApp, app)
}

func (p *Proxy) EditApp(ctx context.Context, app types.ManagedApp) error {
	return p.sendApp(ctx, OpEditApp, app)
}

func (p *Proxy) sendApp(ctx context.Context, op string, app types.ManagedApp) error {
	payload, err := encodeArg(op, app)
	if err != nil {
		return err
	}
	_, err = p.mutate(ctx, op, payload)
	return err
}

func (p *Proxy) RemoveApp(ctx context.Context, appID string) error {
	_, err := p.mutate(ctx, OpRemoveApp, appID)
	return err
}

// UndoRemoveApp reinserts snapshot at index.
func (p *Proxy) UndoRemoveApp(ctx context.Context, snapshot types.ManagedApp, index int) error {
	payload, err := encodeArg(OpUndoRemoveApp, snapshot)
	if err != nil {
		return err
	}
	_, err = p.mutate(ctx, OpUndoRemoveApp, payload, index)
	return err
}

// ToggleAppEnabled flips the enabled flag and returns the new value.
func (p *Proxy) ToggleAppEnabled(ctx context.Context, appID string) (bool, error) {
	res, err := p.mutate(ctx, OpToggleAppEnabled, appID)
	if err != nil || res.Enabled == nil {
		return false, err
	}
	return *res.Enabled, nil
}

func (p *Proxy) TestLaunchApp(ctx context.Context, appID string) error {
	_, err := p.mutate(ctx, OpTestLaunchApp, appID)
	return err
}

// ReorderApps sends the complete new order together with the order it was
// computed from. The host rejects the call if base is stale.
func (p *Proxy) ReorderApps(ctx context.Context, order, base []string) error {
	orderArg, err := encodeArg(OpReorderApps, order)
	if err != nil {
		return err
	}
	baseArg, err := encodeArg(OpReorderApps, base)
	if err != nil {
		return err
	}
	_, err = p.mutate(ctx, OpReorderApps, orderArg, baseArg)
	return err
}

// GetAppIcon returns a data URL for the executable's icon, if any.
func (p *Proxy) GetAppIcon(ctx context.Context, path string) (string, bool, error) {
	return p.optionalPath(ctx, OpGetAppIcon, path)
}

func (p *Proxy) GetCommonApps(ctx context.Context) ([]types.CommonApp, error) {
	var apps []types.CommonApp
	err := p.call(ctx, OpGetCommonApps, &apps)
	return apps, err
}

func (p *Proxy) StartApp(ctx context.Context, appID string) error {
	_, err := p.mutate(ctx, OpStartApp, appID)
	return err
}

func (p *Proxy) StopApp(ctx context.Context, appID string) error {
	_, err := p.mutate(ctx, OpStopApp, appID)
	return err
}

// Profiles

func (p *Proxy) GetProfiles(ctx context.Context) ([]types.Profile, error) {
	var profiles []types.Profile
	err := p.call(ctx, OpGetProfiles, &profiles)
	return profiles, err
}

func (p *Proxy) AddProfile(ctx context.Context, name string) error {
	_, err := p.mutate(ctx, OpAddProfile, name)
	return err
}

func (p *Proxy) RenameProfile(ctx context.Context, profileID, name string) error {
	_, err := p.mutate(ctx, OpRenameProfile, profileID, name)
	return err
}

func (p *Proxy) RemoveProfile(ctx context.Context, profileID string) error {
	_, err := p.mutate(ctx, OpRemoveProfile, profileID)
	return err
}

func (p *Proxy) SetActiveProfile(ctx context.Context, profileID string) error {
	_, err := p.mutate(ctx, OpSetActiveProfile, profileID)
	return err
}

// SetProfileColor sets the color; "" clears it.
func (p *Proxy) SetProfileColor(ctx context.Context, profileID, color string) error {
	_, err := p.mutate(ctx, OpSetProfileColor, profileID, color)
	return err
}

// SetProfileTriggers replaces the trigger process names from a comma
// separated list.
func (p *Proxy) SetProfileTriggers(ctx context.Context, profileID, csv string) error {
	_, err := p.mutate(ctx, OpSetProfileTriggers, profileID, csv)
	return err
}

func (p *Proxy) SetProfileTriggerMode(ctx context.Context, profileID, mode string) error {
	_, err := p.mutate(ctx, OpSetProfileTriggerMode, profileID, mode)
	return err
}

func (p *Proxy) GetProfileApps(ctx context.Context, profileID string) ([]types.ManagedApp, error) {
	var apps []types.ManagedApp
	err := p.call(ctx, OpGetProfileApps, &apps, profileID)
	return apps, err
}

// DuplicateProfile copies a profile and returns the new profile's id.
func (p *Proxy) DuplicateProfile(ctx context.Context, profileID string) (string, error) {
	res, err := p.mutate(ctx, OpDuplicateProfile, profileID)
	return res.ProfileID, err
}

func (p *Proxy) ToggleProfileEnabled(ctx context.Context, profileID string) (bool, error) {
	res, err := p.mutate(ctx, OpToggleProfileEnabled, profileID)
	if err != nil || res.Enabled == nil {
		return false, err
	}
	return *res.Enabled, nil
}

// Settings

func (p *Proxy) GetSettings(ctx context.Context) (types.Settings, error) {
	var s types.Settings
	err := p.call(ctx, OpGetSettings, &s)
	return s, err
}

func (p *Proxy) SaveSettings(ctx context.Context, s types.Settings) error {
	payload, err := encodeArg(OpSaveSettings, s)
	if err != nil {
		return err
	}
	_, err = p.mutate(ctx, OpSaveSettings, payload)
	return err
}

func (p *Proxy) GetAutostartEnabled(ctx context.Context) (bool, error) {
	var enabled bool
	err := p.call(ctx, OpGetAutostartEnabled, &enabled)
	return enabled, err
}

func (p *Proxy) SetAutostart(ctx context.Context, enabled bool) error {
	_, err := p.mutate(ctx, OpSetAutostart, enabled)
	return err
}

func (p *Proxy) GetConfigPath(ctx context.Context) (string, error) {
	var path string
	err := p.call(ctx, OpGetConfigPath, &path)
	return path, err
}

func (p *Proxy) ExportConfig(ctx context.Context, path string) error {
	_, err := p.mutate(ctx, OpExportConfig, path)
	return err
}

func (p *Proxy) ImportConfig(ctx context.Context, path string) error {
	_, err := p.mutate(ctx, OpImportConfig, path)
	return err
}

// Monitoring

func (p *Proxy) GetSessionHistory(ctx context.Context) ([]types.SessionRecord, error) {
	var records []types.SessionRecord
	err := p.call(ctx, OpGetSessionHistory, &records)
	return records, err
}

func (p *Proxy) ClearSessionHistory(ctx context.Context) error {
	_, err := p.mutate(ctx, OpClearSessionHistory)
	return err
}

func (p *Proxy) ClearLog(ctx context.Context) error {
	_, err := p.mutate(ctx, OpClearLog)
	return err
}

func (p *Proxy) LaunchIRacing(ctx context.Context) error {
	_, err := p.mutate(ctx, OpLaunchIRacing)
	return err
}

func (p *Proxy) SetMonitoringPaused(ctx context.Context, paused bool) error {
	_, err := p.mutate(ctx, OpSetMonitoringPaused, paused)
	return err
}

func (p *Proxy) GetMonitoringPaused(ctx context.Context) (bool, error) {
	var paused bool
	err := p.call(ctx, OpGetMonitoringPaused, &paused)
	return paused, err
}

func (p *Proxy) GetStatus(ctx context.Context) (types.Status, error) {
	var s types.Status
	err := p.call(ctx, OpGetStatus, &s)
	return s, err
}

// Native dialogs and shell

func (p *Proxy) BrowseExe(ctx context.Context) (string, bool, error) {
	return p.optionalPath(ctx, OpBrowseExe)
}

func (p *Proxy) BrowseDirectory(ctx context.Context) (string, bool, error) {
	return p.optionalPath(ctx, OpBrowseDirectory)
}

func (p *Proxy) BrowseIRacingExe(ctx context.Context) (string, bool, error) {
	return p.optionalPath(ctx, OpBrowseIRacingExe)
}

func (p *Proxy) OpenFileDialog(ctx context.Context) (string, bool, error) {
	return p.optionalPath(ctx, OpOpenFileDialog)
}

func (p *Proxy) SaveFileDialog(ctx context.Context, suggested string) (string, bool, error) {
	return p.optionalPath(ctx, OpSaveFileDialog, suggested)
}

func (p *Proxy) OpenConfigFolder(ctx context.Context) error {
	return p.call(ctx, OpOpenConfigFolder, nil)
}

func (p *Proxy) OpenLogFolder(ctx context.Context) error {
	return p.call(ctx, OpOpenLogFolder, nil)
}

func (p *Proxy) QuitApp(ctx context.Context) error {
	return p.call(ctx, OpQuitApp, nil)
}

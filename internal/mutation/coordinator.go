package mutation

import (
	"context"

	"github.com/GriffinCanCode/ignition/companion/internal/bridge"
	"github.com/GriffinCanCode/ignition/companion/internal/dialog"
	"github.com/GriffinCanCode/ignition/companion/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
	"github.com/GriffinCanCode/ignition/companion/internal/view"
	"go.uber.org/zap"
)

// AppsRemote is the app half of the host surface.
type AppsRemote interface {
	GetApps(ctx context.Context) ([]types.ManagedApp, error)
	AddApp(ctx context.Context, app types.ManagedApp) error
	EditApp(ctx context.Context, app types.ManagedApp) error
	RemoveApp(ctx context.Context, appID string) error
	UndoRemoveApp(ctx context.Context, snapshot types.ManagedApp, index int) error
	ToggleAppEnabled(ctx context.Context, appID string) (bool, error)
	TestLaunchApp(ctx context.Context, appID string) error
	StartApp(ctx context.Context, appID string) error
	StopApp(ctx context.Context, appID string) error
	ReorderApps(ctx context.Context, order, base []string) error
	GetCommonApps(ctx context.Context) ([]types.CommonApp, error)
}

// ProfilesRemote is the profile half of the host surface.
type ProfilesRemote interface {
	GetProfiles(ctx context.Context) ([]types.Profile, error)
	AddProfile(ctx context.Context, name string) error
	RenameProfile(ctx context.Context, profileID, name string) error
	RemoveProfile(ctx context.Context, profileID string) error
	SetActiveProfile(ctx context.Context, profileID string) error
	SetProfileColor(ctx context.Context, profileID, color string) error
	SetProfileTriggers(ctx context.Context, profileID, csv string) error
	SetProfileTriggerMode(ctx context.Context, profileID, mode string) error
	GetProfileApps(ctx context.Context, profileID string) ([]types.ManagedApp, error)
	DuplicateProfile(ctx context.Context, profileID string) (string, error)
	ToggleProfileEnabled(ctx context.Context, profileID string) (bool, error)
}

// Remote is everything the coordinator calls.
type Remote interface {
	AppsRemote
	ProfilesRemote
}

// Dialogs asks the user for input.
type Dialogs interface {
	RequestInput(ctx context.Context, req dialog.InputRequest) (string, bool, error)
	RequestConfirm(ctx context.Context, req dialog.ConfirmRequest) (bool, error)
}

// Sink is everything the coordinator renders into.
type Sink interface {
	view.ListSink
	view.Notifier
}

// Coordinator runs app and profile mutations.
type Coordinator struct {
	remote  Remote
	dialogs Dialogs
	sink    Sink
	undo    *UndoManager
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// NewCoordinator wires a coordinator.
func NewCoordinator(remote Remote, dialogs Dialogs, sink Sink, undo *UndoManager, logger *zap.Logger, metrics *monitoring.Metrics) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		remote:  remote,
		dialogs: dialogs,
		sink:    sink,
		undo:    undo,
		logger:  logger,
		metrics: metrics,
	}
}

// Undo exposes the undo manager.
func (c *Coordinator) Undo() *UndoManager {
	return c.undo
}

func (c *Coordinator) toast(msg string, level view.Level) {
	c.sink.Toast(view.Toast{Message: msg, Level: level})
}

// fail reports err for a gesture of kind and returns it.
func (c *Coordinator) fail(kind string, err error, fallback string) error {
	c.metrics.RecordMutation(kind, "failed")
	c.logger.Warn("mutation failed", zap.String("kind", kind), zap.Error(err))
	c.toast(bridge.UserMessage(err, fallback), view.LevelError)
	return err
}

func (c *Coordinator) succeed(kind, msg string, level view.Level) {
	c.metrics.RecordMutation(kind, "ok")
	if msg != "" {
		c.toast(msg, level)
	}
}

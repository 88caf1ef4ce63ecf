package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/GriffinCanCode/ignition/companion/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockInvoker struct {
	mock.Mock
}

func (m *mockInvoker) Invoke(ctx context.Context, op string, args ...any) (json.RawMessage, error) {
	called := m.Called(op, args)
	raw, _ := called.Get(0).(string)
	if raw == "" {
		return nil, called.Error(1)
	}
	return json.RawMessage(raw), called.Error(1)
}

func TestProxyGetAppsAppliesDefaults(t *testing.T) {
	inv := &mockInvoker{}
	inv.On("Invoke", OpGetApps, []any(nil)).Return(`[{"app_id":"a1","name":"SimHub","executable_path":"C:\\SimHub.exe","order_index":0}]`, nil)

	apps, err := NewProxy(inv, nil, nil).GetApps(context.Background())
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "SimHub", apps[0].Name)
	assert.True(t, apps[0].Enabled)
	inv.AssertExpectations(t)
}

func TestProxyDomainFailure(t *testing.T) {
	inv := &mockInvoker{}
	inv.On("Invoke", OpAddApp, mock.Anything).Return(`{"ok":false,"error":"Name is required."}`, nil)

	err := NewProxy(inv, nil, nil).AddApp(context.Background(), types.ManagedApp{})
	var domain *DomainError
	require.True(t, errors.As(err, &domain))
	assert.Equal(t, "Name is required.", domain.Message)
	assert.Equal(t, "Name is required.", UserMessage(err, "Failed to save app"))
}

func TestProxyRemoteFailure(t *testing.T) {
	inv := &mockInvoker{}
	inv.On("Invoke", OpRemoveApp, []any{"a1"}).Return("", &RemoteError{Op: OpRemoveApp, Err: ErrTransportClosed})

	err := NewProxy(inv, nil, nil).RemoveApp(context.Background(), "a1")
	assert.ErrorIs(t, err, ErrTransportClosed)
	assert.Equal(t, "Failed to delete app: bridge: transport closed", UserMessage(err, "Failed to delete app"))
}

func TestProxyEncodesJSONArguments(t *testing.T) {
	inv := &mockInvoker{}
	inv.On("Invoke", OpReorderApps, mock.Anything).Return(`{"ok":true}`, nil)
	inv.On("Invoke", OpUndoRemoveApp, mock.Anything).Return(`{"ok":true}`, nil)

	p := NewProxy(inv, nil, nil)
	require.NoError(t, p.ReorderApps(context.Background(), []string{"b", "a"}, []string{"a", "b"}))
	require.NoError(t, p.UndoRemoveApp(context.Background(), types.ManagedApp{AppID: "a", Name: "A"}, 2))

	reorderArgs := inv.Calls[0].Arguments.Get(1).([]any)
	assert.Equal(t, []any{`["b","a"]`, `["a","b"]`}, reorderArgs)

	undoArgs := inv.Calls[1].Arguments.Get(1).([]any)
	require.Len(t, undoArgs, 2)
	var snap types.ManagedApp
	require.NoError(t, json.Unmarshal([]byte(undoArgs[0].(string)), &snap))
	assert.Equal(t, "a", snap.AppID)
	assert.Equal(t, 2, undoArgs[1])
}

func TestProxyToggleReturnsNewState(t *testing.T) {
	inv := &mockInvoker{}
	inv.On("Invoke", OpToggleAppEnabled, []any{"a1"}).Return(`{"ok":true,"enabled":false}`, nil)
	inv.On("Invoke", OpToggleProfileEnabled, []any{"p1"}).Return(`{"ok":true,"enabled":true}`, nil)

	p := NewProxy(inv, nil, nil)
	enabled, err := p.ToggleAppEnabled(context.Background(), "a1")
	require.NoError(t, err)
	assert.False(t, enabled)

	enabled, err = p.ToggleProfileEnabled(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestProxyOptionalPath(t *testing.T) {
	inv := &mockInvoker{}
	inv.On("Invoke", OpBrowseExe, []any(nil)).Return(`null`, nil)
	inv.On("Invoke", OpSaveFileDialog, []any{"ignition-config.json"}).Return(`"C:\\tmp\\ignition-config.json"`, nil)

	p := NewProxy(inv, nil, nil)
	_, ok, err := p.BrowseExe(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	path, ok, err := p.SaveFileDialog(context.Background(), "ignition-config.json")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `C:\tmp\ignition-config.json`, path)
}

func TestProxyUndecodableReply(t *testing.T) {
	inv := &mockInvoker{}
	inv.On("Invoke", OpGetProfiles, []any(nil)).Return(`{"not":"a list"}`, nil)

	_, err := NewProxy(inv, nil, nil).GetProfiles(context.Background())
	var remote *RemoteError
	assert.True(t, errors.As(err, &remote))
}

func TestProxyRecordsMetrics(t *testing.T) {
	metrics := monitoring.NewMetrics()
	inv := &mockInvoker{}
	inv.On("Invoke", OpGetSettings, []any(nil)).Return(`{"poll_interval_seconds":2,"trigger_mode":"race"}`, nil)
	inv.On("Invoke", OpClearLog, []any(nil)).Return(`{"ok":false}`, nil)

	p := NewProxy(inv, nil, metrics)
	s, err := p.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types.TriggerModeRace, s.TriggerMode)

	err = p.ClearLog(context.Background())
	assert.Equal(t, "Could not clear log", UserMessage(err, "Could not clear log"))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.BridgeCalls.WithLabelValues(OpGetSettings, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.BridgeCalls.WithLabelValues(OpClearLog, "ok")))
}

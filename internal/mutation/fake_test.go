package mutation

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/GriffinCanCode/ignition/companion/internal/bridge"
	"github.com/GriffinCanCode/ignition/companion/internal/dialog"
	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
)

// fakeHost is an in-memory host. failing maps an op name to the error it
// should return.
type fakeHost struct {
	mu       sync.Mutex
	apps     []types.ManagedApp
	profiles []types.Profile
	failing  map[string]error
	calls    []string
	nextID   int
}

func newFakeHost(names ...string) *fakeHost {
	h := &fakeHost{
		failing: make(map[string]error),
		profiles: []types.Profile{
			{ProfileID: "p1", Name: "Default", IsActive: true, Enabled: true, TriggerProcessNames: []string{"iRacingUI.exe"}},
			{ProfileID: "p2", Name: "Endurance", Enabled: true},
		},
	}
	for _, n := range names {
		app := types.NewManagedApp(n, `C:\Apps\`+n+".exe")
		app.AppID = strings.ToLower(strings.ReplaceAll(n, " ", "-"))
		h.apps = append(h.apps, app)
	}
	h.renumber()
	return h
}

func (h *fakeHost) renumber() {
	for i := range h.apps {
		h.apps[i].OrderIndex = i
	}
}

func (h *fakeHost) enter(op string) error {
	h.calls = append(h.calls, op)
	return h.failing[op]
}

func (h *fakeHost) ids() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return types.AppIDs(h.apps)
}

func (h *fakeHost) count(op string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, c := range h.calls {
		if c == op {
			n++
		}
	}
	return n
}

func (h *fakeHost) GetApps(context.Context) ([]types.ManagedApp, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.enter("get_apps"); err != nil {
		return nil, err
	}
	return slices.Clone(h.apps), nil
}

func (h *fakeHost) AddApp(_ context.Context, app types.ManagedApp) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.enter("add_app"); err != nil {
		return err
	}
	if app.Name == "Broken" {
		return &bridge.DomainError{Op: "add_app", Message: "executable not found"}
	}
	h.nextID++
	app.AppID = fmt.Sprintf("new-%d", h.nextID)
	h.apps = append(h.apps, app)
	h.renumber()
	return nil
}

func (h *fakeHost) EditApp(_ context.Context, app types.ManagedApp) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.enter("edit_app"); err != nil {
		return err
	}
	i := types.IndexOfApp(h.apps, app.AppID)
	if i < 0 {
		return &bridge.DomainError{Op: "edit_app", Message: "App not found"}
	}
	h.apps[i] = app
	return nil
}

func (h *fakeHost) RemoveApp(_ context.Context, appID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.enter("remove_app"); err != nil {
		return err
	}
	i := types.IndexOfApp(h.apps, appID)
	if i >= 0 {
		h.apps = slices.Delete(h.apps, i, i+1)
		h.renumber()
	}
	return nil
}

func (h *fakeHost) UndoRemoveApp(_ context.Context, snapshot types.ManagedApp, index int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.enter("undo_remove_app"); err != nil {
		return err
	}
	index = min(max(index, 0), len(h.apps))
	h.apps = slices.Insert(h.apps, index, snapshot)
	h.renumber()
	return nil
}

func (h *fakeHost) ToggleAppEnabled(_ context.Context, appID string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.enter("toggle_app_enabled"); err != nil {
		return false, err
	}
	i := types.IndexOfApp(h.apps, appID)
	if i < 0 {
		return false, &bridge.DomainError{Op: "toggle_app_enabled", Message: "App not found"}
	}
	h.apps[i].Enabled = !h.apps[i].Enabled
	return h.apps[i].Enabled, nil
}

func (h *fakeHost) TestLaunchApp(context.Context, string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.enter("test_launch_app")
}

func (h *fakeHost) StartApp(context.Context, string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.enter("start_app")
}

func (h *fakeHost) StopApp(context.Context, string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.enter("stop_app")
}

func (h *fakeHost) ReorderApps(_ context.Context, order, base []string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.enter("reorder_apps"); err != nil {
		return err
	}
	if !slices.Equal(base, types.AppIDs(h.apps)) {
		return &bridge.DomainError{Op: "reorder_apps", Message: "stale order"}
	}
	reordered := make([]types.ManagedApp, 0, len(order))
	for _, appID := range order {
		reordered = append(reordered, h.apps[types.IndexOfApp(h.apps, appID)])
	}
	h.apps = reordered
	h.renumber()
	return nil
}

func (h *fakeHost) GetCommonApps(context.Context) ([]types.CommonApp, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.enter("get_common_apps"); err != nil {
		return nil, err
	}
	return []types.CommonApp{
		{Name: "Crew Chief", ExecutablePath: `C:\Program Files\Britton IT Ltd\CrewChiefV4\CrewChiefV4.exe`},
		{Name: "SimHub", ExecutablePath: `C:\Program Files (x86)\SimHub\SimHubWPF.exe`},
	}, nil
}

func (h *fakeHost) GetProfiles(context.Context) ([]types.Profile, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.enter("get_profiles"); err != nil {
		return nil, err
	}
	return slices.Clone(h.profiles), nil
}

func (h *fakeHost) profile(profileID string) *types.Profile {
	for i := range h.profiles {
		if h.profiles[i].ProfileID == profileID {
			return &h.profiles[i]
		}
	}
	return nil
}

func (h *fakeHost) AddProfile(_ context.Context, name string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.enter("add_profile"); err != nil {
		return err
	}
	h.nextID++
	h.profiles = append(h.profiles, types.Profile{ProfileID: fmt.Sprintf("p-new-%d", h.nextID), Name: name, Enabled: true})
	return nil
}

func (h *fakeHost) RenameProfile(_ context.Context, profileID, name string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.enter("rename_profile"); err != nil {
		return err
	}
	p := h.profile(profileID)
	if p == nil {
		return &bridge.DomainError{Op: "rename_profile", Message: "Profile not found"}
	}
	p.Name = name
	return nil
}

func (h *fakeHost) RemoveProfile(_ context.Context, profileID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.enter("remove_profile"); err != nil {
		return err
	}
	if len(h.profiles) == 1 {
		return &bridge.DomainError{Op: "remove_profile", Message: "Cannot delete the last profile"}
	}
	h.profiles = slices.DeleteFunc(h.profiles, func(p types.Profile) bool { return p.ProfileID == profileID })
	return nil
}

func (h *fakeHost) SetActiveProfile(_ context.Context, profileID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.enter("set_active_profile"); err != nil {
		return err
	}
	for i := range h.profiles {
		h.profiles[i].IsActive = h.profiles[i].ProfileID == profileID
	}
	return nil
}

func (h *fakeHost) SetProfileColor(_ context.Context, profileID, color string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.enter("set_profile_color"); err != nil {
		return err
	}
	if p := h.profile(profileID); p != nil {
		p.Color = color
	}
	return nil
}

func (h *fakeHost) SetProfileTriggers(_ context.Context, profileID, csv string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.enter("set_profile_triggers"); err != nil {
		return err
	}
	if p := h.profile(profileID); p != nil {
		p.TriggerProcessNames = types.ParseTriggers(csv)
	}
	return nil
}

func (h *fakeHost) SetProfileTriggerMode(_ context.Context, profileID, mode string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.enter("set_profile_trigger_mode"); err != nil {
		return err
	}
	if p := h.profile(profileID); p != nil {
		p.TriggerProcessNames = types.DefaultTriggers(mode)
	}
	return nil
}

func (h *fakeHost) GetProfileApps(_ context.Context, profileID string) ([]types.ManagedApp, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.enter("get_profile_apps"); err != nil {
		return nil, err
	}
	if profileID != "p1" {
		return nil, nil
	}
	return slices.Clone(h.apps), nil
}

func (h *fakeHost) DuplicateProfile(_ context.Context, profileID string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.enter("duplicate_profile"); err != nil {
		return "", err
	}
	p := h.profile(profileID)
	if p == nil {
		return "", &bridge.DomainError{Op: "duplicate_profile", Message: "Profile not found"}
	}
	dup := *p
	dup.ProfileID = p.ProfileID + "-copy"
	dup.Name = p.Name + " (copy)"
	dup.IsActive = false
	h.profiles = append(h.profiles, dup)
	return dup.ProfileID, nil
}

func (h *fakeHost) ToggleProfileEnabled(_ context.Context, profileID string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.enter("toggle_profile_enabled"); err != nil {
		return false, err
	}
	p := h.profile(profileID)
	if p == nil {
		return false, errors.New("profile not found")
	}
	p.Enabled = !p.Enabled
	return p.Enabled, nil
}

// scriptedDialogs answers every prompt from fixed replies and records
// the requests.
type scriptedDialogs struct {
	mu       sync.Mutex
	text     string
	accept   bool
	inputs   []dialog.InputRequest
	confirms []dialog.ConfirmRequest
}

func (d *scriptedDialogs) RequestInput(_ context.Context, req dialog.InputRequest) (string, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inputs = append(d.inputs, req)
	if !d.accept {
		return "", false, nil
	}
	return d.text, true, nil
}

func (d *scriptedDialogs) RequestConfirm(_ context.Context, req dialog.ConfirmRequest) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.confirms = append(d.confirms, req)
	return d.accept, nil
}

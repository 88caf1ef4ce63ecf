package devhost

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Store is the host state. All methods are safe for concurrent use.
type Store struct {
	clock        clockwork.Clock
	historyLimit int

	mu        sync.Mutex
	cfg       hostConfig
	log       []types.LogEvent
	logSeq    int64
	history   []types.SessionRecord
	autostart bool
	cfgPath   string
	dialogs   map[string]string

	running      bool
	session      types.SessionType
	paused       bool
	sessionStart time.Time
	sessionApps  []string
	runningApps  []string
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithClock replaces the wall clock.
func WithClock(c clockwork.Clock) StoreOption {
	return func(s *Store) { s.clock = c }
}

// WithHistoryLimit bounds the session history.
func WithHistoryLimit(n int) StoreOption {
	return func(s *Store) {
		if n > 0 {
			s.historyLimit = n
		}
	}
}

// WithConfigPath sets what get_config_path reports.
func WithConfigPath(path string) StoreOption {
	return func(s *Store) { s.cfgPath = path }
}

// NewStore returns a host with one empty "Default" profile.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		clock:        clockwork.NewRealClock(),
		historyLimit: DefaultHistoryLimit,
		cfg:          defaultConfig(),
		dialogs:      make(map[string]string),
		cfgPath:      "ignition/config.json",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func defaultConfig() hostConfig {
	p := hostProfile{
		ProfileID:           newID(),
		Name:                "Default",
		Enabled:             true,
		TriggerProcessNames: []string{"iRacingSim64DX11.exe", "iRacingUI.exe"},
	}
	return hostConfig{
		SchemaVersion:   1,
		ActiveProfileID: p.ProfileID,
		Profiles:        []hostProfile{p},
		Settings:        types.DefaultSettings(),
	}
}

func newID() string {
	return uuid.NewString()
}

func ok() types.Result { return types.OKResult() }

func failed(format string, args ...any) types.Result {
	return types.Failed(fmt.Sprintf(format, args...))
}

// active returns the active profile, falling back to the first one.
func (s *Store) active() *hostProfile {
	for i := range s.cfg.Profiles {
		if s.cfg.Profiles[i].ProfileID == s.cfg.ActiveProfileID {
			return &s.cfg.Profiles[i]
		}
	}
	return &s.cfg.Profiles[0]
}

func (s *Store) profile(profileID string) *hostProfile {
	for i := range s.cfg.Profiles {
		if s.cfg.Profiles[i].ProfileID == profileID {
			return &s.cfg.Profiles[i]
		}
	}
	return nil
}

// logEvent appends to the bounded log. Callers hold mu.
func (s *Store) logEvent(typ types.LogEventType, app, msg string) {
	s.log = append(s.log, types.LogEvent{
		Seq:  s.logSeq,
		Time: s.clock.Now().Format("15:04:05"),
		Type: typ,
		App:  app,
		Msg:  msg,
	})
	s.logSeq++
	if len(s.log) > MaxLog {
		s.log = slices.Clone(s.log[len(s.log)-MaxLog:])
	}
}

// Apps

// Apps returns the active profile's apps with dense order indexes.
func (s *Store) Apps() []types.ManagedApp {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active().apps()
}

// AddApp appends app to the active profile and assigns it an id.
func (s *Store) AddApp(app types.ManagedApp) types.Result {
	app.Name = strings.TrimSpace(app.Name)
	app.ExecutablePath = strings.TrimSpace(app.ExecutablePath)
	if app.ExecutablePath == "" {
		return failed("Executable path is required.")
	}
	if app.Name == "" {
		return failed("Name is required.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	app.AppID = newID()
	p := s.active()
	p.Apps = append(p.Apps, app)
	res := ok()
	res.AppID = app.AppID
	return res
}

// EditApp replaces the app with the same id in place.
func (s *Store) EditApp(app types.ManagedApp) types.Result {
	if app.AppID == "" {
		return failed("app_id is required.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.active()
	i := p.indexOf(app.AppID)
	if i < 0 {
		return failed("App not found.")
	}
	p.Apps[i] = app
	return ok()
}

// RemoveApp deletes an app. The result is not ok when nothing was removed.
func (s *Store) RemoveApp(appID string) types.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.active()
	before := len(p.Apps)
	p.Apps = slices.DeleteFunc(p.Apps, func(a types.ManagedApp) bool { return a.AppID == appID })
	return types.Result{OK: len(p.Apps) < before}
}

// UndoRemoveApp reinserts a snapshot at position, clamped to the list.
func (s *Store) UndoRemoveApp(app types.ManagedApp, position int) types.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.active()
	if app.AppID == "" {
		app.AppID = newID()
	}
	position = min(max(position, 0), len(p.Apps))
	p.Apps = slices.Insert(p.Apps, position, app)
	return ok()
}

// ReorderApps applies order if base still matches the current order.
// Unknown ids are dropped and apps missing from order keep their relative
// order after the listed ones.
func (s *Store) ReorderApps(order, base []string) types.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.active()
	if base != nil && !slices.Equal(base, types.AppIDs(p.Apps)) {
		return failed("stale order")
	}

	reordered := make([]types.ManagedApp, 0, len(p.Apps))
	seen := make(map[string]bool, len(order))
	for _, appID := range order {
		if i := p.indexOf(appID); i >= 0 && !seen[appID] {
			reordered = append(reordered, p.Apps[i])
			seen[appID] = true
		}
	}
	for _, a := range p.Apps {
		if !seen[a.AppID] {
			reordered = append(reordered, a)
		}
	}
	p.Apps = reordered
	return ok()
}

// ToggleAppEnabled flips an app's enabled flag.
func (s *Store) ToggleAppEnabled(appID string) types.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.active()
	i := p.indexOf(appID)
	if i < 0 {
		return failed("App not found.")
	}
	p.Apps[i].Enabled = !p.Apps[i].Enabled
	res := ok()
	enabled := p.Apps[i].Enabled
	res.Enabled = &enabled
	return res
}

// TestLaunchApp records a launch without starting anything.
func (s *Store) TestLaunchApp(appID string) types.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.active()
	i := p.indexOf(appID)
	if i < 0 {
		return failed("App not found.")
	}
	s.logEvent(types.LogLaunch, p.Apps[i].Name, "Test launch")
	return ok()
}

// StartApp marks an app running outside a session.
func (s *Store) StartApp(appID string) types.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.active()
	i := p.indexOf(appID)
	if i < 0 {
		return failed("App not found.")
	}
	if !slices.Contains(s.runningApps, appID) {
		s.runningApps = append(s.runningApps, appID)
		s.logEvent(types.LogLaunch, p.Apps[i].Name, "Started manually")
	}
	return ok()
}

// StopApp marks an app stopped.
func (s *Store) StopApp(appID string) types.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.active()
	i := p.indexOf(appID)
	if i < 0 {
		return failed("App not found.")
	}
	if j := slices.Index(s.runningApps, appID); j >= 0 {
		s.runningApps = slices.Delete(s.runningApps, j, j+1)
		s.logEvent(types.LogStop, p.Apps[i].Name, "Stopped manually")
	}
	return ok()
}

// Profiles

// Profiles returns every profile with its derived fields.
func (s *Store) Profiles() []types.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Profile, len(s.cfg.Profiles))
	for i := range s.cfg.Profiles {
		p := &s.cfg.Profiles[i]
		out[i] = p.view(p.ProfileID == s.cfg.ActiveProfileID)
	}
	return out
}

// ProfileApps returns a profile's apps, or nothing for an unknown id.
func (s *Store) ProfileApps(profileID string) []types.ManagedApp {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profile(profileID)
	if p == nil {
		return []types.ManagedApp{}
	}
	return p.apps()
}

// AddProfile creates an empty profile with the default triggers.
func (s *Store) AddProfile(name string) types.Result {
	name = strings.TrimSpace(name)
	if name == "" {
		return failed("Name is required.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := hostProfile{
		ProfileID:           newID(),
		Name:                name,
		Enabled:             true,
		TriggerProcessNames: []string{"iRacingSim64DX11.exe", "iRacingUI.exe"},
	}
	s.cfg.Profiles = append(s.cfg.Profiles, p)
	res := ok()
	res.ProfileID = p.ProfileID
	return res
}

// RemoveProfile deletes a profile. The last profile cannot be removed.
func (s *Store) RemoveProfile(profileID string) types.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cfg.Profiles) == 1 {
		return failed("At least one profile must remain.")
	}
	s.cfg.Profiles = slices.DeleteFunc(s.cfg.Profiles, func(p hostProfile) bool { return p.ProfileID == profileID })
	if s.cfg.ActiveProfileID == profileID {
		s.cfg.ActiveProfileID = s.cfg.Profiles[0].ProfileID
	}
	return ok()
}

// DuplicateProfile deep-copies a profile with fresh ids.
func (s *Store) DuplicateProfile(profileID string) types.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	src := s.profile(profileID)
	if src == nil {
		return failed("Profile not found.")
	}
	dup := src.clone()
	dup.ProfileID = newID()
	dup.Name = src.Name + " (copy)"
	for i := range dup.Apps {
		dup.Apps[i].AppID = newID()
	}
	s.cfg.Profiles = append(s.cfg.Profiles, dup)
	res := ok()
	res.ProfileID = dup.ProfileID
	return res
}

// SetActiveProfile switches the active profile.
func (s *Store) SetActiveProfile(profileID string) types.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile(profileID) == nil {
		return failed("Profile not found.")
	}
	s.cfg.ActiveProfileID = profileID
	return ok()
}

// SetProfileTriggers replaces a profile's triggers from a CSV list.
func (s *Store) SetProfileTriggers(profileID, csv string) types.Result {
	items := types.ParseTriggers(csv)
	if len(items) == 0 {
		return failed("At least one trigger process name is required.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profile(profileID)
	if p == nil {
		return failed("Profile not found.")
	}
	p.TriggerProcessNames = items
	p.TriggerMode = TriggerModeCustom
	return ok()
}

// SetProfileTriggerMode resets a profile's triggers to a mode's defaults.
func (s *Store) SetProfileTriggerMode(profileID, mode string) types.Result {
	if mode != types.TriggerModeUI && mode != types.TriggerModeRace {
		return failed("Invalid mode.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profile(profileID)
	if p == nil {
		return failed("Profile not found.")
	}
	p.TriggerMode = mode
	p.TriggerProcessNames = types.DefaultTriggers(mode)
	return ok()
}

// RenameProfile renames a profile.
func (s *Store) RenameProfile(profileID, name string) types.Result {
	name = strings.TrimSpace(name)
	if name == "" {
		return failed("Name is required.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profile(profileID)
	if p == nil {
		return failed("Profile not found.")
	}
	p.Name = name
	return ok()
}

// SetProfileColor sets or clears a profile's color.
func (s *Store) SetProfileColor(profileID, color string) types.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profile(profileID)
	if p == nil {
		return failed("Profile not found.")
	}
	p.Color = color
	return ok()
}

// ToggleProfileEnabled flips whether a profile takes part in matching.
func (s *Store) ToggleProfileEnabled(profileID string) types.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profile(profileID)
	if p == nil {
		return failed("Profile not found.")
	}
	p.Enabled = !p.Enabled
	res := ok()
	enabled := p.Enabled
	res.Enabled = &enabled
	return res
}

// Settings

// Settings returns the global settings.
func (s *Store) Settings() types.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Settings
}

// SaveSettings validates and stores settings. Changing the trigger mode
// migrates every profile whose triggers still equal the old mode's
// defaults.
func (s *Store) SaveSettings(in types.Settings) types.Result {
	if in.PollIntervalSeconds <= 0 {
		return failed("Poll interval must be greater than zero.")
	}
	if in.TriggerMode != types.TriggerModeUI && in.TriggerMode != types.TriggerModeRace {
		in.TriggerMode = types.TriggerModeUI
	}
	if in.NotificationMode != types.NotifyAlways && in.NotificationMode != types.NotifyNever {
		in.NotificationMode = types.NotifyAlways
	}
	in.IRacingExePath = strings.TrimSpace(in.IRacingExePath)

	s.mu.Lock()
	defer s.mu.Unlock()
	if in.TriggerMode != s.cfg.Settings.TriggerMode {
		old := lowerSet(types.DefaultTriggers(s.cfg.Settings.TriggerMode))
		for i := range s.cfg.Profiles {
			p := &s.cfg.Profiles[i]
			if equalSets(lowerSet(p.TriggerProcessNames), old) {
				p.TriggerProcessNames = types.DefaultTriggers(in.TriggerMode)
			}
		}
	}
	s.cfg.Settings = in
	return ok()
}

func lowerSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = true
	}
	return set
}

func equalSets(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

// Autostart reports whether launch at login is on.
func (s *Store) Autostart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autostart
}

// SetAutostart turns launch at login on or off.
func (s *Store) SetAutostart(enabled bool) types.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autostart = enabled
	return ok()
}

// ConfigPath reports where the host keeps its config.
func (s *Store) ConfigPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfgPath
}

// File dialogs

// SetDialogPath scripts what the next dialog of kind op returns. An empty
// path makes it return nothing.
func (s *Store) SetDialogPath(op, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if path == "" {
		delete(s.dialogs, op)
		return
	}
	s.dialogs[op] = path
}

// DialogPath returns the scripted answer for op, or nil.
func (s *Store) DialogPath(op string) *string {
	s.mu.Lock()
	defer s.mu.Unlock()
	path, ok := s.dialogs[op]
	if !ok {
		return nil
	}
	return &path
}

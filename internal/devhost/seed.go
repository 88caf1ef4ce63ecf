package devhost

import (
	"fmt"
	"os"

	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
	"github.com/goccy/go-yaml"
)

// Seed is the YAML shape accepted by LoadSeed.
//
//	active_profile: Default
//	settings:
//	  trigger_mode: race
//	autostart: true
//	profiles:
//	  - name: Default
//	    apps:
//	      - name: Crew Chief
//	        executable_path: C:\CrewChiefV4\CrewChiefV4.exe
//	history:
//	  - started_at: "2026-10-01T19:30:00"
//	    duration_seconds: 3600
//	    profile_name: Default
type Seed struct {
	ActiveProfile string        `yaml:"active_profile"`
	Settings      *SeedSettings `yaml:"settings"`
	Autostart     bool          `yaml:"autostart"`
	Profiles      []SeedProfile `yaml:"profiles"`
	History       []SeedSession `yaml:"history"`
}

// SeedSettings overrides the default settings field by field.
type SeedSettings struct {
	PollIntervalSeconds float64 `yaml:"poll_interval_seconds"`
	MinimizeToTray      *bool   `yaml:"minimize_to_tray"`
	IRacingExePath      string  `yaml:"iracing_exe_path"`
	TriggerMode         string  `yaml:"trigger_mode"`
	NotificationMode    string  `yaml:"notification_mode"`
}

func (ss SeedSettings) settings() types.Settings {
	s := types.DefaultSettings()
	if ss.PollIntervalSeconds > 0 {
		s.PollIntervalSeconds = ss.PollIntervalSeconds
	}
	if ss.MinimizeToTray != nil {
		s.MinimizeToTray = *ss.MinimizeToTray
	}
	s.IRacingExePath = ss.IRacingExePath
	if ss.TriggerMode == types.TriggerModeRace {
		s.TriggerMode = types.TriggerModeRace
	}
	if ss.NotificationMode == types.NotifyNever {
		s.NotificationMode = types.NotifyNever
	}
	return s
}

// SeedSession is a past session in a seed file.
type SeedSession struct {
	StartedAt       string   `yaml:"started_at"`
	DurationSeconds float64  `yaml:"duration_seconds"`
	ProfileName     string   `yaml:"profile_name"`
	AppsLaunched    []string `yaml:"apps_launched"`
}

// SeedProfile is a profile in a seed file. Enabled defaults to true.
type SeedProfile struct {
	ProfileID           string    `yaml:"profile_id"`
	Name                string    `yaml:"name"`
	Enabled             *bool     `yaml:"enabled"`
	Color               string    `yaml:"color"`
	TriggerProcessNames []string  `yaml:"trigger_process_names"`
	Apps                []SeedApp `yaml:"apps"`
}

// SeedApp is an app in a seed file. Omitted flags take the host defaults.
type SeedApp struct {
	AppID                 string  `yaml:"app_id"`
	Name                  string  `yaml:"name"`
	ExecutablePath        string  `yaml:"executable_path"`
	Arguments             string  `yaml:"arguments"`
	WorkingDirectory      string  `yaml:"working_directory"`
	StartDelaySeconds     float64 `yaml:"start_delay_seconds"`
	StartMinimized        bool    `yaml:"start_minimized"`
	StartIfAlreadyRunning bool    `yaml:"start_if_already_running"`
	KillOnIRacingExit     *bool   `yaml:"kill_on_iracing_exit"`
	KillProcessTree       *bool   `yaml:"kill_process_tree"`
	WaitForProcess        string  `yaml:"wait_for_process"`
	WaitTimeoutSeconds    float64 `yaml:"wait_timeout_seconds"`
	Enabled               *bool   `yaml:"enabled"`
}

func (a SeedApp) app() types.ManagedApp {
	app := types.NewManagedApp(a.Name, a.ExecutablePath)
	app.AppID = a.AppID
	app.Arguments = a.Arguments
	app.WorkingDirectory = a.WorkingDirectory
	app.StartDelaySeconds = max(a.StartDelaySeconds, 0)
	app.StartMinimized = a.StartMinimized
	app.StartIfAlreadyRunning = a.StartIfAlreadyRunning
	app.WaitForProcess = a.WaitForProcess
	if a.WaitTimeoutSeconds > 0 {
		app.WaitTimeoutSeconds = a.WaitTimeoutSeconds
	}
	if a.KillOnIRacingExit != nil {
		app.KillOnIRacingExit = *a.KillOnIRacingExit
	}
	if a.KillProcessTree != nil {
		app.KillProcessTree = *a.KillProcessTree
	}
	if a.Enabled != nil {
		app.Enabled = *a.Enabled
	}
	return app
}

func (p SeedProfile) profile() hostProfile {
	hp := hostProfile{
		ProfileID:           p.ProfileID,
		Name:                p.Name,
		Enabled:             p.Enabled == nil || *p.Enabled,
		Color:               p.Color,
		TriggerProcessNames: append([]string{}, p.TriggerProcessNames...),
	}
	for _, a := range p.Apps {
		hp.Apps = append(hp.Apps, a.app())
	}
	if len(hp.TriggerProcessNames) == 0 {
		hp.TriggerProcessNames = []string{"iRacingSim64DX11.exe", "iRacingUI.exe"}
	}
	return hp
}

// LoadSeed reads a seed file.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes seed YAML.
func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &seed, nil
}

// Apply replaces the store's configuration with the seed. The active
// profile is matched by id or name.
func (s *Store) Apply(seed *Seed) error {
	cfg := defaultConfig()
	if len(seed.Profiles) > 0 {
		cfg.Profiles = make([]hostProfile, len(seed.Profiles))
		for i, p := range seed.Profiles {
			cfg.Profiles[i] = p.profile()
		}
		cfg.ActiveProfileID = ""
	}
	if seed.Settings != nil {
		cfg.Settings = seed.Settings.settings()
	}
	if err := normalizeConfig(&cfg); err != nil {
		return err
	}
	for _, p := range cfg.Profiles {
		if seed.ActiveProfile != "" && (p.ProfileID == seed.ActiveProfile || p.Name == seed.ActiveProfile) {
			cfg.ActiveProfileID = p.ProfileID
			break
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.autostart = seed.Autostart
	s.history = nil
	for _, h := range seed.History {
		s.history = append(s.history, types.SessionRecord(h))
	}
	if len(s.history) > s.historyLimit {
		s.history = s.history[len(s.history)-s.historyLimit:]
	}
	return nil
}

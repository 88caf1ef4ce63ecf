package devhost

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
active_profile: Endurance
autostart: true
settings:
  poll_interval_seconds: 2
  trigger_mode: race
  iracing_exe_path: 'C:\Program Files (x86)\iRacing\iRacingUI.exe'
profiles:
  - name: Sprint
    color: "#E53935"
    apps:
      - name: SimHub
        executable_path: 'C:\Program Files (x86)\SimHub\SimHub.exe'
      - name: OBS Studio
        executable_path: 'C:\Program Files\obs-studio\bin\64bit\obs64.exe'
        kill_on_iracing_exit: false
        enabled: false
  - profile_id: endurance
    name: Endurance
    enabled: false
    trigger_process_names: [iRacingSim64DX11.exe]
history:
  - started_at: "2024-03-09T18:30:00"
    duration_seconds: 3600
    profile_name: Sprint
    apps_launched: [SimHub]
`

func TestParseAndApplySeed(t *testing.T) {
	seed, err := ParseSeed([]byte(seedYAML))
	require.NoError(t, err)

	s := NewStore()
	require.NoError(t, s.Apply(seed))

	profiles := s.Profiles()
	require.Len(t, profiles, 2)
	assert.Equal(t, "Sprint", profiles[0].Name)
	assert.Equal(t, "#E53935", profiles[0].Color)
	assert.True(t, profiles[0].Enabled)
	assert.Equal(t, []string{"iRacingSim64DX11.exe", "iRacingUI.exe"}, profiles[0].TriggerProcessNames)
	assert.NotEmpty(t, profiles[0].ProfileID)
	assert.Equal(t, "endurance", profiles[1].ProfileID)
	assert.True(t, profiles[1].IsActive, "active profile matched by name")
	assert.False(t, profiles[1].Enabled)

	apps := s.ProfileApps(profiles[0].ProfileID)
	require.Len(t, apps, 2)
	assert.Equal(t, `C:\Program Files (x86)\SimHub\SimHub.exe`, apps[0].ExecutablePath)
	assert.True(t, apps[0].Enabled)
	assert.True(t, apps[0].KillOnIRacingExit)
	assert.Equal(t, types.DefaultWaitTimeoutSeconds, apps[0].WaitTimeoutSeconds)
	assert.False(t, apps[1].Enabled)
	assert.False(t, apps[1].KillOnIRacingExit)
	assert.True(t, apps[1].KillProcessTree)

	settings := s.Settings()
	assert.Equal(t, 2.0, settings.PollIntervalSeconds)
	assert.Equal(t, types.TriggerModeRace, settings.TriggerMode)
	assert.Equal(t, types.NotifyAlways, settings.NotificationMode)
	assert.True(t, settings.MinimizeToTray)
	assert.True(t, s.Autostart())

	history := s.History()
	require.Len(t, history, 1)
	assert.Equal(t, 3600.0, history[0].DurationSeconds)
}

func TestApplyEmptySeedKeepsDefaults(t *testing.T) {
	seed, err := ParseSeed([]byte("autostart: false\n"))
	require.NoError(t, err)

	s := NewStore()
	require.NoError(t, s.Apply(seed))
	profiles := s.Profiles()
	require.Len(t, profiles, 1)
	assert.Equal(t, "Default", profiles[0].Name)
	assert.True(t, profiles[0].IsActive)
	assert.Equal(t, types.DefaultSettings(), s.Settings())
}

func TestLoadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o644))

	seed, err := LoadSeed(path)
	require.NoError(t, err)
	assert.Equal(t, "Endurance", seed.ActiveProfile)

	_, err = LoadSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = ParseSeed([]byte("profiles: [unclosed"))
	assert.Error(t, err)
}

func TestShippedSeedLoads(t *testing.T) {
	seed, err := LoadSeed(filepath.Join("..", "..", "configs", "devhost-seed.yaml"))
	require.NoError(t, err)

	s := NewStore()
	require.NoError(t, s.Apply(seed))
	assert.Len(t, s.Profiles(), 2)
	assert.Len(t, s.Apps(), 3, "apps of the active profile")
	assert.Len(t, s.History(), 1)
}

package types

// Trigger modes select which simulation process starts a session.
const (
	TriggerModeUI   = "ui"
	TriggerModeRace = "race"
)

// Notification modes.
const (
	NotifyAlways = "always"
	NotifyNever  = "never"
)

// Settings holds the host-side values shown on the settings page.
type Settings struct {
	PollIntervalSeconds float64 `json:"poll_interval_seconds"`
	MinimizeToTray      bool    `json:"minimize_to_tray"`
	IRacingExePath      string  `json:"iracing_exe_path"`
	TriggerMode         string  `json:"trigger_mode"`
	NotificationMode    string  `json:"notification_mode"`
}

// DefaultSettings mirrors a fresh host configuration.
func DefaultSettings() Settings {
	return Settings{
		PollIntervalSeconds: 1,
		MinimizeToTray:      true,
		TriggerMode:         TriggerModeUI,
		NotificationMode:    NotifyAlways,
	}
}

// DefaultTriggers returns the trigger process names implied by a mode.
func DefaultTriggers(mode string) []string {
	if mode == TriggerModeRace {
		return []string{"iRacingSim64DX11.exe"}
	}
	return []string{"iRacingUI.exe"}
}

package view

import (
	"time"

	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
)

// Screen is a top-level page.
type Screen string

const (
	ScreenApps     Screen = "apps"
	ScreenProfiles Screen = "profiles"
	ScreenLog      Screen = "log"
	ScreenSettings Screen = "settings"
)

// Screens in navigation order.
var Screens = []Screen{ScreenApps, ScreenProfiles, ScreenLog, ScreenSettings}

// LogTab is a tab of the log screen.
type LogTab string

const (
	LogTabEvents  LogTab = "events"
	LogTabHistory LogTab = "history"
)

// Density is the app list layout.
type Density string

const (
	DensityCard    Density = "card"
	DensityCompact Density = "compact"
)

// ParseDensity falls back to card for unknown values.
func ParseDensity(s string) Density {
	if Density(s) == DensityCompact {
		return DensityCompact
	}
	return DensityCard
}

// Level is the severity of a toast.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// Status is the header status indicator.
type Status struct {
	Online        bool
	Label         string
	Paused        bool
	PauseLabel    string // label of the pause/resume affordance
	ManagedBadge  int    // 0 hides the badge
	RunningAppIDs []string
	SessionStart  string
}

// LogLine is one rendered activity log row.
type LogLine struct {
	Seq    int64
	Time   string
	Symbol string
	Type   types.LogEventType
	App    string
	Msg    string
}

// HistoryRow is one rendered session history row.
type HistoryRow struct {
	Started  string
	Duration string
	Profile  string
	Apps     []string
}

// Toast is a transient notification.
type Toast struct {
	Message string
	Level   Level
}

// UndoOffer is the affordance shown after a delete.
type UndoOffer struct {
	Token   string
	Message string
	Expires time.Time
}

// DialogKind distinguishes dialog types.
type DialogKind string

const (
	DialogInput   DialogKind = "input"
	DialogConfirm DialogKind = "confirm"
)

// Dialog is a modal prompt.
type Dialog struct {
	ID           string
	Kind         DialogKind
	Title        string
	Message      string
	Placeholder  string
	Default      string
	ConfirmLabel string
}

// SettingsPage is everything the settings screen shows.
type SettingsPage struct {
	Settings   types.Settings
	Autostart  bool
	ConfigPath string
}

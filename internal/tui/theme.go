package tui

import (
	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
	"github.com/GriffinCanCode/ignition/companion/internal/view"
	"github.com/charmbracelet/lipgloss"
)

type theme struct {
	header      lipgloss.Style
	online      lipgloss.Style
	offline     lipgloss.Style
	tabActive   lipgloss.Style
	tabInactive lipgloss.Style
	badge       lipgloss.Style
	panel       lipgloss.Style
	title       lipgloss.Style
	row         lipgloss.Style
	selected    lipgloss.Style
	muted       lipgloss.Style
	disabled    lipgloss.Style
	running     lipgloss.Style
	dialog      lipgloss.Style
	help        lipgloss.Style
	toast       map[view.Level]lipgloss.Style
	event       map[types.LogEventType]lipgloss.Style
}

func newTheme(name string) theme {
	accent := lipgloss.Color("#f97316")
	green := lipgloss.Color("#22c55e")
	red := lipgloss.Color("#ef4444")
	blue := lipgloss.Color("#38bdf8")
	yellow := lipgloss.Color("#facc15")
	text := lipgloss.Color("#e5e7eb")
	muted := lipgloss.Color("#9ca3af")
	panelBorder := lipgloss.Color("#374151")
	selectBg := lipgloss.Color("#1f2937")
	if name == "light" {
		text = lipgloss.Color("#111827")
		muted = lipgloss.Color("#6b7280")
		panelBorder = lipgloss.Color("#d1d5db")
		selectBg = lipgloss.Color("#e5e7eb")
	}

	return theme{
		header: lipgloss.NewStyle().
			Foreground(text).
			Bold(true).
			Padding(0, 1),
		online:  lipgloss.NewStyle().Foreground(green).Bold(true),
		offline: lipgloss.NewStyle().Foreground(muted),
		tabActive: lipgloss.NewStyle().
			Background(accent).
			Foreground(lipgloss.Color("#111827")).
			Bold(true).
			Padding(0, 1),
		tabInactive: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),
		badge: lipgloss.NewStyle().
			Background(red).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1),
		panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(panelBorder).
			Padding(0, 1),
		title:    lipgloss.NewStyle().Foreground(accent).Bold(true),
		row:      lipgloss.NewStyle().Foreground(text),
		selected: lipgloss.NewStyle().Foreground(text).Background(selectBg).Bold(true),
		muted:    lipgloss.NewStyle().Foreground(muted),
		disabled: lipgloss.NewStyle().Foreground(muted).Strikethrough(true),
		running:  lipgloss.NewStyle().Foreground(green),
		dialog: lipgloss.NewStyle().
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(1, 2),
		help: lipgloss.NewStyle().Foreground(muted),
		toast: map[view.Level]lipgloss.Style{
			view.LevelInfo:    lipgloss.NewStyle().Foreground(blue),
			view.LevelSuccess: lipgloss.NewStyle().Foreground(green).Bold(true),
			view.LevelError:   lipgloss.NewStyle().Foreground(red).Bold(true),
		},
		event: map[types.LogEventType]lipgloss.Style{
			types.LogLaunch:       lipgloss.NewStyle().Foreground(green),
			types.LogStop:         lipgloss.NewStyle().Foreground(muted),
			types.LogSkipped:      lipgloss.NewStyle().Foreground(yellow),
			types.LogError:        lipgloss.NewStyle().Foreground(red),
			types.LogIRacingStart: lipgloss.NewStyle().Foreground(accent).Bold(true),
			types.LogIRacingStop:  lipgloss.NewStyle().Foreground(accent),
			types.LogPaused:       lipgloss.NewStyle().Foreground(yellow),
			types.LogResumed:      lipgloss.NewStyle().Foreground(blue),
		},
	}
}

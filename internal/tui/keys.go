package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings.
type KeyMap struct {
	NextScreen key.Binding
	PrevScreen key.Binding
	Up         key.Binding
	Down       key.Binding
	MoveUp     key.Binding
	MoveDown   key.Binding
	Toggle     key.Binding
	Delete     key.Binding
	Undo       key.Binding
	Launch     key.Binding
	Add        key.Binding
	Edit       key.Binding
	Templates  key.Binding
	Browse     key.Binding
	StartStop  key.Binding
	Activate   key.Binding
	Rename     key.Binding
	Duplicate  key.Binding
	Triggers   key.Binding
	Color      key.Binding
	TriggerSet key.Binding
	LogTab     key.Binding
	Clear      key.Binding
	Pause      key.Binding
	IRacing    key.Binding
	Density    key.Binding
	Theme      key.Binding
	Export     key.Binding
	Import     key.Binding
	Autostart  key.Binding
	Tray       key.Binding
	Notify     key.Binding
	Trigger    key.Binding
	IRacingExe key.Binding
	ConfigDir  key.Binding
	LogDir     key.Binding
	Reload     key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
	Expand     key.Binding
	Submit     key.Binding
	Cancel     key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	BrowseExe  key.Binding
	BrowseDir  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextScreen: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next screen")),
		PrevScreen: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous screen")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		MoveUp:     key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("K", "move up")),
		MoveDown:   key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("J", "move down")),
		Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "enable/disable")),
		Delete:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Undo:       key.NewBinding(key.WithKeys("u", "ctrl+z"), key.WithHelp("u", "undo")),
		Launch:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "test launch")),
		Add:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "add")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Templates:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "detected apps")),
		Browse:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "browse")),
		StartStop:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start/stop")),
		Activate:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Rename:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		Duplicate:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "duplicate")),
		Triggers:   key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "triggers")),
		Color:      key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "color")),
		TriggerSet: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "ui/race triggers")),
		LogTab:     key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "events/history")),
		Clear:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear")),
		Pause:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause/resume")),
		IRacing:    key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "launch iRacing")),
		Density:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "density")),
		Theme:      key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "theme")),
		Export:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Import:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import")),
		Autostart:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "autostart")),
		Tray:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "tray")),
		Notify:     key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "notifications")),
		Trigger:    key.NewBinding(key.WithKeys("M"), key.WithHelp("M", "trigger mode")),
		IRacingExe: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "iRacing path")),
		ConfigDir:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "config folder")),
		LogDir:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "log folder")),
		Reload:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c")),
		Expand:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "show apps")),
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "ok")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		NextField:  key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevField:  key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		BrowseExe:  key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "browse executable")),
		BrowseDir:  key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "browse folder")),
	}
}

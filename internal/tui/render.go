package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/GriffinCanCode/ignition/companion/internal/view"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var screenTitles = map[view.Screen]string{
	view.ScreenApps:     "Apps",
	view.ScreenProfiles: "Profiles",
	view.ScreenLog:      "Log",
	view.ScreenSettings: "Settings",
}

// bindings satisfies help.KeyMap for one screen.
type bindings []key.Binding

func (b bindings) ShortHelp() []key.Binding  { return b }
func (b bindings) FullHelp() [][]key.Binding { return [][]key.Binding{b} }

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch {
	case m.dialog != nil:
		body = m.renderDialog()
	case m.form != nil:
		body = m.renderForm()
	case m.picking:
		body = m.renderTemplates()
	default:
		body = m.renderScreen()
	}

	sections := []string{m.renderHeader(), m.renderTabs(), body}
	if line := m.renderNotices(); line != "" {
		sections = append(sections, line)
	}
	sections = append(sections, m.help.View(m.helpKeys()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	t := m.theme
	indicator := t.offline.Render("○ " + m.status.Label)
	if m.status.Online {
		indicator = t.online.Render("● " + m.status.Label)
	}
	parts := []string{t.title.Render("iGnition"), indicator}
	if m.status.Label == "" {
		parts[1] = t.offline.Render("○ Connecting…")
	}
	if m.status.SessionStart != "" {
		parts = append(parts, t.muted.Render("since "+m.status.SessionStart))
	}
	if m.status.ManagedBadge > 0 {
		parts = append(parts, t.muted.Render(fmt.Sprintf("%d managed", m.status.ManagedBadge)))
	}
	if m.status.PauseLabel != "" {
		parts = append(parts, t.muted.Render("[p] "+m.status.PauseLabel))
	}
	return t.header.Render(strings.Join(parts, "  "))
}

func (m Model) renderTabs() string {
	t := m.theme
	tabs := make([]string, 0, len(view.Screens))
	for _, s := range view.Screens {
		label := screenTitles[s]
		style := t.tabInactive
		if s == m.screen {
			style = t.tabActive
		}
		tab := style.Render(label)
		if s == view.ScreenLog && m.badge > 0 {
			tab = lipgloss.JoinHorizontal(lipgloss.Center, tab, t.badge.Render(fmt.Sprint(m.badge)))
		}
		tabs = append(tabs, tab)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderScreen() string {
	var content string
	switch m.screen {
	case view.ScreenApps:
		content = m.renderApps()
	case view.ScreenProfiles:
		content = m.renderProfiles()
	case view.ScreenLog:
		content = m.renderLog()
	case view.ScreenSettings:
		content = m.renderSettings()
	}
	panel := m.theme.panel
	if m.width > 4 {
		panel = panel.Width(m.width - 2)
	}
	return panel.Render(content)
}

func (m Model) renderApps() string {
	t := m.theme
	if len(m.apps) == 0 {
		return t.muted.Render("No apps yet. Press n to add one, a to pick from detected apps or b to browse.")
	}
	rows := make([]string, 0, len(m.apps))
	for i, app := range m.apps {
		style := t.row
		if !app.Enabled {
			style = t.disabled
		}
		if i == m.appCursor {
			style = t.selected
		}

		marker := "  "
		if slices.Contains(m.status.RunningAppIDs, app.AppID) {
			marker = t.running.Render("▶ ")
		}
		line := marker + style.Render(app.Name)
		if !app.Enabled {
			line += t.muted.Render(" (disabled)")
		}
		if m.density == view.DensityCard {
			detail := app.ExecutablePath
			if app.Arguments != "" {
				detail += " " + app.Arguments
			}
			line += "\n    " + t.muted.Render(detail)
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderProfiles() string {
	t := m.theme
	if len(m.profiles) == 0 {
		return t.muted.Render("No profiles.")
	}
	var b strings.Builder
	for i, p := range m.profiles {
		dot := "●"
		if p.Color != "" {
			dot = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render(dot)
		}
		style := t.row
		if !p.Enabled {
			style = t.disabled
		}
		if i == m.profCursor {
			style = t.selected
		}

		line := fmt.Sprintf("%s %s %s", dot, style.Render(p.Name), t.muted.Render(fmt.Sprintf("(%d apps)", p.AppCount)))
		if p.IsActive {
			line += " " + t.online.Render("active")
		}
		if len(p.TriggerProcessNames) > 0 {
			line += " " + t.muted.Render("triggers: "+strings.Join(p.TriggerProcessNames, ", "))
		}
		b.WriteString(line)
		b.WriteString("\n")

		if p.ProfileID == m.expanded {
			if len(m.profileApps) == 0 {
				b.WriteString("    " + t.muted.Render("no apps") + "\n")
			}
			for _, app := range m.profileApps {
				b.WriteString("    " + t.muted.Render("· "+app.Name) + "\n")
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderLog() string {
	t := m.theme
	events, history := t.tabInactive, t.tabInactive
	if m.logTab == view.LogTabHistory {
		history = t.tabActive
	} else {
		events = t.tabActive
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top, events.Render("Events"), history.Render("History"))

	var rows []string
	if m.logTab == view.LogTabHistory {
		rows = m.historyRows()
	} else {
		rows = m.logRows()
	}
	if len(rows) == 0 {
		rows = []string{t.muted.Render("Nothing yet.")}
	}
	if m.height > 12 && len(rows) > m.height-12 {
		rows = rows[:m.height-12]
	}
	return tabs + "\n" + strings.Join(rows, "\n")
}

// logRows lists the newest entry first.
func (m Model) logRows() []string {
	t := m.theme
	rows := make([]string, 0, len(m.logLines))
	for i := len(m.logLines) - 1; i >= 0; i-- {
		l := m.logLines[i]
		style, ok := t.event[l.Type]
		if !ok {
			style = t.row
		}
		text := l.Msg
		if l.App != "" {
			text = l.App + ": " + l.Msg
		}
		rows = append(rows, t.muted.Render(l.Time)+" "+style.Render(l.Symbol+" "+text))
	}
	return rows
}

func (m Model) historyRows() []string {
	t := m.theme
	rows := make([]string, 0, len(m.history))
	for _, h := range m.history {
		apps := "no apps"
		if len(h.Apps) > 0 {
			apps = strings.Join(h.Apps, ", ")
		}
		rows = append(rows, fmt.Sprintf("%s  %s  %s  %s",
			t.row.Render(h.Started), t.muted.Render(h.Duration), t.title.Render(h.Profile), t.muted.Render(apps)))
	}
	return rows
}

func (m Model) renderSettings() string {
	t := m.theme
	if m.settings == nil {
		return t.muted.Render("Loading settings…")
	}
	s := m.settings.Settings
	iracing := s.IRacingExePath
	if iracing == "" {
		iracing = "(auto-detect)"
	}
	rows := [][2]string{
		{"Poll interval", fmt.Sprintf("%gs", s.PollIntervalSeconds)},
		{"Minimize to tray", onOff(s.MinimizeToTray)},
		{"iRacing executable", iracing},
		{"Trigger mode", s.TriggerMode},
		{"Notifications", s.NotificationMode},
		{"Launch at login", onOff(m.settings.Autostart)},
		{"Config file", m.settings.ConfigPath},
		{"Layout", string(m.density)},
		{"Theme", m.themeID},
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, t.muted.Render(fmt.Sprintf("%-20s", r[0]))+t.row.Render(r[1]))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderTemplates() string {
	t := m.theme
	lines := []string{t.title.Render("Add detected apps")}
	if len(m.templates) == 0 {
		lines = append(lines, t.muted.Render("No known apps were found on this machine."))
	}
	for i, tpl := range m.templates {
		style := t.row
		if i == m.pickCursor {
			style = t.selected
		}
		lines = append(lines, style.Render(checkbox(m.picked[i])+" "+tpl.Name)+" "+t.muted.Render(tpl.ExecutablePath))
	}
	return t.panel.Render(strings.Join(lines, "\n"))
}

func (m Model) renderForm() string {
	t := m.theme
	f := m.form
	lines := []string{t.title.Render(f.title())}
	for i, in := range f.inputs {
		if !f.visible(i) {
			continue
		}
		label := t.muted
		if i == f.focus {
			label = t.selected
		}
		line := label.Render(fmt.Sprintf("%-18s", fieldLabels[i])) + in.View()
		if i == fieldExe && f.icon != "" {
			line += " " + t.muted.Render("icon: "+f.icon)
		}
		lines = append(lines, line)
	}
	for i, on := range f.checks {
		style := t.row
		if textFields+i == f.focus {
			style = t.selected
		}
		lines = append(lines, style.Render(checkbox(on)+" "+checkLabels[i]))
	}
	return t.panel.Render(strings.Join(lines, "\n"))
}

func (m Model) renderDialog() string {
	t := m.theme
	d := m.dialog
	lines := []string{t.title.Render(d.Title)}
	if d.Message != "" {
		lines = append(lines, d.Message)
	}
	confirm := d.ConfirmLabel
	if confirm == "" {
		confirm = "OK"
	}
	if d.Kind == view.DialogInput {
		lines = append(lines, "", m.input.View(), "", t.help.Render("enter "+strings.ToLower(confirm)+" • esc cancel"))
	} else {
		lines = append(lines, "", t.help.Render("y/enter "+strings.ToLower(confirm)+" • n/esc cancel"))
	}
	box := t.dialog.Render(strings.Join(lines, "\n"))
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height/2, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func (m Model) renderNotices() string {
	t := m.theme
	var parts []string
	if m.toast != nil {
		parts = append(parts, t.toast[m.toast.Level].Render(m.toast.Message))
	}
	if m.undo != nil {
		left := m.undo.Expires.Sub(m.now).Round(time.Second)
		if left < 0 {
			left = 0
		}
		parts = append(parts, t.toast[view.LevelInfo].Render(
			fmt.Sprintf("%s · press u to undo (%s)", m.undo.Message, left)))
	}
	return strings.Join(parts, "   ")
}

func (m Model) helpKeys() bindings {
	k := m.keys
	switch {
	case m.dialog != nil:
		return bindings{k.Submit, k.Cancel}
	case m.form != nil:
		return bindings{k.NextField, k.PrevField, k.Toggle, k.BrowseExe, k.BrowseDir, k.Submit, k.Cancel}
	case m.picking:
		return bindings{k.Up, k.Down, k.Toggle, k.Submit, k.Cancel}
	}
	common := bindings{k.NextScreen, k.Pause, k.IRacing, k.Quit}
	switch m.screen {
	case view.ScreenApps:
		return append(bindings{k.Add, k.Edit, k.Templates, k.Browse, k.Toggle, k.Delete, k.Undo, k.MoveUp, k.MoveDown, k.Launch, k.StartStop, k.Density}, common...)
	case view.ScreenProfiles:
		return append(bindings{k.Activate, k.Add, k.Rename, k.Duplicate, k.Toggle, k.Triggers, k.TriggerSet, k.Color, k.Expand, k.Delete}, common...)
	case view.ScreenLog:
		return append(bindings{k.LogTab, k.Clear}, common...)
	case view.ScreenSettings:
		return append(bindings{k.Autostart, k.Tray, k.Notify, k.Trigger, k.IRacingExe, k.ConfigDir, k.LogDir, k.Export, k.Import, k.Theme}, common...)
	}
	return common
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

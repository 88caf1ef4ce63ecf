package tui

import (
	"context"
	"slices"
	"time"

	"github.com/GriffinCanCode/ignition/companion/internal/prefs"
	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
	"github.com/GriffinCanCode/ignition/companion/internal/view"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const tickInterval = 250 * time.Millisecond

// Options tunes a Model. Zero values pick the defaults.
type Options struct {
	Keys          *KeyMap
	ToastDuration time.Duration
	Clock         clockwork.Clock
	Logger        *zap.Logger
}

type tickMsg time.Time

// actionDoneMsg reports a finished action. Failures were already shown to
// the user by the session.
type actionDoneMsg struct {
	action string
	err    error
}

// Replies addressed to one app form. They are dropped once that form
// has closed.
type (
	pathPickedMsg struct {
		form  *appForm
		field int
		path  string
	}
	iconMsg struct {
		form    *appForm
		path    string
		dataURL string
	}
	formSavedMsg struct {
		form *appForm
		err  error
	}
)

// Model is the bubbletea model of the companion UI.
type Model struct {
	ctx     context.Context
	actions Actions
	sink    *Sink
	keys    KeyMap
	clock   clockwork.Clock
	logger  *zap.Logger

	toastFor   time.Duration
	toast      *view.Toast
	toastUntil time.Time
	undo       *view.UndoOffer
	now        time.Time

	screen  view.Screen
	logTab  view.LogTab
	status  view.Status
	badge   int
	density view.Density
	theme   theme
	themeID string

	apps        []types.ManagedApp
	appCursor   int
	profiles    []types.Profile
	profCursor  int
	expanded    string
	profileApps []types.ManagedApp
	logLines    []view.LogLine
	history     []view.HistoryRow
	settings    *view.SettingsPage

	picking    bool
	templates  []types.CommonApp
	picked     []bool
	pickCursor int

	form   *appForm
	dialog *view.Dialog
	input  textinput.Model
	help   help.Model

	width    int
	height   int
	quitting bool
}

// New returns a model driving actions and rendering what arrives on sink.
func New(ctx context.Context, actions Actions, sink *Sink, opts Options) Model {
	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}
	if opts.ToastDuration <= 0 {
		opts.ToastDuration = 3 * time.Second
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	input := textinput.New()
	input.Prompt = "› "
	input.CharLimit = 256

	return Model{
		ctx:      ctx,
		actions:  actions,
		sink:     sink,
		keys:     keys,
		clock:    opts.Clock,
		logger:   opts.Logger,
		toastFor: opts.ToastDuration,
		now:      opts.Clock.Now(),
		screen:   view.ScreenApps,
		logTab:   view.LogTabEvents,
		density:  view.DensityCard,
		theme:    newTheme(prefs.DefaultTheme),
		themeID:  prefs.DefaultTheme,
		input:    input,
		help:     help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.sink.Wait(),
		m.do("start", m.actions.Start),
		m.tick(),
	)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// do runs an action off the event loop.
func (m Model) do(action string, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return actionDoneMsg{action: action, err: fn(ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.now = m.clock.Now()
		if m.toast != nil && !m.now.Before(m.toastUntil) {
			m.toast = nil
		}
		return m, m.tick()

	case actionDoneMsg:
		if msg.err != nil {
			m.logger.Debug("action failed", zap.String("action", msg.action), zap.Error(msg.err))
		}
		return m, nil

	case pathPickedMsg:
		if msg.form != m.form {
			return m, nil
		}
		m.form.set(msg.field, msg.path)
		if msg.field == fieldExe {
			return m, m.fetchIcon()
		}
		return m, nil

	case iconMsg:
		if msg.form == m.form && msg.path == m.form.exe() {
			m.form.icon = iconMediaType(msg.dataURL)
		}
		return m, nil

	case formSavedMsg:
		if msg.form == m.form && msg.err == nil {
			m.form = nil
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if next, handled := m.render(msg); handled {
		if next.quitting {
			return next, tea.Quit
		}
		return next, next.sink.Wait()
	}
	return m, nil
}

// render applies a message from the sink.
func (m Model) render(msg tea.Msg) (Model, bool) {
	switch msg := msg.(type) {
	case statusMsg:
		m.status = view.Status(msg)
	case badgeMsg:
		m.badge = int(msg)
	case logMsg:
		m.logLines = msg
	case historyMsg:
		m.history = msg
	case toastMsg:
		t := view.Toast(msg)
		m.toast = &t
		m.now = m.clock.Now()
		m.toastUntil = m.now.Add(m.toastFor)
	case showUndoMsg:
		offer := view.UndoOffer(msg)
		m.undo = &offer
	case hideUndoMsg:
		if m.undo != nil && m.undo.Token == string(msg) {
			m.undo = nil
		}
	case appsMsg:
		m.apps = msg
		m.appCursor = clamp(m.appCursor, len(m.apps))
	case profilesMsg:
		m.profiles = msg
		m.profCursor = clamp(m.profCursor, len(m.profiles))
	case profileAppsMsg:
		m.expanded = msg.profileID
		m.profileApps = msg.apps
	case commonAppsMsg:
		m.picking = true
		m.templates = msg
		m.picked = make([]bool, len(msg))
		m.pickCursor = 0
	case showDialogMsg:
		d := view.Dialog(msg)
		m.dialog = &d
		m.input.Reset()
		if d.Kind == view.DialogInput {
			m.input.Placeholder = d.Placeholder
			m.input.SetValue(d.Default)
			m.input.CursorEnd()
			m.input.Focus()
		}
	case hideDialogMsg:
		if m.dialog != nil && m.dialog.ID == string(msg) {
			m.dialog = nil
			m.input.Blur()
		}
	case settingsMsg:
		page := view.SettingsPage(msg)
		m.settings = &page
	case navigateMsg:
		m.screen, m.logTab = msg.screen, msg.tab
		m.picking = false
		m.form = nil
	case prefsMsg:
		m.density = msg.density
		m.themeID = msg.theme
		m.theme = newTheme(msg.theme)
	case quitMsg:
		m.quitting = true
	default:
		return m, false
	}
	return m, true
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.dialog != nil {
		return m.handleDialogKey(msg)
	}
	if m.form != nil {
		return m.handleFormKey(msg)
	}
	if m.picking {
		return m.handlePickKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.do("quit", func(ctx context.Context) error {
			_, err := m.actions.Quit(ctx)
			return err
		})
	case key.Matches(msg, m.keys.NextScreen):
		return m, m.navigate(1)
	case key.Matches(msg, m.keys.PrevScreen):
		return m, m.navigate(-1)
	case key.Matches(msg, m.keys.Reload):
		return m, m.do("reload", m.actions.Reload)
	case key.Matches(msg, m.keys.Pause):
		return m, m.do("pause", m.actions.TogglePause)
	case key.Matches(msg, m.keys.IRacing):
		return m, m.do("launch_iracing", m.actions.LaunchIRacing)
	case key.Matches(msg, m.keys.Undo):
		if m.undo == nil {
			return m, nil
		}
		token := m.undo.Token
		return m, m.do("undo", func(ctx context.Context) error {
			return m.actions.UndoDelete(ctx, token)
		})
	case key.Matches(msg, m.keys.Density):
		next := view.DensityCompact
		if m.density == view.DensityCompact {
			next = view.DensityCard
		}
		return m, m.do("density", func(context.Context) error {
			return m.actions.SetDensity(next)
		})
	case key.Matches(msg, m.keys.Theme):
		next := nextTheme(m.themeID)
		return m, m.do("theme", func(context.Context) error {
			return m.actions.SetTheme(next)
		})
	}

	switch m.screen {
	case view.ScreenApps:
		return m.handleAppsKey(msg)
	case view.ScreenProfiles:
		return m.handleProfilesKey(msg)
	case view.ScreenLog:
		return m.handleLogKey(msg)
	case view.ScreenSettings:
		return m.handleSettingsKey(msg)
	}
	return m, nil
}

func (m Model) navigate(step int) tea.Cmd {
	i := slices.Index(view.Screens, m.screen)
	n := len(view.Screens)
	next := view.Screens[((i+step)%n+n)%n]
	return m.do("navigate", func(ctx context.Context) error {
		return m.actions.Navigate(ctx, next)
	})
}

func (m Model) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := *m.dialog
	name := msg.String()
	if d.Kind == view.DialogConfirm {
		switch name {
		case "y":
			name = "enter"
		case "n":
			name = "esc"
		}
	}

	if dk, ok := dialogKeys[name]; ok {
		text := m.input.Value()
		actions := m.actions
		return m, func() tea.Msg {
			actions.DialogKey(d.ID, dk, text)
			return nil
		}
	}

	if d.Kind != view.DialogInput {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handlePickKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.picking = false
	case key.Matches(msg, m.keys.Up):
		m.pickCursor = clamp(m.pickCursor-1, len(m.templates))
	case key.Matches(msg, m.keys.Down):
		m.pickCursor = clamp(m.pickCursor+1, len(m.templates))
	case key.Matches(msg, m.keys.Toggle):
		if m.pickCursor < len(m.picked) {
			picked := slices.Clone(m.picked)
			picked[m.pickCursor] = !picked[m.pickCursor]
			m.picked = picked
		}
	case key.Matches(msg, m.keys.Submit):
		var selected []types.CommonApp
		for i, tpl := range m.templates {
			if m.picked[i] {
				selected = append(selected, tpl)
			}
		}
		m.picking = false
		return m, m.do("add_templates", func(ctx context.Context) error {
			m.actions.AddTemplates(ctx, selected)
			return nil
		})
	}
	return m, nil
}

// handleFormKey edits the open app form. Enter saves it and the form
// stays open until the host accepts the app.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.form = nil
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		app := f.result()
		ctx, actions := m.ctx, m.actions
		return m, func() tea.Msg {
			return formSavedMsg{form: f, err: actions.SaveApp(ctx, app)}
		}
	case key.Matches(msg, m.keys.NextField), key.Matches(msg, m.keys.PrevField):
		leaving := f.focus
		dir := 1
		if key.Matches(msg, m.keys.PrevField) {
			dir = -1
		}
		f.step(dir)
		if leaving == fieldExe && f.exe() != f.iconFor {
			return m, m.fetchIcon()
		}
		return m, nil
	case key.Matches(msg, m.keys.BrowseExe):
		return m, m.browse(fieldExe, m.actions.BrowseExe)
	case key.Matches(msg, m.keys.BrowseDir):
		return m, m.browse(fieldWorkDir, m.actions.BrowseDirectory)
	}

	if i, ok := f.onCheck(); ok {
		if key.Matches(msg, m.keys.Toggle) {
			f.checks[i] = !f.checks[i]
		}
		return m, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return m, cmd
}

// browse asks the host for a path and fills field with it.
func (m Model) browse(field int, pick func(context.Context) (string, bool, error)) tea.Cmd {
	ctx, f := m.ctx, m.form
	return func() tea.Msg {
		path, ok, err := pick(ctx)
		if err != nil || !ok {
			return actionDoneMsg{action: "browse", err: err}
		}
		return pathPickedMsg{form: f, field: field, path: path}
	}
}

// fetchIcon looks up the icon for the form's executable.
func (m Model) fetchIcon() tea.Cmd {
	f := m.form
	path := f.exe()
	f.iconFor = path
	f.icon = ""
	if path == "" {
		return nil
	}
	ctx, actions, logger := m.ctx, m.actions, m.logger
	return func() tea.Msg {
		dataURL, ok, err := actions.AppIcon(ctx, path)
		if err != nil {
			logger.Debug("icon lookup failed", zap.String("path", path), zap.Error(err))
		}
		if !ok {
			dataURL = ""
		}
		return iconMsg{form: f, path: path, dataURL: dataURL}
	}
}

func (m Model) handleAppsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.appCursor = clamp(m.appCursor-1, len(m.apps))
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.appCursor = clamp(m.appCursor+1, len(m.apps))
		return m, nil
	case key.Matches(msg, m.keys.Add):
		m.form = newAppForm(types.NewManagedApp("", ""))
		return m, nil
	case key.Matches(msg, m.keys.Templates):
		return m, m.do("load_templates", m.actions.LoadTemplates)
	case key.Matches(msg, m.keys.Browse):
		return m, m.do("browse_app", m.actions.BrowseApp)
	}

	app, ok := m.selectedApp()
	if !ok {
		return m, nil
	}
	id := app.AppID
	rendered := types.AppIDs(m.apps)
	switch {
	case key.Matches(msg, m.keys.Edit):
		m.form = newAppForm(app)
		return m, m.fetchIcon()
	case key.Matches(msg, m.keys.MoveUp):
		m.appCursor = clamp(m.appCursor-1, len(m.apps))
		return m, m.do("move_up", func(ctx context.Context) error {
			return m.actions.MoveUp(ctx, rendered, id)
		})
	case key.Matches(msg, m.keys.MoveDown):
		m.appCursor = clamp(m.appCursor+1, len(m.apps))
		return m, m.do("move_down", func(ctx context.Context) error {
			return m.actions.MoveDown(ctx, rendered, id)
		})
	case key.Matches(msg, m.keys.StartStop):
		if slices.Contains(m.status.RunningAppIDs, id) {
			return m, m.withID("stop_app", m.actions.StopApp, id)
		}
		return m, m.withID("start_app", m.actions.StartApp, id)
	case key.Matches(msg, m.keys.Toggle):
		return m, m.withID("toggle_app", m.actions.ToggleApp, id)
	case key.Matches(msg, m.keys.Delete):
		return m, m.withID("delete_app", m.actions.DeleteApp, id)
	case key.Matches(msg, m.keys.Launch):
		return m, m.withID("test_launch", m.actions.TestLaunch, id)
	}
	return m, nil
}

func (m Model) handleProfilesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.profCursor = clamp(m.profCursor-1, len(m.profiles))
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.profCursor = clamp(m.profCursor+1, len(m.profiles))
		return m, nil
	case key.Matches(msg, m.keys.Add):
		return m, m.do("add_profile", m.actions.AddProfile)
	}

	p, ok := m.selectedProfile()
	if !ok {
		return m, nil
	}
	id := p.ProfileID
	switch {
	case key.Matches(msg, m.keys.Activate):
		return m, m.withID("activate_profile", m.actions.ActivateProfile, id)
	case key.Matches(msg, m.keys.Rename):
		return m, m.withID("rename_profile", m.actions.RenameProfile, id)
	case key.Matches(msg, m.keys.Delete):
		return m, m.withID("delete_profile", m.actions.DeleteProfile, id)
	case key.Matches(msg, m.keys.Duplicate):
		return m, m.withID("duplicate_profile", m.actions.DuplicateProfile, id)
	case key.Matches(msg, m.keys.Toggle):
		return m, m.withID("toggle_profile", m.actions.ToggleProfile, id)
	case key.Matches(msg, m.keys.Triggers):
		return m, m.withID("edit_triggers", m.actions.EditTriggers, id)
	case key.Matches(msg, m.keys.TriggerSet):
		mode := types.TriggerModeRace
		if types.TriggerModeOf(p.TriggerProcessNames) == types.TriggerModeRace {
			mode = types.TriggerModeUI
		}
		return m, m.do("trigger_mode", func(ctx context.Context) error {
			return m.actions.SetTriggerMode(ctx, id, mode)
		})
	case key.Matches(msg, m.keys.Color):
		color := types.NextProfileColor(p.Color)
		return m, m.do("profile_color", func(ctx context.Context) error {
			return m.actions.SetProfileColor(ctx, id, color)
		})
	case key.Matches(msg, m.keys.Expand):
		if m.expanded == id {
			m.expanded = ""
			m.profileApps = nil
			return m, nil
		}
		return m, m.withID("expand_profile", m.actions.ExpandProfile, id)
	}
	return m, nil
}

func (m Model) handleLogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.LogTab):
		next := view.LogTabHistory
		if m.logTab == view.LogTabHistory {
			next = view.LogTabEvents
		}
		return m, m.do("log_tab", func(ctx context.Context) error {
			return m.actions.SetLogTab(ctx, next)
		})
	case key.Matches(msg, m.keys.Clear):
		return m, m.do("clear_log", m.actions.ClearLog)
	}
	return m, nil
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Export):
		return m, m.do("export", m.actions.ExportConfig)
	case key.Matches(msg, m.keys.Import):
		return m, m.do("import", m.actions.ImportConfig)
	case key.Matches(msg, m.keys.ConfigDir):
		return m, m.do("config_folder", m.actions.OpenConfigFolder)
	case key.Matches(msg, m.keys.LogDir):
		return m, m.do("log_folder", m.actions.OpenLogFolder)
	}

	// The rest edit the loaded page.
	if m.settings == nil {
		return m, nil
	}
	s := m.settings.Settings
	switch {
	case key.Matches(msg, m.keys.Autostart):
		enabled := !m.settings.Autostart
		return m, m.do("autostart", func(ctx context.Context) error {
			return m.actions.SetAutostart(ctx, enabled)
		})
	case key.Matches(msg, m.keys.IRacingExe):
		return m, m.do("iracing_path", func(ctx context.Context) error {
			return m.actions.BrowseIRacing(ctx, s)
		})
	case key.Matches(msg, m.keys.Tray):
		s.MinimizeToTray = !s.MinimizeToTray
	case key.Matches(msg, m.keys.Notify):
		s.NotificationMode = types.NotifyNever
		if m.settings.Settings.NotificationMode == types.NotifyNever {
			s.NotificationMode = types.NotifyAlways
		}
	case key.Matches(msg, m.keys.Trigger):
		s.TriggerMode = types.TriggerModeRace
		if m.settings.Settings.TriggerMode == types.TriggerModeRace {
			s.TriggerMode = types.TriggerModeUI
		}
	default:
		return m, nil
	}
	return m, m.do("settings", func(ctx context.Context) error {
		return m.actions.UpdateSettings(ctx, s)
	})
}

func (m Model) withID(action string, fn func(context.Context, string) error, id string) tea.Cmd {
	return m.do(action, func(ctx context.Context) error {
		return fn(ctx, id)
	})
}

func (m Model) selectedApp() (types.ManagedApp, bool) {
	if m.appCursor < 0 || m.appCursor >= len(m.apps) {
		return types.ManagedApp{}, false
	}
	return m.apps[m.appCursor], true
}

func (m Model) selectedProfile() (types.Profile, bool) {
	if m.profCursor < 0 || m.profCursor >= len(m.profiles) {
		return types.Profile{}, false
	}
	return m.profiles[m.profCursor], true
}

func nextTheme(current string) string {
	i := slices.Index(prefs.Themes, current)
	return prefs.Themes[(i+1)%len(prefs.Themes)]
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

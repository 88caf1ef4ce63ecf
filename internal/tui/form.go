package tui

import (
	"strconv"
	"strings"

	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
	"github.com/charmbracelet/bubbles/textinput"
)

// Text fields of the app form, in tab order.
const (
	fieldName = iota
	fieldExe
	fieldArgs
	fieldWorkDir
	fieldDelay
	fieldWaitFor
	fieldWaitTimeout
	textFields
)

// Checkboxes follow the text fields.
const (
	checkMinimized = iota
	checkAllowRunning
	checkKillOnExit
	checkKillTree
	checkFields
)

var fieldLabels = [textFields]string{
	"Name",
	"Executable",
	"Arguments",
	"Working dir",
	"Start delay (s)",
	"Wait for process",
	"Wait timeout (s)",
}

var checkLabels = [checkFields]string{
	"Start minimized",
	"Start if already running",
	"Close when iRacing exits",
	"Close child processes",
}

// appForm edits one managed app. An empty AppID means a new app.
type appForm struct {
	app    types.ManagedApp
	inputs [textFields]textinput.Model
	checks [checkFields]bool
	focus  int

	// icon is the media type of the icon found for iconFor.
	icon    string
	iconFor string
}

func newAppForm(app types.ManagedApp) *appForm {
	f := &appForm{app: app}
	values := [textFields]string{
		app.Name,
		app.ExecutablePath,
		app.Arguments,
		app.WorkingDirectory,
		formatSeconds(app.StartDelaySeconds),
		app.WaitForProcess,
		formatSeconds(app.WaitTimeoutSeconds),
	}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 512
		in.SetValue(values[i])
		f.inputs[i] = in
	}
	f.checks = [checkFields]bool{
		app.StartMinimized,
		app.StartIfAlreadyRunning,
		app.KillOnIRacingExit,
		app.KillProcessTree,
	}
	f.setFocus(fieldName)
	return f
}

func (f *appForm) title() string {
	if f.app.AppID == "" {
		return "Add App"
	}
	return "Edit App"
}

// waitTimeoutShown reports whether the timeout applies. It only matters
// once a process to wait for is set.
func (f *appForm) waitTimeoutShown() bool {
	return strings.TrimSpace(f.inputs[fieldWaitFor].Value()) != ""
}

func (f *appForm) visible(i int) bool {
	return i != fieldWaitTimeout || f.waitTimeoutShown()
}

func (f *appForm) setFocus(i int) {
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	f.focus = i
	if i < textFields {
		f.inputs[i].Focus()
	}
}

// step moves focus by dir over the visible fields and checkboxes.
func (f *appForm) step(dir int) {
	n := textFields + checkFields
	i := f.focus
	for range n {
		i = ((i+dir)%n + n) % n
		if f.visible(i) {
			break
		}
	}
	f.setFocus(i)
}

// onCheck reports the focused checkbox, if any.
func (f *appForm) onCheck() (int, bool) {
	if f.focus < textFields {
		return 0, false
	}
	return f.focus - textFields, true
}

func (f *appForm) exe() string {
	return strings.TrimSpace(f.inputs[fieldExe].Value())
}

func (f *appForm) set(field int, value string) {
	f.inputs[field].SetValue(value)
	f.inputs[field].CursorEnd()
}

// result is the app the form describes. Unparsable numbers fall back to
// the host's defaults.
func (f *appForm) result() types.ManagedApp {
	app := f.app
	text := func(i int) string { return strings.TrimSpace(f.inputs[i].Value()) }

	app.Name = text(fieldName)
	app.ExecutablePath = text(fieldExe)
	app.Arguments = text(fieldArgs)
	app.WorkingDirectory = text(fieldWorkDir)
	app.StartDelaySeconds = parseSeconds(text(fieldDelay), 0)
	app.WaitForProcess = text(fieldWaitFor)
	app.WaitTimeoutSeconds = parseSeconds(text(fieldWaitTimeout), types.DefaultWaitTimeoutSeconds)
	app.StartMinimized = f.checks[checkMinimized]
	app.StartIfAlreadyRunning = f.checks[checkAllowRunning]
	app.KillOnIRacingExit = f.checks[checkKillOnExit]
	app.KillProcessTree = f.checks[checkKillTree]
	return app
}

func parseSeconds(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v == 0 {
		return fallback
	}
	return v
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// iconMediaType extracts the media type of a data URL.
func iconMediaType(dataURL string) string {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return ""
	}
	mediaType, _, _ := strings.Cut(rest, ";")
	mediaType, _, _ = strings.Cut(mediaType, ",")
	return mediaType
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

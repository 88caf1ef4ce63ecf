package events

import (
	"fmt"
	"math"

	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
	"github.com/GriffinCanCode/ignition/companion/internal/view"
)

var logSymbols = map[types.LogEventType]string{
	types.LogLaunch:       "▶",
	types.LogStop:         "◼",
	types.LogSkipped:      "⊘",
	types.LogError:        "✖",
	types.LogIRacingStart: "●",
	types.LogIRacingStop:  "●",
	types.LogPaused:       "⏸",
	types.LogResumed:      "▶",
}

// Symbol returns the glyph shown next to an entry of type t.
func Symbol(t types.LogEventType) string {
	if s, ok := logSymbols[t]; ok {
		return s
	}
	return "·"
}

// StatusView derives the header indicator from a status.
func StatusView(s types.Status) view.Status {
	v := view.Status{
		Online:        s.IRacingRunning,
		Paused:        s.Paused,
		PauseLabel:    "Pause",
		ManagedBadge:  max(s.ManagedCount, 0),
		RunningAppIDs: s.RunningAppIDs,
		SessionStart:  s.SessionStartAt,
	}
	if s.Paused {
		v.PauseLabel = "Resume"
	}

	switch {
	case !s.IRacingRunning:
		v.Label = "iRacing · Offline"
	case s.SessionType == types.SessionRace:
		v.Label = "iRacing · Racing 🏁"
	case s.SessionType == types.SessionService:
		v.Label = "iRacing · Service Online"
	default:
		v.Label = "iRacing · Online"
	}
	return v
}

// LogLines renders entries for display.
func LogLines(entries []types.LogEvent) []view.LogLine {
	lines := make([]view.LogLine, len(entries))
	for i, e := range entries {
		lines[i] = view.LogLine{
			Seq:    e.Seq,
			Time:   e.Time,
			Symbol: Symbol(e.Type),
			Type:   e.Type,
			App:    e.App,
			Msg:    e.Msg,
		}
	}
	return lines
}

// FormatDuration renders seconds as 42s, 3m 5s or 2h 4m.
func FormatDuration(secs float64) string {
	if secs < 60 {
		return fmt.Sprintf("%ds", int(math.Round(max(secs, 0))))
	}
	m := int(secs / 60)
	s := int(math.Round(math.Mod(secs, 60)))
	if m < 60 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%dh %dm", m/60, m%60)
}

// FormatStarted renders a session start time, falling back to the raw
// value, or "?" when absent.
func FormatStarted(r types.SessionRecord) string {
	if r.StartedAt == "" {
		return "?"
	}
	t, ok := r.Started()
	if !ok {
		return r.StartedAt
	}
	return t.Format("Jan 2, 15:04")
}

// HistoryRows renders session records for display.
func HistoryRows(records []types.SessionRecord) []view.HistoryRow {
	rows := make([]view.HistoryRow, len(records))
	for i, r := range records {
		profile := r.ProfileName
		if profile == "" {
			profile = "?"
		}
		rows[i] = view.HistoryRow{
			Started:  FormatStarted(r),
			Duration: FormatDuration(r.DurationSeconds),
			Profile:  profile,
			Apps:     r.AppsLaunched,
		}
	}
	return rows
}

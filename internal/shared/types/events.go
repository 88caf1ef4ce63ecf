package types

import "time"

// LogEventType classifies activity log entries.
type LogEventType string

const (
	LogLaunch       LogEventType = "launch"
	LogStop         LogEventType = "stop"
	LogSkipped      LogEventType = "skipped"
	LogError        LogEventType = "error"
	LogIRacingStart LogEventType = "iracing_start"
	LogIRacingStop  LogEventType = "iracing_stop"
	LogPaused       LogEventType = "paused"
	LogResumed      LogEventType = "resumed"
)

// LogEvent is a single activity log entry.
type LogEvent struct {
	Seq  int64        `json:"seq"`
	Time string       `json:"time"`
	Type LogEventType `json:"type"`
	App  string       `json:"app,omitempty"` // empty for simulation-level events
	Msg  string       `json:"msg"`
}

// SessionType describes what the running simulation is doing.
type SessionType string

const (
	SessionRace    SessionType = "race"
	SessionService SessionType = "service"
	SessionOther   SessionType = "other"
)

// Status is the transient monitoring state carried by every push.
type Status struct {
	IRacingRunning bool        `json:"iracing_running"`
	SessionType    SessionType `json:"session_type,omitempty"`
	Paused         bool        `json:"paused"`
	ManagedCount   int         `json:"managed_count"`
	RunningAppIDs  []string    `json:"running_app_ids,omitempty"`
	SessionStartAt string      `json:"session_start_at,omitempty"`
}

// SessionRecord is a completed simulation session.
type SessionRecord struct {
	StartedAt       string   `json:"started_at"`
	DurationSeconds float64  `json:"duration_seconds"`
	ProfileName     string   `json:"profile_name"`
	AppsLaunched    []string `json:"apps_launched"`
}

// startedLayouts are the timestamp forms the host has been seen to write.
var startedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Started parses StartedAt.
func (s SessionRecord) Started() (time.Time, bool) {
	for _, layout := range startedLayouts {
		if t, err := time.ParseInLocation(layout, s.StartedAt, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

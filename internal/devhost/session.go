package devhost

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
	"github.com/bytedance/sonic"
)

// Status returns the current monitoring status.
func (s *Store) Status() types.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := types.Status{
		IRacingRunning: s.running,
		Paused:         s.paused,
		ManagedCount:   len(s.runningApps),
		RunningAppIDs:  slices.Clone(s.runningApps),
	}
	if s.running {
		st.SessionType = s.session
	}
	if !s.sessionStart.IsZero() {
		st.SessionStartAt = s.sessionStart.Format("2006-01-02T15:04:05")
	}
	return st
}

// LogSince returns the entries with a sequence number of at least seq.
func (s *Store) LogSince(seq int64) []types.LogEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, _ := slices.BinarySearchFunc(s.log, seq, func(e types.LogEvent, target int64) int {
		switch {
		case e.Seq < target:
			return -1
		case e.Seq > target:
			return 1
		}
		return 0
	})
	return slices.Clone(s.log[i:])
}

// ClearLog empties the host log. Sequence numbers keep counting.
func (s *Store) ClearLog() types.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = nil
	return ok()
}

// AddEvent appends an arbitrary log entry.
func (s *Store) AddEvent(typ types.LogEventType, app, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logEvent(typ, app, msg)
}

// History returns completed sessions, newest first.
func (s *Store) History() []types.SessionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := slices.Clone(s.history)
	slices.Reverse(out)
	if out == nil {
		out = []types.SessionRecord{}
	}
	return out
}

// ClearHistory forgets all sessions.
func (s *Store) ClearHistory() types.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	return ok()
}

// Paused reports whether monitoring is paused.
func (s *Store) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// SetPaused pauses or resumes monitoring.
func (s *Store) SetPaused(paused bool) types.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if paused != s.paused {
		s.paused = paused
		if paused {
			s.logEvent(types.LogPaused, "", "Monitoring paused")
		} else {
			s.logEvent(types.LogResumed, "", "Monitoring resumed")
		}
	}
	res := ok()
	res.Paused = &paused
	return res
}

// SetIRacing simulates the simulation starting or stopping.
func (s *Store) SetIRacing(running bool, session types.SessionType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if running {
		if session == "" {
			session = types.SessionOther
		}
		s.session = session
		if s.running {
			return
		}
		s.running = true
		s.startSession()
		return
	}

	if !s.running {
		return
	}
	s.running = false
	s.stopSession()
}

// startSession launches the active profile's enabled apps. Callers hold mu.
func (s *Store) startSession() {
	if s.paused {
		s.logEvent(types.LogSkipped, "", "iRacing detected — skipped (monitoring paused)")
		return
	}
	s.logEvent(types.LogIRacingStart, "", "iRacing detected — starting apps")
	s.sessionStart = s.clock.Now()
	s.sessionApps = nil

	for _, app := range s.active().Apps {
		if !app.Enabled {
			s.logEvent(types.LogSkipped, app.Name, "Skipped (app disabled)")
			continue
		}
		if slices.Contains(s.runningApps, app.AppID) && !app.StartIfAlreadyRunning {
			s.logEvent(types.LogSkipped, app.Name, "Already running")
			continue
		}
		if !slices.Contains(s.runningApps, app.AppID) {
			s.runningApps = append(s.runningApps, app.AppID)
		}
		s.sessionApps = append(s.sessionApps, app.Name)
		s.logEvent(types.LogLaunch, app.Name, "Started")
	}
}

// stopSession stops managed apps and records the session. Callers hold mu.
func (s *Store) stopSession() {
	s.logEvent(types.LogIRacingStop, "", "iRacing closed — stopping apps")

	p := s.active()
	var keep []string
	for _, appID := range s.runningApps {
		i := p.indexOf(appID)
		if i >= 0 && !p.Apps[i].KillOnIRacingExit {
			keep = append(keep, appID)
			continue
		}
		name := appID
		if i >= 0 {
			name = p.Apps[i].Name
		}
		s.logEvent(types.LogStop, name, "Stopped")
	}
	s.runningApps = keep

	if s.sessionStart.IsZero() {
		return
	}
	ended := s.clock.Now()
	s.history = append(s.history, types.SessionRecord{
		StartedAt:       s.sessionStart.Format("2006-01-02T15:04:05"),
		DurationSeconds: math.Round(ended.Sub(s.sessionStart).Seconds()),
		ProfileName:     p.Name,
		AppsLaunched:    slices.Clone(s.sessionApps),
	})
	if len(s.history) > s.historyLimit {
		s.history = slices.Clone(s.history[len(s.history)-s.historyLimit:])
	}
	s.sessionStart = time.Time{}
	s.sessionApps = nil
}

// LaunchIRacing starts a simulated service session.
func (s *Store) LaunchIRacing() types.Result {
	s.SetIRacing(true, types.SessionService)
	return ok()
}

// Config export and import

// ExportConfig writes the configuration as JSON to path.
func (s *Store) ExportConfig(path string) types.Result {
	if path == "" {
		return failed("No path given.")
	}
	s.mu.Lock()
	data, err := sonic.ConfigStd.MarshalIndent(s.cfg, "", "  ")
	s.mu.Unlock()
	if err != nil {
		return failed("%v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return failed("%v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return failed("%v", err)
	}
	return ok()
}

// ImportConfig replaces the configuration with the file at path.
func (s *Store) ImportConfig(path string) types.Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return failed("%v", err)
	}
	var cfg hostConfig
	if err := sonic.ConfigStd.Unmarshal(data, &cfg); err != nil {
		return failed("invalid config: %v", err)
	}
	if err := normalizeConfig(&cfg); err != nil {
		return failed("%v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	return ok()
}

// normalizeConfig fills ids and defaults and checks the active profile.
func normalizeConfig(cfg *hostConfig) error {
	if len(cfg.Profiles) == 0 {
		return errors.New("config has no profiles")
	}
	if cfg.SchemaVersion == 0 {
		cfg.SchemaVersion = 1
	}
	for i := range cfg.Profiles {
		p := &cfg.Profiles[i]
		if p.ProfileID == "" {
			p.ProfileID = newID()
		}
		if p.Name == "" {
			p.Name = "Default"
		}
		for j := range p.Apps {
			if p.Apps[j].AppID == "" {
				p.Apps[j].AppID = newID()
			}
		}
	}
	found := false
	for _, p := range cfg.Profiles {
		if p.ProfileID == cfg.ActiveProfileID {
			found = true
			break
		}
	}
	if !found {
		cfg.ActiveProfileID = cfg.Profiles[0].ProfileID
	}
	if cfg.Settings.TriggerMode == "" {
		cfg.Settings = types.DefaultSettings()
	}
	if cfg.Settings.PollIntervalSeconds <= 0 {
		return fmt.Errorf("poll interval must be greater than zero")
	}
	return nil
}

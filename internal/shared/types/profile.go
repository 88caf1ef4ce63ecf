package types

import (
	"fmt"
	"slices"
	"strings"
)

// Profile is a named bundle of managed apps plus the process names that
// trigger it. At most one profile is active at a time.
type Profile struct {
	ProfileID           string   `json:"profile_id"`
	Name                string   `json:"name"`
	Color               string   `json:"color"` // empty means no color
	TriggerProcessNames []string `json:"trigger_process_names"`
	IsActive            bool     `json:"is_active"`
	AppCount            int      `json:"app_count"`
	Enabled             bool     `json:"enabled"`
}

// ProfileColors is the palette offered by the color picker.
var ProfileColors = []string{
	"#E53935", "#F57C00", "#FBC02D", "#388E3C",
	"#0288D1", "#7B1FA2", "#C2185B", "#546E7A",
}

// NextProfileColor steps through ProfileColors and then "no color".
func NextProfileColor(current string) string {
	i := slices.Index(ProfileColors, current)
	switch {
	case current == "":
		return ProfileColors[0]
	case i < 0 || i == len(ProfileColors)-1:
		return ""
	}
	return ProfileColors[i+1]
}

// TriggerModeOf reports the mode whose defaults match names, or "" when
// the triggers were edited by hand.
func TriggerModeOf(names []string) string {
	for _, mode := range []string{TriggerModeUI, TriggerModeRace} {
		if slices.Equal(names, DefaultTriggers(mode)) {
			return mode
		}
	}
	return ""
}

// FindProfile returns the profile with id.
func FindProfile(profiles []Profile, id string) (Profile, bool) {
	for _, p := range profiles {
		if p.ProfileID == id {
			return p, true
		}
	}
	return Profile{}, false
}

// ActiveProfile returns the active profile, if any. More than one active
// profile violates the host contract and is reported as an error.
func ActiveProfile(profiles []Profile) (Profile, bool, error) {
	var (
		active Profile
		found  bool
	)
	for _, p := range profiles {
		if !p.IsActive {
			continue
		}
		if found {
			return active, true, fmt.Errorf("profiles %q and %q are both active", active.ProfileID, p.ProfileID)
		}
		active, found = p, true
	}
	return active, found, nil
}

// ParseTriggers splits a comma separated list of process names, dropping
// blanks and keeping the first occurrence of each name (case-insensitive).
func ParseTriggers(csv string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(csv, ",") {
		name := strings.TrimSpace(part)
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true
		out = append(out, name)
	}
	return out
}

// JoinTriggers renders trigger names the way the editor shows them.
func JoinTriggers(names []string) string {
	return strings.Join(names, ", ")
}

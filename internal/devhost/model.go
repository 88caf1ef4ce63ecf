package devhost

import (
	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
)

// MaxLog bounds the host-side activity log.
const MaxLog = 200

// DefaultHistoryLimit bounds the session history.
const DefaultHistoryLimit = 50

// TriggerModeCustom marks a profile whose triggers were edited by hand.
const TriggerModeCustom = "custom"

// hostProfile is a profile as the host stores it, apps included.
type hostProfile struct {
	ProfileID           string             `json:"profile_id"`
	Name                string             `json:"name"`
	Enabled             bool               `json:"enabled"`
	TriggerProcessNames []string           `json:"trigger_process_names"`
	TriggerMode         string             `json:"trigger_mode,omitempty"`
	Color               string             `json:"color"`
	Apps                []types.ManagedApp `json:"apps"`
}

func (p *hostProfile) view(active bool) types.Profile {
	return types.Profile{
		ProfileID:           p.ProfileID,
		Name:                p.Name,
		Color:               p.Color,
		TriggerProcessNames: append([]string{}, p.TriggerProcessNames...),
		IsActive:            active,
		AppCount:            len(p.Apps),
		Enabled:             p.Enabled,
	}
}

func (p *hostProfile) apps() []types.ManagedApp {
	out := make([]types.ManagedApp, len(p.Apps))
	copy(out, p.Apps)
	for i := range out {
		out[i].OrderIndex = i
	}
	return out
}

func (p *hostProfile) indexOf(appID string) int {
	return types.IndexOfApp(p.Apps, appID)
}

func (p *hostProfile) clone() hostProfile {
	c := *p
	c.TriggerProcessNames = append([]string{}, p.TriggerProcessNames...)
	c.Apps = append([]types.ManagedApp{}, p.Apps...)
	return c
}

// hostConfig is the persisted host configuration, also the export format.
type hostConfig struct {
	SchemaVersion   int            `json:"schema_version"`
	ActiveProfileID string         `json:"active_profile_id"`
	Profiles        []hostProfile  `json:"profiles"`
	Settings        types.Settings `json:"settings"`
}

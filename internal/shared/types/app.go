package types

import (
	"encoding/json"
	"fmt"
)

// Defaults applied when a host record omits the field.
const (
	DefaultWaitTimeoutSeconds = 30.0
)

// ManagedApp is an auxiliary program the host launches and terminates in
// coordination with the simulation.
type ManagedApp struct {
	AppID                 string  `json:"app_id"`
	Name                  string  `json:"name"`
	ExecutablePath        string  `json:"executable_path"`
	Arguments             string  `json:"arguments"`
	WorkingDirectory      string  `json:"working_directory"`
	StartDelaySeconds     float64 `json:"start_delay_seconds"`
	StartMinimized        bool    `json:"start_minimized"`
	StartIfAlreadyRunning bool    `json:"start_if_already_running"`
	KillOnIRacingExit     bool    `json:"kill_on_iracing_exit"`
	KillProcessTree       bool    `json:"kill_process_tree"`
	WaitForProcess        string  `json:"wait_for_process"`
	WaitTimeoutSeconds    float64 `json:"wait_timeout_seconds"`
	Enabled               bool    `json:"enabled"`
	OrderIndex            int     `json:"order_index"`
}

// NewManagedApp returns an app with the host's defaults filled in.
func NewManagedApp(name, executablePath string) ManagedApp {
	return ManagedApp{
		Name:               name,
		ExecutablePath:     executablePath,
		KillOnIRacingExit:  true,
		KillProcessTree:    true,
		WaitTimeoutSeconds: DefaultWaitTimeoutSeconds,
		Enabled:            true,
	}
}

// UnmarshalJSON decodes an app, keeping the defaults for absent fields.
func (a *ManagedApp) UnmarshalJSON(data []byte) error {
	type plain ManagedApp
	decoded := plain(NewManagedApp("", ""))
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	if decoded.WaitTimeoutSeconds <= 0 {
		decoded.WaitTimeoutSeconds = DefaultWaitTimeoutSeconds
	}
	if decoded.StartDelaySeconds < 0 {
		decoded.StartDelaySeconds = 0
	}
	*a = ManagedApp(decoded)
	return nil
}

// Validate checks the fields the host requires before add or edit.
func (a ManagedApp) Validate() error {
	if a.Name == "" || a.ExecutablePath == "" {
		return fmt.Errorf("name and executable are required")
	}
	return nil
}

// AppIDs returns the ids of apps in list order.
func AppIDs(apps []ManagedApp) []string {
	ids := make([]string, len(apps))
	for i, a := range apps {
		ids[i] = a.AppID
	}
	return ids
}

// IndexOfApp returns the list position of id, or -1.
func IndexOfApp(apps []ManagedApp, id string) int {
	for i, a := range apps {
		if a.AppID == id {
			return i
		}
	}
	return -1
}

// ValidateOrder reports whether the order indexes of apps form a dense,
// zero-based permutation of [0, len(apps)).
func ValidateOrder(apps []ManagedApp) error {
	seen := make([]bool, len(apps))
	for _, a := range apps {
		if a.OrderIndex < 0 || a.OrderIndex >= len(apps) {
			return fmt.Errorf("order index %d out of range for %q", a.OrderIndex, a.AppID)
		}
		if seen[a.OrderIndex] {
			return fmt.Errorf("duplicate order index %d", a.OrderIndex)
		}
		seen[a.OrderIndex] = true
	}
	return nil
}

// CommonApp is a well-known tool the host found installed locally.
type CommonApp struct {
	Name           string `json:"name"`
	ExecutablePath string `json:"executable_path"`
}

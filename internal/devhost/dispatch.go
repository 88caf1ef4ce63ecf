package devhost

import (
	"encoding/json"
	"fmt"

	"github.com/GriffinCanCode/ignition/companion/internal/bridge"
	"github.com/GriffinCanCode/ignition/companion/internal/shared/types"
	"github.com/bytedance/sonic"
)

// handler executes one remote operation. The returned value is encoded as
// the reply result.
type handler func(args []json.RawMessage) (any, error)

// Dispatcher routes bridge calls to the store.
type Dispatcher struct {
	store    *Store
	scanner  *Scanner
	icons    *IconCache
	onQuit   func()
	handlers map[string]handler
}

// NewDispatcher builds the operation table. onQuit runs when the UI asks the
// host to exit; it may be nil.
func NewDispatcher(store *Store, scanner *Scanner, icons *IconCache, onQuit func()) *Dispatcher {
	if scanner == nil {
		scanner = NewScanner(nil, nil)
	}
	if icons == nil {
		icons = NewIconCache()
	}
	d := &Dispatcher{store: store, scanner: scanner, icons: icons, onQuit: onQuit}
	d.handlers = d.table()
	return d
}

// Ops returns the number of operations the dispatcher serves.
func (d *Dispatcher) Ops() int {
	return len(d.handlers)
}

// Dispatch executes op with its raw JSON arguments.
func (d *Dispatcher) Dispatch(op string, args []json.RawMessage) (any, error) {
	h, ok := d.handlers[op]
	if !ok {
		return nil, fmt.Errorf("unknown operation %q", op)
	}
	return h(args)
}

func (d *Dispatcher) table() map[string]handler {
	s := d.store
	return map[string]handler{
		// Apps
		bridge.OpGetApps: func([]json.RawMessage) (any, error) {
			return s.Apps(), nil
		},
		bridge.OpAddApp: func(args []json.RawMessage) (any, error) {
			var app types.ManagedApp
			if err := jsonArg(args, 0, &app); err != nil {
				return nil, err
			}
			return s.AddApp(app), nil
		},
		bridge.OpEditApp: func(args []json.RawMessage) (any, error) {
			var app types.ManagedApp
			if err := jsonArg(args, 0, &app); err != nil {
				return nil, err
			}
			return s.EditApp(app), nil
		},
		bridge.OpRemoveApp:        withString(s.RemoveApp),
		bridge.OpToggleAppEnabled: withString(s.ToggleAppEnabled),
		bridge.OpTestLaunchApp:    withString(s.TestLaunchApp),
		bridge.OpStartApp:         withString(s.StartApp),
		bridge.OpStopApp:          withString(s.StopApp),
		bridge.OpUndoRemoveApp: func(args []json.RawMessage) (any, error) {
			var app types.ManagedApp
			if err := jsonArg(args, 0, &app); err != nil {
				return nil, err
			}
			position, err := intArg(args, 1)
			if err != nil {
				return nil, err
			}
			return s.UndoRemoveApp(app, position), nil
		},
		bridge.OpReorderApps: func(args []json.RawMessage) (any, error) {
			var order, base []string
			if err := jsonArg(args, 0, &order); err != nil {
				return nil, err
			}
			if len(args) > 1 {
				if err := jsonArg(args, 1, &base); err != nil {
					return nil, err
				}
			}
			return s.ReorderApps(order, base), nil
		},
		bridge.OpGetAppIcon: func(args []json.RawMessage) (any, error) {
			path, err := stringArg(args, 0)
			if err != nil {
				return nil, err
			}
			return d.icons.Icon(path), nil
		},
		bridge.OpGetCommonApps: func([]json.RawMessage) (any, error) {
			return d.scanner.CommonApps(), nil
		},

		// Profiles
		bridge.OpGetProfiles: func([]json.RawMessage) (any, error) {
			return s.Profiles(), nil
		},
		bridge.OpGetProfileApps: func(args []json.RawMessage) (any, error) {
			profileID, err := stringArg(args, 0)
			if err != nil {
				return nil, err
			}
			return s.ProfileApps(profileID), nil
		},
		bridge.OpAddProfile:            withString(s.AddProfile),
		bridge.OpRemoveProfile:         withString(s.RemoveProfile),
		bridge.OpSetActiveProfile:      withString(s.SetActiveProfile),
		bridge.OpDuplicateProfile:      withString(s.DuplicateProfile),
		bridge.OpToggleProfileEnabled:  withString(s.ToggleProfileEnabled),
		bridge.OpRenameProfile:         withStrings(s.RenameProfile),
		bridge.OpSetProfileColor:       withStrings(s.SetProfileColor),
		bridge.OpSetProfileTriggers:    withStrings(s.SetProfileTriggers),
		bridge.OpSetProfileTriggerMode: withStrings(s.SetProfileTriggerMode),

		// Settings
		bridge.OpGetSettings: func([]json.RawMessage) (any, error) {
			return s.Settings(), nil
		},
		bridge.OpSaveSettings: func(args []json.RawMessage) (any, error) {
			var settings types.Settings
			if err := jsonArg(args, 0, &settings); err != nil {
				return nil, err
			}
			return s.SaveSettings(settings), nil
		},
		bridge.OpGetAutostartEnabled: func([]json.RawMessage) (any, error) {
			return s.Autostart(), nil
		},
		bridge.OpSetAutostart: withBool(s.SetAutostart),
		bridge.OpGetConfigPath: func([]json.RawMessage) (any, error) {
			return s.ConfigPath(), nil
		},
		bridge.OpExportConfig: withString(s.ExportConfig),
		bridge.OpImportConfig: withString(s.ImportConfig),

		// Monitoring
		bridge.OpGetSessionHistory: func([]json.RawMessage) (any, error) {
			return s.History(), nil
		},
		bridge.OpClearSessionHistory: func([]json.RawMessage) (any, error) {
			return s.ClearHistory(), nil
		},
		bridge.OpClearLog: func([]json.RawMessage) (any, error) {
			return s.ClearLog(), nil
		},
		bridge.OpLaunchIRacing: func([]json.RawMessage) (any, error) {
			return s.LaunchIRacing(), nil
		},
		bridge.OpSetMonitoringPaused: withBool(s.SetPaused),
		bridge.OpGetMonitoringPaused: func([]json.RawMessage) (any, error) {
			return s.Paused(), nil
		},
		bridge.OpGetStatus: func([]json.RawMessage) (any, error) {
			return s.Status(), nil
		},

		// Native dialogs and shell
		bridge.OpBrowseExe:        d.dialog(bridge.OpBrowseExe),
		bridge.OpBrowseDirectory:  d.dialog(bridge.OpBrowseDirectory),
		bridge.OpBrowseIRacingExe: d.dialog(bridge.OpBrowseIRacingExe),
		bridge.OpOpenFileDialog:   d.dialog(bridge.OpOpenFileDialog),
		bridge.OpSaveFileDialog:   d.dialog(bridge.OpSaveFileDialog),
		bridge.OpOpenConfigFolder: func([]json.RawMessage) (any, error) {
			return nil, nil
		},
		bridge.OpOpenLogFolder: func([]json.RawMessage) (any, error) {
			return nil, nil
		},
		bridge.OpQuitApp: func([]json.RawMessage) (any, error) {
			if d.onQuit != nil {
				d.onQuit()
			}
			return nil, nil
		},
	}
}

// dialog answers a native dialog with the scripted path, or null.
func (d *Dispatcher) dialog(op string) handler {
	return func([]json.RawMessage) (any, error) {
		return d.store.DialogPath(op), nil
	}
}

func withString(fn func(string) types.Result) handler {
	return func(args []json.RawMessage) (any, error) {
		v, err := stringArg(args, 0)
		if err != nil {
			return nil, err
		}
		return fn(v), nil
	}
}

func withStrings(fn func(string, string) types.Result) handler {
	return func(args []json.RawMessage) (any, error) {
		a, err := stringArg(args, 0)
		if err != nil {
			return nil, err
		}
		b, err := stringArg(args, 1)
		if err != nil {
			return nil, err
		}
		return fn(a, b), nil
	}
}

func withBool(fn func(bool) types.Result) handler {
	return func(args []json.RawMessage) (any, error) {
		v, err := boolArg(args, 0)
		if err != nil {
			return nil, err
		}
		return fn(v), nil
	}
}

func arg(args []json.RawMessage, i int) (json.RawMessage, error) {
	if i >= len(args) {
		return nil, fmt.Errorf("missing argument %d", i)
	}
	return args[i], nil
}

func stringArg(args []json.RawMessage, i int) (string, error) {
	raw, err := arg(args, i)
	if err != nil {
		return "", err
	}
	var v string
	if err := sonic.Unmarshal(raw, &v); err != nil {
		return "", fmt.Errorf("argument %d: want string: %w", i, err)
	}
	return v, nil
}

func intArg(args []json.RawMessage, i int) (int, error) {
	raw, err := arg(args, i)
	if err != nil {
		return 0, err
	}
	var v int
	if err := sonic.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("argument %d: want integer: %w", i, err)
	}
	return v, nil
}

func boolArg(args []json.RawMessage, i int) (bool, error) {
	raw, err := arg(args, i)
	if err != nil {
		return false, err
	}
	var v bool
	if err := sonic.Unmarshal(raw, &v); err != nil {
		return false, fmt.Errorf("argument %d: want boolean: %w", i, err)
	}
	return v, nil
}

// jsonArg decodes an argument carrying a JSON document. The document may be
// passed as an encoded string, which is how the UI sends records, or inline.
func jsonArg(args []json.RawMessage, i int, out any) error {
	raw, err := arg(args, i)
	if err != nil {
		return err
	}
	if len(raw) > 0 && raw[0] == '"' {
		var doc string
		if err := sonic.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("argument %d: %w", i, err)
		}
		raw = json.RawMessage(doc)
	}
	if err := sonic.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("argument %d: %w", i, err)
	}
	return nil
}

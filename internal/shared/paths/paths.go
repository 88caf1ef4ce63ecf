// Package paths locates the companion's per-user files.
//
// Everything lives in one directory under the platform's user config dir,
// e.g. %AppData%\iGnition on Windows or ~/.config/iGnition on Linux. When
// the platform reports no such dir, names resolve relative to the working
// directory.
package paths

import (
	"os"
	"path/filepath"
)

// AppDir is the directory name under the user config dir.
const AppDir = "iGnition"

// File names inside UserDir.
const (
	PrefsFile  = "ui.toml"
	UILogFile  = "ui.log"
	ConfigFile = "config.json"
)

// UserDir returns the per-user iGnition directory, or "".
func UserDir() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ""
	}
	return filepath.Join(dir, AppDir)
}

// File returns name inside UserDir.
func File(name string) string {
	dir := UserDir()
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// Prefs is the UI preferences file.
func Prefs() string { return File(PrefsFile) }

// UILog is the terminal UI log file.
func UILog() string { return File(UILogFile) }

// HostConfig is where the host keeps its configuration.
func HostConfig() string { return File(ConfigFile) }

package paths

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilesLiveInUserDir(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" || runtime.GOOS == "plan9" {
		t.Skip("XDG_CONFIG_HOME only applies to unix")
	}
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	dir := filepath.Join(base, AppDir)
	assert.Equal(t, dir, UserDir())
	assert.Equal(t, filepath.Join(dir, "ui.toml"), Prefs())
	assert.Equal(t, filepath.Join(dir, "ui.log"), UILog())
	assert.Equal(t, filepath.Join(dir, "config.json"), HostConfig())
}

func TestFileWithoutUserDir(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" || runtime.GOOS == "plan9" {
		t.Skip("unix config dir lookup only")
	}
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "")

	assert.Empty(t, UserDir())
	assert.Equal(t, "ui.log", UILog())
}

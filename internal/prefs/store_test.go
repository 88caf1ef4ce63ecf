package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GriffinCanCode/ignition/companion/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMissingFileUsesDefaults(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "prefs.toml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s.Get())
}

func TestSetPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.SetDensity(view.DensityCompact))
	require.NoError(t, s.SetTheme("light"))

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, Prefs{Density: view.DensityCompact, Theme: "light"}, reopened.Get())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		file string
		want Prefs
	}{
		{"unknown density", "density = \"huge\"\ntheme = \"light\"\n", Prefs{Density: view.DensityCard, Theme: "light"}},
		{"unknown theme", "density = \"compact\"\ntheme = \"neon\"\n", Prefs{Density: view.DensityCompact, Theme: DefaultTheme}},
		{"empty", "", Defaults()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prefs.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.file), 0o644))
			s, err := Open(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Get())
		})
	}
}

func TestCorruptFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	require.NoError(t, os.WriteFile(path, []byte("density = ["), 0o644))

	s, err := Open(path)
	require.Error(t, err)
	require.NotNil(t, s)
	assert.Equal(t, Defaults(), s.Get())
}

func TestRejectsUnknownSettings(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)

	assert.Error(t, s.SetDensity("tiny"))
	assert.Error(t, s.SetTheme("neon"))
	assert.Equal(t, Defaults(), s.Get())

	require.NoError(t, s.SetTheme("light"))
	assert.Equal(t, "light", s.Get().Theme)
}

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "ws://127.0.0.1:8765/bridge", cfg.Bridge.Endpoint)
	assert.Equal(t, 80*time.Millisecond, cfg.Bridge.PollInterval)

	assert.Equal(t, 5*time.Second, cfg.UI.UndoWindow)
	assert.Equal(t, 200, cfg.UI.LogDisplayLimit)
	assert.Equal(t, DialogQueue, cfg.UI.DialogPolicy)

	assert.Equal(t, "127.0.0.1:8765", cfg.HostAddress())
	assert.Equal(t, 800*time.Millisecond, cfg.Host.PushInterval)
	assert.Equal(t, 50, cfg.Host.HistoryLimit)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMatchesDefault(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Bridge.HealthURL, cfg.Bridge.HealthURL)
	assert.Equal(t, def.UI.UndoWindow, cfg.UI.UndoWindow)
	assert.Equal(t, def.Host.Port, cfg.Host.Port)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"IGNITION_BRIDGE_URL":        "ws://host:9000/bridge",
		"IGNITION_POLL_INTERVAL":     "250ms",
		"IGNITION_UNDO_WINDOW":       "10s",
		"IGNITION_LOG_DISPLAY_LIMIT": "50",
		"IGNITION_DIALOG_POLICY":     "reject",
		"IGNITION_HOST_PORT":         "9100",
		"IGNITION_SEARCH_ROOTS":      "C:/Program Files,D:/Tools",
		"LOG_LEVEL":                  "debug",
		"RATE_LIMIT_ENABLED":         "false",
	}

	for key, value := range envVars {
		require.NoError(t, os.Setenv(key, value))
		defer os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ws://host:9000/bridge", cfg.Bridge.Endpoint)
	assert.Equal(t, 250*time.Millisecond, cfg.Bridge.PollInterval)
	assert.Equal(t, 10*time.Second, cfg.UI.UndoWindow)
	assert.Equal(t, 50, cfg.UI.LogDisplayLimit)
	assert.Equal(t, DialogReject, cfg.UI.DialogPolicy)
	assert.Equal(t, "9100", cfg.Host.Port)
	assert.Equal(t, []string{"C:/Program Files", "D:/Tools"}, cfg.Host.SearchRoots)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"IGNITION_DIALOG_POLICY", "stack"},
		{"IGNITION_UNDO_WINDOW", "0s"},
		{"IGNITION_POLL_INTERVAL", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)

			cfg := LoadOrDefault()
			assert.Equal(t, Default().UI.DialogPolicy, cfg.UI.DialogPolicy)
		})
	}
}

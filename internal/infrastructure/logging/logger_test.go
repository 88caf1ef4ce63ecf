package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ui.log")

	logger, err := New(FileConfig(path, "debug", false))
	require.NoError(t, err)

	logger.Info("bridge attached", zap.Int("queued", 3))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"bridge attached"`)
	assert.Contains(t, string(data), `"queued":3`)
}

func TestErrorOutput(t *testing.T) {
	assert.Equal(t, []string{"stderr"}, errorOutput([]string{"stdout"}))
	assert.Equal(t, []string{"/tmp/a.log"}, errorOutput([]string{"/tmp/a.log"}))
}

func TestNop(t *testing.T) {
	assert.NotNil(t, NewNop().Logger)
	assert.NotNil(t, NewDefault().Logger)
}

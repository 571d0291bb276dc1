package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLoggingDisabled(t *testing.T) {
	cleanup, err := SetupLogging("")
	require.NoError(t, err)
	defer cleanup()

	assert.False(t, IsDebugMode())
	Infof("dropped %d", 1)
}

func TestSetupLoggingToFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := SetupLogging(p)
	require.NoError(t, err)

	assert.True(t, IsDebugMode())
	Debugf("reloaded %d rows", 42)
	Warnf("flag column %q missing", "is_observed")
	cleanup()
	assert.False(t, IsDebugMode())

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), "reloaded 42 rows")
	assert.Contains(t, string(data), "level=WARN")
}

func TestSetOutputLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, slog.LevelInfo)
	t.Cleanup(func() { SetOutput(&bytes.Buffer{}, slog.LevelError) })

	Debug("hidden")
	Errorf("shown %s", "error")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown error")
	assert.False(t, IsDebugMode())
}

package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/leasebook/config"
)

func TestNewWritesToDataDirForTUI(t *testing.T) {
	dir := t.TempDir()

	logger, flush, err := New(config.LogConfig{Level: "debug"}, dir, true)
	require.NoError(t, err)
	logger.Info("portfolio loaded")
	flush()

	data, err := os.ReadFile(filepath.Join(dir, "leasebook.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "portfolio loaded")
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")

	logger, flush, err := New(config.LogConfig{Level: "warn", File: path}, "", false)
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown")
	flush()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, _, err := New(config.LogConfig{Level: "loud"}, t.TempDir(), false)
	assert.Error(t, err)
}

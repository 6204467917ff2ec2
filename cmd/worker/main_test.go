package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ReturnsErrorWithoutConsumer(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("EVENTS_DRIVER", "none")

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create consumer")
}

func TestRun_ReturnsConfigError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("events: [not a map"), 0o600))
	t.Setenv("CONFIG_PATH", path)

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFileMissingIsNotError(t *testing.T) {
	var cfg Config
	err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"), &cfg)
	require.NoError(t, err)
	assert.Empty(t, cfg.BeastAddrs)
}

func TestLoadConfigFileOverridesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlBody := "beast_addrs:\n  - 127.0.0.1:30005\n  - 10.0.0.5:30005\ndedup_window: 250ms\njsonl: true\nlog_dir: /var/log/jet1090go\n"
	require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0o644))

	var cfg Config
	require.NoError(t, LoadConfigFile(path, &cfg))

	assert.Equal(t, []string{"127.0.0.1:30005", "10.0.0.5:30005"}, cfg.BeastAddrs)
	assert.Equal(t, 250*time.Millisecond, cfg.DedupWindow)
	assert.True(t, cfg.JSONLEnabled)
	assert.Equal(t, "/var/log/jet1090go", cfg.LogDir)
}

func TestLoadConfigFileThenWithDefaultsFillsGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("websocket_addr: :8080\n"), 0o644))

	var cfg Config
	require.NoError(t, LoadConfigFile(path, &cfg))
	cfg = cfg.WithDefaults()

	assert.Equal(t, ":8080", cfg.WebsocketAddr)
	assert.Equal(t, "/ws", cfg.WebsocketPath)
	assert.Equal(t, DefaultDedupWindow, cfg.DedupWindow)
}

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "http://localhost", cfg.GameServerURL)
	assert.Equal(t, time.Second, cfg.PollInterval)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Empty(t, cfg.NATS.URL)
	assert.Equal(t, "catan.events", cfg.NATS.SubjectPrefix)
	assert.Equal(t, "smart-catan.log", cfg.TUI.LogFile)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
log-level: debug
game-server-url: http://192.168.4.1
poll-interval: 500ms
request-timeout: 2s
http-port: 9000
nats:
  url: nats://localhost:4222
  subject-prefix: table.one
tui:
  log-file: /tmp/catan.log
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "http://192.168.4.1", cfg.GameServerURL)
	assert.Equal(t, 500*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
	assert.Equal(t, "table.one", cfg.NATS.SubjectPrefix)
	assert.Equal(t, "/tmp/catan.log", cfg.TUI.LogFile)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, level)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "game-server-url: http://192.168.4.1\nhttp-port: 9000\n")
	t.Setenv("GAME_SERVER_URL", "http://catan.local:8000")
	t.Setenv("NATS_URL", "nats://bus:4222")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://catan.local:8000", cfg.GameServerURL)
	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, "nats://bus:4222", cfg.NATS.URL)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"relative url":      "game-server-url: catan\n",
		"negative interval": "poll-interval: -1s\n",
		"bad log level":     "log-level: chatty\n",
		"port too large":    "http-port: 70000\n",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestMustLoadPanics(t *testing.T) {
	path := writeConfig(t, "log-level: chatty\n")
	assert.Panics(t, func() { MustLoad(path) })
}

func TestDumpRoundTrips(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.NATS.URL = "nats://localhost:4222"

	var buf bytes.Buffer
	require.NoError(t, cfg.Dump(&buf))
	assert.Contains(t, buf.String(), "poll-interval: 1s")
	assert.Contains(t, buf.String(), "game-server-url: http://localhost")

	var decoded Config
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, *cfg, decoded)
}

func TestUsageListsVariables(t *testing.T) {
	var buf bytes.Buffer
	Usage(&buf)
	assert.Contains(t, buf.String(), "GAME_SERVER_URL")
	assert.Contains(t, buf.String(), "NATS_URL")
}

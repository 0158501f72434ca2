package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "station.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
mode: server
switch:
  radius: 6
  cooldown: 350ms
station:
  layout: |
    #####
    #@.S#
    #####
  apc_voltage: 120
net:
  listen: ":9000"
log:
  level: debug
keys:
  quit: x
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ModeServer, cfg.Mode)
	assert.Equal(t, 6.0, cfg.Switch.Radius)
	assert.Equal(t, 350*time.Millisecond, cfg.Switch.Cooldown)
	assert.Equal(t, 3*time.Second, cfg.Switch.DeferredSync, "unset keys keep defaults")
	assert.Equal(t, 50.0, cfg.Switch.ShutoffVoltage)
	assert.Contains(t, cfg.Station.Layout, "#@.S#")
	assert.Equal(t, 120.0, cfg.Station.APCVoltage)
	assert.Equal(t, ":9000", cfg.Net.Listen)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, map[string]string{"quit": "x"}, cfg.Keys)
	assert.Equal(t, "lightstation.log", cfg.Log.File, "the terminal renderer logs to a file by default")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "switch: [radius"))
	assert.Error(t, err)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	_, err := Load(writeConfig(t, "mode: spectator\n"))
	assert.ErrorContains(t, err, "spectator")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero radius", func(c *Config) { c.Switch.Radius = 0 }},
		{"negative voltage", func(c *Config) { c.Switch.ShutoffVoltage = -1 }},
		{"negative cooldown", func(c *Config) { c.Switch.Cooldown = -time.Second }},
		{"zero tick", func(c *Config) { c.Station.Tick = 0 }},
		{"tiny generated station", func(c *Config) { c.Station.Rows = 3 }},
		{"negative apc voltage", func(c *Config) { c.Station.APCVoltage = -5 }},
		{"server without listen", func(c *Config) { c.Mode = ModeServer; c.Net.Listen = "" }},
		{"client without url", func(c *Config) { c.Mode = ModeClient; c.Net.ServerURL = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

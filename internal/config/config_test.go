package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CONFIG_FILE",
		"CLIMATE_DATA_PATH",
		"CLIMATE_ALLOWED_ORIGINS",
		"CLIMATE_RELOAD_SCHEDULE",
		"API_PORT",
		"API_ENV",
		"LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultsWithoutFile(t *testing.T) {
	clearEnv(t)

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.Equal(t, ":8080", c.Addr())
	assert.False(t, c.Production())
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
server:
  port: 9000
  env: production
  allowed_origins: [https://example.org]
data:
  path: climate.db
  cache_size: 16
  reload_schedule: "0 3 * * *"
log:
  level: debug
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, c.Server.Port)
	assert.True(t, c.Production())
	assert.Equal(t, []string{"https://example.org"}, c.Server.AllowedOrigins)
	assert.Equal(t, "climate.db", c.Data.Path)
	assert.Equal(t, 16, c.Data.CacheSize)
	assert.Equal(t, "debug", c.Log.Level)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "server:\n  port: 9000\n")
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("API_PORT", "7000")
	t.Setenv("CLIMATE_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("CLIMATE_DATA_PATH", "/srv/data.csv")
	t.Setenv("LOG_LEVEL", "warn")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7000, c.Server.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.Server.AllowedOrigins)
	assert.Equal(t, "/srv/data.csv", c.Data.Path)
	assert.Equal(t, "warn", c.Log.Level)
}

func TestExplicitMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.Server.Port = 0 }},
		{"env", func(c *Config) { c.Server.Env = "staging" }},
		{"data path", func(c *Config) { c.Data.Path = " " }},
		{"cache size", func(c *Config) { c.Data.CacheSize = 0 }},
		{"schedule", func(c *Config) { c.Data.ReloadSchedule = "every day" }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestInvalidPortEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_PORT", "eighty")
	_, err := LoadUnchecked(writeFile(t, ""))
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	lvl, err := ParseLogLevel("WARNING")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsargent/toodledo/internal/domain"
)

func withConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TOODLEDO_HOME", dir)
	return dir
}

func TestLoadWithoutAnyConfigYieldsDefaults(t *testing.T) {
	withConfigHome(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.Connection.BaseURL)
	assert.Nil(t, cfg.Proxy)

	err = cfg.Validate()
	require.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	dir := withConfigHome(t)

	cfg := &Config{
		Connection: Connection{
			UserID:   "u1",
			Password: "hunter2",
			AppID:    "toodledo-cli",
		},
		Proxy: &Proxy{Host: "proxy.local", Port: 3128},
	}
	require.NoError(t, cfg.Save())

	info, err := os.Stat(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "credentials demand owner-only access")

	loaded, err := Load("")
	require.NoError(t, err)
	require.NoError(t, loaded.Validate())
	assert.Equal(t, "u1", loaded.Connection.UserID)
	assert.Equal(t, "hunter2", loaded.Connection.Password)
	assert.Equal(t, "toodledo-cli", loaded.Connection.AppID)
	assert.Equal(t, DefaultBaseURL, loaded.Connection.BaseURL)
	require.NotNil(t, loaded.Proxy)
	assert.Equal(t, "proxy.local", loaded.Proxy.Host)
	assert.Equal(t, 3128, loaded.Proxy.Port)
}

func TestLoadImportsLegacyYAML(t *testing.T) {
	dir := withConfigHome(t)

	legacy := `
connection:
  url: http://example.test/api.php
  user_id: legacy-user
  password: legacy-pass
proxy:
  host: oldproxy
  port: 8080
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user-config.yml"), []byte(legacy), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://example.test/api.php", cfg.Connection.BaseURL)
	assert.Equal(t, "legacy-user", cfg.Connection.UserID)
	assert.Equal(t, "legacy-pass", cfg.Connection.Password)
	require.NotNil(t, cfg.Proxy)
	assert.Equal(t, "oldproxy", cfg.Proxy.Host)

	// A native save migrates it; the TOML file wins on the next load.
	cfg.Connection.UserID = "migrated"
	require.NoError(t, cfg.Save())

	reloaded, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "migrated", reloaded.Connection.UserID)
}

func TestLoadExplicitPath(t *testing.T) {
	withConfigHome(t)

	path := filepath.Join(t.TempDir(), "elsewhere.toml")
	body := `
[connection]
user_id = "u2"
password = "p2"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "u2", cfg.Connection.UserID)
	assert.Equal(t, DefaultBaseURL, cfg.Connection.BaseURL)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv(EnvConfig, path)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvConfig, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv(EnvAdapter, "")
	t.Setenv(EnvPath, "")

	cfg, err := Load(Flags{})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, time.Minute, cfg.RefreshInterval)
	assert.Equal(t, "tempnotes-data", cfg.Key)
}

func TestLoad_FileValues(t *testing.T) {
	writeConfig(t, `
adapter: sqlite
path: /srv/notes
key: team-notes
refresh_interval: 30s
default_preset: 1 week
`)
	t.Setenv(EnvAdapter, "")
	t.Setenv(EnvPath, "")

	cfg, err := Load(Flags{})
	require.NoError(t, err)
	assert.Equal(t, Config{
		Adapter:         "sqlite",
		Path:            "/srv/notes",
		Key:             "team-notes",
		RefreshInterval: 30 * time.Second,
		DefaultPreset:   "1 week",
	}, cfg)
}

func TestLoad_Priority(t *testing.T) {
	writeConfig(t, "adapter: sqlite\npath: /from/file\n")
	t.Setenv(EnvAdapter, "memory")
	t.Setenv(EnvPath, "/from/env")

	cfg, err := Load(Flags{})
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Adapter)
	assert.Equal(t, "/from/env", cfg.Path)

	cfg, err = Load(Flags{Adapter: "fs", Path: "/from/flag"})
	require.NoError(t, err)
	assert.Equal(t, "fs", cfg.Adapter)
	assert.Equal(t, "/from/flag", cfg.Path)
}

func TestLoad_MalformedFile(t *testing.T) {
	writeConfig(t, "adapter: [unclosed\n")

	_, err := Load(Flags{})
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "notes"), expandPath("~/notes"))
	assert.Equal(t, "/abs", expandPath("/abs"))
}

// Package config loads CLI settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/tempnotes/pkg/core"
	"github.com/aretw0/tempnotes/pkg/refresh"
)

// Environment variables read by Load.
const (
	EnvConfig  = "TEMPNOTES_CONFIG"
	EnvAdapter = "TEMPNOTES_ADAPTER"
	EnvPath    = "TEMPNOTES_PATH"
)

// Config holds the resolved settings.
type Config struct {
	Adapter         string        `yaml:"adapter"`
	Path            string        `yaml:"path"`
	Key             string        `yaml:"key"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	DefaultPreset   string        `yaml:"default_preset"`
}

// Flags holds values given on the command line. Empty fields are unset.
type Flags struct {
	Adapter string
	Path    string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Adapter:         "fs",
		Path:            defaultDataDir(),
		Key:             core.DefaultStorageKey,
		RefreshInterval: refresh.DefaultInterval,
		DefaultPreset:   core.DefaultPreset,
	}
}

// Load resolves settings with priority: flags > environment > config file > defaults.
// A missing config file is not an error; a malformed one is.
func Load(flags Flags) (Config, error) {
	cfg := Default()

	path, err := FilePath()
	if err == nil {
		if err := mergeFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	if v := os.Getenv(EnvAdapter); v != "" {
		cfg.Adapter = v
	}
	if v := os.Getenv(EnvPath); v != "" {
		cfg.Path = expandPath(v)
	}

	if flags.Adapter != "" {
		cfg.Adapter = flags.Adapter
	}
	if flags.Path != "" {
		cfg.Path = expandPath(flags.Path)
	}

	return cfg, nil
}

// FilePath returns the config file location: $TEMPNOTES_CONFIG, or
// config.yaml under the user config directory.
func FilePath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return expandPath(p), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tempnotes", "config.yaml"), nil
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}

	if file.Adapter != "" {
		cfg.Adapter = file.Adapter
	}
	if file.Path != "" {
		cfg.Path = expandPath(file.Path)
	}
	if file.Key != "" {
		cfg.Key = file.Key
	}
	if file.RefreshInterval > 0 {
		cfg.RefreshInterval = file.RefreshInterval
	}
	if file.DefaultPreset != "" {
		cfg.DefaultPreset = file.DefaultPreset
	}
	return nil
}

// defaultDataDir is where notes live when nothing else is configured.
func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".tempnotes"
	}
	return filepath.Join(dir, "tempnotes", "data")
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

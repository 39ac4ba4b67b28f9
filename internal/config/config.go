// Package config loads dashboard settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// DataDir is walked recursively for well-log files.
	DataDir string `yaml:"data_dir"`
	// Pattern is matched case-sensitively against file base names.
	Pattern string `yaml:"pattern"`
	Addr    string `yaml:"addr"`
	// Debug enables verbose request logging and the data directory watcher.
	Debug bool `yaml:"debug"`
	// InitialWell is the index whose charts are shown before any selection.
	// A negative value starts with empty charts.
	InitialWell     int           `yaml:"initial_well"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Default mirrors a local development run.
func Default() Config {
	return Config{
		DataDir:         "Data",
		Pattern:         "*.LAS",
		Addr:            "127.0.0.1:8050",
		Debug:           true,
		InitialWell:     0,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("data_dir must be set")
	}
	if c.Pattern == "" {
		return errors.New("pattern must be set")
	}
	if _, err := filepath.Match(c.Pattern, ""); err != nil {
		return fmt.Errorf("pattern %q: %w", c.Pattern, err)
	}
	if c.Addr == "" {
		return errors.New("addr must be set")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("shutdown_timeout must be positive")
	}
	return nil
}

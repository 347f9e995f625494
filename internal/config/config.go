// Package config loads runtime configuration from defaults, an optional YAML
// file and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rcliao/cosmic-whispers/internal/reveal"
)

// Config aggregates runtime configuration.
type Config struct {
	DBPath string        `yaml:"db"`
	Oracle OracleConfig  `yaml:"oracle"`
	Reveal reveal.Config `yaml:"reveal"`
}

// OracleConfig controls reading generation.
type OracleConfig struct {
	Delay time.Duration `yaml:"delay"`
}

// Home returns the per-user data directory.
func Home() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cosmic-whispers")
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DBPath: filepath.Join(Home(), "history.db"),
		Oracle: OracleConfig{Delay: 3 * time.Second},
		Reveal: reveal.DefaultConfig(),
	}
}

// Load builds the configuration. path names a YAML file; when empty,
// $COSMIC_WHISPERS_CONFIG is used, then ~/.cosmic-whispers/config.yaml if it
// exists. An explicitly named file must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("COSMIC_WHISPERS_CONFIG")
	}
	if path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if p := filepath.Join(Home(), "config.yaml"); fileExists(p) {
		if err := hydrateFromFile(cfg, p); err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("COSMIC_WHISPERS_DB"); v != "" {
		cfg.DBPath = v
	}
	durations := []struct {
		env string
		dst *time.Duration
	}{
		{"COSMIC_WHISPERS_ORACLE_DELAY", &cfg.Oracle.Delay},
		{"COSMIC_WHISPERS_REVEAL_DELAY", &cfg.Reveal.InitialDelay},
		{"COSMIC_WHISPERS_REVEAL_TICK", &cfg.Reveal.TickInterval},
	}
	for _, d := range durations {
		v := os.Getenv(d.env)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", d.env, err)
		}
		*d.dst = parsed
	}
	return nil
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("db path is required")
	}
	if c.Oracle.Delay < 0 {
		return fmt.Errorf("oracle.delay must not be negative, got %s", c.Oracle.Delay)
	}
	return c.Reveal.Validate()
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/fpsmove/internal/locomotion"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("config: invalid value")

// Load loads configuration with priority: defaults < file < tuning file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	if path := TuningPath(); path != "" {
		if err := loadFromFile(&cfg.Controller, path); err != nil {
			return nil, fmt.Errorf("loading tuning from %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadTuning reads a tuning-only file. Keys missing from the file keep
// their default values.
func LoadTuning(path string) (locomotion.Tuning, error) {
	t := locomotion.DefaultTuning()
	if err := loadFromFile(&t, path); err != nil {
		return locomotion.Tuning{}, fmt.Errorf("loading tuning from %s: %w", path, err)
	}
	return t, nil
}

// Validate checks values that would make a run meaningless.
func (c *Config) Validate() error {
	switch {
	case c.Sim.TickRate <= 0:
		return fmt.Errorf("%w: sim.tick_rate %d", ErrInvalid, c.Sim.TickRate)
	case c.Sim.Duration < 0:
		return fmt.Errorf("%w: sim.duration %v", ErrInvalid, c.Sim.Duration)
	case c.Sim.Level == "":
		return fmt.Errorf("%w: sim.level is empty", ErrInvalid)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./fpsmove.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "fpsmove")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "fpsmove")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "fpsmove")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "fpsmove")
	}
}

// loadFromFile decodes a YAML file into out, merging with existing values.
func loadFromFile(out any, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}

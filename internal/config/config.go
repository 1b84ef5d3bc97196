// Package config handles simulation configuration loading and management.
package config

import "github.com/Faultbox/fpsmove/internal/locomotion"

// Config holds all settings.
type Config struct {
	Logging    LoggingConfig     `yaml:"logging"`
	Controller locomotion.Tuning `yaml:"controller"`
	Sim        SimConfig         `yaml:"sim"`
	Replay     ReplayConfig      `yaml:"replay"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	JSON    bool   `yaml:"json"`
}

// SimConfig holds headless run settings.
type SimConfig struct {
	Level    string  `yaml:"level"` // TMX file
	Spawn    string  `yaml:"spawn"`
	TickRate int     `yaml:"tick_rate"`
	Duration float32 `yaml:"duration"` // Seconds; zero means the scenario length
	Gravity  float32 `yaml:"gravity"`  // Along -Y
}

// ReplayConfig holds recording storage settings.
type ReplayConfig struct {
	AppName string `yaml:"app_name"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Controller: locomotion.DefaultTuning(),
		Sim: SimConfig{
			Level:    "levels/flat.tmx",
			TickRate: 50,
			Duration: 0,
			Gravity:  9.81,
		},
		Replay: ReplayConfig{
			AppName: "fpsmove",
		},
	}
}

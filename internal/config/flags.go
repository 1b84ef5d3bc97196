package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagLevel    = flag.String("level", "", "TMX level to simulate")
	flagSpawn    = flag.String("spawn", "", "Spawn point name")
	flagTickRate = flag.Int("tick-rate", 0, "Simulation ticks per second")
	flagDuration = flag.Float64("duration", 0, "Seconds to simulate")
	flagTuning   = flag.String("tuning", "", "Path to a controller tuning file")
	flagScenario = flag.String("scenario", "", "Path to a yaml input timeline")
	flagScript   = flag.String("script", "", "Path to a tengo input script")
	flagRecord   = flag.String("record", "", "Save the sampled input under this name")
	flagReplay   = flag.String("replay", "", "Replay the recording with this name")
	flagWatch    = flag.Bool("watch", false, "Re-run when the tuning file changes")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// TuningPath returns the tuning file given via --tuning.
func TuningPath() string {
	return *flagTuning
}

// ScenarioPath returns the timeline given via --scenario.
func ScenarioPath() string {
	return *flagScenario
}

// ScriptPath returns the input script given via --script.
func ScriptPath() string {
	return *flagScript
}

// RecordName returns the recording name given via --record.
func RecordName() string {
	return *flagRecord
}

// ReplayName returns the recording name given via --replay.
func ReplayName() string {
	return *flagReplay
}

// WatchEnabled reports whether --watch was given.
func WatchEnabled() bool {
	return *flagWatch
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLevel != "" {
		cfg.Sim.Level = *flagLevel
	}
	if *flagSpawn != "" {
		cfg.Sim.Spawn = *flagSpawn
	}
	if *flagTickRate > 0 {
		cfg.Sim.TickRate = *flagTickRate
	}
	if *flagDuration > 0 {
		cfg.Sim.Duration = float32(*flagDuration)
	}
}

// Package main runs the character controller headless against a Tiled level
// and prints a run summary as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/fpsmove/internal/config"
	"github.com/Faultbox/fpsmove/internal/input"
	"github.com/Faultbox/fpsmove/internal/level"
	"github.com/Faultbox/fpsmove/internal/locomotion"
	"github.com/Faultbox/fpsmove/internal/logger"
	"github.com/Faultbox/fpsmove/internal/replay"
	"github.com/Faultbox/fpsmove/internal/sim"
	"github.com/Faultbox/fpsmove/pkg/math"
)

const fallbackDuration = 5

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	var fileCfg logger.FileConfig
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.Logging.LogFile)
		fileCfg.JSON = cfg.Logging.JSON
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, true); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil && ctx.Err() == nil {
		logger.Error("charsim failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	lvl, err := level.Load(os.DirFS(filepath.Dir(cfg.Sim.Level)), filepath.Base(cfg.Sim.Level))
	if err != nil {
		return err
	}

	var store *replay.Store
	if config.RecordName() != "" || config.ReplayName() != "" {
		if store, err = replay.Open(cfg.Replay.AppName); err != nil {
			return err
		}
	}

	feeds, length, err := inputSource(store)
	if err != nil {
		return err
	}
	duration := cfg.Sim.Duration
	if duration == 0 {
		duration = length
	}
	if duration == 0 {
		duration = fallbackDuration
	}

	once := func(tuning locomotion.Tuning) error {
		var rec *replay.Recorder
		if name := config.RecordName(); name != "" {
			rec = replay.NewRecorder(name, cfg.Sim.TickRate)
		}
		res, err := sim.Run(ctx, sim.Options{
			Level:    lvl,
			Spawn:    cfg.Sim.Spawn,
			Tuning:   tuning,
			Feed:     feeds(),
			TickRate: cfg.Sim.TickRate,
			Duration: duration,
			Gravity:  &math.Vec3{Y: -cfg.Sim.Gravity},
			Recorder: rec,
			Logger:   logger.Named("sim"),
		})
		if err != nil {
			return err
		}
		if rec != nil {
			if err := store.Save(rec.Recording()); err != nil {
				return err
			}
			logger.Info("recording saved", zap.String("name", rec.Recording().Name), zap.Int("frames", rec.Len()))
		}
		return printSummary(res.Summary)
	}

	if err := once(cfg.Controller); err != nil {
		return err
	}
	if !config.WatchEnabled() {
		return nil
	}
	return watch(ctx, once)
}

// inputSource picks the input feed from the flags: replay, then script,
// then scenario, then idle. It returns a constructor so each run starts with
// fresh edge state, and the natural length of the input in seconds.
func inputSource(store *replay.Store) (func() input.Feed, float32, error) {
	switch {
	case config.ReplayName() != "":
		rec, err := store.Load(config.ReplayName())
		if err != nil {
			return nil, 0, err
		}
		return rec.Feed, rec.Duration(), nil
	case config.ScriptPath() != "":
		script, err := input.LoadScript(config.ScriptPath())
		if err != nil {
			return nil, 0, err
		}
		return func() input.Feed { return input.NewSampler(script) }, 0, nil
	case config.ScenarioPath() != "":
		tl, err := input.LoadTimeline(config.ScenarioPath())
		if err != nil {
			return nil, 0, err
		}
		return func() input.Feed { return input.NewSampler(tl) }, tl.Duration(), nil
	default:
		return func() input.Feed { return input.NewSampler(input.Constant{}) }, 0, nil
	}
}

func watch(ctx context.Context, once func(locomotion.Tuning) error) error {
	path := config.TuningPath()
	if path == "" {
		return errors.New("-watch needs -tuning")
	}
	w, err := config.Watch(path)
	if err != nil {
		return err
	}
	defer w.Close()

	logger.Info("watching tuning", zap.String("path", path))
	for {
		select {
		case t := <-w.Updates:
			if err := once(t); err != nil {
				logger.Warn("run failed", zap.Error(err))
			}
		case err := <-w.Errors:
			logger.Warn("tuning reload failed", zap.Error(err))
		case <-ctx.Done():
			return nil
		}
	}
}

func printSummary(s sim.Summary) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

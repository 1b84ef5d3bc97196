// Package sim runs a headless fixed-timestep simulation of one character on
// a level and reports what happened.
package sim

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/fpsmove/internal/input"
	"github.com/Faultbox/fpsmove/internal/level"
	"github.com/Faultbox/fpsmove/internal/locomotion"
	"github.com/Faultbox/fpsmove/internal/replay"
	"github.com/Faultbox/fpsmove/internal/world"
	"github.com/Faultbox/fpsmove/pkg/math"
)

const player = "player"

var (
	ErrNoLevel     = errors.New("sim: no level")
	ErrNoSpawn     = errors.New("sim: spawn point not found")
	ErrBadTickRate = errors.New("sim: tick rate must be positive")
)

// Options configures a run.
type Options struct {
	Level    *level.Level
	Spawn    string // Spawn point name; empty picks the first
	Tuning   locomotion.Tuning
	Feed     input.Feed
	TickRate int
	Duration float32    // Seconds
	Gravity  *math.Vec3 // Nil means standard gravity along -Y
	Recorder *replay.Recorder
	Logger   *zap.Logger
}

// Frame is the character state after one tick.
type Frame struct {
	Tick     int       `json:"tick"`
	Time     float32   `json:"time"`
	Position math.Vec3 `json:"position"`
	Velocity math.Vec3 `json:"velocity"`
	Grounded bool      `json:"grounded"`
	OnSlope  bool      `json:"on_slope"`
	Steep    bool      `json:"steep"`
	Jumped   bool      `json:"jumped"`
	Shot     bool      `json:"shot"`
}

// Summary aggregates a trace.
type Summary struct {
	Ticks        int     `json:"ticks"`
	Jumps        int     `json:"jumps"`
	Shots        int     `json:"shots"`
	MaxSpeed     float32 `json:"max_speed"`
	AirborneTime float32 `json:"airborne_time"`
	Distance     float32 `json:"distance"` // Horizontal displacement from spawn
}

// Result is the outcome of Run.
type Result struct {
	Trace   []Frame
	Summary Summary
}

// Run simulates opts.Duration seconds. It checks ctx between ticks.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Level == nil {
		return nil, ErrNoLevel
	}
	if opts.TickRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadTickRate, opts.TickRate)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	gravity := math.Vec3{Y: -9.81}
	if opts.Gravity != nil {
		gravity = *opts.Gravity
	}
	spawn, ok := opts.Level.SpawnPoint(opts.Spawn)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoSpawn, opts.Spawn)
	}

	feed := opts.Feed
	if feed == nil {
		feed = input.NewSampler(input.Constant{})
	}
	if opts.Recorder != nil {
		feed = opts.Recorder.Tap(feed)
	}

	w := world.New(opts.Level.Build(gravity), opts.Tuning, log)
	for _, t := range opts.Level.Targets {
		w.AddTarget(t)
	}
	if _, err := w.Spawn(world.CharacterSpec{
		Name:     player,
		Position: spawn.Position,
		Yaw:      spawn.Yaw,
		Feed:     feed,
	}); err != nil {
		return nil, err
	}

	dt := 1 / float32(opts.TickRate)
	ticks := int(opts.Duration*float32(opts.TickRate) + 0.5)
	res := &Result{Trace: make([]Frame, 0, ticks)}

	log.Info("simulation started",
		zap.String("level", opts.Level.Name),
		zap.Int("tick_rate", opts.TickRate),
		zap.Int("ticks", ticks),
	)
	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := w.Tick(dt); err != nil {
			return nil, fmt.Errorf("tick %d: %w", i, err)
		}
		s, _ := w.State(player)
		res.Trace = append(res.Trace, frameOf(i, w.Time(), s))
	}

	res.Summary = summarize(res.Trace, spawn.Position, dt)
	log.Info("simulation finished",
		zap.Int("jumps", res.Summary.Jumps),
		zap.Int("shots", res.Summary.Shots),
		zap.Float32("max_speed", res.Summary.MaxSpeed),
		zap.Float32("airborne_time", res.Summary.AirborneTime),
	)
	return res, nil
}

func frameOf(tick int, t float32, s world.State) Frame {
	return Frame{
		Tick:     tick,
		Time:     t,
		Position: s.Position,
		Velocity: s.Velocity,
		Grounded: s.Step.Terrain.Grounded,
		OnSlope:  s.Step.Terrain.OnSlope,
		Steep:    s.Step.Terrain.SteepSlope,
		Jumped:   s.Step.Jumped,
		Shot:     s.Step.Shot != nil,
	}
}

func summarize(trace []Frame, start math.Vec3, dt float32) Summary {
	sum := Summary{Ticks: len(trace)}
	for _, f := range trace {
		if f.Jumped {
			sum.Jumps++
		}
		if f.Shot {
			sum.Shots++
		}
		if !f.Grounded && !f.OnSlope {
			sum.AirborneTime += dt
		}
		sum.MaxSpeed = max(sum.MaxSpeed, f.Velocity.Length())
	}
	if n := len(trace); n > 0 {
		sum.Distance = trace[n-1].Position.Sub(start).Horizontal().Length()
	}
	return sum
}

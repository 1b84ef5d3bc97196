// Package world runs any number of controlled characters against one planar
// physics space. Characters are donburi entities; every tick samples each
// character's input, ticks its controller in spawn order and then steps the
// physics space once.
package world

import (
	"errors"
	"fmt"

	"github.com/yohamta/donburi"
	"go.uber.org/zap"

	"github.com/Faultbox/fpsmove/internal/input"
	"github.com/Faultbox/fpsmove/internal/locomotion"
	"github.com/Faultbox/fpsmove/internal/physics/picking"
	"github.com/Faultbox/fpsmove/internal/physics/planar"
	"github.com/Faultbox/fpsmove/pkg/math"
)

var (
	ErrDuplicateName = errors.New("world: character name already in use")
	ErrUnknown       = errors.New("world: unknown character")
)

// Default character body dimensions, in world units.
const (
	DefaultWidth  = 0.5
	DefaultHeight = 1.8
	DefaultMass   = 80
)

// CharacterSpec describes a character to spawn.
type CharacterSpec struct {
	Name     string
	Position math.Vec3
	Yaw      float32
	Pitch    float32
	Feed     input.Feed
	Width    float32 // Zero means DefaultWidth
	Height   float32 // Zero means DefaultHeight
	Mass     float32 // Zero means DefaultMass
}

// State is a read-only view of one character after a tick.
type State struct {
	Name     string
	Position math.Vec3
	Velocity math.Vec3
	Look     locomotion.Look
	Step     locomotion.Step
}

// World owns the entity store, the physics space and the shooting targets.
type World struct {
	ecs    donburi.World
	space  *planar.Space
	scene  *picking.Scene
	tuning locomotion.Tuning
	log    *zap.Logger

	order []donburi.Entity
	names map[string]donburi.Entity
	tick  int
	time  float32
}

// New creates a world over space. Every character shares tuning.
func New(space *planar.Space, tuning locomotion.Tuning, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		ecs:    donburi.NewWorld(),
		space:  space,
		scene:  picking.NewScene(space),
		tuning: tuning,
		log:    log,
		names:  make(map[string]donburi.Entity),
	}
}

// Space returns the physics space.
func (w *World) Space() *planar.Space { return w.space }

// AddTarget registers a box that weapons can hit.
func (w *World) AddTarget(t picking.Target) *picking.Target {
	return w.scene.Add(t)
}

// TickCount returns the number of completed ticks.
func (w *World) TickCount() int { return w.tick }

// Time returns the simulated time in seconds.
func (w *World) Time() float32 { return w.time }

// Len returns the number of live characters.
func (w *World) Len() int { return len(w.order) }

// Spawn adds a character.
func (w *World) Spawn(spec CharacterSpec) (donburi.Entity, error) {
	if _, ok := w.names[spec.Name]; ok {
		return 0, fmt.Errorf("%w: %q", ErrDuplicateName, spec.Name)
	}
	feed := spec.Feed
	if feed == nil {
		feed = input.NewSampler(input.Constant{})
	}

	body := w.space.AddCharacter(planar.CharacterSpec{
		Position: spec.Position,
		Width:    orDefault(spec.Width, DefaultWidth),
		Height:   orDefault(spec.Height, DefaultHeight),
		Mass:     orDefault(spec.Mass, DefaultMass),
	})
	ctrl := locomotion.New(w.tuning,
		locomotion.WithBody(body),
		locomotion.WithPhysics(w.scene),
		locomotion.WithHeading(spec.Yaw, spec.Pitch),
		locomotion.WithLogger(w.log.With(zap.String("character", spec.Name))),
	)

	entity := w.ecs.Create(Character, Driver)
	entry := w.ecs.Entry(entity)
	Character.Set(entry, &CharacterData{Name: spec.Name, Controller: ctrl, Body: body})
	Driver.Set(entry, &DriverData{Feed: feed})

	w.order = append(w.order, entity)
	w.names[spec.Name] = entity
	w.log.Debug("spawned", zap.String("character", spec.Name))
	return entity, nil
}

// Despawn removes the named character and its body.
func (w *World) Despawn(name string) error {
	entity, ok := w.names[name]
	if !ok || !w.ecs.Valid(entity) {
		return fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	w.space.RemoveCharacter(Character.Get(w.ecs.Entry(entity)).Body)
	w.ecs.Remove(entity)
	delete(w.names, name)
	for i, e := range w.order {
		if e == entity {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	w.log.Debug("despawned", zap.String("character", name))
	return nil
}

// Respawn moves the named character to position at rest and clears its
// controller state.
func (w *World) Respawn(name string, position math.Vec3) error {
	entity, ok := w.names[name]
	if !ok || !w.ecs.Valid(entity) {
		return fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	c := Character.Get(w.ecs.Entry(entity))
	c.Body.Teleport(position)
	c.Controller.Reset()
	c.Last = locomotion.Step{}
	w.log.Debug("respawned", zap.String("character", name))
	return nil
}

// SetTuning applies new tunables to every character.
func (w *World) SetTuning(t locomotion.Tuning) {
	w.tuning = t
	w.each(func(c *CharacterData, _ *DriverData) error {
		c.Controller.SetTuning(t)
		return nil
	})
}

// Tick advances the world by dt.
func (w *World) Tick(dt float32) error {
	err := w.each(func(c *CharacterData, d *DriverData) error {
		snap, err := d.Feed.Snapshot(w.tick, w.time)
		if err != nil {
			return fmt.Errorf("input for %s at tick %d: %w", c.Name, w.tick, err)
		}
		step, err := c.Controller.Tick(dt, snap)
		if err != nil {
			return fmt.Errorf("tick %s: %w", c.Name, err)
		}
		c.Last = step
		return nil
	})
	if err != nil {
		return err
	}

	w.space.Step(dt)
	w.tick++
	w.time += dt
	return nil
}

// State returns the named character's state.
func (w *World) State(name string) (State, bool) {
	entity, ok := w.names[name]
	if !ok || !w.ecs.Valid(entity) {
		return State{}, false
	}
	return stateOf(Character.Get(w.ecs.Entry(entity))), true
}

// States returns every character in spawn order.
func (w *World) States() []State {
	out := make([]State, 0, len(w.order))
	w.each(func(c *CharacterData, _ *DriverData) error {
		out = append(out, stateOf(c))
		return nil
	})
	return out
}

func (w *World) each(fn func(*CharacterData, *DriverData) error) error {
	for _, entity := range w.order {
		if !w.ecs.Valid(entity) {
			continue
		}
		entry := w.ecs.Entry(entity)
		if err := fn(Character.Get(entry), Driver.Get(entry)); err != nil {
			return err
		}
	}
	return nil
}

func stateOf(c *CharacterData) State {
	return State{
		Name:     c.Name,
		Position: c.Body.Position(),
		Velocity: c.Body.Velocity(),
		Look:     c.Controller.Look(),
		Step:     c.Last,
	}
}

func orDefault(v, def float32) float32 {
	if v <= 0 {
		return def
	}
	return v
}

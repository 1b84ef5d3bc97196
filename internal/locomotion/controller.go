package locomotion

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/fpsmove/internal/input"
	"github.com/Faultbox/fpsmove/pkg/math"
)

// ErrMissingCollaborator is returned by a tick when the body, physics or
// orientation has not been provided.
var ErrMissingCollaborator = errors.New("locomotion: missing collaborator")

// Step reports what a tick did.
type Step struct {
	Terrain TerrainState
	Timers  JumpTimers
	Moved   bool
	Damped  bool
	Jumped  bool
	Clamped bool
	Shot    *RayHit // Non-nil when a shot hit a target this tick
}

// Controller drives one character. It is not safe for concurrent use; the
// simulation ticks it from a single goroutine.
type Controller struct {
	tuning      Tuning
	body        Body
	physics     Physics
	orientation Orientation
	log         *zap.Logger

	look    Look
	weapon  Weapon
	terrain TerrainState
	timers  JumpTimers
	intent  math.Vec2
}

// Option configures a Controller.
type Option func(*Controller)

// WithBody sets the rigid body to drive.
func WithBody(b Body) Option {
	return func(c *Controller) { c.body = b }
}

// WithPhysics sets the ray query and gravity source.
func WithPhysics(p Physics) Option {
	return func(c *Controller) { c.physics = p }
}

// WithOrientation overrides the facing source. By default the controller
// faces along its own Look yaw.
func WithOrientation(o Orientation) Option {
	return func(c *Controller) { c.orientation = o }
}

// WithHeading sets the initial look yaw and pitch, in degrees.
func WithHeading(yaw, pitch float32) Option {
	return func(c *Controller) { c.look = Look{Pitch: math.Clamp(pitch, -90, 90), Yaw: yaw} }
}

// WithLogger sets the logger for state transitions.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a controller. Collaborators are checked on the first tick.
func New(tuning Tuning, opts ...Option) *Controller {
	c := &Controller{
		tuning:  tuning,
		log:     zap.NewNop(),
		terrain: TerrainState{Normal: math.Up},
	}
	c.orientation = &c.look
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tuning returns the controller tunables.
func (c *Controller) Tuning() Tuning { return c.tuning }

// SetTuning replaces the tunables. Timers and look state are kept.
func (c *Controller) SetTuning(t Tuning) { c.tuning = t }

// Look returns the current look angles.
func (c *Controller) Look() Look { return c.look }

// Reset drops terrain, jump, weapon and intent state. Look angles are kept.
func (c *Controller) Reset() {
	c.terrain = TerrainState{Normal: math.Up}
	c.timers = JumpTimers{}
	c.weapon = Weapon{}
	c.intent = math.Vec2{}
}

func (c *Controller) check() error {
	switch {
	case c.body == nil:
		return fmt.Errorf("%w: body", ErrMissingCollaborator)
	case c.physics == nil:
		return fmt.Errorf("%w: physics", ErrMissingCollaborator)
	case c.orientation == nil:
		return fmt.Errorf("%w: orientation", ErrMissingCollaborator)
	}
	return nil
}

// Update runs the frame-cadence half of a tick: sensing, look, jump timers
// and the weapon.
func (c *Controller) Update(dt float32, snap input.Snapshot) (Step, error) {
	if err := c.check(); err != nil {
		return Step{}, err
	}

	pos := c.body.Position()
	prev := c.terrain
	c.terrain = Sense(c.physics, pos, c.tuning)
	c.logTransition(prev, c.terrain)

	c.intent = snap.Move
	c.look.Apply(snap.Look, c.tuning.MouseSensitivity, dt)

	c.timers = c.timers.Update(c.tuning, c.terrain, JumpInput{
		Held:      snap.JumpHeld,
		Triggered: snap.JumpTriggered,
	}, c.body.Velocity().Y, dt)

	step := Step{Terrain: c.terrain}
	if snap.FireTriggered {
		if hit, ok := c.weapon.Fire(c.physics, pos, c.look.Aim(), c.tuning); ok {
			step.Shot = &hit
			c.log.Debug("shot hit target", zap.Float32("distance", hit.Distance))
		}
	}
	c.weapon.Cool(dt)

	step.Timers = c.timers
	return step, nil
}

// FixedUpdate runs the physics-cadence half of a tick: movement, jump,
// idle damping and terminal velocity, in that order.
func (c *Controller) FixedUpdate(dt float32) (Step, error) {
	if err := c.check(); err != nil {
		return Step{}, err
	}

	step := Step{Terrain: c.terrain}
	step.Moved = Move(c.body, c.physics.Gravity(), c.intent, c.orientation.Facing(), c.terrain, c.tuning, dt)

	if c.timers.Ready && c.terrain.SteepSlope {
		c.log.Debug("jump vetoed on steep slope", zap.Float32("angle", c.terrain.SlopeAngle))
	}
	c.timers, step.Jumped = Jump(c.body, c.terrain, c.tuning, c.timers)
	if step.Jumped {
		c.log.Debug("jump", zap.Bool("on_slope", c.terrain.OnSlope))
	}

	step.Damped = Damp(c.body, c.intent, c.terrain, c.tuning, dt)
	step.Clamped = EnforceTerminalVelocity(c.body, c.terrain, c.tuning)
	step.Timers = c.timers
	return step, nil
}

// Tick runs Update followed by FixedUpdate with the same dt.
func (c *Controller) Tick(dt float32, snap input.Snapshot) (Step, error) {
	frame, err := c.Update(dt, snap)
	if err != nil {
		return Step{}, err
	}
	fixed, err := c.FixedUpdate(dt)
	if err != nil {
		return Step{}, err
	}
	fixed.Shot = frame.Shot
	return fixed, nil
}

func (c *Controller) logTransition(prev, next TerrainState) {
	switch {
	case prev.Airborne() && !next.Airborne():
		c.log.Debug("landed", zap.Float32("slope_angle", next.SlopeAngle))
	case !prev.Airborne() && next.Airborne():
		c.log.Debug("left ground")
	}
	if !prev.SteepSlope && next.SteepSlope {
		c.log.Debug("on steep slope", zap.Float32("angle", next.SlopeAngle))
	}
}

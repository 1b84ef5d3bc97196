package world

import (
	"errors"
	"testing"

	"github.com/Faultbox/fpsmove/internal/input"
	"github.com/Faultbox/fpsmove/internal/locomotion"
	"github.com/Faultbox/fpsmove/internal/physics/picking"
	"github.com/Faultbox/fpsmove/internal/physics/planar"
	"github.com/Faultbox/fpsmove/pkg/math"
)

const dt = 1.0 / 40

func flatWorld() *World {
	space := planar.NewSpace(math.Vec3{Y: -9.81})
	space.AddSegment(planar.Segment{A: math.Vec2{X: -100}, B: math.Vec2{X: 100}})
	return New(space, locomotion.DefaultTuning(), nil)
}

func run(t *testing.T, w *World, seconds float32) {
	t.Helper()
	for n := int(seconds/dt + 0.5); n > 0; n-- {
		if err := w.Tick(dt); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}
}

func TestSpawnAndDespawn(t *testing.T) {
	w := flatWorld()
	for _, name := range []string{"a", "b", "c"} {
		if _, err := w.Spawn(CharacterSpec{Name: name, Position: math.Vec3{Y: 1}}); err != nil {
			t.Fatalf("Spawn(%s): %v", name, err)
		}
	}
	if _, err := w.Spawn(CharacterSpec{Name: "b"}); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("duplicate Spawn err = %v, want ErrDuplicateName", err)
	}

	if err := w.Despawn("b"); err != nil {
		t.Fatalf("Despawn: %v", err)
	}
	if err := w.Despawn("b"); !errors.Is(err, ErrUnknown) {
		t.Errorf("second Despawn err = %v, want ErrUnknown", err)
	}
	if _, ok := w.State("b"); ok {
		t.Error("State found a despawned character")
	}

	run(t, w, 0.1)
	states := w.States()
	if len(states) != 2 || states[0].Name != "a" || states[1].Name != "c" {
		t.Errorf("States order = %+v, want a, c", states)
	}
	if w.Len() != 2 || w.TickCount() != 4 {
		t.Errorf("Len = %d, TickCount = %d", w.Len(), w.TickCount())
	}
}

func TestCharacterLandsAndJumps(t *testing.T) {
	w := flatWorld()
	tl := &input.Timeline{Segments: []input.Segment{{From: 0.99, Until: 1.5, Jump: true}}}
	if _, err := w.Spawn(CharacterSpec{Name: "p", Position: math.Vec3{Y: 1.5}, Feed: input.NewSampler(tl)}); err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	run(t, w, 1)
	s, _ := w.State("p")
	if !s.Step.Terrain.Grounded {
		t.Fatalf("not grounded after settling: %+v", s)
	}

	if err := w.Tick(dt); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	s, _ = w.State("p")
	if !s.Step.Jumped {
		t.Fatalf("jump did not execute: %+v", s.Step)
	}
	if s.Velocity.Y < 4 {
		t.Errorf("vy after jump = %v", s.Velocity.Y)
	}

	run(t, w, 0.3)
	if s, _ = w.State("p"); !s.Step.Terrain.Airborne() {
		t.Error("expected to be airborne 0.3s after the jump")
	}
}

func TestCharacterWalksAlongFacing(t *testing.T) {
	w := flatWorld()
	feed := input.NewSampler(input.Constant{Move: math.Vec2{Y: 1}})
	if _, err := w.Spawn(CharacterSpec{Name: "p", Position: math.Vec3{Y: 0.9}, Yaw: 90, Feed: feed}); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	run(t, w, 1)

	s, _ := w.State("p")
	if s.Position.X < 1 {
		t.Errorf("x after 1s = %v, want > 1", s.Position.X)
	}
	if s.Velocity.Horizontal().Length() > w.tuning.GroundTerminalVelocity+0.05 {
		t.Errorf("speed %v above ground terminal velocity", s.Velocity.Horizontal().Length())
	}
}

type failingFeed struct{}

func (failingFeed) Snapshot(int, float32) (input.Snapshot, error) {
	return input.Snapshot{}, errors.New("device unplugged")
}

func TestTickPropagatesFeedErrors(t *testing.T) {
	w := flatWorld()
	if _, err := w.Spawn(CharacterSpec{Name: "p", Feed: failingFeed{}}); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if err := w.Tick(dt); err == nil {
		t.Fatal("expected error")
	}
	if w.TickCount() != 0 {
		t.Error("failed tick was counted")
	}
}

func TestSetTuning(t *testing.T) {
	w := flatWorld()
	if _, err := w.Spawn(CharacterSpec{Name: "p"}); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	tuning := locomotion.DefaultTuning()
	tuning.InitialJumpSpeed = 12
	w.SetTuning(tuning)

	c := Character.Get(w.ecs.Entry(w.names["p"]))
	if got := c.Controller.Tuning().InitialJumpSpeed; got != 12 {
		t.Errorf("InitialJumpSpeed = %v, want 12", got)
	}
}

func TestCharacterShootsTarget(t *testing.T) {
	w := flatWorld()
	tuning := w.tuning
	target := w.AddTarget(picking.Target{
		Name:  "dummy",
		Box:   picking.Centered(math.Vec3{Y: 1.4, Z: 6}, math.Vec3{X: 1, Y: 2, Z: 0.5}),
		Layer: tuning.TargetLayers,
	})
	feed := input.NewSampler(input.Constant{Fire: true})
	if _, err := w.Spawn(CharacterSpec{Name: "p", Position: math.Vec3{Y: 0.9}, Feed: feed}); err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	if err := w.Tick(dt); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	s, _ := w.State("p")
	if s.Step.Shot == nil || s.Step.Shot.Object != target {
		t.Fatalf("Shot = %+v, want a hit on the dummy", s.Step.Shot)
	}

	// The trigger is held, so no second shot without a new press.
	if err := w.Tick(dt); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if s, _ = w.State("p"); s.Step.Shot != nil {
		t.Error("held trigger fired twice")
	}
}

func TestRespawn(t *testing.T) {
	w := flatWorld()
	feed := input.NewSampler(input.Constant{Move: math.Vec2{Y: 1}})
	if _, err := w.Spawn(CharacterSpec{Name: "p", Position: math.Vec3{Y: 1}, Feed: feed}); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	run(t, w, 1)

	to := math.Vec3{X: 3, Y: 5, Z: 2}
	if err := w.Respawn("p", to); err != nil {
		t.Fatalf("Respawn: %v", err)
	}
	s, _ := w.State("p")
	if s.Position != to || !s.Velocity.IsZero() {
		t.Errorf("after Respawn: position %v velocity %v", s.Position, s.Velocity)
	}
	if s.Step != (locomotion.Step{}) {
		t.Errorf("Step not cleared: %+v", s.Step)
	}

	run(t, w, dt)
	if s, _ = w.State("p"); s.Velocity.Y >= 0 || s.Step.Terrain.Grounded {
		t.Errorf("expected a fall from the respawn point, got %+v", s)
	}

	if err := w.Respawn("ghost", to); !errors.Is(err, ErrUnknown) {
		t.Errorf("err = %v, want ErrUnknown", err)
	}
}

package level

import (
	"errors"
	gomath "math"
	"os"
	"testing"

	"github.com/Faultbox/fpsmove/internal/locomotion"
	"github.com/Faultbox/fpsmove/pkg/math"
)

func approx(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-3
}

func TestLoadRamp(t *testing.T) {
	lvl, err := Load(os.DirFS("testdata"), "ramp.tmx")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if lvl.Name != "ramp" {
		t.Errorf("Name = %q", lvl.Name)
	}
	if !approx(lvl.Width, 40) || !approx(lvl.Height, 10) {
		t.Errorf("size = %vx%v, want 40x10", lvl.Width, lvl.Height)
	}
	if len(lvl.Segments) != 6 {
		t.Fatalf("segments = %d, want 6", len(lvl.Segments))
	}

	floor := lvl.Segments[0]
	if !approx(floor.A.Y, 2) || !approx(floor.B.X, 20) || !approx(floor.B.Y, 2) {
		t.Errorf("floor = %+v, want (0,2)-(20,2)", floor)
	}
	if !approx(floor.Friction, 0.8) || floor.Layer != locomotion.Layer(0) {
		t.Errorf("floor properties = %+v", floor)
	}

	ramp := lvl.Segments[1]
	if ramp.Layer != locomotion.Layer(2) {
		t.Errorf("ramp layer = %v, want %v", ramp.Layer, locomotion.Layer(2))
	}
	rise := ramp.B.Y - ramp.A.Y
	run := ramp.B.X - ramp.A.X
	if deg := float32(gomath.Atan2(float64(rise), float64(run)) * 180 / gomath.Pi); gomath.Abs(float64(deg-20)) > 0.01 {
		t.Errorf("ramp angle = %v, want 20", deg)
	}
}

func TestLoadSpawns(t *testing.T) {
	lvl, err := Load(os.DirFS("testdata"), "ramp.tmx")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(lvl.Spawns) != 2 {
		t.Fatalf("spawns = %d, want 2", len(lvl.Spawns))
	}

	s, ok := lvl.SpawnPoint("player")
	if !ok {
		t.Fatal("player spawn missing")
	}
	if !approx(s.Position.X, 2) || !approx(s.Position.Y, 3) || s.Yaw != 90 {
		t.Errorf("player spawn = %+v", s)
	}
	if first, _ := lvl.SpawnPoint(""); first.Name != "player" {
		t.Errorf("first spawn = %q, want player", first.Name)
	}
	if _, ok := lvl.SpawnPoint("nobody"); ok {
		t.Error("found a spawn that does not exist")
	}
}

func TestLoadTargets(t *testing.T) {
	lvl, err := Load(os.DirFS("testdata"), "ramp.tmx")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(lvl.Targets) != 1 {
		t.Fatalf("targets = %d, want 1", len(lvl.Targets))
	}
	tg := lvl.Targets[0]
	if tg.Name != "dummy" || tg.Layer != locomotion.Layer(6) {
		t.Errorf("target = %+v", tg)
	}
	want := [2]math.Vec3{{X: 4, Y: 2, Z: 7.5}, {X: 5, Y: 4, Z: 8.5}}
	if tg.Box.Min != want[0] || tg.Box.Max != want[1] {
		t.Errorf("box = %+v, want %v", tg.Box, want)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(os.DirFS("testdata"), "empty.tmx"); !errors.Is(err, ErrNoGround) {
		t.Errorf("err = %v, want ErrNoGround", err)
	}
	if _, err := Load(os.DirFS("testdata"), "missing.tmx"); err == nil {
		t.Error("expected error for missing map")
	}
}

func TestBuildRaycastsGround(t *testing.T) {
	lvl, err := Load(os.DirFS("testdata"), "ramp.tmx")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	space := lvl.Build(math.Vec3{Y: -9.81})

	hit, ok := space.Raycast(math.Vec3{X: 5, Y: 3}, math.Down, 2, locomotion.Layer(0))
	if !ok || !approx(hit.Distance, 1) {
		t.Fatalf("floor hit = %+v, %v; want distance 1", hit, ok)
	}

	if _, ok := space.Raycast(math.Vec3{X: 25, Y: 5}, math.Down, 5, locomotion.Layer(0)); ok {
		t.Error("ramp on layer 2 reported through a layer 0 mask")
	}
	hit, ok = space.Raycast(math.Vec3{X: 25, Y: 5}, math.Down, 5, locomotion.Layer(2))
	if !ok {
		t.Fatal("ramp not hit through its own layer")
	}
	if angle := hit.Normal.AngleDeg(math.Up); gomath.Abs(float64(angle-20)) > 0.01 {
		t.Errorf("ramp angle from normal = %v, want 20", angle)
	}
}

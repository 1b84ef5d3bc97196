package locomotion

import (
	"testing"

	"github.com/Faultbox/fpsmove/pkg/math"
)

func TestLookApply(t *testing.T) {
	sens := math.Vec2{X: 10, Y: 20}
	var l Look
	l.Apply(math.Vec2{X: 1, Y: 2}, sens, 0.5)

	if !approx(l.Yaw, 10) {
		t.Errorf("Yaw = %v, want 10", l.Yaw)
	}
	if !approx(l.Pitch, -10) {
		t.Errorf("Pitch = %v, want -10", l.Pitch)
	}
}

func TestLookPitchClamp(t *testing.T) {
	sens := math.Vec2{X: 100, Y: 100}
	var l Look
	l.Apply(math.Vec2{Y: -50}, sens, 1)
	if l.Pitch != 90 {
		t.Errorf("Pitch = %v, want 90", l.Pitch)
	}
	l.Apply(math.Vec2{Y: 500}, sens, 1)
	if l.Pitch != -90 {
		t.Errorf("Pitch = %v, want -90", l.Pitch)
	}
}

func TestLookFacingIgnoresPitch(t *testing.T) {
	l := Look{Pitch: 45, Yaw: 90}
	if f := l.Facing().Forward(); !approxVec(f, math.Vec3{X: 1}) {
		t.Errorf("facing forward = %v, want +X", f)
	}
	if a := l.Aim().Forward(); a.Y >= 0 {
		t.Errorf("aim forward %v should point down for positive pitch", a)
	}
}

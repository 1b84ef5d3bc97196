package locomotion

import "github.com/Faultbox/fpsmove/pkg/math"

// Look accumulates look input into a yaw/pitch pair, in degrees.
// The body faces along yaw only; the aim also includes pitch.
type Look struct {
	Pitch float32
	Yaw   float32
}

// Apply integrates one frame of look delta. Pitch is clamped to [-90, 90].
func (l *Look) Apply(delta, sensitivity math.Vec2, dt float32) {
	l.Pitch -= delta.Y * sensitivity.X * dt
	l.Yaw += delta.X * sensitivity.Y * dt
	l.Pitch = math.Clamp(l.Pitch, -90, 90)
}

// Facing returns the yaw-only body rotation.
func (l Look) Facing() math.Quat {
	return math.QuatFromEuler(0, l.Yaw)
}

// Aim returns the camera rotation.
func (l Look) Aim() math.Quat {
	return math.QuatFromEuler(l.Pitch, l.Yaw)
}

package locomotion

import "github.com/Faultbox/fpsmove/pkg/math"

// DampingForce returns the velocity change bleeding horizontal speed toward
// zero. In the air it is scaled by AirDampingRatio.
func DampingForce(velocity math.Vec3, terrain TerrainState, cfg Tuning, dt float32) math.Vec3 {
	damping := velocity.Horizontal().Scale(-cfg.DampingStrength * dt)
	if !terrain.Grounded {
		damping = damping.Scale(cfg.AirDampingRatio)
	}
	return damping
}

// Damp applies idle damping when there is no movement intent. It never runs
// on a tick where Move applied force.
func Damp(body Body, intent math.Vec2, terrain TerrainState, cfg Tuning, dt float32) bool {
	if !intent.IsZero() {
		return false
	}
	body.AddVelocityChange(DampingForce(body.Velocity(), terrain, cfg, dt))
	return true
}

package locomotion

import "github.com/Faultbox/fpsmove/pkg/math"

// MoveForce turns a 2D intent into the world-space velocity change for this
// tick. intent.X strafes along the facing right axis, intent.Y moves along
// facing forward. ok is false when nothing should be applied: zero intent or
// a steep slope.
func MoveForce(intent math.Vec2, facing math.Quat, terrain TerrainState, cfg Tuning, dt float32) (force math.Vec3, ok bool) {
	if intent.IsZero() || terrain.SteepSlope {
		return math.Vec3{}, false
	}

	dir := math.Vec3{X: intent.X, Y: 0, Z: intent.Y}.Normalize()
	strength := cfg.AirMoveForce
	if terrain.Grounded {
		strength = cfg.GroundMoveForce
	}

	force = facing.Rotate(dir.Scale(strength * dt))
	if terrain.OnSlope {
		force = force.ProjectOnPlane(terrain.Normal)
	}
	return force, true
}

// SlopeGravityCompensation returns the acceleration cancelling the part of
// gravity that runs along the slope plane.
func SlopeGravityCompensation(gravity, normal math.Vec3) math.Vec3 {
	return gravity.ProjectOnPlane(normal).Neg()
}

// Move applies the movement force, plus gravity compensation on walkable
// slopes. It reports whether anything was applied.
func Move(body Body, gravity math.Vec3, intent math.Vec2, facing math.Quat, terrain TerrainState, cfg Tuning, dt float32) bool {
	force, ok := MoveForce(intent, facing, terrain, cfg, dt)
	if !ok {
		return false
	}
	if terrain.OnSlope {
		body.AddAcceleration(SlopeGravityCompensation(gravity, terrain.Normal))
	}
	body.AddVelocityChange(force)
	return true
}

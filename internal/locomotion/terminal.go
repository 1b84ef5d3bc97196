package locomotion

import "github.com/Faultbox/fpsmove/pkg/math"

// ClampVelocity limits v to the speed envelope for the terrain.
//
// On ground or a walkable slope the full vector is clamped to
// GroundTerminalVelocity. In the air horizontal speed and vertical speed are
// clamped separately by AerialTerminalVelocity.X and .Y.
//
// Magnitude clamps tolerate float32 rounding: a speed within about 5e-6 of
// the bound, relative, passes through unchanged, so clamping twice returns
// the same vector. The vertical air clamp is exact.
func ClampVelocity(v math.Vec3, terrain TerrainState, cfg Tuning) math.Vec3 {
	if terrain.Grounded || terrain.OnSlope {
		return v.ClampMagnitude(cfg.GroundTerminalVelocity)
	}

	h := v.XZ().ClampMagnitude(cfg.AerialTerminalVelocity.X)
	y := math.Clamp(v.Y, -cfg.AerialTerminalVelocity.Y, cfg.AerialTerminalVelocity.Y)
	return math.Vec3{X: h.X, Y: y, Z: h.Y}
}

// EnforceTerminalVelocity clamps the body velocity, writing only on change.
func EnforceTerminalVelocity(body Body, terrain TerrainState, cfg Tuning) bool {
	v := body.Velocity()
	clamped := ClampVelocity(v, terrain, cfg)
	if clamped == v {
		return false
	}
	body.SetVelocity(clamped)
	return true
}

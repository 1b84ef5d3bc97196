package locomotion

import "github.com/Faultbox/fpsmove/pkg/math"

// TerrainState is the classified ground under the character, recomputed every tick.
type TerrainState struct {
	Grounded   bool      // Ground ray hit within GroundDetectionRange
	OnSlope    bool      // Walkable slope: 0 < SlopeAngle < MaxSlopeAngle
	SteepSlope bool      // SlopeAngle > MaxSlopeAngle
	SlopeAngle float32   // Degrees from up; meaningful only when the slope ray hit
	Normal     math.Vec3 // Hit normal on a walkable slope, up otherwise
}

// Airborne reports whether neither ground nor walkable slope is under the character.
func (s TerrainState) Airborne() bool {
	return !s.Grounded && !s.OnSlope
}

// Sense casts the ground and slope rays straight down from origin and
// classifies the result. A miss is a valid state, not an error.
func Sense(q RayCaster, origin math.Vec3, cfg Tuning) TerrainState {
	state := TerrainState{Normal: math.Up}

	_, state.Grounded = q.Raycast(origin, math.Down, cfg.GroundDetectionRange, cfg.GroundLayer)

	hit, ok := q.Raycast(origin, math.Down, cfg.SlopeDetectionRange, cfg.GroundLayer)
	if !ok {
		return state
	}

	angle := hit.Normal.AngleDeg(math.Up)
	state.SlopeAngle = angle
	state.SteepSlope = angle > cfg.MaxSlopeAngle
	state.OnSlope = angle > 0 && angle < cfg.MaxSlopeAngle
	if state.OnSlope {
		state.Normal = hit.Normal
	}
	return state
}

package locomotion

import "github.com/Faultbox/fpsmove/pkg/math"

// JumpTimers is the coyote-time / jump-buffer state carried across ticks.
type JumpTimers struct {
	Coyote float32 // Seconds left in which leaving the ground still allows a jump
	Buffer float32 // Seconds left in which an earlier jump press is still honored
	Ready  bool    // Latched when both counters were positive; cleared by Jump
}

// JumpInput is the jump part of the per-tick input snapshot.
type JumpInput struct {
	Held      bool
	Triggered bool // True for exactly one tick per press
}

// Update advances the timers by dt. Counters never go negative, whatever the
// sign of the configured durations.
func (t JumpTimers) Update(cfg Tuning, terrain TerrainState, in JumpInput, verticalVelocity, dt float32) JumpTimers {
	if terrain.Grounded || terrain.OnSlope {
		t.Coyote = cfg.CoyoteTime
	} else {
		t.Coyote -= dt
	}
	t.Coyote = max(t.Coyote, 0)

	if in.Triggered {
		t.Buffer = cfg.JumpBufferTime
	} else {
		t.Buffer -= dt
	}
	t.Buffer = max(t.Buffer, 0)

	if t.Coyote > 0 && t.Buffer > 0 {
		t.Ready = true
		t.Buffer = 0
	}

	// Released while already rising: the remaining grace window must not
	// grant a second jump.
	if !in.Held && verticalVelocity > 0 {
		t.Coyote = 0
	}
	return t
}

// Consume clears the ready latch after a jump has executed.
func (t JumpTimers) Consume() JumpTimers {
	t.Ready = false
	return t
}

// JumpDirection returns the unscaled jump direction for the terrain.
func JumpDirection(terrain TerrainState, cfg Tuning) math.Vec3 {
	if !terrain.OnSlope {
		return math.Up
	}
	return math.Up.Lerp(terrain.Normal, cfg.SlopeJumpNormalBias)
}

// Jump executes a latched jump. Steep slopes veto execution and keep the latch.
func Jump(body Body, terrain TerrainState, cfg Tuning, t JumpTimers) (JumpTimers, bool) {
	if terrain.SteepSlope || !t.Ready {
		return t, false
	}

	body.SetVelocity(body.Velocity().WithY(0))
	body.AddVelocityChange(JumpDirection(terrain, cfg).Scale(cfg.InitialJumpSpeed))
	return t.Consume(), true
}

// Package input produces the per-tick input snapshots consumed by the
// character controller: edge detection over raw button state, and scripted
// sources for headless runs.
package input

import "github.com/Faultbox/fpsmove/pkg/math"

// Snapshot is the input sampled once per tick.
type Snapshot struct {
	Move          math.Vec2 `json:"move"` // X strafe, Y forward; unit or zero
	Look          math.Vec2 `json:"look"`
	JumpHeld      bool      `json:"jump_held"`
	JumpTriggered bool      `json:"jump_triggered"` // True for exactly one tick per press
	FireTriggered bool      `json:"fire_triggered"` // True for exactly one tick per press
}

// Raw is the level-triggered device state a Source reports.
type Raw struct {
	Move math.Vec2
	Look math.Vec2
	Jump bool
	Fire bool
}

// EdgeDetector turns held buttons into one-tick press flags.
type EdgeDetector struct {
	jumpWasHeld bool
	fireWasHeld bool
}

// Sample converts raw state into a snapshot. Move is clamped to unit length.
func (d *EdgeDetector) Sample(raw Raw) Snapshot {
	snap := Snapshot{
		Move:          raw.Move.ClampMagnitude(1),
		Look:          raw.Look,
		JumpHeld:      raw.Jump,
		JumpTriggered: raw.Jump && !d.jumpWasHeld,
		FireTriggered: raw.Fire && !d.fireWasHeld,
	}
	d.jumpWasHeld = raw.Jump
	d.fireWasHeld = raw.Fire
	return snap
}

// Reset forgets previous button state.
func (d *EdgeDetector) Reset() {
	*d = EdgeDetector{}
}

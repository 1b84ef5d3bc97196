package locomotion

import (
	gomath "math"

	"github.com/Faultbox/fpsmove/pkg/math"
)

const tickDt = 0.025

// fakeBody records every mutation the controller makes.
type fakeBody struct {
	pos     math.Vec3
	vel     math.Vec3
	accel   math.Vec3
	changes []math.Vec3
	sets    int
}

func (b *fakeBody) Position() math.Vec3 { return b.pos }
func (b *fakeBody) Velocity() math.Vec3 { return b.vel }

func (b *fakeBody) SetVelocity(v math.Vec3) {
	b.vel = v
	b.sets++
}

func (b *fakeBody) AddVelocityChange(dv math.Vec3) {
	b.vel = b.vel.Add(dv)
	b.changes = append(b.changes, dv)
}

func (b *fakeBody) AddAcceleration(a math.Vec3) {
	b.accel = b.accel.Add(a)
}

// fakeWorld answers downward rays with floor and every other ray with wall.
type fakeWorld struct {
	gravity math.Vec3
	floor   *RayHit
	wall    *RayHit
	casts   int
}

func (w *fakeWorld) Gravity() math.Vec3 { return w.gravity }

func (w *fakeWorld) Raycast(origin, dir math.Vec3, maxDistance float32, mask LayerMask) (RayHit, bool) {
	w.casts++
	target := w.wall
	if dir.Y < -0.9 {
		target = w.floor
	}
	if target == nil || !mask.Has(target.Layer) || target.Distance > maxDistance {
		return RayHit{}, false
	}
	return *target, true
}

func slopeNormal(deg float64) math.Vec3 {
	r := deg * gomath.Pi / 180
	return math.Vec3{X: float32(gomath.Sin(r)), Y: float32(gomath.Cos(r)), Z: 0}
}

func floorAt(distance float32, angleDeg float64) *RayHit {
	return &RayHit{Distance: distance, Normal: slopeNormal(angleDeg), Layer: Layer(0)}
}

func newWorld(floor *RayHit) *fakeWorld {
	return &fakeWorld{gravity: math.Vec3{Y: -9.81}, floor: floor}
}

func approx(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-4
}

func approxVec(a, b math.Vec3) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z)
}

var (
	grounded = TerrainState{Grounded: true, Normal: math.Up}
	airborne = TerrainState{Normal: math.Up}
)

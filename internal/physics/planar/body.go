package planar

import (
	"github.com/jakecoffman/cp"

	"github.com/Faultbox/fpsmove/pkg/math"
)

// Body is a character body. It satisfies locomotion.Body.
type Body struct {
	body  *cp.Body
	shape *cp.Shape

	z, vz float32   // Out-of-plane position and velocity
	accel math.Vec3 // Acceleration pending for the next Step
}

// Position returns the body centre.
func (b *Body) Position() math.Vec3 {
	p := b.body.Position()
	return math.Vec3{X: float32(p.X), Y: float32(p.Y), Z: b.z}
}

// Velocity returns the linear velocity.
func (b *Body) Velocity() math.Vec3 {
	v := b.body.Velocity()
	return math.Vec3{X: float32(v.X), Y: float32(v.Y), Z: b.vz}
}

// SetVelocity replaces the linear velocity.
func (b *Body) SetVelocity(v math.Vec3) {
	b.body.SetVelocityVector(vec(v.X, v.Y))
	b.vz = v.Z
}

// AddVelocityChange applies an instantaneous, mass-independent velocity delta.
func (b *Body) AddVelocityChange(dv math.Vec3) {
	b.SetVelocity(b.Velocity().Add(dv))
}

// AddAcceleration queues an acceleration for the next Step.
func (b *Body) AddAcceleration(a math.Vec3) {
	b.accel = b.accel.Add(a)
}

// Teleport moves the body and clears its velocity.
func (b *Body) Teleport(p math.Vec3) {
	b.body.SetPosition(vec(p.X, p.Y))
	b.z = p.Z
	b.SetVelocity(math.Vec3{})
	b.accel = math.Vec3{}
}

func (b *Body) flush(dt, gravityZ float32) {
	a := b.accel
	a.Z += gravityZ
	if !a.IsZero() {
		b.AddVelocityChange(a.Scale(dt))
	}
	b.accel = math.Vec3{}
}

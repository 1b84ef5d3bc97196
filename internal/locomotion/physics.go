package locomotion

import "github.com/Faultbox/fpsmove/pkg/math"

// LayerMask selects collision layers by bit.
type LayerMask uint32

// AllLayers matches every layer.
const AllLayers LayerMask = ^LayerMask(0)

// Layer returns the mask for a single layer index (0-31).
func Layer(n uint) LayerMask {
	return LayerMask(1) << (n & 31)
}

// Has reports whether any bit of other is set in m.
func (m LayerMask) Has(other LayerMask) bool {
	return m&other != 0
}

// RayHit describes the first surface a ray touched.
type RayHit struct {
	Distance float32
	Point    math.Vec3
	Normal   math.Vec3
	Layer    LayerMask // Layer bits of the object that was hit
	Object   any       // Backend handle of the object that was hit
}

// RayCaster answers ray queries against the static/kinematic environment.
type RayCaster interface {
	// Raycast returns the closest hit within maxDistance on the masked layers.
	// dir must be normalized. A miss is reported with ok == false.
	Raycast(origin, dir math.Vec3, maxDistance float32, mask LayerMask) (hit RayHit, ok bool)
}

// Physics is the environment side of the physics collaborator.
type Physics interface {
	RayCaster
	// Gravity returns the world gravity vector.
	Gravity() math.Vec3
}

// Body is the rigid body the controller drives. All mutations are in
// velocity space and independent of mass.
type Body interface {
	Position() math.Vec3
	Velocity() math.Vec3
	SetVelocity(v math.Vec3)
	// AddVelocityChange applies an instantaneous velocity delta.
	AddVelocityChange(dv math.Vec3)
	// AddAcceleration applies an acceleration integrated over the next physics step.
	AddAcceleration(a math.Vec3)
}

// Orientation provides the facing basis used to turn input into world directions.
type Orientation interface {
	Facing() math.Quat
}

// Package picking provides ray casting against axis-aligned target boxes and
// merges it with another ray caster, so hitscan weapons can reach targets
// anywhere in 3D while ground queries stay on the physics backend.
package picking

import (
	gomath "math"

	"github.com/Faultbox/fpsmove/internal/locomotion"
	"github.com/Faultbox/fpsmove/pkg/math"
)

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// NewAABB creates an AABB from two opposite corners in any order.
func NewAABB(a, b math.Vec3) AABB {
	return AABB{
		Min: math.Vec3{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)},
		Max: math.Vec3{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)},
	}
}

// Centered creates an AABB from its centre and full size.
func Centered(center, size math.Vec3) AABB {
	half := size.Scale(0.5)
	return NewAABB(center.Sub(half), center.Add(half))
}

// Contains reports whether p lies inside or on the box.
func (b AABB) Contains(p math.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Intersect tests a ray against the box with the slab method. It returns the
// distance along dir to the entry point and the outward normal of the face
// hit. A ray starting inside the box reports the exit point.
func (b AABB) Intersect(origin, dir math.Vec3) (t float32, normal math.Vec3, hit bool) {
	o := [3]float32{origin.X, origin.Y, origin.Z}
	d := [3]float32{dir.X, dir.Y, dir.Z}
	lo := [3]float32{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float32{b.Max.X, b.Max.Y, b.Max.Z}

	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)
	enterAxis, exitAxis := -1, -1

	for axis := 0; axis < 3; axis++ {
		if d[axis] == 0 {
			if o[axis] < lo[axis] || o[axis] > hi[axis] {
				return 0, math.Vec3{}, false
			}
			continue
		}
		t1 := (lo[axis] - o[axis]) / d[axis]
		t2 := (hi[axis] - o[axis]) / d[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin, enterAxis = t1, axis
		}
		if t2 < tmax {
			tmax, exitAxis = t2, axis
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, math.Vec3{}, false
	}
	if tmin < 0 {
		return tmax, faceNormal(exitAxis, d, 1), true
	}
	return tmin, faceNormal(enterAxis, d, -1), true
}

// faceNormal is the unit axis vector pointing against (sign -1) or along
// (sign 1) the ray on the given axis.
func faceNormal(axis int, d [3]float32, sign float32) math.Vec3 {
	if axis < 0 {
		return math.Vec3{}
	}
	var n [3]float32
	if d[axis] > 0 {
		n[axis] = sign
	} else {
		n[axis] = -sign
	}
	return math.Vec3{X: n[0], Y: n[1], Z: n[2]}
}

// DefaultTargetLayer is the layer of targets added without one. It matches
// the default weapon target layer and stays clear of the ground layer.
var DefaultTargetLayer = locomotion.Layer(6)

// Target is a named box on a collision layer.
type Target struct {
	Name  string
	Box   AABB
	Layer locomotion.LayerMask
}

// Scene answers ray queries from a backend plus a set of targets, reporting
// whichever hit is nearest. Gravity comes from the backend.
type Scene struct {
	locomotion.Physics
	targets []*Target
}

// NewScene wraps backend.
func NewScene(backend locomotion.Physics) *Scene {
	return &Scene{Physics: backend}
}

// Add registers a target. Targets without a layer go on DefaultTargetLayer.
func (s *Scene) Add(t Target) *Target {
	if t.Layer == 0 {
		t.Layer = DefaultTargetLayer
	}
	p := &t
	s.targets = append(s.targets, p)
	return p
}

// Targets returns the registered targets.
func (s *Scene) Targets() []*Target {
	return s.targets
}

// Raycast implements locomotion.RayCaster.
func (s *Scene) Raycast(origin, dir math.Vec3, maxDistance float32, mask locomotion.LayerMask) (locomotion.RayHit, bool) {
	best, found := s.Physics.Raycast(origin, dir, maxDistance, mask)
	for _, target := range s.targets {
		if !mask.Has(target.Layer) {
			continue
		}
		t, n, ok := target.Box.Intersect(origin, dir)
		if !ok || t > maxDistance || (found && t >= best.Distance) {
			continue
		}
		best = locomotion.RayHit{
			Distance: t,
			Point:    origin.Add(dir.Scale(t)),
			Normal:   n,
			Layer:    target.Layer,
			Object:   target,
		}
		found = true
	}
	return best, found
}

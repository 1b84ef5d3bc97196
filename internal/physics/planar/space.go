// Package planar is a physics backend for the character controller built on
// Chipmunk. Collision lives in the vertical X-Y plane (+Y up); motion along Z
// is carried by each body and integrated without collision, which is enough
// for side-view test levels and headless simulation.
package planar

import (
	gomath "math"

	"github.com/jakecoffman/cp"

	"github.com/Faultbox/fpsmove/internal/locomotion"
	"github.com/Faultbox/fpsmove/pkg/math"
)

// CharacterLayer is the category bit of character shapes. Ray queries never
// report character shapes.
const CharacterLayer = locomotion.LayerMask(1 << 31)

// Space owns the Chipmunk space, the static ground and the character bodies.
type Space struct {
	space   *cp.Space
	gravity math.Vec3
	bodies  []*Body
	layers  map[*cp.Shape]locomotion.LayerMask
}

// NewSpace creates an empty space. Only the X and Y components of gravity
// act inside Chipmunk; Z gravity is applied to the out-of-plane velocity.
func NewSpace(gravity math.Vec3) *Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(vec(gravity.X, gravity.Y))
	return &Space{
		space:   space,
		gravity: gravity,
		layers:  make(map[*cp.Shape]locomotion.LayerMask),
	}
}

// Gravity returns the world gravity vector.
func (s *Space) Gravity() math.Vec3 {
	return s.gravity
}

// Segment is a static ground edge in the X-Y plane.
type Segment struct {
	A, B     math.Vec2
	Radius   float32
	Layer    locomotion.LayerMask
	Friction float32
}

// AddSegment adds a static ground segment.
func (s *Space) AddSegment(seg Segment) {
	layer := seg.Layer
	if layer == 0 {
		layer = locomotion.Layer(0)
	}
	shape := cp.NewSegment(s.space.StaticBody, vec(seg.A.X, seg.A.Y), vec(seg.B.X, seg.B.Y), float64(seg.Radius))
	shape.SetFriction(float64(seg.Friction))
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(layer), cp.ALL_CATEGORIES))
	s.space.AddShape(shape)
	s.layers[shape] = layer
}

// CharacterSpec describes a character body.
type CharacterSpec struct {
	Position math.Vec3
	Width    float32
	Height   float32
	Mass     float32
	Friction float32
}

// AddCharacter adds a dynamic, non-rotating box body.
func (s *Space) AddCharacter(spec CharacterSpec) *Body {
	mass := float64(spec.Mass)
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, gomath.Inf(1))
	body.SetPosition(vec(spec.Position.X, spec.Position.Y))
	s.space.AddBody(body)

	shape := cp.NewBox(body, float64(spec.Width), float64(spec.Height), 0)
	shape.SetFriction(float64(spec.Friction))
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(CharacterLayer), cp.ALL_CATEGORIES))
	s.space.AddShape(shape)

	b := &Body{body: body, shape: shape, z: spec.Position.Z}
	s.bodies = append(s.bodies, b)
	return b
}

// RemoveCharacter removes a body added with AddCharacter.
func (s *Space) RemoveCharacter(b *Body) {
	for i, other := range s.bodies {
		if other != b {
			continue
		}
		s.space.RemoveShape(b.shape)
		s.space.RemoveBody(b.body)
		s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
		return
	}
}

// Step flushes pending accelerations into velocities and advances the space by dt.
func (s *Space) Step(dt float32) {
	for _, b := range s.bodies {
		b.flush(dt, s.gravity.Z)
	}
	s.space.Step(float64(dt))
	for _, b := range s.bodies {
		b.z += b.vz * dt
	}
}

// Raycast implements locomotion.RayCaster over the static geometry.
// The ray is projected onto the X-Y plane; a ray pointing purely along Z misses.
func (s *Space) Raycast(origin, dir math.Vec3, maxDistance float32, mask locomotion.LayerMask) (locomotion.RayHit, bool) {
	if maxDistance <= 0 {
		return locomotion.RayHit{}, false
	}
	start := vec(origin.X, origin.Y)
	end := vec(origin.X+dir.X*maxDistance, origin.Y+dir.Y*maxDistance)
	if start == end {
		return locomotion.RayHit{}, false
	}

	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(mask&^CharacterLayer))
	info := s.space.SegmentQueryFirst(start, end, 0, filter)
	if info.Shape == nil {
		return locomotion.RayHit{}, false
	}

	distance := float32(info.Alpha) * maxDistance
	return locomotion.RayHit{
		Distance: distance,
		Point:    origin.Add(dir.Scale(distance)),
		Normal:   math.Vec3{X: float32(info.Normal.X), Y: float32(info.Normal.Y)}.Normalize(),
		Layer:    s.layers[info.Shape],
		Object:   info.Shape,
	}, true
}

func vec(x, y float32) cp.Vector {
	return cp.Vector{X: float64(x), Y: float64(y)}
}

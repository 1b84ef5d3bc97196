// Package math provides the vector and rotation types used by the movement code.
package math

import "math"

// Vec3 is a 3D vector. +Y is world up.
type Vec3 struct {
	X, Y, Z float32
}

// Up is the world up axis.
var Up = Vec3{0, 1, 0}

// Down is the world down axis.
var Down = Vec3{0, -1, 0}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// LengthSq returns the squared magnitude.
func (v Vec3) LengthSq() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.LengthSq())))
}

// Normalize returns a unit vector, or the zero vector for zero input.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// IsZero reports whether all components are exactly zero.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Project returns the component of v along onto.
func (v Vec3) Project(onto Vec3) Vec3 {
	d := onto.LengthSq()
	if d == 0 {
		return Vec3{}
	}
	return onto.Scale(v.Dot(onto) / d)
}

// ProjectOnPlane removes the component of v along the plane normal.
func (v Vec3) ProjectOnPlane(normal Vec3) Vec3 {
	return v.Sub(v.Project(normal))
}

// clampSlack absorbs float32 rounding so that clamping an already clamped
// vector returns it unchanged.
const clampSlack = 1e-5

// ClampMagnitude returns v shortened to at most maxLength.
// A negative maxLength is treated as zero.
func (v Vec3) ClampMagnitude(maxLength float32) Vec3 {
	if maxLength < 0 {
		maxLength = 0
	}
	sq := v.LengthSq()
	if sq <= maxLength*maxLength*(1+clampSlack) {
		return v
	}
	return v.Scale(maxLength / float32(math.Sqrt(float64(sq))))
}

// Lerp interpolates between v and other. t is clamped to [0, 1].
func (v Vec3) Lerp(other Vec3, t float32) Vec3 {
	t = Clamp01(t)
	return Vec3{
		v.X + (other.X-v.X)*t,
		v.Y + (other.Y-v.Y)*t,
		v.Z + (other.Z-v.Z)*t,
	}
}

// AngleDeg returns the unsigned angle between v and other in degrees.
// Zero-length input yields 0.
func (v Vec3) AngleDeg(other Vec3) float32 {
	denom := math.Sqrt(float64(v.LengthSq()) * float64(other.LengthSq()))
	if denom < 1e-15 {
		return 0
	}
	c := float64(v.Dot(other)) / denom
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return float32(math.Acos(c) * 180 / math.Pi)
}

// Horizontal returns v with the vertical component removed.
func (v Vec3) Horizontal() Vec3 {
	return Vec3{v.X, 0, v.Z}
}

// XZ returns the XZ components as Vec2.
func (v Vec3) XZ() Vec2 {
	return Vec2{v.X, v.Z}
}

// WithY returns v with Y replaced.
func (v Vec3) WithY(y float32) Vec3 {
	return Vec3{v.X, y, v.Z}
}

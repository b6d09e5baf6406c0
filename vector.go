package rigid2d

import (
	"fmt"
	"math"
)

// Vector is a 2D float64 pair. All operations are pure — they return a new
// value rather than mutating the receiver.
type Vector struct {
	X, Y float64
}

func (v Vector) String() string {
	return fmt.Sprintf("%f,%f", v.X, v.Y)
}

func (v Vector) Equal(other Vector) bool {
	return v.X == other.X && v.Y == other.Y
}

func (v Vector) Add(other Vector) Vector {
	return Vector{v.X + other.X, v.Y + other.Y}
}

func (v Vector) Sub(other Vector) Vector {
	return Vector{v.X - other.X, v.Y - other.Y}
}

func (v Vector) Neg() Vector {
	return Vector{-v.X, -v.Y}
}

func (v Vector) Mult(s float64) Vector {
	return Vector{v.X * s, v.Y * s}
}

func (v Vector) Div(s float64) Vector {
	return Vector{v.X / s, v.Y / s}
}

func (v Vector) Dot(other Vector) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Cross is the signed z-component of the 3D cross product of the two
// vectors extended into the plane z=0.
func (v Vector) Cross(other Vector) float64 {
	return v.X*other.Y - v.Y*other.X
}

func (v Vector) Perp() Vector {
	return Vector{-v.Y, v.X}
}

func (v Vector) ReversePerp() Vector {
	return Vector{v.Y, -v.X}
}

func (v Vector) LengthSq() float64 {
	return v.Dot(v)
}

func (v Vector) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns the unit-length vector in the same direction, or the
// zero vector if v has zero magnitude.
func (v Vector) Normalize() Vector {
	length := v.Length()
	if length == 0 {
		return Vector{}
	}
	return v.Mult(1.0 / length)
}

func (v Vector) Lerp(other Vector, t float64) Vector {
	return v.Mult(1.0 - t).Add(other.Mult(t))
}

func (v Vector) Distance(other Vector) float64 {
	return v.Sub(other).Length()
}

func (v Vector) DistanceSq(other Vector) float64 {
	return v.Sub(other).LengthSq()
}

// Angle is atan2(Y, X), the angle of v relative to the positive X axis.
func (v Vector) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// ForAngle returns the unit vector for the given angle in radians.
func ForAngle(a float64) Vector {
	return Vector{math.Cos(a), math.Sin(a)}
}

// Rotate rotates v by the angle implied by the unit vector other, i.e.
// complex multiplication of v by other.
func (v Vector) Rotate(other Vector) Vector {
	return Vector{v.X*other.X - v.Y*other.Y, v.X*other.Y + v.Y*other.X}
}

func (v Vector) Unrotate(other Vector) Vector {
	return Vector{v.X*other.X + v.Y*other.Y, v.Y*other.X - v.X*other.Y}
}

// RotateAngle rotates v about the origin by a radians.
func (v Vector) RotateAngle(a float64) Vector {
	return v.Rotate(ForAngle(a))
}

// RotateAbout rotates v about pivot by a radians. A non-nil out is written
// into and returned instead of allocating a new Vector, matching the
// in-place escape hatch the source exposes for hot inner loops.
func (v Vector) RotateAbout(pivot Vector, a float64, out *Vector) Vector {
	rel := v.Sub(pivot).RotateAngle(a).Add(pivot)
	if out != nil {
		*out = rel
		return *out
	}
	return rel
}

func Clamp(f, min, max float64) float64 {
	return math.Min(math.Max(f, min), max)
}

func Clamp01(f float64) float64 {
	return math.Max(0, math.Min(f, 1))
}

// Cross3 returns the signed area (scaled by 2) of the triangle a,b,c — the
// z component of (b-a) x (c-a). Positive when a,b,c turn counter-clockwise.
// Used by the convex hull builder to test turn direction.
func Cross3(a, b, c Vector) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

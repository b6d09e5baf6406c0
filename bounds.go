package rigid2d

import "math"

// Bounds is an axis-aligned bounding box. The invariant Min <= Max
// componentwise holds after every update.
type Bounds struct {
	Min, Max Vector
}

// NewBounds computes the AABB of a set of points. Panics if vertices is
// empty — an unbounded body is a construction error, not a runtime one.
func NewBounds(vertices []Vector) Bounds {
	if len(vertices) == 0 {
		panic("rigid2d: cannot compute bounds of zero vertices")
	}
	b := Bounds{Min: vertices[0], Max: vertices[0]}
	for _, v := range vertices[1:] {
		b = b.expandPoint(v)
	}
	return b
}

func (b Bounds) expandPoint(v Vector) Bounds {
	return Bounds{
		Min: Vector{math.Min(b.Min.X, v.X), math.Min(b.Min.Y, v.Y)},
		Max: Vector{math.Max(b.Max.X, v.X), math.Max(b.Max.Y, v.Y)},
	}
}

// Update recomputes the AABB from vertices and extends it one step along the
// signed components of velocity, so a broad phase sweep can see a body that
// is about to move into a gap without needing continuous collision
// detection.
func (b Bounds) Update(vertices []Vector, velocity Vector) Bounds {
	nb := NewBounds(vertices)
	if velocity.X > 0 {
		nb.Max.X += velocity.X
	} else {
		nb.Min.X += velocity.X
	}
	if velocity.Y > 0 {
		nb.Max.Y += velocity.Y
	} else {
		nb.Min.Y += velocity.Y
	}
	return nb
}

func (a Bounds) Overlaps(b Bounds) bool {
	return a.Min.X <= b.Max.X && b.Min.X <= a.Max.X &&
		a.Min.Y <= b.Max.Y && b.Min.Y <= a.Max.Y
}

// Contains reports whether the point v lies within b (edges inclusive).
func (b Bounds) Contains(v Vector) bool {
	return b.Min.X <= v.X && v.X <= b.Max.X && b.Min.Y <= v.Y && v.Y <= b.Max.Y
}

// ContainsVertices reports whether b is an AABB superset of every vertex —
// the property every body mutation must preserve.
func (b Bounds) ContainsVertices(vertices []Vector) bool {
	for _, v := range vertices {
		if !b.Contains(v) {
			return false
		}
	}
	return true
}

func (b Bounds) Translate(v Vector) Bounds {
	return Bounds{b.Min.Add(v), b.Max.Add(v)}
}

func (b Bounds) Center() Vector {
	return b.Min.Lerp(b.Max, 0.5)
}

func (a Bounds) Merge(b Bounds) Bounds {
	return Bounds{
		Min: Vector{math.Min(a.Min.X, b.Min.X), math.Min(a.Min.Y, b.Min.Y)},
		Max: Vector{math.Max(a.Max.X, b.Max.X), math.Max(a.Max.Y, b.Max.Y)},
	}
}

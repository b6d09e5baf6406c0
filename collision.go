package rigid2d

import "math"

// Collision is the narrow-phase result between two bodies' colliding
// parts: a single separating-axis-derived normal, the penetration depth
// along it, and the set of contact-candidate support points. Collided is
// false whenever the SAT test finds any separating axis, in which case
// the rest of the fields are meaningless.
type Collision struct {
	BodyA, BodyB *Body
	ParentA, ParentB *Body
	Collided     bool
	Normal       Vector
	Tangent      Vector
	Depth        float64
	SupportPoints []Vector
	AxisBody     *Body // which body contributed the chosen axis, for tangent orientation
}

// Collides runs SAT between bodyA and bodyB's own vertex rings (not their
// parts — a compound body's parts are tested pairwise by the detector).
// The result always carries ParentA/ParentB set to the compound root of
// each body: its Parent for a sub-part, the body itself otherwise.
func Collides(bodyA, bodyB *Body) Collision {
	result := Collision{BodyA: bodyA, BodyB: bodyB}
	result.ParentA = bodyA
	if bodyA.Parent != nil {
		result.ParentA = bodyA.Parent
	}
	result.ParentB = bodyB
	if bodyB.Parent != nil {
		result.ParentB = bodyB.Parent
	}

	overlapAB, minAxisA, minIdxA := overlapAxes(bodyA.Axes, vertexVectors(bodyA.Vertices), vertexVectors(bodyB.Vertices))
	if overlapAB <= 0 {
		return result
	}
	overlapBA, minAxisB, minIdxB := overlapAxes(bodyB.Axes, vertexVectors(bodyB.Vertices), vertexVectors(bodyA.Vertices))
	if overlapBA <= 0 {
		return result
	}

	var normal Vector
	var axisBody *Body
	var depth float64
	if overlapAB < overlapBA {
		depth = overlapAB
		normal = minAxisA
		axisBody = bodyA
		_ = minIdxA
	} else {
		depth = overlapBA
		normal = minAxisB.Neg()
		axisBody = bodyB
		_ = minIdxB
	}

	// Orient the normal to point from A to B.
	centreA := VerticesCentre(vertexVectors(bodyA.Vertices))
	centreB := VerticesCentre(vertexVectors(bodyB.Vertices))
	if centreB.Sub(centreA).Dot(normal) < 0 {
		normal = normal.Neg()
	}

	result.Collided = true
	result.Normal = normal
	result.Tangent = normal.Perp()
	result.Depth = depth
	result.AxisBody = axisBody
	result.SupportPoints = findSupports(bodyA.Vertices, bodyB.Vertices, normal)
	return result
}

// overlapAxes projects verticesA and verticesB onto each axis in turn and
// returns the smallest positive overlap found, along with the axis that
// produced it. A zero or negative return means a separating axis was
// found and the two vertex sets cannot be colliding.
func overlapAxes(axes []Vector, verticesA, verticesB []Vector) (float64, Vector, int) {
	minOverlap := math.Inf(1)
	var minAxis Vector
	minIdx := -1

	for i, axis := range axes {
		minA, maxA := projectToAxis(verticesA, axis)
		minB, maxB := projectToAxis(verticesB, axis)

		overlap := math.Min(maxA, maxB) - math.Max(minA, minB)
		if overlap <= 0 {
			return overlap, axis, i
		}
		if overlap < minOverlap {
			minOverlap = overlap
			minAxis = axis
			minIdx = i
		}
	}
	return minOverlap, minAxis, minIdx
}

func projectToAxis(vertices []Vector, axis Vector) (min, max float64) {
	min = axis.Dot(vertices[0])
	max = min
	for _, v := range vertices[1:] {
		dot := axis.Dot(v)
		if dot < min {
			min = dot
		}
		if dot > max {
			max = dot
		}
	}
	return
}

func vertexVectorsOf(vs []Vertex) []Vector { return vertexVectors(vs) }

// findSupports returns up to two contact points: the vertex (or vertices,
// for a face-face overlap) of the shape opposite the reference axis that
// is deepest inside the other shape, found by walking each candidate
// vertex's penetration depth along normal — support-point hill-climbing
// done as a linear scan here, equivalent for the small polygon counts
// this engine targets.
func findSupports(verticesA, verticesB []Vertex, normal Vector) []Vector {
	vA := vertexVectors(verticesA)
	vB := vertexVectors(verticesB)

	candidatesB := deepestVertices(vB, vA, normal.Neg())
	if len(candidatesB) > 0 {
		return candidatesB
	}
	return deepestVertices(vA, vB, normal)
}

// deepestVertices finds the vertex (or pair of near-equal-depth vertices)
// of `from` penetrating deepest into `into` along direction.
func deepestVertices(from, into []Vector, direction Vector) []Vector {
	type scored struct {
		v     Vector
		depth float64
	}
	scoredPoints := make([]scored, 0, len(from))
	for _, v := range from {
		if !VerticesContains(into, v) {
			continue
		}
		scoredPoints = append(scoredPoints, scored{v, direction.Dot(v)})
	}
	if len(scoredPoints) == 0 {
		return nil
	}
	best := scoredPoints[0]
	for _, s := range scoredPoints[1:] {
		if s.depth > best.depth {
			best = s
		}
	}
	out := []Vector{best.v}
	const slop = 0.01
	for _, s := range scoredPoints {
		if s.v != best.v && math.Abs(s.depth-best.depth) < slop {
			out = append(out, s.v)
			break
		}
	}
	return out
}

package rigid2d

import "math"

// QueryPoint returns every body among bodies whose vertex ring contains
// point, checking each compound part individually.
func QueryPoint(bodies []*Body, point Vector) []*Body {
	var hits []*Body
	for _, body := range bodies {
		for _, part := range body.Parts {
			if !part.Bounds.Contains(point) {
				continue
			}
			if VerticesContains(vertexVectors(part.Vertices), point) {
				hits = append(hits, body)
				break
			}
		}
	}
	return hits
}

// QueryRegion returns every body among bodies with at least one part
// whose AABB overlaps region.
func QueryRegion(bodies []*Body, region Bounds) []*Body {
	var hits []*Body
	for _, body := range bodies {
		for _, part := range body.Parts {
			if part.Bounds.Overlaps(region) {
				hits = append(hits, body)
				break
			}
		}
	}
	return hits
}

// RayHit is one intersection a ray query found: the body it struck, the
// world-space point of intersection, and the fraction of the ray's
// length travelled before the hit.
type RayHit struct {
	Body     *Body
	Point    Vector
	Fraction float64
}

// QueryRay casts a segment from start to end and returns every body it
// crosses, sorted by distance along the ray. Edge tests are exact, with no
// tolerance: a ray running parallel to an edge does not hit that edge.
func QueryRay(bodies []*Body, start, end Vector) []RayHit {
	direction := end.Sub(start)
	length := direction.Length()
	if length == 0 {
		return nil
	}

	var hits []RayHit
	for _, body := range bodies {
		for _, part := range body.Parts {
			if !rayIntersectsBounds(start, end, part.Bounds) {
				continue
			}
			point, fraction, ok := rayPolygonIntersection(start, direction, vertexVectors(part.Vertices))
			if ok {
				hits = append(hits, RayHit{Body: body, Point: point, Fraction: fraction})
				break
			}
		}
	}

	for i := 1; i < len(hits); i++ {
		j := i
		for j > 0 && hits[j-1].Fraction > hits[j].Fraction {
			hits[j-1], hits[j] = hits[j], hits[j-1]
			j--
		}
	}
	return hits
}

func rayIntersectsBounds(start, end Vector, b Bounds) bool {
	rayBounds := Bounds{
		Min: Vector{math.Min(start.X, end.X), math.Min(start.Y, end.Y)},
		Max: Vector{math.Max(start.X, end.X), math.Max(start.Y, end.Y)},
	}
	return rayBounds.Overlaps(b)
}

// rayPolygonIntersection finds the closest intersection (smallest
// fraction along direction) of the segment start->start+direction against
// every edge of the closed polygon vertices.
func rayPolygonIntersection(start, direction Vector, vertices []Vector) (Vector, float64, bool) {
	bestFraction := math.Inf(1)
	var bestPoint Vector
	found := false

	n := len(vertices)
	for i := 0; i < n; i++ {
		edgeStart := vertices[i]
		edgeEnd := vertices[(i+1)%n]
		if point, fraction, ok := segmentIntersection(start, direction, edgeStart, edgeEnd.Sub(edgeStart)); ok {
			if fraction < bestFraction {
				bestFraction = fraction
				bestPoint = point
				found = true
			}
		}
	}
	return bestPoint, bestFraction, found
}

// segmentIntersection solves for the intersection of ray p+t*r (t in
// [0,1]) and segment q+u*s (u in [0,1]) using the standard 2D cross-product
// form; returns the point and t if both parameters lie in range.
func segmentIntersection(p, r, q, s Vector) (Vector, float64, bool) {
	rxs := r.Cross(s)
	if rxs == 0 {
		return Vector{}, 0, false
	}
	qp := q.Sub(p)
	t := qp.Cross(s) / rxs
	u := qp.Cross(r) / rxs
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Vector{}, 0, false
	}
	return p.Add(r.Mult(t)), t, true
}

// QueryBodyPairs returns every distinct unordered pair from bodies whose
// AABBs overlap and whose SAT test confirms an actual collision, for
// one-off queries outside of Engine.Update. Unlike the detector it applies
// no collision filter, does not skip static or sleeping pairs, and tests
// each body's own vertex ring rather than its parts.
func QueryBodyPairs(bodies []*Body) []Collision {
	var results []Collision
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			if !a.Bounds.Overlaps(b.Bounds) {
				continue
			}
			col := Collides(a, b)
			if col.Collided {
				results = append(results, col)
			}
		}
	}
	return results
}

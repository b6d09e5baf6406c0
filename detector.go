package rigid2d

import "sort"

// Detector performs broad-phase candidate pruning by sorting each body's
// parts by their AABB's minimum x coordinate and sweeping for overlaps,
// then narrows every surviving candidate pair with SAT.
type Detector struct {
	bodies []*Body
}

func NewDetector() *Detector {
	return &Detector{}
}

// SetBodies replaces the set of top-level bodies the detector scans.
// Compound parts are expanded internally; callers always pass root
// bodies.
func (d *Detector) SetBodies(bodies []*Body) {
	d.bodies = bodies
}

// canCollide reports whether two bodies are permitted to collide: a shared
// non-zero group overrides category/mask (positive forces collision,
// negative forces non-collision); otherwise both bodies' masks must
// include the other's category.
func canCollide(a, b *Body) bool {
	if a.Group != 0 && a.Group == b.Group {
		return a.Group > 0
	}
	return a.Mask&b.Category != 0 && b.Mask&a.Category != 0
}

type sweepEntry struct {
	part *Body
	min  float64
}

// Collisions runs the full broad+narrow phase pass and returns every
// part-pair whose AABBs overlap and whose SAT test confirms a collision,
// in deterministic order (sorted by the pair's stable id), so that a
// fixed seed produces a fixed event sequence.
func (d *Detector) Collisions() []Collision {
	var entries []sweepEntry
	for _, body := range d.bodies {
		for _, part := range d.activeParts(body) {
			entries = append(entries, sweepEntry{part: part, min: part.Bounds.Min.X})
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].min < entries[j].min })

	var collisions []Collision
	for i := 0; i < len(entries); i++ {
		a := entries[i].part
		for j := i + 1; j < len(entries); j++ {
			b := entries[j].part
			if entries[j].min > a.Bounds.Max.X {
				break
			}
			if !d.candidatePair(a, b) {
				continue
			}
			col := Collides(a, b)
			if col.Collided {
				collisions = append(collisions, col)
			}
		}
	}

	sort.Slice(collisions, func(i, j int) bool {
		return pairID(collisions[i].ParentA.ID, collisions[i].ParentB.ID) <
			pairID(collisions[j].ParentA.ID, collisions[j].ParentB.ID)
	})
	return collisions
}

// activeParts returns the parts of body that should be swept: a sleeping
// body's parts are skipped only when colliding against another sleeping
// or static body (handled in candidatePair), so they still appear here.
func (d *Detector) activeParts(body *Body) []*Body {
	if len(body.Parts) > 1 {
		return body.Parts[1:]
	}
	return []*Body{body}
}

func (d *Detector) candidatePair(a, b *Body) bool {
	rootA, rootB := parentOf(a), parentOf(b)
	if rootA == rootB {
		return false
	}
	if rootA.IsStatic && rootB.IsStatic {
		return false
	}
	if (rootA.IsSleeping || rootA.IsStatic) && (rootB.IsSleeping || rootB.IsStatic) {
		return false
	}
	if !a.Bounds.Overlaps(b.Bounds) {
		return false
	}
	return canCollide(a, b)
}

func parentOf(b *Body) *Body {
	if b.Parent != nil {
		return b.Parent
	}
	if len(b.Parts) > 0 {
		return b.Parts[0]
	}
	return b
}

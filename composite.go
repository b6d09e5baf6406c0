package rigid2d

// Composite is a recursive container of bodies, constraints, and
// sub-composites. It is the engine's "World": any mutation (add/remove on
// this composite or any descendant) invalidates
// the cached flattenings and propagates a modified flag up to the root so
// Engine.Update knows to resynchronise the detector.
type Composite struct {
	Label string

	bodies      []*Body
	constraints []*Constraint
	composites  []*Composite
	parent      *Composite

	isModified bool

	cache struct {
		allBodies      []*Body
		allConstraints []*Constraint
		allComposites  []*Composite
		valid          bool
	}

	Emitter
}

// NewComposite creates an empty, unparented composite.
func NewComposite(label string) *Composite {
	return &Composite{Label: label}
}

func (c *Composite) setModified(updateParents bool) {
	c.isModified = true
	c.cache.valid = false
	if updateParents && c.parent != nil {
		c.parent.setModified(true)
	}
}

// AddBody adds body as a direct child.
func (c *Composite) AddBody(body *Body) *Composite {
	c.Emit(Event{Name: EventBeforeAdd, Source: c})
	c.bodies = append(c.bodies, body)
	c.setModified(true)
	c.Emit(Event{Name: EventAfterAdd, Source: c})
	return c
}

// RemoveBody removes body from this composite if present, optionally
// searching nested composites (deep).
func (c *Composite) RemoveBody(body *Body, deep bool) *Composite {
	c.Emit(Event{Name: EventBeforeRemove, Source: c})
	for i, b := range c.bodies {
		if b == body {
			c.bodies = append(c.bodies[:i], c.bodies[i+1:]...)
			c.setModified(true)
			c.Emit(Event{Name: EventAfterRemove, Source: c})
			return c
		}
	}
	if deep {
		for _, sub := range c.composites {
			sub.RemoveBody(body, true)
		}
	}
	return c
}

// AddConstraint adds constraint as a direct child.
func (c *Composite) AddConstraint(constraint *Constraint) *Composite {
	c.constraints = append(c.constraints, constraint)
	c.setModified(true)
	return c
}

// RemoveConstraint removes constraint from this composite if present,
// optionally searching nested composites.
func (c *Composite) RemoveConstraint(constraint *Constraint, deep bool) *Composite {
	for i, k := range c.constraints {
		if k == constraint {
			c.constraints = append(c.constraints[:i], c.constraints[i+1:]...)
			c.setModified(true)
			return c
		}
	}
	if deep {
		for _, sub := range c.composites {
			sub.RemoveConstraint(constraint, true)
		}
	}
	return c
}

// AddComposite adds sub as a nested composite, pointing sub's parent back
// at c. A non-root compound part is never valid here — AddComposite
// ignores an attempt to add a composite that already has a different
// parent rather than corrupt the tree.
func (c *Composite) AddComposite(sub *Composite) *Composite {
	if sub.parent != nil && sub.parent != c {
		return c
	}
	sub.parent = c
	c.composites = append(c.composites, sub)
	c.setModified(true)
	return c
}

// RemoveComposite removes sub from c's direct children.
func (c *Composite) RemoveComposite(sub *Composite) *Composite {
	for i, s := range c.composites {
		if s == sub {
			c.composites = append(c.composites[:i], c.composites[i+1:]...)
			sub.parent = nil
			c.setModified(true)
			return c
		}
	}
	return c
}

// Clear empties c of bodies (keeping static ones when keepStatic is true),
// constraints, and nested composites. Nested composites are always
// removed; deep additionally clears each of them first.
func (c *Composite) Clear(keepStatic bool, deep bool) {
	if keepStatic {
		kept := c.bodies[:0]
		for _, b := range c.bodies {
			if b.IsStatic {
				kept = append(kept, b)
			}
		}
		c.bodies = kept
	} else {
		c.bodies = nil
	}
	c.constraints = nil
	if deep {
		for _, sub := range c.composites {
			sub.Clear(keepStatic, true)
		}
	}
	c.composites = nil
	c.setModified(true)
}

// rebuildCache performs the depth-first flattening of bodies, constraints,
// and composites, memoised until the next mutation.
func (c *Composite) rebuildCache() {
	if c.cache.valid {
		return
	}
	var bodies []*Body
	var constraints []*Constraint
	var composites []*Composite

	bodies = append(bodies, c.bodies...)
	constraints = append(constraints, c.constraints...)
	for _, sub := range c.composites {
		composites = append(composites, sub)
		sub.rebuildCache()
		bodies = append(bodies, sub.cache.allBodies...)
		constraints = append(constraints, sub.cache.allConstraints...)
		composites = append(composites, sub.cache.allComposites...)
	}

	c.cache.allBodies = bodies
	c.cache.allConstraints = constraints
	c.cache.allComposites = composites
	c.cache.valid = true
}

// AllBodies returns every body owned directly or transitively by c. A
// nested composite's own transitive bodies are concatenated onto the
// parent's, never overwritten, so no descendant's bodies are silently
// dropped.
func (c *Composite) AllBodies() []*Body {
	c.rebuildCache()
	return c.cache.allBodies
}

// AllConstraints returns every constraint owned directly or transitively
// by c.
func (c *Composite) AllConstraints() []*Constraint {
	c.rebuildCache()
	return c.cache.allConstraints
}

// AllComposites returns every nested composite, transitively.
func (c *Composite) AllComposites() []*Composite {
	c.rebuildCache()
	return c.cache.allComposites
}

// Bodies returns c's direct body children (not recursive).
func (c *Composite) Bodies() []*Body { return c.bodies }

// Constraints returns c's direct constraint children (not recursive).
func (c *Composite) Constraints() []*Constraint { return c.constraints }

// Composites returns c's direct nested composites (not recursive).
func (c *Composite) Composites() []*Composite { return c.composites }

// IsModified reports whether c or any descendant has been mutated since
// the flag was last cleared.
func (c *Composite) IsModified() bool { return c.isModified }

// ClearModified clears the modified flag on c only (not descendants) —
// Engine.Update calls this on the world root once it has resynchronised
// the detector.
func (c *Composite) ClearModified() { c.isModified = false }

// Translate moves every body in c by delta. When recursive is true (the
// default a caller should pass) nested composites move too.
func (c *Composite) Translate(delta Vector, recursive bool) {
	for _, b := range c.bodies {
		b.Translate(delta)
	}
	if recursive {
		for _, sub := range c.composites {
			sub.Translate(delta, true)
		}
	}
}

// Rotate rotates every body in c by delta radians about point.
func (c *Composite) Rotate(delta float64, point Vector, recursive bool) {
	for _, b := range c.bodies {
		b.Rotate(delta, &point)
	}
	if recursive {
		for _, sub := range c.composites {
			sub.Rotate(delta, point, true)
		}
	}
}

// Scale scales every body in c about point.
func (c *Composite) Scale(scaleX, scaleY float64, point Vector, recursive bool) {
	for _, b := range c.bodies {
		b.Scale(scaleX, scaleY, &point)
	}
	if recursive {
		for _, sub := range c.composites {
			sub.Scale(scaleX, scaleY, point, true)
		}
	}
}

// Bounds returns the merged AABB of every body owned by c.
func (c *Composite) Bounds() Bounds {
	bodies := c.AllBodies()
	assert(len(bodies) > 0, "Composite.Bounds requires at least one body")
	bounds := bodies[0].Bounds
	for _, b := range bodies[1:] {
		bounds = bounds.Merge(b.Bounds)
	}
	return bounds
}

// Move re-parents body from its current composite in this tree to
// target, preserving the identity of the body itself.
func (c *Composite) Move(body *Body, target *Composite) {
	c.RemoveBody(body, true)
	target.AddBody(body)
}

// Rebase re-parents every child of other into c, leaving other empty.
func (c *Composite) Rebase(other *Composite) {
	for _, b := range other.bodies {
		c.AddBody(b)
	}
	for _, k := range other.constraints {
		c.AddConstraint(k)
	}
	for _, sub := range other.composites {
		sub.parent = nil
		c.AddComposite(sub)
	}
	other.Clear(false, false)
}

// GetBody finds a body by id among c's transitive children, or nil.
func (c *Composite) GetBody(id int64) *Body {
	for _, b := range c.AllBodies() {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// GetConstraint finds a constraint by id among c's transitive children, or
// nil.
func (c *Composite) GetConstraint(id int64) *Constraint {
	for _, k := range c.AllConstraints() {
		if k.ID == id {
			return k
		}
	}
	return nil
}

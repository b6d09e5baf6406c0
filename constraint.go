package rigid2d

import "math"

// Constraint is a generic distance/spring constraint between two points,
// each either a body-local anchor (if the corresponding body is set) or a
// fixed world-space point. At least one endpoint must be a body.
// Length==0 with Stiffness>=0.1 behaves as a pin; Stiffness<0.9
// draws (conceptually — the core does not render) as a spring.
type Constraint struct {
	ID    int64
	Label string

	BodyA, BodyB *Body
	PointA, PointB Vector

	Length          float64
	Stiffness       float64
	Damping         float64
	AngularStiffness float64
	AngleA, AngleB  float64

	// impulse is not read or written by the solver; warm starting goes
	// through each body's ConstraintImpulse instead (see
	// constraintPreSolveAll).
	impulse Vector

	// anchorAngleA/anchorAngleB hold each body's angle when the constraint
	// was created, so PointA/PointB (when body-local) can be rotated by the
	// body's total change in angle since then, so anchors stay attached to
	// spinning bodies.
	anchorAngleA, anchorAngleB float64
	initialized                bool
}

// ConstraintOptions is the explicit builder for constraint construction,
// in place of a free-form options object.
type ConstraintOptions struct {
	Label            string
	BodyA, BodyB     *Body
	PointA, PointB   Vector
	Length           float64 // 0 means "derive from current anchor distance"
	Stiffness        float64 // 0 means "derive a default"
	Damping          float64
	AngularStiffness float64
}

// NewConstraint builds a Constraint. At least one of BodyA/BodyB must be
// set. If Length is zero it is derived from the current world-space
// distance between the two anchors; if Stiffness is zero it defaults to 1
// when Length > 0, else 0.7.
func NewConstraint(ctx *Context, opts ConstraintOptions) (*Constraint, error) {
	if opts.BodyA == nil && opts.BodyB == nil {
		return nil, ErrNoConstraintEndpoint
	}

	c := &Constraint{
		ID:               ctx.NextID(),
		Label:            opts.Label,
		BodyA:            opts.BodyA,
		BodyB:            opts.BodyB,
		PointA:           opts.PointA,
		PointB:           opts.PointB,
		Damping:          opts.Damping,
		AngularStiffness: opts.AngularStiffness,
	}

	if c.BodyA != nil {
		c.anchorAngleA = c.BodyA.Angle
	}
	if c.BodyB != nil {
		c.anchorAngleB = c.BodyB.Angle
	}

	worldA := c.worldPointA()
	worldB := c.worldPointB()

	if opts.Length == 0 {
		c.Length = worldA.Distance(worldB)
	} else {
		c.Length = opts.Length
	}

	if opts.Stiffness == 0 {
		if c.Length > 0 {
			c.Stiffness = 1
		} else {
			c.Stiffness = 0.7
		}
	} else {
		c.Stiffness = opts.Stiffness
	}

	return c, nil
}

// IsPin reports whether the constraint behaves as a rigid pin: zero rest
// length and a stiffness of at least 0.1.
func (c *Constraint) IsPin() bool {
	return c.Length == 0 && c.Stiffness >= 0.1
}

func (c *Constraint) worldPointA() Vector {
	if c.BodyA != nil {
		return c.BodyA.Position.Add(c.PointA.RotateAngle(c.BodyA.Angle - c.anchorAngleA))
	}
	return c.PointA
}

func (c *Constraint) worldPointB() Vector {
	if c.BodyB != nil {
		return c.BodyB.Position.Add(c.PointB.RotateAngle(c.BodyB.Angle - c.anchorAngleB))
	}
	return c.PointB
}

// constraintPreSolveAll warm-starts every non-static body with a
// non-zero cached impulse.
func constraintPreSolveAll(bodies []*Body) {
	for _, b := range bodies {
		impulse := b.ConstraintImpulse
		if b.IsStatic || (impulse.X == 0 && impulse.Y == 0 && impulse.Angle == 0) {
			continue
		}
		b.Position.X += impulse.X
		b.Position.Y += impulse.Y
		b.Angle += impulse.Angle
	}
}

// constraintSolveAll solves every constraint in two passes: first any
// constraint with a static/fixed endpoint, then the rest — stabler for a
// chain with one pinned end.
func constraintSolveAll(constraints []*Constraint, delta float64) {
	ts := Clamp(delta/baseDelta, 0, 1)

	var fixedFirst, rest []*Constraint
	for _, c := range constraints {
		if (c.BodyA == nil || c.BodyA.IsStatic) || (c.BodyB == nil || c.BodyB.IsStatic) {
			fixedFirst = append(fixedFirst, c)
		} else {
			rest = append(rest, c)
		}
	}
	for _, c := range fixedFirst {
		c.solve(ts)
	}
	for _, c := range rest {
		c.solve(ts)
	}
}

func (c *Constraint) solve(ts float64) {
	pointAWorld := c.worldPointA()
	pointBWorld := c.worldPointB()

	delta := pointAWorld.Sub(pointBWorld)
	currentLength := math.Max(delta.Length(), 1e-6)

	difference := (currentLength - c.Length) / currentLength
	isRigid := c.Stiffness >= 1 || c.Length == 0

	var effectiveK float64
	if isRigid {
		effectiveK = c.Stiffness * ts
	} else {
		effectiveK = c.Stiffness * ts * ts
	}
	force := delta.Mult(difference * effectiveK)

	var massTotal, inertiaTotal float64
	if c.BodyA != nil {
		massTotal += c.BodyA.InverseMass
		inertiaTotal += c.BodyA.InverseInertia
	}
	if c.BodyB != nil {
		massTotal += c.BodyB.InverseMass
		inertiaTotal += c.BodyB.InverseInertia
	}
	resistance := massTotal + inertiaTotal
	if resistance == 0 {
		return
	}

	if c.Damping > 0 {
		normal := delta.Normalize()
		relVel := c.relativeVelocity()
		normalVel := normal.Dot(relVel)
		dampingForce := normal.Mult(c.Damping * normalVel)
		if c.BodyA != nil && !c.BodyA.IsStatic {
			share := c.BodyA.InverseMass / massTotal
			c.BodyA.positionPrev = c.BodyA.positionPrev.Sub(dampingForce.Mult(share))
		}
		if c.BodyB != nil && !c.BodyB.IsStatic {
			share := c.BodyB.InverseMass / massTotal
			c.BodyB.positionPrev = c.BodyB.positionPrev.Add(dampingForce.Mult(share))
		}
	}

	if c.BodyA != nil && !c.BodyA.IsStatic {
		share := c.BodyA.InverseMass / massTotal
		c.BodyA.Position = c.BodyA.Position.Sub(force.Mult(share))
		c.BodyA.ConstraintImpulse.X -= force.X * share
		c.BodyA.ConstraintImpulse.Y -= force.Y * share

		torque := c.PointA.Cross(force) / resistance * c.BodyA.InverseInertia * (1 - c.AngularStiffness)
		c.BodyA.Angle -= torque
		c.BodyA.ConstraintImpulse.Angle -= torque
	}
	if c.BodyB != nil && !c.BodyB.IsStatic {
		share := c.BodyB.InverseMass / massTotal
		c.BodyB.Position = c.BodyB.Position.Add(force.Mult(share))
		c.BodyB.ConstraintImpulse.X += force.X * share
		c.BodyB.ConstraintImpulse.Y += force.Y * share

		torque := c.PointB.Cross(force) / resistance * c.BodyB.InverseInertia * (1 - c.AngularStiffness)
		c.BodyB.Angle += torque
		c.BodyB.ConstraintImpulse.Angle += torque
	}
}

func (c *Constraint) relativeVelocity() Vector {
	var va, vb Vector
	if c.BodyA != nil {
		va = c.BodyA.Position.Sub(c.BodyA.positionPrev)
	}
	if c.BodyB != nil {
		vb = c.BodyB.Position.Sub(c.BodyB.positionPrev)
	}
	return va.Sub(vb)
}

// constraintPostSolveAll wakes any non-static body with a non-zero
// accumulated impulse, translates/rotates its vertex ring to match, and
// damps the cached impulse by 0.4 as the warm start for next step.
func constraintPostSolveAll(bodies []*Body) {
	for _, b := range bodies {
		impulse := b.ConstraintImpulse
		if b.IsStatic {
			continue
		}
		if impulse.X != 0 || impulse.Y != 0 {
			b.IsSleeping = false
			b.translateVertices(Vector{impulse.X, impulse.Y})
		}
		if impulse.Angle != 0 {
			b.IsSleeping = false
			b.rotateVerticesAbout(impulse.Angle, b.Position)
			b.Bounds = NewBounds(vertexVectors(b.Vertices))
		}
		if impulse.X != 0 || impulse.Y != 0 || impulse.Angle != 0 {
			b.Bounds = b.Bounds.Update(vertexVectors(b.Vertices), Vector{})
		}

		b.ConstraintImpulse.X *= 0.4
		b.ConstraintImpulse.Y *= 0.4
		b.ConstraintImpulse.Angle *= 0.4
	}
}

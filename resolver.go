package rigid2d

import "math"

// Resolver runs a two-pass Gauss-Seidel impulse solver: a position pass
// that pushes overlapping bodies apart directly (avoiding the energy gain
// a velocity-only correction would add), followed by a velocity pass that
// applies normal and friction impulses with restitution, warm-started from
// each contact's impulse carried over from the previous step. Each Solve*
// method performs exactly one iteration; the Engine calls it
// PositionIterations / VelocityIterations times per step.
type Resolver struct {
	PositionIterations int
	VelocityIterations int
}

func NewResolver() *Resolver {
	return &Resolver{PositionIterations: 6, VelocityIterations: 4}
}

// PreSolvePosition tallies how many active contacts touch each body this
// step, so SolvePosition can divide its correction budget fairly when a
// body is shared by more than one contact.
func (r *Resolver) PreSolvePosition(pairs []*Pair) {
	for _, p := range pairs {
		if !p.IsActive || p.IsSensor {
			continue
		}
		n := len(p.Contacts)
		p.BodyA.totalContacts += n
		p.BodyB.totalContacts += n
	}
}

// SolvePosition performs one position-correction sweep: first
// recomputing each pair's separation from the impulses already queued
// this step, then distributing a damped correction across every dynamic
// body proportional to its share of that pair's total contact load.
func (r *Resolver) SolvePosition(pairs []*Pair, delta, damping float64) {
	positionDampen := 0.9 * damping
	slopDampen := Clamp(delta/baseDelta, 0, 1)

	for _, p := range pairs {
		if !p.IsActive || p.IsSensor {
			continue
		}
		normal := p.Collision.Normal
		p.Separation = p.Collision.Depth - normal.Dot(p.BodyB.PositionImpulse.Sub(p.BodyA.PositionImpulse))
	}

	for _, p := range pairs {
		if !p.IsActive || p.IsSensor {
			continue
		}
		a, b := p.BodyA, p.BodyB
		normal := p.Collision.Normal

		impulse := p.Separation - p.SlopValue*slopDampen
		if a.IsStatic != b.IsStatic {
			impulse *= 2
		}

		if !a.IsStatic && a.totalContacts > 0 {
			share := positionDampen / float64(a.totalContacts)
			a.PositionImpulse = a.PositionImpulse.Add(normal.Mult(-impulse * share))
		}
		if !b.IsStatic && b.totalContacts > 0 {
			share := positionDampen / float64(b.totalContacts)
			b.PositionImpulse = b.PositionImpulse.Add(normal.Mult(impulse * share))
		}
	}
}

// PostSolvePosition applies the accumulated PositionImpulse of every body
// touched this step to its actual position and vertices, preserving
// velocity by carrying the same delta into positionPrev; the cached
// impulse is zeroed if it opposes the body's current velocity (correction
// complete) or else damped by 0.8 as the warm start for next step.
func (r *Resolver) PostSolvePosition(bodies []*Body) {
	for _, b := range bodies {
		impulse := b.PositionImpulse
		if impulse.X != 0 || impulse.Y != 0 {
			b.translateVertices(impulse)
			b.Position = b.Position.Add(impulse)
			b.positionPrev = b.positionPrev.Add(impulse)

			if impulse.Dot(b.Velocity) < 0 {
				b.PositionImpulse = Vector{}
			} else {
				b.PositionImpulse = impulse.Mult(0.8)
			}
		}
		b.totalContacts = 0
	}
}

// PreSolveVelocity warm-starts each contact by re-applying its carried
// normal/tangent impulse from the previous step before any new impulse is
// computed.
func (r *Resolver) PreSolveVelocity(pairs []*Pair) {
	for _, p := range pairs {
		if !p.IsActive || p.IsSensor || len(p.Contacts) == 0 {
			continue
		}
		normal := p.Collision.Normal
		tangent := p.Collision.Tangent
		a, b := p.BodyA, p.BodyB

		for _, c := range p.Contacts {
			if c.NormalImpulse == 0 && c.TangentImpulse == 0 {
				continue
			}
			impulse := normal.Mult(c.NormalImpulse).Add(tangent.Mult(c.TangentImpulse))
			applyContactImpulse(a, b, c.Vertex, impulse)
		}
	}
}

// SolveVelocity performs one Erin-Catto-style sequential-impulse pass:
// for each contact, derive relative velocity from the Verlet position
// history, compute a Coulomb-friction-limited tangent response and a
// restitution-aware normal response, accumulate each against the
// previous iteration's cached impulse (clamped so the normal impulse
// never pulls bodies together), and apply only the delta.
func (r *Resolver) SolveVelocity(pairs []*Pair, delta float64) {
	ts := delta / baseDelta
	ts3 := ts * ts * ts
	restingThresh := -2 * ts
	restingThreshTangent := math.Sqrt(6)
	muN := 5 * ts

	for _, p := range pairs {
		if !p.IsActive || p.IsSensor || len(p.Contacts) == 0 {
			continue
		}
		a, b := p.BodyA, p.BodyB
		normal := p.Collision.Normal
		tangent := p.Collision.Tangent
		contactCount := float64(len(p.Contacts))
		invMassTotal := a.InverseMass + b.InverseMass

		for _, c := range p.Contacts {
			relVel := relativeVelocityAt(a, b, c.Vertex)
			normalVel := relVel.Dot(normal)
			tangentVel := relVel.Dot(tangent)

			offsetA := c.Vertex.Sub(a.Position)
			offsetB := c.Vertex.Sub(b.Position)
			crossA := offsetA.Cross(normal)
			crossB := offsetB.Cross(normal)
			denom := invMassTotal + a.InverseInertia*crossA*crossA + b.InverseInertia*crossB*crossB
			if denom == 0 {
				continue
			}
			share := (1 / contactCount) / denom

			frictionLimit := math.Max(0, math.Min(p.Separation+normalVel, 1)) * (p.Friction * p.FrictionStatic * muN)

			var tangentResponse float64
			if math.Abs(tangentVel) > frictionLimit {
				mag := p.Friction * sign(tangentVel) * ts3
				tangentResponse = Clamp(mag, -math.Abs(tangentVel), math.Abs(tangentVel))
			} else {
				tangentResponse = tangentVel
			}

			rawNormal := (1 + p.Restitution) * normalVel * share
			rawTangent := tangentResponse * share

			var appliedNormal float64
			if normalVel < restingThresh {
				c.NormalImpulse = 0
				appliedNormal = rawNormal
			} else {
				prev := c.NormalImpulse
				c.NormalImpulse = math.Min(c.NormalImpulse+rawNormal, 0)
				appliedNormal = c.NormalImpulse - prev
			}

			var appliedTangent float64
			if math.Abs(tangentVel) > restingThreshTangent {
				c.TangentImpulse = 0
				appliedTangent = rawTangent
			} else {
				maxFriction := frictionLimit * share
				prev := c.TangentImpulse
				c.TangentImpulse = Clamp(c.TangentImpulse+rawTangent, -maxFriction, maxFriction)
				appliedTangent = c.TangentImpulse - prev
			}

			impulse := normal.Mult(appliedNormal).Add(tangent.Mult(appliedTangent))
			applyContactImpulse(a, b, c.Vertex, impulse)
		}
	}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// relativeVelocityAt derives each body's point velocity at contact straight
// from its Verlet position history rather than the cached Velocity field, so
// that an impulse applied mid-pass (via applyContactImpulse, which only
// touches positionPrev/anglePrev) is visible to the very next contact this
// same iteration and to the next velocity iteration.
func relativeVelocityAt(a, b *Body, contact Vector) Vector {
	return bodyPointVelocity(b, contact).Sub(bodyPointVelocity(a, contact))
}

func bodyPointVelocity(body *Body, point Vector) Vector {
	ratio := baseDelta / body.DeltaTime
	linear := body.Position.Sub(body.positionPrev).Mult(ratio)
	angular := (body.Angle - body.anglePrev) * ratio
	offset := point.Sub(body.Position)
	return linear.Add(Vector{-angular * offset.Y, angular * offset.X})
}

// applyContactImpulse applies impulse to b and its reaction -impulse to a,
// at world point contact, by adjusting positionPrev/anglePrev (the
// Verlet-style velocity representation) rather than Velocity directly, so
// the change is visible to next step's relative-velocity computation
// immediately. impulse is oriented along the pair's normal (A toward B);
// since velocity is derived as (Position-positionPrev), pushing a body's
// velocity forward along impulse means walking its positionPrev backward
// against it, and vice versa for the reaction on the other body.
func applyContactImpulse(a, b *Body, contact Vector, impulse Vector) {
	if a.InverseMass > 0 && !a.IsStatic && !a.IsSleeping {
		offset := contact.Sub(a.Position)
		a.positionPrev = a.positionPrev.Sub(impulse.Mult(a.InverseMass))
		a.anglePrev -= offset.Cross(impulse) * a.InverseInertia
	}
	if b.InverseMass > 0 && !b.IsStatic && !b.IsSleeping {
		offset := contact.Sub(b.Position)
		b.positionPrev = b.positionPrev.Add(impulse.Mult(b.InverseMass))
		b.anglePrev += offset.Cross(impulse) * b.InverseInertia
	}
}

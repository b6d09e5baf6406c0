package rigid2d

import (
	"math"
	"strconv"
)

// Contact is a single persistent contact point tracked across steps so
// the resolver can warm-start its normal/tangent impulses.
type Contact struct {
	Vertex      Vector
	NormalImpulse  float64
	TangentImpulse float64
}

// Pair is the persistent collision state between two bodies' colliding
// parts, keyed stably across steps regardless of discovery order.
// Re-running narrow phase on the same two bodies reuses and updates the
// same Pair rather than allocating a new one, which is what lets the
// resolver's warm start actually warm anything.
type Pair struct {
	ID       string
	BodyA, BodyB *Body
	Contacts []*Contact
	Collision Collision

	ActiveContacts int
	Separation     float64
	IsActive       bool
	IsSensor       bool
	TimeCreated    int64
	TimeUpdated    int64

	Restitution float64
	Friction    float64
	FrictionStatic float64
	SlopValue      float64

	confirmedActive bool
}

// pairID returns the stable, order-independent key for two body ids:
// the smaller id first, separated by ':', each in base 36 to keep the
// string short.
func pairID(idA, idB int64) string {
	if idA > idB {
		idA, idB = idB, idA
	}
	return strconv.FormatInt(idA, 36) + ":" + strconv.FormatInt(idB, 36)
}

func newPair(collision Collision, timestamp int64) *Pair {
	p := &Pair{
		ID:          pairID(collision.ParentA.ID, collision.ParentB.ID),
		BodyA:       collision.ParentA,
		BodyB:       collision.ParentB,
		TimeCreated: timestamp,
		TimeUpdated: timestamp,
		IsSensor:    collision.ParentA.IsSensor || collision.ParentB.IsSensor,
	}
	p.update(collision, timestamp)
	return p
}

// update refreshes a Pair from a fresh narrow-phase Collision, carrying
// forward each surviving contact's accumulated impulses by matching
// support points within a small tolerance.
func (p *Pair) update(collision Collision, timestamp int64) {
	previous := p.Contacts
	p.Contacts = make([]*Contact, 0, len(collision.SupportPoints))
	for _, sp := range collision.SupportPoints {
		var reused *Contact
		for _, old := range previous {
			if old.Vertex.Distance(sp) < 0.5 {
				reused = old
				break
			}
		}
		if reused != nil {
			reused.Vertex = sp
			p.Contacts = append(p.Contacts, reused)
		} else {
			p.Contacts = append(p.Contacts, &Contact{Vertex: sp})
		}
	}

	p.Collision = collision
	p.BodyA = collision.ParentA
	p.BodyB = collision.ParentB
	p.ActiveContacts = len(p.Contacts)
	p.Separation = collision.Depth
	p.IsActive = collision.Collided
	p.TimeUpdated = timestamp

	p.Restitution = math.Max(collision.ParentA.Restitution, collision.ParentB.Restitution)
	p.Friction = math.Min(collision.ParentA.Friction, collision.ParentB.Friction)
	p.FrictionStatic = math.Max(collision.ParentA.FrictionStatic, collision.ParentB.FrictionStatic)
	p.SlopValue = math.Max(collision.ParentA.Slop, collision.ParentB.Slop)
}

func (p *Pair) setActive(isActive bool, timestamp int64) {
	if isActive {
		p.TimeUpdated = timestamp
	}
	p.IsActive = isActive
}

package rigid2d

import "sync/atomic"

// RNG is a seeded linear-congruential generator used in place of a
// platform math.Rand, so that runs seeded identically replay identically
// regardless of which PRNG the host Go runtime ships.
//
//	state' = (state*9301 + 49297) mod 233280
type RNG struct {
	state uint32
}

func NewRNG(seed uint32) *RNG {
	return &RNG{state: seed}
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 {
	r.state = (r.state*9301 + 49297) % 233280
	return float64(r.state) / 233280
}

// Context owns every process-scoped mutable counter the simulation needs:
// body/shape identities, the collision category bitfield, collision
// groups, and the seeded PRNG. Isolating these behind a context object
// rather than package-level globals means two Engines in the same process
// never silently share (and corrupt) counters; each Engine created via
// NewEngine gets its own Context unless one is supplied explicitly through
// EngineOptions.
type Context struct {
	nextID   int64
	nextCat  uint64
	nextGrp  int32
	RNG      *RNG
}

// NewContext creates a Context with its own id/category/group counters and
// a PRNG seeded with seed.
func NewContext(seed uint32) *Context {
	return &Context{RNG: NewRNG(seed)}
}

// NextID returns a fresh monotonically increasing identity.
func (c *Context) NextID() int64 {
	return atomic.AddInt64(&c.nextID, 1) - 1
}

// NextCategory returns the next bit in a 32-bit collision category
// bitfield. Panics after 32 categories have been allocated from one
// Context, since a 33rd bit cannot be represented.
func (c *Context) NextCategory() uint32 {
	if c.nextCat == 0 {
		c.nextCat = 1
	}
	assert(c.nextCat <= 1<<31, "collision category bitfield exhausted")
	cat := uint32(c.nextCat)
	c.nextCat <<= 1
	return cat
}

// NextGroup returns a fresh signed group id. Positive ids collide only
// with themselves (useful for grouping a compound body's own parts so
// they never self-collide); noncolliding requests a negative id, which
// never collides with anything, including itself.
func (c *Context) NextGroup(noncolliding bool) int32 {
	c.nextGrp++
	if noncolliding {
		return -c.nextGrp
	}
	return c.nextGrp
}

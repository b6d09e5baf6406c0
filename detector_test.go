package rigid2d

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanCollideCategoryMask(t *testing.T) {
	ctx := NewContext(1)
	a, _ := NewBody(ctx, square(10), BodyOptions{Category: 0x0002, Mask: 0xFFFF})
	b, _ := NewBody(ctx, square(10), BodyOptions{Category: 0x0004, Mask: 0x0001})

	require.False(t, canCollide(a, b), "b's mask does not include a's category")
}

func TestCanCollideGroupOverridesMask(t *testing.T) {
	ctx := NewContext(1)
	a, _ := NewBody(ctx, square(10), BodyOptions{Category: 0x0001, Mask: 0x0000, Group: 5})
	b, _ := NewBody(ctx, square(10), BodyOptions{Category: 0x0002, Mask: 0x0000, Group: 5})

	require.True(t, canCollide(a, b), "a shared positive group forces collision regardless of mask")
}

func TestCanCollideNegativeGroupForcesNonCollision(t *testing.T) {
	ctx := NewContext(1)
	a, _ := NewBody(ctx, square(10), BodyOptions{Category: 0x0001, Mask: 0xFFFF, Group: -3})
	b, _ := NewBody(ctx, square(10), BodyOptions{Category: 0x0001, Mask: 0xFFFF, Group: -3})

	require.False(t, canCollide(a, b))
}

func TestDetectorCollisionsFindsOverlappingPair(t *testing.T) {
	ctx := NewContext(1)
	a, _ := NewBody(ctx, square(20), BodyOptions{})
	a.SetPosition(Vector{0, 0})
	b, _ := NewBody(ctx, square(20), BodyOptions{})
	b.SetPosition(Vector{30, 0})
	c, _ := NewBody(ctx, square(20), BodyOptions{})
	c.SetPosition(Vector{1000, 1000})

	d := NewDetector()
	d.SetBodies([]*Body{a, b, c})

	collisions := d.Collisions()
	require.Len(t, collisions, 1)
	require.True(t, collisions[0].Collided)
}

func TestDetectorSkipsTwoStaticBodies(t *testing.T) {
	ctx := NewContext(1)
	a, _ := NewBody(ctx, square(20), BodyOptions{IsStatic: true})
	a.SetPosition(Vector{0, 0})
	b, _ := NewBody(ctx, square(20), BodyOptions{IsStatic: true})
	b.SetPosition(Vector{10, 0})

	d := NewDetector()
	d.SetBodies([]*Body{a, b})

	require.Empty(t, d.Collisions(), "two static bodies never generate a collision candidate")
}

func TestDetectorSkipsSamePartsBody(t *testing.T) {
	ctx := NewContext(1)
	root, _ := NewBody(ctx, square(20), BodyOptions{})
	extra, _ := NewBody(ctx, square(20), BodyOptions{})
	extra.SetPosition(Vector{5, 0})
	root.SetParts([]*Body{root, extra}, false)

	d := NewDetector()
	d.SetBodies([]*Body{root})

	require.Empty(t, d.Collisions(), "parts of the same compound body never collide with each other")
}

func TestDetectorCollisionsDeterministicOrder(t *testing.T) {
	ctx := NewContext(1)
	a, _ := NewBody(ctx, square(20), BodyOptions{})
	a.SetPosition(Vector{0, 0})
	b, _ := NewBody(ctx, square(20), BodyOptions{})
	b.SetPosition(Vector{15, 0})
	e, _ := NewBody(ctx, square(20), BodyOptions{})
	e.SetPosition(Vector{-15, 0})

	d := NewDetector()
	d.SetBodies([]*Body{a, b, e})

	first := d.Collisions()
	second := d.Collisions()
	require.Equal(t, len(first), len(second))
	for i := range first {
		require.Equal(t, first[i].ParentA.ID, second[i].ParentA.ID)
		require.Equal(t, first[i].ParentB.ID, second[i].ParentB.ID)
	}
}

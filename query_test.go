package rigid2d

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueryPointHitsContainingBody(t *testing.T) {
	ctx := NewContext(1)
	a, _ := NewBody(ctx, square(20), BodyOptions{})
	a.SetPosition(Vector{0, 0})
	b, _ := NewBody(ctx, square(20), BodyOptions{})
	b.SetPosition(Vector{100, 0})

	hits := QueryPoint([]*Body{a, b}, Vector{5, 5})
	require.Len(t, hits, 1)
	require.Equal(t, a, hits[0])
}

func TestQueryRegionFindsOverlappingBounds(t *testing.T) {
	ctx := NewContext(1)
	a, _ := NewBody(ctx, square(20), BodyOptions{})
	a.SetPosition(Vector{0, 0})
	b, _ := NewBody(ctx, square(20), BodyOptions{})
	b.SetPosition(Vector{500, 0})

	region := Bounds{Min: Vector{-30, -30}, Max: Vector{30, 30}}
	hits := QueryRegion([]*Body{a, b}, region)
	require.Len(t, hits, 1)
	require.Equal(t, a, hits[0])
}

func TestQueryRaySortedByFraction(t *testing.T) {
	ctx := NewContext(1)
	near, _ := NewBody(ctx, square(10), BodyOptions{})
	near.SetPosition(Vector{50, 0})
	far, _ := NewBody(ctx, square(10), BodyOptions{})
	far.SetPosition(Vector{150, 0})

	hits := QueryRay([]*Body{far, near}, Vector{-100, 0}, Vector{300, 0})
	require.Len(t, hits, 2)
	require.Equal(t, near, hits[0].Body)
	require.Equal(t, far, hits[1].Body)
	require.Less(t, hits[0].Fraction, hits[1].Fraction)
}

func TestQueryRayMissesOffAxisBody(t *testing.T) {
	ctx := NewContext(1)
	a, _ := NewBody(ctx, square(10), BodyOptions{})
	a.SetPosition(Vector{0, 1000})

	hits := QueryRay([]*Body{a}, Vector{-100, 0}, Vector{100, 0})
	require.Empty(t, hits)
}

func TestQueryBodyPairsMatchesDetector(t *testing.T) {
	ctx := NewContext(1)
	a, _ := NewBody(ctx, square(20), BodyOptions{})
	a.SetPosition(Vector{0, 0})
	b, _ := NewBody(ctx, square(20), BodyOptions{})
	b.SetPosition(Vector{30, 0})
	c, _ := NewBody(ctx, square(20), BodyOptions{})
	c.SetPosition(Vector{1000, 1000})

	pairs := QueryBodyPairs([]*Body{a, b, c})
	require.Len(t, pairs, 1)
	require.True(t, pairs[0].Collided)
}

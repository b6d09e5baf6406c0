package rigid2d

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollidesOverlappingSquares(t *testing.T) {
	ctx := NewContext(1)
	a, _ := NewBody(ctx, square(20), BodyOptions{})
	a.SetPosition(Vector{0, 0})
	b, _ := NewBody(ctx, square(20), BodyOptions{})
	b.SetPosition(Vector{30, 0})

	col := Collides(a, b)
	require.True(t, col.Collided)
	require.InDelta(t, 10, col.Depth, 1e-9)
	require.InDelta(t, 1, col.Normal.X, 1e-9, "normal should point from A to B along +x")
	require.InDelta(t, 0, col.Normal.Y, 1e-9)
	require.NotEmpty(t, col.SupportPoints)
}

func TestCollidesSeparatedSquares(t *testing.T) {
	ctx := NewContext(1)
	a, _ := NewBody(ctx, square(20), BodyOptions{})
	a.SetPosition(Vector{0, 0})
	b, _ := NewBody(ctx, square(20), BodyOptions{})
	b.SetPosition(Vector{100, 0})

	col := Collides(a, b)
	require.False(t, col.Collided)
}

func TestCollidesSetsParentsToCompoundRoot(t *testing.T) {
	ctx := NewContext(1)
	root, _ := NewBody(ctx, square(20), BodyOptions{})
	extra, _ := NewBody(ctx, square(20), BodyOptions{})
	root.SetParts([]*Body{root, extra}, false)

	other, _ := NewBody(ctx, square(20), BodyOptions{})
	other.SetPosition(Vector{10, 0})

	col := Collides(extra, other)
	require.Equal(t, root, col.ParentA, "a compound part's collision parent must be the root (parts[0])")
	require.Equal(t, other, col.ParentB)
}

func TestOverlapAxesDetectsSeparatingAxis(t *testing.T) {
	axes := AxesFromVertices(square(10))
	verticesA := square(10)
	verticesB := []Vector{{100, -10}, {120, -10}, {120, 10}, {100, 10}}

	overlap, _, _ := overlapAxes(axes, verticesA, verticesB)
	require.LessOrEqual(t, overlap, 0.0)
}

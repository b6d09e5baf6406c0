package rigid2d

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestBody(t *testing.T, ctx *Context, pos Vector, opts BodyOptions) *Body {
	t.Helper()
	b, err := NewBody(ctx, square(20), opts)
	require.NoError(t, err)
	b.SetPosition(pos)
	return b
}

func TestNewBodyEmptyVertices(t *testing.T) {
	ctx := NewContext(1)
	_, err := NewBody(ctx, nil, BodyOptions{})
	require.ErrorIs(t, err, ErrEmptyVertices)
}

func TestBodySetPositionIdempotent(t *testing.T) {
	ctx := NewContext(1)
	a := newTestBody(t, ctx, Vector{0, 0}, BodyOptions{})
	b := newTestBody(t, ctx, Vector{0, 0}, BodyOptions{})

	a.SetPosition(Vector{5, 5})
	a.SetPosition(Vector{12, -3})

	b.SetPosition(Vector{12, -3})

	require.Equal(t, b.Position, a.Position)
	bv, av := vertexVectors(b.Vertices), vertexVectors(a.Vertices)
	require.Len(t, av, len(bv))
	for i := range bv {
		require.InDelta(t, bv[i].X, av[i].X, 1e-9)
		require.InDelta(t, bv[i].Y, av[i].Y, 1e-9)
	}
}

func TestBodyStaticHasZeroInverseMass(t *testing.T) {
	ctx := NewContext(1)
	b := newTestBody(t, ctx, Vector{0, 0}, BodyOptions{IsStatic: true})
	require.True(t, b.IsStatic)
	require.Zero(t, b.InverseMass)
	require.Zero(t, b.InverseInertia)
}

func TestBodySetStaticRestoresOriginal(t *testing.T) {
	ctx := NewContext(1)
	b := newTestBody(t, ctx, Vector{0, 0}, BodyOptions{})
	originalMass := b.Mass

	b.SetStatic(true)
	require.Zero(t, b.InverseMass)

	b.SetStatic(false)
	require.InDelta(t, originalMass, b.Mass, 1e-9)
	require.InDelta(t, 1/originalMass, b.InverseMass, 1e-9)
}

func TestBoundsContainsVerticesAfterIntegration(t *testing.T) {
	ctx := NewContext(1)
	b := newTestBody(t, ctx, Vector{0, 0}, BodyOptions{Velocity: Vector{3, -2}})
	for i := 0; i < 10; i++ {
		updateBody(b, baseDelta)
	}
	require.True(t, b.Bounds.ContainsVertices(vertexVectors(b.Vertices)))
}

func TestStaticBodyImmobileUnderIntegration(t *testing.T) {
	ctx := NewContext(1)
	b := newTestBody(t, ctx, Vector{10, 10}, BodyOptions{IsStatic: true})
	before := b.Position
	for i := 0; i < 50; i++ {
		if !b.IsStatic {
			updateBody(b, baseDelta)
		}
	}
	require.Equal(t, before, b.Position)
}

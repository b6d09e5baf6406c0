package rigid2d

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func square(half float64) []Vector {
	return []Vector{
		{-half, -half},
		{half, -half},
		{half, half},
		{-half, half},
	}
}

func TestVerticesAreaSquare(t *testing.T) {
	area := VerticesArea(square(10), false)
	require.InDelta(t, 400, area, 1e-9)
}

func TestVerticesCentreSquare(t *testing.T) {
	centre := VerticesCentre(square(10))
	require.InDelta(t, 0, centre.X, 1e-9)
	require.InDelta(t, 0, centre.Y, 1e-9)
}

func TestVerticesContains(t *testing.T) {
	verts := square(10)
	require.True(t, VerticesContains(verts, Vector{0, 0}))
	require.False(t, VerticesContains(verts, Vector{100, 100}))
}

func TestVerticesChamferIdentity(t *testing.T) {
	verts := square(10)
	out := VerticesChamfer(verts, 0, -1)
	require.Equal(t, verts, out)
}

func TestVerticesHullOfSquarePlusInteriorPoint(t *testing.T) {
	verts := append(square(10), Vector{0, 0})
	hull := VerticesHull(verts)
	require.Len(t, hull, 4)
}

func TestAxesFromVerticesDedup(t *testing.T) {
	axes := AxesFromVertices(square(10))
	require.Len(t, axes, 4, "a square has four unique edge normal directions")
}

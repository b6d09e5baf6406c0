// Package scenes holds the canonical demo/test fixtures (S1-S6), built
// only on the root rigid2d package. cmd/rigid2d runs them as demos; the
// root package's engine_test.go mirrors a simplified subset of them
// inline for scenario coverage.
package scenes

import (
	"math"

	"github.com/brineforge/rigid2d"
)

// Scene bundles a ready-to-step Engine with the bodies/constraints a caller
// (a test, or the CLI's step-summary printer) might want to inspect by name.
type Scene struct {
	Name        string
	Engine      *rigid2d.Engine
	Bodies      map[string]*rigid2d.Body
	Constraints map[string]*rigid2d.Constraint
}

// Builder constructs a fresh Scene. Each call returns an independent Engine
// and Context so running the same scene twice never shares mutable state.
type Builder func() Scene

// All returns every canonical scene builder, in S1-S6 order.
func All() []Builder {
	return []Builder{
		TwoBoxCollision,
		BoxStack,
		Pendulum,
		NewtonsCradle,
		RayCastField,
		SleepingBox,
	}
}

func square(half float64) []rigid2d.Vector {
	return []rigid2d.Vector{
		{X: -half, Y: -half},
		{X: half, Y: -half},
		{X: half, Y: half},
		{X: -half, Y: half},
	}
}

// circle approximates a disc of the given radius as a regular polygon —
// this engine's SAT narrow phase only ever tests vertex rings, so a "circle"
// body is a many-sided polygon (the scenes leave CircleRadius unset).
func circle(radius float64, segments int) []rigid2d.Vector {
	verts := make([]rigid2d.Vector, segments)
	for i := 0; i < segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		verts[i] = rigid2d.Vector{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
	}
	return verts
}

func mustBody(ctx *rigid2d.Context, verts []rigid2d.Vector, opts rigid2d.BodyOptions) *rigid2d.Body {
	b, err := rigid2d.NewBody(ctx, verts, opts)
	if err != nil {
		panic(err)
	}
	return b
}

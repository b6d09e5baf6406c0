package scenes

import "github.com/brineforge/rigid2d"

// NewtonsCradle is the canonical scenario S4: 5 equal circles (r=20,
// restitution=1, friction=0, frictionAir=0, slop=1) suspended side by side
// by rigid constraints from their own fixed anchor points, touching at
// rest. The leftmost is given horizontal velocity 5 so momentum transfers
// down the line.
func NewtonsCradle() Scene {
	e := rigid2d.NewEngine(rigid2d.EngineOptions{})

	const count = 5
	const radius = 20
	const spacing = radius * 2

	bodies := make(map[string]*rigid2d.Body, count)
	for i := 0; i < count; i++ {
		ball := mustBody(e.Context, circle(radius, 16), rigid2d.BodyOptions{
			Friction:    0,
			FrictionAir: 0,
			Restitution: 1,
			Slop:        1,
		})
		// BodyOptions treats zero as "use the default", so zero friction is
		// set on the body directly.
		ball.Friction = 0
		ball.FrictionAir = 0
		x := float64(i) * spacing
		ball.SetPosition(rigid2d.Vector{X: x, Y: 300})

		anchor, err := rigid2d.NewConstraint(e.Context, rigid2d.ConstraintOptions{
			BodyB:     ball,
			PointA:    rigid2d.Vector{X: x, Y: 0},
			Length:    300,
			Stiffness: 1,
		})
		if err != nil {
			panic(err)
		}
		e.World.AddBody(ball)
		e.World.AddConstraint(anchor)
		bodies[cradleLabel(i)] = ball
	}

	bodies[cradleLabel(0)].SetVelocity(rigid2d.Vector{X: 5, Y: 0})

	return Scene{Name: "newtons-cradle", Engine: e, Bodies: bodies}
}

func cradleLabel(i int) string {
	return "ball" + string(rune('0'+i))
}

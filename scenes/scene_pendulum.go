package scenes

import "github.com/brineforge/rigid2d"

// Pendulum is the canonical scenario S3: a single bob suspended from a
// fixed world point by a rigid (stiffness 1) constraint, swinging under
// gravity.
func Pendulum() Scene {
	e := rigid2d.NewEngine(rigid2d.EngineOptions{})

	bob := mustBody(e.Context, circle(20, 16), rigid2d.BodyOptions{Label: "bob", FrictionAir: 0.001})
	bob.SetPosition(rigid2d.Vector{X: 150, Y: 0})
	e.World.AddBody(bob)

	constraint, err := rigid2d.NewConstraint(e.Context, rigid2d.ConstraintOptions{
		Label:     "rod",
		BodyB:     bob,
		PointA:    rigid2d.Vector{X: 0, Y: 0},
		Length:    150,
		Stiffness: 1,
	})
	if err != nil {
		panic(err)
	}
	e.World.AddConstraint(constraint)

	return Scene{
		Name:        "pendulum",
		Engine:      e,
		Bodies:      map[string]*rigid2d.Body{"bob": bob},
		Constraints: map[string]*rigid2d.Constraint{"rod": constraint},
	}
}

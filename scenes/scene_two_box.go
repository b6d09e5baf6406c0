package scenes

import "github.com/brineforge/rigid2d"

// TwoBoxCollision is the canonical scenario S1: two boxes overlapping
// head-on, no gravity, separating under the resolver alone.
func TwoBoxCollision() Scene {
	e := rigid2d.NewEngine(rigid2d.EngineOptions{Gravity: &rigid2d.Gravity{}})

	left := mustBody(e.Context, square(25), rigid2d.BodyOptions{Label: "left", Restitution: 0.2})
	left.SetPosition(rigid2d.Vector{X: 0, Y: 0})

	right := mustBody(e.Context, square(25), rigid2d.BodyOptions{Label: "right", Restitution: 0.2})
	right.SetPosition(rigid2d.Vector{X: 40, Y: 0})

	e.World.AddBody(left)
	e.World.AddBody(right)

	return Scene{
		Name:   "two-box-collision",
		Engine: e,
		Bodies: map[string]*rigid2d.Body{"left": left, "right": right},
	}
}

package scenes

import "github.com/brineforge/rigid2d"

// SleepingBox is the canonical scenario S6: a single box resting just
// above a static floor, with sleeping enabled, that should settle and
// fall asleep within a bounded number of steps.
func SleepingBox() Scene {
	e := rigid2d.NewEngine(rigid2d.EngineOptions{EnableSleeping: true})

	floor := mustBody(e.Context, square(1000), rigid2d.BodyOptions{Label: "floor", IsStatic: true})
	floor.SetPosition(rigid2d.Vector{X: 0, Y: 1000})
	e.World.AddBody(floor)

	box := mustBody(e.Context, square(20), rigid2d.BodyOptions{
		Label:          "box",
		Friction:       0.4,
		SleepThreshold: 60,
	})
	box.SetPosition(rigid2d.Vector{X: 0, Y: -22})
	e.World.AddBody(box)

	return Scene{Name: "sleeping-box", Engine: e, Bodies: map[string]*rigid2d.Body{"floor": floor, "box": box}}
}

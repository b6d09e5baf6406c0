package scenes

import "github.com/brineforge/rigid2d"

// BoxStack is the canonical scenario S2: a stack of 5 40x40 boxes
// dropped onto a static floor under gravity.
func BoxStack() Scene {
	e := rigid2d.NewEngine(rigid2d.EngineOptions{})

	floor := mustBody(e.Context, square(1000), rigid2d.BodyOptions{Label: "floor", IsStatic: true})
	floor.SetPosition(rigid2d.Vector{X: 0, Y: 1000})
	e.World.AddBody(floor)

	bodies := map[string]*rigid2d.Body{"floor": floor}
	for i := 0; i < 5; i++ {
		box := mustBody(e.Context, square(20), rigid2d.BodyOptions{Friction: 0.4})
		box.SetPosition(rigid2d.Vector{X: 0, Y: -50 - float64(i)*41})
		e.World.AddBody(box)
		bodies[boxLabel(i)] = box
	}

	return Scene{Name: "box-stack", Engine: e, Bodies: bodies}
}

func boxLabel(i int) string {
	return "box" + string(rune('0'+i))
}

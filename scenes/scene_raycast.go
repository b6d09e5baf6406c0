package scenes

import "github.com/brineforge/rigid2d"

// RayCastField is the canonical scenario S5: a row of static boxes a
// horizontal ray can be cast through via rigid2d.QueryRay.
func RayCastField() Scene {
	e := rigid2d.NewEngine(rigid2d.EngineOptions{})

	bodies := make(map[string]*rigid2d.Body, 3)
	for i, x := range []float64{0, 200, 500} {
		box := mustBody(e.Context, square(20), rigid2d.BodyOptions{IsStatic: true})
		box.SetPosition(rigid2d.Vector{X: x, Y: 0})
		e.World.AddBody(box)
		bodies[rayLabel(i)] = box
	}

	return Scene{Name: "ray-cast-field", Engine: e, Bodies: bodies}
}

func rayLabel(i int) string {
	return "box" + string(rune('0'+i))
}

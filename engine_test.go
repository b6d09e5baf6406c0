package rigid2d

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestEngineTwoBoxCollisionSeparates is the canonical S1 scenario: two
// boxes overlapping head-on should separate (or come to rest without
// interpenetrating) after enough steps, and never produce a NaN position.
func TestEngineTwoBoxCollisionSeparates(t *testing.T) {
	e := NewEngine(EngineOptions{Gravity: &Gravity{}})

	ground, _ := NewBody(e.Context, square(500), BodyOptions{IsStatic: true})
	ground.SetPosition(Vector{0, 600})
	a, _ := NewBody(e.Context, square(25), BodyOptions{Restitution: 0.2})
	a.SetPosition(Vector{0, 0})
	b, _ := NewBody(e.Context, square(25), BodyOptions{Restitution: 0.2})
	b.SetPosition(Vector{40, 0})

	e.World.AddBody(ground)
	e.World.AddBody(a)
	e.World.AddBody(b)

	for i := 0; i < 120; i++ {
		e.Update(baseDelta)
	}

	require.False(t, isNaN(a.Position.X) || isNaN(a.Position.Y))
	require.False(t, isNaN(b.Position.X) || isNaN(b.Position.Y))

	col := Collides(a, b)
	if col.Collided {
		require.Less(t, col.Depth, 2.0, "residual interpenetration should have been resolved away")
	}
}

// TestEngineStackOfBoxesSettlesOnGround is the S2 scenario: a stack of 5
// 40x40 boxes dropped onto a static floor should come to rest stacked
// above the floor, none of them falling through.
func TestEngineStackOfBoxesSettlesOnGround(t *testing.T) {
	e := NewEngine(EngineOptions{})

	ground, _ := NewBody(e.Context, square(1000), BodyOptions{IsStatic: true})
	ground.SetPosition(Vector{0, 1000})
	e.World.AddBody(ground)

	boxes := make([]*Body, 5)
	for i := range boxes {
		box, _ := NewBody(e.Context, square(20), BodyOptions{Friction: 0.4})
		box.SetPosition(Vector{0, -50 - float64(i)*41})
		boxes[i] = box
		e.World.AddBody(box)
	}

	for i := 0; i < 300; i++ {
		e.Update(baseDelta)
	}

	floorTop := ground.Position.Y - 1000
	for i, box := range boxes {
		require.Falsef(t, isNaN(box.Position.X) || isNaN(box.Position.Y), "box %d diverged", i)
		require.LessOrEqualf(t, box.Position.Y, floorTop+1, "box %d should not fall through the floor", i)
	}
}

// TestEngineSleepingConvergence is the S6 scenario: a settled box with
// sleeping enabled should eventually be marked asleep and stop moving.
func TestEngineSleepingConvergence(t *testing.T) {
	e := NewEngine(EngineOptions{EnableSleeping: true})

	ground, _ := NewBody(e.Context, square(1000), BodyOptions{IsStatic: true})
	ground.SetPosition(Vector{0, 1000})
	e.World.AddBody(ground)

	box, _ := NewBody(e.Context, square(20), BodyOptions{Friction: 0.4, SleepThreshold: 60})
	box.SetPosition(Vector{0, -22})
	e.World.AddBody(box)

	asleep := false
	for i := 0; i < 600; i++ {
		e.Update(baseDelta)
		if box.IsSleeping {
			asleep = true
			break
		}
	}

	require.True(t, asleep, "a box resting on the floor should eventually fall asleep")
}

// TestEngineQueryRayAfterSettling is the S5 scenario: a ray cast through a
// settled scene should hit the bodies it physically crosses.
func TestEngineQueryRayAfterSettling(t *testing.T) {
	e := NewEngine(EngineOptions{})

	a, _ := NewBody(e.Context, square(20), BodyOptions{IsStatic: true})
	a.SetPosition(Vector{0, 0})
	b, _ := NewBody(e.Context, square(20), BodyOptions{IsStatic: true})
	b.SetPosition(Vector{200, 0})
	e.World.AddBody(a)
	e.World.AddBody(b)

	e.Update(baseDelta)

	hits := QueryRay(e.World.AllBodies(), Vector{-500, 0}, Vector{500, 0})
	require.Len(t, hits, 2)
	require.Equal(t, a, hits[0].Body)
	require.Equal(t, b, hits[1].Body)
}

func TestEngineEventsFireInOrder(t *testing.T) {
	e := NewEngine(EngineOptions{})
	var order []EventName
	e.On(EventBeforeUpdate, func(ev Event) { order = append(order, ev.Name) })
	e.On(EventBeforeSolve, func(ev Event) { order = append(order, ev.Name) })
	e.On(EventAfterUpdate, func(ev Event) { order = append(order, ev.Name) })

	a, _ := NewBody(e.Context, square(10), BodyOptions{})
	e.World.AddBody(a)

	e.Update(baseDelta)

	require.Equal(t, []EventName{EventBeforeUpdate, EventBeforeSolve, EventAfterUpdate}, order)
}

func TestEngineClearResetsWorldButKeepsStatic(t *testing.T) {
	e := NewEngine(EngineOptions{})
	static, _ := NewBody(e.Context, square(10), BodyOptions{IsStatic: true})
	dynamic, _ := NewBody(e.Context, square(10), BodyOptions{})
	e.World.AddBody(static)
	e.World.AddBody(dynamic)

	e.Clear(true)

	bodies := e.World.AllBodies()
	require.Len(t, bodies, 1)
	require.True(t, bodies[0].IsStatic)
}

func isNaN(f float64) bool {
	return f != f
}

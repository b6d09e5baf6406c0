package rigid2d

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSleepingMotionFormulaIsBiasedEMA(t *testing.T) {
	ctx := NewContext(1)
	b, _ := NewBody(ctx, square(10), BodyOptions{})
	b.Motion = 1.0
	b.Speed = 0
	b.AngularSpeed = 0

	var emitter Emitter
	s := NewSleeping()
	s.Update([]*Body{b}, baseDelta, &emitter)

	want := 0.9*minF(1.0, 0) + 0.1*maxF(1.0, 0)
	require.InDelta(t, want, b.Motion, 1e-9)
}

func TestSleepingBodyFallsAsleepAfterCounterCrossesThreshold(t *testing.T) {
	ctx := NewContext(1)
	b, _ := NewBody(ctx, square(10), BodyOptions{})
	b.Motion = 0
	b.Speed = 0
	b.AngularSpeed = 0
	b.SleepThreshold = 10

	var emitter Emitter
	var gotSleepStart bool
	emitter.On(EventSleepStart, func(ev Event) { gotSleepStart = true })

	s := NewSleeping()
	for i := 0; i < 20; i++ {
		s.Update([]*Body{b}, baseDelta, &emitter)
		if b.IsSleeping {
			break
		}
	}

	require.True(t, b.IsSleeping)
	require.True(t, gotSleepStart)
	require.Zero(t, b.Velocity.X)
	require.Zero(t, b.Velocity.Y)
}

func TestSleepingForceWakesBody(t *testing.T) {
	ctx := NewContext(1)
	b, _ := NewBody(ctx, square(10), BodyOptions{})
	b.IsSleeping = true

	var emitter Emitter
	var gotSleepEnd bool
	emitter.On(EventSleepEnd, func(ev Event) { gotSleepEnd = true })

	b.Force = Vector{1, 0}

	s := NewSleeping()
	s.Update([]*Body{b}, baseDelta, &emitter)

	require.False(t, b.IsSleeping)
	require.True(t, gotSleepEnd)
}

func TestSleepingStaticBodiesAreSkipped(t *testing.T) {
	ctx := NewContext(1)
	b, _ := NewBody(ctx, square(10), BodyOptions{IsStatic: true})

	var emitter Emitter
	s := NewSleeping()
	s.Update([]*Body{b}, baseDelta, &emitter)

	require.False(t, b.IsSleeping)
	require.Zero(t, b.Motion)
}

func TestSleepingAfterCollisionsWakesSleepyBodyWhenPartnerIsMoving(t *testing.T) {
	ctx := NewContext(1)
	awake, _ := NewBody(ctx, square(10), BodyOptions{})
	awake.SetPosition(Vector{0, 0})
	awake.Motion = 1.0

	sleepy, _ := NewBody(ctx, square(10), BodyOptions{})
	sleepy.SetPosition(Vector{15, 0})
	sleepy.IsSleeping = true

	col := Collides(awake, sleepy)
	require.True(t, col.Collided)
	pair := newPair(col, 0)

	var emitter Emitter
	var gotSleepEnd bool
	emitter.On(EventSleepEnd, func(ev Event) { gotSleepEnd = true })

	s := NewSleeping()
	s.AfterCollisions([]*Pair{pair}, &emitter)

	require.False(t, sleepy.IsSleeping)
	require.True(t, gotSleepEnd)
}

func TestSleepingAfterCollisionsLeavesSleepyBodyAsleepWhenPartnerIsQuiet(t *testing.T) {
	ctx := NewContext(1)
	quiet, _ := NewBody(ctx, square(10), BodyOptions{})
	quiet.SetPosition(Vector{0, 0})
	quiet.Motion = 0

	sleepy, _ := NewBody(ctx, square(10), BodyOptions{})
	sleepy.SetPosition(Vector{15, 0})
	sleepy.IsSleeping = true

	col := Collides(quiet, sleepy)
	require.True(t, col.Collided)
	pair := newPair(col, 0)

	var emitter Emitter
	s := NewSleeping()
	s.AfterCollisions([]*Pair{pair}, &emitter)

	require.True(t, sleepy.IsSleeping)
}

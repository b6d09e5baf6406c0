package rigid2d

// Sleeping implements a motion-EMA sleeping policy: a body whose combined
// linear+angular motion stays below
// 0.08 accumulates a sleep counter until it crosses sleepThreshold/ts, at
// which point it is put to sleep (zero velocity, skipped by integration
// and the solver) until a non-zero applied force, a collision with a
// moving body, or a constraint impulse wakes it.
type Sleeping struct{}

func NewSleeping() *Sleeping {
	return &Sleeping{}
}

const motionSleepThreshold = 0.08

// Update advances every non-static body's motion EMA and sleep counter,
// scaled by ts = delta/baseDelta.
func (s *Sleeping) Update(bodies []*Body, delta float64, emitter *Emitter) {
	ts := delta / baseDelta

	for _, body := range bodies {
		if body.IsStatic {
			continue
		}

		if body.Force.X != 0 || body.Force.Y != 0 {
			s.set(body, false, emitter)
		}

		newMotion := body.Speed*body.Speed + body.AngularSpeed*body.AngularSpeed
		body.Motion = 0.9*minF(body.Motion, newMotion) + 0.1*maxF(body.Motion, newMotion)

		if body.SleepThreshold > 0 && body.Motion < motionSleepThreshold {
			body.SleepCounter++
			if body.SleepCounter >= body.SleepThreshold/ts {
				s.set(body, true, emitter)
			}
		} else if body.SleepCounter > 0 {
			body.SleepCounter--
			if body.SleepCounter < 0 {
				body.SleepCounter = 0
			}
		}
	}
}

// AfterCollisions wakes the sleeping half of any active pair where
// exactly one body sleeps and neither is static, provided the awake
// body's own motion exceeds the sleep threshold.
func (s *Sleeping) AfterCollisions(pairs []*Pair, emitter *Emitter) {
	for _, p := range pairs {
		if !p.IsActive {
			continue
		}
		a, b := p.BodyA, p.BodyB
		if a.IsStatic || b.IsStatic {
			continue
		}
		if a.IsSleeping == b.IsSleeping {
			continue
		}

		sleepy, awake := a, b
		if b.IsSleeping {
			sleepy, awake = b, a
		}
		if awake.Motion > motionSleepThreshold {
			s.set(sleepy, false, emitter)
		}
	}
}

func (s *Sleeping) set(body *Body, sleeping bool, emitter *Emitter) {
	wasSleeping := body.IsSleeping
	body.IsSleeping = sleeping

	if sleeping {
		body.SleepCounter = body.SleepThreshold
		body.PositionImpulse = Vector{}
		body.positionPrev = body.Position
		body.anglePrev = body.Angle
		body.Velocity = Vector{}
		body.AngularVelocity = 0
		body.Speed = 0
		body.AngularSpeed = 0
		if !wasSleeping && emitter != nil {
			emitter.Emit(Event{Name: EventSleepStart, Bodies: []*Body{body}})
		}
	} else {
		body.SleepCounter = 0
		if wasSleeping && emitter != nil {
			emitter.Emit(Event{Name: EventSleepEnd, Bodies: []*Body{body}})
		}
	}
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

package rigid2d

// Gravity is the uniform acceleration field applied to every non-static,
// non-sleeping body each step, scaled by Scale.
type Gravity struct {
	X, Y, Scale float64
}

// DefaultGravity matches the reference scene authoring convention: 1g
// downward, scaled by 0.001 so a body's Force accumulator stays in the
// same numeric range as contact impulses.
func DefaultGravity() Gravity {
	return Gravity{X: 0, Y: 1, Scale: 0.001}
}

// Timing tracks the engine's notion of elapsed simulation time and the
// last step's wall-clock cost.
type Timing struct {
	Timestamp         float64
	TimeScale         float64
	LastDelta         float64
	LastElapsed       float64
	LastUpdatesPerFrame float64
}

// EngineOptions configures a new Engine. A nil Context or Gravity falls
// back to sensible defaults.
type EngineOptions struct {
	Context              *Context
	Gravity              *Gravity
	Seed                 uint32
	PositionIterations   int
	VelocityIterations   int
	ConstraintIterations int
	EnableSleeping       bool
	TimeScale            float64
	Logger               Logger
}

// Engine orchestrates one fixed-timestep simulation step end to end:
// sleeping pre-check, gravity and integration, constraint solving,
// broad+narrow phase collision, position and velocity resolution, and a
// second constraint pass — the top-level pipeline every other module
// feeds into.
type Engine struct {
	Emitter

	World   *Composite
	Context *Context
	Gravity Gravity
	Timing  Timing

	detector *Detector
	pairs    *Pairs
	resolver *Resolver
	sleeping *Sleeping

	constraintIterations int
	enableSleeping       bool

	logger Logger
}

// NewEngine constructs an Engine with an empty root World composite.
func NewEngine(opts EngineOptions) *Engine {
	ctx := opts.Context
	if ctx == nil {
		ctx = NewContext(opts.Seed)
	}
	gravity := DefaultGravity()
	if opts.Gravity != nil {
		gravity = *opts.Gravity
	}

	resolver := NewResolver()
	if opts.PositionIterations > 0 {
		resolver.PositionIterations = opts.PositionIterations
	}
	if opts.VelocityIterations > 0 {
		resolver.VelocityIterations = opts.VelocityIterations
	}
	constraintIterations := opts.ConstraintIterations
	if constraintIterations == 0 {
		constraintIterations = 2
	}
	timeScale := opts.TimeScale
	if timeScale == 0 {
		timeScale = 1
	}

	return &Engine{
		World:                NewComposite("World"),
		Context:              ctx,
		Gravity:              gravity,
		detector:             NewDetector(),
		pairs:                NewPairs(),
		resolver:             resolver,
		sleeping:             NewSleeping(),
		constraintIterations: constraintIterations,
		enableSleeping:       opts.EnableSleeping,
		logger:               opts.Logger,
		Timing:               Timing{TimeScale: timeScale},
	}
}

// Update advances the simulation by delta milliseconds, running the full
// step pipeline in order: integrate, solve constraints, detect collisions,
// resolve position, solve constraints again, then resolve velocity.
func (e *Engine) Update(delta float64) {
	if delta <= 0 {
		delta = baseDelta
	}
	delta *= e.Timing.TimeScale
	e.Timing.Timestamp += delta
	e.Timing.LastDelta = delta

	e.Emit(Event{Name: EventBeforeUpdate, Source: e})

	allBodies := e.World.AllBodies()
	allConstraints := e.World.AllConstraints()
	if e.World.IsModified() {
		e.detector.SetBodies(allBodies)
		e.World.ClearModified()
	}

	if e.enableSleeping {
		e.sleeping.Update(allBodies, delta, &e.Emitter)
	}

	for _, body := range allBodies {
		if body.IsStatic || body.IsSleeping {
			continue
		}
		body.ApplyForce(body.Position, Vector{
			X: e.Gravity.X * e.Gravity.Scale * body.Mass,
			Y: e.Gravity.Y * e.Gravity.Scale * body.Mass,
		})
		updateBody(body, delta)
	}

	e.Emit(Event{Name: EventBeforeSolve, Source: e})

	e.runConstraintPass(allBodies, allConstraints, delta)

	collisions := e.detector.Collisions()
	e.pairs.Update(collisions, int64(e.Timing.Timestamp))

	if e.enableSleeping {
		e.sleeping.AfterCollisions(e.pairs.All(), &e.Emitter)
	}

	if len(e.pairs.Start) > 0 {
		e.Emit(Event{Name: EventCollisionStart, Pairs: e.pairs.Start, Source: e})
	}

	active := activePairs(e.pairs)

	positionDamping := Clamp(20/float64(e.resolver.PositionIterations), 0, 1)
	e.resolver.PreSolvePosition(active)
	for i := 0; i < e.resolver.PositionIterations; i++ {
		e.resolver.SolvePosition(active, delta, positionDamping)
	}
	e.resolver.PostSolvePosition(allBodies)

	e.runConstraintPass(allBodies, allConstraints, delta)

	e.resolver.PreSolveVelocity(active)
	for i := 0; i < e.resolver.VelocityIterations; i++ {
		e.resolver.SolveVelocity(active, delta)
	}

	for _, body := range allBodies {
		if body.IsStatic || body.IsSleeping {
			continue
		}
		updateVelocities(body)
	}

	if len(e.pairs.Active) > 0 {
		e.Emit(Event{Name: EventCollisionActive, Pairs: e.pairs.Active, Source: e})
	}
	if len(e.pairs.End) > 0 {
		e.Emit(Event{Name: EventCollisionEnd, Pairs: e.pairs.End, Source: e})
	}

	for _, body := range allBodies {
		body.Force = Vector{}
		body.Torque = 0
	}

	e.Emit(Event{Name: EventAfterUpdate, Source: e})
}

func (e *Engine) runConstraintPass(bodies []*Body, constraints []*Constraint, delta float64) {
	constraintPreSolveAll(bodies)
	for i := 0; i < e.constraintIterations; i++ {
		constraintSolveAll(constraints, delta)
	}
	constraintPostSolveAll(bodies)
}

func activePairs(pairs *Pairs) []*Pair {
	all := pairs.All()
	out := make([]*Pair, 0, len(all))
	for _, p := range all {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out
}

// Clear resets the engine's World, pair registry, and timing to a fresh
// state while keeping Context (and therefore id/category/group
// allocation) intact.
func (e *Engine) Clear(keepStatic bool) {
	e.World.Clear(keepStatic, true)
	e.pairs.Clear()
	timeScale := e.Timing.TimeScale
	e.Timing = Timing{TimeScale: timeScale}
}

// Merge absorbs composite's bodies, constraints, and sub-composites into
// e.World, for loading an additional scene fragment into a running
// engine.
func (e *Engine) Merge(composite *Composite) {
	e.World.Rebase(composite)
}

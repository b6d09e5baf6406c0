package rigid2d

import "math"

// baseDelta is the reference timestep (60 Hz) every friction/restitution
// formula in this package is scaled against, so that a scene authored at
// 60 Hz behaves the same when stepped at any other fixed rate.
const baseDelta = 1000.0 / 60.0

// ConstraintImpulseAccumulator is the per-axis impulse a constraint has
// applied to a body this step, used to warm-start the next step's
// constraint solve.
type ConstraintImpulseAccumulator struct {
	X, Y, Angle float64
}

// originalAttributes snapshots the physical attributes a body had just
// before it was made static, so SetStatic(false) can restore them.
type originalAttributes struct {
	restitution    float64
	friction       float64
	mass           float64
	inverseMass    float64
	inertia        float64
	inverseInertia float64
	density        float64
}

// Body is the engine's primary entity: a convex rigid body, or the root of
// a compound body whose Parts hold additional convex sub-bodies.
type Body struct {
	ID    int64
	Label string

	ctx *Context

	// Geometry (world space: the Verlet integrator advances position/angle
	// by moving the vertex ring directly, rather than keeping a body-local
	// ring plus a world transform).
	Vertices     []Vertex
	Axes         []Vector
	Bounds       Bounds
	CircleRadius float64 // 0 means "not a circle"

	// Pose.
	Position     Vector
	Angle        float64
	positionPrev Vector
	anglePrev    float64

	// Kinematics.
	Velocity        Vector
	AngularVelocity float64
	Speed           float64
	AngularSpeed    float64

	// Accumulators.
	Force             Vector
	Torque            float64
	PositionImpulse   Vector
	ConstraintImpulse ConstraintImpulseAccumulator

	// Physical attributes.
	Mass           float64
	InverseMass    float64
	Inertia        float64
	InverseInertia float64
	Density        float64
	Area           float64
	Restitution    float64
	Friction       float64
	FrictionStatic float64
	FrictionAir    float64
	Slop           float64
	TimeScale      float64
	DeltaTime      float64

	// Flags.
	IsStatic       bool
	IsSensor       bool
	IsSleeping     bool
	SleepCounter   float64
	SleepThreshold float64
	Motion         float64

	// Collision filtering.
	Category uint32
	Mask     uint32
	Group    int32

	// Compound structure. Parts[0] is always the body itself; Parent is
	// nil on a root body and points back to the root on every sub-part.
	Parts  []*Body
	Parent *Body

	// totalContacts is scratch state the resolver's position pass uses to
	// divide a shared body's correction budget across every contact that
	// touches it this step.
	totalContacts int

	original *originalAttributes

	UserData interface{}
}

// BodyOptions is an explicit builder struct in place of a loosely-typed
// options bag: every field a body factory can accept, all optional with
// documented defaults.
type BodyOptions struct {
	Label          string
	Position       Vector
	Angle          float64
	Velocity       Vector
	AngularVelocity float64

	Density        float64 // default 0.001
	Restitution    float64
	Friction       float64 // default 0.1
	FrictionStatic float64 // default 0.5
	FrictionAir    float64 // default 0.01
	Slop           float64 // default 0.05
	SleepThreshold float64 // default 60

	IsStatic bool
	IsSensor bool

	Category uint32 // default 1
	Mask     uint32 // default ^uint32(0)
	Group    int32

	CircleRadius float64

	UserData interface{}
}

func (o BodyOptions) withDefaults() BodyOptions {
	if o.Density == 0 {
		o.Density = 0.001
	}
	if o.Friction == 0 {
		o.Friction = 0.1
	}
	if o.FrictionStatic == 0 {
		o.FrictionStatic = 0.5
	}
	if o.FrictionAir == 0 {
		o.FrictionAir = 0.01
	}
	if o.Slop == 0 {
		o.Slop = 0.05
	}
	if o.SleepThreshold == 0 {
		o.SleepThreshold = 60
	}
	if o.Category == 0 {
		o.Category = 1
	}
	if o.Mask == 0 {
		o.Mask = ^uint32(0)
	}
	return o
}

// NewBody constructs a single-part body from a convex vertex ring. The
// vertices are re-centred on their own centroid (Position becomes the
// centroid) and re-wound clockwise if necessary.
func NewBody(ctx *Context, vertices []Vector, opts BodyOptions) (*Body, error) {
	if len(vertices) == 0 {
		return nil, ErrEmptyVertices
	}
	opts = opts.withDefaults()

	body := &Body{
		ID:             ctx.NextID(),
		Label:          opts.Label,
		ctx:            ctx,
		Density:        opts.Density,
		Restitution:    opts.Restitution,
		Friction:       opts.Friction,
		FrictionStatic: opts.FrictionStatic,
		FrictionAir:    opts.FrictionAir,
		Slop:           opts.Slop,
		SleepThreshold: opts.SleepThreshold,
		IsSensor:       opts.IsSensor,
		Category:       opts.Category,
		Mask:           opts.Mask,
		Group:          opts.Group,
		CircleRadius:   opts.CircleRadius,
		TimeScale:      1,
		DeltaTime:      baseDelta,
		UserData:       opts.UserData,
	}
	body.Parts = []*Body{body}

	body.setVerticesRaw(vertices)
	body.SetPosition(opts.Position)
	body.SetAngle(opts.Angle)
	body.SetVelocity(opts.Velocity)
	body.SetAngularVelocity(opts.AngularVelocity)

	if opts.IsStatic {
		body.SetStatic(true)
	}

	return body, nil
}

// setVerticesRaw installs a clockwise vertex ring centred on the
// origin-relative centroid and recomputes every derived attribute. Duplicate
// points in the input are kept as given. It is the common tail of NewBody
// and SetVertices.
func (body *Body) setVerticesRaw(vertices []Vector) {
	verts := append([]Vector(nil), vertices...)
	if VerticesArea(verts, true) > 0 {
		reverse(verts)
	}

	centre := VerticesCentre(verts)
	body.Vertices = make([]Vertex, len(verts))
	for i, v := range verts {
		body.Vertices[i] = Vertex{Vector: v.Sub(centre), Index: i}
	}

	body.Axes = AxesFromVertices(vertexVectors(body.Vertices))
	body.Area = VerticesArea(vertexVectors(body.Vertices), false)
	body.recomputeMassFromArea()
	body.Bounds = NewBounds(vertexVectors(body.Vertices)).Update(vertexVectors(body.Vertices), Vector{})
}

func reverse(vs []Vector) {
	for i, j := 0, len(vs)-1; i < j; i, j = i+1, j-1 {
		vs[i], vs[j] = vs[j], vs[i]
	}
}

func vertexVectors(vs []Vertex) []Vector {
	out := make([]Vector, len(vs))
	for i, v := range vs {
		out[i] = v.Vector
	}
	return out
}

func (body *Body) recomputeMassFromArea() {
	if body.IsStatic {
		return
	}
	mass := body.Density * body.Area
	body.SetMass(mass)
}

// SetMass sets the body's mass and derives InverseMass; static bodies
// always carry zero inverse mass regardless of what is requested here.
func (body *Body) SetMass(mass float64) {
	body.Mass = mass
	if body.IsStatic || mass == 0 {
		body.InverseMass = 0
	} else {
		body.InverseMass = 1 / mass
	}
	body.setInertiaRaw(VerticesInertia(vertexVectors(body.Vertices), body.Mass))
}

// SetDensity rescales Mass (and therefore Inertia) to match a new density
// at the current Area.
func (body *Body) SetDensity(density float64) {
	body.Density = density
	body.recomputeMassFromArea()
}

// SetInertia overrides the derived moment of inertia directly.
func (body *Body) SetInertia(inertia float64) {
	body.setInertiaRaw(inertia)
}

func (body *Body) setInertiaRaw(inertia float64) {
	body.Inertia = inertia
	if body.IsStatic || inertia == 0 {
		body.InverseInertia = 0
	} else {
		body.InverseInertia = 1 / inertia
	}
}

// SetVertices replaces the body's geometry and recomputes every derived
// attribute: axes, area, mass, inertia, bounds.
func (body *Body) SetVertices(vertices []Vector) {
	body.setVerticesRaw(vertices)
}

// SetStatic toggles whether the body participates in dynamics. Becoming
// static snapshots the current physical attributes so a later
// SetStatic(false) can restore them. A static body has zero inverse
// mass/inertia and infinite mass/inertia, and its velocity is cleared.
func (body *Body) SetStatic(static bool) {
	if static == body.IsStatic {
		return
	}

	if static {
		body.original = &originalAttributes{
			restitution:    body.Restitution,
			friction:       body.Friction,
			mass:           body.Mass,
			inverseMass:    body.InverseMass,
			inertia:        body.Inertia,
			inverseInertia: body.InverseInertia,
			density:        body.Density,
		}
		body.IsStatic = true
		body.Mass = math.Inf(1)
		body.Inertia = math.Inf(1)
		body.InverseMass = 0
		body.InverseInertia = 0
		body.Velocity = Vector{}
		body.AngularVelocity = 0
		body.positionPrev = body.Position
		body.anglePrev = body.Angle
	} else {
		body.IsStatic = false
		if body.original != nil {
			body.Restitution = body.original.restitution
			body.Friction = body.original.friction
			body.Mass = body.original.mass
			body.InverseMass = body.original.inverseMass
			body.Inertia = body.original.inertia
			body.InverseInertia = body.original.inverseInertia
			body.Density = body.original.density
			body.original = nil
		}
	}

	for _, part := range body.Parts {
		if part == body {
			continue
		}
		part.IsStatic = static
	}
}

// SetPosition translates the body (and every part) so its centroid lands
// on position, preserving angle. Idempotent: calling it twice with
// different arguments is equivalent to calling it once with the second.
func (body *Body) SetPosition(position Vector) {
	delta := position.Sub(body.Position)
	body.positionPrev = body.positionPrev.Add(delta)
	body.Position = position
	for _, part := range body.Parts {
		if part == body {
			continue
		}
		part.Position = part.Position.Add(delta)
		part.positionPrev = part.positionPrev.Add(delta)
	}
	body.translateVertices(delta)
}

func (body *Body) translateVertices(delta Vector) {
	for i := range body.Vertices {
		body.Vertices[i].Vector = body.Vertices[i].Vector.Add(delta)
	}
	body.Bounds = body.Bounds.Translate(delta)
}

// SetAngle rotates the body (and its vertices/axes) to angle, about its
// own centroid.
func (body *Body) SetAngle(angle float64) {
	delta := angle - body.Angle
	body.rotateVerticesAbout(delta, body.Position)
	body.Bounds = NewBounds(vertexVectors(body.Vertices))
	body.Angle = angle
	body.anglePrev += delta
}

// rotateVerticesAbout rotates the vertex ring and axes by delta radians
// about pivot, without touching Bounds — callers recompute Bounds
// themselves (SetAngle recomputes from scratch; updateBody folds it into
// the velocity-hinted Bounds.Update call).
func (body *Body) rotateVerticesAbout(delta float64, pivot Vector) {
	if delta == 0 {
		return
	}
	rot := ForAngle(delta)
	for i := range body.Vertices {
		body.Vertices[i].Vector = body.Vertices[i].Vector.Sub(pivot).Rotate(rot).Add(pivot)
	}
	for i := range body.Axes {
		body.Axes[i] = body.Axes[i].Rotate(rot)
	}
}

// SetVelocity sets the body's velocity by walking positionPrev back so the
// next Verlet step (which derives velocity from position history) reads it
// correctly, rather than merely recording it somewhere it is never read from.
func (body *Body) SetVelocity(v Vector) {
	ts := body.DeltaTime / baseDelta
	if ts == 0 {
		ts = 1
	}
	body.positionPrev = body.Position.Sub(v.Mult(ts))
	body.Velocity = v
	body.Speed = v.Length()
}

func (body *Body) SetAngularVelocity(w float64) {
	ts := body.DeltaTime / baseDelta
	if ts == 0 {
		ts = 1
	}
	body.anglePrev = body.Angle - w*ts
	body.AngularVelocity = w
	body.AngularSpeed = math.Abs(w)
}

func (body *Body) SetSpeed(speed float64) {
	body.SetVelocity(body.Velocity.Normalize().Mult(speed))
}

func (body *Body) SetAngularSpeed(speed float64) {
	sign := 1.0
	if body.AngularVelocity < 0 {
		sign = -1
	}
	body.SetAngularVelocity(speed * sign)
}

// Translate moves the body by delta via SetPosition, so positionPrev moves
// by the same delta and the body's velocity is preserved (used e.g. by
// Composite.Translate).
func (body *Body) Translate(delta Vector) {
	body.SetPosition(body.Position.Add(delta))
}

// Rotate turns the body by delta radians, either about its own centroid
// (point == nil) or about an arbitrary world point.
func (body *Body) Rotate(delta float64, point *Vector) {
	if point == nil {
		body.SetAngle(body.Angle + delta)
		return
	}
	rot := ForAngle(delta)
	newPos := point.Add(body.Position.Sub(*point).Rotate(rot))
	body.SetAngle(body.Angle + delta)
	body.SetPosition(newPos)
}

// Scale stretches every vertex of every part by (scaleX, scaleY) about
// point (the body's own centroid if point is nil), then recomputes area,
// mass and inertia.
func (body *Body) Scale(scaleX, scaleY float64, point *Vector) {
	origin := body.Position
	if point != nil {
		origin = *point
	}
	for _, part := range body.Parts {
		for i := range part.Vertices {
			rel := part.Vertices[i].Vector.Sub(origin)
			part.Vertices[i].Vector = origin.Add(Vector{rel.X * scaleX, rel.Y * scaleY})
		}
		part.Axes = AxesFromVertices(vertexVectors(part.Vertices))
		part.Area = VerticesArea(vertexVectors(part.Vertices), false)
		if !part.IsStatic {
			part.SetMass(part.Density * part.Area)
		}
		centre := VerticesCentre(vertexVectors(part.Vertices))
		part.Position = centre
		part.Bounds = NewBounds(vertexVectors(part.Vertices))
	}
}

// SetParts installs parts as the body's compound structure. parts[0] must
// be (or becomes) the root; subsequent entries become sub-parts whose
// Parent points back to the root. When autoHull is true the root's own
// geometry is replaced by the convex hull of every part's vertices, and
// the root is re-centred on that hull. Mass, Area and Inertia then become
// plain sums over the non-root parts that have mass, and Position moves to
// their mass-weighted centre without moving any vertices.
func (body *Body) SetParts(parts []*Body, autoHull bool) {
	assert(len(parts) > 0, "SetParts requires at least one part")

	root := parts[0]
	if root != body {
		// Caller passed a list not already rooted at body; body adopts it.
		parts = append([]*Body{body}, parts...)
		root = body
	}

	body.Parts = parts
	for _, p := range parts[1:] {
		p.Parent = body
	}

	if autoHull {
		var allVerts []Vector
		for _, p := range parts {
			allVerts = append(allVerts, vertexVectors(p.Vertices)...)
		}
		hull := VerticesHull(allVerts)
		hullCentre := VerticesCentre(hull)
		body.setVerticesRaw(hull)
		body.translateVertices(hullCentre)
		body.SetCentre(hullCentre)
	}

	var totalMass, totalArea, totalInertia float64
	var centre Vector
	for _, p := range parts {
		if p == root {
			continue
		}
		m := p.Mass
		if m == 0 {
			continue
		}
		totalMass += m
		totalArea += p.Area
		totalInertia += p.Inertia
		centre = centre.Add(p.Position.Mult(m))
	}
	if totalMass > 0 {
		centre = centre.Mult(1 / totalMass)
		root.Mass = totalMass
		root.Area = totalArea
		root.setInertiaRaw(totalInertia)
		if !root.IsStatic {
			root.InverseMass = 1 / totalMass
		}
		root.SetCentre(centre)
	}
}

// SetCentre repositions the body's centroid without moving its vertices —
// used after SetParts to align Position with the mass-weighted centre of
// a compound body once its vertex ring has already been fixed.
func (body *Body) SetCentre(centre Vector) {
	body.Position = centre
	body.positionPrev = centre
}

// ApplyForce accumulates force at worldPoint into the body's linear force
// and derived torque: torque += (worldPoint-Position) x f.
func (body *Body) ApplyForce(worldPoint, force Vector) {
	body.Force = body.Force.Add(force)
	offset := worldPoint.Sub(body.Position)
	body.Torque += offset.Cross(force)
}

// updateBody performs one Verlet-style integration step with a
// variable-timestep correction (so a body whose DeltaTime changed between
// steps still integrates consistently), then translates and rotates the
// vertex ring and refreshes the AABB with a velocity hint for the broad
// phase.
func updateBody(body *Body, delta float64) {
	deltaScaled := delta * effectiveTimeScale(body)
	correction := deltaScaled / body.DeltaTime
	frictionAir := 1 - body.FrictionAir*deltaScaled/baseDelta

	velocityPrev := body.Position.Sub(body.positionPrev).Mult(correction)
	body.Velocity = velocityPrev.Mult(frictionAir).Add(body.Force.Mult(1 / body.Mass).Mult(deltaScaled * deltaScaled))
	body.positionPrev = body.Position
	body.Position = body.Position.Add(body.Velocity)

	angularVelocityPrev := (body.Angle - body.anglePrev) * correction
	body.AngularVelocity = angularVelocityPrev*frictionAir + (body.Torque/body.Inertia)*deltaScaled*deltaScaled
	body.anglePrev = body.Angle
	body.Angle += body.AngularVelocity

	body.DeltaTime = deltaScaled

	// Every part (including the root itself) translates/rotates by the
	// same step, pivoting about the root's position so a compound body's
	// sub-parts sweep around its centre of mass rather than their own.
	for _, part := range body.Parts {
		part.translateVertices(body.Velocity)
		part.rotateVerticesAbout(body.AngularVelocity, body.Position)
		if part != body {
			part.Position = part.Position.Add(body.Velocity)
			part.Bounds = NewBounds(vertexVectors(part.Vertices))
		}
	}
	body.Bounds = body.Bounds.Update(vertexVectors(body.Vertices), body.Velocity)

	body.Speed = body.Velocity.Length()
	body.AngularSpeed = math.Abs(body.AngularVelocity)
}

func effectiveTimeScale(body *Body) float64 {
	ts := body.TimeScale
	if ts == 0 {
		ts = 1
	}
	return ts
}

// updateVelocities recomputes Velocity/AngularVelocity (and the derived
// Speed/AngularSpeed) from how far positionPrev/anglePrev have moved this
// step, normalised to baseDelta/DeltaTime. Called once after the resolver
// has mutated positionPrev/anglePrev via impulses.
func updateVelocities(body *Body) {
	ratio := baseDelta / body.DeltaTime
	body.Velocity = body.Position.Sub(body.positionPrev).Mult(ratio)
	body.Speed = body.Velocity.Length()
	body.AngularVelocity = (body.Angle - body.anglePrev) * ratio
	body.AngularSpeed = math.Abs(body.AngularVelocity)
}

// NextGroup returns a fresh signed collision group id from ctx.
func NextGroup(ctx *Context, noncolliding bool) int32 {
	return ctx.NextGroup(noncolliding)
}

// NextCategory returns the next bit in ctx's collision category bitfield.
func NextCategory(ctx *Context) uint32 {
	return ctx.NextCategory()
}

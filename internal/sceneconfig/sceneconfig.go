// Package sceneconfig decodes a TOML scene descriptor (bodies, constraints,
// gravity, iteration counts) into a ready-to-step rigid2d.Engine. It is a
// convenience for the CLI and the scenario fixtures, not a core module.
package sceneconfig

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml/v2"

	"github.com/brineforge/rigid2d"
)

// EngineVersion is this module's own version, checked against each scene
// file's engine_version constraint before building an Engine from it.
const EngineVersion = "1.0.0"

// Document is the decoded shape of a scene TOML file.
type Document struct {
	EngineVersion string `toml:"engine_version"`

	Gravity              *GravityConfig `toml:"gravity"`
	PositionIterations   int            `toml:"position_iterations"`
	VelocityIterations   int            `toml:"velocity_iterations"`
	ConstraintIterations int            `toml:"constraint_iterations"`
	EnableSleeping       bool           `toml:"enable_sleeping"`
	Seed                 uint32         `toml:"seed"`

	Bodies      []BodyConfig       `toml:"bodies"`
	Constraints []ConstraintConfig `toml:"constraints"`
}

// GravityConfig mirrors rigid2d.Gravity as TOML-decodable fields.
type GravityConfig struct {
	X     float64 `toml:"x"`
	Y     float64 `toml:"y"`
	Scale float64 `toml:"scale"`
}

// BodyConfig describes one body. Shape is "box" (half_width/half_height) or
// "circle" (radius, approximated as a `segments`-gon — see scenes.circle).
type BodyConfig struct {
	Label string `toml:"label"`
	Shape string `toml:"shape"`

	HalfWidth  float64 `toml:"half_width"`
	HalfHeight float64 `toml:"half_height"`
	Radius     float64 `toml:"radius"`
	Segments   int     `toml:"segments"`

	X     float64 `toml:"x"`
	Y     float64 `toml:"y"`
	Angle float64 `toml:"angle"`

	Static bool `toml:"static"`
	Sensor bool `toml:"sensor"`

	Density        float64 `toml:"density"`
	Restitution    float64 `toml:"restitution"`
	Friction       float64 `toml:"friction"`
	FrictionStatic float64 `toml:"friction_static"`
	FrictionAir    float64 `toml:"friction_air"`
	Slop           float64 `toml:"slop"`
	SleepThreshold float64 `toml:"sleep_threshold"`
}

// ConstraintConfig describes one distance/spring constraint. BodyA/BodyB
// reference other bodies by their Label; either may be empty to pin the
// corresponding PointA/PointB as a fixed world point instead.
type ConstraintConfig struct {
	Label string `toml:"label"`

	BodyA string `toml:"body_a"`
	BodyB string `toml:"body_b"`

	PointAX float64 `toml:"point_a_x"`
	PointAY float64 `toml:"point_a_y"`
	PointBX float64 `toml:"point_b_x"`
	PointBY float64 `toml:"point_b_y"`

	Length           float64 `toml:"length"`
	Stiffness        float64 `toml:"stiffness"`
	Damping          float64 `toml:"damping"`
	AngularStiffness float64 `toml:"angular_stiffness"`
}

// Load reads and parses the scene descriptor at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sceneconfig: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes raw TOML bytes into a Document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("sceneconfig: decoding TOML: %w", err)
	}
	return &doc, nil
}

// CheckVersion verifies doc's engine_version constraint (e.g. "^1.0") is
// satisfied by EngineVersion, so a scene file authored against an
// incompatible engine fails loudly at load time instead of silently
// simulating something different.
func (doc *Document) CheckVersion() error {
	if doc.EngineVersion == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(doc.EngineVersion)
	if err != nil {
		return fmt.Errorf("sceneconfig: invalid engine_version constraint %q: %w", doc.EngineVersion, err)
	}
	version, err := semver.NewVersion(EngineVersion)
	if err != nil {
		return fmt.Errorf("sceneconfig: invalid build-time EngineVersion %q: %w", EngineVersion, err)
	}
	if !constraint.Check(version) {
		return fmt.Errorf("sceneconfig: scene requires engine_version %q, this build is %s", doc.EngineVersion, EngineVersion)
	}
	return nil
}

// Build constructs an Engine from doc, returning the built bodies keyed by
// Label for the caller to inspect or animate further.
func (doc *Document) Build() (*rigid2d.Engine, map[string]*rigid2d.Body, error) {
	if err := doc.CheckVersion(); err != nil {
		return nil, nil, err
	}

	opts := rigid2d.EngineOptions{
		Seed:                 doc.Seed,
		PositionIterations:   doc.PositionIterations,
		VelocityIterations:   doc.VelocityIterations,
		ConstraintIterations: doc.ConstraintIterations,
		EnableSleeping:       doc.EnableSleeping,
	}
	if doc.Gravity != nil {
		opts.Gravity = &rigid2d.Gravity{X: doc.Gravity.X, Y: doc.Gravity.Y, Scale: doc.Gravity.Scale}
	}

	engine := rigid2d.NewEngine(opts)
	bodies := make(map[string]*rigid2d.Body, len(doc.Bodies))

	for _, bc := range doc.Bodies {
		verts, err := bc.vertices()
		if err != nil {
			return nil, nil, err
		}
		body, err := rigid2d.NewBody(engine.Context, verts, rigid2d.BodyOptions{
			Label:          bc.Label,
			Angle:          bc.Angle,
			Density:        bc.Density,
			Restitution:    bc.Restitution,
			Friction:       bc.Friction,
			FrictionStatic: bc.FrictionStatic,
			FrictionAir:    bc.FrictionAir,
			Slop:           bc.Slop,
			SleepThreshold: bc.SleepThreshold,
			IsStatic:       bc.Static,
			IsSensor:       bc.Sensor,
			CircleRadius:   bc.Radius,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("sceneconfig: building body %q: %w", bc.Label, err)
		}
		body.SetPosition(rigid2d.Vector{X: bc.X, Y: bc.Y})
		engine.World.AddBody(body)
		if bc.Label != "" {
			bodies[bc.Label] = body
		}
	}

	for _, cc := range doc.Constraints {
		bodyA := bodies[cc.BodyA]
		bodyB := bodies[cc.BodyB]
		if cc.BodyA != "" && bodyA == nil {
			return nil, nil, fmt.Errorf("sceneconfig: constraint %q references unknown body_a %q", cc.Label, cc.BodyA)
		}
		if cc.BodyB != "" && bodyB == nil {
			return nil, nil, fmt.Errorf("sceneconfig: constraint %q references unknown body_b %q", cc.Label, cc.BodyB)
		}
		constraint, err := rigid2d.NewConstraint(engine.Context, rigid2d.ConstraintOptions{
			Label:            cc.Label,
			BodyA:            bodyA,
			BodyB:            bodyB,
			PointA:           rigid2d.Vector{X: cc.PointAX, Y: cc.PointAY},
			PointB:           rigid2d.Vector{X: cc.PointBX, Y: cc.PointBY},
			Length:           cc.Length,
			Stiffness:        cc.Stiffness,
			Damping:          cc.Damping,
			AngularStiffness: cc.AngularStiffness,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("sceneconfig: building constraint %q: %w", cc.Label, err)
		}
		engine.World.AddConstraint(constraint)
	}

	return engine, bodies, nil
}

func (bc BodyConfig) vertices() ([]rigid2d.Vector, error) {
	switch bc.Shape {
	case "", "box":
		hw, hh := bc.HalfWidth, bc.HalfHeight
		if hw == 0 {
			hw = 10
		}
		if hh == 0 {
			hh = hw
		}
		return []rigid2d.Vector{
			{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh},
		}, nil
	case "circle":
		segments := bc.Segments
		if segments == 0 {
			segments = 16
		}
		radius := bc.Radius
		if radius == 0 {
			radius = 10
		}
		return polygonCircle(radius, segments), nil
	default:
		return nil, fmt.Errorf("sceneconfig: unknown body shape %q", bc.Shape)
	}
}

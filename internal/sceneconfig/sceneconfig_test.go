package sceneconfig

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleScene = `
engine_version = "^1.0"
position_iterations = 6
velocity_iterations = 4
enable_sleeping = true

[gravity]
x = 0
y = 1
scale = 0.001

[[bodies]]
label = "floor"
shape = "box"
half_width = 1000
half_height = 40
x = 0
y = 1000
static = true

[[bodies]]
label = "box"
shape = "box"
half_width = 20
half_height = 20
x = 0
y = -50
friction = 0.4

[[constraints]]
label = "leash"
body_a = "floor"
body_b = "box"
length = 80
stiffness = 0.6
`

func TestParseDecodesBodiesAndConstraints(t *testing.T) {
	doc, err := Parse([]byte(sampleScene))
	require.NoError(t, err)
	require.Equal(t, "^1.0", doc.EngineVersion)
	require.Len(t, doc.Bodies, 2)
	require.Len(t, doc.Constraints, 1)
	require.Equal(t, "floor", doc.Bodies[0].Label)
	require.True(t, doc.Bodies[0].Static)
}

func TestCheckVersionAcceptsCompatibleConstraint(t *testing.T) {
	doc, err := Parse([]byte(sampleScene))
	require.NoError(t, err)
	require.NoError(t, doc.CheckVersion())
}

func TestCheckVersionRejectsIncompatibleConstraint(t *testing.T) {
	doc, err := Parse([]byte(`engine_version = "^2.0"`))
	require.NoError(t, err)
	require.Error(t, doc.CheckVersion())
}

func TestCheckVersionAllowsMissingConstraint(t *testing.T) {
	doc, err := Parse([]byte(`position_iterations = 6`))
	require.NoError(t, err)
	require.NoError(t, doc.CheckVersion())
}

func TestBuildConstructsEngineWithNamedBodiesAndConstraint(t *testing.T) {
	doc, err := Parse([]byte(sampleScene))
	require.NoError(t, err)

	engine, bodies, err := doc.Build()
	require.NoError(t, err)
	require.Contains(t, bodies, "floor")
	require.Contains(t, bodies, "box")
	require.True(t, bodies["floor"].IsStatic)
	require.Equal(t, -50.0, bodies["box"].Position.Y)

	require.Len(t, engine.World.Constraints(), 1)
	require.Equal(t, "leash", engine.World.Constraints()[0].Label)

	require.NotPanics(t, func() {
		for i := 0; i < 5; i++ {
			engine.Update(0)
		}
	})
}

func TestBuildRejectsConstraintWithUnknownBodyReference(t *testing.T) {
	doc, err := Parse([]byte(`
[[bodies]]
label = "a"
shape = "box"

[[constraints]]
label = "bad"
body_a = "a"
body_b = "missing"
`))
	require.NoError(t, err)

	_, _, err = doc.Build()
	require.Error(t, err)
}

func TestBuildRejectsUnknownShape(t *testing.T) {
	doc, err := Parse([]byte(`
[[bodies]]
label = "weird"
shape = "hexagon"
`))
	require.NoError(t, err)

	_, _, err = doc.Build()
	require.Error(t, err)
}

func TestBuildDefaultsCircleShape(t *testing.T) {
	doc, err := Parse([]byte(`
[[bodies]]
label = "ball"
shape = "circle"
radius = 15
segments = 8
`))
	require.NoError(t, err)

	_, bodies, err := doc.Build()
	require.NoError(t, err)
	require.Len(t, bodies["ball"].Vertices, 8)
}

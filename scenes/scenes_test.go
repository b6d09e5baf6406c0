package scenes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllScenesBuildAndStepWithoutPanicking(t *testing.T) {
	for _, build := range All() {
		scene := build()
		require.NotNil(t, scene.Engine)
		require.NotEmpty(t, scene.Name)
		for i := 0; i < 10; i++ {
			scene.Engine.Update(0)
		}
	}
}

func TestTwoBoxCollisionHasBothBodies(t *testing.T) {
	scene := TwoBoxCollision()
	require.Contains(t, scene.Bodies, "left")
	require.Contains(t, scene.Bodies, "right")
}

func TestBoxStackHasFiveBoxesAndAFloor(t *testing.T) {
	scene := BoxStack()
	require.Len(t, scene.Bodies, 6)
	require.Contains(t, scene.Bodies, "floor")
}

func TestPendulumHasRodConstraint(t *testing.T) {
	scene := Pendulum()
	require.Contains(t, scene.Constraints, "rod")
	require.True(t, scene.Constraints["rod"].IsPin() == false)
}

func TestNewtonsCradleLeftmostStartsMoving(t *testing.T) {
	scene := NewtonsCradle()
	require.Len(t, scene.Bodies, 5)
	require.NotZero(t, scene.Bodies["ball0"].Speed)
}

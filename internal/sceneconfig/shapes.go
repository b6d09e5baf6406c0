package sceneconfig

import (
	"math"

	"github.com/brineforge/rigid2d"
)

// polygonCircle approximates a disc as a regular polygon, mirroring
// scenes.circle — the engine's SAT narrow phase only ever tests vertex
// rings, so a "circle" body is really a many-sided polygon.
func polygonCircle(radius float64, segments int) []rigid2d.Vector {
	verts := make([]rigid2d.Vector, segments)
	for i := 0; i < segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		verts[i] = rigid2d.Vector{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
	}
	return verts
}

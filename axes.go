package rigid2d

import "math"

// AxesFromVertices computes the outward unit normal of each directed edge
// of a clockwise polygon, then deduplicates by rounding normal.X/normal.Y
// to three decimals, trading a handful of redundant SAT axis tests for
// the rare false merge of two nearly-but-not-quite parallel edges.
func AxesFromVertices(vertices []Vector) []Vector {
	seen := make(map[[2]int]struct{}, len(vertices))
	axes := make([]Vector, 0, len(vertices))

	n := len(vertices)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		edge := vertices[j].Sub(vertices[i])
		normal := edge.ReversePerp().Normalize()

		key := [2]int{
			int(math.Trunc(normal.X * 1000)),
			int(math.Trunc(normal.Y * 1000)),
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		axes = append(axes, normal)
	}
	return axes
}

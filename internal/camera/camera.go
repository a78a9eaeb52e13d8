// Package camera holds the perspective camera, the four named view
// presets and the director that animates between them.
package camera

import (
	"math"

	"github.com/thep200/repo-visualizer/pkg/geom"
)

// Camera is an immutable snapshot of the perspective camera used for
// rendering and picking.
type Camera struct {
	Position geom.Vec3 `json:"position"`
	Target   geom.Vec3 `json:"target"`
	FOV      float64   `json:"fov"`    // vertical field of view, radians
	Aspect   float64   `json:"aspect"` // width / height
}

// PickRay projects a pointer position into a world-space ray. nx and
// ny are normalized device coordinates in [-1, 1], y pointing up.
func (c Camera) PickRay(nx, ny float64) geom.Ray {
	forward := c.Target.Sub(c.Position).Normalize()
	if forward.Length() == 0 {
		forward = geom.V(0, 0, -1)
	}

	worldUp := geom.V(0, 1, 0)
	right := forward.Cross(worldUp).Normalize()
	if right.Length() == 0 {
		// Looking straight up or down.
		right = geom.V(1, 0, 0)
	}
	up := right.Cross(forward)

	tanHalf := math.Tan(c.FOV / 2)
	dir := forward.
		Add(right.Scale(nx * tanHalf * c.Aspect)).
		Add(up.Scale(ny * tanHalf)).
		Normalize()

	return geom.Ray{Origin: c.Position, Dir: dir}
}

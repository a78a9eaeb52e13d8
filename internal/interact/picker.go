// Package interact resolves pointer input against the scene: ray
// picking, hover state, tooltips and click-to-open-URL behavior.
package interact

import (
	"github.com/thep200/repo-visualizer/internal/scene"
	"github.com/thep200/repo-visualizer/pkg/geom"
)

// Pick returns the nearest pickable node hit by the ray, or nil when
// the ray misses everything. Every pickable node carries its semantic
// identity directly, so no ancestor walking is needed.
func Pick(s *scene.Scene, ray geom.Ray) *scene.Node {
	var (
		nearest *scene.Node
		minDist float64
	)
	for _, node := range s.Pickables() {
		dist, ok := ray.IntersectSphere(node.Position, node.Radius)
		if !ok {
			continue
		}
		if nearest == nil || dist < minDist {
			nearest = node
			minDist = dist
		}
	}
	return nearest
}

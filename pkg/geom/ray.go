package geom

import "math"

// Ray is a half line used for picking. Dir is expected to be unit
// length.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// IntersectSphere returns the distance along the ray to the nearest
// intersection with the sphere, or false when the ray misses it.
// Origins inside the sphere report the exit point.
func (r Ray) IntersectSphere(center Vec3, radius float64) (float64, bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

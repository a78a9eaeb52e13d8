package geom

// QuadraticBezier evaluates the quadratic bezier through p0, control
// point c and p2 at parameter t.
func QuadraticBezier(p0, c, p2 Vec3, t float64) Vec3 {
	u := 1 - t
	a := p0.Scale(u * u)
	b := c.Scale(2 * u * t)
	d := p2.Scale(t * t)
	return a.Add(b).Add(d)
}

// SampleQuadraticBezier returns segments+1 points along the curve,
// including both endpoints.
func SampleQuadraticBezier(p0, c, p2 Vec3, segments int) []Vec3 {
	if segments < 1 {
		segments = 1
	}
	points := make([]Vec3, 0, segments+1)
	for i := 0; i <= segments; i++ {
		t := float64(i) / float64(segments)
		points = append(points, QuadraticBezier(p0, c, p2, t))
	}
	return points
}

// EaseInOutQuad remaps linear progress t in [0, 1] to a symmetric
// slow-fast-slow curve.
func EaseInOutQuad(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

package geom

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestVecOps(t *testing.T) {
	a := V(1, 2, 3)
	b := V(4, 5, 6)

	if got := a.Add(b); got != V(5, 7, 9) {
		t.Errorf("Add = %v", got)
	}
	if got := b.Sub(a); got != V(3, 3, 3) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v", got)
	}
	if got := V(1, 0, 0).Cross(V(0, 1, 0)); got != V(0, 0, 1) {
		t.Errorf("Cross = %v", got)
	}
	if got := V(3, 4, 0).Length(); got != 5 {
		t.Errorf("Length = %v", got)
	}
	if got := V(0, 0, 0).Normalize(); got != V(0, 0, 0) {
		t.Errorf("Normalize(zero) = %v", got)
	}
}

func TestLerpEndpoints(t *testing.T) {
	a := V(0, 0, 0)
	b := V(10, -2, 4)
	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0) = %v", got)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1) = %v", got)
	}
	mid := a.Lerp(b, 0.5)
	if !almostEqual(mid.X, 5) || !almostEqual(mid.Y, -1) || !almostEqual(mid.Z, 2) {
		t.Errorf("Lerp(0.5) = %v", mid)
	}
}

func TestQuadraticBezierEndpoints(t *testing.T) {
	p0 := V(0, 0, 0)
	c := V(5, 10, 0)
	p2 := V(10, 0, 0)

	if got := QuadraticBezier(p0, c, p2, 0); got != p0 {
		t.Errorf("bezier(0) = %v", got)
	}
	if got := QuadraticBezier(p0, c, p2, 1); got != p2 {
		t.Errorf("bezier(1) = %v", got)
	}

	// Midpoint of a quadratic bezier sits halfway between the chord
	// midpoint and the control point.
	mid := QuadraticBezier(p0, c, p2, 0.5)
	if !almostEqual(mid.X, 5) || !almostEqual(mid.Y, 5) {
		t.Errorf("bezier(0.5) = %v", mid)
	}
}

func TestSampleQuadraticBezier(t *testing.T) {
	points := SampleQuadraticBezier(V(0, 0, 0), V(1, 1, 0), V(2, 0, 0), 8)
	if len(points) != 9 {
		t.Fatalf("expected 9 points, got %d", len(points))
	}
	if points[0] != V(0, 0, 0) || points[8] != V(2, 0, 0) {
		t.Errorf("endpoints not preserved: %v .. %v", points[0], points[8])
	}
}

func TestEaseInOutQuad(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{0.25, 0.125},
		{0.5, 0.5},
		{0.75, 0.875},
		{1, 1},
		{-0.5, 0},
		{1.5, 1},
	}
	for _, tt := range tests {
		if got := EaseInOutQuad(tt.in); !almostEqual(got, tt.want) {
			t.Errorf("EaseInOutQuad(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	// Monotonic over [0, 1].
	prev := -1.0
	for i := 0; i <= 100; i++ {
		v := EaseInOutQuad(float64(i) / 100)
		if v < prev {
			t.Fatalf("ease not monotonic at t=%v", float64(i)/100)
		}
		prev = v
	}
}

func TestRayIntersectSphere(t *testing.T) {
	r := Ray{Origin: V(0, 0, -10), Dir: V(0, 0, 1)}

	d, ok := r.IntersectSphere(V(0, 0, 0), 1)
	if !ok || !almostEqual(d, 9) {
		t.Errorf("hit = %v,%v, want 9,true", d, ok)
	}

	if _, ok := r.IntersectSphere(V(5, 0, 0), 1); ok {
		t.Error("expected miss for offset sphere")
	}

	// Behind the origin.
	back := Ray{Origin: V(0, 0, 10), Dir: V(0, 0, 1)}
	if _, ok := back.IntersectSphere(V(0, 0, 0), 1); ok {
		t.Error("expected miss for sphere behind ray")
	}

	// Origin inside the sphere reports the exit distance.
	inside := Ray{Origin: V(0, 0, 0), Dir: V(0, 0, 1)}
	d, ok = inside.IntersectSphere(V(0, 0, 0), 2)
	if !ok || !almostEqual(d, 2) {
		t.Errorf("inside hit = %v,%v, want 2,true", d, ok)
	}
}

func TestHSLHex(t *testing.T) {
	if got := HSL(0, 1, 0.5).Hex(); got != "#ff0000" {
		t.Errorf("red = %s", got)
	}
	if got := (Color{R: 0, G: 0, B: 0}).Hex(); got != "#000000" {
		t.Errorf("black = %s", got)
	}
	if got := (Color{R: 2, G: -1, B: 1}).Hex(); got != "#ff00ff" {
		t.Errorf("clamped = %s", got)
	}
}

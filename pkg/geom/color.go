package geom

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB triple with components in [0, 1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// HSL builds a Color from hue in [0, 1), saturation and lightness in
// [0, 1].
func HSL(h, s, l float64) Color {
	c := colorful.Hsl(h*360, s, l)
	return Color{R: c.R, G: c.G, B: c.B}
}

// Hex formats the color as a #rrggbb string for the web host.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", clampByte(c.R), clampByte(c.G), clampByte(c.B))
}

func clampByte(v float64) int {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return int(v*255 + 0.5)
}

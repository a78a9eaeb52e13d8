package scene

import (
	"math"

	"github.com/thep200/repo-visualizer/pkg/geom"
)

// fallbackAuthorColor is the reserved gray used for commits whose
// author cannot be resolved to a contributor.
var fallbackAuthorColor = geom.Color{R: 0.42, G: 0.45, B: 0.5}

// fallbackAuthorKey is the reserved palette key for those commits.
const fallbackAuthorKey = "unknown"

const (
	contributorHueStep   = 0.17
	contributorSat       = 0.65
	contributorLightness = 0.55
)

// assignContributorColors builds the login → color palette, one color
// per contributor in the given order. The palette is assigned once per
// data load and never reshuffled.
func assignContributorColors(contributors []Contributor) map[string]geom.Color {
	palette := make(map[string]geom.Color, len(contributors)+1)
	for i, c := range contributors {
		hue := math.Mod(float64(i)*contributorHueStep, 1.0)
		palette[c.Login] = geom.HSL(hue, contributorSat, contributorLightness)
	}
	palette[fallbackAuthorKey] = fallbackAuthorColor
	return palette
}

// nameHash is the 32-bit polynomial string hash used for language
// colors: hash = charCode + ((hash << 5) - hash) per character. The
// int32 arithmetic wraps exactly like the original 32-bit masking, so
// colors stay stable across runs.
func nameHash(name string) int32 {
	var h int32
	for _, ch := range name {
		h = int32(ch) + ((h << 5) - h)
	}
	return h
}

// LanguageColor derives a stable color from a language name. Hue,
// saturation and lightness come from different modulo residues of the
// same hash; saturation and lightness land in [0.5, 1.0].
func LanguageColor(name string) geom.Color {
	h := int64(nameHash(name))
	if h < 0 {
		h = -h
	}
	hue := float64(h%360) / 360
	sat := 0.5 + float64(h%1000)/2000
	light := 0.5 + float64(h%100)/200
	return geom.HSL(hue, sat, light)
}

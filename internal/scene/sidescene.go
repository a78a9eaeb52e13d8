package scene

import (
	"math"
	"sort"

	"github.com/thep200/repo-visualizer/pkg/geom"
)

// composeContributorField lays the contributors out on a square grid
// flanking the helix, sphere radius scaled by the square root of the
// normalized contribution count. Expects contributors already sorted
// by contributions descending.
func composeContributorField(s *Scene, contributors []Contributor) {
	n := len(contributors)
	if n == 0 {
		return
	}

	minC := contributors[n-1].Contributions
	maxC := contributors[0].Contributions

	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + cols - 1) / cols

	for i, c := range contributors {
		radius := contributorMinRadius
		if maxC > minC {
			t := float64(c.Contributions-minC) / float64(maxC-minC)
			radius += (contributorMaxRadius - contributorMinRadius) * math.Sqrt(t)
		}

		col := i % cols
		row := i / cols
		local := geom.V(
			(float64(col)-float64(cols-1)/2)*contributorGridSpacing,
			0,
			(float64(row)-float64(rows-1)/2)*contributorGridSpacing,
		)
		pos := contributorFieldOffset.Add(local)

		s.add(&Node{
			ID:       "contributor:" + c.Login,
			Kind:     KindContributor,
			Position: pos,
			Radius:   radius,
			Scale:    1,
			Color:    s.AuthorColor(c.Login),
			Pickable: true,
			Contributor: &ContributorInfo{
				Login:         c.Login,
				Contributions: c.Contributions,
			},
		})

		s.add(&Node{
			ID:       "contributor-label:" + c.Login,
			Kind:     KindNameLabel,
			Position: pos.Add(geom.V(0, -(radius + 0.6), 0)),
			Radius:   0.3,
			Scale:    1,
			Color:    branchLabelColor,
			Label:    c.Login,
		})
	}
}

// composeLanguageDonut sweeps one annular wedge per language with a
// nonzero byte count, proportional to its share, starting at 12
// o'clock and proceeding clockwise. Sub-threshold wedges are skipped
// entirely.
func composeLanguageDonut(s *Scene, languages map[string]int64) {
	type langShare struct {
		name  string
		bytes int64
	}

	var total int64
	shares := make([]langShare, 0, len(languages))
	for name, bytes := range languages {
		if bytes <= 0 {
			continue
		}
		shares = append(shares, langShare{name: name, bytes: bytes})
		total += bytes
	}
	if total == 0 {
		return
	}

	sort.SliceStable(shares, func(i, j int) bool {
		if shares[i].bytes == shares[j].bytes {
			return shares[i].name < shares[j].name
		}
		return shares[i].bytes > shares[j].bytes
	})

	// 12 o'clock, sweeping clockwise (decreasing angle).
	angle := math.Pi / 2
	ringRadius := (donutInnerRadius + donutOuterRadius) / 2

	for _, share := range shares {
		fraction := float64(share.bytes) / float64(total)
		sweep := fraction * 2 * math.Pi
		start := angle
		angle -= sweep

		if sweep < minWedgeSweep {
			continue
		}

		mid := start - sweep/2
		pos := languageDonutOffset.Add(geom.V(math.Cos(mid)*ringRadius, math.Sin(mid)*ringRadius, 0))
		color := LanguageColor(share.name)

		// Bounding sphere grows with the arc but never past the donut
		// itself.
		pickRadius := math.Max((donutOuterRadius-donutInnerRadius)/2, ringRadius*sweep/2)
		pickRadius = math.Min(pickRadius, donutOuterRadius)

		s.add(&Node{
			ID:       "language:" + share.name,
			Kind:     KindLanguage,
			Position: pos,
			Radius:   pickRadius,
			Scale:    1,
			Color:    color,
			Pickable: true,
			Language: &LanguageInfo{
				Name:       share.name,
				Bytes:      share.bytes,
				Percent:    fraction * 100,
				StartAngle: start,
				Sweep:      sweep,
			},
		})

		s.add(&Node{
			ID:       "language-label:" + share.name,
			Kind:     KindLanguageLabel,
			Position: languageDonutOffset.Add(geom.V(math.Cos(mid)*donutLabelRadius, math.Sin(mid)*donutLabelRadius, 0)),
			Radius:   0.3,
			Scale:    1,
			Color:    color,
			Label:    share.name,
		})
	}
}

package scene

import (
	"math"
	"math/rand"
	"regexp"
	"sort"
	"strings"

	"github.com/thep200/repo-visualizer/cfg"
	"github.com/thep200/repo-visualizer/pkg/geom"
)

const (
	repoMarkerID = "repo-marker"

	baseCommitRadius = 0.35
	glowRadiusFactor = 1.8

	mergeScaleBoost       = 1.3
	significantScaleBoost = 1.5
	earlyScaleBoost       = 1.2

	commitJitter = 0.35
	mergeJitter  = 0.8

	connectorCurveIntensity      = 1.2
	mergeConnectorCurveIntensity = 2.0
	connectorSegments            = 12

	// Wedges narrower than this are skipped entirely, neither drawn
	// nor labeled.
	minWedgeSweep = 0.01

	donutInnerRadius = 3.0
	donutOuterRadius = 6.0
	donutLabelRadius = donutOuterRadius + 1.5

	contributorMinRadius   = 0.4
	contributorMaxRadius   = 1.5
	contributorGridSpacing = 2.4

	particleCount  = 120
	particleSpread = 60.0

	timelineSamplesPerCommit = 4
)

var (
	contributorFieldOffset = geom.V(-26, 0, 0)
	languageDonutOffset    = geom.V(26, 0, 0)

	connectorColor      = geom.Color{R: 0.29, G: 0.62, B: 1.0}
	mergeConnectorColor = geom.Color{R: 1.0, G: 0.6, B: 0.2}
	branchLabelColor    = geom.Color{R: 0.85, G: 0.87, B: 0.9}
	markerColor         = geom.Color{R: 0.38, G: 0.85, B: 0.65}
)

// significantRe marks release-ish commits that get the extra scale
// boost and the translucent glow shell.
var significantRe = regexp.MustCompile(`(?i)release|version|milestone`)

// Options are the layout tunables of the commit helix.
type Options struct {
	HelixRadius    float64
	CommitsPerLoop int
	HelixPitch     float64
	StartHeight    float64
}

// DefaultOptions returns the layout used when no config is supplied.
func DefaultOptions() Options {
	return Options{
		HelixRadius:    8,
		CommitsPerLoop: 12,
		HelixPitch:     3,
		StartHeight:    -6,
	}
}

// OptionsFromConfig merges the viz section of the config over the
// defaults; zero values keep the default.
func OptionsFromConfig(config *cfg.Config) Options {
	opts := DefaultOptions()
	if config == nil {
		return opts
	}
	if config.Viz.HelixRadius > 0 {
		opts.HelixRadius = config.Viz.HelixRadius
	}
	if config.Viz.CommitsPerLoop > 0 {
		opts.CommitsPerLoop = config.Viz.CommitsPerLoop
	}
	if config.Viz.HelixPitch > 0 {
		opts.HelixPitch = config.Viz.HelixPitch
	}
	if config.Viz.StartHeight != 0 {
		opts.StartHeight = config.Viz.StartHeight
	}
	return opts
}

// helixPoint places the continuous helix parameter u (in commit index
// units) in world space.
func (o Options) helixPoint(u float64) geom.Vec3 {
	angle := u / float64(o.CommitsPerLoop) * 2 * math.Pi
	return geom.V(
		o.HelixRadius*math.Cos(angle),
		o.StartHeight+u/float64(o.CommitsPerLoop)*o.HelixPitch,
		o.HelixRadius*math.Sin(angle),
	)
}

// Compose builds the full scene graph from the repository data. The
// input is not modified; unresolvable references (dangling parent
// shas, branches pointing at unknown commits) are skipped silently.
func Compose(data *RepoData, opts Options) *Scene {
	if opts.CommitsPerLoop <= 0 {
		opts = DefaultOptions()
	}

	s := &Scene{
		Meta:        data.Meta,
		byID:        make(map[string]*Node),
		commitBySHA: make(map[string]*Node),
	}

	// Contributors sorted by contribution count descending drive both
	// the palette assignment and the grid layout.
	contributors := make([]Contributor, len(data.Contributors))
	copy(contributors, data.Contributors)
	sort.SliceStable(contributors, func(i, j int) bool {
		return contributors[i].Contributions > contributors[j].Contributions
	})
	s.authorColor = assignContributorColors(contributors)

	composeCommitHelix(s, data.Commits, opts)
	composeBranchLabels(s, data.Branches)
	composeContributorField(s, contributors)
	composeLanguageDonut(s, data.Languages)
	composeMarker(s, data.Meta, opts)
	composeParticles(s, data.Meta)

	return s
}

func composeCommitHelix(s *Scene, commits []Commit, opts Options) {
	if len(commits) == 0 {
		return
	}

	ordered := make([]Commit, len(commits))
	copy(ordered, commits)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].SHA < ordered[j].SHA
		}
		return ordered[i].Date.Before(ordered[j].Date)
	})

	first := ordered[0].Date
	last := ordered[len(ordered)-1].Date
	timeRange := last.Sub(first)
	earlyCutoff := first.Add(timeRange / 10)

	for i, commit := range ordered {
		pos := opts.helixPoint(float64(i))

		// Deterministic jitter keeps overlapping commits apart without
		// making composition impure.
		amp := commitJitter
		if commit.IsMerge() {
			amp = mergeJitter
		}
		rng := rand.New(rand.NewSource(int64(nameHash(commit.SHA))))
		pos = pos.Add(geom.V(
			(rng.Float64()*2-1)*amp,
			(rng.Float64()*2-1)*amp,
			(rng.Float64()*2-1)*amp,
		))

		significant := significantRe.MatchString(commit.Message)
		scale := 1.0
		if commit.IsMerge() {
			scale *= mergeScaleBoost
		}
		if significant {
			scale *= significantScaleBoost
		}
		if timeRange == 0 || !commit.Date.After(earlyCutoff) {
			scale *= earlyScaleBoost
		}

		node := s.add(&Node{
			ID:       commit.SHA,
			Kind:     KindCommit,
			Position: pos,
			Radius:   baseCommitRadius * scale,
			Scale:    scale,
			Color:    s.AuthorColor(commit.AuthorLogin),
			Pickable: true,
			Commit: &CommitInfo{
				Commit:      commit,
				Merge:       commit.IsMerge(),
				Significant: significant,
			},
		})
		s.commitBySHA[commit.SHA] = node

		if significant {
			s.add(&Node{
				ID:       commit.SHA + ":glow",
				Kind:     KindGlow,
				Position: pos,
				Radius:   node.Radius * glowRadiusFactor,
				Scale:    scale,
				Color:    node.Color,
			})
		}
	}

	composeTimeline(s, len(ordered), opts)
	composeConnectors(s, ordered)
}

// composeTimeline samples the continuous helix into the path of the
// timeline guide tube.
func composeTimeline(s *Scene, commitCount int, opts Options) {
	if commitCount < 2 {
		return
	}
	steps := (commitCount - 1) * timelineSamplesPerCommit
	path := make([]geom.Vec3, 0, steps+1)
	for i := 0; i <= steps; i++ {
		u := float64(i) / float64(timelineSamplesPerCommit)
		path = append(path, opts.helixPoint(u))
	}
	s.TimelinePath = path
}

// composeConnectors draws one curved tube per (child, resolvable
// parent) pair. Parents outside the commit set contribute nothing.
func composeConnectors(s *Scene, ordered []Commit) {
	for _, commit := range ordered {
		child := s.commitBySHA[commit.SHA]
		for _, parentSHA := range commit.Parents {
			parent := s.commitBySHA[parentSHA]
			if parent == nil {
				continue
			}

			intensity := connectorCurveIntensity
			color := connectorColor
			if commit.IsMerge() {
				intensity = mergeConnectorCurveIntensity
				color = mergeConnectorColor
			}

			s.Connectors = append(s.Connectors, &Connector{
				ChildSHA:  commit.SHA,
				ParentSHA: parentSHA,
				Merge:     commit.IsMerge(),
				Points:    connectorPath(parent.Position, child.Position, intensity),
				Color:     color,
			})
		}
	}
}

// connectorPath bends the chord from parent to child into a quadratic
// bezier whose midpoint is pushed perpendicular to the chord.
func connectorPath(from, to geom.Vec3, intensity float64) []geom.Vec3 {
	chord := to.Sub(from)
	perp := chord.Cross(geom.V(0, 1, 0)).Normalize()
	if perp.Length() == 0 {
		// Vertical chord: any horizontal direction works.
		perp = geom.V(1, 0, 0)
	}
	mid := from.Lerp(to, 0.5).Add(perp.Scale(intensity))
	return geom.SampleQuadraticBezier(from, mid, to, connectorSegments)
}

func composeBranchLabels(s *Scene, branches []Branch) {
	for _, branch := range branches {
		head := s.commitBySHA[branch.HeadSHA]
		if head == nil {
			continue
		}

		// Offset outward from the helix axis and upward.
		radial := geom.V(head.Position.X, 0, head.Position.Z).Normalize()
		if radial.Length() == 0 {
			radial = geom.V(1, 0, 0)
		}
		pos := head.Position.Add(radial.Scale(2)).Add(geom.V(0, 1.5, 0))

		s.add(&Node{
			ID:       "branch:" + branch.Name,
			Kind:     KindBranchLabel,
			Position: pos,
			Radius:   0.5,
			Scale:    1,
			Color:    branchLabelColor,
			Label:    branch.Name,
			Branch: &BranchInfo{
				Name:       branch.Name,
				HeadSHA:    branch.HeadSHA,
				Decoration: branchDecoration(branch.Name),
			},
		})
	}
}

// branchDecoration picks the label style class; first match wins.
func branchDecoration(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "main"), strings.Contains(lower, "master"):
		return "main"
	case strings.Contains(lower, "feature"):
		return "feature"
	case strings.Contains(lower, "fix"), strings.Contains(lower, "bug"):
		return "fix"
	default:
		return "other"
	}
}

func composeMarker(s *Scene, meta Meta, opts Options) {
	s.add(&Node{
		ID:       repoMarkerID,
		Kind:     KindRepoMarker,
		Position: geom.V(0, opts.StartHeight-4, 0),
		Radius:   2,
		Scale:    1,
		Color:    markerColor,
		Pickable: true,
		Label:    meta.FullName,
		Repo:     &RepoInfo{FullName: meta.FullName},
	})
}

// composeParticles scatters the ambient particle field. Seeding from
// the repo name keeps the field stable between rebuilds of the same
// repository.
func composeParticles(s *Scene, meta Meta) {
	rng := rand.New(rand.NewSource(int64(nameHash(meta.FullName)) + 1))
	s.Particles = make([]Particle, 0, particleCount)
	for i := 0; i < particleCount; i++ {
		base := geom.V(
			(rng.Float64()*2-1)*particleSpread,
			(rng.Float64()*2-1)*particleSpread/2,
			(rng.Float64()*2-1)*particleSpread,
		)
		s.Particles = append(s.Particles, Particle{Base: base, Seed: rng.Float64() * 2 * math.Pi})
	}
}

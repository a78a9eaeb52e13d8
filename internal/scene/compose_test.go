package scene

import (
	"fmt"
	"math"
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func commitFixture(sha string, n int, parents ...string) Commit {
	return Commit{
		SHA:     sha,
		Message: "commit " + sha,
		Date:    day(n),
		HTMLURL: "https://github.com/acme/widget/commit/" + sha,
		Parents: parents,
	}
}

func countKind(s *Scene, k Kind) int {
	count := 0
	for _, n := range s.Nodes {
		if n.Kind == k {
			count++
		}
	}
	return count
}

func TestComposeTwoCommitScenario(t *testing.T) {
	data := &RepoData{
		Meta: Meta{FullName: "acme/widget"},
		Commits: []Commit{
			commitFixture("aaa", 0),
			commitFixture("bbb", 1, "aaa"),
		},
	}

	s := Compose(data, DefaultOptions())

	if got := countKind(s, KindCommit); got != 2 {
		t.Fatalf("commit nodes = %d, want 2", got)
	}
	if got := len(s.Connectors); got != 1 {
		t.Fatalf("connectors = %d, want 1", got)
	}

	conn := s.Connectors[0]
	if conn.ChildSHA != "bbb" || conn.ParentSHA != "aaa" {
		t.Errorf("connector %s->%s, want aaa->bbb", conn.ParentSHA, conn.ChildSHA)
	}
	if conn.Points[0] != s.CommitNode("aaa").Position {
		t.Error("connector does not start at parent position")
	}
	if conn.Points[len(conn.Points)-1] != s.CommitNode("bbb").Position {
		t.Error("connector does not end at child position")
	}
}

func TestComposeConnectorCountEqualsResolvablePairs(t *testing.T) {
	tests := []struct {
		name    string
		commits []Commit
		want    int
	}{
		{
			name:    "no commits",
			commits: nil,
			want:    0,
		},
		{
			name:    "root only",
			commits: []Commit{commitFixture("aaa", 0)},
			want:    0,
		},
		{
			name: "linear chain",
			commits: []Commit{
				commitFixture("aaa", 0),
				commitFixture("bbb", 1, "aaa"),
				commitFixture("ccc", 2, "bbb"),
			},
			want: 2,
		},
		{
			name: "merge counts both parents",
			commits: []Commit{
				commitFixture("aaa", 0),
				commitFixture("bbb", 1, "aaa"),
				commitFixture("ccc", 2, "aaa"),
				commitFixture("ddd", 3, "bbb", "ccc"),
			},
			want: 4,
		},
		{
			name: "dangling parents are skipped",
			commits: []Commit{
				commitFixture("aaa", 0, "gone"),
				commitFixture("bbb", 1, "aaa", "also-gone"),
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Compose(&RepoData{Commits: tt.commits}, DefaultOptions())
			if got := len(s.Connectors); got != tt.want {
				t.Errorf("connectors = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComposeHelixOrdering(t *testing.T) {
	// Input deliberately out of date order.
	data := &RepoData{
		Commits: []Commit{
			commitFixture("ccc", 20),
			commitFixture("aaa", 0),
			commitFixture("bbb", 10),
		},
	}
	s := Compose(data, DefaultOptions())

	// The helix climbs with the commit index, so later commits must
	// sit higher despite the jitter.
	yA := s.CommitNode("aaa").Position.Y
	yB := s.CommitNode("bbb").Position.Y
	yC := s.CommitNode("ccc").Position.Y
	if !(yA < yB && yB < yC) {
		t.Errorf("helix heights not ascending by date: %v %v %v", yA, yB, yC)
	}
}

func TestComposeScaleBoosts(t *testing.T) {
	// Spread over 100 days so only the first commit is in the
	// earliest 10% of the time range.
	commits := []Commit{
		commitFixture("early", 0),
		commitFixture("plain", 50),
		commitFixture("late", 100),
		{SHA: "rel", Message: "Release v1.2.0", Date: day(90)},
		{SHA: "mrg", Message: "merge branches", Date: day(80), Parents: []string{"plain", "late"}},
	}
	s := Compose(&RepoData{Commits: commits}, DefaultOptions())

	tests := []struct {
		sha  string
		want float64
	}{
		{"plain", 1.0},
		{"early", earlyScaleBoost},
		{"rel", significantScaleBoost},
		{"mrg", mergeScaleBoost},
	}
	for _, tt := range tests {
		if got := s.CommitNode(tt.sha).Scale; math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("scale(%s) = %v, want %v", tt.sha, got, tt.want)
		}
	}

	// Boosts compound.
	comp := Compose(&RepoData{Commits: []Commit{
		{SHA: "a", Date: day(0)},
		{SHA: "b", Date: day(100)},
		{SHA: "both", Message: "Merge release version bump", Date: day(99), Parents: []string{"a", "b"}},
	}}, DefaultOptions())
	want := mergeScaleBoost * significantScaleBoost
	if got := comp.CommitNode("both").Scale; math.Abs(got-want) > 1e-9 {
		t.Errorf("compound scale = %v, want %v", got, want)
	}
}

func TestComposeGlowOnlyForSignificantCommits(t *testing.T) {
	s := Compose(&RepoData{Commits: []Commit{
		commitFixture("plain", 0),
		{SHA: "rel", Message: "version milestone", Date: day(50)},
	}}, DefaultOptions())

	if got := countKind(s, KindGlow); got != 1 {
		t.Fatalf("glow nodes = %d, want 1", got)
	}
	if s.NodeByID("rel:glow") == nil {
		t.Error("missing glow shell for significant commit")
	}
	if s.NodeByID("plain:glow") != nil {
		t.Error("unexpected glow shell for plain commit")
	}
}

func TestComposeDeterministic(t *testing.T) {
	data := &RepoData{
		Meta: Meta{FullName: "acme/widget"},
		Commits: []Commit{
			commitFixture("aaa", 0),
			commitFixture("bbb", 1, "aaa"),
			{SHA: "ccc", Message: "Release v2", Date: day(2), Parents: []string{"aaa", "bbb"}},
		},
		Branches:     []Branch{{Name: "main", HeadSHA: "ccc"}},
		Contributors: []Contributor{{Login: "alice", Contributions: 10}, {Login: "bob", Contributions: 3}},
		Languages:    map[string]int64{"Go": 900, "Rust": 100},
	}

	a := Compose(data, DefaultOptions())
	b := Compose(data, DefaultOptions())

	if len(a.Nodes) != len(b.Nodes) {
		t.Fatalf("node counts differ: %d vs %d", len(a.Nodes), len(b.Nodes))
	}
	for i := range a.Nodes {
		if a.Nodes[i].Position != b.Nodes[i].Position {
			t.Errorf("node %s position differs across composes", a.Nodes[i].ID)
		}
		if a.Nodes[i].Color != b.Nodes[i].Color {
			t.Errorf("node %s color differs across composes", a.Nodes[i].ID)
		}
	}
	for i := range a.Particles {
		if a.Particles[i] != b.Particles[i] {
			t.Fatal("particle field differs across composes")
		}
	}
}

func TestComposeBranchLabels(t *testing.T) {
	data := &RepoData{
		Commits: []Commit{
			commitFixture("aaa", 0),
			commitFixture("bbb", 1, "aaa"),
		},
		Branches: []Branch{
			{Name: "main", HeadSHA: "bbb"},
			{Name: "feature/helix", HeadSHA: "aaa"},
			{Name: "bugfix/crash", HeadSHA: "aaa"},
			{Name: "experiment", HeadSHA: "aaa"},
			{Name: "orphan", HeadSHA: "nope"},
		},
	}
	s := Compose(data, DefaultOptions())

	if got := countKind(s, KindBranchLabel); got != 4 {
		t.Fatalf("branch labels = %d, want 4 (orphan skipped)", got)
	}

	tests := []struct {
		branch string
		want   string
	}{
		{"main", "main"},
		{"feature/helix", "feature"},
		{"bugfix/crash", "fix"},
		{"experiment", "other"},
	}
	for _, tt := range tests {
		node := s.NodeByID("branch:" + tt.branch)
		if node == nil {
			t.Fatalf("missing label for %s", tt.branch)
		}
		if node.Branch.Decoration != tt.want {
			t.Errorf("decoration(%s) = %s, want %s", tt.branch, node.Branch.Decoration, tt.want)
		}
		head := s.CommitNode(node.Branch.HeadSHA)
		if node.Position.Y <= head.Position.Y {
			t.Errorf("label for %s not above its head commit", tt.branch)
		}
	}
}

func TestBranchDecorationFirstMatchWins(t *testing.T) {
	// main beats feature beats fix, checked in that order.
	if got := branchDecoration("feature/main-sync"); got != "main" {
		t.Errorf("got %s, want main", got)
	}
	if got := branchDecoration("fix/feature-flag"); got != "feature" {
		t.Errorf("got %s, want feature", got)
	}
}

func TestComposeContributorField(t *testing.T) {
	contributors := []Contributor{
		{Login: "small", Contributions: 1},
		{Login: "big", Contributions: 100},
		{Login: "mid", Contributions: 50},
	}
	s := Compose(&RepoData{Contributors: contributors}, DefaultOptions())

	if got := countKind(s, KindContributor); got != 3 {
		t.Fatalf("contributor spheres = %d, want 3", got)
	}
	if got := countKind(s, KindNameLabel); got != 3 {
		t.Fatalf("name labels = %d, want 3", got)
	}

	rBig := s.NodeByID("contributor:big").Radius
	rMid := s.NodeByID("contributor:mid").Radius
	rSmall := s.NodeByID("contributor:small").Radius
	if !(rBig > rMid && rMid > rSmall) {
		t.Errorf("radius not monotonic: big=%v mid=%v small=%v", rBig, rMid, rSmall)
	}
	if rBig != contributorMaxRadius {
		t.Errorf("max contributor radius = %v, want %v", rBig, contributorMaxRadius)
	}
	if rSmall != contributorMinRadius {
		t.Errorf("min contributor radius = %v, want %v", rSmall, contributorMinRadius)
	}

	// Label sits below its sphere.
	label := s.NodeByID("contributor-label:big")
	sphere := s.NodeByID("contributor:big")
	if label.Position.Y >= sphere.Position.Y {
		t.Error("name label not below its sphere")
	}
}

func TestComposeContributorFieldEqualCounts(t *testing.T) {
	contributors := []Contributor{
		{Login: "a", Contributions: 7},
		{Login: "b", Contributions: 7},
		{Login: "c", Contributions: 7},
		{Login: "d", Contributions: 7},
	}
	s := Compose(&RepoData{Contributors: contributors}, DefaultOptions())

	for _, c := range contributors {
		if got := s.NodeByID("contributor:" + c.Login).Radius; got != contributorMinRadius {
			t.Errorf("radius(%s) = %v, want min radius when all counts equal", c.Login, got)
		}
	}
}

func TestComposeContributorGridShape(t *testing.T) {
	var contributors []Contributor
	for i := 0; i < 10; i++ {
		contributors = append(contributors, Contributor{Login: fmt.Sprintf("u%02d", i), Contributions: 10 - i})
	}
	s := Compose(&RepoData{Contributors: contributors}, DefaultOptions())

	// ceil(sqrt(10)) = 4 columns; the grid is centered on the
	// sub-scene origin, so x positions must be symmetric around it.
	var sumX float64
	count := 0
	for _, n := range s.Nodes {
		if n.Kind != KindContributor {
			continue
		}
		local := n.Position.Sub(contributorFieldOffset)
		if math.Abs(local.X) > 1.5*contributorGridSpacing+1e-9 {
			t.Errorf("node %s outside 4-column grid: x=%v", n.ID, local.X)
		}
		sumX += local.X
		count++
	}
	if count != 10 {
		t.Fatalf("contributor count = %d", count)
	}
}

func TestComposeLanguageDonutTwoWedges(t *testing.T) {
	s := Compose(&RepoData{Languages: map[string]int64{"Go": 80, "Rust": 20}}, DefaultOptions())

	if got := countKind(s, KindLanguage); got != 2 {
		t.Fatalf("wedges = %d, want 2", got)
	}

	goWedge := s.NodeByID("language:Go").Language
	rustWedge := s.NodeByID("language:Rust").Language

	if math.Abs(goWedge.StartAngle-math.Pi/2) > 1e-9 {
		t.Errorf("Go start angle = %v, want 12 o'clock (pi/2)", goWedge.StartAngle)
	}
	if math.Abs(goWedge.Sweep-0.8*2*math.Pi) > 1e-9 {
		t.Errorf("Go sweep = %v, want 80%% of 2pi", goWedge.Sweep)
	}
	if math.Abs(rustWedge.Sweep-0.2*2*math.Pi) > 1e-9 {
		t.Errorf("Rust sweep = %v, want 20%% of 2pi", rustWedge.Sweep)
	}
	// Rust starts where Go ends (clockwise).
	if math.Abs(rustWedge.StartAngle-(goWedge.StartAngle-goWedge.Sweep)) > 1e-9 {
		t.Errorf("Rust start angle = %v, want %v", rustWedge.StartAngle, goWedge.StartAngle-goWedge.Sweep)
	}
	if math.Abs(goWedge.Percent-80) > 1e-9 || math.Abs(rustWedge.Percent-20) > 1e-9 {
		t.Errorf("percents = %v/%v, want 80/20", goWedge.Percent, rustWedge.Percent)
	}
}

func TestComposeLanguageDonutSweepSum(t *testing.T) {
	tests := []struct {
		name      string
		languages map[string]int64
		wantFull  bool
	}{
		{
			name:      "no sub-threshold wedges sum to exactly 2pi",
			languages: map[string]int64{"Go": 50, "Rust": 30, "Python": 20},
			wantFull:  true,
		},
		{
			name:      "sub-threshold wedge is excluded",
			languages: map[string]int64{"Go": 100000, "Whitespace": 1},
			wantFull:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Compose(&RepoData{Languages: tt.languages}, DefaultOptions())
			var sum float64
			for _, n := range s.Nodes {
				if n.Kind == KindLanguage {
					sum += n.Language.Sweep
				}
			}
			if sum > 2*math.Pi+1e-9 {
				t.Errorf("sweep sum %v exceeds 2pi", sum)
			}
			if tt.wantFull && math.Abs(sum-2*math.Pi) > 1e-9 {
				t.Errorf("sweep sum = %v, want exactly 2pi", sum)
			}
			if !tt.wantFull && sum >= 2*math.Pi-1e-9 {
				t.Errorf("sweep sum = %v, expected a skipped gap", sum)
			}
		})
	}
}

func TestComposeLanguageDonutSkipsLabelsToo(t *testing.T) {
	s := Compose(&RepoData{Languages: map[string]int64{"Go": 100000, "Whitespace": 1}}, DefaultOptions())
	if s.NodeByID("language:Whitespace") != nil {
		t.Error("sub-threshold wedge should not be drawn")
	}
	if s.NodeByID("language-label:Whitespace") != nil {
		t.Error("sub-threshold wedge should not be labeled")
	}
}

func TestComposeLanguageDonutDegenerate(t *testing.T) {
	// Zero total bytes produces no donut instead of dividing by zero.
	s := Compose(&RepoData{Languages: map[string]int64{"Go": 0}}, DefaultOptions())
	if got := countKind(s, KindLanguage); got != 0 {
		t.Errorf("wedges = %d, want 0 for zero byte total", got)
	}
}

func TestComposeMarkerAndParticles(t *testing.T) {
	s := Compose(&RepoData{Meta: Meta{FullName: "acme/widget"}}, DefaultOptions())

	marker := s.Marker()
	if marker == nil {
		t.Fatal("missing repo marker")
	}
	if marker.Repo.FullName != "acme/widget" {
		t.Errorf("marker repo = %s", marker.Repo.FullName)
	}
	if !marker.Pickable {
		t.Error("marker should be hoverable")
	}
	if len(s.Particles) != particleCount {
		t.Errorf("particles = %d, want %d", len(s.Particles), particleCount)
	}
}

func TestComposeTimelineFollowsHelix(t *testing.T) {
	opts := DefaultOptions()
	commits := []Commit{
		commitFixture("aaa", 0),
		commitFixture("bbb", 1, "aaa"),
		commitFixture("ccc", 2, "bbb"),
	}
	s := Compose(&RepoData{Commits: commits}, opts)

	wantLen := (len(commits)-1)*timelineSamplesPerCommit + 1
	if len(s.TimelinePath) != wantLen {
		t.Fatalf("timeline points = %d, want %d", len(s.TimelinePath), wantLen)
	}
	if s.TimelinePath[0] != opts.helixPoint(0) {
		t.Error("timeline does not start at the helix base")
	}
	last := s.TimelinePath[len(s.TimelinePath)-1]
	if last != opts.helixPoint(float64(len(commits)-1)) {
		t.Error("timeline does not end at the last commit index")
	}
}

func TestComposeDoesNotMutateInput(t *testing.T) {
	commits := []Commit{
		commitFixture("bbb", 1, "aaa"),
		commitFixture("aaa", 0),
	}
	data := &RepoData{Commits: commits}
	Compose(data, DefaultOptions())

	if data.Commits[0].SHA != "bbb" || data.Commits[1].SHA != "aaa" {
		t.Error("input commit order was mutated")
	}
}

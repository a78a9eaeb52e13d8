package interact

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/thep200/repo-visualizer/internal/camera"
	"github.com/thep200/repo-visualizer/internal/scene"
	"github.com/thep200/repo-visualizer/pkg/geom"
)

// sceneFixture composes a small but fully populated scene.
func sceneFixture() *scene.Scene {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return scene.Compose(&scene.RepoData{
		Meta: scene.Meta{FullName: "acme/widget"},
		Commits: []scene.Commit{
			{
				SHA:         "aaaaaaa1234",
				Message:     "Add helix layout\n\nPlaces commits on a spiral.",
				AuthorLogin: "alice",
				Date:        base,
				HTMLURL:     "https://github.com/acme/widget/commit/aaaaaaa1234",
			},
			{
				SHA:     "bbbbbbb5678",
				Message: "fix tooltip",
				Date:    base.AddDate(0, 0, 1),
				HTMLURL: "https://github.com/acme/widget/commit/bbbbbbb5678",
				Parents: []string{"aaaaaaa1234"},
			},
		},
		Contributors: []scene.Contributor{{Login: "alice", Contributions: 12}},
		Languages:    map[string]int64{"Go": 100},
	}, scene.DefaultOptions())
}

// camAimedAt builds a camera 20 units in front of the node looking
// straight at it, so pointer (0, 0) hits it dead center.
func camAimedAt(n *scene.Node) camera.Camera {
	return camera.Camera{
		Position: n.Position.Add(geom.V(0, 0, 20)),
		Target:   n.Position,
		FOV:      60 * math.Pi / 180,
		Aspect:   1,
	}
}

func TestPickNearestNode(t *testing.T) {
	s := sceneFixture()
	target := s.CommitNode("aaaaaaa1234")
	cam := camAimedAt(target)

	hit := Pick(s, cam.PickRay(0, 0))
	if hit == nil {
		t.Fatal("expected a hit")
	}
	if hit.ID != target.ID {
		t.Errorf("picked %s, want %s", hit.ID, target.ID)
	}
}

func TestPickMiss(t *testing.T) {
	s := sceneFixture()
	ray := geom.Ray{Origin: geom.V(0, 500, 0), Dir: geom.V(0, 1, 0)}
	if hit := Pick(s, ray); hit != nil {
		t.Errorf("expected miss, picked %s", hit.ID)
	}
}

func TestPickPrefersNearerHit(t *testing.T) {
	s := sceneFixture()
	near := s.CommitNode("aaaaaaa1234")

	// Aim through the near commit toward a point far behind it; both
	// the commit and anything behind it lie on the ray, the nearer
	// must win.
	ray := geom.Ray{
		Origin: near.Position.Add(geom.V(0, 0, 30)),
		Dir:    geom.V(0, 0, -1),
	}
	hit := Pick(s, ray)
	if hit == nil || hit.ID != near.ID {
		t.Errorf("picked %v, want near commit", hit)
	}
}

func TestHoverTransition(t *testing.T) {
	s := sceneFixture()
	c := NewController(s)
	target := s.CommitNode("aaaaaaa1234")
	cam := camAimedAt(target)

	c.PointerMove(0, 0, 100, 120, cam)

	if got := c.Hovered(); got == nil || got.ID != target.ID {
		t.Fatalf("hovered = %v, want commit", got)
	}
	label := c.Label()
	if label == nil {
		t.Fatal("expected hover label")
	}
	if label.NodeID != target.ID {
		t.Errorf("label node = %s", label.NodeID)
	}
	if label.Position.Y <= target.Position.Y {
		t.Error("label not anchored above the node")
	}
	if label.Text != "Add helix layout" {
		t.Errorf("label text = %q", label.Text)
	}

	// Pointer off into empty space clears everything.
	c.PointerMove(1, 1, 10, 10, camera.Camera{
		Position: geom.V(0, 500, 0),
		Target:   geom.V(0, 1000, 0),
		FOV:      60 * math.Pi / 180,
		Aspect:   1,
	})
	if c.Hovered() != nil {
		t.Error("hover not cleared")
	}
	if c.Label() != nil {
		t.Error("label not torn down")
	}
	if c.TooltipState().Visible {
		t.Error("tooltip not dismissed")
	}
}

func TestTooltipCommitFormatting(t *testing.T) {
	s := sceneFixture()
	c := NewController(s)
	target := s.CommitNode("aaaaaaa1234")

	c.PointerMove(0, 0, 40, 60, camAimedAt(target))
	tip := c.TooltipState()

	if !tip.Visible {
		t.Fatal("tooltip not visible")
	}
	if tip.Kind != "commit" {
		t.Errorf("kind = %s", tip.Kind)
	}
	if tip.Title != "Add helix layout" {
		t.Errorf("title = %q, want first message line", tip.Title)
	}
	joined := strings.Join(tip.Lines, "\n")
	for _, want := range []string{"Places commits on a spiral.", "Author: alice", "2024-03-01", "aaaaaaa"} {
		if !strings.Contains(joined, want) {
			t.Errorf("tooltip lines missing %q: %q", want, joined)
		}
	}
	if strings.Contains(joined, "aaaaaaa1234") {
		t.Error("tooltip shows the full sha instead of the short one")
	}
	if tip.X != 40 || tip.Y != 60 {
		t.Errorf("tooltip position = (%v, %v)", tip.X, tip.Y)
	}
}

func TestTooltipTracksPointerWithoutRederive(t *testing.T) {
	s := sceneFixture()
	c := NewController(s)
	target := s.CommitNode("aaaaaaa1234")
	cam := camAimedAt(target)

	c.PointerMove(0, 0, 40, 60, cam)
	first := c.TooltipState()

	// Small pointer drift that still hits the same node only moves
	// the tooltip.
	c.PointerMove(0.01, 0.01, 45, 66, cam)
	second := c.TooltipState()

	if second.X != 45 || second.Y != 66 {
		t.Errorf("tooltip did not track pointer: (%v, %v)", second.X, second.Y)
	}
	if second.Title != first.Title || second.Kind != first.Kind {
		t.Error("hover content changed although the target did not")
	}
}

func TestTooltipLanguageAndContributorFormatting(t *testing.T) {
	s := sceneFixture()
	c := NewController(s)

	lang := s.NodeByID("language:Go")
	c.PointerMove(0, 0, 0, 0, camAimedAt(lang))
	tip := c.TooltipState()
	if tip.Title != "Go" {
		t.Errorf("language title = %q", tip.Title)
	}
	joined := strings.Join(tip.Lines, "\n")
	if !strings.Contains(joined, "100 bytes") || !strings.Contains(joined, "100.0%") {
		t.Errorf("language tooltip = %q", joined)
	}

	contrib := s.NodeByID("contributor:alice")
	c.PointerMove(0, 0, 0, 0, camAimedAt(contrib))
	tip = c.TooltipState()
	if tip.Title != "alice" {
		t.Errorf("contributor title = %q", tip.Title)
	}
	if !strings.Contains(strings.Join(tip.Lines, "\n"), "12 contributions") {
		t.Errorf("contributor tooltip = %v", tip.Lines)
	}
}

func TestTooltipUnknownAuthor(t *testing.T) {
	s := sceneFixture()
	c := NewController(s)
	target := s.CommitNode("bbbbbbb5678")

	c.PointerMove(0, 0, 0, 0, camAimedAt(target))
	joined := strings.Join(c.TooltipState().Lines, "\n")
	if !strings.Contains(joined, "Author: unknown") {
		t.Errorf("tooltip for authorless commit = %q", joined)
	}
}

func TestClickBehavior(t *testing.T) {
	s := sceneFixture()
	c := NewController(s)

	// No hover: no-op.
	if url, ok := c.Click(); ok || url != "" {
		t.Errorf("click with no hover = %q, %v", url, ok)
	}

	// Commit: its html url.
	c.PointerMove(0, 0, 0, 0, camAimedAt(s.CommitNode("aaaaaaa1234")))
	url, ok := c.Click()
	if !ok || url != "https://github.com/acme/widget/commit/aaaaaaa1234" {
		t.Errorf("commit click = %q, %v", url, ok)
	}

	// Contributor: profile url from login.
	c.PointerMove(0, 0, 0, 0, camAimedAt(s.NodeByID("contributor:alice")))
	url, ok = c.Click()
	if !ok || url != "https://github.com/alice" {
		t.Errorf("contributor click = %q, %v", url, ok)
	}

	// Language wedge: hoverable but not clickable.
	c.PointerMove(0, 0, 0, 0, camAimedAt(s.NodeByID("language:Go")))
	if url, ok := c.Click(); ok || url != "" {
		t.Errorf("language click = %q, %v", url, ok)
	}
}

func TestSetSceneTearsDownHover(t *testing.T) {
	s := sceneFixture()
	c := NewController(s)
	c.PointerMove(0, 0, 0, 0, camAimedAt(s.CommitNode("aaaaaaa1234")))
	if c.Hovered() == nil {
		t.Fatal("expected hover before scene swap")
	}

	c.SetScene(sceneFixture())
	if c.Hovered() != nil || c.Label() != nil || c.TooltipState().Visible {
		t.Error("hover state survived a scene rebuild")
	}
}

func TestSplitMessage(t *testing.T) {
	tests := []struct {
		in        string
		wantTitle string
		wantBody  string
	}{
		{"single line", "single line", ""},
		{"title\nbody", "title", "body"},
		{"title\n\nbody after blank", "title", "body after blank"},
		{"", "", ""},
	}
	for _, tt := range tests {
		title, body := splitMessage(tt.in)
		if title != tt.wantTitle || body != tt.wantBody {
			t.Errorf("splitMessage(%q) = %q, %q", tt.in, title, body)
		}
	}
}

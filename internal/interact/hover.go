package interact

import (
	"fmt"
	"strings"
	"sync"

	"github.com/thep200/repo-visualizer/internal/camera"
	"github.com/thep200/repo-visualizer/internal/scene"
	"github.com/thep200/repo-visualizer/pkg/geom"
)

const shortSHALen = 7

// hoverLabelLift raises the floating description label above the
// hovered object.
const hoverLabelLift = 1.2

// Tooltip is the DOM tooltip contract: the host positions the element
// with id "tooltip" at (X, Y) and fills it with Title and Lines.
type Tooltip struct {
	Visible bool     `json:"visible"`
	Kind    string   `json:"kind,omitempty"`
	Title   string   `json:"title,omitempty"`
	Lines   []string `json:"lines,omitempty"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
}

// HoverLabel is the transient floating description label anchored
// above the hovered object, torn down when hover moves elsewhere.
type HoverLabel struct {
	NodeID   string    `json:"node_id"`
	Icon     string    `json:"icon"`
	Text     string    `json:"text"`
	Position geom.Vec3 `json:"position"`
}

// Controller owns the hover state: at most one hovered node at a time
// plus its transient label and tooltip. All mutation goes through the
// pointer entry points.
type Controller struct {
	mu      sync.Mutex
	scene   *scene.Scene
	hovered *scene.Node
	label   *HoverLabel
	tooltip Tooltip
}

func NewController(s *scene.Scene) *Controller {
	return &Controller{scene: s}
}

// SetScene swaps in a freshly composed scene and tears down any hover
// state that pointed into the old one.
func (c *Controller) SetScene(s *scene.Scene) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scene = s
	c.hovered = nil
	c.label = nil
	c.tooltip = Tooltip{}
}

// PointerMove re-resolves the hover target from the pointer position.
// nx and ny are normalized device coordinates in [-1, 1]; px and py
// are the raw pointer pixels the tooltip is anchored to. The tooltip
// tracks the pointer on every move; hover visuals only change when the
// hit target changes.
func (c *Controller) PointerMove(nx, ny, px, py float64, cam camera.Camera) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.scene == nil {
		return
	}

	hit := Pick(c.scene, cam.PickRay(nx, ny))
	if hit != c.hovered {
		// Tear down the previous hover visuals, then build the new
		// ones if anything is under the pointer.
		c.hovered = hit
		c.label = nil
		c.tooltip = Tooltip{}
		if hit != nil {
			c.label = &HoverLabel{
				NodeID:   hit.ID,
				Icon:     hoverIcon(hit.Kind),
				Text:     hoverText(hit),
				Position: hit.Position.Add(geom.V(0, hit.Radius+hoverLabelLift, 0)),
			}
			c.tooltip = buildTooltip(hit)
		}
	}

	if c.tooltip.Visible {
		c.tooltip.X = px
		c.tooltip.Y = py
	}
}

// Click resolves the external URL of the hovered object. Only commits
// and contributors open anything; everything else, and clicks with no
// active hover, are no-ops.
func (c *Controller) Click() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hovered == nil {
		return "", false
	}
	switch c.hovered.Kind {
	case scene.KindCommit:
		if url := c.hovered.Commit.HTMLURL; url != "" {
			return url, true
		}
	case scene.KindContributor:
		return "https://github.com/" + c.hovered.Contributor.Login, true
	}
	return "", false
}

// Hovered returns the current hover target, nil when nothing is
// hovered.
func (c *Controller) Hovered() *scene.Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hovered
}

// Label returns the floating description label, nil when nothing is
// hovered.
func (c *Controller) Label() *HoverLabel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.label
}

// TooltipState returns the current tooltip contents and position.
func (c *Controller) TooltipState() Tooltip {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tooltip
}

func hoverIcon(k scene.Kind) string {
	switch k {
	case scene.KindCommit:
		return "◉" // fisheye
	case scene.KindLanguage:
		return "◔" // quarter circle
	case scene.KindContributor:
		return "●" // filled circle
	case scene.KindRepoMarker:
		return "⬢" // hexagon
	default:
		return ""
	}
}

func hoverText(n *scene.Node) string {
	switch n.Kind {
	case scene.KindCommit:
		title, _ := splitMessage(n.Commit.Message)
		return title
	case scene.KindLanguage:
		return n.Language.Name
	case scene.KindContributor:
		return n.Contributor.Login
	case scene.KindRepoMarker:
		return n.Repo.FullName
	default:
		return n.Label
	}
}

// splitMessage splits a commit message into its title and body at the
// first newline.
func splitMessage(message string) (string, string) {
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		return message[:i], strings.TrimSpace(message[i+1:])
	}
	return message, ""
}

func shortSHA(sha string) string {
	if len(sha) > shortSHALen {
		return sha[:shortSHALen]
	}
	return sha
}

func buildTooltip(n *scene.Node) Tooltip {
	tip := Tooltip{Visible: true, Kind: n.Kind.String()}

	switch n.Kind {
	case scene.KindCommit:
		info := n.Commit
		title, body := splitMessage(info.Message)
		tip.Title = title
		if body != "" {
			tip.Lines = append(tip.Lines, body)
		}
		author := info.AuthorLogin
		if author == "" {
			author = "unknown"
		}
		tip.Lines = append(tip.Lines,
			fmt.Sprintf("Author: %s", author),
			info.Date.Format("2006-01-02 15:04"),
			shortSHA(info.SHA),
		)

	case scene.KindLanguage:
		info := n.Language
		tip.Title = info.Name
		tip.Lines = append(tip.Lines,
			fmt.Sprintf("%d bytes", info.Bytes),
			fmt.Sprintf("%.1f%%", info.Percent),
		)

	case scene.KindContributor:
		info := n.Contributor
		tip.Title = info.Login
		tip.Lines = append(tip.Lines, fmt.Sprintf("%d contributions", info.Contributions))

	case scene.KindRepoMarker:
		tip.Title = n.Repo.FullName
		tip.Lines = append(tip.Lines, "repository")
	}

	return tip
}

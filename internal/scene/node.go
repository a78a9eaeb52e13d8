package scene

import (
	"encoding/json"

	"github.com/thep200/repo-visualizer/pkg/geom"
)

// Kind discriminates the node variants of the scene graph. Every
// pickable leaf carries its semantic identity directly, so hit testing
// never has to walk an ancestor chain.
type Kind int

const (
	KindCommit Kind = iota
	KindGlow
	KindBranchLabel
	KindContributor
	KindNameLabel
	KindLanguage
	KindLanguageLabel
	KindRepoMarker
)

func (k Kind) String() string {
	switch k {
	case KindCommit:
		return "commit"
	case KindGlow:
		return "glow"
	case KindBranchLabel:
		return "branch-label"
	case KindContributor:
		return "contributor"
	case KindNameLabel:
		return "name-label"
	case KindLanguage:
		return "language"
	case KindLanguageLabel:
		return "language-label"
	case KindRepoMarker:
		return "repo-marker"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the kind by name so hosts never depend on
// the enum ordering.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// CommitInfo is the payload of a KindCommit node.
type CommitInfo struct {
	Commit
	Merge       bool `json:"merge"`
	Significant bool `json:"significant"`
}

// ContributorInfo is the payload of a KindContributor node.
type ContributorInfo struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
}

// LanguageInfo is the payload of a KindLanguage node. Angles are in
// radians; StartAngle is measured from the positive x axis and wedges
// sweep clockwise (decreasing angle) starting at 12 o'clock.
type LanguageInfo struct {
	Name       string  `json:"name"`
	Bytes      int64   `json:"bytes"`
	Percent    float64 `json:"percent"`
	StartAngle float64 `json:"start_angle"`
	Sweep      float64 `json:"sweep"`
}

// BranchInfo is the payload of a KindBranchLabel node. Decoration is
// the label style class: main, feature, fix or other.
type BranchInfo struct {
	Name       string `json:"name"`
	HeadSHA    string `json:"head_sha"`
	Decoration string `json:"decoration"`
}

// RepoInfo is the payload of the KindRepoMarker node.
type RepoInfo struct {
	FullName string `json:"full_name"`
}

// Node is a single object of the scene graph as a tagged variant:
// exactly one payload pointer is set, matching Kind.
type Node struct {
	ID       string     `json:"id"`
	Kind     Kind       `json:"kind"`
	Position geom.Vec3  `json:"position"`
	Radius   float64    `json:"radius"`
	Scale    float64    `json:"scale"`
	Color    geom.Color `json:"color"`
	Pickable bool       `json:"pickable"`
	Label    string     `json:"label,omitempty"`

	Commit      *CommitInfo      `json:"commit,omitempty"`
	Contributor *ContributorInfo `json:"contributor,omitempty"`
	Language    *LanguageInfo    `json:"language,omitempty"`
	Branch      *BranchInfo      `json:"branch,omitempty"`
	Repo        *RepoInfo        `json:"repo,omitempty"`
}

// Connector is one curved tube from a parent commit to its child.
type Connector struct {
	ChildSHA  string      `json:"child_sha"`
	ParentSHA string      `json:"parent_sha"`
	Merge     bool        `json:"merge"`
	Points    []geom.Vec3 `json:"points"`
	Color     geom.Color  `json:"color"`
}

// Particle is one ambient particle. The render loop derives its
// vertical drift from elapsed time and the particle's x position, so
// only the rest position and a seed are stored.
type Particle struct {
	Base geom.Vec3 `json:"base"`
	Seed float64   `json:"seed"`
}

// Scene is the composed graph. Exported fields serialize directly to
// the web host; the lookup maps are rebuilt on composition.
type Scene struct {
	Meta         Meta         `json:"meta"`
	Nodes        []*Node      `json:"nodes"`
	Connectors   []*Connector `json:"connectors"`
	TimelinePath []geom.Vec3  `json:"timeline_path"`
	Particles    []Particle   `json:"particles"`

	byID        map[string]*Node
	commitBySHA map[string]*Node
	authorColor map[string]geom.Color
}

func (s *Scene) add(n *Node) *Node {
	s.Nodes = append(s.Nodes, n)
	if n.ID != "" {
		s.byID[n.ID] = n
	}
	return n
}

// NodeByID resolves a node by its stable identifier. Unknown ids
// return nil.
func (s *Scene) NodeByID(id string) *Node {
	return s.byID[id]
}

// CommitNode resolves the rendered node of a commit sha, nil when the
// sha is not part of the input set.
func (s *Scene) CommitNode(sha string) *Node {
	return s.commitBySHA[sha]
}

// Marker returns the central repository marker node.
func (s *Scene) Marker() *Node {
	return s.byID[repoMarkerID]
}

// AuthorColor returns the display color assigned to a contributor
// login, falling back to the reserved gray for unknown authors.
func (s *Scene) AuthorColor(login string) geom.Color {
	if c, ok := s.authorColor[login]; ok {
		return c
	}
	return fallbackAuthorColor
}

// Pickables returns the nodes that participate in hit testing.
func (s *Scene) Pickables() []*Node {
	out := make([]*Node, 0, len(s.Nodes))
	for _, n := range s.Nodes {
		if n.Pickable {
			out = append(out, n)
		}
	}
	return out
}

// Package scene builds the render-ready 3D scene graph of a GitHub
// repository: the commit helix, parent connectors, branch labels, the
// contributor field, the language donut and the central repo marker.
// Composition is pure: the input data is never mutated and the same
// input always produces the same scene.
package scene

import "time"

// Commit is one commit of the visualized repository. Data arrives
// already fetched and validated; AuthorLogin may be empty when GitHub
// could not resolve the author to an account.
type Commit struct {
	SHA         string    `json:"sha"`
	Message     string    `json:"message"`
	AuthorLogin string    `json:"author_login"`
	Date        time.Time `json:"date"`
	HTMLURL     string    `json:"html_url"`
	Parents     []string  `json:"parents"`
}

// IsMerge reports whether the commit has more than one parent.
func (c Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

type Branch struct {
	Name    string `json:"name"`
	HeadSHA string `json:"head_sha"`
}

type Contributor struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
}

type Meta struct {
	FullName string `json:"full_name"`
}

// RepoData is the complete input of the composer, owned by the caller
// and treated as read-only.
type RepoData struct {
	Meta         Meta             `json:"meta"`
	Commits      []Commit         `json:"commits"`
	Branches     []Branch         `json:"branches"`
	Contributors []Contributor    `json:"contributors"`
	Languages    map[string]int64 `json:"languages"`
}

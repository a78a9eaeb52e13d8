// Gói githubapi cung cấp các DTO cho phản hồi của GitHub API.
// Chuyển đổi phản hồi repository, commit, branch, contributor và
// language thành các cấu trúc Go.

package githubapi

import "time"

type Owner struct {
	Login string `json:"login"`
	ID    int64  `json:"id"`
}

type RepoResponse struct {
	Id              int64  `json:"id"`
	Name            string `json:"name"`
	FullName        string `json:"full_name"`
	Owner           Owner  `json:"owner"`
	StargazersCount int64  `json:"stargazers_count"`
	ForksCount      int64  `json:"forks_count"`
	WatchersCount   int64  `json:"watchers_count"`
	OpenIssuesCount int64  `json:"open_issues_count"`
	DefaultBranch   string `json:"default_branch"`
}

type CommitAuthor struct {
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Date  time.Time `json:"date"`
}

type CommitDetail struct {
	Message string       `json:"message"`
	Author  CommitAuthor `json:"author"`
}

type CommitParent struct {
	SHA string `json:"sha"`
}

type CommitResponse struct {
	SHA     string         `json:"sha"`
	Commit  CommitDetail   `json:"commit"`
	HTMLURL string         `json:"html_url"`
	Author  *Owner         `json:"author"` // nil when GitHub cannot resolve the account
	Parents []CommitParent `json:"parents"`
}

type BranchCommit struct {
	SHA string `json:"sha"`
}

type BranchResponse struct {
	Name   string       `json:"name"`
	Commit BranchCommit `json:"commit"`
}

type ContributorResponse struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
}

// LanguagesResponse ánh xạ tên ngôn ngữ sang số byte.
type LanguagesResponse map[string]int64

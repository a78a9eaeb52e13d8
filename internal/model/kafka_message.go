package model

import "time"

// RepoMessage là cấu trúc dữ liệu Repository gửi tới Kafka
type RepoMessage struct {
	ID            int    `json:"id"`
	User          string `json:"user"`
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	DefaultBranch string `json:"default_branch"`
	StarCount     int    `json:"star_count"`
	ForkCount     int    `json:"fork_count"`
	WatchCount    int    `json:"watch_count"`
}

// CommitMessage là cấu trúc dữ liệu Commit gửi tới Kafka
type CommitMessage struct {
	Hash        string    `json:"hash"`
	Message     string    `json:"message"`
	AuthorLogin string    `json:"author_login"`
	AuthoredAt  time.Time `json:"authored_at"`
	HtmlUrl     string    `json:"html_url"`
	Parents     string    `json:"parents"`
	RepoID      int       `json:"repo_id"`
}

// BranchMessage là cấu trúc dữ liệu Branch gửi tới Kafka
type BranchMessage struct {
	Name     string `json:"name"`
	HeadHash string `json:"head_hash"`
	RepoID   int    `json:"repo_id"`
}

// ContributorMessage là cấu trúc dữ liệu Contributor gửi tới Kafka
type ContributorMessage struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
	RepoID        int    `json:"repo_id"`
}

// LanguageMessage là cấu trúc dữ liệu Language gửi tới Kafka
type LanguageMessage struct {
	Name   string `json:"name"`
	Bytes  int64  `json:"bytes"`
	RepoID int    `json:"repo_id"`
}

package fetcher

import (
	"testing"
	"time"

	githubapi "github.com/thep200/repo-visualizer/internal/github_api"
)

func TestToRepoData(t *testing.T) {
	authored := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	repoResp := &githubapi.RepoResponse{
		Id:       42,
		Name:     "widget",
		FullName: "acme/widget",
		Owner:    githubapi.Owner{Login: "acme"},
	}
	commits := []githubapi.CommitResponse{
		{
			SHA:     "abc123",
			HTMLURL: "https://github.com/acme/widget/commit/abc123",
			Commit: githubapi.CommitDetail{
				Message: "Merge branch feature",
				Author:  githubapi.CommitAuthor{Name: "Alice", Date: authored},
			},
			Author:  &githubapi.Owner{Login: "alice"},
			Parents: []githubapi.CommitParent{{SHA: "p1"}, {SHA: "p2"}},
		},
		{
			SHA:    "def456",
			Commit: githubapi.CommitDetail{Message: "initial", Author: githubapi.CommitAuthor{Date: authored.Add(-time.Hour)}},
			// Author trống khi GitHub không xác định được tài khoản
		},
	}
	branches := []githubapi.BranchResponse{
		{Name: "main", Commit: githubapi.BranchCommit{SHA: "abc123"}},
	}
	contributors := []githubapi.ContributorResponse{
		{Login: "alice", Contributions: 10},
	}
	languages := githubapi.LanguagesResponse{"Go": 1000}

	data := toRepoData(repoResp, commits, branches, contributors, languages)

	if data.Meta.FullName != "acme/widget" {
		t.Errorf("FullName = %q", data.Meta.FullName)
	}
	if len(data.Commits) != 2 {
		t.Fatalf("commits = %d, want 2", len(data.Commits))
	}

	merge := data.Commits[0]
	if merge.SHA != "abc123" || merge.AuthorLogin != "alice" || merge.HTMLURL == "" {
		t.Errorf("merge commit = %+v", merge)
	}
	if len(merge.Parents) != 2 || !merge.IsMerge() {
		t.Errorf("parents = %v", merge.Parents)
	}
	if !merge.Date.Equal(authored) {
		t.Errorf("date = %v, want %v", merge.Date, authored)
	}

	if data.Commits[1].AuthorLogin != "" {
		t.Errorf("authorless commit got login %q", data.Commits[1].AuthorLogin)
	}

	if len(data.Branches) != 1 || data.Branches[0].HeadSHA != "abc123" {
		t.Errorf("branches = %+v", data.Branches)
	}
	if len(data.Contributors) != 1 || data.Contributors[0].Contributions != 10 {
		t.Errorf("contributors = %+v", data.Contributors)
	}
	if data.Languages["Go"] != 1000 {
		t.Errorf("languages = %v", data.Languages)
	}
}

func TestFactoryFetcherRejectsUnknownVersion(t *testing.T) {
	if _, err := FactoryFetcher("v9", nil, nil, nil); err == nil {
		t.Fatal("expected error for unknown version")
	}
}

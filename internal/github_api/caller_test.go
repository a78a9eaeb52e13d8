package githubapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/thep200/repo-visualizer/cfg"
	"github.com/thep200/repo-visualizer/pkg/log"
)

func testCaller(t *testing.T, handler http.Handler) (*Caller, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config, _ := cfg.NewMockLoader()
	loaded, _ := config.Load()
	loaded.GithubApi.RepoApiUrl = server.URL + "/repos/{user}/{repo}"
	loaded.GithubApi.CommitsApiUrl = server.URL + "/repos/{user}/{repo}/commits"
	loaded.GithubApi.BranchesApiUrl = server.URL + "/repos/{user}/{repo}/branches"
	loaded.GithubApi.ContributorsApiUrl = server.URL + "/repos/{user}/{repo}/contributors"
	loaded.GithubApi.LanguagesApiUrl = server.URL + "/repos/{user}/{repo}/languages"

	logger, _ := log.NewNopLogger()
	return NewCaller(logger, loaded, 100), server
}

func TestCallCommitsDecodesParentsAndAuthor(t *testing.T) {
	payload := `[
		{
			"sha": "abc123",
			"html_url": "https://github.com/acme/widget/commit/abc123",
			"commit": {
				"message": "Merge branch feature",
				"author": {"name": "Alice", "email": "a@example.com", "date": "2024-03-01T10:00:00Z"}
			},
			"author": {"login": "alice", "id": 1},
			"parents": [{"sha": "p1"}, {"sha": "p2"}]
		},
		{
			"sha": "def456",
			"html_url": "https://github.com/acme/widget/commit/def456",
			"commit": {
				"message": "initial",
				"author": {"name": "Ghost", "email": "g@example.com", "date": "2024-02-01T10:00:00Z"}
			},
			"author": null,
			"parents": []
		}
	]`
	caller, _ := testCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))

	commits, err := caller.CallCommits(context.Background(), "acme", "widget", 0)
	if err != nil {
		t.Fatalf("CallCommits: %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("commits = %d, want 2", len(commits))
	}

	merge := commits[0]
	if merge.SHA != "abc123" || len(merge.Parents) != 2 {
		t.Errorf("merge commit = %+v", merge)
	}
	if merge.Author == nil || merge.Author.Login != "alice" {
		t.Errorf("author = %+v", merge.Author)
	}

	// Unresolvable accounts decode to a nil author, not an error.
	if commits[1].Author != nil {
		t.Errorf("expected nil author, got %+v", commits[1].Author)
	}
}

func TestCallCommitsEmptyRepository(t *testing.T) {
	caller, _ := testCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	commits, err := caller.CallCommits(context.Background(), "acme", "empty", 0)
	if err != nil {
		t.Fatalf("CallCommits: %v", err)
	}
	if len(commits) != 0 {
		t.Errorf("commits = %d, want 0", len(commits))
	}
}

func TestCallLanguages(t *testing.T) {
	caller, _ := testCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Go": 12345, "Makefile": 200}`))
	}))

	languages, err := caller.CallLanguages(context.Background(), "acme", "widget")
	if err != nil {
		t.Fatalf("CallLanguages: %v", err)
	}
	if languages["Go"] != 12345 || languages["Makefile"] != 200 {
		t.Errorf("languages = %v", languages)
	}
}

func TestCallBranches(t *testing.T) {
	caller, _ := testCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"name": "main", "commit": {"sha": "abc123"}}]`))
	}))

	branches, err := caller.CallBranches(context.Background(), "acme", "widget")
	if err != nil {
		t.Fatalf("CallBranches: %v", err)
	}
	if len(branches) != 1 || branches[0].Name != "main" || branches[0].Commit.SHA != "abc123" {
		t.Errorf("branches = %+v", branches)
	}
}

func TestCallRepoNotFound(t *testing.T) {
	caller, _ := testCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	if _, err := caller.CallRepo(context.Background(), "acme", "missing"); err == nil {
		t.Fatal("expected error for missing repository")
	}
}

func TestRateLimitHandling(t *testing.T) {
	caller, _ := testCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", "4102444800")
		w.WriteHeader(http.StatusForbidden)
	}))

	if _, err := caller.CallContributors(context.Background(), "acme", "widget"); err == nil {
		t.Fatal("expected rate limit error")
	}
}

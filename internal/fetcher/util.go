package fetcher

import (
	"context"
	"time"

	"github.com/thep200/repo-visualizer/cfg"
	githubapi "github.com/thep200/repo-visualizer/internal/github_api"
	"github.com/thep200/repo-visualizer/internal/limiter"
	"github.com/thep200/repo-visualizer/internal/scene"
)

// waitForSlot chặn cho đến khi rate limiter cho phép request tiếp theo
func waitForSlot(ctx context.Context, rl *limiter.RateLimiter, throttleDelay int) error {
	return rl.Wait(ctx, time.Duration(throttleDelay)*time.Millisecond)
}

// callAll gọi lần lượt các endpoint GitHub API cần cho một snapshot,
// tôn trọng rate limiter giữa các lần gọi
func callAll(
	ctx context.Context,
	caller *githubapi.Caller,
	rl *limiter.RateLimiter,
	config *cfg.Config,
	user, repo string,
) (*githubapi.RepoResponse, []githubapi.CommitResponse, []githubapi.BranchResponse, []githubapi.ContributorResponse, githubapi.LanguagesResponse, error) {
	throttle := config.GithubApi.ThrottleDelay

	if err := waitForSlot(ctx, rl, throttle); err != nil {
		return nil, nil, nil, nil, nil, err
	}
	repoResp, err := caller.CallRepo(ctx, user, repo)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}

	if err := waitForSlot(ctx, rl, throttle); err != nil {
		return nil, nil, nil, nil, nil, err
	}
	commits, err := caller.CallCommits(ctx, user, repo, 0)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}

	if err := waitForSlot(ctx, rl, throttle); err != nil {
		return nil, nil, nil, nil, nil, err
	}
	branches, err := caller.CallBranches(ctx, user, repo)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}

	if err := waitForSlot(ctx, rl, throttle); err != nil {
		return nil, nil, nil, nil, nil, err
	}
	contributors, err := caller.CallContributors(ctx, user, repo)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}

	if err := waitForSlot(ctx, rl, throttle); err != nil {
		return nil, nil, nil, nil, nil, err
	}
	languages, err := caller.CallLanguages(ctx, user, repo)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}

	return repoResp, commits, branches, contributors, languages, nil
}

// toRepoData chuyển đổi các response từ GitHub API thành snapshot scene
func toRepoData(
	repoResp *githubapi.RepoResponse,
	commits []githubapi.CommitResponse,
	branches []githubapi.BranchResponse,
	contributors []githubapi.ContributorResponse,
	languages githubapi.LanguagesResponse,
) *scene.RepoData {
	data := &scene.RepoData{
		Meta:      scene.Meta{FullName: repoResp.FullName},
		Languages: map[string]int64{},
	}

	for _, c := range commits {
		parents := make([]string, 0, len(c.Parents))
		for _, p := range c.Parents {
			parents = append(parents, p.SHA)
		}
		commit := scene.Commit{
			SHA:     c.SHA,
			Message: c.Commit.Message,
			Date:    c.Commit.Author.Date,
			HTMLURL: c.HTMLURL,
			Parents: parents,
		}
		if c.Author != nil {
			commit.AuthorLogin = c.Author.Login
		}
		data.Commits = append(data.Commits, commit)
	}

	for _, b := range branches {
		data.Branches = append(data.Branches, scene.Branch{
			Name:    b.Name,
			HeadSHA: b.Commit.SHA,
		})
	}

	for _, c := range contributors {
		data.Contributors = append(data.Contributors, scene.Contributor{
			Login:         c.Login,
			Contributions: c.Contributions,
		})
	}

	for name, bytes := range languages {
		data.Languages[name] = bytes
	}

	return data
}

// Gói githubapi cung cấp một caller cho GitHub API, để lấy dữ liệu
// của một repository: metadata, commits, branches, contributors và
// languages. Nó xử lý xác thực bằng mã thông báo truy cập nếu được
// cung cấp và tôn trọng rate limit của GitHub.

package githubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/thep200/repo-visualizer/cfg"
	"github.com/thep200/repo-visualizer/pkg/log"
)

type Caller struct {
	Logger  log.Logger
	Config  *cfg.Config
	PerPage int
	client  *http.Client
}

func NewCaller(logger log.Logger, config *cfg.Config, perPage int) *Caller {
	if perPage <= 0 || perPage > 100 {
		perPage = 100
	}
	return &Caller{
		Logger:  logger,
		Config:  config,
		PerPage: perPage,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// HandleRateLimit xử lý rate limit dựa trên thông tin từ header API
func (c *Caller) HandleRateLimit(ctx context.Context, resp *http.Response) (bool, error) {
	rateRemaining := resp.Header.Get("X-RateLimit-Remaining")

	if resp.StatusCode == http.StatusForbidden && rateRemaining == "0" {
		resetTimeStr := resp.Header.Get("X-RateLimit-Reset")
		resetTimeInt, err := strconv.ParseInt(resetTimeStr, 10, 64)

		if err != nil {
			// Nếu không thể parse được thời gian reset, sử dụng cấu hình mặc định
			waitTime := time.Duration(c.Config.GithubApi.RateLimitResetMin) * time.Minute
			c.Logger.Warn(ctx, "Rate limit hit! Không thể xác định thời gian reset chính xác. Chờ %v phút", c.Config.GithubApi.RateLimitResetMin)
			return true, fmt.Errorf("đạt giới hạn API, chờ %v", waitTime)
		}

		resetTime := time.Unix(resetTimeInt, 0)
		waitTime := time.Until(resetTime)
		if waitTime < 0 {
			waitTime = time.Duration(c.Config.GithubApi.RateLimitResetMin) * time.Minute
		}

		c.Logger.Warn(ctx, "Rate limit hit! GitHub API rate limit đạt ngưỡng. Cần chờ %v đến %v để tiếp tục",
			waitTime.Round(time.Second), resetTime.Format(time.RFC3339))

		return true, fmt.Errorf("đạt giới hạn API, thời gian reset: %v", resetTime.Format(time.RFC3339))
	}

	return false, nil
}

// endpoint thay {user} và {repo} trong URL mẫu từ cấu hình
func (c *Caller) endpoint(template, user, repo string) string {
	url := strings.ReplaceAll(template, "{user}", user)
	return strings.ReplaceAll(url, "{repo}", repo)
}

// get thực hiện một request GET với headers chuẩn và decode JSON
func (c *Caller) get(ctx context.Context, url string, out interface{}) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.Logger.Error(ctx, "Cannot request: %v", err)
		return 0, err
	}

	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.Config.GithubApi.AccessToken != "" {
		req.Header.Set("Authorization", fmt.Sprintf("token %s", c.Config.GithubApi.AccessToken))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.Logger.Error(ctx, "cannot send request: %v", err)
		return 0, err
	}
	defer resp.Body.Close()

	// Kiểm tra rate limit
	isRateLimited, rateLimitErr := c.HandleRateLimit(ctx, resp)
	if isRateLimited {
		return resp.StatusCode, rateLimitErr
	}

	if resp.StatusCode == http.StatusNotFound {
		return resp.StatusCode, nil
	}

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, fmt.Errorf("cannot received response: %v", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, err
	}
	return resp.StatusCode, nil
}

// CallRepo lấy metadata của một repository
func (c *Caller) CallRepo(ctx context.Context, user, repo string) (*RepoResponse, error) {
	url := c.endpoint(c.Config.GithubApi.RepoApiUrl, user, repo)
	c.Logger.Info(ctx, "Calling GitHub API: %s", url)

	out := &RepoResponse{}
	status, err := c.get(ctx, url, out)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("repository not found: %s/%s", user, repo)
	}
	return out, nil
}

// CallCommits lấy danh sách commit của repository, phân trang cho đến
// khi hết dữ liệu hoặc đạt maxCommits.
func (c *Caller) CallCommits(ctx context.Context, user, repo string, maxCommits int) ([]CommitResponse, error) {
	base := c.endpoint(c.Config.GithubApi.CommitsApiUrl, user, repo)

	var all []CommitResponse
	for page := 1; ; page++ {
		url := fmt.Sprintf("%s?per_page=%d&page=%d", base, c.PerPage, page)

		var commits []CommitResponse
		status, err := c.get(ctx, url, &commits)
		if err != nil {
			return nil, err
		}
		if status == http.StatusNotFound {
			// Repository rỗng không có commit nào
			return all, nil
		}

		all = append(all, commits...)
		if len(commits) < c.PerPage {
			break
		}
		if maxCommits > 0 && len(all) >= maxCommits {
			all = all[:maxCommits]
			break
		}
	}

	c.Logger.Info(ctx, "Fetched %d commits for %s/%s", len(all), user, repo)
	return all, nil
}

// CallBranches lấy danh sách branch của repository
func (c *Caller) CallBranches(ctx context.Context, user, repo string) ([]BranchResponse, error) {
	url := fmt.Sprintf("%s?per_page=%d", c.endpoint(c.Config.GithubApi.BranchesApiUrl, user, repo), c.PerPage)

	var branches []BranchResponse
	status, err := c.get(ctx, url, &branches)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return []BranchResponse{}, nil
	}
	return branches, nil
}

// CallContributors lấy danh sách contributor của repository
func (c *Caller) CallContributors(ctx context.Context, user, repo string) ([]ContributorResponse, error) {
	url := fmt.Sprintf("%s?per_page=%d", c.endpoint(c.Config.GithubApi.ContributorsApiUrl, user, repo), c.PerPage)

	var contributors []ContributorResponse
	status, err := c.get(ctx, url, &contributors)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return []ContributorResponse{}, nil
	}
	return contributors, nil
}

// CallLanguages lấy số byte theo ngôn ngữ của repository
func (c *Caller) CallLanguages(ctx context.Context, user, repo string) (LanguagesResponse, error) {
	url := c.endpoint(c.Config.GithubApi.LanguagesApiUrl, user, repo)

	languages := LanguagesResponse{}
	status, err := c.get(ctx, url, &languages)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return LanguagesResponse{}, nil
	}
	return languages, nil
}

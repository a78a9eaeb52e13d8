// Fetcher version 1
// Lấy dữ liệu repository trực tiếp từ GitHub API và ghi snapshot
// vào database qua gorm, sau đó trả về dữ liệu để dựng scene.

package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/thep200/repo-visualizer/cfg"
	githubapi "github.com/thep200/repo-visualizer/internal/github_api"
	"github.com/thep200/repo-visualizer/internal/limiter"
	"github.com/thep200/repo-visualizer/internal/model"
	"github.com/thep200/repo-visualizer/internal/scene"
	"github.com/thep200/repo-visualizer/pkg/db"
	"github.com/thep200/repo-visualizer/pkg/log"
)

const fetcherPerPage = 100

type FetcherV1 struct {
	Logger        log.Logger
	Config        *cfg.Config
	Mysql         *db.Mysql
	Caller        *githubapi.Caller
	RepoMd        *model.Repo
	CommitMd      *model.Commit
	BranchMd      *model.Branch
	ContributorMd *model.Contributor
	LanguageMd    *model.Language
	rateLimiter   *limiter.RateLimiter
}

func NewFetcherV1(logger log.Logger, config *cfg.Config, mysql *db.Mysql) (*FetcherV1, error) {
	repoMd, err := model.NewRepo(config, logger, mysql)
	if err != nil {
		return nil, fmt.Errorf("failed to create repo model: %w", err)
	}

	commitMd, err := model.NewCommit(config, logger, mysql)
	if err != nil {
		return nil, fmt.Errorf("failed to create commit model: %w", err)
	}

	branchMd, err := model.NewBranch(config, logger, mysql)
	if err != nil {
		return nil, fmt.Errorf("failed to create branch model: %w", err)
	}

	contributorMd, err := model.NewContributor(config, logger, mysql)
	if err != nil {
		return nil, fmt.Errorf("failed to create contributor model: %w", err)
	}

	languageMd, err := model.NewLanguage(config, logger, mysql)
	if err != nil {
		return nil, fmt.Errorf("failed to create language model: %w", err)
	}

	return &FetcherV1{
		Logger:        logger,
		Config:        config,
		Mysql:         mysql,
		Caller:        githubapi.NewCaller(logger, config, fetcherPerPage),
		RepoMd:        repoMd,
		CommitMd:      commitMd,
		BranchMd:      branchMd,
		ContributorMd: contributorMd,
		LanguageMd:    languageMd,
		rateLimiter:   limiter.NewRateLimiter(config.GithubApi.RequestsPerSecond),
	}, nil
}

func (f *FetcherV1) Fetch(ctx context.Context, user, repo string) (*scene.RepoData, error) {
	startTime := time.Now()
	f.Logger.Info(ctx, "Bắt đầu lấy dữ liệu repository %s/%s vào %s", user, repo, startTime.Format(time.RFC3339))

	repoResp, commits, branches, contributors, languages, err := callAll(ctx, f.Caller, f.rateLimiter, f.Config, user, repo)
	if err != nil {
		return nil, err
	}

	if err := f.persist(ctx, repoResp, commits, branches, contributors, languages); err != nil {
		return nil, err
	}

	f.Logger.Info(ctx, "Hoàn thành lấy dữ liệu %s/%s sau %v: %d commits, %d branches, %d contributors, %d languages",
		user, repo, time.Since(startTime).Round(time.Millisecond), len(commits), len(branches), len(contributors), len(languages))

	return toRepoData(repoResp, commits, branches, contributors, languages), nil
}

// persist ghi toàn bộ snapshot vào database theo từng batch
func (f *FetcherV1) persist(
	ctx context.Context,
	repoResp *githubapi.RepoResponse,
	commits []githubapi.CommitResponse,
	branches []githubapi.BranchResponse,
	contributors []githubapi.ContributorResponse,
	languages githubapi.LanguagesResponse,
) error {
	repoID := int(repoResp.Id)

	err := f.RepoMd.Create(
		repoID,
		repoResp.Owner.Login,
		repoResp.Name,
		repoResp.FullName,
		repoResp.DefaultBranch,
		int(repoResp.StargazersCount),
		int(repoResp.ForksCount),
		int(repoResp.WatchersCount),
	)
	if err != nil {
		f.Logger.Error(ctx, "Không thể lưu repository: %v", err)
		return err
	}

	commitMsgs := make([]model.CommitMessage, 0, len(commits))
	for _, c := range commits {
		parents := make([]string, 0, len(c.Parents))
		for _, p := range c.Parents {
			parents = append(parents, p.SHA)
		}
		msg := model.CommitMessage{
			Hash:       c.SHA,
			Message:    c.Commit.Message,
			AuthoredAt: c.Commit.Author.Date,
			HtmlUrl:    c.HTMLURL,
			Parents:    model.JoinParentHashes(parents),
			RepoID:     repoID,
		}
		if c.Author != nil {
			msg.AuthorLogin = c.Author.Login
		}
		commitMsgs = append(commitMsgs, msg)
	}
	if err := f.CommitMd.CreateBatch(commitMsgs); err != nil {
		f.Logger.Error(ctx, "Không thể lưu commits: %v", err)
		return err
	}

	branchMsgs := make([]model.BranchMessage, 0, len(branches))
	for _, b := range branches {
		branchMsgs = append(branchMsgs, model.BranchMessage{
			Name:     b.Name,
			HeadHash: b.Commit.SHA,
			RepoID:   repoID,
		})
	}
	if err := f.BranchMd.CreateBatch(branchMsgs); err != nil {
		f.Logger.Error(ctx, "Không thể lưu branches: %v", err)
		return err
	}

	contributorMsgs := make([]model.ContributorMessage, 0, len(contributors))
	for _, c := range contributors {
		contributorMsgs = append(contributorMsgs, model.ContributorMessage{
			Login:         c.Login,
			Contributions: c.Contributions,
			RepoID:        repoID,
		})
	}
	if err := f.ContributorMd.CreateBatch(contributorMsgs); err != nil {
		f.Logger.Error(ctx, "Không thể lưu contributors: %v", err)
		return err
	}

	languageMsgs := make([]model.LanguageMessage, 0, len(languages))
	for name, bytes := range languages {
		languageMsgs = append(languageMsgs, model.LanguageMessage{
			Name:   name,
			Bytes:  bytes,
			RepoID: repoID,
		})
	}
	if err := f.LanguageMd.CreateBatch(languageMsgs); err != nil {
		f.Logger.Error(ctx, "Không thể lưu languages: %v", err)
		return err
	}

	return nil
}

// LoadSnapshot đọc lại snapshot đã lưu trong database mà không gọi GitHub API
func (f *FetcherV1) LoadSnapshot(ctx context.Context, fullName string) (*scene.RepoData, error) {
	repo, err := f.RepoMd.FindByFullName(fullName)
	if err != nil {
		return nil, fmt.Errorf("no stored snapshot for %s: %w", fullName, err)
	}

	commits, err := f.CommitMd.ListByRepoID(repo.ID)
	if err != nil {
		return nil, err
	}
	branches, err := f.BranchMd.ListByRepoID(repo.ID)
	if err != nil {
		return nil, err
	}
	contributors, err := f.ContributorMd.ListByRepoID(repo.ID)
	if err != nil {
		return nil, err
	}
	languages, err := f.LanguageMd.ListByRepoID(repo.ID)
	if err != nil {
		return nil, err
	}

	data := &scene.RepoData{
		Meta:      scene.Meta{FullName: repo.FullName},
		Languages: map[string]int64{},
	}
	for _, c := range commits {
		data.Commits = append(data.Commits, scene.Commit{
			SHA:         c.Hash,
			Message:     c.Message,
			AuthorLogin: c.AuthorLogin,
			Date:        c.AuthoredAt,
			HTMLURL:     c.HtmlUrl,
			Parents:     c.ParentHashes(),
		})
	}
	for _, b := range branches {
		data.Branches = append(data.Branches, scene.Branch{Name: b.Name, HeadSHA: b.HeadHash})
	}
	for _, c := range contributors {
		data.Contributors = append(data.Contributors, scene.Contributor{Login: c.Login, Contributions: c.Contributions})
	}
	for _, l := range languages {
		data.Languages[l.Name] = l.Bytes
	}

	f.Logger.Info(ctx, "Đã nạp snapshot %s từ database: %d commits", fullName, len(data.Commits))
	return data, nil
}

// Fetcher v2
// Dựa trên FetcherV1 nhưng sử dụng Kafka thay vì ghi trực tiếp vào database.
// Gửi snapshot vào các Kafka topic và có các consumer để xử lý dữ liệu.

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
	kafkapkg "github.com/thep200/repo-visualizer/pkg/kafka"
	"github.com/thep200/repo-visualizer/pkg/log"
)

type FetcherV2 struct {
	Logger      log.Logger
	Config      *cfg.Config
	Mysql       *db.Mysql
	Caller      *githubapi.Caller
	rateLimiter *limiter.RateLimiter

	// Kafka producers
	repoProducer        *kafkapkg.Producer
	commitProducer      *kafkapkg.Producer
	branchProducer      *kafkapkg.Producer
	contributorProducer *kafkapkg.Producer
	languageProducer    *kafkapkg.Producer
}

func NewFetcherV2(logger log.Logger, config *cfg.Config, mysql *db.Mysql) (*FetcherV2, error) {
	return &FetcherV2{
		Logger:              logger,
		Config:              config,
		Mysql:               mysql,
		Caller:              githubapi.NewCaller(logger, config, fetcherPerPage),
		rateLimiter:         limiter.NewRateLimiter(config.GithubApi.RequestsPerSecond),
		repoProducer:        kafkapkg.NewProducer(config, logger, config.Kafka.Producer.TopicRepo),
		commitProducer:      kafkapkg.NewProducer(config, logger, config.Kafka.Producer.TopicCommit),
		branchProducer:      kafkapkg.NewProducer(config, logger, config.Kafka.Producer.TopicBranch),
		contributorProducer: kafkapkg.NewProducer(config, logger, config.Kafka.Producer.TopicContributor),
		languageProducer:    kafkapkg.NewProducer(config, logger, config.Kafka.Producer.TopicLanguage),
	}, nil
}

func (f *FetcherV2) Fetch(ctx context.Context, user, repo string) (*scene.RepoData, error) {
	startTime := time.Now()
	f.Logger.Info(ctx, "Bắt đầu lấy dữ liệu repository %s/%s (kafka) vào %s", user, repo, startTime.Format(time.RFC3339))

	repoResp, commits, branches, contributors, languages, err := callAll(ctx, f.Caller, f.rateLimiter, f.Config, user, repo)
	if err != nil {
		return nil, err
	}

	if err := f.publish(ctx, repoResp, commits, branches, contributors, languages); err != nil {
		return nil, err
	}

	f.Logger.Info(ctx, "Đã gửi snapshot %s/%s vào Kafka sau %v", user, repo, time.Since(startTime).Round(time.Millisecond))
	return toRepoData(repoResp, commits, branches, contributors, languages), nil
}

// publish gửi từng phần của snapshot vào topic tương ứng
func (f *FetcherV2) publish(
	ctx context.Context,
	repoResp *githubapi.RepoResponse,
	commits []githubapi.CommitResponse,
	branches []githubapi.BranchResponse,
	contributors []githubapi.ContributorResponse,
	languages githubapi.LanguagesResponse,
) error {
	repoID := int(repoResp.Id)
	repoKey := fmt.Sprintf("%d", repoID)

	repoMsg := model.RepoMessage{
		ID:            repoID,
		User:          repoResp.Owner.Login,
		Name:          repoResp.Name,
		FullName:      repoResp.FullName,
		DefaultBranch: repoResp.DefaultBranch,
		StarCount:     int(repoResp.StargazersCount),
		ForkCount:     int(repoResp.ForksCount),
		WatchCount:    int(repoResp.WatchersCount),
	}
	if err := f.repoProducer.Publish(ctx, "repo", repoMsg); err != nil {
		f.Logger.Error(ctx, "Không thể gửi repo message: %v", err)
		return err
	}

	commitMsgs := make([]interface{}, 0, len(commits))
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
	if err := f.commitProducer.PublishBatch(ctx, "commit", commitMsgs); err != nil {
		f.Logger.Error(ctx, "Không thể gửi commit messages: %v", err)
		return err
	}

	branchMsgs := make([]interface{}, 0, len(branches))
	for _, b := range branches {
		branchMsgs = append(branchMsgs, model.BranchMessage{Name: b.Name, HeadHash: b.Commit.SHA, RepoID: repoID})
	}
	if err := f.branchProducer.PublishBatch(ctx, "branch", branchMsgs); err != nil {
		f.Logger.Error(ctx, "Không thể gửi branch messages: %v", err)
		return err
	}

	contributorMsgs := make([]interface{}, 0, len(contributors))
	for _, c := range contributors {
		contributorMsgs = append(contributorMsgs, model.ContributorMessage{Login: c.Login, Contributions: c.Contributions, RepoID: repoID})
	}
	if err := f.contributorProducer.PublishBatch(ctx, "contributor", contributorMsgs); err != nil {
		f.Logger.Error(ctx, "Không thể gửi contributor messages: %v", err)
		return err
	}

	languageMsgs := make([]interface{}, 0, len(languages))
	for name, bytes := range languages {
		languageMsgs = append(languageMsgs, model.LanguageMessage{Name: name, Bytes: bytes, RepoID: repoID})
	}
	if err := f.languageProducer.PublishBatch(ctx, "language", languageMsgs); err != nil {
		f.Logger.Error(ctx, "Không thể gửi language messages: %v", err)
		return err
	}

	f.Logger.Info(ctx, "Đã publish repo=%s: %d commits, %d branches, %d contributors, %d languages",
		repoKey, len(commits), len(branches), len(contributors), len(languages))
	return nil
}

// Close đóng toàn bộ producer
func (f *FetcherV2) Close() error {
	producers := []*kafkapkg.Producer{
		f.repoProducer, f.commitProducer, f.branchProducer, f.contributorProducer, f.languageProducer,
	}
	var firstErr error
	for _, p := range producers {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

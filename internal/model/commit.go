package model

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/thep200/repo-visualizer/cfg"
	"github.com/thep200/repo-visualizer/pkg/db"
	"github.com/thep200/repo-visualizer/pkg/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Commit struct {
	Model
	Hash        string    `json:"hash" gorm:"column:hash;type:varchar(64);uniqueIndex:idx_commits_repo_hash,priority:2;not null"`
	Message     string    `json:"message" gorm:"column:message;type:text"`
	AuthorLogin string    `json:"author_login" gorm:"column:author_login;type:varchar(255)"`
	AuthoredAt  time.Time `json:"authored_at" gorm:"column:authored_at"`
	HtmlUrl     string    `json:"html_url" gorm:"column:html_url;type:varchar(511)"`
	Parents     string    `json:"parents" gorm:"column:parents;type:text"`
	RepoID      int       `json:"repo_id" gorm:"column:repo_id;uniqueIndex:idx_commits_repo_hash,priority:1;not null"`
}

func NewCommit(config *cfg.Config, logger log.Logger, db *db.Mysql) (*Commit, error) {
	commit := &Commit{
		Model: Model{
			Config: config,
			Logger: logger,
			Mysql:  db,
		},
	}
	return commit, nil
}

func (c *Commit) TableName() string {
	return "commits"
}

// ParentHashes tách cột parents (ngăn cách bằng dấu phẩy) thành slice
func (c *Commit) ParentHashes() []string {
	if c.Parents == "" {
		return nil
	}
	return strings.Split(c.Parents, ",")
}

func JoinParentHashes(parents []string) string {
	return strings.Join(parents, ",")
}

func (c *Commit) CreateBatch(commitMessages []CommitMessage) error {
	db, err := c.Mysql.Db()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	commits := make([]Commit, 0, len(commitMessages))
	now := time.Now()

	for _, msg := range commitMessages {
		commit := Commit{
			Hash:        TruncateString(msg.Hash, 64),
			Message:     msg.Message,
			AuthorLogin: TruncateString(msg.AuthorLogin, 250),
			AuthoredAt:  msg.AuthoredAt,
			HtmlUrl:     TruncateString(msg.HtmlUrl, 500),
			Parents:     msg.Parents,
			RepoID:      msg.RepoID,
		}
		commit.CreatedAt = now
		commit.UpdatedAt = now
		commits = append(commits, commit)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "repo_id"}, {Name: "hash"}},
			DoUpdates: clause.AssignmentColumns([]string{"message", "author_login", "authored_at", "html_url", "parents", "updated_at"}),
		}).CreateInBatches(commits, 100)

		if result.Error != nil {
			return fmt.Errorf("failed to batch create commits: %w", result.Error)
		}

		return nil
	})
}

func (c *Commit) ListByRepoID(repoID int) ([]Commit, error) {
	ctx := context.Background()
	db, err := c.Mysql.Db()
	if err != nil {
		c.Logger.Error(ctx, "Failed to get database connection: %v", err)
		return nil, err
	}

	var commits []Commit
	if err := db.Where("repo_id = ?", repoID).Order("authored_at asc").Find(&commits).Error; err != nil {
		return nil, err
	}
	return commits, nil
}

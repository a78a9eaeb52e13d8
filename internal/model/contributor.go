package model

import (
	"fmt"
	"time"

	"github.com/thep200/repo-visualizer/cfg"
	"github.com/thep200/repo-visualizer/pkg/db"
	"github.com/thep200/repo-visualizer/pkg/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Contributor struct {
	Model
	Login         string `json:"login" gorm:"column:login;type:varchar(255);uniqueIndex:idx_contributors_repo_login,priority:2;not null"`
	Contributions int    `json:"contributions" gorm:"column:contributions;default:0"`
	RepoID        int    `json:"repo_id" gorm:"column:repo_id;uniqueIndex:idx_contributors_repo_login,priority:1;not null"`
}

func NewContributor(config *cfg.Config, logger log.Logger, db *db.Mysql) (*Contributor, error) {
	contributor := &Contributor{
		Model: Model{
			Config: config,
			Logger: logger,
			Mysql:  db,
		},
	}
	return contributor, nil
}

func (c *Contributor) TableName() string {
	return "contributors"
}

func (c *Contributor) CreateBatch(contributorMessages []ContributorMessage) error {
	db, err := c.Mysql.Db()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	contributors := make([]Contributor, 0, len(contributorMessages))
	now := time.Now()

	for _, msg := range contributorMessages {
		contributor := Contributor{
			Login:         TruncateString(msg.Login, 250),
			Contributions: msg.Contributions,
			RepoID:        msg.RepoID,
		}
		contributor.CreatedAt = now
		contributor.UpdatedAt = now
		contributors = append(contributors, contributor)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "repo_id"}, {Name: "login"}},
			DoUpdates: clause.AssignmentColumns([]string{"contributions", "updated_at"}),
		}).CreateInBatches(contributors, 100)

		if result.Error != nil {
			return fmt.Errorf("failed to batch create contributors: %w", result.Error)
		}

		return nil
	})
}

func (c *Contributor) ListByRepoID(repoID int) ([]Contributor, error) {
	db, err := c.Mysql.Db()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	var contributors []Contributor
	if err := db.Where("repo_id = ?", repoID).Order("contributions desc").Find(&contributors).Error; err != nil {
		return nil, err
	}
	return contributors, nil
}

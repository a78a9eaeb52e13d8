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

type Branch struct {
	Model
	Name     string `json:"name" gorm:"column:name;type:varchar(255);uniqueIndex:idx_branches_repo_name,priority:2;not null"`
	HeadHash string `json:"head_hash" gorm:"column:head_hash;type:varchar(64)"`
	RepoID   int    `json:"repo_id" gorm:"column:repo_id;uniqueIndex:idx_branches_repo_name,priority:1;not null"`
}

func NewBranch(config *cfg.Config, logger log.Logger, db *db.Mysql) (*Branch, error) {
	branch := &Branch{
		Model: Model{
			Config: config,
			Logger: logger,
			Mysql:  db,
		},
	}
	return branch, nil
}

func (b *Branch) TableName() string {
	return "branches"
}

func (b *Branch) CreateBatch(branchMessages []BranchMessage) error {
	db, err := b.Mysql.Db()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	branches := make([]Branch, 0, len(branchMessages))
	now := time.Now()

	for _, msg := range branchMessages {
		branch := Branch{
			Name:     TruncateString(msg.Name, 250),
			HeadHash: TruncateString(msg.HeadHash, 64),
			RepoID:   msg.RepoID,
		}
		branch.CreatedAt = now
		branch.UpdatedAt = now
		branches = append(branches, branch)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "repo_id"}, {Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"head_hash", "updated_at"}),
		}).CreateInBatches(branches, 100)

		if result.Error != nil {
			return fmt.Errorf("failed to batch create branches: %w", result.Error)
		}

		return nil
	})
}

func (b *Branch) ListByRepoID(repoID int) ([]Branch, error) {
	db, err := b.Mysql.Db()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	var branches []Branch
	if err := db.Where("repo_id = ?", repoID).Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

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

type Language struct {
	Model
	Name   string `json:"name" gorm:"column:name;type:varchar(255);uniqueIndex:idx_languages_repo_name,priority:2;not null"`
	Bytes  int64  `json:"bytes" gorm:"column:bytes;default:0"`
	RepoID int    `json:"repo_id" gorm:"column:repo_id;uniqueIndex:idx_languages_repo_name,priority:1;not null"`
}

func NewLanguage(config *cfg.Config, logger log.Logger, db *db.Mysql) (*Language, error) {
	language := &Language{
		Model: Model{
			Config: config,
			Logger: logger,
			Mysql:  db,
		},
	}
	return language, nil
}

func (l *Language) TableName() string {
	return "languages"
}

func (l *Language) CreateBatch(languageMessages []LanguageMessage) error {
	db, err := l.Mysql.Db()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	languages := make([]Language, 0, len(languageMessages))
	now := time.Now()

	for _, msg := range languageMessages {
		language := Language{
			Name:   TruncateString(msg.Name, 250),
			Bytes:  msg.Bytes,
			RepoID: msg.RepoID,
		}
		language.CreatedAt = now
		language.UpdatedAt = now
		languages = append(languages, language)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "repo_id"}, {Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"bytes", "updated_at"}),
		}).CreateInBatches(languages, 100)

		if result.Error != nil {
			return fmt.Errorf("failed to batch create languages: %w", result.Error)
		}

		return nil
	})
}

func (l *Language) ListByRepoID(repoID int) ([]Language, error) {
	db, err := l.Mysql.Db()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	var languages []Language
	if err := db.Where("repo_id = ?", repoID).Order("bytes desc").Find(&languages).Error; err != nil {
		return nil, err
	}
	return languages, nil
}

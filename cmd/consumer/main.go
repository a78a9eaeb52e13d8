package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thep200/repo-visualizer/cfg"
	"github.com/thep200/repo-visualizer/internal/model"
	"github.com/thep200/repo-visualizer/pkg/db"
	"github.com/thep200/repo-visualizer/pkg/kafka"
	"github.com/thep200/repo-visualizer/pkg/log"
)

func main() {
	// Parse command line arguments
	consumerType := flag.String("type", "", "Type of consumer to run (repo, commit, branch, contributor, language)")
	flag.Parse()

	if *consumerType == "" {
		fmt.Println("Please specify a consumer type: -type=[repo|commit|branch|contributor|language]")
		os.Exit(1)
	}

	// Load configuration
	loader, _ := cfg.NewViperLoader()
	config, err := loader.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger, _ := log.NewCslLogger()

	// Setup database
	mysql, _ := db.NewMysql(config)
	if err != nil {
		logger.Error(context.Background(), "Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create models
	repoModel, _ := model.NewRepo(config, logger, mysql)
	commitModel, _ := model.NewCommit(config, logger, mysql)
	branchModel, _ := model.NewBranch(config, logger, mysql)
	contributorModel, _ := model.NewContributor(config, logger, mysql)
	languageModel, _ := model.NewLanguage(config, logger, mysql)

	// Setup signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Start the appropriate consumer based on type
	switch *consumerType {
	case "repo":
		startRepoConsumer(ctx, config, logger, repoModel)
	case "commit":
		startCommitConsumer(ctx, config, logger, commitModel)
	case "branch":
		startBranchConsumer(ctx, config, logger, branchModel)
	case "contributor":
		startContributorConsumer(ctx, config, logger, contributorModel)
	case "language":
		startLanguageConsumer(ctx, config, logger, languageModel)
	default:
		logger.Error(ctx, "Unknown consumer type: %s", *consumerType)
		os.Exit(1)
	}

	// Wait for termination signal
	<-sigCh
	logger.Info(ctx, "Received shutdown signal, gracefully shutting down...")
	cancel()
}

func startRepoConsumer(ctx context.Context, config *cfg.Config, logger log.Logger, repoModel *model.Repo) {
	consumer := kafka.NewConsumer(config, logger, config.Kafka.Producer.TopicRepo, "repo-consumer-group")

	// Register handler for repo messages
	consumer.RegisterHandler("repo", func(data []byte) error {
		var repoMsg model.RepoMessage
		if err := json.Unmarshal(data, &repoMsg); err != nil {
			return fmt.Errorf("failed to unmarshal repo message: %w", err)
		}

		if err := repoModel.CreateBatch([]model.RepoMessage{repoMsg}); err != nil {
			return fmt.Errorf("failed to save repo to database: %w", err)
		}

		return nil
	})

	// Start consumer in a goroutine
	go func() {
		if err := consumer.Start(ctx); err != nil {
			logger.Error(ctx, "Repo consumer error: %v", err)
		}
	}()

	logger.Info(ctx, "Repository consumer started successfully")
}

func startCommitConsumer(ctx context.Context, config *cfg.Config, logger log.Logger, commitModel *model.Commit) {
	consumer := kafka.NewConsumer(config, logger, config.Kafka.Producer.TopicCommit, "commit-consumer-group")

	// Channel for collecting messages in batches
	batchSize := 100
	batchTimeout := 5 * time.Second

	// Channel to collect messages for batch processing
	messages := make(chan model.CommitMessage, batchSize*2)

	// Batch processor
	go processBatchedCommits(ctx, messages, batchSize, batchTimeout, logger, commitModel)

	// Register handler for commit messages
	consumer.RegisterHandler("commit", func(data []byte) error {
		var commitMsg model.CommitMessage
		if err := json.Unmarshal(data, &commitMsg); err != nil {
			return fmt.Errorf("failed to unmarshal commit message: %w", err)
		}

		// Send to batch channel instead of processing individually
		select {
		case messages <- commitMsg:
			// Message added to batch
		case <-ctx.Done():
			return ctx.Err()
		}

		return nil
	})

	// Start consumer in a goroutine
	go func() {
		if err := consumer.Start(ctx); err != nil {
			logger.Error(ctx, "Commit consumer error: %v", err)
		}
	}()

	logger.Info(ctx, "Commit consumer started successfully")
}

// Process batches of commit messages
func processBatchedCommits(ctx context.Context, messages <-chan model.CommitMessage, batchSize int,
	batchTimeout time.Duration, logger log.Logger, commitModel *model.Commit) {

	var batch []model.CommitMessage
	timer := time.NewTimer(batchTimeout)

	for {
		select {
		case <-ctx.Done():
			// Process remaining messages before exiting
			if len(batch) > 0 {
				processSingleCommitBatch(ctx, batch, logger, commitModel)
			}
			return

		case msg := <-messages:
			batch = append(batch, msg)

			// Process batch when it reaches the desired size
			if len(batch) >= batchSize {
				processSingleCommitBatch(ctx, batch, logger, commitModel)
				batch = nil // Reset batch
				timer.Reset(batchTimeout)
			}

		case <-timer.C:
			// Process batch on timeout if there are any messages
			if len(batch) > 0 {
				processSingleCommitBatch(ctx, batch, logger, commitModel)
				batch = nil // Reset batch
			}
			timer.Reset(batchTimeout)
		}
	}
}

// Process a single batch of commits
func processSingleCommitBatch(ctx context.Context, batch []model.CommitMessage, logger log.Logger, commitModel *model.Commit) {
	if len(batch) == 0 {
		return
	}

	logger.Info(ctx, "Processing batch of %d commits", len(batch))

	// Use transactions for batch inserts
	err := commitModel.CreateBatch(batch)
	if err != nil {
		logger.Error(ctx, "Failed to save batch of commits: %v", err)
	} else {
		logger.Info(ctx, "Successfully saved batch of %d commits", len(batch))
	}
}

func startBranchConsumer(ctx context.Context, config *cfg.Config, logger log.Logger, branchModel *model.Branch) {
	consumer := kafka.NewConsumer(config, logger, config.Kafka.Producer.TopicBranch, "branch-consumer-group")

	// Register handler for branch messages
	consumer.RegisterHandler("branch", func(data []byte) error {
		var branchMsg model.BranchMessage
		if err := json.Unmarshal(data, &branchMsg); err != nil {
			return fmt.Errorf("failed to unmarshal branch message: %w", err)
		}

		if err := branchModel.CreateBatch([]model.BranchMessage{branchMsg}); err != nil {
			return fmt.Errorf("failed to save branch to database: %w", err)
		}

		return nil
	})

	// Start consumer in a goroutine
	go func() {
		if err := consumer.Start(ctx); err != nil {
			logger.Error(ctx, "Branch consumer error: %v", err)
		}
	}()

	logger.Info(ctx, "Branch consumer started successfully")
}

func startContributorConsumer(ctx context.Context, config *cfg.Config, logger log.Logger, contributorModel *model.Contributor) {
	consumer := kafka.NewConsumer(config, logger, config.Kafka.Producer.TopicContributor, "contributor-consumer-group")

	// Register handler for contributor messages
	consumer.RegisterHandler("contributor", func(data []byte) error {
		var contributorMsg model.ContributorMessage
		if err := json.Unmarshal(data, &contributorMsg); err != nil {
			return fmt.Errorf("failed to unmarshal contributor message: %w", err)
		}

		if err := contributorModel.CreateBatch([]model.ContributorMessage{contributorMsg}); err != nil {
			return fmt.Errorf("failed to save contributor to database: %w", err)
		}

		return nil
	})

	// Start consumer in a goroutine
	go func() {
		if err := consumer.Start(ctx); err != nil {
			logger.Error(ctx, "Contributor consumer error: %v", err)
		}
	}()

	logger.Info(ctx, "Contributor consumer started successfully")
}

func startLanguageConsumer(ctx context.Context, config *cfg.Config, logger log.Logger, languageModel *model.Language) {
	consumer := kafka.NewConsumer(config, logger, config.Kafka.Producer.TopicLanguage, "language-consumer-group")

	// Register handler for language messages
	consumer.RegisterHandler("language", func(data []byte) error {
		var languageMsg model.LanguageMessage
		if err := json.Unmarshal(data, &languageMsg); err != nil {
			return fmt.Errorf("failed to unmarshal language message: %w", err)
		}

		if err := languageModel.CreateBatch([]model.LanguageMessage{languageMsg}); err != nil {
			return fmt.Errorf("failed to save language to database: %w", err)
		}

		return nil
	})

	// Start consumer in a goroutine
	go func() {
		if err := consumer.Start(ctx); err != nil {
			logger.Error(ctx, "Language consumer error: %v", err)
		}
	}()

	logger.Info(ctx, "Language consumer started successfully")
}

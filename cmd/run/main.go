package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/thep200/repo-visualizer/cfg"
	"github.com/thep200/repo-visualizer/internal/fetcher"
	"github.com/thep200/repo-visualizer/internal/model"
	"github.com/thep200/repo-visualizer/internal/scene"
	"github.com/thep200/repo-visualizer/pkg/db"
	"github.com/thep200/repo-visualizer/pkg/log"
)

type Handler struct {
	Fetcher fetcher.Fetcher
	Logger  log.Logger
}

func NewHandler(fetcher fetcher.Fetcher, logger log.Logger) *Handler {
	return &Handler{
		Fetcher: fetcher,
		Logger:  logger,
	}
}

func main() {
	repoFlag := flag.String("repo", "", "Repository to visualize (user/repo)")
	version := flag.String("version", "v1", "Fetcher version to use (v1, v2)")
	flag.Parse()

	if *repoFlag == "" {
		fmt.Println("Please specify a repository: -repo=user/repo")
		os.Exit(1)
	}

	parts := strings.SplitN(*repoFlag, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		fmt.Println("Invalid repository, expected user/repo")
		os.Exit(1)
	}

	ctx := context.Background()
	// loader, _ := cfg.NewMockLoader()
	loader, _ := cfg.NewViperLoader()
	config, _ := loader.Load()
	mysql, _ := db.NewMysql(config)
	logger, _ := log.NewCslLogger()
	repoMd, _ := model.NewRepo(config, logger, mysql)
	commitMd, _ := model.NewCommit(config, logger, mysql)
	branchMd, _ := model.NewBranch(config, logger, mysql)
	contributorMd, _ := model.NewContributor(config, logger, mysql)
	languageMd, _ := model.NewLanguage(config, logger, mysql)
	f, err := fetcher.FactoryFetcher(*version, logger, config, mysql)
	if err != nil {
		logger.Error(ctx, "Failed to create fetcher: %v", err)
		os.Exit(1)
	}

	// Migrate database
	mysql.Migrate(repoMd, commitMd, branchMd, contributorMd, languageMd)

	//
	logger.Info(ctx, "Starting repo visualizer fetch for %s", *repoFlag)
	handler := NewHandler(f, logger)
	data, err := handler.Fetcher.Fetch(ctx, parts[0], parts[1])
	if err != nil {
		logger.Error(ctx, "Failed! %v", err)
		os.Exit(1)
	}

	s := scene.Compose(data, scene.OptionsFromConfig(config))
	logger.Info(ctx, "Successfully! Scene for %s has %d nodes and %d connectors",
		data.Meta.FullName, len(s.Nodes), len(s.Connectors))
}

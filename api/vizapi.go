// Package api cung cấp các API public để tương tác với repo visualizer
package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/thep200/repo-visualizer/cfg"
	"github.com/thep200/repo-visualizer/internal/camera"
	"github.com/thep200/repo-visualizer/internal/fetcher"
	"github.com/thep200/repo-visualizer/internal/interact"
	"github.com/thep200/repo-visualizer/internal/model"
	"github.com/thep200/repo-visualizer/internal/render"
	"github.com/thep200/repo-visualizer/internal/scene"
	"github.com/thep200/repo-visualizer/pkg/db"
	"github.com/thep200/repo-visualizer/pkg/log"
)

// LoadStats chứa thống kê về quá trình nạp dữ liệu repository
type LoadStats struct {
	Repo         string    `json:"repo"`
	Version      string    `json:"version"`
	IsRunning    bool      `json:"isRunning"`
	StartTime    time.Time `json:"startTime"`
	Duration     string    `json:"duration"`
	Commits      int       `json:"commits"`
	Branches     int       `json:"branches"`
	Contributors int       `json:"contributors"`
	Languages    int       `json:"languages"`
	LastError    string    `json:"lastError"`
}

// VisualizerAPI cung cấp các API để tương tác với repo visualizer
type VisualizerAPI struct {
	ctx       context.Context
	config    *cfg.Config
	logger    log.Logger
	mysql     *db.Mysql
	fetcherV1 *fetcher.FetcherV1
	fetcherV2 *fetcher.FetcherV2

	director *camera.Director
	hover    *interact.Controller
	loop     *render.Loop

	loading     bool
	loadStatsMu sync.RWMutex
	loadStats   *LoadStats

	sceneMu      sync.RWMutex
	currentScene *scene.Scene
}

// NewVisualizerAPI tạo một instance mới của VisualizerAPI
func NewVisualizerAPI() *VisualizerAPI {
	return &VisualizerAPI{
		loadStats: &LoadStats{},
	}
}

// Initialize khởi tạo các thành phần cần thiết cho visualizer
func (a *VisualizerAPI) Initialize(ctx context.Context) error {
	a.ctx = ctx

	var err error

	// Load configuration
	loader, _ := cfg.NewViperLoader()
	a.config, err = loader.Load()
	if err != nil {
		a.logger, _ = log.NewCslLogger()
		a.logger.Error(a.ctx, "Failed to load configuration: %v", err)
		return err
	}

	// Set up logger
	a.logger, err = log.NewCslLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	// Set up database
	a.mysql, err = db.NewMysql(a.config)
	if err != nil {
		a.logger.Error(a.ctx, "Failed to connect to database: %v", err)
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize fetchers
	a.fetcherV1, err = fetcher.NewFetcherV1(a.logger, a.config, a.mysql)
	if err != nil {
		a.logger.Error(a.ctx, "Failed to create fetcher V1: %v", err)
	}

	a.fetcherV2, err = fetcher.NewFetcherV2(a.logger, a.config, a.mysql)
	if err != nil {
		a.logger.Error(a.ctx, "Failed to create fetcher V2: %v", err)
	}

	if a.fetcherV1 == nil && a.fetcherV2 == nil {
		return errors.New("failed to initialize any fetcher")
	}

	// Initialize scene controllers with an empty scene
	empty := scene.Compose(&scene.RepoData{}, scene.OptionsFromConfig(a.config))
	a.director = camera.NewDirector()
	a.hover = interact.NewController(empty)
	a.loop, err = render.NewLoop(a.logger, empty, a.director, a.hover, a.config.Viz.FramesPerSec)
	if err != nil {
		return fmt.Errorf("failed to create render loop: %w", err)
	}

	a.sceneMu.Lock()
	a.currentScene = empty
	a.sceneMu.Unlock()

	// Migrate database tables
	return a.migrateDatabase()
}

// migrateDatabase đảm bảo các bảng cần thiết tồn tại
func (a *VisualizerAPI) migrateDatabase() error {
	if a.mysql == nil {
		return errors.New("database connection not initialized")
	}

	repoMd, err := model.NewRepo(a.config, a.logger, a.mysql)
	if err != nil {
		return fmt.Errorf("failed to create repo model: %w", err)
	}

	commitMd, err := model.NewCommit(a.config, a.logger, a.mysql)
	if err != nil {
		return fmt.Errorf("failed to create commit model: %w", err)
	}

	branchMd, err := model.NewBranch(a.config, a.logger, a.mysql)
	if err != nil {
		return fmt.Errorf("failed to create branch model: %w", err)
	}

	contributorMd, err := model.NewContributor(a.config, a.logger, a.mysql)
	if err != nil {
		return fmt.Errorf("failed to create contributor model: %w", err)
	}

	languageMd, err := model.NewLanguage(a.config, a.logger, a.mysql)
	if err != nil {
		return fmt.Errorf("failed to create language model: %w", err)
	}

	return a.mysql.Migrate(repoMd, commitMd, branchMd, contributorMd, languageMd)
}

// LoadRepository bắt đầu nạp dữ liệu repository trong background với
// phiên bản fetcher được chỉ định
func (a *VisualizerAPI) LoadRepository(fullName, version string) (string, error) {
	user, repo, err := splitFullName(fullName)
	if err != nil {
		return "", err
	}

	a.loadStatsMu.RLock()
	isLoading := a.loading
	a.loadStatsMu.RUnlock()

	if isLoading {
		return "Loading is already in progress", nil
	}

	var selected fetcher.Fetcher
	switch version {
	case "v1":
		if a.fetcherV1 == nil {
			return "", errors.New("fetcher V1 is not initialized")
		}
		selected = a.fetcherV1
	case "v2":
		if a.fetcherV2 == nil {
			return "", errors.New("fetcher V2 is not initialized")
		}
		selected = a.fetcherV2
	default:
		return "", errors.New("invalid fetcher version: " + version)
	}

	a.loadStatsMu.Lock()
	a.loading = true
	a.loadStats = &LoadStats{
		Repo:      fullName,
		Version:   version,
		IsRunning: true,
		StartTime: time.Now(),
	}
	a.loadStatsMu.Unlock()

	// Load in a goroutine
	go func(f fetcher.Fetcher) {
		data, err := f.Fetch(a.ctx, user, repo)

		a.updateLoadStats(func(stats *LoadStats) {
			stats.IsRunning = false
			if err != nil {
				stats.LastError = err.Error()
				return
			}
			stats.Commits = len(data.Commits)
			stats.Branches = len(data.Branches)
			stats.Contributors = len(data.Contributors)
			stats.Languages = len(data.Languages)
		})

		if err == nil {
			a.installScene(data)
		}

		a.loadStatsMu.Lock()
		a.loading = false
		a.loadStatsMu.Unlock()
	}(selected)

	return "Started loading " + fullName + " with fetcher " + version, nil
}

// LoadStoredSnapshot nạp lại snapshot đã lưu trong database mà không
// gọi GitHub API
func (a *VisualizerAPI) LoadStoredSnapshot(fullName string) (string, error) {
	if a.fetcherV1 == nil {
		return "", errors.New("fetcher V1 is not initialized")
	}

	data, err := a.fetcherV1.LoadSnapshot(a.ctx, fullName)
	if err != nil {
		return "", err
	}

	a.installScene(data)
	return "Loaded stored snapshot for " + fullName, nil
}

// installScene dựng scene mới từ dữ liệu và thay thế scene hiện tại
func (a *VisualizerAPI) installScene(data *scene.RepoData) {
	s := scene.Compose(data, scene.OptionsFromConfig(a.config))

	a.sceneMu.Lock()
	a.currentScene = s
	a.sceneMu.Unlock()

	a.loop.SetScene(s)
	a.logger.Info(a.ctx, "Installed scene for %s: %d nodes, %d connectors",
		data.Meta.FullName, len(s.Nodes), len(s.Connectors))
}

// GetScene trả về scene hiện tại
func (a *VisualizerAPI) GetScene() *scene.Scene {
	a.sceneMu.RLock()
	defer a.sceneMu.RUnlock()
	return a.currentScene
}

// GetLoadStats trả về thống kê về quá trình nạp dữ liệu
func (a *VisualizerAPI) GetLoadStats() (*LoadStats, error) {
	a.loadStatsMu.RLock()
	defer a.loadStatsMu.RUnlock()

	if a.loadStats == nil {
		return &LoadStats{}, nil
	}

	stats := *a.loadStats
	if stats.IsRunning {
		stats.Duration = time.Since(stats.StartTime).String()
	}

	return &stats, nil
}

// updateLoadStats cập nhật thống kê một cách an toàn
func (a *VisualizerAPI) updateLoadStats(updateFn func(*LoadStats)) {
	a.loadStatsMu.Lock()
	defer a.loadStatsMu.Unlock()

	if a.loadStats == nil {
		a.loadStats = &LoadStats{}
	}

	updateFn(a.loadStats)
}

// SetView bay camera tới preset được chỉ định
func (a *VisualizerAPI) SetView(view string) error {
	return a.director.FlyTo(camera.View(view), time.Now())
}

// PointerMove cập nhật trạng thái hover theo vị trí con trỏ
func (a *VisualizerAPI) PointerMove(nx, ny, px, py float64) {
	a.hover.PointerMove(nx, ny, px, py, a.director.Snapshot())
}

// Click trả về URL đích cho node đang hover, nếu có
func (a *VisualizerAPI) Click() (string, bool) {
	return a.hover.Click()
}

// Resize cập nhật viewport của camera
func (a *VisualizerAPI) Resize(width, height float64) {
	a.director.SetViewport(width, height)
}

// Loop trả về render loop dùng để stream frame
func (a *VisualizerAPI) Loop() *render.Loop {
	return a.loop
}

// Director trả về camera director
func (a *VisualizerAPI) Director() *camera.Director {
	return a.director
}

// GetDatabaseStatus kiểm tra trạng thái kết nối cơ sở dữ liệu
func (a *VisualizerAPI) GetDatabaseStatus() (string, error) {
	if a.mysql == nil {
		return "Database not initialized", nil
	}

	db, err := a.mysql.Db()
	if err != nil {
		return "Database error: " + err.Error(), err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return "Database error: " + err.Error(), err
	}

	if err := sqlDB.Ping(); err != nil {
		return "Database not connected: " + err.Error(), err
	}

	return "Database connected", nil
}

// splitFullName tách "user/repo" thành hai phần
func splitFullName(fullName string) (string, string, error) {
	parts := strings.Split(strings.TrimSpace(fullName), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository name %q, expected user/repo", fullName)
	}
	return parts[0], parts[1], nil
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/thep200/repo-visualizer/api"
	"github.com/thep200/repo-visualizer/internal/render"
	"github.com/thep200/repo-visualizer/internal/scene"
	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// App struct
type App struct {
	ctx           context.Context
	viz           *api.VisualizerAPI
	initError     string
	isInitialized bool
}

// NewApp creates a new App application struct
func NewApp() *App {
	return &App{
		viz:           api.NewVisualizerAPI(),
		isInitialized: false,
	}
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	// Initialize the visualizer API
	err := a.viz.Initialize(ctx)
	if err != nil {
		a.initError = fmt.Sprintf("Failed to initialize visualizer: %v", err)
		fmt.Println(a.initError) // In ra console để debug
		runtime.LogErrorf(ctx, "Initialization error: %v", err)
		// Không return ở đây, chúng ta vẫn muốn UI hiển thị thông báo lỗi
	} else {
		a.isInitialized = true
		runtime.LogInfo(ctx, "Visualizer initialized successfully")
	}
}

// LoadRepository starts loading the given repository with the specified fetcher version
func (a *App) LoadRepository(fullName, version string) string {
	if !a.isInitialized {
		return fmt.Sprintf("Error: Visualizer is not initialized. %s", a.initError)
	}

	result, err := a.viz.LoadRepository(fullName, version)
	if err != nil {
		errMsg := fmt.Sprintf("Error loading repository: %v", err)
		runtime.LogErrorf(a.ctx, errMsg)
		return errMsg
	}

	runtime.LogInfof(a.ctx, "Started loading %s with fetcher %s", fullName, version)
	return result
}

// LoadStoredSnapshot loads a previously fetched repository from the database
func (a *App) LoadStoredSnapshot(fullName string) string {
	if !a.isInitialized {
		return fmt.Sprintf("Error: Visualizer is not initialized. %s", a.initError)
	}

	result, err := a.viz.LoadStoredSnapshot(fullName)
	if err != nil {
		errMsg := fmt.Sprintf("Error loading snapshot: %v", err)
		runtime.LogErrorf(a.ctx, errMsg)
		return errMsg
	}

	return result
}

// GetLoadStats returns the current loading statistics
func (a *App) GetLoadStats() *api.LoadStats {
	if !a.isInitialized {
		return &api.LoadStats{
			IsRunning: false,
			LastError: fmt.Sprintf("Visualizer is not initialized. %s", a.initError),
		}
	}

	stats, err := a.viz.GetLoadStats()
	if err != nil {
		errMsg := fmt.Sprintf("Error getting stats: %v", err)
		runtime.LogErrorf(a.ctx, errMsg)
		return &api.LoadStats{
			LastError: errMsg,
		}
	}

	return stats
}

// GetScene returns the current scene graph
func (a *App) GetScene() *scene.Scene {
	if !a.isInitialized {
		return nil
	}
	return a.viz.GetScene()
}

// GetFrame advances the render loop one tick and returns the frame
func (a *App) GetFrame() *render.Frame {
	if !a.isInitialized {
		return nil
	}
	return a.viz.Loop().Step(time.Now())
}

// SetView flies the camera to the requested preset
func (a *App) SetView(view string) string {
	if !a.isInitialized {
		return fmt.Sprintf("Error: Visualizer is not initialized. %s", a.initError)
	}

	if err := a.viz.SetView(view); err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	return ""
}

// PointerMove updates the hover state from pointer coordinates
func (a *App) PointerMove(nx, ny, px, py float64) {
	if !a.isInitialized {
		return
	}
	a.viz.PointerMove(nx, ny, px, py)
}

// Click opens the hovered node's URL in the system browser, if any
func (a *App) Click() {
	if !a.isInitialized {
		return
	}

	if url, ok := a.viz.Click(); ok {
		runtime.BrowserOpenURL(a.ctx, url)
	}
}

// Resize updates the camera viewport
func (a *App) Resize(width, height float64) {
	if !a.isInitialized {
		return
	}
	a.viz.Resize(width, height)
}

// GetDbStatus checks the database connection status
func (a *App) GetDbStatus() string {
	if !a.isInitialized {
		return fmt.Sprintf("Error: Visualizer is not initialized. %s", a.initError)
	}

	status, err := a.viz.GetDatabaseStatus()
	if err != nil {
		errMsg := fmt.Sprintf("Database error: %v", err)
		runtime.LogErrorf(a.ctx, errMsg)
		return errMsg
	}

	return status
}

// GetInitStatus returns visualizer initialization status and any error message
func (a *App) GetInitStatus() map[string]interface{} {
	return map[string]interface{}{
		"initialized": a.isInitialized,
		"error":       a.initError,
	}
}

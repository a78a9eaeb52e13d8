package ui

import (
	"encoding/json"
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/thep200/repo-visualizer/api"
	"github.com/thep200/repo-visualizer/cfg"
	"github.com/thep200/repo-visualizer/internal/camera"
	"github.com/thep200/repo-visualizer/pkg/log"
)

// Handler manages HTTP requests for the visualizer UI
type Handler struct {
	Logger  log.Logger
	Config  *cfg.Config
	Viz     *api.VisualizerAPI
	baseDir string
}

// NewHandler creates a new UI handler
func NewHandler(logger log.Logger, config *cfg.Config, viz *api.VisualizerAPI) (*Handler, error) {
	return &Handler{
		Logger:  logger,
		Config:  config,
		Viz:     viz,
		baseDir: "internal/ui/static",
	}, nil
}

// RegisterRoutes sets up the HTTP routes for the UI
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Static file server for CSS, JS, etc.
	fileServer := http.FileServer(http.Dir(h.baseDir))
	mux.Handle("/static/", http.StripPrefix("/static/", fileServer))

	// API routes
	mux.HandleFunc("/api/scene", h.getScene)
	mux.HandleFunc("/api/repo", h.getRepo)
	mux.HandleFunc("/api/load", h.loadRepo)
	mux.HandleFunc("/api/stats", h.getStats)
	mux.HandleFunc("/api/views", h.getViews)
	mux.HandleFunc("/api/view", h.setView)

	// HTML routes
	mux.HandleFunc("/", h.showHomePage)
}

// showHomePage renders the main page
func (h *Handler) showHomePage(w http.ResponseWriter, r *http.Request) {
	templatePath := filepath.Join(h.baseDir, "index.html")
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		h.Logger.Error(r.Context(), "Failed to parse template: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := tmpl.Execute(w, nil); err != nil {
		h.Logger.Error(r.Context(), "Failed to execute template: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// getScene returns the current scene as JSON
func (h *Handler) getScene(w http.ResponseWriter, r *http.Request) {
	s := h.Viz.GetScene()
	if s == nil {
		http.Error(w, "No scene loaded", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s); err != nil {
		h.Logger.Error(r.Context(), "Failed to encode scene: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// getRepo returns metadata about the currently loaded repository
func (h *Handler) getRepo(w http.ResponseWriter, r *http.Request) {
	s := h.Viz.GetScene()
	if s == nil || s.Meta.FullName == "" {
		http.Error(w, "No repository loaded", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"full_name":  s.Meta.FullName,
		"nodes":      len(s.Nodes),
		"connectors": len(s.Connectors),
	})
}

// loadRepo starts loading a repository in the background
func (h *Handler) loadRepo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	repo := r.URL.Query().Get("repo")
	if repo == "" {
		http.Error(w, "Missing repo parameter", http.StatusBadRequest)
		return
	}

	version := r.URL.Query().Get("version")
	if version == "" {
		version = "v1"
	}

	msg, err := h.Viz.LoadRepository(repo, version)
	if err != nil {
		h.Logger.Error(r.Context(), "Failed to start loading %s: %v", repo, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": msg})
}

// getStats returns the current load statistics
func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Viz.GetLoadStats()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

// getViews returns the available camera presets
func (h *Handler) getViews(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(camera.Views())
}

// setView flies the camera to the requested preset
func (h *Handler) setView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	name := r.URL.Query().Get("name")
	if err := h.Viz.SetView(name); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"view": name})
}

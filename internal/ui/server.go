package ui

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/thep200/repo-visualizer/api"
	"github.com/thep200/repo-visualizer/cfg"
	"github.com/thep200/repo-visualizer/pkg/log"
)

// Server represents the visualizer web server
type Server struct {
	Logger log.Logger
	Config *cfg.Config
	Viz    *api.VisualizerAPI
	server *http.Server
	hub    *Hub
	port   int
}

// NewServer creates a new visualizer server
func NewServer(logger log.Logger, config *cfg.Config, viz *api.VisualizerAPI, port int) (*Server, error) {
	return &Server{
		Logger: logger,
		Config: config,
		Viz:    viz,
		port:   port,
	}, nil
}

// Start initializes and starts the HTTP server along with the frame hub
func (s *Server) Start(ctx context.Context) error {
	handler, err := NewHandler(s.Logger, s.Config, s.Viz)
	if err != nil {
		return fmt.Errorf("failed to create UI handler: %w", err)
	}

	s.hub = NewHub(s.Logger, s.Viz)
	s.Viz.Loop().SetSink(s.hub.Broadcast)
	go func() {
		if err := s.Viz.Loop().Run(ctx); err != nil && err != context.Canceled {
			s.Logger.Error(ctx, "Render loop stopped: %v", err)
		}
	}()

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.HandleFunc("/ws/viz", s.hub.ServeWs)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.Logger.Info(ctx, "Starting visualizer server on port %d", s.port)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.hub != nil {
		s.hub.CloseAll()
	}
	if s.server != nil {
		s.Logger.Info(ctx, "Shutting down visualizer server")
		return s.server.Shutdown(ctx)
	}
	return nil
}

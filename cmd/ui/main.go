package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thep200/repo-visualizer/api"
	"github.com/thep200/repo-visualizer/cfg"
	"github.com/thep200/repo-visualizer/internal/ui"
	applog "github.com/thep200/repo-visualizer/pkg/log"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port for the visualizer server to listen on")
	flag.Parse()

	// Setup dependencies
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loader, _ := cfg.NewViperLoader()
	config, _ := loader.Load()
	logger, _ := applog.NewCslLogger()

	if *port == 8080 && config.Server.Port != 0 {
		*port = config.Server.Port
	}

	// Initialize the visualizer facade
	viz := api.NewVisualizerAPI()
	if err := viz.Initialize(ctx); err != nil {
		log.Fatalf("Failed to initialize visualizer: %v", err)
	}

	// Create and run the server
	server, err := ui.NewServer(logger, config, viz, *port)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Run server in a goroutine
	go func() {
		logger.Info(ctx, "Starting visualizer server on port %d", *port)
		if err := server.Start(ctx); err != nil {
			logger.Error(ctx, "Server failed to start: %v", err)
			os.Exit(1)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Wait for termination signal
	<-stop

	// Create a context with timeout for shutdown
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	// Gracefully shutdown the server
	cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		logger.Error(ctx, "Error during server shutdown: %v", err)
	}

	logger.Info(ctx, "Server shut down gracefully")
}

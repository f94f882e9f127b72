package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/terminal-bench/buckwave/internal/config"
	"github.com/terminal-bench/buckwave/internal/logging"
	"github.com/terminal-bench/buckwave/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndRun(ctx); err != nil {
		logger.WithError(err).Error("server stopped")
		stop()
		os.Exit(1)
	}

	logger.Info("server exiting")
}

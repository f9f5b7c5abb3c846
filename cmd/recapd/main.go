package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/nguyentantai21042004/recap-mailer/internal/config"
	"github.com/nguyentantai21042004/recap-mailer/internal/logger"
	"github.com/nguyentantai21042004/recap-mailer/internal/mailer"
	"github.com/nguyentantai21042004/recap-mailer/internal/server"
	"github.com/nguyentantai21042004/recap-mailer/internal/summarizer"
	"github.com/nguyentantai21042004/recap-mailer/pkg/executor"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ValidateServer(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := logger.NewWithWriter(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize dependencies
	sum, err := summarizer.New(cfg.Summarizer, log)
	if err != nil {
		log.Error(ctx, "Failed to create summarizer: %v", err)
		os.Exit(1)
	}
	mail, err := mailer.New(cfg.Mail, executor.New(), log)
	if err != nil {
		log.Error(ctx, "Failed to create mailer: %v", err)
		os.Exit(1)
	}

	log.Info(ctx, "Summarizer: %s (%s)", cfg.Summarizer.Provider, cfg.Summarizer.Model)
	log.Info(ctx, "Mail transport: %s", cfg.Mail.Transport)

	srv := server.New(cfg.Server, sum, mail, log)
	if err := srv.Run(ctx); err != nil {
		log.Error(ctx, "Server error: %v", err)
		os.Exit(1)
	}

	log.Info(ctx, "Recap backend stopped")
}

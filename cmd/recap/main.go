package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nguyentantai21042004/recap-mailer/internal/apiclient"
	"github.com/nguyentantai21042004/recap-mailer/internal/config"
	"github.com/nguyentantai21042004/recap-mailer/internal/logger"
	"github.com/nguyentantai21042004/recap-mailer/internal/processor"
	"github.com/nguyentantai21042004/recap-mailer/internal/tui"
	"github.com/nguyentantai21042004/recap-mailer/internal/watcher"
	"github.com/nguyentantai21042004/recap-mailer/internal/workflow"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	watch := flag.Bool("watch", false, "summarize every transcript dropped into watch.inbox instead of starting the UI")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ValidateClient(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *watch {
		err = runWatch(ctx, cfg)
	} else {
		err = runUI(ctx, cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runUI starts the interactive front end. Logs go to logging.file so they do not
// draw over the screen.
func runUI(ctx context.Context, cfg *config.Config) error {
	var out io.Writer = io.Discard
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	log := logger.NewWithWriter(out, cfg.Logging.Level, cfg.Logging.Format)

	client, err := apiclient.New(cfg.API.BaseURL, cfg.API.Timeout, log)
	if err != nil {
		return err
	}

	log.Info(ctx, "Recap UI starting, backend: %s", cfg.API.BaseURL)
	ctl := workflow.NewController(client, log)
	_, err = tea.NewProgram(tui.New(ctx, ctl), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// runWatch processes transcripts unattended until a shutdown signal arrives.
func runWatch(ctx context.Context, cfg *config.Config) error {
	log := logger.NewWithWriter(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)

	log.Info(ctx, "========================================")
	log.Info(ctx, "Recap watch mode")
	log.Info(ctx, "========================================")

	for _, dir := range []string{cfg.Watch.Inbox, cfg.Watch.Output, cfg.Watch.Archived} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	client, err := apiclient.New(cfg.API.BaseURL, cfg.API.Timeout, log)
	if err != nil {
		return err
	}
	proc := processor.New(cfg.Watch, client, log)

	w, err := watcher.New(cfg.Watch.Inbox, proc.Process, log, cfg.Watch.MaxConcurrent)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	log.Info(ctx, "Backend: %s", cfg.API.BaseURL)
	log.Info(ctx, "Monitoring: %s", cfg.Watch.Inbox)
	log.Info(ctx, "Summaries: %s", cfg.Watch.Output)
	log.Info(ctx, "Auto send: %v", cfg.Watch.AutoSend)
	log.Info(ctx, "Press Ctrl+C to stop")

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Info(ctx, "Recap watch mode stopped")
	return nil
}

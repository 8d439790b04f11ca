package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/studyplanner/adapter/cli"
	"github.com/felixgeelhaar/studyplanner/adapter/cli/admin"
	"github.com/felixgeelhaar/studyplanner/adapter/cli/assignment"
	"github.com/felixgeelhaar/studyplanner/adapter/cli/estimate"
	"github.com/felixgeelhaar/studyplanner/adapter/cli/exam"
	"github.com/felixgeelhaar/studyplanner/adapter/cli/notification"
	"github.com/felixgeelhaar/studyplanner/adapter/cli/plan"
	"github.com/felixgeelhaar/studyplanner/adapter/cli/subject"
	"github.com/felixgeelhaar/studyplanner/internal/app"
	"github.com/felixgeelhaar/studyplanner/pkg/config"
	"github.com/felixgeelhaar/studyplanner/pkg/observability"
)

func main() {
	// Setup logger
	logger := observability.LoggerFromEnv()

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Warn("failed to load config, using development mode", "error", err)
		cfg = &config.Config{AppEnv: "development"}
	}
	cli.SetLogger(logger)

	// In local mode events are delivered in-process after each command;
	// otherwise the worker publishes them from the outbox.
	var cliApp *cli.App
	container, err := app.NewContainer(ctx, cfg, logger, app.Options{LocalEvents: cfg.LocalMode()})
	if err != nil {
		if cfg.IsDevelopment() {
			logger.Warn("failed to initialize container, running in limited mode", "error", err)
		} else {
			logger.Error("failed to initialize container", "error", err)
			os.Exit(1)
		}
	} else {
		defer container.Close()
		cliApp = cli.NewApp(container)
	}

	// Set the CLI app
	cli.SetApp(cliApp)

	// Register commands
	cli.AddCommand(assignment.Cmd)
	cli.AddCommand(exam.Cmd)
	cli.AddCommand(subject.Cmd)
	cli.AddCommand(plan.Cmd)
	cli.AddCommand(notification.Cmd)
	cli.AddCommand(estimate.Cmd)
	cli.AddCommand(admin.Cmd)

	// Execute CLI
	cli.Execute(ctx)
}

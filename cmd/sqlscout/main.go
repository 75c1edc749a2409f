package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sqlscout/sqlscout/internal/agent"
	"github.com/sqlscout/sqlscout/internal/cli/sqlscout"
	"github.com/sqlscout/sqlscout/internal/config"
	"github.com/sqlscout/sqlscout/internal/llm"
	"github.com/sqlscout/sqlscout/internal/observability"
	"github.com/sqlscout/sqlscout/internal/prompt"
	"github.com/sqlscout/sqlscout/internal/schema"
	"github.com/sqlscout/sqlscout/internal/store"
	"github.com/sqlscout/sqlscout/internal/validate"
)

func main() {
	cfg, err := config.LoadFromEnv("sqlscout")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg, os.Stderr)
	descriptor := schema.Default()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(ctx, cfg.Store)
	if err != nil {
		logger.Error("failed to open store", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	client, err := llm.NewOpenAIClient(llm.OpenAIConfig{
		BaseURL:     cfg.AI.BaseURL,
		APIKey:      cfg.AI.APIKey,
		Model:       cfg.AI.Model,
		Temperature: cfg.AI.Temperature,
		Timeout:     cfg.AI.Timeout,
	})
	if err != nil {
		logger.Error("failed to initialize inference client", slog.Any("error", err))
		os.Exit(1)
	}

	loop := &agent.Loop{
		Client:      client,
		Builder:     prompt.NewBuilder(descriptor, nil),
		Validator:   validate.New(db),
		Executor:    db,
		MaxAttempts: cfg.Agent.MaxAttempts,
		Logger:      logger,
	}

	code := sqlscout.Run(ctx, os.Args[1:], sqlscout.Options{
		Ask:         loop.Run,
		Schema:      descriptor,
		DisplayRows: cfg.Agent.DisplayRows,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	})
	os.Exit(code)
}

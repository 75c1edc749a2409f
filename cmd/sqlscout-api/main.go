package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sqlscout/sqlscout/internal/agent"
	"github.com/sqlscout/sqlscout/internal/api"
	"github.com/sqlscout/sqlscout/internal/auth"
	"github.com/sqlscout/sqlscout/internal/config"
	"github.com/sqlscout/sqlscout/internal/llm"
	"github.com/sqlscout/sqlscout/internal/observability"
	"github.com/sqlscout/sqlscout/internal/prompt"
	"github.com/sqlscout/sqlscout/internal/schema"
	"github.com/sqlscout/sqlscout/internal/store"
	"github.com/sqlscout/sqlscout/internal/validate"
)

func main() {
	cfg, err := config.LoadFromEnv("sqlscout-api")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg, os.Stdout)
	descriptor := schema.Default()

	db, err := store.Open(context.Background(), cfg.Store)
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

	deps := api.Dependencies{
		Logger: logger,
		Schema: descriptor,
		Agent:  loop,
		Readiness: func(ctx context.Context) error {
			return db.DB().PingContext(ctx)
		},
		DependencyTimeout: time.Second,
	}
	if cfg.Auth.Required {
		validator, err := auth.NewStaticAPIKeyValidator(cfg.Auth.StaticKeys)
		if err != nil {
			logger.Error("failed to parse static auth keys", slog.Any("error", err))
			os.Exit(1)
		}
		deps.AuthMiddleware = auth.Middleware(logger, validator)
	}

	handler := api.NewHandler(cfg, deps)
	server := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting api server", slog.String("addr", cfg.HTTP.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down api server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
		_ = server.Close()
		os.Exit(1)
	}
}

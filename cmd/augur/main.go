package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MikeSquared-Agency/augur/internal/anthropic"
	"github.com/MikeSquared-Agency/augur/internal/api"
	"github.com/MikeSquared-Agency/augur/internal/config"
	"github.com/MikeSquared-Agency/augur/internal/engine"
	"github.com/MikeSquared-Agency/augur/internal/extractor"
	"github.com/MikeSquared-Agency/augur/internal/hermes"
	"github.com/MikeSquared-Agency/augur/internal/mode"
	"github.com/MikeSquared-Agency/augur/internal/processor"
	"github.com/MikeSquared-Agency/augur/internal/scorer"
	"github.com/MikeSquared-Agency/augur/internal/slack"
	"github.com/MikeSquared-Agency/augur/internal/store"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("augur starting", "port", cfg.Port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Weights
	weights := scorer.DefaultWeights()
	if cfg.WeightsPath != "" {
		w, err := scorer.LoadWeights(cfg.WeightsPath)
		if err != nil {
			slog.Error("failed to load weights", "path", cfg.WeightsPath, "error", err)
			os.Exit(1)
		}
		weights = w
	}
	sc, err := scorer.New(weights)
	if err != nil {
		slog.Error("invalid weights", "error", err)
		os.Exit(1)
	}
	eng := engine.New(sc)
	slog.Info("weights loaded", "name", weights.Name)

	// Signal source
	var source extractor.Source = extractor.NewRules(nil)
	sourceName := config.SignalSourceRules
	if cfg.UseLLM() {
		llm := anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		source = extractor.NewFallback(extractor.NewLLM(llm, slog.Default()), slog.Default())
		sourceName = config.SignalSourceLLM
		slog.Info("llm signal source ready", "model", llm.Model())
	} else if cfg.SignalSource == config.SignalSourceLLM {
		slog.Warn("ANTHROPIC_API_KEY not set, using rule-based signals")
	}

	// Database (optional: decisions are not persisted without it)
	var (
		decisionStore processor.DecisionStore
		decisionRead  api.DecisionReader
	)
	if cfg.DatabaseURL != "" {
		db, err := store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		decisionStore, decisionRead = db, db
		slog.Info("database connected")
	} else {
		slog.Warn("DATABASE_URL not set, decisions will not be persisted")
	}

	// NATS/Hermes
	hermesClient, err := hermes.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, slog.Default())
	if err != nil {
		slog.Error("failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer hermesClient.Close()
	slog.Info("NATS connected", "url", cfg.NatsURL)

	// Slack poster (optional: mode changes are only published on NATS without it)
	var notifier processor.Notifier
	if cfg.SlackBotToken != "" && cfg.SlackChannel != "" {
		notifier = slack.NewPoster(cfg.SlackBotToken, cfg.SlackChannel, slog.Default())
		slog.Info("slack poster ready", "channel", cfg.SlackChannel)
	}

	proc := processor.New(processor.Options{
		Engine:     eng,
		Source:     source,
		SourceName: sourceName,
		Store:      decisionStore,
		Publisher:  hermesClient,
		Notifier:   notifier,
	}, slog.Default())

	if err := hermesClient.QueueSubscribe(hermes.SubjectEntrySubmitted, hermes.QueueGroup, proc.HandleEntrySubmitted); err != nil {
		slog.Error("failed to subscribe to entry events", "error", err)
		os.Exit(1)
	}

	srv := api.NewServer(api.Options{
		Port:       cfg.Port,
		APIToken:   cfg.APIToken,
		Engine:     eng,
		Source:     source,
		SourceName: sourceName,
		Store:      decisionRead,
	})

	if err := hermesClient.Publish(hermes.SubjectAgentRegistered, registration(weights.Name, sourceName)); err != nil {
		slog.Warn("failed to publish registration", "error", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	slog.Info("augur ready", "port", cfg.Port, "signal_source", sourceName)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("augur stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("augur stopped")
}

func registration(weightsName, sourceName string) hermes.AgentRegistration {
	modes := make([]string, 0, mode.Count)
	for _, m := range mode.All() {
		modes = append(modes, string(m))
	}
	return hermes.AgentRegistration{
		AgentID:      "augur",
		Name:         "Augur",
		Role:         "mode-decision",
		Capabilities: []string{"mode-decision", "signal-extraction"},
		Modes:        modes,
		Weights:      weightsName,
		SignalSource: sourceName,
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}

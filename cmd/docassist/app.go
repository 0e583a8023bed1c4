package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/Protocol-Lattice/docassist/internal/config"
	"github.com/Protocol-Lattice/docassist/internal/ctxlog"
	"github.com/Protocol-Lattice/docassist/pkg/assistant"
	"github.com/Protocol-Lattice/docassist/pkg/credentials"
	"github.com/Protocol-Lattice/docassist/pkg/gather"
	"github.com/Protocol-Lattice/docassist/pkg/models"
	"github.com/Protocol-Lattice/docassist/pkg/upload"
)

// app is everything a subcommand needs, built once from config.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	store  credentials.Store
	close  func() error
}

func loadApp(flags *globalFlags) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if flags.verbose {
		level = "debug"
	}
	logger, err := ctxlog.New(os.Stderr, level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, close: func() error { return nil }}
	switch cfg.Credentials.Backend {
	case "memory":
		a.store = credentials.NewMemoryStore()
	default:
		s, err := credentials.OpenSQLiteStore(cfg.Credentials.Path)
		if err != nil {
			return nil, fmt.Errorf("open credential store: %w", err)
		}
		a.store = s
		a.close = s.Close
	}
	if cfg.Credentials.UseEnv {
		a.store = credentials.NewEnvStore(a.store)
	}

	logger.Debug("config loaded", "text_provider", cfg.Text.Provider, "credentials", cfg.Credentials.Backend)
	return a, nil
}

func (a *app) context(parent context.Context) context.Context {
	return ctxlog.WithLogger(parent, a.logger)
}

func (a *app) aggregator() *gather.Aggregator {
	files := upload.NewDefaultReader()
	files.MaxBytes = a.cfg.Context.MaxBytes

	agg := gather.NewAggregator(&http.Client{Timeout: a.cfg.Context.FetchTimeout}, files)
	agg.Concurrency = a.cfg.Context.Concurrency
	return agg
}

func (a *app) assistant() (*assistant.Assistant, error) {
	text, err := models.NewTextGenerator(a.store, models.TextOptions{
		Provider:     a.cfg.Text.Provider,
		Endpoint:     a.cfg.Text.Endpoint,
		Model:        a.cfg.Text.Model,
		SystemPrompt: a.cfg.Text.SystemPrompt,
		HTTPClient:   &http.Client{Timeout: a.cfg.Text.Timeout},
	})
	if err != nil {
		return nil, err
	}

	image := models.NewGeminiImageClient(a.store, a.cfg.Image.Model)
	if a.cfg.Image.Endpoint != "" {
		image.BaseURL = a.cfg.Image.Endpoint
	}
	if a.cfg.Image.Timeout > 0 {
		image.HTTPClient = &http.Client{Timeout: a.cfg.Image.Timeout}
	}

	return assistant.New(a.aggregator(), text, image), nil
}

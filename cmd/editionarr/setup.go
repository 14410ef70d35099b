package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/vmunix/editionarr/internal/config"
	"github.com/vmunix/editionarr/internal/edition"
	"github.com/vmunix/editionarr/internal/radarr"
)

// app bundles the pieces every command needs.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	client *radarr.Client
	table  edition.Table
}

// newApp loads and validates configuration and wires the shared
// dependencies.
func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "config: %s\n", e)
		}
		return nil, fmt.Errorf("invalid configuration (%d problems)", len(errs))
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	client := radarr.NewClient(cfg.Radarr.URL, cfg.Radarr.APIKey,
		radarr.WithTimeout(time.Duration(cfg.Radarr.TimeoutSeconds)*time.Second))

	table := edition.DefaultTable()
	for name, shorthand := range cfg.Edition.QualityMap {
		table[name] = shorthand
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		client: client,
		table:  table,
	}, nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jwulff/eclipse/internal/config"
	"github.com/jwulff/eclipse/internal/db"
	"github.com/jwulff/eclipse/internal/featureservice"
	"github.com/jwulff/eclipse/internal/loader"
)

// loadConfig reads the config and applies the window flags of cmd.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if f := cmd.Flags().Lookup("start"); f != nil && f.Changed {
		cfg.DateStart, _ = cmd.Flags().GetFloat64("start")
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// openLog sends JSON logs to the configured log file. The terminal belongs to
// the TUI or the MCP transport, so nothing is logged to stdout or stderr.
func openLog(cfg config.Config) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	if cfg.LogFile == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	log := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", "eclipse"))
	return log, f.Close, nil
}

// newLoader wires the sqlite cache and the feature service client. A cache
// that cannot be opened is logged and skipped.
func newLoader(cfg config.Config, log *slog.Logger, refresh bool) (*loader.Loader, func() error) {
	client := featureservice.New(featureservice.Options{
		URL:                cfg.ServiceURL,
		PageSize:           cfg.PageSize,
		PageCount:          cfg.PageCount,
		GeometryPrecision:  cfg.GeometryPrecision,
		MaxAllowableOffset: cfg.MaxAllowableOffset,
		Timeout:            cfg.FetchTimeout,
		RequestsPerSecond:  cfg.RequestsPerSecond,
		Logger:             log,
	})
	l := &loader.Loader{
		Fetcher: client,
		TTL:     cfg.CacheTTL,
		Refresh: refresh,
		Log:     log,
	}

	closeFn := func() error { return nil }
	if cfg.CachePath == "" {
		return l, closeFn
	}
	store, err := db.Open(cfg.CachePath)
	if err == nil {
		err = store.Migrate(context.Background())
		if err != nil {
			store.Close()
		}
	}
	if err != nil {
		log.Warn("cache unavailable", slog.String("path", cfg.CachePath), slog.String("error", err.Error()))
		return l, closeFn
	}
	l.Cache = store
	return l, store.Close
}

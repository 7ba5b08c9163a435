package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jwulff/eclipse/internal/app"
	"github.com/jwulff/eclipse/internal/loader"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive explorer (default)",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	addWindowFlags(tuiCmd)
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("eclipse tui requires a terminal")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	refresh, _ := cmd.Flags().GetBool("refresh")
	l, closeCache := newLoader(cfg, log, refresh)
	defer closeCache()

	// Only the first load bypasses the cache.
	load := func(ctx context.Context) (loader.Result, error) {
		res, err := l.Load(ctx)
		l.Refresh = false
		return res, err
	}

	log.Info("tui starting", slog.Float64("start", cfg.DateStart), slog.Bool("refresh", refresh))
	p := app.NewProgram(app.Options{Config: cfg, Load: load, Logger: log})
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jwulff/eclipse/internal/eclipse"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the catalog from the feature service into the cache",
	Args:  cobra.NoArgs,
	RunE:  runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	l, closeCache := newLoader(cfg, log, true)
	defer closeCache()
	if l.Cache == nil {
		return fmt.Errorf("no usable cache at %s", cfg.CachePath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := l.Load(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	counts := res.Catalog.Counts()
	fmt.Fprintf(out, "Fetched %d eclipse paths into %s\n", res.Catalog.Len(), cfg.CachePath)
	for _, c := range eclipse.Categories {
		fmt.Fprintf(out, "  %-8s %d\n", c, counts[c])
	}
	if n := counts[eclipse.Unclassified]; n > 0 {
		fmt.Fprintf(out, "  %-8s %d\n", eclipse.Unclassified, n)
	}
	return nil
}

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jwulff/eclipse/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the catalog as MCP tools over stdio",
	Args:  cobra.NoArgs,
	RunE:  runMCP,
}

func init() {
	mcpCmd.Flags().Bool("refresh", false, "ignore the cache and fetch from the feature service")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
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

	res, err := l.Load(context.Background())
	if err != nil {
		return err
	}

	srv := mcpserver.NewServer(res.Catalog, mcpserver.Options{
		DateMin:     cfg.DateMin,
		DateMax:     cfg.DateMax,
		WindowWidth: cfg.WindowWidth,
		Logger:      log,
	})
	return srv.ServeStdio()
}

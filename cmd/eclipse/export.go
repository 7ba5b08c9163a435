package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jwulff/eclipse/internal/eclipse"
	"github.com/jwulff/eclipse/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render the duration/year chart of a window to SVG or PNG",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	addWindowFlags(exportCmd)
	exportCmd.Flags().StringP("out", "o", "", "output file, - for stdout (default eclipses.<format>)")
	exportCmd.Flags().String("format", "svg", "image format: svg or png")
	exportCmd.Flags().Int("width", 1200, "image width in pixels")
	exportCmd.Flags().Int("height", 600, "image height in pixels")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	formatFlag, _ := cmd.Flags().GetString("format")
	format, err := export.ParseFormat(formatFlag)
	if err != nil {
		return err
	}
	outPath, _ := cmd.Flags().GetString("out")
	if outPath == "" {
		outPath = "eclipses." + string(format)
	}
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	if width <= 0 || height <= 0 {
		return fmt.Errorf("width and height must be positive")
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

	res, err := l.Load(context.Background())
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if outPath != "-" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	window := eclipse.Window{StartYear: cfg.DateStart, Width: cfg.WindowWidth}
	err = export.Render(w, res.Catalog.Records(), window, export.Options{
		Format:      format,
		Width:       width,
		Height:      height,
		DateMin:     cfg.DateMin,
		DateMax:     cfg.DateMax,
		DurationMin: cfg.DurationMin,
		DurationMax: cfg.DurationMax,
	})
	if err != nil {
		return err
	}
	if outPath != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%s, %d eclipses in window)\n",
			outPath, window.Label(), len(eclipse.Resolve(res.Catalog.Records(), window)))
	}
	return nil
}

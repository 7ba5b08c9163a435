// Package export renders the duration/year scatter of a window to SVG or PNG.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/jwulff/eclipse/internal/eclipse"
)

// Format is an output image format.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
)

// ErrFormat is returned for formats other than svg and png.
var ErrFormat = errors.New("unsupported format")

// ParseFormat accepts "svg" or "png" in any case.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case SVG:
		return SVG, nil
	case PNG:
		return PNG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrFormat, s)
}

// Options sizes the image and fixes the axes.
type Options struct {
	Format      Format
	Width       int
	Height      int
	DateMin     float64
	DateMax     float64
	DurationMin float64
	DurationMax float64
}

const (
	dotWidth  = 3
	edgeWidth = 1.5
)

func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    dotWidth,
		DotColor:    col,
	}
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// Series builds the chart series for records and window: out-of-window
// records first in grey, then one series per category in render order, then
// the two window edges.
func Series(records []eclipse.Record, window eclipse.Window, opts Options) []chart.Series {
	var (
		otherX, otherY []float64
		byCat          = map[eclipse.Category][2][]float64{}
	)
	for _, r := range records {
		x, y := float64(r.Year()), r.DurationSeconds
		if !window.Contains(r.Year()) || !r.Category.Classified() {
			otherX, otherY = append(otherX, x), append(otherY, y)
			continue
		}
		xy := byCat[r.Category]
		xy[0], xy[1] = append(xy[0], x), append(xy[1], y)
		byCat[r.Category] = xy
	}

	var series []chart.Series
	if len(otherX) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    "Other",
			XValues: otherX,
			YValues: otherY,
			Style:   pointStyle(hexColor(eclipse.ColorMuted)),
		})
	}
	for _, c := range eclipse.Categories {
		xy := byCat[c]
		if len(xy[0]) == 0 {
			continue
		}
		color, _ := eclipse.CategoryColor(c)
		series = append(series, chart.ContinuousSeries{
			Name:    c.String(),
			XValues: xy[0],
			YValues: xy[1],
			Style:   pointStyle(hexColor(color)),
		})
	}

	edge := chart.Style{
		StrokeWidth: edgeWidth,
		StrokeColor: hexColor(eclipse.ColorHighlight),
	}
	for _, x := range []float64{window.StartYear, window.End()} {
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("%.0f", x),
			XValues: []float64{x, x},
			YValues: []float64{opts.DurationMin, opts.DurationMax},
			Style:   edge,
		})
	}
	return series
}

// yearTicks labels every century in [min, max].
func yearTicks(min, max float64) []chart.Tick {
	var ticks []chart.Tick
	for y := float64(int(min/100)) * 100; y <= max; y += 100 {
		if y < min {
			continue
		}
		ticks = append(ticks, chart.Tick{Value: y, Label: fmt.Sprintf("%.0f", y)})
	}
	return ticks
}

// Render writes the scatter of records with window marked to w.
func Render(w io.Writer, records []eclipse.Record, window eclipse.Window, opts Options) error {
	if opts.DateMax <= opts.DateMin || opts.DurationMax <= opts.DurationMin {
		return fmt.Errorf("render chart: empty axis range")
	}
	var provider chart.RendererProvider
	switch opts.Format {
	case SVG, "":
		provider = chart.SVG
	case PNG:
		provider = chart.PNG
	default:
		return fmt.Errorf("render chart: %w: %q", ErrFormat, opts.Format)
	}

	ch := chart.Chart{
		Title:      "Solar eclipses " + window.Label(),
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  "Year",
			Range: &chart.ContinuousRange{Min: opts.DateMin, Max: opts.DateMax},
			Ticks: yearTicks(opts.DateMin, opts.DateMax),
		},
		YAxis: chart.YAxis{
			Name:  "Duration (s)",
			Range: &chart.ContinuousRange{Min: opts.DurationMin, Max: opts.DurationMax},
		},
		Series: Series(records, window, opts),
	}
	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
